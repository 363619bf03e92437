package snmpnum

import (
	"math"
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
)

func TestWrapCounter32(t *testing.T) {
	tests := map[string]struct {
		in   uint64
		want uint32
	}{
		"zero":              {in: 0, want: 0},
		"max uint32":        {in: math.MaxUint32, want: math.MaxUint32},
		"one past rollover": {in: 1 << 32, want: 0},
		"2^32 + 5":          {in: 1<<32 + 5, want: 5},
		"max uint64":        {in: math.MaxUint64, want: math.MaxUint32},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, WrapCounter32(test.in))
		})
	}
}

func TestClampGauge32(t *testing.T) {
	tests := map[string]struct {
		in   uint64
		want uint32
	}{
		"small":       {in: 10, want: 10},
		"ceiling":     {in: math.MaxUint32, want: math.MaxUint32},
		"2^32 + 100":  {in: 1<<32 + 100, want: math.MaxUint32},
		"huge 64-bit": {in: math.MaxUint64, want: math.MaxUint32},
		"zero":        {in: 0, want: 0},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, ClampGauge32(test.in))
		})
	}
}

func TestClampSignedGauge32(t *testing.T) {
	assert.Equal(t, uint32(0), ClampSignedGauge32(-1))
	assert.Equal(t, uint32(42), ClampSignedGauge32(42))
	assert.Equal(t, uint32(math.MaxUint32), ClampSignedGauge32(math.MaxInt64))
}

func TestVarbindTypes(t *testing.T) {
	pdu := Counter32("ifInOctets", 1<<32+7)
	assert.Equal(t, gosnmp.Counter32, pdu.Type)
	assert.Equal(t, uint32(7), pdu.Value)

	pdu = Gauge32("ifSpeed", 1<<40)
	assert.Equal(t, gosnmp.Gauge32, pdu.Type)
	assert.Equal(t, uint32(math.MaxUint32), pdu.Value)

	pdu = IPAddress("ipAdEntAddr", "not-an-ip")
	assert.Equal(t, "0.0.0.0", pdu.Value)

	pdu = OctetString("ifPhysAddress", nil)
	assert.Equal(t, []byte{}, pdu.Value)
}
