package models

import (
	"encoding/json"
	"math"
	"net"
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterfaceRecord_Varbinds(t *testing.T) {
	rec := InterfaceRecord{
		Index:       2,
		Descr:       "Intel Corporation 82540EM Gigabit Ethernet Controller (rev 03)",
		Type:        IfTypeOther,
		MTU:         1500,
		Speed:       math.MaxUint32,
		PhysAddress: HardwareAddr{0x52, 0x54, 0, 0x12, 0x34, 0x56},
		AdminStatus: IfAdminUp,
		OperStatus:  1,
		InOctets:    1<<32 + 5,
		OutQLen:     1 << 33,
	}

	vbs := rec.Varbinds()
	require.Len(t, vbs, 22)

	assert.Equal(t, []string{
		"ifIndex", "ifDescr", "ifType", "ifMtu", "ifSpeed", "ifPhysAddress",
		"ifAdminStatus", "ifOperStatus", "ifLastChange", "ifInOctets",
		"ifInUcastPkts", "ifInNUcastPkts", "ifInDiscards", "ifInErrors",
		"ifInUnknownProtos", "ifOutOctets", "ifOutUcastPkts", "ifOutNUcastPkts",
		"ifOutDiscards", "ifOutErrors", "ifOutQLen", "ifSpecific",
	}, Columns(rec))

	assert.Equal(t, gosnmp.Counter32, vbs[9].Type)
	assert.Equal(t, uint32(5), vbs[9].Value, "ifInOctets wraps")
	assert.Equal(t, gosnmp.Gauge32, vbs[20].Type)
	assert.Equal(t, uint32(math.MaxUint32), vbs[20].Value, "ifOutQLen clamps")
	assert.Equal(t, []byte{0x52, 0x54, 0, 0x12, 0x34, 0x56}, vbs[5].Value)
}

func TestRouteRecord_Varbinds(t *testing.T) {
	vbs := RouteRecord{
		Destination: "0.0.0.0",
		Gateway:     "192.168.1.1",
		Mask:        "0.0.0.0",
		IfIndex:     2,
		Metric:      100,
		Type:        RouteTypeIndirect,
		Proto:       RouteProtoLocal,
	}.Varbinds()

	require.Len(t, vbs, 13)
	for _, i := range []int{3, 4, 5, 11} {
		assert.Equal(t, -1, vbs[i].Value, vbs[i].Name)
	}
	assert.Equal(t, "192.168.1.1", vbs[6].Value)
	assert.Equal(t, gosnmp.IPAddress, vbs[6].Type)
}

func TestIpv6StatsRecord_Varbinds(t *testing.T) {
	counters := make([]uint64, len(Ipv6StatsColumns))
	counters[0] = 1<<32 + 2

	vbs := Ipv6StatsRecord{IfIndex: 2, Counters: counters}.Varbinds()
	require.Len(t, vbs, 20)
	assert.Equal(t, "ipv6IfStatsInReceives", vbs[0].Name)
	assert.Equal(t, uint32(2), vbs[0].Value)

	short := Ipv6StatsRecord{IfIndex: 2}.Varbinds()
	assert.Len(t, short, 20)
}

func TestIpv6AddrRecord_Varbinds(t *testing.T) {
	vbs := Ipv6AddrRecord{Address: "fe80::1", PrefixLength: 64}.Varbinds()
	assert.Equal(t, []byte(net.ParseIP("fe80::1")), vbs[0].Value)
	assert.Len(t, vbs[0].Value, 16)
}

func TestHardwareAddr_JSON(t *testing.T) {
	data, err := json.Marshal(NetToMediaRecord{PhysAddress: HardwareAddr{0xaa, 0xbb, 0xcc, 0, 1, 2}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ipNetToMediaPhysAddress":"aa:bb:cc:00:01:02"`)
}
