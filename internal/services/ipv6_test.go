package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmibd/internal/models"
	"netmibd/internal/procfs"
)

func TestIpv6Service_Interfaces(t *testing.T) {
	svc := NewIpv6Service(newTestFS(), newTestRegistry("lo", "eth0", "sit0"), nil, discardLogger())

	names, err := svc.Interfaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"lo", "eth0"}, names)
}

func TestIpv6Service_IfTable(t *testing.T) {
	svc := NewIpv6Service(newTestFS(), newTestRegistry("lo", "eth0"), nil, discardLogger())

	rows, err := svc.IfTable(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].IfIndex)
	assert.Equal(t, "lo", rows[0].Descr)
	assert.Equal(t, uint64(65536), rows[0].EffectiveMTU)
	assert.Equal(t, 0, rows[0].IdentifierLength)
	assert.Equal(t, 4, rows[0].OperStatus)

	assert.Equal(t, 2, rows[1].IfIndex)
	assert.Equal(t, uint64(1500), rows[1].EffectiveMTU)
	assert.Equal(t, 48, rows[1].IdentifierLength)
	assert.Equal(t, "52:54:00:12:34:56", rows[1].Identifier.String())
	assert.Equal(t, 1, rows[1].OperStatus)
	assert.Equal(t, models.IfAdminUp, rows[1].AdminStatus)
}

func TestIpv6Service_StatsTable(t *testing.T) {
	svc := NewIpv6Service(newTestFS(), newTestRegistry("lo", "eth0"), nil, discardLogger())

	rows, err := svc.StatsTable(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].IfIndex)
	assert.Equal(t, "lo", rows[0].Interface)

	eth0 := rows[1]
	assert.Equal(t, 2, eth0.IfIndex)
	require.Len(t, eth0.Counters, len(models.Ipv6StatsColumns))
	assert.Equal(t, uint64(4294967298), eth0.Counters[0])
	assert.Equal(t, uint64(1523), eth0.Counters[8])
	assert.Equal(t, uint64(211), eth0.Counters[18])
	assert.Equal(t, uint64(57), eth0.Counters[19])

	vbs := eth0.Varbinds()
	assert.Equal(t, "ipv6IfStatsInReceives", vbs[0].Name)
	assert.Equal(t, uint32(2), vbs[0].Value)
}

func TestIpv6OperStatus(t *testing.T) {
	tests := map[string]struct {
		in   int
		want int
	}{
		"up":             {in: 1, want: 1},
		"down":           {in: 2, want: 2},
		"lowerlayerdown": {in: 7, want: 2},
		"notpresent":     {in: 6, want: 5},
		"dormant":        {in: 5, want: 4},
		"unknown":        {in: 4, want: 4},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, ipv6OperStatus(procfs.OperStatus(test.in)))
		})
	}
}
