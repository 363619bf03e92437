package agent

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmibd/internal/ifindex"
	"netmibd/internal/models"
	"netmibd/internal/pciids"
	"netmibd/internal/procfs"
	"netmibd/internal/services"
	"netmibd/internal/system"
)

type mockLister struct{}

func (mockLister) InterfaceNames(context.Context) ([]string, error) {
	return []string{"lo", "eth0"}, nil
}

type mockHosts struct{}

func (mockHosts) HostInterfaces(context.Context) ([]services.HostInterface, error) {
	_, lo, _ := net.ParseCIDR("127.0.0.0/8")
	lo.IP = net.ParseIP("127.0.0.1")
	_, eth0, _ := net.ParseCIDR("192.168.1.0/24")
	eth0.IP = net.ParseIP("192.168.1.100")
	mac, _ := net.ParseMAC("52:54:00:12:34:56")

	return []services.HostInterface{
		{Name: "lo", Loopback: true, Addrs: []*net.IPNet{lo}},
		{Name: "eth0", HardwareAddr: mac, Addrs: []*net.IPNet{eth0}},
	}, nil
}

func newTestAgent() *Agent {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fs := procfs.New("../procfs/testdata/proc", "../procfs/testdata/sys", time.Second)
	reg := ifindex.New(mockLister{})
	pci := pciids.NewStaticLookup(&pciids.Database{})

	return New(Sources{
		FS:          fs,
		System:      system.New(system.Identity{Descr: "Linux test 6.8.0-45-generic", Contact: "noc@example.com"}),
		Interfaces:  services.NewInterfaceService(fs, reg, pci, nil, log, 2),
		Addresses:   services.NewAddressService(mockHosts{}, reg, nil, log),
		Routes:      services.NewRouteService(fs, reg, nil, log),
		Connections: services.NewConnectionService(fs, nil, nil, log, time.Second, 1),
		Ipv6:        services.NewIpv6Service(fs, reg, nil, log),
	})
}

func TestAgent_Objects(t *testing.T) {
	a := newTestAgent()
	objs := a.Objects()

	require.NotEmpty(t, objs)
	assert.Equal(t, Object{Name: "sysDescr", OID: "1.3.6.1.2.1.1.1", Kind: Scalar}, objs[0])

	seen := make(map[string]bool)
	counts := make(map[Kind]int)
	for _, o := range objs {
		assert.False(t, seen[o.Name], "duplicate object %s", o.Name)
		seen[o.Name] = true
		counts[o.Kind]++
	}
	assert.Equal(t, 9, counts[Table])

	obj, ok := a.Lookup("sysLocation")
	require.True(t, ok)
	assert.True(t, obj.Writable)
	assert.Equal(t, "1.3.6.1.2.1.1.6", obj.OID)

	obj, ok = a.Lookup("ipv6AddrTable")
	require.True(t, ok)
	assert.Equal(t, "1.3.6.1.2.1.55.1.8", obj.OID)
}

func TestAgent_GetScalar(t *testing.T) {
	tests := map[string]struct {
		wantType  gosnmp.Asn1BER
		wantValue any
	}{
		"sysDescr":            {wantType: gosnmp.OctetString, wantValue: []byte("Linux test 6.8.0-45-generic")},
		"sysObjectID":         {wantType: gosnmp.ObjectIdentifier, wantValue: system.DefaultObjectID},
		"sysServices":         {wantType: gosnmp.Integer, wantValue: 72},
		"ifNumber":            {wantType: gosnmp.Integer, wantValue: 2},
		"ipForwarding":        {wantType: gosnmp.Integer, wantValue: 2},
		"ipDefaultTTL":        {wantType: gosnmp.Integer, wantValue: 64},
		"ipInReceives":        {wantType: gosnmp.Counter32, wantValue: uint32(5)},
		"ipInAddrErrors":      {wantType: gosnmp.Counter32, wantValue: uint32(12)},
		"ipOutNoRoutes":       {wantType: gosnmp.Counter32, wantValue: uint32(45)},
		"ipReasmTimeout":      {wantType: gosnmp.Integer, wantValue: 0},
		"ipRoutingDiscards":   {wantType: gosnmp.Counter32, wantValue: uint32(0)},
		"icmpInMsgs":          {wantType: gosnmp.Counter32, wantValue: uint32(45)},
		"icmpOutEchoReps":     {wantType: gosnmp.Counter32, wantValue: uint32(3)},
		"tcpRtoMax":           {wantType: gosnmp.Integer, wantValue: 120000},
		"tcpMaxConn":          {wantType: gosnmp.Integer, wantValue: -1},
		"tcpCurrEstab":        {wantType: gosnmp.Gauge32, wantValue: uint32(7)},
		"tcpOutRsts":          {wantType: gosnmp.Counter32, wantValue: uint32(5125)},
		"udpNoPorts":          {wantType: gosnmp.Counter32, wantValue: uint32(44)},
		"ipv6Forwarding":      {wantType: gosnmp.Integer, wantValue: 1},
		"ipv6DefaultHopLimit": {wantType: gosnmp.Integer, wantValue: 64},
		"ipv6Interfaces":      {wantType: gosnmp.Gauge32, wantValue: uint32(2)},
	}

	a := newTestAgent()
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := a.Get(context.Background(), name)
			require.NoError(t, err)
			require.NotNil(t, v.PDU)
			assert.Nil(t, v.Rows)

			assert.Equal(t, name, v.PDU.Name)
			assert.Equal(t, test.wantType, v.PDU.Type)
			assert.Equal(t, test.wantValue, v.PDU.Value)
		})
	}
}

func TestAgent_GetTable(t *testing.T) {
	tests := map[string]struct {
		wantRows int
	}{
		"ifTable":           {wantRows: 2},
		"ipAddrTable":       {wantRows: 2},
		"ipRouteTable":      {wantRows: 2},
		"ipNetToMediaTable": {wantRows: 1},
		"tcpConnTable":      {wantRows: 2},
		"udpTable":          {wantRows: 2},
		"ipv6IfTable":       {wantRows: 2},
		"ipv6IfStatsTable":  {wantRows: 2},
		"ipv6AddrTable":     {wantRows: 0},
	}

	a := newTestAgent()
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := a.Get(context.Background(), name)
			require.NoError(t, err)
			assert.Nil(t, v.PDU)
			assert.Len(t, v.Rows, test.wantRows)
			assert.Equal(t, Table, v.Kind)
		})
	}
}

func TestAgent_GetIfTableRows(t *testing.T) {
	v, err := newTestAgent().Get(context.Background(), "ifTable")
	require.NoError(t, err)
	require.Len(t, v.Rows, 2)

	lo, ok := v.Rows[0].(models.InterfaceRecord)
	require.True(t, ok)
	assert.Equal(t, 1, lo.Index)

	eth0, ok := v.Rows[1].(models.InterfaceRecord)
	require.True(t, ok)
	assert.Equal(t, 2, eth0.Index)
}

func TestAgent_GetUnknown(t *testing.T) {
	_, err := newTestAgent().Get(context.Background(), "hrSystemUptime")
	assert.ErrorIs(t, err, ErrNoSuchObject)
}

func TestAgent_Set(t *testing.T) {
	a := newTestAgent()

	old, err := a.Set("sysContact", "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, "noc@example.com", old)

	v, err := a.Get(context.Background(), "sysContact")
	require.NoError(t, err)
	assert.Equal(t, []byte("ops@example.com"), v.PDU.Value)

	_, err = a.Set("sysDescr", "x")
	assert.ErrorIs(t, err, system.ErrNotWritable)

	_, err = a.Set("bogus", "x")
	assert.ErrorIs(t, err, ErrNoSuchObject)
}

func TestAgent_Walk(t *testing.T) {
	var lines []string
	err := newTestAgent().Walk(context.Background(), []string{"sysContact", "udpTable"}, func(name string, pdu gosnmp.SnmpPDU) error {
		lines = append(lines, FormatVarbind(name, pdu))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sysContact = STRING: noc@example.com",
		"udpLocalAddress.1 = IpAddress: 0.0.0.0",
		"udpLocalPort.1 = INTEGER: 68",
		"udpLocalAddress.2 = IpAddress: 127.0.0.53",
		"udpLocalPort.2 = INTEGER: 53",
	}, lines)
}

func TestAgent_WalkAll(t *testing.T) {
	a := newTestAgent()

	var n int
	err := a.Walk(context.Background(), nil, func(string, gosnmp.SnmpPDU) error {
		n++
		return nil
	})
	require.NoError(t, err)
	assert.Greater(t, n, len(a.Objects()))
}
