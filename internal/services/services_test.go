package services

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"netmibd/internal/ifindex"
	"netmibd/internal/pciids"
	"netmibd/internal/procfs"
)

const testPCIIDs = `8086  Intel Corporation
	100e  82540EM Gigabit Ethernet Controller
`

type mockLister struct {
	names []string
}

func (m *mockLister) InterfaceNames(context.Context) ([]string, error) {
	return m.names, nil
}

type mockHosts struct {
	ifaces []HostInterface
	calls  int
}

func (m *mockHosts) HostInterfaces(context.Context) ([]HostInterface, error) {
	m.calls++
	return m.ifaces, nil
}

func newTestFS() *procfs.FS {
	return procfs.New("../procfs/testdata/proc", "../procfs/testdata/sys", time.Second)
}

func newTestRegistry(names ...string) *ifindex.Registry {
	return ifindex.New(&mockLister{names: names})
}

func newTestPCI(t *testing.T) *pciids.Lookup {
	db, err := pciids.Parse(strings.NewReader(testPCIIDs))
	require.NoError(t, err)
	return pciids.NewStaticLookup(db)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustCIDR(t *testing.T, s string) *net.IPNet {
	ip, ipnet, err := net.ParseCIDR(s)
	require.NoError(t, err)
	ipnet.IP = ip
	return ipnet
}

func mustMAC(t *testing.T, s string) net.HardwareAddr {
	mac, err := net.ParseMAC(s)
	require.NoError(t, err)
	return mac
}
