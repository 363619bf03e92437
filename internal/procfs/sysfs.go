package procfs

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"netmibd/internal/snmpnum"
)

// OperStatus is an ifOperStatus value.
type OperStatus int

const (
	OperUp             OperStatus = 1
	OperDown           OperStatus = 2
	OperTesting        OperStatus = 3
	OperUnknown        OperStatus = 4
	OperDormant        OperStatus = 5
	OperNotPresent     OperStatus = 6
	OperLowerLayerDown OperStatus = 7
)

var operStates = map[string]OperStatus{
	"up":             OperUp,
	"down":           OperDown,
	"testing":        OperTesting,
	"unknown":        OperUnknown,
	"dormant":        OperDormant,
	"notpresent":     OperNotPresent,
	"lowerlayerdown": OperLowerLayerDown,
}

// ParseOperState maps the text of /sys/class/net/<if>/operstate.
func ParseOperState(s string) OperStatus {
	if st, ok := operStates[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st
	}
	return OperUnknown
}

// PCIInfo holds the raw hex identifiers of an interface's PCI device,
// without the 0x prefix. Empty fields were not exposed by the driver.
type PCIInfo struct {
	Vendor   string
	Device   string
	Revision string
}

// InterfaceNames lists /sys/class/net in directory order. The order is not
// sorted: index assignment depends on it.
func (fs *FS) InterfaceNames(_ context.Context) ([]string, error) {
	dir, err := os.Open(fs.sysPath("class", "net"))
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}
	return names, nil
}

func (fs *FS) ifacePath(iface string, attr ...string) string {
	return fs.sysPath(append([]string{"class", "net", iface}, attr...)...)
}

// MTU reads the interface MTU. The file is mandatory.
func (fs *FS) MTU(ctx context.Context, iface string) (uint64, error) {
	return fs.readUint(ctx, fs.ifacePath(iface, "mtu"))
}

// Speed returns the link speed in bits per second, saturated at Gauge32.
// Virtual and down links do not report a speed; they get MaxGauge32.
func (fs *FS) Speed(ctx context.Context, iface string) uint32 {
	mbps, err := fs.readInt(ctx, fs.ifacePath(iface, "speed"))
	if err != nil || mbps < 0 {
		return snmpnum.MaxGauge32
	}
	return snmpnum.ClampGauge32(uint64(mbps) * 1_000_000)
}

// HardwareAddr returns the 6-byte link-layer address, zero-filled when the
// interface has none or it is not an Ethernet-sized address.
func (fs *FS) HardwareAddr(ctx context.Context, iface string) net.HardwareAddr {
	s, err := fs.readString(ctx, fs.ifacePath(iface, "address"))
	if err == nil {
		if mac, err := net.ParseMAC(s); err == nil && len(mac) == 6 {
			return mac
		}
	}
	return make(net.HardwareAddr, 6)
}

// OperState reads operstate; unreadable means unknown.
func (fs *FS) OperState(ctx context.Context, iface string) OperStatus {
	s, err := fs.readString(ctx, fs.ifacePath(iface, "operstate"))
	if err != nil {
		return OperUnknown
	}
	return ParseOperState(s)
}

// TxQueueLen reads tx_queue_len, zero when absent.
func (fs *FS) TxQueueLen(ctx context.Context, iface string) uint64 {
	v, err := fs.readUint(ctx, fs.ifacePath(iface, "tx_queue_len"))
	if err != nil {
		return 0
	}
	return v
}

// PCI reads device/{vendor,device,revision}. Missing files leave the
// corresponding field empty.
func (fs *FS) PCI(ctx context.Context, iface string) PCIInfo {
	read := func(name string) string {
		s, err := fs.readString(ctx, fs.ifacePath(iface, "device", name))
		if err != nil {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, "0x"))
	}
	return PCIInfo{
		Vendor:   read("vendor"),
		Device:   read("device"),
		Revision: read("revision"),
	}
}

// Statistic reads statistics/<name>. The file is mandatory.
func (fs *FS) Statistic(ctx context.Context, iface, name string) (uint64, error) {
	return fs.readUint(ctx, fs.ifacePath(iface, "statistics", name))
}

// OptionalStatistic reads statistics/<name>, reporting whether it exists.
// Older kernels lack some counters (rx_nohandler).
func (fs *FS) OptionalStatistic(ctx context.Context, iface, name string) (uint64, bool) {
	v, err := fs.readUint(ctx, fs.ifacePath(iface, "statistics", name))
	if err != nil {
		return 0, false
	}
	return v, true
}
