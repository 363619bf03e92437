package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"netmibd/internal/ifindex"
	"netmibd/internal/metrics"
	"netmibd/internal/models"
)

// ErrAddressNotFound is returned for addresses not configured on the host.
var ErrAddressNotFound = errors.New("address not configured")

// HostAddress is one configured address with its owning interface.
type HostAddress struct {
	Interface    string
	HardwareAddr net.HardwareAddr
	Loopback     bool
	IPNet        net.IPNet
}

// AddressSnapshot is a single enumeration of host addresses, partitioned by
// family and indexed by IP and by hardware address.
type AddressSnapshot struct {
	V4 []HostAddress
	V6 []HostAddress

	// ByIP holds the first interface seen with each address; an address
	// shared by several interfaces appears once per interface in V4/V6.
	ByIP map[string]HostAddress
	// ByHardware excludes loopback. Keys are listed in hwOrder.
	ByHardware map[string][]HostAddress
	hwOrder    []string
}

func newAddressSnapshot(ifaces []HostInterface) *AddressSnapshot {
	snap := &AddressSnapshot{
		ByIP:       make(map[string]HostAddress),
		ByHardware: make(map[string][]HostAddress),
	}

	for _, iface := range ifaces {
		for _, ipnet := range iface.Addrs {
			addr := HostAddress{
				Interface:    iface.Name,
				HardwareAddr: iface.HardwareAddr,
				Loopback:     iface.Loopback,
				IPNet:        *ipnet,
			}
			if ipnet.IP.To4() != nil {
				snap.V4 = append(snap.V4, addr)
			} else {
				snap.V6 = append(snap.V6, addr)
			}
			if _, dup := snap.ByIP[ipnet.IP.String()]; !dup {
				snap.ByIP[ipnet.IP.String()] = addr
			}

			if iface.Loopback || len(iface.HardwareAddr) == 0 {
				continue
			}
			mac := iface.HardwareAddr.String()
			if _, ok := snap.ByHardware[mac]; !ok {
				snap.hwOrder = append(snap.hwOrder, mac)
			}
			snap.ByHardware[mac] = append(snap.ByHardware[mac], addr)
		}
	}

	return snap
}

type AddressService struct {
	hosts    HostSource
	registry *ifindex.Registry
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func NewAddressService(hosts HostSource, registry *ifindex.Registry, m *metrics.Metrics, log *slog.Logger) *AddressService {
	return &AddressService{
		hosts:    hosts,
		registry: registry,
		metrics:  m,
		log:      log.With("component", "addresses"),
	}
}

// Snapshot enumerates the host's interfaces and addresses once.
func (s *AddressService) Snapshot(ctx context.Context) (*AddressSnapshot, error) {
	ifaces, err := s.hosts.HostInterfaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate addresses: %w", err)
	}
	return newAddressSnapshot(ifaces), nil
}

// snapshot reuses snap when the caller already enumerated.
func (s *AddressService) snapshot(ctx context.Context, snap *AddressSnapshot) (*AddressSnapshot, error) {
	if snap != nil {
		return snap, nil
	}
	return s.Snapshot(ctx)
}

// IPAddrEntry builds the ipAddrTable row for one IPv4 address. A nil snap
// enumerates the host first.
func (s *AddressService) IPAddrEntry(ctx context.Context, ip string, snap *AddressSnapshot) (*models.AddressRecord, error) {
	snap, err := s.snapshot(ctx, snap)
	if err != nil {
		return nil, err
	}

	addr, ok := snap.ByIP[ip]
	if !ok || addr.IPNet.IP.To4() == nil {
		return nil, fmt.Errorf("%w: %s", ErrAddressNotFound, ip)
	}
	return s.ipAddrRecord(ctx, addr)
}

func (s *AddressService) ipAddrRecord(ctx context.Context, addr HostAddress) (*models.AddressRecord, error) {
	index, err := s.registry.IndexOf(ctx, addr.Interface)
	if err != nil {
		return nil, err
	}

	ip4 := addr.IPNet.IP.To4()
	mask := net.IP(addr.IPNet.Mask)
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}

	return &models.AddressRecord{
		Address:   ip4.String(),
		Interface: addr.Interface,
		IfIndex:   index,
		Netmask:   mask.String(),
		BcastAddr: broadcastBit(ip4, addr.IPNet.Mask),
	}, nil
}

// broadcastBit is the least significant bit of addr | ^mask.
func broadcastBit(ip4 net.IP, mask net.IPMask) int {
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}
	if len(ip4) != net.IPv4len || len(mask) != net.IPv4len {
		return 0
	}
	return int((ip4[3] | ^mask[3]) & 1)
}

func (s *AddressService) IPAddrTable(ctx context.Context) (rows []models.AddressRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("ipAddrTable", start, len(rows), err) }()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, addr := range snap.V4 {
		rec, err := s.ipAddrRecord(ctx, addr)
		if err != nil {
			if !isSkippable(ctx, err) {
				return nil, err
			}
			s.skip("ipAddrTable", addr, err)
			continue
		}
		rows = append(rows, *rec)
	}
	return rows, nil
}

// NetToMediaTable lists the IPv4 addresses of interfaces that have a
// hardware address, keyed by that address.
func (s *AddressService) NetToMediaTable(ctx context.Context) (rows []models.NetToMediaRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("ipNetToMediaTable", start, len(rows), err) }()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, mac := range snap.hwOrder {
		for _, addr := range snap.ByHardware[mac] {
			ip4 := addr.IPNet.IP.To4()
			if ip4 == nil {
				continue
			}
			index, err := s.registry.IndexOf(ctx, addr.Interface)
			if err != nil {
				if !isSkippable(ctx, err) {
					return nil, err
				}
				s.skip("ipNetToMediaTable", addr, err)
				continue
			}
			rows = append(rows, models.NetToMediaRecord{
				IfIndex:     index,
				PhysAddress: models.HardwareAddr(addr.HardwareAddr),
				NetAddress:  ip4.String(),
				Type:        models.NetToMediaOther,
			})
		}
	}
	return rows, nil
}

// Ipv6AddrTable lists every configured IPv6 address.
func (s *AddressService) Ipv6AddrTable(ctx context.Context) (rows []models.Ipv6AddrRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("ipv6AddrTable", start, len(rows), err) }()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, addr := range snap.V6 {
		index, err := s.registry.IndexOf(ctx, addr.Interface)
		if err != nil {
			if !isSkippable(ctx, err) {
				return nil, err
			}
			s.skip("ipv6AddrTable", addr, err)
			continue
		}
		ones, _ := addr.IPNet.Mask.Size()
		rows = append(rows, models.Ipv6AddrRecord{
			IfIndex:      index,
			Interface:    addr.Interface,
			Address:      addr.IPNet.IP.String(),
			PrefixLength: ones,
			Type:         models.Ipv6AddrTypeUnknown,
			AnycastFlag:  models.Ipv6AnycastFalse,
			Status:       models.Ipv6AddrStatusUnknown,
		})
	}
	return rows, nil
}

func (s *AddressService) skip(table string, addr HostAddress, err error) {
	s.log.Warn("skipping address", "table", table, "interface", addr.Interface, "address", addr.IPNet.IP.String(), "error", err)
	s.metrics.RowSkipped(table)
}
