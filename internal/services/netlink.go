package services

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/vishvananda/netlink"

	"netmibd/internal/ifindex"
)

// HostInterface is the host's view of one interface and its configured
// addresses.
type HostInterface struct {
	Name         string
	HardwareAddr net.HardwareAddr
	Loopback     bool
	Addrs        []*net.IPNet
}

// HostSource enumerates interfaces together with their addresses.
type HostSource interface {
	HostInterfaces(ctx context.Context) ([]HostInterface, error)
}

// NetlinkService enumerates links and addresses over rtnetlink. When the
// link dump fails, interface names come from the fallback lister instead.
type NetlinkService struct {
	fallback ifindex.Lister
	log      *slog.Logger
}

func NewNetlinkService(fallback ifindex.Lister, log *slog.Logger) *NetlinkService {
	return &NetlinkService{fallback: fallback, log: log.With("component", "netlink")}
}

// InterfaceNames lists links in kernel index order.
func (s *NetlinkService) InterfaceNames(ctx context.Context) ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		if s.fallback == nil {
			return nil, fmt.Errorf("failed to list links: %w", err)
		}
		s.log.Warn("netlink link dump failed, using sysfs", "error", err)
		return s.fallback.InterfaceNames(ctx)
	}

	names := make([]string, 0, len(links))
	for _, link := range links {
		names = append(names, link.Attrs().Name)
	}
	return names, nil
}

func (s *NetlinkService) HostInterfaces(ctx context.Context) ([]HostInterface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	var ifaces []HostInterface
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attrs := link.Attrs()

		iface := HostInterface{
			Name:         attrs.Name,
			HardwareAddr: attrs.HardwareAddr,
			Loopback:     attrs.Flags&net.FlagLoopback != 0,
		}

		// A link can vanish between the dump and the address query.
		addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL)
		if err != nil {
			s.log.Debug("skipping addresses of vanished link", "interface", attrs.Name, "error", err)
			continue
		}
		for _, addr := range addrs {
			if addr.IPNet != nil {
				iface.Addrs = append(iface.Addrs, addr.IPNet)
			}
		}

		ifaces = append(ifaces, iface)
	}

	return ifaces, nil
}
