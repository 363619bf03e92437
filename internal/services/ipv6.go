package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"time"

	"netmibd/internal/ifindex"
	"netmibd/internal/metrics"
	"netmibd/internal/models"
	"netmibd/internal/procfs"
)

// ipv6IfOperStatus
const (
	ipv6OperUp         = 1
	ipv6OperDown       = 2
	ipv6OperUnknown    = 4
	ipv6OperNotPresent = 5
)

type Ipv6Service struct {
	fs       *procfs.FS
	registry *ifindex.Registry
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func NewIpv6Service(fs *procfs.FS, registry *ifindex.Registry, m *metrics.Metrics, log *slog.Logger) *Ipv6Service {
	return &Ipv6Service{
		fs:       fs,
		registry: registry,
		metrics:  m,
		log:      log.With("component", "ipv6"),
	}
}

// Interfaces lists the interfaces with IPv6 enabled, in enumeration order.
func (s *Ipv6Service) Interfaces(ctx context.Context) ([]string, error) {
	names, err := s.registry.EnsureIndexed(ctx)
	if err != nil {
		return nil, err
	}

	var enabled []string
	for _, name := range names {
		ok, err := s.fs.HasSnmp6(ctx, name)
		if err != nil {
			return nil, err
		}
		if ok {
			enabled = append(enabled, name)
		}
	}
	return enabled, nil
}

func (s *Ipv6Service) IfTable(ctx context.Context) (rows []models.Ipv6InterfaceRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("ipv6IfTable", start, len(rows), err) }()

	names, err := s.Interfaces(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		rec, err := s.ifEntry(ctx, name)
		if err != nil {
			if !isSkippable(ctx, err) {
				return nil, err
			}
			s.skip("ipv6IfTable", name, err)
			continue
		}
		rows = append(rows, *rec)
	}
	return rows, nil
}

func (s *Ipv6Service) ifEntry(ctx context.Context, name string) (*models.Ipv6InterfaceRecord, error) {
	index, err := s.registry.IndexOf(ctx, name)
	if err != nil {
		return nil, err
	}
	mtu, err := s.fs.MTU(ctx, name)
	if err != nil {
		return nil, err
	}

	mac := s.fs.HardwareAddr(ctx, name)
	idLen := 0
	if !isZeroHardwareAddr(mac) {
		idLen = len(mac) * 8
	}

	return &models.Ipv6InterfaceRecord{
		IfIndex:          index,
		Descr:            name,
		EffectiveMTU:     mtu,
		Identifier:       models.HardwareAddr(mac),
		IdentifierLength: idLen,
		PhysAddress:      models.HardwareAddr(mac),
		AdminStatus:      models.IfAdminUp,
		OperStatus:       ipv6OperStatus(s.fs.OperState(ctx, name)),
	}, nil
}

func ipv6OperStatus(st procfs.OperStatus) int {
	switch st {
	case procfs.OperUp:
		return ipv6OperUp
	case procfs.OperDown, procfs.OperLowerLayerDown:
		return ipv6OperDown
	case procfs.OperNotPresent:
		return ipv6OperNotPresent
	default:
		return ipv6OperUnknown
	}
}

func isZeroHardwareAddr(mac net.HardwareAddr) bool {
	for _, b := range mac {
		if b != 0 {
			return false
		}
	}
	return true
}

// StatsTable reads the per-interface snmp6 counters. Each row carries the
// ifIndex of its ipv6IfTable row.
func (s *Ipv6Service) StatsTable(ctx context.Context) (rows []models.Ipv6StatsRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("ipv6IfStatsTable", start, len(rows), err) }()

	names, err := s.Interfaces(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		rec, err := s.statsEntry(ctx, name)
		if err != nil {
			if !isSkippable(ctx, err) {
				return nil, err
			}
			s.skip("ipv6IfStatsTable", name, err)
			continue
		}
		rows = append(rows, *rec)
	}
	return rows, nil
}

func (s *Ipv6Service) statsEntry(ctx context.Context, name string) (*models.Ipv6StatsRecord, error) {
	stats, err := s.fs.Snmp6(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ipv6 disabled on %s: %w", name, err)
		}
		return nil, err
	}

	index, err := s.registry.IndexOf(ctx, name)
	if err != nil {
		return nil, err
	}

	counters := make([]uint64, len(models.Ipv6StatsColumns))
	for i, col := range models.Ipv6StatsColumns {
		counters[i] = uint64(stats[col.Counter])
	}

	return &models.Ipv6StatsRecord{
		IfIndex:   index,
		Interface: name,
		Counters:  counters,
	}, nil
}

func (s *Ipv6Service) skip(table, name string, err error) {
	s.log.Warn("skipping interface", "table", table, "interface", name, "error", err)
	s.metrics.RowSkipped(table)
}
