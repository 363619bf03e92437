// Package services joins the kernel sources into MIB table rows.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"

	"netmibd/internal/ifindex"
	"netmibd/internal/metrics"
	"netmibd/internal/models"
	"netmibd/internal/pciids"
	"netmibd/internal/procfs"
)

// interfaceCounters lists the statistics files feeding ifTable counters.
// Required files must be readable or the row is dropped.
var interfaceCounters = []struct {
	file     string
	required bool
	field    func(*models.InterfaceRecord) *uint64
}{
	{"rx_bytes", true, func(r *models.InterfaceRecord) *uint64 { return &r.InOctets }},
	{"rx_packets", true, func(r *models.InterfaceRecord) *uint64 { return &r.InUcastPkts }},
	{"multicast", true, func(r *models.InterfaceRecord) *uint64 { return &r.InNUcastPkts }},
	{"rx_dropped", true, func(r *models.InterfaceRecord) *uint64 { return &r.InDiscards }},
	{"rx_errors", true, func(r *models.InterfaceRecord) *uint64 { return &r.InErrors }},
	{"rx_nohandler", false, func(r *models.InterfaceRecord) *uint64 { return &r.InUnknownProtos }},
	{"tx_bytes", true, func(r *models.InterfaceRecord) *uint64 { return &r.OutOctets }},
	{"tx_packets", true, func(r *models.InterfaceRecord) *uint64 { return &r.OutUcastPkts }},
	{"tx_dropped", true, func(r *models.InterfaceRecord) *uint64 { return &r.OutDiscards }},
	{"tx_errors", true, func(r *models.InterfaceRecord) *uint64 { return &r.OutErrors }},
}

type InterfaceService struct {
	fs          *procfs.FS
	registry    *ifindex.Registry
	pci         *pciids.Lookup
	metrics     *metrics.Metrics
	log         *slog.Logger
	concurrency int
}

func NewInterfaceService(fs *procfs.FS, registry *ifindex.Registry, pci *pciids.Lookup, m *metrics.Metrics, log *slog.Logger, concurrency int) *InterfaceService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &InterfaceService{
		fs:          fs,
		registry:    registry,
		pci:         pci,
		metrics:     m,
		log:         log.With("table", "ifTable"),
		concurrency: concurrency,
	}
}

// IfNumber is the count of interfaces currently present.
func (s *InterfaceService) IfNumber(ctx context.Context) (int, error) {
	names, err := s.registry.EnsureIndexed(ctx)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// IfTable builds one row per present interface, in enumeration order.
// Interfaces whose mandatory attributes cannot be read are left out.
func (s *InterfaceService) IfTable(ctx context.Context) (rows []models.InterfaceRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("ifTable", start, len(rows), err) }()

	names, err := s.registry.EnsureIndexed(ctx)
	if err != nil {
		return nil, err
	}

	built := make([]*models.InterfaceRecord, len(names))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.concurrency)
	for i, name := range names {
		p.Go(func(ctx context.Context) error {
			rec, err := s.Interface(ctx, name)
			if err != nil {
				if !isSkippable(ctx, err) {
					return err
				}
				s.log.Warn("skipping interface", "interface", name, "error", err)
				s.metrics.RowSkipped("ifTable")
				return nil
			}
			built[i] = rec
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build ifTable: %w", err)
	}

	rows = make([]models.InterfaceRecord, 0, len(built))
	for _, rec := range built {
		if rec != nil {
			rows = append(rows, *rec)
		}
	}
	return rows, nil
}

// Interface builds the ifTable row for a single interface. The attribute
// reads run concurrently; any failed mandatory read fails the row.
func (s *InterfaceService) Interface(ctx context.Context, name string) (*models.InterfaceRecord, error) {
	index, err := s.registry.IndexOf(ctx, name)
	if err != nil {
		return nil, err
	}

	rec := &models.InterfaceRecord{
		Index:       index,
		Name:        name,
		Type:        models.IfTypeOther,
		AdminStatus: models.IfAdminUp,
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		mtu, err := s.fs.MTU(ctx, name)
		rec.MTU = mtu
		return err
	})
	p.Go(func(ctx context.Context) error {
		rec.Speed = s.fs.Speed(ctx, name)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		rec.PhysAddress = models.HardwareAddr(s.fs.HardwareAddr(ctx, name))
		return nil
	})
	p.Go(func(ctx context.Context) error {
		rec.OperStatus = int(s.fs.OperState(ctx, name))
		return nil
	})
	p.Go(func(ctx context.Context) error {
		rec.OutQLen = s.fs.TxQueueLen(ctx, name)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		pci := s.fs.PCI(ctx, name)
		rec.Descr = s.pci.Describe(pci.Vendor, pci.Device, pci.Revision)
		return nil
	})
	for _, c := range interfaceCounters {
		field := c.field(rec)
		p.Go(func(ctx context.Context) error {
			if !c.required {
				*field, _ = s.fs.OptionalStatistic(ctx, name, c.file)
				return nil
			}
			v, err := s.fs.Statistic(ctx, name, c.file)
			*field = v
			return err
		})
	}

	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read interface %s: %w", name, err)
	}
	return rec, nil
}

// isSkippable reports whether err only affects one row rather than the
// whole table.
func isSkippable(ctx context.Context, err error) bool {
	return ctx.Err() == nil && !errors.Is(err, procfs.ErrFormat)
}
