package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"netmibd/internal/ifindex"
	"netmibd/internal/metrics"
	"netmibd/internal/models"
	"netmibd/internal/procfs"
)

type RouteService struct {
	fs       *procfs.FS
	registry *ifindex.Registry
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func NewRouteService(fs *procfs.FS, registry *ifindex.Registry, m *metrics.Metrics, log *slog.Logger) *RouteService {
	return &RouteService{
		fs:       fs,
		registry: registry,
		metrics:  m,
		log:      log.With("table", "ipRouteTable"),
	}
}

// RouteTable lists the IPv4 main routing table in kernel order.
func (s *RouteService) RouteTable(ctx context.Context) (rows []models.RouteRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("ipRouteTable", start, len(rows), err) }()

	routes, err := s.fs.Routes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	for _, r := range routes {
		index, err := s.registry.IndexOf(ctx, r.Iface)
		if err != nil {
			if !isSkippable(ctx, err) {
				return nil, err
			}
			s.log.Warn("skipping route", "destination", r.Destination, "interface", r.Iface, "error", err)
			s.metrics.RowSkipped("ipRouteTable")
			continue
		}

		rows = append(rows, models.RouteRecord{
			Destination: r.Destination,
			Gateway:     r.Gateway,
			Mask:        r.Mask,
			Interface:   r.Iface,
			IfIndex:     index,
			Flags:       r.Flags,
			FlagNames:   procfs.RouteFlagNames(r.Flags),
			Metric:      r.Metric,
			Type:        routeType(r.Flags),
			Proto:       routeProto(r.Flags),
		})
	}
	return rows, nil
}

func routeType(flags uint32) int {
	switch {
	case flags&procfs.RouteFlagUp == 0:
		return models.RouteTypeInvalid
	case flags&procfs.RouteFlagGateway != 0:
		return models.RouteTypeIndirect
	default:
		return models.RouteTypeDirect
	}
}

// routeProto reports icmp for routes installed by redirects.
func routeProto(flags uint32) int {
	if flags&(procfs.RouteFlagDynamic|procfs.RouteFlagModified) != 0 {
		return models.RouteProtoICMP
	}
	return models.RouteProtoLocal
}
