package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"netmibd/internal/metrics"
	"netmibd/internal/models"
	"netmibd/internal/procfs"
)

type ConnectionService struct {
	fs       *procfs.FS
	resolver ReverseResolver
	metrics  *metrics.Metrics
	log      *slog.Logger

	dnsTimeout     time.Duration
	dnsConcurrency int
}

// NewConnectionService builds the connection tables. resolver may be nil,
// in which case resolution requests are ignored.
func NewConnectionService(fs *procfs.FS, resolver ReverseResolver, m *metrics.Metrics, log *slog.Logger, dnsTimeout time.Duration, dnsConcurrency int) *ConnectionService {
	if dnsConcurrency < 1 {
		dnsConcurrency = 1
	}
	return &ConnectionService{
		fs:             fs,
		resolver:       resolver,
		metrics:        m,
		log:            log.With("component", "connections"),
		dnsTimeout:     dnsTimeout,
		dnsConcurrency: dnsConcurrency,
	}
}

// TCPConnTable lists IPv4 TCP sockets. With resolve set, remote addresses
// are reverse-resolved; lookups that fail leave RemoteHostnames empty.
func (s *ConnectionService) TCPConnTable(ctx context.Context, resolve bool) (rows []models.ConnectionRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("tcpConnTable", start, len(rows), err) }()

	sockets, err := s.fs.TCP(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tcp sockets: %w", err)
	}

	for _, sock := range sockets {
		state, err := procfs.TCPStateFromKernel(sock.State)
		if err != nil {
			s.log.Warn("skipping connection", "table", "tcpConnTable", "local", sock.LocalAddress, "port", sock.LocalPort, "error", err)
			s.metrics.RowSkipped("tcpConnTable")
			continue
		}
		rows = append(rows, models.ConnectionRecord{
			State:         int(state),
			StateName:     state.String(),
			LocalAddress:  sock.LocalAddress,
			LocalPort:     sock.LocalPort,
			RemoteAddress: sock.RemoteAddress,
			RemotePort:    sock.RemotePort,
		})
	}

	if resolve && s.resolver != nil {
		names := s.resolveRemotes(ctx, rows)
		for i := range rows {
			rows[i].RemoteHostnames = names[rows[i].RemoteAddress]
		}
	}
	return rows, nil
}

// resolveRemotes looks up each distinct remote address once.
func (s *ConnectionService) resolveRemotes(ctx context.Context, rows []models.ConnectionRecord) map[string][]string {
	var (
		mu    sync.Mutex
		names = make(map[string][]string)
		seen  = make(map[string]bool)
	)

	p := pool.New().WithMaxGoroutines(s.dnsConcurrency)
	for _, row := range rows {
		addr := row.RemoteAddress
		if addr == "0.0.0.0" || seen[addr] {
			continue
		}
		seen[addr] = true

		p.Go(func() {
			lctx := ctx
			if s.dnsTimeout > 0 {
				var cancel context.CancelFunc
				lctx, cancel = context.WithTimeout(ctx, s.dnsTimeout)
				defer cancel()
			}

			hosts, err := s.resolver.LookupAddr(lctx, addr)
			s.metrics.DNSLookup(err == nil)
			if err != nil {
				s.log.Debug("reverse lookup failed", "address", addr, "error", err)
				return
			}
			mu.Lock()
			names[addr] = hosts
			mu.Unlock()
		})
	}
	p.Wait()

	return names
}

func (s *ConnectionService) UDPTable(ctx context.Context) (rows []models.UDPRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBuild("udpTable", start, len(rows), err) }()

	sockets, err := s.fs.UDP(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list udp sockets: %w", err)
	}

	rows = make([]models.UDPRecord, 0, len(sockets))
	for _, sock := range sockets {
		rows = append(rows, models.UDPRecord{
			LocalAddress: sock.LocalAddress,
			LocalPort:    sock.LocalPort,
		})
	}
	return rows, nil
}
