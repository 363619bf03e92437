package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"netmibd/internal/agent"
	"netmibd/internal/config"
	"netmibd/internal/ifindex"
	"netmibd/internal/logger"
	"netmibd/internal/metrics"
	"netmibd/internal/pciids"
	"netmibd/internal/procfs"
	"netmibd/internal/services"
	"netmibd/internal/system"
)

var version = "dev"

var (
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:     "netmibd",
	Version: version,
	Short:   "MIB-II and IPv6 MIB data agent for Linux hosts",
	Long: `netmibd assembles MIB-II (RFC 1213) and IPv6 MIB (RFC 2465) objects from
/proc and /sys and serves them as JSON over HTTP.

Settings come from NETMIBD_* environment variables; flags override them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: terminal, text or json")
	rootCmd.AddCommand(serveCmd, walkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and builds the process logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg := config.Load()
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(log)
	return cfg, log, nil
}

// buildAgent wires the kernel readers and table services into an agent.
func buildAgent(ctx context.Context, cfg *config.Config, log *slog.Logger, reg prometheus.Registerer) (*agent.Agent, error) {
	fs := procfs.New(cfg.ProcRoot, cfg.SysRoot, cfg.ReadTimeout)
	m := metrics.New(reg)

	links := services.NewNetlinkService(fs, log)
	registry := ifindex.New(links)
	pci := pciids.NewLookup(cfg.PCIIDs, log)

	var resolver services.ReverseResolver
	if r, err := services.NewDNSResolver(cfg.ResolvConf, cfg.DNSTimeout); err != nil {
		log.Warn("reverse DNS disabled", "resolv_conf", cfg.ResolvConf, "error", err)
	} else {
		resolver = r
	}

	identity, err := hostIdentity(ctx, cfg, fs)
	if err != nil {
		return nil, err
	}
	scalars := system.New(identity)
	log.Info("agent started", "started_at", scalars.StartedAt(), "sys_name", identity.Name)

	return agent.New(agent.Sources{
		FS:          fs,
		System:      scalars,
		Interfaces:  services.NewInterfaceService(fs, registry, pci, m, log, cfg.Concurrency),
		Addresses:   services.NewAddressService(links, registry, m, log),
		Routes:      services.NewRouteService(fs, registry, m, log),
		Connections: services.NewConnectionService(fs, resolver, m, log, cfg.DNSTimeout, cfg.DNSConcurrency),
		Ipv6:        services.NewIpv6Service(fs, registry, m, log),
	}), nil
}

// hostIdentity fills the system group from configuration, deriving
// sysDescr and sysName from the host when they are not set.
func hostIdentity(ctx context.Context, cfg *config.Config, fs *procfs.FS) (system.Identity, error) {
	id := system.Identity{
		Descr:    cfg.SysDescr,
		ObjectID: cfg.SysObjectID,
		Contact:  cfg.SysContact,
		Name:     cfg.SysName,
		Location: cfg.SysLocation,
		Services: cfg.SysServices,
	}

	if id.Descr == "" {
		release, err := fs.KernelRelease(ctx)
		if err != nil {
			return id, fmt.Errorf("failed to derive sysDescr: %w", err)
		}
		id.Descr = system.DefaultDescr(release)
	}
	if id.Name == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return id, fmt.Errorf("failed to derive sysName: %w", err)
		}
		id.Name = hostname
	}
	return id, nil
}
