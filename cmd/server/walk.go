package main

import (
	"fmt"

	"github.com/gosnmp/gosnmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"netmibd/internal/agent"
)

var flagResolve bool

var walkCmd = &cobra.Command{
	Use:   "walk [object...]",
	Short: "Print MIB objects in net-snmp style",
	Example: `  netmibd walk
  netmibd walk ifTable tcpConnTable --resolve`,
	RunE: runWalk,
}

func init() {
	walkCmd.Flags().BoolVar(&flagResolve, "resolve", false, "resolve tcpConnTable remote addresses to hostnames")
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	a, err := buildAgent(cmd.Context(), cfg, log, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	var opts []agent.Option
	if flagResolve {
		opts = append(opts, agent.WithHostnames())
	}

	out := cmd.OutOrStdout()
	return a.Walk(cmd.Context(), args, func(name string, pdu gosnmp.SnmpPDU) error {
		_, err := fmt.Fprintln(out, agent.FormatVarbind(name, pdu))
		return err
	}, opts...)
}
