// Package metrics instruments table builds.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is safe to use as a nil pointer, which records nothing.
type Metrics struct {
	buildDuration *prometheus.HistogramVec
	buildErrors   *prometheus.CounterVec
	rows          *prometheus.GaugeVec
	rowsSkipped   *prometheus.CounterVec
	dnsLookups    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "netmibd",
			Name:      "table_build_duration_seconds",
			Help:      "Time spent rebuilding a MIB table from kernel sources.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"table"}),
		buildErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netmibd",
			Name:      "table_build_errors_total",
			Help:      "Table builds that failed as a whole.",
		}, []string{"table"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "netmibd",
			Name:      "table_rows",
			Help:      "Rows returned by the last build of a table.",
		}, []string{"table"}),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netmibd",
			Name:      "rows_skipped_total",
			Help:      "Rows left out of a table because one of their sources could not be read.",
		}, []string{"table"}),
		dnsLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netmibd",
			Name:      "reverse_dns_lookups_total",
			Help:      "Reverse DNS lookups for connection tables, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.buildDuration, m.buildErrors, m.rows, m.rowsSkipped, m.dnsLookups)
	return m
}

// ObserveBuild records one finished table build.
func (m *Metrics) ObserveBuild(table string, start time.Time, rows int, err error) {
	if m == nil {
		return
	}
	m.buildDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
	if err != nil {
		m.buildErrors.WithLabelValues(table).Inc()
		return
	}
	m.rows.WithLabelValues(table).Set(float64(rows))
}

func (m *Metrics) RowSkipped(table string) {
	if m == nil {
		return
	}
	m.rowsSkipped.WithLabelValues(table).Inc()
}

func (m *Metrics) DNSLookup(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.dnsLookups.WithLabelValues(result).Inc()
}
