package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveBuild("ifTable", time.Now(), 3, nil)
	m.ObserveBuild("ifTable", time.Now(), 0, errors.New("boom"))
	m.RowSkipped("ifTable")
	m.RowSkipped("ifTable")
	m.DNSLookup(true)
	m.DNSLookup(false)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.rows.WithLabelValues("ifTable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.buildErrors.WithLabelValues("ifTable")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsSkipped.WithLabelValues("ifTable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dnsLookups.WithLabelValues("failed")))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveBuild("ifTable", time.Now(), 1, nil)
		m.RowSkipped("ifTable")
		m.DNSLookup(true)
	})
}
