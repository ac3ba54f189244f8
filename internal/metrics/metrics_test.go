package metrics_test

import (
	"testing"

	"liftlog/api/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New("liftlog", "unit", reg)

	m.CounterSessionsCompleted.Inc()
	m.CounterLedgerUpdates.WithLabelValues("updated").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterSessionsCompleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterLedgerUpdates.WithLabelValues("updated")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "liftlog_unit_sessions_completed_total")
}

func TestNewTestMetrics_Independent(t *testing.T) {
	// two instances must not collide on registration
	a := metrics.NewTestMetrics()
	b := metrics.NewTestMetrics()
	a.CounterPanics.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CounterPanics))
}
