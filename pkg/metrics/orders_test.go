package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOrderMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.IncOrderCreated("pack10")
	m.IncOrderCreated("pack10")
	m.IncOrderCreated("")
	m.IncFollowupScheduled("recompra")
	m.IncFollowupFailure()
	m.IncStatsFailure()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.created.WithLabelValues("pack10")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.created.WithLabelValues("unknown")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.followupsCreated.WithLabelValues("recompra")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.followupFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.statsFailures))
}

func TestOrderMetrics_NilSafe(t *testing.T) {
	var m *OrderMetrics
	assert.NotPanics(t, func() {
		m.IncOrderCreated("single")
		m.IncFollowupScheduled("recompra")
		m.IncFollowupFailure()
		m.IncStatsFailure()
	})
}
