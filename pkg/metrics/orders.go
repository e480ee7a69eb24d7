package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records counters for the order intake workflow.
type OrderMetrics struct {
	created          *prometheus.CounterVec
	followupsCreated *prometheus.CounterVec
	followupFailures prometheus.Counter
	statsFailures    prometheus.Counter
}

// NewOrderMetrics registers the order workflow metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted, by order type.",
	}, []string{"order_type"})
	followupsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "followups_scheduled_total",
		Help: "Follow-up tasks scheduled after order creation, by type.",
	}, []string{"type"})
	followupFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "followups_schedule_failures_total",
		Help: "Follow-up scheduling attempts that failed and were dropped.",
	})
	statsFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "customer_stats_update_failures_total",
		Help: "Customer stat refreshes that failed after an order was saved.",
	})
	reg.MustRegister(created, followupsCreated, followupFailures, statsFailures)
	return &OrderMetrics{
		created:          created,
		followupsCreated: followupsCreated,
		followupFailures: followupFailures,
		statsFailures:    statsFailures,
	}
}

// IncOrderCreated increments the created counter for the given order type.
func (m *OrderMetrics) IncOrderCreated(orderType string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(orderType)).Inc()
}

// IncFollowupScheduled increments the scheduled counter for the given follow-up type.
func (m *OrderMetrics) IncFollowupScheduled(followupType string) {
	if m == nil || m.followupsCreated == nil {
		return
	}
	m.followupsCreated.WithLabelValues(normalizeLabel(followupType)).Inc()
}

// IncFollowupFailure increments the dropped follow-up counter.
func (m *OrderMetrics) IncFollowupFailure() {
	if m == nil || m.followupFailures == nil {
		return
	}
	m.followupFailures.Inc()
}

// IncStatsFailure increments the customer stats failure counter.
func (m *OrderMetrics) IncStatsFailure() {
	if m == nil || m.statsFailures == nil {
		return
	}
	m.statsFailures.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
