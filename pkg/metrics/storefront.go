package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records the domain counters exposed on /metrics.
type StorefrontMetrics struct {
	ordersCreated  prometheus.Counter
	stagesAdvanced prometheus.Counter
	erpSync        *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created through checkout.",
	})
	stagesAdvanced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_stages_advanced_total",
		Help: "Fulfillment stage advancements applied by the back office.",
	})
	erpSync := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_sync_total",
		Help: "External catalog refresh attempts by result.",
	}, []string{"result"})
	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
	reg.MustRegister(ordersCreated, stagesAdvanced, erpSync, requestLatency)
	return &StorefrontMetrics{
		ordersCreated:  ordersCreated,
		stagesAdvanced: stagesAdvanced,
		erpSync:        erpSync,
		requestLatency: requestLatency,
	}
}

// IncOrdersCreated counts one successful checkout.
func (m *StorefrontMetrics) IncOrdersCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncStagesAdvanced counts one stage advancement.
func (m *StorefrontMetrics) IncStagesAdvanced() {
	if m == nil || m.stagesAdvanced == nil {
		return
	}
	m.stagesAdvanced.Inc()
}

// IncERPSync counts one catalog refresh with the given result label.
func (m *StorefrontMetrics) IncERPSync(result string) {
	if m == nil || m.erpSync == nil {
		return
	}
	if result == "" {
		result = "unknown"
	}
	m.erpSync.WithLabelValues(result).Inc()
}

// ObserveRequest records one HTTP request observation.
func (m *StorefrontMetrics) ObserveRequest(method, status string, duration time.Duration) {
	if m == nil || m.requestLatency == nil {
		return
	}
	m.requestLatency.WithLabelValues(method, status).Observe(duration.Seconds())
}
