package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStorefrontMetricsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.IncOrdersCreated()
	m.IncOrdersCreated()
	m.IncStagesAdvanced()
	m.IncERPSync("ok")
	m.IncERPSync("")
	m.ObserveRequest("GET", "200", 25*time.Millisecond)

	if got := testutil.ToFloat64(m.ordersCreated); got != 2 {
		t.Fatalf("expected 2 orders created, got %v", got)
	}
	if got := testutil.ToFloat64(m.stagesAdvanced); got != 1 {
		t.Fatalf("expected 1 stage advanced, got %v", got)
	}
	if got := testutil.ToFloat64(m.erpSync.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty result to count as unknown, got %v", got)
	}
}

func TestStorefrontMetricsNilSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.IncOrdersCreated()
	m.IncStagesAdvanced()
	m.IncERPSync("ok")
	m.ObserveRequest("GET", "200", time.Millisecond)

	empty := NewStorefrontMetrics(nil)
	empty.IncOrdersCreated()
}
