package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounters(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordTick("simulator")
	r.RecordTick("simulator")
	r.RecordTick("clock")
	r.RecordMissingContainer("main_gold_chart")
	r.RecordSessions(3)
	r.RecordLastPrice("lbma", 2034.5)

	if got := testutil.ToFloat64(r.ticks.WithLabelValues("simulator")); got != 2 {
		t.Fatalf("simulator ticks=%v want 2", got)
	}
	if got := testutil.ToFloat64(r.ticks.WithLabelValues("clock")); got != 1 {
		t.Fatalf("clock ticks=%v want 1", got)
	}
	if got := testutil.ToFloat64(r.missingContainers.WithLabelValues("main_gold_chart")); got != 1 {
		t.Fatalf("missing=%v want 1", got)
	}
	if got := testutil.ToFloat64(r.sessions); got != 3 {
		t.Fatalf("sessions=%v want 3", got)
	}
	if got := testutil.ToFloat64(r.lastPrice.WithLabelValues("lbma")); got != 2034.5 {
		t.Fatalf("last price=%v", got)
	}
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	// registering twice on the same registry would panic
	_ = New(prometheus.NewRegistry())
	_ = New(prometheus.NewRegistry())
}
