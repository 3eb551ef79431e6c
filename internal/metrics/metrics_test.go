package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSplitMetrics(t *testing.T) {
	m := NewSplitMetrics(prometheus.NewRegistry())

	m.JobAccepted()
	m.JobAccepted()
	m.JobRejected("saturated")
	m.JobFinished("ready", 3*time.Second)

	if got := testutil.ToFloat64(m.accepted); got != 2 {
		t.Fatalf("accepted = %v", got)
	}
	if got := testutil.ToFloat64(m.inFlight); got != 1 {
		t.Fatalf("in flight = %v", got)
	}
	if got := testutil.ToFloat64(m.rejected.WithLabelValues("saturated")); got != 1 {
		t.Fatalf("rejected = %v", got)
	}
	if got := testutil.ToFloat64(m.finished.WithLabelValues("ready")); got != 1 {
		t.Fatalf("finished = %v", got)
	}
}
