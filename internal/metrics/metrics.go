package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "video_splitter"

type SplitMetrics struct {
	accepted prometheus.Counter
	rejected *prometheus.CounterVec
	finished *prometheus.CounterVec
	duration prometheus.Histogram
	inFlight prometheus.Gauge
}

func NewSplitMetrics(reg prometheus.Registerer) *SplitMetrics {
	m := &SplitMetrics{
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_jobs_accepted_total",
			Help:      "Split requests accepted and handed to the worker pool.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_jobs_rejected_total",
			Help:      "Split requests rejected before a job started.",
		}, []string{"reason"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_jobs_finished_total",
			Help:      "Split jobs that left the worker pool, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "split_job_duration_seconds",
			Help:      "Wall time of split jobs on the worker.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "split_jobs_in_flight",
			Help:      "Split jobs accepted but not yet finished.",
		}),
	}
	reg.MustRegister(m.accepted, m.rejected, m.finished, m.duration, m.inFlight)
	return m
}

func (m *SplitMetrics) JobAccepted() {
	m.accepted.Inc()
	m.inFlight.Inc()
}

func (m *SplitMetrics) JobRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *SplitMetrics) JobFinished(outcome string, elapsed time.Duration) {
	m.finished.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.inFlight.Dec()
}
