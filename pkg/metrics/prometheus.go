package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RecordsReconciled  prometheus.Counter
	RecordsCreated     prometheus.Counter
	TracerPushes       prometheus.Counter
	TracerPushFailures prometheus.Counter
	LookupMisses       prometheus.Counter
	SweepDuration      prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RecordsReconciled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_reconciled_total",
			Help:      "The total number of record updates applied through the reconciler",
		}),
		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "The total number of baggage records created",
		}),
		TracerPushes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracer_pushes_total",
			Help:      "The total number of updates pushed to the global tracer",
		}),
		TracerPushFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracer_push_failures_total",
			Help:      "The total number of failed tracer pushes (best-effort, not retried by default)",
		}),
		LookupMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_misses_total",
			Help:      "The total number of passenger lookups that fell back to the browse list",
		}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "urgent_sweep_duration_seconds",
			Help:      "Time taken by one urgent-record reconciliation sweep",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
