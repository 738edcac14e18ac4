// FILE: autolog/src/internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the background pipeline. Drop counting answers the
// question the delivery semantics leave open: dropped entries are silent
// for callers but visible here.
type Metrics struct {
	Enqueued       prometheus.Counter
	Dropped        prometheus.Counter
	Processed      prometheus.Counter
	DispatchErrors prometheus.Counter
	RateLimited    prometheus.Counter
	QueueDepth     prometheus.Gauge
}

// New creates the pipeline collectors on the given registerer. A nil
// registerer yields working but unregistered collectors, which keeps
// tests and metric-less hosts free of a registry dependency.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Enqueued: factory.NewCounter(prometheus.CounterOpts{
			Name: "autolog_entries_enqueued_total",
			Help: "Log entries accepted by the background queue.",
		}),
		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "autolog_entries_dropped_total",
			Help: "Log entries dropped because the queue was full or stopped.",
		}),
		Processed: factory.NewCounter(prometheus.CounterOpts{
			Name: "autolog_entries_processed_total",
			Help: "Log entries formatted and dispatched to a target.",
		}),
		DispatchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "autolog_dispatch_errors_total",
			Help: "Entries whose formatting or target dispatch failed.",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "autolog_entries_rate_limited_total",
			Help: "Entries dropped by a target rate limiter.",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "autolog_queue_depth",
			Help: "Entries currently waiting in the background queue.",
		}),
	}
}
