package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for a host.
type metrics struct {
	editsApplied  prometheus.Counter
	streamsTotal  *prometheus.CounterVec
	applyDuration prometheus.Histogram
	triggersSent  *prometheus.CounterVec
	activeConns   prometheus.Gauge
	writeErrors   prometheus.Counter
}

func newMetrics(namespace string, reg prometheus.Registerer) *metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &metrics{
		editsApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_applied_total",
			Help:      "Total number of edit instructions applied",
		}),

		streamsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "streams_total",
			Help:      "Total number of edit streams processed",
		}, []string{"status"}),

		applyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "apply_duration_seconds",
			Help:      "Edit stream application duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		triggersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triggers_total",
			Help:      "Total number of triggers delivered to consumers",
		}, []string{"category"}),

		activeConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Number of live document connections",
		}),

		writeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_errors_total",
			Help:      "Total number of frame write errors",
		}),
	}
}
