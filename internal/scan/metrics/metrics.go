package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the scan module.
type Metrics struct {
	// Resolution outcomes by outcome tag and scan context
	ResolutionOutcome *prometheus.CounterVec

	// Lookup round-trip latency
	LookupLatency prometheus.Histogram

	// Full resolve latency including lookup, history and audit
	ResolveLatency prometheus.Histogram
}

// New creates a new Metrics instance with all scan module metrics registered.
func New() *Metrics {
	return &Metrics{
		ResolutionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanid_scan_resolution_outcomes_total",
			Help: "Total scan resolution outcomes by outcome and scan context",
		}, []string{"outcome", "context"}), // outcome: "exact", "multiple", "notFound"

		LookupLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanid_scan_lookup_duration_seconds",
			Help:    "Duration of catalog lookup round trips",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		ResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanid_scan_resolve_duration_seconds",
			Help:    "Duration of full scan resolution including lookup and history",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementOutcome records a resolution outcome.
func (m *Metrics) IncrementOutcome(outcome, scanContext string) {
	if m != nil {
		m.ResolutionOutcome.WithLabelValues(outcome, scanContext).Inc()
	}
}

// ObserveLookupLatency records the duration of one catalog lookup.
func (m *Metrics) ObserveLookupLatency(d time.Duration) {
	if m != nil {
		m.LookupLatency.Observe(d.Seconds())
	}
}

// ObserveResolveLatency records the total resolution duration.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}
