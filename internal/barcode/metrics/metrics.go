// Package metrics defines Prometheus metrics for the barcode module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AllocationsTotal   *prometheus.CounterVec
	PersistConflicts   prometheus.Counter
	AllocationDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		AllocationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanid_barcode_allocations_total",
			Help: "Barcode allocation attempts by result",
		}, []string{"result"}),
		PersistConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scanid_barcode_persist_conflicts_total",
			Help: "Unique-constraint conflicts hit while persisting allocated barcodes",
		}),
		AllocationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanid_barcode_allocation_duration_seconds",
			Help:    "End-to-end allocation latency including probing and persistence",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) ObserveAllocation(result string, seconds float64) {
	m.AllocationsTotal.WithLabelValues(result).Inc()
	m.AllocationDuration.Observe(seconds)
}

func (m *Metrics) IncrementPersistConflicts() {
	m.PersistConflicts.Inc()
}
