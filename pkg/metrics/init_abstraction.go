package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAbstractionMetrics() {
	r.LatticeGraphs = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pfdcheck_lattice_graphs",
			Help:    "Number of graphs in each abstraction lattice",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000},
		},
	)

	r.LatticeLevels = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pfdcheck_lattice_levels",
			Help:    "Number of abstraction levels in each lattice",
			Buckets: []float64{1, 2, 4, 8, 16, 32},
		},
	)

	r.DisconnectedDiagrams = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pfdcheck_disconnected_diagrams_total",
			Help: "Total number of diagrams rejected as not connected",
		},
	)
}
