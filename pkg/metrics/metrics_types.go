package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for validation runs
type Registry struct {
	// Validation Metrics
	RunsTotal        *prometheus.CounterVec
	RunDuration      *prometheus.HistogramVec
	StageDuration    *prometheus.HistogramVec
	ResultsTotal     *prometheus.CounterVec
	VerdictsTotal    *prometheus.CounterVec
	EquationsChecked prometheus.Counter

	// Abstraction Metrics
	LatticeGraphs        prometheus.Histogram
	LatticeLevels        prometheus.Histogram
	DisconnectedDiagrams prometheus.Counter

	// System Metrics
	CatalogCompounds prometheus.Gauge
	LastRunTimestamp prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initValidationMetrics()
	r.initAbstractionMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
