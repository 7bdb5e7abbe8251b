package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initValidationMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfdcheck_validation_runs_total",
			Help: "Total number of validation runs by outcome",
		},
		[]string{"outcome"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pfdcheck_validation_duration_seconds",
			Help:    "Validation run duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"outcome"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pfdcheck_stage_duration_seconds",
			Help:    "Duration of each validation stage in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"stage"},
	)

	r.ResultsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfdcheck_results_total",
			Help: "Total number of feedback results by message key and severity",
		},
		[]string{"key", "severity"},
	)

	r.VerdictsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfdcheck_independence_verdicts_total",
			Help: "Total number of independence verdicts",
		},
		[]string{"verdict"},
	)

	r.EquationsChecked = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pfdcheck_equations_checked_total",
			Help: "Total number of equations passed to the semantics checker",
		},
	)
}
