package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// RecordRun records a completed validation run with its duration
func (r *Registry) RecordRun(outcome string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(outcome).Inc()
	r.RunDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	r.LastRunTimestamp.SetToCurrentTime()
}

// RecordStage records how long one rule stage took
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordResult counts one feedback result
func (r *Registry) RecordResult(key, severity string) {
	r.ResultsTotal.WithLabelValues(key, severity).Inc()
}

// RecordVerdict counts one aggregate independence verdict
func (r *Registry) RecordVerdict(verdict string) {
	r.VerdictsTotal.WithLabelValues(verdict).Inc()
}

// RecordEquations counts equations handed to the semantics checker
func (r *Registry) RecordEquations(n int) {
	r.EquationsChecked.Add(float64(n))
}

// RecordLattice observes the size of one abstraction lattice
func (r *Registry) RecordLattice(graphs, levels int) {
	r.LatticeGraphs.Observe(float64(graphs))
	r.LatticeLevels.Observe(float64(levels))
}

// RecordDisconnected counts a diagram rejected by the connectivity check
func (r *Registry) RecordDisconnected() {
	r.DisconnectedDiagrams.Inc()
}

// SetCatalogSize sets the compound catalog gauge
func (r *Registry) SetCatalogSize(n int) {
	r.CatalogCompounds.Set(float64(n))
}

// WriteToTextfile writes every metric in the text exposition format, for
// node_exporter's textfile collector.
func (r *Registry) WriteToTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
