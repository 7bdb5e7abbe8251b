// Package rules drives a validation run: it builds the name lookup and runs
// the table, process unit, equation and diagram rules in order.
package rules

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/algorithms"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/balance"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// Input is what every rule of one run sees. Rules may fill Analysis.
type Input struct {
	Diagram    *pfd.Diagram
	Equations  []*equations.Equation
	Lookup     *pfd.Lookup
	Duplicates []string
	Catalog    *chemistry.Catalog
	Options    algorithms.Options

	Analysis *balance.Analysis
}

// Rule is the interface that all validation stages implement
type Rule interface {
	// Check returns the feedback for in; an empty slice means the stage passed
	Check(ctx context.Context, in *Input) ([]feedback.Result, error)

	// Name returns a short name used in logs and metrics
	Name() string
}

// Report contains the results of one validation run
type Report struct {
	ID        uuid.UUID         `json:"id"`
	CheckedAt time.Time         `json:"checked_at"`
	Duration  time.Duration     `json:"duration"`
	Valid     bool              `json:"valid"` // True if no Error result was produced
	Results   []feedback.Result `json:"results"`

	// Analysis is set once the diagram rule has run
	Analysis *balance.Analysis `json:"-"`
}

// ByKey returns the results carrying key
func (r *Report) ByKey(key feedback.MessageKey) []feedback.Result {
	filtered := make([]feedback.Result, 0)
	for _, res := range r.Results {
		if res.Key == key {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// BySeverity returns results filtered by severity level
func (r *Report) BySeverity(severity feedback.Severity) []feedback.Result {
	filtered := make([]feedback.Result, 0)
	for _, res := range r.Results {
		if res.Severity == severity {
			filtered = append(filtered, res)
		}
	}
	return filtered
}
