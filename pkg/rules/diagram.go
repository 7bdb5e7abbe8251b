package rules

import (
	"context"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/balance"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
)

// DiagramRule checks the valid equations against the diagram's structure and
// leaves the analysis in Input.Analysis.
type DiagramRule struct{}

func (DiagramRule) Name() string { return "diagram" }

func (DiagramRule) Check(_ context.Context, in *Input) ([]feedback.Result, error) {
	valid := make([]*equations.Equation, 0, len(in.Equations))
	for _, eq := range in.Equations {
		if eq.IsValid() {
			valid = append(valid, eq)
		}
	}

	an, err := balance.Analyze(valid, in.Diagram, in.Lookup, in.Catalog, in.Options)
	if err != nil {
		return nil, err
	}
	in.Analysis = an
	return []feedback.Result{an.Result}, nil
}
