package rules

import (
	"context"
	"fmt"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/semantics"
)

// EquationRule checks the semantics of every valid equation that is not a
// variable definition. With no valid equation at all there is nothing to
// check and it reports Insuffcient_infomation.
type EquationRule struct{}

func (EquationRule) Name() string { return "equations" }

func (EquationRule) Check(ctx context.Context, in *Input) ([]feedback.Result, error) {
	checker := semantics.NewChecker(in.Lookup, in.Catalog)
	var results []feedback.Result
	foundValid := false

	for _, eq := range in.Equations {
		if !eq.IsValid() {
			continue
		}
		foundValid = true
		if eq.Type.Classification == equations.VariableDefinition {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := checker.CheckRule(eq)
		if err != nil {
			return nil, fmt.Errorf("equation %s: %w", eq.Ref, err)
		}
		if !r.IsEmpty() {
			results = append(results, r)
		}
	}

	if !foundValid {
		target := feedback.Diagram()
		if len(in.Equations) > 0 {
			target = feedback.Equation(in.Equations[0].Ref)
		}
		results = append(results, feedback.New(target, feedback.InsufficientInformation))
	}
	return results, nil
}
