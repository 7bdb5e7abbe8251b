package rules

import (
	"context"
	"math"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// TableRule checks every chemical table on its own, then reports labels used
// by more than one table row.
type TableRule struct{}

func (TableRule) Name() string { return "tables" }

func (TableRule) Check(ctx context.Context, in *Input) ([]feedback.Result, error) {
	var results []feedback.Result
	for _, t := range in.Diagram.Tables() {
		if t.Kind != pfd.Chemical || len(t.Rows) < 2 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		target := feedback.Table(t.Rows[0].Label)
		if a, b, ok := inconsistentUnits(t); ok {
			results = append(results, feedback.New(target, feedback.InconsistantUnits, a, b))
		}
		if !partsAddUp(t) {
			results = append(results, feedback.New(target, feedback.SumDoesNotEqualTotalQuantity))
		}
	}

	if len(in.Duplicates) > 0 {
		results = append(results,
			feedback.New(feedback.Table(in.Duplicates[0]), feedback.NonUniqueNames, in.Duplicates...))
	}
	return results, nil
}

// inconsistentUnits returns the first two units that may not appear in the
// same table. Compound rows share one unit; it matches the overall row
// unless the compound rows are percentages.
func inconsistentUnits(t *pfd.Table) (string, string, bool) {
	parts := t.Parts()
	if len(parts) == 0 {
		return "", "", false
	}
	first := parts[0].Units
	if o, ok := t.Overall(); ok && !parts[0].IsPercent() && o.Units != first {
		return o.Units, first, true
	}
	for _, p := range parts[1:] {
		if p.Units != first {
			return first, p.Units, true
		}
	}
	return "", "", false
}

// partsAddUp checks the compound rows against the overall row, or against
// 100 when they are percentages. Unknown rows may make up any shortfall.
func partsAddUp(t *pfd.Table) bool {
	o, ok := t.Overall()
	parts := t.Parts()
	if !ok || len(parts) == 0 {
		return true
	}

	total := 100.0
	if !parts[0].IsPercent() {
		v, known := quantity(o.Quantity)
		if !known {
			return true
		}
		total = v
	}

	var sum flow
	for _, p := range parts {
		sum.add(quantity(p.Quantity))
	}
	if sum.open {
		return sum.known <= total+sumTolerance
	}
	return math.Abs(sum.known-total) < sumTolerance
}
