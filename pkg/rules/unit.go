package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// UnitClass selects the checks run for a process unit
type UnitClass int

const (
	// GenericUnit conserves every compound
	GenericUnit UnitClass = iota
	// ReactorUnit conserves atoms and needs molar units
	ReactorUnit
	// ExchangerUnit is a heat exchanger without utility: each stream passes
	// through unchanged except for its temperature
	ExchangerUnit
	// BoundaryUnit is a source or sink and is not balanced
	BoundaryUnit
)

// ClassifyUnit maps a unit type such as "Reactor" or
// "Heat Exchanger Without Utility" to its class.
func ClassifyUnit(unitType string) UnitClass {
	switch strings.Join(strings.Fields(strings.ToLower(unitType)), " ") {
	case "reactor":
		return ReactorUnit
	case "heat exchanger without utility":
		return ExchangerUnit
	case "source", "sink":
		return BoundaryUnit
	default:
		return GenericUnit
	}
}

// molarUnits are the overall units a reactor accepts
var molarUnits = map[string]bool{
	"mol":              true,
	"mol/s":            true,
	"mol/sec":          true,
	"moles":            true,
	"moles per second": true,
}

// ProcessUnitRule checks the balance across every concrete unit and reports
// at most one result per unit.
type ProcessUnitRule struct{}

func (ProcessUnitRule) Name() string { return "units" }

func (ProcessUnitRule) Check(ctx context.Context, in *Input) ([]feedback.Result, error) {
	var results []feedback.Result
	g := in.Diagram.Graph()
	for i := range g.Units {
		u := &g.Units[i]
		if u.Kind != pfd.Concrete {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			r   feedback.Result
			err error
		)
		switch ClassifyUnit(u.Type) {
		case BoundaryUnit:
			continue
		case ExchangerUnit:
			r, err = checkExchanger(in, u)
		default:
			r, err = checkBalance(in, u)
		}
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", u.Label, err)
		}
		if !r.IsEmpty() {
			results = append(results, r)
		}
	}
	return results, nil
}

// checkBalance runs the material balance checks in order and stops at the
// first failure. Reactors skip the overall flow check since moles are not
// conserved by a reaction, and balance elements instead of compounds.
func checkBalance(in *Input, u *pfd.ProcessUnit) (feedback.Result, error) {
	incoming, err := chemicalTables(in.Diagram, u.Incoming)
	if err != nil {
		return feedback.Empty, err
	}
	outgoing, err := chemicalTables(in.Diagram, u.Outgoing)
	if err != nil {
		return feedback.Empty, err
	}
	all := append(append([]*pfd.Table(nil), incoming...), outgoing...)
	target := feedback.Unit(u.Label)
	reactor := ClassifyUnit(u.Type) == ReactorUnit

	if reactor {
		for _, t := range all {
			if !molarUnits[strings.ToLower(t.Units())] {
				return feedback.New(target, feedback.NotInMoles), nil
			}
		}
	} else if !balances(overallFlow(incoming), overallFlow(outgoing)) {
		return feedback.New(target, feedback.OverallFlowrateMismatch), nil
	}

	if !sameUnits(all) {
		return feedback.New(target, feedback.OverallUnitsMismatch), nil
	}

	var inSpecies, outSpecies *tally
	if reactor {
		inSpecies, outSpecies = elementTally(incoming, in.Catalog), elementTally(outgoing, in.Catalog)
	} else {
		inSpecies, outSpecies = compoundTally(incoming), compoundTally(outgoing)
	}

	if missing := inSpecies.missingFrom(outSpecies); len(missing) > 0 {
		return feedback.New(target, feedback.MissingIncomingCompounds, missing...), nil
	}
	if missing := outSpecies.missingFrom(inSpecies); len(missing) > 0 {
		return feedback.New(target, feedback.MissingOutgoingCompounds, missing...), nil
	}
	if names := unbalanced(inSpecies, outSpecies); len(names) > 0 {
		return feedback.New(target, feedback.IndividualFlowrateMismatch, names...), nil
	}
	return feedback.Empty, nil
}

// sameUnits reports whether every table with known units uses the same ones
func sameUnits(tables []*pfd.Table) bool {
	first := ""
	for _, t := range tables {
		u := t.Units()
		if u == "" || u == pfd.UnsetUnits {
			continue
		}
		if first == "" {
			first = u
		} else if u != first {
			return false
		}
	}
	return true
}
