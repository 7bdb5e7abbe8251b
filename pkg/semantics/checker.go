// Package semantics checks a single equation against the stream tables and
// the compound catalog: legal names, units, percent usage and the shape
// required by its classification.
package semantics

import (
	"strings"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

const (
	heatFormationPrefix = "Hf"
	heatCapacityPrefix  = "Cp"
)

// Checker validates equations against one diagram's tables
type Checker struct {
	lookup  *pfd.Lookup
	catalog *chemistry.Catalog
}

// NewChecker creates a checker. A nil catalog means the built-in one.
func NewChecker(lookup *pfd.Lookup, catalog *chemistry.Catalog) *Checker {
	if catalog == nil {
		catalog = chemistry.Default()
	}
	return &Checker{lookup: lookup, catalog: catalog}
}

// CheckRule returns the first problem found in eq, or feedback.Empty. The
// error is reserved for catalog inconsistencies.
func (c *Checker) CheckRule(eq *equations.Equation) (feedback.Result, error) {
	run := &check{Checker: c, eq: eq, names: eq.AllVariableNames(), values: eq.Values()}

	if r := run.validNames(); !r.IsEmpty() {
		return r, nil
	}

	switch eq.Type.Classification {
	case equations.Energy:
		if r := run.energyUnits(); !r.IsEmpty() {
			return r, nil
		}
		if run.isSumOfEnthalpies() {
			return run.sumEqualsSum(), nil
		}
		return run.enthalpyEqualsQ(), nil
	case equations.Total, equations.Compound, equations.Atom, equations.Specification, equations.VariableDefinition:
		if r := run.percentUsage(); !r.IsEmpty() {
			return r, nil
		}
		if r := run.sameUnits(); !r.IsEmpty() {
			return r, nil
		}
		return run.classification()
	default:
		return feedback.Empty, nil
	}
}

// check is the state of one CheckRule call
type check struct {
	*Checker
	eq     *equations.Equation
	names  []string
	values []string
}

func (c *check) fail(key feedback.MessageKey, args ...string) feedback.Result {
	return feedback.New(feedback.Equation(c.eq.Ref), key, args...)
}

// validNames flags every variable that is neither a heat constant of a known
// compound, a table label, nor a temperature reference.
func (c *check) validNames() feedback.Result {
	var invalid []string
	for _, n := range c.names {
		if c.isConstant(n) || c.lookup.Contains(n) || c.lookup.IsTemperature(n) {
			continue
		}
		invalid = append(invalid, n)
	}
	if len(invalid) > 0 {
		return c.fail(feedback.EquationVariableNotInTables, invalid...)
	}
	return feedback.Empty
}

// isConstant reports whether name is Hf?? or Cp?? for a catalog abbreviation
func (c *check) isConstant(name string) bool {
	abbr, ok := constantAbbr(name, heatFormationPrefix)
	if !ok {
		abbr, ok = constantAbbr(name, heatCapacityPrefix)
	}
	if !ok {
		return false
	}
	_, known := c.catalog.ByAbbr(abbr)
	return known
}

func constantAbbr(name, prefix string) (string, bool) {
	if len(name) != 4 || !strings.HasPrefix(name, prefix) {
		return "", false
	}
	return name[2:], true
}

// labels returns the names that are table labels, in equation order
func (c *check) labels() []pfd.TableData {
	out := make([]pfd.TableData, 0, len(c.names))
	for _, n := range c.names {
		if td, ok := c.lookup.Get(n); ok {
			out = append(out, td)
		}
	}
	return out
}

func sameCompound(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
