package semantics

import (
	"strconv"
	"strings"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// termLength is the token count of Hf?? + Cp?? * T - 25 * m
const termLength = 9

// energyUnits requires heat labels to agree among themselves and chemical
// labels among themselves.
func (c *check) energyUnits() feedback.Result {
	var heat, chem []pfd.TableData
	for _, td := range c.labels() {
		if td.Kind == pfd.Heat {
			heat = append(heat, td)
		} else {
			chem = append(chem, td)
		}
	}
	if r := unitsAgree(c, heat); !r.IsEmpty() {
		return r
	}
	return unitsAgree(c, chem)
}

// isSumOfEnthalpies reports whether neither side is a single Q token
func (c *check) isSumOfEnthalpies() bool {
	toks := c.eq.Tokens
	if len(toks) < 2 {
		return false
	}
	return toks[1].Value != "=" && toks[len(toks)-2].Value != "="
}

// enthalpyEqualsQ validates "Q = sum" and "sum = Q"
func (c *check) enthalpyEqualsQ() feedback.Result {
	toks := c.eq.Tokens
	if len(toks) <= 2 {
		return c.fail(feedback.InvalidHeatEquation)
	}

	var q, start, end int
	if toks[1].Value == "=" {
		q, start, end = 0, 2, len(toks)
	} else {
		if toks[len(toks)-2].Value != "=" {
			return c.fail(feedback.InvalidHeatEquation)
		}
		q, start, end = len(toks)-1, 0, len(toks)-2
	}

	if td, ok := c.lookup.Get(toks[q].Value); ok {
		if td.Kind != pfd.Heat {
			return c.fail(feedback.InvalidHeatEquation)
		}
	} else if !equations.IsNumber(toks[q].Value) {
		return c.fail(feedback.InvalidHeatEquation)
	}

	for i := start; ; {
		next, r := c.enthalpyTerm(i, end)
		if !r.IsEmpty() {
			return r
		}
		if next == end {
			return feedback.Empty
		}
		if op := toks[next].Value; op != "+" && op != "-" {
			return c.fail(feedback.InvalidHeatEquation)
		}
		i = next + 1
	}
}

// sumEqualsSum validates "sum = sum" with exactly one "="
func (c *check) sumEqualsSum() feedback.Result {
	toks := c.eq.Tokens
	equalsFound := false
	for i := 0; ; {
		next, r := c.enthalpyTerm(i, len(toks))
		if !r.IsEmpty() {
			return r
		}
		if next == len(toks) {
			if !equalsFound {
				return c.fail(feedback.InvalidHeatEquation)
			}
			return feedback.Empty
		}
		switch toks[next].Value {
		case "=":
			if equalsFound {
				return c.fail(feedback.InvalidHeatEquation)
			}
			equalsFound = true
		case "+", "-":
		default:
			return c.fail(feedback.InvalidHeatEquation)
		}
		i = next + 1
	}
}

// enthalpyTerm matches Hf<ab> + Cp<ab> * <T or number> - 25 * <label> at i,
// staying before end, and returns the index after it.
func (c *check) enthalpyTerm(i, end int) (int, feedback.Result) {
	if i+termLength > end {
		return i, c.fail(feedback.InvalidHeatEquation)
	}
	v := c.values[i : i+termLength]

	abbr, ok := constantAbbr(v[0], heatFormationPrefix)
	if !ok {
		return i, c.fail(feedback.InvalidHeatEquation)
	}
	// A row labelled like a constant, e.g. Hfzz, passes the name check
	comp, ok := c.catalog.ByAbbr(abbr)
	if !ok {
		return i, c.fail(feedback.IncorrectAbbrv, abbr)
	}
	if !comp.HasHeatFormation() {
		return i, c.fail(feedback.UnknownConstant)
	}
	if v[1] != "+" {
		return i, c.fail(feedback.InvalidHeatEquation)
	}

	cpAbbr, ok := constantAbbr(v[2], heatCapacityPrefix)
	if !ok {
		return i, c.fail(feedback.InvalidHeatEquation)
	}
	if cpAbbr != abbr {
		return i, c.fail(feedback.IncorrectAbbrv, cpAbbr)
	}
	if !comp.HasHeatCapacity() {
		return i, c.fail(feedback.UnknownConstant)
	}
	if v[3] != "*" {
		return i, c.fail(feedback.InvalidHeatEquation)
	}
	if !strings.HasPrefix(v[4], "T") && !equations.IsNumber(v[4]) {
		return i, c.fail(feedback.InvalidHeatEquation)
	}
	if v[5] != "-" || !isReferenceTemperature(v[6]) || v[7] != "*" {
		return i, c.fail(feedback.InvalidHeatEquation)
	}

	td, ok := c.lookup.Get(v[8])
	if !ok {
		return i, c.fail(feedback.InvalidHeatEquation)
	}
	if !sameCompound(td.Compound, comp.Name) {
		return i, c.fail(feedback.IncorrectAbbrv, abbr)
	}
	return i + termLength, feedback.Empty
}

// isReferenceTemperature accepts the integers 25 and 298 only
func isReferenceTemperature(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && (n == 25 || n == 298)
}
