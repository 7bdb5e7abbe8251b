package semantics

import (
	"strings"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// percentUsage requires every percentage row to appear as
// "<label> / 100 * <label or number>".
func (c *check) percentUsage() feedback.Result {
	toks := c.eq.Tokens
	for i, tok := range toks {
		if tok.Kind != equations.Variable {
			continue
		}
		td, ok := c.lookup.Get(tok.Value)
		if !ok || td.Units != pfd.UnsetUnits {
			continue
		}
		if i+4 >= len(toks) ||
			toks[i+1].Value != "/" ||
			toks[i+2].Value != "100" ||
			toks[i+3].Value != "*" ||
			!(c.lookup.Contains(toks[i+4].Value) || equations.IsNumber(toks[i+4].Value)) {
			return c.fail(feedback.IncorrectUseOfPercent)
		}
	}
	return feedback.Empty
}

// sameUnits requires every label with known units to share them
func (c *check) sameUnits() feedback.Result {
	return unitsAgree(c, c.labels())
}

func unitsAgree(c *check, rows []pfd.TableData) feedback.Result {
	units := ""
	for _, td := range rows {
		if td.Units == pfd.UnsetUnits || td.Units == "" {
			continue
		}
		if units == "" {
			units = td.Units
			continue
		}
		if td.Units != units {
			return c.fail(feedback.InconsistantUnits, units, td.Units)
		}
	}
	return feedback.Empty
}

// classification checks the labels against the equation's declared type
func (c *check) classification() (feedback.Result, error) {
	rows := c.labels()
	target := c.eq.Type.Target

	switch c.eq.Type.Classification {
	case equations.Total:
		for _, td := range rows {
			if !td.IsOverall() {
				return c.fail(feedback.NotOverall), nil
			}
		}
	case equations.Compound:
		used := false
		for _, td := range rows {
			switch {
			case sameCompound(td.Compound, target):
				used = true
			case !td.IsOverall():
				return c.fail(feedback.MoreThanOneCompound, target, td.Compound), nil
			}
		}
		if !used {
			return c.fail(feedback.CompoundNotUsed), nil
		}
	case equations.Atom:
		element := elementName(target)
		for _, td := range rows {
			if td.IsOverall() {
				continue
			}
			comp, err := c.catalog.Lookup(td.Compound)
			if err != nil {
				return feedback.Empty, err
			}
			if !comp.Contains(element) {
				return c.fail(feedback.MoreThanOneElement, element, td.Label), nil
			}
		}
	case equations.Energy, equations.VariableDefinition, equations.Specification:
	}
	return feedback.Empty, nil
}

// elementName accepts "carbon" as well as "Carbon (C)"
func elementName(target string) string {
	name, _, _ := strings.Cut(target, "(")
	return strings.ToLower(strings.TrimSpace(name))
}
