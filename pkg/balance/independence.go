package balance

import (
	"fmt"
	"slices"
	"strings"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// Verdict compares the equations of a subgraph with its species
type Verdict int

const (
	Missing        Verdict = -1
	Solvable       Verdict = 0
	NotIndependent Verdict = 1
)

func (v Verdict) String() string {
	switch v {
	case Missing:
		return "missing"
	case Solvable:
		return "solvable"
	case NotIndependent:
		return "not independent"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Key is the feedback key reported for the verdict
func (v Verdict) Key() feedback.MessageKey {
	switch v {
	case Missing:
		return feedback.MissingEquation
	case NotIndependent:
		return feedback.NotIndependent
	default:
		return feedback.Solvable
	}
}

// worse orders verdicts: NotIndependent, then Missing, then Solvable
func (v Verdict) worse(o Verdict) bool {
	rank := func(x Verdict) int {
		switch x {
		case NotIndependent:
			return 2
		case Missing:
			return 1
		default:
			return 0
		}
	}
	return rank(v) > rank(o)
}

// HeatSpecies is the species name counted once for any heat stream
const HeatSpecies = "Heat"

// SubgraphVerdict is the count for one matched boundary
type SubgraphVerdict struct {
	Level     int
	Boundary  pfd.Boundary
	Equations int
	Elements  bool
	Species   []string
	Verdict   Verdict
}

// TableSource resolves table IDs; *pfd.Diagram implements it
type TableSource interface {
	Table(id pfd.TableID) (*pfd.Table, bool)
}

// AreEquationsIndependent counts species for every matched subgraph and
// returns the worst verdict. A subgraph with an atom balance counts
// elements; otherwise it counts compounds.
func AreEquationsIndependent(m *Matches, tables TableSource, catalog *chemistry.Catalog) (Verdict, []SubgraphVerdict, error) {
	aggregate := Solvable
	verdicts := make([]SubgraphVerdict, 0, m.Len())

	for _, g := range m.Graphs() {
		eqs := m.Equations(g)
		useElements := slices.ContainsFunc(eqs, func(eq *equations.Equation) bool {
			return eq.Type.Classification == equations.Atom
		})
		species, err := countSpecies(g, tables, catalog, useElements)
		if err != nil {
			return Solvable, nil, err
		}

		v := Solvable
		switch {
		case len(eqs) > len(species):
			v = NotIndependent
		case len(eqs) < len(species):
			v = Missing
		}
		if v.worse(aggregate) {
			aggregate = v
		}
		verdicts = append(verdicts, SubgraphVerdict{
			Level:     m.Level(g),
			Boundary:  m.Boundary(g),
			Equations: len(eqs),
			Elements:  useElements,
			Species:   species,
			Verdict:   v,
		})
	}
	return aggregate, verdicts, nil
}

// countSpecies lists the distinct compounds, or their elements, on the
// incoming chemical streams of the abstracted unit, plus Heat when a heat
// stream crosses the boundary in either direction.
func countSpecies(g *pfd.Graph, tables TableSource, catalog *chemistry.Catalog, useElements bool) ([]string, error) {
	a, ok := g.AbstractedUnit()
	if !ok {
		return nil, fmt.Errorf("%w: graph has no abstracted unit", pfd.ErrUnknownUnit)
	}

	var species []string
	add := func(name string) {
		if !slices.Contains(species, name) {
			species = append(species, name)
		}
	}

	heat := false
	for _, sid := range a.Outgoing {
		if s, ok := g.Stream(sid); ok && s.Kind == pfd.Heat {
			heat = true
		}
	}

	for _, sid := range a.Incoming {
		s, err := g.MustStream(sid)
		if err != nil {
			return nil, err
		}
		if s.Kind == pfd.Heat {
			heat = true
			continue
		}
		t, ok := tables.Table(s.Table)
		if !ok {
			return nil, fmt.Errorf("%w: %d", pfd.ErrUnknownTable, s.Table)
		}
		for _, row := range t.Rows {
			compound := strings.ToLower(strings.TrimSpace(row.Compound))
			if compound == "" || chemistry.IsOverall(compound) {
				continue
			}
			if !useElements {
				add(compound)
				continue
			}
			c, err := catalog.Lookup(compound)
			if err != nil {
				return nil, err
			}
			for _, e := range c.ElementNames() {
				add(e)
			}
		}
	}

	if heat {
		add(HeatSpecies)
	}
	return species, nil
}
