// Package balance binds balance equations to the abstracted subgraphs they
// describe and counts whether each subgraph has the right number of them.
package balance

import (
	"errors"
	"fmt"
	"slices"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/algorithms"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/equations"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

var (
	ErrUnresolvedVariable = errors.New("no variable on one side names a table row")
	ErrNoMatchingBoundary = errors.New("no abstracted boundary carries both streams")
	ErrStructureMismatch  = errors.New("equation does not cover the boundary")
)

// MatchError reports the equation that could not be bound to a subgraph
type MatchError struct {
	Equation string
	Reason   error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("balance: equation %s: %v", e.Equation, e.Reason)
}

func (e *MatchError) Unwrap() error { return e.Reason }

// Matches maps subgraphs to the equations written for them, in the order
// the subgraphs were first matched.
type Matches struct {
	graphs     []*pfd.Graph
	equations  map[*pfd.Graph][]*equations.Equation
	levels     map[*pfd.Graph]int
	boundaries map[*pfd.Graph]pfd.Boundary
}

func newMatches() *Matches {
	return &Matches{
		equations:  make(map[*pfd.Graph][]*equations.Equation),
		levels:     make(map[*pfd.Graph]int),
		boundaries: make(map[*pfd.Graph]pfd.Boundary),
	}
}

func (m *Matches) add(g *pfd.Graph, level int, b pfd.Boundary, eq *equations.Equation) {
	if _, ok := m.equations[g]; !ok {
		m.graphs = append(m.graphs, g)
		m.levels[g] = level
		m.boundaries[g] = b
	}
	m.equations[g] = append(m.equations[g], eq)
}

func (m *Matches) Graphs() []*pfd.Graph                        { return m.graphs }
func (m *Matches) Equations(g *pfd.Graph) []*equations.Equation { return m.equations[g] }
func (m *Matches) Level(g *pfd.Graph) int                       { return m.levels[g] }
func (m *Matches) Boundary(g *pfd.Graph) pfd.Boundary           { return m.boundaries[g] }
func (m *Matches) Len() int                                     { return len(m.graphs) }

// Balanced reports whether an equation states a balance over a subgraph.
// Definitions and specifications relate variables of a single stream.
func Balanced(eq *equations.Equation) bool {
	switch eq.Type.Classification {
	case equations.Total, equations.Compound, equations.Atom, equations.Energy:
		return eq.IsValid()
	case equations.VariableDefinition, equations.Specification:
		return false
	default:
		return false
	}
}

// MatchEquationsToAbstractedGraphs binds every balance equation to the first
// subgraph, by ascending level then construction order, whose abstracted
// unit carries the streams of the first resolvable variable on each side.
// Total balances must also use exactly the streams of the boundary.
func MatchEquationsToAbstractedGraphs(eqs []*equations.Equation, lattice *algorithms.Lattice, lookup *pfd.Lookup) (*Matches, error) {
	m := newMatches()
	for _, eq := range eqs {
		if !Balanced(eq) {
			continue
		}
		lhs, rhs := eq.VariableNames()
		left, okL := firstResolved(lhs, lookup)
		right, okR := firstResolved(rhs, lookup)
		if !okL || !okR {
			return nil, &MatchError{Equation: eq.Ref, Reason: ErrUnresolvedVariable}
		}

		g, level, b, found := findGraph(lattice, left.Table, right.Table)
		if !found {
			return nil, &MatchError{Equation: eq.Ref, Reason: ErrNoMatchingBoundary}
		}
		if eq.Type.Classification == equations.Total {
			if err := checkTotal(g, left.Table, lhs, rhs, lookup); err != nil {
				return nil, &MatchError{Equation: eq.Ref, Reason: err}
			}
		}
		m.add(g, level, b, eq)
	}
	return m, nil
}

func firstResolved(names []string, lookup *pfd.Lookup) (pfd.TableData, bool) {
	for _, n := range names {
		if td, ok := lookup.Get(n); ok {
			return td, true
		}
	}
	return pfd.TableData{}, false
}

func findGraph(lattice *algorithms.Lattice, t1, t2 pfd.TableID) (*pfd.Graph, int, pfd.Boundary, bool) {
	for _, level := range lattice.Levels() {
		if level == 0 {
			continue
		}
		for _, g := range lattice.Graphs(level) {
			b, ok := lattice.Boundary(g)
			if ok && b.Contains(t1) && b.Contains(t2) {
				return g, level, b, true
			}
		}
	}
	return nil, 0, pfd.Boundary{}, false
}

// checkTotal requires each side of a total balance to name exactly the
// non-heat streams on one side of the boundary.
func checkTotal(g *pfd.Graph, first pfd.TableID, lhs, rhs []string, lookup *pfd.Lookup) error {
	a, ok := g.AbstractedUnit()
	if !ok {
		return fmt.Errorf("%w: graph has no abstracted unit", pfd.ErrUnknownUnit)
	}
	in, out := a.Incoming, a.Outgoing
	if slices.ContainsFunc(out, func(sid pfd.StreamID) bool {
		s, ok := g.Stream(sid)
		return ok && s.Table == first
	}) {
		in, out = out, in
	}
	if !coversSide(g, lhs, in, lookup) || !coversSide(g, rhs, out, lookup) {
		return ErrStructureMismatch
	}
	return nil
}

func coversSide(g *pfd.Graph, names []string, side []pfd.StreamID, lookup *pfd.Lookup) bool {
	used := make(map[pfd.TableID]bool)
	tables := make(map[pfd.TableID]pfd.StreamKind, len(side))
	for _, sid := range side {
		if s, ok := g.Stream(sid); ok {
			tables[s.Table] = s.Kind
		}
	}

	for _, n := range names {
		td, ok := lookup.Get(n)
		if !ok {
			return false
		}
		if _, onSide := tables[td.Table]; !onSide {
			return false
		}
		used[td.Table] = true
	}
	for t, kind := range tables {
		if kind != pfd.Heat && !used[t] {
			return false
		}
	}
	return true
}
