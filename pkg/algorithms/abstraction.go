package algorithms

import (
	"fmt"
	"slices"
	"sort"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// Options tunes CreateAbstractedPFD
type Options struct {
	// DownstreamOnly grows clusters only along outgoing streams. By default
	// upstream neighbours are absorbed too, after downstream ones. That adds
	// graphs to each level and can change which subgraph an equation is
	// matched to first, and so the verdict detail reported for it.
	DownstreamOnly bool
	Logger         logging.Logger
}

// Lattice holds the abstracted graphs by level. Level 0 is the base graph;
// each graph at level k >= 1 has one abstracted unit that absorbed k
// concrete units. No two graphs of a level share a boundary.
type Lattice struct {
	levels     map[int][]*pfd.Graph
	boundaries map[*pfd.Graph]pfd.Boundary
}

// Levels returns the non-empty levels in ascending order
func (l *Lattice) Levels() []int {
	levels := make([]int, 0, len(l.levels))
	for k := range l.levels {
		levels = append(levels, k)
	}
	sort.Ints(levels)
	return levels
}

// Graphs returns the graphs of a level in construction order
func (l *Lattice) Graphs(level int) []*pfd.Graph {
	return l.levels[level]
}

// Boundary returns the abstracted unit's boundary of a level >= 1 graph
func (l *Lattice) Boundary(g *pfd.Graph) (pfd.Boundary, bool) {
	b, ok := l.boundaries[g]
	return b, ok
}

// Len counts every graph including the base graph
func (l *Lattice) Len() int {
	n := 0
	for _, gs := range l.levels {
		n += len(gs)
	}
	return n
}

// Signature maps each abstracted level to its sorted boundary keys. Equal
// signatures mean structurally equal lattices.
func (l *Lattice) Signature() map[int][]string {
	sig := make(map[int][]string, len(l.levels))
	for k, gs := range l.levels {
		if k == 0 {
			continue
		}
		keys := make([]string, 0, len(gs))
		for _, g := range gs {
			keys = append(keys, l.boundaries[g].Key())
		}
		sort.Strings(keys)
		sig[k] = keys
	}
	return sig
}

// GraphSummary describes one abstracted graph
type GraphSummary struct {
	Level    int
	Absorbed []pfd.UnitID
	Boundary pfd.Boundary
}

// Summaries lists every abstracted graph by level, then construction order
func (l *Lattice) Summaries() []GraphSummary {
	var out []GraphSummary
	for _, level := range l.Levels() {
		if level == 0 {
			continue
		}
		for _, g := range l.levels[level] {
			a, _ := g.AbstractedUnit()
			out = append(out, GraphSummary{
				Level:    level,
				Absorbed: slices.Clone(a.Absorbed),
				Boundary: l.boundaries[g],
			})
		}
	}
	return out
}

// CreateAbstractedPFD builds the abstraction lattice of base. Abstracted
// unit IDs come from alloc. base is not modified.
func CreateAbstractedPFD(base *pfd.Graph, alloc *pfd.IDAllocator, opts Options) (*Lattice, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	l := &Lattice{
		levels:     make(map[int][]*pfd.Graph),
		boundaries: make(map[*pfd.Graph]pfd.Boundary),
	}
	if len(base.Units) == 0 {
		return l, nil
	}
	l.levels[0] = []*pfd.Graph{base.Clone()}

	current, err := l.seedLevel(base, alloc)
	if err != nil {
		return nil, err
	}

	for level := 1; len(current) > 0; level++ {
		l.levels[level] = current
		logger.Debug("abstraction level built",
			logging.AbstractionLevel(level), logging.Count(len(current)))

		next := make([]*pfd.Graph, 0)
		seen := make(map[string]bool)
		for _, g := range current {
			a, _ := g.AbstractedUnit()
			for _, cand := range candidates(g, a, opts.DownstreamOnly) {
				merged := g.Clone()
				if err := absorb(merged, a.ID, cand); err != nil {
					return nil, err
				}
				b, err := l.record(merged)
				if err != nil {
					return nil, err
				}
				if seen[b.Key()] {
					delete(l.boundaries, merged)
					continue
				}
				seen[b.Key()] = true
				next = append(next, merged)
			}
		}
		current = next
	}
	return l, nil
}

// seedLevel replaces each concrete unit of base in turn with a fresh
// abstracted unit.
func (l *Lattice) seedLevel(base *pfd.Graph, alloc *pfd.IDAllocator) ([]*pfd.Graph, error) {
	var out []*pfd.Graph
	for i := range base.Units {
		u := &base.Units[i]
		if u.Kind != pfd.Concrete {
			continue
		}
		g := base.Clone()
		a := pfd.ProcessUnit{
			ID:    alloc.NextUnit(),
			Kind:  pfd.Abstracted,
			Type:  "abstracted",
			Label: u.Label,
		}
		g.Units = append(g.Units, a)
		if err := absorb(g, a.ID, u.ID); err != nil {
			return nil, err
		}
		if _, err := l.record(g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (l *Lattice) record(g *pfd.Graph) (pfd.Boundary, error) {
	a, ok := g.AbstractedUnit()
	if !ok {
		return pfd.Boundary{}, fmt.Errorf("%w: graph has no abstracted unit", pfd.ErrUnknownUnit)
	}
	b, err := g.Boundary(a.ID)
	if err != nil {
		return pfd.Boundary{}, err
	}
	l.boundaries[g] = b
	return b, nil
}

// candidates lists the concrete neighbours of a: destinations of its
// outgoing streams, then sources of its incoming streams.
func candidates(g *pfd.Graph, a *pfd.ProcessUnit, downstreamOnly bool) []pfd.UnitID {
	var out []pfd.UnitID
	add := func(id pfd.UnitID) {
		u, ok := g.Unit(id)
		if ok && u.Kind == pfd.Concrete && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	for _, sid := range a.Outgoing {
		if s, ok := g.Stream(sid); ok {
			add(s.Destination)
		}
	}
	if !downstreamOnly {
		for _, sid := range a.Incoming {
			if s, ok := g.Stream(sid); ok {
				add(s.Source)
			}
		}
	}
	return out
}

// absorb merges unit into the abstracted unit aid. Streams between the two
// become interior and are removed from the graph.
func absorb(g *pfd.Graph, aid, unit pfd.UnitID) error {
	u, ok := g.Unit(unit)
	if !ok {
		return fmt.Errorf("%w: %d", pfd.ErrUnknownUnit, unit)
	}
	incoming := slices.Clone(u.Incoming)
	outgoing := slices.Clone(u.Outgoing)

	for _, sid := range incoming {
		s, ok := g.Stream(sid)
		if !ok {
			continue
		}
		if s.Source == aid || s.Source == unit {
			g.RemoveStream(sid)
			continue
		}
		s.Destination = aid
		a, _ := g.Unit(aid)
		a.Incoming = append(a.Incoming, sid)
	}
	for _, sid := range outgoing {
		s, ok := g.Stream(sid)
		if !ok {
			continue
		}
		if s.Destination == aid {
			g.RemoveStream(sid)
			continue
		}
		s.Source = aid
		a, _ := g.Unit(aid)
		a.Outgoing = append(a.Outgoing, sid)
	}

	a, ok := g.Unit(aid)
	if !ok {
		return fmt.Errorf("%w: %d", pfd.ErrUnknownUnit, aid)
	}
	a.Absorbed = append(a.Absorbed, unit)
	g.RemoveUnit(unit)
	return nil
}
