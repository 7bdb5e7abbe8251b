package pfd

import (
	"fmt"
	"slices"
)

// Graph is a snapshot of units and streams. Snapshots are values: Clone
// before mutating one that is shared.
type Graph struct {
	Units   []ProcessUnit
	Streams []Stream
}

// Clone deep-copies the graph including every ID slice
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Units:   make([]ProcessUnit, len(g.Units)),
		Streams: slices.Clone(g.Streams),
	}
	for i := range g.Units {
		c.Units[i] = g.Units[i].clone()
	}
	return c
}

// Unit returns a pointer into g.Units, valid until the slice changes
func (g *Graph) Unit(id UnitID) (*ProcessUnit, bool) {
	for i := range g.Units {
		if g.Units[i].ID == id {
			return &g.Units[i], true
		}
	}
	return nil, false
}

// Stream returns a pointer into g.Streams, valid until the slice changes
func (g *Graph) Stream(id StreamID) (*Stream, bool) {
	for i := range g.Streams {
		if g.Streams[i].ID == id {
			return &g.Streams[i], true
		}
	}
	return nil, false
}

// MustStream is Stream for IDs taken from the graph's own units
func (g *Graph) MustStream(id StreamID) (*Stream, error) {
	s, ok := g.Stream(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStream, id)
	}
	return s, nil
}

// RemoveUnit drops a unit without touching its streams
func (g *Graph) RemoveUnit(id UnitID) {
	g.Units = slices.DeleteFunc(g.Units, func(u ProcessUnit) bool { return u.ID == id })
}

// RemoveStream drops a stream and detaches it from both endpoints
func (g *Graph) RemoveStream(id StreamID) {
	s, ok := g.Stream(id)
	if !ok {
		return
	}
	if u, ok := g.Unit(s.Source); ok {
		u.Outgoing = removeID(u.Outgoing, id)
	}
	if u, ok := g.Unit(s.Destination); ok {
		u.Incoming = removeID(u.Incoming, id)
	}
	g.Streams = slices.DeleteFunc(g.Streams, func(s Stream) bool { return s.ID == id })
}

// AbstractedUnit returns the graph's abstracted unit. Graphs above level 0
// hold exactly one.
func (g *Graph) AbstractedUnit() (*ProcessUnit, bool) {
	for i := range g.Units {
		if g.Units[i].Kind == Abstracted {
			return &g.Units[i], true
		}
	}
	return nil, false
}

// Boundary returns the tables of the streams entering and leaving unit
func (g *Graph) Boundary(unit UnitID) (Boundary, error) {
	u, ok := g.Unit(unit)
	if !ok {
		return Boundary{}, fmt.Errorf("%w: %d", ErrUnknownUnit, unit)
	}
	in, err := g.tablesOf(u.Incoming)
	if err != nil {
		return Boundary{}, err
	}
	out, err := g.tablesOf(u.Outgoing)
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{Incoming: sortedTables(in), Outgoing: sortedTables(out)}, nil
}

func (g *Graph) tablesOf(ids []StreamID) ([]TableID, error) {
	tables := make([]TableID, 0, len(ids))
	for _, id := range ids {
		s, err := g.MustStream(id)
		if err != nil {
			return nil, err
		}
		tables = append(tables, s.Table)
	}
	return tables, nil
}

// ConcreteUnits counts the units that are neither temporary nor abstracted
func (g *Graph) ConcreteUnits() int {
	n := 0
	for i := range g.Units {
		if g.Units[i].Kind == Concrete {
			n++
		}
	}
	return n
}

func removeID[T comparable](ids []T, id T) []T {
	return slices.DeleteFunc(ids, func(x T) bool { return x == id })
}
