package pfd

import (
	"fmt"
	"slices"
)

// Diagram owns the base topology, the stream tables and the ID allocator
// of one problem. It is not safe for concurrent mutation; take a Graph
// snapshot to share it.
type Diagram struct {
	alloc  *IDAllocator
	graph  Graph
	tables map[TableID]*Table
	order  []TableID
}

// NewDiagram creates an empty diagram with its own allocator
func NewDiagram() *Diagram {
	return &Diagram{
		alloc:  NewIDAllocator(),
		tables: make(map[TableID]*Table),
	}
}

// Allocator hands out the diagram's IDs. The abstraction engine takes a Clone
// so synthetic units never collide with diagram units and the diagram's
// counters stay put.
func (d *Diagram) Allocator() *IDAllocator { return d.alloc }

// Graph returns a deep copy of the base topology
func (d *Diagram) Graph() *Graph { return d.graph.Clone() }

// AddUnit adds a concrete unit of the given type
func (d *Diagram) AddUnit(unitType, label string) UnitID {
	id := d.alloc.NextUnit()
	d.graph.Units = append(d.graph.Units, ProcessUnit{
		ID:    id,
		Kind:  Concrete,
		Type:  unitType,
		Label: label,
	})
	return id
}

// AddTemporaryUnit adds a placeholder for a dangling stream end
func (d *Diagram) AddTemporaryUnit() UnitID {
	id := d.alloc.NextUnit()
	d.graph.Units = append(d.graph.Units, ProcessUnit{ID: id, Kind: Temporary, Type: "temporary"})
	return id
}

// AddStream connects from to to and creates the stream's empty table. A zero
// endpoint is replaced by a new temporary unit.
func (d *Diagram) AddStream(kind StreamKind, from, to UnitID) (StreamID, error) {
	for _, id := range []UnitID{from, to} {
		if id == 0 {
			continue
		}
		if _, ok := d.graph.Unit(id); !ok {
			return 0, fmt.Errorf("%w: %d", ErrUnknownUnit, id)
		}
	}
	if from == 0 {
		from = d.AddTemporaryUnit()
	}
	if to == 0 {
		to = d.AddTemporaryUnit()
	}

	sid := d.alloc.NextStream()
	tid := d.alloc.NextTable()
	d.graph.Streams = append(d.graph.Streams, Stream{
		ID:          sid,
		Kind:        kind,
		Source:      from,
		Destination: to,
		Table:       tid,
	})
	src, _ := d.graph.Unit(from)
	src.Outgoing = append(src.Outgoing, sid)
	dst, _ := d.graph.Unit(to)
	dst.Incoming = append(dst.Incoming, sid)

	d.tables[tid] = &Table{ID: tid, Stream: sid, Kind: kind}
	d.order = append(d.order, tid)
	return sid, nil
}

// AddRow appends a row to the stream's table
func (d *Diagram) AddRow(stream StreamID, row Row) error {
	t, err := d.TableOf(stream)
	if err != nil {
		return err
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// SetTemperature sets the table temperature. A symbolic value such as "T1"
// declares a temperature variable.
func (d *Diagram) SetTemperature(stream StreamID, temperature, units string) error {
	t, err := d.TableOf(stream)
	if err != nil {
		return err
	}
	t.Temperature = temperature
	t.TemperatureUnits = units
	return nil
}

// RemoveStream deletes a stream, its table, and any temporary unit left
// without streams.
func (d *Diagram) RemoveStream(id StreamID) error {
	s, ok := d.graph.Stream(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStream, id)
	}
	src, dst, tid := s.Source, s.Destination, s.Table
	d.graph.RemoveStream(id)

	delete(d.tables, tid)
	d.order = removeID(d.order, tid)

	for _, uid := range []UnitID{src, dst} {
		u, ok := d.graph.Unit(uid)
		if ok && u.IsTemporary() && len(u.Incoming) == 0 && len(u.Outgoing) == 0 {
			d.graph.RemoveUnit(uid)
		}
	}
	return nil
}

// Unit returns a copy of a unit
func (d *Diagram) Unit(id UnitID) (ProcessUnit, bool) {
	u, ok := d.graph.Unit(id)
	if !ok {
		return ProcessUnit{}, false
	}
	return u.clone(), true
}

// Stream returns a copy of a stream
func (d *Diagram) Stream(id StreamID) (Stream, bool) {
	s, ok := d.graph.Stream(id)
	if !ok {
		return Stream{}, false
	}
	return *s, true
}

// Table returns the table with the given ID
func (d *Diagram) Table(id TableID) (*Table, bool) {
	t, ok := d.tables[id]
	return t, ok
}

// TableOf returns the table owned by stream
func (d *Diagram) TableOf(stream StreamID) (*Table, error) {
	s, ok := d.graph.Stream(stream)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStream, stream)
	}
	t, ok := d.tables[s.Table]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTable, s.Table)
	}
	return t, nil
}

// Tables returns every table in creation order
func (d *Diagram) Tables() []*Table {
	out := make([]*Table, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.tables[id])
	}
	return out
}

// UnitByLabel finds the first unit with the given label
func (d *Diagram) UnitByLabel(label string) (UnitID, bool) {
	i := slices.IndexFunc(d.graph.Units, func(u ProcessUnit) bool { return u.Label == label })
	if i < 0 {
		return 0, false
	}
	return d.graph.Units[i].ID, true
}

// UnitLabels maps unit IDs to labels, skipping unknown IDs
func (d *Diagram) UnitLabels(ids []UnitID) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if u, ok := d.graph.Unit(id); ok {
			labels = append(labels, u.Label)
		}
	}
	return labels
}

// TableLabels names tables by their first row label, or by "#ID" when the
// table is unknown or empty.
func (d *Diagram) TableLabels(ids []TableID) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := d.tables[id]; ok && len(t.Rows) > 0 {
			labels = append(labels, t.Rows[0].Label)
			continue
		}
		labels = append(labels, fmt.Sprintf("#%d", id))
	}
	return labels
}
