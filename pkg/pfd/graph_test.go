package pfd

import "testing"

// TestBoundaryKey sorts and dedups table IDs
func TestBoundaryKey(t *testing.T) {
	b := Boundary{Incoming: sortedTables([]TableID{3, 1, 3}), Outgoing: sortedTables([]TableID{2})}
	if got := b.Key(); got != "in:1,3|out:2" {
		t.Errorf("Key() = %q", got)
	}
	if !b.Contains(3) || !b.Contains(2) || b.Contains(4) {
		t.Errorf("Contains mismatch for %v", b)
	}
	other := Boundary{Incoming: []TableID{1, 3}, Outgoing: []TableID{2}}
	if !b.Equal(other) {
		t.Errorf("expected %v to equal %v", b, other)
	}
}

// TestGraphBoundary reads tables around a unit
func TestGraphBoundary(t *testing.T) {
	d := NewDiagram()
	a := d.AddUnit("mixer", "A")
	s1, _ := d.AddStream(Chemical, 0, a)
	s2, _ := d.AddStream(Heat, 0, a)
	s3, _ := d.AddStream(Chemical, a, 0)

	g := d.Graph()
	b, err := g.Boundary(a)
	if err != nil {
		t.Fatalf("Boundary: %v", err)
	}
	t1, _ := d.TableOf(s1)
	t2, _ := d.TableOf(s2)
	t3, _ := d.TableOf(s3)
	want := Boundary{Incoming: sortedTables([]TableID{t1.ID, t2.ID}), Outgoing: []TableID{t3.ID}}
	if !b.Equal(want) {
		t.Errorf("Boundary = %v, want %v", b, want)
	}
	if _, err := g.Boundary(999); err == nil {
		t.Error("expected error for unknown unit")
	}
}

// TestGraphRemoveStream detaches both ends
func TestGraphRemoveStream(t *testing.T) {
	d := NewDiagram()
	a := d.AddUnit("mixer", "A")
	b := d.AddUnit("mixer", "B")
	s, _ := d.AddStream(Chemical, a, b)

	g := d.Graph()
	g.RemoveStream(s)
	ua, _ := g.Unit(a)
	ub, _ := g.Unit(b)
	if len(g.Streams) != 0 || len(ua.Outgoing) != 0 || len(ub.Incoming) != 0 {
		t.Errorf("stream not fully removed: %+v", g)
	}
	if _, ok := g.AbstractedUnit(); ok {
		t.Error("base graph has no abstracted unit")
	}
}
