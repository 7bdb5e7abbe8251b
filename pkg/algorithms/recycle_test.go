package algorithms

import (
	"slices"
	"testing"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// TestRecycleLoops_Chain finds nothing in a once-through process
func TestRecycleLoops_Chain(t *testing.T) {
	d, _, _ := chainDiagram(t, 4)
	if loops := RecycleLoops(d.Graph()); len(loops) != 0 {
		t.Errorf("Expected no loops, got %v", loops)
	}
	if loops := RecycleLoops(&pfd.Graph{}); len(loops) != 0 {
		t.Errorf("Expected no loops in empty graph, got %v", loops)
	}
}

// TestRecycleLoops_ReactorSeparator finds the classic recycle and a self loop
func TestRecycleLoops_ReactorSeparator(t *testing.T) {
	d := pfd.NewDiagram()
	m := d.AddUnit("mixer", "M")
	r := d.AddUnit("reactor", "R")
	s := d.AddUnit("separator", "S")
	h := d.AddUnit("heat exchanger", "H")

	mustStream(t, d, pfd.Chemical, 0, m)
	mustStream(t, d, pfd.Chemical, m, r)
	mustStream(t, d, pfd.Chemical, r, s)
	mustStream(t, d, pfd.Chemical, s, m) // recycle
	mustStream(t, d, pfd.Chemical, s, h)
	mustStream(t, d, pfd.Chemical, h, h)
	mustStream(t, d, pfd.Chemical, h, 0)

	loops := RecycleLoops(d.Graph())
	if len(loops) != 2 {
		t.Fatalf("Expected 2 loops, got %v", loops)
	}
	if !slices.Equal(loops[0], []pfd.UnitID{m, r, s}) {
		t.Errorf("Expected recycle M R S, got %v", loops[0])
	}
	if !slices.Equal(loops[1], []pfd.UnitID{h}) {
		t.Errorf("Expected self loop on H, got %v", loops[1])
	}
}

// TestRecycleLoops_IgnoresTemporaryUnits does not close loops through
// dangling endpoints
func TestRecycleLoops_IgnoresTemporaryUnits(t *testing.T) {
	d := pfd.NewDiagram()
	a := d.AddUnit("mixer", "A")
	b := d.AddUnit("mixer", "B")
	tmp := d.AddTemporaryUnit()
	mustStream(t, d, pfd.Chemical, a, tmp)
	mustStream(t, d, pfd.Chemical, tmp, b)
	mustStream(t, d, pfd.Chemical, b, a)

	if loops := RecycleLoops(d.Graph()); len(loops) != 0 {
		t.Errorf("Expected no loops, got %v", loops)
	}
}
