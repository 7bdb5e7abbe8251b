package algorithms

import (
	"testing"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// TestIsConnected_EmptyGraph treats an empty graph as connected
func TestIsConnected_EmptyGraph(t *testing.T) {
	if !IsConnected(&pfd.Graph{}) {
		t.Error("empty graph should be connected")
	}
}

// TestIsConnected_SingleIsolatedUnit treats a lone unit as connected
func TestIsConnected_SingleIsolatedUnit(t *testing.T) {
	d := pfd.NewDiagram()
	d.AddUnit("mixer", "A")
	if !IsConnected(d.Graph()) {
		t.Error("single isolated unit should be connected")
	}
}

// TestIsConnected_TwoIsolatedUnits is not connected
func TestIsConnected_TwoIsolatedUnits(t *testing.T) {
	d := pfd.NewDiagram()
	d.AddUnit("mixer", "A")
	b := d.AddUnit("mixer", "B")

	g := d.Graph()
	if IsConnected(g) {
		t.Error("two isolated units should not be connected")
	}
	if s := Stranded(g); len(s) != 1 || s[0] != b {
		t.Errorf("Stranded = %v, want [%d]", s, b)
	}
}

// TestIsConnected_IgnoresTemporaryUnits does not count dangling endpoints
func TestIsConnected_IgnoresTemporaryUnits(t *testing.T) {
	d, _, _ := chainDiagram(t, 3)
	if !IsConnected(d.Graph()) {
		t.Error("chain with dangling feed and product should be connected")
	}
}

// TestIsConnected_TemporaryDoesNotBridge keeps two units sharing only a
// temporary neighbour apart
func TestIsConnected_TemporaryDoesNotBridge(t *testing.T) {
	d := pfd.NewDiagram()
	a := d.AddUnit("mixer", "A")
	b := d.AddUnit("mixer", "B")
	tmp := d.AddTemporaryUnit()
	mustStream(t, d, pfd.Chemical, a, tmp)
	mustStream(t, d, pfd.Chemical, tmp, b)

	if IsConnected(d.Graph()) {
		t.Error("temporary unit must not connect A and B")
	}
}

// TestIsConnected_FollowsStreamsBackwards reaches upstream units from the seed
func TestIsConnected_FollowsStreamsBackwards(t *testing.T) {
	d := pfd.NewDiagram()
	a := d.AddUnit("mixer", "A")
	b := d.AddUnit("mixer", "B")
	c := d.AddUnit("mixer", "C")
	mustStream(t, d, pfd.Chemical, a, c)
	mustStream(t, d, pfd.Chemical, b, c)

	if !IsConnected(d.Graph()) {
		t.Error("B should be reached through C's incoming streams")
	}
}

// TestComponents groups units and keeps unit order
func TestComponents(t *testing.T) {
	d := pfd.NewDiagram()
	a := d.AddUnit("mixer", "A")
	b := d.AddUnit("mixer", "B")
	c := d.AddUnit("mixer", "C")
	mustStream(t, d, pfd.Chemical, a, c)
	mustStream(t, d, pfd.Heat, 0, b)

	comps := Components(d.Graph())
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %v", comps)
	}
	if len(comps[0]) != 2 || comps[0][0] != a || comps[0][1] != c {
		t.Errorf("first component = %v", comps[0])
	}
	if len(comps[1]) != 1 || comps[1][0] != b {
		t.Errorf("second component = %v", comps[1])
	}
}
