package algorithms

import (
	"fmt"
	"testing"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// chainDiagram builds feed -> U1 -> U2 -> ... -> Un -> product
func chainDiagram(t testing.TB, n int) (*pfd.Diagram, []pfd.UnitID, []pfd.StreamID) {
	t.Helper()
	d := pfd.NewDiagram()
	units := make([]pfd.UnitID, n)
	for i := range units {
		units[i] = d.AddUnit("mixer", fmt.Sprintf("U%d", i+1))
	}
	var links []pfd.StreamID
	if n > 0 {
		mustStream(t, d, pfd.Chemical, 0, units[0])
	}
	for i := 0; i+1 < n; i++ {
		links = append(links, mustStream(t, d, pfd.Chemical, units[i], units[i+1]))
	}
	if n > 0 {
		mustStream(t, d, pfd.Chemical, units[n-1], 0)
	}
	return d, units, links
}

// diamondDiagram builds feed -> A, A -> B, A -> C, B -> D, C -> D, D -> product
func diamondDiagram(t testing.TB) *pfd.Diagram {
	t.Helper()
	d := pfd.NewDiagram()
	a := d.AddUnit("separator", "A")
	b := d.AddUnit("heater", "B")
	c := d.AddUnit("cooler", "C")
	dd := d.AddUnit("mixer", "D")
	mustStream(t, d, pfd.Chemical, 0, a)
	mustStream(t, d, pfd.Chemical, a, b)
	mustStream(t, d, pfd.Chemical, a, c)
	mustStream(t, d, pfd.Chemical, b, dd)
	mustStream(t, d, pfd.Chemical, c, dd)
	mustStream(t, d, pfd.Chemical, dd, 0)
	return d
}

func mustStream(t testing.TB, d *pfd.Diagram, kind pfd.StreamKind, from, to pfd.UnitID) pfd.StreamID {
	t.Helper()
	s, err := d.AddStream(kind, from, to)
	if err != nil {
		t.Fatalf("AddStream: %v", err)
	}
	return s
}
