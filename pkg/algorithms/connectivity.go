package algorithms

import (
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// IsConnected reports whether every non-temporary unit can reach every other
// one, following streams in either direction. Temporary units are neither
// counted nor traversed. An empty graph and a single isolated unit are
// connected.
func IsConnected(g *pfd.Graph) bool {
	return len(Stranded(g)) == 0
}

// Stranded returns the non-temporary units not reachable from the traversal
// seed, in unit order. The seed is the first non-temporary unit with an
// outgoing stream, or the first non-temporary unit if none has one.
func Stranded(g *pfd.Graph) []pfd.UnitID {
	seed, ok := connectivitySeed(g)
	if !ok {
		return nil
	}
	visited := reach(g, seed)

	var stranded []pfd.UnitID
	for i := range g.Units {
		u := &g.Units[i]
		if !u.IsTemporary() && !visited[u.ID] {
			stranded = append(stranded, u.ID)
		}
	}
	return stranded
}

// Components returns the weakly connected components of the non-temporary
// units. Components and their members follow unit order.
func Components(g *pfd.Graph) [][]pfd.UnitID {
	visited := make(map[pfd.UnitID]bool)
	var components [][]pfd.UnitID

	for i := range g.Units {
		u := &g.Units[i]
		if u.IsTemporary() || visited[u.ID] {
			continue
		}
		seen := reach(g, u.ID)
		component := make([]pfd.UnitID, 0, len(seen))
		for j := range g.Units {
			if id := g.Units[j].ID; seen[id] {
				component = append(component, id)
				visited[id] = true
			}
		}
		components = append(components, component)
	}
	return components
}

func connectivitySeed(g *pfd.Graph) (pfd.UnitID, bool) {
	var first pfd.UnitID
	found := false
	for i := range g.Units {
		u := &g.Units[i]
		if u.IsTemporary() {
			continue
		}
		if len(u.Outgoing) > 0 {
			return u.ID, true
		}
		if !found {
			first, found = u.ID, true
		}
	}
	return first, found
}

// reach marks every non-temporary unit reachable from start with an
// explicit stack.
func reach(g *pfd.Graph, start pfd.UnitID) map[pfd.UnitID]bool {
	visited := map[pfd.UnitID]bool{start: true}
	stack := []pfd.UnitID{start}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		u, ok := g.Unit(id)
		if !ok {
			continue
		}
		neighbors := make([]pfd.UnitID, 0, len(u.Incoming)+len(u.Outgoing))
		for _, sid := range u.Outgoing {
			if s, ok := g.Stream(sid); ok {
				neighbors = append(neighbors, s.Destination)
			}
		}
		for _, sid := range u.Incoming {
			if s, ok := g.Stream(sid); ok {
				neighbors = append(neighbors, s.Source)
			}
		}

		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			nu, ok := g.Unit(n)
			if !ok || nu.IsTemporary() {
				continue
			}
			visited[n] = true
			stack = append(stack, n)
		}
	}
	return visited
}
