package algorithms

import (
	"slices"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

// tarjanState holds per-unit state during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// RecycleLoops finds groups of units that feed each other, using Tarjan's
// strongly connected components over the stream direction. A loop is a
// component of two or more units, or one unit with a stream back to itself.
// Temporary units never take part. Members follow unit order, and loops are
// ordered by their first member.
func RecycleLoops(g *pfd.Graph) [][]pfd.UnitID {
	order := make(map[pfd.UnitID]int, len(g.Units))
	for i := range g.Units {
		order[g.Units[i].ID] = i
	}

	state := make(map[pfd.UnitID]*tarjanState, len(g.Units))
	var stack []pfd.UnitID
	indexCounter := 0
	var loops [][]pfd.UnitID

	var strongconnect func(u *pfd.ProcessUnit)
	strongconnect = func(u *pfd.ProcessUnit) {
		state[u.ID] = &tarjanState{index: indexCounter, lowlink: indexCounter, onStack: true}
		indexCounter++
		stack = append(stack, u.ID)

		selfLoop := false
		for _, sid := range u.Outgoing {
			s, ok := g.Stream(sid)
			if !ok {
				continue
			}
			if s.Destination == u.ID {
				selfLoop = true
				continue
			}
			v, ok := g.Unit(s.Destination)
			if !ok || v.IsTemporary() {
				continue
			}
			if _, seen := state[v.ID]; !seen {
				strongconnect(v)
				state[u.ID].lowlink = min(state[u.ID].lowlink, state[v.ID].lowlink)
			} else if state[v.ID].onStack {
				state[u.ID].lowlink = min(state[u.ID].lowlink, state[v.ID].index)
			}
		}

		// u is the root of a component: pop it
		if state[u.ID].lowlink != state[u.ID].index {
			return
		}
		var members []pfd.UnitID
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			state[w].onStack = false
			members = append(members, w)
			if w == u.ID {
				break
			}
		}
		if len(members) > 1 || selfLoop {
			slices.SortFunc(members, func(a, b pfd.UnitID) int { return order[a] - order[b] })
			loops = append(loops, members)
		}
	}

	for i := range g.Units {
		u := &g.Units[i]
		if _, seen := state[u.ID]; !seen && !u.IsTemporary() {
			strongconnect(u)
		}
	}

	slices.SortFunc(loops, func(a, b []pfd.UnitID) int { return order[a[0]] - order[b[0]] })
	return loops
}
