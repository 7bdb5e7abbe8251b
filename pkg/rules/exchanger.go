package rules

import (
	"strings"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

type streamPair struct {
	in, out *pfd.Table
}

// checkExchanger pairs every incoming stream with an outgoing stream of the
// same contents. With a hot and a cold pair, both outlets must lie strictly
// between the two inlet temperatures.
func checkExchanger(in *Input, u *pfd.ProcessUnit) (feedback.Result, error) {
	target := feedback.Unit(u.Label)
	if len(u.Incoming) != len(u.Outgoing) {
		return feedback.New(target, feedback.IncomingOutgoingStreamsMismatch), nil
	}
	incoming, err := streamTables(in.Diagram, u.Incoming)
	if err != nil {
		return feedback.Empty, err
	}
	outgoing, err := streamTables(in.Diagram, u.Outgoing)
	if err != nil {
		return feedback.Empty, err
	}

	pairs, ok := pairStreams(incoming, outgoing)
	if !ok {
		return feedback.New(target, feedback.IncomingOutgoingStreamsMismatch), nil
	}
	if len(pairs) == 2 && !outletsInRange(pairs[0], pairs[1]) {
		return feedback.New(target, feedback.IncorrectTemperature), nil
	}
	return feedback.Empty, nil
}

// pairStreams matches each incoming table with the first unused outgoing
// table carrying the same rows.
func pairStreams(incoming, outgoing []*pfd.Table) ([]streamPair, bool) {
	used := make([]bool, len(outgoing))
	pairs := make([]streamPair, 0, len(incoming))
	for _, it := range incoming {
		match := -1
		for j, ot := range outgoing {
			if !used[j] && sameContents(it, ot) {
				match = j
				break
			}
		}
		if match < 0 {
			return nil, false
		}
		used[match] = true
		pairs = append(pairs, streamPair{in: it, out: outgoing[match]})
	}
	return pairs, true
}

// sameContents compares two tables row by row, ignoring labels and the
// temperature value.
func sameContents(a, b *pfd.Table) bool {
	if a.Kind != b.Kind || a.TemperatureUnits != b.TemperatureUnits || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Rows {
		ra, rb := a.Rows[i], b.Rows[i]
		if ra.Quantity != rb.Quantity || ra.Units != rb.Units || !strings.EqualFold(ra.Compound, rb.Compound) {
			return false
		}
	}
	return true
}

// outletsInRange is true when any temperature is symbolic, since nothing
// can be said about it yet.
func outletsInRange(p, q streamPair) bool {
	temps := make([]float64, 0, 4)
	for _, t := range []*pfd.Table{p.in, q.in, p.out, q.out} {
		v, ok := quantity(t.Temperature)
		if !ok {
			return true
		}
		temps = append(temps, v)
	}
	pIn, qIn, pOut, qOut := temps[0], temps[1], temps[2], temps[3]

	lo, hi := min(pIn, qIn), max(pIn, qIn)
	return lo < pOut && pOut < hi && lo < qOut && qOut < hi
}
