package rules

import (
	"math"
	"strconv"
	"strings"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/pfd"
)

const (
	// flowTolerance absorbs rounding in balances across a unit
	flowTolerance = 1e-4
	// sumTolerance is how far the parts of a table may miss its overall row
	sumTolerance = 0.1
)

// flow is a running total of stream quantities. Adding an unknown quantity
// opens it: the known part is then a lower bound on the real total.
type flow struct {
	known float64
	open  bool
}

func (f *flow) add(v float64, ok bool) {
	if !ok {
		f.open = true
		return
	}
	f.known += v
}

// balances reports whether what enters a unit can equal what leaves it
func balances(in, out flow) bool {
	switch {
	case in.open && out.open:
		return true
	case out.open:
		return out.known <= in.known+flowTolerance
	case in.open:
		return in.known <= out.known+flowTolerance
	default:
		return math.Abs(in.known-out.known) < flowTolerance
	}
}

// quantity parses a table cell; "?" and symbols are unknown
func quantity(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// rowAmount resolves a row to an amount, turning percentages into a share
// of the table's overall row.
func rowAmount(t *pfd.Table, r pfd.Row) (float64, bool) {
	v, ok := quantity(r.Quantity)
	if !ok || !r.IsPercent() {
		return v, ok
	}
	o, found := t.Overall()
	if !found {
		return 0, false
	}
	total, ok := quantity(o.Quantity)
	if !ok {
		return 0, false
	}
	return v / 100 * total, true
}

// overallFlow sums the overall rows of tables. A table without one counts
// as the sum of its rows.
func overallFlow(tables []*pfd.Table) flow {
	var f flow
	for _, t := range tables {
		if o, ok := t.Overall(); ok {
			f.add(quantity(o.Quantity))
			continue
		}
		for _, r := range t.Rows {
			f.add(rowAmount(t, r))
		}
	}
	return f
}

// tally holds one flow per species in first-seen order
type tally struct {
	names []string
	flows map[string]*flow
}

func newTally() *tally {
	return &tally{flows: make(map[string]*flow)}
}

func (t *tally) at(name string) *flow {
	f, ok := t.flows[name]
	if !ok {
		f = &flow{}
		t.flows[name] = f
		t.names = append(t.names, name)
	}
	return f
}

// missingFrom lists the species of t that other never mentions
func (t *tally) missingFrom(other *tally) []string {
	var missing []string
	for _, name := range t.names {
		if _, ok := other.flows[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// unbalanced lists the species whose flows in t and out cannot match.
// Species missing on either side are reported by missingFrom instead.
func unbalanced(in, out *tally) []string {
	var names []string
	for _, name := range in.names {
		o, ok := out.flows[name]
		if ok && !balances(*in.flows[name], *o) {
			names = append(names, name)
		}
	}
	return names
}

func compoundKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// compoundTally sums every compound row of tables by compound
func compoundTally(tables []*pfd.Table) *tally {
	tl := newTally()
	for _, t := range tables {
		for _, r := range t.Parts() {
			if compoundKey(r.Compound) == "" {
				continue
			}
			tl.at(compoundKey(r.Compound)).add(rowAmount(t, r))
		}
	}
	return tl
}

// elementTally sums atoms by element. A compound missing from the catalog
// is counted as a species of its own.
func elementTally(tables []*pfd.Table, catalog *chemistry.Catalog) *tally {
	tl := newTally()
	for _, t := range tables {
		for _, r := range t.Parts() {
			name := compoundKey(r.Compound)
			if name == "" {
				continue
			}
			amount, known := rowAmount(t, r)

			c, ok := catalog.ByName(name)
			if !ok {
				tl.at(name).add(amount, known)
				continue
			}
			for _, e := range c.ElementNames() {
				tl.at(e).add(amount*float64(c.Elements[e]), known)
			}
		}
	}
	return tl
}

// chemicalTables returns the tables of the chemical streams among ids
func chemicalTables(d *pfd.Diagram, ids []pfd.StreamID) ([]*pfd.Table, error) {
	tables, err := streamTables(d, ids)
	if err != nil {
		return nil, err
	}
	chemical := tables[:0]
	for _, t := range tables {
		if t.Kind == pfd.Chemical {
			chemical = append(chemical, t)
		}
	}
	return chemical, nil
}

func streamTables(d *pfd.Diagram, ids []pfd.StreamID) ([]*pfd.Table, error) {
	tables := make([]*pfd.Table, 0, len(ids))
	for _, id := range ids {
		t, err := d.TableOf(id)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
