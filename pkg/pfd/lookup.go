package pfd

import (
	"slices"
	"strconv"
	"strings"
)

// TableData is what a variable name resolves to: one table row together
// with its owning table and stream.
type TableData struct {
	Label       string
	Compound    string
	Units       string
	Quantity    string
	Temperature string
	Kind        StreamKind
	Table       TableID
	Stream      StreamID
}

// IsOverall reports whether the row is a table's total-flow row
func (td TableData) IsOverall() bool {
	return Row{Compound: td.Compound}.IsOverall()
}

// Lookup maps variable names to table rows
type Lookup struct {
	rows  map[string]TableData
	temps map[string]TableID
}

// BuildLookup scans every table row of d. The second result lists labels
// that occur more than once; the first occurrence is kept.
func BuildLookup(d *Diagram) (*Lookup, []string) {
	l := &Lookup{
		rows:  make(map[string]TableData),
		temps: make(map[string]TableID),
	}
	var duplicates []string

	for _, t := range d.Tables() {
		for _, r := range t.Rows {
			if _, dup := l.rows[r.Label]; dup {
				if !slices.Contains(duplicates, r.Label) {
					duplicates = append(duplicates, r.Label)
				}
				continue
			}
			l.rows[r.Label] = TableData{
				Label:       r.Label,
				Compound:    r.Compound,
				Units:       r.Units,
				Quantity:    r.Quantity,
				Temperature: t.Temperature,
				Kind:        t.Kind,
				Table:       t.ID,
				Stream:      t.Stream,
			}
		}
		if isSymbol(t.Temperature) {
			if _, ok := l.temps[t.Temperature]; !ok {
				l.temps[t.Temperature] = t.ID
			}
		}
	}
	return l, duplicates
}

func (l *Lookup) Get(name string) (TableData, bool) {
	td, ok := l.rows[name]
	return td, ok
}

func (l *Lookup) Contains(name string) bool {
	_, ok := l.rows[name]
	return ok
}

// IsTemperature reports whether name refers to a stream temperature: either a
// declared symbolic temperature or "T" followed by a table label.
func (l *Lookup) IsTemperature(name string) bool {
	if _, ok := l.temps[name]; ok {
		return true
	}
	rest, ok := strings.CutPrefix(name, "T")
	return ok && l.Contains(rest)
}

// Names returns every label in sorted order
func (l *Lookup) Names() []string {
	names := make([]string, 0, len(l.rows))
	for n := range l.rows {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (l *Lookup) Len() int { return len(l.rows) }

func isSymbol(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || s == UnsetUnits {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err != nil
}
