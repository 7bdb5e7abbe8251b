package pfd

import (
	"fmt"
	"strings"
)

// UnitKind distinguishes diagram units from synthetic ones
type UnitKind int

const (
	// Concrete units are drawn by the user
	Concrete UnitKind = iota
	// Abstracted units stand in for a merged cluster of concrete units
	Abstracted
	// Temporary units mark a dangling stream endpoint
	Temporary
)

func (k UnitKind) String() string {
	switch k {
	case Concrete:
		return "concrete"
	case Abstracted:
		return "abstracted"
	case Temporary:
		return "temporary"
	default:
		return fmt.Sprintf("UnitKind(%d)", int(k))
	}
}

// ProcessUnit is a node of the diagram. Incoming and Outgoing keep stream
// attachment order. Absorbed lists the concrete units merged into an
// abstracted unit.
type ProcessUnit struct {
	ID       UnitID
	Kind     UnitKind
	Type     string
	Label    string
	Incoming []StreamID
	Outgoing []StreamID
	Absorbed []UnitID
}

// IsTemporary reports whether u is a dangling-endpoint placeholder
func (u *ProcessUnit) IsTemporary() bool { return u.Kind == Temporary }

func (u *ProcessUnit) clone() ProcessUnit {
	c := *u
	c.Incoming = append([]StreamID(nil), u.Incoming...)
	c.Outgoing = append([]StreamID(nil), u.Outgoing...)
	c.Absorbed = append([]UnitID(nil), u.Absorbed...)
	return c
}

// StreamKind says what a stream carries
type StreamKind int

const (
	Chemical StreamKind = iota
	Heat
)

func (k StreamKind) String() string {
	switch k {
	case Chemical:
		return "chemical"
	case Heat:
		return "heat"
	default:
		return fmt.Sprintf("StreamKind(%d)", int(k))
	}
}

// ParseStreamKind accepts "chemical" and "heat"
func ParseStreamKind(s string) (StreamKind, error) {
	switch s {
	case "", "chemical":
		return Chemical, nil
	case "heat":
		return Heat, nil
	default:
		return Chemical, fmt.Errorf("pfd: unknown stream kind %q", s)
	}
}

// Stream is a directed edge between two units
type Stream struct {
	ID          StreamID
	Kind        StreamKind
	Source      UnitID
	Destination UnitID
	Table       TableID
}

// Row is one named quantity of a stream table. Units is "?" for a
// percentage row.
type Row struct {
	Label    string
	Compound string
	Quantity string
	Units    string
}

// UnsetUnits marks a row whose quantity is a percentage
const UnsetUnits = "?"

// IsOverall reports whether r is a total-flow row
func (r Row) IsOverall() bool {
	return strings.EqualFold(strings.TrimSpace(r.Compound), "overall")
}

// IsPercent reports whether the row's quantity is a share of the overall row
func (r Row) IsPercent() bool { return r.Units == UnsetUnits }

// Table is the data attached to a stream. A chemical table has one row per
// compound plus an overall row; a heat table has a single energy row.
type Table struct {
	ID               TableID
	Stream           StreamID
	Kind             StreamKind
	Temperature      string
	TemperatureUnits string
	Rows             []Row
}

// Overall returns the table's total-flow row
func (t *Table) Overall() (Row, bool) {
	for _, r := range t.Rows {
		if r.IsOverall() {
			return r, true
		}
	}
	return Row{}, false
}

// Parts returns the rows other than the total-flow row, in table order
func (t *Table) Parts() []Row {
	parts := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !r.IsOverall() {
			parts = append(parts, r)
		}
	}
	return parts
}

// Units is the unit of the overall row, or of the first row when the table
// has no overall row.
func (t *Table) Units() string {
	if o, ok := t.Overall(); ok {
		return o.Units
	}
	if len(t.Rows) > 0 {
		return t.Rows[0].Units
	}
	return ""
}
