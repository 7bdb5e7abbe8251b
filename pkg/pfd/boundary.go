package pfd

import (
	"slices"
	"strconv"
	"strings"
)

// Boundary is the set of tables crossing an abstracted unit, split by
// direction. Both slices are sorted and free of duplicates.
type Boundary struct {
	Incoming []TableID
	Outgoing []TableID
}

// Key is a canonical string form; equal boundaries have equal keys
func (b Boundary) Key() string {
	var sb strings.Builder
	sb.WriteString("in:")
	writeIDs(&sb, b.Incoming)
	sb.WriteString("|out:")
	writeIDs(&sb, b.Outgoing)
	return sb.String()
}

func (b Boundary) Equal(o Boundary) bool {
	return slices.Equal(b.Incoming, o.Incoming) && slices.Equal(b.Outgoing, o.Outgoing)
}

// Contains reports whether t crosses the boundary in either direction
func (b Boundary) Contains(t TableID) bool {
	_, in := slices.BinarySearch(b.Incoming, t)
	_, out := slices.BinarySearch(b.Outgoing, t)
	return in || out
}

func writeIDs(sb *strings.Builder, ids []TableID) {
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
}

func sortedTables(ids []TableID) []TableID {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
