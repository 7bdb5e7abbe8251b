// Package pfd models a process flow diagram: process units joined by directed
// chemical and heat streams, each stream owning a data table.
package pfd

import (
	"errors"
	"sync/atomic"
)

// UnitID identifies a process unit. Zero means no unit.
type UnitID uint64

// StreamID identifies a stream. Zero means no stream.
type StreamID uint64

// TableID identifies a stream's data table. Zero means no table.
type TableID uint64

var (
	ErrUnknownUnit   = errors.New("pfd: unknown unit")
	ErrUnknownStream = errors.New("pfd: unknown stream")
	ErrUnknownTable  = errors.New("pfd: unknown table")
)

// IDAllocator hands out increasing identifiers for one diagram
type IDAllocator struct {
	unit   atomic.Uint64
	stream atomic.Uint64
	table  atomic.Uint64
}

// NewIDAllocator creates an allocator whose first IDs are 1
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Clone returns an allocator that continues from a's counters without
// advancing them.
func (a *IDAllocator) Clone() *IDAllocator {
	c := &IDAllocator{}
	c.unit.Store(a.unit.Load())
	c.stream.Store(a.stream.Load())
	c.table.Store(a.table.Load())
	return c
}

func (a *IDAllocator) NextUnit() UnitID     { return UnitID(a.unit.Add(1)) }
func (a *IDAllocator) NextStream() StreamID { return StreamID(a.stream.Add(1)) }
func (a *IDAllocator) NextTable() TableID   { return TableID(a.table.Add(1)) }
