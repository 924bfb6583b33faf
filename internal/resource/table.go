// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package resource holds the fixed-capacity tables of resource records that
// back every handle kind.
package resource

import (
	"github.com/gogpu/gfx/internal/pool"
	"github.com/gogpu/gfx/types"
)

// Record is implemented by pointers to the record types of this package.
type Record[T any] interface {
	*T
	Header() *Slot
}

// Table is a fixed-capacity array of records indexed by pool slot.
//
// Records never move once the table is built, so pointers handed to
// back-ends stay valid for the table's lifetime. Callers outside the core
// only ever see ids.
type Table[T any, P Record[T]] struct {
	pool    *pool.Pool
	records []T
}

// NewTable returns a table for capacity live records.
func NewTable[T any, P Record[T]](capacity int, debug bool) *Table[T, P] {
	p := pool.New(capacity+1, debug)
	return &Table[T, P]{
		pool:    p,
		records: make([]T, p.Size()),
	}
}

// Capacity returns the number of records the table can hold.
func (t *Table[T, P]) Capacity() int { return t.pool.Capacity() }

// Available returns the number of free records.
func (t *Table[T, P]) Available() int { return t.pool.Available() }

// Alloc takes a free slot and marks its record Alloc. It returns
// pool.ErrExhausted when the table is full.
func (t *Table[T, P]) Alloc() (uint32, error) {
	id, err := t.pool.Alloc()
	if err != nil {
		return 0, err
	}
	h := P(&t.records[pool.Index(id)]).Header()
	h.ID = id
	h.State = types.StateAlloc
	return id, nil
}

// Lookup returns the record for id in any non-free state, or nil when id
// is zero or stale.
func (t *Table[T, P]) Lookup(id uint32) P {
	if id == types.InvalidID {
		return nil
	}
	index := pool.Index(id)
	if index >= len(t.records) {
		return nil
	}
	r := P(&t.records[index])
	if r.Header().ID != id {
		return nil
	}
	return r
}

// Resolve returns the record for id only when it is Valid.
func (t *Table[T, P]) Resolve(id uint32) P {
	r := t.Lookup(id)
	if r == nil || r.Header().State != types.StateValid {
		return nil
	}
	return r
}

// State returns the state of id. Zero and stale ids report StateInvalid.
func (t *Table[T, P]) State(id uint32) types.ResourceState {
	r := t.Lookup(id)
	if r == nil {
		return types.StateInvalid
	}
	return r.Header().State
}

// Free zeroes the record of id and returns its slot to the pool. It
// reports false when id does not name a live record.
func (t *Table[T, P]) Free(id uint32) bool {
	r := t.Lookup(id)
	if r == nil {
		return false
	}
	var zero T
	*r = zero
	t.pool.Free(id)
	return true
}

// Each calls fn for every record that is not free, in slot order.
func (t *Table[T, P]) Each(fn func(P)) {
	for i := 1; i < len(t.records); i++ {
		r := P(&t.records[i])
		if r.Header().State != types.StateInitial {
			fn(r)
		}
	}
}

// Sizes are the capacities of the five resource tables.
type Sizes struct {
	Buffers   int
	Images    int
	Shaders   int
	Pipelines int
	Passes    int
}

// Total returns the sum of all capacities.
func (s Sizes) Total() int {
	return s.Buffers + s.Images + s.Shaders + s.Pipelines + s.Passes
}

// Tables groups the resource tables of one context.
type Tables struct {
	Buffers   *Table[Buffer, *Buffer]
	Images    *Table[Image, *Image]
	Shaders   *Table[Shader, *Shader]
	Pipelines *Table[Pipeline, *Pipeline]
	Passes    *Table[Pass, *Pass]
}

// NewTables builds all tables.
func NewTables(sizes Sizes, debug bool) *Tables {
	return &Tables{
		Buffers:   NewTable[Buffer](sizes.Buffers, debug),
		Images:    NewTable[Image](sizes.Images, debug),
		Shaders:   NewTable[Shader](sizes.Shaders, debug),
		Pipelines: NewTable[Pipeline](sizes.Pipelines, debug),
		Passes:    NewTable[Pass](sizes.Passes, debug),
	}
}
