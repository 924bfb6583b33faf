// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pool implements the slot allocator behind every resource handle.
//
// A Pool hands out 32-bit ids of the form (generation << 16) | index. Index 0
// is reserved so that the zero id is always invalid. The pool keeps one
// generation counter, bumped on every allocation, so an id that outlived its
// resource never matches the id of the slot's next occupant.
package pool

import (
	"errors"
	"fmt"
)

// Id layout.
const (
	IndexBits = 16
	IndexMask = 1<<IndexBits - 1
)

// ErrExhausted is returned by Alloc when no free slot remains.
var ErrExhausted = errors.New("pool: exhausted")

// Pool is a fixed-capacity free-list allocator. It never grows.
//
// Pool is not safe for concurrent use.
type Pool struct {
	size  int
	top   int
	gen   uint32
	free  []int
	debug bool
}

// New returns a pool with size slots, of which size-1 are usable because
// slot 0 is reserved. The free list holds indices size-1 .. 1 so that index
// 1 is handed out first. size is clamped to [2, 1<<16].
//
// With debug set, Free panics on double free.
func New(size int, debug bool) *Pool {
	size = Clamp(size)
	p := &Pool{
		size:  size,
		free:  make([]int, size-1),
		debug: debug,
	}
	for i := size - 1; i >= 1; i-- {
		p.free[p.top] = i
		p.top++
	}
	return p
}

// Clamp returns the slot count New uses for a requested size.
func Clamp(size int) int {
	return min(max(size, 2), IndexMask+1)
}

// Index returns the slot index encoded in id.
func Index(id uint32) int {
	return int(id & IndexMask)
}

// Generation returns the generation counter encoded in id.
func Generation(id uint32) uint32 {
	return id >> IndexBits
}

// Size returns the number of slots including the reserved slot 0.
func (p *Pool) Size() int { return p.size }

// Capacity returns the number of usable slots.
func (p *Pool) Capacity() int { return p.size - 1 }

// Available returns the number of free slots.
func (p *Pool) Available() int { return p.top }

// Alloc pops a free slot index, bumps the pool generation and returns the
// new id. The generation wraps after 1<<16 allocations.
func (p *Pool) Alloc() (uint32, error) {
	if p.top == 0 {
		return 0, ErrExhausted
	}
	p.top--
	index := p.free[p.top]
	p.gen = (p.gen + 1) & IndexMask
	return p.gen<<IndexBits | uint32(index), nil
}

// Free returns the slot of id to the free list.
//
// Ids with an out-of-range index are ignored. With debug enabled a slot
// already on the free list causes a panic; without it the free is dropped
// when the free list is already full.
func (p *Pool) Free(id uint32) {
	index := Index(id)
	if index == 0 || index >= p.size {
		return
	}
	if p.debug {
		for _, i := range p.free[:p.top] {
			if i == index {
				panic(fmt.Sprintf("pool: double free of slot %d", index))
			}
		}
	}
	if p.top == len(p.free) {
		return
	}
	p.free[p.top] = index
	p.top++
}
