// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "github.com/gogpu/gfx/internal/pool"

// Side is per-slot storage that runs parallel to a Table. Back-ends keep
// the native objects of a record in a Side entry at the record's slot
// index.
type Side[T any] struct {
	items []T
}

// NewSide returns storage for a table built with the same capacity.
func NewSide[T any](capacity int) *Side[T] {
	return &Side[T]{items: make([]T, pool.Clamp(capacity+1))}
}

// At returns the entry for id's slot, or nil when id is out of range.
func (s *Side[T]) At(id uint32) *T {
	index := pool.Index(id)
	if id == 0 || index >= len(s.items) {
		return nil
	}
	return &s.items[index]
}

// Clear zeroes the entry for id's slot.
func (s *Side[T]) Clear(id uint32) {
	if e := s.At(id); e != nil {
		var zero T
		*e = zero
	}
}

// Len returns the number of entries including the reserved slot 0.
func (s *Side[T]) Len() int { return len(s.items) }
