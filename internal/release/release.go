// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package release defers destruction of native GPU objects until no
// in-flight frame can still reference them.
//
// Native objects live in a side table addressed by small integer slots.
// Releasing a slot only enqueues (frame, slot); Collect destroys queued
// objects once enough frames have been submitted since their release.
// The current frame index is always passed in by the caller.
package release

import "fmt"

// NumInflight is the default number of frames the GPU may lag behind the
// CPU.
const NumInflight = 2

type entry struct {
	frame uint64
	slot  int
}

// Queue is a side table of native objects plus a frame-ordered circular
// release queue.
//
// Queue is not safe for concurrent use.
type Queue[T any] struct {
	numInflight uint64
	destroy     func(T)

	objects []T
	used    []bool
	free    []int

	entries []entry
	head    int
	count   int
}

// New returns a queue whose side table holds tableSize-1 objects (slot 0 is
// reserved as "no object") and whose release queue holds queueSize
// entries. destroy is called for every object when it is finally dropped.
func New[T any](tableSize, queueSize, numInflight int, destroy func(T)) *Queue[T] {
	tableSize = max(tableSize, 2)
	q := &Queue[T]{
		numInflight: uint64(max(numInflight, 1)),
		destroy:     destroy,
		objects:     make([]T, tableSize),
		used:        make([]bool, tableSize),
		free:        make([]int, 0, tableSize-1),
		entries:     make([]entry, max(queueSize, 1)),
	}
	for i := tableSize - 1; i >= 1; i-- {
		q.free = append(q.free, i)
	}
	return q
}

// Add stores obj in a free side-table slot and returns the slot. The
// table is sized for every native object the resource pools can own, so
// running out of slots is a sizing bug and panics.
func (q *Queue[T]) Add(obj T) int {
	n := len(q.free)
	if n == 0 {
		panic("release: side table full")
	}
	slot := q.free[n-1]
	q.free = q.free[:n-1]
	q.objects[slot] = obj
	q.used[slot] = true
	return slot
}

// Get returns the object stored at slot, or the zero value for slot 0 or
// an unused slot.
func (q *Queue[T]) Get(slot int) T {
	var zero T
	if slot <= 0 || slot >= len(q.objects) || !q.used[slot] {
		return zero
	}
	return q.objects[slot]
}

// Release schedules the object at slot for destruction. The object stays
// alive until Collect runs for a frame more than NumInflight+1 frames
// later. Slot 0 is ignored. A full queue panics: its capacity bounds the
// number of live objects, so overflowing it means a slot was released
// twice.
func (q *Queue[T]) Release(frame uint64, slot int) {
	if slot <= 0 {
		return
	}
	if slot >= len(q.objects) || !q.used[slot] {
		panic(fmt.Sprintf("release: slot %d is not in use", slot))
	}
	if q.count == len(q.entries) {
		panic("release: queue full")
	}
	tail := (q.head + q.count) % len(q.entries)
	q.entries[tail] = entry{frame: frame, slot: slot}
	q.count++
}

// Collect destroys queued objects released more than NumInflight+1 frames
// before frame and returns how many were destroyed. Entries are
// frame-ordered, so collection stops at the first entry that is too young.
func (q *Queue[T]) Collect(frame uint64) int {
	n := 0
	for q.count > 0 {
		e := q.entries[q.head]
		if e.frame+q.numInflight+1 >= frame {
			break
		}
		q.drop(e.slot)
		q.head = (q.head + 1) % len(q.entries)
		q.count--
		n++
	}
	return n
}

// Drain destroys every queued object and every object still held in the
// side table. It is used at shutdown after the device is idle.
func (q *Queue[T]) Drain() {
	for q.count > 0 {
		q.drop(q.entries[q.head].slot)
		q.head = (q.head + 1) % len(q.entries)
		q.count--
	}
	for slot := 1; slot < len(q.objects); slot++ {
		if q.used[slot] {
			q.drop(slot)
		}
	}
}

// NumInflight returns the frame delay the queue was created with.
func (q *Queue[T]) NumInflight() uint64 { return q.numInflight }

// Pending returns the number of queued releases.
func (q *Queue[T]) Pending() int { return q.count }

// Live returns the number of occupied side-table slots, including those
// queued for release.
func (q *Queue[T]) Live() int { return len(q.objects) - 1 - len(q.free) }

func (q *Queue[T]) drop(slot int) {
	obj := q.objects[slot]
	var zero T
	q.objects[slot] = zero
	q.used[slot] = false
	q.free = append(q.free, slot)
	if q.destroy != nil {
		q.destroy(obj)
	}
}
