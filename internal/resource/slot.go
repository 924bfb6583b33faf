// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"errors"
	"fmt"

	"github.com/gogpu/gfx/types"
)

// ErrIllegalTransition is returned when a slot is asked to move to a state
// its lifecycle does not allow.
var ErrIllegalTransition = errors.New("resource: illegal state transition")

// Slot is the header embedded in every resource record.
//
// ID is 0 while the slot is free. State moves only
// Initial -> Alloc -> (Valid | Failed) -> Initial.
type Slot struct {
	ID    uint32
	State types.ResourceState
}

// Header returns s itself, letting generic tables reach the embedded slot.
func (s *Slot) Header() *Slot { return s }

// Info returns the public view of the slot.
func (s *Slot) Info() types.SlotInfo {
	return types.SlotInfo{State: s.State, ID: s.ID}
}

// Transition moves the slot to state to. Only Alloc -> Valid and
// Alloc -> Failed are legal here; allocation and release are handled by
// Table.
func (s *Slot) Transition(to types.ResourceState) error {
	if s.State != types.StateAlloc || (to != types.StateValid && to != types.StateFailed) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.State, to)
	}
	s.State = to
	return nil
}

// Finish moves an allocated slot to Valid when err is nil and to Failed
// otherwise.
func (s *Slot) Finish(err error) error {
	if err != nil {
		return s.Transition(types.StateFailed)
	}
	return s.Transition(types.StateValid)
}
