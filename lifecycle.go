// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// The helpers below implement the lifecycle shared by all resource kinds:
//
//	Initial --alloc--> Alloc --init ok--> Valid ----destroy--> Initial
//	                   Alloc --init err/fail--> Failed --destroy--> Initial
//	                   Alloc --dealloc--> Initial
//
// A record never returns to Alloc. Re-creating a resource means destroying
// it and allocating again, which yields a handle of a new generation.

func alloc[T any, P resource.Record[T]](c *Context, kind types.ResourceKind, tbl *resource.Table[T, P]) uint32 {
	if !c.checkValid("alloc " + kind.String()) {
		return types.InvalidID
	}
	id, err := tbl.Alloc()
	if err != nil {
		c.logger().Warn("gfx: pool exhausted", "kind", kind, "capacity", tbl.Capacity(), "err", err)
		return types.InvalidID
	}
	return id
}

// allocated returns the record of id when it is in the Alloc state, and
// reports misuse otherwise.
func allocated[T any, P resource.Record[T]](c *Context, kind types.ResourceKind, tbl *resource.Table[T, P], id uint32, op string) P {
	if !c.checkValid(op) {
		return nil
	}
	r := tbl.Lookup(id)
	if r == nil {
		c.misuse("%s: %s handle %#x is invalid", op, kind, id)
		return nil
	}
	if s := r.Header().State; s != types.StateAlloc {
		c.misuse("%s: %s %#x is %s, want alloc", op, kind, id, s)
		return nil
	}
	return r
}

// finish completes initialization of an allocated record.
func (c *Context) finish(kind types.ResourceKind, slot *resource.Slot, label string, err error) {
	if err != nil {
		c.logger().Warn("gfx: resource creation failed",
			"kind", kind, "id", slot.ID, "label", label, "err", err)
	}
	if terr := slot.Finish(err); terr != nil {
		c.misuse("%s %#x: %v", kind, slot.ID, terr)
	}
}

func fail[T any, P resource.Record[T]](c *Context, kind types.ResourceKind, tbl *resource.Table[T, P], id uint32, op string) {
	if r := allocated(c, kind, tbl, id, op); r != nil {
		_ = r.Header().Transition(types.StateFailed)
	}
}

func dealloc[T any, P resource.Record[T]](c *Context, kind types.ResourceKind, tbl *resource.Table[T, P], id uint32, op string) {
	if r := allocated(c, kind, tbl, id, op); r != nil {
		tbl.Free(id)
	}
}

// destroy releases whatever id holds and frees its slot. The zero handle
// is ignored; a stale handle is misuse.
func destroy[T any, P resource.Record[T]](c *Context, kind types.ResourceKind, tbl *resource.Table[T, P], id uint32, release func(P)) {
	if id == types.InvalidID || !c.checkValid("destroy "+kind.String()) {
		return
	}
	r := tbl.Lookup(id)
	if r == nil {
		c.misuse("destroy %s: handle %#x is stale or already destroyed", kind, id)
		return
	}
	if r.Header().State == types.StateValid {
		release(r)
	}
	tbl.Free(id)
}
