// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// MakeBuffer creates a buffer. The returned handle is the zero handle when
// the buffer pool is exhausted; otherwise QueryBufferState reports Valid or
// Failed.
func (c *Context) MakeBuffer(desc types.BufferDesc) types.Buffer {
	buf := c.AllocBuffer()
	if buf.IsValid() {
		c.InitBuffer(buf, desc)
	}
	return buf
}

// AllocBuffer reserves a buffer handle without creating it.
func (c *Context) AllocBuffer() types.Buffer {
	return types.Buffer{ID: alloc(c, types.KindBuffer, c.tables.Buffers)}
}

// InitBuffer creates the buffer behind an allocated handle.
func (c *Context) InitBuffer(buf types.Buffer, desc types.BufferDesc) {
	rec := allocated(c, types.KindBuffer, c.tables.Buffers, buf.ID, "InitBuffer")
	if rec == nil {
		return
	}
	desc = c.QueryBufferDefaults(desc)
	rec.Init(&desc, types.NumInflightFrames)
	err := validateBufferDesc(&desc)
	if err == nil {
		err = c.backend.CreateBuffer(rec, &desc)
	}
	c.finish(types.KindBuffer, &rec.Slot, desc.Label, err)
}

// FailBuffer marks an allocated buffer as failed.
func (c *Context) FailBuffer(buf types.Buffer) {
	fail(c, types.KindBuffer, c.tables.Buffers, buf.ID, "FailBuffer")
}

// DeallocBuffer frees an allocated handle.
func (c *Context) DeallocBuffer(buf types.Buffer) {
	dealloc(c, types.KindBuffer, c.tables.Buffers, buf.ID, "DeallocBuffer")
}

// DestroyBuffer releases a buffer and its handle.
func (c *Context) DestroyBuffer(buf types.Buffer) {
	c.destroyBuffer(buf.ID)
}

func (c *Context) destroyBuffer(id uint32) {
	c.dropDestroyed(types.KindBuffer, id)
	destroy(c, types.KindBuffer, c.tables.Buffers, id, c.backend.DestroyBuffer)
}

// QueryBufferState returns the lifecycle state of buf.
func (c *Context) QueryBufferState(buf types.Buffer) types.ResourceState {
	return c.tables.Buffers.State(buf.ID)
}

// QueryBufferInfo returns runtime information about buf.
func (c *Context) QueryBufferInfo(buf types.Buffer) types.BufferInfo {
	rec := c.tables.Buffers.Lookup(buf.ID)
	if rec == nil {
		return types.BufferInfo{Slot: types.SlotInfo{State: types.StateInvalid}}
	}
	return types.BufferInfo{
		Slot:             rec.Info(),
		UpdateFrameIndex: rec.UpdateFrameIndex,
		AppendFrameIndex: rec.AppendFrameIndex,
		AppendPos:        rec.AppendPos,
		AppendOverflow:   rec.AppendOverflow,
		NumSlots:         rec.NumSlots,
		ActiveSlot:       rec.ActiveSlot,
	}
}

// QueryBufferOverflow reports whether an AppendBuffer call this frame did
// not fit.
func (c *Context) QueryBufferOverflow(buf types.Buffer) bool {
	rec := c.tables.Buffers.Lookup(buf.ID)
	return rec != nil && rec.AppendOverflow
}

// UpdateBuffer replaces the content of a dynamic or stream buffer. It may
// be called once per frame and not in a frame that used AppendBuffer.
// Buffers that are not Valid are ignored.
func (c *Context) UpdateBuffer(buf types.Buffer, data []byte) {
	if !c.checkValid("UpdateBuffer") {
		return
	}
	rec := c.tables.Buffers.Resolve(buf.ID)
	if rec == nil || len(data) == 0 {
		return
	}
	if !c.checkBufferWrite(rec, "UpdateBuffer", len(data)) {
		return
	}
	if rec.UpdateFrameIndex == c.frame {
		c.misuse("UpdateBuffer: %s updated twice in frame %d", buf, c.frame)
		return
	}
	if rec.AppendFrameIndex == c.frame {
		c.misuse("UpdateBuffer: %s already appended to in frame %d", buf, c.frame)
		return
	}
	c.backend.UpdateBuffer(rec, data)
	rec.UpdateFrameIndex = c.frame
	c.stats.UpdateBuffer++
}

// AppendBuffer appends data to a dynamic or stream buffer and returns the
// byte offset it was written at, for use as a vertex or index buffer
// offset in Bindings. The first append of a frame starts at offset 0.
// Appends that do not fit set the overflow flag and write nothing; draws
// using an overflowed buffer are dropped.
func (c *Context) AppendBuffer(buf types.Buffer, data []byte) int {
	if !c.checkValid("AppendBuffer") {
		return 0
	}
	rec := c.tables.Buffers.Resolve(buf.ID)
	if rec == nil {
		return 0
	}
	newFrame := rec.AppendFrameIndex != c.frame
	if newFrame {
		rec.AppendPos = 0
		rec.AppendOverflow = false
	}
	start := rec.AppendPos
	if rec.AppendPos+len(data) > rec.Size {
		rec.AppendOverflow = true
	}
	if len(data) == 0 || rec.AppendOverflow {
		return start
	}
	if !c.checkBufferWrite(rec, "AppendBuffer", 0) {
		return start
	}
	if rec.UpdateFrameIndex == c.frame {
		c.misuse("AppendBuffer: %s already updated in frame %d", buf, c.frame)
		return start
	}
	c.backend.AppendBuffer(rec, data, newFrame)
	rec.AppendPos += roundUp(len(data), 4)
	rec.AppendFrameIndex = c.frame
	c.stats.AppendBuffer++
	return start
}

func (c *Context) checkBufferWrite(rec *resource.Buffer, op string, size int) bool {
	if rec.Usage == types.UsageImmutable {
		c.misuse("%s: buffer %#x is immutable", op, rec.ID)
		return false
	}
	if size > rec.Size {
		c.misuse("%s: %d bytes exceed buffer size %d", op, size, rec.Size)
		return false
	}
	return true
}

func roundUp(v, align int) int {
	return (v + align - 1) &^ (align - 1)
}
