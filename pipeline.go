// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"fmt"

	"github.com/gogpu/gfx/types"
)

// MakePipeline creates a pipeline. The shader must be Valid; otherwise the
// pipeline is Failed.
func (c *Context) MakePipeline(desc types.PipelineDesc) types.Pipeline {
	pip := c.AllocPipeline()
	if pip.IsValid() {
		c.InitPipeline(pip, desc)
	}
	return pip
}

// AllocPipeline reserves a pipeline handle without creating it.
func (c *Context) AllocPipeline() types.Pipeline {
	return types.Pipeline{ID: alloc(c, types.KindPipeline, c.tables.Pipelines)}
}

// InitPipeline creates the pipeline behind an allocated handle.
func (c *Context) InitPipeline(pip types.Pipeline, desc types.PipelineDesc) {
	rec := allocated(c, types.KindPipeline, c.tables.Pipelines, pip.ID, "InitPipeline")
	if rec == nil {
		return
	}
	desc = c.QueryPipelineDefaults(desc)
	err := validatePipelineDesc(&desc)
	if err == nil {
		shd := c.tables.Shaders.Resolve(desc.Shader.ID)
		if shd == nil {
			err = fmt.Errorf("%w: %s is %s", ErrDependency, desc.Shader, c.tables.Shaders.State(desc.Shader.ID))
		} else {
			rec.Init(shd, &desc)
			err = c.backend.CreatePipeline(rec, &desc)
		}
	}
	c.finish(types.KindPipeline, &rec.Slot, desc.Label, err)
}

// FailPipeline marks an allocated pipeline as failed.
func (c *Context) FailPipeline(pip types.Pipeline) {
	fail(c, types.KindPipeline, c.tables.Pipelines, pip.ID, "FailPipeline")
}

// DeallocPipeline frees an allocated handle.
func (c *Context) DeallocPipeline(pip types.Pipeline) {
	dealloc(c, types.KindPipeline, c.tables.Pipelines, pip.ID, "DeallocPipeline")
}

// DestroyPipeline releases a pipeline and its handle.
func (c *Context) DestroyPipeline(pip types.Pipeline) {
	c.destroyPipeline(pip.ID)
}

func (c *Context) destroyPipeline(id uint32) {
	c.dropDestroyed(types.KindPipeline, id)
	destroy(c, types.KindPipeline, c.tables.Pipelines, id, c.backend.DestroyPipeline)
}

// QueryPipelineState returns the lifecycle state of pip.
func (c *Context) QueryPipelineState(pip types.Pipeline) types.ResourceState {
	return c.tables.Pipelines.State(pip.ID)
}

// QueryPipelineInfo returns runtime information about pip.
func (c *Context) QueryPipelineInfo(pip types.Pipeline) types.PipelineInfo {
	rec := c.tables.Pipelines.Lookup(pip.ID)
	if rec == nil {
		return types.PipelineInfo{Slot: types.SlotInfo{State: types.StateInvalid}}
	}
	return types.PipelineInfo{Slot: rec.Info()}
}
