// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "github.com/gogpu/gfx/types"

// MakeShader creates a shader. Compilation errors leave the shader Failed
// and are logged with the backend's diagnostics.
func (c *Context) MakeShader(desc types.ShaderDesc) types.Shader {
	shd := c.AllocShader()
	if shd.IsValid() {
		c.InitShader(shd, desc)
	}
	return shd
}

// AllocShader reserves a shader handle without creating it.
func (c *Context) AllocShader() types.Shader {
	return types.Shader{ID: alloc(c, types.KindShader, c.tables.Shaders)}
}

// InitShader creates the shader behind an allocated handle.
func (c *Context) InitShader(shd types.Shader, desc types.ShaderDesc) {
	rec := allocated(c, types.KindShader, c.tables.Shaders, shd.ID, "InitShader")
	if rec == nil {
		return
	}
	desc = c.QueryShaderDefaults(desc)
	rec.Init(&desc)
	err := validateShaderDesc(&desc)
	if err == nil {
		err = c.backend.CreateShader(rec, &desc)
	}
	c.finish(types.KindShader, &rec.Slot, desc.Label, err)
}

// FailShader marks an allocated shader as failed.
func (c *Context) FailShader(shd types.Shader) {
	fail(c, types.KindShader, c.tables.Shaders, shd.ID, "FailShader")
}

// DeallocShader frees an allocated handle.
func (c *Context) DeallocShader(shd types.Shader) {
	dealloc(c, types.KindShader, c.tables.Shaders, shd.ID, "DeallocShader")
}

// DestroyShader releases a shader and its handle. Pipelines created from
// it must not be applied afterwards.
func (c *Context) DestroyShader(shd types.Shader) {
	c.destroyShader(shd.ID)
}

func (c *Context) destroyShader(id uint32) {
	c.dropDestroyed(types.KindShader, id)
	destroy(c, types.KindShader, c.tables.Shaders, id, c.backend.DestroyShader)
}

// QueryShaderState returns the lifecycle state of shd.
func (c *Context) QueryShaderState(shd types.Shader) types.ResourceState {
	return c.tables.Shaders.State(shd.ID)
}

// QueryShaderInfo returns runtime information about shd.
func (c *Context) QueryShaderInfo(shd types.Shader) types.ShaderInfo {
	rec := c.tables.Shaders.Lookup(shd.ID)
	if rec == nil {
		return types.ShaderInfo{Slot: types.SlotInfo{State: types.StateInvalid}}
	}
	return types.ShaderInfo{Slot: rec.Info()}
}
