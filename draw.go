// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// BeginDefaultPass starts rendering into the framebuffer supplied by the
// environment. A nil action clears every attachment to its default value.
func (c *Context) BeginDefaultPass(action *types.PassAction, width, height int) {
	if !c.beginPass("BeginDefaultPass") {
		return
	}
	a := resolvePassAction(action)
	c.curWidth, c.curHeight = width, height
	c.backend.BeginPass(nil, &a, width, height)
	c.passValid = true
	c.backendPass = true
}

// BeginPass starts rendering into an offscreen pass. When the pass is not
// Valid every call up to EndPass is dropped.
func (c *Context) BeginPass(pass types.Pass, action *types.PassAction) {
	if !c.beginPass("BeginPass") {
		return
	}
	c.curPass = pass
	rec := c.tables.Passes.Lookup(pass.ID)
	if rec == nil {
		c.misuse("BeginPass: %s is invalid", pass)
		return
	}
	if rec.State != types.StateValid {
		return
	}
	if !attachmentsAlive(rec) {
		c.misuse("BeginPass: %s renders into a destroyed image", pass)
		return
	}
	att := &rec.ColorAtts[0]
	w := max(att.Image.Width>>att.MipLevel, 1)
	h := max(att.Image.Height>>att.MipLevel, 1)
	a := resolvePassAction(action)
	c.curWidth, c.curHeight = w, h
	c.backend.BeginPass(rec, &a, w, h)
	c.passValid = true
	c.backendPass = true
}

func (c *Context) beginPass(op string) bool {
	if !c.checkValid(op) {
		return false
	}
	if c.inPass {
		c.misuse("%s called inside a pass", op)
		return false
	}
	c.inPass = true
	c.backendPass = false
	c.passValid = false
	c.curPass = types.Pass{}
	c.curPipeline = types.Pipeline{}
	c.nextDrawValid = false
	c.bindingsSet = false
	c.bound = types.Bindings{}
	c.stats.Passes++
	return true
}

func attachmentsAlive(p *resource.Pass) bool {
	for i := 0; i < p.NumColorAtts; i++ {
		att := &p.ColorAtts[i]
		if att.Image.ID != att.ImageID || att.Image.State != types.StateValid {
			return false
		}
	}
	if ds := &p.DepthStencil; ds.Image != nil {
		if ds.Image.ID != ds.ImageID || ds.Image.State != types.StateValid {
			return false
		}
	}
	return true
}

// dropDestroyed is called before a resource is destroyed inside a pass.
// When the open pass, the current pipeline or the last bindings use it,
// the draws that would reference it are dropped: a destroyed pass or
// attachment drops the rest of the pass, a destroyed shader drops draws
// until the next ApplyPipeline, and a destroyed bound buffer or image
// drops draws until the next ApplyPipeline and ApplyBindings.
func (c *Context) dropDestroyed(kind types.ResourceKind, id uint32) {
	if !c.inPass || id == types.InvalidID {
		return
	}
	switch kind {
	case types.KindPass:
		if c.curPass.ID == id {
			c.passValid = false
		}
	case types.KindImage:
		if rec := c.tables.Passes.Lookup(c.curPass.ID); rec != nil && passRendersInto(rec, id) {
			c.passValid = false
		}
		if c.bindingsSet && bindingsUseImage(&c.bound, id) {
			c.dropBindings()
		}
	case types.KindBuffer:
		if c.bindingsSet && bindingsUseBuffer(&c.bound, id) {
			c.dropBindings()
		}
	case types.KindShader:
		if pip := c.tables.Pipelines.Lookup(c.curPipeline.ID); pip != nil && pip.ShaderID == id {
			c.nextDrawValid = false
		}
	case types.KindPipeline:
		if c.curPipeline.ID == id {
			c.curPipeline = types.Pipeline{}
			c.nextDrawValid = false
		}
	}
}

func (c *Context) dropBindings() {
	c.bindingsSet = false
	c.nextDrawValid = false
	c.bound = types.Bindings{}
}

func passRendersInto(p *resource.Pass, img uint32) bool {
	for i := 0; i < p.NumColorAtts; i++ {
		if p.ColorAtts[i].ImageID == img {
			return true
		}
	}
	return p.DepthStencil.Image != nil && p.DepthStencil.ImageID == img
}

func bindingsUseBuffer(b *types.Bindings, buf uint32) bool {
	if b.IndexBuffer.ID == buf {
		return true
	}
	for _, vb := range b.VertexBuffers {
		if vb.ID == buf {
			return true
		}
	}
	return false
}

func bindingsUseImage(b *types.Bindings, img uint32) bool {
	for _, h := range b.VSImages {
		if h.ID == img {
			return true
		}
	}
	for _, h := range b.FSImages {
		if h.ID == img {
			return true
		}
	}
	return false
}

// ApplyViewport sets the viewport of the current pass.
func (c *Context) ApplyViewport(x, y, width, height int, originTopLeft bool) {
	if c.checkInPass("ApplyViewport") && c.passValid {
		c.backend.ApplyViewport(x, y, width, height, originTopLeft)
	}
}

// ApplyScissorRect sets the scissor rectangle of the current pass.
func (c *Context) ApplyScissorRect(x, y, width, height int, originTopLeft bool) {
	if c.checkInPass("ApplyScissorRect") && c.passValid {
		c.backend.ApplyScissorRect(x, y, width, height, originTopLeft)
	}
}

// ApplyPipeline makes pip current. A pipeline that is not Valid drops all
// draws until the next ApplyPipeline.
func (c *Context) ApplyPipeline(pip types.Pipeline) {
	if !c.checkInPass("ApplyPipeline") {
		return
	}
	c.bindingsSet = false
	c.nextDrawValid = false
	c.curPipeline = pip
	if !c.passValid {
		return
	}
	rec := c.tables.Pipelines.Lookup(pip.ID)
	if rec == nil {
		c.misuse("ApplyPipeline: %s is invalid", pip)
		return
	}
	if rec.State != types.StateValid {
		return
	}
	if rec.Shader.ID != rec.ShaderID || rec.Shader.State != types.StateValid {
		c.misuse("ApplyPipeline: shader of %s was destroyed", pip)
		return
	}
	c.nextDrawValid = true
	c.backend.ApplyPipeline(rec)
	c.stats.ApplyPipeline++
}

// ApplyBindings binds vertex buffers, the index buffer and images for the
// next draws. It must follow ApplyPipeline. A binding that is not Valid
// drops the draws that follow.
func (c *Context) ApplyBindings(b *types.Bindings) {
	if !c.checkInPass("ApplyBindings") {
		return
	}
	c.bindingsSet = false
	if !c.passValid || !c.nextDrawValid {
		return
	}
	pip := c.tables.Pipelines.Resolve(c.curPipeline.ID)
	if pip == nil {
		c.misuse("ApplyBindings: no pipeline applied")
		return
	}
	res, ok := c.resolveBindings(pip, b)
	if !ok {
		c.nextDrawValid = false
		return
	}
	c.backend.ApplyBindings(res)
	c.bound = *b
	c.bindingsSet = true
	c.stats.ApplyBindings++
}

// resolveBindings maps handles to records. It reports false when a binding
// is missing, stale or not Valid.
func (c *Context) resolveBindings(pip *resource.Pipeline, b *types.Bindings) (*backend.Bindings, bool) {
	res := &backend.Bindings{Pipeline: pip}
	ok := true
	for i, h := range b.VertexBuffers {
		if !h.IsValid() {
			if pip.VertexLayoutValid[i] {
				c.misuse("ApplyBindings: vertex buffer slot %d is required by the pipeline", i)
				ok = false
			}
			continue
		}
		if !c.bindable(types.KindBuffer, c.tables.Buffers.State(h.ID), h.ID) {
			ok = false
			continue
		}
		rec := c.tables.Buffers.Lookup(h.ID)
		if rec.Type != types.BufferTypeVertex {
			c.misuse("ApplyBindings: %s in vertex slot %d is not a vertex buffer", h, i)
			ok = false
			continue
		}
		if rec.AppendOverflow {
			ok = false
			continue
		}
		res.VertexBuffers[i] = rec
		res.VertexBufferOffsets[i] = b.VertexBufferOffsets[i]
	}
	switch {
	case pip.IndexType == types.IndexTypeNone && b.IndexBuffer.IsValid():
		c.misuse("ApplyBindings: pipeline is not indexed but an index buffer is bound")
		ok = false
	case pip.IndexType != types.IndexTypeNone && !b.IndexBuffer.IsValid():
		c.misuse("ApplyBindings: pipeline is indexed but no index buffer is bound")
		ok = false
	case b.IndexBuffer.IsValid():
		if !c.bindable(types.KindBuffer, c.tables.Buffers.State(b.IndexBuffer.ID), b.IndexBuffer.ID) {
			ok = false
			break
		}
		rec := c.tables.Buffers.Lookup(b.IndexBuffer.ID)
		if rec.Type != types.BufferTypeIndex {
			c.misuse("ApplyBindings: %s is not an index buffer", b.IndexBuffer)
			ok = false
			break
		}
		if rec.AppendOverflow {
			ok = false
			break
		}
		res.IndexBuffer = rec
		res.IndexBufferOffset = b.IndexBufferOffset
	}
	for stage, handles := range [...]*[types.MaxShaderStageImages]types.Image{&b.VSImages, &b.FSImages} {
		want := pip.Shader.Stages[stage].ImageTypes
		out := res.Images(types.ShaderStage(stage))
		for i, h := range handles {
			if i >= len(want) {
				if h.IsValid() {
					c.misuse("ApplyBindings: %s image slot %d is not used by the shader", types.ShaderStage(stage), i)
					ok = false
				}
				continue
			}
			if !h.IsValid() {
				c.misuse("ApplyBindings: %s image slot %d is required by the shader", types.ShaderStage(stage), i)
				ok = false
				continue
			}
			if !c.bindable(types.KindImage, c.tables.Images.State(h.ID), h.ID) {
				ok = false
				continue
			}
			rec := c.tables.Images.Lookup(h.ID)
			if rec.Type != want[i] {
				c.misuse("ApplyBindings: %s image slot %d expects a %s image, got %s", types.ShaderStage(stage), i, want[i], rec.Type)
				ok = false
				continue
			}
			out[i] = rec
		}
	}
	return res, ok
}

// bindable reports whether a referenced resource can be bound. Stale
// handles are misuse; Failed resources are silently skipped.
func (c *Context) bindable(kind types.ResourceKind, state types.ResourceState, id uint32) bool {
	switch state {
	case types.StateValid:
		return true
	case types.StateInvalid:
		c.misuse("ApplyBindings: %s handle %#x is invalid", kind, id)
	}
	return false
}

// ApplyUniforms uploads one uniform block for the current pipeline. data
// must match the block size declared by the shader.
func (c *Context) ApplyUniforms(stage types.ShaderStage, slot int, data []byte) {
	if !c.checkInPass("ApplyUniforms") {
		return
	}
	if !c.passValid || !c.nextDrawValid {
		return
	}
	pip := c.tables.Pipelines.Resolve(c.curPipeline.ID)
	if pip == nil {
		c.misuse("ApplyUniforms: no pipeline applied")
		return
	}
	if stage >= types.NumShaderStages {
		c.misuse("ApplyUniforms: invalid shader stage %d", stage)
		return
	}
	sizes := pip.Shader.Stages[stage].UniformBlockSizes
	if slot < 0 || slot >= len(sizes) {
		c.misuse("ApplyUniforms: %s uniform block %d is not declared by the shader", stage, slot)
		return
	}
	if len(data) != sizes[slot] {
		c.misuse("ApplyUniforms: %s uniform block %d is %d bytes, got %d", stage, slot, sizes[slot], len(data))
		return
	}
	c.backend.ApplyUniforms(stage, slot, data)
	c.stats.ApplyUniforms++
	c.stats.UniformBytes += len(data)
}

// Draw issues count elements starting at base, instanced instances times.
// Draws are dropped while the pass, pipeline or bindings are not Valid.
func (c *Context) Draw(base, count, instances int) {
	if !c.checkInPass("Draw") {
		return
	}
	if !c.passValid || !c.nextDrawValid {
		c.stats.DroppedDraws++
		return
	}
	if !c.bindingsSet {
		c.misuse("Draw called without ApplyBindings")
		return
	}
	if count <= 0 || instances <= 0 {
		return
	}
	c.backend.Draw(base, count, instances)
	c.stats.Draws++
}

// EndPass finishes the current pass.
func (c *Context) EndPass() {
	if !c.checkValid("EndPass") {
		return
	}
	if !c.inPass {
		c.misuse("EndPass called outside a pass")
		return
	}
	if c.backendPass {
		c.backend.EndPass()
	}
	c.inPass = false
	c.backendPass = false
	c.passValid = false
	c.curPass = types.Pass{}
	c.curPipeline = types.Pipeline{}
	c.nextDrawValid = false
	c.bindingsSet = false
	c.bound = types.Bindings{}
}

// Commit ends the frame: the backend submits recorded work and collects
// resources whose deferred release is now safe, then the frame index
// advances.
func (c *Context) Commit() {
	if !c.checkValid("Commit") {
		return
	}
	if c.inPass {
		c.misuse("Commit called inside a pass")
		return
	}
	c.backend.Commit()
	c.stats.Frame = c.frame
	c.lastStats = c.stats
	c.stats = FrameStats{}
	c.frame++
}
