// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"honnef.co/go/safeish"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// BeginPass binds the pass framebuffer, resyncs the state cache to the
// baseline and clears the attachments.
func (b *Backend) BeginPass(pass *resource.Pass, action *types.PassAction, width, height int) {
	b.inPass = true
	b.curPass = pass
	b.curHeight = height
	b.curPipeline = nil

	fb := b.defaultFramebuffer()
	numColors, hasDepth, hasStencil := 1, true, true
	if pass != nil {
		fb = b.passes.At(pass.ID).fb
		numColors = pass.NumColorAtts
		ds := pass.DepthStencil.Image
		hasDepth = ds != nil
		hasStencil = ds != nil && ds.PixelFormat == types.PixelFormatDepthStencil
	}
	b.curFB = fb
	b.f.BindFramebuffer(FRAMEBUFFER, fb)

	// The previous pass may have left any state behind.
	b.cache.reset(b.f)
	b.f.Viewport(0, 0, width, height)
	b.f.Scissor(0, 0, width, height)

	clearColor := false
	for i := range numColors {
		clearColor = clearColor || action.Colors[i].Action == types.ActionClear
	}
	clearDepth := hasDepth && action.Depth.Action == types.ActionClear
	clearStencil := hasStencil && action.Stencil.Action == types.ActionClear
	b.cache.prepareClear(b.f, clearColor, clearDepth, clearStencil)
	for i := range numColors {
		if c := action.Colors[i]; c.Action == types.ActionClear {
			b.f.ClearBufferfv(COLOR, i, c.Value[:])
		}
	}
	if clearDepth {
		b.f.ClearBufferfv(DEPTH, 0, []float32{action.Depth.Value})
	}
	if clearStencil {
		b.f.ClearBufferiv(STENCIL, 0, []int32{int32(action.Stencil.Value)})
	}
}

// EndPass resolves multisampled attachments and rebinds the default
// framebuffer.
func (b *Backend) EndPass() {
	if pass := b.curPass; pass != nil {
		gp := b.passes.At(pass.ID)
		for i := range pass.NumColorAtts {
			if gp.resolve[i] == 0 {
				continue
			}
			att := &pass.ColorAtts[i]
			w := max(att.Image.Width>>att.MipLevel, 1)
			h := max(att.Image.Height>>att.MipLevel, 1)
			// Blits honour the scissor rectangle.
			b.f.Disable(SCISSOR_TEST)
			b.f.BindFramebuffer(READ_FRAMEBUFFER, gp.fb)
			b.f.ReadBuffer(COLOR_ATTACHMENT0 + Enum(i))
			b.f.BindFramebuffer(DRAW_FRAMEBUFFER, gp.resolve[i])
			b.f.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, COLOR_BUFFER_BIT, NEAREST)
		}
	}
	b.f.BindFramebuffer(FRAMEBUFFER, b.defaultFramebuffer())
	b.inPass = false
	b.curPass = nil
	b.curFB = 0
	b.curPipeline = nil
}

// flipY converts a top-left origin rectangle to GL's bottom-left origin.
func (b *Backend) flipY(y, height int, originTopLeft bool) int {
	if originTopLeft {
		return b.curHeight - (y + height)
	}
	return y
}

func (b *Backend) ApplyViewport(x, y, width, height int, originTopLeft bool) {
	b.f.Viewport(x, b.flipY(y, height, originTopLeft), width, height)
}

func (b *Backend) ApplyScissorRect(x, y, width, height int, originTopLeft bool) {
	b.f.Scissor(x, b.flipY(y, height, originTopLeft), width, height)
}

// ApplyPipeline feeds the pipeline's draw state through the state cache,
// which issues only the calls for fields that changed.
func (b *Backend) ApplyPipeline(pip *resource.Pipeline) {
	gp := b.pipelines.At(pip.ID)
	b.curPipeline = pip
	b.curPrim = gp.prim
	b.curIndexType = gp.indexType
	b.curIndexSize = gp.indexSize
	b.curIndexOff = 0

	b.cache.applyDepthStencil(b.f, &pip.DepthStencil)
	b.cache.applyBlend(b.f, &pip.Blend)
	b.cache.applyRasterizer(b.f, &pip.Rasterizer)
	b.cache.useProgram(b.f, b.shaders.At(pip.ShaderID).prog)
}

func (b *Backend) ApplyBindings(bnd *backend.Bindings) {
	gp := b.pipelines.At(bnd.Pipeline.ID)
	for i := range gp.attrs {
		a := &gp.attrs[i]
		var vb *resource.Buffer
		if a.used {
			vb = bnd.VertexBuffers[a.vbIndex]
		}
		if vb == nil {
			b.cache.disableAttr(b.f, i)
			continue
		}
		b.cache.applyAttr(b.f, i, attrState{
			buffer:     b.buffers.At(vb.ID).objs[vb.ActiveSlot],
			size:       a.size,
			typ:        a.typ,
			normalized: a.normalized,
			stride:     a.stride,
			offset:     a.offset + bnd.VertexBufferOffsets[a.vbIndex],
		}, a.divisor)
	}
	if ib := bnd.IndexBuffer; ib != nil {
		b.cache.bindBuffer(b.f, ELEMENT_ARRAY_BUFFER, b.buffers.At(ib.ID).objs[ib.ActiveSlot])
		b.curIndexOff = bnd.IndexBufferOffset
	}
	for stage := range types.ShaderStage(types.NumShaderStages) {
		for i, img := range bnd.Images(stage) {
			if img == nil {
				continue
			}
			gi := b.images.At(img.ID)
			b.cache.bindTexture(b.f, textureUnit(stage, i), gi.target, gi.texs[img.ActiveSlot])
		}
	}
}

// ApplyUniforms uploads a uniform block member by member through the
// locations resolved at shader creation.
func (b *Backend) ApplyUniforms(stage types.ShaderStage, slot int, data []byte) {
	if b.curPipeline == nil {
		return
	}
	gs := b.shaders.At(b.curPipeline.ShaderID)
	if slot >= len(gs.blocks[stage]) {
		return
	}
	for _, u := range gs.blocks[stage][slot] {
		n := u.typ.ByteSize() * u.count
		if u.offset+n > len(data) {
			break
		}
		if u.loc < 0 {
			continue
		}
		v := safeish.SliceCast[[]float32](data[u.offset : u.offset+n])
		switch u.typ {
		case types.UniformTypeFloat:
			b.f.Uniform1fv(u.loc, v)
		case types.UniformTypeFloat2:
			b.f.Uniform2fv(u.loc, v)
		case types.UniformTypeFloat3:
			b.f.Uniform3fv(u.loc, v)
		case types.UniformTypeFloat4:
			b.f.Uniform4fv(u.loc, v)
		case types.UniformTypeMat4:
			b.f.UniformMatrix4fv(u.loc, v)
		}
	}
}

func (b *Backend) Draw(base, count, instances int) {
	if b.curIndexType != 0 {
		offset := b.curIndexOff + base*b.curIndexSize
		b.f.DrawElementsInstanced(b.curPrim, count, b.curIndexType, offset, instances)
		return
	}
	b.f.DrawArraysInstanced(b.curPrim, base, count, instances)
}

// Commit flushes the command stream. In debug mode it also reports GL
// errors raised during the frame.
func (b *Backend) Commit() {
	b.f.Flush()
	if b.cfg.Debug {
		if err := b.checkError("frame"); err != nil {
			backend.Logger().Warn("gl: frame error", "frame", b.frame(), "err", err)
		}
	}
}

func (b *Backend) frame() uint64 {
	if b.cfg.Frame == nil {
		return 0
	}
	return b.cfg.Frame()
}
