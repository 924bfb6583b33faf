// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hal

import (
	"github.com/gogpu/gputypes"
	wgpu "github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// BeginPass opens a render pass on the frame's encoder. When the frame
// cannot be started, or the default pass has no surface view, the pass is
// skipped and every call up to EndPass is dropped.
func (b *Backend) BeginPass(pass *resource.Pass, action *types.PassAction, width, height int) {
	b.curPass = pass
	b.curWidth, b.curHeight = width, height
	if !b.beginFrame() {
		return
	}

	desc := &wgpu.RenderPassDescriptor{Label: "gfx_pass"}
	var depth wgpu.TextureView
	hasStencil := true
	if pass == nil {
		var view wgpu.TextureView
		if b.surface != nil {
			view = b.surface.CurrentView()
		}
		if view == nil {
			backend.Logger().Warn("hal: default pass has no surface view, skipping")
			return
		}
		desc.ColorAttachments = []wgpu.RenderPassColorAttachment{colorAttachment(view, nil, &action.Colors[0])}
		depth = b.surface.DepthView()
	} else {
		hp := b.passes.At(pass.ID)
		for i := range pass.NumColorAtts {
			desc.ColorAttachments = append(desc.ColorAttachments,
				colorAttachment(hp.colors[i], hp.resolves[i], &action.Colors[i]))
		}
		depth = hp.depth
		if ds := pass.DepthStencil.Image; ds != nil {
			hasStencil = ds.PixelFormat == types.PixelFormatDepthStencil
		}
	}
	if depth != nil {
		dsa := &wgpu.RenderPassDepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     loadOp(action.Depth.Action),
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: action.Depth.Value,
		}
		if hasStencil {
			dsa.StencilLoadOp = loadOp(action.Stencil.Action)
			dsa.StencilStoreOp = gputypes.StoreOpStore
			dsa.StencilClearValue = uint32(action.Stencil.Value)
		}
		desc.DepthStencilAttachment = dsa
	}

	b.rp = b.encoder.BeginRenderPass(desc)
	b.rp.SetViewport(0, 0, float32(width), float32(height), 0, 1)
	b.rp.SetScissorRect(0, 0, uint32(width), uint32(height))
}

// colorAttachment renders into view, resolving into resolve when set. A
// multisampled view that is resolved need not be stored.
func colorAttachment(view, resolve wgpu.TextureView, a *types.ColorAttachmentAction) wgpu.RenderPassColorAttachment {
	store := gputypes.StoreOpStore
	if resolve != nil {
		store = gputypes.StoreOpDiscard
	}
	return wgpu.RenderPassColorAttachment{
		View:          view,
		ResolveTarget: resolve,
		LoadOp:        loadOp(a.Action),
		StoreOp:       store,
		ClearValue: gputypes.Color{
			R: float64(a.Value[0]),
			G: float64(a.Value[1]),
			B: float64(a.Value[2]),
			A: float64(a.Value[3]),
		},
	}
}

func (b *Backend) EndPass() {
	if b.rp != nil {
		b.rp.End()
		b.rp = nil
	}
	b.curPass = nil
	b.curPipeline = nil
}

// flipY converts a bottom-left origin rectangle to the HAL's top-left one.
func (b *Backend) flipY(y, height int, originTopLeft bool) int {
	if originTopLeft {
		return y
	}
	return b.curHeight - (y + height)
}

func (b *Backend) ApplyViewport(x, y, width, height int, originTopLeft bool) {
	if b.rp == nil {
		return
	}
	y = b.flipY(y, height, originTopLeft)
	b.rp.SetViewport(float32(x), float32(y), float32(width), float32(height), 0, 1)
}

// ApplyScissorRect clips the rectangle to the pass size, which the HAL
// requires.
func (b *Backend) ApplyScissorRect(x, y, width, height int, originTopLeft bool) {
	if b.rp == nil {
		return
	}
	y = b.flipY(y, height, originTopLeft)
	x0, y0 := min(max(x, 0), b.curWidth), min(max(y, 0), b.curHeight)
	x1, y1 := min(max(x+width, x0), b.curWidth), min(max(y+height, y0), b.curHeight)
	b.rp.SetScissorRect(uint32(x0), uint32(y0), uint32(x1-x0), uint32(y1-y0))
}

func (b *Backend) ApplyPipeline(pip *resource.Pipeline) {
	b.curPipeline = pip
	if b.rp == nil {
		return
	}
	hp := b.pipelines.At(pip.ID)
	hs := b.shaders.At(pip.ShaderID)
	b.rp.SetPipeline(hp.pipeline)
	b.rp.SetBlendConstant(&hp.blendColor)
	b.rp.SetStencilReference(hp.stencilRef)
	for g, bg := range hs.empty {
		if bg != nil {
			b.rp.SetBindGroup(uint32(g), bg, nil)
		}
	}
	clear(b.uniformOffsets[:])
	b.uniformsDirty = hs.empty[groupUniforms] == nil
}

func (b *Backend) ApplyBindings(bnd *backend.Bindings) {
	if b.rp == nil {
		return
	}
	for i, vb := range bnd.VertexBuffers {
		if vb == nil {
			continue
		}
		buf := b.buffers.At(vb.ID).bufs[vb.ActiveSlot]
		b.rp.SetVertexBuffer(uint32(i), buf, uint64(bnd.VertexBufferOffsets[i]))
	}
	if ib := bnd.IndexBuffer; ib != nil {
		buf := b.buffers.At(ib.ID).bufs[ib.ActiveSlot]
		b.rp.SetIndexBuffer(buf, b.pipelines.At(bnd.Pipeline.ID).indexFormat, uint64(bnd.IndexBufferOffset))
	}

	shd := bnd.Pipeline.Shader
	hs := b.shaders.At(bnd.Pipeline.ShaderID)
	for stage := range types.NumShaderStages {
		n := len(shd.Stages[stage].ImageTypes)
		if n == 0 {
			continue
		}
		images := bnd.Images(types.ShaderStage(stage))
		entries := make([]gputypes.BindGroupEntry, 0, 2*n)
		for i, img := range images[:n] {
			hi := b.images.At(img.ID)
			entries = append(entries,
				gputypes.BindGroupEntry{
					Binding: uint32(2 * i),
					Resource: gputypes.TextureViewBinding{
						TextureView: hi.views[img.ActiveSlot].NativeHandle(),
					},
				},
				gputypes.BindGroupEntry{
					Binding:  uint32(2*i + 1),
					Resource: gputypes.SamplerBinding{Sampler: hi.smp.NativeHandle()},
				},
			)
		}
		g := groupVSImages + stage
		bg, err := b.dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   "gfx_images",
			Layout:  hs.layouts[g],
			Entries: entries,
		})
		if err != nil {
			backend.Logger().Warn("hal: create image bind group", "stage", types.ShaderStage(stage), "err", err)
			continue
		}
		b.keepForFrame(bg)
		b.rp.SetBindGroup(uint32(g), bg, nil)
	}
}

// keepForFrame destroys bg once the current frame has completed.
func (b *Backend) keepForFrame(bg wgpu.BindGroup) {
	f := &b.frames[b.frameSlot]
	f.transient = append(f.transient, bg)
}

// ApplyUniforms copies data into the frame's uniform buffer and points
// the block's binding at it. The bind group is rebuilt at the next draw.
func (b *Backend) ApplyUniforms(stage types.ShaderStage, slot int, data []byte) {
	if b.rp == nil {
		return
	}
	off := alignUp(b.uniformPos, uniformAlign)
	if off+len(data) > b.cfg.UniformBufferSize {
		backend.Logger().Warn("hal: uniform buffer overflow, dropping update",
			"size", b.cfg.UniformBufferSize, "stage", stage, "slot", slot)
		return
	}
	b.queue.WriteBuffer(b.ubufs[b.frameSlot], uint64(off), b.padded(data))
	b.uniformPos = off + len(data)
	b.uniformOffsets[blockBinding(stage, slot)] = uint32(off)
	b.uniformsDirty = true
}

// bindUniforms binds group 0 with every block of the current shader at
// its latest offset.
func (b *Backend) bindUniforms() {
	shd := b.curPipeline.Shader
	hs := b.shaders.At(b.curPipeline.ShaderID)
	buf := b.ubufs[b.frameSlot]
	var entries []gputypes.BindGroupEntry
	for stage := range types.NumShaderStages {
		for i, size := range shd.Stages[stage].UniformBlockSizes {
			binding := blockBinding(types.ShaderStage(stage), i)
			entries = append(entries, gputypes.BindGroupEntry{
				Binding: binding,
				Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(),
					Offset: uint64(b.uniformOffsets[binding]),
					Size:   uint64(size),
				},
			})
		}
	}
	bg, err := b.dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "gfx_uniforms",
		Layout:  hs.layouts[groupUniforms],
		Entries: entries,
	})
	if err != nil {
		backend.Logger().Warn("hal: create uniform bind group", "err", err)
		return
	}
	b.keepForFrame(bg)
	b.rp.SetBindGroup(groupUniforms, bg, nil)
}

func (b *Backend) Draw(base, count, instances int) {
	if b.rp == nil || b.curPipeline == nil {
		return
	}
	if b.uniformsDirty {
		b.bindUniforms()
		b.uniformsDirty = false
	}
	if b.curPipeline.IndexType != types.IndexTypeNone {
		b.rp.DrawIndexed(uint32(count), uint32(instances), uint32(base), 0, 0)
		return
	}
	b.rp.Draw(uint32(count), uint32(instances), uint32(base), 0)
}
