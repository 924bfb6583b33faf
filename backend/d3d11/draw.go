// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// BeginPass binds the render targets of pass, or of the swapchain when
// pass is nil, and clears them.
func (b *Backend) BeginPass(pass *resource.Pass, action *types.PassAction, width, height int) {
	b.curPass = pass
	b.curHeight = height
	b.curPipeline = nil

	var rtvs []RenderTargetView
	var dsv DepthStencilView
	if pass == nil {
		if b.sc != nil {
			if rtv := b.sc.RenderTargetView(); rtv != nil {
				rtvs = append(rtvs, rtv)
			}
			dsv = b.sc.DepthStencilView()
		} else {
			backend.Logger().Warn("d3d11: default pass without a Swapchain")
		}
	} else {
		dp := b.passes.At(pass.ID)
		rtvs = dp.rtvs[:pass.NumColorAtts]
		dsv = dp.dsv
	}

	b.ctx.OMSetRenderTargets(rtvs, dsv)
	b.ctx.RSSetViewports(Viewport{Width: float32(width), Height: float32(height), MaxDepth: 1})
	b.ctx.RSSetScissorRects(Rect{Right: width, Bottom: height})

	for i, rtv := range rtvs {
		if c := action.Colors[i]; c.Action == types.ActionClear {
			b.ctx.ClearRenderTargetView(rtv, c.Value)
		}
	}
	if dsv == nil {
		return
	}
	var flags uint32
	if action.Depth.Action == types.ActionClear {
		flags |= ClearDepth
	}
	if action.Stencil.Action == types.ActionClear {
		flags |= ClearStencil
	}
	if flags != 0 {
		b.ctx.ClearDepthStencilView(dsv, flags, action.Depth.Value, action.Stencil.Value)
	}
}

// EndPass resolves multisampled color attachments into their textures.
func (b *Backend) EndPass() {
	if pass := b.curPass; pass != nil {
		for i := range pass.NumColorAtts {
			att := &pass.ColorAtts[i]
			di := b.images.At(att.Image.ID)
			if di.msaa == nil {
				continue
			}
			dst := att.MipLevel + att.Slice*att.Image.NumMipmaps
			b.ctx.ResolveSubresource(di.tex, dst, di.msaa, 0, di.format)
		}
	}
	b.ctx.OMSetRenderTargets(nil, nil)
	b.curPass = nil
	b.curPipeline = nil
}

// flipY converts a bottom-left origin rectangle to D3D's top-left origin.
func (b *Backend) flipY(y, height int, originTopLeft bool) int {
	if originTopLeft {
		return y
	}
	return b.curHeight - (y + height)
}

func (b *Backend) ApplyViewport(x, y, width, height int, originTopLeft bool) {
	b.ctx.RSSetViewports(Viewport{
		X:        float32(x),
		Y:        float32(b.flipY(y, height, originTopLeft)),
		Width:    float32(width),
		Height:   float32(height),
		MaxDepth: 1,
	})
}

func (b *Backend) ApplyScissorRect(x, y, width, height int, originTopLeft bool) {
	top := b.flipY(y, height, originTopLeft)
	b.ctx.RSSetScissorRects(Rect{Left: x, Top: top, Right: x + width, Bottom: top + height})
}

func (b *Backend) ApplyPipeline(pip *resource.Pipeline) {
	b.curPipeline = pip
	dp := b.pipelines.At(pip.ID)
	ds := b.shaders.At(pip.ShaderID)
	b.ctx.RSSetState(dp.rs)
	b.ctx.OMSetDepthStencilState(dp.dss, uint32(pip.DepthStencil.StencilRef))
	b.ctx.OMSetBlendState(dp.bs, pip.Blend.BlendColor, 0xFFFFFFFF)
	b.ctx.IASetPrimitiveTopology(dp.topology)
	b.ctx.IASetInputLayout(dp.il)
	b.ctx.VSSetShader(ds.vs)
	b.ctx.PSSetShader(ds.ps)
	b.ctx.VSSetConstantBuffers(0, ds.cbufs[types.ShaderStageVS])
	b.ctx.PSSetConstantBuffers(0, ds.cbufs[types.ShaderStageFS])
}

func (b *Backend) ApplyBindings(bnd *backend.Bindings) {
	dp := b.pipelines.At(bnd.Pipeline.ID)
	var (
		bufs    [types.MaxVertexBuffers]Buffer
		offsets [types.MaxVertexBuffers]uint32
	)
	for i, vb := range bnd.VertexBuffers {
		if vb == nil {
			continue
		}
		bufs[i] = b.buffers.At(vb.ID).buf
		offsets[i] = uint32(bnd.VertexBufferOffsets[i])
	}
	b.ctx.IASetVertexBuffers(0, bufs[:], dp.strides[:], offsets[:])
	if ib := bnd.IndexBuffer; ib != nil {
		b.ctx.IASetIndexBuffer(b.buffers.At(ib.ID).buf, dp.indexFormat, uint32(bnd.IndexBufferOffset))
	}

	for stage := range types.ShaderStage(types.NumShaderStages) {
		n := len(bnd.Pipeline.Shader.Stages[stage].ImageTypes)
		srvs := make([]ShaderResourceView, n)
		smps := make([]SamplerState, n)
		for i, img := range bnd.Images(stage)[:n] {
			if img == nil {
				continue
			}
			di := b.images.At(img.ID)
			srvs[i], smps[i] = di.srv, di.smp
		}
		if stage == types.ShaderStageVS {
			b.ctx.VSSetShaderResources(0, srvs)
			b.ctx.VSSetSamplers(0, smps)
		} else {
			b.ctx.PSSetShaderResources(0, srvs)
			b.ctx.PSSetSamplers(0, smps)
		}
	}
}

// ApplyUniforms copies a uniform block into its constant buffer.
func (b *Backend) ApplyUniforms(stage types.ShaderStage, slot int, data []byte) {
	if b.curPipeline == nil {
		return
	}
	cbufs := b.shaders.At(b.curPipeline.ShaderID).cbufs[stage]
	if slot >= len(cbufs) {
		return
	}
	n := cbufSize(len(data))
	if cap(b.scratch) < n {
		b.scratch = make([]byte, n)
	}
	buf := b.scratch[:n]
	clear(buf[copy(buf, data):])
	b.ctx.UpdateSubresource(cbufs[slot], 0, buf, 0, 0)
}

func (b *Backend) Draw(base, count, instances int) {
	if b.curPipeline != nil && b.curPipeline.IndexType != types.IndexTypeNone {
		b.ctx.DrawIndexedInstanced(count, instances, base, 0, 0)
		return
	}
	b.ctx.DrawInstanced(count, instances, base, 0)
}

// Commit does nothing: presenting the swapchain is the host's job.
func (b *Backend) Commit() {}
