// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "github.com/gogpu/gfx/types"

// QueryBufferDefaults returns desc with every unset field resolved.
func (c *Context) QueryBufferDefaults(desc types.BufferDesc) types.BufferDesc {
	if desc.Size == 0 {
		desc.Size = len(desc.Content)
	}
	return desc
}

// QueryImageDefaults returns desc with every unset field resolved.
func (c *Context) QueryImageDefaults(desc types.ImageDesc) types.ImageDesc {
	desc.NumMipmaps = orDefault(desc.NumMipmaps, 1)
	desc.NumSlices = orDefault(desc.NumSlices, 1)
	desc.SampleCount = orDefault(desc.SampleCount, 1)
	desc.MaxAnisotropy = orDefault(desc.MaxAnisotropy, 1)
	if desc.PixelFormat == types.PixelFormatDefault {
		if desc.RenderTarget {
			desc.PixelFormat = c.cfg.ColorFormat
		} else {
			desc.PixelFormat = types.PixelFormatRGBA8
		}
	}
	if desc.MaxLOD == 0 {
		desc.MaxLOD = 1000
	}
	return desc
}

// QueryShaderDefaults returns desc with every unset field resolved.
func (c *Context) QueryShaderDefaults(desc types.ShaderDesc) types.ShaderDesc {
	if desc.VS.Entry == "" {
		desc.VS.Entry = "main"
	}
	if desc.FS.Entry == "" {
		desc.FS.Entry = "main"
	}
	return desc
}

// QueryPipelineDefaults returns desc with every unset field resolved.
// Vertex strides and attribute offsets left at 0 are computed from the
// attribute formats.
func (c *Context) QueryPipelineDefaults(desc types.PipelineDesc) types.PipelineDesc {
	bs := &desc.Blend
	bs.SrcFactorRGB = blendFactorOr(bs.SrcFactorRGB, types.BlendFactorOne)
	bs.DstFactorRGB = blendFactorOr(bs.DstFactorRGB, types.BlendFactorZero)
	bs.SrcFactorAlpha = blendFactorOr(bs.SrcFactorAlpha, types.BlendFactorOne)
	bs.DstFactorAlpha = blendFactorOr(bs.DstFactorAlpha, types.BlendFactorZero)
	if bs.ColorWriteMask == 0 {
		bs.ColorWriteMask = types.ColorMaskRGBA
	}
	bs.ColorAttachmentCount = orDefault(bs.ColorAttachmentCount, 1)
	if bs.ColorFormat == types.PixelFormatDefault {
		bs.ColorFormat = c.cfg.ColorFormat
	}
	if bs.DepthFormat == types.PixelFormatDefault {
		bs.DepthFormat = c.cfg.DepthFormat
	}
	desc.Rasterizer.SampleCount = orDefault(desc.Rasterizer.SampleCount, c.cfg.SampleCount)

	autoOffset := true
	for _, a := range desc.Layout.Attrs {
		if a.Offset != 0 {
			autoOffset = false
			break
		}
	}
	var offsets [types.MaxVertexBuffers]int
	for i := range desc.Layout.Attrs {
		a := &desc.Layout.Attrs[i]
		if a.Format == types.VertexFormatInvalid {
			break
		}
		if a.BufferIndex < 0 || a.BufferIndex >= types.MaxVertexBuffers {
			continue
		}
		if autoOffset {
			a.Offset = offsets[a.BufferIndex]
		}
		offsets[a.BufferIndex] += a.Format.ByteSize()
	}
	for i := range desc.Layout.Buffers {
		l := &desc.Layout.Buffers[i]
		if l.Stride == 0 {
			l.Stride = offsets[i]
		}
		l.StepRate = orDefault(l.StepRate, 1)
	}
	return desc
}

// QueryPassDefaults returns desc unchanged; passes have no defaults.
func (c *Context) QueryPassDefaults(desc types.PassDesc) types.PassDesc {
	return desc
}

// resolvePassAction replaces ActionDefault with a clear to the default
// values.
func resolvePassAction(action *types.PassAction) types.PassAction {
	var a types.PassAction
	if action != nil {
		a = *action
	}
	for i := range a.Colors {
		if a.Colors[i].Action == types.ActionDefault {
			a.Colors[i] = types.ColorAttachmentAction{Action: types.ActionClear, Value: types.DefaultClearColor}
		}
	}
	if a.Depth.Action == types.ActionDefault {
		a.Depth = types.DepthAttachmentAction{Action: types.ActionClear, Value: types.DefaultClearDepth}
	}
	if a.Stencil.Action == types.ActionDefault {
		a.Stencil = types.StencilAttachmentAction{Action: types.ActionClear, Value: types.DefaultClearStencil}
	}
	return a
}

func blendFactorOr(f, def types.BlendFactor) types.BlendFactor {
	if f == types.BlendFactorDefault {
		return def
	}
	return f
}
