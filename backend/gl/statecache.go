// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import "github.com/gogpu/gfx/types"

// maxTextureUnits covers the image slots of both shader stages. Vertex
// stage images use units [0, 12), fragment stage images [12, 24).
const maxTextureUnits = types.NumShaderStages * types.MaxShaderStageImages

// attrState is the pointer setup of one vertex attribute.
type attrState struct {
	buffer     uint32
	size       int
	typ        Enum
	normalized bool
	stride     int
	offset     int
}

type attrBinding struct {
	enabled bool
	ptr     attrState
	divisor int
}

type textureBinding struct {
	target Enum
	tex    uint32
}

// stateCache mirrors the GL state last issued through it and skips calls
// that would not change it. Every state change the back-end makes must go
// through the cache or the mirror diverges from the driver.
type stateCache struct {
	ds     types.DepthStencilState
	blend  types.BlendState
	raster types.RasterizerState

	attrs      [types.MaxVertexAttributes]attrBinding
	arrayBuf   uint32
	elementBuf uint32
	program    uint32
	activeUnit int
	textures   [maxTextureUnits]textureBinding

	// calls counts issued state changes, for diagnostics.
	calls int
}

// Baseline draw state written by reset. It is the portable default of a
// pipeline whose descriptor fields were all left at their zero value.
var (
	baselineDepthStencil = types.DepthStencilState{
		DepthCompareFunc: types.CompareAlways,
	}
	baselineBlend = types.BlendState{
		SrcFactorRGB:   types.BlendFactorOne,
		DstFactorRGB:   types.BlendFactorZero,
		SrcFactorAlpha: types.BlendFactorOne,
		DstFactorAlpha: types.BlendFactorZero,
		ColorWriteMask: types.ColorMaskRGBA,
	}
	baselineRaster = types.RasterizerState{
		CullMode:    types.CullNone,
		FaceWinding: types.FaceWindingCW,
		SampleCount: 1,
	}
)

// reset writes the baseline state to the driver unconditionally and makes
// it the mirrored state. Nothing cached before survives.
func (c *stateCache) reset(f Functions) {
	*c = stateCache{}

	f.Enable(DEPTH_TEST)
	f.Enable(SCISSOR_TEST)
	f.Disable(POLYGON_OFFSET_FILL)
	f.PolygonOffset(0, 0)

	c.ds = baselineDepthStencil
	f.DepthFunc(ALWAYS)
	f.DepthMask(false)
	f.Disable(STENCIL_TEST)
	f.StencilMask(0)
	for _, face := range [...]Enum{FRONT, BACK} {
		f.StencilFuncSeparate(face, ALWAYS, 0, 0)
		f.StencilOpSeparate(face, KEEP, KEEP, KEEP)
	}

	c.blend = baselineBlend
	f.Disable(BLEND)
	f.BlendFuncSeparate(ONE, ZERO, ONE, ZERO)
	f.BlendEquationSeparate(FUNC_ADD, FUNC_ADD)
	f.ColorMask(true, true, true, true)
	f.BlendColor(0, 0, 0, 0)

	c.raster = baselineRaster
	f.Disable(CULL_FACE)
	f.FrontFace(CW)
	f.Disable(SAMPLE_ALPHA_TO_COVERAGE)
	f.Disable(MULTISAMPLE)

	for i := range c.attrs {
		f.DisableVertexAttribArray(i)
		f.VertexAttribDivisor(i, 0)
	}
	f.BindBuffer(ARRAY_BUFFER, 0)
	f.BindBuffer(ELEMENT_ARRAY_BUFFER, 0)
	f.UseProgram(0)
	for i := maxTextureUnits - 1; i >= 0; i-- {
		f.ActiveTexture(TEXTURE0 + Enum(i))
		for _, target := range [...]Enum{TEXTURE_2D, TEXTURE_CUBE_MAP, TEXTURE_3D, TEXTURE_2D_ARRAY} {
			f.BindTexture(target, 0)
		}
	}
}

func (c *stateCache) enable(f Functions, cap Enum, on bool) {
	if on {
		f.Enable(cap)
	} else {
		f.Disable(cap)
	}
	c.calls++
}

// applyDepthStencil issues the calls for every field of ds that differs
// from the mirror.
func (c *stateCache) applyDepthStencil(f Functions, ds *types.DepthStencilState) {
	cur := &c.ds
	if ds.DepthCompareFunc != cur.DepthCompareFunc {
		f.DepthFunc(compareFunc(ds.DepthCompareFunc))
		c.calls++
	}
	if ds.DepthWriteEnabled != cur.DepthWriteEnabled {
		f.DepthMask(ds.DepthWriteEnabled)
		c.calls++
	}
	if ds.StencilEnabled != cur.StencilEnabled {
		c.enable(f, STENCIL_TEST, ds.StencilEnabled)
	}
	if ds.StencilWriteMask != cur.StencilWriteMask {
		f.StencilMask(uint32(ds.StencilWriteMask))
		c.calls++
	}
	faces := [...]struct {
		face     Enum
		new, old *types.StencilState
	}{
		{FRONT, &ds.StencilFront, &cur.StencilFront},
		{BACK, &ds.StencilBack, &cur.StencilBack},
	}
	for _, s := range faces {
		if s.new.CompareFunc != s.old.CompareFunc || ds.StencilReadMask != cur.StencilReadMask || ds.StencilRef != cur.StencilRef {
			f.StencilFuncSeparate(s.face, compareFunc(s.new.CompareFunc), int(ds.StencilRef), uint32(ds.StencilReadMask))
			c.calls++
		}
		if s.new.FailOp != s.old.FailOp || s.new.DepthFailOp != s.old.DepthFailOp || s.new.PassOp != s.old.PassOp {
			f.StencilOpSeparate(s.face, stencilOp(s.new.FailOp), stencilOp(s.new.DepthFailOp), stencilOp(s.new.PassOp))
			c.calls++
		}
	}
	*cur = *ds
}

// applyBlend issues the calls for every field of bs that differs from the
// mirror. Attachment count and formats are not GL state.
func (c *stateCache) applyBlend(f Functions, bs *types.BlendState) {
	cur := &c.blend
	if bs.Enabled != cur.Enabled {
		c.enable(f, BLEND, bs.Enabled)
	}
	if bs.SrcFactorRGB != cur.SrcFactorRGB || bs.DstFactorRGB != cur.DstFactorRGB ||
		bs.SrcFactorAlpha != cur.SrcFactorAlpha || bs.DstFactorAlpha != cur.DstFactorAlpha {
		f.BlendFuncSeparate(blendFactor(bs.SrcFactorRGB), blendFactor(bs.DstFactorRGB),
			blendFactor(bs.SrcFactorAlpha), blendFactor(bs.DstFactorAlpha))
		c.calls++
	}
	if bs.OpRGB != cur.OpRGB || bs.OpAlpha != cur.OpAlpha {
		f.BlendEquationSeparate(blendOp(bs.OpRGB), blendOp(bs.OpAlpha))
		c.calls++
	}
	if bs.ColorWriteMask.Channels() != cur.ColorWriteMask.Channels() {
		c.colorMask(f, bs.ColorWriteMask)
	}
	if bs.BlendColor != cur.BlendColor {
		col := bs.BlendColor
		f.BlendColor(col[0], col[1], col[2], col[3])
		c.calls++
	}
	*cur = *bs
}

func (c *stateCache) colorMask(f Functions, m types.ColorMask) {
	ch := m.Channels()
	f.ColorMask(ch&types.ColorMaskR != 0, ch&types.ColorMaskG != 0, ch&types.ColorMaskB != 0, ch&types.ColorMaskA != 0)
	c.blend.ColorWriteMask = m
	c.calls++
}

// applyRasterizer issues the calls for every field of rs that differs
// from the mirror. Each field family maps to its own calls so a change in
// one family never touches another.
func (c *stateCache) applyRasterizer(f Functions, rs *types.RasterizerState) {
	cur := &c.raster
	if rs.CullMode != cur.CullMode {
		if rs.CullMode == types.CullNone {
			c.enable(f, CULL_FACE, false)
		} else {
			if cur.CullMode == types.CullNone {
				c.enable(f, CULL_FACE, true)
			}
			f.CullFace(cullFace(rs.CullMode))
			c.calls++
		}
	}
	if rs.FaceWinding != cur.FaceWinding {
		f.FrontFace(frontFace(rs.FaceWinding))
		c.calls++
	}
	if rs.AlphaToCoverageEnabled != cur.AlphaToCoverageEnabled {
		c.enable(f, SAMPLE_ALPHA_TO_COVERAGE, rs.AlphaToCoverageEnabled)
	}
	if (rs.SampleCount > 1) != (cur.SampleCount > 1) {
		c.enable(f, MULTISAMPLE, rs.SampleCount > 1)
	}
	if rs.DepthBias != cur.DepthBias || rs.DepthBiasSlopeScale != cur.DepthBiasSlopeScale {
		on := rs.DepthBias != 0 || rs.DepthBiasSlopeScale != 0
		was := cur.DepthBias != 0 || cur.DepthBiasSlopeScale != 0
		if on != was {
			c.enable(f, POLYGON_OFFSET_FILL, on)
		}
		if on {
			f.PolygonOffset(rs.DepthBiasSlopeScale, rs.DepthBias)
			c.calls++
		}
	}
	*cur = *rs
}

// prepareClear makes the write masks admit a clear of the selected
// attachments. Clears honour the masks, so a pipeline from the previous
// pass must not leave them narrowed.
func (c *stateCache) prepareClear(f Functions, color, depth, stencil bool) {
	if color && c.blend.ColorWriteMask.Channels() != types.ColorMaskRGBA {
		c.colorMask(f, types.ColorMaskRGBA)
	}
	if depth && !c.ds.DepthWriteEnabled {
		f.DepthMask(true)
		c.ds.DepthWriteEnabled = true
		c.calls++
	}
	if stencil && c.ds.StencilWriteMask != 0xFF {
		f.StencilMask(0xFF)
		c.ds.StencilWriteMask = 0xFF
		c.calls++
	}
}

// applyAttr points attribute index at a. The first activation enables the
// attribute array and issues the full setup; afterwards only a changed
// pointer or divisor causes a call.
func (c *stateCache) applyAttr(f Functions, index int, a attrState, divisor int) {
	cur := &c.attrs[index]
	if !cur.enabled {
		c.bindBuffer(f, ARRAY_BUFFER, a.buffer)
		f.VertexAttribPointer(index, a.size, a.typ, a.normalized, a.stride, a.offset)
		f.VertexAttribDivisor(index, divisor)
		f.EnableVertexAttribArray(index)
		c.calls += 3
		*cur = attrBinding{enabled: true, ptr: a, divisor: divisor}
		return
	}
	if cur.ptr != a {
		c.bindBuffer(f, ARRAY_BUFFER, a.buffer)
		f.VertexAttribPointer(index, a.size, a.typ, a.normalized, a.stride, a.offset)
		c.calls++
		cur.ptr = a
	}
	if cur.divisor != divisor {
		f.VertexAttribDivisor(index, divisor)
		c.calls++
		cur.divisor = divisor
	}
}

// disableAttr turns off attribute index if it is enabled.
func (c *stateCache) disableAttr(f Functions, index int) {
	cur := &c.attrs[index]
	if cur.enabled {
		f.DisableVertexAttribArray(index)
		c.calls++
		cur.enabled = false
	}
}

func (c *stateCache) bindBuffer(f Functions, target Enum, buf uint32) {
	slot := &c.arrayBuf
	if target == ELEMENT_ARRAY_BUFFER {
		slot = &c.elementBuf
	}
	if *slot != buf {
		f.BindBuffer(target, buf)
		*slot = buf
		c.calls++
	}
}

func (c *stateCache) useProgram(f Functions, prog uint32) {
	if c.program != prog {
		f.UseProgram(prog)
		c.program = prog
		c.calls++
	}
}

func (c *stateCache) activeTexture(f Functions, unit int) {
	if c.activeUnit != unit {
		f.ActiveTexture(TEXTURE0 + Enum(unit))
		c.activeUnit = unit
		c.calls++
	}
}

// bindTexture binds tex to target on unit. A different target on the
// same unit is unbound first so a unit never samples two textures.
func (c *stateCache) bindTexture(f Functions, unit int, target Enum, tex uint32) {
	cur := &c.textures[unit]
	if cur.target == target && cur.tex == tex {
		return
	}
	c.activeTexture(f, unit)
	if cur.target != 0 && cur.target != target {
		f.BindTexture(cur.target, 0)
		c.calls++
	}
	f.BindTexture(target, tex)
	c.calls++
	*cur = textureBinding{target: target, tex: tex}
}

// The delete methods issue the delete and drop exactly the mirrored
// references to the deleted object. GL unbinds a deleted object from the
// current context itself, so the mirror must follow.

func (c *stateCache) deleteBuffer(f Functions, buf uint32) {
	if buf == 0 {
		return
	}
	f.DeleteBuffer(buf)
	if c.arrayBuf == buf {
		c.arrayBuf = 0
	}
	if c.elementBuf == buf {
		c.elementBuf = 0
	}
	for i := range c.attrs {
		if a := &c.attrs[i]; a.ptr.buffer == buf {
			// Force a new pointer call on the next apply.
			a.ptr = attrState{}
		}
	}
}

func (c *stateCache) deleteProgram(f Functions, prog uint32) {
	if prog == 0 {
		return
	}
	f.DeleteProgram(prog)
	if c.program == prog {
		c.program = 0
	}
}

func (c *stateCache) deleteTexture(f Functions, tex uint32) {
	if tex == 0 {
		return
	}
	f.DeleteTexture(tex)
	for i := range c.textures {
		if c.textures[i].tex == tex {
			c.textures[i] = textureBinding{}
		}
	}
}
