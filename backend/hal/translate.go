// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hal

import (
	"github.com/gogpu/gputypes"
	wgpu "github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// textureFormat maps a portable pixel format to its WebGPU format, or
// TextureFormatUndefined when the HAL has no equivalent.
func textureFormat(f types.PixelFormat) gputypes.TextureFormat {
	switch f {
	case types.PixelFormatR8:
		return gputypes.TextureFormatR8Unorm
	case types.PixelFormatR8SN:
		return gputypes.TextureFormatR8Snorm
	case types.PixelFormatR8UI:
		return gputypes.TextureFormatR8Uint
	case types.PixelFormatR8SI:
		return gputypes.TextureFormatR8Sint
	case types.PixelFormatR16F:
		return gputypes.TextureFormatR16Float
	case types.PixelFormatRG8:
		return gputypes.TextureFormatRG8Unorm
	case types.PixelFormatR32F:
		return gputypes.TextureFormatR32Float
	case types.PixelFormatRG16F:
		return gputypes.TextureFormatRG16Float
	case types.PixelFormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	case types.PixelFormatSRGB8A8:
		return gputypes.TextureFormatRGBA8UnormSrgb
	case types.PixelFormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	case types.PixelFormatRGB10A2:
		return gputypes.TextureFormatRGB10A2Unorm
	case types.PixelFormatRG32F:
		return gputypes.TextureFormatRG32Float
	case types.PixelFormatRGBA16F:
		return gputypes.TextureFormatRGBA16Float
	case types.PixelFormatRGBA32F:
		return gputypes.TextureFormatRGBA32Float
	case types.PixelFormatDepth:
		return gputypes.TextureFormatDepth32Float
	case types.PixelFormatDepthStencil:
		return gputypes.TextureFormatDepth24PlusStencil8
	case types.PixelFormatBC1RGBA:
		return gputypes.TextureFormatBC1RGBAUnorm
	case types.PixelFormatBC3RGBA:
		return gputypes.TextureFormatBC3RGBAUnorm
	case types.PixelFormatBC7RGBA:
		return gputypes.TextureFormatBC7RGBAUnorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// pixelFormatInfo derives the capabilities of f from the WebGPU format
// tables: integer and 32-bit float formats are not filterable, snorm and
// compressed formats are not renderable.
func pixelFormatInfo(f types.PixelFormat) types.PixelFormatInfo {
	if textureFormat(f) == gputypes.TextureFormatUndefined {
		return types.PixelFormatInfo{}
	}
	if f.IsDepth() {
		return types.PixelFormatInfo{Render: true, MSAA: true, Depth: true}
	}
	info := types.PixelFormatInfo{Sample: true, Filter: true, Render: true, Blend: true, MSAA: true}
	switch f {
	case types.PixelFormatR8UI, types.PixelFormatR8SI:
		info.Filter, info.Blend, info.MSAA = false, false, false
	case types.PixelFormatR32F, types.PixelFormatRG32F, types.PixelFormatRGBA32F:
		info.Filter, info.Blend, info.MSAA = false, false, false
	case types.PixelFormatR8SN:
		info.Render, info.Blend, info.MSAA = false, false, false
	}
	if f.IsCompressed() {
		info.Render, info.Blend, info.MSAA = false, false, false
	}
	return info
}

func textureDimension(t types.ImageType) gputypes.TextureDimension {
	if t == types.ImageType3D {
		return gputypes.TextureDimension3D
	}
	return gputypes.TextureDimension2D
}

func viewDimension(t types.ImageType) gputypes.TextureViewDimension {
	switch t {
	case types.ImageTypeCube:
		return gputypes.TextureViewDimensionCube
	case types.ImageType3D:
		return gputypes.TextureViewDimension3D
	case types.ImageTypeArray:
		return gputypes.TextureViewDimension2DArray
	default:
		return gputypes.TextureViewDimension2D
	}
}

// textureLayers returns the array layer count (or 3D depth) of an image.
func textureLayers(img *resource.Image) uint32 {
	switch img.Type {
	case types.ImageTypeCube:
		return types.CubeFaces
	case types.ImageType3D, types.ImageTypeArray:
		return uint32(img.NumSlices)
	default:
		return 1
	}
}

func addressMode(w types.Wrap) gputypes.AddressMode {
	switch w {
	case types.WrapClampToEdge, types.WrapClampToBorder:
		return gputypes.AddressModeClampToEdge
	case types.WrapMirroredRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeRepeat
	}
}

// filterModes splits a portable filter into its texel and mipmap parts.
func filterModes(f types.Filter) (texel, mip gputypes.FilterMode) {
	switch f {
	case types.FilterLinear, types.FilterLinearMipmapNearest:
		return gputypes.FilterModeLinear, gputypes.FilterModeNearest
	case types.FilterNearestMipmapLinear:
		return gputypes.FilterModeNearest, gputypes.FilterModeLinear
	case types.FilterLinearMipmapLinear:
		return gputypes.FilterModeLinear, gputypes.FilterModeLinear
	default:
		return gputypes.FilterModeNearest, gputypes.FilterModeNearest
	}
}

func compareFunction(c types.CompareFunc) gputypes.CompareFunction {
	switch c {
	case types.CompareNever:
		return gputypes.CompareFunctionNever
	case types.CompareLess:
		return gputypes.CompareFunctionLess
	case types.CompareEqual:
		return gputypes.CompareFunctionEqual
	case types.CompareLessEqual:
		return gputypes.CompareFunctionLessEqual
	case types.CompareGreater:
		return gputypes.CompareFunctionGreater
	case types.CompareNotEqual:
		return gputypes.CompareFunctionNotEqual
	case types.CompareGreaterEqual:
		return gputypes.CompareFunctionGreaterEqual
	default:
		return gputypes.CompareFunctionAlways
	}
}

func stencilOperation(op types.StencilOp) wgpu.StencilOperation {
	switch op {
	case types.StencilOpZero:
		return wgpu.StencilOperationZero
	case types.StencilOpReplace:
		return wgpu.StencilOperationReplace
	case types.StencilOpIncrClamp:
		return wgpu.StencilOperationIncrementClamp
	case types.StencilOpDecrClamp:
		return wgpu.StencilOperationDecrementClamp
	case types.StencilOpInvert:
		return wgpu.StencilOperationInvert
	case types.StencilOpIncrWrap:
		return wgpu.StencilOperationIncrementWrap
	case types.StencilOpDecrWrap:
		return wgpu.StencilOperationDecrementWrap
	default:
		return wgpu.StencilOperationKeep
	}
}

func stencilFace(s types.StencilState) wgpu.StencilFaceState {
	return wgpu.StencilFaceState{
		Compare:     compareFunction(s.CompareFunc),
		FailOp:      stencilOperation(s.FailOp),
		DepthFailOp: stencilOperation(s.DepthFailOp),
		PassOp:      stencilOperation(s.PassOp),
	}
}

func blendFactor(f types.BlendFactor) gputypes.BlendFactor {
	switch f {
	case types.BlendFactorZero:
		return gputypes.BlendFactorZero
	case types.BlendFactorSrcColor:
		return gputypes.BlendFactorSrc
	case types.BlendFactorOneMinusSrcColor:
		return gputypes.BlendFactorOneMinusSrc
	case types.BlendFactorSrcAlpha:
		return gputypes.BlendFactorSrcAlpha
	case types.BlendFactorOneMinusSrcAlpha:
		return gputypes.BlendFactorOneMinusSrcAlpha
	case types.BlendFactorDstColor:
		return gputypes.BlendFactorDst
	case types.BlendFactorOneMinusDstColor:
		return gputypes.BlendFactorOneMinusDst
	case types.BlendFactorDstAlpha:
		return gputypes.BlendFactorDstAlpha
	case types.BlendFactorOneMinusDstAlpha:
		return gputypes.BlendFactorOneMinusDstAlpha
	case types.BlendFactorSrcAlphaSaturated:
		return gputypes.BlendFactorSrcAlphaSaturated
	case types.BlendFactorBlendColor, types.BlendFactorBlendAlpha:
		return gputypes.BlendFactorConstant
	case types.BlendFactorOneMinusBlendColor, types.BlendFactorOneMinusBlendAlpha:
		return gputypes.BlendFactorOneMinusConstant
	default:
		return gputypes.BlendFactorOne
	}
}

func blendOperation(op types.BlendOp) gputypes.BlendOperation {
	switch op {
	case types.BlendOpSubtract:
		return gputypes.BlendOperationSubtract
	case types.BlendOpReverseSubtract:
		return gputypes.BlendOperationReverseSubtract
	default:
		return gputypes.BlendOperationAdd
	}
}

// blendState returns nil when blending is disabled.
func blendState(s *types.BlendState) *gputypes.BlendState {
	if !s.Enabled {
		return nil
	}
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: blendFactor(s.SrcFactorRGB),
			DstFactor: blendFactor(s.DstFactorRGB),
			Operation: blendOperation(s.OpRGB),
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: blendFactor(s.SrcFactorAlpha),
			DstFactor: blendFactor(s.DstFactorAlpha),
			Operation: blendOperation(s.OpAlpha),
		},
	}
}

func colorWriteMask(m types.ColorMask) gputypes.ColorWriteMask {
	var w gputypes.ColorWriteMask
	ch := m.Channels()
	if ch&types.ColorMaskR != 0 {
		w |= gputypes.ColorWriteMaskRed
	}
	if ch&types.ColorMaskG != 0 {
		w |= gputypes.ColorWriteMaskGreen
	}
	if ch&types.ColorMaskB != 0 {
		w |= gputypes.ColorWriteMaskBlue
	}
	if ch&types.ColorMaskA != 0 {
		w |= gputypes.ColorWriteMaskAlpha
	}
	return w
}

func primitiveTopology(p types.PrimitiveType) gputypes.PrimitiveTopology {
	switch p {
	case types.PrimitivePoints:
		return gputypes.PrimitiveTopologyPointList
	case types.PrimitiveLines:
		return gputypes.PrimitiveTopologyLineList
	case types.PrimitiveLineStrip:
		return gputypes.PrimitiveTopologyLineStrip
	case types.PrimitiveTriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

// indexFormat is only consulted for indexed pipelines.
func indexFormat(t types.IndexType) gputypes.IndexFormat {
	if t == types.IndexTypeUint32 {
		return gputypes.IndexFormatUint32
	}
	return gputypes.IndexFormatUint16
}

func cullMode(c types.CullMode) gputypes.CullMode {
	switch c {
	case types.CullFront:
		return gputypes.CullModeFront
	case types.CullBack:
		return gputypes.CullModeBack
	default:
		return gputypes.CullModeNone
	}
}

func frontFace(w types.FaceWinding) gputypes.FrontFace {
	if w == types.FaceWindingCCW {
		return gputypes.FrontFaceCCW
	}
	return gputypes.FrontFaceCW
}

func stepMode(s types.VertexStep) gputypes.VertexStepMode {
	if s == types.VertexStepPerInstance {
		return gputypes.VertexStepModeInstance
	}
	return gputypes.VertexStepModeVertex
}

// vertexFormat reports false for formats WebGPU lacks.
func vertexFormat(f types.VertexFormat) (gputypes.VertexFormat, bool) {
	switch f {
	case types.VertexFormatFloat:
		return gputypes.VertexFormatFloat32, true
	case types.VertexFormatFloat2:
		return gputypes.VertexFormatFloat32x2, true
	case types.VertexFormatFloat3:
		return gputypes.VertexFormatFloat32x3, true
	case types.VertexFormatFloat4:
		return gputypes.VertexFormatFloat32x4, true
	case types.VertexFormatByte4:
		return gputypes.VertexFormatSint8x4, true
	case types.VertexFormatByte4N:
		return gputypes.VertexFormatSnorm8x4, true
	case types.VertexFormatUByte4:
		return gputypes.VertexFormatUint8x4, true
	case types.VertexFormatUByte4N:
		return gputypes.VertexFormatUnorm8x4, true
	case types.VertexFormatShort2:
		return gputypes.VertexFormatSint16x2, true
	case types.VertexFormatShort2N:
		return gputypes.VertexFormatSnorm16x2, true
	case types.VertexFormatUShort2N:
		return gputypes.VertexFormatUnorm16x2, true
	case types.VertexFormatShort4:
		return gputypes.VertexFormatSint16x4, true
	case types.VertexFormatShort4N:
		return gputypes.VertexFormatSnorm16x4, true
	case types.VertexFormatUShort4N:
		return gputypes.VertexFormatUnorm16x4, true
	default:
		return 0, false
	}
}

// loadOp maps a resolved pass action. DontCare clears, which is the
// cheapest load on tiled GPUs.
func loadOp(a types.Action) gputypes.LoadOp {
	if a == types.ActionLoad {
		return gputypes.LoadOpLoad
	}
	return gputypes.LoadOpClear
}
