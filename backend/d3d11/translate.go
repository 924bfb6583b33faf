// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import "github.com/gogpu/gfx/types"

// textureFormat returns the DXGI format of a pixel format, or
// FormatUnknown when D3D11 has none.
func textureFormat(f types.PixelFormat) Format {
	switch f {
	case types.PixelFormatR8:
		return FormatR8UNorm
	case types.PixelFormatR8SN:
		return FormatR8SNorm
	case types.PixelFormatR8UI:
		return FormatR8UInt
	case types.PixelFormatR8SI:
		return FormatR8SInt
	case types.PixelFormatR16F:
		return FormatR16Float
	case types.PixelFormatRG8:
		return FormatR8G8UNorm
	case types.PixelFormatR32F:
		return FormatR32Float
	case types.PixelFormatRG16F:
		return FormatR16G16Float
	case types.PixelFormatRGBA8:
		return FormatR8G8B8A8UNorm
	case types.PixelFormatSRGB8A8:
		return FormatR8G8B8A8UNormSRGB
	case types.PixelFormatBGRA8:
		return FormatB8G8R8A8UNorm
	case types.PixelFormatRGB10A2:
		return FormatR10G10B10A2UNorm
	case types.PixelFormatRG11B10F:
		return FormatR11G11B10Float
	case types.PixelFormatRG32F:
		return FormatR32G32Float
	case types.PixelFormatRGBA16F:
		return FormatR16G16B16A16Float
	case types.PixelFormatRGBA32F:
		return FormatR32G32B32A32Float
	case types.PixelFormatDepth:
		return FormatD32Float
	case types.PixelFormatDepthStencil:
		return FormatD24UNormS8UInt
	case types.PixelFormatBC1RGBA:
		return FormatBC1UNorm
	case types.PixelFormatBC3RGBA:
		return FormatBC3UNorm
	case types.PixelFormatBC7RGBA:
		return FormatBC7UNorm
	default:
		return FormatUnknown
	}
}

func vertexFormat(f types.VertexFormat) Format {
	switch f {
	case types.VertexFormatFloat:
		return FormatR32Float
	case types.VertexFormatFloat2:
		return FormatR32G32Float
	case types.VertexFormatFloat3:
		return FormatR32G32B32Float
	case types.VertexFormatFloat4:
		return FormatR32G32B32A32Float
	case types.VertexFormatByte4:
		return FormatR8G8B8A8SInt
	case types.VertexFormatByte4N:
		return FormatR8G8B8A8SNorm
	case types.VertexFormatUByte4:
		return FormatR8G8B8A8UInt
	case types.VertexFormatUByte4N:
		return FormatR8G8B8A8UNorm
	case types.VertexFormatShort2:
		return FormatR16G16SInt
	case types.VertexFormatShort2N:
		return FormatR16G16SNorm
	case types.VertexFormatUShort2N:
		return FormatR16G16UNorm
	case types.VertexFormatShort4:
		return FormatR16G16B16A16SInt
	case types.VertexFormatShort4N:
		return FormatR16G16B16A16SNorm
	case types.VertexFormatUShort4N:
		return FormatR16G16B16A16UNorm
	case types.VertexFormatUInt10N2:
		return FormatR10G10B10A2UNorm
	default:
		return FormatUnknown
	}
}

func indexFormat(t types.IndexType) Format {
	switch t {
	case types.IndexTypeUint16:
		return FormatR16UInt
	case types.IndexTypeUint32:
		return FormatR32UInt
	default:
		return FormatUnknown
	}
}

func topology(p types.PrimitiveType) PrimitiveTopology {
	switch p {
	case types.PrimitivePoints:
		return TopologyPointList
	case types.PrimitiveLines:
		return TopologyLineList
	case types.PrimitiveLineStrip:
		return TopologyLineStrip
	case types.PrimitiveTriangleStrip:
		return TopologyTriangleStrip
	default:
		return TopologyTriangleList
	}
}

func bufferUsage(u types.Usage) (Usage, uint32) {
	if u == types.UsageImmutable {
		return UsageImmutable, 0
	}
	return UsageDynamic, CPUAccessWrite
}

func bindFlags(t types.BufferType) uint32 {
	if t == types.BufferTypeIndex {
		return BindIndexBuffer
	}
	return BindVertexBuffer
}

// filter combines the min and mag filters into one D3D11 filter. Any
// anisotropy selects the anisotropic filter.
func filter(minFilter, magFilter types.Filter, anisotropy int) Filter {
	if anisotropy > 1 {
		return FilterAnisotropic
	}
	var f Filter
	switch minFilter {
	case types.FilterLinear, types.FilterLinearMipmapNearest, types.FilterLinearMipmapLinear:
		f |= 0x10
	}
	if magFilter == types.FilterLinear {
		f |= 0x04
	}
	switch minFilter {
	case types.FilterNearestMipmapLinear, types.FilterLinearMipmapLinear:
		f |= 0x01
	}
	return f
}

func addressMode(w types.Wrap) AddressMode {
	switch w {
	case types.WrapClampToEdge:
		return AddressClamp
	case types.WrapClampToBorder:
		return AddressBorder
	case types.WrapMirroredRepeat:
		return AddressMirror
	default:
		return AddressWrap
	}
}

func cullMode(m types.CullMode) CullMode {
	switch m {
	case types.CullFront:
		return CullFront
	case types.CullBack:
		return CullBack
	default:
		return CullNone
	}
}

func compareFunc(f types.CompareFunc) ComparisonFunc {
	switch f {
	case types.CompareNever:
		return ComparisonNever
	case types.CompareLess:
		return ComparisonLess
	case types.CompareEqual:
		return ComparisonEqual
	case types.CompareLessEqual:
		return ComparisonLessEqual
	case types.CompareGreater:
		return ComparisonGreater
	case types.CompareNotEqual:
		return ComparisonNotEqual
	case types.CompareGreaterEqual:
		return ComparisonGreaterEqual
	default:
		return ComparisonAlways
	}
}

func stencilOp(op types.StencilOp) StencilOp {
	switch op {
	case types.StencilOpZero:
		return StencilOpZero
	case types.StencilOpReplace:
		return StencilOpReplace
	case types.StencilOpIncrClamp:
		return StencilOpIncrSat
	case types.StencilOpDecrClamp:
		return StencilOpDecrSat
	case types.StencilOpInvert:
		return StencilOpInvert
	case types.StencilOpIncrWrap:
		return StencilOpIncr
	case types.StencilOpDecrWrap:
		return StencilOpDecr
	default:
		return StencilOpKeep
	}
}

func stencilState(s *types.StencilState) DepthStencilOpDesc {
	return DepthStencilOpDesc{
		StencilFailOp:      stencilOp(s.FailOp),
		StencilDepthFailOp: stencilOp(s.DepthFailOp),
		StencilPassOp:      stencilOp(s.PassOp),
		StencilFunc:        compareFunc(s.CompareFunc),
	}
}

// blendFactor maps the portable factors. BlendAlpha factors use the
// blend color; D3D11 has no separate constant alpha.
func blendFactor(f types.BlendFactor) Blend {
	switch f {
	case types.BlendFactorZero:
		return BlendZero
	case types.BlendFactorSrcColor:
		return BlendSrcColor
	case types.BlendFactorOneMinusSrcColor:
		return BlendInvSrcColor
	case types.BlendFactorSrcAlpha:
		return BlendSrcAlpha
	case types.BlendFactorOneMinusSrcAlpha:
		return BlendInvSrcAlpha
	case types.BlendFactorDstColor:
		return BlendDestColor
	case types.BlendFactorOneMinusDstColor:
		return BlendInvDestColor
	case types.BlendFactorDstAlpha:
		return BlendDestAlpha
	case types.BlendFactorOneMinusDstAlpha:
		return BlendInvDestAlpha
	case types.BlendFactorSrcAlphaSaturated:
		return BlendSrcAlphaSat
	case types.BlendFactorBlendColor, types.BlendFactorBlendAlpha:
		return BlendBlendFactor
	case types.BlendFactorOneMinusBlendColor, types.BlendFactorOneMinusBlendAlpha:
		return BlendInvBlendFactor
	default:
		return BlendOne
	}
}

func blendOp(op types.BlendOp) BlendOp {
	switch op {
	case types.BlendOpSubtract:
		return BlendOpSubtract
	case types.BlendOpReverseSubtract:
		return BlendOpRevSubtract
	default:
		return BlendOpAdd
	}
}

func writeMask(m types.ColorMask) uint8 {
	return uint8(m.Channels())
}
