// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import "github.com/gogpu/gfx/types"

// Translation from portable enums to GL enumerants. Every function covers
// every portable value; the ok results report values GL cannot represent.

func bufferTarget(t types.BufferType) Enum {
	if t == types.BufferTypeIndex {
		return ELEMENT_ARRAY_BUFFER
	}
	return ARRAY_BUFFER
}

func usage(u types.Usage) Enum {
	switch u {
	case types.UsageDynamic:
		return DYNAMIC_DRAW
	case types.UsageStream:
		return STREAM_DRAW
	default:
		return STATIC_DRAW
	}
}

func textureTarget(t types.ImageType) Enum {
	switch t {
	case types.ImageTypeCube:
		return TEXTURE_CUBE_MAP
	case types.ImageType3D:
		return TEXTURE_3D
	case types.ImageTypeArray:
		return TEXTURE_2D_ARRAY
	default:
		return TEXTURE_2D
	}
}

// textureFormat holds the arguments of a TexImage call for one pixel
// format.
type textureFormat struct {
	internal   Enum
	format     Enum
	typ        Enum
	compressed bool
}

var textureFormats = [types.NumPixelFormats]textureFormat{
	types.PixelFormatR8:           {R8, RED, UNSIGNED_BYTE, false},
	types.PixelFormatR8SN:         {R8_SNORM, RED, BYTE, false},
	types.PixelFormatR8UI:         {R8UI, RED_INTEGER, UNSIGNED_BYTE, false},
	types.PixelFormatR8SI:         {R8I, RED_INTEGER, BYTE, false},
	types.PixelFormatR16F:         {R16F, RED, HALF_FLOAT, false},
	types.PixelFormatRG8:          {RG8, RG, UNSIGNED_BYTE, false},
	types.PixelFormatR32F:         {R32F, RED, FLOAT, false},
	types.PixelFormatRG16F:        {RG16F, RG, HALF_FLOAT, false},
	types.PixelFormatRGBA8:        {RGBA8, RGBA, UNSIGNED_BYTE, false},
	types.PixelFormatSRGB8A8:      {SRGB8_ALPHA8, RGBA, UNSIGNED_BYTE, false},
	types.PixelFormatBGRA8:        {RGBA8, BGRA, UNSIGNED_BYTE, false},
	types.PixelFormatRGB10A2:      {RGB10_A2, RGBA, UNSIGNED_INT_2_10_10_10_REV, false},
	types.PixelFormatRG11B10F:     {R11F_G11F_B10F, RGB, UNSIGNED_INT_10F_11F_11F_REV, false},
	types.PixelFormatRG32F:        {RG32F, RG, FLOAT, false},
	types.PixelFormatRGBA16F:      {RGBA16F, RGBA, HALF_FLOAT, false},
	types.PixelFormatRGBA32F:      {RGBA32F, RGBA, FLOAT, false},
	types.PixelFormatDepth:        {DEPTH_COMPONENT24, DEPTH_COMPONENT, UNSIGNED_INT, false},
	types.PixelFormatDepthStencil: {DEPTH24_STENCIL8, DEPTH_STENCIL, UNSIGNED_INT_24_8, false},
	types.PixelFormatBC1RGBA:      {COMPRESSED_RGBA_S3TC_DXT1_EXT, 0, 0, true},
	types.PixelFormatBC3RGBA:      {COMPRESSED_RGBA_S3TC_DXT5_EXT, 0, 0, true},
	types.PixelFormatBC7RGBA:      {COMPRESSED_RGBA_BPTC_UNORM, 0, 0, true},
	types.PixelFormatETC2RGB8:     {COMPRESSED_RGB8_ETC2, 0, 0, true},
}

func pixelFormat(f types.PixelFormat) (textureFormat, bool) {
	if f >= types.NumPixelFormats {
		return textureFormat{}, false
	}
	tf := textureFormats[f]
	return tf, tf.internal != 0
}

func filter(f types.Filter) Enum {
	switch f {
	case types.FilterLinear:
		return LINEAR
	case types.FilterNearestMipmapNearest:
		return NEAREST_MIPMAP_NEAREST
	case types.FilterNearestMipmapLinear:
		return NEAREST_MIPMAP_LINEAR
	case types.FilterLinearMipmapNearest:
		return LINEAR_MIPMAP_NEAREST
	case types.FilterLinearMipmapLinear:
		return LINEAR_MIPMAP_LINEAR
	default:
		return NEAREST
	}
}

// magFilter drops the mipmap part of f, which GL rejects for
// magnification.
func magFilter(f types.Filter) Enum {
	switch f {
	case types.FilterLinear, types.FilterLinearMipmapNearest, types.FilterLinearMipmapLinear:
		return LINEAR
	default:
		return NEAREST
	}
}

func wrap(w types.Wrap) Enum {
	switch w {
	case types.WrapClampToEdge:
		return CLAMP_TO_EDGE
	case types.WrapClampToBorder:
		return CLAMP_TO_BORDER
	case types.WrapMirroredRepeat:
		return MIRRORED_REPEAT
	default:
		return REPEAT
	}
}

// vertexFormat returns the VertexAttribPointer arguments of f.
func vertexFormat(f types.VertexFormat) (size int, typ Enum, normalized bool, ok bool) {
	switch f {
	case types.VertexFormatFloat:
		return 1, FLOAT, false, true
	case types.VertexFormatFloat2:
		return 2, FLOAT, false, true
	case types.VertexFormatFloat3:
		return 3, FLOAT, false, true
	case types.VertexFormatFloat4:
		return 4, FLOAT, false, true
	case types.VertexFormatByte4:
		return 4, BYTE, false, true
	case types.VertexFormatByte4N:
		return 4, BYTE, true, true
	case types.VertexFormatUByte4:
		return 4, UNSIGNED_BYTE, false, true
	case types.VertexFormatUByte4N:
		return 4, UNSIGNED_BYTE, true, true
	case types.VertexFormatShort2:
		return 2, SHORT, false, true
	case types.VertexFormatShort2N:
		return 2, SHORT, true, true
	case types.VertexFormatUShort2N:
		return 2, UNSIGNED_SHORT, true, true
	case types.VertexFormatShort4:
		return 4, SHORT, false, true
	case types.VertexFormatShort4N:
		return 4, SHORT, true, true
	case types.VertexFormatUShort4N:
		return 4, UNSIGNED_SHORT, true, true
	case types.VertexFormatUInt10N2:
		return 4, UNSIGNED_INT_2_10_10_10_REV, true, true
	default:
		return 0, 0, false, false
	}
}

func primitive(p types.PrimitiveType) Enum {
	switch p {
	case types.PrimitivePoints:
		return POINTS
	case types.PrimitiveLines:
		return LINES
	case types.PrimitiveLineStrip:
		return LINE_STRIP
	case types.PrimitiveTriangleStrip:
		return TRIANGLE_STRIP
	default:
		return TRIANGLES
	}
}

func indexType(t types.IndexType) Enum {
	switch t {
	case types.IndexTypeUint16:
		return UNSIGNED_SHORT
	case types.IndexTypeUint32:
		return UNSIGNED_INT
	default:
		return 0
	}
}

func compareFunc(f types.CompareFunc) Enum {
	switch f {
	case types.CompareNever:
		return NEVER
	case types.CompareLess:
		return LESS
	case types.CompareEqual:
		return EQUAL
	case types.CompareLessEqual:
		return LEQUAL
	case types.CompareGreater:
		return GREATER
	case types.CompareNotEqual:
		return NOTEQUAL
	case types.CompareGreaterEqual:
		return GEQUAL
	default:
		return ALWAYS
	}
}

func stencilOp(op types.StencilOp) Enum {
	switch op {
	case types.StencilOpZero:
		return ZERO
	case types.StencilOpReplace:
		return REPLACE
	case types.StencilOpIncrClamp:
		return INCR
	case types.StencilOpDecrClamp:
		return DECR
	case types.StencilOpInvert:
		return INVERT
	case types.StencilOpIncrWrap:
		return INCR_WRAP
	case types.StencilOpDecrWrap:
		return DECR_WRAP
	default:
		return KEEP
	}
}

func blendFactor(f types.BlendFactor) Enum {
	switch f {
	case types.BlendFactorZero:
		return ZERO
	case types.BlendFactorSrcColor:
		return SRC_COLOR
	case types.BlendFactorOneMinusSrcColor:
		return ONE_MINUS_SRC_COLOR
	case types.BlendFactorSrcAlpha:
		return SRC_ALPHA
	case types.BlendFactorOneMinusSrcAlpha:
		return ONE_MINUS_SRC_ALPHA
	case types.BlendFactorDstColor:
		return DST_COLOR
	case types.BlendFactorOneMinusDstColor:
		return ONE_MINUS_DST_COLOR
	case types.BlendFactorDstAlpha:
		return DST_ALPHA
	case types.BlendFactorOneMinusDstAlpha:
		return ONE_MINUS_DST_ALPHA
	case types.BlendFactorSrcAlphaSaturated:
		return SRC_ALPHA_SATURATE
	case types.BlendFactorBlendColor:
		return CONSTANT_COLOR
	case types.BlendFactorOneMinusBlendColor:
		return ONE_MINUS_CONSTANT_COLOR
	case types.BlendFactorBlendAlpha:
		return CONSTANT_ALPHA
	case types.BlendFactorOneMinusBlendAlpha:
		return ONE_MINUS_CONSTANT_ALPHA
	default:
		return ONE
	}
}

func blendOp(op types.BlendOp) Enum {
	switch op {
	case types.BlendOpSubtract:
		return FUNC_SUBTRACT
	case types.BlendOpReverseSubtract:
		return FUNC_REVERSE_SUBTRACT
	default:
		return FUNC_ADD
	}
}

func cullFace(m types.CullMode) Enum {
	if m == types.CullFront {
		return FRONT
	}
	return BACK
}

func frontFace(w types.FaceWinding) Enum {
	if w == types.FaceWindingCCW {
		return CCW
	}
	return CW
}
