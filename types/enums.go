// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package types

// Most enumerations below treat their zero value as "use the default".
// Where the default is a real value it is listed first; otherwise a
// *Default constant is reserved and resolved by the Query*Defaults helpers.

// BufferType selects how a buffer is bound.
type BufferType uint8

// Buffer types.
const (
	BufferTypeVertex BufferType = iota
	BufferTypeIndex
)

// Usage describes how often a resource's content changes.
type Usage uint8

// Usages.
const (
	// UsageImmutable resources are initialized once at creation.
	UsageImmutable Usage = iota
	// UsageDynamic resources are updated at most once per frame.
	UsageDynamic
	// UsageStream resources are overwritten every frame.
	UsageStream
)

// String returns the usage name.
func (u Usage) String() string {
	switch u {
	case UsageImmutable:
		return "immutable"
	case UsageDynamic:
		return "dynamic"
	case UsageStream:
		return "stream"
	default:
		return "unknown"
	}
}

// ImageType is the dimensionality of an image.
type ImageType uint8

// Image types.
const (
	ImageType2D ImageType = iota
	ImageTypeCube
	ImageType3D
	ImageTypeArray
)

// String returns the image type name.
func (t ImageType) String() string {
	switch t {
	case ImageType2D:
		return "2d"
	case ImageTypeCube:
		return "cube"
	case ImageType3D:
		return "3d"
	case ImageTypeArray:
		return "array"
	default:
		return "unknown"
	}
}

// VertexFormat is the format of a single vertex attribute.
type VertexFormat uint8

// Vertex formats. VertexFormatInvalid marks an unused attribute slot.
const (
	VertexFormatInvalid VertexFormat = iota
	VertexFormatFloat
	VertexFormatFloat2
	VertexFormatFloat3
	VertexFormatFloat4
	VertexFormatByte4
	VertexFormatByte4N
	VertexFormatUByte4
	VertexFormatUByte4N
	VertexFormatShort2
	VertexFormatShort2N
	VertexFormatUShort2N
	VertexFormatShort4
	VertexFormatShort4N
	VertexFormatUShort4N
	VertexFormatUInt10N2
)

// ByteSize returns the size in bytes of one attribute of format f.
func (f VertexFormat) ByteSize() int {
	switch f {
	case VertexFormatFloat:
		return 4
	case VertexFormatFloat2:
		return 8
	case VertexFormatFloat3:
		return 12
	case VertexFormatFloat4:
		return 16
	case VertexFormatByte4, VertexFormatByte4N, VertexFormatUByte4, VertexFormatUByte4N:
		return 4
	case VertexFormatShort2, VertexFormatShort2N, VertexFormatUShort2N:
		return 4
	case VertexFormatShort4, VertexFormatShort4N, VertexFormatUShort4N:
		return 8
	case VertexFormatUInt10N2:
		return 4
	default:
		return 0
	}
}

// VertexStep selects per-vertex or per-instance attribute stepping.
type VertexStep uint8

// Vertex step functions.
const (
	VertexStepPerVertex VertexStep = iota
	VertexStepPerInstance
)

// IndexType is the element type of an index buffer.
type IndexType uint8

// Index types. IndexTypeNone selects non-indexed rendering.
const (
	IndexTypeNone IndexType = iota
	IndexTypeUint16
	IndexTypeUint32
)

// ByteSize returns the size in bytes of one index, or 0 for IndexTypeNone.
func (t IndexType) ByteSize() int {
	switch t {
	case IndexTypeUint16:
		return 2
	case IndexTypeUint32:
		return 4
	default:
		return 0
	}
}

// PrimitiveType is the primitive topology.
type PrimitiveType uint8

// Primitive types.
const (
	PrimitiveTriangles PrimitiveType = iota
	PrimitivePoints
	PrimitiveLines
	PrimitiveLineStrip
	PrimitiveTriangleStrip
)

// Filter is a texture sampling filter.
type Filter uint8

// Filters. The mipmap variants are only meaningful as a minification filter.
const (
	FilterNearest Filter = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapNearest
	FilterLinearMipmapLinear
)

// Wrap is a texture addressing mode.
type Wrap uint8

// Wrap modes.
const (
	WrapRepeat Wrap = iota
	WrapClampToEdge
	WrapClampToBorder
	WrapMirroredRepeat
)

// CullMode selects which faces are culled.
type CullMode uint8

// Cull modes.
const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FaceWinding selects the front-face winding order.
type FaceWinding uint8

// Face windings.
const (
	FaceWindingCW FaceWinding = iota
	FaceWindingCCW
)

// CompareFunc is a depth or stencil comparison function.
type CompareFunc uint8

// Compare functions. The zero value is CompareAlways.
const (
	CompareAlways CompareFunc = iota
	CompareNever
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
)

// StencilOp is a stencil buffer operation.
type StencilOp uint8

// Stencil operations.
const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrClamp
	StencilOpDecrClamp
	StencilOpInvert
	StencilOpIncrWrap
	StencilOpDecrWrap
)

// BlendFactor is a blend equation source or destination factor.
type BlendFactor uint8

// Blend factors. BlendFactorDefault resolves to One for source factors and
// Zero for destination factors.
const (
	BlendFactorDefault BlendFactor = iota
	BlendFactorZero
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorSrcAlphaSaturated
	BlendFactorBlendColor
	BlendFactorOneMinusBlendColor
	BlendFactorBlendAlpha
	BlendFactorOneMinusBlendAlpha
)

// BlendOp is a blend equation operator.
type BlendOp uint8

// Blend operations.
const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
)

// ColorMask selects which color channels are written.
type ColorMask uint8

// Color mask bits. The zero value resolves to ColorMaskRGBA; use
// ColorMaskNone to disable all channel writes.
const (
	ColorMaskR    ColorMask = 1 << 0
	ColorMaskG    ColorMask = 1 << 1
	ColorMaskB    ColorMask = 1 << 2
	ColorMaskA    ColorMask = 1 << 3
	ColorMaskRGB            = ColorMaskR | ColorMaskG | ColorMaskB
	ColorMaskRGBA           = ColorMaskRGB | ColorMaskA
	ColorMaskNone ColorMask = 1 << 4
)

// Channels returns the effective channel bits, mapping ColorMaskNone to 0.
func (m ColorMask) Channels() ColorMask {
	if m&ColorMaskNone != 0 {
		return 0
	}
	return m & ColorMaskRGBA
}

// Action is what happens to an attachment at the start of a pass.
type Action uint8

// Pass actions. ActionDefault resolves to ActionClear with the default
// clear value.
const (
	ActionDefault Action = iota
	ActionClear
	ActionLoad
	ActionDontCare
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

// Shader stages.
const (
	ShaderStageVS ShaderStage = iota
	ShaderStageFS
)

// NumShaderStages is the number of programmable stages.
const NumShaderStages = 2

// String returns "vs" or "fs".
func (s ShaderStage) String() string {
	if s == ShaderStageFS {
		return "fs"
	}
	return "vs"
}

// UniformType is the type of a single uniform block member.
type UniformType uint8

// Uniform types.
const (
	UniformTypeInvalid UniformType = iota
	UniformTypeFloat
	UniformTypeFloat2
	UniformTypeFloat3
	UniformTypeFloat4
	UniformTypeMat4
)

// ByteSize returns the std140-free packed size of one uniform of type t.
func (t UniformType) ByteSize() int {
	switch t {
	case UniformTypeFloat:
		return 4
	case UniformTypeFloat2:
		return 8
	case UniformTypeFloat3:
		return 12
	case UniformTypeFloat4:
		return 16
	case UniformTypeMat4:
		return 64
	default:
		return 0
	}
}
