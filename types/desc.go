// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package types

// BufferDesc describes a vertex or index buffer.
//
// Immutable buffers must provide Content. Dynamic and stream buffers may
// leave Content empty and are filled with UpdateBuffer or AppendBuffer.
type BufferDesc struct {
	Size    int
	Type    BufferType
	Usage   Usage
	Content []byte
	Label   string
}

// SubimageContent holds the pixel data of one image, indexed by cube face
// (or 0 for non-cube images) and mip level. For 3D and array images each
// entry contains all slices of that mip level back to back.
type SubimageContent [CubeFaces][MaxMipmaps][]byte

// Empty reports whether no surface holds any data.
func (c *SubimageContent) Empty() bool {
	for face := range c {
		for mip := range c[face] {
			if len(c[face][mip]) != 0 {
				return false
			}
		}
	}
	return true
}

// ImageDesc describes a texture or render target.
type ImageDesc struct {
	Type         ImageType
	RenderTarget bool
	Width        int
	Height       int
	// NumSlices is the depth of a 3D image or the layer count of an array
	// image. Ignored otherwise.
	NumSlices     int
	NumMipmaps    int
	Usage         Usage
	PixelFormat   PixelFormat
	SampleCount   int
	MinFilter     Filter
	MagFilter     Filter
	WrapU         Wrap
	WrapV         Wrap
	WrapW         Wrap
	MaxAnisotropy int
	MinLOD        float32
	MaxLOD        float32
	Content       SubimageContent
	Label         string
}

// UniformDesc describes one member of a uniform block. Only the GL
// back-end uses it, to resolve uniform locations by name.
type UniformDesc struct {
	Name       string
	Type       UniformType
	ArrayCount int
}

// UniformBlockDesc describes a uniform block bound at a shader stage slot.
type UniformBlockDesc struct {
	Size     int
	Uniforms []UniformDesc
}

// ShaderImageDesc describes an image slot of a shader stage.
type ShaderImageDesc struct {
	Name string
	Type ImageType
}

// ShaderStageDesc describes one stage of a shader.
//
// Source holds shading-language text (GLSL, HLSL, MSL or WGSL depending on
// the back-end); Bytecode holds a precompiled blob where the back-end
// supports one. Entry defaults to "main".
type ShaderStageDesc struct {
	Source        string
	Bytecode      []byte
	Entry         string
	UniformBlocks []UniformBlockDesc
	Images        []ShaderImageDesc
}

// ShaderAttrDesc names a vertex attribute. Name is used by GL,
// SemName/SemIndex by D3D11.
type ShaderAttrDesc struct {
	Name     string
	SemName  string
	SemIndex int
}

// ShaderDesc describes a vertex/fragment shader pair.
type ShaderDesc struct {
	Attrs []ShaderAttrDesc
	VS    ShaderStageDesc
	FS    ShaderStageDesc
	Label string
}

// BufferLayoutDesc describes how vertices are fetched from one buffer slot.
type BufferLayoutDesc struct {
	// Stride is computed from the attribute formats when 0.
	Stride   int
	StepFunc VertexStep
	StepRate int
}

// VertexAttrDesc describes one vertex attribute. The attribute's index in
// LayoutDesc.Attrs is its shader location.
type VertexAttrDesc struct {
	BufferIndex int
	// Offset is computed from the preceding attributes when all offsets of
	// a buffer are 0.
	Offset int
	Format VertexFormat
}

// LayoutDesc is the vertex input layout of a pipeline.
type LayoutDesc struct {
	Buffers [MaxVertexBuffers]BufferLayoutDesc
	Attrs   [MaxVertexAttributes]VertexAttrDesc
}

// StencilState is the stencil configuration for one face.
type StencilState struct {
	FailOp      StencilOp
	DepthFailOp StencilOp
	PassOp      StencilOp
	CompareFunc CompareFunc
}

// DepthStencilState is the depth-stencil configuration of a pipeline.
type DepthStencilState struct {
	StencilFront      StencilState
	StencilBack       StencilState
	DepthCompareFunc  CompareFunc
	DepthWriteEnabled bool
	StencilEnabled    bool
	StencilReadMask   uint8
	StencilWriteMask  uint8
	StencilRef        uint8
}

// BlendState is the blend configuration of a pipeline.
type BlendState struct {
	Enabled              bool
	SrcFactorRGB         BlendFactor
	DstFactorRGB         BlendFactor
	OpRGB                BlendOp
	SrcFactorAlpha       BlendFactor
	DstFactorAlpha       BlendFactor
	OpAlpha              BlendOp
	ColorWriteMask       ColorMask
	ColorAttachmentCount int
	ColorFormat          PixelFormat
	DepthFormat          PixelFormat
	BlendColor           [4]float32
}

// RasterizerState is the rasterizer configuration of a pipeline.
type RasterizerState struct {
	AlphaToCoverageEnabled bool
	CullMode               CullMode
	FaceWinding            FaceWinding
	SampleCount            int
	DepthBias              float32
	DepthBiasSlopeScale    float32
	DepthBiasClamp         float32
}

// PipelineDesc describes a pipeline state object.
type PipelineDesc struct {
	Shader        Shader
	Layout        LayoutDesc
	DepthStencil  DepthStencilState
	Blend         BlendState
	Rasterizer    RasterizerState
	PrimitiveType PrimitiveType
	IndexType     IndexType
	Label         string
}

// AttachmentDesc selects the image surface a pass renders into.
type AttachmentDesc struct {
	Image    Image
	MipLevel int
	// Slice is the cube face, array layer or 3D depth slice.
	Slice int
}

// PassDesc describes an offscreen render pass.
type PassDesc struct {
	ColorAttachments       [MaxColorAttachments]AttachmentDesc
	DepthStencilAttachment AttachmentDesc
	Label                  string
}

// ColorAttachmentAction is the start-of-pass action of a color attachment.
type ColorAttachmentAction struct {
	Action Action
	Value  [4]float32
}

// DepthAttachmentAction is the start-of-pass action of the depth buffer.
type DepthAttachmentAction struct {
	Action Action
	Value  float32
}

// StencilAttachmentAction is the start-of-pass action of the stencil buffer.
type StencilAttachmentAction struct {
	Action Action
	Value  uint8
}

// PassAction describes what happens to each attachment when a pass begins.
// The zero value clears color to DefaultClearColor, depth to 1 and stencil
// to 0.
type PassAction struct {
	Colors  [MaxColorAttachments]ColorAttachmentAction
	Depth   DepthAttachmentAction
	Stencil StencilAttachmentAction
}

// DefaultClearColor is the clear color used for ActionDefault.
var DefaultClearColor = [4]float32{0.5, 0.5, 0.5, 1.0}

// Default depth and stencil clear values.
const (
	DefaultClearDepth   float32 = 1.0
	DefaultClearStencil uint8   = 0
)

// Bindings are the resources bound for the next draw call.
type Bindings struct {
	VertexBuffers       [MaxVertexBuffers]Buffer
	VertexBufferOffsets [MaxVertexBuffers]int
	IndexBuffer         Buffer
	IndexBufferOffset   int
	VSImages            [MaxShaderStageImages]Image
	FSImages            [MaxShaderStageImages]Image
}

// SlotInfo is the public view of a resource slot.
type SlotInfo struct {
	State ResourceState
	ID    uint32
}

// BufferInfo reports runtime information about a buffer.
type BufferInfo struct {
	Slot             SlotInfo
	UpdateFrameIndex uint64
	AppendFrameIndex uint64
	AppendPos        int
	AppendOverflow   bool
	NumSlots         int
	ActiveSlot       int
}

// ImageInfo reports runtime information about an image.
type ImageInfo struct {
	Slot             SlotInfo
	UpdateFrameIndex uint64
	NumSlots         int
	ActiveSlot       int
	Width            int
	Height           int
}

// ShaderInfo reports runtime information about a shader.
type ShaderInfo struct {
	Slot SlotInfo
}

// PipelineInfo reports runtime information about a pipeline.
type PipelineInfo struct {
	Slot SlotInfo
}

// PassInfo reports runtime information about a pass.
type PassInfo struct {
	Slot SlotInfo
}
