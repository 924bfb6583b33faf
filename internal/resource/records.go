// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "github.com/gogpu/gfx/types"

// Buffer is the record of a vertex or index buffer.
//
// Dynamic and stream buffers own NumSlots native copies and rotate
// ActiveSlot on every update so the GPU never reads a copy being written.
type Buffer struct {
	Slot
	Size             int
	AppendPos        int
	AppendOverflow   bool
	Type             types.BufferType
	Usage            types.Usage
	UpdateFrameIndex uint64
	AppendFrameIndex uint64
	NumSlots         int
	ActiveSlot       int
	Label            string
}

// Init fills the record's common fields from a resolved descriptor.
func (b *Buffer) Init(desc *types.BufferDesc, numInflight int) {
	b.Size = desc.Size
	b.Type = desc.Type
	b.Usage = desc.Usage
	b.NumSlots = 1
	if desc.Usage != types.UsageImmutable {
		b.NumSlots = max(numInflight, 1)
	}
	b.Label = desc.Label
}

// Image is the record of a texture or render target.
type Image struct {
	Slot
	Type             types.ImageType
	RenderTarget     bool
	Width            int
	Height           int
	NumSlices        int
	NumMipmaps       int
	Usage            types.Usage
	PixelFormat      types.PixelFormat
	SampleCount      int
	MinFilter        types.Filter
	MagFilter        types.Filter
	WrapU            types.Wrap
	WrapV            types.Wrap
	WrapW            types.Wrap
	MaxAnisotropy    int
	MinLOD           float32
	MaxLOD           float32
	UpdateFrameIndex uint64
	NumSlots         int
	ActiveSlot       int
	Label            string
}

// Init fills the record's common fields from a resolved descriptor.
func (img *Image) Init(desc *types.ImageDesc, numInflight int) {
	img.Type = desc.Type
	img.RenderTarget = desc.RenderTarget
	img.Width = desc.Width
	img.Height = desc.Height
	img.NumSlices = desc.NumSlices
	img.NumMipmaps = desc.NumMipmaps
	img.Usage = desc.Usage
	img.PixelFormat = desc.PixelFormat
	img.SampleCount = desc.SampleCount
	img.MinFilter = desc.MinFilter
	img.MagFilter = desc.MagFilter
	img.WrapU = desc.WrapU
	img.WrapV = desc.WrapV
	img.WrapW = desc.WrapW
	img.MaxAnisotropy = desc.MaxAnisotropy
	img.MinLOD = desc.MinLOD
	img.MaxLOD = desc.MaxLOD
	img.NumSlots = 1
	if desc.Usage != types.UsageImmutable {
		img.NumSlots = max(numInflight, 1)
	}
	img.Label = desc.Label
}

// ShaderStage is the per-stage interface of a shader.
type ShaderStage struct {
	UniformBlockSizes []int
	ImageTypes        []types.ImageType
}

// Shader is the record of a vertex/fragment shader pair.
type Shader struct {
	Slot
	Stages [types.NumShaderStages]ShaderStage
	Label  string
}

// Init fills the record's common fields from a descriptor.
func (s *Shader) Init(desc *types.ShaderDesc) {
	for i, stage := range [...]*types.ShaderStageDesc{&desc.VS, &desc.FS} {
		st := &s.Stages[i]
		st.UniformBlockSizes = make([]int, len(stage.UniformBlocks))
		for j, ub := range stage.UniformBlocks {
			st.UniformBlockSizes[j] = ub.Size
		}
		st.ImageTypes = make([]types.ImageType, len(stage.Images))
		for j, img := range stage.Images {
			st.ImageTypes[j] = img.Type
		}
	}
	s.Label = desc.Label
}

// Pipeline is the record of a pipeline state object.
//
// The draw state is stored denormalised so back-ends can apply it without
// going back to the descriptor.
type Pipeline struct {
	Slot
	Shader            *Shader
	ShaderID          uint32
	Layout            types.LayoutDesc
	VertexLayoutValid [types.MaxVertexBuffers]bool
	DepthStencil      types.DepthStencilState
	Blend             types.BlendState
	Rasterizer        types.RasterizerState
	PrimitiveType     types.PrimitiveType
	IndexType         types.IndexType
	Label             string
}

// Init fills the record's common fields from a resolved descriptor.
func (p *Pipeline) Init(shd *Shader, desc *types.PipelineDesc) {
	p.Shader = shd
	p.ShaderID = desc.Shader.ID
	p.Layout = desc.Layout
	for _, a := range desc.Layout.Attrs {
		if a.Format != types.VertexFormatInvalid && a.BufferIndex >= 0 && a.BufferIndex < types.MaxVertexBuffers {
			p.VertexLayoutValid[a.BufferIndex] = true
		}
	}
	p.DepthStencil = desc.DepthStencil
	p.Blend = desc.Blend
	p.Rasterizer = desc.Rasterizer
	p.PrimitiveType = desc.PrimitiveType
	p.IndexType = desc.IndexType
	p.Label = desc.Label
}

// Attachment is a resolved pass attachment.
type Attachment struct {
	Image    *Image
	ImageID  uint32
	MipLevel int
	Slice    int
}

// Pass is the record of an offscreen render pass.
type Pass struct {
	Slot
	ColorAtts    [types.MaxColorAttachments]Attachment
	NumColorAtts int
	DepthStencil Attachment
	Label        string
}

// Init resolves the attachments of desc. colors and ds are the records of
// the attachment images in descriptor order; a nil entry ends the color
// attachment list.
func (p *Pass) Init(desc *types.PassDesc, colors [types.MaxColorAttachments]*Image, ds *Image) {
	for i, img := range colors {
		if img == nil {
			break
		}
		att := desc.ColorAttachments[i]
		p.ColorAtts[i] = Attachment{Image: img, ImageID: att.Image.ID, MipLevel: att.MipLevel, Slice: att.Slice}
		p.NumColorAtts++
	}
	if ds != nil {
		att := desc.DepthStencilAttachment
		p.DepthStencil = Attachment{Image: ds, ImageID: att.Image.ID, MipLevel: att.MipLevel, Slice: att.Slice}
	}
	p.Label = desc.Label
}
