// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package types

// Fixed limits of the portable API.
const (
	MaxColorAttachments     = 4
	MaxVertexBuffers        = 8
	MaxShaderStageImages    = 12
	MaxUniformBlocks        = 4
	MaxUniformBlockMembers  = 16
	MaxVertexAttributes     = 16
	MaxMipmaps              = 16
	MaxTextureArrayLayers   = 128
	CubeFaces               = 6
	DefaultBufferPoolSize   = 128
	DefaultImagePoolSize    = 128
	DefaultShaderPoolSize   = 32
	DefaultPipelinePoolSize = 64
	DefaultPassPoolSize     = 16
)

// NumInflightFrames is the number of frames the CPU may record ahead of
// the GPU. Dynamic and stream resources keep this many native copies.
const NumInflightFrames = 2

// MaxPoolSize is the largest pool capacity a handle's 16-bit slot index
// can address. Slot 0 is reserved, so at most MaxPoolSize-1 resources of one
// kind are alive at once.
const MaxPoolSize = 1 << 16

// Features reports optional capabilities of the active back-end.
type Features struct {
	InstancedRendering    bool
	OriginTopLeft         bool
	MultipleRenderTargets bool
	MSAARenderTargets     bool
	ImageType3D           bool
	ImageTypeArray        bool
	ImageClampToBorder    bool
}

// Limits reports size limits of the active back-end.
type Limits struct {
	MaxImageSize2D      int
	MaxImageSizeCube    int
	MaxImageSize3D      int
	MaxImageSizeArray   int
	MaxImageArrayLayers int
	MaxVertexAttrs      int
}
