// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dummy provides a backend that creates no native objects and
// draws nothing. It accepts every descriptor, which makes it useful for
// headless runs and for testing the core without a GPU.
//
// Importing the package registers it under backend.NameDummy.
package dummy

import (
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

func init() {
	backend.Register(backend.NameDummy, func() backend.Backend { return New() })
}

// Counters records how often each entry point was reached.
type Counters struct {
	Created   int
	Destroyed int
	Passes    int
	Pipelines int
	Bindings  int
	Uniforms  int
	Draws     int
	Commits   int
}

// Backend is the dummy backend.
type Backend struct {
	counters Counters
	inPass   bool
}

// New returns a dummy backend.
func New() *Backend { return &Backend{} }

// Counters returns a snapshot of the call counters.
func (b *Backend) Counters() Counters { return b.counters }

func (b *Backend) Name() string { return backend.NameDummy }

func (b *Backend) Setup(backend.Config) error {
	backend.Logger().Info("dummy backend ready")
	return nil
}

func (b *Backend) Shutdown() {}

func (b *Backend) Features() types.Features {
	return types.Features{
		InstancedRendering:    true,
		OriginTopLeft:         true,
		MultipleRenderTargets: true,
		MSAARenderTargets:     true,
		ImageType3D:           true,
		ImageTypeArray:        true,
		ImageClampToBorder:    true,
	}
}

func (b *Backend) Limits() types.Limits {
	return types.Limits{
		MaxImageSize2D:      16384,
		MaxImageSizeCube:    16384,
		MaxImageSize3D:      2048,
		MaxImageSizeArray:   16384,
		MaxImageArrayLayers: types.MaxTextureArrayLayers,
		MaxVertexAttrs:      types.MaxVertexAttributes,
	}
}

func (b *Backend) PixelFormat(f types.PixelFormat) types.PixelFormatInfo {
	if f <= types.PixelFormatNone || f >= types.NumPixelFormats {
		return types.PixelFormatInfo{}
	}
	if f.IsDepth() {
		return types.PixelFormatInfo{Render: true, MSAA: true, Depth: true}
	}
	return types.PixelFormatInfo{Sample: true, Filter: true, Render: !f.IsCompressed(), Blend: !f.IsCompressed(), MSAA: !f.IsCompressed()}
}

func (b *Backend) ResetStateCache() {}

func (b *Backend) CreateBuffer(*resource.Buffer, *types.BufferDesc) error {
	b.counters.Created++
	return nil
}

func (b *Backend) DestroyBuffer(*resource.Buffer) { b.counters.Destroyed++ }

func (b *Backend) CreateImage(*resource.Image, *types.ImageDesc) error {
	b.counters.Created++
	return nil
}

func (b *Backend) DestroyImage(*resource.Image) { b.counters.Destroyed++ }

func (b *Backend) CreateShader(*resource.Shader, *types.ShaderDesc) error {
	b.counters.Created++
	return nil
}

func (b *Backend) DestroyShader(*resource.Shader) { b.counters.Destroyed++ }

func (b *Backend) CreatePipeline(*resource.Pipeline, *types.PipelineDesc) error {
	b.counters.Created++
	return nil
}

func (b *Backend) DestroyPipeline(*resource.Pipeline) { b.counters.Destroyed++ }

func (b *Backend) CreatePass(*resource.Pass, *types.PassDesc) error {
	b.counters.Created++
	return nil
}

func (b *Backend) DestroyPass(*resource.Pass) { b.counters.Destroyed++ }

func (b *Backend) UpdateBuffer(buf *resource.Buffer, _ []byte) {
	buf.ActiveSlot = (buf.ActiveSlot + 1) % buf.NumSlots
}

func (b *Backend) AppendBuffer(buf *resource.Buffer, _ []byte, newFrame bool) {
	if newFrame {
		buf.ActiveSlot = (buf.ActiveSlot + 1) % buf.NumSlots
	}
}

func (b *Backend) UpdateImage(img *resource.Image, _ *types.SubimageContent) {
	img.ActiveSlot = (img.ActiveSlot + 1) % img.NumSlots
}

func (b *Backend) BeginPass(*resource.Pass, *types.PassAction, int, int) {
	b.inPass = true
	b.counters.Passes++
}

func (b *Backend) EndPass() { b.inPass = false }

func (b *Backend) ApplyViewport(int, int, int, int, bool)    {}
func (b *Backend) ApplyScissorRect(int, int, int, int, bool) {}

func (b *Backend) ApplyPipeline(*resource.Pipeline) { b.counters.Pipelines++ }

func (b *Backend) ApplyBindings(*backend.Bindings) { b.counters.Bindings++ }

func (b *Backend) ApplyUniforms(types.ShaderStage, int, []byte) { b.counters.Uniforms++ }

func (b *Backend) Draw(int, int, int) { b.counters.Draws++ }

func (b *Backend) Commit() { b.counters.Commits++ }
