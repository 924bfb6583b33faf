// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// Backend is the contract every graphics API implementation fulfils.
//
// The core owns resource records and their state; a back-end only creates,
// updates and destroys the native objects behind them, keeping those in its
// own storage indexed by the record's slot. Create methods are called only
// on records in the Alloc state whose common fields are already filled in.
// On error they must have released every native object created so far.
// Destroy methods are called only for records that were created
// successfully.
//
// Backends must be registered via Register and are selected by name or by
// priority through Candidates.
type Backend interface {
	// Name returns the backend identifier (e.g., "gl", "hal").
	Name() string

	// Setup initializes the backend. It is called once before any other
	// method.
	Setup(cfg Config) error

	// Shutdown releases all backend state. The backend is not used after
	// Shutdown is called.
	Shutdown()

	Features() types.Features
	Limits() types.Limits
	PixelFormat(f types.PixelFormat) types.PixelFormatInfo

	// ResetStateCache drops any cached driver state so that the next apply
	// calls reissue everything.
	ResetStateCache()

	CreateBuffer(buf *resource.Buffer, desc *types.BufferDesc) error
	DestroyBuffer(buf *resource.Buffer)
	CreateImage(img *resource.Image, desc *types.ImageDesc) error
	DestroyImage(img *resource.Image)
	CreateShader(shd *resource.Shader, desc *types.ShaderDesc) error
	DestroyShader(shd *resource.Shader)
	CreatePipeline(pip *resource.Pipeline, desc *types.PipelineDesc) error
	DestroyPipeline(pip *resource.Pipeline)
	CreatePass(pass *resource.Pass, desc *types.PassDesc) error
	DestroyPass(pass *resource.Pass)

	// UpdateBuffer replaces the content of a dynamic or stream buffer,
	// switching to its next native copy first.
	UpdateBuffer(buf *resource.Buffer, data []byte)

	// AppendBuffer writes data at buf.AppendPos. newFrame is true for the
	// first append of a frame, when the back-end switches native copies.
	AppendBuffer(buf *resource.Buffer, data []byte, newFrame bool)

	// UpdateImage replaces the content of a dynamic or stream image.
	UpdateImage(img *resource.Image, data *types.SubimageContent)

	// BeginPass starts rendering into pass, or into the default
	// framebuffer when pass is nil.
	BeginPass(pass *resource.Pass, action *types.PassAction, width, height int)
	EndPass()
	ApplyViewport(x, y, width, height int, originTopLeft bool)
	ApplyScissorRect(x, y, width, height int, originTopLeft bool)
	ApplyPipeline(pip *resource.Pipeline)
	ApplyBindings(b *Bindings)
	ApplyUniforms(stage types.ShaderStage, slot int, data []byte)
	Draw(base, count, instances int)

	// Commit ends the frame.
	Commit()
}

// Config is passed to Backend.Setup.
type Config struct {
	// Sizes are the resource table capacities.
	Sizes resource.Sizes

	// UniformBufferSize is the per-frame uniform staging size in bytes for
	// back-ends that stream uniforms through a buffer.
	UniformBufferSize int

	// Frame returns the index of the frame currently being recorded. It
	// starts at 1 and is advanced by Commit.
	Frame func() uint64

	// Debug enables extra back-end checks.
	Debug bool

	// Env carries the native objects supplied by the host.
	Env Environment
}

// Environment carries host-supplied native objects. Each back-end documents
// which concrete types it accepts in each field.
type Environment struct {
	// Device is the native device, or a provider of it.
	Device any

	// Context is the native immediate context, queue or function table.
	Context any

	// Swapchain supplies the render targets of the default pass.
	Swapchain any
}

// Bindings are the resolved resources of an ApplyBindings call. Unused
// slots are nil. The core only builds Bindings from Valid records.
type Bindings struct {
	Pipeline            *resource.Pipeline
	VertexBuffers       [types.MaxVertexBuffers]*resource.Buffer
	VertexBufferOffsets [types.MaxVertexBuffers]int
	IndexBuffer         *resource.Buffer
	IndexBufferOffset   int
	VSImages            [types.MaxShaderStageImages]*resource.Image
	FSImages            [types.MaxShaderStageImages]*resource.Image
}

// Images returns the image bindings of stage.
func (b *Bindings) Images(stage types.ShaderStage) []*resource.Image {
	if stage == types.ShaderStageFS {
		return b.FSImages[:]
	}
	return b.VSImages[:]
}
