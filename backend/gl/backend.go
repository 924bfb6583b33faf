// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"
	"slices"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

func init() {
	backend.Register(backend.NameGL, func() backend.Backend { return New() })
}

// Environment is accepted in backend.Environment.Context. A bare Functions
// value is accepted as well and renders the default pass into framebuffer 0.
type Environment struct {
	Functions Functions

	// DefaultFramebuffer returns the framebuffer of the default pass. It
	// is called at every BeginDefaultPass; nil selects framebuffer 0.
	DefaultFramebuffer func() uint32
}

// Backend is the OpenGL 3.3 core back-end.
//
// GL has no pipeline objects, so pipelines only keep translated draw
// state; ApplyPipeline feeds it through the state cache.
type Backend struct {
	f         Functions
	defaultFB func() uint32
	cfg       backend.Config
	vao       uint32

	anisotropy bool

	features types.Features
	limits   types.Limits
	formats  [types.NumPixelFormats]types.PixelFormatInfo

	cache stateCache

	buffers   *resource.Side[glBuffer]
	images    *resource.Side[glImage]
	shaders   *resource.Side[glShader]
	pipelines *resource.Side[glPipeline]
	passes    *resource.Side[glPass]

	inPass       bool
	curPass      *resource.Pass
	curFB        uint32
	curHeight    int
	curPipeline  *resource.Pipeline
	curPrim      Enum
	curIndexType Enum
	curIndexSize int
	curIndexOff  int
}

// New returns an uninitialised GL back-end. Setup binds it to the
// Functions found in the environment.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return backend.NameGL }

// Setup accepts an Environment, a *Environment or a bare Functions in
// cfg.Env.Context.
func (b *Backend) Setup(cfg backend.Config) error {
	switch env := cfg.Env.Context.(type) {
	case Environment:
		b.f, b.defaultFB = env.Functions, env.DefaultFramebuffer
	case *Environment:
		if env != nil {
			b.f, b.defaultFB = env.Functions, env.DefaultFramebuffer
		}
	case Functions:
		b.f = env
	}
	if b.f == nil {
		return fmt.Errorf("gl: %w: no gl.Functions", backend.ErrNoDevice)
	}
	b.cfg = cfg

	exts := b.extensions()
	b.features = types.Features{
		InstancedRendering:    true,
		MultipleRenderTargets: true,
		MSAARenderTargets:     true,
		ImageType3D:           true,
		ImageTypeArray:        true,
		ImageClampToBorder:    true,
	}
	b.limits = types.Limits{
		MaxImageSize2D:      b.f.GetInteger(MAX_TEXTURE_SIZE),
		MaxImageSizeCube:    b.f.GetInteger(MAX_CUBE_MAP_TEXTURE_SIZE),
		MaxImageSize3D:      b.f.GetInteger(MAX_3D_TEXTURE_SIZE),
		MaxImageSizeArray:   b.f.GetInteger(MAX_TEXTURE_SIZE),
		MaxImageArrayLayers: b.f.GetInteger(MAX_ARRAY_TEXTURE_LAYERS),
		MaxVertexAttrs:      min(b.f.GetInteger(MAX_VERTEX_ATTRIBS), types.MaxVertexAttributes),
	}
	b.initPixelFormats(exts)
	b.anisotropy = slices.Contains(exts, "GL_EXT_texture_filter_anisotropic") ||
		slices.Contains(exts, "GL_ARB_texture_filter_anisotropic")

	s := cfg.Sizes
	b.buffers = resource.NewSide[glBuffer](s.Buffers)
	b.images = resource.NewSide[glImage](s.Images)
	b.shaders = resource.NewSide[glShader](s.Shaders)
	b.pipelines = resource.NewSide[glPipeline](s.Pipelines)
	b.passes = resource.NewSide[glPass](s.Passes)

	// Core profile draws need a bound vertex array.
	b.vao = b.f.GenVertexArray()
	b.f.BindVertexArray(b.vao)
	b.cache.reset(b.f)

	backend.Logger().Info("gl backend ready",
		"version", b.f.GetString(VERSION),
		"renderer", b.f.GetString(RENDERER),
		"extensions", len(exts))
	return nil
}

func (b *Backend) extensions() []string {
	n := b.f.GetInteger(NUM_EXTENSIONS)
	exts := make([]string, 0, n)
	for i := range n {
		exts = append(exts, b.f.GetStringi(EXTENSIONS, i))
	}
	return exts
}

// initPixelFormats fills the capability table for a GL 3.3 core context.
func (b *Backend) initPixelFormats(exts []string) {
	full := types.PixelFormatInfo{Sample: true, Filter: true, Render: true, Blend: true, MSAA: true}
	for f := types.PixelFormatR8; f < types.NumPixelFormats; f++ {
		switch f {
		case types.PixelFormatR8SN:
			b.formats[f] = types.PixelFormatInfo{Sample: true, Filter: true}
		case types.PixelFormatR8UI, types.PixelFormatR8SI:
			b.formats[f] = types.PixelFormatInfo{Sample: true, Render: true, MSAA: true}
		case types.PixelFormatR32F, types.PixelFormatRG32F, types.PixelFormatRGBA32F:
			b.formats[f] = types.PixelFormatInfo{Sample: true, Render: true, MSAA: true,
				Filter: slices.Contains(exts, "GL_OES_texture_float_linear")}
		case types.PixelFormatDepth, types.PixelFormatDepthStencil:
			b.formats[f] = types.PixelFormatInfo{Render: true, MSAA: true, Depth: true}
		case types.PixelFormatBC1RGBA, types.PixelFormatBC3RGBA:
			if slices.Contains(exts, "GL_EXT_texture_compression_s3tc") {
				b.formats[f] = types.PixelFormatInfo{Sample: true, Filter: true}
			}
		case types.PixelFormatBC7RGBA:
			if slices.Contains(exts, "GL_ARB_texture_compression_bptc") {
				b.formats[f] = types.PixelFormatInfo{Sample: true, Filter: true}
			}
		case types.PixelFormatETC2RGB8:
			if slices.Contains(exts, "GL_ARB_ES3_compatibility") {
				b.formats[f] = types.PixelFormatInfo{Sample: true, Filter: true}
			}
		default:
			b.formats[f] = full
		}
	}
}

// Shutdown deletes the vertex array. The core destroys all resources
// before calling it.
func (b *Backend) Shutdown() {
	if b.f == nil {
		return
	}
	b.f.BindVertexArray(0)
	b.f.DeleteVertexArray(b.vao)
	b.vao = 0
	backend.Logger().Info("gl backend shut down")
}

func (b *Backend) Features() types.Features { return b.features }
func (b *Backend) Limits() types.Limits     { return b.limits }

func (b *Backend) PixelFormat(f types.PixelFormat) types.PixelFormatInfo {
	if f >= types.NumPixelFormats {
		return types.PixelFormatInfo{}
	}
	return b.formats[f]
}

// ResetStateCache rewrites the baseline state. Call it after foreign GL
// code ran on the same context.
func (b *Backend) ResetStateCache() {
	b.f.BindVertexArray(b.vao)
	b.cache.reset(b.f)
	backend.Logger().Debug("gl state cache reset")
}

// checkError drains the GL error queue. It reports the first error.
func (b *Backend) checkError(op string) error {
	var first Enum
	// A lost context may report errors forever.
	for range 16 {
		e := b.f.GetError()
		if e == NO_ERROR {
			break
		}
		if first == NO_ERROR {
			first = e
		}
	}
	if first != NO_ERROR {
		return fmt.Errorf("gl: %s: error %#x", op, uint32(first))
	}
	return nil
}
