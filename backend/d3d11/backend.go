// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"fmt"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

func init() {
	backend.Register(backend.NameD3D11, func() backend.Backend { return New() })
}

// Environment is accepted in backend.Environment.Device, by value or
// pointer. Alternatively Device and Context may be passed directly in the
// Device and Context fields of backend.Environment, with a Swapchain in
// its Swapchain field.
type Environment struct {
	Device    Device
	Context   DeviceContext
	Swapchain Swapchain
	// Compiler is needed only for shaders given as HLSL source.
	Compiler Compiler
}

// Feature level 11.0 limits.
const (
	maxImageSize2D      = 16384
	maxImageSize3D      = 2048
	maxImageArrayLayers = 2048
	maxVertexAttrs      = 16
)

// Backend is the Direct3D 11 back-end.
type Backend struct {
	dev  Device
	ctx  DeviceContext
	sc   Swapchain
	comp Compiler
	cfg  backend.Config

	formats [types.NumPixelFormats]types.PixelFormatInfo

	buffers   *resource.Side[d3dBuffer]
	images    *resource.Side[d3dImage]
	shaders   *resource.Side[d3dShader]
	pipelines *resource.Side[d3dPipeline]
	passes    *resource.Side[d3dPass]

	curPass     *resource.Pass
	curHeight   int
	curPipeline *resource.Pipeline
	// scratch pads uniform data to the 16-byte constant buffer size.
	scratch []byte
}

// New returns an uninitialised D3D11 back-end.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return backend.NameD3D11 }

func (b *Backend) Setup(cfg backend.Config) error {
	switch env := cfg.Env.Device.(type) {
	case Environment:
		b.dev, b.ctx, b.sc, b.comp = env.Device, env.Context, env.Swapchain, env.Compiler
	case *Environment:
		if env != nil {
			b.dev, b.ctx, b.sc, b.comp = env.Device, env.Context, env.Swapchain, env.Compiler
		}
	case Device:
		b.dev = env
		b.ctx, _ = cfg.Env.Context.(DeviceContext)
		b.sc, _ = cfg.Env.Swapchain.(Swapchain)
		b.comp, _ = env.(Compiler)
	}
	if b.dev == nil || b.ctx == nil {
		return fmt.Errorf("d3d11: %w: need a Device and a DeviceContext", backend.ErrNoDevice)
	}
	b.cfg = cfg
	b.initPixelFormats()

	s := cfg.Sizes
	b.buffers = resource.NewSide[d3dBuffer](s.Buffers)
	b.images = resource.NewSide[d3dImage](s.Images)
	b.shaders = resource.NewSide[d3dShader](s.Shaders)
	b.pipelines = resource.NewSide[d3dPipeline](s.Pipelines)
	b.passes = resource.NewSide[d3dPass](s.Passes)

	backend.Logger().Info("d3d11 backend ready", "swapchain", b.sc != nil, "compiler", b.comp != nil)
	return nil
}

func (b *Backend) initPixelFormats() {
	for f := types.PixelFormatR8; f < types.NumPixelFormats; f++ {
		dxgi := textureFormat(f)
		if dxgi == FormatUnknown {
			continue
		}
		bits := b.dev.CheckFormatSupport(dxgi)
		has := func(mask uint32) bool { return bits&mask == mask }
		info := types.PixelFormatInfo{
			Sample: has(FormatSupportTexture2D | FormatSupportShaderSample),
			Render: has(FormatSupportRenderTarget),
			Blend:  has(FormatSupportBlendable),
			MSAA:   has(FormatSupportMSAARenderTarget),
			Depth:  has(FormatSupportDepthStencil),
		}
		switch f {
		case types.PixelFormatR8UI, types.PixelFormatR8SI:
		default:
			info.Filter = info.Sample
		}
		if info.Depth {
			info.Render = true
		}
		b.formats[f] = info
	}
}

// Shutdown drops the device references. The core destroys all resources
// before calling it.
func (b *Backend) Shutdown() {
	b.dev, b.ctx, b.sc, b.comp = nil, nil, nil, nil
	backend.Logger().Info("d3d11 backend shut down")
}

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
		MaxImageSize2D:      maxImageSize2D,
		MaxImageSizeCube:    maxImageSize2D,
		MaxImageSize3D:      maxImageSize3D,
		MaxImageSizeArray:   maxImageSize2D,
		MaxImageArrayLayers: maxImageArrayLayers,
		MaxVertexAttrs:      maxVertexAttrs,
	}
}

func (b *Backend) PixelFormat(f types.PixelFormat) types.PixelFormatInfo {
	if f >= types.NumPixelFormats {
		return types.PixelFormatInfo{}
	}
	return b.formats[f]
}

// ResetStateCache does nothing: every apply call sets the complete state
// of its stage.
func (b *Backend) ResetStateCache() {}

// release releases every non-nil object.
func release(objs ...Unknown) {
	for _, o := range objs {
		if o != nil {
			o.Release()
		}
	}
}
