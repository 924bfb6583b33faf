// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// DefaultUniformBufferSize is the default per-frame uniform staging size.
const DefaultUniformBufferSize = 4 << 20

// Config configures a Context.
// Zero values use defaults, so an empty Config is valid.
type Config struct {
	// Pool capacities per resource kind. Defaults: 128 buffers, 128
	// images, 32 shaders, 64 pipelines, 16 passes.
	BufferPoolSize   int
	ImagePoolSize    int
	ShaderPoolSize   int
	PipelinePoolSize int
	PassPoolSize     int

	// UniformBufferSize is the per-frame uniform staging size in bytes for
	// back-ends that stream uniforms through a buffer.
	UniformBufferSize int

	// ColorFormat, DepthFormat and SampleCount describe the default pass.
	// Pipelines with unset formats inherit them. Defaults: RGBA8,
	// DepthStencil, 1.
	ColorFormat types.PixelFormat
	DepthFormat types.PixelFormat
	SampleCount int

	// BackendName selects a registered backend. Empty tries every
	// registered backend in priority order.
	BackendName string

	// Environment carries the native device objects for the backend.
	Environment backend.Environment
}

// withDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	c.BufferPoolSize = orDefault(c.BufferPoolSize, types.DefaultBufferPoolSize)
	c.ImagePoolSize = orDefault(c.ImagePoolSize, types.DefaultImagePoolSize)
	c.ShaderPoolSize = orDefault(c.ShaderPoolSize, types.DefaultShaderPoolSize)
	c.PipelinePoolSize = orDefault(c.PipelinePoolSize, types.DefaultPipelinePoolSize)
	c.PassPoolSize = orDefault(c.PassPoolSize, types.DefaultPassPoolSize)
	c.UniformBufferSize = orDefault(c.UniformBufferSize, DefaultUniformBufferSize)
	c.SampleCount = orDefault(c.SampleCount, 1)
	if c.ColorFormat == types.PixelFormatDefault {
		c.ColorFormat = types.PixelFormatRGBA8
	}
	if c.DepthFormat == types.PixelFormatDefault {
		c.DepthFormat = types.PixelFormatDepthStencil
	}
	return c
}

func (c Config) sizes() resource.Sizes {
	return resource.Sizes{
		Buffers:   c.BufferPoolSize,
		Images:    c.ImagePoolSize,
		Shaders:   c.ShaderPoolSize,
		Pipelines: c.PipelinePoolSize,
		Passes:    c.PassPoolSize,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
