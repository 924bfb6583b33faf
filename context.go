// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// Context owns the resource tables and the active backend.
//
// All methods must be called from one goroutine; Context does no locking.
// Calling any method after Shutdown is a misuse.
type Context struct {
	cfg     Config
	debug   bool
	log     *slog.Logger
	backend backend.Backend
	tables  *resource.Tables

	frame uint64
	valid bool

	// per-pass state
	inPass        bool
	passValid     bool
	curPass       types.Pass
	curPipeline   types.Pipeline
	nextDrawValid bool
	bindingsSet   bool
	backendPass   bool           // backend has a pass open
	bound         types.Bindings // last successful ApplyBindings
	curWidth      int
	curHeight     int

	stats     FrameStats
	lastStats FrameStats
}

// New sets up a Context. It selects the backend given by WithBackend,
// by cfg.BackendName, or else the first registered backend in priority
// order whose Setup succeeds.
func New(cfg Config, opts ...Option) (*Context, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cfg = cfg.withDefaults()

	c := &Context{
		cfg:   cfg,
		debug: o.debug,
		log:   o.logger,
		frame: 1,
	}
	c.tables = resource.NewTables(cfg.sizes(), o.debug)

	bcfg := backend.Config{
		Sizes:             cfg.sizes(),
		UniformBufferSize: cfg.UniformBufferSize,
		Frame:             func() uint64 { return c.frame },
		Debug:             o.debug,
		Env:               cfg.Environment,
	}

	b, err := selectBackend(o.backend, cfg.BackendName, bcfg)
	if err != nil {
		return nil, err
	}
	c.backend = b
	c.valid = true
	c.logger().Info("gfx: setup complete",
		"backend", b.Name(),
		"buffers", cfg.BufferPoolSize,
		"images", cfg.ImagePoolSize,
		"shaders", cfg.ShaderPoolSize,
		"pipelines", cfg.PipelinePoolSize,
		"passes", cfg.PassPoolSize,
		"debug", o.debug)
	return c, nil
}

func selectBackend(injected backend.Backend, name string, cfg backend.Config) (backend.Backend, error) {
	if injected != nil {
		if err := injected.Setup(cfg); err != nil {
			return nil, fmt.Errorf("gfx: setup backend %q: %w", injected.Name(), err)
		}
		return injected, nil
	}
	if name != "" {
		b := backend.Get(name)
		if b == nil {
			return nil, fmt.Errorf("gfx: backend %q: %w", name, backend.ErrBackendNotAvailable)
		}
		if err := b.Setup(cfg); err != nil {
			return nil, fmt.Errorf("gfx: setup backend %q: %w", name, err)
		}
		return b, nil
	}
	var errs []error
	for _, candidate := range backend.Candidates() {
		b := backend.Get(candidate)
		if b == nil {
			continue
		}
		err := b.Setup(cfg)
		if err == nil {
			return b, nil
		}
		Logger().Debug("gfx: backend rejected environment", "backend", candidate, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", candidate, err))
	}
	if len(errs) == 0 {
		return nil, ErrNoBackend
	}
	return nil, fmt.Errorf("%w: %v", ErrNoBackend, errs)
}

// Shutdown destroys every live resource and releases the backend.
// The Context must not be used afterwards.
func (c *Context) Shutdown() {
	if !c.valid {
		return
	}
	if c.inPass {
		c.misuse("Shutdown called inside a pass")
		c.backend.EndPass()
		c.inPass = false
	}
	t := c.tables
	t.Passes.Each(func(p *resource.Pass) { c.destroyPass(p.ID) })
	t.Pipelines.Each(func(p *resource.Pipeline) { c.destroyPipeline(p.ID) })
	t.Shaders.Each(func(s *resource.Shader) { c.destroyShader(s.ID) })
	t.Images.Each(func(i *resource.Image) { c.destroyImage(i.ID) })
	t.Buffers.Each(func(b *resource.Buffer) { c.destroyBuffer(b.ID) })
	c.backend.Shutdown()
	c.valid = false
	c.logger().Info("gfx: shutdown", "backend", c.backend.Name(), "frames", c.frame-1)
}

// IsValid reports whether the Context is set up and not shut down.
func (c *Context) IsValid() bool { return c.valid }

// Frame returns the index of the frame being recorded. It starts at 1 and
// is advanced by Commit.
func (c *Context) Frame() uint64 { return c.frame }

// QueryBackend returns the name of the active backend.
func (c *Context) QueryBackend() string { return c.backend.Name() }

// QueryFeatures returns the optional capabilities of the backend.
func (c *Context) QueryFeatures() types.Features { return c.backend.Features() }

// QueryLimits returns the size limits of the backend.
func (c *Context) QueryLimits() types.Limits { return c.backend.Limits() }

// QueryPixelFormat reports what the backend can do with f.
func (c *Context) QueryPixelFormat(f types.PixelFormat) types.PixelFormatInfo {
	return c.backend.PixelFormat(f)
}

// ResetStateCache makes the backend forget cached driver state. Call it
// after foreign code has issued native API calls on the same device.
func (c *Context) ResetStateCache() {
	if c.checkValid("ResetStateCache") {
		c.backend.ResetStateCache()
	}
}

func (c *Context) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}
