// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gfx is the resource-management core of a graphics-API-agnostic
// rendering layer.
//
// # Overview
//
// gfx hands out typed, generation-counted handles for GPU resources
// (buffers, images, shaders, pipelines and passes), drives each resource
// through a uniform lifecycle on one of several interchangeable backends,
// and exposes a small immediate-mode draw surface on top of them.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gfx"
//	    _ "github.com/gogpu/gfx/backend/gl"
//	)
//
//	ctx, err := gfx.New(gfx.Config{Environment: env})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Shutdown()
//
//	vbuf := ctx.MakeBuffer(gfx.BufferDescOf(types.BufferTypeVertex, vertices, "quad"))
//	if ctx.QueryBufferState(vbuf) != types.StateValid {
//	    // creation failed; the reason was logged
//	}
//
// # Handles and Lifecycle
//
// A handle is (generation << 16) | slot. A destroyed handle never matches
// the next resource in its slot, so stale handles query as Invalid instead
// of aliasing a new resource. Every resource moves through
//
//	Initial -> Alloc -> Valid | Failed -> Initial
//
// Pool exhaustion yields the zero handle. Creation failures leave the
// resource Failed; binding or drawing with a Failed resource is a silent
// no-op, so one broken resource only affects its own draws.
//
// # Backends
//
// Backends register themselves on import (see package backend). The gl
// backend elides redundant driver state changes; the hal backend defers
// native destruction until in-flight frames can no longer use a resource.
//
// # Debug Mode
//
// With WithDebug, API misuse (drawing outside a pass, destroying a handle
// twice, applying a pipeline whose shader was destroyed) panics. Without
// it, misuse is logged and the call is ignored.
//
// # Concurrency
//
// A Context must be used from a single goroutine.
package gfx
