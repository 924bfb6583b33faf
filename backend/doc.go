// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend defines the contract between the gfx core and the
// graphics API implementations.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at setup time.
// Import the implementation for its side effect:
//
//	import _ "github.com/gogpu/gfx/backend/gl"
//
// # Backend Selection
//
// gfx.New tries the backend named in its config, or else every registered
// backend in priority order (hal, d3d11, gl, dummy) until one accepts the
// environment.
//
// # Resource Ownership
//
// The core owns the resource records (package internal/resource) and their
// lifecycle state. A backend keeps the native objects for each record in
// its own storage indexed by slot, so records never depend on a graphics
// API.
package backend
