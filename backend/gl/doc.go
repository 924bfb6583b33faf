// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl implements the OpenGL 3.3 core back-end.
//
// The back-end never calls GL directly. It drives a Functions value taken
// from backend.Environment.Context, which keeps it free of cgo and lets
// tests substitute a recording fake. Package glcore provides Functions on
// top of github.com/go-gl/gl.
//
// # State cache
//
// GL is an immediate-mode API where every state change is a driver call.
// The back-end routes all state changes through a mirror of the last state
// it issued and drops calls that would not change anything. Applying the
// same pipeline twice costs no driver calls; changing one field of a
// pipeline costs only the calls of that field's family.
//
// The mirror is reset to a baseline at every BeginPass and on
// ResetStateCache, writing the baseline to the driver in full. Deleting a
// buffer, texture or program drops the mirrored references to it.
//
// Importing the package registers it under backend.NameGL.
package gl
