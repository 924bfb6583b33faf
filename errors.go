// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "errors"

// Errors returned by New and reported through the logger.
var (
	// ErrNoBackend is returned by New when no registered backend accepts
	// the environment.
	ErrNoBackend = errors.New("gfx: no usable backend")

	// ErrValidation wraps descriptor validation failures.
	ErrValidation = errors.New("gfx: validation failed")

	// ErrDependency is reported when a resource references another one
	// that is not valid.
	ErrDependency = errors.New("gfx: dependent resource not valid")
)
