// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"log/slog"

	"github.com/gogpu/gfx/backend"
)

// Option configures a Context during creation.
//
// Example:
//
//	// Backend chosen from the registry
//	ctx, err := gfx.New(gfx.Config{})
//
//	// Injected backend with debug validation
//	ctx, err := gfx.New(gfx.Config{}, gfx.WithBackend(b), gfx.WithDebug())
type Option func(*options)

// options holds optional configuration for Context creation.
type options struct {
	backend backend.Backend
	logger  *slog.Logger
	debug   bool
}

// WithBackend uses b instead of looking a backend up in the registry.
// Config.BackendName is ignored.
func WithBackend(b backend.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets a logger for this Context only. Without it the Context
// logs through the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDebug enables debug checks: API misuse panics with a descriptive
// message instead of being logged and ignored, and the slot pools detect
// double frees.
func WithDebug() Option {
	return func(o *options) {
		o.debug = true
	}
}
