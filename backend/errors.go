// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoDevice is returned by Setup when the environment lacks a usable device.
	ErrNoDevice = errors.New("backend: no usable device in environment")

	// ErrUnsupportedPixelFormat is returned when a back-end cannot represent a pixel format.
	ErrUnsupportedPixelFormat = errors.New("backend: unsupported pixel format")

	// ErrUnsupportedVertexFormat is returned when a back-end cannot represent a vertex format.
	ErrUnsupportedVertexFormat = errors.New("backend: unsupported vertex format")

	// ErrUnsupportedImageType is returned for image types a back-end lacks.
	ErrUnsupportedImageType = errors.New("backend: unsupported image type")

	// ErrShaderCompile is returned when shader compilation or linking fails.
	ErrShaderCompile = errors.New("backend: shader compilation failed")

	// ErrPipeline is returned when native pipeline creation fails.
	ErrPipeline = errors.New("backend: pipeline creation failed")

	// ErrPassIncomplete is returned when a render pass's attachments are rejected.
	ErrPassIncomplete = errors.New("backend: render pass incomplete")
)
