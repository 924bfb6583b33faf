// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package d3d11 implements the Direct3D 11 back-end.
//
// The back-end does not link against d3d11.dll. The host supplies a Device,
// a DeviceContext and optionally a Swapchain and a Compiler, wrapping its
// own COM bindings, through an Environment in backend.Environment.Device.
// Every native object the back-end creates is released exactly once, on
// destroy or when a later step of the same creation fails.
//
// D3D11 renames dynamic resources inside the driver, so each buffer and
// image owns a single native object regardless of its usage. Updates map
// with WRITE_DISCARD; appends after the first one of a frame map with
// WRITE_NO_OVERWRITE.
//
// Importing the package registers it under backend.NameD3D11.
package d3d11
