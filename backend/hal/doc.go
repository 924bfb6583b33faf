// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hal implements the back-end for Metal, Vulkan and DX12 devices
// on top of the gogpu/wgpu hardware abstraction layer.
//
// Unlike GL and D3D11, these APIs do not track which objects a submitted
// command buffer uses. The back-end therefore keeps every native object in
// a deferred-release side table (see internal/release): destroying a
// resource only queues its objects, and Commit drops them once no frame
// that could reference them is in flight. A weighted semaphore bounds the
// frames in flight. Every submission records the queue's submission index,
// and the first pass of a frame polls the queue until a frame has
// completed.
//
// Dynamic and stream buffers and images own one native copy per in-flight
// frame and write to the next copy on every update.
//
// Shaders are given as WGSL source, compiled to SPIR-V with naga, or as
// SPIR-V bytecode. Bind group 0 holds the uniform blocks, groups 1 and 2
// the images of the vertex and fragment stage.
//
// Importing the package registers it under backend.NameHAL.
package hal
