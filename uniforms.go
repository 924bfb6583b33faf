// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"honnef.co/go/safeish"

	"github.com/gogpu/gfx/types"
)

// Typed helpers over the byte-oriented API. T must be plain data (no
// pointers, slices or strings); its in-memory layout is what the GPU sees.

// AsBytes reinterprets s as bytes without copying.
func AsBytes[T any](s []T) []byte {
	return safeish.SliceCast[[]byte](s)
}

// ApplyUniformsOf uploads the value v as uniform block slot of stage.
func ApplyUniformsOf[T any](c *Context, stage types.ShaderStage, slot int, v T) {
	c.ApplyUniforms(stage, slot, AsBytes([]T{v}))
}

// BufferDescOf returns an immutable buffer descriptor holding s.
func BufferDescOf[T any](typ types.BufferType, s []T, label string) types.BufferDesc {
	data := AsBytes(s)
	return types.BufferDesc{
		Size:    len(data),
		Type:    typ,
		Usage:   types.UsageImmutable,
		Content: data,
		Label:   label,
	}
}

// UpdateBufferOf replaces the content of buf with s.
func UpdateBufferOf[T any](c *Context, buf types.Buffer, s []T) {
	c.UpdateBuffer(buf, AsBytes(s))
}

// AppendBufferOf appends s to buf and returns its byte offset.
func AppendBufferOf[T any](c *Context, buf types.Buffer, s []T) int {
	return c.AppendBuffer(buf, AsBytes(s))
}
