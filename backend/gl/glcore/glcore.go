// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glcore implements gl.Functions on top of the OpenGL 3.3 core
// profile bindings of github.com/go-gl/gl.
//
// New must be called with a GL context current on the calling thread, and
// every later call must happen on that thread.
package glcore

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	gfxgl "github.com/gogpu/gfx/backend/gl"
)

// Functions calls straight into the driver.
type Functions struct{}

var _ gfxgl.Functions = (*Functions)(nil)

// New loads the GL entry points of the current context.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glcore: init: %w", err)
	}
	return &Functions{}, nil
}

func ptr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func first[T any](s []T) *T {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

func cstr(s string) (*uint8, func()) {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	strs, free := gl.Strs(s)
	return *strs, free
}

func infoLog(n int32, get func(int32, *int32, *uint8)) string {
	if n <= 1 {
		return ""
	}
	buf := make([]uint8, n)
	get(n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (*Functions) GetError() gfxgl.Enum { return gfxgl.Enum(gl.GetError()) }

func (*Functions) GetInteger(pname gfxgl.Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (*Functions) GetString(pname gfxgl.Enum) string {
	return gl.GoStr(gl.GetString(uint32(pname)))
}

func (*Functions) GetStringi(pname gfxgl.Enum, index int) string {
	return gl.GoStr(gl.GetStringi(uint32(pname), uint32(index)))
}

func (*Functions) Flush() { gl.Flush() }

func (*Functions) GenBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (*Functions) DeleteBuffer(b uint32)                  { gl.DeleteBuffers(1, &b) }
func (*Functions) BindBuffer(target gfxgl.Enum, b uint32) { gl.BindBuffer(uint32(target), b) }

func (*Functions) BufferData(target gfxgl.Enum, size int, data []byte, usage gfxgl.Enum) {
	gl.BufferData(uint32(target), size, ptr(data), uint32(usage))
}

func (*Functions) BufferSubData(target gfxgl.Enum, offset int, data []byte) {
	gl.BufferSubData(uint32(target), offset, len(data), ptr(data))
}

func (*Functions) GenTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (*Functions) DeleteTexture(t uint32)                  { gl.DeleteTextures(1, &t) }
func (*Functions) ActiveTexture(unit gfxgl.Enum)           { gl.ActiveTexture(uint32(unit)) }
func (*Functions) BindTexture(target gfxgl.Enum, t uint32) { gl.BindTexture(uint32(target), t) }

func (*Functions) TexParameteri(target, pname gfxgl.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (*Functions) TexParameterf(target, pname gfxgl.Enum, param float32) {
	gl.TexParameterf(uint32(target), uint32(pname), param)
}

func (*Functions) TexImage2D(target gfxgl.Enum, level int, internalFormat gfxgl.Enum, width, height int, format, typ gfxgl.Enum, data []byte) {
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0,
		uint32(format), uint32(typ), ptr(data))
}

func (*Functions) TexSubImage2D(target gfxgl.Enum, level, x, y, width, height int, format, typ gfxgl.Enum, data []byte) {
	gl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height),
		uint32(format), uint32(typ), ptr(data))
}

func (*Functions) TexImage3D(target gfxgl.Enum, level int, internalFormat gfxgl.Enum, width, height, depth int, format, typ gfxgl.Enum, data []byte) {
	gl.TexImage3D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), int32(depth), 0,
		uint32(format), uint32(typ), ptr(data))
}

func (*Functions) TexSubImage3D(target gfxgl.Enum, level, x, y, z, width, height, depth int, format, typ gfxgl.Enum, data []byte) {
	gl.TexSubImage3D(uint32(target), int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth),
		uint32(format), uint32(typ), ptr(data))
}

func (*Functions) CompressedTexImage2D(target gfxgl.Enum, level int, internalFormat gfxgl.Enum, width, height int, data []byte) {
	gl.CompressedTexImage2D(uint32(target), int32(level), uint32(internalFormat), int32(width), int32(height), 0,
		int32(len(data)), ptr(data))
}

func (*Functions) CompressedTexImage3D(target gfxgl.Enum, level int, internalFormat gfxgl.Enum, width, height, depth int, data []byte) {
	gl.CompressedTexImage3D(uint32(target), int32(level), uint32(internalFormat), int32(width), int32(height), int32(depth), 0,
		int32(len(data)), ptr(data))
}

func (*Functions) GenRenderbuffer() uint32 {
	var r uint32
	gl.GenRenderbuffers(1, &r)
	return r
}

func (*Functions) DeleteRenderbuffer(r uint32) { gl.DeleteRenderbuffers(1, &r) }
func (*Functions) BindRenderbuffer(r uint32)   { gl.BindRenderbuffer(gl.RENDERBUFFER, r) }

func (*Functions) RenderbufferStorageMultisample(samples int, internalFormat gfxgl.Enum, width, height int) {
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, int32(samples), uint32(internalFormat), int32(width), int32(height))
}

func (*Functions) GenFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (*Functions) DeleteFramebuffer(fb uint32) { gl.DeleteFramebuffers(1, &fb) }

func (*Functions) BindFramebuffer(target gfxgl.Enum, fb uint32) {
	gl.BindFramebuffer(uint32(target), fb)
}

func (*Functions) FramebufferTexture2D(target, attachment, texTarget gfxgl.Enum, t uint32, level int) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), t, int32(level))
}

func (*Functions) FramebufferTextureLayer(target, attachment gfxgl.Enum, t uint32, level, layer int) {
	gl.FramebufferTextureLayer(uint32(target), uint32(attachment), t, int32(level), int32(layer))
}

func (*Functions) FramebufferRenderbuffer(target, attachment, rbTarget gfxgl.Enum, r uint32) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), r)
}

func (*Functions) CheckFramebufferStatus(target gfxgl.Enum) gfxgl.Enum {
	return gfxgl.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (*Functions) DrawBuffers(bufs []gfxgl.Enum) {
	v := make([]uint32, len(bufs))
	for i, b := range bufs {
		v[i] = uint32(b)
	}
	gl.DrawBuffers(int32(len(v)), first(v))
}

func (*Functions) ReadBuffer(src gfxgl.Enum) { gl.ReadBuffer(uint32(src)) }

func (*Functions) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask, filter gfxgl.Enum) {
	gl.BlitFramebuffer(int32(srcX0), int32(srcY0), int32(srcX1), int32(srcY1),
		int32(dstX0), int32(dstY0), int32(dstX1), int32(dstY1), uint32(mask), uint32(filter))
}

func (*Functions) CreateShader(typ gfxgl.Enum) uint32 { return gl.CreateShader(uint32(typ)) }

func (*Functions) ShaderSource(s uint32, src string) {
	strs, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(s, 1, strs, nil)
}

func (*Functions) CompileShader(s uint32) { gl.CompileShader(s) }

func (*Functions) GetShaderi(s uint32, pname gfxgl.Enum) int {
	var v int32
	gl.GetShaderiv(s, uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s uint32) string {
	n := int32(f.GetShaderi(s, gl.INFO_LOG_LENGTH))
	return infoLog(n, func(size int32, length *int32, buf *uint8) { gl.GetShaderInfoLog(s, size, length, buf) })
}

func (*Functions) DeleteShader(s uint32)    { gl.DeleteShader(s) }
func (*Functions) CreateProgram() uint32    { return gl.CreateProgram() }
func (*Functions) AttachShader(p, s uint32) { gl.AttachShader(p, s) }

func (*Functions) BindAttribLocation(p uint32, index int, name string) {
	s, free := cstr(name)
	defer free()
	gl.BindAttribLocation(p, uint32(index), s)
}

func (*Functions) LinkProgram(p uint32) { gl.LinkProgram(p) }

func (*Functions) GetProgrami(p uint32, pname gfxgl.Enum) int {
	var v int32
	gl.GetProgramiv(p, uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p uint32) string {
	n := int32(f.GetProgrami(p, gl.INFO_LOG_LENGTH))
	return infoLog(n, func(size int32, length *int32, buf *uint8) { gl.GetProgramInfoLog(p, size, length, buf) })
}

func (*Functions) DeleteProgram(p uint32) { gl.DeleteProgram(p) }
func (*Functions) UseProgram(p uint32)    { gl.UseProgram(p) }

func (*Functions) GetUniformLocation(p uint32, name string) int {
	s, free := cstr(name)
	defer free()
	return int(gl.GetUniformLocation(p, s))
}

func (*Functions) Uniform1i(loc int, v int) { gl.Uniform1i(int32(loc), int32(v)) }

func (*Functions) Uniform1fv(loc int, v []float32) {
	gl.Uniform1fv(int32(loc), int32(len(v)), first(v))
}

func (*Functions) Uniform2fv(loc int, v []float32) {
	gl.Uniform2fv(int32(loc), int32(len(v)/2), first(v))
}

func (*Functions) Uniform3fv(loc int, v []float32) {
	gl.Uniform3fv(int32(loc), int32(len(v)/3), first(v))
}

func (*Functions) Uniform4fv(loc int, v []float32) {
	gl.Uniform4fv(int32(loc), int32(len(v)/4), first(v))
}

func (*Functions) UniformMatrix4fv(loc int, v []float32) {
	gl.UniformMatrix4fv(int32(loc), int32(len(v)/16), false, first(v))
}

func (*Functions) GenVertexArray() uint32 {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return a
}

func (*Functions) DeleteVertexArray(a uint32)         { gl.DeleteVertexArrays(1, &a) }
func (*Functions) BindVertexArray(a uint32)           { gl.BindVertexArray(a) }
func (*Functions) EnableVertexAttribArray(index int)  { gl.EnableVertexAttribArray(uint32(index)) }
func (*Functions) DisableVertexAttribArray(index int) { gl.DisableVertexAttribArray(uint32(index)) }

func (*Functions) VertexAttribPointer(index, size int, typ gfxgl.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(index), int32(size), uint32(typ), normalized, int32(stride), gl.PtrOffset(offset))
}

func (*Functions) VertexAttribDivisor(index, divisor int) {
	gl.VertexAttribDivisor(uint32(index), uint32(divisor))
}

func (*Functions) Enable(cap gfxgl.Enum)     { gl.Enable(uint32(cap)) }
func (*Functions) Disable(cap gfxgl.Enum)    { gl.Disable(uint32(cap)) }
func (*Functions) DepthFunc(fn gfxgl.Enum)   { gl.DepthFunc(uint32(fn)) }
func (*Functions) DepthMask(write bool)      { gl.DepthMask(write) }
func (*Functions) StencilMask(mask uint32)   { gl.StencilMask(mask) }
func (*Functions) CullFace(mode gfxgl.Enum)  { gl.CullFace(uint32(mode)) }
func (*Functions) FrontFace(mode gfxgl.Enum) { gl.FrontFace(uint32(mode)) }

func (*Functions) StencilFuncSeparate(face, fn gfxgl.Enum, ref int, mask uint32) {
	gl.StencilFuncSeparate(uint32(face), uint32(fn), int32(ref), mask)
}

func (*Functions) StencilOpSeparate(face, sfail, dpfail, dppass gfxgl.Enum) {
	gl.StencilOpSeparate(uint32(face), uint32(sfail), uint32(dpfail), uint32(dppass))
}

func (*Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gfxgl.Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (*Functions) BlendEquationSeparate(modeRGB, modeA gfxgl.Enum) {
	gl.BlendEquationSeparate(uint32(modeRGB), uint32(modeA))
}

func (*Functions) BlendColor(r, g, b, a float32)       { gl.BlendColor(r, g, b, a) }
func (*Functions) ColorMask(r, g, b, a bool)           { gl.ColorMask(r, g, b, a) }
func (*Functions) PolygonOffset(factor, units float32) { gl.PolygonOffset(factor, units) }
func (*Functions) Viewport(x, y, width, height int)    { gl.Viewport(int32(x), int32(y), int32(width), int32(height)) }
func (*Functions) Scissor(x, y, width, height int)     { gl.Scissor(int32(x), int32(y), int32(width), int32(height)) }

func (*Functions) ClearBufferfv(buffer gfxgl.Enum, drawBuffer int, value []float32) {
	gl.ClearBufferfv(uint32(buffer), int32(drawBuffer), first(value))
}

func (*Functions) ClearBufferiv(buffer gfxgl.Enum, drawBuffer int, value []int32) {
	gl.ClearBufferiv(uint32(buffer), int32(drawBuffer), first(value))
}

func (*Functions) DrawArraysInstanced(mode gfxgl.Enum, first, count, instances int) {
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

func (*Functions) DrawElementsInstanced(mode gfxgl.Enum, count int, typ gfxgl.Enum, offset, instances int) {
	gl.DrawElementsInstanced(uint32(mode), int32(count), uint32(typ), gl.PtrOffset(offset), int32(instances))
}
