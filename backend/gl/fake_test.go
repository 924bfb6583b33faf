// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"
	"strings"
)

// fakeGL records every call in order. Object names are handed out from a
// single counter.
type fakeGL struct {
	calls []string
	next  uint32

	failCompile bool
	failLink    bool
	incomplete  bool
	errors      []Enum
	extensions  []string
	uniforms    map[string]int
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		extensions: []string{"GL_EXT_texture_compression_s3tc", "GL_EXT_texture_filter_anisotropic"},
		uniforms:   map[string]int{},
	}
}

func (f *fakeGL) rec(name string, args ...any) {
	if len(args) == 0 {
		f.calls = append(f.calls, name)
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case []byte:
			parts[i] = fmt.Sprintf("[%d]byte", len(v))
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	f.calls = append(f.calls, name+"("+strings.Join(parts, ",")+")")
}

func (f *fakeGL) gen() uint32 {
	f.next++
	return f.next
}

// clear forgets recorded calls.
func (f *fakeGL) clear() { f.calls = nil }

// count returns the number of recorded calls to any of names.
func (f *fakeGL) count(names ...string) int {
	n := 0
	for _, c := range f.calls {
		name, _, _ := strings.Cut(c, "(")
		for _, want := range names {
			if name == want {
				n++
			}
		}
	}
	return n
}

// has reports whether the exact call was recorded.
func (f *fakeGL) has(call string) bool {
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

// stateCalls are the calls the state cache is responsible for eliding.
var stateCalls = []string{
	"Enable", "Disable", "DepthFunc", "DepthMask", "StencilFuncSeparate",
	"StencilOpSeparate", "StencilMask", "BlendFuncSeparate",
	"BlendEquationSeparate", "BlendColor", "ColorMask", "CullFace",
	"FrontFace", "PolygonOffset", "UseProgram", "BindBuffer",
	"VertexAttribPointer", "VertexAttribDivisor", "EnableVertexAttribArray",
	"DisableVertexAttribArray", "ActiveTexture", "BindTexture",
}

func (f *fakeGL) GetError() Enum {
	if len(f.errors) == 0 {
		return NO_ERROR
	}
	e := f.errors[0]
	f.errors = f.errors[1:]
	return e
}

func (f *fakeGL) GetInteger(pname Enum) int {
	switch pname {
	case NUM_EXTENSIONS:
		return len(f.extensions)
	case MAX_VERTEX_ATTRIBS:
		return 16
	case MAX_ARRAY_TEXTURE_LAYERS:
		return 256
	default:
		return 4096
	}
}

func (f *fakeGL) GetString(pname Enum) string {
	switch pname {
	case VERSION:
		return "3.3.0 fake"
	case RENDERER:
		return "fake renderer"
	}
	return ""
}

func (f *fakeGL) GetStringi(pname Enum, index int) string { return f.extensions[index] }
func (f *fakeGL) Flush()                                  { f.rec("Flush") }

func (f *fakeGL) GenBuffer() uint32 {
	id := f.gen()
	f.rec("GenBuffer")
	return id
}
func (f *fakeGL) DeleteBuffer(b uint32)            { f.rec("DeleteBuffer", b) }
func (f *fakeGL) BindBuffer(target Enum, b uint32) { f.rec("BindBuffer", uint32(target), b) }
func (f *fakeGL) BufferData(target Enum, size int, data []byte, usage Enum) {
	f.rec("BufferData", uint32(target), size, data, uint32(usage))
}
func (f *fakeGL) BufferSubData(target Enum, offset int, data []byte) {
	f.rec("BufferSubData", uint32(target), offset, data)
}

func (f *fakeGL) GenTexture() uint32 {
	id := f.gen()
	f.rec("GenTexture")
	return id
}
func (f *fakeGL) DeleteTexture(t uint32)            { f.rec("DeleteTexture", t) }
func (f *fakeGL) ActiveTexture(unit Enum)           { f.rec("ActiveTexture", uint32(unit-TEXTURE0)) }
func (f *fakeGL) BindTexture(target Enum, t uint32) { f.rec("BindTexture", uint32(target), t) }
func (f *fakeGL) TexParameteri(target, pname Enum, param int) {
	f.rec("TexParameteri", uint32(pname), param)
}
func (f *fakeGL) TexParameterf(target, pname Enum, param float32) {
	f.rec("TexParameterf", uint32(pname), param)
}
func (f *fakeGL) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum, data []byte) {
	f.rec("TexImage2D", uint32(target), level, width, height, data)
}
func (f *fakeGL) TexSubImage2D(target Enum, level, x, y, width, height int, format, typ Enum, data []byte) {
	f.rec("TexSubImage2D", uint32(target), level, width, height, data)
}
func (f *fakeGL) TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, format, typ Enum, data []byte) {
	f.rec("TexImage3D", uint32(target), level, width, height, depth, data)
}
func (f *fakeGL) TexSubImage3D(target Enum, level, x, y, z, width, height, depth int, format, typ Enum, data []byte) {
	f.rec("TexSubImage3D", uint32(target), level, width, height, depth, data)
}
func (f *fakeGL) CompressedTexImage2D(target Enum, level int, internalFormat Enum, width, height int, data []byte) {
	f.rec("CompressedTexImage2D", uint32(target), level, width, height, data)
}
func (f *fakeGL) CompressedTexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, data []byte) {
	f.rec("CompressedTexImage3D", uint32(target), level, width, height, depth, data)
}

func (f *fakeGL) GenRenderbuffer() uint32 {
	id := f.gen()
	f.rec("GenRenderbuffer")
	return id
}
func (f *fakeGL) DeleteRenderbuffer(r uint32) { f.rec("DeleteRenderbuffer", r) }
func (f *fakeGL) BindRenderbuffer(r uint32)   { f.rec("BindRenderbuffer", r) }
func (f *fakeGL) RenderbufferStorageMultisample(samples int, internalFormat Enum, width, height int) {
	f.rec("RenderbufferStorageMultisample", samples, width, height)
}

func (f *fakeGL) GenFramebuffer() uint32 {
	id := f.gen()
	f.rec("GenFramebuffer")
	return id
}
func (f *fakeGL) DeleteFramebuffer(fb uint32)            { f.rec("DeleteFramebuffer", fb) }
func (f *fakeGL) BindFramebuffer(target Enum, fb uint32) { f.rec("BindFramebuffer", uint32(target), fb) }
func (f *fakeGL) FramebufferTexture2D(target, attachment, texTarget Enum, t uint32, level int) {
	f.rec("FramebufferTexture2D", uint32(attachment), t, level)
}
func (f *fakeGL) FramebufferTextureLayer(target, attachment Enum, t uint32, level, layer int) {
	f.rec("FramebufferTextureLayer", uint32(attachment), t, level, layer)
}
func (f *fakeGL) FramebufferRenderbuffer(target, attachment, rbTarget Enum, r uint32) {
	f.rec("FramebufferRenderbuffer", uint32(attachment), r)
}
func (f *fakeGL) CheckFramebufferStatus(target Enum) Enum {
	f.rec("CheckFramebufferStatus")
	if f.incomplete {
		return 0x8CD6
	}
	return FRAMEBUFFER_COMPLETE
}
func (f *fakeGL) DrawBuffers(bufs []Enum) { f.rec("DrawBuffers", len(bufs)) }
func (f *fakeGL) ReadBuffer(src Enum)     { f.rec("ReadBuffer", uint32(src)) }
func (f *fakeGL) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask, filter Enum) {
	f.rec("BlitFramebuffer", srcX1, srcY1)
}

func (f *fakeGL) CreateShader(typ Enum) uint32 {
	id := f.gen()
	f.rec("CreateShader", uint32(typ))
	return id
}
func (f *fakeGL) ShaderSource(s uint32, src string) { f.rec("ShaderSource", s) }
func (f *fakeGL) CompileShader(s uint32)            { f.rec("CompileShader", s) }
func (f *fakeGL) GetShaderi(s uint32, pname Enum) int {
	if f.failCompile {
		return 0
	}
	return 1
}
func (f *fakeGL) GetShaderInfoLog(s uint32) string { return "0:1: syntax error" }
func (f *fakeGL) DeleteShader(s uint32)            { f.rec("DeleteShader", s) }
func (f *fakeGL) CreateProgram() uint32 {
	id := f.gen()
	f.rec("CreateProgram")
	return id
}
func (f *fakeGL) AttachShader(p, s uint32) { f.rec("AttachShader", p, s) }
func (f *fakeGL) BindAttribLocation(p uint32, index int, name string) {
	f.rec("BindAttribLocation", index, name)
}
func (f *fakeGL) LinkProgram(p uint32) { f.rec("LinkProgram", p) }
func (f *fakeGL) GetProgrami(p uint32, pname Enum) int {
	if f.failLink {
		return 0
	}
	return 1
}
func (f *fakeGL) GetProgramInfoLog(p uint32) string { return "link error" }
func (f *fakeGL) DeleteProgram(p uint32)            { f.rec("DeleteProgram", p) }
func (f *fakeGL) UseProgram(p uint32)               { f.rec("UseProgram", p) }
func (f *fakeGL) GetUniformLocation(p uint32, name string) int {
	if loc, ok := f.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeGL) Uniform1i(loc int, v int)              { f.rec("Uniform1i", loc, v) }
func (f *fakeGL) Uniform1fv(loc int, v []float32)       { f.rec("Uniform1fv", loc, len(v)) }
func (f *fakeGL) Uniform2fv(loc int, v []float32)       { f.rec("Uniform2fv", loc, len(v)) }
func (f *fakeGL) Uniform3fv(loc int, v []float32)       { f.rec("Uniform3fv", loc, len(v)) }
func (f *fakeGL) Uniform4fv(loc int, v []float32)       { f.rec("Uniform4fv", loc, len(v)) }
func (f *fakeGL) UniformMatrix4fv(loc int, v []float32) { f.rec("UniformMatrix4fv", loc, len(v)) }

func (f *fakeGL) GenVertexArray() uint32 {
	id := f.gen()
	f.rec("GenVertexArray")
	return id
}
func (f *fakeGL) DeleteVertexArray(a uint32)         { f.rec("DeleteVertexArray", a) }
func (f *fakeGL) BindVertexArray(a uint32)           { f.rec("BindVertexArray", a) }
func (f *fakeGL) EnableVertexAttribArray(index int)  { f.rec("EnableVertexAttribArray", index) }
func (f *fakeGL) DisableVertexAttribArray(index int) { f.rec("DisableVertexAttribArray", index) }
func (f *fakeGL) VertexAttribPointer(index, size int, typ Enum, normalized bool, stride, offset int) {
	f.rec("VertexAttribPointer", index, size, stride, offset)
}
func (f *fakeGL) VertexAttribDivisor(index, divisor int) { f.rec("VertexAttribDivisor", index, divisor) }

func (f *fakeGL) Enable(cap Enum)         { f.rec("Enable", capName(cap)) }
func (f *fakeGL) Disable(cap Enum)        { f.rec("Disable", capName(cap)) }
func (f *fakeGL) DepthFunc(fn Enum)       { f.rec("DepthFunc", uint32(fn)) }
func (f *fakeGL) DepthMask(write bool)    { f.rec("DepthMask", write) }
func (f *fakeGL) StencilMask(mask uint32) { f.rec("StencilMask", mask) }
func (f *fakeGL) StencilFuncSeparate(face, fn Enum, ref int, mask uint32) {
	f.rec("StencilFuncSeparate", uint32(face), uint32(fn), ref, mask)
}
func (f *fakeGL) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	f.rec("StencilOpSeparate", uint32(face))
}
func (f *fakeGL) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum) {
	f.rec("BlendFuncSeparate", uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}
func (f *fakeGL) BlendEquationSeparate(modeRGB, modeA Enum) {
	f.rec("BlendEquationSeparate", uint32(modeRGB), uint32(modeA))
}
func (f *fakeGL) BlendColor(r, g, b, a float32)       { f.rec("BlendColor", r, g, b, a) }
func (f *fakeGL) ColorMask(r, g, b, a bool)           { f.rec("ColorMask", r, g, b, a) }
func (f *fakeGL) CullFace(mode Enum)                  { f.rec("CullFace", uint32(mode)) }
func (f *fakeGL) FrontFace(mode Enum)                 { f.rec("FrontFace", uint32(mode)) }
func (f *fakeGL) PolygonOffset(factor, units float32) { f.rec("PolygonOffset", factor, units) }
func (f *fakeGL) Viewport(x, y, width, height int)    { f.rec("Viewport", x, y, width, height) }
func (f *fakeGL) Scissor(x, y, width, height int)     { f.rec("Scissor", x, y, width, height) }

func (f *fakeGL) ClearBufferfv(buffer Enum, drawBuffer int, value []float32) {
	f.rec("ClearBufferfv", uint32(buffer), drawBuffer)
}
func (f *fakeGL) ClearBufferiv(buffer Enum, drawBuffer int, value []int32) {
	f.rec("ClearBufferiv", uint32(buffer), drawBuffer)
}

func (f *fakeGL) DrawArraysInstanced(mode Enum, first, count, instances int) {
	f.rec("DrawArraysInstanced", uint32(mode), first, count, instances)
}
func (f *fakeGL) DrawElementsInstanced(mode Enum, count int, typ Enum, offset, instances int) {
	f.rec("DrawElementsInstanced", uint32(mode), count, uint32(typ), offset, instances)
}

func capName(c Enum) string {
	switch c {
	case CULL_FACE:
		return "CULL_FACE"
	case DEPTH_TEST:
		return "DEPTH_TEST"
	case STENCIL_TEST:
		return "STENCIL_TEST"
	case BLEND:
		return "BLEND"
	case SCISSOR_TEST:
		return "SCISSOR_TEST"
	case POLYGON_OFFSET_FILL:
		return "POLYGON_OFFSET_FILL"
	case MULTISAMPLE:
		return "MULTISAMPLE"
	case SAMPLE_ALPHA_TO_COVERAGE:
		return "SAMPLE_ALPHA_TO_COVERAGE"
	}
	return fmt.Sprintf("%#x", uint32(c))
}
