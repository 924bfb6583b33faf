// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

// Enum is a GL enumerant.
type Enum uint32

// Functions is the subset of the OpenGL 3.3 core API the back-end calls.
// Object names are plain uint32 values; 0 is the null object.
//
// The glcore sub-package implements it on top of github.com/go-gl/gl.
// Tests use a recording fake.
type Functions interface {
	GetError() Enum
	GetInteger(pname Enum) int
	GetString(pname Enum) string
	GetStringi(pname Enum, index int) string
	Flush()

	GenBuffer() uint32
	DeleteBuffer(b uint32)
	BindBuffer(target Enum, b uint32)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)

	GenTexture() uint32
	DeleteTexture(t uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t uint32)
	TexParameteri(target, pname Enum, param int)
	TexParameterf(target, pname Enum, param float32)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum, data []byte)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, typ Enum, data []byte)
	TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, format, typ Enum, data []byte)
	TexSubImage3D(target Enum, level, x, y, z, width, height, depth int, format, typ Enum, data []byte)
	CompressedTexImage2D(target Enum, level int, internalFormat Enum, width, height int, data []byte)
	CompressedTexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, data []byte)

	GenRenderbuffer() uint32
	DeleteRenderbuffer(r uint32)
	BindRenderbuffer(r uint32)
	RenderbufferStorageMultisample(samples int, internalFormat Enum, width, height int)

	GenFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target Enum, fb uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, t uint32, level int)
	FramebufferTextureLayer(target, attachment Enum, t uint32, level, layer int)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, r uint32)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(bufs []Enum)
	ReadBuffer(src Enum)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask, filter Enum)

	CreateShader(typ Enum) uint32
	ShaderSource(s uint32, src string)
	CompileShader(s uint32)
	GetShaderi(s uint32, pname Enum) int
	GetShaderInfoLog(s uint32) string
	DeleteShader(s uint32)
	CreateProgram() uint32
	AttachShader(p, s uint32)
	BindAttribLocation(p uint32, index int, name string)
	LinkProgram(p uint32)
	GetProgrami(p uint32, pname Enum) int
	GetProgramInfoLog(p uint32) string
	DeleteProgram(p uint32)
	UseProgram(p uint32)
	GetUniformLocation(p uint32, name string) int

	Uniform1i(loc int, v int)
	Uniform1fv(loc int, v []float32)
	Uniform2fv(loc int, v []float32)
	Uniform3fv(loc int, v []float32)
	Uniform4fv(loc int, v []float32)
	UniformMatrix4fv(loc int, v []float32)

	GenVertexArray() uint32
	DeleteVertexArray(a uint32)
	BindVertexArray(a uint32)
	EnableVertexAttribArray(index int)
	DisableVertexAttribArray(index int)
	VertexAttribPointer(index, size int, typ Enum, normalized bool, stride, offset int)
	VertexAttribDivisor(index, divisor int)

	Enable(cap Enum)
	Disable(cap Enum)
	DepthFunc(fn Enum)
	DepthMask(write bool)
	StencilFuncSeparate(face, fn Enum, ref int, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	StencilMask(mask uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	BlendEquationSeparate(modeRGB, modeA Enum)
	BlendColor(r, g, b, a float32)
	ColorMask(r, g, b, a bool)
	CullFace(mode Enum)
	FrontFace(mode Enum)
	PolygonOffset(factor, units float32)
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)

	ClearBufferfv(buffer Enum, drawBuffer int, value []float32)
	ClearBufferiv(buffer Enum, drawBuffer int, value []int32)

	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElementsInstanced(mode Enum, count int, typ Enum, offset, instances int)
}

// GL enumerants used by the back-end.
const (
	NO_ERROR = 0

	ZERO = 0
	ONE  = 1

	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005

	NEVER    = 0x0200
	LESS     = 0x0201
	EQUAL    = 0x0202
	LEQUAL   = 0x0203
	GREATER  = 0x0204
	NOTEQUAL = 0x0205
	GEQUAL   = 0x0206
	ALWAYS   = 0x0207

	SRC_COLOR                = 0x0300
	ONE_MINUS_SRC_COLOR      = 0x0301
	SRC_ALPHA                = 0x0302
	ONE_MINUS_SRC_ALPHA      = 0x0303
	DST_ALPHA                = 0x0304
	ONE_MINUS_DST_ALPHA      = 0x0305
	DST_COLOR                = 0x0306
	ONE_MINUS_DST_COLOR      = 0x0307
	SRC_ALPHA_SATURATE       = 0x0308
	CONSTANT_COLOR           = 0x8001
	ONE_MINUS_CONSTANT_COLOR = 0x8002
	CONSTANT_ALPHA           = 0x8003
	ONE_MINUS_CONSTANT_ALPHA = 0x8004

	FUNC_ADD              = 0x8006
	FUNC_SUBTRACT         = 0x800A
	FUNC_REVERSE_SUBTRACT = 0x800B

	FRONT          = 0x0404
	BACK           = 0x0405
	FRONT_AND_BACK = 0x0408
	CW             = 0x0900
	CCW            = 0x0901

	CULL_FACE                = 0x0B44
	DEPTH_TEST               = 0x0B71
	STENCIL_TEST             = 0x0B90
	BLEND                    = 0x0BE2
	SCISSOR_TEST             = 0x0C11
	POLYGON_OFFSET_FILL      = 0x8037
	MULTISAMPLE              = 0x809D
	SAMPLE_ALPHA_TO_COVERAGE = 0x809E

	KEEP      = 0x1E00
	REPLACE   = 0x1E01
	INCR      = 0x1E02
	DECR      = 0x1E03
	INVERT    = 0x150A
	INCR_WRAP = 0x8507
	DECR_WRAP = 0x8508

	BYTE                         = 0x1400
	UNSIGNED_BYTE                = 0x1401
	SHORT                        = 0x1402
	UNSIGNED_SHORT               = 0x1403
	INT                          = 0x1404
	UNSIGNED_INT                 = 0x1405
	FLOAT                        = 0x1406
	HALF_FLOAT                   = 0x140B
	UNSIGNED_INT_2_10_10_10_REV  = 0x8368
	UNSIGNED_INT_24_8            = 0x84FA
	UNSIGNED_INT_10F_11F_11F_REV = 0x8C3B

	COLOR         = 0x1800
	DEPTH         = 0x1801
	STENCIL       = 0x1802
	DEPTH_STENCIL = 0x84F9

	DEPTH_COMPONENT = 0x1902
	RED             = 0x1903
	RGB             = 0x1907
	RGBA            = 0x1908
	BGRA            = 0x80E1
	RG              = 0x8227
	RED_INTEGER     = 0x8D94

	R8                            = 0x8229
	R8_SNORM                      = 0x8F94
	R8I                           = 0x8231
	R8UI                          = 0x8232
	R16F                          = 0x822D
	RG8                           = 0x822B
	R32F                          = 0x822E
	RG16F                         = 0x822F
	RG32F                         = 0x8230
	RGBA8                         = 0x8058
	RGB10_A2                      = 0x8059
	SRGB8_ALPHA8                  = 0x8C43
	R11F_G11F_B10F                = 0x8C3A
	RGBA16F                       = 0x881A
	RGBA32F                       = 0x8814
	DEPTH_COMPONENT24             = 0x81A6
	DEPTH24_STENCIL8              = 0x88F0
	COMPRESSED_RGBA_S3TC_DXT1_EXT = 0x83F1
	COMPRESSED_RGBA_S3TC_DXT5_EXT = 0x83F3
	COMPRESSED_RGBA_BPTC_UNORM    = 0x8E8C
	COMPRESSED_RGB8_ETC2          = 0x9274

	TEXTURE_2D                  = 0x0DE1
	TEXTURE_3D                  = 0x806F
	TEXTURE_CUBE_MAP            = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X = 0x8515
	TEXTURE_2D_ARRAY            = 0x8C1A
	TEXTURE0                    = 0x84C0

	TEXTURE_MAG_FILTER         = 0x2800
	TEXTURE_MIN_FILTER         = 0x2801
	TEXTURE_WRAP_S             = 0x2802
	TEXTURE_WRAP_T             = 0x2803
	TEXTURE_WRAP_R             = 0x8072
	TEXTURE_MIN_LOD            = 0x813A
	TEXTURE_MAX_LOD            = 0x813B
	TEXTURE_MAX_LEVEL          = 0x813D
	TEXTURE_MAX_ANISOTROPY_EXT = 0x84FE

	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703

	REPEAT          = 0x2901
	CLAMP_TO_BORDER = 0x812D
	CLAMP_TO_EDGE   = 0x812F
	MIRRORED_REPEAT = 0x8370

	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	STREAM_DRAW          = 0x88E0
	STATIC_DRAW          = 0x88E4
	DYNAMIC_DRAW         = 0x88E8

	FRAMEBUFFER              = 0x8D40
	READ_FRAMEBUFFER         = 0x8CA8
	DRAW_FRAMEBUFFER         = 0x8CA9
	RENDERBUFFER             = 0x8D41
	FRAMEBUFFER_COMPLETE     = 0x8CD5
	COLOR_ATTACHMENT0        = 0x8CE0
	DEPTH_ATTACHMENT         = 0x8D00
	DEPTH_STENCIL_ATTACHMENT = 0x821A
	COLOR_BUFFER_BIT         = 0x4000

	FRAGMENT_SHADER = 0x8B30
	VERTEX_SHADER   = 0x8B31
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82

	VENDOR                    = 0x1F00
	RENDERER                  = 0x1F01
	VERSION                   = 0x1F02
	EXTENSIONS                = 0x1F03
	NUM_EXTENSIONS            = 0x821D
	MAX_TEXTURE_SIZE          = 0x0D33
	MAX_3D_TEXTURE_SIZE       = 0x8073
	MAX_CUBE_MAP_TEXTURE_SIZE = 0x851C
	MAX_ARRAY_TEXTURE_LAYERS  = 0x88FF
	MAX_VERTEX_ATTRIBS        = 0x8869
)
