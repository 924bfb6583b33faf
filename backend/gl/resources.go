// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

type glBuffer struct {
	target Enum
	objs   [types.NumInflightFrames]uint32
}

type glImage struct {
	target Enum
	format textureFormat
	texs   [types.NumInflightFrames]uint32
	// msaa is the multisampled color renderbuffer of an MSAA render
	// target; texs[0] receives the resolved result.
	msaa uint32
	// depth is the renderbuffer of a depth render target.
	depth uint32
}

type glUniform struct {
	loc    int
	typ    types.UniformType
	count  int
	offset int
}

type glShader struct {
	prog   uint32
	blocks [types.NumShaderStages][][]glUniform
}

type glAttr struct {
	used       bool
	vbIndex    int
	size       int
	typ        Enum
	normalized bool
	stride     int
	offset     int
	divisor    int
}

type glPipeline struct {
	prim      Enum
	indexType Enum
	indexSize int
	attrs     [types.MaxVertexAttributes]glAttr
}

type glPass struct {
	fb      uint32
	resolve [types.MaxColorAttachments]uint32
}

func (b *Backend) CreateBuffer(buf *resource.Buffer, desc *types.BufferDesc) error {
	gb := b.buffers.At(buf.ID)
	gb.target = bufferTarget(buf.Type)
	for i := range min(buf.NumSlots, len(gb.objs)) {
		obj := b.f.GenBuffer()
		gb.objs[i] = obj
		b.cache.bindBuffer(b.f, gb.target, obj)
		b.f.BufferData(gb.target, buf.Size, nil, usage(buf.Usage))
		if len(desc.Content) > 0 {
			b.f.BufferSubData(gb.target, 0, desc.Content)
		}
	}
	if err := b.checkError("create buffer"); err != nil {
		b.DestroyBuffer(buf)
		return err
	}
	return nil
}

func (b *Backend) DestroyBuffer(buf *resource.Buffer) {
	gb := b.buffers.At(buf.ID)
	for _, obj := range gb.objs {
		b.cache.deleteBuffer(b.f, obj)
	}
	b.buffers.Clear(buf.ID)
}

func (b *Backend) UpdateBuffer(buf *resource.Buffer, data []byte) {
	buf.ActiveSlot = (buf.ActiveSlot + 1) % buf.NumSlots
	gb := b.buffers.At(buf.ID)
	b.cache.bindBuffer(b.f, gb.target, gb.objs[buf.ActiveSlot])
	b.f.BufferSubData(gb.target, 0, data)
}

func (b *Backend) AppendBuffer(buf *resource.Buffer, data []byte, newFrame bool) {
	if newFrame {
		buf.ActiveSlot = (buf.ActiveSlot + 1) % buf.NumSlots
	}
	gb := b.buffers.At(buf.ID)
	b.cache.bindBuffer(b.f, gb.target, gb.objs[buf.ActiveSlot])
	b.f.BufferSubData(gb.target, buf.AppendPos, data)
}

func (b *Backend) CreateImage(img *resource.Image, desc *types.ImageDesc) error {
	tf, ok := pixelFormat(img.PixelFormat)
	if !ok || !b.PixelFormat(img.PixelFormat).Supported() {
		return fmt.Errorf("gl: %w: %s", backend.ErrUnsupportedPixelFormat, img.PixelFormat)
	}
	gi := b.images.At(img.ID)
	gi.target = textureTarget(img.Type)
	gi.format = tf

	samples := 0
	if img.SampleCount > 1 {
		samples = img.SampleCount
	}
	if img.RenderTarget && img.PixelFormat.IsDepth() {
		gi.depth = b.renderbuffer(samples, tf.internal, img.Width, img.Height)
		return b.finishImage(img)
	}
	if img.RenderTarget && samples > 0 {
		gi.msaa = b.renderbuffer(samples, tf.internal, img.Width, img.Height)
	}

	var content *types.SubimageContent
	if img.Usage == types.UsageImmutable && !img.RenderTarget {
		content = &desc.Content
	}
	for slot := range min(img.NumSlots, len(gi.texs)) {
		tex := b.f.GenTexture()
		gi.texs[slot] = tex
		b.cache.bindTexture(b.f, 0, gi.target, tex)
		b.texParams(img, gi.target)
		b.texImage(img, gi, content)
	}
	return b.finishImage(img)
}

func (b *Backend) finishImage(img *resource.Image) error {
	if err := b.checkError("create image"); err != nil {
		b.DestroyImage(img)
		return err
	}
	return nil
}

func (b *Backend) renderbuffer(samples int, internal Enum, width, height int) uint32 {
	rb := b.f.GenRenderbuffer()
	b.f.BindRenderbuffer(rb)
	b.f.RenderbufferStorageMultisample(samples, internal, width, height)
	b.f.BindRenderbuffer(0)
	return rb
}

func (b *Backend) texParams(img *resource.Image, target Enum) {
	b.f.TexParameteri(target, TEXTURE_MIN_FILTER, int(filter(img.MinFilter)))
	b.f.TexParameteri(target, TEXTURE_MAG_FILTER, int(magFilter(img.MagFilter)))
	b.f.TexParameteri(target, TEXTURE_WRAP_S, int(wrap(img.WrapU)))
	b.f.TexParameteri(target, TEXTURE_WRAP_T, int(wrap(img.WrapV)))
	if img.Type == types.ImageType3D || img.Type == types.ImageTypeCube {
		b.f.TexParameteri(target, TEXTURE_WRAP_R, int(wrap(img.WrapW)))
	}
	b.f.TexParameteri(target, TEXTURE_MAX_LEVEL, img.NumMipmaps-1)
	b.f.TexParameterf(target, TEXTURE_MIN_LOD, img.MinLOD)
	b.f.TexParameterf(target, TEXTURE_MAX_LOD, img.MaxLOD)
	if img.MaxAnisotropy > 1 && b.anisotropy {
		b.f.TexParameterf(target, TEXTURE_MAX_ANISOTROPY_EXT, float32(img.MaxAnisotropy))
	}
}

// texImage allocates every face and mip level of the texture bound on
// unit 0, uploading content when it is not nil.
func (b *Backend) texImage(img *resource.Image, gi *glImage, content *types.SubimageContent) {
	tf := gi.format
	eachSurface(img, func(face, mip, w, h, depth int) {
		target := gi.target
		if img.Type == types.ImageTypeCube {
			target = TEXTURE_CUBE_MAP_POSITIVE_X + Enum(face)
		}
		var data []byte
		if content != nil {
			data = content[face][mip]
		}
		switch {
		case depth == 0 && tf.compressed:
			b.f.CompressedTexImage2D(target, mip, tf.internal, w, h, data)
		case depth == 0:
			b.f.TexImage2D(target, mip, tf.internal, w, h, tf.format, tf.typ, data)
		case tf.compressed:
			b.f.CompressedTexImage3D(target, mip, tf.internal, w, h, depth, data)
		default:
			b.f.TexImage3D(target, mip, tf.internal, w, h, depth, tf.format, tf.typ, data)
		}
	})
}

// eachSurface calls fn for every face and mip level of img. depth is 0 for
// 2D and cube images.
func eachSurface(img *resource.Image, fn func(face, mip, w, h, depth int)) {
	faces := 1
	if img.Type == types.ImageTypeCube {
		faces = types.CubeFaces
	}
	for face := range faces {
		for mip := range img.NumMipmaps {
			w := max(img.Width>>mip, 1)
			h := max(img.Height>>mip, 1)
			depth := 0
			switch img.Type {
			case types.ImageType3D:
				depth = max(img.NumSlices>>mip, 1)
			case types.ImageTypeArray:
				depth = img.NumSlices
			}
			fn(face, mip, w, h, depth)
		}
	}
}

func (b *Backend) DestroyImage(img *resource.Image) {
	gi := b.images.At(img.ID)
	for _, tex := range gi.texs {
		b.cache.deleteTexture(b.f, tex)
	}
	if gi.msaa != 0 {
		b.f.DeleteRenderbuffer(gi.msaa)
	}
	if gi.depth != 0 {
		b.f.DeleteRenderbuffer(gi.depth)
	}
	b.images.Clear(img.ID)
}

func (b *Backend) UpdateImage(img *resource.Image, data *types.SubimageContent) {
	img.ActiveSlot = (img.ActiveSlot + 1) % img.NumSlots
	gi := b.images.At(img.ID)
	tf := gi.format
	b.cache.bindTexture(b.f, 0, gi.target, gi.texs[img.ActiveSlot])
	eachSurface(img, func(face, mip, w, h, depth int) {
		src := data[face][mip]
		if len(src) == 0 {
			return
		}
		target := gi.target
		if img.Type == types.ImageTypeCube {
			target = TEXTURE_CUBE_MAP_POSITIVE_X + Enum(face)
		}
		if depth == 0 {
			b.f.TexSubImage2D(target, mip, 0, 0, w, h, tf.format, tf.typ, src)
		} else {
			b.f.TexSubImage3D(target, mip, 0, 0, 0, w, h, depth, tf.format, tf.typ, src)
		}
	})
}

func (b *Backend) CreateShader(shd *resource.Shader, desc *types.ShaderDesc) error {
	vs, err := b.compile(VERTEX_SHADER, &desc.VS)
	if err != nil {
		return err
	}
	fs, err := b.compile(FRAGMENT_SHADER, &desc.FS)
	if err != nil {
		b.f.DeleteShader(vs)
		return err
	}
	prog := b.f.CreateProgram()
	b.f.AttachShader(prog, vs)
	b.f.AttachShader(prog, fs)
	for i, attr := range desc.Attrs {
		if attr.Name != "" {
			b.f.BindAttribLocation(prog, i, attr.Name)
		}
	}
	b.f.LinkProgram(prog)
	b.f.DeleteShader(vs)
	b.f.DeleteShader(fs)
	if b.f.GetProgrami(prog, LINK_STATUS) == 0 {
		msg := b.f.GetProgramInfoLog(prog)
		b.cache.deleteProgram(b.f, prog)
		return fmt.Errorf("gl: link: %w: %s", backend.ErrShaderCompile, msg)
	}

	gs := b.shaders.At(shd.ID)
	gs.prog = prog
	b.cache.useProgram(b.f, prog)
	for stage, sd := range [...]*types.ShaderStageDesc{&desc.VS, &desc.FS} {
		blocks := make([][]glUniform, len(sd.UniformBlocks))
		for i, ub := range sd.UniformBlocks {
			offset := 0
			for _, u := range ub.Uniforms {
				count := max(u.ArrayCount, 1)
				blocks[i] = append(blocks[i], glUniform{
					loc:    b.f.GetUniformLocation(prog, u.Name),
					typ:    u.Type,
					count:  count,
					offset: offset,
				})
				offset += u.Type.ByteSize() * count
			}
		}
		gs.blocks[stage] = blocks
		for i, img := range sd.Images {
			if loc := b.f.GetUniformLocation(prog, img.Name); loc >= 0 {
				b.f.Uniform1i(loc, textureUnit(types.ShaderStage(stage), i))
			}
		}
	}
	if err := b.checkError("create shader"); err != nil {
		b.DestroyShader(shd)
		return err
	}
	return nil
}

func (b *Backend) compile(typ Enum, sd *types.ShaderStageDesc) (uint32, error) {
	if sd.Source == "" {
		return 0, fmt.Errorf("gl: %w: GLSL source required", backend.ErrShaderCompile)
	}
	s := b.f.CreateShader(typ)
	b.f.ShaderSource(s, sd.Source)
	b.f.CompileShader(s)
	if b.f.GetShaderi(s, COMPILE_STATUS) == 0 {
		msg := b.f.GetShaderInfoLog(s)
		b.f.DeleteShader(s)
		stage := "vertex"
		if typ == FRAGMENT_SHADER {
			stage = "fragment"
		}
		return 0, fmt.Errorf("gl: %s shader: %w: %s", stage, backend.ErrShaderCompile, msg)
	}
	return s, nil
}

func textureUnit(stage types.ShaderStage, slot int) int {
	return int(stage)*types.MaxShaderStageImages + slot
}

func (b *Backend) DestroyShader(shd *resource.Shader) {
	b.cache.deleteProgram(b.f, b.shaders.At(shd.ID).prog)
	b.shaders.Clear(shd.ID)
}

func (b *Backend) CreatePipeline(pip *resource.Pipeline, desc *types.PipelineDesc) error {
	gp := b.pipelines.At(pip.ID)
	for i, a := range pip.Layout.Attrs {
		if a.Format == types.VertexFormatInvalid {
			continue
		}
		if i >= b.limits.MaxVertexAttrs {
			b.pipelines.Clear(pip.ID)
			return fmt.Errorf("gl: %w: attribute %d exceeds %d vertex attributes", backend.ErrPipeline, i, b.limits.MaxVertexAttrs)
		}
		size, typ, normalized, ok := vertexFormat(a.Format)
		if !ok {
			b.pipelines.Clear(pip.ID)
			return fmt.Errorf("gl: %w: attribute %d", backend.ErrUnsupportedVertexFormat, i)
		}
		l := pip.Layout.Buffers[a.BufferIndex]
		divisor := 0
		if l.StepFunc == types.VertexStepPerInstance {
			divisor = l.StepRate
		}
		gp.attrs[i] = glAttr{
			used:       true,
			vbIndex:    a.BufferIndex,
			size:       size,
			typ:        typ,
			normalized: normalized,
			stride:     l.Stride,
			offset:     a.Offset,
			divisor:    divisor,
		}
	}
	gp.prim = primitive(pip.PrimitiveType)
	gp.indexType = indexType(pip.IndexType)
	gp.indexSize = pip.IndexType.ByteSize()
	return nil
}

func (b *Backend) DestroyPipeline(pip *resource.Pipeline) {
	if b.curPipeline == pip {
		b.curPipeline = nil
	}
	b.pipelines.Clear(pip.ID)
}

func (b *Backend) CreatePass(pass *resource.Pass, desc *types.PassDesc) error {
	gp := b.passes.At(pass.ID)
	gp.fb = b.f.GenFramebuffer()
	b.f.BindFramebuffer(FRAMEBUFFER, gp.fb)
	bufs := make([]Enum, 0, pass.NumColorAtts)
	for i := range pass.NumColorAtts {
		att := &pass.ColorAtts[i]
		gi := b.images.At(att.Image.ID)
		ap := COLOR_ATTACHMENT0 + Enum(i)
		if gi.msaa != 0 {
			b.f.FramebufferRenderbuffer(FRAMEBUFFER, ap, RENDERBUFFER, gi.msaa)
		} else {
			b.attachTexture(ap, att, gi)
		}
		bufs = append(bufs, ap)
	}
	if ds := &pass.DepthStencil; ds.Image != nil {
		ap := Enum(DEPTH_ATTACHMENT)
		if ds.Image.PixelFormat == types.PixelFormatDepthStencil {
			ap = DEPTH_STENCIL_ATTACHMENT
		}
		b.f.FramebufferRenderbuffer(FRAMEBUFFER, ap, RENDERBUFFER, b.images.At(ds.Image.ID).depth)
	}
	b.f.DrawBuffers(bufs)
	err := b.checkFramebuffer("pass")

	for i := range pass.NumColorAtts {
		att := &pass.ColorAtts[i]
		gi := b.images.At(att.Image.ID)
		if err != nil || gi.msaa == 0 {
			continue
		}
		gp.resolve[i] = b.f.GenFramebuffer()
		b.f.BindFramebuffer(FRAMEBUFFER, gp.resolve[i])
		b.attachTexture(COLOR_ATTACHMENT0, att, gi)
		err = b.checkFramebuffer("resolve")
	}
	b.restoreFramebuffer()
	if err != nil {
		b.DestroyPass(pass)
		return err
	}
	return nil
}

func (b *Backend) checkFramebuffer(what string) error {
	if status := b.f.CheckFramebufferStatus(FRAMEBUFFER); status != FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("gl: %s framebuffer: %w: status %#x", what, backend.ErrPassIncomplete, uint32(status))
	}
	return nil
}

func (b *Backend) attachTexture(ap Enum, att *resource.Attachment, gi *glImage) {
	tex := gi.texs[0]
	switch att.Image.Type {
	case types.ImageTypeCube:
		b.f.FramebufferTexture2D(FRAMEBUFFER, ap, TEXTURE_CUBE_MAP_POSITIVE_X+Enum(att.Slice), tex, att.MipLevel)
	case types.ImageType3D, types.ImageTypeArray:
		b.f.FramebufferTextureLayer(FRAMEBUFFER, ap, tex, att.MipLevel, att.Slice)
	default:
		b.f.FramebufferTexture2D(FRAMEBUFFER, ap, TEXTURE_2D, tex, att.MipLevel)
	}
}

func (b *Backend) DestroyPass(pass *resource.Pass) {
	if b.curPass == pass {
		b.curPass = nil
	}
	gp := b.passes.At(pass.ID)
	if gp.fb != 0 {
		b.f.DeleteFramebuffer(gp.fb)
	}
	for _, fb := range gp.resolve {
		if fb != 0 {
			b.f.DeleteFramebuffer(fb)
		}
	}
	b.passes.Clear(pass.ID)
}

// restoreFramebuffer rebinds the framebuffer of the open pass, or the
// default framebuffer outside a pass.
func (b *Backend) restoreFramebuffer() {
	if b.inPass {
		b.f.BindFramebuffer(FRAMEBUFFER, b.curFB)
		return
	}
	b.f.BindFramebuffer(FRAMEBUFFER, b.defaultFramebuffer())
}

func (b *Backend) defaultFramebuffer() uint32 {
	if b.defaultFB != nil {
		return b.defaultFB()
	}
	return 0
}
