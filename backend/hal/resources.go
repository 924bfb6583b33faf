// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hal

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	wgpu "github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/cache"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// Every native object below is owned by a release-queue slot; the side
// records keep the slots plus direct references for the draw path.

type halBuffer struct {
	slots [types.NumInflightFrames]int
	bufs  [types.NumInflightFrames]wgpu.Buffer
}

type halImage struct {
	format gputypes.TextureFormat
	// slots own one texture and its sampled view per native copy.
	slots [types.NumInflightFrames]int
	tex   [types.NumInflightFrames]wgpu.Texture
	views [types.NumInflightFrames]wgpu.TextureView
	// msaa owns the multisampled render texture of an MSAA color render
	// target; passes resolve it into tex[0].
	msaa     int
	msaaView wgpu.TextureView
	smpSlot  int
	smp      wgpu.Sampler
}

// Bind group indices of a shader's pipeline layout.
const (
	groupUniforms = iota
	groupVSImages
	groupFSImages
	numGroups
)

// fsBlockBinding is the first uniform binding of the fragment stage.
const fsBlockBinding = types.MaxUniformBlocks

type halShader struct {
	// slots own the two modules, the layouts and the empty groups.
	slots   [4]int
	vs, fs  wgpu.ShaderModule
	entry   [types.NumShaderStages]string
	layouts [numGroups]wgpu.BindGroupLayout
	// empty is bound for every group the shader declares nothing in.
	empty [numGroups]wgpu.BindGroup
}

type halPipeline struct {
	slots       [2]int
	pipeline    wgpu.RenderPipeline
	indexFormat gputypes.IndexFormat
	blendColor  gputypes.Color
	stencilRef  uint32
}

type halPass struct {
	slot     int
	colors   [types.MaxColorAttachments]wgpu.TextureView
	resolves [types.MaxColorAttachments]wgpu.TextureView
	depth    wgpu.TextureView
}

func (b *Backend) CreateBuffer(buf *resource.Buffer, desc *types.BufferDesc) error {
	usage := gputypes.BufferUsageCopyDst | gputypes.BufferUsageVertex
	if buf.Type == types.BufferTypeIndex {
		usage = gputypes.BufferUsageCopyDst | gputypes.BufferUsageIndex
	}
	hb := b.buffers.At(buf.ID)
	for i := range buf.NumSlots {
		nb, err := b.dev.CreateBuffer(&wgpu.BufferDescriptor{
			Label: buf.Label,
			Size:  uint64(alignUp(buf.Size, 4)),
			Usage: usage,
		})
		if err != nil {
			b.releaseSlots(hb.slots[:i]...)
			b.buffers.Clear(buf.ID)
			return fmt.Errorf("hal: create buffer: %w", err)
		}
		hb.slots[i] = b.rel.Add(object{buffer: nb})
		hb.bufs[i] = nb
	}
	if buf.Usage == types.UsageImmutable {
		b.queue.WriteBuffer(hb.bufs[0], 0, b.padded(desc.Content))
	}
	return nil
}

func (b *Backend) DestroyBuffer(buf *resource.Buffer) {
	b.releaseSlots(b.buffers.At(buf.ID).slots[:]...)
	b.buffers.Clear(buf.ID)
}

// UpdateBuffer writes into the next native copy, which no in-flight frame
// reads.
func (b *Backend) UpdateBuffer(buf *resource.Buffer, data []byte) {
	buf.ActiveSlot = (buf.ActiveSlot + 1) % buf.NumSlots
	b.queue.WriteBuffer(b.buffers.At(buf.ID).bufs[buf.ActiveSlot], 0, b.padded(data))
}

func (b *Backend) AppendBuffer(buf *resource.Buffer, data []byte, newFrame bool) {
	if newFrame {
		buf.ActiveSlot = (buf.ActiveSlot + 1) % buf.NumSlots
	}
	b.queue.WriteBuffer(b.buffers.At(buf.ID).bufs[buf.ActiveSlot], uint64(buf.AppendPos), b.padded(data))
}

// padded returns data extended with zeros to a multiple of 4 bytes, the
// queue write granularity.
func (b *Backend) padded(data []byte) []byte {
	n := alignUp(len(data), 4)
	if n == len(data) {
		return data
	}
	if cap(b.scratch) < n {
		b.scratch = make([]byte, n)
	}
	p := b.scratch[:n]
	copy(p, data)
	clear(p[len(data):])
	return p
}

func (b *Backend) CreateImage(img *resource.Image, desc *types.ImageDesc) error {
	format := textureFormat(img.PixelFormat)
	if format == gputypes.TextureFormatUndefined {
		return fmt.Errorf("hal: %w: %s", backend.ErrUnsupportedPixelFormat, img.PixelFormat)
	}
	hi := b.images.At(img.ID)
	hi.format = format
	if err := b.createImage(img, hi, desc); err != nil {
		b.releaseSlots(b.imageSlots(hi)...)
		b.images.Clear(img.ID)
		return err
	}
	return nil
}

func (b *Backend) createImage(img *resource.Image, hi *halImage, desc *types.ImageDesc) error {
	depth := img.PixelFormat.IsDepth()
	msaa := img.RenderTarget && img.SampleCount > 1

	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if img.RenderTarget {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	if depth {
		usage = gputypes.TextureUsageRenderAttachment
	}
	td := wgpu.TextureDescriptor{
		Label: img.Label,
		Size: wgpu.Extent3D{
			Width:              uint32(img.Width),
			Height:             uint32(img.Height),
			DepthOrArrayLayers: textureLayers(img),
		},
		MipLevelCount: uint32(img.NumMipmaps),
		SampleCount:   1,
		Dimension:     textureDimension(img.Type),
		Format:        hi.format,
		Usage:         usage,
	}
	if depth {
		td.SampleCount = uint32(img.SampleCount)
	}
	vd := wgpu.TextureViewDescriptor{
		Label:         img.Label,
		Format:        hi.format,
		Dimension:     viewDimension(img.Type),
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: uint32(img.NumMipmaps),
	}
	if img.Type != types.ImageType3D {
		vd.ArrayLayerCount = textureLayers(img)
	} else {
		vd.ArrayLayerCount = 1
	}

	for i := range img.NumSlots {
		slot, tex, view, err := b.createTexture(&td, &vd)
		if err != nil {
			return err
		}
		hi.slots[i], hi.tex[i], hi.views[i] = slot, tex, view
	}

	if msaa {
		mtd := td
		mtd.Label = img.Label + "_msaa"
		mtd.Size.DepthOrArrayLayers = 1
		mtd.MipLevelCount = 1
		mtd.SampleCount = uint32(img.SampleCount)
		mtd.Dimension = gputypes.TextureDimension2D
		mtd.Usage = gputypes.TextureUsageRenderAttachment
		mvd := vd
		mvd.Dimension = gputypes.TextureViewDimension2D
		mvd.MipLevelCount, mvd.ArrayLayerCount = 1, 1
		slot, _, view, err := b.createTexture(&mtd, &mvd)
		if err != nil {
			return err
		}
		hi.msaa, hi.msaaView = slot, view
	}

	if !depth {
		mag, _ := filterModes(img.MagFilter)
		minf, mip := filterModes(img.MinFilter)
		smp, err := b.dev.CreateSampler(&wgpu.SamplerDescriptor{
			Label:        img.Label,
			AddressModeU: addressMode(img.WrapU),
			AddressModeV: addressMode(img.WrapV),
			AddressModeW: addressMode(img.WrapW),
			MagFilter:    mag,
			MinFilter:    minf,
			MipmapFilter: mip,
		})
		if err != nil {
			return fmt.Errorf("hal: create sampler: %w", err)
		}
		hi.smpSlot = b.rel.Add(object{sampler: smp})
		hi.smp = smp
	}

	if img.Usage == types.UsageImmutable && !img.RenderTarget {
		b.writeImage(img, hi.tex[0], &desc.Content)
	}
	return nil
}

// createTexture creates a texture plus one view of it, owned together by a
// single release slot.
func (b *Backend) createTexture(td *wgpu.TextureDescriptor, vd *wgpu.TextureViewDescriptor) (int, wgpu.Texture, wgpu.TextureView, error) {
	tex, err := b.dev.CreateTexture(td)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("hal: create texture: %w", err)
	}
	view, err := b.dev.CreateTextureView(tex, vd)
	if err != nil {
		b.dev.DestroyTexture(tex)
		return 0, nil, nil, fmt.Errorf("hal: create texture view: %w", err)
	}
	return b.rel.Add(object{texture: tex, views: []wgpu.TextureView{view}}), tex, view, nil
}

func (b *Backend) imageSlots(hi *halImage) []int {
	return append(hi.slots[:], hi.msaa, hi.smpSlot)
}

func (b *Backend) DestroyImage(img *resource.Image) {
	b.releaseSlots(b.imageSlots(b.images.At(img.ID))...)
	b.images.Clear(img.ID)
}

// UpdateImage writes into the next native copy of a dynamic image.
func (b *Backend) UpdateImage(img *resource.Image, data *types.SubimageContent) {
	img.ActiveSlot = (img.ActiveSlot + 1) % img.NumSlots
	b.writeImage(img, b.images.At(img.ID).tex[img.ActiveSlot], data)
}

// writeImage uploads every non-empty surface of content. Cube faces are
// array layers; 3D and array mip levels are written in one call.
func (b *Backend) writeImage(img *resource.Image, tex wgpu.Texture, content *types.SubimageContent) {
	faces := 1
	if img.Type == types.ImageTypeCube {
		faces = types.CubeFaces
	}
	f := img.PixelFormat
	for face := range faces {
		for mip := range img.NumMipmaps {
			data := content[face][mip]
			if len(data) == 0 {
				continue
			}
			w := max(1, img.Width>>mip)
			h := max(1, img.Height>>mip)
			layers := 1
			switch img.Type {
			case types.ImageType3D:
				layers = max(1, img.NumSlices>>mip)
			case types.ImageTypeArray:
				layers = img.NumSlices
			}
			rows := h
			if f.IsCompressed() {
				rows = max(1, (h+3)/4)
			}
			b.queue.WriteTexture(
				&wgpu.ImageCopyTexture{
					Texture:  tex,
					MipLevel: uint32(mip),
					Origin:   wgpu.Origin3D{Z: uint32(face)},
				},
				data,
				&wgpu.ImageDataLayout{
					BytesPerRow:  uint32(f.RowPitch(w)),
					RowsPerImage: uint32(rows),
				},
				&wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: uint32(layers)},
			)
		}
	}
}

func (b *Backend) CreateShader(shd *resource.Shader, desc *types.ShaderDesc) error {
	hs := b.shaders.At(shd.ID)
	if err := b.createShader(shd, hs, desc); err != nil {
		b.releaseSlots(hs.slots[:]...)
		b.shaders.Clear(shd.ID)
		return err
	}
	return nil
}

func (b *Backend) createShader(shd *resource.Shader, hs *halShader, desc *types.ShaderDesc) error {
	for i, stage := range [...]*types.ShaderStageDesc{&desc.VS, &desc.FS} {
		code, err := spirv(stage)
		if err != nil {
			return err
		}
		mod, err := b.dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:  shd.Label,
			Source: wgpu.ShaderSource{SPIRV: code},
		})
		if err != nil {
			return fmt.Errorf("hal: %w: create shader module: %v", backend.ErrShaderCompile, err)
		}
		hs.slots[i] = b.rel.Add(object{module: mod})
		hs.entry[i] = stage.Entry
		if i == 0 {
			hs.vs = mod
		} else {
			hs.fs = mod
		}
	}

	var layouts object
	for g := range numGroups {
		l, err := b.dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   shd.Label,
			Entries: groupEntries(shd, g),
		})
		if err != nil {
			b.destroyObject(layouts)
			return fmt.Errorf("hal: create bind group layout: %w", err)
		}
		layouts.layouts = append(layouts.layouts, l)
		hs.layouts[g] = l
	}
	hs.slots[2] = b.rel.Add(layouts)

	var empty object
	for g := range numGroups {
		if len(groupEntries(shd, g)) != 0 {
			continue
		}
		bg, err := b.dev.CreateBindGroup(&wgpu.BindGroupDescriptor{Label: shd.Label, Layout: hs.layouts[g]})
		if err != nil {
			b.destroyObject(empty)
			return fmt.Errorf("hal: create bind group: %w", err)
		}
		empty.groups = append(empty.groups, bg)
		hs.empty[g] = bg
	}
	hs.slots[3] = b.rel.Add(empty)
	return nil
}

// wgslCacheSize bounds the compiled WGSL modules kept across shaders.
const wgslCacheSize = 64

// wgslCache maps WGSL source to its SPIR-V words. Entries are shared and
// must not be modified.
var wgslCache = cache.New[string, []uint32](wgslCacheSize)

// spirv returns the SPIR-V words of a stage: WGSL source is compiled with
// naga, bytecode is taken as little-endian SPIR-V.
func spirv(stage *types.ShaderStageDesc) ([]uint32, error) {
	if stage.Source != "" {
		return wgslCache.GetOrCreate(stage.Source, func() ([]uint32, error) {
			code, err := naga.Compile(stage.Source)
			if err != nil {
				return nil, fmt.Errorf("hal: %w: %v", backend.ErrShaderCompile, err)
			}
			return words(code)
		})
	}
	return words(stage.Bytecode)
}

// words reinterprets little-endian SPIR-V bytes as words.
func words(code []byte) ([]uint32, error) {
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, fmt.Errorf("hal: %w: need WGSL source or SPIR-V bytecode", backend.ErrShaderCompile)
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words, nil
}

// groupEntries lays out bind group g of a shader. Group 0 holds the
// uniform blocks, VS blocks at bindings 0-3 and FS blocks from
// fsBlockBinding. Groups 1 and 2 hold the images of one stage, texture i
// at binding 2i and its sampler at 2i+1.
func groupEntries(shd *resource.Shader, g int) []gputypes.BindGroupLayoutEntry {
	var entries []gputypes.BindGroupLayoutEntry
	switch g {
	case groupUniforms:
		for stage := range types.NumShaderStages {
			for i := range shd.Stages[stage].UniformBlockSizes {
				entries = append(entries, gputypes.BindGroupLayoutEntry{
					Binding:    blockBinding(types.ShaderStage(stage), i),
					Visibility: stageVisibility(types.ShaderStage(stage)),
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
				})
			}
		}
	default:
		stage := types.ShaderStage(g - groupVSImages)
		for i, typ := range shd.Stages[stage].ImageTypes {
			entries = append(entries,
				gputypes.BindGroupLayoutEntry{
					Binding:    uint32(2 * i),
					Visibility: stageVisibility(stage),
					Texture: &gputypes.TextureBindingLayout{
						SampleType:    gputypes.TextureSampleTypeFloat,
						ViewDimension: viewDimension(typ),
					},
				},
				gputypes.BindGroupLayoutEntry{
					Binding:    uint32(2*i + 1),
					Visibility: stageVisibility(stage),
					Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
				},
			)
		}
	}
	return entries
}

func blockBinding(stage types.ShaderStage, slot int) uint32 {
	if stage == types.ShaderStageFS {
		return uint32(fsBlockBinding + slot)
	}
	return uint32(slot)
}

func stageVisibility(stage types.ShaderStage) gputypes.ShaderStage {
	if stage == types.ShaderStageFS {
		return gputypes.ShaderStageFragment
	}
	return gputypes.ShaderStageVertex
}

func (b *Backend) DestroyShader(shd *resource.Shader) {
	b.releaseSlots(b.shaders.At(shd.ID).slots[:]...)
	b.shaders.Clear(shd.ID)
}

func (b *Backend) CreatePipeline(pip *resource.Pipeline, desc *types.PipelineDesc) error {
	hs := b.shaders.At(pip.ShaderID)
	hp := b.pipelines.At(pip.ID)

	layout, err := b.dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            pip.Label,
		BindGroupLayouts: hs.layouts[:],
	})
	if err != nil {
		b.pipelines.Clear(pip.ID)
		return fmt.Errorf("hal: %w: create pipeline layout: %v", backend.ErrPipeline, err)
	}
	hp.slots[0] = b.rel.Add(object{pipeLayout: layout})

	buffers, err := vertexBuffers(pip)
	if err != nil {
		b.releaseSlots(hp.slots[0])
		b.pipelines.Clear(pip.ID)
		return err
	}

	bl := &pip.Blend
	targets := make([]gputypes.ColorTargetState, bl.ColorAttachmentCount)
	for i := range targets {
		targets[i] = gputypes.ColorTargetState{
			Format:    textureFormat(bl.ColorFormat),
			Blend:     blendState(bl),
			WriteMask: colorWriteMask(bl.ColorWriteMask),
		}
	}
	rd := &wgpu.RenderPipelineDescriptor{
		Label:  pip.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     hs.vs,
			EntryPoint: hs.entry[types.ShaderStageVS],
			Buffers:    buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     hs.fs,
			EntryPoint: hs.entry[types.ShaderStageFS],
			Targets:    targets,
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  primitiveTopology(pip.PrimitiveType),
			CullMode:  cullMode(pip.Rasterizer.CullMode),
			FrontFace: frontFace(pip.Rasterizer.FaceWinding),
		},
		Multisample: gputypes.MultisampleState{
			Count:                  uint32(pip.Rasterizer.SampleCount),
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: pip.Rasterizer.AlphaToCoverageEnabled,
		},
	}
	if bl.DepthFormat.IsDepth() {
		ds := &pip.DepthStencil
		rd.DepthStencil = &wgpu.DepthStencilState{
			Format:            textureFormat(bl.DepthFormat),
			DepthWriteEnabled: ds.DepthWriteEnabled,
			DepthCompare:      compareFunction(ds.DepthCompareFunc),
		}
		if ds.StencilEnabled {
			rd.DepthStencil.StencilFront = stencilFace(ds.StencilFront)
			rd.DepthStencil.StencilBack = stencilFace(ds.StencilBack)
			rd.DepthStencil.StencilReadMask = uint32(ds.StencilReadMask)
			rd.DepthStencil.StencilWriteMask = uint32(ds.StencilWriteMask)
		} else {
			keep := stencilFace(types.StencilState{})
			rd.DepthStencil.StencilFront, rd.DepthStencil.StencilBack = keep, keep
		}
	}

	rp, err := b.dev.CreateRenderPipeline(rd)
	if err != nil {
		b.releaseSlots(hp.slots[0])
		b.pipelines.Clear(pip.ID)
		return fmt.Errorf("hal: %w: %v", backend.ErrPipeline, err)
	}
	hp.slots[1] = b.rel.Add(object{pipeline: rp})
	hp.pipeline = rp
	hp.indexFormat = indexFormat(pip.IndexType)
	c := bl.BlendColor
	hp.blendColor = gputypes.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
	hp.stencilRef = uint32(pip.DepthStencil.StencilRef)
	return nil
}

// vertexBuffers builds one layout per buffer slot up to the last slot any
// attribute reads. Attribute i is shader location i.
func vertexBuffers(pip *resource.Pipeline) ([]gputypes.VertexBufferLayout, error) {
	n := 0
	for i, used := range pip.VertexLayoutValid {
		if used {
			n = i + 1
		}
	}
	buffers := make([]gputypes.VertexBufferLayout, n)
	for i := range buffers {
		l := pip.Layout.Buffers[i]
		buffers[i].ArrayStride = uint64(l.Stride)
		buffers[i].StepMode = stepMode(l.StepFunc)
	}
	for loc, a := range pip.Layout.Attrs {
		if a.Format == types.VertexFormatInvalid {
			break
		}
		f, ok := vertexFormat(a.Format)
		if !ok {
			return nil, fmt.Errorf("hal: %w: attribute %d", backend.ErrUnsupportedVertexFormat, loc)
		}
		buf := &buffers[a.BufferIndex]
		buf.Attributes = append(buf.Attributes, gputypes.VertexAttribute{
			Format:         f,
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(loc),
		})
	}
	return buffers, nil
}

func (b *Backend) DestroyPipeline(pip *resource.Pipeline) {
	if b.curPipeline == pip {
		b.curPipeline = nil
	}
	b.releaseSlots(b.pipelines.At(pip.ID).slots[:]...)
	b.pipelines.Clear(pip.ID)
}

func (b *Backend) CreatePass(pass *resource.Pass, desc *types.PassDesc) error {
	hp := b.passes.At(pass.ID)
	var views object
	fail := func(err error) error {
		b.destroyObject(views)
		b.passes.Clear(pass.ID)
		return err
	}
	for i := range pass.NumColorAtts {
		att := &pass.ColorAtts[i]
		hi := b.images.At(att.ImageID)
		if att.Image.Type == types.ImageType3D {
			return fail(fmt.Errorf("hal: %w: 3d color attachments are not supported", backend.ErrPassIncomplete))
		}
		v, err := b.attachmentView(att, hi)
		if err != nil {
			return fail(err)
		}
		views.views = append(views.views, v)
		if hi.msaaView != nil {
			hp.colors[i], hp.resolves[i] = hi.msaaView, v
		} else {
			hp.colors[i] = v
		}
	}
	if att := &pass.DepthStencil; att.Image != nil {
		v, err := b.attachmentView(att, b.images.At(att.ImageID))
		if err != nil {
			return fail(err)
		}
		views.views = append(views.views, v)
		hp.depth = v
	}
	hp.slot = b.rel.Add(views)
	return nil
}

// attachmentView creates a single-surface view of an attachment's mip
// level and slice.
func (b *Backend) attachmentView(att *resource.Attachment, hi *halImage) (wgpu.TextureView, error) {
	v, err := b.dev.CreateTextureView(hi.tex[0], &wgpu.TextureViewDescriptor{
		Label:           att.Image.Label,
		Format:          hi.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		BaseMipLevel:    uint32(att.MipLevel),
		MipLevelCount:   1,
		BaseArrayLayer:  uint32(att.Slice),
		ArrayLayerCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("hal: %w: %v", backend.ErrPassIncomplete, err)
	}
	return v, nil
}

func (b *Backend) DestroyPass(pass *resource.Pass) {
	b.releaseSlots(b.passes.At(pass.ID).slot)
	b.passes.Clear(pass.ID)
}

// releaseCapacity is the number of release slots the pools of sizes can
// own at once.
func releaseCapacity(s resource.Sizes) int {
	return 2*s.Buffers + 5*s.Images + 4*s.Shaders + 2*s.Pipelines + s.Passes
}
