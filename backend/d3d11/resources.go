// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"fmt"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

type d3dBuffer struct {
	buf Buffer
}

type d3dImage struct {
	format Format
	// tex is the sampled texture, or the depth texture of a depth render
	// target.
	tex Texture
	// msaa is the multisampled render texture of an MSAA render target;
	// EndPass resolves it into tex.
	msaa Texture
	srv  ShaderResourceView
	smp  SamplerState
}

type d3dShader struct {
	vs         VertexShader
	ps         PixelShader
	vsBytecode []byte
	attrs      []types.ShaderAttrDesc
	cbufs      [types.NumShaderStages][]Buffer
}

type d3dPipeline struct {
	il          InputLayout
	rs          RasterizerState
	bs          BlendState
	dss         DepthStencilState
	topology    PrimitiveTopology
	indexFormat Format
	strides     [types.MaxVertexBuffers]uint32
}

type d3dPass struct {
	rtvs [types.MaxColorAttachments]RenderTargetView
	dsv  DepthStencilView
}

func (b *Backend) CreateBuffer(buf *resource.Buffer, desc *types.BufferDesc) error {
	usage, cpu := bufferUsage(buf.Usage)
	bd := BufferDesc{
		ByteWidth:      buf.Size,
		Usage:          usage,
		BindFlags:      bindFlags(buf.Type),
		CPUAccessFlags: cpu,
	}
	var initial *SubresourceData
	if buf.Usage == types.UsageImmutable {
		initial = &SubresourceData{Data: desc.Content}
	}
	nb, err := b.dev.CreateBuffer(&bd, initial)
	if err != nil {
		return fmt.Errorf("d3d11: create buffer: %w", err)
	}
	b.buffers.At(buf.ID).buf = nb
	return nil
}

func (b *Backend) DestroyBuffer(buf *resource.Buffer) {
	release(b.buffers.At(buf.ID).buf)
	b.buffers.Clear(buf.ID)
}

func (b *Backend) UpdateBuffer(buf *resource.Buffer, data []byte) {
	b.writeBuffer(buf, 0, data, MapWriteDiscard)
}

func (b *Backend) AppendBuffer(buf *resource.Buffer, data []byte, newFrame bool) {
	mt := MapWriteNoOverwrite
	if newFrame {
		mt = MapWriteDiscard
	}
	b.writeBuffer(buf, buf.AppendPos, data, mt)
}

func (b *Backend) writeBuffer(buf *resource.Buffer, offset int, data []byte, mt MapType) {
	nb := b.buffers.At(buf.ID).buf
	m, err := b.ctx.Map(nb, 0, mt)
	if err != nil {
		backend.Logger().Warn("d3d11: map buffer failed", "id", buf.ID, "err", err)
		return
	}
	copy(m.Data[offset:], data)
	b.ctx.Unmap(nb, 0)
}

func (b *Backend) CreateImage(img *resource.Image, desc *types.ImageDesc) error {
	format := textureFormat(img.PixelFormat)
	if format == FormatUnknown || !b.PixelFormat(img.PixelFormat).Supported() {
		return fmt.Errorf("d3d11: %w: %s", backend.ErrUnsupportedPixelFormat, img.PixelFormat)
	}
	di := b.images.At(img.ID)
	di.format = format
	if err := b.createTextures(img, di, desc); err != nil {
		b.DestroyImage(img)
		return err
	}
	return nil
}

func (b *Backend) createTextures(img *resource.Image, di *d3dImage, desc *types.ImageDesc) error {
	samples := max(img.SampleCount, 1)
	if img.RenderTarget && img.PixelFormat.IsDepth() {
		tex, err := b.dev.CreateTexture2D(&Texture2DDesc{
			Width: img.Width, Height: img.Height, MipLevels: 1, ArraySize: 1,
			Format: di.format, SampleCount: samples, Usage: UsageDefault, BindFlags: BindDepthStencil,
		}, nil)
		if err != nil {
			return fmt.Errorf("d3d11: create depth texture: %w", err)
		}
		di.tex = tex
		return nil
	}

	usage, cpu := UsageImmutable, uint32(0)
	bind := uint32(BindShaderResource)
	var initial []SubresourceData
	switch {
	case img.RenderTarget:
		usage = UsageDefault
		bind |= BindRenderTarget
	case img.Usage != types.UsageImmutable:
		usage, cpu = UsageDynamic, CPUAccessWrite
	default:
		initial = subresources(img, &desc.Content)
	}

	var err error
	if img.Type == types.ImageType3D {
		di.tex, err = b.dev.CreateTexture3D(&Texture3DDesc{
			Width: img.Width, Height: img.Height, Depth: img.NumSlices, MipLevels: img.NumMipmaps,
			Format: di.format, Usage: usage, BindFlags: bind, CPUAccessFlags: cpu,
		}, initial)
	} else {
		td := Texture2DDesc{
			Width: img.Width, Height: img.Height, MipLevels: img.NumMipmaps, ArraySize: arraySize(img),
			Format: di.format, SampleCount: 1, Usage: usage, BindFlags: bind, CPUAccessFlags: cpu,
		}
		if img.Type == types.ImageTypeCube {
			td.MiscFlags = ResourceMiscTexCube
		}
		di.tex, err = b.dev.CreateTexture2D(&td, initial)
	}
	if err != nil {
		return fmt.Errorf("d3d11: create texture: %w", err)
	}

	if img.RenderTarget && samples > 1 {
		di.msaa, err = b.dev.CreateTexture2D(&Texture2DDesc{
			Width: img.Width, Height: img.Height, MipLevels: 1, ArraySize: 1,
			Format: di.format, SampleCount: samples, Usage: UsageDefault, BindFlags: BindRenderTarget,
		}, nil)
		if err != nil {
			return fmt.Errorf("d3d11: create msaa texture: %w", err)
		}
	}

	di.srv, err = b.dev.CreateShaderResourceView(di.tex, &ShaderResourceViewDesc{
		Format:    di.format,
		Dimension: srvDimension(img.Type),
		MipLevels: img.NumMipmaps,
		ArraySize: arraySize(img),
	})
	if err != nil {
		return fmt.Errorf("d3d11: create shader resource view: %w", err)
	}
	di.smp, err = b.dev.CreateSamplerState(&SamplerDesc{
		Filter:         filter(img.MinFilter, img.MagFilter, img.MaxAnisotropy),
		AddressU:       addressMode(img.WrapU),
		AddressV:       addressMode(img.WrapV),
		AddressW:       addressMode(img.WrapW),
		MaxAnisotropy:  max(img.MaxAnisotropy, 1),
		ComparisonFunc: ComparisonNever,
		MinLOD:         img.MinLOD,
		MaxLOD:         img.MaxLOD,
	})
	if err != nil {
		return fmt.Errorf("d3d11: create sampler: %w", err)
	}
	return nil
}

func arraySize(img *resource.Image) int {
	switch img.Type {
	case types.ImageTypeCube:
		return types.CubeFaces
	case types.ImageTypeArray:
		return img.NumSlices
	default:
		return 1
	}
}

func srvDimension(t types.ImageType) ViewDimension {
	switch t {
	case types.ImageTypeCube:
		return ViewTextureCube
	case types.ImageType3D:
		return ViewTexture3D
	case types.ImageTypeArray:
		return ViewTexture2DArray
	default:
		return ViewTexture2D
	}
}

// subresources lays content out in D3D11 subresource order: all mips of
// the first array slice or cube face, then the next.
func subresources(img *resource.Image, content *types.SubimageContent) []SubresourceData {
	pf := img.PixelFormat
	var out []SubresourceData
	for slice := range arraySize(img) {
		for mip := range img.NumMipmaps {
			w := max(img.Width>>mip, 1)
			h := max(img.Height>>mip, 1)
			row := pf.RowPitch(w)
			surf := pf.SurfacePitch(w, h)
			switch img.Type {
			case types.ImageTypeCube:
				out = append(out, SubresourceData{Data: content[slice][mip], RowPitch: row, SlicePitch: surf})
			case types.ImageTypeArray:
				data := content[0][mip]
				if end := (slice + 1) * surf; end <= len(data) {
					data = data[slice*surf : end]
				}
				out = append(out, SubresourceData{Data: data, RowPitch: row, SlicePitch: surf})
			default:
				out = append(out, SubresourceData{Data: content[0][mip], RowPitch: row, SlicePitch: surf})
			}
		}
	}
	return out
}

func (b *Backend) DestroyImage(img *resource.Image) {
	di := b.images.At(img.ID)
	release(di.smp, di.srv, di.msaa, di.tex)
	b.images.Clear(img.ID)
}

// UpdateImage rewrites every subresource for which data holds content.
func (b *Backend) UpdateImage(img *resource.Image, data *types.SubimageContent) {
	di := b.images.At(img.ID)
	for i, sub := range subresources(img, data) {
		if len(sub.Data) == 0 {
			continue
		}
		depth := 1
		if img.Type == types.ImageType3D {
			depth = max(img.NumSlices>>(i%img.NumMipmaps), 1)
		}
		m, err := b.ctx.Map(di.tex, i, MapWriteDiscard)
		if err != nil {
			backend.Logger().Warn("d3d11: map image failed", "id", img.ID, "subresource", i, "err", err)
			continue
		}
		copyRows(m, sub.Data, sub.RowPitch, sub.SlicePitch/sub.RowPitch, depth)
		b.ctx.Unmap(di.tex, i)
	}
}

// copyRows copies tightly packed rows into mapped memory with the
// driver's row and depth pitch.
func copyRows(m MappedSubresource, src []byte, rowSize, rows, depth int) {
	for z := range depth {
		for y := range rows {
			s := (z*rows + y) * rowSize
			d := z*m.DepthPitch + y*m.RowPitch
			if s+rowSize > len(src) || d+rowSize > len(m.Data) {
				return
			}
			copy(m.Data[d:d+rowSize], src[s:s+rowSize])
		}
	}
}

func (b *Backend) CreateShader(shd *resource.Shader, desc *types.ShaderDesc) error {
	ds := b.shaders.At(shd.ID)
	if err := b.createShader(ds, desc); err != nil {
		b.DestroyShader(shd)
		return err
	}
	return nil
}

func (b *Backend) createShader(ds *d3dShader, desc *types.ShaderDesc) error {
	vsCode, err := b.bytecode(&desc.VS, "vs_5_0")
	if err != nil {
		return err
	}
	psCode, err := b.bytecode(&desc.FS, "ps_5_0")
	if err != nil {
		return err
	}
	if ds.vs, err = b.dev.CreateVertexShader(vsCode); err != nil {
		return fmt.Errorf("d3d11: vertex shader: %w: %w", backend.ErrShaderCompile, err)
	}
	if ds.ps, err = b.dev.CreatePixelShader(psCode); err != nil {
		return fmt.Errorf("d3d11: pixel shader: %w: %w", backend.ErrShaderCompile, err)
	}
	ds.vsBytecode = vsCode
	ds.attrs = append([]types.ShaderAttrDesc(nil), desc.Attrs...)
	for stage, sd := range [...]*types.ShaderStageDesc{&desc.VS, &desc.FS} {
		for _, ub := range sd.UniformBlocks {
			cb, err := b.dev.CreateBuffer(&BufferDesc{
				ByteWidth: cbufSize(ub.Size),
				Usage:     UsageDefault,
				BindFlags: BindConstantBuffer,
			}, nil)
			if err != nil {
				return fmt.Errorf("d3d11: constant buffer: %w", err)
			}
			ds.cbufs[stage] = append(ds.cbufs[stage], cb)
		}
	}
	return nil
}

// cbufSize rounds a uniform block size up to the 16-byte constant buffer
// granularity.
func cbufSize(n int) int {
	return (n + 15) &^ 15
}

func (b *Backend) bytecode(sd *types.ShaderStageDesc, target string) ([]byte, error) {
	if len(sd.Bytecode) > 0 {
		return sd.Bytecode, nil
	}
	if sd.Source == "" {
		return nil, fmt.Errorf("d3d11: %w: %s needs bytecode or source", backend.ErrShaderCompile, target)
	}
	if b.comp == nil {
		return nil, fmt.Errorf("d3d11: %w: %s given as source but no Compiler", backend.ErrShaderCompile, target)
	}
	entry := sd.Entry
	if entry == "" {
		entry = "main"
	}
	code, err := b.comp.Compile(sd.Source, entry, target)
	if err != nil {
		return nil, fmt.Errorf("d3d11: %s: %w: %w", target, backend.ErrShaderCompile, err)
	}
	return code, nil
}

func (b *Backend) DestroyShader(shd *resource.Shader) {
	ds := b.shaders.At(shd.ID)
	for _, cbs := range ds.cbufs {
		for _, cb := range cbs {
			release(cb)
		}
	}
	release(ds.ps, ds.vs)
	b.shaders.Clear(shd.ID)
}

func (b *Backend) CreatePipeline(pip *resource.Pipeline, desc *types.PipelineDesc) error {
	dp := b.pipelines.At(pip.ID)
	if err := b.createPipeline(pip, dp); err != nil {
		b.DestroyPipeline(pip)
		return err
	}
	return nil
}

func (b *Backend) createPipeline(pip *resource.Pipeline, dp *d3dPipeline) error {
	ds := b.shaders.At(pip.ShaderID)
	var elems []InputElementDesc
	for i, a := range pip.Layout.Attrs {
		if a.Format == types.VertexFormatInvalid {
			continue
		}
		if i >= len(ds.attrs) || ds.attrs[i].SemName == "" {
			return fmt.Errorf("d3d11: %w: attribute %d has no semantic name", backend.ErrPipeline, i)
		}
		format := vertexFormat(a.Format)
		if format == FormatUnknown {
			return fmt.Errorf("d3d11: %w: attribute %d", backend.ErrUnsupportedVertexFormat, i)
		}
		l := pip.Layout.Buffers[a.BufferIndex]
		e := InputElementDesc{
			SemanticName:      ds.attrs[i].SemName,
			SemanticIndex:     ds.attrs[i].SemIndex,
			Format:            format,
			InputSlot:         a.BufferIndex,
			AlignedByteOffset: a.Offset,
		}
		if l.StepFunc == types.VertexStepPerInstance {
			e.InputSlotClass = InputPerInstance
			e.InstanceDataStepRate = l.StepRate
		}
		elems = append(elems, e)
	}
	for i, l := range pip.Layout.Buffers {
		dp.strides[i] = uint32(l.Stride)
	}

	var err error
	if dp.il, err = b.dev.CreateInputLayout(elems, ds.vsBytecode); err != nil {
		return fmt.Errorf("d3d11: %w: input layout: %w", backend.ErrPipeline, err)
	}

	rs := &pip.Rasterizer
	if dp.rs, err = b.dev.CreateRasterizerState(&RasterizerDesc{
		CullMode:              cullMode(rs.CullMode),
		FrontCounterClockwise: rs.FaceWinding == types.FaceWindingCCW,
		DepthBias:             int(rs.DepthBias),
		DepthBiasClamp:        rs.DepthBiasClamp,
		SlopeScaledDepthBias:  rs.DepthBiasSlopeScale,
		DepthClipEnable:       true,
		ScissorEnable:         true,
		MultisampleEnable:     rs.SampleCount > 1,
	}); err != nil {
		return fmt.Errorf("d3d11: %w: rasterizer state: %w", backend.ErrPipeline, err)
	}

	bs := &pip.Blend
	bd := BlendDesc{AlphaToCoverageEnable: rs.AlphaToCoverageEnabled}
	for i := range max(bs.ColorAttachmentCount, 1) {
		bd.RenderTarget[i] = RenderTargetBlendDesc{
			BlendEnable:           bs.Enabled,
			SrcBlend:              blendFactor(bs.SrcFactorRGB),
			DestBlend:             blendFactor(bs.DstFactorRGB),
			BlendOp:               blendOp(bs.OpRGB),
			SrcBlendAlpha:         blendFactor(bs.SrcFactorAlpha),
			DestBlendAlpha:        blendFactor(bs.DstFactorAlpha),
			BlendOpAlpha:          blendOp(bs.OpAlpha),
			RenderTargetWriteMask: writeMask(bs.ColorWriteMask),
		}
	}
	if dp.bs, err = b.dev.CreateBlendState(&bd); err != nil {
		return fmt.Errorf("d3d11: %w: blend state: %w", backend.ErrPipeline, err)
	}

	dss := &pip.DepthStencil
	if dp.dss, err = b.dev.CreateDepthStencilState(&DepthStencilDesc{
		DepthEnable:      true,
		DepthWriteAll:    dss.DepthWriteEnabled,
		DepthFunc:        compareFunc(dss.DepthCompareFunc),
		StencilEnable:    dss.StencilEnabled,
		StencilReadMask:  dss.StencilReadMask,
		StencilWriteMask: dss.StencilWriteMask,
		FrontFace:        stencilState(&dss.StencilFront),
		BackFace:         stencilState(&dss.StencilBack),
	}); err != nil {
		return fmt.Errorf("d3d11: %w: depth-stencil state: %w", backend.ErrPipeline, err)
	}

	dp.topology = topology(pip.PrimitiveType)
	dp.indexFormat = indexFormat(pip.IndexType)
	return nil
}

func (b *Backend) DestroyPipeline(pip *resource.Pipeline) {
	if b.curPipeline == pip {
		b.curPipeline = nil
	}
	dp := b.pipelines.At(pip.ID)
	release(dp.dss, dp.bs, dp.rs, dp.il)
	b.pipelines.Clear(pip.ID)
}

func (b *Backend) CreatePass(pass *resource.Pass, desc *types.PassDesc) error {
	dp := b.passes.At(pass.ID)
	if err := b.createPass(pass, dp); err != nil {
		b.DestroyPass(pass)
		return err
	}
	return nil
}

func (b *Backend) createPass(pass *resource.Pass, dp *d3dPass) error {
	for i := range pass.NumColorAtts {
		att := &pass.ColorAtts[i]
		di := b.images.At(att.Image.ID)
		res, vd := di.tex, RenderTargetViewDesc{Format: di.format, MipSlice: att.MipLevel, Slice: att.Slice}
		switch {
		case di.msaa != nil:
			res, vd = di.msaa, RenderTargetViewDesc{Format: di.format, Dimension: ViewTexture2DMS}
		case att.Image.Type == types.ImageType3D:
			vd.Dimension = ViewTexture3D
		case att.Image.Type == types.ImageTypeCube, att.Image.Type == types.ImageTypeArray:
			vd.Dimension = ViewTexture2DArray
		default:
			vd.Dimension = ViewTexture2D
		}
		rtv, err := b.dev.CreateRenderTargetView(res, &vd)
		if err != nil {
			return fmt.Errorf("d3d11: %w: color attachment %d: %w", backend.ErrPassIncomplete, i, err)
		}
		dp.rtvs[i] = rtv
	}
	if att := &pass.DepthStencil; att.Image != nil {
		di := b.images.At(att.Image.ID)
		dsv, err := b.dev.CreateDepthStencilView(di.tex, &DepthStencilViewDesc{
			Format:       di.format,
			Multisampled: att.Image.SampleCount > 1,
		})
		if err != nil {
			return fmt.Errorf("d3d11: %w: depth-stencil attachment: %w", backend.ErrPassIncomplete, err)
		}
		dp.dsv = dsv
	}
	return nil
}

func (b *Backend) DestroyPass(pass *resource.Pass) {
	if b.curPass == pass {
		b.curPass = nil
	}
	dp := b.passes.At(pass.ID)
	for _, rtv := range dp.rtvs {
		release(rtv)
	}
	release(dp.dsv)
	b.passes.Clear(pass.ID)
}
