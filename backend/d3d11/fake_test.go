// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"errors"
	"fmt"
	"strings"
)

var errFake = errors.New("fake device failure")

// fakeObj is a native object with a release counter. Mappable objects own
// memory laid out with a 256-byte row pitch.
type fakeObj struct {
	kind     string
	released int
	mem      []byte
	rowPitch int
	depth    int
}

func (o *fakeObj) Release() { o.released++ }

// fakeDevice hands out fakeObjs and fails the methods named in fail.
type fakeDevice struct {
	objs    []*fakeObj
	fail    map[string]bool
	support map[Format]uint32

	buffers    []BufferDesc
	textures2D []Texture2DDesc
	rtvs       []RenderTargetViewDesc
	layouts    [][]InputElementDesc
}

const allSupport = FormatSupportTexture2D | FormatSupportTexture3D | FormatSupportTextureCube |
	FormatSupportShaderSample | FormatSupportRenderTarget | FormatSupportBlendable |
	FormatSupportMSAARenderTarget

func newFakeDevice() *fakeDevice {
	return &fakeDevice{fail: map[string]bool{}, support: map[Format]uint32{}}
}

func (d *fakeDevice) obj(method, kind string) (*fakeObj, error) {
	if d.fail[method] {
		return nil, errFake
	}
	o := &fakeObj{kind: kind}
	d.objs = append(d.objs, o)
	return o, nil
}

// live returns the number of objects not yet released.
func (d *fakeDevice) live() int {
	n := 0
	for _, o := range d.objs {
		if o.released == 0 {
			n++
		}
	}
	return n
}

// overReleased returns the kinds of objects released more than once.
func (d *fakeDevice) overReleased() []string {
	var kinds []string
	for _, o := range d.objs {
		if o.released > 1 {
			kinds = append(kinds, o.kind)
		}
	}
	return kinds
}

// ret converts a possibly nil *fakeObj to an interface that is nil when
// the object is.
func ret(o *fakeObj, err error) (Unknown, error) {
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (d *fakeDevice) CreateBuffer(desc *BufferDesc, initial *SubresourceData) (Buffer, error) {
	o, err := d.obj("CreateBuffer", "buffer")
	if err == nil {
		d.buffers = append(d.buffers, *desc)
		o.mem = make([]byte, desc.ByteWidth)
	}
	return ret(o, err)
}

func (d *fakeDevice) CreateTexture2D(desc *Texture2DDesc, initial []SubresourceData) (Texture, error) {
	o, err := d.obj("CreateTexture2D", "texture2d")
	if err == nil {
		d.textures2D = append(d.textures2D, *desc)
		o.rowPitch = 256
		o.mem = make([]byte, 256*desc.Height)
	}
	return ret(o, err)
}

func (d *fakeDevice) CreateTexture3D(desc *Texture3DDesc, initial []SubresourceData) (Texture, error) {
	o, err := d.obj("CreateTexture3D", "texture3d")
	if err == nil {
		o.rowPitch = 256
		o.depth = 256 * desc.Height
		o.mem = make([]byte, o.depth*desc.Depth)
	}
	return ret(o, err)
}

func (d *fakeDevice) CreateShaderResourceView(res Resource, desc *ShaderResourceViewDesc) (ShaderResourceView, error) {
	return ret(d.obj("CreateShaderResourceView", "srv"))
}

func (d *fakeDevice) CreateRenderTargetView(res Resource, desc *RenderTargetViewDesc) (RenderTargetView, error) {
	o, err := d.obj("CreateRenderTargetView", "rtv")
	if err == nil {
		d.rtvs = append(d.rtvs, *desc)
	}
	return ret(o, err)
}

func (d *fakeDevice) CreateDepthStencilView(res Resource, desc *DepthStencilViewDesc) (DepthStencilView, error) {
	return ret(d.obj("CreateDepthStencilView", "dsv"))
}

func (d *fakeDevice) CreateSamplerState(desc *SamplerDesc) (SamplerState, error) {
	return ret(d.obj("CreateSamplerState", "sampler"))
}

func (d *fakeDevice) CreateVertexShader(bytecode []byte) (VertexShader, error) {
	return ret(d.obj("CreateVertexShader", "vs"))
}

func (d *fakeDevice) CreatePixelShader(bytecode []byte) (PixelShader, error) {
	return ret(d.obj("CreatePixelShader", "ps"))
}

func (d *fakeDevice) CreateInputLayout(elems []InputElementDesc, vsBytecode []byte) (InputLayout, error) {
	o, err := d.obj("CreateInputLayout", "input-layout")
	if err == nil {
		d.layouts = append(d.layouts, elems)
	}
	return ret(o, err)
}

func (d *fakeDevice) CreateRasterizerState(desc *RasterizerDesc) (RasterizerState, error) {
	return ret(d.obj("CreateRasterizerState", "rasterizer"))
}

func (d *fakeDevice) CreateBlendState(desc *BlendDesc) (BlendState, error) {
	return ret(d.obj("CreateBlendState", "blend"))
}

func (d *fakeDevice) CreateDepthStencilState(desc *DepthStencilDesc) (DepthStencilState, error) {
	return ret(d.obj("CreateDepthStencilState", "depth-stencil"))
}

func (d *fakeDevice) CheckFormatSupport(format Format) uint32 {
	if bits, ok := d.support[format]; ok {
		return bits
	}
	switch format {
	case FormatD32Float, FormatD24UNormS8UInt:
		return FormatSupportTexture2D | FormatSupportDepthStencil | FormatSupportMSAARenderTarget
	}
	return allSupport
}

// fakeContext records calls in order.
type fakeContext struct {
	calls    []string
	maps     []MapType
	uploaded [][]byte
	viewport Viewport
}

func (c *fakeContext) rec(name string, args ...any) {
	if len(args) == 0 {
		c.calls = append(c.calls, name)
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	c.calls = append(c.calls, name+"("+strings.Join(parts, ",")+")")
}

func (c *fakeContext) clear() { c.calls = nil }

func (c *fakeContext) has(call string) bool {
	for _, got := range c.calls {
		if got == call {
			return true
		}
	}
	return false
}

func (c *fakeContext) count(name string) int {
	n := 0
	for _, got := range c.calls {
		if before, _, _ := strings.Cut(got, "("); before == name {
			n++
		}
	}
	return n
}

func (c *fakeContext) OMSetRenderTargets(rtvs []RenderTargetView, dsv DepthStencilView) {
	c.rec("OMSetRenderTargets", len(rtvs), dsv != nil)
}
func (c *fakeContext) OMSetBlendState(bs BlendState, factor [4]float32, sampleMask uint32) {
	c.rec("OMSetBlendState")
}
func (c *fakeContext) OMSetDepthStencilState(ds DepthStencilState, ref uint32) {
	c.rec("OMSetDepthStencilState", ref)
}
func (c *fakeContext) ClearRenderTargetView(rtv RenderTargetView, color [4]float32) {
	c.rec("ClearRenderTargetView")
}
func (c *fakeContext) ClearDepthStencilView(dsv DepthStencilView, flags uint32, depth float32, stencil uint8) {
	c.rec("ClearDepthStencilView", flags)
}
func (c *fakeContext) RSSetState(rs RasterizerState) { c.rec("RSSetState") }
func (c *fakeContext) RSSetViewports(vp Viewport) {
	c.viewport = vp
	c.rec("RSSetViewports")
}
func (c *fakeContext) RSSetScissorRects(r Rect) {
	c.rec("RSSetScissorRects", r.Left, r.Top, r.Right, r.Bottom)
}
func (c *fakeContext) IASetInputLayout(il InputLayout)            { c.rec("IASetInputLayout") }
func (c *fakeContext) IASetPrimitiveTopology(t PrimitiveTopology) { c.rec("IASetPrimitiveTopology", uint32(t)) }
func (c *fakeContext) IASetVertexBuffers(start int, bufs []Buffer, strides, offsets []uint32) {
	c.rec("IASetVertexBuffers", strides[0], offsets[0])
}
func (c *fakeContext) IASetIndexBuffer(buf Buffer, format Format, offset uint32) {
	c.rec("IASetIndexBuffer", uint32(format), offset)
}
func (c *fakeContext) VSSetShader(vs VertexShader) { c.rec("VSSetShader") }
func (c *fakeContext) PSSetShader(ps PixelShader)  { c.rec("PSSetShader") }
func (c *fakeContext) VSSetConstantBuffers(start int, bufs []Buffer) {
	c.rec("VSSetConstantBuffers", len(bufs))
}
func (c *fakeContext) PSSetConstantBuffers(start int, bufs []Buffer) {
	c.rec("PSSetConstantBuffers", len(bufs))
}
func (c *fakeContext) VSSetShaderResources(start int, views []ShaderResourceView) {
	c.rec("VSSetShaderResources", len(views))
}
func (c *fakeContext) PSSetShaderResources(start int, views []ShaderResourceView) {
	c.rec("PSSetShaderResources", len(views))
}
func (c *fakeContext) VSSetSamplers(start int, samplers []SamplerState) {
	c.rec("VSSetSamplers", len(samplers))
}
func (c *fakeContext) PSSetSamplers(start int, samplers []SamplerState) {
	c.rec("PSSetSamplers", len(samplers))
}
func (c *fakeContext) UpdateSubresource(res Resource, subresource int, data []byte, rowPitch, depthPitch int) {
	c.uploaded = append(c.uploaded, append([]byte(nil), data...))
	c.rec("UpdateSubresource", len(data))
}
func (c *fakeContext) Map(res Resource, subresource int, mapType MapType) (MappedSubresource, error) {
	c.maps = append(c.maps, mapType)
	c.rec("Map", subresource, uint32(mapType))
	o := res.(*fakeObj)
	return MappedSubresource{Data: o.mem, RowPitch: o.rowPitch, DepthPitch: o.depth}, nil
}
func (c *fakeContext) Unmap(res Resource, subresource int) { c.rec("Unmap", subresource) }
func (c *fakeContext) ResolveSubresource(dst Resource, dstSub int, src Resource, srcSub int, format Format) {
	c.rec("ResolveSubresource", dstSub, srcSub, uint32(format))
}
func (c *fakeContext) DrawInstanced(vertexCount, instanceCount, startVertex, startInstance int) {
	c.rec("DrawInstanced", vertexCount, instanceCount, startVertex, startInstance)
}
func (c *fakeContext) DrawIndexedInstanced(indexCount, instanceCount, startIndex, baseVertex, startInstance int) {
	c.rec("DrawIndexedInstanced", indexCount, instanceCount, startIndex, baseVertex, startInstance)
}
func (c *fakeContext) Flush() { c.rec("Flush") }

type fakeSwapchain struct {
	rtv, dsv *fakeObj
}

func (s *fakeSwapchain) RenderTargetView() RenderTargetView { return s.rtv }
func (s *fakeSwapchain) DepthStencilView() DepthStencilView { return s.dsv }

// fakeCompiler returns the target name as bytecode. Sources containing
// "error" fail.
type fakeCompiler struct {
	compiled []string
}

func (c *fakeCompiler) Compile(source, entry, target string) ([]byte, error) {
	if strings.Contains(source, "error") {
		return nil, fmt.Errorf("%s: syntax error", target)
	}
	c.compiled = append(c.compiled, target+":"+entry)
	return []byte(target), nil
}
