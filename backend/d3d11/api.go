// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

// The interfaces below mirror the subset of ID3D11Device and
// ID3D11DeviceContext the back-end calls. A host implements them on top of
// its COM bindings. Every object a Device method returns carries one
// reference that the back-end gives up with Release.

// Unknown is the reference-counted base of every object.
type Unknown interface {
	Release()
}

// Object kinds. They are distinct names for documentation; a host may use
// one concrete type for several of them.
type (
	Resource           = Unknown
	Buffer             = Unknown
	Texture            = Unknown
	ShaderResourceView = Unknown
	RenderTargetView   = Unknown
	DepthStencilView   = Unknown
	SamplerState       = Unknown
	VertexShader       = Unknown
	PixelShader        = Unknown
	InputLayout        = Unknown
	RasterizerState    = Unknown
	BlendState         = Unknown
	DepthStencilState  = Unknown
)

// Device creates native objects.
type Device interface {
	CreateBuffer(desc *BufferDesc, initial *SubresourceData) (Buffer, error)
	CreateTexture2D(desc *Texture2DDesc, initial []SubresourceData) (Texture, error)
	CreateTexture3D(desc *Texture3DDesc, initial []SubresourceData) (Texture, error)
	CreateShaderResourceView(res Resource, desc *ShaderResourceViewDesc) (ShaderResourceView, error)
	CreateRenderTargetView(res Resource, desc *RenderTargetViewDesc) (RenderTargetView, error)
	CreateDepthStencilView(res Resource, desc *DepthStencilViewDesc) (DepthStencilView, error)
	CreateSamplerState(desc *SamplerDesc) (SamplerState, error)
	CreateVertexShader(bytecode []byte) (VertexShader, error)
	CreatePixelShader(bytecode []byte) (PixelShader, error)
	CreateInputLayout(elems []InputElementDesc, vsBytecode []byte) (InputLayout, error)
	CreateRasterizerState(desc *RasterizerDesc) (RasterizerState, error)
	CreateBlendState(desc *BlendDesc) (BlendState, error)
	CreateDepthStencilState(desc *DepthStencilDesc) (DepthStencilState, error)
	// CheckFormatSupport returns the FormatSupport bits of format.
	CheckFormatSupport(format Format) uint32
}

// DeviceContext records commands on the immediate context.
type DeviceContext interface {
	OMSetRenderTargets(rtvs []RenderTargetView, dsv DepthStencilView)
	OMSetBlendState(bs BlendState, factor [4]float32, sampleMask uint32)
	OMSetDepthStencilState(ds DepthStencilState, ref uint32)
	ClearRenderTargetView(rtv RenderTargetView, color [4]float32)
	ClearDepthStencilView(dsv DepthStencilView, flags uint32, depth float32, stencil uint8)
	RSSetState(rs RasterizerState)
	RSSetViewports(vp Viewport)
	RSSetScissorRects(r Rect)
	IASetInputLayout(il InputLayout)
	IASetPrimitiveTopology(t PrimitiveTopology)
	IASetVertexBuffers(start int, bufs []Buffer, strides, offsets []uint32)
	IASetIndexBuffer(buf Buffer, format Format, offset uint32)
	VSSetShader(vs VertexShader)
	PSSetShader(ps PixelShader)
	VSSetConstantBuffers(start int, bufs []Buffer)
	PSSetConstantBuffers(start int, bufs []Buffer)
	VSSetShaderResources(start int, views []ShaderResourceView)
	PSSetShaderResources(start int, views []ShaderResourceView)
	VSSetSamplers(start int, samplers []SamplerState)
	PSSetSamplers(start int, samplers []SamplerState)
	UpdateSubresource(res Resource, subresource int, data []byte, rowPitch, depthPitch int)
	// Map returns the CPU-visible memory of a dynamic resource.
	Map(res Resource, subresource int, mapType MapType) (MappedSubresource, error)
	Unmap(res Resource, subresource int)
	ResolveSubresource(dst Resource, dstSub int, src Resource, srcSub int, format Format)
	DrawInstanced(vertexCount, instanceCount, startVertex, startInstance int)
	DrawIndexedInstanced(indexCount, instanceCount, startIndex, baseVertex, startInstance int)
	Flush()
}

// Swapchain supplies the views of the default pass. Both are called at
// every BeginDefaultPass; DepthStencilView may return nil.
type Swapchain interface {
	RenderTargetView() RenderTargetView
	DepthStencilView() DepthStencilView
}

// Compiler turns HLSL source into bytecode. target is "vs_5_0" or
// "ps_5_0". It is only needed for shaders given as source.
type Compiler interface {
	Compile(source, entry, target string) ([]byte, error)
}

// Format is a DXGI_FORMAT value.
type Format uint32

// DXGI formats.
const (
	FormatUnknown           Format = 0
	FormatR32G32B32A32Float Format = 2
	FormatR32G32B32Float    Format = 6
	FormatR16G16B16A16Float Format = 10
	FormatR16G16B16A16SInt  Format = 14
	FormatR16G16B16A16SNorm Format = 13
	FormatR16G16B16A16UNorm Format = 11
	FormatR32G32Float       Format = 16
	FormatR10G10B10A2UNorm  Format = 24
	FormatR11G11B10Float    Format = 26
	FormatR8G8B8A8UNorm     Format = 28
	FormatR8G8B8A8UNormSRGB Format = 29
	FormatR8G8B8A8UInt      Format = 30
	FormatR8G8B8A8SNorm     Format = 31
	FormatR8G8B8A8SInt      Format = 32
	FormatR16G16Float       Format = 34
	FormatR16G16UNorm       Format = 35
	FormatR16G16SNorm       Format = 37
	FormatR16G16SInt        Format = 38
	FormatD32Float          Format = 40
	FormatR32Float          Format = 41
	FormatR32UInt           Format = 42
	FormatD24UNormS8UInt    Format = 45
	FormatR8G8UNorm         Format = 49
	FormatR16Float          Format = 54
	FormatR16UInt           Format = 57
	FormatR8UNorm           Format = 61
	FormatR8UInt            Format = 62
	FormatR8SNorm           Format = 63
	FormatR8SInt            Format = 64
	FormatBC1UNorm          Format = 71
	FormatBC3UNorm          Format = 77
	FormatB8G8R8A8UNorm     Format = 87
	FormatBC7UNorm          Format = 98
)

// FormatSupport bits returned by CheckFormatSupport.
const (
	FormatSupportTexture2D        = 0x20
	FormatSupportTexture3D        = 0x40
	FormatSupportTextureCube      = 0x80
	FormatSupportShaderSample     = 0x200
	FormatSupportRenderTarget     = 0x4000
	FormatSupportBlendable        = 0x8000
	FormatSupportDepthStencil     = 0x10000
	FormatSupportMSAARenderTarget = 0x200000
)

// Usage is a D3D11_USAGE value.
type Usage uint32

const (
	UsageDefault   Usage = 0
	UsageImmutable Usage = 1
	UsageDynamic   Usage = 2
)

// Bind flags.
const (
	BindVertexBuffer   = 0x1
	BindIndexBuffer    = 0x2
	BindConstantBuffer = 0x4
	BindShaderResource = 0x8
	BindRenderTarget   = 0x20
	BindDepthStencil   = 0x40
)

// CPU access and misc flags.
const (
	CPUAccessWrite      = 0x10000
	ResourceMiscTexCube = 0x4
)

// MapType is a D3D11_MAP value.
type MapType uint32

const (
	MapWriteDiscard     MapType = 4
	MapWriteNoOverwrite MapType = 5
)

// Clear flags.
const (
	ClearDepth   = 0x1
	ClearStencil = 0x2
)

// PrimitiveTopology is a D3D11_PRIMITIVE_TOPOLOGY value.
type PrimitiveTopology uint32

const (
	TopologyPointList     PrimitiveTopology = 1
	TopologyLineList      PrimitiveTopology = 2
	TopologyLineStrip     PrimitiveTopology = 3
	TopologyTriangleList  PrimitiveTopology = 4
	TopologyTriangleStrip PrimitiveTopology = 5
)

// BufferDesc mirrors D3D11_BUFFER_DESC.
type BufferDesc struct {
	ByteWidth      int
	Usage          Usage
	BindFlags      uint32
	CPUAccessFlags uint32
}

// MappedSubresource mirrors D3D11_MAPPED_SUBRESOURCE. Data spans the
// whole mapped range.
type MappedSubresource struct {
	Data       []byte
	RowPitch   int
	DepthPitch int
}

// SubresourceData mirrors D3D11_SUBRESOURCE_DATA.
type SubresourceData struct {
	Data       []byte
	RowPitch   int
	SlicePitch int
}

// Texture2DDesc mirrors D3D11_TEXTURE2D_DESC.
type Texture2DDesc struct {
	Width          int
	Height         int
	MipLevels      int
	ArraySize      int
	Format         Format
	SampleCount    int
	Usage          Usage
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

// Texture3DDesc mirrors D3D11_TEXTURE3D_DESC.
type Texture3DDesc struct {
	Width          int
	Height         int
	Depth          int
	MipLevels      int
	Format         Format
	Usage          Usage
	BindFlags      uint32
	CPUAccessFlags uint32
}

// ViewDimension selects the resource view kind.
type ViewDimension uint32

const (
	ViewTexture2D        ViewDimension = 4
	ViewTexture2DArray   ViewDimension = 5
	ViewTexture2DMS      ViewDimension = 6
	ViewTexture2DMSArray ViewDimension = 7
	ViewTexture3D        ViewDimension = 8
	ViewTextureCube      ViewDimension = 9
)

// ShaderResourceViewDesc mirrors the used part of
// D3D11_SHADER_RESOURCE_VIEW_DESC.
type ShaderResourceViewDesc struct {
	Format    Format
	Dimension ViewDimension
	MipLevels int
	ArraySize int
}

// RenderTargetViewDesc mirrors the used part of
// D3D11_RENDER_TARGET_VIEW_DESC. Slice is the array layer or depth slice.
type RenderTargetViewDesc struct {
	Format    Format
	Dimension ViewDimension
	MipSlice  int
	Slice     int
}

// DepthStencilViewDesc mirrors the used part of
// D3D11_DEPTH_STENCIL_VIEW_DESC. DSV dimensions are numbered differently
// from the other views, so the host picks it from Multisampled.
type DepthStencilViewDesc struct {
	Format       Format
	Multisampled bool
}

// Filter is a D3D11_FILTER value.
type Filter uint32

// Filters.
const (
	FilterMinMagMipPoint             Filter = 0x00
	FilterMinMagPointMipLinear       Filter = 0x01
	FilterMinPointMagLinearMipPoint  Filter = 0x04
	FilterMinPointMagMipLinear       Filter = 0x05
	FilterMinLinearMagMipPoint       Filter = 0x10
	FilterMinLinearMagPointMipLinear Filter = 0x11
	FilterMinMagLinearMipPoint       Filter = 0x14
	FilterMinMagMipLinear            Filter = 0x15
	FilterAnisotropic                Filter = 0x55
)

// AddressMode is a D3D11_TEXTURE_ADDRESS_MODE value.
type AddressMode uint32

const (
	AddressWrap   AddressMode = 1
	AddressMirror AddressMode = 2
	AddressClamp  AddressMode = 3
	AddressBorder AddressMode = 4
)

// SamplerDesc mirrors D3D11_SAMPLER_DESC.
type SamplerDesc struct {
	Filter         Filter
	AddressU       AddressMode
	AddressV       AddressMode
	AddressW       AddressMode
	MaxAnisotropy  int
	ComparisonFunc ComparisonFunc
	MinLOD         float32
	MaxLOD         float32
}

// InputClass selects per-vertex or per-instance input.
type InputClass uint32

const (
	InputPerVertex   InputClass = 0
	InputPerInstance InputClass = 1
)

// InputElementDesc mirrors D3D11_INPUT_ELEMENT_DESC.
type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        int
	Format               Format
	InputSlot            int
	AlignedByteOffset    int
	InputSlotClass       InputClass
	InstanceDataStepRate int
}

// CullMode is a D3D11_CULL_MODE value.
type CullMode uint32

const (
	CullNone  CullMode = 1
	CullFront CullMode = 2
	CullBack  CullMode = 3
)

// RasterizerDesc mirrors D3D11_RASTERIZER_DESC with solid fill.
type RasterizerDesc struct {
	CullMode              CullMode
	FrontCounterClockwise bool
	DepthBias             int
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       bool
	ScissorEnable         bool
	MultisampleEnable     bool
}

// Blend is a D3D11_BLEND value.
type Blend uint32

const (
	BlendZero           Blend = 1
	BlendOne            Blend = 2
	BlendSrcColor       Blend = 3
	BlendInvSrcColor    Blend = 4
	BlendSrcAlpha       Blend = 5
	BlendInvSrcAlpha    Blend = 6
	BlendDestAlpha      Blend = 7
	BlendInvDestAlpha   Blend = 8
	BlendDestColor      Blend = 9
	BlendInvDestColor   Blend = 10
	BlendSrcAlphaSat    Blend = 11
	BlendBlendFactor    Blend = 14
	BlendInvBlendFactor Blend = 15
)

// BlendOp is a D3D11_BLEND_OP value.
type BlendOp uint32

const (
	BlendOpAdd         BlendOp = 1
	BlendOpSubtract    BlendOp = 2
	BlendOpRevSubtract BlendOp = 3
)

// RenderTargetBlendDesc mirrors D3D11_RENDER_TARGET_BLEND_DESC.
type RenderTargetBlendDesc struct {
	BlendEnable           bool
	SrcBlend              Blend
	DestBlend             Blend
	BlendOp               BlendOp
	SrcBlendAlpha         Blend
	DestBlendAlpha        Blend
	BlendOpAlpha          BlendOp
	RenderTargetWriteMask uint8
}

// BlendDesc mirrors D3D11_BLEND_DESC.
type BlendDesc struct {
	AlphaToCoverageEnable  bool
	IndependentBlendEnable bool
	RenderTarget           [8]RenderTargetBlendDesc
}

// ComparisonFunc is a D3D11_COMPARISON_FUNC value.
type ComparisonFunc uint32

const (
	ComparisonNever        ComparisonFunc = 1
	ComparisonLess         ComparisonFunc = 2
	ComparisonEqual        ComparisonFunc = 3
	ComparisonLessEqual    ComparisonFunc = 4
	ComparisonGreater      ComparisonFunc = 5
	ComparisonNotEqual     ComparisonFunc = 6
	ComparisonGreaterEqual ComparisonFunc = 7
	ComparisonAlways       ComparisonFunc = 8
)

// StencilOp is a D3D11_STENCIL_OP value.
type StencilOp uint32

const (
	StencilOpKeep    StencilOp = 1
	StencilOpZero    StencilOp = 2
	StencilOpReplace StencilOp = 3
	StencilOpIncrSat StencilOp = 4
	StencilOpDecrSat StencilOp = 5
	StencilOpInvert  StencilOp = 6
	StencilOpIncr    StencilOp = 7
	StencilOpDecr    StencilOp = 8
)

// DepthStencilOpDesc mirrors D3D11_DEPTH_STENCILOP_DESC.
type DepthStencilOpDesc struct {
	StencilFailOp      StencilOp
	StencilDepthFailOp StencilOp
	StencilPassOp      StencilOp
	StencilFunc        ComparisonFunc
}

// DepthStencilDesc mirrors D3D11_DEPTH_STENCIL_DESC.
type DepthStencilDesc struct {
	DepthEnable      bool
	DepthWriteAll    bool
	DepthFunc        ComparisonFunc
	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        DepthStencilOpDesc
	BackFace         DepthStencilOpDesc
}

// Viewport mirrors D3D11_VIEWPORT.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Rect mirrors D3D11_RECT.
type Rect struct {
	Left, Top, Right, Bottom int
}
