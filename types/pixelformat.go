// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package types

// PixelFormat is a portable image pixel format.
//
// Not every back-end can represent every format. A back-end that cannot
// reports the format through QueryPixelFormat as unsupported, and image
// creation with it fails.
type PixelFormat uint8

// Pixel formats. PixelFormatDefault resolves to RGBA8 for color images and
// DepthStencil for depth render targets.
const (
	PixelFormatDefault PixelFormat = iota
	PixelFormatNone

	PixelFormatR8
	PixelFormatR8SN
	PixelFormatR8UI
	PixelFormatR8SI
	PixelFormatR16F
	PixelFormatRG8
	PixelFormatR32F
	PixelFormatRG16F
	PixelFormatRGBA8
	PixelFormatSRGB8A8
	PixelFormatBGRA8
	PixelFormatRGB10A2
	PixelFormatRG11B10F
	PixelFormatRG32F
	PixelFormatRGBA16F
	PixelFormatRGBA32F

	PixelFormatDepth
	PixelFormatDepthStencil

	PixelFormatBC1RGBA
	PixelFormatBC3RGBA
	PixelFormatBC7RGBA
	PixelFormatETC2RGB8

	// NumPixelFormats is one past the last valid pixel format.
	NumPixelFormats
)

var pixelFormatNames = [NumPixelFormats]string{
	PixelFormatDefault:      "default",
	PixelFormatNone:         "none",
	PixelFormatR8:           "r8",
	PixelFormatR8SN:         "r8sn",
	PixelFormatR8UI:         "r8ui",
	PixelFormatR8SI:         "r8si",
	PixelFormatR16F:         "r16f",
	PixelFormatRG8:          "rg8",
	PixelFormatR32F:         "r32f",
	PixelFormatRG16F:        "rg16f",
	PixelFormatRGBA8:        "rgba8",
	PixelFormatSRGB8A8:      "srgb8a8",
	PixelFormatBGRA8:        "bgra8",
	PixelFormatRGB10A2:      "rgb10a2",
	PixelFormatRG11B10F:     "rg11b10f",
	PixelFormatRG32F:        "rg32f",
	PixelFormatRGBA16F:      "rgba16f",
	PixelFormatRGBA32F:      "rgba32f",
	PixelFormatDepth:        "depth",
	PixelFormatDepthStencil: "depth-stencil",
	PixelFormatBC1RGBA:      "bc1-rgba",
	PixelFormatBC3RGBA:      "bc3-rgba",
	PixelFormatBC7RGBA:      "bc7-rgba",
	PixelFormatETC2RGB8:     "etc2-rgb8",
}

// String returns the format name.
func (f PixelFormat) String() string {
	if f < NumPixelFormats {
		return pixelFormatNames[f]
	}
	return "unknown"
}

// IsDepth reports whether f is a depth or depth-stencil format.
func (f PixelFormat) IsDepth() bool {
	return f == PixelFormatDepth || f == PixelFormatDepthStencil
}

// IsCompressed reports whether f is a block-compressed format.
func (f PixelFormat) IsCompressed() bool {
	switch f {
	case PixelFormatBC1RGBA, PixelFormatBC3RGBA, PixelFormatBC7RGBA, PixelFormatETC2RGB8:
		return true
	default:
		return false
	}
}

// BytesPerPixel returns the size of one pixel, or 0 for compressed and
// non-color formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatR8, PixelFormatR8SN, PixelFormatR8UI, PixelFormatR8SI:
		return 1
	case PixelFormatR16F, PixelFormatRG8:
		return 2
	case PixelFormatR32F, PixelFormatRG16F, PixelFormatRGBA8, PixelFormatSRGB8A8,
		PixelFormatBGRA8, PixelFormatRGB10A2, PixelFormatRG11B10F:
		return 4
	case PixelFormatRG32F, PixelFormatRGBA16F:
		return 8
	case PixelFormatRGBA32F:
		return 16
	case PixelFormatDepth, PixelFormatDepthStencil:
		return 4
	default:
		return 0
	}
}

// RowPitch returns the byte size of one row of width pixels. Compressed
// formats are measured in rows of 4x4 blocks.
func (f PixelFormat) RowPitch(width int) int {
	switch f {
	case PixelFormatBC1RGBA, PixelFormatETC2RGB8:
		return max(1, (width+3)/4) * 8
	case PixelFormatBC3RGBA, PixelFormatBC7RGBA:
		return max(1, (width+3)/4) * 16
	default:
		return width * f.BytesPerPixel()
	}
}

// SurfacePitch returns the byte size of one width x height surface.
func (f PixelFormat) SurfacePitch(width, height int) int {
	rows := height
	if f.IsCompressed() {
		rows = max(1, (height+3)/4)
	}
	return rows * f.RowPitch(width)
}

// PixelFormatInfo describes what a back-end can do with a pixel format.
type PixelFormatInfo struct {
	Sample bool // can be sampled in shaders
	Filter bool // can be sampled with linear filtering
	Render bool // can be used as a render target
	Blend  bool // supports alpha blending as a render target
	MSAA   bool // supports multisampled render targets
	Depth  bool // is a depth format
}

// Supported reports whether the format can be used at all.
func (i PixelFormatInfo) Supported() bool {
	return i.Sample || i.Render
}
