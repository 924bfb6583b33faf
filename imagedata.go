// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"image"
	"math/bits"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gfx/types"
)

// MipCount returns the number of levels of a full mip chain for a
// width x height image, capped at types.MaxMipmaps.
func MipCount(width, height int) int {
	n := max(width, height, 1)
	return min(bits.Len(uint(n)), types.MaxMipmaps)
}

// RGBA8Content converts src to tightly packed RGBA8 and fills numMipmaps
// levels of face 0, each level downsampled from the previous one with a
// bilinear filter.
func RGBA8Content(src image.Image, numMipmaps int) types.SubimageContent {
	var content types.SubimageContent
	b := src.Bounds()
	level := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(level, level.Bounds(), src, b.Min, xdraw.Src)
	content[0][0] = level.Pix

	numMipmaps = min(max(numMipmaps, 1), types.MaxMipmaps)
	for mip := 1; mip < numMipmaps; mip++ {
		w := max(level.Rect.Dx()/2, 1)
		h := max(level.Rect.Dy()/2, 1)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(next, next.Bounds(), level, level.Bounds(), xdraw.Src, nil)
		content[0][mip] = next.Pix
		level = next
	}
	return content
}

// ImageDescOf returns an immutable RGBA8 image descriptor holding src.
// With mipmaps set it carries a full mip chain and trilinear filtering.
func ImageDescOf(src image.Image, mipmaps bool, label string) types.ImageDesc {
	b := src.Bounds()
	desc := types.ImageDesc{
		Width:       b.Dx(),
		Height:      b.Dy(),
		NumMipmaps:  1,
		PixelFormat: types.PixelFormatRGBA8,
		MinFilter:   types.FilterLinear,
		MagFilter:   types.FilterLinear,
		WrapU:       types.WrapClampToEdge,
		WrapV:       types.WrapClampToEdge,
		Label:       label,
	}
	if mipmaps {
		desc.NumMipmaps = MipCount(desc.Width, desc.Height)
		desc.MinFilter = types.FilterLinearMipmapLinear
	}
	desc.Content = RGBA8Content(src, desc.NumMipmaps)
	return desc
}
