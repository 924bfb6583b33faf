// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"testing"

	"github.com/gogpu/gfx/types"
)

func TestMakeImageValidation(t *testing.T) {
	ctx, _ := newTestContext(t, Config{})

	cube := types.ImageDesc{Type: types.ImageTypeCube, Width: 2, Height: 2}
	for face := 0; face < types.CubeFaces; face++ {
		cube.Content[face][0] = make([]byte, 16)
	}
	partialCube := cube
	partialCube.Content[5][0] = nil

	mipped := types.ImageDesc{Width: 4, Height: 2, NumMipmaps: 3}
	mipped.Content[0][0] = make([]byte, 32)
	mipped.Content[0][1] = make([]byte, 8)
	mipped.Content[0][2] = make([]byte, 4)

	array := types.ImageDesc{Type: types.ImageTypeArray, Width: 2, Height: 2, NumSlices: 3}
	array.Content[0][0] = make([]byte, 48)

	bc1 := types.ImageDesc{Width: 8, Height: 8, PixelFormat: types.PixelFormatBC1RGBA}
	bc1.Content[0][0] = make([]byte, 32)

	tests := []struct {
		name string
		desc types.ImageDesc
		want types.ResourceState
	}{
		{"texture", textureDesc(), types.StateValid},
		{"cube", cube, types.StateValid},
		{"cube missing face", partialCube, types.StateFailed},
		{"non-square cube", types.ImageDesc{Type: types.ImageTypeCube, Width: 2, Height: 4}, types.StateFailed},
		{"mip chain", mipped, types.StateValid},
		{"array", array, types.StateValid},
		{"bc1", bc1, types.StateValid},
		{"zero size", types.ImageDesc{}, types.StateFailed},
		{"immutable without content", types.ImageDesc{Width: 4, Height: 4}, types.StateFailed},
		{"dynamic", types.ImageDesc{Width: 4, Height: 4, Usage: types.UsageDynamic}, types.StateValid},
		{"dynamic compressed", types.ImageDesc{Width: 4, Height: 4, Usage: types.UsageDynamic, PixelFormat: types.PixelFormatBC7RGBA}, types.StateFailed},
		{"render target", renderTargetDesc(types.PixelFormatRGBA8), types.StateValid},
		{"depth texture", types.ImageDesc{Width: 4, Height: 4, PixelFormat: types.PixelFormatDepth}, types.StateFailed},
		{"msaa texture", types.ImageDesc{Width: 4, Height: 4, SampleCount: 4, Usage: types.UsageDynamic}, types.StateFailed},
		{"compressed render target", renderTargetDesc(types.PixelFormatBC1RGBA), types.StateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := ctx.MakeImage(tt.desc)
			if got := ctx.QueryImageState(img); got != tt.want {
				t.Errorf("state = %s, want %s", got, tt.want)
			}
			ctx.DestroyImage(img)
		})
	}
}

func TestUpdateImage(t *testing.T) {
	ctx, _ := newTestContext(t, Config{}, WithDebug())
	img := ctx.MakeImage(types.ImageDesc{Width: 2, Height: 2, Usage: types.UsageStream})

	var data types.SubimageContent
	data[0][0] = make([]byte, 16)
	ctx.UpdateImage(img, &data)
	info := ctx.QueryImageInfo(img)
	if info.UpdateFrameIndex != 1 || info.ActiveSlot != 1 {
		t.Errorf("QueryImageInfo() = %+v", info)
	}
	expectPanic(t, "second UpdateImage in a frame", func() { ctx.UpdateImage(img, &data) })

	ctx.Commit()
	var short types.SubimageContent
	short[0][0] = make([]byte, 4)
	expectPanic(t, "UpdateImage with wrong size", func() { ctx.UpdateImage(img, &short) })
}

func TestQueryImageDefaults(t *testing.T) {
	ctx, _ := newTestContext(t, Config{ColorFormat: types.PixelFormatBGRA8})
	got := ctx.QueryImageDefaults(types.ImageDesc{RenderTarget: true})
	if got.PixelFormat != types.PixelFormatBGRA8 {
		t.Errorf("render target PixelFormat = %s, want bgra8", got.PixelFormat)
	}
	if got.NumMipmaps != 1 || got.SampleCount != 1 || got.NumSlices != 1 {
		t.Errorf("defaults = %+v", got)
	}
	if tex := ctx.QueryImageDefaults(types.ImageDesc{}); tex.PixelFormat != types.PixelFormatRGBA8 {
		t.Errorf("texture PixelFormat = %s, want rgba8", tex.PixelFormat)
	}
}
