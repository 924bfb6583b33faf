// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"github.com/gogpu/gfx/types"
)

// MakeImage creates an image. The returned handle is the zero handle when
// the image pool is exhausted.
func (c *Context) MakeImage(desc types.ImageDesc) types.Image {
	img := c.AllocImage()
	if img.IsValid() {
		c.InitImage(img, desc)
	}
	return img
}

// AllocImage reserves an image handle without creating it.
func (c *Context) AllocImage() types.Image {
	return types.Image{ID: alloc(c, types.KindImage, c.tables.Images)}
}

// InitImage creates the image behind an allocated handle.
func (c *Context) InitImage(img types.Image, desc types.ImageDesc) {
	rec := allocated(c, types.KindImage, c.tables.Images, img.ID, "InitImage")
	if rec == nil {
		return
	}
	desc = c.QueryImageDefaults(desc)
	rec.Init(&desc, types.NumInflightFrames)
	err := c.validateImageDesc(&desc)
	if err == nil {
		err = c.backend.CreateImage(rec, &desc)
	}
	c.finish(types.KindImage, &rec.Slot, desc.Label, err)
}

// FailImage marks an allocated image as failed.
func (c *Context) FailImage(img types.Image) {
	fail(c, types.KindImage, c.tables.Images, img.ID, "FailImage")
}

// DeallocImage frees an allocated handle.
func (c *Context) DeallocImage(img types.Image) {
	dealloc(c, types.KindImage, c.tables.Images, img.ID, "DeallocImage")
}

// DestroyImage releases an image and its handle. Passes rendering into the
// image become unusable.
func (c *Context) DestroyImage(img types.Image) {
	c.destroyImage(img.ID)
}

func (c *Context) destroyImage(id uint32) {
	c.dropDestroyed(types.KindImage, id)
	destroy(c, types.KindImage, c.tables.Images, id, c.backend.DestroyImage)
}

// QueryImageState returns the lifecycle state of img.
func (c *Context) QueryImageState(img types.Image) types.ResourceState {
	return c.tables.Images.State(img.ID)
}

// QueryImageInfo returns runtime information about img.
func (c *Context) QueryImageInfo(img types.Image) types.ImageInfo {
	rec := c.tables.Images.Lookup(img.ID)
	if rec == nil {
		return types.ImageInfo{Slot: types.SlotInfo{State: types.StateInvalid}}
	}
	return types.ImageInfo{
		Slot:             rec.Info(),
		UpdateFrameIndex: rec.UpdateFrameIndex,
		NumSlots:         rec.NumSlots,
		ActiveSlot:       rec.ActiveSlot,
		Width:            rec.Width,
		Height:           rec.Height,
	}
}

// UpdateImage replaces the content of a dynamic or stream image. It may be
// called once per frame. data must hold every face and mip level of the
// image. Images that are not Valid are ignored.
func (c *Context) UpdateImage(img types.Image, data *types.SubimageContent) {
	if !c.checkValid("UpdateImage") {
		return
	}
	rec := c.tables.Images.Resolve(img.ID)
	if rec == nil || data == nil {
		return
	}
	if rec.Usage == types.UsageImmutable {
		c.misuse("UpdateImage: %s is immutable", img)
		return
	}
	if rec.UpdateFrameIndex == c.frame {
		c.misuse("UpdateImage: %s updated twice in frame %d", img, c.frame)
		return
	}
	shape := types.ImageDesc{
		Type:        rec.Type,
		Width:       rec.Width,
		Height:      rec.Height,
		NumSlices:   rec.NumSlices,
		NumMipmaps:  rec.NumMipmaps,
		PixelFormat: rec.PixelFormat,
	}
	if err := validateImageContent(&shape, data); err != nil {
		c.misuse("UpdateImage: %s: %v", img, err)
		return
	}
	c.backend.UpdateImage(rec, data)
	rec.UpdateFrameIndex = c.frame
	c.stats.UpdateImage++
}
