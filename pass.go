// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"errors"
	"fmt"

	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

// MakePass creates an offscreen render pass. Every attachment image must
// be a Valid render target; otherwise the pass is Failed.
func (c *Context) MakePass(desc types.PassDesc) types.Pass {
	pass := c.AllocPass()
	if pass.IsValid() {
		c.InitPass(pass, desc)
	}
	return pass
}

// AllocPass reserves a pass handle without creating it.
func (c *Context) AllocPass() types.Pass {
	return types.Pass{ID: alloc(c, types.KindPass, c.tables.Passes)}
}

// InitPass creates the pass behind an allocated handle.
func (c *Context) InitPass(pass types.Pass, desc types.PassDesc) {
	rec := allocated(c, types.KindPass, c.tables.Passes, pass.ID, "InitPass")
	if rec == nil {
		return
	}
	desc = c.QueryPassDefaults(desc)
	err := validatePassDesc(&desc)
	if err == nil {
		var colors [types.MaxColorAttachments]*resource.Image
		var ds *resource.Image
		colors, ds, err = c.resolveAttachments(&desc)
		if err == nil {
			rec.Init(&desc, colors, ds)
			err = c.backend.CreatePass(rec, &desc)
		}
	}
	c.finish(types.KindPass, &rec.Slot, desc.Label, err)
}

// resolveAttachments looks up the attachment images of desc and checks
// that they form a consistent render target set.
func (c *Context) resolveAttachments(desc *types.PassDesc) (colors [types.MaxColorAttachments]*resource.Image, ds *resource.Image, err error) {
	var errs []error
	width, height, samples := -1, -1, -1
	check := func(what string, att *types.AttachmentDesc, depth bool) *resource.Image {
		img := c.tables.Images.Resolve(att.Image.ID)
		if img == nil {
			errs = append(errs, fmt.Errorf("%w: %s image %s is %s", ErrDependency, what, att.Image, c.tables.Images.State(att.Image.ID)))
			return nil
		}
		if !img.RenderTarget {
			errs = append(errs, invalid("%s image %s is not a render target", what, att.Image))
		}
		if img.PixelFormat.IsDepth() != depth {
			errs = append(errs, invalid("%s image %s has pixel format %s", what, att.Image, img.PixelFormat))
		}
		if att.MipLevel < 0 || att.MipLevel >= img.NumMipmaps {
			errs = append(errs, invalid("%s mip level %d out of range", what, att.MipLevel))
		}
		if att.Slice < 0 || att.Slice >= attachmentSlices(img) {
			errs = append(errs, invalid("%s slice %d out of range", what, att.Slice))
		}
		w, h := max(img.Width>>att.MipLevel, 1), max(img.Height>>att.MipLevel, 1)
		if width < 0 {
			width, height, samples = w, h, img.SampleCount
		} else if w != width || h != height || img.SampleCount != samples {
			errs = append(errs, invalid("%s image %s does not match the size or sample count of the first attachment", what, att.Image))
		}
		return img
	}
	for i := range desc.ColorAttachments {
		att := &desc.ColorAttachments[i]
		if !att.Image.IsValid() {
			break
		}
		colors[i] = check(fmt.Sprintf("color attachment %d", i), att, false)
	}
	if desc.DepthStencilAttachment.Image.IsValid() {
		ds = check("depth-stencil attachment", &desc.DepthStencilAttachment, true)
	}
	return colors, ds, errors.Join(errs...)
}

func attachmentSlices(img *resource.Image) int {
	switch img.Type {
	case types.ImageTypeCube:
		return types.CubeFaces
	case types.ImageType3D, types.ImageTypeArray:
		return img.NumSlices
	default:
		return 1
	}
}

// FailPass marks an allocated pass as failed.
func (c *Context) FailPass(pass types.Pass) {
	fail(c, types.KindPass, c.tables.Passes, pass.ID, "FailPass")
}

// DeallocPass frees an allocated handle.
func (c *Context) DeallocPass(pass types.Pass) {
	dealloc(c, types.KindPass, c.tables.Passes, pass.ID, "DeallocPass")
}

// DestroyPass releases a pass and its handle. The attachment images are
// not destroyed.
func (c *Context) DestroyPass(pass types.Pass) {
	c.destroyPass(pass.ID)
}

func (c *Context) destroyPass(id uint32) {
	c.dropDestroyed(types.KindPass, id)
	destroy(c, types.KindPass, c.tables.Passes, id, c.backend.DestroyPass)
}

// QueryPassState returns the lifecycle state of pass.
func (c *Context) QueryPassState(pass types.Pass) types.ResourceState {
	return c.tables.Passes.State(pass.ID)
}

// QueryPassInfo returns runtime information about pass.
func (c *Context) QueryPassInfo(pass types.Pass) types.PassInfo {
	rec := c.tables.Passes.Lookup(pass.ID)
	if rec == nil {
		return types.PassInfo{Slot: types.SlotInfo{State: types.StateInvalid}}
	}
	return types.PassInfo{Slot: rec.Info()}
}
