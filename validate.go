// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"errors"
	"fmt"

	"github.com/gogpu/gfx/types"
)

// misuse reports a programming error. With WithDebug it panics; otherwise
// it logs a warning and the caller drops the offending call.
func (c *Context) misuse(format string, args ...any) {
	msg := "gfx: " + fmt.Sprintf(format, args...)
	if c.debug {
		panic(msg)
	}
	c.logger().Warn(msg)
}

// checkValid reports misuse when the Context is not set up.
func (c *Context) checkValid(op string) bool {
	if !c.valid {
		c.misuse("%s called without a valid context", op)
		return false
	}
	return true
}

// checkInPass reports misuse when called outside BeginPass/EndPass.
func (c *Context) checkInPass(op string) bool {
	if !c.checkValid(op) {
		return false
	}
	if !c.inPass {
		c.misuse("%s called outside a pass", op)
		return false
	}
	return true
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validateBufferDesc(desc *types.BufferDesc) error {
	var errs []error
	if desc.Size <= 0 {
		errs = append(errs, invalid("buffer size must be > 0"))
	}
	switch desc.Usage {
	case types.UsageImmutable:
		if len(desc.Content) == 0 {
			errs = append(errs, invalid("immutable buffer requires content"))
		}
	default:
		if len(desc.Content) != 0 {
			errs = append(errs, invalid("%s buffer must not have initial content", desc.Usage))
		}
	}
	if len(desc.Content) > desc.Size {
		errs = append(errs, invalid("buffer content (%d bytes) exceeds size (%d bytes)", len(desc.Content), desc.Size))
	}
	return errors.Join(errs...)
}

func (c *Context) validateImageDesc(desc *types.ImageDesc) error {
	var errs []error
	if desc.Width <= 0 || desc.Height <= 0 {
		errs = append(errs, invalid("image size must be > 0, got %dx%d", desc.Width, desc.Height))
	}
	if desc.NumMipmaps > types.MaxMipmaps {
		errs = append(errs, invalid("image has %d mipmaps, max is %d", desc.NumMipmaps, types.MaxMipmaps))
	}
	if desc.Type == types.ImageTypeCube && desc.Width != desc.Height {
		errs = append(errs, invalid("cube image must be square, got %dx%d", desc.Width, desc.Height))
	}
	if desc.Type == types.ImageTypeArray && desc.NumSlices > types.MaxTextureArrayLayers {
		errs = append(errs, invalid("array image has %d layers, max is %d", desc.NumSlices, types.MaxTextureArrayLayers))
	}
	feat := c.backend.Features()
	if desc.Type == types.ImageType3D && !feat.ImageType3D {
		errs = append(errs, invalid("3d images not supported by backend"))
	}
	if desc.Type == types.ImageTypeArray && !feat.ImageTypeArray {
		errs = append(errs, invalid("array images not supported by backend"))
	}
	info := c.backend.PixelFormat(desc.PixelFormat)
	if desc.RenderTarget {
		if desc.Usage != types.UsageImmutable {
			errs = append(errs, invalid("render target image must be immutable"))
		}
		if !desc.Content.Empty() {
			errs = append(errs, invalid("render target image must not have content"))
		}
		if !info.Render {
			errs = append(errs, invalid("pixel format %s is not renderable", desc.PixelFormat))
		}
		if desc.SampleCount > 1 && !info.MSAA {
			errs = append(errs, invalid("pixel format %s does not support MSAA", desc.PixelFormat))
		}
	} else {
		if desc.SampleCount > 1 {
			errs = append(errs, invalid("only render target images can be multisampled"))
		}
		if desc.PixelFormat.IsDepth() {
			errs = append(errs, invalid("depth pixel formats are only valid for render targets"))
		}
		if !info.Sample {
			errs = append(errs, invalid("pixel format %s cannot be sampled", desc.PixelFormat))
		}
		if desc.Usage == types.UsageImmutable {
			errs = append(errs, validateImageContent(desc, &desc.Content))
		} else {
			if desc.PixelFormat.IsCompressed() {
				errs = append(errs, invalid("%s image must not use compressed format", desc.Usage))
			}
			if !desc.Content.Empty() {
				errs = append(errs, invalid("%s image must not have initial content", desc.Usage))
			}
		}
	}
	return errors.Join(errs...)
}

// validateImageContent checks that content holds exactly one surface per
// face and mip level of desc.
func validateImageContent(desc *types.ImageDesc, content *types.SubimageContent) error {
	faces := 1
	if desc.Type == types.ImageTypeCube {
		faces = types.CubeFaces
	}
	var errs []error
	for face := 0; face < faces; face++ {
		for mip := 0; mip < desc.NumMipmaps; mip++ {
			want := surfaceSize(desc, mip)
			if got := len(content[face][mip]); got != want {
				errs = append(errs, invalid("image content face %d mip %d is %d bytes, want %d", face, mip, got, want))
			}
		}
	}
	return errors.Join(errs...)
}

// surfaceSize returns the byte size of one face of mip level mip,
// including every slice of 3D and array images.
func surfaceSize(desc *types.ImageDesc, mip int) int {
	w := max(desc.Width>>mip, 1)
	h := max(desc.Height>>mip, 1)
	slices := 1
	switch desc.Type {
	case types.ImageType3D:
		slices = max(desc.NumSlices>>mip, 1)
	case types.ImageTypeArray:
		slices = desc.NumSlices
	}
	return desc.PixelFormat.SurfacePitch(w, h) * slices
}

func validateShaderDesc(desc *types.ShaderDesc) error {
	var errs []error
	if len(desc.Attrs) > types.MaxVertexAttributes {
		errs = append(errs, invalid("shader declares %d attributes, max is %d", len(desc.Attrs), types.MaxVertexAttributes))
	}
	for i, stage := range [...]*types.ShaderStageDesc{&desc.VS, &desc.FS} {
		name := types.ShaderStage(i)
		if stage.Source == "" && len(stage.Bytecode) == 0 {
			errs = append(errs, invalid("%s stage has neither source nor bytecode", name))
		}
		if len(stage.UniformBlocks) > types.MaxUniformBlocks {
			errs = append(errs, invalid("%s stage has %d uniform blocks, max is %d", name, len(stage.UniformBlocks), types.MaxUniformBlocks))
		}
		for j, ub := range stage.UniformBlocks {
			if ub.Size <= 0 {
				errs = append(errs, invalid("%s uniform block %d has size %d", name, j, ub.Size))
			}
			if len(ub.Uniforms) > types.MaxUniformBlockMembers {
				errs = append(errs, invalid("%s uniform block %d has %d members, max is %d", name, j, len(ub.Uniforms), types.MaxUniformBlockMembers))
			}
		}
		if len(stage.Images) > types.MaxShaderStageImages {
			errs = append(errs, invalid("%s stage has %d images, max is %d", name, len(stage.Images), types.MaxShaderStageImages))
		}
	}
	return errors.Join(errs...)
}

func validatePipelineDesc(desc *types.PipelineDesc) error {
	var errs []error
	if !desc.Shader.IsValid() {
		errs = append(errs, invalid("pipeline has no shader"))
	}
	if desc.Layout.Attrs[0].Format == types.VertexFormatInvalid {
		errs = append(errs, invalid("pipeline has no vertex attributes"))
	}
	ended := false
	for i, a := range desc.Layout.Attrs {
		if a.Format == types.VertexFormatInvalid {
			ended = true
			continue
		}
		if ended {
			errs = append(errs, invalid("vertex attribute %d follows an unused slot", i))
		}
		if a.BufferIndex < 0 || a.BufferIndex >= types.MaxVertexBuffers {
			errs = append(errs, invalid("vertex attribute %d uses buffer %d", i, a.BufferIndex))
		}
	}
	if n := desc.Blend.ColorAttachmentCount; n < 0 || n > types.MaxColorAttachments {
		errs = append(errs, invalid("pipeline has %d color attachments, max is %d", n, types.MaxColorAttachments))
	}
	return errors.Join(errs...)
}

func validatePassDesc(desc *types.PassDesc) error {
	var errs []error
	if !desc.ColorAttachments[0].Image.IsValid() {
		errs = append(errs, invalid("pass has no color attachment"))
	}
	ended := false
	for i, att := range desc.ColorAttachments {
		if !att.Image.IsValid() {
			ended = true
			continue
		}
		if ended {
			errs = append(errs, invalid("color attachment %d follows an unused slot", i))
		}
	}
	return errors.Join(errs...)
}
