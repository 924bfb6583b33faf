// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"errors"
	"testing"

	"github.com/gogpu/gfx/types"
)

func TestQueryPipelineDefaultsLayout(t *testing.T) {
	ctx, _ := newTestContext(t, Config{SampleCount: 4})

	var desc types.PipelineDesc
	desc.Layout.Attrs[0] = types.VertexAttrDesc{Format: types.VertexFormatFloat3}
	desc.Layout.Attrs[1] = types.VertexAttrDesc{Format: types.VertexFormatUByte4N}
	desc.Layout.Attrs[2] = types.VertexAttrDesc{BufferIndex: 1, Format: types.VertexFormatFloat2}
	desc.Layout.Attrs[3] = types.VertexAttrDesc{BufferIndex: 1, Format: types.VertexFormatFloat}

	got := ctx.QueryPipelineDefaults(desc)
	wantOffsets := []int{0, 12, 0, 8}
	for i, want := range wantOffsets {
		if got.Layout.Attrs[i].Offset != want {
			t.Errorf("Attrs[%d].Offset = %d, want %d", i, got.Layout.Attrs[i].Offset, want)
		}
	}
	if got.Layout.Buffers[0].Stride != 16 || got.Layout.Buffers[1].Stride != 12 {
		t.Errorf("strides = %d, %d, want 16, 12", got.Layout.Buffers[0].Stride, got.Layout.Buffers[1].Stride)
	}
	if got.Rasterizer.SampleCount != 4 {
		t.Errorf("SampleCount = %d, want 4", got.Rasterizer.SampleCount)
	}
	bs := got.Blend
	if bs.SrcFactorRGB != types.BlendFactorOne || bs.DstFactorRGB != types.BlendFactorZero {
		t.Errorf("blend factors = %d/%d, want one/zero", bs.SrcFactorRGB, bs.DstFactorRGB)
	}
	if bs.ColorWriteMask != types.ColorMaskRGBA || bs.ColorAttachmentCount != 1 {
		t.Errorf("blend defaults = %+v", bs)
	}
}

func TestQueryPipelineDefaultsKeepsExplicitOffsets(t *testing.T) {
	ctx, _ := newTestContext(t, Config{})
	var desc types.PipelineDesc
	desc.Layout.Buffers[0].Stride = 32
	desc.Layout.Attrs[0] = types.VertexAttrDesc{Format: types.VertexFormatFloat3}
	desc.Layout.Attrs[1] = types.VertexAttrDesc{Offset: 16, Format: types.VertexFormatFloat2}

	got := ctx.QueryPipelineDefaults(desc)
	if got.Layout.Attrs[1].Offset != 16 || got.Layout.Attrs[0].Offset != 0 {
		t.Errorf("offsets = %d, %d, want 0, 16", got.Layout.Attrs[0].Offset, got.Layout.Attrs[1].Offset)
	}
	if got.Layout.Buffers[0].Stride != 32 {
		t.Errorf("Stride = %d, want 32", got.Layout.Buffers[0].Stride)
	}
}

func TestValidatePipelineDesc(t *testing.T) {
	shd := types.Shader{ID: 1<<16 | 1}
	tests := []struct {
		name    string
		mutate  func(*types.PipelineDesc)
		wantErr bool
	}{
		{"valid", func(*types.PipelineDesc) {}, false},
		{"no shader", func(d *types.PipelineDesc) { d.Shader = types.Shader{} }, true},
		{"no attributes", func(d *types.PipelineDesc) { d.Layout.Attrs[0].Format = types.VertexFormatInvalid }, true},
		{"attribute gap", func(d *types.PipelineDesc) {
			d.Layout.Attrs[2] = types.VertexAttrDesc{Format: types.VertexFormatFloat}
		}, true},
		{"buffer index out of range", func(d *types.PipelineDesc) { d.Layout.Attrs[0].BufferIndex = types.MaxVertexBuffers }, true},
		{"too many color attachments", func(d *types.PipelineDesc) { d.Blend.ColorAttachmentCount = 5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := pipelineDesc(shd)
			tt.mutate(&desc)
			err := validatePipelineDesc(&desc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validatePipelineDesc() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
		})
	}
}

func TestValidateShaderDesc(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.ShaderDesc)
		wantErr bool
	}{
		{"valid", func(*types.ShaderDesc) {}, false},
		{"bytecode only", func(d *types.ShaderDesc) { d.FS.Source, d.FS.Bytecode = "", []byte{1} }, false},
		{"missing vs", func(d *types.ShaderDesc) { d.VS.Source = "" }, true},
		{"empty uniform block", func(d *types.ShaderDesc) { d.VS.UniformBlocks[0].Size = 0 }, true},
		{"too many uniform blocks", func(d *types.ShaderDesc) {
			d.VS.UniformBlocks = make([]types.UniformBlockDesc, types.MaxUniformBlocks+1)
			for i := range d.VS.UniformBlocks {
				d.VS.UniformBlocks[i].Size = 16
			}
		}, true},
		{"too many images", func(d *types.ShaderDesc) {
			d.FS.Images = make([]types.ShaderImageDesc, types.MaxShaderStageImages+1)
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := shaderDesc()
			tt.mutate(&desc)
			if err := validateShaderDesc(&desc); (err != nil) != tt.wantErr {
				t.Errorf("validateShaderDesc() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDestroyShaderLeavesPipelineUnusable(t *testing.T) {
	ctx, b := newTestContext(t, Config{})
	s := newDrawSetup(t, ctx)
	ctx.DestroyShader(s.shd)

	if got := ctx.QueryPipelineState(s.pip); got != types.StateValid {
		t.Errorf("pipeline state = %s, want valid (identity is unchanged)", got)
	}
	ctx.BeginDefaultPass(nil, 1, 1)
	ctx.ApplyPipeline(s.pip)
	ctx.EndPass()
	if got := b.Counters().Pipelines; got != 0 {
		t.Errorf("backend pipeline applies = %d, want 0", got)
	}
}
