// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"errors"
	"testing"

	"github.com/gogpu/gfx/backend/dummy"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

var errInjected = errors.New("injected failure")

// faultyBackend fails creation of the resource kinds listed in fail.
type faultyBackend struct {
	*dummy.Backend
	fail map[types.ResourceKind]bool
}

func newFaulty(kinds ...types.ResourceKind) *faultyBackend {
	f := &faultyBackend{Backend: dummy.New(), fail: map[types.ResourceKind]bool{}}
	for _, k := range kinds {
		f.fail[k] = true
	}
	return f
}

func (f *faultyBackend) CreateBuffer(b *resource.Buffer, d *types.BufferDesc) error {
	if f.fail[types.KindBuffer] {
		return errInjected
	}
	return f.Backend.CreateBuffer(b, d)
}

func (f *faultyBackend) CreateShader(s *resource.Shader, d *types.ShaderDesc) error {
	if f.fail[types.KindShader] {
		return errInjected
	}
	return f.Backend.CreateShader(s, d)
}

func (f *faultyBackend) CreatePipeline(p *resource.Pipeline, d *types.PipelineDesc) error {
	if f.fail[types.KindPipeline] {
		return errInjected
	}
	return f.Backend.CreatePipeline(p, d)
}

func newTestContext(t *testing.T, cfg Config, opts ...Option) (*Context, *dummy.Backend) {
	t.Helper()
	b := dummy.New()
	ctx, err := New(cfg, append([]Option{WithBackend(b)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(ctx.Shutdown)
	return ctx, b
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func vertexBufferDesc() types.BufferDesc {
	return types.BufferDesc{Content: make([]byte, 36), Label: "triangle"}
}

func indexBufferDesc() types.BufferDesc {
	return types.BufferDesc{Type: types.BufferTypeIndex, Content: make([]byte, 6)}
}

func shaderDesc() types.ShaderDesc {
	return types.ShaderDesc{
		VS: types.ShaderStageDesc{
			Source:        "vs",
			UniformBlocks: []types.UniformBlockDesc{{Size: 64}},
		},
		FS: types.ShaderStageDesc{
			Source: "fs",
			Images: []types.ShaderImageDesc{{Name: "tex", Type: types.ImageType2D}},
		},
	}
}

func pipelineDesc(shd types.Shader) types.PipelineDesc {
	var desc types.PipelineDesc
	desc.Shader = shd
	desc.Layout.Attrs[0] = types.VertexAttrDesc{Format: types.VertexFormatFloat3}
	return desc
}

func textureDesc() types.ImageDesc {
	desc := types.ImageDesc{Width: 4, Height: 4}
	desc.Content[0][0] = make([]byte, 4*4*4)
	return desc
}

func renderTargetDesc(format types.PixelFormat) types.ImageDesc {
	return types.ImageDesc{Width: 64, Height: 32, RenderTarget: true, PixelFormat: format}
}

// drawSetup creates the resources of one textured triangle draw.
type drawSetup struct {
	vbuf types.Buffer
	shd  types.Shader
	pip  types.Pipeline
	tex  types.Image
}

func newDrawSetup(t *testing.T, ctx *Context) drawSetup {
	t.Helper()
	s := drawSetup{
		vbuf: ctx.MakeBuffer(vertexBufferDesc()),
		shd:  ctx.MakeShader(shaderDesc()),
		tex:  ctx.MakeImage(textureDesc()),
	}
	s.pip = ctx.MakePipeline(pipelineDesc(s.shd))
	for name, st := range map[string]types.ResourceState{
		"buffer":   ctx.QueryBufferState(s.vbuf),
		"shader":   ctx.QueryShaderState(s.shd),
		"image":    ctx.QueryImageState(s.tex),
		"pipeline": ctx.QueryPipelineState(s.pip),
	} {
		if st != types.StateValid {
			t.Fatalf("%s state = %s, want valid", name, st)
		}
	}
	return s
}

func (s drawSetup) bindings() *types.Bindings {
	b := &types.Bindings{}
	b.VertexBuffers[0] = s.vbuf
	b.FSImages[0] = s.tex
	return b
}
