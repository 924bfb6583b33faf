// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"testing"

	"github.com/gogpu/gfx/types"
)

func TestDrawFrame(t *testing.T) {
	ctx, b := newTestContext(t, Config{})
	s := newDrawSetup(t, ctx)

	ctx.BeginDefaultPass(nil, 640, 480)
	ctx.ApplyPipeline(s.pip)
	ctx.ApplyBindings(s.bindings())
	ctx.ApplyUniforms(types.ShaderStageVS, 0, make([]byte, 64))
	ctx.Draw(0, 3, 1)
	ctx.EndPass()
	ctx.Commit()

	c := b.Counters()
	if c.Draws != 1 || c.Pipelines != 1 || c.Bindings != 1 || c.Uniforms != 1 || c.Commits != 1 {
		t.Errorf("backend counters = %+v", c)
	}
	stats := ctx.QueryFrameStats()
	if stats.Frame != 1 || stats.Draws != 1 || stats.UniformBytes != 64 || stats.Passes != 1 {
		t.Errorf("QueryFrameStats() = %+v", stats)
	}
	if ctx.Frame() != 2 {
		t.Errorf("Frame() = %d, want 2", ctx.Frame())
	}
}

func TestFailedPipelineDropsDraws(t *testing.T) {
	f := newFaulty(types.KindPipeline)
	ctx, err := New(Config{}, WithBackend(f), WithDebug())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ctx.Shutdown()

	vbuf := ctx.MakeBuffer(vertexBufferDesc())
	shd := ctx.MakeShader(shaderDesc())
	pip := ctx.MakePipeline(pipelineDesc(shd))
	if got := ctx.QueryPipelineState(pip); got != types.StateFailed {
		t.Fatalf("pipeline state = %s, want failed", got)
	}

	var bind types.Bindings
	bind.VertexBuffers[0] = vbuf
	ctx.BeginDefaultPass(nil, 16, 16)
	ctx.ApplyPipeline(pip)
	ctx.ApplyBindings(&bind)
	ctx.ApplyUniforms(types.ShaderStageVS, 0, make([]byte, 64))
	ctx.Draw(0, 3, 1)
	ctx.EndPass()
	ctx.Commit()

	if got := f.Counters().Draws; got != 0 {
		t.Errorf("backend draws = %d, want 0", got)
	}
	if got := ctx.QueryFrameStats().DroppedDraws; got != 1 {
		t.Errorf("DroppedDraws = %d, want 1", got)
	}
}

func TestFailedBindingDropsDraws(t *testing.T) {
	ctx, b := newTestContext(t, Config{}, WithDebug())
	s := newDrawSetup(t, ctx)

	bad := textureDesc()
	bad.Content[0][0] = bad.Content[0][0][:3]
	broken := ctx.MakeImage(bad)
	if got := ctx.QueryImageState(broken); got != types.StateFailed {
		t.Fatalf("image state = %s, want failed", got)
	}

	bind := s.bindings()
	bind.FSImages[0] = broken
	ctx.BeginDefaultPass(nil, 16, 16)
	ctx.ApplyPipeline(s.pip)
	ctx.ApplyBindings(bind)
	ctx.Draw(0, 3, 1)
	ctx.EndPass()

	if got := b.Counters().Draws; got != 0 {
		t.Errorf("backend draws = %d, want 0", got)
	}
}

func TestMisuseInDebugMode(t *testing.T) {
	tests := []struct {
		name string
		fn   func(ctx *Context, s drawSetup)
	}{
		{"draw outside pass", func(ctx *Context, s drawSetup) { ctx.Draw(0, 3, 1) }},
		{"apply pipeline outside pass", func(ctx *Context, s drawSetup) { ctx.ApplyPipeline(s.pip) }},
		{"end pass outside pass", func(ctx *Context, s drawSetup) { ctx.EndPass() }},
		{"nested pass", func(ctx *Context, s drawSetup) {
			ctx.BeginDefaultPass(nil, 1, 1)
			ctx.BeginDefaultPass(nil, 1, 1)
		}},
		{"commit inside pass", func(ctx *Context, s drawSetup) {
			ctx.BeginDefaultPass(nil, 1, 1)
			ctx.Commit()
		}},
		{"draw without bindings", func(ctx *Context, s drawSetup) {
			ctx.BeginDefaultPass(nil, 1, 1)
			ctx.ApplyPipeline(s.pip)
			ctx.Draw(0, 3, 1)
		}},
		{"missing required image", func(ctx *Context, s drawSetup) {
			ctx.BeginDefaultPass(nil, 1, 1)
			ctx.ApplyPipeline(s.pip)
			b := s.bindings()
			b.FSImages[0] = types.Image{}
			ctx.ApplyBindings(b)
		}},
		{"wrong uniform size", func(ctx *Context, s drawSetup) {
			ctx.BeginDefaultPass(nil, 1, 1)
			ctx.ApplyPipeline(s.pip)
			ctx.ApplyBindings(s.bindings())
			ctx.ApplyUniforms(types.ShaderStageVS, 0, make([]byte, 16))
		}},
		{"pipeline with destroyed shader", func(ctx *Context, s drawSetup) {
			ctx.DestroyShader(s.shd)
			ctx.BeginDefaultPass(nil, 1, 1)
			ctx.ApplyPipeline(s.pip)
		}},
		{"stale pipeline", func(ctx *Context, s drawSetup) {
			ctx.DestroyPipeline(s.pip)
			ctx.BeginDefaultPass(nil, 1, 1)
			ctx.ApplyPipeline(s.pip)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := New(Config{}, WithBackend(newFaulty()), WithDebug())
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			s := newDrawSetup(t, ctx)
			expectPanic(t, tt.name, func() { tt.fn(ctx, s) })
		})
	}
}

func TestMisuseIgnoredInReleaseMode(t *testing.T) {
	ctx, b := newTestContext(t, Config{})
	s := newDrawSetup(t, ctx)

	ctx.Draw(0, 3, 1)
	ctx.EndPass()
	ctx.DestroyShader(s.shd)
	ctx.BeginDefaultPass(nil, 1, 1)
	ctx.ApplyPipeline(s.pip)
	ctx.ApplyBindings(s.bindings())
	ctx.Draw(0, 3, 1)
	ctx.EndPass()
	ctx.Commit()

	if got := b.Counters().Draws; got != 0 {
		t.Errorf("backend draws = %d, want 0", got)
	}
}

func TestDestroyPipelineMidPassDropsDraws(t *testing.T) {
	ctx, b := newTestContext(t, Config{})
	s := newDrawSetup(t, ctx)

	ctx.BeginDefaultPass(nil, 1, 1)
	ctx.ApplyPipeline(s.pip)
	ctx.ApplyBindings(s.bindings())
	ctx.DestroyPipeline(s.pip)
	ctx.Draw(0, 3, 1)
	ctx.EndPass()

	if got := b.Counters().Draws; got != 0 {
		t.Errorf("backend draws = %d, want 0", got)
	}
}

func TestDestroyInUseResourceMidPassDropsDraws(t *testing.T) {
	tests := []struct {
		name    string
		destroy func(ctx *Context, s drawSetup, pass types.Pass, target types.Image)
	}{
		{"pass", func(ctx *Context, _ drawSetup, pass types.Pass, _ types.Image) { ctx.DestroyPass(pass) }},
		{"attachment", func(ctx *Context, _ drawSetup, _ types.Pass, target types.Image) { ctx.DestroyImage(target) }},
		{"vertex buffer", func(ctx *Context, s drawSetup, _ types.Pass, _ types.Image) { ctx.DestroyBuffer(s.vbuf) }},
		{"texture", func(ctx *Context, s drawSetup, _ types.Pass, _ types.Image) { ctx.DestroyImage(s.tex) }},
		{"shader", func(ctx *Context, s drawSetup, _ types.Pass, _ types.Image) { ctx.DestroyShader(s.shd) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, b := newTestContext(t, Config{}, WithDebug())
			s := newDrawSetup(t, ctx)
			target := ctx.MakeImage(renderTargetDesc(types.PixelFormatRGBA8))
			var desc types.PassDesc
			desc.ColorAttachments[0].Image = target
			pass := ctx.MakePass(desc)

			ctx.BeginPass(pass, nil)
			ctx.ApplyPipeline(s.pip)
			ctx.ApplyBindings(s.bindings())
			tt.destroy(ctx, s, pass, target)
			ctx.Draw(0, 3, 1)
			ctx.EndPass()
			ctx.Commit()

			if got := b.Counters().Draws; got != 0 {
				t.Errorf("backend draws = %d, want 0", got)
			}
			if got := ctx.QueryFrameStats().DroppedDraws; got != 1 {
				t.Errorf("DroppedDraws = %d, want 1", got)
			}
		})
	}
}

func TestDestroyUnusedResourceMidPassKeepsDraws(t *testing.T) {
	ctx, b := newTestContext(t, Config{}, WithDebug())
	s := newDrawSetup(t, ctx)
	other := ctx.MakeBuffer(vertexBufferDesc())
	otherTex := ctx.MakeImage(textureDesc())

	ctx.BeginDefaultPass(nil, 1, 1)
	ctx.ApplyPipeline(s.pip)
	ctx.ApplyBindings(s.bindings())
	ctx.DestroyBuffer(other)
	ctx.DestroyImage(otherTex)
	ctx.Draw(0, 3, 1)
	ctx.EndPass()

	if got := b.Counters().Draws; got != 1 {
		t.Errorf("backend draws = %d, want 1", got)
	}
}

func TestRebindAfterDestroyedBufferResumesDraws(t *testing.T) {
	ctx, b := newTestContext(t, Config{}, WithDebug())
	s := newDrawSetup(t, ctx)
	spare := ctx.MakeBuffer(vertexBufferDesc())

	ctx.BeginDefaultPass(nil, 1, 1)
	ctx.ApplyPipeline(s.pip)
	ctx.ApplyBindings(s.bindings())
	ctx.DestroyBuffer(s.vbuf)
	ctx.Draw(0, 3, 1)

	bind := s.bindings()
	bind.VertexBuffers[0] = spare
	ctx.ApplyPipeline(s.pip)
	ctx.ApplyBindings(bind)
	ctx.Draw(0, 3, 1)
	ctx.EndPass()

	if got := b.Counters().Draws; got != 1 {
		t.Errorf("backend draws = %d, want 1", got)
	}
}

func TestOffscreenPass(t *testing.T) {
	ctx, b := newTestContext(t, Config{}, WithDebug())
	color := ctx.MakeImage(renderTargetDesc(types.PixelFormatRGBA8))
	depth := ctx.MakeImage(renderTargetDesc(types.PixelFormatDepthStencil))

	var desc types.PassDesc
	desc.ColorAttachments[0].Image = color
	desc.DepthStencilAttachment.Image = depth
	pass := ctx.MakePass(desc)
	if got := ctx.QueryPassState(pass); got != types.StateValid {
		t.Fatalf("pass state = %s, want valid", got)
	}

	ctx.BeginPass(pass, &types.PassAction{})
	ctx.EndPass()
	if got := b.Counters().Passes; got != 1 {
		t.Errorf("backend passes = %d, want 1", got)
	}

	ctx.DestroyImage(depth)
	expectPanic(t, "BeginPass with destroyed attachment", func() {
		ctx.BeginPass(pass, nil)
	})
	ctx.EndPass()
}

func TestMakePassRejectsBadAttachments(t *testing.T) {
	ctx, _ := newTestContext(t, Config{})
	tex := ctx.MakeImage(textureDesc())
	color := ctx.MakeImage(renderTargetDesc(types.PixelFormatRGBA8))
	small := renderTargetDesc(types.PixelFormatRGBA8)
	small.Width = 8
	mismatched := ctx.MakeImage(small)
	depth := ctx.MakeImage(renderTargetDesc(types.PixelFormatDepth))

	tests := []struct {
		name string
		desc func() types.PassDesc
	}{
		{"no color attachment", func() types.PassDesc { return types.PassDesc{} }},
		{"not a render target", func() types.PassDesc {
			var d types.PassDesc
			d.ColorAttachments[0].Image = tex
			return d
		}},
		{"size mismatch", func() types.PassDesc {
			var d types.PassDesc
			d.ColorAttachments[0].Image = color
			d.ColorAttachments[1].Image = mismatched
			return d
		}},
		{"depth image as color", func() types.PassDesc {
			var d types.PassDesc
			d.ColorAttachments[0].Image = depth
			return d
		}},
		{"gap in color attachments", func() types.PassDesc {
			var d types.PassDesc
			d.ColorAttachments[0].Image = color
			d.ColorAttachments[2].Image = color
			return d
		}},
		{"mip level out of range", func() types.PassDesc {
			var d types.PassDesc
			d.ColorAttachments[0] = types.AttachmentDesc{Image: color, MipLevel: 3}
			return d
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass := ctx.MakePass(tt.desc())
			if got := ctx.QueryPassState(pass); got != types.StateFailed {
				t.Errorf("pass state = %s, want failed", got)
			}
		})
	}
}

func TestFailedPassSkipsEverything(t *testing.T) {
	ctx, b := newTestContext(t, Config{}, WithDebug())
	s := newDrawSetup(t, ctx)
	pass := ctx.MakePass(types.PassDesc{})

	ctx.BeginPass(pass, nil)
	ctx.ApplyPipeline(s.pip)
	ctx.ApplyBindings(s.bindings())
	ctx.Draw(0, 3, 1)
	ctx.EndPass()

	c := b.Counters()
	if c.Passes != 0 || c.Pipelines != 0 || c.Draws != 0 {
		t.Errorf("backend counters = %+v, want no calls", c)
	}
}

func TestResolvePassAction(t *testing.T) {
	var in types.PassAction
	in.Colors[1] = types.ColorAttachmentAction{Action: types.ActionLoad}
	in.Depth = types.DepthAttachmentAction{Action: types.ActionClear, Value: 0.25}

	got := resolvePassAction(&in)
	if got.Colors[0].Action != types.ActionClear || got.Colors[0].Value != types.DefaultClearColor {
		t.Errorf("Colors[0] = %+v, want default clear", got.Colors[0])
	}
	if got.Colors[1].Action != types.ActionLoad {
		t.Errorf("Colors[1].Action = %d, want load", got.Colors[1].Action)
	}
	if got.Depth.Value != 0.25 {
		t.Errorf("Depth.Value = %v, want 0.25", got.Depth.Value)
	}
	if got.Stencil.Action != types.ActionClear {
		t.Errorf("Stencil.Action = %d, want clear", got.Stencil.Action)
	}
	if nilAction := resolvePassAction(nil); nilAction.Depth.Value != types.DefaultClearDepth {
		t.Errorf("resolvePassAction(nil).Depth.Value = %v", nilAction.Depth.Value)
	}
}
