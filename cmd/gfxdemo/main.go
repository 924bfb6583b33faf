// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command gfxdemo opens a window and draws a spinning textured quad through
// the GL back-end.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	gfxgl "github.com/gogpu/gfx/backend/gl"
	"github.com/gogpu/gfx/backend/gl/glcore"
	"github.com/gogpu/gfx/types"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

const vsSource = `#version 330
uniform vec4 params;
in vec2 position;
in vec2 texcoord0;
out vec2 uv;
void main() {
	float s = sin(params.x);
	float c = cos(params.x);
	vec2 p = mat2(c, s, -s, c) * position;
	gl_Position = vec4(p.x / params.y, p.y, 0.0, 1.0);
	uv = texcoord0;
}
`

const fsSource = `#version 330
uniform sampler2D tex;
in vec2 uv;
out vec4 frag_color;
void main() {
	frag_color = texture(tex, uv);
}
`

type vertex struct {
	x, y, u, v float32
}

// params matches the vs uniform block: angle, aspect ratio, unused.
type params struct {
	angle, aspect, _, _ float32
}

func main() {
	var (
		width  = flag.Int("width", 800, "window width")
		height = flag.Int("height", 600, "window height")
		frames = flag.Int("frames", 0, "exit after this many frames (0 runs until closed)")
		debug  = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.StencilBits, 8)

	win, err := glfw.CreateWindow(*width, *height, "gfxdemo", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	fns, err := glcore.New()
	if err != nil {
		log.Fatalf("load GL: %v", err)
	}

	opts := []gfx.Option{gfx.WithLogger(logger)}
	if *debug {
		opts = append(opts, gfx.WithDebug())
	}
	ctx, err := gfx.New(gfx.Config{
		BackendName: backend.NameGL,
		Environment: backend.Environment{Context: gfxgl.Environment{Functions: fns}},
	}, opts...)
	if err != nil {
		log.Fatalf("gfx: %v", err)
	}
	defer ctx.Shutdown()

	sc := newScene(ctx)
	if sc == nil {
		log.Fatal("failed to create scene resources, see log")
	}

	action := &types.PassAction{}
	action.Colors[0] = types.ColorAttachmentAction{
		Action: types.ActionClear,
		Value:  [4]float32{0.1, 0.12, 0.18, 1},
	}

	var angle float32
	for !win.ShouldClose() {
		fbw, fbh := win.GetFramebufferSize()
		ctx.BeginDefaultPass(action, fbw, fbh)
		ctx.ApplyPipeline(sc.pipeline)
		ctx.ApplyBindings(&sc.bindings)
		gfx.ApplyUniformsOf(ctx, types.ShaderStageVS, 0, params{
			angle:  angle,
			aspect: float32(fbw) / float32(max(fbh, 1)),
		})
		ctx.Draw(0, 6, 1)
		ctx.EndPass()
		ctx.Commit()

		win.SwapBuffers()
		glfw.PollEvents()
		angle += 0.01

		if *frames > 0 && ctx.Frame() > uint64(*frames) {
			break
		}
	}
	stats := ctx.QueryFrameStats()
	logger.Info("gfxdemo: done", "frames", ctx.Frame()-1, "draws", stats.Draws)
}

type scene struct {
	pipeline types.Pipeline
	bindings types.Bindings
}

// newScene creates the quad geometry, a checkerboard texture, the shader
// and the pipeline. It returns nil when any of them failed.
func newScene(ctx *gfx.Context) *scene {
	vertices := []vertex{
		{-0.5, -0.5, 0, 1},
		{0.5, -0.5, 1, 1},
		{0.5, 0.5, 1, 0},
		{-0.5, 0.5, 0, 0},
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	vbuf := ctx.MakeBuffer(gfx.BufferDescOf(types.BufferTypeVertex, vertices, "quad-vertices"))
	ibuf := ctx.MakeBuffer(gfx.BufferDescOf(types.BufferTypeIndex, indices, "quad-indices"))
	img := ctx.MakeImage(gfx.ImageDescOf(checkerboard(64, 8), true, "checkerboard"))

	shd := ctx.MakeShader(types.ShaderDesc{
		Attrs: []types.ShaderAttrDesc{{Name: "position"}, {Name: "texcoord0"}},
		VS: types.ShaderStageDesc{
			Source: vsSource,
			UniformBlocks: []types.UniformBlockDesc{{
				Size:     16,
				Uniforms: []types.UniformDesc{{Name: "params", Type: types.UniformTypeFloat4}},
			}},
		},
		FS: types.ShaderStageDesc{
			Source: fsSource,
			Images: []types.ShaderImageDesc{{Name: "tex", Type: types.ImageType2D}},
		},
		Label: "quad-shader",
	})

	desc := types.PipelineDesc{
		Shader:    shd,
		IndexType: types.IndexTypeUint16,
		Label:     "quad-pipeline",
	}
	desc.Layout.Attrs[0].Format = types.VertexFormatFloat2
	desc.Layout.Attrs[1].Format = types.VertexFormatFloat2
	pip := ctx.MakePipeline(desc)

	for _, st := range []types.ResourceState{
		ctx.QueryBufferState(vbuf),
		ctx.QueryBufferState(ibuf),
		ctx.QueryImageState(img),
		ctx.QueryShaderState(shd),
		ctx.QueryPipelineState(pip),
	} {
		if st != types.StateValid {
			return nil
		}
	}

	sc := &scene{pipeline: pip}
	sc.bindings.VertexBuffers[0] = vbuf
	sc.bindings.IndexBuffer = ibuf
	sc.bindings.FSImages[0] = img
	return sc
}

func checkerboard(size, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 0xe8, G: 0xe8, B: 0xf0, A: 0xff}
	dark := color.RGBA{R: 0x30, G: 0x60, B: 0xc0, A: 0xff}
	for y := range size {
		for x := range size {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
