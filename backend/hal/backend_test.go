// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hal

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	wgpu "github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/types"
)

const vsSource = `@vertex
fn main(@location(0) pos: vec3<f32>) -> @builtin(position) vec4<f32> {
	return vec4<f32>(pos, 1.0);
}
`

const fsSource = `@fragment
fn main() -> @location(0) vec4<f32> {
	return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

// openNoopDevice opens a device on the noop HAL, which accepts every call
// without touching a GPU.
func openNoopDevice(t *testing.T) (wgpu.Device, wgpu.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance() error = %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		t.Fatal("noop instance has no adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

type testSurface struct {
	color, depth wgpu.TextureView
}

func (s *testSurface) CurrentView() wgpu.TextureView { return s.color }
func (s *testSurface) DepthView() wgpu.TextureView   { return s.depth }

func newTestSurface(t *testing.T, dev wgpu.Device) *testSurface {
	t.Helper()
	view := func(format gputypes.TextureFormat) wgpu.TextureView {
		tex, err := dev.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "surface",
			Size:          wgpu.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        format,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			t.Fatalf("CreateTexture() error = %v", err)
		}
		v, err := dev.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
			Format:          format,
			Dimension:       gputypes.TextureViewDimension2D,
			Aspect:          gputypes.TextureAspectAll,
			MipLevelCount:   1,
			ArrayLayerCount: 1,
		})
		if err != nil {
			t.Fatalf("CreateTextureView() error = %v", err)
		}
		t.Cleanup(func() {
			dev.DestroyTextureView(v)
			dev.DestroyTexture(tex)
		})
		return v
	}
	return &testSurface{
		color: view(gputypes.TextureFormatRGBA8Unorm),
		depth: view(gputypes.TextureFormatDepth24PlusStencil8),
	}
}

func newHALContext(t *testing.T, cfg gfx.Config, surface bool) (*gfx.Context, *Backend) {
	t.Helper()
	dev, queue := openNoopDevice(t)
	env := Environment{Device: dev, Queue: queue}
	if surface {
		env.Surface = newTestSurface(t, dev)
	}
	cfg.Environment = backend.Environment{Device: env}
	b := New()
	ctx, err := gfx.New(cfg, gfx.WithBackend(b), gfx.WithDebug())
	if err != nil {
		t.Fatalf("gfx.New() error = %v", err)
	}
	t.Cleanup(ctx.Shutdown)
	return ctx, b
}

func testShaderDesc() types.ShaderDesc {
	return types.ShaderDesc{
		VS: types.ShaderStageDesc{
			Source:        vsSource,
			UniformBlocks: []types.UniformBlockDesc{{Size: 64}},
		},
		FS: types.ShaderStageDesc{
			Source: fsSource,
			Images: []types.ShaderImageDesc{{Name: "tex", Type: types.ImageType2D}},
		},
	}
}

func testPipelineDesc(shd types.Shader) types.PipelineDesc {
	desc := types.PipelineDesc{Shader: shd}
	desc.Layout.Attrs[0] = types.VertexAttrDesc{Format: types.VertexFormatFloat3}
	return desc
}

func testImageDesc() types.ImageDesc {
	desc := types.ImageDesc{Width: 2, Height: 2}
	desc.Content[0][0] = make([]byte, 16)
	return desc
}

func TestSetupRequiresDevice(t *testing.T) {
	dev, _ := openNoopDevice(t)
	tests := []struct {
		name string
		env  backend.Environment
	}{
		{"empty", backend.Environment{}},
		{"no queue", backend.Environment{Device: Environment{Device: dev}}},
		{"nil pointer", backend.Environment{Device: (*Environment)(nil)}},
		{"device without queue", backend.Environment{Device: dev}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Setup(backend.Config{Env: tt.env})
			if !errors.Is(err, backend.ErrNoDevice) {
				t.Errorf("Setup() error = %v, want ErrNoDevice", err)
			}
		})
	}
}

func TestSetupAcceptsSeparateFields(t *testing.T) {
	dev, queue := openNoopDevice(t)
	b := New()
	cfg := backend.Config{UniformBufferSize: 1024, Env: backend.Environment{Device: dev, Context: queue}}
	if err := b.Setup(cfg); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	for i, buf := range b.ubufs {
		if buf == nil {
			t.Errorf("uniform buffer %d not created", i)
		}
	}
	b.Shutdown()
	if b.dev != nil || b.queue != nil {
		t.Error("Shutdown() kept device state")
	}
	b.Shutdown()
}

func TestReleaseSlotsPerKind(t *testing.T) {
	ctx, b := newHALContext(t, gfx.Config{}, false)

	tests := []struct {
		name   string
		create func() types.ResourceState
		want   int
	}{
		{
			name: "immutable buffer",
			create: func() types.ResourceState {
				return ctx.QueryBufferState(ctx.MakeBuffer(types.BufferDesc{Content: make([]byte, 36)}))
			},
			want: 1,
		},
		{
			name: "stream buffer",
			create: func() types.ResourceState {
				return ctx.QueryBufferState(ctx.MakeBuffer(types.BufferDesc{Size: 64, Usage: types.UsageStream}))
			},
			want: types.NumInflightFrames,
		},
		{
			name: "texture",
			create: func() types.ResourceState { return ctx.QueryImageState(ctx.MakeImage(testImageDesc())) },
			want: 2,
		},
		{
			name: "dynamic texture",
			create: func() types.ResourceState {
				return ctx.QueryImageState(ctx.MakeImage(types.ImageDesc{Width: 4, Height: 4, Usage: types.UsageDynamic}))
			},
			want: types.NumInflightFrames + 1,
		},
		{
			name: "msaa render target",
			create: func() types.ResourceState {
				return ctx.QueryImageState(ctx.MakeImage(types.ImageDesc{
					RenderTarget: true, Width: 8, Height: 8, SampleCount: 4,
				}))
			},
			want: 3,
		},
		{
			name: "depth render target",
			create: func() types.ResourceState {
				return ctx.QueryImageState(ctx.MakeImage(types.ImageDesc{
					RenderTarget: true, Width: 8, Height: 8, PixelFormat: types.PixelFormatDepthStencil,
				}))
			},
			want: 1,
		},
		{
			name: "shader",
			create: func() types.ResourceState { return ctx.QueryShaderState(ctx.MakeShader(testShaderDesc())) },
			want: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := b.rel.Live()
			if got := tt.create(); got != types.StateValid {
				t.Fatalf("state = %s, want valid", got)
			}
			if got := b.rel.Live() - before; got != tt.want {
				t.Errorf("release slots used = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPipelineAndPassSlots(t *testing.T) {
	ctx, b := newHALContext(t, gfx.Config{}, false)
	shd := ctx.MakeShader(testShaderDesc())

	before := b.rel.Live()
	pip := ctx.MakePipeline(testPipelineDesc(shd))
	if got := ctx.QueryPipelineState(pip); got != types.StateValid {
		t.Fatalf("pipeline state = %s, want valid", got)
	}
	if got := b.rel.Live() - before; got != 2 {
		t.Errorf("pipeline release slots = %d, want 2", got)
	}

	color := ctx.MakeImage(types.ImageDesc{RenderTarget: true, Width: 8, Height: 8})
	depth := ctx.MakeImage(types.ImageDesc{RenderTarget: true, Width: 8, Height: 8, PixelFormat: types.PixelFormatDepthStencil})
	var pd types.PassDesc
	pd.ColorAttachments[0].Image = color
	pd.DepthStencilAttachment.Image = depth
	before = b.rel.Live()
	pass := ctx.MakePass(pd)
	if got := ctx.QueryPassState(pass); got != types.StateValid {
		t.Fatalf("pass state = %s, want valid", got)
	}
	if got := b.rel.Live() - before; got != 1 {
		t.Errorf("pass release slots = %d, want 1", got)
	}
	if got := len(b.rel.Get(b.passes.At(pass.ID).slot).views); got != 2 {
		t.Errorf("pass views = %d, want 2", got)
	}
}

func TestDestroyIsDeferred(t *testing.T) {
	ctx, b := newHALContext(t, gfx.Config{}, false)
	buf := ctx.MakeBuffer(types.BufferDesc{Size: 64, Usage: types.UsageDynamic})
	live := b.rel.Live()

	released := ctx.Frame()
	ctx.DestroyBuffer(buf)
	if got := b.rel.Pending(); got != types.NumInflightFrames {
		t.Fatalf("Pending() = %d, want %d", got, types.NumInflightFrames)
	}

	// Entries are collected by the first Commit whose frame exceeds the
	// release frame by more than NumInflight+1.
	for ctx.Frame() <= released+3 {
		ctx.Commit()
		if b.rel.Live() != live {
			t.Fatalf("objects destroyed at frame %d, released at %d", ctx.Frame()-1, released)
		}
	}
	ctx.Commit()
	if got := b.rel.Pending(); got != 0 {
		t.Errorf("Pending() after collection = %d, want 0", got)
	}
	if got := b.rel.Live(); got != live-types.NumInflightFrames {
		t.Errorf("Live() = %d, want %d", got, live-types.NumInflightFrames)
	}
}

func TestShutdownDrainsEverything(t *testing.T) {
	ctx, b := newHALContext(t, gfx.Config{}, false)
	shd := ctx.MakeShader(testShaderDesc())
	ctx.MakePipeline(testPipelineDesc(shd))
	ctx.MakeImage(testImageDesc())
	buf := ctx.MakeBuffer(types.BufferDesc{Size: 64, Usage: types.UsageStream})
	ctx.DestroyBuffer(buf)

	ctx.Shutdown()
	if got := b.rel.Live(); got != 0 {
		t.Errorf("Live() after Shutdown = %d, want 0", got)
	}
	if got := b.rel.Pending(); got != 0 {
		t.Errorf("Pending() after Shutdown = %d, want 0", got)
	}
}

func TestShaderSources(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ShaderDesc)
		want   types.ResourceState
	}{
		{"wgsl", func(*types.ShaderDesc) {}, types.StateValid},
		{"invalid wgsl", func(d *types.ShaderDesc) { d.FS.Source = "fn main( {" }, types.StateFailed},
		{"no code", func(d *types.ShaderDesc) { d.VS.Source = "" }, types.StateFailed},
		{"truncated bytecode", func(d *types.ShaderDesc) {
			d.VS.Source = ""
			d.VS.Bytecode = []byte{0x03, 0x02, 0x23}
		}, types.StateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, b := newHALContext(t, gfx.Config{}, false)
			desc := testShaderDesc()
			tt.mutate(&desc)
			before := b.rel.Live()
			shd := ctx.MakeShader(desc)
			if got := ctx.QueryShaderState(shd); got != tt.want {
				t.Errorf("state = %s, want %s", got, tt.want)
			}
			if tt.want == types.StateFailed {
				if leaked := b.rel.Live() - before - b.rel.Pending(); leaked != 0 {
					t.Errorf("failed shader kept %d objects outside the release queue", leaked)
				}
			}
		})
	}
}

func TestWGSLCompiledOnce(t *testing.T) {
	ctx, _ := newHALContext(t, gfx.Config{}, false)
	desc := testShaderDesc()
	desc.VS.Source += "\n// TestWGSLCompiledOnce\n"
	before := wgslCache.Stats()
	for range 2 {
		if got := ctx.QueryShaderState(ctx.MakeShader(desc)); got != types.StateValid {
			t.Fatalf("state = %s, want valid", got)
		}
	}
	after := wgslCache.Stats()
	if got := after.Hits - before.Hits; got < 1 {
		t.Errorf("cache hits = %d, want >= 1", got)
	}
}

func TestUnsupportedFormatsFail(t *testing.T) {
	ctx, b := newHALContext(t, gfx.Config{}, false)
	if b.PixelFormat(types.PixelFormatETC2RGB8).Supported() {
		t.Error("ETC2 reported as supported")
	}
	shd := ctx.MakeShader(testShaderDesc())
	desc := testPipelineDesc(shd)
	desc.Layout.Attrs[0].Format = types.VertexFormatUInt10N2
	if got := ctx.QueryPipelineState(ctx.MakePipeline(desc)); got != types.StateFailed {
		t.Errorf("UInt10N2 pipeline state = %s, want failed", got)
	}
}

func TestUpdatesRotateCopies(t *testing.T) {
	ctx, _ := newHALContext(t, gfx.Config{}, false)
	buf := ctx.MakeBuffer(types.BufferDesc{Size: 64, Usage: types.UsageStream})
	img := ctx.MakeImage(types.ImageDesc{Width: 2, Height: 2, Usage: types.UsageDynamic})

	ctx.UpdateBuffer(buf, make([]byte, 30))
	var content types.SubimageContent
	content[0][0] = make([]byte, 16)
	ctx.UpdateImage(img, &content)
	if got := ctx.QueryBufferInfo(buf).ActiveSlot; got != 1 {
		t.Errorf("buffer ActiveSlot = %d, want 1", got)
	}
	if got := ctx.QueryImageInfo(img).ActiveSlot; got != 1 {
		t.Errorf("image ActiveSlot = %d, want 1", got)
	}
	ctx.Commit()

	ctx.AppendBuffer(buf, make([]byte, 6))
	ctx.AppendBuffer(buf, make([]byte, 6))
	if got := ctx.QueryBufferInfo(buf).ActiveSlot; got != 0 {
		t.Errorf("buffer ActiveSlot after appends = %d, want 0", got)
	}
}

func TestDrawFrame(t *testing.T) {
	ctx, b := newHALContext(t, gfx.Config{}, true)
	shd := ctx.MakeShader(testShaderDesc())
	pip := ctx.MakePipeline(testPipelineDesc(shd))
	vbuf := ctx.MakeBuffer(types.BufferDesc{Content: make([]byte, 36)})
	tex := ctx.MakeImage(testImageDesc())
	var bnd types.Bindings
	bnd.VertexBuffers[0] = vbuf
	bnd.FSImages[0] = tex

	ctx.BeginDefaultPass(nil, 64, 64)
	if b.rp == nil {
		t.Fatal("default pass did not open a render pass")
	}
	ctx.ApplyPipeline(pip)
	ctx.ApplyBindings(&bnd)
	ctx.ApplyUniforms(types.ShaderStageVS, 0, make([]byte, 64))
	ctx.Draw(0, 3, 1)
	ctx.EndPass()

	slot := b.frameSlot
	if got := len(b.frames[slot].transient); got != 2 {
		t.Errorf("transient bind groups = %d, want 2", got)
	}
	ctx.Commit()
	if b.encoder != nil {
		t.Error("Commit() left the frame encoder open")
	}
	// The noop queue completes every submission at once.
	if f := b.frames[slot]; f.cmd != nil || f.submission != 0 || len(f.transient) != 0 {
		t.Errorf("frame slot %d not retired after Commit: %+v", slot, f)
	}
	if got := b.inflightFrames(); got != 0 {
		t.Errorf("inflightFrames() = %d, want 0", got)
	}
}

// stalledQueue reports only submissions up to completed as finished.
type stalledQueue struct {
	wgpu.Queue
	completed uint64
}

func (q *stalledQueue) PollCompleted() uint64 { return q.completed }

func TestInflightFramesBoundedBySubmissionIndex(t *testing.T) {
	dev, queue := openNoopDevice(t)
	q := &stalledQueue{Queue: queue}
	b := New()
	cfg := gfx.Config{Environment: backend.Environment{Device: Environment{
		Device:  dev,
		Queue:   q,
		Surface: newTestSurface(t, dev),
	}}}
	ctx, err := gfx.New(cfg, gfx.WithBackend(b), gfx.WithDebug())
	if err != nil {
		t.Fatalf("gfx.New() error = %v", err)
	}
	t.Cleanup(ctx.Shutdown)

	frame := func() {
		ctx.BeginDefaultPass(nil, 64, 64)
		ctx.EndPass()
		ctx.Commit()
	}
	frame()
	first := b.frameSlot
	firstFrame := b.frames[first].frame
	frame()
	if got := b.inflightFrames(); got != 2 {
		t.Fatalf("inflightFrames() = %d, want 2", got)
	}
	if got, want := b.collectFrame(firstFrame+100), firstFrame+b.rel.NumInflight()+1; got != want {
		t.Errorf("collectFrame() = %d, want %d", got, want)
	}

	q.completed = b.frames[first].submission
	frame()
	if b.frameSlot != first {
		t.Errorf("frame slot = %d, want completed slot %d", b.frameSlot, first)
	}
	if got := b.inflightFrames(); got != 2 {
		t.Errorf("inflightFrames() = %d, want 2", got)
	}

	q.completed = ^uint64(0)
	b.pollFrames()
	if got := b.inflightFrames(); got != 0 {
		t.Errorf("inflightFrames() after completion = %d, want 0", got)
	}
	if got := b.collectFrame(42); got != 42 {
		t.Errorf("collectFrame() with nothing pending = %d, want 42", got)
	}
}

func TestDefaultPassWithoutSurface(t *testing.T) {
	ctx, b := newHALContext(t, gfx.Config{}, false)
	shd := ctx.MakeShader(testShaderDesc())
	pip := ctx.MakePipeline(testPipelineDesc(shd))

	ctx.BeginDefaultPass(nil, 64, 64)
	if b.rp != nil {
		t.Error("render pass opened without a surface")
	}
	ctx.ApplyPipeline(pip)
	ctx.Draw(0, 3, 1)
	ctx.EndPass()
	ctx.Commit()
}

func TestUniformOverflowDropped(t *testing.T) {
	ctx, b := newHALContext(t, gfx.Config{UniformBufferSize: 300}, true)
	shd := ctx.MakeShader(testShaderDesc())
	pip := ctx.MakePipeline(testPipelineDesc(shd))

	ctx.BeginDefaultPass(nil, 64, 64)
	ctx.ApplyPipeline(pip)
	ctx.ApplyUniforms(types.ShaderStageVS, 0, make([]byte, 64))
	if got := b.uniformPos; got != 64 {
		t.Fatalf("uniformPos = %d, want 64", got)
	}
	ctx.ApplyUniforms(types.ShaderStageVS, 0, make([]byte, 64))
	if got := b.uniformPos; got != 64 {
		t.Errorf("uniformPos after overflow = %d, want 64", got)
	}
	if got := b.uniformOffsets[0]; got != 0 {
		t.Errorf("block offset after overflow = %d, want 0", got)
	}
	ctx.EndPass()
	ctx.Commit()
}

func TestFlipY(t *testing.T) {
	b := &Backend{curHeight: 100}
	tests := []struct {
		y, h    int
		topLeft bool
		want    int
	}{
		{10, 20, true, 10},
		{10, 20, false, 70},
		{0, 100, false, 0},
	}
	for _, tt := range tests {
		if got := b.flipY(tt.y, tt.h, tt.topLeft); got != tt.want {
			t.Errorf("flipY(%d, %d, %v) = %d, want %d", tt.y, tt.h, tt.topLeft, got, tt.want)
		}
	}
}
