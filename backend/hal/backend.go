// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hal

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	wgpu "github.com/gogpu/wgpu/hal"
	"golang.org/x/sync/semaphore"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/internal/release"
	"github.com/gogpu/gfx/internal/resource"
	"github.com/gogpu/gfx/types"
)

func init() {
	backend.Register(backend.NameHAL, func() backend.Backend { return New() })
}

// Surface supplies the render targets of the default pass.
type Surface interface {
	// CurrentView returns the color view of the frame being rendered.
	CurrentView() wgpu.TextureView
	// DepthView returns the depth-stencil view of the default pass, or nil.
	DepthView() wgpu.TextureView
}

// Environment is accepted in backend.Environment.Device, by value or
// pointer. A wgpu.Device may also be passed directly, with its wgpu.Queue
// in backend.Environment.Context and a Surface in Swapchain. Finally the
// Device field may hold a gpucontext.DeviceProvider that exposes
// HalDevice() and HalQueue(), the way gogpu windows share their device.
type Environment struct {
	Device  wgpu.Device
	Queue   wgpu.Queue
	Surface Surface
}

// halProvider is implemented by device providers that expose their HAL
// objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// WebGPU default limits.
const (
	maxImageSize2D      = 8192
	maxImageSize3D      = 2048
	maxImageArrayLayers = 256
	maxVertexAttrs      = 16
)

// uniformAlign is the minimum uniform buffer binding offset alignment.
const uniformAlign = 256

// Frame pacing. beginFrame polls the queue every framePollInterval and
// gives up after frameTimeout.
const (
	framePollInterval = 100 * time.Microsecond
	frameTimeout      = 5 * time.Second
)

var errFrameTimeout = errors.New("hal: timed out waiting for an in-flight frame")

// Backend drives Metal, Vulkan and DX12 devices through the wgpu HAL.
//
// Native objects are never destroyed while a submitted frame can still
// reference them: Destroy calls only queue them, and Commit collects those
// that are old enough. At most release.NumInflight frames are in flight.
type Backend struct {
	dev           wgpu.Device
	queue         wgpu.Queue
	surface       Surface
	surfaceFormat gputypes.TextureFormat
	cfg           backend.Config

	rel *release.Queue[object]

	buffers   *resource.Side[halBuffer]
	images    *resource.Side[halImage]
	shaders   *resource.Side[halShader]
	pipelines *resource.Side[halPipeline]
	passes    *resource.Side[halPass]

	// inflight holds one unit per submitted frame the queue has not
	// completed yet.
	inflight *semaphore.Weighted
	frames   [release.NumInflight]frameState
	// frameSlot indexes frames and ubufs for the frame being recorded.
	frameSlot int
	encoder   wgpu.CommandEncoder
	rp        wgpu.RenderPassEncoder

	ubufs      [release.NumInflight]wgpu.Buffer
	uniformPos int
	// uniformOffsets is indexed by uniform block binding.
	uniformOffsets [types.NumShaderStages * types.MaxUniformBlocks]uint32
	uniformsDirty  bool

	curPass     *resource.Pass
	curWidth    int
	curHeight   int
	curPipeline *resource.Pipeline
	scratch     []byte
}

// frameState is what a frame leaves behind until the queue completes it.
type frameState struct {
	// submission is the queue submission index, 0 while nothing is pending.
	submission uint64
	frame      uint64
	cmd        wgpu.CommandBuffer
	transient  []wgpu.BindGroup
}

// New returns an uninitialised HAL back-end.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return backend.NameHAL }

func (b *Backend) Setup(cfg backend.Config) error {
	if err := b.resolveEnvironment(cfg.Env); err != nil {
		return err
	}
	b.cfg = cfg

	size := uint64(alignUp(max(cfg.UniformBufferSize, uniformAlign), uniformAlign))
	for i := range b.ubufs {
		buf, err := b.dev.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("gfx_uniforms_%d", i),
			Size:  size,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			b.destroyUniformBuffers()
			return fmt.Errorf("hal: create uniform buffer: %w", err)
		}
		b.ubufs[i] = buf
	}

	s := cfg.Sizes
	n := releaseCapacity(s)
	b.rel = release.New(n+1, n, release.NumInflight, b.destroyObject)
	b.buffers = resource.NewSide[halBuffer](s.Buffers)
	b.images = resource.NewSide[halImage](s.Images)
	b.shaders = resource.NewSide[halShader](s.Shaders)
	b.pipelines = resource.NewSide[halPipeline](s.Pipelines)
	b.passes = resource.NewSide[halPass](s.Passes)
	b.inflight = semaphore.NewWeighted(release.NumInflight)

	backend.Logger().Info("hal backend ready",
		"surface", b.surface != nil, "surfaceFormat", b.surfaceFormat, "releaseSlots", n)
	return nil
}

func (b *Backend) resolveEnvironment(env backend.Environment) error {
	switch e := env.Device.(type) {
	case Environment:
		b.dev, b.queue, b.surface = e.Device, e.Queue, e.Surface
	case *Environment:
		if e != nil {
			b.dev, b.queue, b.surface = e.Device, e.Queue, e.Surface
		}
	case wgpu.Device:
		b.dev = e
		b.queue, _ = env.Context.(wgpu.Queue)
		b.surface, _ = env.Swapchain.(Surface)
	case gpucontext.DeviceProvider:
		hp, ok := e.(halProvider)
		if !ok {
			return fmt.Errorf("hal: %w: device provider does not expose HAL types", backend.ErrNoDevice)
		}
		b.dev, _ = hp.HalDevice().(wgpu.Device)
		b.queue, _ = hp.HalQueue().(wgpu.Queue)
		b.surface, _ = env.Swapchain.(Surface)
		b.surfaceFormat = e.SurfaceFormat()
	}
	if b.dev == nil || b.queue == nil {
		return fmt.Errorf("hal: %w: need a Device and a Queue", backend.ErrNoDevice)
	}
	return nil
}

// Shutdown waits for every in-flight frame, then destroys all remaining
// native objects. The core destroys all resources before calling it, so
// only queued releases and backend-owned objects are left.
func (b *Backend) Shutdown() {
	if b.dev == nil {
		return
	}
	if b.encoder != nil {
		b.encoder.DiscardEncoding()
		b.encoder = nil
		b.inflight.Release(1)
	}
	if err := b.dev.WaitIdle(); err != nil {
		backend.Logger().Warn("hal: wait for in-flight frames", "err", err)
	}
	for i := range b.frames {
		b.frames[i].submission = 0
		b.retireFrame(i)
	}
	b.rel.Drain()
	b.destroyUniformBuffers()
	b.dev, b.queue, b.surface = nil, nil, nil
	backend.Logger().Info("hal backend shut down")
}

func (b *Backend) destroyUniformBuffers() {
	for i, buf := range b.ubufs {
		if buf != nil {
			b.dev.DestroyBuffer(buf)
			b.ubufs[i] = nil
		}
	}
}

func (b *Backend) Features() types.Features {
	return types.Features{
		InstancedRendering:    true,
		OriginTopLeft:         true,
		MultipleRenderTargets: true,
		MSAARenderTargets:     true,
		ImageType3D:           true,
		ImageTypeArray:        true,
	}
}

func (b *Backend) Limits() types.Limits {
	return types.Limits{
		MaxImageSize2D:      maxImageSize2D,
		MaxImageSizeCube:    maxImageSize2D,
		MaxImageSize3D:      maxImageSize3D,
		MaxImageSizeArray:   maxImageSize2D,
		MaxImageArrayLayers: maxImageArrayLayers,
		MaxVertexAttrs:      maxVertexAttrs,
	}
}

func (b *Backend) PixelFormat(f types.PixelFormat) types.PixelFormatInfo {
	if f >= types.NumPixelFormats {
		return types.PixelFormatInfo{}
	}
	return pixelFormatInfo(f)
}

// ResetStateCache forgets the bound pipeline so the next ApplyPipeline
// rebinds everything.
func (b *Backend) ResetStateCache() {
	b.curPipeline = nil
	b.uniformsDirty = false
}

// object bundles native objects that are released together. Fields are
// destroyed in dependency order.
type object struct {
	buffer     wgpu.Buffer
	texture    wgpu.Texture
	views      []wgpu.TextureView
	sampler    wgpu.Sampler
	module     wgpu.ShaderModule
	layouts    []wgpu.BindGroupLayout
	groups     []wgpu.BindGroup
	pipeLayout wgpu.PipelineLayout
	pipeline   wgpu.RenderPipeline
}

func (b *Backend) destroyObject(o object) {
	d := b.dev
	for _, g := range o.groups {
		if g != nil {
			d.DestroyBindGroup(g)
		}
	}
	if o.pipeline != nil {
		d.DestroyRenderPipeline(o.pipeline)
	}
	if o.pipeLayout != nil {
		d.DestroyPipelineLayout(o.pipeLayout)
	}
	for _, l := range o.layouts {
		if l != nil {
			d.DestroyBindGroupLayout(l)
		}
	}
	if o.module != nil {
		d.DestroyShaderModule(o.module)
	}
	if o.sampler != nil {
		d.DestroySampler(o.sampler)
	}
	for _, v := range o.views {
		if v != nil {
			d.DestroyTextureView(v)
		}
	}
	if o.texture != nil {
		d.DestroyTexture(o.texture)
	}
	if o.buffer != nil {
		d.DestroyBuffer(o.buffer)
	}
}

// frame returns the index of the frame being recorded.
func (b *Backend) frame() uint64 {
	if b.cfg.Frame == nil {
		return 0
	}
	return b.cfg.Frame()
}

// releaseSlots queues the given release slots at the current frame.
func (b *Backend) releaseSlots(slots ...int) {
	f := b.frame()
	for _, s := range slots {
		b.rel.Release(f, s)
	}
}

// beginFrame waits until fewer than release.NumInflight frames are in
// flight and opens the frame's command encoder in a retired frame slot. It
// reports false when no encoder could be created.
func (b *Backend) beginFrame() bool {
	if b.encoder != nil {
		return true
	}
	if err := b.acquireFrame(); err != nil {
		backend.Logger().Warn("hal: acquire frame slot", "frame", b.frame(), "err", err)
		return false
	}
	b.frameSlot = b.freeFrameSlot()
	b.retireFrame(b.frameSlot)
	b.uniformPos = 0

	enc, err := b.dev.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "gfx_frame"})
	if err == nil {
		err = enc.BeginEncoding("gfx_frame")
	}
	if err != nil {
		b.inflight.Release(1)
		backend.Logger().Warn("hal: begin frame", "err", err)
		return false
	}
	b.encoder = enc
	return true
}

// acquireFrame takes one unit of in-flight weight, polling the queue for
// completed frames while none is free.
func (b *Backend) acquireFrame() error {
	b.pollFrames()
	deadline := time.Now().Add(frameTimeout)
	for !b.inflight.TryAcquire(1) {
		if time.Now().After(deadline) {
			return errFrameTimeout
		}
		time.Sleep(framePollInterval)
		b.pollFrames()
	}
	return nil
}

// pollFrames retires every frame whose submission the queue reports
// complete and returns its in-flight weight.
func (b *Backend) pollFrames() {
	done := b.queue.PollCompleted()
	for i := range b.frames {
		f := &b.frames[i]
		if f.submission == 0 || f.submission > done {
			continue
		}
		f.submission = 0
		b.retireFrame(i)
		b.inflight.Release(1)
	}
}

// freeFrameSlot returns a slot with no pending submission. Holding one unit
// of in-flight weight guarantees one exists.
func (b *Backend) freeFrameSlot() int {
	for i := range b.frames {
		if b.frames[i].submission == 0 {
			return i
		}
	}
	panic("hal: no free frame slot")
}

// inflightFrames returns the number of submitted frames not yet completed.
func (b *Backend) inflightFrames() int {
	n := 0
	for i := range b.frames {
		if b.frames[i].submission != 0 {
			n++
		}
	}
	return n
}

// retireFrame frees what the frame in slot i left behind once the queue
// has completed it.
func (b *Backend) retireFrame(i int) {
	f := &b.frames[i]
	if f.cmd != nil {
		b.dev.FreeCommandBuffer(f.cmd)
		f.cmd = nil
	}
	for _, g := range f.transient {
		b.dev.DestroyBindGroup(g)
	}
	f.transient = f.transient[:0]
}

// Commit submits the frame's commands, if any, and collects released
// objects no in-flight frame can reference anymore.
func (b *Backend) Commit() {
	frame := b.frame()
	if b.encoder != nil {
		b.submit(frame)
	}
	b.pollFrames()
	if n := b.rel.Collect(b.collectFrame(frame)); n > 0 {
		backend.Logger().Debug("hal: collected released objects", "count", n, "frame", frame)
	}
}

func (b *Backend) submit(frame uint64) {
	if b.rp != nil {
		b.rp.End()
		b.rp = nil
	}
	enc := b.encoder
	b.encoder = nil
	cmd, err := enc.EndEncoding()
	if err != nil {
		b.inflight.Release(1)
		backend.Logger().Warn("hal: end encoding", "err", err)
		return
	}
	f := &b.frames[b.frameSlot]
	f.cmd = cmd
	idx, err := b.queue.Submit([]wgpu.CommandBuffer{cmd})
	if err != nil || idx == 0 {
		b.inflight.Release(1)
		if err != nil {
			backend.Logger().Warn("hal: submit", "frame", frame, "err", err)
		}
		return
	}
	f.submission, f.frame = idx, frame
}

// collectFrame returns the frame passed to the release queue's Collect.
// Objects released in a frame stay alive while any submission of that
// frame or an earlier one is pending, even when frames without
// submissions let the frame counter run ahead of the GPU.
func (b *Backend) collectFrame(frame uint64) uint64 {
	for i := range b.frames {
		f := &b.frames[i]
		if f.submission != 0 {
			frame = min(frame, f.frame+b.rel.NumInflight()+1)
		}
	}
	return frame
}

func alignUp(n, a int) int {
	return (n + a - 1) / a * a
}
