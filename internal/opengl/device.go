// Package opengl implements render.Backend on OpenGL 4.1 core. Native calls
// go through Functions and every bind goes through the Context cache.
package opengl

import (
	"fmt"

	"github.com/x2w-rook/Ludens-sub001/core"
	"github.com/x2w-rook/Ludens-sub001/internal/pool"
	"github.com/x2w-rook/Ludens-sub001/internal/uid"
	"github.com/x2w-rook/Ludens-sub001/render"
)

// defaultFormat is the color format requested for the default frame buffer.
const defaultFormat = render.FormatRGBA8

type BindingGroupLayout struct {
	render.BindingGroupLayoutBase
}

type BindingGroup struct {
	render.BindingGroupBase
}

// Device is the OpenGL backend. It must be used on the goroutine that owns
// the GL context.
type Device struct {
	f   Functions
	ctx *Context

	textures     *pool.Pool[Texture]
	buffers      *pool.Pool[Buffer]
	shaders      *pool.Pool[Shader]
	groupLayouts *pool.Pool[BindingGroupLayout]
	groups       *pool.Pool[BindingGroup]
	passes       *pool.Pool[Pass]
	frameBuffers *pool.Pool[FrameBuffer]
	pipelines    *pool.Pool[Pipeline]
	swapPass     pool.Key

	glslVersion int
	extent      core.Extent
	pipeline    pool.Key
	indexType   render.IndexType
	depthMask   *bool
}

// New returns a backend issuing native calls through f. The GL context
// must be current when the device starts.
func New(f Functions) *Device {
	return &Device{f: f}
}

func (d *Device) Kind() render.BackendKind { return render.BackendOpenGL }

// Context returns the binding cache, nil before Startup.
func (d *Device) Context() *Context { return d.ctx }

func (d *Device) Startup(dev render.Device, cfg render.Config) error {
	if d.f == nil {
		return fmt.Errorf("opengl: no GL functions")
	}
	d.ctx = NewContext(d.f)
	d.ctx.SetVerify(cfg.ConsistencyChecks)
	d.glslVersion = cfg.Shader.GLSLVersion

	l := cfg.Limits
	d.textures = pool.New[Texture](l.Textures)
	d.buffers = pool.New[Buffer](l.Buffers)
	d.shaders = pool.New[Shader](l.Shaders)
	d.groupLayouts = pool.New[BindingGroupLayout](l.BindingGroupLayouts)
	d.groups = pool.New[BindingGroup](l.BindingGroups)
	d.passes = pool.New[Pass](l.Passes)
	d.frameBuffers = pool.New[FrameBuffer](l.FrameBuffers)
	d.pipelines = pool.New[Pipeline](l.Pipelines)

	obj := render.ObjectBase{ID: uid.Next(), Backend: d.Kind(), Device: dev}
	key, err := d.CreatePass(obj, render.SwapChainPassInfo(defaultFormat))
	if err != nil {
		return fmt.Errorf("opengl: swap chain pass: %w", err)
	}
	d.swapPass = key

	d.f.PixelStorei(UNPACK_ALIGNMENT, 1)
	render.Logger().Info("opengl: device started", "device", dev.ID(),
		"version", d.f.GetString(VERSION), "verify", cfg.ConsistencyChecks)
	return nil
}

// Cleanup deletes every native object still alive.
func (d *Device) Cleanup() {
	if d.ctx == nil {
		return
	}
	d.DeletePass(d.swapPass)
	d.swapPass = pool.Key{}
	leaks := 0
	d.pipelines.Each(func(k pool.Key, _ *Pipeline) bool { d.DeletePipeline(k); leaks++; return true })
	d.frameBuffers.Each(func(k pool.Key, _ *FrameBuffer) bool { d.DeleteFrameBuffer(k); leaks++; return true })
	d.groups.Each(func(k pool.Key, _ *BindingGroup) bool { d.DeleteBindingGroup(k); leaks++; return true })
	d.groupLayouts.Each(func(k pool.Key, _ *BindingGroupLayout) bool { d.DeleteBindingGroupLayout(k); leaks++; return true })
	d.passes.Each(func(k pool.Key, _ *Pass) bool { d.DeletePass(k); leaks++; return true })
	d.shaders.Each(func(k pool.Key, _ *Shader) bool { d.DeleteShader(k); leaks++; return true })
	d.buffers.Each(func(k pool.Key, _ *Buffer) bool { d.DeleteBuffer(k); leaks++; return true })
	d.textures.Each(func(k pool.Key, _ *Texture) bool { d.DeleteTexture(k); leaks++; return true })
	if leaks > 0 {
		render.Logger().Warn("opengl: objects alive at device deletion", "count", leaks)
	}
	binds, elided := d.ctx.Stats()
	render.Logger().Debug("opengl: binding cache", "binds", binds, "elided", elided, "desyncs", d.ctx.Desyncs())
	d.ctx = nil
}

func (d *Device) WaitIdle() {
	if d.ctx != nil {
		d.f.Finish()
	}
}

func (d *Device) CreateBindingGroupLayout(obj render.ObjectBase, info render.BindingGroupLayoutInfo) (pool.Key, error) {
	key, l, err := d.groupLayouts.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("opengl: create binding group layout: %w", err)
	}
	l.BindingGroupLayoutBase = render.BindingGroupLayoutBase{ObjectBase: obj, Info: info}
	return key, nil
}

func (d *Device) DeleteBindingGroupLayout(key pool.Key) { d.groupLayouts.Free(key) }

func (d *Device) BindingGroupLayout(key pool.Key) *render.BindingGroupLayoutBase {
	if l := d.groupLayouts.Get(key); l != nil {
		return &l.BindingGroupLayoutBase
	}
	return nil
}

func (d *Device) CreateBindingGroup(obj render.ObjectBase, layout render.BindingGroupLayoutInfo) (pool.Key, error) {
	key, g, err := d.groups.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("opengl: create binding group: %w", err)
	}
	g.BindingGroupBase = render.NewBindingGroupBase(obj, layout)
	return key, nil
}

func (d *Device) DeleteBindingGroup(key pool.Key) { d.groups.Free(key) }

func (d *Device) BindingGroup(key pool.Key) *render.BindingGroupBase {
	if g := d.groups.Get(key); g != nil {
		return &g.BindingGroupBase
	}
	return nil
}

// SetBindingGroup binds the group's textures and uniform buffers at the
// units and bases the bound pipeline assigned to slot. Entries never set,
// or whose resource was deleted, are skipped.
func (d *Device) SetBindingGroup(slot int, key pool.Key) error {
	p := d.pipelines.Get(d.pipeline)
	g := d.groups.Get(key)
	if p == nil || g == nil {
		return render.InvalidHandle
	}
	if slot >= len(p.bindings.Slots) {
		return render.InvalidIndex
	}
	// The pipeline's layout decides how many units each binding owns; extra
	// group elements are dropped.
	layout := p.GroupLayouts[slot].Bindings
	for i, b := range g.Layout.Bindings {
		if i >= len(layout) {
			break
		}
		switch b.Type {
		case render.BindingTexture:
			textures := g.Textures[i]
			if n := int(layout[i].ArraySize()); len(textures) > n {
				textures = textures[:n]
			}
			for e, h := range textures {
				if tex := d.texture(h); tex != nil {
					d.ctx.BindTexture(p.bindings.TextureUnit(slot, i, uint32(e)), tex.target, tex.obj)
				}
			}
		case render.BindingUniformBuffer:
			h := g.UniformBuffers[i]
			if !h.IsValid() {
				continue
			}
			if buf := d.buffers.Get(h.Key()); buf != nil && buf.ID == h.ID() {
				d.bindUniformBuffer(p.bindings.UniformBase(slot, i), buf)
			}
		}
	}
	return nil
}

// ── Frame and pass ────────────────────────────────────────────────────────────

func (d *Device) BeginFrame() error { return nil }

// EndFrame does not present; swapping is left to the window owning the
// context.
func (d *Device) EndFrame() error { return nil }

// BeginRenderPass binds the frame buffer (the default one for a zero key),
// sets the viewport to its size and clears the attachments whose load op is
// LoadClear.
func (d *Device) BeginRenderPass(passKey pool.Key, fbKey pool.Key, clear []core.ClearValue) error {
	pass := d.passes.Get(passKey)
	if pass == nil {
		return render.InvalidHandle
	}
	target := Object{}
	extent := d.extent
	if fb := d.frameBuffers.Get(fbKey); fb != nil {
		target = fb.obj
		extent = core.Extent{Width: fb.Info.Width, Height: fb.Info.Height}
	}
	d.ctx.BindFramebuffer(target)
	if extent.Width > 0 && extent.Height > 0 {
		d.f.Viewport(0, 0, int32(extent.Width), int32(extent.Height))
	}

	next, color := 0, int32(0)
	for _, a := range pass.Info.Attachments {
		isColor := !a.Format.IsDepthStencil()
		if a.LoadOp == render.LoadClear && next < len(clear) {
			cv := clear[next]
			next++
			switch {
			case isColor:
				d.f.ClearBufferfv(COLOR, color, cv.Color.Array())
			case a.Format == render.FormatD32F:
				d.setDepthMask(true)
				d.f.ClearBufferfv(DEPTH, 0, [4]float32{cv.Depth})
			default:
				d.setDepthMask(true)
				d.f.ClearBufferfi(DEPTH_STENCIL, 0, cv.Depth, int32(cv.Stencil))
			}
		}
		if isColor {
			color++
		}
	}
	return nil
}

func (d *Device) EndRenderPass() error { return nil }

// ── Draw ──────────────────────────────────────────────────────────────────────

// DrawVertex issues an instanced draw. GL 4.1 has no base instance, so a
// non-zero InstanceStart is rejected.
func (d *Device) DrawVertex(info render.DrawVertexInfo) error {
	p := d.pipelines.Get(d.pipeline)
	if p == nil {
		return render.InvalidHandle
	}
	if info.InstanceStart != 0 {
		return fmt.Errorf("opengl: first instance %d: %w", info.InstanceStart, render.InvalidIndex)
	}
	d.f.DrawArraysInstanced(p.mode, int32(info.VertexStart), int32(info.VertexCount), int32(info.Instances()))
	return nil
}

func (d *Device) DrawIndexed(info render.DrawIndexedInfo) error {
	p := d.pipelines.Get(d.pipeline)
	if p == nil {
		return render.InvalidHandle
	}
	if info.InstanceStart != 0 {
		return fmt.Errorf("opengl: first instance %d: %w", info.InstanceStart, render.InvalidIndex)
	}
	typ := UNSIGNED_INT
	if d.indexType == render.IndexU16 {
		typ = UNSIGNED_SHORT
	}
	offset := int(info.IndexStart * d.indexType.Size())
	d.f.DrawElementsInstanced(p.mode, int32(info.IndexCount), typ, offset, int32(info.Instances()))
	return nil
}

// SetScissor enables the scissor test with r, or disables it for nil.
func (d *Device) SetScissor(r *core.Rect) error {
	if r == nil {
		d.ctx.Enable(SCISSOR_TEST, false)
		return nil
	}
	d.ctx.Enable(SCISSOR_TEST, true)
	d.f.Scissor(r.X, r.Y, r.Width, r.Height)
	return nil
}

func (d *Device) ResizeViewport(width, height uint32) error {
	d.extent = core.Extent{Width: width, Height: height}
	d.f.Viewport(0, 0, int32(width), int32(height))
	return nil
}

func (d *Device) SwapChainTextureFormat() render.Format { return defaultFormat }

// SwapChainPass returns the pass over the default frame buffer.
func (d *Device) SwapChainPass() pool.Key { return d.swapPass }

// SwapChainFrameBuffer is always the default frame buffer; the window owning
// the context presents it.
func (d *Device) SwapChainFrameBuffer() pool.Key { return pool.Key{} }
