package vulkan

import (
	"errors"
	"fmt"

	"github.com/x2w-rook/Ludens-sub001/core"
	"github.com/x2w-rook/Ludens-sub001/internal/pool"
	"github.com/x2w-rook/Ludens-sub001/internal/uid"
	"github.com/x2w-rook/Ludens-sub001/render"
)

// surfaceFormat is the format a typical surface offers for presentation.
const surfaceFormat = render.FormatBGRA8

var errNotStarted = errors.New("vulkan: device not started")

// Device implements render.Backend without a Vulkan instance.
type Device struct {
	device render.Device
	cfg    render.Config

	images        *pool.Pool[Image]
	buffers       *pool.Pool[Buffer]
	shaders       *pool.Pool[ShaderModule]
	setLayouts    *pool.Pool[DescriptorSetLayout]
	sets          *pool.Pool[DescriptorSet]
	renderPasses  *pool.Pool[RenderPass]
	framebuffers  *pool.Pool[Framebuffer]
	pipelines     *pool.Pool[Pipeline]
	swapPass      pool.Key
	cmd           CommandBuffer
	viewport      core.Viewport
	framesStarted int
	framesEnded   int
}

func NewDevice() *Device {
	return &Device{}
}

func (d *Device) Kind() render.BackendKind { return render.BackendVulkan }

func (d *Device) Startup(dev render.Device, cfg render.Config) error {
	d.device = dev
	d.cfg = cfg
	l := cfg.Limits
	d.images = pool.New[Image](l.Textures)
	d.buffers = pool.New[Buffer](l.Buffers)
	d.shaders = pool.New[ShaderModule](l.Shaders)
	d.setLayouts = pool.New[DescriptorSetLayout](l.BindingGroupLayouts)
	d.sets = pool.New[DescriptorSet](l.BindingGroups)
	d.renderPasses = pool.New[RenderPass](l.Passes)
	d.framebuffers = pool.New[Framebuffer](l.FrameBuffers)
	d.pipelines = pool.New[Pipeline](l.Pipelines)

	obj := render.ObjectBase{ID: uid.Next(), Backend: d.Kind(), Device: dev}
	key, err := d.CreatePass(obj, render.SwapChainPassInfo(surfaceFormat))
	if err != nil {
		return fmt.Errorf("vulkan: swap chain render pass: %w", err)
	}
	d.swapPass = key
	render.Logger().Debug("vulkan: stub device started", "device", dev.ID())
	return nil
}

// Cleanup releases every object still alive and logs how many there were.
func (d *Device) Cleanup() {
	if d.images == nil {
		return
	}
	d.renderPasses.Free(d.swapPass)
	leaked := map[string]int{
		"textures":              d.images.Len(),
		"buffers":               d.buffers.Len(),
		"shaders":               d.shaders.Len(),
		"binding group layouts": d.setLayouts.Len(),
		"binding groups":        d.sets.Len(),
		"passes":                d.renderPasses.Len(),
		"frame buffers":         d.framebuffers.Len(),
		"pipelines":             d.pipelines.Len(),
	}
	for kind, n := range leaked {
		if n > 0 {
			render.Logger().Warn("vulkan: objects alive at device deletion", "kind", kind, "count", n)
		}
	}
	*d = Device{}
}

func (d *Device) WaitIdle() {}

// Commands returns the command buffer of the current (or last) frame.
func (d *Device) Commands() *CommandBuffer { return &d.cmd }

// Frames returns how many frames were begun and ended.
func (d *Device) Frames() (begun, ended int) { return d.framesStarted, d.framesEnded }

func (d *Device) CreateTexture(obj render.ObjectBase, info render.TextureInfo) (pool.Key, error) {
	key, img, err := d.images.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("vulkan: create image: %w", err)
	}
	info.Data = nil
	img.TextureBase = render.TextureBase{ObjectBase: obj, Info: info}
	img.MipLevels = 1
	return key, nil
}

func (d *Device) DeleteTexture(key pool.Key) { d.images.Free(key) }

func (d *Device) Texture(key pool.Key) *render.TextureBase {
	if img := d.images.Get(key); img != nil {
		return &img.TextureBase
	}
	return nil
}

func (d *Device) CreateBuffer(obj render.ObjectBase, info render.BufferInfo) (pool.Key, error) {
	key, buf, err := d.buffers.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("vulkan: create buffer: %w", err)
	}
	buf.Memory = make([]byte, info.Size)
	copy(buf.Memory, info.Data)
	info.Data = nil
	buf.BufferBase = render.BufferBase{ObjectBase: obj, Info: info}
	return key, nil
}

func (d *Device) DeleteBuffer(key pool.Key) { d.buffers.Free(key) }

func (d *Device) Buffer(key pool.Key) *render.BufferBase {
	if buf := d.buffers.Get(key); buf != nil {
		return &buf.BufferBase
	}
	return nil
}

// BufferMemory returns the host copy of a buffer's contents.
func (d *Device) BufferMemory(key pool.Key) []byte {
	if buf := d.buffers.Get(key); buf != nil {
		return buf.Memory
	}
	return nil
}

func (d *Device) SetBufferData(key pool.Key, offset uint32, data []byte) error {
	buf := d.buffers.Get(key)
	if buf == nil {
		return errNotStarted
	}
	copy(buf.Memory[offset:], data)
	return nil
}

// CreateShader compiles WGSL modules to SPIR-V. GLSL sources are kept as
// text; they would need an external GLSL to SPIR-V compiler.
func (d *Device) CreateShader(obj render.ObjectBase, info render.ShaderInfo, module *render.ShaderModule) (pool.Key, error) {
	var code []byte
	if module != nil {
		var err error
		if code, err = module.SPIRV(); err != nil {
			return pool.Key{}, fmt.Errorf("vulkan: create shader module: %w", err)
		}
	}
	key, sm, err := d.shaders.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("vulkan: create shader module: %w", err)
	}
	sm.ShaderBase = render.ShaderBase{ObjectBase: obj, Info: info, Module: module}
	sm.Code = code
	return key, nil
}

func (d *Device) DeleteShader(key pool.Key) { d.shaders.Free(key) }

func (d *Device) Shader(key pool.Key) *render.ShaderBase {
	if sm := d.shaders.Get(key); sm != nil {
		return &sm.ShaderBase
	}
	return nil
}

// ShaderCode returns the SPIR-V of a shader, nil for GLSL shaders.
func (d *Device) ShaderCode(key pool.Key) []byte {
	if sm := d.shaders.Get(key); sm != nil {
		return sm.Code
	}
	return nil
}

func (d *Device) CreateBindingGroupLayout(obj render.ObjectBase, info render.BindingGroupLayoutInfo) (pool.Key, error) {
	key, l, err := d.setLayouts.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("vulkan: create descriptor set layout: %w", err)
	}
	l.BindingGroupLayoutBase = render.BindingGroupLayoutBase{ObjectBase: obj, Info: info}
	l.Bindings = make([]DescriptorBinding, len(info.Bindings))
	for i, b := range info.Bindings {
		l.Bindings[i] = DescriptorBinding{Binding: uint32(i), Type: descriptorType(b.Type), Count: b.ArraySize()}
	}
	return key, nil
}

func (d *Device) DeleteBindingGroupLayout(key pool.Key) { d.setLayouts.Free(key) }

func (d *Device) BindingGroupLayout(key pool.Key) *render.BindingGroupLayoutBase {
	if l := d.setLayouts.Get(key); l != nil {
		return &l.BindingGroupLayoutBase
	}
	return nil
}

func (d *Device) CreateBindingGroup(obj render.ObjectBase, layout render.BindingGroupLayoutInfo) (pool.Key, error) {
	key, set, err := d.sets.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("vulkan: allocate descriptor set: %w", err)
	}
	set.BindingGroupBase = render.NewBindingGroupBase(obj, layout)
	return key, nil
}

func (d *Device) DeleteBindingGroup(key pool.Key) { d.sets.Free(key) }

func (d *Device) BindingGroup(key pool.Key) *render.BindingGroupBase {
	if set := d.sets.Get(key); set != nil {
		return &set.BindingGroupBase
	}
	return nil
}

func (d *Device) CreatePass(obj render.ObjectBase, info render.PassInfo) (pool.Key, error) {
	key, rp, err := d.renderPasses.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("vulkan: create render pass: %w", err)
	}
	rp.PassBase = render.PassBase{ObjectBase: obj, Info: info}
	return key, nil
}

func (d *Device) DeletePass(key pool.Key) { d.renderPasses.Free(key) }

func (d *Device) Pass(key pool.Key) *render.PassBase {
	if rp := d.renderPasses.Get(key); rp != nil {
		return &rp.PassBase
	}
	return nil
}

func (d *Device) CreateFrameBuffer(obj render.ObjectBase, info render.FrameBufferInfo) (pool.Key, error) {
	key, fb, err := d.framebuffers.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("vulkan: create framebuffer: %w", err)
	}
	fb.FrameBufferBase = render.FrameBufferBase{ObjectBase: obj, Info: info}
	return key, nil
}

func (d *Device) DeleteFrameBuffer(key pool.Key) { d.framebuffers.Free(key) }

func (d *Device) FrameBuffer(key pool.Key) *render.FrameBufferBase {
	if fb := d.framebuffers.Get(key); fb != nil {
		return &fb.FrameBufferBase
	}
	return nil
}

func (d *Device) InvalidateFrameBuffer(key pool.Key, info render.FrameBufferInfo) error {
	fb := d.framebuffers.Get(key)
	if fb == nil {
		return errNotStarted
	}
	fb.Info = info
	fb.Rebuilds++
	return nil
}

func (d *Device) CreatePipeline(obj render.ObjectBase, info render.PipelineInfo, layouts []render.BindingGroupLayoutInfo) (pool.Key, error) {
	key, p, err := d.pipelines.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("vulkan: create graphics pipeline: %w", err)
	}
	p.PipelineBase = render.PipelineBase{ObjectBase: obj, Info: info, GroupLayouts: layouts}
	p.Bindings, p.Attributes = vertexInput(info.VertexLayout)
	return key, nil
}

func (d *Device) DeletePipeline(key pool.Key) { d.pipelines.Free(key) }

func (d *Device) Pipeline(key pool.Key) *render.PipelineBase {
	if p := d.pipelines.Get(key); p != nil {
		return &p.PipelineBase
	}
	return nil
}

// VertexInput returns the vertex input state derived for a pipeline.
func (d *Device) VertexInput(key pool.Key) ([]VertexBinding, []VertexAttribute) {
	if p := d.pipelines.Get(key); p != nil {
		return p.Bindings, p.Attributes
	}
	return nil, nil
}

func (d *Device) BeginFrame() error {
	d.cmd.Begin()
	d.framesStarted++
	return nil
}

func (d *Device) EndFrame() error {
	d.cmd.End()
	d.framesEnded++
	return nil
}

func (d *Device) BeginRenderPass(pass pool.Key, fb pool.Key, clear []core.ClearValue) error {
	var fbID uint64
	if f := d.framebuffers.Get(fb); f != nil {
		fbID = f.ID
	}
	d.cmd.BeginRenderPass(d.renderPasses.Get(pass).ID, fbID, clear)
	return nil
}

func (d *Device) EndRenderPass() error {
	d.cmd.EndRenderPass()
	return nil
}

func (d *Device) SetPipeline(key pool.Key) error {
	d.cmd.BindPipeline(d.pipelines.Get(key).ID)
	return nil
}

func (d *Device) SetBindingGroup(slot int, key pool.Key) error {
	d.cmd.BindDescriptorSet(slot, d.sets.Get(key).ID)
	return nil
}

func (d *Device) SetVertexBuffer(slot int, key pool.Key) error {
	d.cmd.BindVertexBuffer(slot, d.buffers.Get(key).ID)
	return nil
}

func (d *Device) SetIndexBuffer(key pool.Key, indexType render.IndexType) error {
	d.cmd.BindIndexBuffer(d.buffers.Get(key).ID, indexType)
	return nil
}

func (d *Device) DrawVertex(info render.DrawVertexInfo) error {
	d.cmd.Draw(info.VertexCount, info.Instances(), info.VertexStart, info.InstanceStart)
	return nil
}

func (d *Device) DrawIndexed(info render.DrawIndexedInfo) error {
	d.cmd.DrawIndexed(info.IndexCount, info.Instances(), info.IndexStart, info.InstanceStart)
	return nil
}

func (d *Device) SetScissor(r *core.Rect) error {
	d.cmd.SetScissor(r)
	return nil
}

func (d *Device) ResizeViewport(width, height uint32) error {
	d.viewport = core.Viewport{Width: float32(width), Height: float32(height), MaxDepth: 1}
	d.cmd.SetViewport(d.viewport)
	return nil
}

func (d *Device) SwapChainTextureFormat() render.Format { return surfaceFormat }

func (d *Device) SwapChainPass() pool.Key { return d.swapPass }

// SwapChainFrameBuffer returns the zero key: the stub has no surface images
// and records swap chain passes against frame buffer 0.
func (d *Device) SwapChainFrameBuffer() pool.Key { return pool.Key{} }
