package render

import (
	"fmt"

	"github.com/x2w-rook/Ludens-sub001/core"
	"github.com/x2w-rook/Ludens-sub001/internal/shaderc"
	"github.com/x2w-rook/Ludens-sub001/internal/uid"
)

// DeviceInfo configures CreateRenderDevice.
type DeviceInfo struct {
	// Backend selects the registered backend. BackendNone uses Config.Backend.
	Backend BackendKind
	Config  Config
	// Callback receives every Result produced by the device, successful or
	// not. When nil, failed results are logged at warn level.
	Callback func(Result)
}

// Device is a handle to a render device. All resource and command
// operations are methods on it. A Device must only be used from one
// goroutine at a time.
type Device struct {
	id  uint64
	dev *device
}

type device struct {
	id       uint64
	backend  Backend
	kind     BackendKind
	cfg      Config
	callback func(Result)

	pipeline    Pipeline
	indexBuffer Buffer
	pass        Pass
	scissors    []core.Rect
	extent      core.Extent
	stats       *DrawStats
}

// ID returns the device identifier, zero for an unbound handle.
func (d Device) ID() uint64 { return d.id }

// IsValid reports whether d refers to a live device.
func (d Device) IsValid() bool { return d.live() != nil }

// Backend returns the kind of backend driving the device.
func (d Device) Backend() BackendKind {
	if dev := d.live(); dev != nil {
		return dev.kind
	}
	return BackendNone
}

// Config returns the configuration the device was created with.
func (d Device) Config() Config {
	if dev := d.live(); dev != nil {
		return dev.cfg
	}
	return Config{}
}

func (d Device) live() *device {
	if d.dev == nil || d.dev.backend == nil || d.dev.id != d.id {
		return nil
	}
	return d.dev
}

// CreateRenderDevice creates a device on the backend registered for
// info.Backend (or info.Config.Backend). Backend packages register
// themselves when imported.
func CreateRenderDevice(d *Device, info DeviceInfo) Result {
	if d == nil || d.id != 0 {
		return report(info.Callback, invalidHandle())
	}
	cfg := info.Config
	cfg.normalize()

	kind := info.Backend
	if kind == BackendNone {
		var err error
		if kind, err = cfg.BackendKind(); err != nil {
			return report(info.Callback, Fail(ResourceDevice, err))
		}
	}
	backend, err := newBackend(kind)
	if err != nil {
		return report(info.Callback, Fail(ResourceDevice, err))
	}
	return CreateRenderDeviceWith(d, info, backend)
}

// CreateRenderDeviceWith creates a device driven by an already constructed
// backend, bypassing the registry.
func CreateRenderDeviceWith(d *Device, info DeviceInfo, backend Backend) Result {
	if d == nil || d.id != 0 || backend == nil {
		return report(info.Callback, invalidHandle())
	}
	cfg := info.Config
	cfg.normalize()
	cfg.Backend = backend.Kind().String()

	dev := &device{
		id:       uid.Next(),
		backend:  backend,
		kind:     backend.Kind(),
		cfg:      cfg,
		callback: info.Callback,
	}
	h := Device{id: dev.id, dev: dev}
	if err := backend.Startup(h, cfg); err != nil {
		return report(info.Callback, Fail(ResourceDevice, fmt.Errorf("start %s backend: %w", dev.kind, err)))
	}
	*d = h
	Logger().Info("render: device created", "device", dev.id, "backend", dev.kind)
	return dev.report(okResult())
}

// DeleteRenderDevice destroys the device and every object still alive on it.
func DeleteRenderDevice(d *Device) Result {
	if d == nil {
		return invalidHandle()
	}
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	dev.backend.WaitIdle()
	dev.backend.Cleanup()
	dev.backend = nil
	dev.stats = nil
	d.id = 0
	d.dev = nil
	Logger().Info("render: device deleted", "device", dev.id)
	return dev.report(okResult())
}

func report(callback func(Result), res Result) Result {
	if callback != nil {
		callback(res)
	} else if !res.OK() {
		Logger().Warn("render: operation failed", "result", res.Kind.String(), "err", res.Error())
	}
	return res
}

func (dev *device) report(res Result) Result {
	return report(dev.callback, res)
}

func (dev *device) newObject() ObjectBase {
	return ObjectBase{
		ID:      uid.Next(),
		Backend: dev.kind,
		Device:  Device{id: dev.id, dev: dev},
	}
}

// Resolvers return nil for zero, stale or foreign handles.

func (dev *device) texture(h Texture) *TextureBase {
	if !h.IsValid() {
		return nil
	}
	if t := dev.backend.Texture(h.key); t != nil && t.matches(h.id, dev.kind) {
		return t
	}
	return nil
}

func (dev *device) buffer(h Buffer) *BufferBase {
	if !h.IsValid() {
		return nil
	}
	if b := dev.backend.Buffer(h.key); b != nil && b.matches(h.id, dev.kind) {
		return b
	}
	return nil
}

func (dev *device) shader(h Shader) *ShaderBase {
	if !h.IsValid() {
		return nil
	}
	if s := dev.backend.Shader(h.key); s != nil && s.matches(h.id, dev.kind) {
		return s
	}
	return nil
}

func (dev *device) bindingGroupLayout(h BindingGroupLayout) *BindingGroupLayoutBase {
	if !h.IsValid() {
		return nil
	}
	if l := dev.backend.BindingGroupLayout(h.key); l != nil && l.matches(h.id, dev.kind) {
		return l
	}
	return nil
}

func (dev *device) bindingGroup(h BindingGroup) *BindingGroupBase {
	if !h.IsValid() {
		return nil
	}
	if g := dev.backend.BindingGroup(h.key); g != nil && g.matches(h.id, dev.kind) {
		return g
	}
	return nil
}

func (dev *device) renderPass(h Pass) *PassBase {
	if !h.IsValid() {
		return nil
	}
	if p := dev.backend.Pass(h.key); p != nil && p.matches(h.id, dev.kind) {
		return p
	}
	return nil
}

func (dev *device) frameBuffer(h FrameBuffer) *FrameBufferBase {
	if !h.IsValid() {
		return nil
	}
	if f := dev.backend.FrameBuffer(h.key); f != nil && f.matches(h.id, dev.kind) {
		return f
	}
	return nil
}

func (dev *device) pipelineBase(h Pipeline) *PipelineBase {
	if !h.IsValid() {
		return nil
	}
	if p := dev.backend.Pipeline(h.key); p != nil && p.matches(h.id, dev.kind) {
		return p
	}
	return nil
}

// CreateTexture creates a texture. Data, when given, must hold exactly
// Width*Height texels of Format (times layers or faces).
func (d Device) CreateTexture(texture *Texture, info TextureInfo) Result {
	dev := d.live()
	if dev == nil || texture == nil {
		return invalidHandle()
	}
	if texture.IsValid() {
		return dev.report(invalidHandle())
	}
	if info.Data != nil {
		expect, actual := info.DataSize(), uint64(len(info.Data))
		if expect != actual {
			return dev.report(textureSizeMismatch(expect, actual))
		}
	}

	obj := dev.newObject()
	key, err := dev.backend.CreateTexture(obj, info)
	if err != nil {
		return dev.report(Fail(ResourceTexture, err))
	}
	texture.bind(obj.ID, key)
	Logger().Debug("render: texture created", "id", obj.ID, "format", info.Format.String(),
		"width", info.Width, "height", info.Height)
	return dev.report(okResult())
}

func (d Device) DeleteTexture(texture *Texture) Result {
	dev := d.live()
	if dev == nil || texture == nil {
		return invalidHandle()
	}
	if dev.texture(*texture) == nil {
		return dev.report(invalidHandle())
	}
	dev.backend.DeleteTexture(texture.key)
	texture.Reset()
	return dev.report(okResult())
}

// TextureInfo returns the creation info of a texture, without its data.
func (d Device) TextureInfo(texture Texture) (TextureInfo, Result) {
	dev := d.live()
	if dev == nil {
		return TextureInfo{}, invalidHandle()
	}
	t := dev.texture(texture)
	if t == nil {
		return TextureInfo{}, dev.report(invalidHandle())
	}
	info := t.Info
	info.Data = nil
	return info, okResult()
}

// CreateBuffer creates a buffer. A zero Size takes the length of Data.
func (d Device) CreateBuffer(buffer *Buffer, info BufferInfo) Result {
	dev := d.live()
	if dev == nil || buffer == nil {
		return invalidHandle()
	}
	if buffer.IsValid() {
		return dev.report(invalidHandle())
	}
	if info.Size == 0 {
		info.Size = uint32(len(info.Data))
	}
	if info.Size == 0 || uint64(len(info.Data)) > uint64(info.Size) {
		return dev.report(invalidIndex())
	}

	obj := dev.newObject()
	key, err := dev.backend.CreateBuffer(obj, info)
	if err != nil {
		return dev.report(Fail(ResourceBuffer, err))
	}
	buffer.bind(obj.ID, key)
	Logger().Debug("render: buffer created", "id", obj.ID, "type", info.Type.String(), "size", info.Size)
	return dev.report(okResult())
}

// DeleteBuffer deletes a buffer. If it is the bound index buffer, that
// binding is cleared.
func (d Device) DeleteBuffer(buffer *Buffer) Result {
	dev := d.live()
	if dev == nil || buffer == nil {
		return invalidHandle()
	}
	if dev.buffer(*buffer) == nil {
		return dev.report(invalidHandle())
	}
	if dev.indexBuffer.id == buffer.id {
		dev.indexBuffer.Reset()
	}
	dev.backend.DeleteBuffer(buffer.key)
	buffer.Reset()
	return dev.report(okResult())
}

// SetBufferData overwrites part of a buffer starting at offset.
func (d Device) SetBufferData(buffer Buffer, offset uint32, data []byte) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	b := dev.buffer(buffer)
	if b == nil {
		return dev.report(invalidHandle())
	}
	if uint64(offset)+uint64(len(data)) > uint64(b.Info.Size) {
		return dev.report(invalidIndex())
	}
	if err := dev.backend.SetBufferData(buffer.key, offset, data); err != nil {
		return dev.report(Fail(ResourceBuffer, err))
	}
	return dev.report(okResult())
}

// BufferInfo returns the creation info of a buffer, without its data.
func (d Device) BufferInfo(buffer Buffer) (BufferInfo, Result) {
	dev := d.live()
	if dev == nil {
		return BufferInfo{}, invalidHandle()
	}
	b := dev.buffer(buffer)
	if b == nil {
		return BufferInfo{}, dev.report(invalidHandle())
	}
	info := b.Info
	info.Data = nil
	return info, okResult()
}

// CreateShader creates a shader. WGSL sources are parsed up front and the
// selected entry point must match info.Type.
func (d Device) CreateShader(shader *Shader, info ShaderInfo) Result {
	dev := d.live()
	if dev == nil || shader == nil {
		return invalidHandle()
	}
	if shader.IsValid() {
		return dev.report(invalidHandle())
	}

	var module *ShaderModule
	if info.Language == ShaderWGSL {
		var err error
		if module, err = shaderc.Parse(info.Source); err != nil {
			return dev.report(Fail(ResourceShader, err))
		}
		want := shaderc.StageVertex
		if info.Type == ShaderFragment {
			want = shaderc.StageFragment
		}
		ep, err := module.EntryPoint(info.EntryPoint, want)
		if err != nil && info.EntryPoint == "" && len(module.EntryPoints) == 1 {
			ep, err = module.EntryPoints[0], nil
		}
		if err != nil {
			return dev.report(Fail(ResourceShader, err))
		}
		switch ep.Stage {
		case shaderc.StageVertex, shaderc.StageFragment:
			if actual := ShaderType(ep.Stage); actual != info.Type {
				return dev.report(shaderTypeMismatch(info.Type, actual))
			}
		default:
			return dev.report(Fail(ResourceShader, fmt.Errorf("entry point %q is a %s shader", ep.Name, ep.Stage)))
		}
		info.EntryPoint = ep.Name
	}

	obj := dev.newObject()
	key, err := dev.backend.CreateShader(obj, info, module)
	if err != nil {
		return dev.report(Fail(ResourceShader, err))
	}
	shader.bind(obj.ID, key)
	Logger().Debug("render: shader created", "id", obj.ID, "type", info.Type.String())
	return dev.report(okResult())
}

func (d Device) DeleteShader(shader *Shader) Result {
	dev := d.live()
	if dev == nil || shader == nil {
		return invalidHandle()
	}
	if dev.shader(*shader) == nil {
		return dev.report(invalidHandle())
	}
	dev.backend.DeleteShader(shader.key)
	shader.Reset()
	return dev.report(okResult())
}

func (d Device) CreateBindingGroupLayout(layout *BindingGroupLayout, info BindingGroupLayoutInfo) Result {
	dev := d.live()
	if dev == nil || layout == nil {
		return invalidHandle()
	}
	if layout.IsValid() {
		return dev.report(invalidHandle())
	}
	info.Bindings = append([]BindingInfo(nil), info.Bindings...)

	obj := dev.newObject()
	key, err := dev.backend.CreateBindingGroupLayout(obj, info)
	if err != nil {
		return dev.report(Fail(ResourceBindingGroupLayout, err))
	}
	layout.bind(obj.ID, key)
	return dev.report(okResult())
}

func (d Device) DeleteBindingGroupLayout(layout *BindingGroupLayout) Result {
	dev := d.live()
	if dev == nil || layout == nil {
		return invalidHandle()
	}
	if dev.bindingGroupLayout(*layout) == nil {
		return dev.report(invalidHandle())
	}
	dev.backend.DeleteBindingGroupLayout(layout.key)
	layout.Reset()
	return dev.report(okResult())
}

// CreateBindingGroup creates an empty group for info.Layout. Resources are
// attached with BindGroupTexture and BindGroupUniformBuffer.
func (d Device) CreateBindingGroup(group *BindingGroup, info BindingGroupInfo) Result {
	dev := d.live()
	if dev == nil || group == nil {
		return invalidHandle()
	}
	if group.IsValid() {
		return dev.report(invalidHandle())
	}
	layout := dev.bindingGroupLayout(info.Layout)
	if layout == nil {
		return dev.report(invalidHandle())
	}

	obj := dev.newObject()
	key, err := dev.backend.CreateBindingGroup(obj, layout.Info)
	if err != nil {
		return dev.report(Fail(ResourceBindingGroup, err))
	}
	group.bind(obj.ID, key)
	return dev.report(okResult())
}

func (d Device) DeleteBindingGroup(group *BindingGroup) Result {
	dev := d.live()
	if dev == nil || group == nil {
		return invalidHandle()
	}
	if dev.bindingGroup(*group) == nil {
		return dev.report(invalidHandle())
	}
	dev.backend.DeleteBindingGroup(group.key)
	group.Reset()
	return dev.report(okResult())
}

// BindGroupTexture stores texture at element arrayIndex of a texture
// binding. The change is seen by the backend at the next SetBindingGroup.
func (d Device) BindGroupTexture(group BindingGroup, binding uint32, texture Texture, arrayIndex uint32) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	g := dev.bindingGroup(group)
	if g == nil {
		return dev.report(invalidHandle())
	}
	if int(binding) >= len(g.Layout.Bindings) {
		return dev.report(invalidIndex())
	}
	b := g.Layout.Bindings[binding]
	if b.Type != BindingTexture {
		return dev.report(Result{Kind: BindingMismatch})
	}
	if arrayIndex >= b.ArraySize() {
		return dev.report(invalidIndex())
	}
	if dev.texture(texture) == nil {
		return dev.report(invalidHandle())
	}
	g.Textures[binding][arrayIndex] = texture
	return dev.report(okResult())
}

// BindGroupUniformBuffer stores a uniform buffer at a uniform binding.
func (d Device) BindGroupUniformBuffer(group BindingGroup, binding uint32, buffer Buffer) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	g := dev.bindingGroup(group)
	if g == nil {
		return dev.report(invalidHandle())
	}
	if int(binding) >= len(g.Layout.Bindings) {
		return dev.report(invalidIndex())
	}
	if g.Layout.Bindings[binding].Type != BindingUniformBuffer {
		return dev.report(Result{Kind: BindingMismatch})
	}
	b := dev.buffer(buffer)
	if b == nil {
		return dev.report(invalidHandle())
	}
	if b.Info.Type != BufferUniform {
		return dev.report(bufferTypeMismatch(BufferUniform, b.Info.Type))
	}
	g.UniformBuffers[binding] = buffer
	return dev.report(okResult())
}

func (d Device) CreatePass(pass *Pass, info PassInfo) Result {
	dev := d.live()
	if dev == nil || pass == nil {
		return invalidHandle()
	}
	if pass.IsValid() {
		return dev.report(invalidHandle())
	}
	info.Attachments = append([]PassAttachment(nil), info.Attachments...)

	obj := dev.newObject()
	key, err := dev.backend.CreatePass(obj, info)
	if err != nil {
		return dev.report(Fail(ResourcePass, err))
	}
	pass.bind(obj.ID, key)
	return dev.report(okResult())
}

func (d Device) DeletePass(pass *Pass) Result {
	dev := d.live()
	if dev == nil || pass == nil {
		return invalidHandle()
	}
	if dev.renderPass(*pass) == nil || pass.key == dev.backend.SwapChainPass() {
		return dev.report(invalidHandle())
	}
	dev.backend.DeletePass(pass.key)
	pass.Reset()
	return dev.report(okResult())
}

func (dev *device) checkFrameBufferInfo(info FrameBufferInfo) Result {
	expect := uint64(info.Width) * uint64(info.Height)
	check := func(h Texture) Result {
		if !h.IsValid() {
			return resourceMissing(ResourceTexture)
		}
		t := dev.texture(h)
		if t == nil {
			return invalidHandle()
		}
		if actual := uint64(t.Info.Width) * uint64(t.Info.Height); actual != expect {
			return textureSizeMismatch(expect, actual)
		}
		return okResult()
	}
	for _, h := range info.ColorAttachments {
		if res := check(h); !res.OK() {
			return res
		}
	}
	if info.DepthStencilAttachment.IsValid() {
		if res := check(info.DepthStencilAttachment); !res.OK() {
			return res
		}
	}
	if info.Pass.IsValid() && dev.renderPass(info.Pass) == nil {
		return invalidHandle()
	}
	return okResult()
}

// CreateFrameBuffer creates a frame buffer over existing textures. The frame
// buffer does not own its attachments; delete them separately.
func (d Device) CreateFrameBuffer(frameBuffer *FrameBuffer, info FrameBufferInfo) Result {
	dev := d.live()
	if dev == nil || frameBuffer == nil {
		return invalidHandle()
	}
	if frameBuffer.IsValid() {
		return dev.report(invalidHandle())
	}
	if res := dev.checkFrameBufferInfo(info); !res.OK() {
		return dev.report(res)
	}
	info.ColorAttachments = append([]Texture(nil), info.ColorAttachments...)

	obj := dev.newObject()
	key, err := dev.backend.CreateFrameBuffer(obj, info)
	if err != nil {
		return dev.report(Fail(ResourceFrameBuffer, err))
	}
	frameBuffer.bind(obj.ID, key)
	return dev.report(okResult())
}

func (d Device) DeleteFrameBuffer(frameBuffer *FrameBuffer) Result {
	dev := d.live()
	if dev == nil || frameBuffer == nil {
		return invalidHandle()
	}
	if dev.frameBuffer(*frameBuffer) == nil {
		return dev.report(invalidHandle())
	}
	dev.backend.DeleteFrameBuffer(frameBuffer.key)
	frameBuffer.Reset()
	return dev.report(okResult())
}

// InvalidateFrameBuffer rebuilds a frame buffer from new info, typically
// after its attachments were recreated at a new size. The handle stays
// valid and keeps its id. Attachments no longer referenced are not deleted.
func (d Device) InvalidateFrameBuffer(frameBuffer FrameBuffer, info FrameBufferInfo) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if dev.frameBuffer(frameBuffer) == nil {
		return dev.report(invalidHandle())
	}
	if res := dev.checkFrameBufferInfo(info); !res.OK() {
		return dev.report(res)
	}
	info.ColorAttachments = append([]Texture(nil), info.ColorAttachments...)
	if err := dev.backend.InvalidateFrameBuffer(frameBuffer.key, info); err != nil {
		return dev.report(Fail(ResourceFrameBuffer, err))
	}
	return dev.report(okResult())
}

// FrameBufferColorAttachment returns color attachment index of a frame buffer.
func (d Device) FrameBufferColorAttachment(frameBuffer FrameBuffer, index int) (Texture, Result) {
	dev := d.live()
	if dev == nil {
		return Texture{}, invalidHandle()
	}
	fb := dev.frameBuffer(frameBuffer)
	if fb == nil {
		return Texture{}, dev.report(invalidHandle())
	}
	if index < 0 || index >= len(fb.Info.ColorAttachments) {
		return Texture{}, dev.report(invalidIndex())
	}
	return fb.Info.ColorAttachments[index], okResult()
}

// FrameBufferDepthStencilAttachment returns the depth-stencil attachment, or
// ResourceMissing when the frame buffer has none.
func (d Device) FrameBufferDepthStencilAttachment(frameBuffer FrameBuffer) (Texture, Result) {
	dev := d.live()
	if dev == nil {
		return Texture{}, invalidHandle()
	}
	fb := dev.frameBuffer(frameBuffer)
	if fb == nil {
		return Texture{}, dev.report(invalidHandle())
	}
	if !fb.Info.DepthStencilAttachment.IsValid() {
		return Texture{}, dev.report(resourceMissing(ResourceTexture))
	}
	return fb.Info.DepthStencilAttachment, okResult()
}

// CreatePipeline validates the shaders and layouts and creates a pipeline.
func (d Device) CreatePipeline(pipeline *Pipeline, info PipelineInfo) Result {
	dev := d.live()
	if dev == nil || pipeline == nil {
		return invalidHandle()
	}
	if pipeline.IsValid() {
		return dev.report(invalidHandle())
	}
	if !info.VertexShader.IsValid() || !info.FragmentShader.IsValid() {
		return dev.report(resourceMissing(ResourceShader))
	}
	vs, fs := dev.shader(info.VertexShader), dev.shader(info.FragmentShader)
	if vs == nil || fs == nil {
		return dev.report(invalidHandle())
	}
	if vs.Info.Type != ShaderVertex {
		return dev.report(shaderTypeMismatch(ShaderVertex, vs.Info.Type))
	}
	if fs.Info.Type != ShaderFragment {
		return dev.report(shaderTypeMismatch(ShaderFragment, fs.Info.Type))
	}
	layouts := make([]BindingGroupLayoutInfo, len(info.Layout.GroupLayouts))
	for i, h := range info.Layout.GroupLayouts {
		l := dev.bindingGroupLayout(h)
		if l == nil {
			return dev.report(invalidHandle())
		}
		layouts[i] = l.Info
	}
	if info.Pass.IsValid() && dev.renderPass(info.Pass) == nil {
		return dev.report(invalidHandle())
	}
	info.Layout.GroupLayouts = append([]BindingGroupLayout(nil), info.Layout.GroupLayouts...)
	info.VertexLayout.Slots = append([]VertexBufferSlot(nil), info.VertexLayout.Slots...)
	for i := range info.VertexLayout.Slots {
		s := &info.VertexLayout.Slots[i]
		s.Attributes = append([]VertexAttribute(nil), s.Attributes...)
	}

	obj := dev.newObject()
	key, err := dev.backend.CreatePipeline(obj, info, layouts)
	if err != nil {
		return dev.report(Fail(ResourcePipeline, err))
	}
	pipeline.bind(obj.ID, key)
	Logger().Debug("render: pipeline created", "id", obj.ID, "name", info.Name)
	return dev.report(okResult())
}

// DeletePipeline deletes a pipeline, unbinding it first if it is bound.
func (d Device) DeletePipeline(pipeline *Pipeline) Result {
	dev := d.live()
	if dev == nil || pipeline == nil {
		return invalidHandle()
	}
	if dev.pipelineBase(*pipeline) == nil {
		return dev.report(invalidHandle())
	}
	if dev.pipeline.id == pipeline.id {
		dev.pipeline.Reset()
		dev.indexBuffer.Reset()
	}
	dev.backend.DeletePipeline(pipeline.key)
	pipeline.Reset()
	return dev.report(okResult())
}
