package vulkan

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x2w-rook/Ludens-sub001/core"
	"github.com/x2w-rook/Ludens-sub001/render"
)

const quadShader = `
@vertex
fn vs_main(@location(0) pos : vec2<f32>) -> @builtin(position) vec4<f32> {
  return vec4<f32>(pos, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
  return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

func newDevice(t *testing.T) (render.Device, *Device) {
	t.Helper()
	backend := NewDevice()
	var dev render.Device
	res := render.CreateRenderDeviceWith(&dev, render.DeviceInfo{Config: render.DefaultConfig()}, backend)
	require.True(t, res.OK(), res.Error())
	t.Cleanup(func() { render.DeleteRenderDevice(&dev) })
	return dev, backend
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, render.Backends(), render.BackendVulkan)

	var dev render.Device
	res := render.CreateRenderDevice(&dev, render.DeviceInfo{Backend: render.BackendVulkan})
	require.True(t, res.OK(), res.Error())
	assert.Equal(t, render.BackendVulkan, dev.Backend())
	assert.Equal(t, "vulkan", dev.Config().Backend)
	assert.True(t, render.DeleteRenderDevice(&dev).OK())
}

func TestBufferMemory(t *testing.T) {
	dev, backend := newDevice(t)

	var buf render.Buffer
	require.True(t, dev.CreateBuffer(&buf, render.BufferInfo{
		Type: render.BufferUniform,
		Size: 16,
		Data: []byte{1, 2, 3, 4},
	}).OK())

	mem := backend.BufferMemory(buf.Key())
	require.Len(t, mem, 16)
	assert.Equal(t, []byte{1, 2, 3, 4}, mem[:4])

	require.True(t, dev.SetBufferData(buf, 8, []byte{9, 9}).OK())
	assert.Equal(t, []byte{9, 9}, backend.BufferMemory(buf.Key())[8:10])

	info, res := dev.BufferInfo(buf)
	require.True(t, res.OK())
	assert.Nil(t, info.Data)
	assert.Equal(t, uint32(16), info.Size)
}

func TestShaderCompiledToSPIRV(t *testing.T) {
	dev, backend := newDevice(t)

	var vs, glslShader render.Shader
	require.True(t, dev.CreateShader(&vs, render.ShaderInfo{
		Type:     render.ShaderVertex,
		Language: render.ShaderWGSL,
		Source:   quadShader,
	}).OK())
	code := backend.ShaderCode(vs.Key())
	require.GreaterOrEqual(t, len(code), 4)
	assert.Equal(t, uint32(0x07230203), binary.LittleEndian.Uint32(code))

	require.True(t, dev.CreateShader(&glslShader, render.ShaderInfo{
		Type:     render.ShaderFragment,
		Language: render.ShaderGLSL,
		Source:   "#version 410 core\nvoid main() {}\n",
	}).OK())
	assert.Nil(t, backend.ShaderCode(glslShader.Key()))
}

func TestVertexInput(t *testing.T) {
	dev, backend := newDevice(t)

	var vs, fs render.Shader
	require.True(t, dev.CreateShader(&vs, render.ShaderInfo{Type: render.ShaderVertex, Language: render.ShaderWGSL, Source: quadShader}).OK())
	require.True(t, dev.CreateShader(&fs, render.ShaderInfo{Type: render.ShaderFragment, Language: render.ShaderWGSL, Source: quadShader}).OK())

	var p render.Pipeline
	require.True(t, dev.CreatePipeline(&p, render.PipelineInfo{
		VertexShader:   vs,
		FragmentShader: fs,
		VertexLayout: render.VertexLayout{Slots: []render.VertexBufferSlot{
			{Attributes: []render.VertexAttribute{{Location: 0, Type: render.DataVec2}, {Location: 1, Type: render.DataVec3}}},
			{Attributes: []render.VertexAttribute{{Location: 2, Type: render.DataVec4}}, PollRate: render.PollPerInstance},
		}},
	}).OK())

	bindings, attrs := backend.VertexInput(p.Key())
	assert.Equal(t, []VertexBinding{
		{Binding: 0, Stride: 20, InputRate: InputRateVertex},
		{Binding: 1, Stride: 16, InputRate: InputRateInstance},
	}, bindings)
	require.Len(t, attrs, 3)
	assert.Equal(t, uint32(8), attrs[1].Offset)
	assert.Equal(t, uint32(1), attrs[2].Binding)
	assert.Equal(t, uint32(0), attrs[2].Offset)
}

func TestRecordsFrame(t *testing.T) {
	dev, backend := newDevice(t)

	var vs, fs render.Shader
	require.True(t, dev.CreateShader(&vs, render.ShaderInfo{Type: render.ShaderVertex, Language: render.ShaderWGSL, Source: quadShader}).OK())
	require.True(t, dev.CreateShader(&fs, render.ShaderInfo{Type: render.ShaderFragment, Language: render.ShaderWGSL, Source: quadShader}).OK())

	var pass render.Pass
	require.True(t, dev.CreatePass(&pass, render.PassInfo{Attachments: []render.PassAttachment{
		{Format: render.FormatBGRA8, LoadOp: render.LoadClear, StoreOp: render.StoreStore},
	}}).OK())

	var p render.Pipeline
	require.True(t, dev.CreatePipeline(&p, render.PipelineInfo{
		VertexShader:   vs,
		FragmentShader: fs,
		VertexLayout: render.VertexLayout{Slots: []render.VertexBufferSlot{
			{Attributes: []render.VertexAttribute{{Location: 0, Type: render.DataVec2}}},
		}},
	}).OK())

	var vbo render.Buffer
	require.True(t, dev.CreateBuffer(&vbo, render.BufferInfo{Type: render.BufferVertex, Size: 24}).OK())

	require.True(t, dev.BeginFrame().OK())
	assert.True(t, backend.Commands().Recording())
	require.True(t, dev.BeginRenderPass(render.RenderPassBeginInfo{
		Pass:        pass,
		ClearValues: []core.ClearValue{core.ClearColor(core.ColorBlack)},
	}).OK())
	require.True(t, dev.SetPipeline(p).OK())
	require.True(t, dev.SetVertexBuffer(0, vbo).OK())
	require.True(t, dev.PushScissor(core.Rect{Width: 10, Height: 10}).OK())
	require.True(t, dev.DrawVertex(render.DrawVertexInfo{VertexCount: 3}).OK())
	require.True(t, dev.PopScissor().OK())
	require.True(t, dev.EndRenderPass().OK())
	require.True(t, dev.EndFrame().OK())

	cmds := backend.Commands().Commands
	ops := make([]Op, len(cmds))
	for i, c := range cmds {
		ops[i] = c.Op
	}
	assert.Equal(t, []Op{
		OpBeginRenderPass, OpBindPipeline, OpBindVertexBuffer,
		OpSetScissor, OpDraw, OpSetScissor, OpEndRenderPass,
	}, ops)

	assert.Equal(t, pass.ID(), cmds[0].Object)
	assert.Zero(t, cmds[0].FrameBuffer)
	require.Len(t, cmds[0].ClearValues, 1)
	assert.Equal(t, p.ID(), cmds[1].Object)
	assert.Equal(t, vbo.ID(), cmds[2].Object)
	require.NotNil(t, cmds[3].Scissor)
	assert.Equal(t, int32(10), cmds[3].Scissor.Width)
	assert.Equal(t, uint32(3), cmds[4].Count)
	assert.Equal(t, uint32(1), cmds[4].Instances)
	assert.Nil(t, cmds[5].Scissor, "popping the last scissor disables it")
	assert.False(t, backend.Commands().Recording())

	begun, ended := backend.Frames()
	assert.Equal(t, 1, begun)
	assert.Equal(t, 1, ended)
}

func TestInvalidateFrameBufferRebuilds(t *testing.T) {
	dev, backend := newDevice(t)

	color := func(w, h uint32) render.Texture {
		var tex render.Texture
		require.True(t, dev.CreateTexture(&tex, render.TextureInfo{Format: render.FormatRGBA8, Width: w, Height: h}).OK())
		return tex
	}
	small, large := color(4, 4), color(8, 8)

	var fb render.FrameBuffer
	require.True(t, dev.CreateFrameBuffer(&fb, render.FrameBufferInfo{
		Width: 4, Height: 4, ColorAttachments: []render.Texture{small},
	}).OK())
	require.True(t, dev.InvalidateFrameBuffer(fb, render.FrameBufferInfo{
		Width: 8, Height: 8, ColorAttachments: []render.Texture{large},
	}).OK())

	f := backend.framebuffers.Get(fb.Key())
	require.NotNil(t, f)
	assert.Equal(t, 1, f.Rebuilds)
	assert.Equal(t, uint32(8), f.Info.Width)
}

func TestCleanupReleasesPools(t *testing.T) {
	backend := NewDevice()
	var dev render.Device
	require.True(t, render.CreateRenderDeviceWith(&dev, render.DeviceInfo{}, backend).OK())

	var tex render.Texture
	require.True(t, dev.CreateTexture(&tex, render.TextureInfo{Format: render.FormatR8, Width: 1, Height: 1}).OK())
	require.True(t, render.DeleteRenderDevice(&dev).OK())

	assert.Nil(t, backend.images)
	assert.False(t, dev.IsValid())
}

func TestSwapChainRenderPass(t *testing.T) {
	dev, backend := newDevice(t)
	pass, res := dev.SwapChainPass()
	require.True(t, res.OK())
	assert.Equal(t, backend.SwapChainPass(), pass.Key())
	assert.Equal(t, 1, backend.renderPasses.Len())

	info := backend.Pass(pass.Key()).Info
	require.Len(t, info.Attachments, 2)
	assert.Equal(t, render.FormatBGRA8, info.Attachments[0].Format)
	assert.Equal(t, render.StoreStore, info.Attachments[0].StoreOp)

	require.True(t, dev.BeginFrame().OK())
	require.True(t, dev.BeginRenderPass(render.RenderPassBeginInfo{
		Pass:        pass,
		ClearValues: []core.ClearValue{core.ClearColor(core.ColorBlack), core.ClearDepthStencil(1, 0)},
	}).OK())
	require.True(t, dev.EndRenderPass().OK())
	require.True(t, dev.EndFrame().OK())
	assert.Equal(t, pass.ID(), backend.Commands().Commands[0].Object)
}

func TestCommandBufferBeginResets(t *testing.T) {
	var cb CommandBuffer
	cb.Begin()
	cb.Draw(3, 1, 0, 0)
	cb.End()
	require.Len(t, cb.Commands, 1)

	cb.Begin()
	assert.Empty(t, cb.Commands)
	assert.Equal(t, "DrawIndexed", OpDrawIndexed.String())
	assert.Equal(t, "Op(200)", Op(200).String())
}
