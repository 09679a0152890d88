package main

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x2w-rook/Ludens-sub001/render"
	"github.com/x2w-rook/Ludens-sub001/vulkan"
)

func TestMeshRendererFrame(t *testing.T) {
	var dev render.Device
	res := render.CreateRenderDevice(&dev, render.DeviceInfo{Backend: render.BackendVulkan})
	require.True(t, res.OK(), res.Error())
	defer render.DeleteRenderDevice(&dev)
	dev.ResizeViewport(800, 600)

	r, err := NewMeshRenderer(dev, demoTriangle(), "")
	require.NoError(t, err)
	defer r.Destroy()

	var stats render.DrawStats
	require.NoError(t, r.Render(0.5, &stats))
	assert.Equal(t, uint32(1), stats.DrawVertexCalls, "sky")
	assert.Equal(t, uint32(1), stats.DrawIndexedCalls, "mesh")
	assert.Equal(t, uint64(6), stats.TotalVertices)
}

func TestPaletteAt(t *testing.T) {
	assert.Equal(t, palettes[0].zenith, paletteAt(0).zenith)
	assert.Equal(t, palettes[1].horizon, paletteAt(palettes[1].t).horizon)
	a, b := paletteAt(0.1), paletteAt(2.1)
	assert.InDelta(t, a.zenith.B, b.zenith.B, 1e-4, "time wraps around")

	mid := paletteAt(palettes[3].t + (1-palettes[3].t)/2)
	want := lerpColor(palettes[3].ground, palettes[4].ground, (mid.t-palettes[3].t)/(palettes[4].t-palettes[3].t))
	assert.InDelta(t, want.R, mid.ground.R, 1e-6)
}

func TestFrameDataCentersMesh(t *testing.T) {
	r := &MeshRenderer{center: [3]float32{1, 2, 3}, scale: 0.5}
	data := r.frameData(0, 2)
	require.Len(t, data, frameSize)

	var m [16]float32
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	c := r.center
	for row := 0; row < 3; row++ {
		v := m[row]*c[0] + m[4+row]*c[1] + m[8+row]*c[2] + m[12+row]
		assert.InDelta(t, 0, v, 1e-6, "row %d", row)
	}
	assert.InDelta(t, 0.25, m[0], 1e-6, "x is divided by the aspect ratio")
	assert.InDelta(t, 0.5, m[5], 1e-6)
}

func TestMeshRendererUsesSwapChainPass(t *testing.T) {
	backend := vulkan.NewDevice()
	var dev render.Device
	require.True(t, render.CreateRenderDeviceWith(&dev, render.DeviceInfo{}, backend).OK())
	defer render.DeleteRenderDevice(&dev)

	r, err := NewMeshRenderer(dev, demoTriangle(), "")
	require.NoError(t, err)
	pass, res := dev.SwapChainPass()
	require.True(t, res.OK())
	assert.Equal(t, pass, r.pass)

	require.NoError(t, r.Render(0, nil))
	cmds := backend.Commands().Commands
	require.NotEmpty(t, cmds)
	assert.Equal(t, pass.ID(), cmds[0].Object)

	r.Destroy()
	again, res := dev.SwapChainPass()
	require.True(t, res.OK(), "the swap chain pass outlives the renderer")
	assert.Equal(t, pass, again)
}
