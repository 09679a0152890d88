package main

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"

	"github.com/chewxy/math32"

	"github.com/x2w-rook/Ludens-sub001/core"
	lmath "github.com/x2w-rook/Ludens-sub001/math"
	"github.com/x2w-rook/Ludens-sub001/render"
	"github.com/x2w-rook/Ludens-sub001/scene"
	"github.com/x2w-rook/Ludens-sub001/textures"
)

// MeshRenderer spins one mesh in front of the camera.
type MeshRenderer struct {
	dev      render.Device
	textures *textures.Manager

	vs, fs      render.Shader
	frameLayout render.BindingGroupLayout
	texLayout   render.BindingGroupLayout
	frameGroup  render.BindingGroup
	texGroup    render.BindingGroup
	uniforms    render.Buffer
	pass        render.Pass
	pipeline    render.Pipeline
	sky         *Sky

	mesh   *scene.Mesh
	gpu    *scene.GPUMesh
	center [3]float32
	scale  float32
}

func NewMeshRenderer(dev render.Device, mesh *scene.Mesh, texturePath string) (*MeshRenderer, error) {
	r := &MeshRenderer{
		dev:      dev,
		textures: textures.NewManager(dev, textures.WithMaxSize(2048)),
		mesh:     mesh,
	}
	if err := r.init(texturePath); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *MeshRenderer) init(texturePath string) error {
	dev := r.dev
	check := func(what string, res render.Result) error {
		if err := res.Err(); err != nil {
			return fmt.Errorf("failed to create %s: %w", what, err)
		}
		return nil
	}

	if err := check("vertex shader", dev.CreateShader(&r.vs, render.ShaderInfo{
		Type: render.ShaderVertex, Language: render.ShaderWGSL, Source: meshWGSL, EntryPoint: "vs_main",
	})); err != nil {
		return err
	}
	if err := check("fragment shader", dev.CreateShader(&r.fs, render.ShaderInfo{
		Type: render.ShaderFragment, Language: render.ShaderWGSL, Source: meshWGSL, EntryPoint: "fs_main",
	})); err != nil {
		return err
	}

	if err := check("frame layout", dev.CreateBindingGroupLayout(&r.frameLayout, render.BindingGroupLayoutInfo{
		Bindings: []render.BindingInfo{{Type: render.BindingUniformBuffer}},
	})); err != nil {
		return err
	}
	if err := check("texture layout", dev.CreateBindingGroupLayout(&r.texLayout, render.BindingGroupLayoutInfo{
		Bindings: []render.BindingInfo{{Type: render.BindingTexture}},
	})); err != nil {
		return err
	}

	if err := check("uniform buffer", dev.CreateBuffer(&r.uniforms, render.BufferInfo{
		Type: render.BufferUniform, Usage: render.UsageDynamic, Size: frameSize,
	})); err != nil {
		return err
	}
	if err := check("frame group", dev.CreateBindingGroup(&r.frameGroup, render.BindingGroupInfo{Layout: r.frameLayout})); err != nil {
		return err
	}
	if err := check("frame binding", dev.BindGroupUniformBuffer(r.frameGroup, 0, r.uniforms)); err != nil {
		return err
	}

	var tex *textures.Texture
	if texturePath != "" {
		tex = r.textures.GetOrDefault(texturePath)
	} else {
		var err error
		light, dark := color.RGBA{230, 230, 230, 255}, color.RGBA{60, 90, 160, 255}
		if tex, err = r.textures.Checker("checker", 256, light, dark); err != nil {
			return err
		}
	}
	if tex == nil {
		return fmt.Errorf("failed to create texture %q", texturePath)
	}
	if err := check("texture group", dev.CreateBindingGroup(&r.texGroup, render.BindingGroupInfo{Layout: r.texLayout})); err != nil {
		return err
	}
	if err := check("texture binding", dev.BindGroupTexture(r.texGroup, 0, tex.Handle, 0)); err != nil {
		return err
	}

	pass, res := dev.SwapChainPass()
	if err := check("swap chain pass", res); err != nil {
		return err
	}
	r.pass = pass
	sky, err := NewSky(dev, r.pass)
	if err != nil {
		return err
	}
	r.sky = sky

	if err := check("pipeline", dev.CreatePipeline(&r.pipeline, render.PipelineInfo{
		Name:           "mesh",
		Layout:         render.PipelineLayout{GroupLayouts: []render.BindingGroupLayout{r.frameLayout, r.texLayout}},
		VertexLayout:   render.VertexLayout{Slots: []render.VertexBufferSlot{scene.VertexSlot()}},
		VertexShader:   r.vs,
		FragmentShader: r.fs,
		Pass:           r.pass,
		Rasterization:  render.RasterizationState{CullMode: render.CullNone},
		DepthStencil:   render.DepthStencilState{DepthTest: true, DepthWrite: true, DepthCompare: render.CompareLess},
	})); err != nil {
		return err
	}

	gpu, err := r.mesh.Upload(dev)
	if err != nil {
		return err
	}
	r.gpu = gpu

	var extent float32
	for c := 0; c < 3; c++ {
		r.center[c] = (r.mesh.Min[c] + r.mesh.Max[c]) / 2
		extent = max(extent, r.mesh.Max[c]-r.mesh.Min[c])
	}
	r.scale = 1.2
	if extent > 0 {
		r.scale = 1.2 / extent
	}
	return nil
}

// Render draws one frame at time t seconds.
func (r *MeshRenderer) Render(t float32, stats *render.DrawStats) error {
	dev := r.dev
	ext := dev.Extent()
	aspect := float32(1)
	if ext.Height > 0 {
		aspect = float32(ext.Width) / float32(ext.Height)
	}
	if err := dev.SetBufferData(r.uniforms, 0, r.frameData(t, aspect)).Err(); err != nil {
		return err
	}

	if err := dev.BeginFrame().Err(); err != nil {
		return err
	}
	dev.BeginDrawStats(stats)
	defer dev.EndDrawStats()

	background := core.Color{R: 0.08, G: 0.09, B: 0.12, A: 1}
	fb, res := dev.SwapChainFrameBuffer()
	if err := res.Err(); err != nil {
		return err
	}
	if err := dev.BeginRenderPass(render.RenderPassBeginInfo{
		Pass:        r.pass,
		FrameBuffer: fb,
		ClearValues: []core.ClearValue{core.ClearColor(background), core.ClearDepthStencil(1, 0)},
	}).Err(); err != nil {
		return err
	}
	if err := r.sky.Draw(t); err != nil {
		return err
	}
	for _, res := range []render.Result{
		dev.SetPipeline(r.pipeline),
		dev.SetBindingGroup(0, r.frameGroup),
		dev.SetBindingGroup(1, r.texGroup),
	} {
		if err := res.Err(); err != nil {
			return err
		}
	}
	if err := r.gpu.Draw(dev, 1); err != nil {
		return err
	}
	if err := dev.EndRenderPass().Err(); err != nil {
		return err
	}
	return dev.EndFrame().Err()
}

// frameData packs the Frame uniform: a turntable rotation about Y that fits
// the mesh into clip space, followed by a slowly cycling tint.
func (r *MeshRenderer) frameData(t, aspect float32) []byte {
	s := r.scale
	m := lmath.Mat4Translation(lmath.Vec3FromArray(r.center).Negate()).
		Mul(lmath.Mat4RotationY(t * 0.8)).
		Mul(lmath.Mat4Scale(lmath.NewVec3(s/aspect, s, s*0.5))).
		Array()
	tint := [4]float32{
		0.85 + 0.15*math32.Sin(t),
		0.85 + 0.15*math32.Sin(t+2*math32.Pi/3),
		0.85 + 0.15*math32.Sin(t+4*math32.Pi/3),
		1,
	}

	buf := make([]byte, 0, frameSize)
	for _, f := range m {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	for _, f := range tint {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

func (r *MeshRenderer) Destroy() {
	dev := r.dev
	if r.gpu != nil {
		r.gpu.Delete(dev)
	}
	r.textures.DestroyAll()
	if r.sky != nil {
		r.sky.Destroy()
	}
	if r.pipeline.IsValid() {
		dev.DeletePipeline(&r.pipeline)
	}
	for _, g := range []*render.BindingGroup{&r.texGroup, &r.frameGroup} {
		if g.IsValid() {
			dev.DeleteBindingGroup(g)
		}
	}
	if r.uniforms.IsValid() {
		dev.DeleteBuffer(&r.uniforms)
	}
	for _, l := range []*render.BindingGroupLayout{&r.texLayout, &r.frameLayout} {
		if l.IsValid() {
			dev.DeleteBindingGroupLayout(l)
		}
	}
	for _, sh := range []*render.Shader{&r.fs, &r.vs} {
		if sh.IsValid() {
			dev.DeleteShader(sh)
		}
	}
}
