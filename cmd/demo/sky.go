package main

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/x2w-rook/Ludens-sub001/core"
	"github.com/x2w-rook/Ludens-sub001/render"
)

// skyWGSL draws a full-screen triangle at the far plane, shaded from ground
// through horizon to zenith by screen height.
const skyWGSL = `
struct Sky {
    zenith: vec4<f32>,
    horizon: vec4<f32>,
    ground: vec4<f32>,
};

@group(0) @binding(0) var<uniform> sky: Sky;

struct SkyOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) height: f32,
};

@vertex
fn vs_sky(@builtin(vertex_index) index: u32) -> SkyOutput {
    let uv = vec2<f32>(f32((index << 1u) & 2u), f32(index & 2u));
    var out: SkyOutput;
    out.position = vec4<f32>(uv * 2.0 - 1.0, 1.0, 1.0);
    out.height = uv.y * 2.0 - 1.0;
    return out;
}

@fragment
fn fs_sky(in: SkyOutput) -> @location(0) vec4<f32> {
    let t = in.height;
    if (t >= 0.0) {
        return vec4<f32>(mix(sky.horizon.rgb, sky.zenith.rgb, pow(t, 0.4)), 1.0);
    }
    return vec4<f32>(mix(sky.horizon.rgb, sky.ground.rgb, min(-t * 3.0, 1.0)), 1.0);
}
`

const skySize = 48

// dayPalette holds the sky colours for one key time of day.
type dayPalette struct {
	t       float32 // normalised time 0..1
	zenith  core.Color
	horizon core.Color
	ground  core.Color
}

// palettes is ordered by t and wraps around.
var palettes = []dayPalette{
	{ // noon
		t:       0.00,
		zenith:  core.Color{R: 0.20, G: 0.42, B: 0.90, A: 1},
		horizon: core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		ground:  core.Color{R: 0.12, G: 0.10, B: 0.08, A: 1},
	},
	{ // golden hour
		t:       0.22,
		zenith:  core.Color{R: 0.14, G: 0.20, B: 0.60, A: 1},
		horizon: core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1},
		ground:  core.Color{R: 0.08, G: 0.07, B: 0.06, A: 1},
	},
	{ // dusk
		t:       0.30,
		zenith:  core.Color{R: 0.08, G: 0.10, B: 0.28, A: 1},
		horizon: core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1},
		ground:  core.Color{R: 0.04, G: 0.03, B: 0.04, A: 1},
	},
	{ // night
		t:       0.50,
		zenith:  core.Color{R: 0.01, G: 0.01, B: 0.04, A: 1},
		horizon: core.Color{R: 0.04, G: 0.05, B: 0.10, A: 1},
		ground:  core.Color{R: 0.01, G: 0.01, B: 0.01, A: 1},
	},
	{ // dawn
		t:       0.78,
		zenith:  core.Color{R: 0.12, G: 0.16, B: 0.42, A: 1},
		horizon: core.Color{R: 0.95, G: 0.60, B: 0.40, A: 1},
		ground:  core.Color{R: 0.06, G: 0.05, B: 0.05, A: 1},
	},
}

// paletteAt blends the two key palettes around the normalised time t.
func paletteAt(t float32) dayPalette {
	t -= math32.Floor(t)
	n := len(palettes)
	for i := 0; i < n; i++ {
		a, b := palettes[i], palettes[(i+1)%n]
		end := b.t
		if i == n-1 {
			end = 1
		}
		if t < a.t || t >= end {
			continue
		}
		f := (t - a.t) / (end - a.t)
		return dayPalette{
			t:       t,
			zenith:  lerpColor(a.zenith, b.zenith, f),
			horizon: lerpColor(a.horizon, b.horizon, f),
			ground:  lerpColor(a.ground, b.ground, f),
		}
	}
	return palettes[0]
}

func lerpColor(a, b core.Color, f float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*f,
		G: a.G + (b.G-a.G)*f,
		B: a.B + (b.B-a.B)*f,
		A: a.A + (b.A-a.A)*f,
	}
}

// Sky draws the day/night gradient behind everything else.
type Sky struct {
	dev render.Device
	// DayLength is the length of one day/night cycle in seconds.
	DayLength float32

	vs, fs   render.Shader
	layout   render.BindingGroupLayout
	group    render.BindingGroup
	uniforms render.Buffer
	pipeline render.Pipeline
}

func NewSky(dev render.Device, pass render.Pass) (*Sky, error) {
	s := &Sky{dev: dev, DayLength: 60}
	if err := s.init(pass); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *Sky) init(pass render.Pass) error {
	dev := s.dev
	steps := []struct {
		what string
		do   func() render.Result
	}{
		{"sky vertex shader", func() render.Result {
			return dev.CreateShader(&s.vs, render.ShaderInfo{Type: render.ShaderVertex, Language: render.ShaderWGSL, Source: skyWGSL})
		}},
		{"sky fragment shader", func() render.Result {
			return dev.CreateShader(&s.fs, render.ShaderInfo{Type: render.ShaderFragment, Language: render.ShaderWGSL, Source: skyWGSL})
		}},
		{"sky layout", func() render.Result {
			return dev.CreateBindingGroupLayout(&s.layout, render.BindingGroupLayoutInfo{
				Bindings: []render.BindingInfo{{Type: render.BindingUniformBuffer}},
			})
		}},
		{"sky uniforms", func() render.Result {
			return dev.CreateBuffer(&s.uniforms, render.BufferInfo{Type: render.BufferUniform, Usage: render.UsageDynamic, Size: skySize})
		}},
		{"sky group", func() render.Result {
			return dev.CreateBindingGroup(&s.group, render.BindingGroupInfo{Layout: s.layout})
		}},
		{"sky binding", func() render.Result {
			return dev.BindGroupUniformBuffer(s.group, 0, s.uniforms)
		}},
		{"sky pipeline", func() render.Result {
			return dev.CreatePipeline(&s.pipeline, render.PipelineInfo{
				Name:           "sky",
				Layout:         render.PipelineLayout{GroupLayouts: []render.BindingGroupLayout{s.layout}},
				VertexShader:   s.vs,
				FragmentShader: s.fs,
				Pass:           pass,
			})
		}},
	}
	for _, step := range steps {
		if err := step.do().Err(); err != nil {
			return fmt.Errorf("failed to create %s: %w", step.what, err)
		}
	}
	return nil
}

// Draw uploads the palette for time t seconds and draws the sky. It must be
// called inside a render pass, before scene geometry.
func (s *Sky) Draw(t float32) error {
	p := paletteAt(t / s.DayLength)
	buf := make([]byte, 0, skySize)
	for _, c := range []core.Color{p.zenith, p.horizon, p.ground} {
		for _, f := range c.Array() {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	for _, res := range []render.Result{
		s.dev.SetBufferData(s.uniforms, 0, buf),
		s.dev.SetPipeline(s.pipeline),
		s.dev.SetBindingGroup(0, s.group),
		s.dev.DrawVertex(render.DrawVertexInfo{VertexCount: 3}),
	} {
		if err := res.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sky) Destroy() {
	dev := s.dev
	if s.pipeline.IsValid() {
		dev.DeletePipeline(&s.pipeline)
	}
	if s.group.IsValid() {
		dev.DeleteBindingGroup(&s.group)
	}
	if s.uniforms.IsValid() {
		dev.DeleteBuffer(&s.uniforms)
	}
	if s.layout.IsValid() {
		dev.DeleteBindingGroupLayout(&s.layout)
	}
	for _, sh := range []*render.Shader{&s.fs, &s.vs} {
		if sh.IsValid() {
			dev.DeleteShader(sh)
		}
	}
}
