package shaderc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const texturedQuad = `
struct VertexOutput {
  @location(0) uv : vec2<f32>,
  @builtin(position) position : vec4<f32>,
}

@vertex
fn vs_main(@location(0) pos : vec2<f32>, @location(1) uv : vec2<f32>) -> VertexOutput {
  return VertexOutput(uv, vec4<f32>(pos, 0.0, 1.0));
}

@group(1) @binding(0) var u_texture : texture_2d<f32>;
@group(0) @binding(1) var u_sampler : sampler;

@fragment
fn fs_main(@location(0) uv : vec2<f32>) -> @location(0) vec4<f32> {
  return textureSample(u_texture, u_sampler, uv);
}
`

func TestParseReflectsEntryPoints(t *testing.T) {
	m, err := Parse(texturedQuad)
	require.NoError(t, err)

	require.Len(t, m.EntryPoints, 2)
	vs, err := m.EntryPoint("", StageVertex)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", vs.Name)

	fs, err := m.EntryPoint("fs_main", StageVertex)
	require.NoError(t, err)
	assert.Equal(t, StageFragment, fs.Stage, "a named lookup reports the real stage")

	_, err = m.EntryPoint("", StageCompute)
	assert.Error(t, err)
	_, err = m.EntryPoint("missing", StageVertex)
	assert.Error(t, err)
}

func TestParseReflectsBindingsInOrder(t *testing.T) {
	m, err := Parse(texturedQuad)
	require.NoError(t, err)

	require.Len(t, m.Bindings, 2)
	assert.Equal(t, Binding{Name: "u_sampler", Group: 0, Binding: 1, Kind: BindingSampler}, m.Bindings[0])
	assert.Equal(t, Binding{Name: "u_texture", Group: 1, Binding: 0, Kind: BindingTexture}, m.Bindings[1])
}

func TestParseError(t *testing.T) {
	_, err := Parse("@vertex fn broken( {")
	assert.Error(t, err)
}

func TestGLSLVersion(t *testing.T) {
	v := GLSLVersion(410)
	assert.Equal(t, uint8(4), v.Major)
	assert.Equal(t, uint8(10), v.Minor)
	assert.Equal(t, "410", v.VersionNumber())
}

func TestTranslateGLSL(t *testing.T) {
	m, err := Parse(texturedQuad)
	require.NoError(t, err)

	vs, err := m.GLSL("vs_main", 410)
	require.NoError(t, err)
	assert.Contains(t, vs.Source, "#version 410")

	fs, err := m.GLSL("fs_main", 410)
	require.NoError(t, err)
	assert.NotContains(t, fs.Source, "layout(binding")
	require.Contains(t, fs.Samplers, "u_texture_u_sampler")
	assert.Equal(t, "u_texture", fs.Samplers["u_texture_u_sampler"].Name)
	assert.Equal(t, uint32(1), fs.Samplers["u_texture_u_sampler"].Group)
}

func TestTranslateGLSLUniformBlock(t *testing.T) {
	m, err := Parse(`
struct Camera {
  view_proj : mat4x4<f32>,
}

@group(0) @binding(2) var<uniform> camera : Camera;

@vertex
fn vs_main(@location(0) pos : vec3<f32>) -> @builtin(position) vec4<f32> {
  return camera.view_proj * vec4<f32>(pos, 1.0);
}
`)
	require.NoError(t, err)

	vs, err := m.GLSL("vs_main", 330)
	require.NoError(t, err)
	assert.Contains(t, vs.Source, "layout(std140) uniform camera_block {")
	assert.NotContains(t, vs.Source, "layout(binding")
	require.Contains(t, vs.Blocks, "camera_block")
	assert.Equal(t, Binding{Name: "camera", Group: 0, Binding: 2, Kind: BindingUniform}, vs.Blocks["camera_block"])
}

func TestTextureOfPrefersLongestName(t *testing.T) {
	m := &Module{Bindings: []Binding{
		{Name: "albedo", Kind: BindingTexture},
		{Name: "albedo_detail", Binding: 1, Kind: BindingTexture},
		{Name: "albedo_s", Binding: 2, Kind: BindingSampler},
	}}
	b, ok := m.textureOf("albedo_detail_albedo_s")
	require.True(t, ok)
	assert.Equal(t, "albedo_detail", b.Name)

	_, ok = m.textureOf("normal_s")
	assert.False(t, ok)
}

func TestCompileSPIRV(t *testing.T) {
	m, err := Parse(`
@vertex
fn main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`)
	require.NoError(t, err)

	code, err := m.SPIRV()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(code), 20)
	magic := uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24
	assert.Equal(t, uint32(0x07230203), magic)
}
