package main

// meshWGSL draws a textured mesh lit by one light along +Z. Group 0 holds the
// per-frame uniforms, group 1 the surface texture.
const meshWGSL = `
struct Frame {
    transform: mat4x4<f32>,
    tint: vec4<f32>,
};

@group(0) @binding(0) var<uniform> frame: Frame;
@group(1) @binding(0) var u_texture: texture_2d<f32>;
@group(1) @binding(1) var u_sampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) normal: vec3<f32>,
    @location(1) uv: vec2<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) normal: vec3<f32>, @location(2) uv: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = frame.transform * vec4<f32>(position, 1.0);
    out.normal = (frame.transform * vec4<f32>(normal, 0.0)).xyz;
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let light = max(dot(normalize(in.normal), vec3<f32>(0.0, 0.0, -1.0)), 0.25);
    let base = textureSample(u_texture, u_sampler, in.uv) * frame.tint;
    return vec4<f32>(base.rgb * light, base.a);
}
`

// frameSize is the std140 size of Frame.
const frameSize = 80
