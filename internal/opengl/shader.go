package opengl

import (
	"fmt"
	"strings"

	"github.com/x2w-rook/Ludens-sub001/internal/pool"
	"github.com/x2w-rook/Ludens-sub001/internal/shaderc"
	"github.com/x2w-rook/Ludens-sub001/render"
)

// Shader is a compiled GL shader object. Programs are linked per pipeline.
type Shader struct {
	render.ShaderBase
	obj Object
	// Source is the GLSL handed to the driver, translated from WGSL when
	// the shader was written in WGSL.
	Source string
	// samplers and blocks name the WGSL bindings in the translated source.
	samplers map[string]shaderc.Binding
	blocks   map[string]shaderc.Binding
}

func shaderStage(t render.ShaderType) Enum {
	if t == render.ShaderFragment {
		return FRAGMENT_SHADER
	}
	return VERTEX_SHADER
}

// CreateShader translates WGSL to GLSL when needed and compiles it. A
// failed compile returns the driver's info log.
func (d *Device) CreateShader(obj render.ObjectBase, info render.ShaderInfo, module *render.ShaderModule) (pool.Key, error) {
	out := shaderc.GLSLShader{Source: info.Source}
	if module != nil {
		var err error
		if out, err = module.GLSL(info.EntryPoint, d.glslVersion); err != nil {
			return pool.Key{}, fmt.Errorf("opengl: translate %s shader: %w", info.Type, err)
		}
	}
	src := out.Source
	name, err := compileShader(d.f, src, shaderStage(info.Type))
	if err != nil {
		return pool.Key{}, fmt.Errorf("opengl: %s shader: %w", info.Type, err)
	}
	key, sh, err := d.shaders.Alloc()
	if err != nil {
		d.f.DeleteShader(name)
		return pool.Key{}, fmt.Errorf("opengl: create shader: %w", err)
	}
	sh.ShaderBase = render.ShaderBase{ObjectBase: obj, Info: info, Module: module}
	sh.obj = Object{ID: obj.ID, Name: name}
	sh.Source = src
	sh.samplers, sh.blocks = out.Samplers, out.Blocks
	return key, nil
}

func (d *Device) DeleteShader(key pool.Key) {
	if sh := d.shaders.Get(key); sh != nil {
		d.f.DeleteShader(sh.obj.Name)
		d.shaders.Free(key)
	}
}

func (d *Device) Shader(key pool.Key) *render.ShaderBase {
	if sh := d.shaders.Get(key); sh != nil {
		return &sh.ShaderBase
	}
	return nil
}

func compileShader(f Functions, src string, stage Enum) (uint32, error) {
	shader := f.CreateShader(stage)
	f.ShaderSource(shader, src)
	f.CompileShader(shader)

	if f.GetShaderi(shader, COMPILE_STATUS) == int32(FALSE) {
		log := strings.TrimRight(f.GetShaderInfoLog(shader), "\x00\n")
		f.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

// linkProgram links a vertex and a fragment shader. The shaders stay owned
// by their Shader objects.
func linkProgram(f Functions, vert, frag uint32) (uint32, error) {
	prog := f.CreateProgram()
	f.AttachShader(prog, vert)
	f.AttachShader(prog, frag)
	f.LinkProgram(prog)

	if f.GetProgrami(prog, LINK_STATUS) == int32(FALSE) {
		log := strings.TrimRight(f.GetProgramInfoLog(prog), "\x00\n")
		f.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}
