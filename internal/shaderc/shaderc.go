// Package shaderc parses WGSL shaders and translates them for the backends:
// GLSL for OpenGL and SPIR-V for Vulkan. Parsing also reflects the entry
// points and resource bindings so stages can be validated before any
// backend sees the shader.
package shaderc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	}
	return fmt.Sprintf("Stage(%d)", s)
}

type EntryPoint struct {
	Name  string
	Stage Stage
}

type BindingKind uint8

const (
	BindingUniform BindingKind = iota
	BindingStorage
	BindingTexture
	BindingSampler
)

// Binding is one @group/@binding resource declared by the module.
type Binding struct {
	Name    string
	Group   uint32
	Binding uint32
	Kind    BindingKind
}

// Module is a parsed WGSL source.
type Module struct {
	Source      string
	EntryPoints []EntryPoint
	// Bindings are sorted by group, then binding.
	Bindings []Binding

	ir *ir.Module
}

// Parse parses and lowers WGSL source.
func Parse(source string) (*Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("shaderc: parse: %w", err)
	}
	mod, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("shaderc: lower: %w", err)
	}

	m := &Module{Source: source, ir: mod}
	for _, ep := range mod.EntryPoints {
		m.EntryPoints = append(m.EntryPoints, EntryPoint{Name: ep.Name, Stage: Stage(ep.Stage)})
	}
	for _, gv := range mod.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		b := Binding{Name: gv.Name, Group: gv.Binding.Group, Binding: gv.Binding.Binding}
		switch gv.Space {
		case ir.SpaceUniform:
			b.Kind = BindingUniform
		case ir.SpaceStorage:
			b.Kind = BindingStorage
		default:
			b.Kind = BindingTexture
			if int(gv.Type) < len(mod.Types) {
				if _, ok := mod.Types[gv.Type].Inner.(ir.SamplerType); ok {
					b.Kind = BindingSampler
				}
			}
		}
		m.Bindings = append(m.Bindings, b)
	}
	sort.Slice(m.Bindings, func(i, j int) bool {
		a, b := m.Bindings[i], m.Bindings[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Binding < b.Binding
	})
	return m, nil
}

// EntryPoint finds the entry point called name, or the first one of stage
// when name is empty.
func (m *Module) EntryPoint(name string, stage Stage) (EntryPoint, error) {
	for _, ep := range m.EntryPoints {
		if name == "" && ep.Stage == stage {
			return ep, nil
		}
		if name != "" && ep.Name == name {
			return ep, nil
		}
	}
	if name == "" {
		return EntryPoint{}, fmt.Errorf("shaderc: no %s entry point", stage)
	}
	return EntryPoint{}, fmt.Errorf("shaderc: entry point %q not found", name)
}

// GLSLVersion converts the conventional number (330, 410, 450) into the
// translator's version.
func GLSLVersion(number int) glsl.Version {
	return glsl.Version{Major: uint8(number / 100), Minor: uint8(number % 100)}
}

// GLSLShader is one entry point translated to GLSL. Bindings are left to
// the program: uniform buffers become std140 blocks and every layout
// binding qualifier is removed, so the caller assigns units and bases by
// name after linking.
type GLSLShader struct {
	Source string
	// Samplers maps each combined sampler uniform to the texture binding it
	// samples.
	Samplers map[string]Binding
	// Blocks maps each uniform block to its uniform binding.
	Blocks map[string]Binding
}

var uniformDecl = regexp.MustCompile(`^(\s*)layout\(binding = \d+\) uniform (\w+) (\w+);$`)

func opaque(typ string) bool {
	for _, p := range []string{"sampler", "isampler", "usampler", "image", "iimage", "uimage"} {
		if strings.HasPrefix(typ, p) {
			return true
		}
	}
	return false
}

// GLSL translates one entry point to GLSL source of the given version.
func (m *Module) GLSL(entry string, version int) (GLSLShader, error) {
	src, info, err := glsl.Compile(m.ir, glsl.Options{
		LangVersion: GLSLVersion(version),
		EntryPoint:  entry,
	})
	if err != nil {
		return GLSLShader{}, fmt.Errorf("shaderc: glsl %q: %w", entry, err)
	}
	out := GLSLShader{Samplers: make(map[string]Binding), Blocks: make(map[string]Binding)}
	for _, pair := range info.TextureSamplerPairs {
		if b, ok := m.textureOf(pair); ok {
			out.Samplers[pair] = b
		}
	}

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		match := uniformDecl.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		indent, typ, name := match[1], match[2], match[3]
		if opaque(typ) {
			lines[i] = fmt.Sprintf("%suniform %s %s;", indent, typ, name)
			continue
		}
		block := name + "_block"
		lines[i] = fmt.Sprintf("%slayout(std140) uniform %s { %s %s; };", indent, block, typ, name)
		for _, b := range m.Bindings {
			if b.Kind == BindingUniform && b.Name == name {
				out.Blocks[block] = b
			}
		}
	}
	out.Source = strings.Join(lines, "\n")
	return out, nil
}

// textureOf finds the texture binding a combined sampler name starts with.
func (m *Module) textureOf(combined string) (Binding, bool) {
	var best Binding
	found := false
	for _, b := range m.Bindings {
		if b.Kind != BindingTexture || !strings.HasPrefix(combined, b.Name+"_") {
			continue
		}
		if !found || len(b.Name) > len(best.Name) {
			best, found = b, true
		}
	}
	return best, found
}

// Validate runs the IR validator and returns the first problem found.
func (m *Module) Validate() error {
	errs, err := naga.Validate(m.ir)
	if err != nil {
		return fmt.Errorf("shaderc: validate: %w", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("shaderc: validate: %w (%d issues)", errs[0], len(errs))
	}
	return nil
}

// SPIRV compiles the whole module to a SPIR-V binary. Validation is left
// to Validate.
func (m *Module) SPIRV() ([]byte, error) {
	opts := naga.DefaultOptions()
	opts.Validate = false
	code, err := naga.CompileWithOptions(m.Source, opts)
	if err != nil {
		return nil, fmt.Errorf("shaderc: spirv: %w", err)
	}
	return code, nil
}
