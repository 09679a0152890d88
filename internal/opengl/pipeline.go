package opengl

import (
	"fmt"

	"github.com/x2w-rook/Ludens-sub001/internal/pool"
	"github.com/x2w-rook/Ludens-sub001/internal/shaderc"
	"github.com/x2w-rook/Ludens-sub001/render"
)

// BindingLayout maps every binding of a pipeline's group layouts to a GL
// texture unit or uniform buffer base. Groups are walked in order and the
// bindings of each group in order; texture bindings take consecutive units
// (one per array element), uniform buffer bindings consecutive bases.
type BindingLayout struct {
	// Slots[group][binding] is the first unit or the base of the binding.
	Slots [][]uint32
	Units uint32
	Bases uint32
}

func ResolveBindingLayout(layouts []render.BindingGroupLayoutInfo) BindingLayout {
	bl := BindingLayout{Slots: make([][]uint32, len(layouts))}
	for g, layout := range layouts {
		bl.Slots[g] = make([]uint32, len(layout.Bindings))
		for b, binding := range layout.Bindings {
			switch binding.Type {
			case render.BindingTexture:
				bl.Slots[g][b] = bl.Units
				bl.Units += binding.ArraySize()
			case render.BindingUniformBuffer:
				bl.Slots[g][b] = bl.Bases
				bl.Bases++
			}
		}
	}
	return bl
}

// TextureUnit returns the unit of element of a texture binding.
func (bl BindingLayout) TextureUnit(group, binding int, element uint32) uint32 {
	return bl.Slots[group][binding] + element
}

// UniformBase returns the uniform buffer base of a uniform binding.
func (bl BindingLayout) UniformBase(group, binding int) uint32 {
	return bl.Slots[group][binding]
}

type vertexAttrib struct {
	location   uint32
	size       int32
	normalized bool
	offset     int
}

type vertexSlot struct {
	stride  int32
	divisor uint32
	attribs []vertexAttrib
}

// Pipeline is a linked GL program, the vertex array describing its vertex
// layout, and the fixed function state applied when it is bound.
type Pipeline struct {
	render.PipelineBase
	program  Object
	vao      Object
	bindings BindingLayout
	slots    []vertexSlot
	mode     Enum
}

func (p *Pipeline) Bindings() BindingLayout { return p.bindings }

var topologies = map[render.Topology]Enum{
	render.TopologyTriangleList:  TRIANGLES,
	render.TopologyTriangleStrip: TRIANGLE_STRIP,
	render.TopologyLineList:      LINES,
	render.TopologyPointList:     POINTS,
}

func (d *Device) CreatePipeline(obj render.ObjectBase, info render.PipelineInfo, layouts []render.BindingGroupLayoutInfo) (pool.Key, error) {
	vs := d.shaders.Get(info.VertexShader.Key())
	fs := d.shaders.Get(info.FragmentShader.Key())
	if vs == nil || fs == nil {
		return pool.Key{}, render.InvalidHandle
	}
	prog, err := linkProgram(d.f, vs.obj.Name, fs.obj.Name)
	if err != nil {
		return pool.Key{}, fmt.Errorf("opengl: pipeline %q: %w", info.Name, err)
	}
	key, p, err := d.pipelines.Alloc()
	if err != nil {
		d.f.DeleteProgram(prog)
		return pool.Key{}, fmt.Errorf("opengl: create pipeline: %w", err)
	}
	p.PipelineBase = render.PipelineBase{ObjectBase: obj, Info: info, GroupLayouts: layouts}
	p.program = Object{ID: obj.ID, Name: prog}
	p.vao = Object{ID: obj.ID, Name: d.f.CreateVertexArray()}
	p.bindings = ResolveBindingLayout(layouts)
	p.mode = topologies[info.Topology]

	// The vertex array and program are set up in place; the bound
	// pipeline's are restored afterwards.
	prevVAO, prevProgram := d.ctx.VertexArray(), d.ctx.Program()
	d.ctx.BindVertexArray(p.vao)
	for _, s := range info.VertexLayout.Slots {
		slot := vertexSlot{stride: int32(s.Stride())}
		if s.PollRate == render.PollPerInstance {
			slot.divisor = 1
		}
		var offset int
		for _, a := range s.Attributes {
			slot.attribs = append(slot.attribs, vertexAttrib{
				location:   a.Location,
				size:       int32(a.Type.Components()),
				normalized: a.Normalized,
				offset:     offset,
			})
			d.f.EnableVertexAttribArray(a.Location)
			offset += int(a.Type.Size())
		}
		p.slots = append(p.slots, slot)
	}

	d.ctx.UseProgram(p.program)
	d.assignBindings(p, vs)
	d.assignBindings(p, fs)
	d.ctx.UseProgram(prevProgram)
	d.ctx.BindVertexArray(prevVAO)
	return key, nil
}

// assignBindings points the program's samplers and uniform blocks of a
// translated WGSL shader at the units and bases of the binding layout. A
// WGSL binding whose layout entry has another type is left unassigned. GLSL
// sources declare their own bindings.
func (d *Device) assignBindings(p *Pipeline, sh *Shader) {
	layoutType := func(b shaderc.Binding) (render.BindingType, bool) {
		g, i := int(b.Group), int(b.Binding)
		if g >= len(p.GroupLayouts) || i >= len(p.GroupLayouts[g].Bindings) {
			return 0, false
		}
		return p.GroupLayouts[g].Bindings[i].Type, true
	}
	for name, b := range sh.samplers {
		if t, ok := layoutType(b); !ok || t != render.BindingTexture {
			continue
		}
		if loc := d.f.GetUniformLocation(p.program.Name, name); loc >= 0 {
			d.f.Uniform1i(loc, int32(p.bindings.TextureUnit(int(b.Group), int(b.Binding), 0)))
		}
	}
	for name, b := range sh.blocks {
		if t, ok := layoutType(b); !ok || t != render.BindingUniformBuffer {
			continue
		}
		if idx := d.f.GetUniformBlockIndex(p.program.Name, name); idx != INVALID_INDEX {
			d.f.UniformBlockBinding(p.program.Name, idx, p.bindings.UniformBase(int(b.Group), int(b.Binding)))
		}
	}
}

func (d *Device) DeletePipeline(key pool.Key) {
	p := d.pipelines.Get(key)
	if p == nil {
		return
	}
	d.ctx.DeleteVertexArray(p.vao)
	d.ctx.DeleteProgram(p.program)
	if d.pipeline == key {
		d.pipeline = pool.Key{}
	}
	d.pipelines.Free(key)
}

func (d *Device) Pipeline(key pool.Key) *render.PipelineBase {
	if p := d.pipelines.Get(key); p != nil {
		return &p.PipelineBase
	}
	return nil
}

// vertexSlot points the attributes of slot at the buffer bound to
// ARRAY_BUFFER. The pipeline's vertex array must be bound.
func (p *Pipeline) vertexSlot(f Functions, slot int) {
	s := p.slots[slot]
	for _, a := range s.attribs {
		f.VertexAttribPointer(a.location, a.size, FLOAT, a.normalized, s.stride, a.offset)
		f.VertexAttribDivisor(a.location, s.divisor)
	}
}

var compareOps = map[render.CompareOp]Enum{
	render.CompareLess:      LESS,
	render.CompareLessEqual: LEQUAL,
	render.CompareEqual:     EQUAL,
	render.CompareGreater:   GREATER,
	render.CompareAlways:    ALWAYS,
}

var blendFactors = map[render.BlendFactor]Enum{
	render.BlendZero:             ZERO,
	render.BlendOne:              ONE,
	render.BlendSrcAlpha:         SRC_ALPHA,
	render.BlendDstAlpha:         DST_ALPHA,
	render.BlendOneMinusSrcAlpha: ONE_MINUS_SRC_ALPHA,
	render.BlendOneMinusDstAlpha: ONE_MINUS_DST_ALPHA,
}

func blendOp(op render.BlendOp) Enum {
	if op == render.BlendSubtract {
		return FUNC_SUBTRACT
	}
	return FUNC_ADD
}

var polygonModes = map[render.PolygonMode]Enum{
	render.PolygonFill:  FILL,
	render.PolygonLine:  LINE,
	render.PolygonPoint: POINT,
}

func (d *Device) SetPipeline(key pool.Key) error {
	p := d.pipelines.Get(key)
	if p == nil {
		return render.InvalidHandle
	}
	d.ctx.UseProgram(p.program)
	d.ctx.BindVertexArray(p.vao)

	ds := p.Info.DepthStencil
	d.ctx.Enable(DEPTH_TEST, ds.DepthTest)
	if ds.DepthTest {
		d.f.DepthFunc(compareOps[ds.DepthCompare])
		d.setDepthMask(ds.DepthWrite)
	}

	rs := p.Info.Rasterization
	d.ctx.Enable(CULL_FACE, rs.CullMode != render.CullNone)
	switch rs.CullMode {
	case render.CullFront:
		d.f.CullFace(FRONT)
	case render.CullBack:
		d.f.CullFace(BACK)
	}
	d.f.PolygonMode(FRONT_AND_BACK, polygonModes[rs.PolygonMode])

	b := p.Info.Blend
	d.ctx.Enable(BLEND, b.Enabled)
	if b.Enabled {
		d.f.BlendFuncSeparate(blendFactors[b.SrcColor], blendFactors[b.DstColor],
			blendFactors[b.SrcAlpha], blendFactors[b.DstAlpha])
		d.f.BlendEquationSeparate(blendOp(b.ColorOp), blendOp(b.AlphaOp))
	}
	d.pipeline = key
	return nil
}

func (d *Device) setDepthMask(on bool) {
	if d.depthMask != nil && *d.depthMask == on {
		return
	}
	d.f.DepthMask(on)
	d.depthMask = &on
}
