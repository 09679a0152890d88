package render

import "github.com/x2w-rook/Ludens-sub001/internal/shaderc"

// ShaderModule is a parsed WGSL shader with its reflected entry points and
// bindings.
type ShaderModule = shaderc.Module

// ObjectBase is embedded by every backend object. Backend tags the concrete
// implementation so a device never resolves an object made by another backend.
type ObjectBase struct {
	ID      uint64
	Backend BackendKind
	Device  Device
}

func (o *ObjectBase) matches(id uint64, kind BackendKind) bool {
	return o != nil && o.ID == id && o.Backend == kind
}

type TextureBase struct {
	ObjectBase
	Info TextureInfo
}

type BufferBase struct {
	ObjectBase
	Info BufferInfo
}

type ShaderBase struct {
	ObjectBase
	Info ShaderInfo
	// Module is the parsed WGSL module, nil for GLSL sources.
	Module *ShaderModule
}

type BindingGroupLayoutBase struct {
	ObjectBase
	Info BindingGroupLayoutInfo
}

// BindingGroupBase stores the resources bound into a group. Textures is
// indexed by binding then array element, UniformBuffers by binding; entries
// for bindings of the other type stay empty.
type BindingGroupBase struct {
	ObjectBase
	Layout         BindingGroupLayoutInfo
	Textures       [][]Texture
	UniformBuffers []Buffer
}

// NewBindingGroupBase sizes the resource tables for layout.
func NewBindingGroupBase(obj ObjectBase, layout BindingGroupLayoutInfo) BindingGroupBase {
	g := BindingGroupBase{
		ObjectBase:     obj,
		Layout:         layout,
		Textures:       make([][]Texture, len(layout.Bindings)),
		UniformBuffers: make([]Buffer, len(layout.Bindings)),
	}
	for i, b := range layout.Bindings {
		if b.Type == BindingTexture {
			g.Textures[i] = make([]Texture, b.ArraySize())
		}
	}
	return g
}

type PassBase struct {
	ObjectBase
	Info PassInfo
}

type FrameBufferBase struct {
	ObjectBase
	Info FrameBufferInfo
}

// PipelineBase keeps a copy of the group layouts so that deleting a layout
// after pipeline creation does not affect the pipeline.
type PipelineBase struct {
	ObjectBase
	Info         PipelineInfo
	GroupLayouts []BindingGroupLayoutInfo
}
