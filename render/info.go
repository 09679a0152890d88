package render

import "github.com/x2w-rook/Ludens-sub001/core"

type SamplerInfo struct {
	Filter      FilterMode
	AddressMode AddressMode
}

type TextureInfo struct {
	Type   TextureType
	Format Format
	Width  uint32
	Height uint32
	// Layers is the array size of a 2D array texture. Zero means one.
	Layers  uint32
	Sampler SamplerInfo
	// Data holds the initial texels, tightly packed. Nil leaves the texture
	// uninitialised.
	Data []byte
}

// DataSize returns the byte size implied by the extent and format.
func (info TextureInfo) DataSize() uint64 {
	n := uint64(info.Width) * uint64(info.Height) * uint64(info.Format.BytesPerTexel())
	switch info.Type {
	case Texture2DArray:
		if info.Layers > 1 {
			n *= uint64(info.Layers)
		}
	case TextureCube:
		n *= 6
	}
	return n
}

type BufferInfo struct {
	Type  BufferType
	Usage MemoryUsage
	// Size in bytes. Zero takes the length of Data.
	Size uint32
	Data []byte
}

type ShaderInfo struct {
	Type     ShaderType
	Language ShaderLanguage
	Source   string
	// EntryPoint selects a WGSL entry point. Empty picks the first one of Type.
	EntryPoint string
}

type BindingInfo struct {
	Type BindingType
	// Count is the array size of a texture binding. Zero means one.
	Count uint32
}

// ArraySize returns Count, treating zero as one.
func (b BindingInfo) ArraySize() uint32 {
	if b.Count == 0 {
		return 1
	}
	return b.Count
}

type BindingGroupLayoutInfo struct {
	Bindings []BindingInfo
}

// SameLayout reports whether both layouts have the same bindings in the same
// order. Array sizes are not compared.
func (info BindingGroupLayoutInfo) SameLayout(other BindingGroupLayoutInfo) bool {
	if len(info.Bindings) != len(other.Bindings) {
		return false
	}
	for i, b := range info.Bindings {
		if b.Type != other.Bindings[i].Type {
			return false
		}
	}
	return true
}

type BindingGroupInfo struct {
	Layout BindingGroupLayout
}

type PassAttachment struct {
	Format  Format
	LoadOp  LoadOp
	StoreOp StoreOp
}

type PassInfo struct {
	Name        string
	Attachments []PassAttachment
}

// HasDepthStencil reports whether any attachment has a depth-stencil format.
func (info PassInfo) HasDepthStencil() bool {
	for _, a := range info.Attachments {
		if a.Format.IsDepthStencil() {
			return true
		}
	}
	return false
}

type FrameBufferInfo struct {
	Width            uint32
	Height           uint32
	Pass             Pass
	ColorAttachments []Texture
	// DepthStencilAttachment is optional; leave it zero for none.
	DepthStencilAttachment Texture
}

type VertexAttribute struct {
	Location   uint32
	Type       DataType
	Normalized bool
}

type VertexBufferSlot struct {
	Attributes []VertexAttribute
	PollRate   PollRate
}

// Stride returns the packed size of one element of the slot.
func (s VertexBufferSlot) Stride() uint32 {
	var n uint32
	for _, a := range s.Attributes {
		n += a.Type.Size()
	}
	return n
}

type VertexLayout struct {
	Slots []VertexBufferSlot
}

type PipelineLayout struct {
	GroupLayouts []BindingGroupLayout
}

type DepthStencilState struct {
	DepthTest    bool
	DepthWrite   bool
	DepthCompare CompareOp
}

type RasterizationState struct {
	CullMode    CullMode
	PolygonMode PolygonMode
}

type BlendState struct {
	Enabled  bool
	SrcColor BlendFactor
	DstColor BlendFactor
	ColorOp  BlendOp
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
	AlphaOp  BlendOp
}

// AlphaBlend is the usual straight alpha blend state.
var AlphaBlend = BlendState{
	Enabled:  true,
	SrcColor: BlendSrcAlpha,
	DstColor: BlendOneMinusSrcAlpha,
	SrcAlpha: BlendOne,
	DstAlpha: BlendOneMinusSrcAlpha,
}

type PipelineInfo struct {
	Name           string
	Topology       Topology
	Layout         PipelineLayout
	VertexLayout   VertexLayout
	VertexShader   Shader
	FragmentShader Shader
	// Pass is informational on GL. It may be left zero.
	Pass          Pass
	Rasterization RasterizationState
	DepthStencil  DepthStencilState
	Blend         BlendState
}

type RenderPassBeginInfo struct {
	Pass Pass
	// FrameBuffer may be left zero to target the default frame buffer.
	FrameBuffer FrameBuffer
	// ClearValues are consumed in attachment order by attachments whose
	// load op is LoadClear.
	ClearValues []core.ClearValue
}

type DrawVertexInfo struct {
	VertexCount uint32
	VertexStart uint32
	// InstanceCount of zero draws a single instance.
	InstanceCount uint32
	InstanceStart uint32
}

type DrawIndexedInfo struct {
	IndexCount    uint32
	IndexStart    uint32
	InstanceCount uint32
	InstanceStart uint32
}

// Instances returns InstanceCount, treating zero as one.
func (info DrawVertexInfo) Instances() uint32 { return atLeastOne(info.InstanceCount) }

// Instances returns InstanceCount, treating zero as one.
func (info DrawIndexedInfo) Instances() uint32 { return atLeastOne(info.InstanceCount) }

func atLeastOne(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	return n
}
