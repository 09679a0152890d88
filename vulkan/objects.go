package vulkan

import "github.com/x2w-rook/Ludens-sub001/render"

// DescriptorType mirrors VkDescriptorType for the bindings a group can hold.
type DescriptorType uint8

const (
	DescriptorCombinedImageSampler DescriptorType = iota
	DescriptorUniformBuffer
)

func descriptorType(t render.BindingType) DescriptorType {
	if t == render.BindingUniformBuffer {
		return DescriptorUniformBuffer
	}
	return DescriptorCombinedImageSampler
}

// InputRate mirrors VkVertexInputRate.
type InputRate uint8

const (
	InputRateVertex InputRate = iota
	InputRateInstance
)

type Image struct {
	render.TextureBase
	MipLevels uint32
}

// Buffer keeps its contents in host memory.
type Buffer struct {
	render.BufferBase
	Memory []byte
}

type ShaderModule struct {
	render.ShaderBase
	// Code is the SPIR-V binary of WGSL shaders.
	Code []byte
}

type DescriptorBinding struct {
	Binding uint32
	Type    DescriptorType
	Count   uint32
}

type DescriptorSetLayout struct {
	render.BindingGroupLayoutBase
	Bindings []DescriptorBinding
}

type DescriptorSet struct {
	render.BindingGroupBase
}

type RenderPass struct {
	render.PassBase
}

type Framebuffer struct {
	render.FrameBufferBase
	// Rebuilds counts invalidations since creation.
	Rebuilds int
}

type VertexBinding struct {
	Binding   uint32
	Stride    uint32
	InputRate InputRate
}

type VertexAttribute struct {
	Location uint32
	Binding  uint32
	Offset   uint32
	Type     render.DataType
}

type Pipeline struct {
	render.PipelineBase
	Bindings   []VertexBinding
	Attributes []VertexAttribute
}

// vertexInput packs each slot's attributes tightly in declaration order.
func vertexInput(layout render.VertexLayout) ([]VertexBinding, []VertexAttribute) {
	var (
		bindings []VertexBinding
		attrs    []VertexAttribute
	)
	for i, slot := range layout.Slots {
		rate := InputRateVertex
		if slot.PollRate == render.PollPerInstance {
			rate = InputRateInstance
		}
		bindings = append(bindings, VertexBinding{Binding: uint32(i), Stride: slot.Stride(), InputRate: rate})
		var offset uint32
		for _, a := range slot.Attributes {
			attrs = append(attrs, VertexAttribute{Location: a.Location, Binding: uint32(i), Offset: offset, Type: a.Type})
			offset += a.Type.Size()
		}
	}
	return bindings, attrs
}
