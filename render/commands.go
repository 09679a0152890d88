package render

import "github.com/x2w-rook/Ludens-sub001/core"

func (d Device) BeginFrame() Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if err := dev.backend.BeginFrame(); err != nil {
		return dev.report(Fail(ResourceDevice, err))
	}
	return dev.report(okResult())
}

func (d Device) EndFrame() Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if err := dev.backend.EndFrame(); err != nil {
		return dev.report(Fail(ResourceDevice, err))
	}
	return dev.report(okResult())
}

// BeginRenderPass starts rendering into info.FrameBuffer, or the default
// frame buffer when it is zero. Every attachment with LoadClear takes the
// next clear value, in attachment order; color attachments need a color
// value and depth-stencil attachments a depth-stencil value.
func (d Device) BeginRenderPass(info RenderPassBeginInfo) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	pass := dev.renderPass(info.Pass)
	if pass == nil {
		return dev.report(invalidHandle())
	}
	if info.FrameBuffer.IsValid() && dev.frameBuffer(info.FrameBuffer) == nil {
		return dev.report(invalidHandle())
	}

	expect := 0
	for _, a := range pass.Info.Attachments {
		if a.LoadOp == LoadClear {
			expect++
		}
	}
	if expect != len(info.ClearValues) {
		return dev.report(passBeginMismatch(expect, len(info.ClearValues), -1))
	}
	next := 0
	for i, a := range pass.Info.Attachments {
		if a.LoadOp != LoadClear {
			continue
		}
		cv := info.ClearValues[next]
		next++
		if a.Format.IsDepthStencil() && cv.Kind != core.ClearDepthStencilValue ||
			!a.Format.IsDepthStencil() && cv.Kind != core.ClearColorValue {
			return dev.report(passBeginMismatch(expect, len(info.ClearValues), i))
		}
	}

	if err := dev.backend.BeginRenderPass(info.Pass.key, info.FrameBuffer.key, info.ClearValues); err != nil {
		return dev.report(Fail(ResourcePass, err))
	}
	dev.pass = info.Pass
	return dev.report(okResult())
}

func (d Device) EndRenderPass() Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if err := dev.backend.EndRenderPass(); err != nil {
		return dev.report(Fail(ResourcePass, err))
	}
	dev.pass.Reset()
	return dev.report(okResult())
}

// SetPipeline binds a pipeline. Binding a different pipeline than the
// current one clears the index buffer binding, and vertex buffers must be
// set again.
func (d Device) SetPipeline(pipeline Pipeline) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	p := dev.pipelineBase(pipeline)
	if p == nil {
		return dev.report(invalidHandle())
	}
	if p.Info.DepthStencil.DepthTest {
		if pass := dev.renderPass(dev.pass); pass != nil && !pass.Info.HasDepthStencil() {
			Logger().Warn("render: depth test enabled without a depth-stencil attachment",
				"pipeline", p.Info.Name, "pass", pass.Info.Name)
		}
	}
	if err := dev.backend.SetPipeline(pipeline.key); err != nil {
		return dev.report(Fail(ResourcePipeline, err))
	}
	if dev.pipeline.id != pipeline.id {
		dev.indexBuffer.Reset()
	}
	dev.pipeline = pipeline
	return dev.report(okResult())
}

func (dev *device) boundPipeline() *PipelineBase {
	return dev.pipelineBase(dev.pipeline)
}

// SetBindingGroup binds group at slot of the bound pipeline's layout. The
// group's layout must match the pipeline's layout at that slot.
func (d Device) SetBindingGroup(slot int, group BindingGroup) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	p := dev.boundPipeline()
	if p == nil {
		return dev.report(resourceMissing(ResourcePipeline))
	}
	g := dev.bindingGroup(group)
	if g == nil {
		return dev.report(invalidHandle())
	}
	if slot < 0 || slot >= len(p.GroupLayouts) {
		return dev.report(invalidIndex())
	}
	if !p.GroupLayouts[slot].SameLayout(g.Layout) {
		return dev.report(Result{Kind: BindingGroupMismatch})
	}
	if err := dev.backend.SetBindingGroup(slot, group.key); err != nil {
		return dev.report(Fail(ResourceBindingGroup, err))
	}
	return dev.report(okResult())
}

func (d Device) SetVertexBuffer(slot int, buffer Buffer) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	p := dev.boundPipeline()
	if p == nil {
		return dev.report(resourceMissing(ResourcePipeline))
	}
	b := dev.buffer(buffer)
	if b == nil {
		return dev.report(invalidHandle())
	}
	if b.Info.Type != BufferVertex {
		return dev.report(bufferTypeMismatch(BufferVertex, b.Info.Type))
	}
	if slot < 0 || slot >= len(p.Info.VertexLayout.Slots) {
		return dev.report(invalidIndex())
	}
	if err := dev.backend.SetVertexBuffer(slot, buffer.key); err != nil {
		return dev.report(Fail(ResourceBuffer, err))
	}
	return dev.report(okResult())
}

func (d Device) SetIndexBuffer(buffer Buffer, indexType IndexType) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if dev.boundPipeline() == nil {
		return dev.report(resourceMissing(ResourcePipeline))
	}
	b := dev.buffer(buffer)
	if b == nil {
		return dev.report(invalidHandle())
	}
	if b.Info.Type != BufferIndex {
		return dev.report(bufferTypeMismatch(BufferIndex, b.Info.Type))
	}
	if err := dev.backend.SetIndexBuffer(buffer.key, indexType); err != nil {
		return dev.report(Fail(ResourceBuffer, err))
	}
	dev.indexBuffer = buffer
	return dev.report(okResult())
}

func (d Device) DrawVertex(info DrawVertexInfo) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if dev.boundPipeline() == nil {
		return dev.report(resourceMissing(ResourcePipeline))
	}
	if err := dev.backend.DrawVertex(info); err != nil {
		return dev.report(Fail(ResourcePipeline, err))
	}
	if s := dev.stats; s != nil {
		s.DrawVertexCalls++
		s.TotalVertices += uint64(info.VertexCount) * uint64(info.Instances())
	}
	return dev.report(okResult())
}

func (d Device) DrawIndexed(info DrawIndexedInfo) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if dev.boundPipeline() == nil {
		return dev.report(resourceMissing(ResourcePipeline))
	}
	if dev.buffer(dev.indexBuffer) == nil {
		return dev.report(resourceMissing(ResourceBuffer))
	}
	if err := dev.backend.DrawIndexed(info); err != nil {
		return dev.report(Fail(ResourcePipeline, err))
	}
	if s := dev.stats; s != nil {
		s.DrawIndexedCalls++
		s.TotalVertices += uint64(info.IndexCount) * uint64(info.Instances())
	}
	return dev.report(okResult())
}

// PushScissor pushes a scissor rectangle and applies it.
func (d Device) PushScissor(r core.Rect) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if err := dev.backend.SetScissor(&r); err != nil {
		return dev.report(Fail(ResourceDevice, err))
	}
	dev.scissors = append(dev.scissors, r)
	return dev.report(okResult())
}

// PopScissor restores the previous scissor rectangle, or disables the
// scissor test when the stack becomes empty.
func (d Device) PopScissor() Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	n := len(dev.scissors)
	if n == 0 {
		return dev.report(Result{Kind: ScissorStackEmpty})
	}
	var top *core.Rect
	if n > 1 {
		top = &dev.scissors[n-2]
	}
	if err := dev.backend.SetScissor(top); err != nil {
		return dev.report(Fail(ResourceDevice, err))
	}
	dev.scissors = dev.scissors[:n-1]
	return dev.report(okResult())
}

// ResizeViewport updates the default frame buffer extent, usually after the
// window was resized.
func (d Device) ResizeViewport(width, height uint32) Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	if err := dev.backend.ResizeViewport(width, height); err != nil {
		return dev.report(Fail(ResourceDevice, err))
	}
	dev.extent = core.Extent{Width: width, Height: height}
	return dev.report(okResult())
}

// Extent returns the size last passed to ResizeViewport.
func (d Device) Extent() core.Extent {
	if dev := d.live(); dev != nil {
		return dev.extent
	}
	return core.Extent{}
}

// WaitIdle blocks until the backend finished all submitted work.
func (d Device) WaitIdle() Result {
	dev := d.live()
	if dev == nil {
		return invalidHandle()
	}
	dev.backend.WaitIdle()
	return dev.report(okResult())
}
