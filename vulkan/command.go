package vulkan

import (
	"fmt"

	"github.com/x2w-rook/Ludens-sub001/core"
	"github.com/x2w-rook/Ludens-sub001/render"
)

// Op is a recorded command.
type Op uint8

const (
	OpBeginRenderPass Op = iota
	OpEndRenderPass
	OpBindPipeline
	OpBindDescriptorSet
	OpBindVertexBuffer
	OpBindIndexBuffer
	OpDraw
	OpDrawIndexed
	OpSetScissor
	OpSetViewport
)

var opNames = [...]string{
	"BeginRenderPass", "EndRenderPass", "BindPipeline", "BindDescriptorSet",
	"BindVertexBuffer", "BindIndexBuffer", "Draw", "DrawIndexed",
	"SetScissor", "SetViewport",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// Command is one entry of a CommandBuffer. Object is the id of the object
// the command refers to, if any.
type Command struct {
	Op          Op
	Object      uint64
	FrameBuffer uint64
	Slot        int

	// Draw parameters: vertex or index count, first vertex or index,
	// instance count and first instance.
	Count, First, Instances, FirstInstance uint32

	IndexType   render.IndexType
	Scissor     *core.Rect
	Viewport    core.Viewport
	ClearValues []core.ClearValue
}

// CommandBuffer records the commands of one frame.
type CommandBuffer struct {
	Commands  []Command
	recording bool
}

func (cb *CommandBuffer) Begin() {
	cb.Commands = cb.Commands[:0]
	cb.recording = true
}

func (cb *CommandBuffer) End() {
	cb.recording = false
}

// Recording reports whether the buffer is between Begin and End.
func (cb *CommandBuffer) Recording() bool { return cb.recording }

func (cb *CommandBuffer) record(c Command) {
	cb.Commands = append(cb.Commands, c)
}

func (cb *CommandBuffer) BeginRenderPass(pass, framebuffer uint64, clear []core.ClearValue) {
	cb.record(Command{Op: OpBeginRenderPass, Object: pass, FrameBuffer: framebuffer,
		ClearValues: append([]core.ClearValue(nil), clear...)})
}

func (cb *CommandBuffer) EndRenderPass() {
	cb.record(Command{Op: OpEndRenderPass})
}

func (cb *CommandBuffer) BindPipeline(pipeline uint64) {
	cb.record(Command{Op: OpBindPipeline, Object: pipeline})
}

func (cb *CommandBuffer) BindDescriptorSet(slot int, set uint64) {
	cb.record(Command{Op: OpBindDescriptorSet, Object: set, Slot: slot})
}

func (cb *CommandBuffer) BindVertexBuffer(slot int, buffer uint64) {
	cb.record(Command{Op: OpBindVertexBuffer, Object: buffer, Slot: slot})
}

func (cb *CommandBuffer) BindIndexBuffer(buffer uint64, indexType render.IndexType) {
	cb.record(Command{Op: OpBindIndexBuffer, Object: buffer, IndexType: indexType})
}

func (cb *CommandBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	cb.record(Command{Op: OpDraw, Count: vertexCount, Instances: instanceCount,
		First: firstVertex, FirstInstance: firstInstance})
}

func (cb *CommandBuffer) DrawIndexed(indexCount, instanceCount, firstIndex, firstInstance uint32) {
	cb.record(Command{Op: OpDrawIndexed, Count: indexCount, Instances: instanceCount,
		First: firstIndex, FirstInstance: firstInstance})
}

func (cb *CommandBuffer) SetScissor(r *core.Rect) {
	c := Command{Op: OpSetScissor}
	if r != nil {
		rr := *r
		c.Scissor = &rr
	}
	cb.record(c)
}

func (cb *CommandBuffer) SetViewport(vp core.Viewport) {
	cb.record(Command{Op: OpSetViewport, Viewport: vp})
}
