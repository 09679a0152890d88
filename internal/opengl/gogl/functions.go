// Package gogl implements opengl.Functions with the go-gl 4.1 core
// bindings.
package gogl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/x2w-rook/Ludens-sub001/internal/opengl"
)

type Enum = opengl.Enum

// Functions calls into the current GL context. The zero value is ready once
// Init has succeeded.
type Functions struct{}

// Init loads the GL entry points. The context must be current on the
// calling thread.
func Init() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gogl: failed to initialize OpenGL: %w", err)
	}
	return &Functions{}, nil
}

var _ opengl.Functions = (*Functions)(nil)

func (*Functions) ActiveTexture(texture Enum) { gl.ActiveTexture(uint32(texture)) }

func (*Functions) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (*Functions) BindBuffer(target Enum, buffer uint32) { gl.BindBuffer(uint32(target), buffer) }

func (*Functions) BindBufferBase(target Enum, index, buffer uint32) {
	gl.BindBufferBase(uint32(target), index, buffer)
}

func (*Functions) BindFramebuffer(target Enum, framebuffer uint32) {
	gl.BindFramebuffer(uint32(target), framebuffer)
}

func (*Functions) BindTexture(target Enum, texture uint32) { gl.BindTexture(uint32(target), texture) }

func (*Functions) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

func (*Functions) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	gl.BlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (*Functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (*Functions) BufferData(target Enum, size int, data []byte, usage Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), size, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), size, gl.Ptr(data), uint32(usage))
}

func (*Functions) BufferSubData(target Enum, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(uint32(target), offset, len(data), gl.Ptr(data))
}

func (*Functions) CheckFramebufferStatus(target Enum) Enum {
	return Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (*Functions) ClearBufferfi(buffer Enum, drawBuffer int32, depth float32, stencil int32) {
	gl.ClearBufferfi(uint32(buffer), drawBuffer, depth, stencil)
}

func (*Functions) ClearBufferfv(buffer Enum, drawBuffer int32, value [4]float32) {
	gl.ClearBufferfv(uint32(buffer), drawBuffer, &value[0])
}

func (*Functions) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*Functions) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (*Functions) CreateFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (*Functions) CreateProgram() uint32 { return gl.CreateProgram() }

func (*Functions) CreateShader(typ Enum) uint32 { return gl.CreateShader(uint32(typ)) }

func (*Functions) CreateTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (*Functions) CreateVertexArray() uint32 {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return a
}

func (*Functions) CullFace(mode Enum) { gl.CullFace(uint32(mode)) }

func (*Functions) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (*Functions) DeleteFramebuffer(framebuffer uint32) { gl.DeleteFramebuffers(1, &framebuffer) }

func (*Functions) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*Functions) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*Functions) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (*Functions) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }

func (*Functions) DepthFunc(fn Enum) { gl.DepthFunc(uint32(fn)) }

func (*Functions) DepthMask(flag bool) { gl.DepthMask(flag) }

func (*Functions) Disable(cap Enum) { gl.Disable(uint32(cap)) }

func (*Functions) DrawArraysInstanced(mode Enum, first, count, instances int32) {
	gl.DrawArraysInstanced(uint32(mode), first, count, instances)
}

func (*Functions) DrawBuffers(buffers []Enum) {
	if len(buffers) == 0 {
		gl.DrawBuffers(0, nil)
		return
	}
	bufs := make([]uint32, len(buffers))
	for i, b := range buffers {
		bufs[i] = uint32(b)
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (*Functions) DrawElementsInstanced(mode Enum, count int32, typ Enum, offset int, instances int32) {
	gl.DrawElementsInstanced(uint32(mode), count, uint32(typ), gl.PtrOffset(offset), instances)
}

func (*Functions) Enable(cap Enum) { gl.Enable(uint32(cap)) }

func (*Functions) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*Functions) Finish() { gl.Finish() }

func (*Functions) FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int32) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), texture, level)
}

func (*Functions) FramebufferTextureLayer(target, attachment Enum, texture uint32, level, layer int32) {
	gl.FramebufferTextureLayer(uint32(target), uint32(attachment), texture, level, layer)
}

func (*Functions) GetIntegerv(pname Enum) int32 {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return v
}

func (*Functions) GetIntegeri(pname Enum, index uint32) int32 {
	var v int32
	gl.GetIntegeri_v(uint32(pname), index, &v)
	return v
}

func (*Functions) GetProgrami(program uint32, pname Enum) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (*Functions) GetProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return log
}

func (*Functions) GetShaderi(shader uint32, pname Enum) int32 {
	var v int32
	gl.GetShaderiv(shader, uint32(pname), &v)
	return v
}

func (*Functions) GetShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return log
}

func (*Functions) GetString(name Enum) string { return gl.GoStr(gl.GetString(uint32(name))) }

func (*Functions) GetUniformBlockIndex(program uint32, name string) uint32 {
	return gl.GetUniformBlockIndex(program, gl.Str(name+"\x00"))
}

func (*Functions) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Functions) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (*Functions) PixelStorei(pname Enum, param int32) { gl.PixelStorei(uint32(pname), param) }

func (*Functions) PolygonMode(face, mode Enum) { gl.PolygonMode(uint32(face), uint32(mode)) }

func (*Functions) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }

func (*Functions) ShaderSource(shader uint32, source string) {
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (*Functions) TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, typ Enum, data []byte) {
	if len(data) == 0 {
		gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(typ), nil)
		return
	}
	gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(typ), gl.Ptr(data))
}

func (*Functions) TexImage3D(target Enum, level int32, internalFormat Enum, width, height, depth int32, format, typ Enum, data []byte) {
	if len(data) == 0 {
		gl.TexImage3D(uint32(target), level, int32(internalFormat), width, height, depth, 0, uint32(format), uint32(typ), nil)
		return
	}
	gl.TexImage3D(uint32(target), level, int32(internalFormat), width, height, depth, 0, uint32(format), uint32(typ), gl.Ptr(data))
}

func (*Functions) TexParameteri(target, pname Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (*Functions) Uniform1i(location, v int32) { gl.Uniform1i(location, v) }

func (*Functions) UniformBlockBinding(program, blockIndex, binding uint32) {
	gl.UniformBlockBinding(program, blockIndex, binding)
}

func (*Functions) UseProgram(program uint32) { gl.UseProgram(program) }

func (*Functions) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisor(index, divisor) }

func (*Functions) VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, uint32(typ), normalized, stride, gl.PtrOffset(offset))
}

func (*Functions) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
