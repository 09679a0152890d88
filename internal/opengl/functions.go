package opengl

// Functions is the subset of the OpenGL 4.1 core API the backend calls.
// Object names are plain uint32 values; slices replace pointer and length
// pairs. The production implementation lives in package gogl.
type Functions interface {
	ActiveTexture(texture Enum)
	AttachShader(program, shader uint32)
	BindBuffer(target Enum, buffer uint32)
	BindBufferBase(target Enum, index, buffer uint32)
	BindFramebuffer(target Enum, framebuffer uint32)
	BindTexture(target Enum, texture uint32)
	BindVertexArray(array uint32)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	CheckFramebufferStatus(target Enum) Enum
	ClearBufferfi(buffer Enum, drawBuffer int32, depth float32, stencil int32)
	ClearBufferfv(buffer Enum, drawBuffer int32, value [4]float32)
	CompileShader(shader uint32)
	CreateBuffer() uint32
	CreateFramebuffer() uint32
	CreateProgram() uint32
	CreateShader(typ Enum) uint32
	CreateTexture() uint32
	CreateVertexArray() uint32
	CullFace(mode Enum)
	DeleteBuffer(buffer uint32)
	DeleteFramebuffer(framebuffer uint32)
	DeleteProgram(program uint32)
	DeleteShader(shader uint32)
	DeleteTexture(texture uint32)
	DeleteVertexArray(array uint32)
	DepthFunc(fn Enum)
	DepthMask(flag bool)
	Disable(cap Enum)
	DrawArraysInstanced(mode Enum, first, count, instances int32)
	DrawBuffers(buffers []Enum)
	DrawElementsInstanced(mode Enum, count int32, typ Enum, offset int, instances int32)
	Enable(cap Enum)
	EnableVertexAttribArray(index uint32)
	Finish()
	FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int32)
	FramebufferTextureLayer(target, attachment Enum, texture uint32, level, layer int32)
	GetIntegerv(pname Enum) int32
	GetIntegeri(pname Enum, index uint32) int32
	GetProgrami(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32) string
	GetShaderi(shader uint32, pname Enum) int32
	GetShaderInfoLog(shader uint32) string
	GetString(name Enum) string
	GetUniformBlockIndex(program uint32, name string) uint32
	GetUniformLocation(program uint32, name string) int32
	LinkProgram(program uint32)
	PixelStorei(pname Enum, param int32)
	PolygonMode(face, mode Enum)
	Scissor(x, y, width, height int32)
	ShaderSource(shader uint32, source string)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, typ Enum, data []byte)
	TexImage3D(target Enum, level int32, internalFormat Enum, width, height, depth int32, format, typ Enum, data []byte)
	TexParameteri(target, pname Enum, param int32)
	Uniform1i(location, v int32)
	UniformBlockBinding(program, blockIndex, binding uint32)
	UseProgram(program uint32)
	VertexAttribDivisor(index, divisor uint32)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int)
	Viewport(x, y, width, height int32)
}
