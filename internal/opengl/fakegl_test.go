package opengl

import (
	"strings"
)

type drawCall struct {
	mode      Enum
	first     int32
	count     int32
	typ       Enum
	offset    int
	instances int32
	indexed   bool
}

type clearCall struct {
	buffer  Enum
	draw    int32
	color   [4]float32
	depth   float32
	stencil int32
}

type texSlot struct {
	unit   uint32
	target Enum
}

// fakeGL models the driver's binding state and records the calls that
// matter to the tests. It never fails unless told to.
type fakeGL struct {
	next  uint32
	calls map[string]int

	vertexArray  uint32
	buffers      map[Enum]uint32
	elements     map[uint32]uint32
	uniformBases map[uint32]uint32
	program      uint32
	framebuffer  uint32
	activeUnit   uint32
	textures     map[texSlot]uint32
	caps         map[Enum]bool

	bufferData  map[uint32][]byte
	shaderSrc   map[uint32]string
	uniforms    map[string]int32
	blocks      map[string]uint32
	unitOf      map[int32]int32
	blockBase   map[uint32]uint32
	attribs     map[uint32]int32 // location -> stride
	divisors    map[uint32]uint32
	depthMask   bool
	draws       []drawCall
	clears      []clearCall
	viewports   [][4]int32
	scissor     [4]int32
	drawBuffers []Enum
	deleted     map[uint32]bool

	failCompile bool
	failLink    bool
	fbStatus    Enum
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		calls:        make(map[string]int),
		buffers:      make(map[Enum]uint32),
		elements:     make(map[uint32]uint32),
		uniformBases: make(map[uint32]uint32),
		textures:     make(map[texSlot]uint32),
		caps:         make(map[Enum]bool),
		bufferData:   make(map[uint32][]byte),
		shaderSrc:    make(map[uint32]string),
		uniforms:     make(map[string]int32),
		blocks:       make(map[string]uint32),
		unitOf:       make(map[int32]int32),
		blockBase:    make(map[uint32]uint32),
		attribs:      make(map[uint32]int32),
		divisors:     make(map[uint32]uint32),
		depthMask:    true,
		deleted:      make(map[uint32]bool),
		fbStatus:     FRAMEBUFFER_COMPLETE,
	}
}

func (f *fakeGL) call(name string) { f.calls[name]++ }

func (f *fakeGL) name() uint32 {
	f.next++
	return f.next
}

func (f *fakeGL) ActiveTexture(texture Enum) {
	f.call("ActiveTexture")
	f.activeUnit = uint32(texture - TEXTURE0)
}

func (f *fakeGL) AttachShader(program, shader uint32) { f.call("AttachShader") }

func (f *fakeGL) BindBuffer(target Enum, buffer uint32) {
	f.call("BindBuffer")
	if target == ELEMENT_ARRAY_BUFFER {
		f.elements[f.vertexArray] = buffer
		return
	}
	f.buffers[target] = buffer
}

func (f *fakeGL) BindBufferBase(target Enum, index, buffer uint32) {
	f.call("BindBufferBase")
	f.uniformBases[index] = buffer
	f.buffers[target] = buffer
}

func (f *fakeGL) BindFramebuffer(target Enum, framebuffer uint32) {
	f.call("BindFramebuffer")
	f.framebuffer = framebuffer
}

func (f *fakeGL) BindTexture(target Enum, texture uint32) {
	f.call("BindTexture")
	f.textures[texSlot{f.activeUnit, target}] = texture
}

func (f *fakeGL) BindVertexArray(array uint32) {
	f.call("BindVertexArray")
	f.vertexArray = array
}

func (f *fakeGL) BlendEquationSeparate(modeRGB, modeAlpha Enum) { f.call("BlendEquationSeparate") }

func (f *fakeGL) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	f.call("BlendFuncSeparate")
}

func (f *fakeGL) BufferData(target Enum, size int, data []byte, usage Enum) {
	f.call("BufferData")
	f.bufferData[f.buffers[target]] = make([]byte, size)
}

func (f *fakeGL) BufferSubData(target Enum, offset int, data []byte) {
	f.call("BufferSubData")
	copy(f.bufferData[f.buffers[target]][offset:], data)
}

func (f *fakeGL) CheckFramebufferStatus(target Enum) Enum { return f.fbStatus }

func (f *fakeGL) ClearBufferfi(buffer Enum, drawBuffer int32, depth float32, stencil int32) {
	f.clears = append(f.clears, clearCall{buffer: buffer, draw: drawBuffer, depth: depth, stencil: stencil})
}

func (f *fakeGL) ClearBufferfv(buffer Enum, drawBuffer int32, value [4]float32) {
	c := clearCall{buffer: buffer, draw: drawBuffer, color: value}
	if buffer == DEPTH {
		c = clearCall{buffer: buffer, draw: drawBuffer, depth: value[0]}
	}
	f.clears = append(f.clears, c)
}

func (f *fakeGL) CompileShader(shader uint32) { f.call("CompileShader") }
func (f *fakeGL) CreateBuffer() uint32 { return f.name() }
func (f *fakeGL) CreateFramebuffer() uint32 { return f.name() }
func (f *fakeGL) CreateProgram() uint32 { return f.name() }
func (f *fakeGL) CreateShader(typ Enum) uint32 { return f.name() }
func (f *fakeGL) CreateTexture() uint32 { return f.name() }
func (f *fakeGL) CreateVertexArray() uint32 { return f.name() }
func (f *fakeGL) CullFace(mode Enum) { f.call("CullFace") }
func (f *fakeGL) DeleteBuffer(buffer uint32) { f.deleted[buffer] = true }

func (f *fakeGL) DeleteFramebuffer(fb uint32) {
	f.deleted[fb] = true
	if f.framebuffer == fb {
		f.framebuffer = 0
	}
}

func (f *fakeGL) DeleteProgram(program uint32) { f.deleted[program] = true }
func (f *fakeGL) DeleteShader(shader uint32) { f.deleted[shader] = true }
func (f *fakeGL) DeleteTexture(texture uint32) { f.deleted[texture] = true }
func (f *fakeGL) DeleteVertexArray(array uint32) { f.deleted[array] = true }
func (f *fakeGL) DepthFunc(fn Enum) { f.call("DepthFunc") }

func (f *fakeGL) DepthMask(flag bool) {
	f.call("DepthMask")
	f.depthMask = flag
}

func (f *fakeGL) Disable(cap Enum) {
	f.call("Disable")
	f.caps[cap] = false
}

func (f *fakeGL) DrawArraysInstanced(mode Enum, first, count, instances int32) {
	f.draws = append(f.draws, drawCall{mode: mode, first: first, count: count, instances: instances})
}

func (f *fakeGL) DrawBuffers(buffers []Enum) { f.drawBuffers = append([]Enum(nil), buffers...) }

func (f *fakeGL) DrawElementsInstanced(mode Enum, count int32, typ Enum, offset int, instances int32) {
	f.draws = append(f.draws, drawCall{mode: mode, count: count, typ: typ, offset: offset, instances: instances, indexed: true})
}

func (f *fakeGL) Enable(cap Enum) {
	f.call("Enable")
	f.caps[cap] = true
}

func (f *fakeGL) EnableVertexAttribArray(index uint32) { f.call("EnableVertexAttribArray") }
func (f *fakeGL) Finish() { f.call("Finish") }

func (f *fakeGL) FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int32) {
	f.call("FramebufferTexture2D")
}

func (f *fakeGL) FramebufferTextureLayer(target, attachment Enum, texture uint32, level, layer int32) {
	f.call("FramebufferTextureLayer")
}

func (f *fakeGL) GetIntegerv(pname Enum) int32 {
	f.call("GetIntegerv")
	switch pname {
	case VERTEX_ARRAY_BINDING:
		return int32(f.vertexArray)
	case ARRAY_BUFFER_BINDING:
		return int32(f.buffers[ARRAY_BUFFER])
	case ELEMENT_ARRAY_BUFFER_BINDING:
		return int32(f.elements[f.vertexArray])
	case UNIFORM_BUFFER_BINDING:
		return int32(f.buffers[UNIFORM_BUFFER])
	case CURRENT_PROGRAM:
		return int32(f.program)
	case FRAMEBUFFER_BINDING:
		return int32(f.framebuffer)
	case ACTIVE_TEXTURE:
		return int32(TEXTURE0) + int32(f.activeUnit)
	case TEXTURE_BINDING_2D:
		return int32(f.textures[texSlot{f.activeUnit, TEXTURE_2D}])
	case TEXTURE_BINDING_2D_ARRAY:
		return int32(f.textures[texSlot{f.activeUnit, TEXTURE_2D_ARRAY}])
	case TEXTURE_BINDING_CUBE_MAP:
		return int32(f.textures[texSlot{f.activeUnit, TEXTURE_CUBE_MAP}])
	}
	return 0
}

func (f *fakeGL) GetIntegeri(pname Enum, index uint32) int32 {
	f.call("GetIntegeri")
	return int32(f.uniformBases[index])
}

func (f *fakeGL) GetProgrami(program uint32, pname Enum) int32 {
	if f.failLink {
		return int32(FALSE)
	}
	return int32(TRUE)
}

func (f *fakeGL) GetProgramInfoLog(program uint32) string { return "error: link\x00" }

func (f *fakeGL) GetShaderi(shader uint32, pname Enum) int32 {
	if f.failCompile {
		return int32(FALSE)
	}
	return int32(TRUE)
}

func (f *fakeGL) GetShaderInfoLog(shader uint32) string {
	return "0:1(1): error: syntax error\n\x00"
}

func (f *fakeGL) GetString(name Enum) string { return "4.1 fake" }

func (f *fakeGL) GetUniformBlockIndex(program uint32, name string) uint32 {
	if idx, ok := f.blocks[name]; ok {
		return idx
	}
	return INVALID_INDEX
}

func (f *fakeGL) GetUniformLocation(program uint32, name string) int32 {
	if loc, ok := f.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeGL) LinkProgram(program uint32) { f.call("LinkProgram") }
func (f *fakeGL) PixelStorei(pname Enum, param int32) { f.call("PixelStorei") }
func (f *fakeGL) PolygonMode(face, mode Enum) { f.call("PolygonMode") }
func (f *fakeGL) Scissor(x, y, width, height int32) { f.scissor = [4]int32{x, y, width, height} }
func (f *fakeGL) ShaderSource(shader uint32, s string) { f.shaderSrc[shader] = s }

func (f *fakeGL) TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, typ Enum, data []byte) {
	f.call("TexImage2D")
}

func (f *fakeGL) TexImage3D(target Enum, level int32, internalFormat Enum, width, height, depth int32, format, typ Enum, data []byte) {
	f.call("TexImage3D")
}

func (f *fakeGL) TexParameteri(target, pname Enum, param int32) { f.call("TexParameteri") }

func (f *fakeGL) Uniform1i(location, v int32) { f.unitOf[location] = v }

func (f *fakeGL) UniformBlockBinding(program, blockIndex, binding uint32) {
	f.blockBase[blockIndex] = binding
}

func (f *fakeGL) UseProgram(program uint32) {
	f.call("UseProgram")
	f.program = program
}

func (f *fakeGL) VertexAttribDivisor(index, divisor uint32) { f.divisors[index] = divisor }

func (f *fakeGL) VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int) {
	f.attribs[index] = stride
}

func (f *fakeGL) Viewport(x, y, width, height int32) {
	f.viewports = append(f.viewports, [4]int32{x, y, width, height})
}

// compiled returns the sources handed to the driver that contain s.
func (f *fakeGL) compiled(s string) []string {
	var out []string
	for _, src := range f.shaderSrc {
		if strings.Contains(src, s) {
			out = append(out, src)
		}
	}
	return out
}
