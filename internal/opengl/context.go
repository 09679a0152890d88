package opengl

import (
	"github.com/x2w-rook/Ludens-sub001/render"
)

// Object is a native GL object tagged with the id of the backend object
// owning it. The cache compares id and name together, so a recycled GL name
// never aliases a deleted object and a rebuilt object never aliases the one
// it replaced.
type Object struct {
	ID   uint64
	Name uint32
}

func (o Object) IsZero() bool { return o.ID == 0 && o.Name == 0 }

type textureSlot struct {
	unit   uint32
	target Enum
}

// Context caches the GL binding state and elides binds of objects that are
// already bound. In verify mode every elided bind is checked against the
// driver; a mismatch is logged, counted and repaired by binding again.
type Context struct {
	f      Functions
	verify bool

	vertexArray    Object
	arrayBuffer    Object
	elementBuffers map[uint32]Object // by vertex array name
	uniformBuffer  Object
	uniformBases   map[uint32]Object
	program        Object
	framebuffer    Object
	activeUnit     uint32
	textures       map[textureSlot]Object
	caps           map[Enum]bool

	binds   int
	elided  int
	desyncs int
}

func NewContext(f Functions) *Context {
	return &Context{
		f:              f,
		elementBuffers: make(map[uint32]Object),
		uniformBases:   make(map[uint32]Object),
		textures:       make(map[textureSlot]Object),
		caps:           make(map[Enum]bool),
	}
}

// SetVerify turns the driver consistency check on or off.
func (c *Context) SetVerify(on bool) { c.verify = on }

func (c *Context) Verify() bool { return c.verify }

// Desyncs returns how many cached bindings disagreed with the driver.
func (c *Context) Desyncs() int { return c.desyncs }

// Stats returns the number of native binds issued and elided.
func (c *Context) Stats() (binds, elided int) { return c.binds, c.elided }

// VertexArray returns the cached vertex array binding.
func (c *Context) VertexArray() Object { return c.vertexArray }

// Program returns the cached current program.
func (c *Context) Program() Object { return c.program }

// Framebuffer returns the cached frame buffer binding.
func (c *Context) Framebuffer() Object { return c.framebuffer }

// Texture returns the cached binding of target on unit.
func (c *Context) Texture(unit uint32, target Enum) Object {
	return c.textures[textureSlot{unit: unit, target: target}]
}

// hit reports whether the bind of o can be skipped. cached is the cache
// entry; query reads the driver's binding when verifying.
func (c *Context) hit(cached, o Object, what string, query func() int32) bool {
	if cached != o {
		return false
	}
	if c.verify {
		if actual := uint32(query()); actual != o.Name {
			c.desyncs++
			render.Logger().Error("opengl: binding cache out of sync",
				"binding", what, "cached", o.Name, "driver", actual)
			return false
		}
	}
	c.elided++
	return true
}

func (c *Context) BindVertexArray(o Object) {
	if c.hit(c.vertexArray, o, "vertex array", func() int32 {
		return c.f.GetIntegerv(VERTEX_ARRAY_BINDING)
	}) {
		return
	}
	c.f.BindVertexArray(o.Name)
	c.vertexArray = o
	c.binds++
}

// BindBuffer binds o to ARRAY_BUFFER, ELEMENT_ARRAY_BUFFER or
// UNIFORM_BUFFER. The element buffer is part of the vertex array state and
// is cached per vertex array.
func (c *Context) BindBuffer(target Enum, o Object) {
	switch target {
	case ARRAY_BUFFER:
		if c.hit(c.arrayBuffer, o, "array buffer", func() int32 {
			return c.f.GetIntegerv(ARRAY_BUFFER_BINDING)
		}) {
			return
		}
		c.arrayBuffer = o
	case ELEMENT_ARRAY_BUFFER:
		if c.hit(c.elementBuffers[c.vertexArray.Name], o, "element buffer", func() int32 {
			return c.f.GetIntegerv(ELEMENT_ARRAY_BUFFER_BINDING)
		}) {
			return
		}
		c.elementBuffers[c.vertexArray.Name] = o
	case UNIFORM_BUFFER:
		if c.hit(c.uniformBuffer, o, "uniform buffer", func() int32 {
			return c.f.GetIntegerv(UNIFORM_BUFFER_BINDING)
		}) {
			return
		}
		c.uniformBuffer = o
	default:
		panic("opengl: BindBuffer: unsupported target")
	}
	c.f.BindBuffer(target, o.Name)
	c.binds++
}

// BindBufferBase binds o to uniform buffer index. Like the driver, it also
// replaces the generic UNIFORM_BUFFER binding.
func (c *Context) BindBufferBase(target Enum, index uint32, o Object) {
	if target != UNIFORM_BUFFER {
		panic("opengl: BindBufferBase: unsupported target")
	}
	if c.uniformBuffer == o && c.hit(c.uniformBases[index], o, "uniform buffer base", func() int32 {
		return c.f.GetIntegeri(UNIFORM_BUFFER_BINDING, index)
	}) {
		return
	}
	c.f.BindBufferBase(target, index, o.Name)
	c.uniformBases[index] = o
	c.uniformBuffer = o
	c.binds++
}

func (c *Context) UseProgram(o Object) {
	if c.hit(c.program, o, "program", func() int32 {
		return c.f.GetIntegerv(CURRENT_PROGRAM)
	}) {
		return
	}
	c.f.UseProgram(o.Name)
	c.program = o
	c.binds++
}

// BindFramebuffer binds o for drawing and reading. The zero Object is the
// default frame buffer.
func (c *Context) BindFramebuffer(o Object) {
	if c.hit(c.framebuffer, o, "framebuffer", func() int32 {
		return c.f.GetIntegerv(FRAMEBUFFER_BINDING)
	}) {
		return
	}
	c.f.BindFramebuffer(FRAMEBUFFER, o.Name)
	c.framebuffer = o
	c.binds++
}

// ActiveTexture selects texture unit (an index, not TEXTURE0+index).
func (c *Context) ActiveTexture(unit uint32) {
	if unit == c.activeUnit {
		if !c.verify {
			return
		}
		actual := uint32(c.f.GetIntegerv(ACTIVE_TEXTURE)) - uint32(TEXTURE0)
		if actual == unit {
			return
		}
		c.desyncs++
		render.Logger().Error("opengl: binding cache out of sync",
			"binding", "active texture", "cached", unit, "driver", actual)
	}
	c.f.ActiveTexture(TEXTURE0 + Enum(unit))
	c.activeUnit = unit
}

func textureBindingQuery(target Enum) Enum {
	switch target {
	case TEXTURE_2D_ARRAY:
		return TEXTURE_BINDING_2D_ARRAY
	case TEXTURE_CUBE_MAP:
		return TEXTURE_BINDING_CUBE_MAP
	}
	return TEXTURE_BINDING_2D
}

// BindTexture binds o to target on unit. Each (unit, target) pair is
// cached on its own.
func (c *Context) BindTexture(unit uint32, target Enum, o Object) {
	slot := textureSlot{unit: unit, target: target}
	cached := c.textures[slot]
	if cached == o && !c.verify {
		c.elided++
		return
	}
	c.ActiveTexture(unit)
	if c.hit(cached, o, "texture", func() int32 {
		return c.f.GetIntegerv(textureBindingQuery(target))
	}) {
		return
	}
	c.f.BindTexture(target, o.Name)
	c.textures[slot] = o
	c.binds++
}

// Enable turns a server-side capability on or off.
func (c *Context) Enable(cap Enum, on bool) {
	if cur, ok := c.caps[cap]; ok && cur == on {
		return
	}
	if on {
		c.f.Enable(cap)
	} else {
		c.f.Disable(cap)
	}
	c.caps[cap] = on
}

func (c *Context) DeleteVertexArray(o Object) {
	c.f.DeleteVertexArray(o.Name)
	if c.vertexArray == o {
		c.vertexArray = Object{}
	}
	delete(c.elementBuffers, o.Name)
}

func (c *Context) DeleteBuffer(o Object) {
	c.f.DeleteBuffer(o.Name)
	if c.arrayBuffer == o {
		c.arrayBuffer = Object{}
	}
	if c.uniformBuffer == o {
		c.uniformBuffer = Object{}
	}
	for k, b := range c.elementBuffers {
		if b == o {
			delete(c.elementBuffers, k)
		}
	}
	for k, b := range c.uniformBases {
		if b == o {
			delete(c.uniformBases, k)
		}
	}
}

func (c *Context) DeleteProgram(o Object) {
	c.f.DeleteProgram(o.Name)
	if c.program == o {
		c.program = Object{}
	}
}

func (c *Context) DeleteFramebuffer(o Object) {
	c.f.DeleteFramebuffer(o.Name)
	if c.framebuffer == o {
		c.framebuffer = Object{}
	}
}

func (c *Context) DeleteTexture(o Object) {
	c.f.DeleteTexture(o.Name)
	for k, t := range c.textures {
		if t == o {
			delete(c.textures, k)
		}
	}
}
