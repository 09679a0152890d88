package opengl

import (
	"fmt"

	"github.com/x2w-rook/Ludens-sub001/internal/pool"
	"github.com/x2w-rook/Ludens-sub001/render"
)

// nativeBuffer is the GL object behind a Buffer. Its concrete type is fixed
// at creation and tells which role the buffer plays.
type nativeBuffer interface {
	object() Object
}

type (
	vertexBuffer  struct{ obj Object }
	indexBuffer   struct{ obj Object }
	uniformBuffer struct{ obj Object }
)

func (b vertexBuffer) object() Object  { return b.obj }
func (b indexBuffer) object() Object   { return b.obj }
func (b uniformBuffer) object() Object { return b.obj }

// Buffer is a GL buffer object.
type Buffer struct {
	render.BufferBase
	native nativeBuffer
}

func newNativeBuffer(t render.BufferType, obj Object) (nativeBuffer, error) {
	switch t {
	case render.BufferVertex:
		return vertexBuffer{obj}, nil
	case render.BufferIndex:
		return indexBuffer{obj}, nil
	case render.BufferUniform:
		return uniformBuffer{obj}, nil
	}
	return nil, fmt.Errorf("opengl: unknown buffer type %s", t)
}

func bufferUsage(u render.MemoryUsage) Enum {
	if u == render.UsageDynamic {
		return DYNAMIC_DRAW
	}
	return STATIC_DRAW
}

// CreateBuffer allocates the data store. Uploads use COPY_WRITE_BUFFER,
// which the binding cache does not track, so creating an index buffer
// never disturbs the bound vertex array.
func (d *Device) CreateBuffer(obj render.ObjectBase, info render.BufferInfo) (pool.Key, error) {
	key, buf, err := d.buffers.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("opengl: create buffer: %w", err)
	}
	native := Object{ID: obj.ID, Name: d.f.CreateBuffer()}
	if buf.native, err = newNativeBuffer(info.Type, native); err != nil {
		d.f.DeleteBuffer(native.Name)
		d.buffers.Free(key)
		return pool.Key{}, err
	}
	data := info.Data
	info.Data = nil
	buf.BufferBase = render.BufferBase{ObjectBase: obj, Info: info}

	d.f.BindBuffer(COPY_WRITE_BUFFER, native.Name)
	d.f.BufferData(COPY_WRITE_BUFFER, int(info.Size), nil, bufferUsage(info.Usage))
	if len(data) > 0 {
		d.f.BufferSubData(COPY_WRITE_BUFFER, 0, data)
	}
	return key, nil
}

func (d *Device) DeleteBuffer(key pool.Key) {
	if buf := d.buffers.Get(key); buf != nil {
		d.ctx.DeleteBuffer(buf.native.object())
		d.buffers.Free(key)
	}
}

func (d *Device) Buffer(key pool.Key) *render.BufferBase {
	if buf := d.buffers.Get(key); buf != nil {
		return &buf.BufferBase
	}
	return nil
}

func (d *Device) SetBufferData(key pool.Key, offset uint32, data []byte) error {
	buf := d.buffers.Get(key)
	if buf == nil {
		return render.InvalidHandle
	}
	d.f.BindBuffer(COPY_WRITE_BUFFER, buf.native.object().Name)
	d.f.BufferSubData(COPY_WRITE_BUFFER, int(offset), data)
	return nil
}

func (d *Device) SetVertexBuffer(slot int, key pool.Key) error {
	p := d.pipelines.Get(d.pipeline)
	buf := d.buffers.Get(key)
	if p == nil || buf == nil {
		return render.InvalidHandle
	}
	switch native := buf.native.(type) {
	case vertexBuffer:
		d.ctx.BindVertexArray(p.vao)
		d.ctx.BindBuffer(ARRAY_BUFFER, native.obj)
		p.vertexSlot(d.f, slot)
		return nil
	case indexBuffer, uniformBuffer:
		return fmt.Errorf("opengl: %s buffer bound as vertex buffer: %w", buf.Info.Type, render.BufferTypeMismatch)
	}
	return fmt.Errorf("opengl: buffer %d has no native object", buf.ID)
}

func (d *Device) SetIndexBuffer(key pool.Key, indexType render.IndexType) error {
	p := d.pipelines.Get(d.pipeline)
	buf := d.buffers.Get(key)
	if p == nil || buf == nil {
		return render.InvalidHandle
	}
	switch native := buf.native.(type) {
	case indexBuffer:
		d.ctx.BindVertexArray(p.vao)
		d.ctx.BindBuffer(ELEMENT_ARRAY_BUFFER, native.obj)
		d.indexType = indexType
		return nil
	case vertexBuffer, uniformBuffer:
		return fmt.Errorf("opengl: %s buffer bound as index buffer: %w", buf.Info.Type, render.BufferTypeMismatch)
	}
	return fmt.Errorf("opengl: buffer %d has no native object", buf.ID)
}

// bindUniformBuffer binds a uniform buffer to base. Buffers of other roles
// are skipped; the device only stores uniform buffers in binding groups.
func (d *Device) bindUniformBuffer(base uint32, buf *Buffer) {
	switch native := buf.native.(type) {
	case uniformBuffer:
		d.ctx.BindBufferBase(UNIFORM_BUFFER, base, native.obj)
	case vertexBuffer, indexBuffer:
		render.Logger().Warn("opengl: non-uniform buffer in binding group", "buffer", buf.ID)
	}
}
