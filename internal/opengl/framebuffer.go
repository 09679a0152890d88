package opengl

import (
	"fmt"

	"github.com/x2w-rook/Ludens-sub001/internal/pool"
	"github.com/x2w-rook/Ludens-sub001/render"
)

type Pass struct {
	render.PassBase
}

// FrameBuffer wraps a GL framebuffer object over existing textures. The
// textures are not owned.
type FrameBuffer struct {
	render.FrameBufferBase
	obj Object
}

func (d *Device) CreatePass(obj render.ObjectBase, info render.PassInfo) (pool.Key, error) {
	key, p, err := d.passes.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("opengl: create pass: %w", err)
	}
	p.PassBase = render.PassBase{ObjectBase: obj, Info: info}
	return key, nil
}

func (d *Device) DeletePass(key pool.Key) { d.passes.Free(key) }

func (d *Device) Pass(key pool.Key) *render.PassBase {
	if p := d.passes.Get(key); p != nil {
		return &p.PassBase
	}
	return nil
}

func (d *Device) CreateFrameBuffer(obj render.ObjectBase, info render.FrameBufferInfo) (pool.Key, error) {
	key, fb, err := d.frameBuffers.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("opengl: create framebuffer: %w", err)
	}
	o, err := d.buildFrameBuffer(obj.ID, info)
	if err != nil {
		d.frameBuffers.Free(key)
		return pool.Key{}, err
	}
	fb.FrameBufferBase = render.FrameBufferBase{ObjectBase: obj, Info: info}
	fb.obj = o
	return key, nil
}

func (d *Device) DeleteFrameBuffer(key pool.Key) {
	if fb := d.frameBuffers.Get(key); fb != nil {
		d.ctx.DeleteFramebuffer(fb.obj)
		d.frameBuffers.Free(key)
	}
}

func (d *Device) FrameBuffer(key pool.Key) *render.FrameBufferBase {
	if fb := d.frameBuffers.Get(key); fb != nil {
		return &fb.FrameBufferBase
	}
	return nil
}

// InvalidateFrameBuffer builds a new GL framebuffer from info and swaps it
// into the same slot, so handles to it stay valid. On failure the old
// framebuffer and its info are kept.
func (d *Device) InvalidateFrameBuffer(key pool.Key, info render.FrameBufferInfo) error {
	fb := d.frameBuffers.Get(key)
	if fb == nil {
		return render.InvalidHandle
	}
	o, err := d.buildFrameBuffer(fb.ID, info)
	if err != nil {
		return err
	}
	bound := d.ctx.Framebuffer() == fb.obj
	d.ctx.DeleteFramebuffer(fb.obj)
	fb.obj = o
	fb.Info = info
	if bound {
		d.ctx.BindFramebuffer(o)
	}
	return nil
}

func (d *Device) attach(attachment Enum, h render.Texture) error {
	tex := d.texture(h)
	if tex == nil {
		return fmt.Errorf("attachment texture %d: %w", h.ID(), render.InvalidHandle)
	}
	switch tex.target {
	case TEXTURE_2D_ARRAY:
		d.f.FramebufferTextureLayer(FRAMEBUFFER, attachment, tex.obj.Name, 0, 0)
	case TEXTURE_CUBE_MAP:
		d.f.FramebufferTexture2D(FRAMEBUFFER, attachment, TEXTURE_CUBE_MAP_POSITIVE_X, tex.obj.Name, 0)
	default:
		d.f.FramebufferTexture2D(FRAMEBUFFER, attachment, TEXTURE_2D, tex.obj.Name, 0)
	}
	return nil
}

// buildFrameBuffer creates a complete GL framebuffer for info owned by the
// object id. The frame buffer bound before the call is bound again after.
func (d *Device) buildFrameBuffer(id uint64, info render.FrameBufferInfo) (Object, error) {
	prev := d.ctx.Framebuffer()
	o := Object{ID: id, Name: d.f.CreateFramebuffer()}
	d.ctx.BindFramebuffer(o)
	err := d.attachAll(info)
	if err == nil {
		if status := d.f.CheckFramebufferStatus(FRAMEBUFFER); status != FRAMEBUFFER_COMPLETE {
			err = fmt.Errorf("status=0x%X", uint32(status))
		}
	}
	if err != nil {
		d.ctx.DeleteFramebuffer(o)
		d.ctx.BindFramebuffer(prev)
		return Object{}, fmt.Errorf("opengl: framebuffer incomplete: %w", err)
	}
	d.ctx.BindFramebuffer(prev)
	return o, nil
}

// attachAll attaches the textures of info to the bound framebuffer.
func (d *Device) attachAll(info render.FrameBufferInfo) error {
	drawBuffers := make([]Enum, len(info.ColorAttachments))
	for i, h := range info.ColorAttachments {
		drawBuffers[i] = COLOR_ATTACHMENT0 + Enum(i)
		if err := d.attach(drawBuffers[i], h); err != nil {
			return err
		}
	}
	if h := info.DepthStencilAttachment; h.IsValid() {
		attachment := DEPTH_STENCIL_ATTACHMENT
		if tex := d.texture(h); tex != nil && tex.Info.Format == render.FormatD32F {
			attachment = DEPTH_ATTACHMENT
		}
		if err := d.attach(attachment, h); err != nil {
			return err
		}
	}
	if len(drawBuffers) == 0 {
		drawBuffers = []Enum{NONE}
	}
	d.f.DrawBuffers(drawBuffers)
	return nil
}
