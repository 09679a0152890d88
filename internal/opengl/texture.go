package opengl

import (
	"fmt"

	"github.com/x2w-rook/Ludens-sub001/internal/pool"
	"github.com/x2w-rook/Ludens-sub001/render"
)

// Texture is a GL texture object.
type Texture struct {
	render.TextureBase
	obj    Object
	target Enum
}

type texelFormat struct {
	internal, format, typ Enum
}

var texelFormats = map[render.Format]texelFormat{
	render.FormatR8:      {R8, RED, UNSIGNED_BYTE},
	render.FormatBGRA8:   {RGBA8, BGRA, UNSIGNED_BYTE},
	render.FormatRGBA8:   {RGBA8, RGBA, UNSIGNED_BYTE},
	render.FormatRGBA16F: {RGBA16F, RGBA, HALF_FLOAT},
	render.FormatD24S8:   {DEPTH24_STENCIL8, DEPTH_STENCIL, UNSIGNED_INT_24_8},
	render.FormatD32F:    {DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT},
}

func textureTarget(t render.TextureType) Enum {
	switch t {
	case render.Texture2DArray:
		return TEXTURE_2D_ARRAY
	case render.TextureCube:
		return TEXTURE_CUBE_MAP
	}
	return TEXTURE_2D
}

func filterMode(f render.FilterMode) int32 {
	if f == render.FilterNearest {
		return int32(NEAREST)
	}
	return int32(LINEAR)
}

func addressMode(a render.AddressMode) int32 {
	switch a {
	case render.AddressMirroredRepeat:
		return int32(MIRRORED_REPEAT)
	case render.AddressClampToEdge:
		return int32(CLAMP_TO_EDGE)
	}
	return int32(REPEAT)
}

// CreateTexture allocates the texture storage and uploads info.Data when
// present. Uploads go through texture unit 0, whose previous binding is
// restored afterwards.
func (d *Device) CreateTexture(obj render.ObjectBase, info render.TextureInfo) (pool.Key, error) {
	tf, ok := texelFormats[info.Format]
	if !ok {
		return pool.Key{}, fmt.Errorf("opengl: unsupported texture format %s", info.Format)
	}
	key, tex, err := d.textures.Alloc()
	if err != nil {
		return pool.Key{}, fmt.Errorf("opengl: create texture: %w", err)
	}
	data := info.Data
	info.Data = nil
	tex.TextureBase = render.TextureBase{ObjectBase: obj, Info: info}
	tex.target = textureTarget(info.Type)
	tex.obj = Object{ID: obj.ID, Name: d.f.CreateTexture()}

	prev := d.ctx.Texture(0, tex.target)
	d.ctx.BindTexture(0, tex.target, tex.obj)
	w, h := int32(info.Width), int32(info.Height)
	switch info.Type {
	case render.Texture2DArray:
		layers := int32(info.Layers)
		if layers == 0 {
			layers = 1
		}
		d.f.TexImage3D(tex.target, 0, tf.internal, w, h, layers, tf.format, tf.typ, data)
	case render.TextureCube:
		face := len(data) / 6
		for i := 0; i < 6; i++ {
			var faceData []byte
			if data != nil {
				faceData = data[i*face : (i+1)*face]
			}
			d.f.TexImage2D(TEXTURE_CUBE_MAP_POSITIVE_X+Enum(i), 0, tf.internal, w, h, tf.format, tf.typ, faceData)
		}
	default:
		d.f.TexImage2D(tex.target, 0, tf.internal, w, h, tf.format, tf.typ, data)
	}

	filter := filterMode(info.Sampler.Filter)
	wrap := addressMode(info.Sampler.AddressMode)
	d.f.TexParameteri(tex.target, TEXTURE_MIN_FILTER, filter)
	d.f.TexParameteri(tex.target, TEXTURE_MAG_FILTER, filter)
	d.f.TexParameteri(tex.target, TEXTURE_WRAP_S, wrap)
	d.f.TexParameteri(tex.target, TEXTURE_WRAP_T, wrap)
	if info.Type == render.TextureCube {
		d.f.TexParameteri(tex.target, TEXTURE_WRAP_R, wrap)
	}
	d.ctx.BindTexture(0, tex.target, prev)
	return key, nil
}

func (d *Device) DeleteTexture(key pool.Key) {
	if tex := d.textures.Get(key); tex != nil {
		d.ctx.DeleteTexture(tex.obj)
		d.textures.Free(key)
	}
}

func (d *Device) Texture(key pool.Key) *render.TextureBase {
	if tex := d.textures.Get(key); tex != nil {
		return &tex.TextureBase
	}
	return nil
}

// texture resolves a handle stored inside another object (a binding group
// or a frame buffer). Handles to deleted textures resolve to nil.
func (d *Device) texture(h render.Texture) *Texture {
	if !h.IsValid() {
		return nil
	}
	if tex := d.textures.Get(h.Key()); tex != nil && tex.ID == h.ID() {
		return tex
	}
	return nil
}
