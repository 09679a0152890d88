// Package textures loads image files into RGBA8 textures on a render
// device and caches them by path.
package textures

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/x2w-rook/Ludens-sub001/render"
)

// Texture is a texture created by a Manager.
type Texture struct {
	Name   string
	Handle render.Texture
	Width  uint32
	Height uint32
	Path   string // empty for procedural textures
}

// Manager creates textures on one device and caches them by path.
type Manager struct {
	device   render.Device
	sampler  render.SamplerInfo
	maxSize  int
	textures map[string]*Texture
	mu       sync.RWMutex
}

type Option func(*Manager)

// WithSampler sets the sampler of every texture the manager creates.
func WithSampler(s render.SamplerInfo) Option {
	return func(m *Manager) { m.sampler = s }
}

// WithMaxSize downscales images whose larger side exceeds size.
func WithMaxSize(size int) Option {
	return func(m *Manager) { m.maxSize = size }
}

func NewManager(device render.Device, opts ...Option) *Manager {
	m := &Manager{
		device:   device,
		textures: make(map[string]*Texture),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load loads a texture from file, returning the cached one if the path was
// loaded before.
func (m *Manager) Load(path string) (*Texture, error) {
	m.mu.RLock()
	if tex, ok := m.textures[path]; ok {
		m.mu.RUnlock()
		return tex, nil
	}
	m.mu.RUnlock()

	img, err := loadImageFile(path)
	if err != nil {
		return nil, fmt.Errorf("textures: failed to load image %s: %w", path, err)
	}
	rgba := toRGBA(img, m.maxSize)

	tex, err := m.create(path, rgba)
	if err != nil {
		return nil, err
	}
	tex.Path = path

	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.textures[path]; ok {
		m.device.DeleteTexture(&tex.Handle)
		return prev, nil
	}
	m.textures[path] = tex
	return tex, nil
}

// GetOrDefault returns the texture at path, or the default white texture
// when path is empty or fails to load.
func (m *Manager) GetOrDefault(path string) *Texture {
	if path == "" {
		return m.Default()
	}
	tex, err := m.Load(path)
	if err != nil {
		render.Logger().Warn("textures: using default texture", "path", path, "err", err)
		return m.Default()
	}
	return tex
}

const defaultKey = "__default_white__"

// Default returns a 1x1 white texture.
func (m *Manager) Default() *Texture {
	m.mu.RLock()
	if tex, ok := m.textures[defaultKey]; ok {
		m.mu.RUnlock()
		return tex
	}
	m.mu.RUnlock()

	tex, err := m.SolidColor(defaultKey, color.RGBA{255, 255, 255, 255})
	if err != nil {
		render.Logger().Error("textures: creating default texture", "err", err)
		return nil
	}
	return tex
}

// SolidColor creates and caches a 1x1 texture under name.
func (m *Manager) SolidColor(name string, c color.RGBA) (*Texture, error) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return m.store(name, img)
}

// Checker creates and caches a size×size checkerboard of 8×8 blocks.
func (m *Manager) Checker(name string, size uint32, c1, c2 color.RGBA) (*Texture, error) {
	img := image.NewRGBA(image.Rect(0, 0, int(size), int(size)))
	block := size / 8
	if block < 1 {
		block = 1
	}
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			if ((x/block)+(y/block))%2 == 0 {
				img.SetRGBA(int(x), int(y), c1)
			} else {
				img.SetRGBA(int(x), int(y), c2)
			}
		}
	}
	return m.store(name, img)
}

// Len returns the number of cached textures.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.textures)
}

// DestroyAll deletes every cached texture from the device.
func (m *Manager) DestroyAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tex := range m.textures {
		m.device.DeleteTexture(&tex.Handle)
	}
	m.textures = make(map[string]*Texture)
}

func (m *Manager) store(name string, img *image.RGBA) (*Texture, error) {
	tex, err := m.create(name, img)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.textures[name]; ok {
		m.device.DeleteTexture(&prev.Handle)
	}
	m.textures[name] = tex
	return tex, nil
}

func (m *Manager) create(name string, img *image.RGBA) (*Texture, error) {
	b := img.Bounds()
	tex := &Texture{Name: name, Width: uint32(b.Dx()), Height: uint32(b.Dy())}
	res := m.device.CreateTexture(&tex.Handle, render.TextureInfo{
		Type:    render.Texture2D,
		Format:  render.FormatRGBA8,
		Width:   tex.Width,
		Height:  tex.Height,
		Sampler: m.sampler,
		Data:    img.Pix,
	})
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("textures: failed to create %s: %w", name, err)
	}
	return tex, nil
}

func loadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// toRGBA converts img to tightly packed RGBA, scaling it down to fit
// maxSize when maxSize is positive.
func toRGBA(img image.Image, maxSize int) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*w && src.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}
