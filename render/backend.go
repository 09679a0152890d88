package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/x2w-rook/Ludens-sub001/core"
	"github.com/x2w-rook/Ludens-sub001/internal/pool"
)

var errPoolExhausted = pool.ErrExhausted

// Backend is what a graphics API implements to be driven by a Device.
//
// Every Create method allocates the concrete object from the backend's own
// fixed-capacity pool for that kind, builds it in place around the given
// ObjectBase and returns its key; pool exhaustion is reported as an error
// wrapping pool.ErrExhausted. Lookup methods return the embedded base of a
// live object, or nil. The Device validates every call before it reaches
// the backend, so backends only report native failures.
type Backend interface {
	Kind() BackendKind
	Startup(dev Device, cfg Config) error
	Cleanup()
	WaitIdle()

	CreateTexture(obj ObjectBase, info TextureInfo) (pool.Key, error)
	DeleteTexture(key pool.Key)
	Texture(key pool.Key) *TextureBase

	CreateBuffer(obj ObjectBase, info BufferInfo) (pool.Key, error)
	DeleteBuffer(key pool.Key)
	Buffer(key pool.Key) *BufferBase
	SetBufferData(key pool.Key, offset uint32, data []byte) error

	CreateShader(obj ObjectBase, info ShaderInfo, module *ShaderModule) (pool.Key, error)
	DeleteShader(key pool.Key)
	Shader(key pool.Key) *ShaderBase

	CreateBindingGroupLayout(obj ObjectBase, info BindingGroupLayoutInfo) (pool.Key, error)
	DeleteBindingGroupLayout(key pool.Key)
	BindingGroupLayout(key pool.Key) *BindingGroupLayoutBase

	CreateBindingGroup(obj ObjectBase, layout BindingGroupLayoutInfo) (pool.Key, error)
	DeleteBindingGroup(key pool.Key)
	BindingGroup(key pool.Key) *BindingGroupBase

	CreatePass(obj ObjectBase, info PassInfo) (pool.Key, error)
	DeletePass(key pool.Key)
	Pass(key pool.Key) *PassBase

	CreateFrameBuffer(obj ObjectBase, info FrameBufferInfo) (pool.Key, error)
	DeleteFrameBuffer(key pool.Key)
	FrameBuffer(key pool.Key) *FrameBufferBase
	// InvalidateFrameBuffer rebuilds the native frame buffer from info. The
	// object keeps its slot and id.
	InvalidateFrameBuffer(key pool.Key, info FrameBufferInfo) error

	CreatePipeline(obj ObjectBase, info PipelineInfo, layouts []BindingGroupLayoutInfo) (pool.Key, error)
	DeletePipeline(key pool.Key)
	Pipeline(key pool.Key) *PipelineBase

	BeginFrame() error
	EndFrame() error
	// BeginRenderPass targets the default frame buffer when fb is the zero key.
	BeginRenderPass(pass pool.Key, fb pool.Key, clear []core.ClearValue) error
	EndRenderPass() error
	SetPipeline(key pool.Key) error
	SetBindingGroup(slot int, key pool.Key) error
	SetVertexBuffer(slot int, key pool.Key) error
	SetIndexBuffer(key pool.Key, indexType IndexType) error
	DrawVertex(info DrawVertexInfo) error
	DrawIndexed(info DrawIndexedInfo) error
	// SetScissor enables the scissor test with r, or disables it when r is nil.
	SetScissor(r *core.Rect) error
	ResizeViewport(width, height uint32) error

	// SwapChainTextureFormat is the color format of the presented images.
	SwapChainTextureFormat() Format
	// SwapChainPass returns the key of the pass the backend creates in
	// Startup for rendering into the swap chain. It lives until Cleanup.
	SwapChainPass() pool.Key
	// SwapChainFrameBuffer returns the frame buffer of the current swap chain
	// image, or the zero key when that is the default frame buffer.
	SwapChainFrameBuffer() pool.Key
}

// Factory creates an unstarted backend.
type Factory func() (Backend, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[BackendKind]Factory)
)

// RegisterBackend makes a backend available to CreateRenderDevice. Backend
// packages call it from init. Registering a kind twice panics.
func RegisterBackend(kind BackendKind, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if factory == nil {
		panic("render: RegisterBackend factory is nil")
	}
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("render: RegisterBackend called twice for %s", kind))
	}
	factories[kind] = factory
}

// Backends lists the registered backend kinds.
func Backends() []BackendKind {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	kinds := make([]BackendKind, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func newBackend(kind BackendKind) (Backend, error) {
	factoriesMu.RLock()
	factory, ok := factories[kind]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (missing import?)", ErrUnknownBackend, kind)
	}
	return factory()
}
