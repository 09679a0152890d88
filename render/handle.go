package render

import "github.com/x2w-rook/Ludens-sub001/internal/pool"

// handle is the common part of every resource handle: the object id and the
// pool key the owning backend stores the object under. Handles are plain
// values; copying one does not affect the lifetime of the object.
type handle struct {
	id  uint64
	key pool.Key
}

// ID returns the object identifier, zero for an unbound handle.
func (h handle) ID() uint64 { return h.id }

// IsValid reports whether the handle names an object.
func (h handle) IsValid() bool { return h.id != 0 }

// Key returns the pool key of the object. Backends use it to find their
// concrete object.
func (h handle) Key() pool.Key { return h.key }

// Reset unbinds the handle without touching the object.
func (h *handle) Reset() { *h = handle{} }

func (h *handle) bind(id uint64, key pool.Key) {
	h.id = id
	h.key = key
}

type (
	Texture            struct{ handle }
	Buffer             struct{ handle }
	Shader             struct{ handle }
	BindingGroupLayout struct{ handle }
	BindingGroup       struct{ handle }
	Pass               struct{ handle }
	FrameBuffer        struct{ handle }
	Pipeline           struct{ handle }
)
