// Package pool implements a fixed-capacity slot map.
//
// Objects live in storage that is allocated once and never grows, so a pointer
// returned by Alloc or Get stays valid until the slot is freed. Every slot
// carries a generation counter that is bumped on each allocation; a Key holds
// the slot index together with the generation it was issued for, which lets
// Get reject keys that outlived their object.
package pool

import "errors"

// ErrExhausted is returned by Alloc when every slot is in use.
var ErrExhausted = errors.New("pool: capacity exhausted")

// Key addresses one allocation. The zero Key never refers to a live object.
type Key struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool { return k.Gen == 0 }

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
	next  int32 // next free slot, -1 terminates the list
}

// Pool is a slot map holding at most Cap values of T.
type Pool[T any] struct {
	slots []slot[T]
	head  int32
	live  int
}

// New creates a pool with room for capacity objects.
func New[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{slots: make([]slot[T], capacity), head: -1}
	// Thread the free list so that low indices are handed out first.
	for i := capacity - 1; i >= 0; i-- {
		p.slots[i].next = p.head
		p.head = int32(i)
	}
	return p
}

// Alloc takes the slot at the head of the free list and returns its key and a
// pointer to its zeroed value.
func (p *Pool[T]) Alloc() (Key, *T, error) {
	if p.head < 0 {
		return Key{}, nil, ErrExhausted
	}
	idx := p.head
	s := &p.slots[idx]
	p.head = s.next

	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.live = true
	s.next = -1
	p.live++

	return Key{Index: uint32(idx), Gen: s.gen}, &s.value, nil
}

// Free releases the object addressed by k. It reports false if k was not live.
func (p *Pool[T]) Free(k Key) bool {
	s := p.slot(k)
	if s == nil {
		return false
	}
	var zero T
	s.value = zero
	s.live = false
	s.next = p.head
	p.head = int32(k.Index)
	p.live--
	return true
}

// Get returns the object addressed by k, or nil when k is stale or zero.
func (p *Pool[T]) Get(k Key) *T {
	s := p.slot(k)
	if s == nil {
		return nil
	}
	return &s.value
}

// Contains reports whether k indexes into the pool's storage. It does not
// check liveness; use Get for that.
func (p *Pool[T]) Contains(k Key) bool {
	return int(k.Index) < len(p.slots)
}

// Each calls fn for every live object in index order until fn returns false.
func (p *Pool[T]) Each(fn func(Key, *T) bool) {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.live {
			continue
		}
		if !fn(Key{Index: uint32(i), Gen: s.gen}, &s.value) {
			return
		}
	}
}

// Len returns the number of live objects.
func (p *Pool[T]) Len() int { return p.live }

// Cap returns the pool capacity.
func (p *Pool[T]) Cap() int { return len(p.slots) }

// FreeCount returns the number of slots still available.
func (p *Pool[T]) FreeCount() int { return len(p.slots) - p.live }

func (p *Pool[T]) slot(k Key) *slot[T] {
	if k.IsZero() || !p.Contains(k) {
		return nil
	}
	s := &p.slots[k.Index]
	if !s.live || s.gen != k.Gen {
		return nil
	}
	return s
}
