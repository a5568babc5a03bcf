// Package resource holds GPU-side values that must be created lazily (after the
// window exists) and released exactly once.
package resource

// Slot is a lazily loaded value. Get loads it on first use; Release frees it and
// lets the next Get load a fresh one.
type Slot[T any] struct {
	value   T
	loaded  bool
	load    func() T
	release func(T)
}

// NewSlot returns an empty slot. release may be nil.
func NewSlot[T any](load func() T, release func(T)) *Slot[T] {
	return &Slot[T]{load: load, release: release}
}

// Get returns the value, loading it if needed. The pointer stays valid until Release.
func (s *Slot[T]) Get() *T {
	if !s.loaded {
		s.value = s.load()
		s.loaded = true
	}
	return &s.value
}

// Loaded reports whether the slot currently holds a value.
func (s *Slot[T]) Loaded() bool {
	return s.loaded
}

// Release frees the value if one is loaded. Calling it again is a no-op.
func (s *Slot[T]) Release() {
	if !s.loaded {
		return
	}
	if s.release != nil {
		s.release(s.value)
	}
	var zero T
	s.value = zero
	s.loaded = false
}
