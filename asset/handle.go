package asset

import (
	"fmt"
	"sync"
)

// Handle refers to an asset in a Storage. The zero Handle refers to nothing.
// A handle goes stale when its asset is removed; a stale handle never
// resolves, even after its slot is reused.
type Handle[A any] struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle[A]) IsZero() bool { return h.generation == 0 }

func (h Handle[A]) String() string {
	if h.IsZero() {
		return "Handle(nil)"
	}
	return fmt.Sprintf("Handle(%d#%d)", h.index, h.generation)
}

type slot[A any] struct {
	value      A
	generation uint32
	live       bool
}

// Storage is a generation-checked table of assets of one type. It is safe
// for concurrent use.
type Storage[A any] struct {
	mu    sync.RWMutex
	slots []slot[A]
	free  []uint32
	count int
}

// NewStorage returns an empty storage.
func NewStorage[A any]() *Storage[A] {
	return &Storage[A]{}
}

// Insert stores a and returns its handle. Freed slots are reused with a
// bumped generation.
func (s *Storage[A]) Insert(a A) Handle[A] {
	s.mu.Lock()
	defer s.mu.Unlock()

	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot[A]{})
	}
	sl := &s.slots[idx]
	sl.generation++
	if sl.generation == 0 {
		sl.generation = 1
	}
	sl.value = a
	sl.live = true
	s.count++
	return Handle[A]{index: idx, generation: sl.generation}
}

// lookup returns the live slot for h. Callers hold s.mu.
func (s *Storage[A]) lookup(h Handle[A]) *slot[A] {
	if h.IsZero() || int(h.index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[h.index]
	if !sl.live || sl.generation != h.generation {
		return nil
	}
	return sl
}

// Get returns the asset for h.
func (s *Storage[A]) Get(h Handle[A]) (A, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sl := s.lookup(h); sl != nil {
		return sl.value, true
	}
	var zero A
	return zero, false
}

// Contains reports whether h resolves.
func (s *Storage[A]) Contains(h Handle[A]) bool {
	_, ok := s.Get(h)
	return ok
}

// Replace swaps the asset behind a live handle and returns the previous one.
// The handle stays valid.
func (s *Storage[A]) Replace(h Handle[A], a A) (A, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.lookup(h)
	if sl == nil {
		var zero A
		return zero, false
	}
	old := sl.value
	sl.value = a
	return old, true
}

// Remove deletes the asset for h and returns it. h and every copy of it
// go stale.
func (s *Storage[A]) Remove(h Handle[A]) (A, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero A
	sl := s.lookup(h)
	if sl == nil {
		return zero, false
	}
	old := sl.value
	sl.value = zero
	sl.live = false
	s.free = append(s.free, h.index)
	s.count--
	return old, true
}

// Len returns the number of live assets.
func (s *Storage[A]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Range calls fn for each live asset until fn returns false. fn must not
// modify the storage.
func (s *Storage[A]) Range(fn func(Handle[A], A) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live {
			continue
		}
		if !fn(Handle[A]{index: uint32(i), generation: sl.generation}, sl.value) {
			return
		}
	}
}
