package asset

import (
	"sync"
	"testing"
)

func TestStorageInsertGet(t *testing.T) {
	s := NewStorage[string]()
	a := s.Insert("a")
	b := s.Insert("b")

	if a == b {
		t.Fatal("Insert() returned equal handles for different assets")
	}
	if got, ok := s.Get(a); !ok || got != "a" {
		t.Errorf("Get(a) = %q, %v, want a, true", got, ok)
	}
	if got, ok := s.Get(b); !ok || got != "b" {
		t.Errorf("Get(b) = %q, %v, want b, true", got, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStorageZeroHandle(t *testing.T) {
	s := NewStorage[int]()
	s.Insert(1)
	var h Handle[int]
	if !h.IsZero() {
		t.Error("zero Handle should report IsZero")
	}
	if _, ok := s.Get(h); ok {
		t.Error("Get(zero handle) should fail")
	}
	if h.String() != "Handle(nil)" {
		t.Errorf("String() = %q", h.String())
	}
}

func TestStorageStaleHandle(t *testing.T) {
	s := NewStorage[string]()
	h := s.Insert("old")

	if got, ok := s.Remove(h); !ok || got != "old" {
		t.Fatalf("Remove() = %q, %v, want old, true", got, ok)
	}
	if s.Contains(h) {
		t.Error("removed handle still resolves")
	}
	if _, ok := s.Remove(h); ok {
		t.Error("second Remove() should fail")
	}

	reused := s.Insert("new")
	if reused.index != h.index {
		t.Fatalf("Insert() did not reuse the freed slot")
	}
	if s.Contains(h) {
		t.Error("stale handle resolves after its slot was reused")
	}
	if got, _ := s.Get(reused); got != "new" {
		t.Errorf("Get(reused) = %q, want new", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStorageReplace(t *testing.T) {
	s := NewStorage[string]()
	h := s.Insert("v1")

	old, ok := s.Replace(h, "v2")
	if !ok || old != "v1" {
		t.Fatalf("Replace() = %q, %v, want v1, true", old, ok)
	}
	if got, _ := s.Get(h); got != "v2" {
		t.Errorf("Get() after Replace = %q, want v2", got)
	}

	s.Remove(h)
	if _, ok := s.Replace(h, "v3"); ok {
		t.Error("Replace() on a stale handle should fail")
	}
}

func TestStorageRange(t *testing.T) {
	s := NewStorage[int]()
	for i := range 5 {
		s.Insert(i)
	}
	h := s.Insert(99)
	s.Remove(h)

	sum, n := 0, 0
	s.Range(func(h Handle[int], v int) bool {
		if got, _ := s.Get(h); got != v {
			t.Errorf("Range handle %v resolves to %d, want %d", h, got, v)
		}
		sum += v
		n++
		return true
	})
	if n != 5 || sum != 10 {
		t.Errorf("Range visited %d assets summing %d, want 5 and 10", n, sum)
	}

	n = 0
	s.Range(func(Handle[int], int) bool { n++; return false })
	if n != 1 {
		t.Errorf("Range did not stop early: %d visits", n)
	}
}

func TestStorageConcurrent(t *testing.T) {
	s := NewStorage[int]()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				h := s.Insert(i*1000 + j)
				if got, ok := s.Get(h); !ok || got != i*1000+j {
					t.Errorf("Get() = %d, %v, want %d", got, ok, i*1000+j)
				}
				if j%2 == 0 {
					s.Remove(h)
				}
			}
		}()
	}
	wg.Wait()
	if s.Len() != 8*50 {
		t.Errorf("Len() = %d, want %d", s.Len(), 8*50)
	}
}
