// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"cmp"
	"slices"

	"github.com/gogpu/gpures/backend"
)

// Backend is the capability interface of a compiled backend. B is the
// implementing marker type itself, so Backend[Vulkan] is satisfied by
// Vulkan alone.
//
// The interface is sealed: only the marker types of this package implement
// it, one per compiled backend.
type Backend[B any] interface {
	sealed()

	// Descriptor returns the backend this marker stands for.
	Descriptor() backend.Descriptor

	// WrapMesh places a backend mesh into the backend-agnostic wrapper.
	WrapMesh(m *BackendMesh[B]) Mesh

	// UnwrapMesh returns the mesh held by w when w belongs to B.
	UnwrapMesh(w *Mesh) (*BackendMesh[B], bool)

	// WrapTexture places a backend texture into the backend-agnostic wrapper.
	WrapTexture(t *BackendTexture[B]) Texture

	// UnwrapTexture returns the texture held by w when w belongs to B.
	UnwrapTexture(w *Texture) (*BackendTexture[B], bool)
}

// DescriptorOf returns the descriptor of backend B.
func DescriptorOf[B Backend[B]]() backend.Descriptor {
	var b B
	return b.Descriptor()
}

// WrapMesh wraps m for backend B. It always succeeds; a nil m yields the
// zero Mesh.
func WrapMesh[B Backend[B]](m *BackendMesh[B]) Mesh {
	var b B
	return b.WrapMesh(m)
}

// UnwrapMesh returns the BackendMesh[B] held by w, or (nil, false) when w
// is nil, empty or belongs to another backend.
func UnwrapMesh[B Backend[B]](w *Mesh) (*BackendMesh[B], bool) {
	var b B
	return b.UnwrapMesh(w)
}

// WrapTexture wraps t for backend B. It always succeeds; a nil t yields
// the zero Texture.
func WrapTexture[B Backend[B]](t *BackendTexture[B]) Texture {
	var b B
	return b.WrapTexture(t)
}

// UnwrapTexture returns the BackendTexture[B] held by w, or (nil, false)
// when w is nil, empty or belongs to another backend.
func UnwrapTexture[B Backend[B]](w *Texture) (*BackendTexture[B], bool) {
	var b B
	return b.UnwrapTexture(w)
}

// compiled lists the backends whose marker files are part of this build.
// Marker init functions append to it; it is read-only afterwards.
var compiled []backend.Descriptor

// declared returns the declared descriptor for name. Marker files only
// name backends that exist in the declared set.
func declared(name string) backend.Descriptor {
	d, _ := backend.Lookup(name)
	return d
}

// Cases returns the backends a wrapper can hold in this build, in priority
// order.
func Cases() []backend.Descriptor {
	out := slices.Clone(compiled)
	slices.SortStableFunc(out, func(a, b backend.Descriptor) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return out
}

// Supports reports whether a wrapper in this build can hold a resource of
// the named backend.
func Supports(name string) bool {
	return slices.ContainsFunc(compiled, func(d backend.Descriptor) bool {
		return d.Name == name
	})
}
