// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpures/backend"
	"github.com/google/uuid"
)

// Identity tags of the wrapper and descriptor types. They are fixed and
// independent of which backends are compiled in.
var (
	MeshTypeID        = uuid.MustParse("3017f6f7-b9fa-4d55-8cc5-27f803592569")
	TextureTypeID     = uuid.MustParse("af14628f-c707-4921-9ac1-f6ae42b8ee8e")
	MeshDataTypeID    = uuid.MustParse("c5870fe0-1733-4fb4-827c-4353f8c6002d")
	TextureDataTypeID = uuid.MustParse("25063afd-6cc0-487e-982f-a63fed7d7393")
)

// Mesh is a backend-agnostic mesh handle. It holds exactly one
// BackendMesh[B] for one compiled backend B, or nothing (the zero value).
//
// Mesh values are cheap to copy; copies share the underlying resource.
type Mesh struct {
	tag backend.Descriptor
	res any
}

// TypeID returns the identity tag of the Mesh type.
func (Mesh) TypeID() uuid.UUID { return MeshTypeID }

// Backend returns the backend of the held resource, or the zero Descriptor
// when the wrapper is empty.
func (m Mesh) Backend() backend.Descriptor { return m.tag }

// IsZero reports whether m holds no resource.
func (m Mesh) IsZero() bool { return m.res == nil }

func (m Mesh) String() string {
	if m.IsZero() {
		return "Mesh(nil)"
	}
	return fmt.Sprintf("Mesh(%s)", m.tag.Name)
}

// Texture is a backend-agnostic texture handle. It holds exactly one
// BackendTexture[B] for one compiled backend B, or nothing (the zero value).
type Texture struct {
	tag backend.Descriptor
	res any
}

// TypeID returns the identity tag of the Texture type.
func (Texture) TypeID() uuid.UUID { return TextureTypeID }

// Backend returns the backend of the held resource, or the zero Descriptor
// when the wrapper is empty.
func (t Texture) Backend() backend.Descriptor { return t.tag }

// IsZero reports whether t holds no resource.
func (t Texture) IsZero() bool { return t.res == nil }

func (t Texture) String() string {
	if t.IsZero() {
		return "Texture(nil)"
	}
	return fmt.Sprintf("Texture(%s)", t.tag.Name)
}

func wrapMesh[B any](tag backend.Descriptor, m *BackendMesh[B]) Mesh {
	if m == nil {
		return Mesh{}
	}
	return Mesh{tag: tag, res: m}
}

func wrapTexture[B any](tag backend.Descriptor, t *BackendTexture[B]) Texture {
	if t == nil {
		return Texture{}
	}
	return Texture{tag: tag, res: t}
}

// unwrap returns res as *R when tag names want. The tag is compared before
// the type assertion on every path, including single-backend builds.
func unwrap[R any](tag, want backend.Descriptor, res any) (*R, bool) {
	if res == nil || tag != want {
		return nil, false
	}
	r, ok := res.(*R)
	if !ok || r == nil {
		return nil, false
	}
	return r, true
}

func unwrapMesh[B any](want backend.Descriptor, w *Mesh) (*BackendMesh[B], bool) {
	if w == nil {
		return nil, false
	}
	return unwrap[BackendMesh[B]](w.tag, want, w.res)
}

func unwrapTexture[B any](want backend.Descriptor, w *Texture) (*BackendTexture[B], bool) {
	if w == nil {
		return nil, false
	}
	return unwrap[BackendTexture[B]](w.tag, want, w.res)
}
