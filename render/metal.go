// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && !nometal

package render

import "github.com/gogpu/gpures/backend"

// Metal is the marker of the Metal backend, compiled on darwin unless the
// nometal tag is set.
type Metal struct{}

var metalDesc = declared(backend.NameMetal)

func init() {
	compiled = append(compiled, metalDesc)
	registerOpener[Metal]()
}

func (Metal) sealed() {}

// Descriptor returns the metal backend descriptor.
func (Metal) Descriptor() backend.Descriptor { return metalDesc }

// WrapMesh wraps m as a metal mesh.
func (Metal) WrapMesh(m *BackendMesh[Metal]) Mesh { return wrapMesh(metalDesc, m) }

// UnwrapMesh returns the metal mesh held by w.
func (Metal) UnwrapMesh(w *Mesh) (*BackendMesh[Metal], bool) {
	return unwrapMesh[Metal](metalDesc, w)
}

// WrapTexture wraps t as a metal texture.
func (Metal) WrapTexture(t *BackendTexture[Metal]) Texture { return wrapTexture(metalDesc, t) }

// UnwrapTexture returns the metal texture held by w.
func (Metal) UnwrapTexture(w *Texture) (*BackendTexture[Metal], bool) {
	return unwrapTexture[Metal](metalDesc, w)
}

var _ Backend[Metal] = Metal{}
