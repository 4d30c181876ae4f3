// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !noempty

package render

import "github.com/gogpu/gpures/backend"

// Empty is the marker of the no-op backend. Its devices accept every call
// and draw nothing; tests and headless tools run on it. The noempty tag
// removes it.
type Empty struct{}

var emptyDesc = declared(backend.NameEmpty)

func init() {
	compiled = append(compiled, emptyDesc)
	registerOpener[Empty]()
}

func (Empty) sealed() {}

// Descriptor returns the empty backend descriptor.
func (Empty) Descriptor() backend.Descriptor { return emptyDesc }

// WrapMesh wraps m as a empty mesh.
func (Empty) WrapMesh(m *BackendMesh[Empty]) Mesh { return wrapMesh(emptyDesc, m) }

// UnwrapMesh returns the empty mesh held by w.
func (Empty) UnwrapMesh(w *Mesh) (*BackendMesh[Empty], bool) {
	return unwrapMesh[Empty](emptyDesc, w)
}

// WrapTexture wraps t as a empty texture.
func (Empty) WrapTexture(t *BackendTexture[Empty]) Texture { return wrapTexture(emptyDesc, t) }

// UnwrapTexture returns the empty texture held by w.
func (Empty) UnwrapTexture(w *Texture) (*BackendTexture[Empty], bool) {
	return unwrapTexture[Empty](emptyDesc, w)
}

var _ Backend[Empty] = Empty{}
