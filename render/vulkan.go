// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !novulkan && !android && !js

package render

import "github.com/gogpu/gpures/backend"

// Vulkan is the marker of the Vulkan backend, compiled everywhere except
// android and js unless the novulkan tag is set.
type Vulkan struct{}

var vulkanDesc = declared(backend.NameVulkan)

func init() {
	compiled = append(compiled, vulkanDesc)
	registerOpener[Vulkan]()
}

func (Vulkan) sealed() {}

// Descriptor returns the vulkan backend descriptor.
func (Vulkan) Descriptor() backend.Descriptor { return vulkanDesc }

// WrapMesh wraps m as a vulkan mesh.
func (Vulkan) WrapMesh(m *BackendMesh[Vulkan]) Mesh { return wrapMesh(vulkanDesc, m) }

// UnwrapMesh returns the vulkan mesh held by w.
func (Vulkan) UnwrapMesh(w *Mesh) (*BackendMesh[Vulkan], bool) {
	return unwrapMesh[Vulkan](vulkanDesc, w)
}

// WrapTexture wraps t as a vulkan texture.
func (Vulkan) WrapTexture(t *BackendTexture[Vulkan]) Texture { return wrapTexture(vulkanDesc, t) }

// UnwrapTexture returns the vulkan texture held by w.
func (Vulkan) UnwrapTexture(w *Texture) (*BackendTexture[Vulkan], bool) {
	return unwrapTexture[Vulkan](vulkanDesc, w)
}

var _ Backend[Vulkan] = Vulkan{}
