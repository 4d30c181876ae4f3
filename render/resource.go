// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// BackendMesh is a mesh uploaded to a device of backend B.
//
// The type parameter only ties the resource to its backend; the hal objects
// themselves are backend-neutral interfaces.
type BackendMesh[B any] struct {
	// Label is the debug name given at build time.
	Label string

	// VertexBuffers holds one buffer per vertex stream.
	VertexBuffers []hal.Buffer

	// Layouts describes each vertex buffer, index-aligned with VertexBuffers.
	Layouts []gputypes.VertexBufferLayout

	// IndexBuffer is nil for non-indexed meshes.
	IndexBuffer hal.Buffer

	// IndexFormat is the element type of IndexBuffer.
	IndexFormat gputypes.IndexFormat

	// VertexCount is the number of vertices per stream.
	VertexCount uint32

	// IndexCount is the number of indices, zero when not indexed.
	IndexCount uint32

	// Topology is the primitive topology to draw with.
	Topology gputypes.PrimitiveTopology
}

// Indexed reports whether the mesh draws through an index buffer.
func (m *BackendMesh[B]) Indexed() bool {
	return m.IndexBuffer != nil
}

// DrawCount returns the element count of a draw call: indices when indexed,
// vertices otherwise.
func (m *BackendMesh[B]) DrawCount() uint32 {
	if m.Indexed() {
		return m.IndexCount
	}
	return m.VertexCount
}

func (m *BackendMesh[B]) String() string {
	return fmt.Sprintf("BackendMesh(%q, %d vertices, %d indices)", m.Label, m.VertexCount, m.IndexCount)
}

// BackendTexture is a sampled texture uploaded to a device of backend B.
type BackendTexture[B any] struct {
	// Label is the debug name given at build time.
	Label string

	// Texture is the hal texture object.
	Texture hal.Texture

	// View covers every mip level and layer of Texture.
	View hal.TextureView

	// Sampler is the sampler created from the descriptor's sampler info.
	Sampler hal.Sampler

	// Size is the extent of mip level 0.
	Size gputypes.Extent3D

	// Format is the texel format.
	Format gputypes.TextureFormat

	// Dimension is the texture dimensionality.
	Dimension gputypes.TextureDimension

	// MipLevels is the number of mip levels allocated.
	MipLevels uint32
}

func (t *BackendTexture[B]) String() string {
	return fmt.Sprintf("BackendTexture(%q, %dx%dx%d %s)", t.Label,
		t.Size.Width, t.Size.Height, t.Size.DepthOrArrayLayers, t.Format)
}
