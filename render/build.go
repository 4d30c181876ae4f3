// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/builder"
	"github.com/gogpu/wgpu/hal"
)

// ErrCompressedUpload is returned when a texture in a block-compressed
// format carries texel data. Compressed textures can only be created empty.
var ErrCompressedUpload = errors.New("render: cannot upload data for a compressed texture format")

// BuildMesh validates m, creates one vertex buffer per stream plus an
// optional index buffer on dev and uploads the payloads. On failure every
// buffer created so far is destroyed.
func BuildMesh[B Backend[B]](dev *Device[B], m *builder.MeshBuilder) (*BackendMesh[B], error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("render: build mesh %q: %w", m.Label, err)
	}

	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.closed {
		return nil, ErrDeviceClosed
	}

	out := &BackendMesh[B]{
		Label:       m.Label,
		Layouts:     make([]gputypes.VertexBufferLayout, 0, len(m.Vertices)),
		VertexCount: m.VertexCount(),
		IndexCount:  m.IndexCount(),
		Topology:    m.Topology,
	}
	fail := func(err error) (*BackendMesh[B], error) {
		dev.destroyBuffers(out)
		return nil, err
	}

	for i, s := range m.Vertices {
		label := fmt.Sprintf("%s_vertex_%d", m.Label, i)
		buf, err := dev.createAndUploadBuffer(label, s.Data,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return fail(err)
		}
		out.VertexBuffers = append(out.VertexBuffers, buf)
		out.Layouts = append(out.Layouts, s.Layout)
	}
	if m.Indices != nil {
		buf, err := dev.createAndUploadBuffer(m.Label+"_index", m.Indices.Data,
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return fail(err)
		}
		out.IndexBuffer = buf
		out.IndexFormat = m.Indices.Format
	}

	gpures.Logger().Debug("mesh built", "label", m.Label, "backend", DescriptorOf[B]().Name,
		"vertices", out.VertexCount, "indices", out.IndexCount, "bytes", m.Size())
	return out, nil
}

// createAndUploadBuffer creates a buffer sized to data rounded up to 4 bytes
// and writes data at offset 0. Callers hold d.mu.
func (d *Device[B]) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	size := alignUp(uint64(len(data)), 4)
	if size == 0 {
		size = 4
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create %s: %w", label, err)
	}
	if len(data) == 0 {
		return buf, nil
	}
	if err := d.queue.WriteBuffer(buf, 0, data); err != nil {
		d.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("render: upload %s: %w", label, err)
	}
	return buf, nil
}

// destroyBuffers releases the buffers of m. Callers hold d.mu.
func (d *Device[B]) destroyBuffers(m *BackendMesh[B]) {
	for _, buf := range m.VertexBuffers {
		if buf != nil {
			d.device.DestroyBuffer(buf)
		}
	}
	if m.IndexBuffer != nil {
		d.device.DestroyBuffer(m.IndexBuffer)
	}
	m.VertexBuffers = nil
	m.IndexBuffer = nil
}

// BuildTexture validates t, creates the texture, a view over all of it and
// a sampler on dev, and uploads level 0 when t carries data.
func BuildTexture[B Backend[B]](dev *Device[B], t *builder.TextureBuilder) (*BackendTexture[B], error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("render: build texture %q: %w", t.Label, err)
	}
	texel := builder.TexelSize(t.Format)
	if texel == 0 && len(t.Data) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrCompressedUpload, t.Format)
	}

	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.closed {
		return nil, ErrDeviceClosed
	}

	size := hal.Extent3D{
		Width:              t.Size.Width,
		Height:             t.Size.Height,
		DepthOrArrayLayers: t.Size.DepthOrArrayLayers,
	}
	out := &BackendTexture[B]{
		Label:     t.Label,
		Size:      t.Size,
		Format:    t.Format,
		Dimension: t.Dimension,
		MipLevels: t.MipLevels,
	}
	fail := func(err error) (*BackendTexture[B], error) {
		dev.destroyTextureParts(out)
		return nil, err
	}

	tex, err := dev.device.CreateTexture(&hal.TextureDescriptor{
		Label:         t.Label,
		Size:          size,
		MipLevelCount: t.MipLevels,
		SampleCount:   1,
		Dimension:     t.Dimension,
		Format:        t.Format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fail(fmt.Errorf("render: create texture %q: %w", t.Label, err))
	}
	out.Texture = tex

	viewDim, layers := viewDimension(t.Dimension, t.Size.DepthOrArrayLayers)
	view, err := dev.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           t.Label + "_view",
		Format:          t.Format,
		Dimension:       viewDim,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   t.MipLevels,
		ArrayLayerCount: layers,
	})
	if err != nil {
		return fail(fmt.Errorf("render: create texture view %q: %w", t.Label, err))
	}
	out.View = view

	s := t.Sampler
	sampler, err := dev.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        t.Label + "_sampler",
		AddressModeU: s.AddressMode,
		AddressModeV: s.AddressMode,
		AddressModeW: s.AddressMode,
		MagFilter:    s.MagFilter,
		MinFilter:    s.MinFilter,
		MipmapFilter: s.MipmapFilter,
		LodMinClamp:  0,
		LodMaxClamp:  float32(t.MipLevels),
		Anisotropy:   1,
	})
	if err != nil {
		return fail(fmt.Errorf("render: create sampler %q: %w", t.Label, err))
	}
	out.Sampler = sampler

	if len(t.Data) > 0 {
		err := dev.queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture:  tex,
				MipLevel: 0,
				Aspect:   gputypes.TextureAspectAll,
			},
			t.Data,
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  t.BytesPerRow(),
				RowsPerImage: t.Size.Height,
			},
			&size,
		)
		if err != nil {
			return fail(fmt.Errorf("render: upload texture %q: %w", t.Label, err))
		}
	}

	gpures.Logger().Debug("texture built", "label", t.Label, "backend", DescriptorOf[B]().Name,
		"width", t.Size.Width, "height", t.Size.Height, "format", t.Format.String())
	return out, nil
}

// destroyTextureParts releases whatever parts of t exist. Callers hold d.mu.
func (d *Device[B]) destroyTextureParts(t *BackendTexture[B]) {
	if t.Sampler != nil {
		d.device.DestroySampler(t.Sampler)
	}
	if t.View != nil {
		d.device.DestroyTextureView(t.View)
	}
	if t.Texture != nil {
		d.device.DestroyTexture(t.Texture)
	}
	t.Sampler, t.View, t.Texture = nil, nil, nil
}

// viewDimension maps a texture dimension to the view that covers it whole
// and the number of array layers in that view.
func viewDimension(dim gputypes.TextureDimension, depth uint32) (gputypes.TextureViewDimension, uint32) {
	switch dim {
	case gputypes.TextureDimension1D:
		return gputypes.TextureViewDimension1D, 1
	case gputypes.TextureDimension3D:
		return gputypes.TextureViewDimension3D, 1
	}
	if depth > 1 {
		return gputypes.TextureViewDimension2DArray, depth
	}
	return gputypes.TextureViewDimension2D, 1
}

func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
