// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpures/builder"
	"github.com/gogpu/gpures/codec"
	"github.com/google/uuid"
)

// MeshData is the backend-independent descriptor of a Mesh. It owns every
// byte it references.
type MeshData struct {
	builder.MeshBuilder
}

// NewMeshData takes ownership of b as a mesh descriptor.
func NewMeshData(b builder.MeshBuilder) *MeshData {
	return &MeshData{MeshBuilder: b}
}

// TypeID returns the identity tag of the MeshData type.
func (*MeshData) TypeID() uuid.UUID { return MeshDataTypeID }

// Clone returns a deep copy of d that shares no memory with it.
func (d *MeshData) Clone() *MeshData {
	return &MeshData{MeshBuilder: d.MeshBuilder.Clone()}
}

// Encode serializes d in format f.
func (d *MeshData) Encode(f codec.Format) ([]byte, error) {
	return codec.EncodeMesh(f, &d.MeshBuilder)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d *MeshData) MarshalBinary() ([]byte, error) {
	return d.Encode(codec.FormatBinary)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data is not
// retained.
func (d *MeshData) UnmarshalBinary(data []byte) error {
	out, err := DecodeMeshData(codec.FormatBinary, data)
	if err != nil {
		return err
	}
	*d = *out
	return nil
}

// DecodeMeshData decodes and validates a mesh descriptor. The result owns
// its bytes; raw may be reused once it returns. Every failure is a
// *codec.DecodeError.
func DecodeMeshData(f codec.Format, raw []byte) (*MeshData, error) {
	b, err := codec.DecodeMesh(f, raw)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, &codec.DecodeError{Format: f, Kind: codec.KindMesh, Err: err}
	}
	return NewMeshData(b), nil
}

// TextureData is the backend-independent descriptor of a Texture. It owns
// every byte it references.
type TextureData struct {
	builder.TextureBuilder
}

// NewTextureData takes ownership of b as a texture descriptor.
func NewTextureData(b builder.TextureBuilder) *TextureData {
	return &TextureData{TextureBuilder: b}
}

// TypeID returns the identity tag of the TextureData type.
func (*TextureData) TypeID() uuid.UUID { return TextureDataTypeID }

// Clone returns a deep copy of d that shares no memory with it.
func (d *TextureData) Clone() *TextureData {
	return &TextureData{TextureBuilder: d.TextureBuilder.Clone()}
}

// Encode serializes d in format f.
func (d *TextureData) Encode(f codec.Format) ([]byte, error) {
	return codec.EncodeTexture(f, &d.TextureBuilder)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d *TextureData) MarshalBinary() ([]byte, error) {
	return d.Encode(codec.FormatBinary)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data is not
// retained.
func (d *TextureData) UnmarshalBinary(data []byte) error {
	out, err := DecodeTextureData(codec.FormatBinary, data)
	if err != nil {
		return err
	}
	*d = *out
	return nil
}

// DecodeTextureData decodes and validates a texture descriptor. The result
// owns its bytes. Every failure is a *codec.DecodeError.
func DecodeTextureData(f codec.Format, raw []byte) (*TextureData, error) {
	b, err := codec.DecodeTexture(f, raw)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, &codec.DecodeError{Format: f, Kind: codec.KindTexture, Err: err}
	}
	return NewTextureData(b), nil
}
