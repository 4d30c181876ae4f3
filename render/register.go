// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gpures/asset"
	"github.com/gogpu/gpures/codec"
)

// registerErr records the outcome of registering the mesh and texture kinds
// at init. The fixed tags above never conflict with each other, so it is
// nil unless another package bound them first.
var registerErr = registerKinds()

func registerKinds() error {
	return errors.Join(
		asset.Register[*MeshData, Mesh](asset.Registration{
			ID:     MeshTypeID,
			DataID: MeshDataTypeID,
			Name:   codec.KindMesh.String(),
			Decode: func(f codec.Format, raw []byte) (any, error) {
				return DecodeMeshData(f, raw)
			},
		}),
		asset.Register[*TextureData, Texture](asset.Registration{
			ID:     TextureTypeID,
			DataID: TextureDataTypeID,
			Name:   codec.KindTexture.String(),
			Decode: func(f codec.Format, raw []byte) (any, error) {
				return DecodeTextureData(f, raw)
			},
		}),
	)
}

// RegistrationError reports whether registering the mesh and texture kinds
// with the asset binding table failed.
func RegistrationError() error { return registerErr }

// Processor returns an asset processor that builds *MeshData into Mesh and
// *TextureData into Texture on dev.
func Processor[B Backend[B]](dev *Device[B]) asset.Processor {
	return func(ctx context.Context, data any) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch d := data.(type) {
		case *MeshData:
			m, err := BuildMesh(dev, &d.MeshBuilder)
			if err != nil {
				return nil, err
			}
			return WrapMesh(m), nil
		case *TextureData:
			t, err := BuildTexture(dev, &d.TextureBuilder)
			if err != nil {
				return nil, err
			}
			return WrapTexture(t), nil
		}
		return nil, fmt.Errorf("render: no processor for %T", data)
	}
}

// RegisterProcessors installs Processor(dev) for both kinds on l.
func RegisterProcessors[B Backend[B]](l *asset.Loader, dev *Device[B]) {
	p := Processor(dev)
	l.SetProcessor(MeshTypeID, p)
	l.SetProcessor(TextureTypeID, p)
}

// RegisterProcessors installs processors building on d for both kinds on l.
func (d *Device[B]) RegisterProcessors(l *asset.Loader) {
	RegisterProcessors(l, d)
}
