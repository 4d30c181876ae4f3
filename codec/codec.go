package codec

import (
	"fmt"

	"github.com/gogpu/gpures/builder"
)

// EncodeMesh serializes m in format f. Meshes cannot be encoded as images.
func EncodeMesh(f Format, m *builder.MeshBuilder) ([]byte, error) {
	switch f {
	case FormatBinary:
		return encodeMeshBinary(m), nil
	case FormatYAML, FormatTOML:
		doc := newMeshDoc(m)
		out, err := marshalDoc(f, &doc)
		if err != nil {
			return nil, fmt.Errorf("codec: encode mesh as %s: %w", f, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: mesh as %s", ErrUnsupported, f)
}

// DecodeMesh parses a mesh from raw. The result owns all of its bytes.
// Structural validation is left to the caller (builder.MeshBuilder.Validate).
func DecodeMesh(f Format, raw []byte) (builder.MeshBuilder, error) {
	switch f {
	case FormatBinary:
		m, err := decodeMeshBinary(raw)
		return m, decodeErr(f, KindMesh, err)
	case FormatYAML, FormatTOML:
		var doc meshDoc
		if err := unmarshalDoc(f, raw, &doc); err != nil {
			return builder.MeshBuilder{}, decodeErr(f, KindMesh, err)
		}
		m, err := doc.builder()
		if err != nil {
			return builder.MeshBuilder{}, decodeErr(f, KindMesh, err)
		}
		return m, nil
	}
	return builder.MeshBuilder{}, decodeErr(f, KindMesh, fmt.Errorf("%w: mesh from %s", ErrUnsupported, f))
}

// EncodeTexture serializes t in format f. FormatImage produces a PNG and
// requires an uncompressed 2D RGBA8 texture.
func EncodeTexture(f Format, t *builder.TextureBuilder) ([]byte, error) {
	switch f {
	case FormatBinary:
		return encodeTextureBinary(t), nil
	case FormatYAML, FormatTOML:
		doc := newTextureDoc(t)
		out, err := marshalDoc(f, &doc)
		if err != nil {
			return nil, fmt.Errorf("codec: encode texture as %s: %w", f, err)
		}
		return out, nil
	case FormatImage:
		return encodeImage(t)
	}
	return nil, fmt.Errorf("%w: texture as %s", ErrUnsupported, f)
}

// DecodeTexture parses a texture from raw. The result owns all of its bytes.
func DecodeTexture(f Format, raw []byte) (builder.TextureBuilder, error) {
	switch f {
	case FormatBinary:
		t, err := decodeTextureBinary(raw)
		return t, decodeErr(f, KindTexture, err)
	case FormatYAML, FormatTOML:
		var doc textureDoc
		if err := unmarshalDoc(f, raw, &doc); err != nil {
			return builder.TextureBuilder{}, decodeErr(f, KindTexture, err)
		}
		t, err := doc.builder()
		if err != nil {
			return builder.TextureBuilder{}, decodeErr(f, KindTexture, err)
		}
		return t, nil
	case FormatImage:
		t, err := decodeImage(raw)
		return t, decodeErr(f, KindTexture, err)
	}
	return builder.TextureBuilder{}, decodeErr(f, KindTexture, fmt.Errorf("%w: texture from %s", ErrUnsupported, f))
}

// PeekKind reports which payload kind raw holds without decoding it.
func PeekKind(f Format, raw []byte) (Kind, error) {
	var (
		k   Kind
		err error
	)
	switch f {
	case FormatBinary:
		k, err = peekBinaryKind(raw)
	case FormatYAML, FormatTOML:
		k, err = peekDocKind(f, raw)
	case FormatImage:
		k = KindTexture
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
	if err != nil {
		return KindUnknown, decodeErr(f, KindUnknown, err)
	}
	return k, nil
}

// Sniff guesses the format of raw from its leading bytes. Only the binary
// container and registered image formats carry a signature; documents
// report FormatUnknown.
func Sniff(raw []byte) Format {
	if _, err := peekBinaryKind(raw); err == nil {
		return FormatBinary
	}
	if isImage(raw) {
		return FormatImage
	}
	return FormatUnknown
}
