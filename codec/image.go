package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Registered image decoders.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gpures/builder"
	"github.com/gogpu/gputypes"
)

// decodeImage decodes any registered image format into an RGBA8 texture.
// The pixel buffer is freshly allocated by the conversion.
func decodeImage(raw []byte) (builder.TextureBuilder, error) {
	img, name, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return builder.TextureBuilder{}, err
	}
	t := builder.FromImage(img)
	t.Label = name
	return t, nil
}

// encodeImage writes an uncompressed 2D RGBA8 texture as PNG.
func encodeImage(t *builder.TextureBuilder) ([]byte, error) {
	switch t.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
	default:
		return nil, fmt.Errorf("%w: %s texture as png", ErrUnsupported, t.Format)
	}
	if t.Dimension != gputypes.TextureDimension2D || t.Size.DepthOrArrayLayers != 1 {
		return nil, fmt.Errorf("%w: %s texture with %d layers as png", ErrUnsupported, t.Dimension, t.Size.DepthOrArrayLayers)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	img := &image.NRGBA{
		Pix:    t.Data,
		Stride: int(t.BytesPerRow()),
		Rect:   image.Rect(0, 0, int(t.Size.Width), int(t.Size.Height)),
	}
	if len(img.Pix) == 0 {
		img.Pix = make([]byte, t.ByteSize())
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codec: png: %w", err)
	}
	return buf.Bytes(), nil
}

// isImage reports whether raw starts with a registered image signature.
func isImage(raw []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(raw))
	return err == nil
}
