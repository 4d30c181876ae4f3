package builder

import (
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/jinzhu/copier"
)

// SamplerInfo holds the sampling parameters stored with a texture.
type SamplerInfo struct {
	AddressMode  gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
}

// DefaultSampler clamps to the edge and filters linearly within a level.
func DefaultSampler() SamplerInfo {
	return SamplerInfo{
		AddressMode:  gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	}
}

// TextureBuilder is the backend-independent description of a texture.
// Data holds the texels of mip level 0 with tightly packed rows; it may be
// empty for a texture that is filled later on the GPU.
type TextureBuilder struct {
	Label     string
	Size      gputypes.Extent3D
	Dimension gputypes.TextureDimension
	Format    gputypes.TextureFormat
	MipLevels uint32
	Data      []byte
	Sampler   SamplerInfo
}

// NewTexture returns a single-level 2D texture builder. The builder takes
// ownership of data.
func NewTexture(width, height uint32, format gputypes.TextureFormat, data []byte) *TextureBuilder {
	return &TextureBuilder{
		Size:      gputypes.NewExtent2D(width, height),
		Dimension: gputypes.TextureDimension2D,
		Format:    format,
		MipLevels: 1,
		Data:      data,
		Sampler:   DefaultSampler(),
	}
}

// WithLabel sets the debug label.
func (b *TextureBuilder) WithLabel(label string) *TextureBuilder {
	b.Label = label
	return b
}

// WithSampler replaces the sampling parameters.
func (b *TextureBuilder) WithSampler(s SamplerInfo) *TextureBuilder {
	b.Sampler = s
	return b
}

// WithMipLevels sets the mip level count allocated for the texture.
func (b *TextureBuilder) WithMipLevels(n uint32) *TextureBuilder {
	b.MipLevels = n
	return b
}

// BytesPerRow returns the row pitch of level 0, or zero for formats
// without a fixed texel size or rows wider than a uint32 can hold.
func (b *TextureBuilder) BytesPerRow() uint32 {
	row := uint64(b.Size.Width) * uint64(TexelSize(b.Format))
	if row > math.MaxUint32 {
		return 0
	}
	return uint32(row)
}

// ByteSize returns the expected payload length of level 0, or zero for
// formats without a fixed texel size.
func (b *TextureBuilder) ByteSize() int {
	size := b.byteSize()
	if size > math.MaxInt {
		return 0
	}
	return int(size)
}

func (b *TextureBuilder) byteSize() uint64 {
	return uint64(b.Size.Width) * uint64(TexelSize(b.Format)) *
		uint64(b.Size.Height) * uint64(b.Size.DepthOrArrayLayers)
}

// checkExtent rejects extents beyond the default device limits for the
// texture's dimension.
func (b *TextureBuilder) checkExtent() error {
	lim := gputypes.DefaultLimits()
	w, h, d := b.Size.Width, b.Size.Height, b.Size.DepthOrArrayLayers
	var ok bool
	switch b.Dimension {
	case gputypes.TextureDimension1D:
		ok = w <= lim.MaxTextureDimension1D
	case gputypes.TextureDimension2D:
		ok = w <= lim.MaxTextureDimension2D && h <= lim.MaxTextureDimension2D && d <= lim.MaxTextureArrayLayers
	case gputypes.TextureDimension3D:
		ok = w <= lim.MaxTextureDimension3D && h <= lim.MaxTextureDimension3D && d <= lim.MaxTextureDimension3D
	}
	if !ok {
		return fmt.Errorf("%w: %dx%dx%d %s", ErrTextureExtent, w, h, d, b.Dimension)
	}
	return nil
}

// Validate checks the extent, format, dimension and mip count, and for
// formats with a fixed texel size that a non-empty payload covers level 0
// exactly.
func (b *TextureBuilder) Validate() error {
	if b.Size.Width == 0 || b.Size.Height == 0 || b.Size.DepthOrArrayLayers == 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrEmptyExtent,
			b.Size.Width, b.Size.Height, b.Size.DepthOrArrayLayers)
	}
	if b.Format == gputypes.TextureFormatUndefined {
		return ErrTextureFormat
	}
	switch b.Dimension {
	case gputypes.TextureDimension1D:
		if b.Size.Height != 1 || b.Size.DepthOrArrayLayers != 1 {
			return fmt.Errorf("%w: 1D texture with height %d and depth %d",
				ErrTextureDimension, b.Size.Height, b.Size.DepthOrArrayLayers)
		}
	case gputypes.TextureDimension2D, gputypes.TextureDimension3D:
	default:
		return fmt.Errorf("%w: %s", ErrTextureDimension, b.Dimension)
	}
	if err := b.checkExtent(); err != nil {
		return err
	}
	if limit := maxMipLevels(b.Size, b.Dimension); b.MipLevels == 0 || b.MipLevels > limit {
		return fmt.Errorf("%w: %d (extent allows 1..%d)", ErrMipLevels, b.MipLevels, limit)
	}
	if len(b.Data) > 0 {
		if want := b.byteSize(); want > 0 && uint64(len(b.Data)) != want {
			return fmt.Errorf("%w: got %d bytes, want %d for %dx%dx%d %s", ErrTextureData,
				len(b.Data), want, b.Size.Width, b.Size.Height, b.Size.DepthOrArrayLayers, b.Format)
		}
	}
	return nil
}

// Clone returns a deep copy of the builder. The copy shares no memory with b
// and a nil payload stays nil.
func (b *TextureBuilder) Clone() TextureBuilder {
	var out TextureBuilder
	if err := copier.CopyWithOption(&out, b, copier.Option{DeepCopy: true}); err != nil {
		out = *b
		out.Data = append([]byte(nil), b.Data...)
	}
	if b.Data == nil {
		out.Data = nil
	}
	return out
}
