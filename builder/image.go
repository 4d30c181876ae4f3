package builder

import (
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// FromImage converts img to a straight-alpha RGBA8 (sRGB) texture builder.
// The texels are always copied into a fresh buffer.
func FromImage(img image.Image) TextureBuilder {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return *NewTexture(uint32(b.Dx()), uint32(b.Dy()), gputypes.TextureFormatRGBA8UnormSrgb, dst.Pix)
}

// FromImageScaled resamples img to width x height with Catmull-Rom
// filtering and converts it to an RGBA8 (sRGB) texture builder.
func FromImageScaled(img image.Image, width, height int) TextureBuilder {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return *NewTexture(uint32(width), uint32(height), gputypes.TextureFormatRGBA8UnormSrgb, dst.Pix)
}

// FitWithin returns the largest size no bigger than maxSide on either axis
// that keeps the aspect ratio of (w, h). Sizes already within bounds are
// returned unchanged.
func FitWithin(w, h, maxSide int) (int, int) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}
