package images

import (
	"image"
	"image/color"
)

// FromImage copies a Go-native image.Image into a 3-channel float32 BGR
// buffer with values in [0, 255].
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	out := NewImage(bounds.Dx(), bounds.Dy(), 3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			out.Pix[i] = float32(b >> 8)
			out.Pix[i+1] = float32(g >> 8)
			out.Pix[i+2] = float32(r >> 8)
			i += 3
		}
	}
	return out
}

// ToImage converts a 3-channel BGR float image back to a Go-native RGBA
// image, clamping samples to [0, 255]. Intended for previews and debugging;
// normalized images should be rescaled by the caller first.
func (m *Image) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: clampByte(m.At(x, y, 2)),
				G: clampByte(m.At(x, y, 1)),
				B: clampByte(m.At(x, y, 0)),
				A: 255,
			})
		}
	}
	return out
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
