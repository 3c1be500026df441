// Package images provides the mutable float32 pixel buffers the augmentation
// pipeline operates on: an interleaved HWC image (BGR channel order) and a
// per-instance mask stack, together with gocv-backed resizing and color-space
// conversion.
package images

import "github.com/pkg/errors"

// Image is a height x width x channel float32 buffer with interleaved
// samples. The pipeline keeps color images in BGR order; values may leave
// [0, 255] transiently while photometric transforms are applied.
type Image struct {
	// Pix holds the interleaved samples, row-major, channel-minor.
	Pix []float32
	// Width is the number of columns.
	Width int
	// Height is the number of rows.
	Height int
	// Channels is the number of interleaved channels per pixel.
	Channels int
}

// NewImage allocates a zero-filled image.
func NewImage(width, height, channels int) *Image {
	return &Image{
		Pix:      make([]float32, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// offset returns the index of sample (x, y, c) in Pix.
func (m *Image) offset(x, y, c int) int {
	return (y*m.Width+x)*m.Channels + c
}

// At returns the sample at (x, y) in channel c.
func (m *Image) At(x, y, c int) float32 {
	return m.Pix[m.offset(x, y, c)]
}

// Set stores v at (x, y) in channel c.
func (m *Image) Set(x, y, c int, v float32) {
	m.Pix[m.offset(x, y, c)] = v
}

// Clone returns a deep copy with its own backing buffer.
func (m *Image) Clone() *Image {
	out := &Image{
		Pix:      make([]float32, len(m.Pix)),
		Width:    m.Width,
		Height:   m.Height,
		Channels: m.Channels,
	}
	copy(out.Pix, m.Pix)
	return out
}

// Scale multiplies every sample by alpha in place.
func (m *Image) Scale(alpha float32) {
	for i := range m.Pix {
		m.Pix[i] *= alpha
	}
}

// AddScalar adds delta to every sample in place.
func (m *Image) AddScalar(delta float32) {
	for i := range m.Pix {
		m.Pix[i] += delta
	}
}

// ScaleChannel multiplies every sample of channel c by alpha in place.
func (m *Image) ScaleChannel(c int, alpha float32) {
	for i := c; i < len(m.Pix); i += m.Channels {
		m.Pix[i] *= alpha
	}
}

// AddChannel adds delta to every sample of channel c in place.
func (m *Image) AddChannel(c int, delta float32) {
	for i := c; i < len(m.Pix); i += m.Channels {
		m.Pix[i] += delta
	}
}

// Crop returns a copy of the half-open pixel window [x1, x2) x [y1, y2).
//
// Arguments:
// - x1, y1: Top-left corner, inclusive.
// - x2, y2: Bottom-right corner, exclusive.
//
// Returns:
// - *Image: The cropped copy.
// - error: If the window does not lie inside the image.
func (m *Image) Crop(x1, y1, x2, y2 int) (*Image, error) {
	if x1 < 0 || y1 < 0 || x2 > m.Width || y2 > m.Height || x1 >= x2 || y1 >= y2 {
		return nil, errors.Errorf("crop window (%d,%d)-(%d,%d) outside %dx%d image",
			x1, y1, x2, y2, m.Width, m.Height)
	}
	out := NewImage(x2-x1, y2-y1, m.Channels)
	rowLen := (x2 - x1) * m.Channels
	for y := y1; y < y2; y++ {
		src := m.offset(x1, y, 0)
		dst := out.offset(0, y-y1, 0)
		copy(out.Pix[dst:dst+rowLen], m.Pix[src:src+rowLen])
	}
	return out, nil
}

// Paste copies src into the receiver with its top-left corner at (x, y).
// The source must fit entirely inside the destination.
func (m *Image) Paste(src *Image, x, y int) error {
	if src.Channels != m.Channels {
		return errors.Errorf("paste channel mismatch: %d vs %d", src.Channels, m.Channels)
	}
	if x < 0 || y < 0 || x+src.Width > m.Width || y+src.Height > m.Height {
		return errors.Errorf("paste of %dx%d at (%d,%d) outside %dx%d image",
			src.Width, src.Height, x, y, m.Width, m.Height)
	}
	rowLen := src.Width * m.Channels
	for sy := 0; sy < src.Height; sy++ {
		from := src.offset(0, sy, 0)
		to := m.offset(x, y+sy, 0)
		copy(m.Pix[to:to+rowLen], src.Pix[from:from+rowLen])
	}
	return nil
}

// FlipHorizontal mirrors the image around its vertical center line in place.
func (m *Image) FlipHorizontal() {
	c := m.Channels
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width/2; x++ {
			a := m.offset(x, y, 0)
			b := m.offset(m.Width-1-x, y, 0)
			for k := 0; k < c; k++ {
				m.Pix[a+k], m.Pix[b+k] = m.Pix[b+k], m.Pix[a+k]
			}
		}
	}
}
