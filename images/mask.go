package images

import "github.com/pkg/errors"

// MaskStack is an instance-count x height x width float32 buffer of binary
// per-pixel instance membership. Its spatial dimensions always match the
// image it annotates; the pipeline enforces that by transforming both
// together.
type MaskStack struct {
	// Pix holds Count planes of Height*Width samples, instance-major.
	Pix []float32
	// Count is the number of instance planes.
	Count int
	// Width is the number of columns per plane.
	Width int
	// Height is the number of rows per plane.
	Height int
}

// NewMaskStack allocates a zero-filled stack of count planes.
func NewMaskStack(count, width, height int) *MaskStack {
	return &MaskStack{
		Pix:    make([]float32, count*width*height),
		Count:  count,
		Width:  width,
		Height: height,
	}
}

// Plane returns the backing slice of instance i. The slice aliases the
// stack's buffer.
func (s *MaskStack) Plane(i int) []float32 {
	n := s.Width * s.Height
	return s.Pix[i*n : (i+1)*n]
}

// At returns the sample of instance i at (x, y).
func (s *MaskStack) At(i, x, y int) float32 {
	return s.Pix[i*s.Width*s.Height+y*s.Width+x]
}

// Set stores v for instance i at (x, y).
func (s *MaskStack) Set(i, x, y int, v float32) {
	s.Pix[i*s.Width*s.Height+y*s.Width+x] = v
}

// Clone returns a deep copy with its own backing buffer.
func (s *MaskStack) Clone() *MaskStack {
	out := &MaskStack{
		Pix:    make([]float32, len(s.Pix)),
		Count:  s.Count,
		Width:  s.Width,
		Height: s.Height,
	}
	copy(out.Pix, s.Pix)
	return out
}

// Select returns a copy holding only the planes named by keep, in order.
func (s *MaskStack) Select(keep []int) *MaskStack {
	out := NewMaskStack(len(keep), s.Width, s.Height)
	for j, i := range keep {
		copy(out.Plane(j), s.Plane(i))
	}
	return out
}

// Crop returns a copy of every plane restricted to the half-open window
// [x1, x2) x [y1, y2).
func (s *MaskStack) Crop(x1, y1, x2, y2 int) (*MaskStack, error) {
	if x1 < 0 || y1 < 0 || x2 > s.Width || y2 > s.Height || x1 >= x2 || y1 >= y2 {
		return nil, errors.Errorf("crop window (%d,%d)-(%d,%d) outside %dx%d masks",
			x1, y1, x2, y2, s.Width, s.Height)
	}
	out := NewMaskStack(s.Count, x2-x1, y2-y1)
	for i := 0; i < s.Count; i++ {
		src := s.Plane(i)
		dst := out.Plane(i)
		for y := y1; y < y2; y++ {
			copy(dst[(y-y1)*out.Width:(y-y1)*out.Width+out.Width], src[y*s.Width+x1:y*s.Width+x2])
		}
	}
	return out, nil
}

// Paste copies every plane of src into the receiver at offset (x, y). The
// plane counts must match and src must fit inside the destination.
func (s *MaskStack) Paste(src *MaskStack, x, y int) error {
	if src.Count != s.Count {
		return errors.Errorf("paste plane count mismatch: %d vs %d", src.Count, s.Count)
	}
	if x < 0 || y < 0 || x+src.Width > s.Width || y+src.Height > s.Height {
		return errors.Errorf("paste of %dx%d at (%d,%d) outside %dx%d masks",
			src.Width, src.Height, x, y, s.Width, s.Height)
	}
	for i := 0; i < s.Count; i++ {
		from := src.Plane(i)
		to := s.Plane(i)
		for sy := 0; sy < src.Height; sy++ {
			copy(to[(y+sy)*s.Width+x:(y+sy)*s.Width+x+src.Width], from[sy*src.Width:(sy+1)*src.Width])
		}
	}
	return nil
}

// FlipHorizontal mirrors every plane around its vertical center line in place.
func (s *MaskStack) FlipHorizontal() {
	for i := 0; i < s.Count; i++ {
		p := s.Plane(i)
		for y := 0; y < s.Height; y++ {
			row := p[y*s.Width : (y+1)*s.Width]
			for x := 0; x < s.Width/2; x++ {
				row[x], row[s.Width-1-x] = row[s.Width-1-x], row[x]
			}
		}
	}
}
