package augment

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// ImgToFloat is the first stage of every pipeline. It takes ownership of the
// image by cloning it into a freshly allocated float buffer, so the in-place
// photometric stages never write into a buffer the dataset loader may reuse.
type ImgToFloat struct{}

// Apply clones the image.
func (ImgToFloat) Apply(s *Sample) error {
	s.Image = s.Image.Clone()
	return nil
}

// ToAbsoluteBox scales percent-form boxes up to absolute pixel coordinates.
// The boxes must currently be in percent form; the pipeline ordering is
// responsible for the alternation with ToPercentBox.
type ToAbsoluteBox struct{}

// Apply multiplies x coordinates by the image width and y coordinates by the
// image height.
func (ToAbsoluteBox) Apply(s *Sample) error {
	w := float32(s.Image.Width)
	h := float32(s.Image.Height)
	for i := range s.Boxes {
		s.Boxes[i].X1 *= w
		s.Boxes[i].X2 *= w
		s.Boxes[i].Y1 *= h
		s.Boxes[i].Y2 *= h
	}
	return nil
}

// ToPercentBox scales absolute-pixel boxes down to percent form. Inverse of
// ToAbsoluteBox.
type ToPercentBox struct{}

// Apply divides x coordinates by the image width and y coordinates by the
// image height.
func (ToPercentBox) Apply(s *Sample) error {
	w := float32(s.Image.Width)
	h := float32(s.Image.Height)
	for i := range s.Boxes {
		s.Boxes[i].X1 /= w
		s.Boxes[i].X2 /= w
		s.Boxes[i].Y1 /= h
		s.Boxes[i].Y2 /= h
	}
	return nil
}

// Resize scales the image to a fixed square resolution. With ResizeGT set
// (the training path) the masks are resized alongside and the boxes, which
// are absolute pixels at this point in the pipeline, are rescaled per axis.
type Resize struct {
	// Size is the square edge length.
	Size int
	// ResizeGT selects whether masks and boxes are transformed too.
	ResizeGT bool
}

// NewResize returns a Resize stage targeting a size x size output.
func NewResize(size int, resizeGT bool) (*Resize, error) {
	if size <= 0 {
		return nil, errors.Errorf("resize target must be positive, got %d", size)
	}
	return &Resize{Size: size, ResizeGT: resizeGT}, nil
}

// Apply resizes the image with bilinear interpolation, and on the training
// path the masks and boxes with it.
func (t *Resize) Apply(s *Sample) error {
	origW := s.Image.Width
	origH := s.Image.Height

	img, err := s.Image.ResizeBilinear(t.Size, t.Size)
	if err != nil {
		return errors.Wrap(err, "resizing image")
	}
	s.Image = img

	if !t.ResizeGT {
		return nil
	}

	if s.Masks != nil {
		masks, err := s.Masks.ResizeBilinear(t.Size, t.Size)
		if err != nil {
			return errors.Wrap(err, "resizing masks")
		}
		s.Masks = masks
	}

	sx := float32(t.Size) / float32(origW)
	sy := float32(t.Size) / float32(origH)
	for i := range s.Boxes {
		s.Boxes[i].X1 *= sx
		s.Boxes[i].X2 *= sx
		s.Boxes[i].Y1 *= sy
		s.Boxes[i].Y2 *= sy
	}
	return nil
}

// Normalize standardizes each of the three channels with the image's own
// mean and standard deviation, then reorders the channels from BGR to RGB.
//
// The statistics come from the sample itself, not from fixed dataset
// constants. A constant channel divides by a zero std and produces
// non-finite values, the same way the reference numerics do.
type Normalize struct{}

// Apply standardizes the image in place and swaps channels 0 and 2.
func (Normalize) Apply(s *Sample) error {
	img := s.Image
	n := float32(img.Width * img.Height)
	for c := 0; c < 3; c++ {
		var sum float32
		for i := c; i < len(img.Pix); i += img.Channels {
			sum += img.Pix[i]
		}
		mean := sum / n

		var sq float32
		for i := c; i < len(img.Pix); i += img.Channels {
			d := img.Pix[i] - mean
			sq += d * d
		}
		std := math32.Sqrt(sq / n)

		for i := c; i < len(img.Pix); i += img.Channels {
			img.Pix[i] = (img.Pix[i] - mean) / std
		}
	}

	// BGR -> RGB
	for i := 0; i < len(img.Pix); i += img.Channels {
		img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
	}
	return nil
}
