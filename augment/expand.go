package augment

import (
	"math/rand"

	"github.com/nvr-ai/go-augment/images"
	"github.com/pkg/errors"
)

// Expand pads the image onto a larger noise canvas with probability 1/2,
// emulating smaller objects. The canvas scale is drawn uniformly from
// [1, 1.8]; the original image lands at a random offset, masks are pasted
// onto a zero canvas at the same offset, and boxes are translated to match.
type Expand struct {
	rng   *rand.Rand
	force bool
}

// NewExpand returns the transform drawing from rng, or a time-seeded source
// when rng is nil.
func NewExpand(rng *rand.Rand) *Expand {
	return &Expand{rng: ensureRNG(rng)}
}

// Apply expands the sample in place, or passes through half the time.
func (t *Expand) Apply(s *Sample) error {
	if !t.force && t.rng.Intn(2) == 1 {
		return nil
	}

	width := float32(s.Image.Width)
	height := float32(s.Image.Height)
	ratio := uniform(t.rng, 1, 1.8)
	left := int(uniform(t.rng, 0, width*ratio-width))
	top := int(uniform(t.rng, 0, height*ratio-height))

	canvasW := int(width * ratio)
	canvasH := int(height * ratio)

	canvas := images.NewImage(canvasW, canvasH, s.Image.Channels)
	for i := range canvas.Pix {
		canvas.Pix[i] = t.rng.Float32() * 255
	}
	if err := canvas.Paste(s.Image, left, top); err != nil {
		return errors.Wrap(err, "pasting image onto expanded canvas")
	}
	s.Image = canvas

	if s.Masks != nil {
		maskCanvas := images.NewMaskStack(s.Masks.Count, canvasW, canvasH)
		if err := maskCanvas.Paste(s.Masks, left, top); err != nil {
			return errors.Wrap(err, "pasting masks onto expanded canvas")
		}
		s.Masks = maskCanvas
	}

	for i := range s.Boxes {
		s.Boxes[i].X1 += float32(left)
		s.Boxes[i].X2 += float32(left)
		s.Boxes[i].Y1 += float32(top)
		s.Boxes[i].Y2 += float32(top)
	}
	return nil
}

// RandomMirror flips the image and masks horizontally with probability 1/2
// and remaps the box x coordinates so x1 <= x2 still holds.
type RandomMirror struct {
	rng   *rand.Rand
	force bool
}

// NewRandomMirror returns the transform drawing from rng, or a time-seeded
// source when rng is nil.
func NewRandomMirror(rng *rand.Rand) *RandomMirror {
	return &RandomMirror{rng: ensureRNG(rng)}
}

// Apply flips the sample in place half the time.
func (t *RandomMirror) Apply(s *Sample) error {
	if !t.force && t.rng.Intn(2) == 0 {
		return nil
	}

	width := float32(s.Image.Width)
	s.Image.FlipHorizontal()
	if s.Masks != nil {
		s.Masks.FlipHorizontal()
	}
	for i := range s.Boxes {
		x1, x2 := s.Boxes[i].X1, s.Boxes[i].X2
		s.Boxes[i].X1 = width - x2
		s.Boxes[i].X2 = width - x1
	}
	return nil
}
