package augment

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/nvr-ai/go-augment/geometry"
	"github.com/pkg/errors"
)

const (
	// cropTrials is the number of patch draws attempted per sampled mode.
	cropTrials = 50
	// cropAttempts bounds the outer mode-resampling loop. The identity mode
	// sits in the candidate set, so the loop almost always exits long before
	// this; the bound exists to guarantee termination, with identity as the
	// fallback.
	cropAttempts = 1000
)

// cropMode is one entry of the sampler's option set: either the identity
// (keep the whole image) or a min/max IoU constraint on the sampled patch.
type cropMode struct {
	identity       bool
	minIoU, maxIoU float32
}

var cropModes = []cropMode{
	{identity: true},
	{minIoU: 0.1, maxIoU: math32.Inf(1)},
	{minIoU: 0.3, maxIoU: math32.Inf(1)},
	{minIoU: 0.7, maxIoU: math32.Inf(1)},
	{minIoU: 0.9, maxIoU: math32.Inf(1)},
	{minIoU: math32.Inf(-1), maxIoU: math32.Inf(1)},
}

// RandomSampleCrop samples a constrained random patch from the image and
// crops image, masks, boxes and labels to it jointly.
//
// Each call draws a mode uniformly from {identity, min-IoU 0.1/0.3/0.7/0.9,
// unconstrained} and then rejection-samples up to 50 patches: dimensions
// uniform in [0.3*dim, dim], aspect ratio within [0.5, 2], and an IoU
// condition against the ground-truth boxes. Boxes survive only if their
// center lies strictly inside the patch, and at least one non-crowd box must
// survive. When all 50 trials fail the sampler draws a fresh mode.
type RandomSampleCrop struct {
	rng *rand.Rand
}

// NewRandomSampleCrop returns a sampler drawing from rng, or a time-seeded
// source when rng is nil.
func NewRandomSampleCrop(rng *rand.Rand) *RandomSampleCrop {
	return &RandomSampleCrop{rng: ensureRNG(rng)}
}

// Apply crops the sample in place, or leaves it untouched when the identity
// mode is drawn (or the attempt budget runs out).
func (t *RandomSampleCrop) Apply(s *Sample) error {
	if len(s.Boxes) == 0 {
		// Nothing to constrain against; behave as the identity.
		return nil
	}

	width := float32(s.Image.Width)
	height := float32(s.Image.Height)

	for attempt := 0; attempt < cropAttempts; attempt++ {
		mode := cropModes[t.rng.Intn(len(cropModes))]
		if mode.identity {
			return nil
		}

		for trial := 0; trial < cropTrials; trial++ {
			w := uniform(t.rng, 0.3*width, width)
			h := uniform(t.rng, 0.3*height, height)
			if h/w < 0.5 || h/w > 2 {
				continue
			}

			left := uniform(t.rng, 0, width-w)
			top := uniform(t.rng, 0, height-h)
			rect := geometry.NewBox(
				float32(int(left)), float32(int(top)),
				float32(int(left+w)), float32(int(top+h)),
			)
			// Integer truncation can collapse the patch on tiny images.
			if rect.X2 <= rect.X1 || rect.Y2 <= rect.Y1 {
				continue
			}

			overlap := geometry.JaccardOverlap(s.Boxes, rect)
			omin, omax, hasNaN := overlapRange(overlap)

			// The overlap test below is inherited verbatim: it rejects only
			// when BOTH the minimum is under the lower bound AND the maximum
			// is over the upper bound. Rewriting it as the intuitive
			// per-bound check is known to regress accuracy, so it stays.
			// NaN overlaps (zero-area unions) always reject.
			if hasNaN || (omin < mode.minIoU && mode.maxIoU < omax) {
				continue
			}

			keep, keptCrowds := t.surviving(s, rect)
			if len(keep) == 0 || len(keep) == keptCrowds {
				continue
			}

			if err := t.commit(s, rect, keep, keptCrowds); err != nil {
				return err
			}
			return nil
		}
	}

	// Attempt budget exhausted: fall back to the identity.
	return nil
}

// surviving returns the indices of boxes whose center lies strictly inside
// rect, plus how many of them are crowd rows.
func (t *RandomSampleCrop) surviving(s *Sample, rect geometry.Box) (keep []int, keptCrowds int) {
	crowdStart := len(s.Boxes)
	if s.Labels != nil {
		crowdStart -= s.Labels.NumCrowds
	}
	for i, b := range s.Boxes {
		cx, cy := b.Center()
		if !rect.ContainsStrict(cx, cy) {
			continue
		}
		keep = append(keep, i)
		if i >= crowdStart {
			keptCrowds++
		}
	}
	return keep, keptCrowds
}

// commit rewrites the sample to the cropped patch: image and masks are cut
// to rect, dropped rows are filtered out, surviving boxes are clipped to the
// patch and translated into its coordinate frame, and a fresh Labels value
// is installed with the recomputed crowd count.
func (t *RandomSampleCrop) commit(s *Sample, rect geometry.Box, keep []int, keptCrowds int) error {
	x1, y1 := int(rect.X1), int(rect.Y1)
	x2, y2 := int(rect.X2), int(rect.Y2)

	img, err := s.Image.Crop(x1, y1, x2, y2)
	if err != nil {
		return errors.Wrap(err, "cropping image")
	}

	boxes := make([]geometry.Box, len(keep))
	for j, i := range keep {
		b := s.Boxes[i]
		b.X1 = math32.Max(b.X1, rect.X1) - rect.X1
		b.Y1 = math32.Max(b.Y1, rect.Y1) - rect.Y1
		b.X2 = math32.Min(b.X2, rect.X2) - rect.X1
		b.Y2 = math32.Min(b.Y2, rect.Y2) - rect.Y1
		boxes[j] = b
	}

	if s.Masks != nil {
		masks, err := s.Masks.Select(keep).Crop(x1, y1, x2, y2)
		if err != nil {
			return errors.Wrap(err, "cropping masks")
		}
		s.Masks = masks
	}

	if s.Labels != nil {
		classes := make([]int, len(keep))
		for j, i := range keep {
			classes[j] = s.Labels.Classes[i]
		}
		s.Labels = &Labels{Classes: classes, NumCrowds: keptCrowds}
	}

	s.Image = img
	s.Boxes = boxes
	return nil
}

// overlapRange returns the minimum and maximum of the overlap values and
// whether any of them is NaN.
func overlapRange(overlap []float32) (omin, omax float32, hasNaN bool) {
	omin = math32.Inf(1)
	omax = math32.Inf(-1)
	for _, v := range overlap {
		if math32.IsNaN(v) {
			hasNaN = true
			continue
		}
		omin = math32.Min(omin, v)
		omax = math32.Max(omax, v)
	}
	return omin, omax, hasNaN
}
