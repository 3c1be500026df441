package augment

import (
	"math/rand"

	"github.com/nvr-ai/go-augment/images"
	"github.com/pkg/errors"
)

// ColorSpace names the color space an image is currently encoded in.
type ColorSpace string

const (
	// ColorBGR is the interleaved blue-green-red layout raw images arrive in.
	ColorBGR ColorSpace = "BGR"
	// ColorHSV is hue-saturation-value, hue in degrees [0, 360).
	ColorHSV ColorSpace = "HSV"
)

// RandomContrast multiplies the whole image by a factor drawn uniformly from
// [Lower, Upper].
type RandomContrast struct {
	Lower, Upper float32
	rng          *rand.Rand
}

// NewRandomContrast validates the bounds and returns the transform. A nil
// rng falls back to a time-seeded source.
func NewRandomContrast(lower, upper float32, rng *rand.Rand) (*RandomContrast, error) {
	if upper < lower {
		return nil, errors.Errorf("contrast upper %v must be >= lower %v", upper, lower)
	}
	if lower < 0 {
		return nil, errors.Errorf("contrast lower must be non-negative, got %v", lower)
	}
	return &RandomContrast{Lower: lower, Upper: upper, rng: ensureRNG(rng)}, nil
}

// Apply scales every sample of the image in place.
func (t *RandomContrast) Apply(s *Sample) error {
	s.Image.Scale(uniform(t.rng, t.Lower, t.Upper))
	return nil
}

// RandomBrightness adds a value drawn uniformly from [-Delta, Delta] to the
// whole image.
type RandomBrightness struct {
	Delta float32
	rng   *rand.Rand
}

// NewRandomBrightness returns the transform. Delta is expected in [0, 255].
func NewRandomBrightness(delta float32, rng *rand.Rand) *RandomBrightness {
	return &RandomBrightness{Delta: delta, rng: ensureRNG(rng)}
}

// Apply shifts every sample of the image in place.
func (t *RandomBrightness) Apply(s *Sample) error {
	s.Image.AddScalar(uniform(t.rng, -t.Delta, t.Delta))
	return nil
}

// ConvertColor deterministically converts the image between BGR and HSV.
// Only those two directions exist; any other pair fails at construction.
type ConvertColor struct {
	Current   ColorSpace
	Transform ColorSpace
}

// NewConvertColor validates the conversion pair.
func NewConvertColor(current, transform ColorSpace) (*ConvertColor, error) {
	if (current == ColorBGR && transform == ColorHSV) ||
		(current == ColorHSV && transform == ColorBGR) {
		return &ConvertColor{Current: current, Transform: transform}, nil
	}
	return nil, errors.Errorf("unsupported color conversion %s -> %s", current, transform)
}

// Apply replaces the image with its converted copy.
func (t *ConvertColor) Apply(s *Sample) error {
	var (
		img *images.Image
		err error
	)
	switch {
	case t.Current == ColorBGR && t.Transform == ColorHSV:
		img, err = images.BGRToHSV(s.Image)
	case t.Current == ColorHSV && t.Transform == ColorBGR:
		img, err = images.HSVToBGR(s.Image)
	default:
		return errors.Errorf("unsupported color conversion %s -> %s", t.Current, t.Transform)
	}
	if err != nil {
		return errors.Wrap(err, "converting color space")
	}
	s.Image = img
	return nil
}

// RandomSaturation scales the HSV saturation channel by a factor drawn
// uniformly from [Lower, Upper]. The image must already be in HSV.
type RandomSaturation struct {
	Lower, Upper float32
	rng          *rand.Rand
}

// NewRandomSaturation validates the bounds and returns the transform.
func NewRandomSaturation(lower, upper float32, rng *rand.Rand) (*RandomSaturation, error) {
	if upper < lower {
		return nil, errors.Errorf("saturation upper %v must be >= lower %v", upper, lower)
	}
	if lower < 0 {
		return nil, errors.Errorf("saturation lower must be non-negative, got %v", lower)
	}
	return &RandomSaturation{Lower: lower, Upper: upper, rng: ensureRNG(rng)}, nil
}

// Apply scales channel 1 in place.
func (t *RandomSaturation) Apply(s *Sample) error {
	s.Image.ScaleChannel(1, uniform(t.rng, t.Lower, t.Upper))
	return nil
}

// RandomHue shifts the HSV hue channel by a value drawn uniformly from
// [-Delta, Delta] and wraps the result back into [0, 360). The wrap is a
// single correction pass, which is sufficient for the bounded delta range.
type RandomHue struct {
	Delta float32
	rng   *rand.Rand
}

// NewRandomHue validates delta and returns the transform.
func NewRandomHue(delta float32, rng *rand.Rand) (*RandomHue, error) {
	if delta < 0 || delta > 360 {
		return nil, errors.Errorf("hue delta must be in [0, 360], got %v", delta)
	}
	return &RandomHue{Delta: delta, rng: ensureRNG(rng)}, nil
}

// Apply shifts channel 0 in place and corrects one wraparound per sample.
func (t *RandomHue) Apply(s *Sample) error {
	img := s.Image
	img.AddChannel(0, uniform(t.rng, -t.Delta, t.Delta))
	for i := 0; i < len(img.Pix); i += img.Channels {
		if img.Pix[i] > 360 {
			img.Pix[i] -= 360
		} else if img.Pix[i] < 0 {
			img.Pix[i] += 360
		}
	}
	return nil
}

// PhotometricDistort applies, with probability 1/2, the fixed six-stage
// sequence contrast, brightness, BGR->HSV, saturation, hue, HSV->BGR.
// Contrast and brightness sit outside the HSV leg so they cannot interact
// with the hue/saturation channel semantics.
type PhotometricDistort struct {
	seq   *Compose
	rng   *rand.Rand
	force bool
}

// NewPhotometricDistort builds the six-stage sequence with the standard
// parameters (contrast and saturation in [0.7, 1.3], brightness 20, hue 12).
func NewPhotometricDistort(rng *rand.Rand) (*PhotometricDistort, error) {
	rng = ensureRNG(rng)

	contrast, err := NewRandomContrast(0.7, 1.3, rng)
	if err != nil {
		return nil, err
	}
	toHSV, err := NewConvertColor(ColorBGR, ColorHSV)
	if err != nil {
		return nil, err
	}
	saturation, err := NewRandomSaturation(0.7, 1.3, rng)
	if err != nil {
		return nil, err
	}
	hue, err := NewRandomHue(12, rng)
	if err != nil {
		return nil, err
	}
	toBGR, err := NewConvertColor(ColorHSV, ColorBGR)
	if err != nil {
		return nil, err
	}

	return &PhotometricDistort{
		seq: NewCompose(
			contrast,
			NewRandomBrightness(20, rng),
			toHSV,
			saturation,
			hue,
			toBGR,
		),
		rng: rng,
	}, nil
}

// Apply runs the sequence half the time and passes through otherwise.
func (t *PhotometricDistort) Apply(s *Sample) error {
	if !t.force && t.rng.Intn(2) == 0 {
		return nil
	}
	return t.seq.Apply(s)
}
