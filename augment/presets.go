package augment

import (
	"math/rand"

	"github.com/nvr-ai/go-augment/config"
	"github.com/pkg/errors"
)

// NewSSDAugmentation builds the full training pipeline:
//
//	ImgToFloat -> PhotometricDistort -> ToAbsoluteBox -> RandomSampleCrop ->
//	Expand -> RandomMirror -> Resize(gt) -> ToPercentBox -> Normalize
//
// Boxes enter in percent form and leave in percent form; in between the
// geometric stages operate on absolute pixels. All random stages share rng.
func NewSSDAugmentation(cfg config.Config, rng *rand.Rand) (*Compose, error) {
	rng = ensureRNG(rng)

	distort, err := NewPhotometricDistort(rng)
	if err != nil {
		return nil, errors.Wrap(err, "building photometric distort")
	}
	resize, err := NewResize(cfg.ImgSize, true)
	if err != nil {
		return nil, errors.Wrap(err, "building resize")
	}

	return NewCompose(
		ImgToFloat{},
		distort,
		ToAbsoluteBox{},
		NewRandomSampleCrop(rng),
		NewExpand(rng),
		NewRandomMirror(rng),
		resize,
		ToPercentBox{},
		Normalize{},
	), nil
}

// NewBaseTransform builds the evaluation pipeline: ImgToFloat -> Resize
// (annotations untouched) -> Normalize. It contains no randomness.
func NewBaseTransform(cfg config.Config) (*Compose, error) {
	resize, err := NewResize(cfg.ImgSize, false)
	if err != nil {
		return nil, errors.Wrap(err, "building resize")
	}
	return NewCompose(
		ImgToFloat{},
		resize,
		Normalize{},
	), nil
}
