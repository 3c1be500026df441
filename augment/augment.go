// Package augment implements the image/annotation augmentation pipeline used
// to prepare detection and instance-segmentation training samples. A sample
// (image, masks, boxes, labels) flows through an ordered list of transforms;
// each transform mutates the sample it is handed and the pipeline keeps the
// four parts geometrically consistent throughout.
//
// Transforms hold only fixed configuration and a random source; they carry no
// state across calls. A pipeline instance must not be shared between
// goroutines — data-loading workers each construct their own.
package augment

import (
	"math/rand"
	"time"

	"github.com/nvr-ai/go-augment/geometry"
	"github.com/nvr-ai/go-augment/images"
)

// Labels carries the per-instance class identifiers of a sample plus the
// count of trailing crowd annotations. Crowd rows are always the last
// NumCrowds rows of Classes, the box list and the mask stack.
type Labels struct {
	// Classes holds one class id per instance, aligned with the box rows.
	Classes []int
	// NumCrowds is the number of trailing crowd rows.
	NumCrowds int
}

// Sample is the quadruple threaded through every transform. Masks, Boxes and
// Labels may be nil on the evaluation path; transforms that only touch the
// image pass the rest through untouched.
type Sample struct {
	// Image is the pixel buffer, BGR channel order.
	Image *images.Image
	// Masks holds one plane per instance, spatially matching Image.
	Masks *images.MaskStack
	// Boxes holds one (x1, y1, x2, y2) row per instance.
	Boxes []geometry.Box
	// Labels holds class ids and the crowd count.
	Labels *Labels
}

// Transform mutates a sample in place. Errors are fatal for the sample and
// propagate out of the pipeline for the caller to skip or retry the dataset
// item.
type Transform interface {
	Apply(s *Sample) error
}

// Compose runs an ordered list of transforms, threading the sample through
// each in turn. The first error aborts the run.
type Compose struct {
	transforms []Transform
}

// NewCompose builds a pipeline from the given stages.
func NewCompose(transforms ...Transform) *Compose {
	return &Compose{transforms: transforms}
}

// Apply runs every stage in order. No stage is skipped on error; the error
// propagates immediately.
func (c *Compose) Apply(s *Sample) error {
	for _, t := range c.transforms {
		if err := t.Apply(s); err != nil {
			return err
		}
	}
	return nil
}

// ensureRNG returns rng unchanged, or a time-seeded source when nil.
func ensureRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
