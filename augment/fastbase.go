package augment

import (
	"github.com/nvr-ai/go-augment/config"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// FastBaseTransform is the batched inference-time counterpart of
// BaseTransform. It takes a whole batch of BGR images in [n, h, w, c] layout,
// bilinearly resizes each to the configured square size, applies exactly one
// of {mean/std normalization, mean subtraction, scale to [0, 1]} according to
// the transform settings, and returns the batch in [n, c, h, w] layout with
// the channels reordered to RGB.
//
// It has no mask/box/label path and no randomness. The per-channel mean and
// std come from the configuration, not from the batch.
type FastBaseTransform struct {
	size     int
	settings config.TransformSettings
	mean     [3]float32
	std      [3]float32
}

// NewFastBaseTransform validates the settings and captures the pixel
// statistics. Only the "RGB" output channel order is supported.
func NewFastBaseTransform(cfg config.Config) (*FastBaseTransform, error) {
	if cfg.Transform.ChannelOrder != "RGB" {
		return nil, errors.Errorf("unsupported channel order %q", cfg.Transform.ChannelOrder)
	}
	if cfg.ImgSize <= 0 {
		return nil, errors.Errorf("image size must be positive, got %d", cfg.ImgSize)
	}
	return &FastBaseTransform{
		size:     cfg.ImgSize,
		settings: cfg.Transform,
		mean:     cfg.Means,
		std:      cfg.Std,
	}, nil
}

// Apply transforms a [n, h, w, 3] float32 BGR batch into a
// [n, 3, size, size] float32 RGB batch.
func (t *FastBaseTransform) Apply(batch *tensor.Dense) (*tensor.Dense, error) {
	shape := batch.Shape()
	if len(shape) != 4 || shape[3] != 3 {
		return nil, errors.Errorf("expected a [n, h, w, 3] batch, got shape %v", shape)
	}
	data, ok := batch.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("expected a float32 batch, got %v", batch.Dtype())
	}

	n, h, w := shape[0], shape[1], shape[2]
	size := t.size
	out := make([]float32, n*3*size*size)

	sy := float32(h) / float32(size)
	sx := float32(w) / float32(size)

	for b := 0; b < n; b++ {
		src := data[b*h*w*3 : (b+1)*h*w*3]
		dst := out[b*3*size*size : (b+1)*3*size*size]
		for y := 0; y < size; y++ {
			y0, y1, fy := sampleAxis(y, sy, h)
			for x := 0; x < size; x++ {
				x0, x1, fx := sampleAxis(x, sx, w)
				for c := 0; c < 3; c++ {
					v00 := src[(y0*w+x0)*3+c]
					v01 := src[(y0*w+x1)*3+c]
					v10 := src[(y1*w+x0)*3+c]
					v11 := src[(y1*w+x1)*3+c]
					v := v00*(1-fy)*(1-fx) + v01*(1-fy)*fx + v10*fy*(1-fx) + v11*fy*fx

					switch {
					case t.settings.Normalize:
						v = (v - t.mean[c]) / t.std[c]
					case t.settings.SubtractMeans:
						v -= t.mean[c]
					case t.settings.ToFloat:
						v /= 255
					}

					// BGR channel c lands in RGB channel 2-c.
					dst[(2-c)*size*size+y*size+x] = v
				}
			}
		}
	}

	return tensor.New(
		tensor.WithShape(n, 3, size, size),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(out),
	), nil
}

// sampleAxis maps output coordinate i to the two source rows/columns it
// interpolates between, using half-pixel centers, plus the fractional weight
// of the second one. Borders clamp.
func sampleAxis(i int, scale float32, limit int) (lo, hi int, frac float32) {
	pos := (float32(i)+0.5)*scale - 0.5
	if pos < 0 {
		pos = 0
	}
	lo = int(pos)
	if lo > limit-1 {
		lo = limit - 1
	}
	hi = lo + 1
	if hi > limit-1 {
		hi = limit - 1
	}
	return lo, hi, pos - float32(lo)
}
