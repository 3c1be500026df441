package augment

import (
	"github.com/nvr-ai/go-augment/images"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ToTensor converts an HWC image into a CHW float32 tensor, the layout the
// model input constructor expects. The channel order is whatever the image
// currently holds; the pipeline has already reordered to RGB by the time
// this runs.
func ToTensor(img *images.Image) *tensor.Dense {
	c := img.Channels
	h := img.Height
	w := img.Width
	data := make([]float32, c*h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for k := 0; k < c; k++ {
				data[k*h*w+y*w+x] = img.At(x, y, k)
			}
		}
	}
	return tensor.New(
		tensor.WithShape(c, h, w),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(data),
	)
}

// FromTensor converts a CHW float32 tensor back into an HWC image. Inverse
// of ToTensor.
func FromTensor(t *tensor.Dense) (*images.Image, error) {
	shape := t.Shape()
	if len(shape) != 3 {
		return nil, errors.Errorf("expected a CHW tensor, got shape %v", shape)
	}
	data, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("expected a float32 tensor, got %v", t.Dtype())
	}

	c, h, w := shape[0], shape[1], shape[2]
	img := images.NewImage(w, h, c)
	for k := 0; k < c; k++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, k, data[k*h*w+y*w+x])
			}
		}
	}
	return img, nil
}
