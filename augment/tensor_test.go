package augment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestToTensorLayout(t *testing.T) {
	s := testSample(3, 2, nil, 0)
	dense := ToTensor(s.Image)

	assert.Equal(t, []int{3, 2, 3}, []int(dense.Shape()), "layout is CHW")
	data := dense.Data().([]float32)
	// Channel plane k holds sample (x, y, k) at k*h*w + y*w + x.
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			for k := 0; k < 3; k++ {
				assert.Equal(t, s.Image.At(x, y, k), data[k*6+y*3+x])
			}
		}
	}
}

func TestTensorRoundTrip(t *testing.T) {
	s := testSample(5, 4, nil, 0)

	back, err := FromTensor(ToTensor(s.Image))
	require.NoError(t, err)
	assert.Equal(t, s.Image.Width, back.Width)
	assert.Equal(t, s.Image.Height, back.Height)
	assert.Equal(t, s.Image.Pix, back.Pix)
}

func TestFromTensorValidation(t *testing.T) {
	_, err := FromTensor(tensor.New(tensor.WithShape(2, 2), tensor.Of(tensor.Float32)))
	assert.Error(t, err, "non-CHW shapes must be rejected")

	_, err = FromTensor(tensor.New(tensor.WithShape(3, 2, 2), tensor.Of(tensor.Float64)))
	assert.Error(t, err, "non-float32 tensors must be rejected")
}
