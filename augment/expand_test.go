package augment

import (
	"math/rand"
	"testing"

	"github.com/nvr-ai/go-augment/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandForcedPastesPixelExact(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	tr := NewExpand(rng)
	tr.force = true

	s := testSample(40, 30, []geometry.Box{geometry.NewBox(5, 5, 20, 25)}, 0)
	orig := s.Image.Clone()
	origBox := s.Boxes[0]

	require.NoError(t, tr.Apply(s))

	assert.GreaterOrEqual(t, s.Image.Width, 40)
	assert.GreaterOrEqual(t, s.Image.Height, 30)
	assert.LessOrEqual(t, s.Image.Width, int(40*1.8)+1)
	assert.LessOrEqual(t, s.Image.Height, int(30*1.8)+1)

	// The box translation records the paste offset; the original image must
	// sit pixel-exact there.
	left := int(s.Boxes[0].X1 - origBox.X1)
	top := int(s.Boxes[0].Y1 - origBox.Y1)
	region, err := s.Image.Crop(left, top, left+40, top+30)
	require.NoError(t, err)
	assert.Equal(t, orig.Pix, region.Pix)

	// Masks land on a zero canvas at the same offset.
	assert.Equal(t, s.Image.Width, s.Masks.Width)
	assert.Equal(t, s.Image.Height, s.Masks.Height)
	assert.Equal(t, float32(1), s.Masks.At(0, left+5, top+5))
	if left > 0 {
		assert.Equal(t, float32(0), s.Masks.At(0, 0, 0))
	}
}

func TestExpandSkipsHalfTheTime(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tr := NewExpand(rng)

	skipped := 0
	for run := 0; run < 200; run++ {
		s := testSample(20, 20, []geometry.Box{geometry.NewBox(2, 2, 10, 10)}, 0)
		require.NoError(t, tr.Apply(s))
		if s.Image.Width == 20 && s.Image.Height == 20 {
			skipped++
		}
	}
	assert.Greater(t, skipped, 50)
	assert.Less(t, skipped, 150)
}

func TestRandomMirrorDoubleFlipRestoresBoxes(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	tr := NewRandomMirror(rng)
	tr.force = true

	boxes := []geometry.Box{
		geometry.NewBox(10, 5, 30, 25),
		geometry.NewBox(0, 0, 50, 40),
	}
	s := testSample(50, 40, boxes, 0)
	origImg := s.Image.Clone()
	origBoxes := append([]geometry.Box(nil), s.Boxes...)

	require.NoError(t, tr.Apply(s))
	assert.InDelta(t, 20, s.Boxes[0].X1, 1e-5, "x1 = width - x2")
	assert.InDelta(t, 40, s.Boxes[0].X2, 1e-5, "x2 = width - x1")
	assert.LessOrEqual(t, s.Boxes[0].X1, s.Boxes[0].X2)
	assert.Equal(t, origBoxes[0].Y1, s.Boxes[0].Y1, "flip leaves y untouched")

	require.NoError(t, tr.Apply(s))
	assert.Equal(t, origBoxes, s.Boxes, "double flip restores boxes exactly")
	assert.Equal(t, origImg.Pix, s.Image.Pix, "double flip restores the image")
}

func TestRandomMirrorFlipsMasksWithImage(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	tr := NewRandomMirror(rng)
	tr.force = true

	s := testSample(10, 10, []geometry.Box{geometry.NewBox(0, 0, 3, 10)}, 0)
	require.NoError(t, tr.Apply(s))

	// The mask covered columns [0, 3); after the flip it covers [7, 10).
	assert.Equal(t, float32(0), s.Masks.At(0, 0, 0))
	assert.Equal(t, float32(1), s.Masks.At(0, 9, 0))
	assert.InDelta(t, 7, s.Boxes[0].X1, 1e-5)
	assert.InDelta(t, 10, s.Boxes[0].X2, 1e-5)
}
