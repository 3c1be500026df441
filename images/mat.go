package images

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ToMat copies the image into a CV_32F gocv.Mat. Only 1- and 3-channel
// images are representable. The caller owns the returned Mat and must Close
// it.
func (m *Image) ToMat() (gocv.Mat, error) {
	var matType gocv.MatType
	switch m.Channels {
	case 1:
		matType = gocv.MatTypeCV32F
	case 3:
		matType = gocv.MatTypeCV32FC3
	default:
		return gocv.NewMat(), errors.Errorf("unsupported channel count %d", m.Channels)
	}
	mat := gocv.NewMatWithSize(m.Height, m.Width, matType)
	data, err := mat.DataPtrFloat32()
	if err != nil {
		mat.Close()
		return gocv.NewMat(), errors.Wrap(err, "mapping Mat data")
	}
	copy(data, m.Pix)
	return mat, nil
}

// FromMat copies a CV_32F gocv.Mat into a freshly allocated Image.
func FromMat(mat gocv.Mat) (*Image, error) {
	data, err := mat.DataPtrFloat32()
	if err != nil {
		return nil, errors.Wrap(err, "mapping Mat data")
	}
	out := NewImage(mat.Cols(), mat.Rows(), mat.Channels())
	copy(out.Pix, data)
	return out, nil
}

// ResizeBilinear resizes the image to width x height with OpenCV's bilinear
// interpolation and returns the result as a new Image.
func (m *Image) ResizeBilinear(width, height int) (*Image, error) {
	src, err := m.ToMat()
	if err != nil {
		return nil, errors.Wrap(err, "resize source")
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)

	out, err := FromMat(dst)
	if err != nil {
		return nil, errors.Wrap(err, "resize result")
	}
	return out, nil
}

// ResizeBilinear resizes every plane of the stack to width x height with
// bilinear interpolation. Planes are resized one at a time as single-channel
// Mats, which keeps the instance axis intact regardless of the plane count.
func (s *MaskStack) ResizeBilinear(width, height int) (*MaskStack, error) {
	out := NewMaskStack(s.Count, width, height)
	for i := 0; i < s.Count; i++ {
		plane := &Image{Pix: s.Plane(i), Width: s.Width, Height: s.Height, Channels: 1}
		resized, err := plane.ResizeBilinear(width, height)
		if err != nil {
			return nil, errors.Wrapf(err, "resizing mask plane %d", i)
		}
		copy(out.Plane(i), resized.Pix)
	}
	return out, nil
}

// BGRToHSV converts a 3-channel BGR float image to HSV. On float input
// OpenCV produces hue in [0, 360) degrees and saturation in [0, 1]; value
// keeps the input scale.
func BGRToHSV(m *Image) (*Image, error) {
	return cvtColor(m, gocv.ColorBGRToHSV)
}

// HSVToBGR converts a 3-channel HSV float image back to BGR.
func HSVToBGR(m *Image) (*Image, error) {
	return cvtColor(m, gocv.ColorHSVToBGR)
}

func cvtColor(m *Image, code gocv.ColorConversionCode) (*Image, error) {
	if m.Channels != 3 {
		return nil, errors.Errorf("color conversion needs 3 channels, image has %d", m.Channels)
	}
	src, err := m.ToMat()
	if err != nil {
		return nil, errors.Wrap(err, "conversion source")
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.CvtColor(src, &dst, code)

	out, err := FromMat(dst)
	if err != nil {
		return nil, errors.Wrap(err, "conversion result")
	}
	return out, nil
}
