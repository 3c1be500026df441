// Package util provides convenience helpers for callers feeding the
// augmentation pipeline: locating image files and decoding them into the
// pipeline's float BGR buffers.
package util

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/nfnt/resize"
	"github.com/nvr-ai/go-augment/images"
	"github.com/pkg/errors"
)

// ListImageFiles returns the paths of all image files directly inside dir,
// sorted by name.
//
// Arguments:
// - dir: Directory path to scan.
//
// Returns:
// - []string: Sorted image file paths.
// - error: Error if the directory cannot be read.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".jpg", ".jpeg", ".png", ".bmp":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadImage decodes the image file at path into a float BGR buffer. When
// maxDim is positive and either dimension exceeds it, the image is first
// downscaled (aspect preserved, bilinear) so the larger edge equals maxDim;
// the augmentation pipeline handles the final square resize itself.
//
// Arguments:
// - path: Image file path (JPEG or PNG).
// - maxDim: Upper bound for the larger edge, or 0 to keep the original size.
//
// Returns:
// - *images.Image: The decoded BGR float image.
// - error: Error if reading or decoding fails.
func LoadImage(path string, maxDim int) (*images.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	if maxDim > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
			img = resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Bilinear)
		}
	}
	return images.FromImage(img), nil
}
