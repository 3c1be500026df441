// Command augment runs the augmentation pipeline over a single image and
// reports the transformed shapes, optionally saving a preview of the
// augmented image. Intended for eyeballing pipeline behavior, not for
// production use.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-augment/augment"
	"github.com/nvr-ai/go-augment/config"
	"github.com/nvr-ai/go-augment/geometry"
	"github.com/nvr-ai/go-augment/images"
)

func main() {
	var (
		imagePath string
		outPath   string
		imgSize   int
		seed      int64
		train     bool
	)
	flag.StringVar(&imagePath, "image", "", "Path to the input image")
	flag.StringVar(&outPath, "out", "", "Optional path to save an augmented preview")
	flag.IntVar(&imgSize, "size", 550, "Square output resolution")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 uses the current time)")
	flag.BoolVar(&train, "train", true, "Run the training pipeline instead of the evaluation one")
	flag.Parse()

	if imagePath == "" {
		log.Fatal("missing required -image flag")
	}

	mat := gocv.IMRead(imagePath, gocv.IMReadColor)
	if mat.Empty() {
		log.Fatalf("could not read image: %s", imagePath)
	}
	defer mat.Close()

	img := matToImage(mat)
	fmt.Printf("input: %dx%dx%d\n", img.Height, img.Width, img.Channels)

	cfg := config.Default()
	cfg.ImgSize = imgSize

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	sample := &augment.Sample{Image: img}
	if train {
		// Synthetic annotations covering the central region, just to
		// exercise the full pipeline.
		sample.Boxes = []geometry.Box{geometry.NewBox(0.25, 0.25, 0.75, 0.75)}
		sample.Labels = &augment.Labels{Classes: []int{1}}
		sample.Masks = images.NewMaskStack(1, img.Width, img.Height)
		for y := img.Height / 4; y < img.Height*3/4; y++ {
			for x := img.Width / 4; x < img.Width*3/4; x++ {
				sample.Masks.Set(0, x, y, 1)
			}
		}
	}

	var (
		pipe *augment.Compose
		err  error
	)
	if train {
		pipe, err = augment.NewSSDAugmentation(cfg, rng)
	} else {
		pipe, err = augment.NewBaseTransform(cfg)
	}
	if err != nil {
		log.Fatalf("building pipeline: %v", err)
	}

	if err := pipe.Apply(sample); err != nil {
		log.Fatalf("running pipeline: %v", err)
	}

	fmt.Printf("output: %dx%dx%d\n", sample.Image.Height, sample.Image.Width, sample.Image.Channels)
	if sample.Masks != nil {
		fmt.Printf("masks: %d instance(s) at %dx%d\n",
			sample.Masks.Count, sample.Masks.Height, sample.Masks.Width)
	}
	for i, b := range sample.Boxes {
		fmt.Printf("box %d (class %d): (%.3f, %.3f)-(%.3f, %.3f)\n",
			i, sample.Labels.Classes[i], b.X1, b.Y1, b.X2, b.Y2)
	}

	if outPath != "" {
		if err := savePreview(sample.Image, outPath); err != nil {
			log.Fatalf("saving preview: %v", err)
		}
		fmt.Printf("preview saved to %s\n", outPath)
	}

	tensor := augment.ToTensor(sample.Image)
	fmt.Printf("tensor: %v %v\n", tensor.Shape(), tensor.Dtype())
}

// matToImage converts an 8-bit BGR Mat into the pipeline's float image.
func matToImage(mat gocv.Mat) *images.Image {
	data := mat.ToBytes()
	img := images.NewImage(mat.Cols(), mat.Rows(), mat.Channels())
	for i, b := range data {
		img.Pix[i] = float32(b)
	}
	return img
}

// savePreview rescales the normalized image back into [0, 255] per channel
// and writes it as a file gocv can encode.
func savePreview(img *images.Image, path string) error {
	preview := img.Clone()
	for c := 0; c < preview.Channels; c++ {
		lo, hi := preview.At(0, 0, c), preview.At(0, 0, c)
		for i := c; i < len(preview.Pix); i += preview.Channels {
			if preview.Pix[i] < lo {
				lo = preview.Pix[i]
			}
			if preview.Pix[i] > hi {
				hi = preview.Pix[i]
			}
		}
		scale := float32(0)
		if hi > lo {
			scale = 255 / (hi - lo)
		}
		for i := c; i < len(preview.Pix); i += preview.Channels {
			preview.Pix[i] = (preview.Pix[i] - lo) * scale
		}
	}

	// The pipeline output is RGB; swap back to BGR for the preview file.
	for i := 0; i < len(preview.Pix); i += preview.Channels {
		preview.Pix[i], preview.Pix[i+2] = preview.Pix[i+2], preview.Pix[i]
	}

	mat, err := preview.ToMat()
	if err != nil {
		return err
	}
	defer mat.Close()

	out := gocv.NewMat()
	defer out.Close()
	mat.ConvertTo(&out, gocv.MatTypeCV8UC3)

	if ok := gocv.IMWrite(path, out); !ok {
		return fmt.Errorf("could not write %s", path)
	}
	return nil
}
