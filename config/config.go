// Package config holds the shared configuration consumed by the augmentation
// pipeline presets.
package config

// TransformSettings describes the pixel-scaling contract the downstream
// model input expects from the fast batched transform.
type TransformSettings struct {
	// Normalize applies (x - mean) / std per channel.
	Normalize bool
	// SubtractMeans subtracts the per-channel means only. Checked after
	// Normalize; at most one of the three flags takes effect.
	SubtractMeans bool
	// ToFloat scales pixel values from [0, 255] to [0, 1].
	ToFloat bool
	// ChannelOrder is the channel order handed to the model. Only "RGB"
	// is supported.
	ChannelOrder string
}

// Config carries the pipeline parameters: the square training resolution and
// the dataset pixel statistics used by the fast batched transform. Means and
// Std are in BGR channel order, matching the raw image layout.
type Config struct {
	// ImgSize is the square edge length every image is resized to.
	ImgSize int
	// Means are the per-channel dataset means, BGR order.
	Means [3]float32
	// Std are the per-channel dataset standard deviations, BGR order.
	Std [3]float32
	// Transform selects the pixel scaling for the fast batched path.
	Transform TransformSettings
}

// Default returns the standard 550px configuration with ImageNet-derived
// pixel statistics.
func Default() Config {
	return Config{
		ImgSize: 550,
		Means:   [3]float32{103.94, 116.78, 123.68},
		Std:     [3]float32{57.38, 57.12, 58.40},
		Transform: TransformSettings{
			Normalize:    true,
			ChannelOrder: "RGB",
		},
	}
}
