// Package geometry provides the axis-aligned rectangle primitives shared by
// the augmentation pipeline: bounding boxes and Jaccard (IoU) overlap math.
package geometry

import "github.com/chewxy/math32"

// Box is an axis-aligned rectangle in (x1, y1, x2, y2) corner form.
//
// Whether the coordinates are absolute pixels or fractions of the image
// dimensions is decided by the pipeline stage the box is flowing through,
// not by the type.
type Box struct {
	X1, Y1, X2, Y2 float32
}

// NewBox returns a box from its two corners.
func NewBox(x1, y1, x2, y2 float32) Box {
	return Box{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float32 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b Box) Height() float32 {
	return b.Y2 - b.Y1
}

// Area returns width*height. Degenerate boxes yield zero or negative area;
// callers that care clamp or reject themselves.
func (b Box) Area() float32 {
	return b.Width() * b.Height()
}

// Center returns the midpoint of the box.
func (b Box) Center() (x, y float32) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// ContainsStrict reports whether (x, y) lies strictly inside the box, with
// both bounds exclusive.
func (b Box) ContainsStrict(x, y float32) bool {
	return b.X1 < x && x < b.X2 && b.Y1 < y && y < b.Y2
}

// Intersect computes the overlap area between every box in boxes and the
// single reference box ref. Non-overlapping pairs produce zero, never a
// negative area.
//
// Arguments:
// - boxes: The candidate boxes.
// - ref: The single reference box each candidate is intersected with.
//
// Returns:
// - []float32: Per-row intersection areas, len(boxes) entries.
func Intersect(boxes []Box, ref Box) []float32 {
	out := make([]float32, len(boxes))
	for i, b := range boxes {
		w := math32.Min(b.X2, ref.X2) - math32.Max(b.X1, ref.X1)
		h := math32.Min(b.Y2, ref.Y2) - math32.Max(b.Y1, ref.Y1)
		if w < 0 {
			w = 0
		}
		if h < 0 {
			h = 0
		}
		out[i] = w * h
	}
	return out
}

// JaccardOverlap computes the IoU of every box in boxes against the single
// reference box ref.
//
// A zero-area union divides 0/0 and yields NaN. That is deliberate: the crop
// sampler treats a NaN overlap as a failed trial, so the NaN is propagated
// here rather than masked.
//
// Arguments:
// - boxes: The candidate boxes.
// - ref: The single reference box.
//
// Returns:
// - []float32: Per-row IoU values in [0, 1], or NaN for zero-area unions.
func JaccardOverlap(boxes []Box, ref Box) []float32 {
	inter := Intersect(boxes, ref)
	refArea := ref.Area()
	for i, b := range boxes {
		union := b.Area() + refArea - inter[i]
		inter[i] = inter[i] / union
	}
	return inter
}
