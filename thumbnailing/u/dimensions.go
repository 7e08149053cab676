package u

import (
	"image"

	"github.com/disintegration/imaging"
)

// SampledDimensions returns the size of an image decoded at 1/sampleSize
// of its source dimensions. Partial pixels are rounded up so nothing collapses to zero.
func SampledDimensions(width int, height int, sampleSize int) (int, int) {
	if sampleSize <= 1 {
		return width, height
	}
	return ceilDiv(width, sampleSize), ceilDiv(height, sampleSize)
}

func ceilDiv(v int, d int) int {
	return (v + d - 1) / d
}

// Sample downscales src by sampleSize in each dimension using box filtering,
// which averages every sampleSize x sampleSize block of source pixels.
func Sample(src image.Image, sampleSize int) image.Image {
	b := src.Bounds()
	w, h := SampledDimensions(b.Dx(), b.Dy(), sampleSize)
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	return imaging.Resize(src, w, h, imaging.Box)
}
