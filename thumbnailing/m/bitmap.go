package m

import (
	"image"
)

const bytesPerPixel = 4

// Bitmap is a decoded image ready to be drawn.
type Bitmap struct {
	Image  image.Image
	Width  int
	Height int
}

func NewBitmap(img image.Image) *Bitmap {
	b := img.Bounds()
	return &Bitmap{
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// ByteCount is the resident size of the pixels at 32 bits per pixel.
func (b *Bitmap) ByteCount() int64 {
	return int64(b.Width) * int64(b.Height) * bytesPerPixel
}

func (b *Bitmap) CostKb() int64 {
	return b.ByteCount() / 1024
}
