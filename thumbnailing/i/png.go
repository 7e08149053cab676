package i

import (
	"image"
	"image/png"
	"io"
)

type pngDecoder struct {
}

func (d pngDecoder) supportedContentTypes() []string {
	return []string{"image/png", "image/apng"}
}

func (d pngDecoder) DecodeConfig(r io.Reader) (image.Config, error) {
	return png.DecodeConfig(r)
}

// Decode only returns the default frame of animated images.
func (d pngDecoder) Decode(r io.Reader) (image.Image, error) {
	return png.Decode(r)
}

func init() {
	decoders = append(decoders, pngDecoder{})
}
