package i

import (
	"image"
	"image/jpeg"
	"io"
)

type jpgDecoder struct {
}

func (d jpgDecoder) supportedContentTypes() []string {
	return []string{"image/jpeg", "image/jpg"}
}

func (d jpgDecoder) DecodeConfig(r io.Reader) (image.Config, error) {
	return jpeg.DecodeConfig(r)
}

func (d jpgDecoder) Decode(r io.Reader) (image.Image, error) {
	return jpeg.Decode(r)
}

func init() {
	decoders = append(decoders, jpgDecoder{})
}
