package i

import (
	"image"
	"io"

	"golang.org/x/image/bmp"
)

type bmpDecoder struct {
}

func (d bmpDecoder) supportedContentTypes() []string {
	return []string{"image/bmp", "image/x-bmp"}
}

func (d bmpDecoder) DecodeConfig(r io.Reader) (image.Config, error) {
	return bmp.DecodeConfig(r)
}

func (d bmpDecoder) Decode(r io.Reader) (image.Image, error) {
	return bmp.Decode(r)
}

func init() {
	decoders = append(decoders, bmpDecoder{})
}
