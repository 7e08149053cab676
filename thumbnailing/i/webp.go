package i

import (
	"image"
	"io"

	"golang.org/x/image/webp"
)

type webpDecoder struct {
}

func (d webpDecoder) supportedContentTypes() []string {
	return []string{"image/webp"}
}

func (d webpDecoder) DecodeConfig(r io.Reader) (image.Config, error) {
	return webp.DecodeConfig(r)
}

func (d webpDecoder) Decode(r io.Reader) (image.Image, error) {
	return webp.Decode(r)
}

func init() {
	decoders = append(decoders, webpDecoder{})
}
