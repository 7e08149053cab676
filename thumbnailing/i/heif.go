package i

import (
	"image"
	"io"

	"github.com/adrium/goheif"
)

type heifDecoder struct {
}

func (d heifDecoder) supportedContentTypes() []string {
	return []string{"image/heif", "image/heic"}
}

func (d heifDecoder) DecodeConfig(r io.Reader) (image.Config, error) {
	return goheif.DecodeConfig(r)
}

func (d heifDecoder) Decode(r io.Reader) (image.Image, error) {
	return goheif.Decode(r)
}

func init() {
	decoders = append(decoders, heifDecoder{})
}
