package i

import (
	"image"
	"image/gif"
	"io"
)

type gifDecoder struct {
}

func (d gifDecoder) supportedContentTypes() []string {
	return []string{"image/gif"}
}

func (d gifDecoder) DecodeConfig(r io.Reader) (image.Config, error) {
	return gif.DecodeConfig(r)
}

// Decode returns the first frame.
func (d gifDecoder) Decode(r io.Reader) (image.Image, error) {
	return gif.Decode(r)
}

func init() {
	decoders = append(decoders, gifDecoder{})
}
