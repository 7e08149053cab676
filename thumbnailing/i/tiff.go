package i

import (
	"image"
	"io"

	"golang.org/x/image/tiff"
)

type tiffDecoder struct {
}

func (d tiffDecoder) supportedContentTypes() []string {
	return []string{"image/tiff"}
}

func (d tiffDecoder) DecodeConfig(r io.Reader) (image.Config, error) {
	return tiff.DecodeConfig(r)
}

func (d tiffDecoder) Decode(r io.Reader) (image.Image, error) {
	return tiff.Decode(r)
}

func init() {
	decoders = append(decoders, tiffDecoder{})
}
