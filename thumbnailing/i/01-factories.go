package i

import (
	"image"
	"io"

	"github.com/windy003/photo-gallery/util"
)

type Decoder interface {
	supportedContentTypes() []string
	DecodeConfig(r io.Reader) (image.Config, error)
	Decode(r io.Reader) (image.Image, error)
}

var decoders = make([]Decoder, 0)

func GetDecoder(contentType string) Decoder {
	for _, d := range decoders {
		if util.ArrayContains(d.supportedContentTypes(), contentType) {
			return d
		}
	}
	return nil
}

func GetSupportedContentTypes() []string {
	a := make([]string, 0)
	for _, d := range decoders {
		a = append(a, d.supportedContentTypes()...)
	}
	return a
}
