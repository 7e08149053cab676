package thumbnailing

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"reflect"

	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/metrics"
	"github.com/windy003/photo-gallery/thumbnailing/i"
	"github.com/windy003/photo-gallery/thumbnailing/m"
	"github.com/windy003/photo-gallery/thumbnailing/u"
	"github.com/windy003/photo-gallery/util"
)

const (
	KindThumbnail = "thumbnail"
	KindFull      = "full"
)

func IsSupported(contentType string) bool {
	return util.ArrayContains(i.GetSupportedContentTypes(), contentType)
}

// DecodeThumbnail decodes the stream at 1/sampleSize of its resolution with
// EXIF orientation applied. The stream is not closed.
func DecodeThumbnail(imgStream io.Reader, sampleSize int, maxPixels int, ctx rcontext.RequestContext) (*m.Bitmap, error) {
	return decode(imgStream, KindThumbnail, sampleSize, maxPixels, ctx)
}

// DecodeFull decodes the stream at full resolution with EXIF orientation applied.
func DecodeFull(imgStream io.Reader, maxPixels int, ctx rcontext.RequestContext) (*m.Bitmap, error) {
	return decode(imgStream, KindFull, 1, maxPixels, ctx)
}

func decode(imgStream io.Reader, kind string, sampleSize int, maxPixels int, ctx rcontext.RequestContext) (*m.Bitmap, error) {
	b, err := decodeImage(imgStream, sampleSize, maxPixels, ctx)
	if err != nil {
		metrics.ImagesDecoded.With(map[string]string{"kind": kind, "result": "failure"}).Inc()
		return nil, err
	}
	metrics.ImagesDecoded.With(map[string]string{"kind": kind, "result": "success"}).Inc()
	return b, nil
}

func decodeImage(imgStream io.Reader, sampleSize int, maxPixels int, ctx rcontext.RequestContext) (*m.Bitmap, error) {
	raw, err := io.ReadAll(imgStream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stream: %s", common.ErrDecodeFailed, err.Error())
	}

	contentType := util.DetectMimeType(raw)
	decoder := i.GetDecoder(contentType)
	if decoder == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedImage, contentType)
	}
	ctx.Log.Debug("Using decoder: ", reflect.TypeOf(decoder).Name())

	cfg, err := decoder.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %s", common.ErrDecodeFailed, err.Error())
	}
	if maxPixels > 0 && cfg.Width*cfg.Height >= maxPixels {
		ctx.Log.Debugf("Image too large: %dx%d", cfg.Width, cfg.Height)
		return nil, common.ErrImageTooLarge
	}

	src, err := decoder.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrDecodeFailed, err.Error())
	}
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", common.ErrDecodeFailed)
	}

	var img image.Image = u.Sample(src, sampleSize)
	img = u.IdentifyAndApplyOrientation(raw, img, ctx.Log)
	return m.NewBitmap(img), nil
}

// IsDecodeFailure reports whether err came from the image data rather than the stream source.
func IsDecodeFailure(err error) bool {
	return errors.Is(err, common.ErrDecodeFailed) || errors.Is(err, common.ErrUnsupportedImage) || errors.Is(err, common.ErrImageTooLarge)
}
