package u

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

func ApplyOrientation(src image.Image, o *Orientation) image.Image {
	if o.IsIdentity() {
		return src
	}

	result := src
	switch o.RotateDegrees {
	case 90:
		result = imaging.Rotate90(result)
	case 180:
		result = imaging.Rotate180(result)
	case 270:
		result = imaging.Rotate270(result)
	}

	if o.FlipHorizontal {
		result = imaging.FlipH(result)
	}
	if o.FlipVertical {
		result = imaging.FlipV(result)
	}
	return result
}

// IdentifyAndApplyOrientation never fails: unreadable metadata leaves the image as decoded.
func IdentifyAndApplyOrientation(origBytes []byte, src image.Image, log *logrus.Entry) image.Image {
	o, err := ReadOrientation(origBytes)
	if err != nil {
		log.Warn("Non-fatal error reading exif headers: ", err)
		return src
	}
	return ApplyOrientation(src, o)
}
