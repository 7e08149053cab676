package u

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dsoprea/go-exif/v3"
)

// Orientation describes how a decoded image must be transformed to be shown upright.
type Orientation struct {
	RotateDegrees  int // 0, 90, 180, or 270 counter-clockwise
	FlipHorizontal bool
	FlipVertical   bool
}

func (o *Orientation) IsIdentity() bool {
	return o == nil || (o.RotateDegrees == 0 && !o.FlipHorizontal && !o.FlipVertical)
}

// ReadOrientation returns nil when the bytes carry no usable orientation tag.
func ReadOrientation(b []byte) (*Orientation, error) {
	rawExif, err := exif.SearchAndExtractExifWithReader(bytes.NewReader(b))
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, nil
		}
		return nil, fmt.Errorf("exif: reading header: %w", err)
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, fmt.Errorf("exif: parsing tags: %w", err)
	}

	for _, t := range tags {
		if t.TagName != "Orientation" {
			continue
		}
		v, err := orientationValue(t.Value)
		if err != nil {
			return nil, err
		}
		return OrientationFromTag(v)
	}
	return nil, nil
}

func orientationValue(v interface{}) (uint16, error) {
	switch tv := v.(type) {
	case []uint16:
		if len(tv) > 0 {
			return tv[0], nil
		}
	case uint16:
		return tv, nil
	}
	return 0, errors.New("exif: orientation is not an integer")
}

// OrientationFromTag maps the EXIF orientation value (1-8) to a transform.
// Zero is written by some cameras to mean "unset" and is treated as such.
func OrientationFromTag(tag uint16) (*Orientation, error) {
	switch tag {
	case 0, 1:
		return nil, nil
	case 2:
		return &Orientation{FlipHorizontal: true}, nil
	case 3:
		return &Orientation{RotateDegrees: 180}, nil
	case 4:
		return &Orientation{RotateDegrees: 180, FlipHorizontal: true}, nil
	case 5:
		return &Orientation{RotateDegrees: 90, FlipVertical: true}, nil
	case 6:
		return &Orientation{RotateDegrees: 270}, nil
	case 7:
		return &Orientation{RotateDegrees: 270, FlipVertical: true}, nil
	case 8:
		return &Orientation{RotateDegrees: 90}, nil
	}
	return nil, fmt.Errorf("exif: orientation out of range: %d", tag)
}
