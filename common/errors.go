package common

import (
	"errors"
)

var ErrPermissionDenied = errors.New("permission to read media was denied")
var ErrImageNotFound = errors.New("image not found")
var ErrImageTooLarge = errors.New("image has too many pixels to decode")
var ErrUnsupportedImage = errors.New("unsupported image type")
var ErrDecodeFailed = errors.New("image could not be decoded")
var ErrUnknownScheme = errors.New("no resolver for location scheme")
var ErrOutOfRange = errors.New("position out of range")
var ErrQueueClosed = errors.New("queue is closed")
