package util

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPng(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	contentType := DetectMimeType(buf.Bytes())
	assert.Equal(t, "image/png", contentType)
	assert.True(t, IsImageType(contentType))
}

func TestDetectText(t *testing.T) {
	contentType := DetectMimeType([]byte("just some notes, not a photo"))
	assert.Equal(t, "text/plain", contentType)
	assert.False(t, IsImageType(contentType))
}
