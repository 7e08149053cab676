package util

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/h2non/filetype"
)

// DetectMimeType sniffs the content type from the leading bytes of a file.
func DetectMimeType(b []byte) string {
	// We only need the first 512 bytes at most to determine the file type
	head := b
	if len(head) > 512 {
		head = head[:512]
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		// Try mimetype, which also knows about some container formats filetype misses
		contentType := mimetype.Detect(b).String()
		contentType = strings.Split(contentType, ";")[0]
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return contentType
	}

	return kind.MIME.Value
}

func IsImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
