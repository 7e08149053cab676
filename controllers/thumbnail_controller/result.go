package thumbnail_controller

import (
	"github.com/windy003/photo-gallery/thumbnailing/m"
	"github.com/windy003/photo-gallery/types"
)

// Result is the outcome of one decode task. Exactly one of Bitmap and Err is set.
type Result struct {
	Ref    types.ImageRef
	Token  uint64
	Bitmap *m.Bitmap
	Err    error
}

func (r Result) Ok() bool {
	return r.Err == nil && r.Bitmap != nil
}
