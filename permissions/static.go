package permissions

import (
	"github.com/windy003/photo-gallery/common/rcontext"
)

type Static struct {
	granted bool
}

func NewStatic(granted bool) *Static {
	return &Static{granted: granted}
}

func (s *Static) Granted(ctx rcontext.RequestContext) bool {
	return s.granted
}

func (s *Static) Request(ctx rcontext.RequestContext) (bool, error) {
	return s.granted, nil
}
