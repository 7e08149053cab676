package permissions

import (
	"errors"

	"github.com/windy003/photo-gallery/common/config"
	"github.com/windy003/photo-gallery/common/rcontext"
)

const (
	ModePrompt  = "prompt"
	ModeGranted = "granted"
	ModeDenied  = "denied"
)

// Gate guards access to the media index.
type Gate interface {
	// Granted reports whether access is already held without asking.
	Granted(ctx rcontext.RequestContext) bool
	// Request asks for access. A false result with a nil error is a denial.
	Request(ctx rcontext.RequestContext) (bool, error)
}

func FromConfig(c config.PermissionsConfig) (Gate, error) {
	switch c.Mode {
	case ModeGranted:
		return NewStatic(true), nil
	case ModeDenied:
		return NewStatic(false), nil
	case ModePrompt, "":
		return NewStdinPrompt(), nil
	}
	return nil, errors.New("unknown permissions mode: " + c.Mode)
}
