package index

import (
	"errors"

	"github.com/windy003/photo-gallery/common/config"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/types"
)

// Index enumerates the photos available on the device, newest first.
type Index interface {
	List(ctx rcontext.RequestContext) ([]types.ImageRef, error)
}

func NewFromConfig(c config.IndexConfig) (Index, error) {
	switch c.Type {
	case "fs", "":
		return NewFsIndex(c.Path, c.Recursive), nil
	case "sql":
		return OpenSqlIndex(c.Driver, c.Dsn)
	}
	return nil, errors.New("unknown index type: " + c.Type)
}
