package errcache

import (
	"time"

	"github.com/windy003/photo-gallery/common/config"
)

func FromConfig(c config.ThumbnailsConfig) *ErrCache {
	return NewErrCache(time.Duration(c.FailureCacheMinutes) * time.Minute)
}
