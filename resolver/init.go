package resolver

import (
	"github.com/windy003/photo-gallery/common/config"
)

// FromConfig builds a Router that serves local files and every configured s3 bucket.
func FromConfig(c config.ResolversConfig) (*Router, error) {
	router := NewRouter()
	router.Register(SchemeFile, NewFileResolver())
	if len(c.S3) > 0 {
		s3r, err := NewS3Resolver(c.S3)
		if err != nil {
			return nil, err
		}
		router.Register(SchemeS3, s3r)
	}
	return router, nil
}
