package resolver

import (
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/types"
)

const SchemeFile = "file"

type FileResolver struct {
}

func NewFileResolver() *FileResolver {
	return &FileResolver{}
}

func (f *FileResolver) Open(ctx rcontext.RequestContext, ref types.ImageRef) (io.ReadCloser, error) {
	p, err := LocalPath(ref.Location)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(common.ErrImageNotFound, p)
		}
		return nil, errors.Wrap(err, "resolver: opening "+p)
	}
	return file, nil
}

// LocalPath converts a file:// URL (or a bare path) to a filesystem path.
func LocalPath(location string) (string, error) {
	if !strings.HasPrefix(location, SchemeFile+"://") {
		return location, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", errors.Wrap(err, "resolver: parsing "+location)
	}
	return u.Path, nil
}

// FileLocation is the inverse of LocalPath.
func FileLocation(p string) string {
	return (&url.URL{Scheme: SchemeFile, Path: p}).String()
}
