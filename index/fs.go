package index

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/metrics"
	"github.com/windy003/photo-gallery/resolver"
	"github.com/windy003/photo-gallery/types"
	"github.com/windy003/photo-gallery/util"
)

const sniffBytes = 512

// FsIndex treats a directory as the media volume. Files are identified by their
// path relative to the root and dated by modification time.
type FsIndex struct {
	root      string
	recursive bool
}

func NewFsIndex(root string, recursive bool) *FsIndex {
	return &FsIndex{root: root, recursive: recursive}
}

func (f *FsIndex) List(ctx rcontext.RequestContext) ([]types.ImageRef, error) {
	root, err := filepath.Abs(f.root)
	if err != nil {
		return nil, errors.Wrap(err, "index: resolving root")
	}

	refs := make([]types.ImageRef, 0)
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			ctx.Log.Warnf("Skipping %s: %s", p, err.Error())
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && !f.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		contentType, err := sniffFile(p)
		if err != nil {
			ctx.Log.Warnf("Skipping %s: %s", p, err.Error())
			return nil
		}
		if !util.IsImageType(contentType) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			ctx.Log.Warnf("Skipping %s: %s", p, err.Error())
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		refs = append(refs, types.ImageRef{
			Id:       filepath.ToSlash(rel),
			Location: resolver.FileLocation(p),
			AddedTs:  info.ModTime().UnixMilli(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "index: walking "+root)
	}

	types.SortNewestFirst(refs)
	metrics.ImagesIndexed.With(prometheus.Labels{"index": "fs"}).Set(float64(len(refs)))
	ctx.Log.Infof("Indexed %d images under %s", len(refs), root)
	return refs, nil
}

func sniffFile(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	b := make([]byte, sniffBytes)
	n, err := io.ReadFull(f, b)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return util.DetectMimeType(b[:n]), nil
}
