package resolver

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/config"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/types"
)

func TestFileResolverOpens(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a b.jpg")
	require.NoError(t, os.WriteFile(p, []byte("pixels"), 0644))

	router, err := FromConfig(config.ResolversConfig{})
	require.NoError(t, err)

	for _, loc := range []string{FileLocation(p), p} {
		rc, err := router.Open(rcontext.Initial(), types.ImageRef{Location: loc})
		require.NoError(t, err, loc)
		b, err := io.ReadAll(rc)
		assert.NoError(t, err)
		assert.Equal(t, "pixels", string(b))
		assert.NoError(t, rc.Close())
	}
}

func TestFileResolverMissing(t *testing.T) {
	_, err := NewFileResolver().Open(rcontext.Initial(), types.ImageRef{Location: FileLocation("/does/not/exist.png")})
	assert.ErrorIs(t, err, common.ErrImageNotFound)
}

func TestRouterUnknownScheme(t *testing.T) {
	_, err := NewRouter().Open(rcontext.Initial(), types.ImageRef{Location: "content://media/external/images/1"})
	assert.ErrorIs(t, err, common.ErrUnknownScheme)
}

func TestLocalPathRoundTrip(t *testing.T) {
	p, err := LocalPath(FileLocation("/photos/summer 2020/x.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, "/photos/summer 2020/x.jpg", p)
}

func TestParseS3Location(t *testing.T) {
	bucket, key, err := ParseS3Location("s3://photos/2020/a.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "photos", bucket)
	assert.Equal(t, "2020/a.jpg", key)

	_, _, err = ParseS3Location("s3://photos/")
	assert.Error(t, err)
	_, _, err = ParseS3Location("file:///a.jpg")
	assert.Error(t, err)
}

func TestS3ResolverUnknownBucket(t *testing.T) {
	r, err := NewS3Resolver([]config.S3ResolverConfig{{Bucket: "photos", Endpoint: "localhost:9001"}})
	require.NoError(t, err)
	_, err = r.Open(rcontext.Initial(), types.ImageRef{Location: "s3://other/a.jpg"})
	assert.ErrorIs(t, err, common.ErrUnknownScheme)
}
