package resolver

import (
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/config"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/metrics"
	"github.com/windy003/photo-gallery/types"
)

const SchemeS3 = "s3"

// S3Resolver reads s3://bucket/key locations. Each configured bucket gets its own client.
type S3Resolver struct {
	clients map[string]*minio.Client
}

func NewS3Resolver(buckets []config.S3ResolverConfig) (*S3Resolver, error) {
	r := &S3Resolver{clients: make(map[string]*minio.Client)}
	for _, b := range buckets {
		client, err := minio.New(b.Endpoint, &minio.Options{
			Region: b.Region,
			Secure: b.Ssl,
			Creds:  credentials.NewStaticV4(b.AccessKeyId, b.AccessSecret, ""),
		})
		if err != nil {
			return nil, errors.Wrap(err, "resolver: creating s3 client for "+b.Bucket)
		}
		r.clients[b.Bucket] = client
	}
	return r, nil
}

func (s *S3Resolver) Open(ctx rcontext.RequestContext, ref types.ImageRef) (io.ReadCloser, error) {
	bucket, key, err := ParseS3Location(ref.Location)
	if err != nil {
		return nil, err
	}
	client, ok := s.clients[bucket]
	if !ok {
		return nil, errors.Wrap(common.ErrUnknownScheme, "no s3 client for bucket "+bucket)
	}

	metrics.S3Operations.With(prometheus.Labels{"operation": "GetObject"}).Inc()
	obj, err := client.GetObject(ctx.Context, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "resolver: s3 get "+ref.Location)
	}

	// GetObject is lazy; stat it so a missing key fails here rather than inside the decoder
	metrics.S3Operations.With(prometheus.Labels{"operation": "StatObject"}).Inc()
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, errors.Wrap(common.ErrImageNotFound, ref.Location)
		}
		return nil, errors.Wrap(err, "resolver: s3 stat "+ref.Location)
	}
	return obj, nil
}

func ParseS3Location(location string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", errors.Wrap(err, "resolver: parsing "+location)
	}
	if u.Scheme != SchemeS3 || u.Host == "" {
		return "", "", errors.New("resolver: not an s3 location: " + location)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", errors.New("resolver: missing s3 key: " + location)
	}
	return u.Host, key, nil
}
