package resolver

import (
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/types"
)

// Resolver opens a readable byte stream for a ref's location.
type Resolver interface {
	Open(ctx rcontext.RequestContext, ref types.ImageRef) (io.ReadCloser, error)
}

// Router dispatches to a Resolver by the location's URL scheme. Locations
// without a scheme are treated as local paths.
type Router struct {
	lock      sync.RWMutex
	resolvers map[string]Resolver
}

func NewRouter() *Router {
	return &Router{resolvers: make(map[string]Resolver)}
}

func (r *Router) Register(scheme string, resolver Resolver) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.resolvers[strings.ToLower(scheme)] = resolver
}

func (r *Router) Open(ctx rcontext.RequestContext, ref types.ImageRef) (io.ReadCloser, error) {
	scheme, err := schemeOf(ref.Location)
	if err != nil {
		return nil, errors.Wrap(err, "resolver: bad location "+ref.Location)
	}

	r.lock.RLock()
	resolver, ok := r.resolvers[scheme]
	r.lock.RUnlock()
	if !ok {
		return nil, errors.Wrap(common.ErrUnknownScheme, scheme)
	}
	return resolver.Open(ctx, ref)
}

func schemeOf(location string) (string, error) {
	if !strings.Contains(location, "://") {
		return SchemeFile, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return strings.ToLower(u.Scheme), nil
}
