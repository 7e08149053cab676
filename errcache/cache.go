package errcache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// ErrCache remembers recent failures by key. A nil ErrCache remembers nothing.
type ErrCache struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewErrCache(expiration time.Duration) *ErrCache {
	if expiration <= 0 {
		return nil
	}
	return &ErrCache{cache: cache.New(expiration, expiration*2)}
}

func (e *ErrCache) Resize(expiration time.Duration) {
	if e == nil || expiration <= 0 {
		return
	}
	e.mu.Lock()
	e.cache = cache.NewFrom(expiration, expiration*2, e.cache.Items())
	e.mu.Unlock()
}

func (e *ErrCache) Get(key string) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err, ok := e.cache.Get(key); ok {
		return err.(error)
	}
	return nil
}

func (e *ErrCache) Set(key string, err error) {
	if e == nil || err == nil {
		return
	}
	e.mu.Lock()
	e.cache.Set(key, err, cache.DefaultExpiration)
	e.mu.Unlock()
}
