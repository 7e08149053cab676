package internal_cache

import (
	"container/list"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/windy003/photo-gallery/metrics"
)

// CapacityForBudget gives an eighth of the memory budget to the cache, in kilobytes.
func CapacityForBudget(budgetBytes int64) int64 {
	return budgetBytes / 1024 / 8
}

type SizeFunction[V any] func(key string, value V) int64

type entry[V any] struct {
	key   string
	value V
	cost  int64
}

// LruCache bounds the total cost of its entries and evicts the least recently used entry
// first. It is safe for concurrent use.
type LruCache[V any] struct {
	name     string
	capacity int64
	size     int64
	sizeOf   SizeFunction[V]
	ll       *list.List
	items    map[string]*list.Element
	lock     *sync.Mutex
	labels   prometheus.Labels
}

func NewLruCache[V any](name string, capacity int64, sizeOf SizeFunction[V]) *LruCache[V] {
	if sizeOf == nil {
		sizeOf = func(string, V) int64 { return 1 }
	}
	return &LruCache[V]{
		name:     name,
		capacity: capacity,
		sizeOf:   sizeOf,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
		lock:     &sync.Mutex{},
		labels:   prometheus.Labels{"cache": name},
	}
}

func (c *LruCache[V]) Get(key string) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		metrics.CacheHits.With(c.labels).Inc()
		return el.Value.(*entry[V]).value, true
	}

	metrics.CacheMisses.With(c.labels).Inc()
	var zero V
	return zero, false
}

// PutIfAbsent stores value unless key is already cached. The returned value is the one
// callers should use: the existing entry when there was one, otherwise the given value.
// The boolean reports whether value was inserted. A value costing more than the whole
// capacity is not cached.
func (c *LruCache[V]) PutIfAbsent(key string, value V) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*entry[V]).value, false
	}

	cost := c.sizeOf(key, value)
	if cost < 0 {
		cost = 0
	}
	if cost > c.capacity {
		metrics.CacheEvictions.With(prometheus.Labels{"cache": c.name, "reason": "too_large"}).Inc()
		return value, false
	}

	c.items[key] = c.ll.PushFront(&entry[V]{key: key, value: value, cost: cost})
	c.size += cost
	c.trimTo(c.capacity)
	c.updateGauges()
	return value, true
}

func (c *LruCache[V]) trimTo(maxSize int64) {
	for c.size > maxSize {
		el := c.ll.Back()
		if el == nil {
			break
		}
		e := el.Value.(*entry[V])
		c.ll.Remove(el)
		delete(c.items, e.key)
		c.size -= e.cost
		metrics.CacheEvictions.With(prometheus.Labels{"cache": c.name, "reason": "need_space"}).Inc()
	}
}

func (c *LruCache[V]) updateGauges() {
	metrics.CacheNumItems.With(c.labels).Set(float64(len(c.items)))
	metrics.CacheNumKb.With(c.labels).Set(float64(c.size))
}

func (c *LruCache[V]) Contains(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	_, ok := c.items[key]
	return ok
}

func (c *LruCache[V]) Size() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.size
}

func (c *LruCache[V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.items)
}

func (c *LruCache[V]) Capacity() int64 {
	return c.capacity
}

// Keys lists the cached keys from most to least recently used.
func (c *LruCache[V]) Keys() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	keys := make([]string, 0, len(c.items))
	for el := c.ll.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[V]).key)
	}
	return keys
}
