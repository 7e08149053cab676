package internal_cache

import (
	"fmt"
	"image"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/windy003/photo-gallery/thumbnailing/m"
)

func costOf(key string, v int64) int64 {
	return v
}

func TestCapacityForBudget(t *testing.T) {
	assert.Equal(t, int64(32768), CapacityForBudget(256*1024*1024))
	assert.Equal(t, int64(0), CapacityForBudget(1024))
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLruCache[int64]("test_lru_order", 10, costOf)

	c.PutIfAbsent("a", 4)
	c.PutIfAbsent("b", 4)
	_, ok := c.Get("a") // b is now the oldest
	assert.True(t, ok)

	c.PutIfAbsent("c", 4)
	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
	assert.Equal(t, int64(8), c.Size())
	assert.Equal(t, []string{"c", "a"}, c.Keys())
}

func TestEvictsUntilItFits(t *testing.T) {
	c := NewLruCache[int64]("test_lru_fit", 10, costOf)
	c.PutIfAbsent("a", 3)
	c.PutIfAbsent("b", 3)
	c.PutIfAbsent("c", 3)

	c.PutIfAbsent("big", 8)
	assert.Equal(t, []string{"big"}, c.Keys())
	assert.Equal(t, int64(8), c.Size())
}

func TestTooLargeIsNotCached(t *testing.T) {
	c := NewLruCache[int64]("test_lru_large", 10, costOf)
	c.PutIfAbsent("a", 5)

	v, inserted := c.PutIfAbsent("huge", 11)
	assert.False(t, inserted)
	assert.Equal(t, int64(11), v)
	assert.False(t, c.Contains("huge"))
	assert.True(t, c.Contains("a"))
}

func TestPutIfAbsentKeepsExisting(t *testing.T) {
	c := NewLruCache[*m.Bitmap]("test_lru_absent", 1024, func(key string, b *m.Bitmap) int64 { return b.CostKb() })
	first := m.NewBitmap(image.NewRGBA(image.Rect(0, 0, 16, 16)))
	second := m.NewBitmap(image.NewRGBA(image.Rect(0, 0, 16, 16)))

	v, inserted := c.PutIfAbsent("k", first)
	assert.True(t, inserted)
	assert.Same(t, first, v)

	v, inserted = c.PutIfAbsent("k", second)
	assert.False(t, inserted)
	assert.Same(t, first, v)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, c.Len())
}

func TestSizeNeverExceedsCapacity(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		capacity := int64(r.Intn(200) + 1)
		c := NewLruCache[int64](fmt.Sprintf("test_lru_prop_%d", round), capacity, costOf)
		for i := 0; i < 300; i++ {
			key := fmt.Sprintf("k%d", r.Intn(60))
			if r.Intn(3) == 0 {
				c.Get(key)
				continue
			}
			c.PutIfAbsent(key, int64(r.Intn(int(capacity)+20)))
			assert.LessOrEqual(t, c.Size(), capacity)
		}
	}
}

func TestConcurrentPutIfAbsentStoresOnce(t *testing.T) {
	c := NewLruCache[*m.Bitmap]("test_lru_concurrent", 1<<20, func(key string, b *m.Bitmap) int64 { return b.CostKb() })

	results := make([]*m.Bitmap, 16)
	inserts := make([]bool, 16)
	wg := &sync.WaitGroup{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], inserts[i] = c.PutIfAbsent("same", m.NewBitmap(image.NewRGBA(image.Rect(0, 0, 32, 32))))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
	nInserted := 0
	for i := range results {
		assert.Same(t, results[0], results[i])
		if inserts[i] {
			nInserted++
		}
	}
	assert.Equal(t, 1, nInserted)
}

func TestNewBitmapCacheCostsKilobytes(t *testing.T) {
	c := NewBitmapCache(8 * 1024 * 1024) // 1024kb capacity
	assert.Equal(t, int64(1024), c.Capacity())

	c.PutIfAbsent("a", m.NewBitmap(image.NewRGBA(image.Rect(0, 0, 128, 128)))) // 64kb
	assert.Equal(t, int64(64), c.Size())
}
