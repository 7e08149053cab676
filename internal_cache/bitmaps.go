package internal_cache

import (
	"github.com/windy003/photo-gallery/thumbnailing/m"
)

type BitmapCache = LruCache[*m.Bitmap]

// NewBitmapCache sizes a thumbnail cache from a memory budget in bytes. Entries cost
// their decoded size in kilobytes.
func NewBitmapCache(budgetBytes int64) *BitmapCache {
	return NewLruCache[*m.Bitmap]("thumbnails", CapacityForBudget(budgetBytes), func(key string, b *m.Bitmap) int64 {
		return b.CostKb()
	})
}
