package config

import (
	"math"
	"runtime/debug"

	"github.com/pbnjay/memory"
)

const fallbackMemoryBudget = 512 * 1024 * 1024

// MemoryBudget is the number of bytes the thumbnail cache sizes itself against. An explicit
// budget wins, then the Go runtime's soft memory limit, then a quarter of physical memory.
func (c ThumbnailsConfig) MemoryBudget() int64 {
	if c.MemoryBudgetBytes > 0 {
		return c.MemoryBudgetBytes
	}
	if limit := debug.SetMemoryLimit(-1); limit > 0 && limit != math.MaxInt64 {
		return limit
	}
	if total := memory.TotalMemory(); total > 0 {
		return int64(total / 4)
	}
	return fallbackMemoryBudget
}
