package thumbnail_controller

import (
	"sync"
	"sync/atomic"

	"github.com/windy003/photo-gallery/thumbnailing/m"
	"github.com/windy003/photo-gallery/types"
)

// Surface is the drawable part of a grid cell. It is only called from the UI loop.
type Surface interface {
	SetImage(b *m.Bitmap)
	Clear()
}

// Cell is a recyclable grid slot. Every bind bumps its token so a decode started for a
// previous binding can tell it arrived too late.
type Cell struct {
	surface Surface
	token   atomic.Uint64

	lock  sync.Mutex
	ref   types.ImageRef
	bound bool
}

func NewCell(surface Surface) *Cell {
	return &Cell{surface: surface}
}

func (c *Cell) bind(ref types.ImageRef) uint64 {
	c.lock.Lock()
	c.ref = ref
	c.bound = true
	c.lock.Unlock()
	return c.token.Add(1)
}

// Unbind detaches the cell from its ref and blanks it. Must be called on the UI loop.
func (c *Cell) Unbind() {
	c.lock.Lock()
	c.ref = types.ImageRef{}
	c.bound = false
	c.lock.Unlock()
	c.token.Add(1)
	c.surface.Clear()
}

func (c *Cell) Token() uint64 {
	return c.token.Load()
}

func (c *Cell) Ref() (types.ImageRef, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.ref, c.bound
}

// apply draws the result if it still belongs to the current binding.
func (c *Cell) apply(r Result) bool {
	if r.Token != c.token.Load() {
		return false
	}
	if r.Ok() {
		c.surface.SetImage(r.Bitmap)
	} else {
		c.surface.Clear()
	}
	return true
}
