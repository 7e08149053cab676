package gallery_controller

import (
	"github.com/windy003/photo-gallery/thumbnailing/m"
	"github.com/windy003/photo-gallery/types"
)

// Display is the screen the controller drives. All calls happen on the UI loop.
type Display interface {
	ShowImages(refs []types.ImageRef)
	SetGridVisible(visible bool)
	SetFullScreenVisible(visible bool)
	// SetFullScreenImage shows b full screen. A nil bitmap blanks the view.
	SetFullScreenImage(b *m.Bitmap)
	Notify(message string)
}

type State int

const (
	Grid State = iota
	FullScreen
)

func (s State) String() string {
	switch s {
	case Grid:
		return "grid"
	case FullScreen:
		return "fullscreen"
	}
	return "unknown"
}
