package gallery_controller

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/controllers/thumbnail_controller"
	"github.com/windy003/photo-gallery/index"
	"github.com/windy003/photo-gallery/permissions"
	"github.com/windy003/photo-gallery/thumbnailing/m"
	"github.com/windy003/photo-gallery/types"
)

const PermissionDeniedMessage = "Permission is necessary for this application to proceed."

type Controller struct {
	index    index.Index
	gate     permissions.Gate
	provider *thumbnail_controller.Provider
	loop     thumbnail_controller.Poster
	display  Display

	sessionId   string
	fullPending atomic.Int64

	lock     sync.Mutex
	started  bool
	images   []types.ImageRef
	state    State
	tapToken uint64
}

func NewController(idx index.Index, gate permissions.Gate, provider *thumbnail_controller.Provider, loop thumbnail_controller.Poster, display Display) *Controller {
	return &Controller{
		index:     idx,
		gate:      gate,
		provider:  provider,
		loop:      loop,
		display:   display,
		sessionId: uuid.New().String(),
		images:    make([]types.ImageRef, 0),
		state:     Grid,
	}
}

func (c *Controller) withSession(ctx rcontext.RequestContext) rcontext.RequestContext {
	ctx = ctx.LogWithFields(logrus.Fields{"session": c.sessionId})
	ctx.Context = context.WithValue(ctx.Context, common.ContextSessionId, c.sessionId)
	return ctx
}

func (c *Controller) SessionId() string {
	return c.sessionId
}

// Start checks the media permission and loads the image list. It runs at most once;
// later calls return nil without doing anything. Start blocks on the permission prompt
// and the index, so it must not be called on the UI loop.
func (c *Controller) Start(ctx rcontext.RequestContext) error {
	ctx = c.withSession(ctx)

	c.lock.Lock()
	if c.started {
		c.lock.Unlock()
		return nil
	}
	c.started = true
	c.lock.Unlock()

	if !c.checkPermission(ctx) {
		ctx.Log.Warn("Media permission denied")
		c.loop.Post(func() {
			c.display.Notify(PermissionDeniedMessage)
		})
		return common.ErrPermissionDenied
	}

	refs, err := c.index.List(ctx)
	if err != nil {
		ctx.Log.Error("Error listing images: ", err)
		return err
	}
	if len(refs) == 0 {
		ctx.Log.Info("No images to show")
		return nil
	}

	c.lock.Lock()
	c.images = refs
	c.lock.Unlock()

	published := append([]types.ImageRef{}, refs...)
	c.loop.Post(func() {
		c.display.ShowImages(published)
	})
	ctx.Log.Infof("Loaded %d images", len(refs))
	return nil
}

func (c *Controller) checkPermission(ctx rcontext.RequestContext) bool {
	if c.gate.Granted(ctx) {
		return true
	}
	granted, err := c.gate.Request(ctx)
	if err != nil {
		ctx.Log.Error("Error requesting media permission: ", err)
		return false
	}
	return granted
}

// Images returns a copy of the loaded list.
func (c *Controller) Images() []types.ImageRef {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]types.ImageRef{}, c.images...)
}

func (c *Controller) Count() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.images)
}

func (c *Controller) Item(position int) (types.ImageRef, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if position < 0 || position >= len(c.images) {
		return types.ImageRef{}, common.ErrOutOfRange
	}
	return c.images[position], nil
}

func (c *Controller) State() State {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

// BindCell shows the thumbnail for position in cell, reporting whether a decode is
// still pending. Must be called on the UI loop.
func (c *Controller) BindCell(ctx rcontext.RequestContext, position int, cell *thumbnail_controller.Cell) (bool, error) {
	ref, err := c.Item(position)
	if err != nil {
		return false, err
	}
	_, pending := c.provider.Resolve(c.withSession(ctx), ref, cell)
	return pending, nil
}

// Tap opens the image at position full screen. The full resolution decode happens in
// the background; the view stays blank if it fails. Must be called on the UI loop.
func (c *Controller) Tap(ctx rcontext.RequestContext, position int) error {
	ref, err := c.Item(position)
	if err != nil {
		return err
	}
	ctx = c.withSession(ctx).LogWithFields(logrus.Fields{"location": ref.Location})

	c.lock.Lock()
	c.state = FullScreen
	c.tapToken++
	token := c.tapToken
	c.lock.Unlock()

	c.display.SetGridVisible(false)
	c.display.SetFullScreenImage(nil)
	c.display.SetFullScreenVisible(true)

	c.fullPending.Add(1)
	go func() {
		defer c.fullPending.Add(-1)
		b, err := c.provider.DecodeFull(ctx, ref)
		if err != nil {
			ctx.Log.Warn("Failed to decode full image: ", err)
		}
		c.loop.Post(func() {
			c.showFull(token, b, err)
		})
	}()
	return nil
}

func (c *Controller) showFull(token uint64, b *m.Bitmap, err error) {
	c.lock.Lock()
	current := c.state == FullScreen && c.tapToken == token
	c.lock.Unlock()
	if !current || err != nil {
		return
	}
	c.display.SetFullScreenImage(b)
}

// Back returns from full screen to the grid. In the grid it does nothing and returns
// false so the caller can close the screen. Must be called on the UI loop.
func (c *Controller) Back() bool {
	c.lock.Lock()
	if c.state != FullScreen {
		c.lock.Unlock()
		return false
	}
	c.state = Grid
	c.tapToken++
	c.lock.Unlock()

	c.display.SetFullScreenVisible(false)
	c.display.SetGridVisible(true)
	return true
}

// PendingDecodes counts thumbnail and full screen decodes that have not reached the UI loop.
func (c *Controller) PendingDecodes() int64 {
	return c.provider.Pending() + c.fullPending.Load()
}

