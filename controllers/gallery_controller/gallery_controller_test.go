package gallery_controller

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/controllers/thumbnail_controller"
	"github.com/windy003/photo-gallery/internal_cache"
	"github.com/windy003/photo-gallery/permissions"
	"github.com/windy003/photo-gallery/pool"
	"github.com/windy003/photo-gallery/resolver"
	"github.com/windy003/photo-gallery/thumbnailing/m"
	"github.com/windy003/photo-gallery/types"
	"github.com/windy003/photo-gallery/ui"
)

type fakeDisplay struct {
	lock           sync.Mutex
	shown          [][]types.ImageRef
	notices        []string
	gridVisible    bool
	fullVisible    bool
	fullImage      *m.Bitmap
	fullImageCalls int
}

func (d *fakeDisplay) ShowImages(refs []types.ImageRef) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.shown = append(d.shown, refs)
}

func (d *fakeDisplay) SetGridVisible(visible bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.gridVisible = visible
}

func (d *fakeDisplay) SetFullScreenVisible(visible bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.fullVisible = visible
}

func (d *fakeDisplay) SetFullScreenImage(b *m.Bitmap) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.fullImage = b
	d.fullImageCalls++
}

func (d *fakeDisplay) Notify(message string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.notices = append(d.notices, message)
}

type fakeIndex struct {
	refs  []types.ImageRef
	err   error
	calls int
}

func (f *fakeIndex) List(ctx rcontext.RequestContext) ([]types.ImageRef, error) {
	f.calls++
	return f.refs, f.err
}

type byteResolver map[string][]byte

func (r byteResolver) Open(ctx rcontext.RequestContext, ref types.ImageRef) (io.ReadCloser, error) {
	b, ok := r[ref.Location]
	if !ok {
		return nil, common.ErrImageNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

type explodingReader struct{}

func (explodingReader) Read(p []byte) (int, error) {
	panic("decoder exploded")
}

type explodingResolver struct{}

func (explodingResolver) Open(ctx rcontext.RequestContext, ref types.ImageRef) (io.ReadCloser, error) {
	return io.NopCloser(explodingReader{}), nil
}

type nullSurface struct{}

func (nullSurface) SetImage(b *m.Bitmap) {}
func (nullSurface) Clear()               {}

func pngBytes(t *testing.T, w int, h int) []byte {
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

type harness struct {
	loop       *ui.Loop
	display    *fakeDisplay
	index      *fakeIndex
	controller *Controller
}

func newHarness(t *testing.T, gate permissions.Gate, idx *fakeIndex, files resolver.Resolver) *harness {
	loop := ui.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	queue, err := pool.NewQueue(4, "test_gallery")
	require.NoError(t, err)
	t.Cleanup(func() {
		queue.Release()
		cancel()
		<-loop.Done()
	})

	provider := thumbnail_controller.NewProvider(internal_cache.NewBitmapCache(64*1024*1024), queue, loop, files, thumbnail_controller.Options{SampleSize: 4})
	display := &fakeDisplay{gridVisible: true}
	return &harness{
		loop:       loop,
		display:    display,
		index:      idx,
		controller: NewController(idx, gate, provider, loop, display),
	}
}

func (h *harness) onLoop(fn func()) {
	done := make(chan struct{})
	h.loop.Post(func() {
		defer close(done)
		fn()
	})
	<-done
}

func (h *harness) waitIdle(t *testing.T) {
	require.Eventually(t, func() bool { return h.controller.PendingDecodes() == 0 }, 5*time.Second, 5*time.Millisecond)
	h.loop.Flush()
}

type denyingGate struct {
	requests int
}

func (g *denyingGate) Granted(ctx rcontext.RequestContext) bool {
	return false
}

func (g *denyingGate) Request(ctx rcontext.RequestContext) (bool, error) {
	g.requests++
	return false, nil
}

type erroringGate struct{}

func (erroringGate) Granted(ctx rcontext.RequestContext) bool {
	return false
}

func (erroringGate) Request(ctx rcontext.RequestContext) (bool, error) {
	return false, errors.New("prompt failed")
}

func sampleRefs() []types.ImageRef {
	return []types.ImageRef{
		{Id: "b", Location: "file:///b.png", AddedTs: 300},
		{Id: "c", Location: "file:///c.png", AddedTs: 200},
		{Id: "a", Location: "file:///a.png", AddedTs: 100},
	}
}

func TestPermissionDeniedShowsOneNotice(t *testing.T) {
	gate := &denyingGate{}
	h := newHarness(t, gate, &fakeIndex{refs: sampleRefs()}, byteResolver{})

	err := h.controller.Start(rcontext.Initial())
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
	assert.NoError(t, h.controller.Start(rcontext.Initial()))
	h.loop.Flush()

	assert.Equal(t, []string{PermissionDeniedMessage}, h.display.notices)
	assert.Empty(t, h.display.shown)
	assert.Equal(t, 0, h.controller.Count())
	assert.Equal(t, 0, h.index.calls)
	assert.Equal(t, 1, gate.requests)
}

func TestPermissionRequestErrorIsDenial(t *testing.T) {
	h := newHarness(t, erroringGate{}, &fakeIndex{refs: sampleRefs()}, byteResolver{})
	assert.ErrorIs(t, h.controller.Start(rcontext.Initial()), common.ErrPermissionDenied)
	h.loop.Flush()
	assert.Len(t, h.display.notices, 1)
}

func TestStartPublishesListOnce(t *testing.T) {
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: sampleRefs()}, byteResolver{})

	require.NoError(t, h.controller.Start(rcontext.Initial()))
	require.NoError(t, h.controller.Start(rcontext.Initial()))
	h.loop.Flush()

	require.Len(t, h.display.shown, 1)
	assert.Equal(t, sampleRefs(), h.display.shown[0])
	assert.Equal(t, 1, h.index.calls)
	assert.Equal(t, 3, h.controller.Count())
	assert.Empty(t, h.display.notices)

	item, err := h.controller.Item(0)
	assert.NoError(t, err)
	assert.Equal(t, "b", item.Id)

	// Callers get a copy
	images := h.controller.Images()
	images[0].Id = "changed"
	item, _ = h.controller.Item(0)
	assert.Equal(t, "b", item.Id)
}

func TestEmptyIndexIsNoop(t *testing.T) {
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: nil}, byteResolver{})
	assert.NoError(t, h.controller.Start(rcontext.Initial()))
	h.loop.Flush()
	assert.Empty(t, h.display.shown)
	assert.Equal(t, 0, h.controller.Count())
}

func TestIndexErrorLeavesGridEmpty(t *testing.T) {
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{err: errors.New("disk gone")}, byteResolver{})
	assert.Error(t, h.controller.Start(rcontext.Initial()))
	h.loop.Flush()
	assert.Empty(t, h.display.shown)
	assert.Empty(t, h.display.notices)
}

func TestTapThenBack(t *testing.T) {
	files := byteResolver{"file:///c.png": pngBytes(t, 48, 32)}
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: sampleRefs()}, files)
	require.NoError(t, h.controller.Start(rcontext.Initial()))
	before := h.controller.Images()

	h.onLoop(func() {
		assert.NoError(t, h.controller.Tap(rcontext.Initial(), 1))
	})
	assert.Equal(t, FullScreen, h.controller.State())
	h.waitIdle(t)

	h.display.lock.Lock()
	assert.False(t, h.display.gridVisible)
	assert.True(t, h.display.fullVisible)
	require.NotNil(t, h.display.fullImage)
	assert.Equal(t, 48, h.display.fullImage.Width)
	assert.Equal(t, 32, h.display.fullImage.Height)
	h.display.lock.Unlock()

	var wentBack bool
	h.onLoop(func() {
		wentBack = h.controller.Back()
	})
	assert.True(t, wentBack)
	assert.Equal(t, Grid, h.controller.State())
	assert.True(t, h.display.gridVisible)
	assert.False(t, h.display.fullVisible)
	assert.Equal(t, before, h.controller.Images())
	assert.Equal(t, 1, h.index.calls)
}

func TestTapOnBrokenImageStaysBlank(t *testing.T) {
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: sampleRefs()}, byteResolver{})
	require.NoError(t, h.controller.Start(rcontext.Initial()))

	h.onLoop(func() {
		assert.NoError(t, h.controller.Tap(rcontext.Initial(), 0))
	})
	h.waitIdle(t)

	assert.Equal(t, FullScreen, h.controller.State())
	assert.Nil(t, h.display.fullImage)
	assert.Equal(t, 1, h.display.fullImageCalls)

	var wentBack bool
	h.onLoop(func() {
		wentBack = h.controller.Back()
	})
	assert.True(t, wentBack)
}

func TestTapOnPanickingDecodeStaysBlank(t *testing.T) {
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: sampleRefs()}, explodingResolver{})
	require.NoError(t, h.controller.Start(rcontext.Initial()))

	h.onLoop(func() {
		assert.NoError(t, h.controller.Tap(rcontext.Initial(), 0))
	})
	h.waitIdle(t)

	assert.Equal(t, FullScreen, h.controller.State())
	assert.True(t, h.display.fullVisible)
	assert.Nil(t, h.display.fullImage)
	assert.Equal(t, 1, h.display.fullImageCalls)

	var wentBack bool
	h.onLoop(func() {
		wentBack = h.controller.Back()
	})
	assert.True(t, wentBack)
	assert.Equal(t, Grid, h.controller.State())
}

func TestBackInGridFinishes(t *testing.T) {
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: sampleRefs()}, byteResolver{})
	var wentBack bool
	h.onLoop(func() {
		wentBack = h.controller.Back()
	})
	assert.False(t, wentBack)
	assert.Equal(t, Grid, h.controller.State())
}

func TestFullImageAfterBackIsDropped(t *testing.T) {
	files := byteResolver{"file:///b.png": pngBytes(t, 16, 16)}
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: sampleRefs()}, files)
	require.NoError(t, h.controller.Start(rcontext.Initial()))

	// Tap and back in the same loop turn so the decode always lands after Back
	h.onLoop(func() {
		assert.NoError(t, h.controller.Tap(rcontext.Initial(), 0))
		assert.True(t, h.controller.Back())
	})
	h.waitIdle(t)

	assert.Nil(t, h.display.fullImage)
	assert.Equal(t, Grid, h.controller.State())
}

func TestOutOfRange(t *testing.T) {
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: sampleRefs()}, byteResolver{})
	require.NoError(t, h.controller.Start(rcontext.Initial()))

	h.onLoop(func() {
		assert.ErrorIs(t, h.controller.Tap(rcontext.Initial(), 3), common.ErrOutOfRange)
		_, err := h.controller.BindCell(rcontext.Initial(), -1, thumbnail_controller.NewCell(nullSurface{}))
		assert.ErrorIs(t, err, common.ErrOutOfRange)
	})
	assert.Equal(t, Grid, h.controller.State())
}

func TestBindCellSchedulesThumbnail(t *testing.T) {
	files := byteResolver{"file:///a.png": pngBytes(t, 40, 40)}
	h := newHarness(t, permissions.NewStatic(true), &fakeIndex{refs: sampleRefs()}, files)
	require.NoError(t, h.controller.Start(rcontext.Initial()))

	cell := thumbnail_controller.NewCell(nullSurface{})
	h.onLoop(func() {
		pending, err := h.controller.BindCell(rcontext.Initial(), 2, cell)
		assert.NoError(t, err)
		assert.True(t, pending)
	})
	h.waitIdle(t)

	h.onLoop(func() {
		pending, err := h.controller.BindCell(rcontext.Initial(), 2, cell)
		assert.NoError(t, err)
		assert.False(t, pending)
	})
}
