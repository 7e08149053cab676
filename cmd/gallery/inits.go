package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/windy003/photo-gallery/common/config"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/controllers/gallery_controller"
	"github.com/windy003/photo-gallery/controllers/thumbnail_controller"
	"github.com/windy003/photo-gallery/errcache"
	"github.com/windy003/photo-gallery/index"
	"github.com/windy003/photo-gallery/internal_cache"
	"github.com/windy003/photo-gallery/metrics"
	"github.com/windy003/photo-gallery/permissions"
	"github.com/windy003/photo-gallery/pool"
	"github.com/windy003/photo-gallery/resolver"
	"github.com/windy003/photo-gallery/ui"
)

type session struct {
	loop       *ui.Loop
	queue      *pool.Queue
	failures   *errcache.ErrCache
	provider   *thumbnail_controller.Provider
	controller *gallery_controller.Controller
	display    *logDisplay
}

func newSession(c *config.GalleryConfig, loop *ui.Loop) (*session, error) {
	logrus.Info("Preparing decode queue...")
	queue, err := pool.NewQueue(c.Thumbnails.NumWorkers, "thumbnails")
	if err != nil {
		return nil, errors.Wrap(err, "creating decode queue")
	}
	metrics.OnBeforeMetricsRequested(func() {
		metrics.QueuePending.With(prometheus.Labels{"queue": "thumbnails"}).Set(float64(queue.Pending()))
	})

	budget := c.Thumbnails.MemoryBudget()
	cache := internal_cache.NewBitmapCache(budget)
	logrus.Infof("Thumbnail cache holds up to %s (memory budget %s)",
		humanize.Bytes(uint64(cache.Capacity()*1024)), humanize.Bytes(uint64(budget)))

	logrus.Info("Preparing resolvers...")
	router, err := resolver.FromConfig(c.Resolvers)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Preparing %s index...", c.Index.Type)
	idx, err := index.NewFromConfig(c.Index)
	if err != nil {
		return nil, err
	}

	gate, err := permissions.FromConfig(c.Permissions)
	if err != nil {
		return nil, err
	}

	failures := errcache.FromConfig(c.Thumbnails)
	provider := thumbnail_controller.NewProvider(cache, queue, loop, router, thumbnail_controller.Options{
		SampleSize: c.Thumbnails.SampleSize,
		MaxPixels:  c.Thumbnails.MaxPixels,
		Failures:   failures,
	})
	display := newLogDisplay()
	return &session{
		loop:       loop,
		queue:      queue,
		failures:   failures,
		provider:   provider,
		controller: gallery_controller.NewController(idx, gate, provider, loop, display),
		display:    display,
	}, nil
}

func (s *session) run(ctx rcontext.RequestContext, gridSize int, openPosition int) error {
	if err := s.controller.Start(ctx); err != nil {
		s.loop.Flush()
		return err
	}

	visible := gridSize
	if n := s.controller.Count(); n < visible {
		visible = n
	}
	cells := make([]*thumbnail_controller.Cell, visible)
	for i := range cells {
		cells[i] = thumbnail_controller.NewCell(&logSurface{position: i})
	}

	s.onLoop(func() {
		for i, cell := range cells {
			if _, err := s.controller.BindCell(ctx, i, cell); err != nil {
				ctx.Log.Error("Error binding cell: ", err)
			}
		}
	})
	s.waitForDecodes()

	if openPosition < 0 {
		return nil
	}

	var tapErr error
	s.onLoop(func() {
		tapErr = s.controller.Tap(ctx, openPosition)
	})
	if tapErr != nil {
		return tapErr
	}
	s.waitForDecodes()
	s.onLoop(func() {
		s.controller.Back()
	})
	return nil
}

func (s *session) onLoop(fn func()) {
	done := make(chan struct{})
	if !s.loop.Post(func() {
		defer close(done)
		fn()
	}) {
		return
	}
	<-done
}

func (s *session) waitForDecodes() {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for s.controller.PendingDecodes() > 0 {
		<-ticker.C
	}
	s.loop.Flush()
}
