package thumbnail_controller

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/errcache"
	"github.com/windy003/photo-gallery/internal_cache"
	"github.com/windy003/photo-gallery/metrics"
	"github.com/windy003/photo-gallery/resolver"
	"github.com/windy003/photo-gallery/thumbnailing"
	"github.com/windy003/photo-gallery/thumbnailing/m"
	"github.com/windy003/photo-gallery/types"
)

const DefaultSampleSize = 4

type Scheduler interface {
	// ScheduleDroppable runs task on a worker, or calls dropped if the task is
	// discarded before it starts.
	ScheduleDroppable(task func(), dropped func()) error
}

type Poster interface {
	Post(fn func()) bool
}

type Options struct {
	SampleSize int
	MaxPixels  int
	// Failures remembers refs that could not be decoded. May be nil.
	Failures *errcache.ErrCache
}

// Provider hands out thumbnails for grid cells, decoding on the worker queue when the
// cache does not have them yet.
type Provider struct {
	cache    *internal_cache.BitmapCache
	queue    Scheduler
	loop     Poster
	resolver resolver.Resolver
	failures *errcache.ErrCache

	sampleSize int
	maxPixels  int
	pending    atomic.Int64
}

func NewProvider(cache *internal_cache.BitmapCache, queue Scheduler, loop Poster, res resolver.Resolver, opts Options) *Provider {
	if opts.SampleSize <= 0 {
		opts.SampleSize = DefaultSampleSize
	}
	return &Provider{
		cache:      cache,
		queue:      queue,
		loop:       loop,
		resolver:   res,
		failures:   opts.Failures,
		sampleSize: opts.SampleSize,
		maxPixels:  opts.MaxPixels,
	}
}

// Resolve binds cell to ref. On a cache hit the bitmap is drawn right away and returned.
// Otherwise the cell is blanked and, unless ref is known to be undecodable, a decode is
// scheduled and Resolve reports it as pending. Must be called on the UI loop.
func (p *Provider) Resolve(ctx rcontext.RequestContext, ref types.ImageRef, cell *Cell) (*m.Bitmap, bool) {
	key := ref.String()
	token := cell.bind(ref)

	if b, ok := p.cache.Get(key); ok {
		cell.surface.SetImage(b)
		return b, false
	}

	cell.surface.Clear()
	if err := p.failures.Get(key); err != nil {
		ctx.Log.Debugf("Not decoding %s again: %s", key, err.Error())
		return nil, false
	}

	p.pending.Add(1)
	err := p.queue.ScheduleDroppable(func() {
		defer p.pending.Add(-1)
		result := p.decodeThumbnail(ctx, ref, token)
		p.loop.Post(func() {
			p.deliver(cell, result)
		})
	}, func() {
		p.pending.Add(-1)
	})
	if err != nil {
		p.pending.Add(-1)
		ctx.Log.Error("Could not schedule decode for ", key, ": ", err)
		return nil, false
	}
	return nil, true
}

func (p *Provider) deliver(cell *Cell, result Result) {
	if !cell.apply(result) {
		metrics.StaleResults.Inc()
		logrus.Debugf("Dropping stale result for %s", result.Ref.String())
	}
}

func (p *Provider) decodeThumbnail(ctx rcontext.RequestContext, ref types.ImageRef, token uint64) (result Result) {
	key := ref.String()
	result = Result{Ref: ref, Token: token}

	b, err := p.open(ctx, ref, func(s io.Reader) (*m.Bitmap, error) {
		return thumbnailing.DecodeThumbnail(s, p.sampleSize, p.maxPixels, ctx)
	})
	if err != nil {
		ctx.Log.Warnf("Failed to decode thumbnail for %s: %s", key, err.Error())
		if thumbnailing.IsDecodeFailure(err) || errors.Is(err, common.ErrImageNotFound) {
			p.failures.Set(key, err)
		}
		result.Err = err
		return result
	}

	// Another task may have decoded the same ref first; everyone shares its bitmap
	cached, _ := p.cache.PutIfAbsent(key, b)
	result.Bitmap = cached
	return result
}

// DecodeFull decodes ref at full resolution for the full screen view. Nothing is cached.
// It blocks and must not be called on the UI loop.
func (p *Provider) DecodeFull(ctx rcontext.RequestContext, ref types.ImageRef) (*m.Bitmap, error) {
	return p.open(ctx, ref, func(s io.Reader) (*m.Bitmap, error) {
		return thumbnailing.DecodeFull(s, p.maxPixels, ctx)
	})
}

// open runs decode over the ref's stream. A panic in the resolver or decoder is
// reported and returned as ErrDecodeFailed.
func (p *Provider) open(ctx rcontext.RequestContext, ref types.ImageRef, decode func(s io.Reader) (*m.Bitmap, error)) (b *m.Bitmap, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Log.Errorf("Panic while decoding %s: %v", ref.String(), r)
			sentry.CurrentHub().Recover(r)
			b = nil
			err = fmt.Errorf("%w: panic: %v", common.ErrDecodeFailed, r)
		}
	}()

	stream, err := p.resolver.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	return decode(stream)
}

// Pending is the number of decode tasks scheduled but not yet posted back to the loop.
func (p *Provider) Pending() int64 {
	return p.pending.Load()
}

func (p *Provider) Cache() *internal_cache.BitmapCache {
	return p.cache
}
