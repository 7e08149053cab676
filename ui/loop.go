package ui

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Loop runs posted functions one at a time on a single goroutine. Everything that
// touches what the user sees goes through it.
type Loop struct {
	lock    *sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
	stop    chan struct{}
	done    chan struct{}
	running bool
}

func NewLoop() *Loop {
	return &Loop{
		lock:  &sync.Mutex{},
		queue: make([]func(), 0),
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Post queues fn to run on the loop. Returns false if the loop has been stopped.
func (l *Loop) Post(fn func()) bool {
	l.lock.Lock()
	if l.stopped {
		l.lock.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.lock.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Flush blocks until everything posted before the call has run. It returns at once if
// Run has not started, since nothing would drain the queue. Must not be called from the
// loop itself.
func (l *Loop) Flush() {
	l.lock.Lock()
	running := l.running
	l.lock.Unlock()
	if !running {
		return
	}

	ch := make(chan struct{})
	if !l.Post(func() { close(ch) }) {
		return
	}
	select {
	case <-ch:
	case <-l.done:
	}
}

// Run drains posted functions until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	l.lock.Lock()
	if l.running {
		l.lock.Unlock()
		logrus.Warn("UI loop is already running")
		return
	}
	l.running = true
	l.lock.Unlock()

	defer close(l.done)
	for {
		l.lock.Lock()
		batch := l.queue
		l.queue = make([]func(), 0)
		l.lock.Unlock()

		for _, fn := range batch {
			l.runOne(fn)
		}

		select {
		case <-l.wake:
		case <-l.stop:
			return
		case <-ctx.Done():
			l.markStopped()
			return
		}
	}
}

func (l *Loop) runOne(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Error("Recovered from panic on the UI loop: ", r)
		}
	}()
	fn()
}

func (l *Loop) markStopped() {
	l.lock.Lock()
	defer l.lock.Unlock()
	if !l.stopped {
		l.stopped = true
		close(l.stop)
	}
}

// Stop ends Run. Anything still queued is discarded.
func (l *Loop) Stop() {
	l.markStopped()
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
