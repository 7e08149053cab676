package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoopRunsInPostOrder(t *testing.T) {
	l := NewLoop()
	go l.Run(context.Background())
	defer l.Stop()

	seen := make([]int, 0)
	wg := &sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		assert.True(t, l.Post(func() {
			seen = append(seen, i)
			wg.Done()
		}))
	}
	wg.Wait()
	l.Flush()

	for i, v := range seen {
		assert.Equal(t, i, v)
	}
	assert.Len(t, seen, 50)
}

func TestPostFromLoopDoesNotDeadlock(t *testing.T) {
	l := NewLoop()
	go l.Run(context.Background())
	defer l.Stop()

	ch := make(chan struct{})
	l.Post(func() {
		l.Post(func() { close(ch) })
	})

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("nested post never ran")
	}
}

func TestLoopSurvivesPanics(t *testing.T) {
	l := NewLoop()
	go l.Run(context.Background())
	defer l.Stop()

	l.Post(func() { panic("boom") })
	ran := false
	l.Post(func() { ran = true })
	l.Flush()
	assert.True(t, ran)
}

func TestPostAfterStop(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	cancel()
	<-l.Done()

	assert.False(t, l.Post(func() {}))
	l.Flush() // returns immediately
}

func TestFlushWithoutRunReturns(t *testing.T) {
	l := NewLoop()
	assert.True(t, l.Post(func() {}))

	flushed := make(chan struct{})
	go func() {
		l.Flush()
		close(flushed)
	}()

	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("Flush blocked on a loop that was never run")
	}
}
