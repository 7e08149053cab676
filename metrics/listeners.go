package metrics

import (
	"sync"
)

var beforeMetricsCalledFns = make([]func(), 0)
var listenersLock = &sync.Mutex{}

func OnBeforeMetricsRequested(fn func()) {
	listenersLock.Lock()
	beforeMetricsCalledFns = append(beforeMetricsCalledFns, fn)
	listenersLock.Unlock()
}

func callBeforeMetricsRequested() {
	listenersLock.Lock()
	fns := make([]func(), len(beforeMetricsCalledFns))
	copy(fns, beforeMetricsCalledFns)
	listenersLock.Unlock()

	for _, fn := range fns {
		fn()
	}
}
