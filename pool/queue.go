package pool

import (
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/windy003/photo-gallery/common"
	"github.com/windy003/photo-gallery/common/logging"
	"github.com/windy003/photo-gallery/metrics"
)

// Queue runs tasks on a fixed number of workers. Tasks are accepted without limit and
// wait in FIFO order until a worker is free, so Schedule never blocks the caller.
type Queue struct {
	name    string
	pool    *ants.Pool
	lock    *sync.Mutex
	cond    *sync.Cond
	pending []queuedTask
	closed  bool
	done    chan struct{}
}

func NewQueue(workers int, name string) (*Queue, error) {
	p, err := ants.NewPool(workers, ants.WithOptions(ants.Options{
		ExpiryDuration:   1 * time.Minute, // worker lifespan when unused
		PreAlloc:         false,
		MaxBlockingTasks: 0,
		Nonblocking:      false,
		PanicHandler: func(err interface{}) {
			logrus.Errorf("Panic from internal queue %s", name)
			logrus.Error(err)
			//goland:noinspection GoTypeAssertionOnErrors
			if e, ok := err.(error); ok {
				sentry.CaptureException(e)
			}
		},
		Logger:       &logging.SendToDebugLogger{},
		DisablePurge: false,
	}))
	if err != nil {
		return nil, err
	}

	lock := &sync.Mutex{}
	q := &Queue{
		name:    name,
		pool:    p,
		lock:    lock,
		cond:    sync.NewCond(lock),
		pending: make([]queuedTask, 0),
		done:    make(chan struct{}),
	}
	go q.dispatch()
	return q, nil
}

type queuedTask struct {
	run     func()
	dropped func()
}

func (q *Queue) Schedule(task func()) error {
	return q.ScheduleDroppable(task, nil)
}

// ScheduleDroppable queues task like Schedule. If Release discards the task before a
// worker picks it up, dropped is called instead so callers can settle any accounting.
func (q *Queue) ScheduleDroppable(task func(), dropped func()) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.closed {
		return common.ErrQueueClosed
	}
	q.pending = append(q.pending, queuedTask{run: task, dropped: dropped})
	metrics.QueuePending.With(prometheus.Labels{"queue": q.name}).Set(float64(len(q.pending)))
	q.cond.Signal()
	return nil
}

func (q *Queue) dispatch() {
	defer close(q.done)
	for {
		q.lock.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.closed {
			q.lock.Unlock()
			return
		}
		task := q.pending[0]
		q.pending[0] = queuedTask{}
		q.pending = q.pending[1:]
		metrics.QueuePending.With(prometheus.Labels{"queue": q.name}).Set(float64(len(q.pending)))
		q.lock.Unlock()

		// Blocks while every worker is busy
		if err := q.pool.Submit(task.run); err != nil {
			logrus.WithField("queue", q.name).Error("Dropping task: ", err)
			sentry.CaptureException(err)
			task.drop()
		}
		metrics.QueueRunning.With(prometheus.Labels{"queue": q.name}).Set(float64(q.pool.Running()))
	}
}

func (q *Queue) Pending() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.pending)
}

func (q *Queue) Workers() int {
	return q.pool.Cap()
}

func (q *Queue) Tune(workers int) {
	if workers <= 0 || workers == q.pool.Cap() {
		return
	}
	logrus.WithField("queue", q.name).Infof("Resizing queue from %d to %d workers", q.pool.Cap(), workers)
	q.pool.Tune(workers)
}

func (t queuedTask) drop() {
	if t.dropped != nil {
		t.dropped()
	}
}

// Release discards anything not yet handed to a worker, calling each discarded task's
// dropped callback, and stops the pool. It returns the number of discarded tasks.
func (q *Queue) Release() int {
	q.lock.Lock()
	if q.closed {
		q.lock.Unlock()
		return 0
	}
	q.closed = true
	discarded := q.pending
	q.pending = nil
	q.cond.Broadcast()
	q.lock.Unlock()

	<-q.done
	q.pool.Release()

	for _, task := range discarded {
		task.drop()
	}
	metrics.QueuePending.With(prometheus.Labels{"queue": q.name}).Set(0)
	if len(discarded) > 0 {
		logrus.WithField("queue", q.name).Warnf("Discarded %d queued tasks on release", len(discarded))
	}
	return len(discarded)
}
