// Package scheduler provides cancellable delayed callbacks executed on a
// single dispatch goroutine, so scheduled work never runs concurrently with
// itself. Cancellation is explicit and checked before a task fires: a
// cancelled task never runs.
package scheduler

import (
	"sync"
	"time"
)

// Task is one scheduled callback handle.
type Task struct {
	mu        sync.Mutex
	timer     *time.Timer
	cancelled bool
	fired     bool
}

// Cancel stops the task. Returns true when the callback was prevented from
// running; false when it already fired.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired {
		return false
	}
	t.cancelled = true
	t.timer.Stop()
	return true
}

// Scheduler owns the dispatch goroutine. Close it when done.
type Scheduler struct {
	queue chan func()
	once  sync.Once
	done  chan struct{}
}

func New() *Scheduler {
	s := &Scheduler{
		queue: make(chan func(), 16),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Scheduler) run() {
	for {
		select {
		case fn := <-s.queue:
			fn()
		case <-s.done:
			return
		}
	}
}

// Schedule arranges fn to run on the dispatch goroutine after d. The
// cancelled flag is re-checked at dispatch time, so a Cancel racing the
// timer still wins if it lands before execution.
func (s *Scheduler) Schedule(d time.Duration, fn func()) *Task {
	t := &Task{}
	t.timer = time.AfterFunc(d, func() {
		s.queue <- func() {
			t.mu.Lock()
			if t.cancelled {
				t.mu.Unlock()
				return
			}
			t.fired = true
			t.mu.Unlock()
			fn()
		}
	})
	return t
}

// Close stops the dispatch goroutine. Pending tasks are dropped.
func (s *Scheduler) Close() {
	s.once.Do(func() { close(s.done) })
}
