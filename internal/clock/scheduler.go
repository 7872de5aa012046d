package clock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

// LoopScheduler implements ports.Scheduler with wall-clock timers whose callbacks
// are posted into a Loop.
type LoopScheduler struct {
	loop *Loop
}

var _ ports.Scheduler = (*LoopScheduler)(nil)

// NewScheduler creates a scheduler bound to loop.
func NewScheduler(loop *Loop) *LoopScheduler {
	return &LoopScheduler{loop: loop}
}

// Now returns the wall-clock time.
func (s *LoopScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn on the loop once d has elapsed.
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) ports.Timer {
	t := &loopTimer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		s.loop.Post(func() {
			// A Stop issued on the loop after the wall timer fired still wins.
			if t.stopped.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

// Every runs fn on the loop every d until stopped.
func (s *LoopScheduler) Every(d time.Duration, fn func()) ports.Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &loopTimer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		s.loop.Post(func() {
			if t.stopped.Load() {
				return
			}
			fn()
			if !t.stopped.Load() {
				t.reset(d)
			}
		})
	})
	return t
}

type loopTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) reset(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer.Reset(d)
}

func (t *loopTimer) Stop() bool {
	t.mu.Lock()
	t.timer.Stop()
	t.mu.Unlock()
	return !t.stopped.Swap(true)
}
