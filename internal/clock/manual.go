package clock

import (
	"sync"
	"time"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

// Manual is a deterministic ports.Scheduler for tests.
// Time only moves on Advance, which runs due callbacks in time order on the caller's goroutine.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers map[*manualTimer]struct{}
}

var _ ports.Scheduler = (*Manual)(nil)

// NewManual creates a manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:    start,
		timers: make(map[*manualTimer]struct{}),
	}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn once, d from now.
func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return m.add(d, 0, fn)
}

// Every schedules fn every d.
func (m *Manual) Every(d time.Duration, fn func()) ports.Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, period time.Duration, fn func()) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, when: m.now.Add(d), period: period, fn: fn, seq: m.seq}
	m.timers[t] = struct{}{}
	return t
}

// Advance moves time forward by d, running every callback that becomes due.
// Callbacks scheduled by callbacks run too if they fall within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.when
		if next.period > 0 {
			next.when = next.when.Add(next.period)
			m.seq++
			next.seq = m.seq
		} else {
			delete(m.timers, next)
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) nextDue(target time.Time) *manualTimer {
	var next *manualTimer
	for t := range m.timers {
		if t.when.After(target) {
			continue
		}
		if next == nil || t.when.Before(next.when) || (t.when.Equal(next.when) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

type manualTimer struct {
	m      *Manual
	when   time.Time
	period time.Duration
	fn     func()
	seq    uint64
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if _, ok := t.m.timers[t]; !ok {
		return false
	}
	delete(t.m.timers, t)
	return true
}
