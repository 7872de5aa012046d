package input

import (
	"time"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

// DefaultResizeDebounce is the quiet period before a resize is applied.
const DefaultResizeDebounce = 250 * time.Millisecond

// Debouncer runs only the last of a burst of triggers, once period has passed without another.
type Debouncer struct {
	sched   ports.Scheduler
	period  time.Duration
	pending ports.Timer
}

// NewDebouncer creates a debouncer.
func NewDebouncer(sched ports.Scheduler, period time.Duration) *Debouncer {
	if period <= 0 {
		period = DefaultResizeDebounce
	}
	return &Debouncer{sched: sched, period: period}
}

// Trigger (re)arms the debouncer with fn.
func (d *Debouncer) Trigger(fn func()) {
	d.Stop()
	var t ports.Timer
	t = d.sched.AfterFunc(d.period, func() {
		if d.pending == t {
			d.pending = nil
		}
		fn()
	})
	d.pending = t
}

// Stop drops the pending call, if any.
func (d *Debouncer) Stop() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
