package runtime

import (
	"time"

	"github.com/aretw0/matrixdeck/internal/scene"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

const (
	DefaultSettle  = 200 * time.Millisecond
	DefaultStagger = 100 * time.Millisecond

	// HiddenOffset is how many rows a hidden element sits below its place.
	HiddenOffset = 2
)

// Disclosure reveals the elements of the active slide one after another.
type Disclosure struct {
	r       ports.Renderer
	sched   ports.Scheduler
	settle  time.Duration
	stagger time.Duration

	pending []ports.Timer
	left    int
}

// NewDisclosure creates a disclosure controller. Zero durations take the defaults.
func NewDisclosure(r ports.Renderer, sched ports.Scheduler, settle, stagger time.Duration) *Disclosure {
	if settle <= 0 {
		settle = DefaultSettle
	}
	if stagger <= 0 {
		stagger = DefaultStagger
	}
	return &Disclosure{r: r, sched: sched, settle: settle, stagger: stagger}
}

// Activate hides every reveal element of slide at once, then schedules element i
// to appear at settle + i*stagger. Reveals still pending from an earlier activation are cancelled.
func (d *Disclosure) Activate(slide *domain.Slide) {
	d.Cancel()

	for _, el := range slide.Reveals {
		el.Revealed = false
		if id, ok := d.r.Lookup(scene.RevealName(slide.Position, el.Index)); ok {
			d.r.SetOpacity(id, 0)
			d.r.SetTransform(id, ports.Offset{Y: HiddenOffset})
		}
	}

	position := slide.Position
	for i, el := range slide.Reveals {
		delay := d.settle + time.Duration(i)*d.stagger
		d.pending = append(d.pending, d.sched.AfterFunc(delay, func() {
			d.left--
			el.Revealed = true
			if id, ok := d.r.Lookup(scene.RevealName(position, el.Index)); ok {
				d.r.SetOpacity(id, 1)
				d.r.SetTransform(id, ports.Offset{})
			}
		}))
	}
	d.left = len(slide.Reveals)
}

// Cancel stops every pending reveal.
func (d *Disclosure) Cancel() {
	for _, t := range d.pending {
		t.Stop()
	}
	d.pending = d.pending[:0]
	d.left = 0
}

// Pending returns the number of reveals that have not happened yet.
func (d *Disclosure) Pending() int {
	return d.left
}
