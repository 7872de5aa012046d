package effects

import (
	"time"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

// DefaultRippleDuration is how long a click ripple lives.
const DefaultRippleDuration = 600 * time.Millisecond

// Ripple spawns expanding click feedback inside a control.
type Ripple struct {
	r        ports.Renderer
	sched    ports.Scheduler
	duration time.Duration
}

// NewRipple creates a ripple spawner.
func NewRipple(r ports.Renderer, sched ports.Scheduler, duration time.Duration) *Ripple {
	if duration <= 0 {
		duration = DefaultRippleDuration
	}
	return &Ripple{r: r, sched: sched, duration: duration}
}

// Spawn adds a ripple centred on at, sized from the control bounds, and removes it
// once its animation is over. Bounds of the ripple are relative to the control.
func (rp *Ripple) Spawn(control ports.NodeID, bounds ports.Rect, at ports.Point) ports.NodeID {
	size := max(bounds.W, bounds.H)
	id := rp.r.CreateNode(control, ports.Node{
		Kind:    ports.KindRipple,
		Opacity: 0.6,
		Bounds: ports.Rect{
			X: at.X - bounds.X - size/2,
			Y: at.Y - bounds.Y - size/2,
			W: size,
			H: size,
		},
		Motion: &ports.Motion{Start: rp.sched.Now(), Duration: rp.duration},
	})
	if id == 0 {
		return 0
	}
	rp.sched.AfterFunc(rp.duration, func() {
		rp.r.RemoveNode(id)
	})
	return id
}
