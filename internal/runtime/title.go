package runtime

import (
	"github.com/aretw0/matrixdeck/internal/effects"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

// DefaultContainerOpacity is the rain container opacity while the title slide is shown.
const DefaultContainerOpacity = 0.35

// TitleEffect owns the rain container. The presenter only toggles it;
// the container's children are mutated by the rain alone.
type TitleEffect struct {
	r         ports.Renderer
	rain      *effects.Rain
	container ports.NodeID
	opacity   float64
	active    bool
	paused    bool
}

// NewTitleEffect wraps rain, which draws into container.
func NewTitleEffect(r ports.Renderer, rain *effects.Rain, container ports.NodeID, opacity float64) *TitleEffect {
	if opacity <= 0 {
		opacity = DefaultContainerOpacity
	}
	return &TitleEffect{r: r, rain: rain, container: container, opacity: opacity}
}

// SetActive shows the container and starts spawning, or stops spawning and hides it.
// Glyphs already falling live out their lifetime.
func (t *TitleEffect) SetActive(active bool) {
	t.active = active
	if active {
		t.r.SetOpacity(t.container, t.opacity)
		if !t.paused {
			t.rain.Start()
		}
		return
	}
	t.rain.Stop()
	t.r.SetOpacity(t.container, 0)
}

// Active reports whether the title effect is on.
func (t *TitleEffect) Active() bool {
	return t.active
}

// Rebuild lays out the column grid for width, discarding everything in flight.
func (t *TitleEffect) Rebuild(width int) {
	t.rain.Rebuild(width)
}

// Pause suspends spawning while the host is hidden. Resuming only restarts
// spawning when the effect is active.
func (t *TitleEffect) Pause(paused bool) {
	t.paused = paused
	if !t.active {
		return
	}
	if paused {
		t.rain.Stop()
		return
	}
	t.rain.Start()
}

// Paused reports whether spawning is suspended.
func (t *TitleEffect) Paused() bool {
	return t.paused
}

// Rain exposes the underlying grid.
func (t *TitleEffect) Rain() *effects.Rain {
	return t.rain
}
