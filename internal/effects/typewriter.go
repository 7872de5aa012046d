package effects

import (
	"time"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

// DefaultTypewriterSpeed is the delay between two typed runes.
const DefaultTypewriterSpeed = 50 * time.Millisecond

// Typewriter types a node's text one rune per tick.
type Typewriter struct {
	r     ports.Renderer
	sched ports.Scheduler
	speed time.Duration
	runs  map[ports.NodeID]ports.Timer
}

// NewTypewriter creates a typewriter effect.
func NewTypewriter(r ports.Renderer, sched ports.Scheduler, speed time.Duration) *Typewriter {
	if speed <= 0 {
		speed = DefaultTypewriterSpeed
	}
	return &Typewriter{r: r, sched: sched, speed: speed, runs: make(map[ports.NodeID]ports.Timer)}
}

// Type clears id and retypes text. A run already in progress on id is cancelled.
func (tw *Typewriter) Type(id ports.NodeID, text string) {
	tw.Cancel(id)
	tw.r.SetText(id, "")

	runes := []rune(text)
	i := 0
	var ticker ports.Timer
	ticker = tw.sched.Every(tw.speed, func() {
		if i < len(runes) {
			i++
			tw.r.SetText(id, string(runes[:i]))
			return
		}
		ticker.Stop()
		if tw.runs[id] == ticker {
			delete(tw.runs, id)
		}
	})
	tw.runs[id] = ticker
}

// Cancel stops typing on id, leaving whatever was typed so far.
func (tw *Typewriter) Cancel(id ports.NodeID) bool {
	t, ok := tw.runs[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(tw.runs, id)
	return true
}

// Typing reports whether id is being typed.
func (tw *Typewriter) Typing(id ports.NodeID) bool {
	_, ok := tw.runs[id]
	return ok
}
