package effects

import (
	"strings"
	"time"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

// GlitchRunes replace characters while a glitch runs.
const GlitchRunes = "!<>-_\\/[]{}—=+*^?#________"

// GlitchConfig holds the glitch timing.
type GlitchConfig struct {
	Interval    time.Duration
	Duration    time.Duration
	Probability float64
}

// DefaultGlitchConfig scrambles every 50ms for one second at a 10% rate.
func DefaultGlitchConfig() GlitchConfig {
	return GlitchConfig{
		Interval:    50 * time.Millisecond,
		Duration:    time.Second,
		Probability: 0.1,
	}
}

type glitchRun struct {
	original string
	ticker   ports.Timer
	restore  ports.Timer
}

// Glitch temporarily scrambles a node's text and restores it afterwards.
type Glitch struct {
	r       ports.Renderer
	sched   ports.Scheduler
	rng     Rand
	cfg     GlitchConfig
	glyphs  []rune
	running map[ports.NodeID]*glitchRun
}

// NewGlitch creates a glitch effect.
func NewGlitch(r ports.Renderer, sched ports.Scheduler, rng Rand, cfg GlitchConfig) *Glitch {
	return &Glitch{
		r:       r,
		sched:   sched,
		rng:     rng,
		cfg:     cfg,
		glyphs:  []rune(GlitchRunes),
		running: make(map[ports.NodeID]*glitchRun),
	}
}

// Apply glitches id, whose current text is text. A glitch already running on id is
// restored first so the scrambled text is never taken as the original.
func (g *Glitch) Apply(id ports.NodeID, text string) {
	if run, ok := g.running[id]; ok {
		g.stop(id, run)
		text = run.original
	}

	run := &glitchRun{original: text}
	g.running[id] = run
	run.ticker = g.sched.Every(g.cfg.Interval, func() {
		g.r.SetText(id, Scramble(g.rng, text, g.glyphs, g.cfg.Probability))
	})
	run.restore = g.sched.AfterFunc(g.cfg.Duration, func() {
		g.stop(id, run)
		g.r.SetText(id, run.original)
	})
}

// Cancel stops a glitch on id without restoring its text; the caller is about to replace it.
func (g *Glitch) Cancel(id ports.NodeID) bool {
	run, ok := g.running[id]
	if !ok {
		return false
	}
	g.stop(id, run)
	return true
}

// Active reports whether id is glitching.
func (g *Glitch) Active(id ports.NodeID) bool {
	_, ok := g.running[id]
	return ok
}

func (g *Glitch) stop(id ports.NodeID, run *glitchRun) {
	run.ticker.Stop()
	run.restore.Stop()
	if g.running[id] == run {
		delete(g.running, id)
	}
}

// Scramble replaces each rune of text with a random glyph with probability p.
func Scramble(rng Rand, text string, glyphs []rune, p float64) string {
	if len(glyphs) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if rng.Float64() < p {
			r = glyphs[rng.IntN(len(glyphs))]
		}
		b.WriteRune(r)
	}
	return b.String()
}
