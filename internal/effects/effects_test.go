package effects_test

import (
	"testing"
	"time"

	"github.com/aretw0/matrixdeck/internal/clock"
	"github.com/aretw0/matrixdeck/internal/effects"
	"github.com/aretw0/matrixdeck/internal/scene"
	"github.com/aretw0/matrixdeck/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always draws the same values.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return r.n % n }

func TestRipple_Spawn(t *testing.T) {
	s := scene.New()
	m := clock.NewManual(epoch)
	bounds := ports.Rect{X: 10, Y: 20, W: 8, H: 1}
	control := s.CreateNode(0, ports.Node{Name: scene.NameNext, Kind: ports.KindControl, Bounds: bounds})

	rp := effects.NewRipple(s, m, 0)
	id := rp.Spawn(control, bounds, ports.Point{X: 13, Y: 20})
	require.NotZero(t, id)

	n, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, ports.KindRipple, n.Kind)
	assert.Equal(t, 8, n.Bounds.W, "size is the larger side of the control")
	assert.Equal(t, -1, n.Bounds.X)
	assert.Equal(t, -4, n.Bounds.Y)
	assert.InDelta(t, 0.6, n.Opacity, 1e-9)
	assert.Equal(t, control, n.Parent)

	m.Advance(599 * time.Millisecond)
	_, ok = s.Get(id)
	assert.True(t, ok)

	m.Advance(time.Millisecond)
	_, ok = s.Get(id)
	assert.False(t, ok, "ripple removed after 600ms")
}

func TestRipple_UnknownControl(t *testing.T) {
	s := scene.New()
	m := clock.NewManual(epoch)
	rp := effects.NewRipple(s, m, 0)
	assert.Zero(t, rp.Spawn(404, ports.Rect{W: 2, H: 2}, ports.Point{}))
	assert.Zero(t, m.Pending())
}

func TestGlitch_ScramblesAndRestores(t *testing.T) {
	s := scene.New()
	m := clock.NewManual(epoch)
	id := s.CreateNode(0, ports.Node{Name: scene.NameCounter, Text: "20 / 20"})

	g := effects.NewGlitch(s, m, fixedRand{f: 0, n: 0}, effects.DefaultGlitchConfig())
	g.Apply(id, "20 / 20")
	assert.True(t, g.Active(id))

	m.Advance(50 * time.Millisecond)
	n, _ := s.Get(id)
	assert.Equal(t, "!!!!!!!", n.Text, "probability draw below p scrambles every rune")

	m.Advance(950 * time.Millisecond)
	n, _ = s.Get(id)
	assert.Equal(t, "20 / 20", n.Text)
	assert.False(t, g.Active(id))
	assert.Zero(t, m.Pending())
}

func TestGlitch_ReapplyKeepsOriginal(t *testing.T) {
	s := scene.New()
	m := clock.NewManual(epoch)
	id := s.CreateNode(0, ports.Node{Text: "1 / 3"})
	g := effects.NewGlitch(s, m, fixedRand{f: 0}, effects.DefaultGlitchConfig())

	g.Apply(id, "1 / 3")
	m.Advance(100 * time.Millisecond)
	n, _ := s.Get(id)
	g.Apply(id, n.Text)

	m.Advance(time.Second)
	n, _ = s.Get(id)
	assert.Equal(t, "1 / 3", n.Text)
}

func TestGlitch_Cancel(t *testing.T) {
	s := scene.New()
	m := clock.NewManual(epoch)
	id := s.CreateNode(0, ports.Node{Text: "1 / 3"})
	g := effects.NewGlitch(s, m, fixedRand{f: 0}, effects.DefaultGlitchConfig())

	g.Apply(id, "1 / 3")
	m.Advance(50 * time.Millisecond)
	assert.True(t, g.Cancel(id))
	s.SetText(id, "2 / 3")

	m.Advance(2 * time.Second)
	n, _ := s.Get(id)
	assert.Equal(t, "2 / 3", n.Text, "a cancelled glitch never restores stale text")
	assert.False(t, g.Cancel(id))
}

func TestScramble(t *testing.T) {
	glyphs := []rune(effects.GlitchRunes)
	assert.Equal(t, "abc", effects.Scramble(fixedRand{f: 0.5}, "abc", glyphs, 0.1))
	assert.Equal(t, "<<<", effects.Scramble(fixedRand{f: 0, n: 1}, "abc", glyphs, 0.1))
	assert.Equal(t, "abc", effects.Scramble(fixedRand{f: 0}, "abc", nil, 1))
}

func TestTypewriter_Type(t *testing.T) {
	s := scene.New()
	m := clock.NewManual(epoch)
	id := s.CreateNode(0, ports.Node{Text: "Matrix"})
	tw := effects.NewTypewriter(s, m, 0)

	tw.Type(id, "Matrix")
	n, _ := s.Get(id)
	assert.Empty(t, n.Text)
	assert.True(t, tw.Typing(id))

	m.Advance(150 * time.Millisecond)
	n, _ = s.Get(id)
	assert.Equal(t, "Mat", n.Text)

	m.Advance(time.Second)
	n, _ = s.Get(id)
	assert.Equal(t, "Matrix", n.Text)
	assert.False(t, tw.Typing(id))
	assert.Zero(t, m.Pending())
}

func TestTypewriter_Restart(t *testing.T) {
	s := scene.New()
	m := clock.NewManual(epoch)
	id := s.CreateNode(0, ports.Node{})
	tw := effects.NewTypewriter(s, m, 0)

	tw.Type(id, "ウェイク")
	m.Advance(100 * time.Millisecond)
	tw.Type(id, "ウェイク")
	n, _ := s.Get(id)
	assert.Empty(t, n.Text)

	m.Advance(50 * time.Millisecond)
	n, _ = s.Get(id)
	assert.Equal(t, "ウ", n.Text, "runes, not bytes")

	assert.True(t, tw.Cancel(id))
	m.Advance(time.Second)
	n, _ = s.Get(id)
	assert.Equal(t, "ウ", n.Text)
}

func TestHighlight(t *testing.T) {
	spans := effects.Highlight("def f(self):\n    return selfie if x else y")

	var keywords []string
	for _, sp := range spans {
		if sp.Keyword {
			keywords = append(keywords, sp.Text)
		}
	}
	assert.Equal(t, []string{"def", "self", "return", "if", "else"}, keywords)

	var joined string
	for _, sp := range spans {
		joined += sp.Text
	}
	assert.Equal(t, "def f(self):\n    return selfie if x else y", joined)
	assert.Equal(t, []effects.Span{{Text: "x := 1"}}, effects.Highlight("x := 1"))
	assert.Nil(t, effects.Highlight(""))
}

func TestHover_Move(t *testing.T) {
	s := scene.New()
	prev := s.CreateNode(0, ports.Node{Name: scene.NamePrev})
	next := s.CreateNode(0, ports.Node{Name: scene.NameNext})
	h := effects.NewHover(s)

	h.Move(prev)
	p, _ := s.Get(prev)
	assert.True(t, p.Highlight)

	h.Move(next)
	p, _ = s.Get(prev)
	nx, _ := s.Get(next)
	assert.False(t, p.Highlight)
	assert.True(t, nx.Highlight)
	assert.Equal(t, next, h.Current())

	h.Move(0)
	nx, _ = s.Get(next)
	assert.False(t, nx.Highlight)
	assert.Zero(t, h.Current())
}
