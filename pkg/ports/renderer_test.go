package ports_test

import (
	"testing"
	"time"

	"github.com/aretw0/matrixdeck/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestMotion_Progress(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := ports.Motion{Start: start, Delay: time.Second, Duration: 2 * time.Second}

	_, started := m.Progress(start.Add(500 * time.Millisecond))
	assert.False(t, started, "still inside the start delay")

	p, started := m.Progress(start.Add(2 * time.Second))
	assert.True(t, started)
	assert.InDelta(t, 0.5, p, 1e-9)

	p, _ = m.Progress(start.Add(10 * time.Second))
	assert.Equal(t, 1.0, p)
}

func TestRect_Contains(t *testing.T) {
	r := ports.Rect{X: 2, Y: 3, W: 4, H: 1}

	assert.True(t, r.Contains(ports.Point{X: 2, Y: 3}))
	assert.True(t, r.Contains(ports.Point{X: 5, Y: 3}))
	assert.False(t, r.Contains(ports.Point{X: 6, Y: 3}))
	assert.False(t, r.Contains(ports.Point{X: 3, Y: 4}))
}

func TestRect_Union(t *testing.T) {
	a := ports.Rect{X: 4, Y: 5, W: 10, H: 1}
	b := ports.Rect{X: 6, Y: 6, W: 20, H: 1}

	assert.Equal(t, ports.Rect{X: 4, Y: 5, W: 22, H: 2}, a.Union(b))
	assert.Equal(t, a, ports.Rect{}.Union(a))
	assert.Equal(t, a, a.Union(ports.Rect{X: 50, Y: 50}))
	assert.True(t, ports.Rect{W: 3}.Empty())
}
