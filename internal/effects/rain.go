package effects

import (
	"time"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

// DefaultCharset is the glyph set of the falling rain.
const DefaultCharset = "01アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン"

// RainConfig holds the rain's design constants.
type RainConfig struct {
	// ColumnWidth is the width of one column in cells.
	ColumnWidth int

	// SpawnMin and SpawnMax bound each column's spawn interval, chosen once per column.
	SpawnMin time.Duration
	SpawnMax time.Duration

	// Lifetime is how long a glyph lives regardless of its animation.
	Lifetime time.Duration

	FallMin  time.Duration
	FallMax  time.Duration
	DelayMax time.Duration

	OpacityMin float64
	OpacityMax float64

	Charset string
}

// DefaultRainConfig returns the stock constants. Katakana glyphs are two cells wide.
func DefaultRainConfig() RainConfig {
	return RainConfig{
		ColumnWidth: 2,
		SpawnMin:    500 * time.Millisecond,
		SpawnMax:    2500 * time.Millisecond,
		Lifetime:    5 * time.Second,
		FallMin:     2 * time.Second,
		FallMax:     5 * time.Second,
		DelayMax:    2 * time.Second,
		OpacityMin:  0.2,
		OpacityMax:  1.0,
		Charset:     DefaultCharset,
	}
}

type column struct {
	node     ports.NodeID
	index    int
	interval time.Duration
	spawn    ports.Timer
}

// Rain is the falling-glyph grid. Each column owns the handle of its own spawn timer,
// so stopping the rain cancels spawns instead of polling a flag.
type Rain struct {
	r         ports.Renderer
	sched     ports.Scheduler
	rng       Rand
	container ports.NodeID
	cfg       RainConfig
	runes     []rune

	columns  []*column
	glyphs   map[ports.NodeID]ports.Timer
	spawning bool
}

// NewRain creates a rain drawing into container. Nothing spawns until Rebuild and Start.
func NewRain(r ports.Renderer, sched ports.Scheduler, rng Rand, container ports.NodeID, cfg RainConfig) *Rain {
	runes := []rune(cfg.Charset)
	if len(runes) == 0 {
		runes = []rune(DefaultCharset)
	}
	return &Rain{
		r:         r,
		sched:     sched,
		rng:       rng,
		container: container,
		cfg:       cfg,
		runes:     runes,
		glyphs:    make(map[ports.NodeID]ports.Timer),
	}
}

// ColumnCount returns floor(width / ColumnWidth).
func (rn *Rain) ColumnCount(width int) int {
	if rn.cfg.ColumnWidth <= 0 || width <= 0 {
		return 0
	}
	return width / rn.cfg.ColumnWidth
}

// Rebuild discards every column, glyph and timer and lays out a new grid for width.
// Spawning resumes on the new grid if the rain was spawning.
func (rn *Rain) Rebuild(width int) {
	rn.discard()

	n := rn.ColumnCount(width)
	rn.columns = make([]*column, 0, n)
	for i := 0; i < n; i++ {
		node := rn.r.CreateNode(rn.container, ports.Node{
			Kind:    ports.KindColumn,
			Opacity: 1,
			Bounds:  ports.Rect{X: i * rn.cfg.ColumnWidth, W: rn.cfg.ColumnWidth},
		})
		col := &column{
			node:     node,
			index:    i,
			interval: between(rn.rng, rn.cfg.SpawnMin, rn.cfg.SpawnMax),
		}
		rn.columns = append(rn.columns, col)
		if rn.spawning {
			rn.startColumn(col)
		}
	}
}

// Start begins spawning on every column.
func (rn *Rain) Start() {
	rn.spawning = true
	for _, col := range rn.columns {
		rn.startColumn(col)
	}
}

// Stop cancels every column's spawn timer. Glyphs in flight live out their lifetime.
func (rn *Rain) Stop() {
	rn.spawning = false
	for _, col := range rn.columns {
		if col.spawn != nil {
			col.spawn.Stop()
			col.spawn = nil
		}
	}
}

// Clear removes every glyph in flight without touching the columns.
func (rn *Rain) Clear() {
	for id, t := range rn.glyphs {
		t.Stop()
		rn.r.RemoveNode(id)
	}
	rn.glyphs = make(map[ports.NodeID]ports.Timer)
}

// Spawning reports whether columns are spawning.
func (rn *Rain) Spawning() bool {
	return rn.spawning
}

// Columns returns the number of columns in the grid.
func (rn *Rain) Columns() int {
	return len(rn.columns)
}

// Glyphs returns the number of glyphs in flight.
func (rn *Rain) Glyphs() int {
	return len(rn.glyphs)
}

func (rn *Rain) startColumn(col *column) {
	if col.spawn != nil {
		return
	}
	col.spawn = rn.sched.Every(col.interval, func() {
		rn.spawnGlyph(col)
	})
}

func (rn *Rain) spawnGlyph(col *column) {
	glyph := rn.runes[rn.rng.IntN(len(rn.runes))]
	id := rn.r.CreateNode(col.node, ports.Node{
		Kind:    ports.KindGlyph,
		Text:    string(glyph),
		Opacity: betweenF(rn.rng, rn.cfg.OpacityMin, rn.cfg.OpacityMax),
		Bounds:  ports.Rect{X: col.index * rn.cfg.ColumnWidth, W: rn.cfg.ColumnWidth},
		Motion: &ports.Motion{
			Start:    rn.sched.Now(),
			Delay:    between(rn.rng, 0, rn.cfg.DelayMax),
			Duration: between(rn.rng, rn.cfg.FallMin, rn.cfg.FallMax),
		},
	})
	if id == 0 {
		return
	}
	rn.glyphs[id] = rn.sched.AfterFunc(rn.cfg.Lifetime, func() {
		delete(rn.glyphs, id)
		rn.r.RemoveNode(id)
	})
}

func (rn *Rain) discard() {
	for _, col := range rn.columns {
		if col.spawn != nil {
			col.spawn.Stop()
		}
	}
	for _, t := range rn.glyphs {
		t.Stop()
	}
	for _, col := range rn.columns {
		rn.r.RemoveNode(col.node)
	}
	rn.columns = nil
	rn.glyphs = make(map[ports.NodeID]ports.Timer)
}
