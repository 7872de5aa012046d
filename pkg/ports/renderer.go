package ports

import (
	"time"
)

// NodeID identifies a node in the visual tree. The zero value means "no node".
type NodeID int

// NodeKind is the structural role of a node.
type NodeKind string

const (
	KindRoot    NodeKind = "root"
	KindLayer   NodeKind = "layer"
	KindSlide   NodeKind = "slide"
	KindBlock   NodeKind = "block"
	KindText    NodeKind = "text"
	KindControl NodeKind = "control"
	KindColumn  NodeKind = "column"
	KindGlyph   NodeKind = "glyph"
	KindRipple  NodeKind = "ripple"
)

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Offset is a translation in cells applied when drawing a node.
type Offset struct {
	X, Y int
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Empty reports whether r covers no cell.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Union returns the smallest rectangle covering r and o. Empty rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Motion describes a time-based animation that the view interpolates on its own.
// The core only decides when a node with a Motion is created and removed.
type Motion struct {
	Start    time.Time
	Delay    time.Duration
	Duration time.Duration
}

// Progress returns the animation progress in [0, 1] and whether it has started.
func (m Motion) Progress(now time.Time) (float64, bool) {
	elapsed := now.Sub(m.Start) - m.Delay
	if elapsed < 0 {
		return 0, false
	}
	if m.Duration <= 0 || elapsed >= m.Duration {
		return 1, true
	}
	return float64(elapsed) / float64(m.Duration), true
}

// Node describes a visual node when it is created.
type Node struct {
	// Name registers the node for Lookup. Empty names are not registered.
	Name string
	Kind NodeKind

	// Role refines Kind for styling (e.g. the block kind of a slide block).
	Role  string
	Level int
	Text  string

	// Opacity is in [0, 1]; zero is fully transparent.
	Opacity float64
	Offset  Offset
	Bounds  Rect
	Motion  *Motion
}

// Renderer is the capability the presenter, the disclosure controller and the effects
// use to mutate visual state without knowing the rendering substrate.
// Calls with unknown ids are ignored.
type Renderer interface {
	Lookup(name string) (NodeID, bool)
	CreateNode(parent NodeID, n Node) NodeID
	RemoveNode(id NodeID)
	SetOpacity(id NodeID, opacity float64)
	SetTransform(id NodeID, offset Offset)
	SetText(id NodeID, text string)
	SetEnabled(id NodeID, enabled bool)
	SetActive(id NodeID, active bool)
	SetHighlight(id NodeID, highlight bool)
}
