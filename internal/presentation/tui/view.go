package tui

import (
	"strings"
	"time"

	"github.com/aretw0/matrixdeck/internal/effects"
	"github.com/aretw0/matrixdeck/internal/scene"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	marginX    = 4
	marginTop  = 2
	chromeRows = 2
	trailLen   = 4
	bullet     = "• "
	quoteBar   = "│ "

	// glowOpacity is how strongly the ripple color tints a hovered block.
	glowOpacity = 0.25
)

// View paints a scene onto a tcell screen. It only reads the scene, and like
// the scene it must be used from the event loop.
type View struct {
	screen tcell.Screen
	scene  *scene.Scene
	theme  Theme
	hits   map[ports.NodeID]ports.Rect
}

// NewView creates a view of sc on screen.
func NewView(screen tcell.Screen, sc *scene.Scene, theme Theme) *View {
	return &View{
		screen: screen,
		scene:  sc,
		theme:  theme,
		hits:   make(map[ports.NodeID]ports.Rect),
	}
}

// Size returns the screen size in cells.
func (v *View) Size() (int, int) {
	return v.screen.Size()
}

// HitTest returns the control or visible slide block under p, as laid out by the last Draw.
func (v *View) HitTest(p ports.Point) (ports.NodeID, bool) {
	for id, r := range v.hits {
		if r.Contains(p) {
			return id, true
		}
	}
	return 0, false
}

// Bounds returns where the last Draw put node id.
func (v *View) Bounds(id ports.NodeID) (ports.Rect, bool) {
	r, ok := v.hits[id]
	return r, ok
}

// Draw paints a full frame for time now and shows it.
func (v *View) Draw(now time.Time) {
	w, h := v.screen.Size()
	v.screen.SetStyle(v.base())
	v.screen.Clear()
	clear(v.hits)

	v.drawRain(now, w, h)
	v.drawSlide(w, h)
	v.drawChrome(now, w, h)

	v.screen.Show()
}

func (v *View) base() tcell.Style {
	return tcell.StyleDefault.Background(v.theme.Background).Foreground(v.theme.Text)
}

func (v *View) node(name string) (*scene.Node, bool) {
	id, ok := v.scene.Lookup(name)
	if !ok {
		return nil, false
	}
	return v.scene.Get(id)
}

func (v *View) drawRain(now time.Time, w, h int) {
	layer, ok := v.node(scene.NameRain)
	if !ok || layer.Opacity <= 0 {
		return
	}
	for _, col := range v.scene.Children(layer.ID) {
		for _, g := range v.scene.Children(col.ID) {
			if g.Motion == nil || g.Text == "" {
				continue
			}
			p, started := g.Motion.Progress(now)
			if !started {
				continue
			}
			head := int(p * float64(h))
			r := []rune(g.Text)[0]
			for i := 0; i < trailLen; i++ {
				y := head - i
				if y < 0 || y >= h || g.Bounds.X >= w {
					continue
				}
				o := layer.Opacity * g.Opacity * (1 - float64(i)/trailLen)
				style := v.base().Foreground(fade(v.theme.Rain, v.theme.Background, o))
				if i == 0 {
					style = style.Bold(true)
				}
				v.screen.SetContent(g.Bounds.X, y, r, nil, style)
			}
		}
	}
}

type segment struct {
	text  string
	style tcell.Style
}

type row []segment

func (r row) width() int {
	n := 0
	for _, s := range r {
		n += runewidth.StringWidth(s.text)
	}
	return n
}

type placed struct {
	id      ports.NodeID
	rows    []row
	offset  ports.Offset
	visible bool
}

func (v *View) drawSlide(w, h int) {
	layer, ok := v.node(scene.NameSlides)
	if !ok {
		return
	}
	slides := v.scene.Children(layer.ID)
	var active *scene.Node
	title := false
	for i, s := range slides {
		if s.Active {
			active, title = s, i == 0
			break
		}
	}
	if active == nil {
		return
	}

	width := max(w-2*marginX, 1)
	height := h - marginTop - chromeRows

	var blocks []placed
	total := 0
	for _, b := range v.scene.Children(active.ID) {
		if b.Kind != ports.KindBlock {
			continue
		}
		o := layer.Opacity * active.Opacity * b.Opacity
		rows := v.blockRows(b, width, o)
		if b.Highlight && o > 0 {
			rows = v.glow(rows)
		}
		blocks = append(blocks, placed{id: b.ID, rows: rows, offset: b.Offset, visible: o > 0})
		total += len(rows) + 1
	}
	total = max(total-1, 0)

	y := marginTop
	if title && total < height {
		y += (height - total) / 2
	}
	for _, b := range blocks {
		if b.visible {
			v.drawBlock(b, y, w, h, title)
		}
		y += len(b.rows) + 1
	}
}

// drawBlock paints a visible block whose first row sits at y and records its hit rect.
func (v *View) drawBlock(b placed, y, w, h int, title bool) {
	var hit ports.Rect
	for i, r := range b.rows {
		ry := y + i + b.offset.Y
		if ry < marginTop || ry >= h-chromeRows {
			continue
		}
		x := marginX + b.offset.X
		if title {
			x = max((w-r.width())/2, 0) + b.offset.X
		}
		start := x
		for _, s := range r {
			x = v.drawText(x, ry, w, s.text, s.style)
		}
		hit = hit.Union(ports.Rect{X: start, Y: ry, W: min(x, w) - start, H: 1})
	}
	if !hit.Empty() {
		v.hits[b.id] = hit
	}
}

// glow restyles the rows of a hovered block.
func (v *View) glow(rows []row) []row {
	tint := fade(v.theme.Ripple, v.theme.Background, glowOpacity)
	out := make([]row, len(rows))
	for i, r := range rows {
		out[i] = make(row, len(r))
		for j, s := range r {
			out[i][j] = segment{text: s.text, style: s.style.Bold(true).Background(tint)}
		}
	}
	return out
}

func (v *View) blockRows(b *scene.Node, width int, opacity float64) []row {
	bg := v.theme.Background
	style := func(c tcell.Color) tcell.Style {
		return v.base().Foreground(fade(c, bg, opacity))
	}

	switch domain.BlockKind(b.Role) {
	case domain.BlockHeading:
		text := b.Text
		if b.Level <= 1 {
			text = strings.ToUpper(text)
		}
		return plainRows(wrapText(text, width), "", "", style(v.theme.Heading).Bold(true))

	case domain.BlockItem:
		indent := strings.Repeat("  ", max(b.Level-1, 0))
		lines := wrapText(b.Text, width-len(indent)-runewidth.StringWidth(bullet))
		rows := make([]row, 0, len(lines))
		for i, l := range lines {
			prefix := indent + strings.Repeat(" ", runewidth.StringWidth(bullet))
			if i == 0 {
				prefix = indent + bullet
			}
			rows = append(rows, row{
				{text: prefix, style: style(v.theme.Accent)},
				{text: l, style: style(v.theme.Text)},
			})
		}
		return rows

	case domain.BlockQuote:
		lines := wrapText(b.Text, width-runewidth.StringWidth(quoteBar))
		return plainRows(lines, quoteBar, quoteBar, style(v.theme.Accent).Italic(true))

	case domain.BlockCode:
		lines := strings.Split(strings.TrimRight(b.Text, "\n"), "\n")
		rows := make([]row, 0, len(lines))
		for _, l := range lines {
			r := row{{text: "  ", style: style(v.theme.Text)}}
			for _, sp := range effects.Highlight(l) {
				c := v.theme.Accent
				if sp.Keyword {
					c = v.theme.Keyword
				}
				r = append(r, segment{text: sp.Text, style: style(c)})
			}
			rows = append(rows, r)
		}
		return rows

	default:
		return plainRows(wrapText(b.Text, width), "", "", style(v.theme.Text))
	}
}

func plainRows(lines []string, first, rest string, style tcell.Style) []row {
	rows := make([]row, 0, len(lines))
	for i, l := range lines {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		rows = append(rows, row{{text: prefix + l, style: style}})
	}
	return rows
}

// wrapText wraps on word boundaries, then hard-wraps words longer than width.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	if s == "" {
		return []string{""}
	}
	return strings.Split(wrap.String(wordwrap.String(s, width), width), "\n")
}

// drawText writes s from x on row y, clipped to the screen width, and returns the next column.
func (v *View) drawText(x, y, w int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= w {
			v.screen.SetContent(x, y, r, nil, style)
		}
		x += rw
	}
	return x
}

func (v *View) drawChrome(now time.Time, w, h int) {
	y := h - 1
	if y < 0 {
		return
	}

	if n, ok := v.node(scene.NameCounter); ok && n.Text != "" {
		x := max((w-runewidth.StringWidth(n.Text))/2, 0)
		style := v.base().Foreground(fade(v.theme.Accent, v.theme.Background, n.Opacity))
		v.drawText(x, y, w, n.Text, style)
	}

	if n, ok := v.node(scene.NamePrev); ok {
		v.drawControl(now, n, 2, y, w)
	}
	if n, ok := v.node(scene.NameNext); ok {
		x := max(w-2-runewidth.StringWidth(n.Text), 0)
		v.drawControl(now, n, x, y, w)
	}

	if n, ok := v.node(scene.NameStatus); ok && n.Text != "" {
		x := max(w-2-runewidth.StringWidth(n.Text), 0)
		style := v.base().Foreground(fade(v.theme.Accent, v.theme.Background, 0.7*n.Opacity))
		v.drawText(x, 0, w, n.Text, style)
	}
}

func (v *View) drawControl(now time.Time, n *scene.Node, x, y, w int) {
	c := v.theme.Heading
	if !n.Enabled {
		c = v.theme.Disabled
	}
	style := v.base().Foreground(fade(c, v.theme.Background, n.Opacity))
	if n.Highlight && n.Enabled {
		style = style.Reverse(true)
	}
	width := runewidth.StringWidth(n.Text)
	v.drawText(x, y, w, n.Text, style)
	rect := ports.Rect{X: x, Y: y, W: width, H: 1}
	v.hits[n.ID] = rect

	for _, rp := range v.scene.Children(n.ID) {
		if rp.Kind != ports.KindRipple || rp.Motion == nil {
			continue
		}
		p, started := rp.Motion.Progress(now)
		if !started {
			continue
		}
		v.drawRipple(rect, rp, p)
	}
}

// drawRipple tints the control cells within a radius that grows with progress p.
func (v *View) drawRipple(ctrl ports.Rect, rp *scene.Node, p float64) {
	cx := ctrl.X + rp.Bounds.X + rp.Bounds.W/2
	radius := int(p*float64(rp.Bounds.W)/2) + 1
	tint := fade(v.theme.Ripple, v.theme.Background, rp.Opacity*(1-p))
	for x := max(cx-radius, ctrl.X); x < min(cx+radius+1, ctrl.X+ctrl.W); x++ {
		mainc, combc, style, _ := v.screen.GetContent(x, ctrl.Y)
		v.screen.SetContent(x, ctrl.Y, mainc, combc, style.Background(tint))
	}
}
