package tui_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/matrixdeck/internal/presentation/tui"
	"github.com/aretw0/matrixdeck/internal/scene"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	screenW = 60
	screenH = 20
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(screenW, screenH)
	t.Cleanup(screen.Fini)
	return screen
}

func testDeck(t *testing.T) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(domain.Meta{Title: "demo"}, []*domain.Slide{
		domain.NewSlide("Welcome", []*domain.Block{
			{Kind: domain.BlockHeading, Level: 1, Text: "Welcome"},
			{Kind: domain.BlockParagraph, Text: "intro"},
		}),
		domain.NewSlide("Code", []*domain.Block{
			{Kind: domain.BlockHeading, Level: 2, Text: "Code"},
			{Kind: domain.BlockItem, Level: 1, Text: "first point"},
			{Kind: domain.BlockCode, Language: "python", Text: "def main():\n    return 1"},
		}),
	})
	require.NoError(t, err)
	return deck
}

type fixture struct {
	screen tcell.SimulationScreen
	scene  *scene.Scene
	view   *tui.View
	theme  tui.Theme
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		screen: newScreen(t),
		scene:  scene.New(),
		theme:  tui.DefaultTheme(),
	}
	scene.Mount(f.scene, testDeck(t), scene.FullChrome())
	f.view = tui.NewView(f.screen, f.scene, f.theme)
	return f
}

func (f *fixture) id(t *testing.T, name string) ports.NodeID {
	t.Helper()
	id, ok := f.scene.Lookup(name)
	require.True(t, ok, "node %q", name)
	return id
}

func (f *fixture) show(t *testing.T, position int) {
	t.Helper()
	for p := 1; p <= 2; p++ {
		f.scene.SetActive(f.id(t, scene.SlideName(p)), p == position)
	}
	f.scene.SetText(f.id(t, scene.NameCounter), domain.FormatCounter(position, 2))
	f.scene.SetEnabled(f.id(t, scene.NamePrev), position > 1)
	f.scene.SetEnabled(f.id(t, scene.NameNext), position < 2)
}

func (f *fixture) revealAll(t *testing.T, position, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := f.id(t, scene.RevealName(position, i))
		f.scene.SetOpacity(id, 1)
		f.scene.SetTransform(id, ports.Offset{})
	}
}

func (f *fixture) row(y int) string {
	var sb strings.Builder
	for x := 0; x < screenW; x++ {
		r, _, _, _ := f.screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (f *fixture) screenText() string {
	rows := make([]string, screenH)
	for y := range rows {
		rows[y] = f.row(y)
	}
	return strings.Join(rows, "\n")
}

func (f *fixture) find(t *testing.T, s string) (int, int) {
	t.Helper()
	for y := 0; y < screenH; y++ {
		if x := strings.Index(f.row(y), s); x >= 0 {
			return x, y
		}
	}
	t.Fatalf("%q not on screen:\n%s", s, f.screenText())
	return 0, 0
}

func TestView_TitleSlideCentered(t *testing.T) {
	f := newFixture(t)
	f.show(t, 1)
	f.view.Draw(epoch)

	x, y := f.find(t, "WELCOME")
	assert.Equal(t, (screenW-len("WELCOME"))/2, x)
	assert.Greater(t, y, 2, "title slide is centred vertically")

	assert.NotContains(t, f.screenText(), "intro", "reveal elements start hidden")

	counter := f.row(screenH - 1)
	assert.Contains(t, counter, "1 / 2")
	assert.Contains(t, counter, scene.LabelPrev)
	assert.Contains(t, counter, scene.LabelNext)
}

func TestView_RevealedBlocksAndCode(t *testing.T) {
	f := newFixture(t)
	f.show(t, 2)
	f.view.Draw(epoch)
	assert.NotContains(t, f.screenText(), "first point")
	f.find(t, "Code")

	f.revealAll(t, 2, 2)
	f.view.Draw(epoch)

	x, _ := f.find(t, "• first point")
	assert.Equal(t, 4, x)

	kx, ky := f.find(t, "def main")
	_, _, style, _ := f.screen.GetContent(kx, ky)
	fg, _, _ := style.Decompose()
	assert.Equal(t, f.theme.Keyword, fg, "keywords are painted in the keyword color")

	_, _, style, _ = f.screen.GetContent(kx+4, ky)
	fg, _, _ = style.Decompose()
	assert.Equal(t, f.theme.Accent, fg)
}

func TestView_DisabledControl(t *testing.T) {
	f := newFixture(t)
	f.show(t, 1)
	f.view.Draw(epoch)

	x, y := f.find(t, scene.LabelPrev)
	_, _, style, _ := f.screen.GetContent(x, y)
	fg, _, _ := style.Decompose()
	assert.Equal(t, f.theme.Disabled, fg)

	x, y = f.find(t, scene.LabelNext)
	_, _, style, _ = f.screen.GetContent(x, y)
	fg, _, _ = style.Decompose()
	assert.Equal(t, f.theme.Heading, fg)
}

func TestView_HitTest(t *testing.T) {
	f := newFixture(t)
	f.show(t, 1)
	f.view.Draw(epoch)

	x, y := f.find(t, "NEXT")
	id, ok := f.view.HitTest(ports.Point{X: x + 1, Y: y})
	require.True(t, ok)
	assert.Equal(t, f.id(t, scene.NameNext), id)

	_, ok = f.view.HitTest(ports.Point{X: screenW / 2, Y: 0})
	assert.False(t, ok)

	r, ok := f.view.Bounds(id)
	require.True(t, ok)
	assert.Equal(t, y, r.Y)
	assert.Equal(t, 1, r.H)
}

func TestView_HoverReverses(t *testing.T) {
	f := newFixture(t)
	f.show(t, 1)
	f.scene.SetHighlight(f.id(t, scene.NameNext), true)
	f.view.Draw(epoch)

	x, y := f.find(t, "NEXT")
	_, _, style, _ := f.screen.GetContent(x, y)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse)
}

func TestView_RainGlyph(t *testing.T) {
	f := newFixture(t)
	f.show(t, 1)
	rain := f.id(t, scene.NameRain)
	f.scene.SetOpacity(rain, 1)
	col := f.scene.CreateNode(rain, ports.Node{Kind: ports.KindColumn, Opacity: 1, Bounds: ports.Rect{X: 10, W: 2}})
	f.scene.CreateNode(col, ports.Node{
		Kind:    ports.KindGlyph,
		Text:    "ア",
		Opacity: 1,
		Bounds:  ports.Rect{X: 10, W: 2},
		Motion:  &ports.Motion{Start: epoch, Duration: 2 * time.Second},
	})

	f.view.Draw(epoch.Add(time.Second))
	r, _, _, _ := f.screen.GetContent(10, screenH/2)
	assert.Equal(t, 'ア', r)

	f.scene.SetOpacity(rain, 0)
	f.view.Draw(epoch.Add(time.Second))
	r, _, _, _ = f.screen.GetContent(10, screenH/2)
	assert.NotEqual(t, 'ア', r, "a transparent rain layer draws nothing")
}

func TestView_RippleTintsControl(t *testing.T) {
	f := newFixture(t)
	f.show(t, 1)
	f.view.Draw(epoch)

	next := f.id(t, scene.NameNext)
	bounds, ok := f.view.Bounds(next)
	require.True(t, ok)
	f.scene.CreateNode(next, ports.Node{
		Kind:    ports.KindRipple,
		Opacity: 0.6,
		Bounds:  ports.Rect{X: 0, Y: 0, W: bounds.W, H: bounds.W},
		Motion:  &ports.Motion{Start: epoch, Duration: 600 * time.Millisecond},
	})

	f.view.Draw(epoch.Add(100 * time.Millisecond))
	_, _, style, _ := f.screen.GetContent(bounds.X+bounds.W/2, bounds.Y)
	_, bg, _ := style.Decompose()
	assert.NotEqual(t, f.theme.Background, bg)
}

func TestThemeByName(t *testing.T) {
	th, ok := tui.ThemeByName(" Amber ")
	assert.True(t, ok)
	assert.Equal(t, "amber", th.Name)

	th, ok = tui.ThemeByName("nope")
	assert.False(t, ok)
	assert.Equal(t, tui.DefaultTheme(), th)
}

func TestView_RevealedBlockHitTest(t *testing.T) {
	f := newFixture(t)
	f.show(t, 2)
	f.view.Draw(epoch)

	item := f.id(t, scene.RevealName(2, 0))
	_, ok := f.view.Bounds(item)
	assert.False(t, ok, "a hidden block cannot be hovered")

	f.revealAll(t, 2, 2)
	f.view.Draw(epoch)

	x, y := f.find(t, "• first point")
	id, ok := f.view.HitTest(ports.Point{X: x + 3, Y: y})
	require.True(t, ok)
	assert.Equal(t, item, id)

	r, ok := f.view.Bounds(item)
	require.True(t, ok)
	assert.Equal(t, ports.Rect{X: x, Y: y, W: len("  first point"), H: 1}, r)

	code := f.id(t, scene.RevealName(2, 1))
	kx, ky := f.find(t, "def main")
	id, ok = f.view.HitTest(ports.Point{X: kx, Y: ky + 1})
	require.True(t, ok, "multi-line blocks are hit on every row")
	assert.Equal(t, code, id)
}

func TestView_HoveredBlockGlows(t *testing.T) {
	f := newFixture(t)
	f.show(t, 2)
	f.revealAll(t, 2, 2)
	f.view.Draw(epoch)

	x, y := f.find(t, "first point")
	_, _, style, _ := f.screen.GetContent(x, y)
	_, bg, attrs := style.Decompose()
	assert.Zero(t, attrs&tcell.AttrBold)
	assert.Equal(t, f.theme.Background, bg)

	f.scene.SetHighlight(f.id(t, scene.RevealName(2, 0)), true)
	f.view.Draw(epoch)

	_, _, style, _ = f.screen.GetContent(x, y)
	_, bg, attrs = style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)
	assert.NotEqual(t, f.theme.Background, bg)
}
