package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme is the palette the view paints with.
type Theme struct {
	Name       string
	Background tcell.Color
	Text       tcell.Color
	Heading    tcell.Color
	Accent     tcell.Color
	Keyword    tcell.Color
	Rain       tcell.Color
	Disabled   tcell.Color
	Ripple     tcell.Color
}

var themes = map[string]Theme{
	"matrix": {
		Name:       "matrix",
		Background: tcell.NewRGBColor(0, 0, 0),
		Text:       tcell.NewRGBColor(0xb8, 0xff, 0xc8),
		Heading:    tcell.NewRGBColor(0x00, 0xff, 0x41),
		Accent:     tcell.NewRGBColor(0x00, 0xcc, 0x33),
		Keyword:    tcell.NewRGBColor(0xff, 0xd7, 0x00),
		Rain:       tcell.NewRGBColor(0x00, 0xff, 0x41),
		Disabled:   tcell.NewRGBColor(0x33, 0x55, 0x3d),
		Ripple:     tcell.NewRGBColor(0x00, 0x66, 0x22),
	},
	"amber": {
		Name:       "amber",
		Background: tcell.NewRGBColor(0x10, 0x08, 0x00),
		Text:       tcell.NewRGBColor(0xff, 0xd8, 0x9b),
		Heading:    tcell.NewRGBColor(0xff, 0xb0, 0x00),
		Accent:     tcell.NewRGBColor(0xcc, 0x88, 0x00),
		Keyword:    tcell.NewRGBColor(0xff, 0xff, 0xff),
		Rain:       tcell.NewRGBColor(0xff, 0xb0, 0x00),
		Disabled:   tcell.NewRGBColor(0x55, 0x3d, 0x1a),
		Ripple:     tcell.NewRGBColor(0x66, 0x44, 0x00),
	},
	"mono": {
		Name:       "mono",
		Background: tcell.NewRGBColor(0, 0, 0),
		Text:       tcell.NewRGBColor(0xd0, 0xd0, 0xd0),
		Heading:    tcell.NewRGBColor(0xff, 0xff, 0xff),
		Accent:     tcell.NewRGBColor(0xa0, 0xa0, 0xa0),
		Keyword:    tcell.NewRGBColor(0xff, 0xff, 0xff),
		Rain:       tcell.NewRGBColor(0x80, 0x80, 0x80),
		Disabled:   tcell.NewRGBColor(0x40, 0x40, 0x40),
		Ripple:     tcell.NewRGBColor(0x30, 0x30, 0x30),
	},
}

// DefaultTheme is the green-on-black palette.
func DefaultTheme() Theme {
	return themes["matrix"]
}

// ThemeByName returns the named theme, falling back to the default.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DefaultTheme(), false
	}
	return t, true
}

// fade blends c towards bg; opacity 1 keeps c, 0 yields bg.
func fade(c, bg tcell.Color, opacity float64) tcell.Color {
	switch {
	case opacity >= 1:
		return c
	case opacity <= 0:
		return bg
	}
	r1, g1, b1 := c.RGB()
	r0, g0, b0 := bg.RGB()
	lerp := func(a, b int32) int32 {
		return a + int32(float64(b-a)*opacity)
	}
	return tcell.NewRGBColor(lerp(r0, r1), lerp(g0, g1), lerp(b0, b1))
}
