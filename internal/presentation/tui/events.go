package tui

import (
	"unicode"

	"github.com/aretw0/matrixdeck/internal/input"
	"github.com/aretw0/matrixdeck/pkg/ports"
	"github.com/gdamore/tcell/v2"
)

// KeyOf maps a tcell key event to a host-neutral key name.
// Unmapped keys return false.
func KeyOf(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRight:
		return input.KeyArrowRight, true
	case tcell.KeyLeft:
		return input.KeyArrowLeft, true
	case tcell.KeyPgDn:
		return input.KeyPageDown, true
	case tcell.KeyPgUp:
		return input.KeyPageUp, true
	case tcell.KeyHome:
		return input.KeyHome, true
	case tcell.KeyEnd:
		return input.KeyEnd, true
	case tcell.KeyEnter:
		return input.KeyEnter, true
	case tcell.KeyEscape:
		return input.KeyEscape, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.KeyBackspace, true
	case tcell.KeyCtrlC:
		return input.KeyCtrlC, true
	case tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsControl(r) {
			return "", false
		}
		return input.Key(string(r)), true
	}
	return "", false
}

// Pointer is the state of a mouse event.
type Pointer struct {
	At      ports.Point
	Pressed bool
}

// PointerOf extracts the position of a mouse event and whether the primary button is down.
func PointerOf(ev *tcell.EventMouse) Pointer {
	x, y := ev.Position()
	return Pointer{
		At:      ports.Point{X: x, Y: y},
		Pressed: ev.Buttons()&tcell.Button1 != 0,
	}
}
