package input

import (
	"log/slog"

	"github.com/aretw0/matrixdeck/internal/logging"
)

// Navigator is the part of the presenter that input drives.
type Navigator interface {
	Advance() bool
	Retreat() bool
	JumpTo(n int) bool
	Total() int
}

// Control identifies a clickable navigation control.
type Control int

const (
	ControlNone Control = iota
	ControlPrev
	ControlNext
)

// Dispatcher applies actions to a Navigator. It runs on the event loop.
type Dispatcher struct {
	nav    Navigator
	logger *slog.Logger

	// OnToggleAudio and OnQuit handle the commands that are not navigation.
	OnToggleAudio func()
	OnQuit        func()
}

// NewDispatcher creates a dispatcher for nav.
func NewDispatcher(nav Navigator, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{nav: nav, logger: logger}
}

// Dispatch executes a. Home and End are JumpTo(1) and JumpTo(N).
func (d *Dispatcher) Dispatch(a Action) {
	switch a.Command {
	case CommandAdvance:
		d.nav.Advance()
	case CommandRetreat:
		d.nav.Retreat()
	case CommandFirst:
		d.nav.JumpTo(1)
	case CommandLast:
		d.nav.JumpTo(d.nav.Total())
	case CommandJump:
		if !d.nav.JumpTo(a.Target) {
			d.logger.Debug("ignoring jump", "target", a.Target, "total", d.nav.Total())
		}
	case CommandToggleAudio:
		if d.OnToggleAudio != nil {
			d.OnToggleAudio()
		}
	case CommandQuit:
		if d.OnQuit != nil {
			d.OnQuit()
		}
	}
}

// Click handles a click on a control. Disabled controls ignore clicks.
func (d *Dispatcher) Click(c Control, enabled bool) {
	if !enabled {
		return
	}
	switch c {
	case ControlPrev:
		d.nav.Retreat()
	case ControlNext:
		d.nav.Advance()
	}
}
