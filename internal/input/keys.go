// Package input translates host input into presenter commands.
//
// It knows nothing about the terminal library: the view maps its own key events
// to Key values and hands them to a Keymap.
package input

import (
	"strconv"
	"strings"
)

// Key is a host-neutral key name.
type Key string

const (
	KeyArrowRight Key = "ArrowRight"
	KeyArrowLeft  Key = "ArrowLeft"
	KeySpace      Key = " "
	KeyPageDown   Key = "PageDown"
	KeyPageUp     Key = "PageUp"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
	KeyBackspace  Key = "Backspace"
	KeyCtrlC      Key = "Ctrl+C"
)

// Command is what a key asks the presenter to do.
type Command int

const (
	CommandNone Command = iota
	CommandAdvance
	CommandRetreat
	CommandFirst
	CommandLast
	CommandJump
	CommandToggleAudio
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandAdvance:
		return "advance"
	case CommandRetreat:
		return "retreat"
	case CommandFirst:
		return "first"
	case CommandLast:
		return "last"
	case CommandJump:
		return "jump"
	case CommandToggleAudio:
		return "toggle_audio"
	case CommandQuit:
		return "quit"
	default:
		return "none"
	}
}

// Action is a resolved command. Target is set for CommandJump.
type Action struct {
	Command Command
	Target  int
}

// maxDigits bounds the typed slide number.
const maxDigits = 4

// Keymap resolves keys to actions. Digits accumulate until Enter jumps to the typed number.
type Keymap struct {
	digits strings.Builder
}

// Resolve maps key to an action. The boolean is false for unrecognized keys,
// which the host should leave alone.
func (k *Keymap) Resolve(key Key) (Action, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		if k.digits.Len() < maxDigits {
			k.digits.WriteByte(key[0])
		}
		return Action{}, true
	}

	switch key {
	case KeyEnter:
		if k.digits.Len() == 0 {
			return Action{}, false
		}
		n, _ := strconv.Atoi(k.digits.String())
		k.digits.Reset()
		return Action{Command: CommandJump, Target: n}, true
	case KeyBackspace:
		if k.digits.Len() == 0 {
			return Action{}, false
		}
		typed := k.digits.String()
		k.digits.Reset()
		k.digits.WriteString(typed[:len(typed)-1])
		return Action{}, true
	}

	k.digits.Reset()
	switch key {
	case KeyArrowRight, KeySpace, KeyPageDown:
		return Action{Command: CommandAdvance}, true
	case KeyArrowLeft, KeyPageUp:
		return Action{Command: CommandRetreat}, true
	case KeyHome:
		return Action{Command: CommandFirst}, true
	case KeyEnd:
		return Action{Command: CommandLast}, true
	case "m", "M":
		return Action{Command: CommandToggleAudio}, true
	case "q", "Q", KeyEscape, KeyCtrlC:
		return Action{Command: CommandQuit}, true
	}
	return Action{}, false
}

// Pending returns the digits typed so far.
func (k *Keymap) Pending() string {
	return k.digits.String()
}
