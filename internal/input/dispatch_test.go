package input_test

import (
	"testing"

	"github.com/aretw0/matrixdeck/internal/input"
	"github.com/stretchr/testify/assert"
)

type fakeNav struct {
	position int
	total    int
	calls    []string
}

func (n *fakeNav) Advance() bool {
	n.calls = append(n.calls, "advance")
	if n.position >= n.total {
		return false
	}
	n.position++
	return true
}

func (n *fakeNav) Retreat() bool {
	n.calls = append(n.calls, "retreat")
	if n.position <= 1 {
		return false
	}
	n.position--
	return true
}

func (n *fakeNav) JumpTo(p int) bool {
	n.calls = append(n.calls, "jump")
	if p < 1 || p > n.total {
		return false
	}
	n.position = p
	return true
}

func (n *fakeNav) Total() int { return n.total }

func TestDispatcher_Keys(t *testing.T) {
	nav := &fakeNav{position: 1, total: 20}
	d := input.NewDispatcher(nav, nil)
	var km input.Keymap

	press := func(keys ...input.Key) {
		for _, k := range keys {
			if a, ok := km.Resolve(k); ok {
				d.Dispatch(a)
			}
		}
	}

	for i := 0; i < 19; i++ {
		press(input.KeyArrowRight)
	}
	assert.Equal(t, 20, nav.position)

	press(input.KeyHome)
	assert.Equal(t, 1, nav.position)
	press(input.KeyEnd)
	assert.Equal(t, 20, nav.position)

	press("7", input.KeyEnter)
	assert.Equal(t, 7, nav.position)
	press("9", "9", input.KeyEnter)
	assert.Equal(t, 7, nav.position, "invalid jump ignored")
	press("0", input.KeyEnter)
	assert.Equal(t, 7, nav.position)
}

func TestDispatcher_AudioAndQuit(t *testing.T) {
	d := input.NewDispatcher(&fakeNav{position: 1, total: 2}, nil)
	var toggled, quit int
	d.OnToggleAudio = func() { toggled++ }
	d.OnQuit = func() { quit++ }

	d.Dispatch(input.Action{Command: input.CommandToggleAudio})
	d.Dispatch(input.Action{Command: input.CommandQuit})
	d.Dispatch(input.Action{Command: input.CommandNone})
	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, quit)
}

func TestDispatcher_Click(t *testing.T) {
	nav := &fakeNav{position: 1, total: 3}
	d := input.NewDispatcher(nav, nil)

	d.Click(input.ControlPrev, false)
	assert.Empty(t, nav.calls, "disabled control is inert")

	d.Click(input.ControlNext, true)
	d.Click(input.ControlNext, true)
	d.Click(input.ControlPrev, true)
	d.Click(input.ControlNone, true)
	assert.Equal(t, []string{"advance", "advance", "retreat"}, nav.calls)
	assert.Equal(t, 2, nav.position)
}
