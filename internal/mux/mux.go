// Package mux implements the one-shot mux mode: after the mux hotkey the next
// key is read as a layout command (split, tab, move focus, close) and the
// mode ends again.
package mux

import (
	"github.com/Gaurav-Gosain/dtmux/internal/keys"
	"github.com/Gaurav-Gosain/dtmux/internal/layout"
)

// StatusText is shown on the status line while mux mode is armed.
const StatusText = "(MUX mode)"

// State of the controller.
type State int

const (
	Idle State = iota
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "idle"
}

// Target receives the layout commands.
type Target interface {
	AddSibling(at layout.PaneID, asColumn, after bool) (layout.PaneID, error)
	AddTab(at layout.PaneID) (layout.PaneID, error)
	NextPane(from layout.PaneID, forward bool) (layout.PaneID, bool)
	SetActive(pane layout.PaneID)
	ClosePane(pane layout.PaneID) error
}

// Controller is the mux mode state machine for one window.
type Controller struct {
	target Target
	state  State
	pane   layout.PaneID
}

// New returns an idle controller driving target.
func New(target Target) *Controller {
	return &Controller{target: target}
}

// Enter arms mux mode for pane.
func (c *Controller) Enter(pane layout.PaneID) {
	c.state = Armed
	c.pane = pane
}

// Exit disarms without doing anything.
func (c *Controller) Exit() {
	c.state = Idle
	c.pane = ""
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Armed() bool { return c.state == Armed }

// Pane is the pane mux mode was armed for.
func (c *Controller) Pane() layout.PaneID { return c.pane }

// Status returns the status line text, "" when idle.
func (c *Controller) Status() string {
	if c.state == Armed {
		return StatusText
	}
	return ""
}

// HandleKey dispatches ev while armed. The returned bool reports whether the
// key was consumed; every key is consumed while armed. Any key press except a
// lone modifier ends mux mode. The error is the target's, e.g.
// layout.ErrLastPane from Ctrl+W on the only pane.
func (c *Controller) HandleKey(ev keys.Event) (bool, error) {
	if c.state != Armed {
		return false, nil
	}
	if !ev.Down || ev.IsModifier() {
		return true, nil
	}

	pane := c.pane
	c.Exit()

	var err error
	switch {
	case ev.Code == keys.KeyEnter:
		_, err = c.target.AddSibling(pane, true, true)
	case ev.Code == keys.KeyEscape:
	case ev.IsArrow():
		vertical := ev.Code == keys.KeyUp || ev.Code == keys.KeyDown
		forward := ev.Code == keys.KeyDown || ev.Code == keys.KeyRight
		if ev.Ctrl() {
			_, err = c.target.AddSibling(pane, vertical, forward)
		} else if next, ok := c.target.NextPane(pane, forward); ok {
			c.target.SetActive(next)
		}
	case ev.Ctrl() && ev.Is('t'):
		_, err = c.target.AddTab(pane)
	case ev.Ctrl() && ev.Is('w'):
		err = c.target.ClosePane(pane)
	}
	return true, err
}
