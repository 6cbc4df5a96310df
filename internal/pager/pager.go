// Package pager implements the per-session paging and pause modes.
//
// While paging, keystrokes scroll the session's scrollback instead of reaching
// the running program. Pause mode additionally holds back output that would
// scroll past the pause limit until the reader advances.
package pager

import (
	"fmt"
	"math"

	"github.com/Gaurav-Gosain/dtmux/internal/keys"
)

// Mode is the pager state of a session.
type Mode int

const (
	// Normal passes keys to the program.
	Normal Mode = iota
	// Paging scrolls on keys until explicitly exited.
	Paging
	// Paused is Paging plus throttled output.
	Paused
)

func (m Mode) String() string {
	switch m {
	case Paging:
		return "paging"
	case Paused:
		return "paused"
	default:
		return "normal"
	}
}

// DefaultExitKeys leave paging mode.
var DefaultExitKeys = []string{"ctrl+shift+p", "q"}

// Listener receives the controller's side effects. The output side implements
// PauseContinue by releasing held output up to limit.
type Listener interface {
	StatusLineChanged(text string)
	ScrollOffsetChanged(offset int)
	PauseContinue(limit int)
}

// Cursor describes where the program's cursor is, as reported by the renderer.
type Cursor struct {
	Line         int // zero-based row of the cursor
	RegionBottom int // one past the last row of the scrolling region
	Rows         int // screen rows
}

// OnLastLine reports whether the cursor is on the last row of a scrolling
// region that spans to the bottom of the screen.
func (c Cursor) OnLastLine() bool {
	return c.RegionBottom == c.Rows && c.Line == c.RegionBottom-1
}

// Controller owns one session's pager state.
type Controller struct {
	mode                Mode
	arg                 NumericArgument
	autoPaging          bool
	temporaryAutoPaging bool
	scroll              *ScrollModel
	listener            Listener
	exitKeys            map[string]bool
	status              string
	notice              bool // status holds a one-shot message shown in Normal mode
}

// Options configures a Controller.
type Options struct {
	AutoPaging bool
	ExitKeys   []string // canonical key strings; DefaultExitKeys when empty
}

// New returns a controller in Normal mode driving scroll.
func New(scroll *ScrollModel, listener Listener, opts Options) *Controller {
	c := &Controller{
		scroll:     scroll,
		listener:   listener,
		autoPaging: opts.AutoPaging,
	}
	c.SetExitKeys(opts.ExitKeys)
	return c
}

// SetExitKeys replaces the keys that leave paging mode.
func (c *Controller) SetExitKeys(exitKeys []string) {
	if len(exitKeys) == 0 {
		exitKeys = DefaultExitKeys
	}
	c.exitKeys = make(map[string]bool, len(exitKeys))
	for _, k := range exitKeys {
		c.exitKeys[keys.Canonical(k)] = true
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Active reports whether the controller is intercepting keys.
func (c *Controller) Active() bool { return c.mode != Normal }

// AutoPaging reports the sticky auto paging toggle.
func (c *Controller) AutoPaging() bool { return c.autoPaging }

// TemporaryAutoPaging reports the one-shot auto paging flag.
func (c *Controller) TemporaryAutoPaging() bool { return c.temporaryAutoPaging }

// Scroll returns the scroll model this controller drives.
func (c *Controller) Scroll() *ScrollModel { return c.scroll }

// Argument returns the pending numeric argument text.
func (c *Controller) Argument() string { return c.arg.String() }

// Status returns the current status line. In Normal mode it is empty apart
// from a notice that lasts until the next key.
func (c *Controller) Status() string { return c.status }

// IsExitKey reports whether ev leaves paging mode.
func (c *Controller) IsExitKey(ev keys.Event) bool {
	return c.exitKeys[ev.String()]
}

// Enter switches to Paused (pause=true) or Paging.
func (c *Controller) Enter(pause bool) {
	c.arg.Clear()
	c.temporaryAutoPaging = false
	if pause {
		c.mode = Paused
	} else {
		c.mode = Paging
	}
	c.updateStatus()
}

// Exit returns to Normal mode and resets the pause limit.
func (c *Controller) Exit() {
	c.arg.Clear()
	c.mode = Normal
	c.scroll.ResetPauseLimit()
	c.updateStatus()
}

// Toggle leaves paging (releasing held output first) or enters Paused.
func (c *Controller) Toggle() {
	if c.Active() {
		c.temporaryAutoPaging = false
		c.Continue()
		c.Exit()
		return
	}
	c.Enter(true)
}

// ToggleAutoPaging flips the sticky auto paging flag.
func (c *Controller) ToggleAutoPaging() {
	c.autoPaging = !c.autoPaging
	state := "off"
	if c.autoPaging {
		state = "on"
	}
	c.setStatus("PAGER: auto paging mode " + state)
	c.notice = c.mode == Normal
}

// ClearNotice drops a Normal mode notice from the status line.
func (c *Controller) ClearNotice() {
	if c.notice {
		c.updateStatus()
	}
}

// HandleKey processes a key while paging. It returns false in Normal mode and
// for keys that must still reach the program (Ctrl-C).
func (c *Controller) HandleKey(ev keys.Event) bool {
	if !c.Active() {
		return false
	}
	if !ev.Down || ev.IsModifier() {
		return true
	}
	if c.IsExitKey(ev) {
		c.temporaryAutoPaging = false
		c.Continue()
		c.Exit()
		return true
	}

	paused := c.mode == Paused
	switch {
	case ev.Code == keys.KeyEnter:
		c.temporaryAutoPaging = paused
		c.PageLine(c.arg.Take(1))
	case ev.Code == keys.KeyPgUp:
		c.PagePage(-c.arg.Take(1))
	case ev.Code == keys.KeySpace && !ev.Ctrl() && !ev.Alt():
		c.temporaryAutoPaging = paused
		c.PagePage(c.arg.Take(1))
	case ev.Code == keys.KeyPgDown:
		c.PagePage(c.arg.Take(1))
	case ev.Code == keys.KeyHome:
		c.clearArgument()
		c.PageTop()
	case ev.Code == keys.KeyEnd:
		c.clearArgument()
		c.PageBottom()
	case ev.Code == keys.KeyDown:
		c.clearArgument()
		c.temporaryAutoPaging = paused
		c.PageLine(1)
	case ev.Code == keys.KeyUp:
		c.clearArgument()
		c.PageLine(-1)
	case ev.Ctrl() && ev.Is('c'):
		c.clearArgument()
		c.Continue()
		return false
	case ev.Code == 'P' && !ev.Ctrl() && !ev.Alt():
		old := c.mode
		if old == Paused {
			c.Continue()
		}
		c.Enter(old == Paging)
	case (ev.Code == 'p' || ev.Code == '%') && !ev.Ctrl() && !ev.Alt():
		c.PageScrollAbsolute(c.arg.Take(50))
	case ev.Code == 'A' && !ev.Ctrl() && !ev.Alt():
		c.clearArgument()
		c.ToggleAutoPaging()
	case !ev.Ctrl() && !ev.Alt() && c.arg.Append(ev.Code):
		c.updateStatus()
	}
	return true
}

// PageLine scrolls by count text lines.
func (c *Controller) PageLine(count float64) {
	c.pageScroll(round(count * float64(c.scroll.LineHeight())))
}

// PagePage scrolls by count pages, one page being the viewport less a line.
func (c *Controller) PagePage(count float64) {
	page := c.scroll.ViewportHeight() - c.scroll.LineHeight()
	c.pageScroll(round(count * float64(max(page, c.scroll.LineHeight()))))
}

// PageTop jumps to the start of the content.
func (c *Controller) PageTop() {
	c.scroll.Top()
	c.notifyOffset()
}

// PageBottom jumps to the end of the content.
func (c *Controller) PageBottom() {
	c.scroll.Bottom()
	c.notifyOffset()
}

// PageScrollAbsolute jumps to pct percent of the content.
func (c *Controller) PageScrollAbsolute(pct float64) {
	c.scroll.ScrollAbsolute(pct)
	c.notifyOffset()
}

// Continue lets held output flow again, up to the pause limit. It does
// nothing unless paused.
func (c *Controller) Continue() {
	if c.mode != Paused {
		return
	}
	if c.listener != nil {
		c.listener.PauseContinue(c.scroll.PauseLimit())
	}
}

// PauseNeeded is the gate the renderer consults before output advances the
// view: true when pausing is in effect, the next line would pass the pause
// limit and the cursor is at the bottom of a full-screen scrolling region.
func (c *Controller) PauseNeeded(cur Cursor) bool {
	if c.mode == Normal && !c.autoPaging && !c.temporaryAutoPaging {
		return false
	}
	return c.scroll.ContentHeight()+c.scroll.LineHeight() > c.scroll.PauseLimit() &&
		cur.OnLastLine()
}

// OutputBlocked is called by the renderer when PauseNeeded held output back.
// Outside paging (auto paging) it enters Paused so the reader can advance.
func (c *Controller) OutputBlocked() {
	if c.mode == Normal {
		c.Enter(true)
	}
}

func (c *Controller) pageScroll(delta int) {
	extended := c.scroll.Scroll(delta)
	c.notifyOffset()
	if extended {
		c.Continue()
	} else {
		c.temporaryAutoPaging = false
	}
}

func (c *Controller) clearArgument() {
	if c.arg.Clear() {
		c.updateStatus()
	}
}

func (c *Controller) notifyOffset() {
	if c.listener != nil {
		c.listener.ScrollOffsetChanged(c.scroll.Offset())
	}
	// Take() clears the argument silently; refresh the status once per scroll.
	c.updateStatus()
}

func (c *Controller) updateStatus() {
	c.notice = false
	c.setStatus(c.modeInfo())
}

func (c *Controller) setStatus(text string) {
	if text == c.status {
		return
	}
	c.status = text
	if c.listener != nil {
		c.listener.StatusLineChanged(text)
	}
}

func (c *Controller) modeInfo() string {
	var prefix string
	switch c.mode {
	case Paging:
		prefix = "PAGER"
	case Paused:
		prefix = "PAUSED"
	default:
		return ""
	}
	if arg, ok := c.arg.Pending(); ok {
		return fmt.Sprintf("%s: numeric argument: %s", prefix, arg)
	}
	return prefix + ": type SPACE for more; Ctrl-Shift-P to exit paging"
}

func round(f float64) int {
	return int(math.Round(f))
}
