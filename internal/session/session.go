package session

import (
	"github.com/Gaurav-Gosain/dtmux/internal/keys"
	"github.com/Gaurav-Gosain/dtmux/internal/layout"
	"github.com/Gaurav-Gosain/dtmux/internal/mux"
	"github.com/Gaurav-Gosain/dtmux/internal/pager"
)

// Session is the modal state of one pane: its scroll model, pager and mux
// mode.
type Session struct {
	id     layout.PaneID
	win    *Window
	scroll *pager.ScrollModel
	pager  *pager.Controller
	mux    *mux.Controller
	cols   int
	rows   int
	status string
}

func newSession(w *Window, id layout.PaneID) *Session {
	s := &Session{
		id:   id,
		win:  w,
		cols: w.opts.Cols,
		rows: w.opts.Rows,
	}
	s.scroll = pager.NewScrollModel(s.rows*w.opts.LineHeight, w.opts.LineHeight)
	s.pager = pager.New(s.scroll, pagerEvents{s}, w.opts.Pager)
	s.mux = mux.New(w)
	return s
}

// ID returns the pane id.
func (s *Session) ID() layout.PaneID { return s.id }

// Pager returns the session's pager controller.
func (s *Session) Pager() *pager.Controller { return s.pager }

// Scroll returns the session's scroll model.
func (s *Session) Scroll() *pager.ScrollModel { return s.scroll }

// MuxArmed reports whether the next key is a mux command.
func (s *Session) MuxArmed() bool { return s.mux.Armed() }

// Status is the session's status line: mux mode wins over the pager.
func (s *Session) Status() string {
	if st := s.mux.Status(); st != "" {
		return st
	}
	return s.pager.Status()
}

// Size returns the pane size in cells.
func (s *Session) Size() (cols, rows int) { return s.cols, s.rows }

// Resize records a new pane size. The viewport follows the row count.
func (s *Session) Resize(cols, rows int) {
	if cols == s.cols && rows == s.rows {
		return
	}
	s.cols, s.rows = cols, rows
	s.scroll.SetViewportHeight(rows * s.scroll.LineHeight())
}

// SetContentHeight reports the current height of the pane's content.
func (s *Session) SetContentHeight(h int) {
	s.scroll.SetContentHeight(h)
}

// PauseNeeded is the output gate; see pager.Controller.PauseNeeded.
func (s *Session) PauseNeeded(cur pager.Cursor) bool {
	return s.pager.PauseNeeded(cur)
}

// OutputBlocked tells the pager that output was held back.
func (s *Session) OutputBlocked() {
	s.pager.OutputBlocked()
}

// EnterMux arms mux mode for this pane.
func (s *Session) EnterMux() {
	s.mux.Enter(s.id)
	s.publishStatus()
}

// HandleKey offers ev to mux mode, the keymap and the pager. While paging,
// only Ctrl and Alt chords other than the pager's exit keys reach the keymap
// ahead of the pager. It reports whether the key was consumed; an unconsumed
// press is about to reach the program, so the pause limit is moved past what
// the user has seen.
func (s *Session) HandleKey(ev keys.Event) bool {
	if s.mux.Armed() {
		consumed, err := s.mux.HandleKey(ev)
		s.win.report(s.id, "mux", err)
		if s.alive() {
			s.publishStatus()
		}
		return consumed
	}

	if ev.Down && !ev.IsModifier() {
		s.pager.ClearNotice()
	}
	if ev.Down && s.keymapFirst(ev) {
		if action := s.win.keymap.GetAction(ev.String()); action != "" {
			if handled, err := s.Run(action); handled {
				s.win.report(s.id, action, err)
				return true
			}
		}
	}
	if s.pager.HandleKey(ev) {
		return true
	}

	if ev.Down && !ev.IsModifier() {
		s.scroll.AdjustPauseLimit()
	}
	return false
}

func (s *Session) keymapFirst(ev keys.Event) bool {
	if s.win.keymap == nil {
		return false
	}
	if !s.pager.Active() {
		return true
	}
	return (ev.Ctrl() || ev.Alt()) && !s.pager.IsExitKey(ev)
}

func (s *Session) alive() bool {
	return s.win.sessions[s.id] == s
}

func (s *Session) publishStatus() {
	st := s.Status()
	if st == s.status {
		return
	}
	s.status = st
	if h := s.win.hooks.StatusLineChanged; h != nil {
		h(s.id, st)
	}
}

// pagerEvents forwards pager side effects to the window hooks.
type pagerEvents struct{ s *Session }

func (e pagerEvents) StatusLineChanged(string) { e.s.publishStatus() }

func (e pagerEvents) ScrollOffsetChanged(offset int) {
	if h := e.s.win.hooks.ScrollOffsetChanged; h != nil {
		h(e.s.id, offset)
	}
}

func (e pagerEvents) PauseContinue(limit int) {
	if h := e.s.win.hooks.PauseContinue; h != nil {
		h(e.s.id, limit)
	}
}
