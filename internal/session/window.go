// Package session ties the layout tree and the per-pane modal controllers
// together for one top-level window.
//
// A Window owns the layout tree and one Session per pane. Key events go to
// the focused session, which offers them to mux mode, then to the pager, then
// to the normal-mode keymap. Whatever is left belongs to the program.
package session

import (
	"errors"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/dtmux/internal/keys"
	"github.com/Gaurav-Gosain/dtmux/internal/layout"
	"github.com/Gaurav-Gosain/dtmux/internal/pager"
)

// PaneFactory is implemented by the host and owns the actual panes.
type PaneFactory interface {
	CreatePane() (layout.PaneID, error)
	DestroyPane(id layout.PaneID)
}

// Keymap resolves a canonical key string to a named command, "" if unbound.
type Keymap interface {
	GetAction(key string) string
}

// Hooks are the render side's callbacks. Nil hooks are skipped.
type Hooks struct {
	// ActivePaneChanged moves the focus highlight.
	ActivePaneChanged func(pane layout.PaneID)
	// StatusLineChanged reports a pane's status text, "" to clear it.
	StatusLineChanged func(pane layout.PaneID, text string)
	// ScrollOffsetChanged reports a pane's new scroll offset.
	ScrollOffsetChanged func(pane layout.PaneID, offset int)
	// PauseContinue releases held output of a pane up to limit.
	PauseContinue func(pane layout.PaneID, limit int)
	// CloseWindow asks the host to tear down the window; the last pane was
	// closed.
	CloseWindow func()
}

// SplitMode picks the orientation of the new_pane command.
type SplitMode string

const (
	SplitAuto   SplitMode = "auto"
	SplitRow    SplitMode = "row"
	SplitColumn SplitMode = "column"
)

// Options configures a Window.
type Options struct {
	Pager      pager.Options
	LineHeight int // offset units per text line; 1 for character cells
	Split      SplitMode
	Cols, Rows int // initial pane size until the host calls Resize
	Logger     *log.Logger
}

// Window is one top-level window: a layout tree and its sessions.
type Window struct {
	tree     *layout.Tree
	sessions map[layout.PaneID]*Session
	host     PaneFactory
	hooks    Hooks
	keymap   Keymap
	opts     Options
	logger   *log.Logger
}

// NewWindow returns an empty window. Call Open to create the first pane.
func NewWindow(host PaneFactory, keymap Keymap, hooks Hooks, opts Options) *Window {
	if opts.LineHeight <= 0 {
		opts.LineHeight = 1
	}
	if opts.Cols <= 0 || opts.Rows <= 0 {
		opts.Cols, opts.Rows = 80, 24
	}
	if opts.Split == "" {
		opts.Split = SplitAuto
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	w := &Window{
		sessions: make(map[layout.PaneID]*Session),
		host:     host,
		hooks:    hooks,
		keymap:   keymap,
		opts:     opts,
		logger:   logger,
	}
	w.tree = layout.NewTree(w, w)
	return w
}

// Open creates the first pane.
func (w *Window) Open() (layout.PaneID, error) {
	return w.tree.Open()
}

// Tree returns the layout tree. Callers must not edit it behind the
// window's back; it is exposed for rendering.
func (w *Window) Tree() *layout.Tree { return w.tree }

// Session returns the session of pane, or nil.
func (w *Window) Session(pane layout.PaneID) *Session { return w.sessions[pane] }

// Focused returns the focused session, or nil for an empty window.
func (w *Window) Focused() *Session {
	return w.sessions[w.tree.Focus().Pane]
}

// SetKeymap replaces the normal-mode keymap, e.g. after a config reload.
func (w *Window) SetKeymap(k Keymap) { w.keymap = k }

// Configure applies new options to the window and its sessions. Pane sizes
// and the logger are left alone.
func (w *Window) Configure(opts Options) {
	if opts.Split != "" {
		w.opts.Split = opts.Split
	}
	w.opts.Pager = opts.Pager
	for _, s := range w.sessions {
		s.pager.SetExitKeys(opts.Pager.ExitKeys)
	}
}

// HandleKey routes ev to the focused session and reports whether it was
// consumed. Unconsumed key presses belong to the program.
func (w *Window) HandleKey(ev keys.Event) bool {
	s := w.Focused()
	if s == nil {
		return false
	}
	return s.HandleKey(ev)
}

// CreatePane implements layout.PaneFactory.
func (w *Window) CreatePane() (layout.PaneID, error) {
	id, err := w.host.CreatePane()
	if err != nil {
		return "", err
	}
	w.sessions[id] = newSession(w, id)
	w.logger.Debug("pane created", "pane", id)
	return id, nil
}

// DestroyPane implements layout.PaneFactory.
func (w *Window) DestroyPane(id layout.PaneID) {
	delete(w.sessions, id)
	w.host.DestroyPane(id)
	w.logger.Debug("pane destroyed", "pane", id)
}

// ActivePaneChanged implements layout.FocusListener.
func (w *Window) ActivePaneChanged(id layout.PaneID) {
	if w.hooks.ActivePaneChanged != nil {
		w.hooks.ActivePaneChanged(id)
	}
}

// AddSibling splits at; see layout.Tree.AddSibling.
func (w *Window) AddSibling(at layout.PaneID, asColumn, after bool) (layout.PaneID, error) {
	return w.tree.AddSibling(at, asColumn, after)
}

// AddTab adds a tab next to at.
func (w *Window) AddTab(at layout.PaneID) (layout.PaneID, error) {
	return w.tree.AddTab(at)
}

// NextPane returns the pane after from in traversal order.
func (w *Window) NextPane(from layout.PaneID, forward bool) (layout.PaneID, bool) {
	return w.tree.NextPane(from, forward)
}

// SetActive focuses pane.
func (w *Window) SetActive(pane layout.PaneID) {
	w.tree.SetActive(pane)
}

// ClosePane closes pane. Closing the last pane returns layout.ErrLastPane
// and fires the CloseWindow hook.
func (w *Window) ClosePane(pane layout.PaneID) error {
	err := w.tree.Close(pane)
	if errors.Is(err, layout.ErrLastPane) && w.hooks.CloseWindow != nil {
		w.hooks.CloseWindow()
	}
	return err
}

// report logs the outcome of a layout command. Lookup misses are normal
// during teardown and only logged at debug level.
func (w *Window) report(pane layout.PaneID, op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, layout.ErrPaneNotFound):
		w.logger.Debug("pane gone", "pane", pane, "op", op)
	case errors.Is(err, layout.ErrLastPane):
		w.logger.Debug("last pane closed", "pane", pane)
	default:
		w.logger.Warn("layout command failed", "pane", pane, "op", op, "err", err)
	}
}

func (w *Window) splitColumn(s *Session) bool {
	switch w.opts.Split {
	case SplitRow:
		return false
	case SplitColumn:
		return true
	default:
		return layout.SplitVertically(s.cols, s.rows)
	}
}
