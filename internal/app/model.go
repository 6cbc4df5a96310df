// Package app hosts a dtmux window in a Bubble Tea program.
//
// The model is the pane factory and render side of a session.Window: it mints
// pane ids, runs the demo shell in each pane, feeds the shell's output
// through the pause gate and draws the layout tree.
package app

import (
	"fmt"

	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/dtmux/internal/config"
	"github.com/Gaurav-Gosain/dtmux/internal/layout"
	"github.com/Gaurav-Gosain/dtmux/internal/pager"
	"github.com/Gaurav-Gosain/dtmux/internal/session"
	"github.com/Gaurav-Gosain/dtmux/internal/theme"
)

// Default screen size until the terminal reports its own.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the Bubble Tea model of one dtmux window.
type Model struct {
	win      *session.Window
	panes    map[layout.PaneID]*Pane
	cfg      *config.UserConfig
	registry *config.KeybindRegistry
	keys     appKeyMap
	help     help.Model
	border   lipgloss.Border
	width    int
	height   int
	quitting bool
	logger   *log.Logger
}

// New builds the model and opens the first pane. A nil cfg means the
// defaults and a nil logger the default logger.
func New(cfg *config.UserConfig, logger *log.Logger) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}
	m := &Model{
		panes:  make(map[layout.PaneID]*Pane),
		width:  defaultWidth,
		height: defaultHeight,
		help:   newHelp(),
		logger: logger,
	}
	m.setConfig(cfg)

	opts := windowOptions(cfg)
	opts.Logger = logger
	m.win = session.NewWindow(m, m.registry, session.Hooks{
		ActivePaneChanged: func(pane layout.PaneID) {
			m.logger.Debug("focus changed", "pane", pane)
		},
		StatusLineChanged: func(pane layout.PaneID, text string) {
			m.logger.Debug("status changed", "pane", pane, "status", text)
		},
		PauseContinue: func(pane layout.PaneID, limit int) {
			m.logger.Debug("output continued", "pane", pane, "limit", limit)
			m.flush(pane)
		},
		CloseWindow: func() {
			m.quitting = true
		},
	}, opts)

	if _, err := m.win.Open(); err != nil {
		return nil, fmt.Errorf("open first pane: %w", err)
	}
	m.sync()
	return m, nil
}

// Window returns the hosted window.
func (m *Model) Window() *session.Window { return m.win }

// Pane returns the demo program of pane, or nil.
func (m *Model) Pane(id layout.PaneID) *Pane { return m.panes[id] }

// Quitting reports whether the model asked the program to exit.
func (m *Model) Quitting() bool { return m.quitting }

// CreatePane implements session.PaneFactory.
func (m *Model) CreatePane() (layout.PaneID, error) {
	id := layout.PaneID(uuid.NewString())
	m.panes[id] = NewPane(id)
	return id, nil
}

// DestroyPane implements session.PaneFactory.
func (m *Model) DestroyPane(id layout.PaneID) {
	delete(m.panes, id)
}

func windowOptions(cfg *config.UserConfig) session.Options {
	return session.Options{
		Pager: pager.Options{
			AutoPaging: cfg.Pager.AutoPaging,
			ExitKeys:   cfg.Pager.ExitKeys,
		},
		LineHeight: cfg.Pager.LineHeight,
		Split:      session.SplitMode(cfg.Layout.Split),
	}
}

func (m *Model) setConfig(cfg *config.UserConfig) {
	m.cfg = cfg
	m.registry = config.NewKeybindRegistry(cfg)
	m.keys = newAppKeyMap(m.registry)
	m.border = theme.BorderForStyle(cfg.Appearance.BorderStyle)
}

// applyConfig swaps in a reloaded config. Panes keep their line height.
func (m *Model) applyConfig(cfg *config.UserConfig) {
	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		m.logger.Warn("theme", "err", err)
	}
	m.setConfig(cfg)
	showAll := m.help.ShowAll
	m.help = newHelp()
	m.help.ShowAll = showAll
	m.win.SetKeymap(m.registry)
	m.win.Configure(windowOptions(cfg))
	m.logger.Debug("config applied",
		"split", cfg.Layout.Split,
		"auto_paging", cfg.Pager.AutoPaging,
		"themed", theme.IsEnabled(),
		"border", theme.ColorToString(theme.BorderActive()),
	)
}

// flush lets the shell of pane write as much pending output as the gate
// allows.
func (m *Model) flush(id layout.PaneID) {
	p, s := m.panes[id], m.win.Session(id)
	if p == nil || s == nil {
		return
	}
	p.Flush(s)
}

// sync fits every pane to the screen and flushes pending output.
func (m *Model) sync() {
	root := m.win.Tree().Root()
	if root == nil {
		return
	}
	_, treeHeight := m.treeSize()
	m.resize(root, m.width, treeHeight)
	for _, id := range m.win.Tree().Leaves() {
		m.flush(id)
	}
}
