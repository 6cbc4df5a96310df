package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/dtmux/internal/config"
	"github.com/Gaurav-Gosain/dtmux/internal/keys"
)

// ConfigReloadedMsg carries a config reloaded from disk. Err is set when the
// new file could not be loaded; the running config is kept then.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
	Err    error
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key, resize and config messages. Every mutation of the
// window happens here.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyPressMsg:
		m.handleKey(KeyEvent(msg))

	case tea.KeyReleaseMsg:
		m.handleKey(KeyEvent(msg))

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.logger.Warn("config reload failed, keeping current config", "err", msg.Err)
			break
		}
		m.applyConfig(msg.Config)

	case tea.KeyboardEnhancementsMsg:
		m.logger.Debug("keyboard enhancements", "disambiguation", msg.SupportsKeyDisambiguation())
	}

	m.sync()
	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

// handleKey gives the host bindings the first look at a key in normal mode,
// then offers it to the window. Whatever the window leaves goes to the
// focused pane's program.
func (m *Model) handleKey(ev keys.Event) {
	s := m.win.Focused()
	if s == nil {
		return
	}
	if ev.Down && !s.MuxArmed() && !s.Pager().Active() {
		switch {
		case key.Matches(ev, m.keys.Quit):
			m.quitting = true
			return
		case key.Matches(ev, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return
		}
	}

	if m.win.HandleKey(ev) {
		m.logger.Debug("key consumed", "pane", s.ID(), "key", ev.String(), "down", ev.Down)
		return
	}
	if p := m.panes[s.ID()]; p != nil {
		p.HandleKey(ev)
	}
}
