package app

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/dtmux/internal/config"
	"github.com/Gaurav-Gosain/dtmux/internal/keys"
	"github.com/Gaurav-Gosain/dtmux/internal/theme"
)

// appKeyMap holds the host's own bindings plus the configured session
// commands, which appear in the help line only.
type appKeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	groups [][]key.Binding
}

func newAppKeyMap(registry *config.KeybindRegistry) appKeyMap {
	km := appKeyMap{
		Quit: binding(registry, "quit"),
		Help: binding(registry, "toggle_help"),
	}
	for _, group := range config.ActionGroups {
		var row []key.Binding
		for _, action := range group.Actions {
			if b := binding(registry, action); b.Enabled() {
				row = append(row, b)
			}
		}
		if len(row) > 0 {
			km.groups = append(km.groups, row)
		}
	}
	return km
}

// binding builds a key.Binding matching the canonical form of every key
// bound to action, so it can be matched against a keys.Event.
func binding(registry *config.KeybindRegistry, action string) key.Binding {
	bound := registry.GetKeys(action)
	if len(bound) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	canon := make([]string, 0, len(bound))
	for _, k := range bound {
		canon = append(canon, keys.Canonical(k))
	}
	return key.NewBinding(
		key.WithKeys(canon...),
		key.WithHelp(registry.GetKeysForDisplay(action), config.ActionDescriptions[action]),
	)
}

// ShortHelp implements help.KeyMap.
func (km appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Help, km.Quit}
}

// FullHelp implements help.KeyMap.
func (km appKeyMap) FullHelp() [][]key.Binding {
	return km.groups
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Bold(true)
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.HelpGray())
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.HelpBorder())
	h.Styles.FullSeparator = h.Styles.ShortSeparator
	return h
}
