package config

import "slices"

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// ActionDescriptions maps every configurable action to its help text.
var ActionDescriptions = map[string]string{
	"enter_mux_mode":     "Enter mux mode",
	"toggle_paging":      "Toggle pause mode",
	"enter_paging":       "Enter pager",
	"toggle_auto_paging": "Toggle auto paging",
	"new_pane":           "New pane",
	"new_tab":            "New tab",
	"close_pane":         "Close pane",
	"next_pane":          "Next pane",
	"prev_pane":          "Previous pane",
	"scroll_top":         "Scroll to top",
	"scroll_bottom":      "Scroll to bottom",
	"scroll_line_up":     "Scroll up one line",
	"scroll_line_down":   "Scroll down one line",
	"scroll_page_up":     "Scroll up one page",
	"scroll_page_down":   "Scroll down one page",
	"scroll_percentage":  "Scroll to middle",
	"quit":               "Quit",
	"toggle_help":        "Toggle help",
}

// AppActions are handled by the host program rather than a session. Every
// other action in ActionDescriptions is a session command.
var AppActions = []string{"quit", "toggle_help"}

// IsNormalAction reports whether action may be bound in [keybindings.normal].
func IsNormalAction(action string) bool {
	_, ok := ActionDescriptions[action]
	return ok && !slices.Contains(AppActions, action)
}

// IsAppAction reports whether action may be bound in [keybindings.app].
func IsAppAction(action string) bool {
	return slices.Contains(AppActions, action)
}

// ActionGroups lists the configurable actions by topic, in display order.
var ActionGroups = []struct {
	Title   string
	Actions []string
}{
	{"Panes", []string{"new_pane", "new_tab", "close_pane", "next_pane", "prev_pane"}},
	{"Modes", []string{"enter_mux_mode", "toggle_paging", "enter_paging", "toggle_auto_paging"}},
	{"Scrolling", []string{
		"scroll_top", "scroll_bottom", "scroll_line_up", "scroll_line_down",
		"scroll_page_up", "scroll_page_down", "scroll_percentage",
	}},
	{"Application", []string{"toggle_help", "quit"}},
}

// GetMuxKeybindings returns the fixed mux mode keys, shown while mux mode is
// armed.
func GetMuxKeybindings() []Keybinding {
	return []Keybinding{
		{"Enter", "Split below"},
		{"Ctrl+↑/↓/←/→", "Split in direction"},
		{"↑/↓/←/→", "Focus previous/next pane"},
		{"Ctrl+T", "New tab"},
		{"Ctrl+W", "Close pane"},
		{"Esc", "Cancel"},
	}
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is nil only the fixed mux and pager sections are returned.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	var sections []KeybindingSection
	if registry != nil {
		for _, group := range ActionGroups {
			section := KeybindingSection{Title: group.Title}
			for _, action := range group.Actions {
				addBinding(&section, registry, action, ActionDescriptions[action])
			}
			if len(section.Bindings) > 0 {
				sections = append(sections, section)
			}
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns the sections for the fixed mux and pager keys.
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title:    "MUX MODE (one key):",
			Bindings: GetMuxKeybindings(),
		},
		{
			Title: "PAGER:",
			Bindings: []Keybinding{
				{"0-9, -, .", "Numeric argument"},
				{"Enter, ↓", "Down one line (N lines)"},
				{"↑", "Up one line"},
				{"Space, PgDn", "Down one page (N pages)"},
				{"PgUp", "Up one page (N pages)"},
				{"Home/End", "Top/bottom"},
				{"p, %", "Jump to N percent (50)"},
				{"P", "Switch paging/pause"},
				{"A", "Toggle auto paging"},
				{"Ctrl+C", "Interrupt program and continue"},
				{"Ctrl+Shift+P, q", "Exit pager"},
			},
		},
	}
}
