package main

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/dtmux/internal/config"
	"github.com/Gaurav-Gosain/dtmux/internal/theme"
)

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings() error {
	registry := config.NewKeybindRegistry(loadConfig(cliLogger()))
	fmt.Print(renderKeybindings(registry))
	return nil
}

// keybindingRows returns the [keys, description] rows of one action group,
// skipping unbound actions.
func keybindingRows(registry *config.KeybindRegistry, actions []string) [][]string {
	var rows [][]string
	for _, action := range actions {
		if len(registry.GetKeys(action)) == 0 {
			continue
		}
		desc := config.ActionDescriptions[action]
		if desc == "" {
			desc = action
		}
		rows = append(rows, []string{registry.GetKeysForDisplay(action), desc})
	}
	return rows
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderKeybindings renders one table per action group plus the fixed mux
// and pager keys.
func renderKeybindings(registry *config.KeybindRegistry) string {
	var sb strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableTitle())
	section := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableSection())

	sb.WriteString("\n" + title.Render("dtmux Keybindings") + "\n\n")

	for _, group := range config.ActionGroups {
		rows := keybindingRows(registry, group.Actions)
		if len(rows) == 0 {
			continue
		}
		t := newTable("Keys", "Action").Rows(rows...)
		sb.WriteString(section.Render(group.Title) + "\n")
		sb.WriteString(t.Render() + "\n\n")
	}

	for _, s := range config.GetKeybindings(nil) {
		t := newTable("Keys", "Action")
		for _, b := range s.Bindings {
			t.Row(b.Key, b.Description)
		}
		sb.WriteString(section.Render(strings.TrimSuffix(s.Title, ":")) + "\n")
		sb.WriteString(t.Render() + "\n\n")
	}

	note := lipgloss.NewStyle().
		Foreground(theme.CLITableDim()).
		Italic(true).
		Render("Note: mux mode and pager keys are fixed. Enter mux mode, then press one key.")
	sb.WriteString(note + "\n\n")
	return sb.String()
}

// listCustomKeybindings shows only the keybindings that differ from defaults
func listCustomKeybindings() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	userConfig, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	customizations := findCustomizations(userConfig, config.DefaultConfig())

	if len(customizations) == 0 {
		fmt.Println(lipgloss.NewStyle().Foreground(theme.CLITableDim()).Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Println()
		fmt.Println("Run 'dtmux keybinds list' to see all keybindings.")
		return nil
	}

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableTitle()).Render("Custom Keybindings"))
	fmt.Println()

	t := newTable("Action", "Default", "Custom")
	for _, custom := range customizations {
		t.Row(custom.Action, custom.DefaultKeys, custom.CustomKeys)
	}
	fmt.Println(t.Render())
	fmt.Println()

	note := lipgloss.NewStyle().
		Foreground(theme.CLITableSection()).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations)))
	fmt.Println(note)
	fmt.Println()
	return nil
}

// Customization represents a customized keybinding
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations finds all keybindings that differ from defaults, in
// action order.
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	var customizations []Customization

	compareSections := func(userSection, defaultSection map[string][]string) {
		actions := make([]string, 0, len(defaultSection))
		for action := range defaultSection {
			actions = append(actions, action)
		}
		slices.Sort(actions)

		for _, action := range actions {
			defaultKeys := defaultSection[action]
			userKeys, exists := userSection[action]
			if !exists || slices.Equal(userKeys, defaultKeys) {
				continue
			}
			custom := strings.Join(userKeys, ", ")
			if len(userKeys) == 0 {
				custom = "(unbound)"
			}
			customizations = append(customizations, Customization{
				Action:      formatActionName(action),
				DefaultKeys: strings.Join(defaultKeys, ", "),
				CustomKeys:  custom,
			})
		}
	}

	compareSections(userCfg.Keybindings.Normal, defaultCfg.Keybindings.Normal)
	compareSections(userCfg.Keybindings.App, defaultCfg.Keybindings.App)

	return customizations
}

// formatActionName formats an action name for display
func formatActionName(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	return strings.ReplaceAll(action, "_", " ")
}
