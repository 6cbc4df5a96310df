// Package theme provides the colors and border styles of the dtmux host.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
// An unknown name falls back to the registry default and is reported.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Pane border colors. The active color marks the stack (or pane) holding
// focus; exactly one group carries it.
func BorderInactive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("8")
	}
	return t.BrightBlack
}

func BorderActive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AAFFAA")
	}
	return t.BrightGreen
}

// BorderMux is the active border while mux mode waits for a command.
func BorderMux() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// BorderPaging is the active border while the pager holds the keyboard.
func BorderPaging() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#FFD787")
	}
	return t.Yellow
}

// Tab bar colors
func TabActive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("15")
	}
	return t.BrightWhite
}

func TabInactive() color.Color {
	return lipgloss.Color("8")
}

// Status line colors
func StatusFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("0")
	}
	return t.Black
}

func StatusMux() color.Color {
	return BorderMux()
}

func StatusPaging() color.Color {
	return BorderPaging()
}

func StatusPaused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#FAAAAA")
	}
	return t.Red
}

func StatusIdle() color.Color {
	return lipgloss.Color("8")
}

// Help overlay colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("8")
}

func CLITableTitle() color.Color {
	return lipgloss.Color("14")
}

func CLITableSection() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// BorderForStyle maps an appearance.border_style value to a lipgloss border.
// Unknown names get the rounded border.
func BorderForStyle(style string) lipgloss.Border {
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in range 0-65535, convert to 0-255
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
