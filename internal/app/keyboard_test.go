package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"ctrl letter", tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl}, "ctrl+b"},
		{"ctrl shift letter", tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl | tea.ModShift}, "ctrl+shift+p"},
		{"shifted text", tea.KeyPressMsg{Code: 'p', ShiftedCode: 'P', Text: "P", Mod: tea.ModShift}, "P"},
		{"shift without text", tea.KeyPressMsg{Code: 'q', Mod: tea.ModShift}, "Q"},
		{"plain text", tea.KeyPressMsg{Code: 'a', Text: "a"}, "a"},
		{"percent", tea.KeyPressMsg{Code: '%', Text: "%"}, "%"},
		{"space", tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, "space"},
		{"page down", tea.KeyPressMsg{Code: tea.KeyPgDown}, "pgdown"},
		{"ctrl arrow", tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModCtrl}, "ctrl+up"},
		{"shift page up", tea.KeyPressMsg{Code: tea.KeyPgUp, Mod: tea.ModShift}, "shift+pgup"},
		{"function key", tea.KeyPressMsg{Code: tea.KeyF1}, "f1"},
		{"enter", tea.KeyPressMsg{Code: tea.KeyEnter}, "enter"},
		{"escape", tea.KeyPressMsg{Code: tea.KeyEscape}, "esc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := KeyEvent(tc.msg)
			if got := ev.String(); got != tc.want {
				t.Errorf("KeyEvent(%v).String() = %q, want %q", tc.msg, got, tc.want)
			}
			if !ev.Down {
				t.Error("key press converted to a release")
			}
		})
	}
}

func TestKeyEventRelease(t *testing.T) {
	ev := KeyEvent(tea.KeyReleaseMsg{Code: tea.KeyLeftCtrl, Mod: tea.ModCtrl})
	if ev.Down {
		t.Error("release converted to a press")
	}
	if !ev.IsModifier() {
		t.Errorf("left ctrl release = %v, want a modifier key", ev)
	}

	ev = KeyEvent(tea.KeyReleaseMsg{Code: 'x', Text: "x"})
	if ev.Down || ev.String() != "x" {
		t.Errorf("release of x = %+v", ev)
	}
}
