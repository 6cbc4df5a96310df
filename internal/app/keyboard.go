package app

import (
	"unicode"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/dtmux/internal/keys"
)

// namedTeaKeys maps Bubble Tea key codes onto the dtmux named codes.
// Left and right modifier keys collapse into one code each.
var namedTeaKeys = map[rune]rune{
	tea.KeyEnter:      keys.KeyEnter,
	tea.KeyEscape:     keys.KeyEscape,
	tea.KeyTab:        keys.KeyTab,
	tea.KeyBackspace:  keys.KeyBackspace,
	tea.KeyDelete:     keys.KeyDelete,
	tea.KeyUp:         keys.KeyUp,
	tea.KeyDown:       keys.KeyDown,
	tea.KeyLeft:       keys.KeyLeft,
	tea.KeyRight:      keys.KeyRight,
	tea.KeyPgUp:       keys.KeyPgUp,
	tea.KeyPgDown:     keys.KeyPgDown,
	tea.KeyHome:       keys.KeyHome,
	tea.KeyEnd:        keys.KeyEnd,
	tea.KeyInsert:     keys.KeyInsert,
	tea.KeyLeftShift:  keys.KeyShift,
	tea.KeyRightShift: keys.KeyShift,
	tea.KeyLeftCtrl:   keys.KeyCtrl,
	tea.KeyRightCtrl:  keys.KeyCtrl,
	tea.KeyLeftAlt:    keys.KeyAlt,
	tea.KeyRightAlt:   keys.KeyAlt,
	tea.KeyF1:         keys.KeyF1,
	tea.KeyF2:         keys.KeyF2,
	tea.KeyF3:         keys.KeyF3,
	tea.KeyF4:         keys.KeyF4,
	tea.KeyF5:         keys.KeyF5,
	tea.KeyF6:         keys.KeyF6,
	tea.KeyF7:         keys.KeyF7,
	tea.KeyF8:         keys.KeyF8,
	tea.KeyF9:         keys.KeyF9,
	tea.KeyF10:        keys.KeyF10,
	tea.KeyF11:        keys.KeyF11,
	tea.KeyF12:        keys.KeyF12,
}

// KeyEvent converts a Bubble Tea key press or release into a dtmux key event.
//
// Typed text keeps its case and drops Shift, so Shift+p arrives as "P" the
// same way the config spells it. With Control or Alt held the letter is
// lower-cased and Shift stays a modifier ("ctrl+shift+p").
func KeyEvent(msg tea.KeyMsg) keys.Event {
	key := msg.Key()
	_, down := msg.(tea.KeyPressMsg)

	var mod keys.Mod
	if key.Mod&tea.ModCtrl != 0 {
		mod |= keys.ModCtrl
	}
	if key.Mod&tea.ModAlt != 0 {
		mod |= keys.ModAlt
	}
	shift := key.Mod&tea.ModShift != 0
	if shift {
		mod |= keys.ModShift
	}

	if code, ok := namedTeaKeys[key.Code]; ok {
		return keys.Event{Code: code, Mod: mod, Down: down}
	}

	code := key.Code
	if mod&(keys.ModCtrl|keys.ModAlt) != 0 {
		return keys.Event{Code: unicode.ToLower(code), Mod: mod, Down: down}
	}

	switch r := []rune(key.Text); {
	case len(r) == 1:
		code = r[0]
	case shift && key.ShiftedCode != 0:
		code = key.ShiftedCode
	case shift:
		code = unicode.ToUpper(code)
	}
	return keys.Event{Code: code, Down: down}
}
