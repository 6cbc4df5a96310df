// Package keys defines the key event model shared by the modal controllers.
//
// A key event is a code, a set of modifiers and a press/release flag. Printable
// keys use their rune as the code (so 'P' and 'p' are different keys); named keys
// use the private-use constants below.
package keys

import (
	"fmt"
	"strings"
	"unicode"
)

// Mod is a bit set of key modifiers.
type Mod uint8

const (
	// ModCtrl is set when Control is held.
	ModCtrl Mod = 1 << iota
	// ModAlt is set when Alt/Option is held.
	ModAlt
	// ModShift is set when Shift is held.
	ModShift
)

// Contains reports whether all modifiers in other are set in m.
func (m Mod) Contains(other Mod) bool {
	return m&other == other
}

// Named key codes. They live in the Unicode private use area so they never
// collide with printable runes.
const (
	KeyNone rune = 0xE000 + iota
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPgUp
	KeyPgDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyShift
	KeyCtrl
	KeyAlt
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// KeySpace is the space bar. It is printable, so it is just the rune.
const KeySpace rune = ' '

var keyNames = map[rune]string{
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyInsert:    "insert",
	KeyShift:     "shift",
	KeyCtrl:      "ctrl",
	KeyAlt:       "alt",
	KeySpace:     "space",
}

func init() {
	for i := range rune(12) {
		keyNames[KeyF1+i] = fmt.Sprintf("f%d", i+1)
	}
}

var namedKeys = func() map[string]rune {
	m := make(map[string]rune, len(keyNames)+16)
	for i := range rune(12) {
		m[fmt.Sprintf("f%d", i+1)] = KeyF1 + i
	}
	for code, name := range keyNames {
		m[name] = code
	}
	m["escape"] = KeyEscape
	m["return"] = KeyEnter
	m["pageup"] = KeyPgUp
	m["pagedown"] = KeyPgDown
	return m
}()

// Event is a single key event delivered to a session.
type Event struct {
	Code rune
	Mod  Mod
	Down bool
}

// Press builds a key-down event.
func Press(code rune, mod Mod) Event {
	return Event{Code: code, Mod: mod, Down: true}
}

// Ctrl reports whether Control is held.
func (e Event) Ctrl() bool { return e.Mod.Contains(ModCtrl) }

// Alt reports whether Alt is held.
func (e Event) Alt() bool { return e.Mod.Contains(ModAlt) }

// Shift reports whether Shift is held.
func (e Event) Shift() bool { return e.Mod.Contains(ModShift) }

// IsModifier reports whether the event is a bare modifier key.
func (e Event) IsModifier() bool {
	return e.Code == KeyShift || e.Code == KeyCtrl || e.Code == KeyAlt
}

// IsArrow reports whether the event is one of the four arrow keys.
func (e Event) IsArrow() bool {
	return e.Code == KeyUp || e.Code == KeyDown || e.Code == KeyLeft || e.Code == KeyRight
}

// Is reports whether the event has the given code, ignoring letter case when
// Control or Alt is held (terminals disagree on the case they report then).
func (e Event) Is(code rune) bool {
	if e.Code == code {
		return true
	}
	if e.Ctrl() || e.Alt() {
		return unicode.ToLower(e.Code) == unicode.ToLower(code)
	}
	return false
}

// String returns the canonical key string, e.g. "ctrl+shift+p", "pgdown", "P".
//
// A printable rune with no Control/Alt is returned as itself (Shift is implied
// by its case), which matches how Bubble Tea reports typed text.
func (e Event) String() string {
	name, named := keyNames[e.Code]
	if !named && !e.Ctrl() && !e.Alt() && unicode.IsPrint(e.Code) {
		return string(e.Code)
	}

	var sb strings.Builder
	if e.Ctrl() {
		sb.WriteString("ctrl+")
	}
	if e.Alt() {
		sb.WriteString("alt+")
	}
	shift := e.Shift()
	if !named {
		lower := unicode.ToLower(e.Code)
		if lower != e.Code {
			shift = true
		}
		name = string(lower)
	}
	if shift {
		sb.WriteString("shift+")
	}
	sb.WriteString(name)
	return sb.String()
}

// Parse converts a key string ("ctrl+shift+up", "P", "space") into an event.
// Modifier order and case of modifier/key names do not matter.
func Parse(s string) (Event, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Event{}, false
	}
	if s == "+" {
		return Press('+', 0), true
	}

	parts := strings.Split(s, "+")
	// "ctrl++" splits into ["ctrl", "", ""]
	if strings.HasSuffix(s, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	var mod Mod
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl", "control":
			mod |= ModCtrl
		case "alt", "opt", "option", "meta":
			mod |= ModAlt
		case "shift":
			mod |= ModShift
		default:
			return Event{}, false
		}
	}

	last := parts[len(parts)-1]
	if code, ok := namedKeys[strings.ToLower(last)]; ok {
		return Press(code, mod), true
	}
	r := []rune(last)
	if len(r) != 1 {
		return Event{}, false
	}
	code := r[0]
	if mod != 0 {
		if unicode.IsUpper(code) {
			mod |= ModShift
		}
		code = unicode.ToLower(code)
		if mod == ModShift {
			// "shift+p" is typed text "P"
			code = unicode.ToUpper(code)
		}
	}
	return Press(code, mod), true
}

// Canonical normalizes a key string to the form produced by Event.String.
// Unparseable strings are returned lower-cased and trimmed.
func Canonical(s string) string {
	ev, ok := Parse(s)
	if !ok {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return ev.String()
}
