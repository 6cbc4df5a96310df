package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/dtmux/internal/keys"
)

// KeybindRegistry resolves keys to actions and back for one config.
type KeybindRegistry struct {
	actionToKeys map[string][]string
	keyToAction  map[string]string
	normalizer   *KeyNormalizer
}

// NewKeybindRegistry indexes the normal and app bindings of cfg.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]string),
		keyToAction:  make(map[string]string),
		normalizer:   NewKeyNormalizer(),
	}
	for _, section := range []map[string][]string{cfg.Keybindings.Normal, cfg.Keybindings.App} {
		for _, action := range sortedKeys(section) {
			for _, key := range section[action] {
				r.bind(action, key)
			}
		}
	}
	return r
}

func (r *KeybindRegistry) bind(action, key string) {
	canon := r.normalizer.Canonical(key)
	if canon == "" {
		return
	}
	if _, taken := r.keyToAction[canon]; taken {
		return
	}
	r.keyToAction[canon] = action
	r.actionToKeys[action] = append(r.actionToKeys[action], key)
}

// GetKeys returns the keys bound to action as written in the config.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionToKeys[action]
}

// GetAction returns the action bound to key, "" if none. key may be in any
// form keys.Parse accepts.
func (r *KeybindRegistry) GetAction(key string) string {
	return r.keyToAction[r.normalizer.Canonical(key)]
}

// GetKeysForDisplay formats the keys of action for help text, e.g.
// "Ctrl+Shift+P, F1".
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	bound := r.actionToKeys[action]
	out := make([]string, 0, len(bound))
	for _, k := range bound {
		out = append(out, FormatKey(k))
	}
	return strings.Join(out, ", ")
}

// Actions returns every bound action, sorted.
func (r *KeybindRegistry) Actions() []string {
	return sortedKeys(r.actionToKeys)
}

// FormatKey renders a key string for display: "ctrl+shift+p" becomes
// "Ctrl+Shift+P".
func FormatKey(key string) string {
	canon := keys.Canonical(key)
	parts := strings.Split(canon, "+")
	if strings.HasSuffix(canon, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}
	for i, p := range parts {
		switch p {
		case "pgup":
			parts[i] = "PgUp"
		case "pgdown":
			parts[i] = "PgDn"
		case "esc":
			parts[i] = "Esc"
		default:
			if len(p) > 1 || len(parts) > 1 {
				parts[i] = strings.ToUpper(p[:1]) + p[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer validates key strings and maps them to canonical form.
type KeyNormalizer struct{}

// NewKeyNormalizer returns a KeyNormalizer.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{}
}

// NormalizeKey returns the spellings key can be matched under: the key as
// written (trimmed and lower-cased) and its canonical form.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	lower := strings.ToLower(strings.TrimSpace(key))
	if lower == "" {
		return nil
	}
	out := []string{lower}
	if canon := keys.Canonical(key); canon != lower {
		out = append(out, canon)
	}
	return out
}

// Canonical returns the canonical form of key, "" for an invalid key.
func (n *KeyNormalizer) Canonical(key string) string {
	ev, ok := keys.Parse(key)
	if !ok {
		return ""
	}
	return ev.String()
}

// ValidateKey reports whether key parses, with a message when it does not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	if strings.TrimSpace(key) == "" {
		return false, "empty key"
	}
	if _, ok := keys.Parse(key); !ok {
		return false, fmt.Sprintf("invalid key %q", key)
	}
	return true, ""
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
