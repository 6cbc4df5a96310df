// Package config loads the dtmux user configuration: normal-mode
// keybindings, pager and layout preferences and appearance.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Pager       PagerConfig       `toml:"pager"`
	Layout      LayoutConfig      `toml:"layout"`
	Appearance  AppearanceConfig  `toml:"appearance"`
}

// KeybindingsConfig maps action names to the keys that trigger them.
type KeybindingsConfig struct {
	// Normal bindings are looked up for the focused pane when no modal
	// state claims the key.
	Normal map[string][]string `toml:"normal"`
	// App bindings are handled by the host before any pane sees the key.
	App map[string][]string `toml:"app"`
}

// PagerConfig holds the pager defaults for new panes.
type PagerConfig struct {
	AutoPaging bool     `toml:"auto_paging"`
	LineHeight int      `toml:"line_height"`
	ExitKeys   []string `toml:"exit_keys"`
}

// LayoutConfig holds layout preferences.
type LayoutConfig struct {
	// Split is the orientation of new_pane: auto, row or column.
	Split string `toml:"split"`
}

// AppearanceConfig holds visual preferences.
type AppearanceConfig struct {
	BorderStyle string `toml:"border_style"` // rounded, normal, thick, double, hidden
	Theme       string `toml:"theme"`        // bubbletint theme id, "" for the built-in palette
}

// Valid values for LayoutConfig.Split and AppearanceConfig.BorderStyle.
var (
	SplitModes   = []string{"auto", "row", "column"}
	BorderStyles = []string{"rounded", "normal", "thick", "double", "hidden"}
)

const fileHeader = `# dtmux configuration file
#
# [keybindings.normal] binds pane commands, [keybindings.app] binds
# application keys. Each action takes a list of keys such as "ctrl+a",
# "ctrl+shift+p", "f1" or "pgdown". Multiple keys can share an action.
#
# Mux mode and pager keys are fixed; see "dtmux keybinds list".

`

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Keybindings: KeybindingsConfig{
			Normal: map[string][]string{
				"enter_mux_mode":     {"ctrl+b"},
				"toggle_paging":      {"ctrl+shift+p"},
				"enter_paging":       {"shift+pgup"},
				"toggle_auto_paging": {"ctrl+shift+a"},
				"new_pane":           {"ctrl+shift+n"},
				"new_tab":            {"ctrl+shift+t"},
				"close_pane":         {"ctrl+shift+w"},
				"next_pane":          {"ctrl+shift+right"},
				"prev_pane":          {"ctrl+shift+left"},
				"scroll_top":         {"ctrl+shift+home"},
				"scroll_bottom":      {"ctrl+shift+end"},
				"scroll_line_up":     {"ctrl+shift+up"},
				"scroll_line_down":   {"ctrl+shift+down"},
				"scroll_page_up":     {"ctrl+shift+pgup"},
				"scroll_page_down":   {"ctrl+shift+pgdown"},
			},
			App: map[string][]string{
				"quit":        {"ctrl+q"},
				"toggle_help": {"f1"},
			},
		},
		Pager: PagerConfig{
			AutoPaging: false,
			LineHeight: 1,
			ExitKeys:   []string{"ctrl+shift+p", "q"},
		},
		Layout: LayoutConfig{
			Split: "auto",
		},
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
		},
	}
}

// GetConfigPath returns the config file path, creating its directory.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("dtmux", "config.toml"))
}

// LoadFile loads the config at path. A missing file is created with the
// defaults. Settings absent from the file keep their default values.
func LoadFile(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := SaveFile(cfg, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data, fills in defaults and validates it.
func Parse(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fillDefaults(DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveFile writes cfg to path with a commented header.
func SaveFile(cfg *UserConfig, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	out := append([]byte(fileHeader), data...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *UserConfig) fillDefaults(def *UserConfig) {
	c.Keybindings.Normal = mergeBindings(c.Keybindings.Normal, def.Keybindings.Normal)
	c.Keybindings.App = mergeBindings(c.Keybindings.App, def.Keybindings.App)
	if c.Pager.LineHeight <= 0 {
		c.Pager.LineHeight = def.Pager.LineHeight
	}
	if len(c.Pager.ExitKeys) == 0 {
		c.Pager.ExitKeys = def.Pager.ExitKeys
	}
	if c.Layout.Split == "" {
		c.Layout.Split = def.Layout.Split
	}
	if c.Appearance.BorderStyle == "" {
		c.Appearance.BorderStyle = def.Appearance.BorderStyle
	}
}

// mergeBindings adds the default keys for actions the user did not set. An
// action set to an empty list stays unbound.
func mergeBindings(user, def map[string][]string) map[string][]string {
	if user == nil {
		user = make(map[string][]string, len(def))
	}
	for action, keys := range def {
		if _, ok := user[action]; !ok {
			user[action] = keys
		}
	}
	return user
}

// Validate checks action names, key syntax, duplicate bindings and
// enumerated settings.
// All problems are reported together.
func (c *UserConfig) Validate() error {
	var errs []error
	n := NewKeyNormalizer()
	seen := make(map[string]string)
	check := func(section string, bindings map[string][]string, known func(string) bool) {
		for _, action := range sortedKeys(bindings) {
			if !known(action) {
				errs = append(errs, fmt.Errorf("%s.%s: unknown action", section, action))
				continue
			}
			for _, key := range bindings[action] {
				if ok, msg := n.ValidateKey(key); !ok {
					errs = append(errs, fmt.Errorf("%s.%s: %s", section, action, msg))
					continue
				}
				canon := n.Canonical(key)
				if other, dup := seen[canon]; dup && other != action {
					errs = append(errs, fmt.Errorf("%s.%s: key %q already bound to %s", section, action, key, other))
					continue
				}
				seen[canon] = action
			}
		}
	}
	check("keybindings.normal", c.Keybindings.Normal, IsNormalAction)
	check("keybindings.app", c.Keybindings.App, IsAppAction)

	for _, key := range c.Pager.ExitKeys {
		if ok, msg := n.ValidateKey(key); !ok {
			errs = append(errs, fmt.Errorf("pager.exit_keys: %s", msg))
		}
	}
	if !slices.Contains(SplitModes, c.Layout.Split) {
		errs = append(errs, fmt.Errorf("layout.split: %q is not one of %s", c.Layout.Split, strings.Join(SplitModes, ", ")))
	}
	if !slices.Contains(BorderStyles, c.Appearance.BorderStyle) {
		errs = append(errs, fmt.Errorf("appearance.border_style: %q is not one of %s", c.Appearance.BorderStyle, strings.Join(BorderStyles, ", ")))
	}
	return errors.Join(errs...)
}
