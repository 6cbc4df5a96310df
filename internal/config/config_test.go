package config_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/dtmux/internal/config"
	"github.com/Gaurav-Gosain/dtmux/internal/session"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Pager.LineHeight != 1 {
		t.Errorf("Expected line height 1, got %d", cfg.Pager.LineHeight)
	}
	if len(cfg.Pager.ExitKeys) == 0 {
		t.Error("Expected default pager exit keys")
	}
}

func TestDefaultKeybindingsAreSessionCommands(t *testing.T) {
	cfg := config.DefaultConfig()

	for action, keys := range cfg.Keybindings.Normal {
		if !session.IsCommand(action) {
			t.Errorf("normal binding %q is not a session command", action)
		}
		if len(keys) == 0 {
			t.Errorf("Expected %s to have at least one key bound", action)
		}
	}
	for _, name := range session.Commands() {
		if !config.IsNormalAction(name) {
			t.Errorf("session command %q cannot be bound in keybindings.normal", name)
		}
	}
	for action := range config.ActionDescriptions {
		if config.IsNormalAction(action) != session.IsCommand(action) {
			t.Errorf("%q: normal action %v, session command %v", action, config.IsNormalAction(action), session.IsCommand(action))
		}
	}
}

// =============================================================================
// Loading Tests
// =============================================================================

func TestLoadFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtmux", "config.toml")

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Layout.Split != "auto" {
		t.Errorf("Split = %q, want auto", cfg.Layout.Split)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "# dtmux configuration file") {
		t.Error("written config should start with the header")
	}

	again, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("reloading written defaults: %v", err)
	}
	if !slices.Equal(again.Keybindings.Normal["enter_mux_mode"], cfg.Keybindings.Normal["enter_mux_mode"]) {
		t.Error("defaults did not survive a round trip through the file")
	}
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[keybindings.normal]
enter_mux_mode = ["ctrl+a"]
new_tab = []

[pager]
auto_paging = true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := cfg.Keybindings.Normal["enter_mux_mode"]; !slices.Equal(got, []string{"ctrl+a"}) {
		t.Errorf("enter_mux_mode = %v, want [ctrl+a]", got)
	}
	if got := cfg.Keybindings.Normal["new_tab"]; len(got) != 0 {
		t.Errorf("new_tab = %v, want explicitly unbound", got)
	}
	if len(cfg.Keybindings.Normal["close_pane"]) == 0 {
		t.Error("close_pane should fall back to its default")
	}
	if len(cfg.Keybindings.App["quit"]) == 0 {
		t.Error("missing app section should use defaults")
	}
	if !cfg.Pager.AutoPaging {
		t.Error("auto_paging = true was lost")
	}
	if cfg.Pager.LineHeight != 1 || cfg.Appearance.BorderStyle != "rounded" {
		t.Error("missing settings should keep defaults")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad key", "[keybindings.normal]\nnew_pane = [\"ctrl+nope+x\"]\n", "invalid key"},
		{"duplicate key", "[keybindings.normal]\nnew_pane = [\"ctrl+b\"]\n", "already bound"},
		{"unknown action", "[keybindings.normal]\nsplit_pane = [\"ctrl+y\"]\n", "keybindings.normal.split_pane: unknown action"},
		{"app action in normal", "[keybindings.normal]\nquit = [\"ctrl+y\"]\n", "unknown action"},
		{"normal action in app", "[keybindings.app]\nnew_pane = [\"ctrl+y\"]\n", "keybindings.app.new_pane"},
		{"bad split", "[layout]\nsplit = \"diagonal\"\n", "layout.split"},
		{"bad border", "[appearance]\nborder_style = \"wavy\"\n", "border_style"},
		{"bad toml", "[pager\n", "parse config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

// =============================================================================
// KeybindRegistry Tests
// =============================================================================

func TestKeybindRegistry_GetKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	keys := registry.GetKeys("new_pane")
	if len(keys) == 0 {
		t.Error("Expected new_pane to have keys")
	}
}

func TestKeybindRegistry_GetAction(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	tests := []struct {
		key  string
		want string
	}{
		{"ctrl+b", "enter_mux_mode"},
		{"shift+ctrl+p", "toggle_paging"},
		{"ctrl+P", "toggle_paging"},
		{"F1", "toggle_help"},
		{"ctrl+q", "quit"},
	}
	for _, tc := range tests {
		if got := registry.GetAction(tc.key); got != tc.want {
			t.Errorf("GetAction(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestKeybindRegistry_GetKeysForDisplay(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	if got, want := registry.GetKeysForDisplay("toggle_paging"), "Ctrl+Shift+P"; got != want {
		t.Errorf("GetKeysForDisplay(toggle_paging) = %q, want %q", got, want)
	}
	if got := registry.GetKeysForDisplay("nonexistent_action"); got != "" {
		t.Errorf("unbound action displays as %q", got)
	}
}

func TestKeybindRegistry_UnknownAction(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	keys := registry.GetKeys("nonexistent_action")
	if len(keys) != 0 {
		t.Errorf("Expected empty keys for nonexistent action, got %v", keys)
	}
}

func TestKeybindRegistry_UnknownKey(t *testing.T) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	action := registry.GetAction("ctrl+shift+alt+x")
	if action != "" {
		t.Errorf("Expected empty action for unbound key, got %q", action)
	}
}

// =============================================================================
// Key Normalizer Tests
// =============================================================================

func TestKeyNormalizer(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"ctrl+a", "ctrl+a"},
		{"Ctrl+A", "ctrl+shift+a"},
		{"CTRL+a", "ctrl+a"},
		{"return", "return"},
		{"return", "enter"},
		{"escape", "esc"},
		{"shift+p", "P"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := normalizer.NormalizeKey(tc.input)
			if !slices.Contains(got, tc.expected) {
				t.Errorf("NormalizeKey(%q) = %v, want to contain %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestKeyNormalizer_ValidateKey(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input   string
		isValid bool
	}{
		{"ctrl+a", true},
		{"n", true},
		{"enter", true},
		{"esc", true},
		{"tab", true},
		{"f12", true},
		{"hyper+x", false},
		{"ctrl+", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			valid, _ := normalizer.ValidateKey(tc.input)
			if valid != tc.isValid {
				t.Errorf("ValidateKey(%q) = %v, want %v", tc.input, valid, tc.isValid)
			}
		})
	}
}

func TestFormatKey(t *testing.T) {
	tests := map[string]string{
		"ctrl+shift+p": "Ctrl+Shift+P",
		"pgdown":       "PgDn",
		"f1":           "F1",
		"space":        "Space",
		"q":            "q",
		"P":            "P",
		"ctrl++":       "Ctrl++",
	}
	for in, want := range tests {
		if got := config.FormatKey(in); got != want {
			t.Errorf("FormatKey(%q) = %q, want %q", in, got, want)
		}
	}
}

// =============================================================================
// Help Sections Tests
// =============================================================================

func TestActionDescriptions(t *testing.T) {
	for _, group := range config.ActionGroups {
		for _, action := range group.Actions {
			if config.ActionDescriptions[action] == "" {
				t.Errorf("Expected description for action %q", action)
			}
		}
	}
}

func TestGetKeybindings(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())
	sections := config.GetKeybindings(registry)

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	for _, want := range []string{"Panes", "Modes", "MUX MODE (one key):", "PAGER:"} {
		if !slices.Contains(titles, want) {
			t.Errorf("sections %v missing %q", titles, want)
		}
	}

	static := config.GetKeybindings(nil)
	if len(static) != 2 {
		t.Errorf("GetKeybindings(nil) returned %d sections, want the 2 fixed ones", len(static))
	}
}

// =============================================================================
// Watch Tests
// =============================================================================

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.SaveFile(config.DefaultConfig(), path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *config.UserConfig, 4)
	started := make(chan error, 1)
	go func() {
		started <- config.Watch(ctx, path, func(cfg *config.UserConfig, err error) {
			if err == nil {
				got <- cfg
			}
		})
	}()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[layout]\nsplit = \"row\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// the truncate may be seen on its own, so wait for the final contents
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.Layout.Split == "row" {
				return
			}
		case err := <-started:
			t.Fatalf("Watch returned early: %v", err)
		case <-timeout:
			t.Fatal("no reload with the new contents")
		}
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkKeybindRegistry_GetAction(b *testing.B) {
	cfg := config.DefaultConfig()
	registry := config.NewKeybindRegistry(cfg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetAction("ctrl+b")
	}
}

func BenchmarkNormalizeKey(b *testing.B) {
	normalizer := config.NewKeyNormalizer()
	keys := []string{"ctrl+a", "Ctrl+Shift+B", "alt+1", "return"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = normalizer.NormalizeKey(keys[i%len(keys)])
	}
}
