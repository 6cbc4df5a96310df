// Package main implements dtmux, a terminal multiplexer front end with
// split and tabbed panes, a one-key mux mode and a less-style pager that
// throttles program output.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/log/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/dtmux/internal/config"
	"github.com/Gaurav-Gosain/dtmux/internal/logging"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dtmux",
		Short: "Terminal multiplexer with a built-in pager",
		Long: `dtmux - terminal multiplexer with a built-in pager

Split and tab panes from a one-key mux mode, page through output like less,
and pause programs that print faster than you can read.`,
		Example: `  # Run dtmux
  dtmux

  # Run with debug logging (written to the log file)
  dtmux --debug

  # Use another config file
  dtmux --config ./dtmux.toml

  # Edit configuration
  dtmux config edit

  # List all keybindings
  dtmux keybinds list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default is $XDG_CONFIG_HOME/dtmux/config.toml)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dtmux configuration",
		Long:  `Manage the dtmux configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the dtmux configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the dtmux configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running dtmux picks up the
saved file without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var force bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the dtmux configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(force)
		},
	}
	configResetCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite without asking")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect dtmux keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)

	rootCmd.AddCommand(configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

// cliLogger reports to stderr; the TUI logs to a file instead.
func cliLogger() *log.Logger {
	return logging.New(os.Stderr, "dtmux", debugMode || logging.DebugFromEnv())
}

// resolveConfigPath returns --config when given, the XDG location otherwise.
func resolveConfigPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("could not determine config path: %w", err)
	}
	return path, nil
}

// loadConfig loads the config file, falling back to defaults with a warning.
func loadConfig(logger *log.Logger) *config.UserConfig {
	path, err := resolveConfigPath()
	if err == nil {
		var cfg *config.UserConfig
		if cfg, err = config.LoadFile(path); err == nil {
			return cfg
		}
	}
	logger.Warn("failed to load config, using defaults", "err", err)
	return config.DefaultConfig()
}

// printConfigPath prints the config file path
func printConfigPath() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	// LoadFile writes the defaults when the file is missing.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadFile(configPath); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	if _, err := config.LoadFile(configPath); err != nil {
		cliLogger().Warn("saved config is invalid, dtmux will keep using defaults", "err", err)
	}
	return nil
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(force bool) error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.SaveFile(config.DefaultConfig(), configPath); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: dtmux config edit")
	return nil
}
