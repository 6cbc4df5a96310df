package main

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/dtmux/internal/app"
	"github.com/Gaurav-Gosain/dtmux/internal/config"
	"github.com/Gaurav-Gosain/dtmux/internal/logging"
	"github.com/Gaurav-Gosain/dtmux/internal/theme"
)

// runLocal runs the TUI until the user quits or the last pane closes. The
// config file is watched and reloaded while it runs.
func runLocal(ctx context.Context) error {
	debug := debugMode || logging.DebugFromEnv()
	logger, closer, err := logging.OpenFile(debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", path, "err", err)
		cfg = config.DefaultConfig()
	}
	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		logger.Warn("theme", "err", err)
	}
	logger.Info("starting", "version", version, "config", path, "themed", theme.IsEnabled())

	model, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithContext(ctx))

	go func() {
		err := config.Watch(ctx, path, func(cfg *config.UserConfig, err error) {
			p.Send(app.ConfigReloadedMsg{Config: cfg, Err: err})
		})
		if err != nil {
			logger.Warn("config watcher stopped", "err", err)
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
