package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/conductor/internal/config"
	"github.com/papapumpkin/conductor/internal/watch"
)

// Run launches the dashboard: starts the file watcher when enabled, loads
// saved UI preferences, and blocks until the user quits. While the dashboard
// owns the terminal, log output is redirected to a file in the state dir so
// parser warnings cannot corrupt the screen.
func Run(cfg config.Config) error {
	restoreLog := redirectLogToFile(cfg)
	defer restoreLog()

	prefs, err := LoadPrefs(cfg.StateDir)
	if err != nil {
		slog.Warn("failed to load UI prefs, using defaults", "error", err)
		prefs = Prefs{Filter: cfg.Filter}
	}
	if prefs.Filter == "" {
		prefs.Filter = cfg.Filter
	}

	var batches <-chan []string
	var watcher *watch.Watcher
	if cfg.Watch {
		watcher, err = watch.New(cfg.ConductorDir, time.Duration(cfg.DebounceMS)*time.Millisecond)
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		defer watcher.Stop()
		batches = watcher.Batches
	}

	m := NewModel(cfg.ConductorDir, cfg.StateDir, prefs, batches)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// redirectLogToFile points slog at <state_dir>/conductor.log for the lifetime
// of the dashboard. The returned func restores the previous logger. Failures
// leave logging where it was.
func redirectLogToFile(cfg config.Config) func() {
	prev := slog.Default()
	noop := func() {}

	if cfg.StateDir == "" {
		return noop
	}
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return noop
	}
	f, err := os.OpenFile(filepath.Join(cfg.StateDir, "conductor.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return noop
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))

	return func() {
		slog.SetDefault(prev)
		f.Close()
	}
}
