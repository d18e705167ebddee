package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"nodegraph/internal/config"
)

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.Path()
	}
	return config.Load(path)
}

// openLog opens the log file next to the config. The alt screen owns
// stdout, so logs never go there.
func openLog(cfg *config.Config) (*slog.Logger, func()) {
	dir := config.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cfg.NewLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return cfg.NewLogger(io.Discard), func() {}
	}
	return cfg.NewLogger(f), func() { f.Close() }
}

// watchConfig forwards config file edits to the running program.
func watchConfig(p *tea.Program, path string, logger *slog.Logger) (*config.Watcher, error) {
	if path == "" {
		path = config.Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}
	return config.Watch(path,
		func(cfg *config.Config) {
			logger.Info("config reloaded", slog.String("path", path))
			p.Send(configReloadedMsg{cfg: cfg})
		},
		config.WithOnError(func(err error) {
			logger.Warn("config reload failed", slog.String("error", err.Error()))
			p.Send(configErrorMsg{err: err})
		}),
	)
}
