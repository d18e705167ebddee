package main

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"

	"nodegraph/internal/config"
	"nodegraph/internal/render"
	"nodegraph/internal/scene"
)

func pngOptions(cfg *config.Config) render.PNGOptions {
	opts := render.DefaultPNGOptions()
	opts.Scale = cfg.Export.Scale
	opts.Grid = cfg.View.Grid
	if opts.Grid == 0 {
		opts.Grid = -1
	}
	return opts
}

// exportGraph refreshes g and writes it as a PNG under the export
// directory, returning the path written.
func exportGraph(g *scene.Graph, cfg *config.Config, name string) (string, error) {
	g.Refresh()
	path, err := cfg.ExportPath(name + ".png")
	if err != nil {
		return "", err
	}
	if err := render.ExportPNG(g.Snapshot(), path, pngOptions(cfg)); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, nil
}

// exportCurrent exports the current buffer and copies the written path
// to the clipboard.
func (m *model) exportCurrent() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	path, err := exportGraph(buf.graph, m.config, buf.name)
	if err != nil {
		m.errorMessage = err.Error()
		m.logger.Warn("png export failed", slog.String("error", err.Error()))
		return
	}
	m.logger.Info("png exported", slog.String("path", path))
	m.successMessage = "Exported " + path
	if err := clipboard.WriteAll(path); err == nil {
		m.successMessage += " (path copied)"
	}
}
