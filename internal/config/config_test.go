package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10.0, cfg.Node.HeaderHeight)
	assert.Equal(t, 50.0, cfg.Node.Width)
	assert.Equal(t, 50.0, cfg.Node.Height)
	assert.Equal(t, 5.0, cfg.Node.CornerRadius)
	assert.Equal(t, 10.0, cfg.Port.Size)
	assert.Equal(t, 1.25, cfg.View.ZoomIn)
	assert.Equal(t, 0.8, cfg.View.ZoomOut)
	assert.True(t, cfg.Editor.Confirmations)
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	assert.Equal(t, "/tmp/test-xdg/nodegraph", Dir())
	assert.Equal(t, "/tmp/test-xdg/nodegraph/config.toml", Path())

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "nodegraph"), Dir())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
log_level = "debug"

[node]
header_height = 20
width = 0
height = 0

[view]
zoom_in = 1.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 20.0, cfg.Node.HeaderHeight)
	assert.Equal(t, 0.0, cfg.Node.Width)
	assert.Equal(t, 5.0, cfg.Node.CornerRadius)
	assert.Equal(t, 1.5, cfg.View.ZoomIn)
	assert.Equal(t, 0.8, cfg.View.ZoomOut)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"zoom in below one":  "[view]\nzoom_in = 0.9\n",
		"zoom out above one": "[view]\nzoom_out = 1.1\n",
		"negative grid":      "[view]\ngrid = -100\n",
		"unknown level":      "log_level = \"loud\"\n",
		"header too tall":    "[node]\nheader_height = 60\n",
		"negative width":     "[node]\nwidth = -1\n",
		"zero port":          "[port]\nsize = 0\n",
		"bad toml":           "[view\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Export.Scale = 2
	cfg.Editor.Demo = false
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExportPath(t *testing.T) {
	cfg := Default()
	path, err := cfg.ExportPath("graph.png")
	require.NoError(t, err)
	assert.Equal(t, "graph.png", path)

	dir := filepath.Join(t.TempDir(), "out")
	cfg.Export.Directory = dir
	path, err = cfg.ExportPath("graph.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "graph.png"), path)
	_, err = os.Stat(dir)
	assert.NoError(t, err)

	path, err = cfg.ExportPath("/abs/graph.png")
	require.NoError(t, err)
	assert.Equal(t, "/abs/graph.png", path)
}

func TestExportPathUnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	cfg := Default()
	cfg.Export.Directory = filepath.Join(blocker, "out")
	path, err := cfg.ExportPath("graph.png")
	assert.Error(t, err)
	assert.Empty(t, path)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = "warn"
	log := cfg.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", slog.Int("node", 3))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "node=3")
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(path, Default()))

	changes := make(chan *Config, 4)
	w, err := Watch(path, func(c *Config) { changes <- c }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[view]\npan_step = 9\n"), 0o644))

	select {
	case cfg := <-changes:
		assert.Equal(t, 9.0, cfg.View.PanStep)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
}
