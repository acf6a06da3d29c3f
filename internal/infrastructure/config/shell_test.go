package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShellFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadShell(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := LoadShell("")
		require.NoError(t, err)
		assert.Equal(t, "glasspane", cfg.App.Name)
		assert.Equal(t, "main", cfg.Window.Label)
		assert.Equal(t, uint32(800), cfg.Window.Width)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadShell(filepath.Join(t.TempDir(), "shell.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "main", cfg.Window.Label)
	})

	t.Run("parses YAML", func(t *testing.T) {
		path := writeShellFile(t, "shell.yaml", `
app:
  name: notepad
  version: 1.2.3
window:
  label: main
  title: Notepad
  width: 1024
  height: 768
  min_width: 400
  min_height: 300
  resizable: false
`)
		cfg, err := LoadShell(path)
		require.NoError(t, err)
		assert.Equal(t, "notepad", cfg.App.Name)
		assert.Equal(t, "1.2.3", cfg.App.Version)
		assert.Equal(t, "Notepad", cfg.Window.Title)
		assert.Equal(t, uint32(1024), cfg.Window.Width)
		assert.Equal(t, uint32(400), cfg.Window.MinWidth)
		assert.False(t, cfg.Window.IsResizable())
		assert.True(t, cfg.Window.IsVisible())
	})

	t.Run("parses TOML", func(t *testing.T) {
		path := writeShellFile(t, "shell.toml", `
[app]
name = "notepad"
version = "1.2.3"

[window]
label = "main"
title = "Notepad"
width = 1024
height = 768
fullscreen = true
`)
		cfg, err := LoadShell(path)
		require.NoError(t, err)
		assert.Equal(t, "notepad", cfg.App.Name)
		assert.Equal(t, uint32(768), cfg.Window.Height)
		assert.True(t, cfg.Window.Fullscreen)
	})

	t.Run("unsupported extension is an error", func(t *testing.T) {
		path := writeShellFile(t, "shell.ini", "[window]\nlabel=main\n")
		_, err := LoadShell(path)
		assert.Error(t, err)
	})

	t.Run("malformed file is an error, not a silent default", func(t *testing.T) {
		path := writeShellFile(t, "shell.yaml", "window: [not a mapping")
		_, err := LoadShell(path)
		assert.Error(t, err)
	})

	t.Run("validation rejects zero dimensions", func(t *testing.T) {
		path := writeShellFile(t, "shell.yaml", `
window:
  label: main
  width: 0
  height: 600
`)
		_, err := LoadShell(path)
		assert.Error(t, err)
	})

	t.Run("validation rejects inverted min and max", func(t *testing.T) {
		path := writeShellFile(t, "shell.yaml", `
window:
  label: main
  width: 800
  height: 600
  min_width: 1920
  max_width: 1024
`)
		_, err := LoadShell(path)
		assert.Error(t, err)
	})
}

func TestBooleanDefaults(t *testing.T) {
	w := &WindowConfig{}
	assert.True(t, w.IsResizable())
	assert.True(t, w.IsVisible())

	no := false
	w.Resizable = &no
	w.Visible = &no
	assert.False(t, w.IsResizable())
	assert.False(t, w.IsVisible())
}
