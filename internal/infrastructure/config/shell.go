package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// ShellConfig is the shell definition file: app identity and the main
// window the host creates on startup.
type ShellConfig struct {
	App    AppConfig    `yaml:"app" toml:"app" json:"app"`
	Window WindowConfig `yaml:"window" toml:"window" json:"window"`
}

// AppConfig identifies the application.
type AppConfig struct {
	Name    string `yaml:"name" toml:"name" json:"name"`
	Version string `yaml:"version" toml:"version" json:"version"`
}

// WindowConfig declares the main window. Omitted booleans default to true.
type WindowConfig struct {
	Label      string `yaml:"label" toml:"label" json:"label"`
	Title      string `yaml:"title" toml:"title" json:"title"`
	Width      uint32 `yaml:"width" toml:"width" json:"width"`
	Height     uint32 `yaml:"height" toml:"height" json:"height"`
	MinWidth   uint32 `yaml:"min_width" toml:"min_width" json:"min_width"`
	MinHeight  uint32 `yaml:"min_height" toml:"min_height" json:"min_height"`
	MaxWidth   uint32 `yaml:"max_width" toml:"max_width" json:"max_width"`
	MaxHeight  uint32 `yaml:"max_height" toml:"max_height" json:"max_height"`
	X          int    `yaml:"x" toml:"x" json:"x"`
	Y          int    `yaml:"y" toml:"y" json:"y"`
	Resizable  *bool  `yaml:"resizable" toml:"resizable" json:"resizable"`
	Visible    *bool  `yaml:"visible" toml:"visible" json:"visible"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen" json:"fullscreen"`
}

// DefaultShell returns the shell definition used when no file is present.
func DefaultShell() *ShellConfig {
	return &ShellConfig{
		App: AppConfig{
			Name:    "glasspane",
			Version: "0.1.0",
		},
		Window: WindowConfig{
			Label:  "main",
			Title:  "glasspane",
			Width:  800,
			Height: 600,
		},
	}
}

// LoadShell loads a shell definition from path. YAML and TOML are supported,
// selected by extension. An empty path or a missing file yields defaults;
// a file that exists but cannot be parsed is an error.
func LoadShell(path string) (*ShellConfig, error) {
	if path == "" {
		return DefaultShell(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultShell(), nil
		}
		return nil, fmt.Errorf("failed to read shell config: %w", err)
	}

	cfg := DefaultShell()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse shell config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse shell config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported shell config format: %s", filepath.Ext(path))
	}

	if err := validateShell(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsResizable resolves the omitted-means-true default.
func (w *WindowConfig) IsResizable() bool {
	return w.Resizable == nil || *w.Resizable
}

// IsVisible resolves the omitted-means-true default.
func (w *WindowConfig) IsVisible() bool {
	return w.Visible == nil || *w.Visible
}

func validateShell(cfg *ShellConfig) error {
	if cfg.Window.Label == "" {
		return fmt.Errorf("shell config: window label cannot be empty")
	}
	if cfg.Window.Width == 0 || cfg.Window.Height == 0 {
		return fmt.Errorf("shell config: window dimensions must be non-zero")
	}
	if cfg.Window.MinWidth > 0 && cfg.Window.MaxWidth > 0 && cfg.Window.MinWidth > cfg.Window.MaxWidth {
		return fmt.Errorf("shell config: min_width exceeds max_width")
	}
	if cfg.Window.MinHeight > 0 && cfg.Window.MaxHeight > 0 && cfg.Window.MinHeight > cfg.Window.MaxHeight {
		return fmt.Errorf("shell config: min_height exceeds max_height")
	}
	return nil
}
