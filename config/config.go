// Package config loads the viewer's TOML configuration file.
//
// A missing file at the default location yields the defaults; a file named
// explicitly must exist. Unknown tables and keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/jv/keymap"
	"github.com/lixenwraith/jv/terminal"
)

var (
	ErrUnknownColor     = errors.New("unknown color")
	ErrUnknownColorMode = errors.New("unknown color mode")
	ErrUnknownElement   = errors.New("unknown theme element")
)

const (
	appName  = "jv"
	fileName = "config.toml"
)

// Config is the decoded configuration file
type Config struct {
	UI     UI                   `toml:"ui"`
	Theme  map[string]StyleSpec `toml:"theme"`
	Parser Parser               `toml:"parser"`
	Keys   map[string]string    `toml:"keys"`

	// Path is the file the configuration was read from, empty for defaults
	Path string `toml:"-"`
}

type UI struct {
	Mouse bool   `toml:"mouse"`
	Color string `toml:"color"` // auto, 256 or truecolor
}

type Parser struct {
	DecodeUnicode bool `toml:"decode_unicode"`
}

// StyleSpec describes one theme element; colors are names or #rrggbb
type StyleSpec struct {
	Fg        string `toml:"fg"`
	Bg        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Dim       bool   `toml:"dim"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
	Reverse   bool   `toml:"reverse"`
}

func Default() *Config {
	return &Config{
		UI: UI{
			Mouse: true,
			Color: "auto",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/jv/config.toml, falling back to ~/.config
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, fileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", appName, fileName)
	}
	return ""
}

// Load reads path, or the default location when path is empty
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML data over the defaults
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if _, err := cfg.ColorMode(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ColorMode resolves ui.color; auto detects from the environment
func (c *Config) ColorMode() (terminal.ColorMode, error) {
	switch strings.ToLower(c.UI.Color) {
	case "", "auto":
		return terminal.DetectColorMode(), nil
	case "256":
		return terminal.ColorMode256, nil
	case "truecolor", "24bit":
		return terminal.ColorModeTrueColor, nil
	}
	return terminal.ColorMode256, fmt.Errorf("[ui] color %q: %w", c.UI.Color, ErrUnknownColorMode)
}

// Keymap returns the default bindings with the [keys] overrides applied
func (c *Config) Keymap() (*keymap.Table, error) {
	override, err := keymap.Parse(c.Keys)
	if err != nil {
		return nil, err
	}
	return keymap.Merge(keymap.Default(), override), nil
}
