package opengl

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// WindowConfig describes the window NewWindow opens.
type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	VSync      bool   `toml:"vsync"`
	Fullscreen bool   `toml:"fullscreen"`
	// Hidden opens the window invisible, for offscreen captures.
	Hidden bool `toml:"hidden"`
	// Verbose turns on debug logging of GPU object lifetimes.
	Verbose bool `toml:"verbose"`
}

// DefaultWindowConfig returns an 800x600 windowed config with vsync on.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:  "gles",
		Width:  800,
		Height: 600,
		VSync:  true,
	}
}

// ParseWindowConfig decodes TOML over the defaults. Keys that are not part
// of WindowConfig are rejected.
func ParseWindowConfig(data []byte) (WindowConfig, error) {
	cfg := DefaultWindowConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return WindowConfig{}, fmt.Errorf("window config: %s", strict.String())
		}
		return WindowConfig{}, fmt.Errorf("window config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return WindowConfig{}, err
	}
	return cfg, nil
}

// LoadWindowConfig reads a TOML file. A missing file yields the defaults.
func LoadWindowConfig(path string) (WindowConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultWindowConfig(), nil
	}
	if err != nil {
		return WindowConfig{}, fmt.Errorf("read window config: %w", err)
	}
	return ParseWindowConfig(data)
}

// Validate rejects window sizes the renderers cannot project onto.
func (c WindowConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window config: invalid size %dx%d", c.Width, c.Height)
	}
	return nil
}
