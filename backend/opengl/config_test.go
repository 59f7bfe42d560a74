package opengl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowConfigOverridesDefaults(t *testing.T) {
	cfg, err := ParseWindowConfig([]byte(`
title = "demo"
width = 1280
vsync = false
verbose = true
`))
	require.NoError(t, err)
	assert.Equal(t, WindowConfig{
		Title:   "demo",
		Width:   1280,
		Height:  600,
		VSync:   false,
		Verbose: true,
	}, cfg)
}

func TestParseWindowConfigEmptyIsDefault(t *testing.T) {
	cfg, err := ParseWindowConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowConfig(), cfg)
}

func TestParseWindowConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"zero width", "width = 0", "invalid size 0x600"},
		{"negative height", "height = -1", "invalid size 800x-1"},
		{"unknown key", "depth = 24", "depth"},
		{"wrong type", `width = "wide"`, "window config"},
		{"syntax", "width = ", "window config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWindowConfig([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadWindowConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadWindowConfig(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowConfig(), cfg)

	path := filepath.Join(dir, "window.toml")
	require.NoError(t, os.WriteFile(path, []byte("fullscreen = true\nheight = 720\n"), 0o644))
	cfg, err = LoadWindowConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Fullscreen)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 800, cfg.Width)
}
