package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/gles"
	"github.com/go-theft-auto/gles/internal/gltest"
)

func TestNewRenderersDeleteReleasesEverything(t *testing.T) {
	dev := gltest.New()

	r, err := newRenderers(dev, &viewport{w: 320, h: 96})
	require.NoError(t, err)
	require.NotEmpty(t, dev.Live())

	r.delete()
	assert.Empty(t, dev.Live())
	assert.Zero(t, dev.DoubleDeletes)
}

func TestNewRenderersFailureReleasesPartialObjects(t *testing.T) {
	dev := gltest.New()
	// Only the sprite shader compiles, so the text renderer fails after the
	// sprite renderer was created.
	dev.CompileHook = func(_ gles.Enum, source string) (bool, string) {
		return strings.Contains(source, "u_use_texture"), "unsupported"
	}

	r, err := newRenderers(dev, &viewport{w: 320, h: 96})
	assert.Nil(t, r)
	var ce *gles.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Empty(t, dev.Live(), "the sprite renderer must be released")
	assert.Zero(t, dev.DoubleDeletes)
}
