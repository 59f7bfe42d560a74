package gles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/gles"
	"github.com/go-theft-auto/gles/internal/gltest"
)

func TestNewTextureFormats(t *testing.T) {
	tests := []struct {
		channels       int
		internalFormat gles.Enum
		format         gles.Enum
		alignment      int32
	}{
		{channels: 1, internalFormat: gles.R8, format: gles.RED, alignment: 1},
		{channels: 3, internalFormat: gles.RGB8, format: gles.RGB, alignment: 1},
		{channels: 4, internalFormat: gles.RGBA8, format: gles.RGBA_FORMAT, alignment: 4},
	}

	for _, tt := range tests {
		dev := gltest.New()
		pixels := make([]byte, 5*3*tt.channels)

		tex, err := gles.NewTexture(dev, pixels, 5, 3, tt.channels)
		require.NoError(t, err, "channels=%d", tt.channels)

		assert.Equal(t, 5, tex.Width())
		assert.Equal(t, 3, tex.Height())
		assert.Equal(t, tt.channels, tex.Channels())

		info, ok := dev.Texture(tex.Handle())
		require.True(t, ok)
		assert.Equal(t, tt.internalFormat, info.InternalFormat)
		assert.Equal(t, tt.format, info.Format)
		assert.Equal(t, tt.alignment, info.Alignment)
		assert.Equal(t, int32(5), info.Width)
		assert.Equal(t, int32(3), info.Height)
		assert.Equal(t, int32(gles.CLAMP_TO_EDGE), info.Params[gles.TEXTURE_WRAP_S])
		assert.Equal(t, int32(gles.CLAMP_TO_EDGE), info.Params[gles.TEXTURE_WRAP_T])
		assert.Equal(t, int32(gles.NEAREST), info.Params[gles.TEXTURE_MIN_FILTER])
		assert.Equal(t, int32(gles.NEAREST), info.Params[gles.TEXTURE_MAG_FILTER])

		assert.Zero(t, dev.BoundTexture(0), "upload must unbind the texture")

		tex.Delete()
		assert.Empty(t, dev.Live())
	}
}

func TestNewTextureRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		pixels   []byte
		w, h, ch int
		want     error
	}{
		{name: "nil pixels", pixels: nil, w: 1, h: 1, ch: 4, want: gles.ErrNoPixels},
		{name: "empty pixels", pixels: []byte{}, w: 1, h: 1, ch: 4, want: gles.ErrNoPixels},
		{name: "two channels", pixels: make([]byte, 8), w: 2, h: 2, ch: 2, want: gles.ErrUnsupportedChannels},
		{name: "zero channels", pixels: make([]byte, 8), w: 2, h: 2, ch: 0, want: gles.ErrUnsupportedChannels},
		{name: "five channels", pixels: make([]byte, 20), w: 2, h: 2, ch: 5, want: gles.ErrUnsupportedChannels},
		{name: "short buffer", pixels: make([]byte, 15), w: 2, h: 2, ch: 4, want: gles.ErrTextureSize},
		{name: "zero width", pixels: make([]byte, 4), w: 0, h: 1, ch: 4, want: gles.ErrTextureSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gltest.New()
			tex, err := gles.NewTexture(dev, tt.pixels, tt.w, tt.h, tt.ch)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, tex)
			assert.Zero(t, dev.CallCount("GenTexture"), "no GL object before validation")
		})
	}
}

func TestTextureBind(t *testing.T) {
	dev := gltest.New()
	tex, err := gles.NewTexture(dev, make([]byte, 4), 1, 1, 4)
	require.NoError(t, err)
	defer tex.Delete()

	tex.Bind(3)
	assert.Equal(t, uint32(3), dev.ActiveUnit())
	assert.Equal(t, tex.Handle(), dev.BoundTexture(3))

	tex.Bind(15)
	assert.Equal(t, tex.Handle(), dev.BoundTexture(15))

	assert.Panics(t, func() { tex.Bind(16) })
	assert.Panics(t, func() { tex.Bind(1 << 20) })
}

func TestTextureDeleteIsIdempotent(t *testing.T) {
	dev := gltest.New()
	tex, err := gles.NewTexture(dev, make([]byte, 3), 1, 1, 3)
	require.NoError(t, err)

	tex.Delete()
	tex.Delete()
	assert.Equal(t, 1, dev.Deletes("texture"))
	assert.Zero(t, dev.DoubleDeletes)
}
