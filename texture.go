package gles

import "fmt"

// Texture owns a GL 2D texture.
type Texture struct {
	dev      Device
	handle   uint32
	width    int
	height   int
	channels int
}

// NewTexture uploads tightly packed 8-bit pixels. channels selects the pixel
// format: 1 (red), 3 (RGB) or 4 (RGBA). Sampling is nearest-neighbor with
// clamp-to-edge wrapping and no mipmaps.
func NewTexture(dev Device, pixels []byte, width, height, channels int) (*Texture, error) {
	if len(pixels) == 0 {
		return nil, ErrNoPixels
	}

	var internalFormat, format Enum
	var alignment int32
	switch channels {
	case 1:
		internalFormat, format, alignment = R8, RED, 1
	case 3:
		internalFormat, format, alignment = RGB8, RGB, 1
	case 4:
		internalFormat, format, alignment = RGBA8, RGBA_FORMAT, 4
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	if need := width * height * channels; len(pixels) < need {
		return nil, fmt.Errorf("%w: %dx%dx%d needs %d bytes, got %d",
			ErrTextureSize, width, height, channels, need, len(pixels))
	}

	handle := dev.GenTexture()
	dev.BindTexture(TEXTURE_2D, handle)

	dev.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, int32(CLAMP_TO_EDGE))
	dev.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, int32(CLAMP_TO_EDGE))
	dev.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, int32(NEAREST))
	dev.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, int32(NEAREST))

	dev.PixelStorei(UNPACK_ALIGNMENT, alignment)
	dev.TexImage2D(TEXTURE_2D, 0, internalFormat, int32(width), int32(height), format, UNSIGNED_BYTE, pixels)

	dev.BindTexture(TEXTURE_2D, 0)

	logger.Debug("texture created", "texture", handle, "width", width, "height", height, "channels", channels)
	return &Texture{
		dev:      dev,
		handle:   handle,
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

// Bind activates texture unit `unit` and binds the texture there.
// It panics if the unit is beyond MAX_COMBINED_TEXTURE_IMAGE_UNITS.
func (t *Texture) Bind(unit uint32) {
	if limit := t.dev.MaxCombinedTextureUnits(); int64(unit) >= int64(limit) {
		panic(fmt.Sprintf("gles: texture unit %d out of range, pick a unit between 0 and %d", unit, limit-1))
	}
	t.dev.ActiveTexture(TEXTURE0 + Enum(unit))
	t.dev.BindTexture(TEXTURE_2D, t.handle)
}

// Handle returns the GL texture name, or 0 after Delete.
func (t *Texture) Handle() uint32 { return t.handle }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Channels returns the number of 8-bit channels per pixel.
func (t *Texture) Channels() int { return t.channels }

// Delete releases the texture. Calling it more than once is a no-op.
func (t *Texture) Delete() {
	if t.handle == 0 {
		return
	}
	t.dev.DeleteTexture(t.handle)
	logger.Debug("texture deleted", "texture", t.handle)
	t.handle = 0
}
