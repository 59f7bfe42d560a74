// Package parse decodes the assets the renderers consume: images, TrueType
// fonts baked into a glyph atlas, and Wavefront OBJ meshes.
package parse

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/go-theft-auto/gles"
)

// ErrEmptyImage is returned for empty input and zero-sized images.
var ErrEmptyImage = errors.New("empty image")

// Image is a decoded image with tightly packed rows, top row first.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image. Gray images
// keep one channel, opaque images get three, everything else four.
func DecodeImage(buf []byte) (*Image, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyImage
	}
	src, format, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode %s image: %w", format, ErrEmptyImage)
	}

	switch src.(type) {
	case *image.Gray, *image.Gray16:
		gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
		return &Image{Pix: gray.Pix, Width: b.Dx(), Height: b.Dy(), Channels: 1}, nil
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	if !isOpaque(src) {
		return &Image{Pix: nrgba.Pix, Width: b.Dx(), Height: b.Dy(), Channels: 4}, nil
	}

	rgb := make([]byte, 0, b.Dx()*b.Dy()*3)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		rgb = append(rgb, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return &Image{Pix: rgb, Width: b.Dx(), Height: b.Dy(), Channels: 3}, nil
}

func isOpaque(img image.Image) bool {
	if _, ok := img.(*image.YCbCr); ok {
		return true
	}
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}

// Texture uploads the image as a new texture.
func (img *Image) Texture(dev gles.Device) (*gles.Texture, error) {
	return gles.NewTexture(dev, img.Pix, img.Width, img.Height, img.Channels)
}

// EncodePNG writes img as PNG. Screenshots read back from the framebuffer
// and baked font atlases are saved this way.
func EncodePNG(w io.Writer, img *Image) error {
	if img.Width <= 0 || img.Height <= 0 {
		return ErrEmptyImage
	}
	if len(img.Pix) != img.Width*img.Height*img.Channels {
		return fmt.Errorf("encode png: %d bytes for %dx%dx%d", len(img.Pix), img.Width, img.Height, img.Channels)
	}

	rect := image.Rect(0, 0, img.Width, img.Height)
	var out image.Image
	switch img.Channels {
	case 1:
		out = &image.Gray{Pix: img.Pix, Stride: img.Width, Rect: rect}
	case 3:
		nrgba := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(img.Pix); i, j = i+3, j+4 {
			copy(nrgba.Pix[j:j+3], img.Pix[i:i+3])
			nrgba.Pix[j+3] = 0xFF
		}
		out = nrgba
	case 4:
		out = &image.NRGBA{Pix: img.Pix, Stride: img.Width * 4, Rect: rect}
	default:
		return fmt.Errorf("encode png: %w: %d", gles.ErrUnsupportedChannels, img.Channels)
	}
	return png.Encode(w, out)
}

// At returns the color of pixel (x, y).
func (img *Image) At(x, y int) color.NRGBA {
	i := (y*img.Width + x) * img.Channels
	switch img.Channels {
	case 1:
		v := img.Pix[i]
		return color.NRGBA{v, v, v, 0xFF}
	case 3:
		return color.NRGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], 0xFF}
	default:
		return color.NRGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
	}
}
