// Command gen renders the sprite and text renderers with sample data, reads
// the framebuffer back and saves PNG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/gles"
	"github.com/go-theft-auto/gles/backend/opengl"
	"github.com/go-theft-auto/gles/parse"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// viewport is the projection size the renderers see; each screenshot
// resizes it.
type viewport struct{ w, h int }

func (v *viewport) Size() (int, int) { return v.w, v.h }

type renderers struct {
	sprites *gles.SpriteRenderer
	text    *gles.TextRenderer
	sheet   *gles.SpriteSheet
}

type screenshot struct {
	name   string // filename without extension
	width  int
	height int
	draw   func(r *renderers)
}

func run() error {
	cfg := opengl.DefaultWindowConfig()
	cfg.Title = "screenshot-gen"
	cfg.Hidden = true
	window, err := opengl.NewWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()

	dev, err := opengl.NewDevice()
	if err != nil {
		return err
	}

	vp := &viewport{w: cfg.Width, h: cfg.Height}
	r, err := newRenderers(dev, vp)
	if err != nil {
		return err
	}
	defer r.delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if s.width > cfg.Width || s.height > cfg.Height {
			return fmt.Errorf("capture %s: %dx%d exceeds the window", s.name, s.width, s.height)
		}
		vp.w, vp.h = s.width, s.height
		if err := capture(dev, r, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.png (%dx%d)\n", s.name, s.width, s.height)
	}

	for _, err := range gles.DrainErrors(dev) {
		fmt.Fprintln(os.Stderr, err)
	}
	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func newRenderers(dev gles.Device, win gles.Window) (_ *renderers, err error) {
	r := &renderers{}
	defer func() {
		if err != nil {
			r.delete()
		}
	}()

	if r.sprites, err = gles.NewSpriteRenderer(dev, win); err != nil {
		return nil, err
	}
	font, err := parse.NewTrueTypeFont(goregular.TTF, 20)
	if err != nil {
		return nil, err
	}
	if r.text, err = gles.NewTextRenderer(dev, win, font); err != nil {
		return nil, err
	}
	if r.sheet, err = gles.NewSpriteSheet(dev, gradientSheet(), 64, 16, 4, 16); err != nil {
		return nil, err
	}
	return r, nil
}

// delete releases whatever was created; fields left nil by a failed
// newRenderers are skipped.
func (r *renderers) delete() {
	if r.sheet != nil {
		r.sheet.Delete()
	}
	if r.text != nil {
		r.text.Delete()
	}
	if r.sprites != nil {
		r.sprites.Delete()
	}
}

// gradientSheet is a 4x1 sheet of 16px cells shading from red to blue.
func gradientSheet() []byte {
	pix := make([]byte, 64*16*4)
	for y := range 16 {
		for x := range 64 {
			i := (y*64 + x) * 4
			pix[i] = byte(255 - x*4)
			pix[i+1] = byte(y * 16)
			pix[i+2] = byte(x * 4)
			pix[i+3] = 0xFF
		}
	}
	return pix
}

func capture(dev *opengl.Device, r *renderers, s screenshot, outDir string) error {
	dev.Viewport(0, 0, s.width, s.height)
	dev.Clear(0x1F1F24FF)
	s.draw(r)

	img := &parse.Image{
		Pix:      dev.ReadPixels(0, 0, s.width, s.height),
		Width:    s.width,
		Height:   s.height,
		Channels: 4,
	}

	path := filepath.Join(outDir, s.name+".png")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := parse.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "sprites", width: 320, height: 96,
			draw: func(r *renderers) {
				for i := range 4 {
					pos := mgl32.Vec2{float32(16 + i*40), 16}
					r.sprites.Draw(r.sheet, i, 0, pos, 0, gles.White)
					r.sprites.Draw(r.sheet, i, 0, pos.Add(mgl32.Vec2{0, 40}), float32(i)*30, 0xFFFFFF80)
				}
			},
		},
		{
			name: "blit", width: 240, height: 120,
			draw: func(r *renderers) {
				r.sprites.BlitRect(mgl32.Vec2{10, 10}, mgl32.Vec2{110, 110}, gles.Red)
				r.sprites.BlitRect(mgl32.Vec2{60, 30}, mgl32.Vec2{230, 90}, 0x0000FF80)
			},
		},
		{
			name: "text", width: 400, height: 120,
			draw: func(r *renderers) {
				r.text.Draw("The quick brown fox", mgl32.Vec2{12, 12}, gles.White)
				r.text.Draw("jumps over the lazy dog", mgl32.Vec2{12, 44}, gles.Green)
				r.text.Draw("0123456789 !?#%&", mgl32.Vec2{12, 76}, 0xFFCC00FF)
			},
		},
	}
}
