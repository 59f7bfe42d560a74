// Example draws an animated sprite sheet and some text with the gles
// renderers, and plays a sound when W is pressed.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + GLES/X11 headers)
//	go run ./example/         # run this example
//
// Flags:
//
//	-config window.toml   window settings (title, width, height, vsync, fullscreen, verbose)
//	-sheet sprites.png    sprite sheet; a generated checkerboard is used when empty
//	-cell 16              sprite cell size in pixels
//	-sound beep.wav       WAV or Ogg Vorbis played on W
//	-font font.ttf        TrueType font; Go Regular when empty
//
// Escape quits, F toggles fullscreen.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/faiface/beep"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/gles"
	"github.com/go-theft-auto/gles/audio"
	"github.com/go-theft-auto/gles/backend/opengl"
	"github.com/go-theft-auto/gles/parse"
)

const (
	fontSize     = 24
	mixerRate    = beep.SampleRate(44100)
	mixerChannel = 8
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "window.toml", "window config file")
	sheetPath := flag.String("sheet", "", "sprite sheet image")
	cellSize := flag.Int("cell", 16, "sprite cell size in pixels")
	soundPath := flag.String("sound", "", "sound played on W")
	fontPath := flag.String("font", "", "TrueType font")
	flag.Parse()

	cfg, err := opengl.LoadWindowConfig(*configPath)
	if err != nil {
		return err
	}
	gles.SetVerbose(cfg.Verbose)

	window, err := opengl.NewWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()

	dev, err := opengl.NewDevice()
	if err != nil {
		return err
	}
	slog.Info("gl context", "version", dev.Version, "renderer", dev.Renderer, "glsl", dev.GLSL)

	sprites, err := gles.NewSpriteRenderer(dev, window)
	if err != nil {
		return err
	}
	defer sprites.Delete()

	sheet, err := loadSheet(dev, *sheetPath, *cellSize)
	if err != nil {
		return err
	}
	defer sheet.Delete()

	font, err := loadFont(*fontPath)
	if err != nil {
		return err
	}
	text, err := gles.NewTextRenderer(dev, window, font)
	if err != nil {
		return err
	}
	defer text.Delete()

	mixer, chunk, err := loadSound(*soundPath)
	if err != nil {
		return err
	}

	columns := sheet.Columns()
	fullscreen := cfg.Fullscreen
	var angle float32

	for window.PollEvents() {
		kb := window.Keyboard()
		if kb.Clicked(gles.KeyEscape) {
			window.Close()
		}
		if kb.Clicked(gles.KeyF) {
			fullscreen = !fullscreen
			window.SetFullscreen(fullscreen)
		}
		if kb.Clicked(gles.KeyW) && chunk != nil {
			if ch := mixer.Play(chunk, -1, 0); ch < 0 {
				slog.Debug("no free audio channel")
			}
		}

		clock := window.Clock()
		angle += float32(clock.DeltaTime()) * 90
		frame := int(clock.Milliseconds()/150) % columns

		fw, fh := window.FramebufferSize()
		dev.Viewport(0, 0, fw, fh)
		dev.Clear(0x1F1F24FF)

		mouse := window.Mouse()
		sprites.BlitRect(mgl32.Vec2{20, 20}, mgl32.Vec2{220, 60}, 0x00000080)
		sprites.Draw(sheet, frame, 0, mgl32.Vec2{mouse.X, mouse.Y}, angle, gles.White)
		for i := range columns {
			sprites.Draw(sheet, i, 0, mgl32.Vec2{float32(40 + i*(sheet.CellSize()+4)), 120}, 0, gles.White)
		}

		text.Draw(fmt.Sprintf("frame %d  %.1f ms", frame, clock.DeltaTime()*1000), mgl32.Vec2{28, 28}, gles.White)
		if mouse.Down(gles.MouseButtonLeft) {
			text.Draw("click", mgl32.Vec2{mouse.X, mouse.Y - fontSize}, gles.Red)
		}

		if cfg.Verbose {
			gles.DrainErrors(dev)
		}
		window.SwapBuffers()
	}

	return nil
}

func loadSheet(dev gles.Device, path string, cell int) (*gles.SpriteSheet, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("invalid cell size %d", cell)
	}
	img := checkerboard(cell)
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if img, err = parse.DecodeImage(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if cell > img.Width || cell > img.Height {
		return nil, fmt.Errorf("cell size %d exceeds the %dx%d sheet", cell, img.Width, img.Height)
	}
	return gles.NewSpriteSheet(dev, img.Pix, img.Width, img.Height, img.Channels, cell)
}

// checkerboard is a four-frame sheet with a different color per cell.
func checkerboard(cell int) *parse.Image {
	colors := []gles.Color{gles.Red, gles.Green, gles.Blue, gles.White}
	w, h := cell*len(colors), cell
	img := &parse.Image{Pix: make([]byte, w*h*4), Width: w, Height: h, Channels: 4}
	for y := range h {
		for x := range w {
			c := gles.RGBA(colors[x/cell])
			if (x/4+y/4)%2 == 1 {
				c = c.Mul(0.5)
				c[3] = 1
			}
			i := (y*w + x) * 4
			for k := range 4 {
				img.Pix[i+k] = byte(c[k] * 255)
			}
		}
	}
	return img
}

func loadFont(path string) (*parse.TrueTypeFont, error) {
	ttf := goregular.TTF
	if path != "" {
		var err error
		if ttf, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	return parse.NewTrueTypeFont(ttf, fontSize)
}

func loadSound(path string) (*audio.Mixer, *audio.Chunk, error) {
	if path == "" {
		return nil, nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	chunk, err := audio.NewChunk(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	mixer, err := audio.OpenMixer(mixerRate, mixerChannel)
	if err != nil {
		return nil, nil, err
	}
	return mixer, chunk, nil
}
