package opengl

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/gles"
)

// Window owns a GLFW window with a current OpenGL ES 3.0 context and the
// keyboard, mouse and clock it feeds. GLFW must be used from the main thread;
// call runtime.LockOSThread in an init function.
type Window struct {
	window *glfw.Window

	keyboard gles.Keyboard
	mouse    gles.Mouse
	clock    *gles.Clock

	// windowed position and size, restored when leaving fullscreen
	wx, wy, ww, wh int
}

var _ gles.Window = (*Window)(nil)

// NewWindow initializes GLFW, opens a window per cfg and makes its context
// current.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextCreationAPI, glfw.EGLContextAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	w := &Window{
		window: window,
		clock:  gles.NewClock(time.Now()),
		ww:     cfg.Width,
		wh:     cfg.Height,
	}
	w.wx, w.wy = window.GetPos()
	w.SetVSync(cfg.VSync)
	if cfg.Fullscreen {
		w.SetFullscreen(true)
	}

	window.SetKeyCallback(w.keyCallback)
	window.SetMouseButtonCallback(w.mouseButtonCallback)
	window.SetScrollCallback(w.scrollCallback)
	window.SetCursorPosCallback(w.cursorPosCallback)

	return w, nil
}

// PollEvents starts a new input frame, processes pending events and ticks
// the clock. It returns false once the window was asked to close.
func (w *Window) PollEvents() bool {
	w.keyboard.NextFrame()
	w.mouse.NextFrame()
	glfw.PollEvents()
	w.clock.Tick(time.Now())
	return !w.window.ShouldClose()
}

// Close asks the main loop to stop; PollEvents returns false afterwards.
func (w *Window) Close() { w.window.SetShouldClose(true) }

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.window.SwapBuffers() }

// SetVSync turns vertical sync on or off for the current context.
func (w *Window) SetVSync(on bool) {
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

// SetFullscreen switches between fullscreen on the primary monitor and the
// last windowed placement.
func (w *Window) SetFullscreen(on bool) {
	if on {
		if w.window.GetMonitor() != nil {
			return
		}
		monitor := glfw.GetPrimaryMonitor()
		mode := videoMode(monitor)
		if mode == nil {
			slog.Warn("fullscreen unavailable: no primary monitor")
			return
		}
		w.wx, w.wy = w.window.GetPos()
		w.ww, w.wh = w.window.GetSize()
		w.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	if w.window.GetMonitor() == nil {
		return
	}
	w.window.SetMonitor(nil, w.wx, w.wy, w.ww, w.wh, 0)
}

// videoMode returns the current mode of monitor, or nil when there is no
// monitor or it reports no mode.
func videoMode(monitor *glfw.Monitor) *glfw.VidMode {
	if monitor == nil {
		return nil
	}
	return monitor.GetVideoMode()
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (width, height int) { return w.window.GetSize() }

// FramebufferSize returns the drawable size in pixels, for the viewport.
func (w *Window) FramebufferSize() (width, height int) { return w.window.GetFramebufferSize() }

// Keyboard returns the key states of the current frame.
func (w *Window) Keyboard() *gles.Keyboard { return &w.keyboard }

// Mouse returns the mouse state of the current frame.
func (w *Window) Mouse() *gles.Mouse { return &w.mouse }

// Clock returns the frame clock.
func (w *Window) Clock() *gles.Clock { return w.clock }

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := glfwKey(key)
	if k == gles.KeyNone {
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		w.keyboard.SetKey(k, true)
	case glfw.Release:
		w.keyboard.SetKey(k, false)
	}
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b := glfwMouseButton(button)
	if b < 0 {
		return
	}

	switch action {
	case glfw.Press:
		w.mouse.SetButton(b, true)
	case glfw.Release:
		w.mouse.SetButton(b, false)
	}
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	w.mouse.AddWheel(float32(xoff), float32(yoff))
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	w.mouse.SetPos(float32(xpos), float32(ypos))
}

// glfwKey maps GLFW keys to gles keys.
func glfwKey(key glfw.Key) gles.Key {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return gles.KeyA + gles.Key(key-glfw.KeyA)
	case key >= glfw.Key0 && key <= glfw.Key9:
		return gles.Key0 + gles.Key(key-glfw.Key0)
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return gles.KeyF1 + gles.Key(key-glfw.KeyF1)
	}

	switch key {
	case glfw.KeySpace:
		return gles.KeySpace
	case glfw.KeyEnter:
		return gles.KeyEnter
	case glfw.KeyEscape:
		return gles.KeyEscape
	case glfw.KeyTab:
		return gles.KeyTab
	case glfw.KeyBackspace:
		return gles.KeyBackspace
	case glfw.KeyLeft:
		return gles.KeyLeft
	case glfw.KeyRight:
		return gles.KeyRight
	case glfw.KeyUp:
		return gles.KeyUp
	case glfw.KeyDown:
		return gles.KeyDown
	case glfw.KeyLeftShift:
		return gles.KeyLeftShift
	case glfw.KeyRightShift:
		return gles.KeyRightShift
	case glfw.KeyLeftControl:
		return gles.KeyLeftControl
	case glfw.KeyRightControl:
		return gles.KeyRightControl
	case glfw.KeyLeftAlt:
		return gles.KeyLeftAlt
	case glfw.KeyRightAlt:
		return gles.KeyRightAlt
	default:
		return gles.KeyNone
	}
}

// glfwMouseButton maps GLFW mouse buttons to gles mouse buttons.
func glfwMouseButton(button glfw.MouseButton) gles.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return gles.MouseButtonLeft
	case glfw.MouseButtonRight:
		return gles.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return gles.MouseButtonMiddle
	default:
		return -1
	}
}
