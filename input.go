package gles

import "time"

// Key is a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCount
)

// Keyboard holds the key states of the current and the previous frame.
// The platform layer writes it; the game loop reads it.
type Keyboard struct {
	current  [KeyCount]bool
	previous [KeyCount]bool
}

// NextFrame starts a new frame: the current states become the previous ones.
// Keys keep their state until the platform reports a change.
func (k *Keyboard) NextFrame() {
	k.previous = k.current
}

// SetKey records a key press or release for the current frame.
func (k *Keyboard) SetKey(key Key, down bool) {
	if key <= KeyNone || key >= KeyCount {
		return
	}
	k.current[key] = down
}

// Down returns true if the key is down this frame.
func (k *Keyboard) Down(key Key) bool {
	if key <= KeyNone || key >= KeyCount {
		return false
	}
	return k.current[key]
}

// Clicked returns true on the frame the key went down.
func (k *Keyboard) Clicked(key Key) bool {
	if key <= KeyNone || key >= KeyCount {
		return false
	}
	return k.current[key] && !k.previous[key]
}

// Released returns true on the frame the key went up.
func (k *Keyboard) Released(key Key) bool {
	if key <= KeyNone || key >= KeyCount {
		return false
	}
	return !k.current[key] && k.previous[key]
}

// Held returns true if the key was down this frame and the one before.
func (k *Keyboard) Held(key Key) bool {
	if key <= KeyNone || key >= KeyCount {
		return false
	}
	return k.current[key] && k.previous[key]
}

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Mouse holds the cursor position, wheel delta and button states of the
// current and the previous frame.
type Mouse struct {
	X, Y           float32
	WheelX, WheelY float32

	current  [MouseButtonCount]bool
	previous [MouseButtonCount]bool
}

// NextFrame starts a new frame and clears the wheel delta.
func (m *Mouse) NextFrame() {
	m.previous = m.current
	m.WheelX, m.WheelY = 0, 0
}

// SetButton records a button press or release for the current frame.
func (m *Mouse) SetButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	m.current[button] = down
}

// SetPos sets the cursor position in window pixels.
func (m *Mouse) SetPos(x, y float32) {
	m.X, m.Y = x, y
}

// AddWheel accumulates wheel movement for this frame.
func (m *Mouse) AddWheel(x, y float32) {
	m.WheelX += x
	m.WheelY += y
}

// Down returns true if the button is down this frame.
func (m *Mouse) Down(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return m.current[button]
}

// Clicked returns true on the frame the button went down.
func (m *Mouse) Clicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return m.current[button] && !m.previous[button]
}

// Released returns true on the frame the button went up.
func (m *Mouse) Released(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return !m.current[button] && m.previous[button]
}

// Held returns true if the button was down this frame and the one before.
func (m *Mouse) Held(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return m.current[button] && m.previous[button]
}

// Clock measures frame time.
type Clock struct {
	start time.Time
	last  time.Time
	delta time.Duration
}

// NewClock starts a clock at now.
func NewClock(now time.Time) *Clock {
	return &Clock{start: now, last: now}
}

// Tick advances the clock to now, once per frame.
func (c *Clock) Tick(now time.Time) {
	c.delta = now.Sub(c.last)
	c.last = now
}

// DeltaTime returns the duration of the last frame in seconds.
func (c *Clock) DeltaTime() float64 {
	return c.delta.Seconds()
}

// Milliseconds returns the time from start to the last tick.
func (c *Clock) Milliseconds() uint64 {
	return uint64(c.last.Sub(c.start).Milliseconds())
}
