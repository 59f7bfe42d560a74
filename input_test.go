package gles_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/gles"
)

func TestKeyboardTransitions(t *testing.T) {
	var kb gles.Keyboard

	kb.SetKey(gles.KeyA, true)
	assert.True(t, kb.Down(gles.KeyA))
	assert.True(t, kb.Clicked(gles.KeyA))
	assert.False(t, kb.Held(gles.KeyA))

	kb.NextFrame()
	assert.True(t, kb.Down(gles.KeyA))
	assert.False(t, kb.Clicked(gles.KeyA))
	assert.True(t, kb.Held(gles.KeyA))

	kb.SetKey(gles.KeyA, false)
	assert.True(t, kb.Released(gles.KeyA))
	assert.False(t, kb.Down(gles.KeyA))

	kb.NextFrame()
	assert.False(t, kb.Released(gles.KeyA))
}

func TestKeyboardIgnoresOutOfRangeKeys(t *testing.T) {
	var kb gles.Keyboard
	for _, k := range []gles.Key{gles.KeyNone, gles.KeyCount, -1, gles.KeyCount + 10} {
		kb.SetKey(k, true)
		assert.False(t, kb.Down(k))
		assert.False(t, kb.Clicked(k))
		assert.False(t, kb.Released(k))
		assert.False(t, kb.Held(k))
	}
}

func TestMouseTransitionsAndWheel(t *testing.T) {
	var m gles.Mouse

	m.SetPos(12, 34)
	m.AddWheel(0, 1)
	m.AddWheel(0.5, 1)
	m.SetButton(gles.MouseButtonRight, true)

	assert.Equal(t, float32(12), m.X)
	assert.Equal(t, float32(34), m.Y)
	assert.Equal(t, float32(0.5), m.WheelX)
	assert.Equal(t, float32(2), m.WheelY)
	assert.True(t, m.Clicked(gles.MouseButtonRight))
	assert.False(t, m.Down(gles.MouseButtonLeft))

	m.NextFrame()
	assert.Zero(t, m.WheelX)
	assert.Zero(t, m.WheelY)
	assert.Equal(t, float32(12), m.X, "position survives the frame change")
	assert.True(t, m.Held(gles.MouseButtonRight))

	m.SetButton(gles.MouseButtonRight, false)
	assert.True(t, m.Released(gles.MouseButtonRight))

	m.SetButton(gles.MouseButtonCount, true)
	assert.False(t, m.Down(gles.MouseButtonCount))
}

func TestClock(t *testing.T) {
	start := time.Unix(1000, 0)
	c := gles.NewClock(start)
	assert.Zero(t, c.DeltaTime())
	assert.Zero(t, c.Milliseconds())

	c.Tick(start.Add(16 * time.Millisecond))
	assert.InDelta(t, 0.016, c.DeltaTime(), 1e-9)
	assert.Equal(t, uint64(16), c.Milliseconds())

	c.Tick(start.Add(50 * time.Millisecond))
	assert.InDelta(t, 0.034, c.DeltaTime(), 1e-9)
	assert.Equal(t, uint64(50), c.Milliseconds())
}
