package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/gles"
	"github.com/go-theft-auto/gles/internal/gltest"
)

func newGoFont(t *testing.T, size int) *TrueTypeFont {
	t.Helper()
	f, err := NewTrueTypeFont(goregular.TTF, size)
	require.NoError(t, err)
	return f
}

func TestTrueTypeFontAtlas(t *testing.T) {
	f := newGoFont(t, 32)

	pix, w, h, ch := f.Image()
	assert.Equal(t, AtlasSize, w)
	assert.Equal(t, AtlasSize, h)
	assert.Equal(t, 1, ch)
	assert.Len(t, pix, AtlasSize*AtlasSize)
	assert.Equal(t, 32, f.FontSize())

	covered := 0
	for _, p := range pix {
		if p != 0 {
			covered++
		}
	}
	assert.Positive(t, covered)
}

func TestTrueTypeFontQuad(t *testing.T) {
	f := newGoFont(t, 24)

	q, nx, ny := f.Quad('A', 10.3, 50)
	assert.Greater(t, q.X1, q.X0)
	assert.Greater(t, q.Y1, q.Y0)
	assert.Less(t, q.Y0, float32(50), "glyph sits above the baseline")
	assert.Equal(t, float32(int(q.X0)), q.X0, "quads are snapped to whole pixels")
	assert.Equal(t, float32(int(q.Y0)), q.Y0)
	assert.InDelta(t, 10.3+f.Advance('A'), nx, 1e-4)
	assert.Equal(t, float32(50), ny)

	for _, v := range []float32{q.S0, q.T0, q.S1, q.T1} {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
	// The quad and the atlas rectangle have the same size in pixels.
	assert.InDelta(t, q.X1-q.X0, (q.S1-q.S0)*AtlasSize, 1e-3)
	assert.InDelta(t, q.Y1-q.Y0, (q.T1-q.T0)*AtlasSize, 1e-3)
}

func TestTrueTypeFontSpaceAdvancesWithoutPixels(t *testing.T) {
	f := newGoFont(t, 16)

	q, nx, _ := f.Quad(' ', 0, 0)
	assert.Equal(t, q.X0, q.X1)
	assert.Positive(t, nx)
}

func TestTrueTypeFontFallback(t *testing.T) {
	f := newGoFont(t, 16)

	want, wx, _ := f.Quad('?', 5, 5)
	for _, r := range []rune{'é', '\n', 0x7F, '世'} {
		got, gx, _ := f.Quad(r, 5, 5)
		assert.Equal(t, want, got, "rune %q", r)
		assert.Equal(t, wx, gx)
	}
}

func TestTrueTypeFontWidth(t *testing.T) {
	f := newGoFont(t, 16)
	assert.Zero(t, f.Width(""))
	assert.InDelta(t, f.Advance('h')+f.Advance('i'), f.Width("hi"), 1e-5)
	assert.Greater(t, f.Width("WWW"), f.Width("iii"))
}

func TestTrueTypeFontGlyphsDoNotOverlap(t *testing.T) {
	f := newGoFont(t, 48)
	type rect struct{ x0, y0, x1, y1 int }
	var rects []rect
	for _, g := range f.glyphs {
		if g.x1 == g.x0 {
			continue
		}
		rects = append(rects, rect{g.x0, g.y0, g.x1, g.y1})
	}
	require.NotEmpty(t, rects)
	for i, a := range rects {
		assert.True(t, a.x0 >= 0 && a.y0 >= 0 && a.x1 <= AtlasSize && a.y1 <= AtlasSize)
		for _, b := range rects[i+1:] {
			overlap := a.x0 < b.x1 && b.x0 < a.x1 && a.y0 < b.y1 && b.y0 < a.y1
			assert.False(t, overlap, "%v overlaps %v", a, b)
		}
	}
}

func TestNewTrueTypeFontErrors(t *testing.T) {
	_, err := NewTrueTypeFont(goregular.TTF, 0)
	assert.Error(t, err)

	_, err = NewTrueTypeFont([]byte("not a font"), 16)
	assert.Error(t, err)

	_, err = NewTrueTypeFont(goregular.TTF, 400)
	assert.ErrorIs(t, err, ErrAtlasFull)
}

func TestTrueTypeFontDrivesTextRenderer(t *testing.T) {
	dev := gltest.New()
	f := newGoFont(t, 20)

	r, err := gles.NewTextRenderer(dev, gltest.Window{Width: 320, Height: 240}, f)
	require.NoError(t, err)
	defer r.Delete()

	r.Draw("Hi!", [2]float32{4, 4}, gles.White)
	require.Len(t, dev.Draws, 3)
	assert.Less(t, dev.Draws[0].Vertices[8], dev.Draws[1].Vertices[8])
}
