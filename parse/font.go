package parse

import (
	"errors"
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/go-theft-auto/gles"
)

const (
	// AtlasSize is the width and height of the glyph atlas.
	AtlasSize = 1024

	firstGlyph   = ' '
	lastGlyph    = '~'
	fallback     = '?'
	atlasPadding = 1
)

// ErrAtlasFull is returned when the glyphs do not fit the atlas.
var ErrAtlasFull = errors.New("glyphs do not fit the font atlas")

type packedGlyph struct {
	// atlas rectangle in pixels
	x0, y0, x1, y1 int
	// offset of the rectangle from the pen position
	xoff, yoff float32
	advance    float32
}

// TrueTypeFont is the printable ASCII range of a TrueType font rasterized into
// a single-channel 1024x1024 atlas. It implements gles.FontAtlas.
type TrueTypeFont struct {
	size   int
	atlas  *image.Gray
	glyphs [lastGlyph - firstGlyph + 1]packedGlyph
}

var _ gles.FontAtlas = (*TrueTypeFont)(nil)

// NewTrueTypeFont parses ttf and bakes its ASCII glyphs at fontSize pixels
// per em.
func NewTrueTypeFont(ttf []byte, fontSize int) (*TrueTypeFont, error) {
	if fontSize <= 0 {
		return nil, fmt.Errorf("invalid font size %d", fontSize)
	}
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse ttf: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	defer face.Close()

	f := &TrueTypeFont{
		size:  fontSize,
		atlas: image.NewGray(image.Rect(0, 0, AtlasSize, AtlasSize)),
	}
	if err := f.pack(face); err != nil {
		return nil, err
	}
	return f, nil
}

// pack places glyphs left to right on shelves as tall as the tallest glyph
// of the row.
func (f *TrueTypeFont) pack(face font.Face) error {
	x, y, rowHeight := atlasPadding, atlasPadding, 0
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			// Missing glyphs still advance by the face's default.
			advance, _ = face.GlyphAdvance(fallback)
		}
		g := packedGlyph{advance: fix(advance)}

		w, h := dr.Dx(), dr.Dy()
		if ok && w > 0 && h > 0 {
			if x+w+atlasPadding > AtlasSize {
				x, y = atlasPadding, y+rowHeight+atlasPadding
				rowHeight = 0
			}
			if y+h+atlasPadding > AtlasSize {
				return fmt.Errorf("glyph %q at size %d: %w", r, f.size, ErrAtlasFull)
			}
			dst := image.Rect(x, y, x+w, y+h)
			draw.Draw(f.atlas, dst, mask, maskp, draw.Src)

			g.x0, g.y0, g.x1, g.y1 = x, y, x+w, y+h
			g.xoff, g.yoff = float32(dr.Min.X), float32(dr.Min.Y)
			x += w + atlasPadding
			rowHeight = max(rowHeight, h)
		}
		f.glyphs[r-firstGlyph] = g
	}
	return nil
}

func fix(v fixed.Int26_6) float32 { return float32(v) / 64 }

func (f *TrueTypeFont) glyph(r rune) *packedGlyph {
	if r < firstGlyph || r > lastGlyph {
		r = fallback
	}
	return &f.glyphs[r-firstGlyph]
}

// Image returns the atlas pixels.
func (f *TrueTypeFont) Image() (pixels []byte, width, height, channels int) {
	return f.atlas.Pix, AtlasSize, AtlasSize, 1
}

// FontSize returns the size the atlas was baked at.
func (f *TrueTypeFont) FontSize() int { return f.size }

// Quad returns the quad of r with its pen at (x, y) and the next pen
// position. The quad is snapped to whole pixels. Runes outside the printable
// ASCII range are drawn as '?'.
func (f *TrueTypeFont) Quad(r rune, x, y float32) (q gles.GlyphQuad, nextX, nextY float32) {
	g := f.glyph(r)

	q.X0 = math32.Floor(x + g.xoff + 0.5)
	q.Y0 = math32.Floor(y + g.yoff + 0.5)
	q.X1 = q.X0 + float32(g.x1-g.x0)
	q.Y1 = q.Y0 + float32(g.y1-g.y0)

	const inv = 1.0 / AtlasSize
	q.S0 = float32(g.x0) * inv
	q.T0 = float32(g.y0) * inv
	q.S1 = float32(g.x1) * inv
	q.T1 = float32(g.y1) * inv

	return q, x + g.advance, y
}

// Advance returns how far the pen moves after r.
func (f *TrueTypeFont) Advance(r rune) float32 { return f.glyph(r).advance }

// Width returns the advance of the whole string.
func (f *TrueTypeFont) Width(text string) float32 {
	var w float32
	for _, r := range text {
		w += f.Advance(r)
	}
	return w
}
