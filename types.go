package gles

import "github.com/go-gl/mathgl/mgl32"

// Color is a packed 0xRRGGBBAA color.
type Color uint32

// Common colors.
const (
	White Color = 0xFFFFFFFF
	Black Color = 0x000000FF
	Red   Color = 0xFF0000FF
	Green Color = 0x00FF00FF
	Blue  Color = 0x0000FFFF
)

// RGBA converts a packed color to r, g, b, a floats in [0, 1].
func RGBA(c Color) mgl32.Vec4 {
	const inv = 1.0 / 255.0
	return mgl32.Vec4{
		float32((c>>24)&0xFF) * inv,
		float32((c>>16)&0xFF) * inv,
		float32((c>>8)&0xFF) * inv,
		float32(c&0xFF) * inv,
	}
}

// GlyphQuad is the screen rectangle of one glyph and the matching atlas
// rectangle in normalized texture coordinates.
type GlyphQuad struct {
	X0, Y0, S0, T0 float32 // top-left
	X1, Y1, S1, T1 float32 // bottom-right
}

// quadVertices lays out two triangles covering (x0,y0)-(x1,y1) in the
// pos2-uv2 layout.
func quadVertices(q GlyphQuad) [QuadFloats]float32 {
	return [QuadFloats]float32{
		q.X1, q.Y1, q.S1, q.T1,
		q.X1, q.Y0, q.S1, q.T0,
		q.X0, q.Y1, q.S0, q.T1,
		q.X1, q.Y0, q.S1, q.T0,
		q.X0, q.Y0, q.S0, q.T0,
		q.X0, q.Y1, q.S0, q.T1,
	}
}
