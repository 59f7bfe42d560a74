package gles

// FontAtlas is a pre-rasterized font the TextRenderer draws from.
//
// The package does not depend on any concrete font implementation;
// parse.TrueTypeFont bakes one from TrueType data, and tests inject fixed
// metrics.
type FontAtlas interface {
	// Image returns the atlas pixels and their layout. Single-channel atlases
	// store glyph coverage in the red channel.
	Image() (pixels []byte, width, height, channels int)

	// FontSize returns the pixel size the atlas was rasterized at.
	FontSize() int

	// Quad returns the quad for r with the pen at (x, y) on the baseline, and
	// the pen position for the next rune.
	Quad(r rune, x, y float32) (q GlyphQuad, nextX, nextY float32)
}
