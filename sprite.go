package gles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const spriteShaderSource = `
#ifdef GL_ES
precision lowp float;
#endif

#if defined(VERTEX_SHADER)

layout (location = 0) in vec4 in_data;

out vec2 frag_uv;

uniform mat4 u_space_matrix;
uniform mat4 u_model;

void main() {
    gl_Position = u_space_matrix * u_model * vec4(in_data.xy, 0.0, 1.0);
    frag_uv     = in_data.zw;
}

#elif defined(FRAGMENT_SHADER)

in vec2 frag_uv;

out vec4 out_frag_color;

uniform vec4      u_tint;
uniform sampler2D u_tex0;
uniform int       u_use_texture;

void main() {
    vec4 mapped_tex;
    if (u_use_texture == 1) {
        mapped_tex = texture(u_tex0, frag_uv);
    } else {
        mapped_tex = vec4(1.0);
    }
    out_frag_color = mapped_tex * u_tint;
}

#endif
`

// SpriteSheet is a texture split into square cells of CellSize pixels,
// addressed by column and row from the top-left. It is immutable once created.
type SpriteSheet struct {
	texture  *Texture
	cellSize int
}

// NewSpriteSheet uploads the sheet pixels. See NewTexture for the pixel format.
func NewSpriteSheet(dev Device, pixels []byte, width, height, channels, cellSize int) (*SpriteSheet, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("sprite sheet: invalid cell size %d", cellSize)
	}
	tex, err := NewTexture(dev, pixels, width, height, channels)
	if err != nil {
		return nil, fmt.Errorf("sprite sheet: %w", err)
	}
	return &SpriteSheet{texture: tex, cellSize: cellSize}, nil
}

// Texture returns the sheet texture.
func (s *SpriteSheet) Texture() *Texture { return s.texture }

// CellSize returns the cell edge length in pixels.
func (s *SpriteSheet) CellSize() int { return s.cellSize }

// Columns returns the number of whole cells in a row of the sheet.
func (s *SpriteSheet) Columns() int { return s.texture.Width() / s.cellSize }

// Rows returns the number of whole cells in a column of the sheet.
func (s *SpriteSheet) Rows() int { return s.texture.Height() / s.cellSize }

// Delete releases the sheet texture.
func (s *SpriteSheet) Delete() {
	s.texture.Delete()
}

// cellUV returns the texture rectangle of the cell at column, row.
func (s *SpriteSheet) cellUV(column, row int) (s0, t0, s1, t1 float32) {
	iw := 1 / float32(s.texture.Width())
	ih := 1 / float32(s.texture.Height())
	s0 = float32(s.cellSize*column) * iw
	s1 = float32(s.cellSize*(column+1)) * iw
	t0 = float32(s.cellSize*row) * ih
	t1 = float32(s.cellSize*(row+1)) * ih
	return s0, t0, s1, t1
}

// SpriteRenderer draws sprite sheet cells and flat rectangles in window
// pixel coordinates with the origin at the top-left.
type SpriteRenderer struct {
	dev    Device
	win    Window
	shader *Shader
	vao    *VertexArray
	vbo    *Buffer
}

// NewSpriteRenderer compiles the built-in sprite shader and allocates the
// shared quad buffer.
func NewSpriteRenderer(dev Device, win Window) (*SpriteRenderer, error) {
	shader, err := NewShader(dev, spriteShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile the builtin sprite shader: %w", err)
	}

	vao := NewVertexArray(dev)
	vbo := NewQuadBuffer(dev)
	vao.BindBuffer(vbo)

	return &SpriteRenderer{
		dev:    dev,
		win:    win,
		shader: shader,
		vao:    vao,
		vbo:    vbo,
	}, nil
}

// Draw draws the sheet cell at column, row with its top-left corner at pos,
// rotated by rotation degrees around the cell center and multiplied by tint.
func (r *SpriteRenderer) Draw(sheet *SpriteSheet, column, row int, pos mgl32.Vec2, rotation float32, tint Color) {
	uSpace := r.shader.Uniform("u_space_matrix", UniformMat4)
	uModel := r.shader.Uniform("u_model", UniformMat4)
	uTex0 := r.shader.Uniform("u_tex0", UniformInt)
	uUseTexture := r.shader.Uniform("u_use_texture", UniformInt)
	uTint := r.shader.Uniform("u_tint", UniformVec4)

	cell := float32(sheet.cellSize)
	model := mgl32.Translate3D(pos.X()+cell*0.5, pos.Y()+cell*0.5, 0).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rotation))).
		Mul4(mgl32.Scale3D(cell, cell, 1))

	s0, t0, s1, t1 := sheet.cellUV(column, row)
	if debugChecks {
		if s0 > 1 || s1 > 1 {
			panic(fmt.Sprintf("gles: asking for non existing sprite column %d in sprite sheet", column))
		}
		if t0 > 1 || t1 > 1 {
			panic(fmt.Sprintf("gles: asking for non existing sprite row %d in sprite sheet", row))
		}
	}

	r.shader.Use()
	sheet.texture.Bind(0)

	must(uSpace.SetMat4(spaceMatrix(r.win)))
	must(uModel.SetMat4(model))
	must(uTex0.SetInt(0))
	must(uUseTexture.SetInt(1))
	must(uTint.SetVec4(RGBA(tint)))

	r.drawQuad(GlyphQuad{
		X0: -0.5, Y0: -0.5, S0: s0, T0: t0,
		X1: 0.5, Y1: 0.5, S1: s1, T1: t1,
	})
}

// BlitRect fills the screen rectangle from topLeft to bottomRight with tint.
func (r *SpriteRenderer) BlitRect(topLeft, bottomRight mgl32.Vec2, tint Color) {
	uSpace := r.shader.Uniform("u_space_matrix", UniformMat4)
	uModel := r.shader.Uniform("u_model", UniformMat4)
	uUseTexture := r.shader.Uniform("u_use_texture", UniformInt)
	uTint := r.shader.Uniform("u_tint", UniformVec4)

	r.shader.Use()

	must(uSpace.SetMat4(spaceMatrix(r.win)))
	must(uModel.SetMat4(mgl32.Ident4()))
	must(uUseTexture.SetInt(0))
	must(uTint.SetVec4(RGBA(tint)))

	r.drawQuad(GlyphQuad{
		X0: topLeft.X(), Y0: topLeft.Y(), S0: 0, T0: 0,
		X1: bottomRight.X(), Y1: bottomRight.Y(), S1: 1, T1: 1,
	})
}

func (r *SpriteRenderer) drawQuad(q GlyphQuad) {
	r.dev.Enable(BLEND)
	r.dev.BlendFunc(SRC_ALPHA, ONE_MINUS_SRC_ALPHA)

	vertices := quadVertices(q)
	r.vbo.Update(vertices[:])
	r.vao.DrawTriangles()

	r.dev.BindVertexArray(0)
	r.dev.Disable(BLEND)
}

// Delete releases the shader, vertex array and quad buffer.
func (r *SpriteRenderer) Delete() {
	r.shader.Delete()
	r.vao.Delete()
	r.vbo.Delete()
}

// spaceMatrix maps window pixels, origin top-left, to clip space.
func spaceMatrix(win Window) mgl32.Mat4 {
	w, h := win.Size()
	if w == 0 || h == 0 {
		panic(fmt.Sprintf("gles: window size %dx%d has a zero dimension", w, h))
	}
	return mgl32.Ortho(0, float32(w), float32(h), 0, -1, 1)
}

// must panics on uniform errors for the built-in shaders, whose uniforms are
// always declared with the types used here.
func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("gles: builtin shader uniform: %v", err))
	}
}
