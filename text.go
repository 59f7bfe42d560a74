package gles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// The atlas stores coverage in the red channel; it becomes the alpha of a
// white fragment that the tint then colors.
const textShaderSource = `
#ifdef GL_ES
precision lowp float;
#endif

#if defined(VERTEX_SHADER)

layout (location = 0) in vec4 in_data;

out vec2 frag_uv;

uniform mat4 u_space_matrix;

void main() {
  gl_Position = u_space_matrix * vec4(in_data.xy, 0.0, 1.0);
  frag_uv     = in_data.zw;
}

#elif defined(FRAGMENT_SHADER)

in vec2 frag_uv;

out vec4 out_frag_color;

uniform vec4      u_tint;
uniform sampler2D u_tex0;

void main() {
  vec4 mapped_tex = texture(u_tex0, frag_uv);
  mapped_tex.a   = mapped_tex.r;
  mapped_tex.rgb = vec3(1.0);

  out_frag_color = mapped_tex * u_tint;
}

#endif
`

// TextRenderer draws strings from a FontAtlas, one quad per glyph.
type TextRenderer struct {
	dev      Device
	win      Window
	font     FontAtlas
	fontSize int
	texture  *Texture
	shader   *Shader
	vao      *VertexArray
	vbo      *Buffer
}

// NewTextRenderer uploads the atlas image and compiles the text shader.
// The atlas is referenced, not copied; it must outlive the renderer.
func NewTextRenderer(dev Device, win Window, font FontAtlas) (_ *TextRenderer, err error) {
	pixels, width, height, channels := font.Image()
	texture, err := NewTexture(dev, pixels, width, height, channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create font texture: %w", err)
	}
	defer func() {
		if err != nil {
			texture.Delete()
		}
	}()

	shader, err := NewShader(dev, textShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile the builtin text shader: %w", err)
	}

	vao := NewVertexArray(dev)
	vbo := NewQuadBuffer(dev)
	vao.BindBuffer(vbo)

	return &TextRenderer{
		dev:      dev,
		win:      win,
		font:     font,
		fontSize: font.FontSize(),
		texture:  texture,
		shader:   shader,
		vao:      vao,
		vbo:      vbo,
	}, nil
}

// Draw draws text with the pen starting at pos and the baseline half a font
// size below it. Each rune is a separate draw call.
func (r *TextRenderer) Draw(text string, pos mgl32.Vec2, tint Color) {
	uSpace := r.shader.Uniform("u_space_matrix", UniformMat4)
	uTex0 := r.shader.Uniform("u_tex0", UniformInt)
	uTint := r.shader.Uniform("u_tint", UniformVec4)

	r.shader.Use()
	r.texture.Bind(0)

	must(uSpace.SetMat4(spaceMatrix(r.win)))
	must(uTex0.SetInt(0))
	must(uTint.SetVec4(RGBA(tint)))

	r.dev.Enable(BLEND)
	r.dev.BlendFunc(SRC_ALPHA, ONE_MINUS_SRC_ALPHA)

	x := pos.X()
	y := pos.Y() + float32(r.fontSize)*0.5
	var q GlyphQuad
	for _, c := range text {
		q, x, y = r.font.Quad(c, x, y)
		vertices := quadVertices(q)
		r.vbo.Update(vertices[:])
		r.vao.DrawTriangles()
	}

	r.dev.BindVertexArray(0)
	r.dev.Disable(BLEND)
}

// Texture returns the uploaded atlas texture.
func (r *TextRenderer) Texture() *Texture { return r.texture }

// Delete releases the atlas texture, shader, vertex array and quad buffer.
func (r *TextRenderer) Delete() {
	r.texture.Delete()
	r.shader.Delete()
	r.vao.Delete()
	r.vbo.Delete()
}
