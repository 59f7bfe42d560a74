// Package opengl provides the OpenGL ES 3 backend: a gles.Device backed by
// the driver, and a GLFW window that owns the context and polls input.
package opengl

import (
	"bytes"
	"fmt"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/gles"
)

// Device implements gles.Device with direct go-gl calls. The GL context must
// be current on the calling thread.
type Device struct {
	Version  string
	Renderer string
	GLSL     string

	maxTextureUnits int32
}

var _ gles.Device = (*Device)(nil)

// NewDevice loads the GL ES entry points for the current context.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	d := &Device{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	gl.GetIntegerv(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS, &d.maxTextureUnits)
	return d, nil
}

func (d *Device) CreateProgram() uint32        { return gl.CreateProgram() }
func (d *Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *Device) IsProgram(program uint32) bool {
	return gl.IsProgram(program)
}
func (d *Device) UseProgram(program uint32)           { gl.UseProgram(program) }
func (d *Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Device) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (d *Device) LinkProgram(program uint32) bool {
	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(program uint32, maxLen int) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	return readLog(logLength, maxLen, func(n int32, buf *uint8) {
		gl.GetProgramInfoLog(program, n, nil, buf)
	})
}

func (d *Device) CreateShader(stage gles.Enum) uint32 { return gl.CreateShader(uint32(stage)) }
func (d *Device) DeleteShader(shader uint32)          { gl.DeleteShader(shader) }

func (d *Device) ShaderSource(shader uint32, sources ...string) {
	csources, free := gl.Strs(sources...)
	defer free()
	lengths := make([]int32, len(sources))
	for i, src := range sources {
		lengths[i] = int32(len(src))
	}
	gl.ShaderSource(shader, int32(len(sources)), csources, &lengths[0])
}

func (d *Device) CompileShader(shader uint32) bool {
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(shader uint32, maxLen int) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	return readLog(logLength, maxLen, func(n int32, buf *uint8) {
		gl.GetShaderInfoLog(shader, n, nil, buf)
	})
}

// readLog fetches an info log of logLength bytes (terminator included),
// keeping at most maxLen bytes of text.
func readLog(logLength int32, maxLen int, get func(n int32, buf *uint8)) string {
	n := min(int(logLength), maxLen+1)
	if n <= 1 {
		return ""
	}
	log := make([]byte, n)
	get(int32(n), &log[0])
	if i := bytes.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	return string(log)
}

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(location int32, v int32)   { gl.Uniform1i(location, v) }
func (d *Device) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (d *Device) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) Uniform3fv(location int32, v mgl32.Vec3) { gl.Uniform3fv(location, 1, &v[0]) }
func (d *Device) Uniform4fv(location int32, v mgl32.Vec4) { gl.Uniform4fv(location, 1, &v[0]) }

func (d *Device) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (d *Device) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }
func (d *Device) ActiveTexture(unit gles.Enum) { gl.ActiveTexture(uint32(unit)) }

func (d *Device) BindTexture(target gles.Enum, texture uint32) {
	gl.BindTexture(uint32(target), texture)
}

func (d *Device) TexParameteri(target, pname gles.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (d *Device) PixelStorei(pname gles.Enum, param int32) { gl.PixelStorei(uint32(pname), param) }

func (d *Device) TexImage2D(target gles.Enum, level int32, internalFormat gles.Enum, width, height int32, format, xtype gles.Enum, pixels []byte) {
	gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0,
		uint32(format), uint32(xtype), gl.Ptr(pixels))
}

func (d *Device) MaxCombinedTextureUnits() int32 { return d.maxTextureUnits }

func (d *Device) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *Device) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Device) BindBuffer(target gles.Enum, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (d *Device) BufferData(target gles.Enum, data []float32, usage gles.Enum) {
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (d *Device) BufferInit(target gles.Enum, size int, usage gles.Enum) {
	gl.BufferData(uint32(target), size, nil, uint32(usage))
}

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }
func (d *Device) BindVertexArray(array uint32)   { gl.BindVertexArray(array) }

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype gles.Enum, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(xtype), normalized, stride, offset)
}

func (d *Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Device) DrawArrays(mode gles.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (d *Device) Enable(capability gles.Enum)  { gl.Enable(uint32(capability)) }
func (d *Device) Disable(capability gles.Enum) { gl.Disable(uint32(capability)) }

func (d *Device) BlendFunc(sfactor, dfactor gles.Enum) {
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
}

func (d *Device) GetError() gles.Enum { return gles.Enum(gl.GetError()) }

// Viewport sets the GL viewport, usually to the framebuffer size.
func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// ReadPixels reads an RGBA rectangle of the framebuffer. Rows are returned
// top first, the order images and textures use.
func (d *Device) ReadPixels(x, y, width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	flipRows(pixels, width*4)
	return pixels
}

// flipRows reverses the row order of an image in place.
func flipRows(pixels []byte, rowLen int) {
	rows := len(pixels) / rowLen
	tmp := make([]byte, rowLen)
	for y := 0; y < rows/2; y++ {
		top := y * rowLen
		bot := (rows - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}
}

// Clear clears the color buffer to c.
func (d *Device) Clear(c gles.Color) {
	v := gles.RGBA(c)
	gl.ClearColor(v[0], v[1], v[2], v[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
