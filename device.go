package gles

import "github.com/go-gl/mathgl/mgl32"

// Device is the GL context every wrapper in this package talks to.
//
// A Device represents one OpenGL ES 3 context that is current on the calling
// OS thread. It carries the process-wide binding state (current program,
// bound vertex array, bound texture units, blend state), so it must only be
// used from that thread. Nothing in this package locks around it.
//
// The methods map one-to-one onto GL entry points. backend/opengl provides
// the driver-backed implementation; tests use a recording fake.
type Device interface {
	CreateProgram() uint32
	DeleteProgram(program uint32)
	IsProgram(program uint32) bool
	UseProgram(program uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	// LinkProgram links and reports LINK_STATUS.
	LinkProgram(program uint32) bool
	// ProgramInfoLog returns at most maxLen bytes of the program log.
	ProgramInfoLog(program uint32, maxLen int) string

	CreateShader(stage Enum) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, sources ...string)
	// CompileShader compiles and reports COMPILE_STATUS.
	CompileShader(shader uint32) bool
	// ShaderInfoLog returns at most maxLen bytes of the shader log.
	ShaderInfoLog(shader uint32, maxLen int) string

	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	UniformMatrix4fv(location int32, m mgl32.Mat4)
	Uniform3fv(location int32, v mgl32.Vec3)
	Uniform4fv(location int32, v mgl32.Vec4)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, texture uint32)
	TexParameteri(target, pname Enum, param int32)
	PixelStorei(pname Enum, param int32)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, xtype Enum, pixels []byte)
	// MaxCombinedTextureUnits reports MAX_COMBINED_TEXTURE_IMAGE_UNITS.
	MaxCombinedTextureUnits() int32

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target Enum, buffer uint32)
	BufferData(target Enum, data []float32, usage Enum)
	// BufferInit allocates size bytes of uninitialized storage.
	BufferInit(target Enum, size int, usage Enum)

	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)
	DrawArrays(mode Enum, first, count int32)

	Enable(capability Enum)
	Disable(capability Enum)
	BlendFunc(sfactor, dfactor Enum)
	GetError() Enum
}

// Window reports the drawable size the renderers project onto.
type Window interface {
	// Size returns the window size in pixels.
	Size() (width, height int)
}
