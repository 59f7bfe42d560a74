package gles

// Enum is an OpenGL ES enumerant. The values match the GLES 3 headers so a
// Device implementation can pass them straight through to the driver.
type Enum uint32

const (
	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506

	VERTEX_SHADER   Enum = 0x8B31
	FRAGMENT_SHADER Enum = 0x8B30

	TEXTURE_2D         Enum = 0x0DE1
	TEXTURE0           Enum = 0x84C0
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803
	NEAREST            Enum = 0x2600
	CLAMP_TO_EDGE      Enum = 0x812F
	UNPACK_ALIGNMENT   Enum = 0x0CF5

	RED           Enum = 0x1903
	RGB           Enum = 0x1907
	RGBA_FORMAT   Enum = 0x1908 // GL_RGBA; RGBA is the color helper
	R8            Enum = 0x8229
	RGB8          Enum = 0x8051
	RGBA8         Enum = 0x8058
	UNSIGNED_BYTE Enum = 0x1401
	FLOAT         Enum = 0x1406

	ARRAY_BUFFER Enum = 0x8892
	STATIC_DRAW  Enum = 0x88E4
	DYNAMIC_DRAW Enum = 0x88E8
	TRIANGLES    Enum = 0x0004

	BLEND               Enum = 0x0BE2
	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303
)
