package gles

import "fmt"

// VertexArray owns a GL vertex array object and the number of vertices its
// bound buffers contribute.
type VertexArray struct {
	dev         Device
	handle      uint32
	vertexCount int32
}

// NewVertexArray creates an empty vertex array.
func NewVertexArray(dev Device) *VertexArray {
	handle := dev.GenVertexArray()
	logger.Debug("vertex array created", "vertex_array", handle)
	return &VertexArray{dev: dev, handle: handle}
}

// BindBuffer wires the buffer's attributes into the vertex array according to
// its layout and adds its vertices to the draw range.
//
// pos3-uv2-normal3 uses locations 0 (position), 1 (uv) and 2 (normal).
// pos2-uv2 packs both into one vec4 at location 0.
func (va *VertexArray) BindBuffer(b *Buffer) {
	va.dev.BindVertexArray(va.handle)
	va.dev.BindBuffer(ARRAY_BUFFER, b.handle)

	switch b.layout {
	case LayoutPosUVNormal:
		stride := int32(8 * sizeofFloat)
		va.dev.VertexAttribPointer(0, 3, FLOAT, false, stride, 0)
		va.dev.EnableVertexAttribArray(0)
		va.dev.VertexAttribPointer(1, 2, FLOAT, false, stride, 3*sizeofFloat)
		va.dev.EnableVertexAttribArray(1)
		va.dev.VertexAttribPointer(2, 3, FLOAT, false, stride, 5*sizeofFloat)
		va.dev.EnableVertexAttribArray(2)
	case LayoutPosUV:
		va.dev.VertexAttribPointer(0, 4, FLOAT, false, 4*sizeofFloat, 0)
		va.dev.EnableVertexAttribArray(0)
	default:
		panic(fmt.Sprintf("gles: unknown vertex layout %d", int(b.layout)))
	}

	va.dev.BindVertexArray(0)
	va.dev.BindBuffer(ARRAY_BUFFER, 0)

	va.vertexCount += b.vertexCount
}

// VertexCount returns the total vertices of every bound buffer.
func (va *VertexArray) VertexCount() int32 { return va.vertexCount }

// Handle returns the GL vertex array name, or 0 after Delete.
func (va *VertexArray) Handle() uint32 { return va.handle }

// DrawTriangles draws TRIANGLES over [0, VertexCount()).
func (va *VertexArray) DrawTriangles() {
	va.dev.BindVertexArray(va.handle)
	va.dev.DrawArrays(TRIANGLES, 0, va.vertexCount)
	va.dev.BindVertexArray(0)
}

// Delete releases the vertex array. Bound buffers are not deleted.
// Calling it more than once is a no-op.
func (va *VertexArray) Delete() {
	if va.handle == 0 {
		return
	}
	va.dev.DeleteVertexArray(va.handle)
	logger.Debug("vertex array deleted", "vertex_array", va.handle)
	va.handle = 0
}
