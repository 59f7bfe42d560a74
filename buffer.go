package gles

import "fmt"

// VertexLayout is the fixed vertex format of a Buffer.
type VertexLayout int

const (
	// LayoutPosUVNormal is the static mesh format: 3 position, 2 uv and
	// 3 normal floats per vertex. Uploaded once, never updated.
	LayoutPosUVNormal VertexLayout = iota
	// LayoutPosUV is the dynamic quad format: 2 position and 2 uv floats per
	// vertex, six vertices, replaced on every Update.
	LayoutPosUV
)

func (l VertexLayout) String() string {
	switch l {
	case LayoutPosUVNormal:
		return "pos3-uv2-normal3"
	case LayoutPosUV:
		return "pos2-uv2"
	default:
		return fmt.Sprintf("VertexLayout(%d)", int(l))
	}
}

// FloatsPerVertex returns the number of float32 components of one vertex.
func (l VertexLayout) FloatsPerVertex() int {
	switch l {
	case LayoutPosUVNormal:
		return 8
	case LayoutPosUV:
		return 4
	default:
		panic(fmt.Sprintf("gles: unknown vertex layout %d", int(l)))
	}
}

const (
	// QuadVertices is the vertex count of a dynamic quad buffer: two triangles.
	QuadVertices = 6
	// QuadFloats is the float count Update expects.
	QuadFloats = QuadVertices * 4

	sizeofFloat = 4
)

// Buffer owns a GL array buffer in one of the VertexLayouts.
type Buffer struct {
	dev         Device
	handle      uint32
	layout      VertexLayout
	vertexCount int32
}

// NewStaticBuffer uploads a 3-2-3 mesh once with STATIC_DRAW usage.
// It panics if vertices is empty or not a whole number of vertices.
func NewStaticBuffer(dev Device, vertices []float32) *Buffer {
	if len(vertices) == 0 {
		panic("gles: passing empty vertices to NewStaticBuffer")
	}
	if len(vertices)%8 != 0 {
		panic(fmt.Sprintf("gles: %d floats is not a whole number of pos3-uv2-normal3 vertices", len(vertices)))
	}

	handle := dev.GenBuffer()
	dev.BindBuffer(ARRAY_BUFFER, handle)
	dev.BufferData(ARRAY_BUFFER, vertices, STATIC_DRAW)
	dev.BindBuffer(ARRAY_BUFFER, 0)

	b := &Buffer{
		dev:         dev,
		handle:      handle,
		layout:      LayoutPosUVNormal,
		vertexCount: int32(len(vertices) / 8),
	}
	logger.Debug("buffer created", "buffer", handle, "layout", b.layout, "vertices", b.vertexCount)
	return b
}

// NewQuadBuffer allocates an uninitialized six-vertex pos2-uv2 buffer with
// DYNAMIC_DRAW usage. Fill it with Update before drawing.
func NewQuadBuffer(dev Device) *Buffer {
	handle := dev.GenBuffer()
	dev.BindBuffer(ARRAY_BUFFER, handle)
	dev.BufferInit(ARRAY_BUFFER, QuadFloats*sizeofFloat, DYNAMIC_DRAW)
	dev.BindBuffer(ARRAY_BUFFER, 0)

	b := &Buffer{
		dev:         dev,
		handle:      handle,
		layout:      LayoutPosUV,
		vertexCount: QuadVertices,
	}
	logger.Debug("buffer created", "buffer", handle, "layout", b.layout, "vertices", b.vertexCount)
	return b
}

// Update replaces the whole content of a quad buffer.
// It panics on a static buffer or when vertices is not exactly QuadFloats long.
func (b *Buffer) Update(vertices []float32) {
	if b.layout != LayoutPosUV {
		panic("gles: trying to update a static vertex buffer")
	}
	if len(vertices) != QuadFloats {
		panic(fmt.Sprintf("gles: quad buffer update needs %d floats, got %d", QuadFloats, len(vertices)))
	}

	b.dev.BindBuffer(ARRAY_BUFFER, b.handle)
	b.dev.BufferData(ARRAY_BUFFER, vertices, DYNAMIC_DRAW)
	b.dev.BindBuffer(ARRAY_BUFFER, 0)
}

// Handle returns the GL buffer name, or 0 after Delete.
func (b *Buffer) Handle() uint32 { return b.handle }

// Layout returns the vertex layout.
func (b *Buffer) Layout() VertexLayout { return b.layout }

// VertexCount returns the number of vertices the buffer holds.
func (b *Buffer) VertexCount() int32 { return b.vertexCount }

// Delete releases the buffer. Calling it more than once is a no-op.
func (b *Buffer) Delete() {
	if b.handle == 0 {
		return
	}
	b.dev.DeleteBuffer(b.handle)
	logger.Debug("buffer deleted", "buffer", b.handle)
	b.handle = 0
}
