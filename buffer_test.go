package gles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/gles"
	"github.com/go-theft-auto/gles/internal/gltest"
)

func TestNewStaticBuffer(t *testing.T) {
	dev := gltest.New()
	vertices := make([]float32, 8*3)
	for i := range vertices {
		vertices[i] = float32(i)
	}

	b := gles.NewStaticBuffer(dev, vertices)
	defer b.Delete()

	assert.Equal(t, gles.LayoutPosUVNormal, b.Layout())
	assert.Equal(t, int32(3), b.VertexCount())

	info, ok := dev.Buffer(b.Handle())
	require.True(t, ok)
	assert.Equal(t, gles.STATIC_DRAW, info.Usage)
	assert.Equal(t, vertices, info.Data)
	assert.Zero(t, dev.BoundArrayBuffer())
}

func TestNewStaticBufferContractViolations(t *testing.T) {
	for _, n := range []int{0, 1, 7, 9, 23} {
		dev := gltest.New()
		assert.Panics(t, func() { gles.NewStaticBuffer(dev, make([]float32, n)) }, "len=%d", n)
		assert.Empty(t, dev.Live(), "len=%d", n)
	}
	assert.Panics(t, func() { gles.NewStaticBuffer(gltest.New(), nil) })
}

func TestStaticBufferUpdatePanics(t *testing.T) {
	dev := gltest.New()
	b := gles.NewStaticBuffer(dev, make([]float32, 8))
	defer b.Delete()

	assert.Panics(t, func() { b.Update(make([]float32, gles.QuadFloats)) })
}

func TestQuadBuffer(t *testing.T) {
	dev := gltest.New()
	b := gles.NewQuadBuffer(dev)
	defer b.Delete()

	assert.Equal(t, gles.LayoutPosUV, b.Layout())
	assert.Equal(t, int32(6), b.VertexCount())

	info, ok := dev.Buffer(b.Handle())
	require.True(t, ok)
	assert.Equal(t, gles.DYNAMIC_DRAW, info.Usage)
	assert.Equal(t, 24*4, info.Size)
	assert.Nil(t, info.Data)

	first := make([]float32, 24)
	first[0] = 1
	b.Update(first)
	second := make([]float32, 24)
	second[23] = 2
	b.Update(second)

	info, _ = dev.Buffer(b.Handle())
	assert.Equal(t, second, info.Data, "update replaces the whole buffer")
	assert.Zero(t, dev.BoundArrayBuffer())
}

func TestQuadBufferUpdateLength(t *testing.T) {
	dev := gltest.New()
	b := gles.NewQuadBuffer(dev)
	defer b.Delete()

	for _, n := range []int{0, 4, 23, 25, 48} {
		assert.Panics(t, func() { b.Update(make([]float32, n)) }, "len=%d", n)
	}
	assert.NotPanics(t, func() { b.Update(make([]float32, 24)) })
}

func TestBufferDeleteIsIdempotent(t *testing.T) {
	dev := gltest.New()
	b := gles.NewQuadBuffer(dev)
	b.Delete()
	b.Delete()
	assert.Equal(t, 1, dev.Deletes("buffer"))
	assert.Zero(t, dev.DoubleDeletes)
	assert.Empty(t, dev.Live())
}

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, 8, gles.LayoutPosUVNormal.FloatsPerVertex())
	assert.Equal(t, 4, gles.LayoutPosUV.FloatsPerVertex())
	assert.Equal(t, "pos2-uv2", gles.LayoutPosUV.String())
	assert.Panics(t, func() { gles.VertexLayout(9).FloatsPerVertex() })
}
