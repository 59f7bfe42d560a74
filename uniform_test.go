package gles_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/gles"
	"github.com/go-theft-auto/gles/internal/gltest"
)

var uniformSetters = []string{"Uniform1i", "Uniform1f", "UniformMatrix4fv", "Uniform3fv", "Uniform4fv"}

func countUniformCalls(dev *gltest.Device) int {
	n := 0
	for _, name := range uniformSetters {
		n += dev.CallCount(name)
	}
	return n
}

func TestUniformTypeMismatchNeverCallsGL(t *testing.T) {
	declared := map[gles.UniformType]string{
		gles.UniformInt:   "u_mode",
		gles.UniformFloat: "u_alpha",
		gles.UniformMat4:  "u_mvp",
		gles.UniformVec3:  "u_offset",
		gles.UniformVec4:  "u_color",
	}
	values := map[gles.UniformType]any{
		gles.UniformInt:   int32(1),
		gles.UniformFloat: float32(1),
		gles.UniformMat4:  mgl32.Ident4(),
		gles.UniformVec3:  mgl32.Vec3{},
		gles.UniformVec4:  mgl32.Vec4{},
	}

	dev := gltest.New()
	s, err := gles.NewShader(dev, testShaderSource)
	require.NoError(t, err)
	defer s.Delete()
	s.Use()

	for typ, name := range declared {
		u := s.Uniform(name, typ)
		for valueType, value := range values {
			before := countUniformCalls(dev)
			err := u.Update(value)
			if valueType == typ {
				assert.NoError(t, err, "%s given %T", typ, value)
				assert.Equal(t, before+1, countUniformCalls(dev), "exactly one GL call for %s", typ)
				continue
			}
			assert.ErrorIs(t, err, gles.ErrTypeMismatch, "%s given %T", typ, value)
			assert.Equal(t, before, countUniformCalls(dev), "no GL call on mismatch for %s", typ)
		}
	}
}

func TestUniformRejectsUnsupportedGoTypes(t *testing.T) {
	dev := gltest.New()
	s, err := gles.NewShader(dev, testShaderSource)
	require.NoError(t, err)
	defer s.Delete()
	s.Use()

	u := s.Uniform("u_mode", gles.UniformInt)
	for _, v := range []any{1, int64(1), float64(1), "1", nil, [4]float32{}} {
		assert.ErrorIs(t, u.Update(v), gles.ErrTypeMismatch, "%T", v)
	}
	assert.Zero(t, countUniformCalls(dev))
}

func TestUniformUnresolvedLocation(t *testing.T) {
	dev := gltest.New()
	s, err := gles.NewShader(dev, testShaderSource)
	require.NoError(t, err)
	defer s.Delete()
	s.Use()

	u := s.Uniform("u_does_not_exist", gles.UniformFloat)
	assert.Equal(t, int32(-1), u.Location)
	assert.ErrorIs(t, u.SetFloat(1), gles.ErrUnresolvedUniform)
	assert.ErrorIs(t, u.Update(float32(1)), gles.ErrUnresolvedUniform)
	assert.Zero(t, countUniformCalls(dev))
}

func TestUniformTypeString(t *testing.T) {
	assert.Equal(t, "mat4", gles.UniformMat4.String())
	assert.Equal(t, "int", gles.UniformInt.String())
	assert.Equal(t, "UniformType(42)", gles.UniformType(42).String())
}
