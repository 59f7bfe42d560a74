package gles_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/gles"
	"github.com/go-theft-auto/gles/internal/gltest"
)

const testShaderSource = `
#if defined(VERTEX_SHADER)
layout (location = 0) in vec4 in_data;
uniform mat4 u_mvp;
uniform vec3 u_offset;
void main() { gl_Position = u_mvp * vec4(in_data.xy + u_offset.xy, 0.0, 1.0); }
#elif defined(FRAGMENT_SHADER)
out vec4 out_color;
uniform vec4  u_color;
uniform float u_alpha;
uniform int   u_mode;
void main() { out_color = u_color * u_alpha; }
#endif
`

func TestNewShaderPrependsVersionAndStageDefine(t *testing.T) {
	dev := gltest.New()
	sources := map[gles.Enum]string{}
	dev.CompileHook = func(stage gles.Enum, src string) (bool, string) {
		sources[stage] = src
		return true, ""
	}

	s, err := gles.NewShader(dev, testShaderSource)
	require.NoError(t, err)
	defer s.Delete()

	assert.Equal(t, "#version 300 es\n#define VERTEX_SHADER\n"+testShaderSource, sources[gles.VERTEX_SHADER])
	assert.Equal(t, "#version 300 es\n#define FRAGMENT_SHADER\n"+testShaderSource, sources[gles.FRAGMENT_SHADER])
}

func TestNewShaderSuccessKeepsOnlyTheProgram(t *testing.T) {
	dev := gltest.New()

	s, err := gles.NewShader(dev, testShaderSource)
	require.NoError(t, err)

	assert.NotZero(t, s.Handle())
	assert.True(t, dev.IsProgram(s.Handle()))
	assert.Empty(t, dev.ProgramAttached(s.Handle()), "shaders should be detached after linking")
	assert.Equal(t, map[string]int{"program": 1}, dev.Live())

	s.Delete()
	assert.Empty(t, dev.Live())
}

func TestShaderUseThenTypedUpdatesSucceed(t *testing.T) {
	dev := gltest.New()
	s, err := gles.NewShader(dev, testShaderSource)
	require.NoError(t, err)
	defer s.Delete()

	s.Use()
	assert.Equal(t, s.Handle(), dev.CurrentProgram())

	require.NoError(t, s.Uniform("u_mvp", gles.UniformMat4).Update(mgl32.Ident4()))
	require.NoError(t, s.Uniform("u_offset", gles.UniformVec3).Update(mgl32.Vec3{1, 2, 3}))
	require.NoError(t, s.Uniform("u_color", gles.UniformVec4).Update(mgl32.Vec4{1, 0, 0, 1}))
	require.NoError(t, s.Uniform("u_alpha", gles.UniformFloat).Update(float32(0.5)))
	require.NoError(t, s.Uniform("u_mode", gles.UniformInt).Update(int32(2)))

	v, ok := dev.UniformValue(s.Handle(), "u_alpha")
	require.True(t, ok)
	assert.Equal(t, float32(0.5), v)
	v, _ = dev.UniformValue(s.Handle(), "u_offset")
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v)
}

func TestNewShaderFailures(t *testing.T) {
	tests := []struct {
		name          string
		failStage     gles.Enum
		failLink      bool
		wantStage     gles.ShaderStage
		wantCompiles  int
		wantLinkCalls int
	}{
		{name: "vertex", failStage: gles.VERTEX_SHADER, wantStage: gles.StageVertex, wantCompiles: 1},
		{name: "fragment", failStage: gles.FRAGMENT_SHADER, wantStage: gles.StageFragment, wantCompiles: 2},
		{name: "link", failLink: true, wantStage: gles.StageLink, wantCompiles: 2, wantLinkCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gltest.New()
			dev.CompileHook = func(stage gles.Enum, _ string) (bool, string) {
				if stage == tt.failStage {
					return false, "0:3: syntax error"
				}
				return true, ""
			}
			dev.LinkHook = func(_, _ string) (bool, string) {
				if tt.failLink {
					return false, "undefined varying frag_uv"
				}
				return true, ""
			}

			s, err := gles.NewShader(dev, testShaderSource)
			require.Error(t, err)
			assert.Nil(t, s)

			var ce *gles.CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.wantStage, ce.Stage)
			assert.NotEmpty(t, ce.Log)
			assert.Contains(t, err.Error(), ce.Log)

			assert.Equal(t, tt.wantCompiles, dev.CallCount("CompileShader"))
			assert.Equal(t, tt.wantLinkCalls, dev.CallCount("LinkProgram"))
			assert.Empty(t, dev.Live(), "failed build must not leak GL objects")
			assert.Zero(t, dev.DoubleDeletes)
		})
	}
}

func TestNewShaderTruncatesInfoLog(t *testing.T) {
	dev := gltest.New()
	dev.CompileHook = func(gles.Enum, string) (bool, string) {
		return false, strings.Repeat("e", 4000)
	}

	_, err := gles.NewShader(dev, testShaderSource)
	var ce *gles.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Len(t, ce.Log, 1024)
}

func TestShaderDeleteIsIdempotent(t *testing.T) {
	dev := gltest.New()
	s, err := gles.NewShader(dev, testShaderSource)
	require.NoError(t, err)

	s.Delete()
	s.Delete()

	assert.Zero(t, s.Handle())
	assert.Equal(t, 1, dev.Deletes("program"))
	assert.Zero(t, dev.DoubleDeletes)
}
