package gles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformType is the GLSL type a uniform was declared with.
type UniformType int

const (
	UniformInt   UniformType = iota // int, bool and sampler uniforms
	UniformFloat                    // float
	UniformMat4                     // mat4
	UniformVec3                     // vec3
	UniformVec4                     // vec4
)

func (t UniformType) String() string {
	switch t {
	case UniformInt:
		return "int"
	case UniformFloat:
		return "float"
	case UniformMat4:
		return "mat4"
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	default:
		return fmt.Sprintf("UniformType(%d)", int(t))
	}
}

// notFound is the location GL reports for unknown uniform names.
const notFound = -1

// Uniform is a typed uniform slot of a Shader.
//
// Updates go to whichever program is current, so call Shader.Use first.
type Uniform struct {
	dev      Device
	Location int32
	Type     UniformType
}

// Update sets the uniform from an int32, float32, mgl32.Mat4, mgl32.Vec3 or
// mgl32.Vec4. Any other value, or one that does not match the declared type,
// fails with ErrTypeMismatch without touching the GPU.
func (u Uniform) Update(value any) error {
	switch v := value.(type) {
	case int32:
		return u.SetInt(v)
	case float32:
		return u.SetFloat(v)
	case mgl32.Mat4:
		return u.SetMat4(v)
	case mgl32.Vec3:
		return u.SetVec3(v)
	case mgl32.Vec4:
		return u.SetVec4(v)
	default:
		return fmt.Errorf("%w: %s uniform given %T", ErrTypeMismatch, u.Type, value)
	}
}

// SetInt sets an int uniform.
func (u Uniform) SetInt(v int32) error {
	if err := u.check(UniformInt); err != nil {
		return err
	}
	u.dev.Uniform1i(u.Location, v)
	return nil
}

// SetFloat sets a float uniform.
func (u Uniform) SetFloat(v float32) error {
	if err := u.check(UniformFloat); err != nil {
		return err
	}
	u.dev.Uniform1f(u.Location, v)
	return nil
}

// SetMat4 sets a mat4 uniform.
func (u Uniform) SetMat4(m mgl32.Mat4) error {
	if err := u.check(UniformMat4); err != nil {
		return err
	}
	u.dev.UniformMatrix4fv(u.Location, m)
	return nil
}

// SetVec3 sets a vec3 uniform.
func (u Uniform) SetVec3(v mgl32.Vec3) error {
	if err := u.check(UniformVec3); err != nil {
		return err
	}
	u.dev.Uniform3fv(u.Location, v)
	return nil
}

// SetVec4 sets a vec4 uniform.
func (u Uniform) SetVec4(v mgl32.Vec4) error {
	if err := u.check(UniformVec4); err != nil {
		return err
	}
	u.dev.Uniform4fv(u.Location, v)
	return nil
}

func (u Uniform) check(got UniformType) error {
	if u.Type != got {
		return fmt.Errorf("%w: %s uniform given %s", ErrTypeMismatch, u.Type, got)
	}
	if u.Location == notFound {
		return ErrUnresolvedUniform
	}
	return nil
}
