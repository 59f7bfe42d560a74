package gles

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when a uniform is updated with a value
	// whose shape differs from the uniform's declared type.
	ErrTypeMismatch = errors.New("uniform type mismatch")

	// ErrUnresolvedUniform is returned when updating a uniform whose
	// location was not found in the program.
	ErrUnresolvedUniform = errors.New("uniform location not found")

	// ErrNoPixels is returned when a texture upload gets no pixel data.
	ErrNoPixels = errors.New("texture has no pixel data")

	// ErrUnsupportedChannels is returned for channel counts other than 1, 3 and 4.
	ErrUnsupportedChannels = errors.New("unsupported number of texture channels")

	// ErrTextureSize is returned when the texture dimensions do not match
	// the pixel buffer.
	ErrTextureSize = errors.New("invalid texture size")
)

// ShaderStage names the step of program construction that failed.
type ShaderStage string

const (
	StageVertex   ShaderStage = "vertex"
	StageFragment ShaderStage = "fragment"
	StageLink     ShaderStage = "link"
)

// CompileError carries the driver's info log for a failed shader stage.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("shader program linking failed: %s", e.Log)
	}
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// maxErrorSweep bounds DrainErrors when a lost context keeps reporting errors.
const maxErrorSweep = 64

// errorDescriptions follows the wording of the glGetError reference page.
var errorDescriptions = map[Enum]string{
	INVALID_ENUM:                  "GL_INVALID_ENUM: an unacceptable value is specified for an enumerated argument",
	INVALID_VALUE:                 "GL_INVALID_VALUE: a numeric argument is out of range",
	INVALID_OPERATION:             "GL_INVALID_OPERATION: the specified operation is not allowed in the current state",
	INVALID_FRAMEBUFFER_OPERATION: "GL_INVALID_FRAMEBUFFER_OPERATION: the framebuffer object is not complete",
	OUT_OF_MEMORY:                 "GL_OUT_OF_MEMORY: there is not enough memory left to execute the command",
}

// GLError is one entry of the GL error queue.
type GLError struct {
	Code Enum
}

func (e GLError) Error() string {
	if d, ok := errorDescriptions[e.Code]; ok {
		return d
	}
	return fmt.Sprintf("unknown GL error 0x%04X", uint32(e.Code))
}

// DrainErrors empties the GL error queue, logging every error it finds.
// GL errors are not checked after each call; use this in debugging sessions,
// for example once per frame.
func DrainErrors(dev Device) []error {
	var errs []error
	for range maxErrorSweep {
		code := dev.GetError()
		if code == NO_ERROR {
			return errs
		}
		err := GLError{Code: code}
		logger.Error("gl error", "code", fmt.Sprintf("0x%04X", uint32(code)), "err", err.Error())
		errs = append(errs, err)
	}
	logger.Warn("gl error queue did not clear", "checked", maxErrorSweep)
	return errs
}
