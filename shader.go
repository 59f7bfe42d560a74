package gles

const (
	glslVersion    = "#version 300 es\n"
	vertexDefine   = "#define VERTEX_SHADER\n"
	fragmentDefine = "#define FRAGMENT_SHADER\n"

	// infoLogSize caps the diagnostic captured from a failed stage.
	infoLogSize = 1024
)

// Shader owns a linked GL program.
type Shader struct {
	dev     Device
	program uint32
}

// NewShader compiles and links a program from a single source that holds
// both stages behind preprocessor guards:
//
//	#if defined(VERTEX_SHADER)
//	...
//	#elif defined(FRAGMENT_SHADER)
//	...
//	#endif
//
// The GLSL ES 3.00 version line and the stage define are prepended, so the
// source must not declare its own #version. On failure the returned error is
// a *CompileError and every GL object created along the way is deleted.
func NewShader(dev Device, src string) (*Shader, error) {
	program := dev.CreateProgram()
	vs := dev.CreateShader(VERTEX_SHADER)
	fs := dev.CreateShader(FRAGMENT_SHADER)

	// The shader objects are never needed once the program is linked.
	defer func() {
		dev.DeleteShader(vs)
		dev.DeleteShader(fs)
	}()

	dev.ShaderSource(vs, glslVersion, vertexDefine, src)
	dev.ShaderSource(fs, glslVersion, fragmentDefine, src)

	var err *CompileError
	switch {
	case !dev.CompileShader(vs):
		err = &CompileError{Stage: StageVertex, Log: dev.ShaderInfoLog(vs, infoLogSize)}
	case !dev.CompileShader(fs):
		err = &CompileError{Stage: StageFragment, Log: dev.ShaderInfoLog(fs, infoLogSize)}
	default:
		dev.AttachShader(program, vs)
		dev.AttachShader(program, fs)
		linked := dev.LinkProgram(program)
		dev.DetachShader(program, vs)
		dev.DetachShader(program, fs)
		if !linked {
			err = &CompileError{Stage: StageLink, Log: dev.ProgramInfoLog(program, infoLogSize)}
		}
	}

	if err != nil {
		logger.Error("shader build failed", "stage", err.Stage, "log", err.Log)
		dev.DeleteProgram(program)
		return nil, err
	}

	logger.Debug("shader program created", "program", program)
	return &Shader{dev: dev, program: program}, nil
}

// Handle returns the GL program name, or 0 after Delete.
func (s *Shader) Handle() uint32 {
	return s.program
}

// Uniform looks up a uniform by name. The declared type is the caller's
// promise about the GLSL declaration; it is not checked against the driver.
// A name the program does not use yields a uniform whose updates fail with
// ErrUnresolvedUniform.
func (s *Shader) Uniform(name string, declared UniformType) Uniform {
	return Uniform{
		dev:      s.dev,
		Location: s.dev.GetUniformLocation(s.program, name),
		Type:     declared,
	}
}

// Use makes this program current.
func (s *Shader) Use() {
	s.dev.UseProgram(s.program)
}

// Delete releases the program. Calling it more than once is a no-op.
func (s *Shader) Delete() {
	if s.program == 0 {
		return
	}
	s.dev.DeleteProgram(s.program)
	logger.Debug("shader program deleted", "program", s.program)
	s.program = 0
}
