// Package gltest provides an in-memory gles.Device that records GL state and
// calls, for testing code that renders without a GPU.
package gltest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/gles"
)

// Call is one recorded Device method invocation.
type Call struct {
	Name string
	Args []any
}

// DrawCall captures the state a DrawArrays call observed.
type DrawCall struct {
	Mode        gles.Enum
	First       int32
	Count       int32
	Program     uint32
	VertexArray uint32
	Texture     uint32 // bound to unit 0
	Blend       bool
	// Vertices is a copy of the buffer behind attribute 0.
	Vertices []float32
	// Uniforms maps uniform names of the current program to their values.
	Uniforms map[string]any
}

// Attrib is a configured vertex attribute.
type Attrib struct {
	Buffer  uint32
	Size    int32
	Type    gles.Enum
	Stride  int32
	Offset  uintptr
	Enabled bool
}

// TextureInfo is the recorded state of a texture object.
type TextureInfo struct {
	Params         map[gles.Enum]int32
	InternalFormat gles.Enum
	Format         gles.Enum
	Width, Height  int32
	Alignment      int32
	Pixels         []byte
}

// BufferInfo is the recorded state of a buffer object.
type BufferInfo struct {
	Usage gles.Enum
	Size  int
	Data  []float32
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	uniforms map[string]int32
	names    map[int32]string
	values   map[int32]any
}

type shader struct {
	stage    gles.Enum
	source   string
	compiled bool
	log      string
}

// Device is a fake GL context. The zero value is not usable; call New.
type Device struct {
	// CompileHook decides whether a shader compiles. The default accepts
	// every source.
	CompileHook func(stage gles.Enum, source string) (ok bool, log string)
	// LinkHook decides whether a program links. The default accepts.
	LinkHook func(vertex, fragment string) (ok bool, log string)
	// MaxTextureUnits is reported by MaxCombinedTextureUnits.
	MaxTextureUnits int32
	// Errors is the queue GetError pops from.
	Errors []gles.Enum

	Calls []Call
	Draws []DrawCall

	next int

	programs     map[uint32]*program
	shaders      map[uint32]*shader
	textures     map[uint32]*TextureInfo
	buffers      map[uint32]*BufferInfo
	vertexArrays map[uint32]map[uint32]*Attrib

	currentProgram uint32
	activeUnit     uint32
	units          map[uint32]uint32
	arrayBuffer    uint32
	vertexArray    uint32
	enabled        map[gles.Enum]bool
	blendSrc       gles.Enum
	blendDst       gles.Enum
	unpackAlign    int32

	deletes map[string]int
	// DoubleDeletes counts deletions of names that were already deleted.
	DoubleDeletes int
}

// New returns an empty fake context.
func New() *Device {
	return &Device{
		MaxTextureUnits: 16,
		programs:        make(map[uint32]*program),
		shaders:         make(map[uint32]*shader),
		textures:        make(map[uint32]*TextureInfo),
		buffers:         make(map[uint32]*BufferInfo),
		vertexArrays:    make(map[uint32]map[uint32]*Attrib),
		units:           make(map[uint32]uint32),
		enabled:         make(map[gles.Enum]bool),
		unpackAlign:     4,
		deletes:         make(map[string]int),
	}
}

var _ gles.Device = (*Device)(nil)

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) gen() uint32 {
	d.next++
	return uint32(d.next)
}

func (d *Device) deleted(kind string, name uint32, live bool) {
	if name == 0 {
		return
	}
	if !live {
		d.DoubleDeletes++
		return
	}
	d.deletes[kind]++
}

// CallCount returns how many times the named method was called.
func (d *Device) CallCount(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// ResetCalls forgets recorded calls and draws but keeps GL state.
func (d *Device) ResetCalls() {
	d.Calls = nil
	d.Draws = nil
}

// Live returns the number of GL objects that were created and not deleted,
// by kind: "program", "shader", "texture", "buffer", "vertex array".
func (d *Device) Live() map[string]int {
	live := map[string]int{}
	if n := len(d.programs); n > 0 {
		live["program"] = n
	}
	if n := len(d.shaders); n > 0 {
		live["shader"] = n
	}
	if n := len(d.textures); n > 0 {
		live["texture"] = n
	}
	if n := len(d.buffers); n > 0 {
		live["buffer"] = n
	}
	if n := len(d.vertexArrays); n > 0 {
		live["vertex array"] = n
	}
	return live
}

// Deletes returns how many objects of a kind were deleted.
func (d *Device) Deletes(kind string) int { return d.deletes[kind] }

// CurrentProgram returns the program made current by UseProgram.
func (d *Device) CurrentProgram() uint32 { return d.currentProgram }

// BoundVertexArray returns the bound vertex array.
func (d *Device) BoundVertexArray() uint32 { return d.vertexArray }

// BoundArrayBuffer returns the buffer bound to ARRAY_BUFFER.
func (d *Device) BoundArrayBuffer() uint32 { return d.arrayBuffer }

// BoundTexture returns the texture bound to a unit.
func (d *Device) BoundTexture(unit uint32) uint32 { return d.units[unit] }

// ActiveUnit returns the active texture unit index.
func (d *Device) ActiveUnit() uint32 { return d.activeUnit }

// Enabled reports a capability toggled with Enable/Disable.
func (d *Device) Enabled(capability gles.Enum) bool { return d.enabled[capability] }

// BlendFactors returns the last BlendFunc arguments.
func (d *Device) BlendFactors() (src, dst gles.Enum) { return d.blendSrc, d.blendDst }

// Texture returns the recorded state of a live texture.
func (d *Device) Texture(name uint32) (*TextureInfo, bool) {
	t, ok := d.textures[name]
	return t, ok
}

// Buffer returns the recorded state of a live buffer.
func (d *Device) Buffer(name uint32) (*BufferInfo, bool) {
	b, ok := d.buffers[name]
	return b, ok
}

// Attribs returns the attributes configured on a live vertex array.
func (d *Device) Attribs(array uint32) map[uint32]*Attrib {
	return d.vertexArrays[array]
}

// ProgramAttached returns the shaders still attached to a program.
func (d *Device) ProgramAttached(name uint32) []uint32 {
	if p, ok := d.programs[name]; ok {
		return slices.Clone(p.shaders)
	}
	return nil
}

// UniformValue returns the last value set on a named uniform of a program.
func (d *Device) UniformValue(prog uint32, name string) (any, bool) {
	p, ok := d.programs[prog]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// ShaderSourceOf returns the concatenated source of a live shader.
func (d *Device) ShaderSourceOf(name uint32) string {
	if s, ok := d.shaders[name]; ok {
		return s.source
	}
	return ""
}

func (d *Device) CreateProgram() uint32 {
	name := d.gen()
	d.programs[name] = &program{
		uniforms: map[string]int32{},
		names:    map[int32]string{},
		values:   map[int32]any{},
	}
	d.record("CreateProgram")
	return name
}

func (d *Device) DeleteProgram(name uint32) {
	d.record("DeleteProgram", name)
	_, live := d.programs[name]
	d.deleted("program", name, live)
	delete(d.programs, name)
	if d.currentProgram == name {
		d.currentProgram = 0
	}
}

func (d *Device) IsProgram(name uint32) bool {
	_, ok := d.programs[name]
	return ok
}

func (d *Device) UseProgram(name uint32) {
	d.record("UseProgram", name)
	if name != 0 {
		if p, ok := d.programs[name]; !ok || !p.linked {
			panic(fmt.Sprintf("gltest: UseProgram(%d) on a missing or unlinked program", name))
		}
	}
	d.currentProgram = name
}

func (d *Device) AttachShader(prog, sh uint32) {
	d.record("AttachShader", prog, sh)
	p := d.mustProgram(prog)
	if _, ok := d.shaders[sh]; !ok {
		panic(fmt.Sprintf("gltest: AttachShader of missing shader %d", sh))
	}
	p.shaders = append(p.shaders, sh)
}

func (d *Device) DetachShader(prog, sh uint32) {
	d.record("DetachShader", prog, sh)
	p := d.mustProgram(prog)
	p.shaders = slices.DeleteFunc(p.shaders, func(s uint32) bool { return s == sh })
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

func (d *Device) LinkProgram(prog uint32) bool {
	d.record("LinkProgram", prog)
	p := d.mustProgram(prog)

	var vertex, fragment string
	for _, sh := range p.shaders {
		s := d.shaders[sh]
		if !s.compiled {
			p.log = "attached shader is not compiled"
			return false
		}
		if s.stage == gles.VERTEX_SHADER {
			vertex = s.source
		} else {
			fragment = s.source
		}
	}

	ok, log := true, ""
	if d.LinkHook != nil {
		ok, log = d.LinkHook(vertex, fragment)
	}
	p.linked, p.log = ok, log
	if !ok {
		return false
	}

	// Locations are assigned to every declared uniform in declaration order.
	for _, src := range []string{vertex, fragment} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			name := m[1]
			if _, seen := p.uniforms[name]; seen {
				continue
			}
			loc := int32(len(p.uniforms))
			p.uniforms[name] = loc
			p.names[loc] = name
		}
	}
	return true
}

func (d *Device) ProgramInfoLog(prog uint32, maxLen int) string {
	return truncate(d.mustProgram(prog).log, maxLen)
}

func (d *Device) CreateShader(stage gles.Enum) uint32 {
	name := d.gen()
	d.shaders[name] = &shader{stage: stage}
	d.record("CreateShader", stage)
	return name
}

func (d *Device) DeleteShader(name uint32) {
	d.record("DeleteShader", name)
	_, live := d.shaders[name]
	d.deleted("shader", name, live)
	delete(d.shaders, name)
}

func (d *Device) ShaderSource(name uint32, sources ...string) {
	d.record("ShaderSource", name)
	d.mustShader(name).source = strings.Join(sources, "")
}

func (d *Device) CompileShader(name uint32) bool {
	d.record("CompileShader", name)
	s := d.mustShader(name)
	ok, log := true, ""
	if d.CompileHook != nil {
		ok, log = d.CompileHook(s.stage, s.source)
	}
	s.compiled, s.log = ok, log
	return ok
}

func (d *Device) ShaderInfoLog(name uint32, maxLen int) string {
	return truncate(d.mustShader(name).log, maxLen)
}

func (d *Device) GetUniformLocation(prog uint32, name string) int32 {
	p := d.mustProgram(prog)
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) setUniform(method string, loc int32, v any) {
	d.record(method, loc, v)
	if d.currentProgram == 0 {
		panic(fmt.Sprintf("gltest: %s with no current program", method))
	}
	if loc == -1 {
		return
	}
	p := d.programs[d.currentProgram]
	if _, ok := p.names[loc]; !ok {
		panic(fmt.Sprintf("gltest: %s at unknown location %d", method, loc))
	}
	p.values[loc] = v
}

func (d *Device) Uniform1i(loc int32, v int32)             { d.setUniform("Uniform1i", loc, v) }
func (d *Device) Uniform1f(loc int32, v float32)           { d.setUniform("Uniform1f", loc, v) }
func (d *Device) UniformMatrix4fv(loc int32, m mgl32.Mat4) { d.setUniform("UniformMatrix4fv", loc, m) }
func (d *Device) Uniform3fv(loc int32, v mgl32.Vec3)       { d.setUniform("Uniform3fv", loc, v) }
func (d *Device) Uniform4fv(loc int32, v mgl32.Vec4)       { d.setUniform("Uniform4fv", loc, v) }

func (d *Device) GenTexture() uint32 {
	name := d.gen()
	d.textures[name] = &TextureInfo{Params: map[gles.Enum]int32{}}
	d.record("GenTexture")
	return name
}

func (d *Device) DeleteTexture(name uint32) {
	d.record("DeleteTexture", name)
	_, live := d.textures[name]
	d.deleted("texture", name, live)
	delete(d.textures, name)
	for unit, tex := range d.units {
		if tex == name {
			d.units[unit] = 0
		}
	}
}

func (d *Device) ActiveTexture(unit gles.Enum) {
	d.record("ActiveTexture", unit)
	if unit < gles.TEXTURE0 || int64(unit-gles.TEXTURE0) >= int64(d.MaxTextureUnits) {
		d.Errors = append(d.Errors, gles.INVALID_ENUM)
		return
	}
	d.activeUnit = uint32(unit - gles.TEXTURE0)
}

func (d *Device) BindTexture(target gles.Enum, name uint32) {
	d.record("BindTexture", target, name)
	if name != 0 {
		if _, ok := d.textures[name]; !ok {
			panic(fmt.Sprintf("gltest: BindTexture of missing texture %d", name))
		}
	}
	d.units[d.activeUnit] = name
}

func (d *Device) boundTexture() *TextureInfo {
	name := d.units[d.activeUnit]
	if name == 0 {
		panic("gltest: no texture bound")
	}
	return d.textures[name]
}

func (d *Device) TexParameteri(target, pname gles.Enum, param int32) {
	d.record("TexParameteri", target, pname, param)
	d.boundTexture().Params[pname] = param
}

func (d *Device) PixelStorei(pname gles.Enum, param int32) {
	d.record("PixelStorei", pname, param)
	if pname == gles.UNPACK_ALIGNMENT {
		d.unpackAlign = param
	}
}

func (d *Device) TexImage2D(target gles.Enum, level int32, internalFormat gles.Enum, width, height int32, format, xtype gles.Enum, pixels []byte) {
	d.record("TexImage2D", target, level, internalFormat, width, height, format, xtype)
	t := d.boundTexture()
	t.InternalFormat = internalFormat
	t.Format = format
	t.Width, t.Height = width, height
	t.Alignment = d.unpackAlign
	t.Pixels = slices.Clone(pixels)
}

func (d *Device) MaxCombinedTextureUnits() int32 { return d.MaxTextureUnits }

func (d *Device) GenBuffer() uint32 {
	name := d.gen()
	d.buffers[name] = &BufferInfo{}
	d.record("GenBuffer")
	return name
}

func (d *Device) DeleteBuffer(name uint32) {
	d.record("DeleteBuffer", name)
	_, live := d.buffers[name]
	d.deleted("buffer", name, live)
	delete(d.buffers, name)
	if d.arrayBuffer == name {
		d.arrayBuffer = 0
	}
}

func (d *Device) BindBuffer(target gles.Enum, name uint32) {
	d.record("BindBuffer", target, name)
	if name != 0 {
		if _, ok := d.buffers[name]; !ok {
			panic(fmt.Sprintf("gltest: BindBuffer of missing buffer %d", name))
		}
	}
	d.arrayBuffer = name
}

func (d *Device) boundBuffer() *BufferInfo {
	if d.arrayBuffer == 0 {
		panic("gltest: no buffer bound to ARRAY_BUFFER")
	}
	return d.buffers[d.arrayBuffer]
}

func (d *Device) BufferData(target gles.Enum, data []float32, usage gles.Enum) {
	d.record("BufferData", target, len(data), usage)
	b := d.boundBuffer()
	b.Usage = usage
	b.Size = len(data) * 4
	b.Data = slices.Clone(data)
}

func (d *Device) BufferInit(target gles.Enum, size int, usage gles.Enum) {
	d.record("BufferInit", target, size, usage)
	b := d.boundBuffer()
	b.Usage = usage
	b.Size = size
	b.Data = nil
}

func (d *Device) GenVertexArray() uint32 {
	name := d.gen()
	d.vertexArrays[name] = map[uint32]*Attrib{}
	d.record("GenVertexArray")
	return name
}

func (d *Device) DeleteVertexArray(name uint32) {
	d.record("DeleteVertexArray", name)
	_, live := d.vertexArrays[name]
	d.deleted("vertex array", name, live)
	delete(d.vertexArrays, name)
	if d.vertexArray == name {
		d.vertexArray = 0
	}
}

func (d *Device) BindVertexArray(name uint32) {
	d.record("BindVertexArray", name)
	if name != 0 {
		if _, ok := d.vertexArrays[name]; !ok {
			panic(fmt.Sprintf("gltest: BindVertexArray of missing vertex array %d", name))
		}
	}
	d.vertexArray = name
}

func (d *Device) boundAttribs() map[uint32]*Attrib {
	if d.vertexArray == 0 {
		panic("gltest: no vertex array bound")
	}
	return d.vertexArrays[d.vertexArray]
}

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype gles.Enum, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
	if d.arrayBuffer == 0 {
		panic("gltest: VertexAttribPointer with no ARRAY_BUFFER bound")
	}
	attribs := d.boundAttribs()
	a, ok := attribs[index]
	if !ok {
		a = &Attrib{}
		attribs[index] = a
	}
	a.Buffer = d.arrayBuffer
	a.Size = size
	a.Type = xtype
	a.Stride = stride
	a.Offset = offset
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
	a, ok := d.boundAttribs()[index]
	if !ok {
		a = &Attrib{}
		d.boundAttribs()[index] = a
	}
	a.Enabled = true
}

func (d *Device) DrawArrays(mode gles.Enum, first, count int32) {
	d.record("DrawArrays", mode, first, count)
	draw := DrawCall{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     d.currentProgram,
		VertexArray: d.vertexArray,
		Texture:     d.units[0],
		Blend:       d.enabled[gles.BLEND],
		Uniforms:    map[string]any{},
	}
	if a, ok := d.boundAttribs()[0]; ok && a.Enabled {
		if b, ok := d.buffers[a.Buffer]; ok {
			draw.Vertices = slices.Clone(b.Data)
		}
	}
	if p, ok := d.programs[d.currentProgram]; ok {
		for loc, v := range p.values {
			draw.Uniforms[p.names[loc]] = v
		}
	}
	d.Draws = append(d.Draws, draw)
}

func (d *Device) Enable(capability gles.Enum) {
	d.record("Enable", capability)
	d.enabled[capability] = true
}

func (d *Device) Disable(capability gles.Enum) {
	d.record("Disable", capability)
	d.enabled[capability] = false
}

func (d *Device) BlendFunc(src, dst gles.Enum) {
	d.record("BlendFunc", src, dst)
	d.blendSrc, d.blendDst = src, dst
}

func (d *Device) GetError() gles.Enum {
	if len(d.Errors) == 0 {
		return gles.NO_ERROR
	}
	e := d.Errors[0]
	d.Errors = d.Errors[1:]
	return e
}

func (d *Device) mustProgram(name uint32) *program {
	p, ok := d.programs[name]
	if !ok {
		panic(fmt.Sprintf("gltest: missing program %d", name))
	}
	return p
}

func (d *Device) mustShader(name uint32) *shader {
	s, ok := d.shaders[name]
	if !ok {
		panic(fmt.Sprintf("gltest: missing shader %d", name))
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Window is a fixed-size gles.Window.
type Window struct {
	Width, Height int
}

// Size implements gles.Window.
func (w Window) Size() (int, int) { return w.Width, w.Height }
