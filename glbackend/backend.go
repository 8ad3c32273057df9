// Package glbackend implements gpu.Backend on OpenGL 3.3 core.
// The caller creates the context, makes it current and keeps every call on
// that OS thread.
package glbackend

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/gekko3d/sscene/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	minMajor = 3
	minMinor = 3
)

type Backend struct {
	// ProcAddr, when set, resolves GL entry points instead of the platform default.
	ProcAddr func(name string) unsafe.Pointer

	state *stateCache
	vao   uint32
	major int
	minor int
}

func New() *Backend {
	return &Backend{state: newStateCache()}
}

func (b *Backend) Init() error {
	var err error
	if b.ProcAddr != nil {
		err = gl.InitWithProcAddrFunc(b.ProcAddr)
	} else {
		err = gl.Init()
	}
	if err != nil {
		return fmt.Errorf("load GL: %w", err)
	}

	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	b.major, b.minor = int(major), int(minor)
	if b.major < minMajor || (b.major == minMajor && b.minor < minMinor) {
		return fmt.Errorf("OpenGL %d.%d not supported, need %d.%d (%s)",
			b.major, b.minor, minMajor, minMinor, gl.GoStr(gl.GetString(gl.VERSION)))
	}

	// core profile refuses to draw without a bound vertex array
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.DepthFunc(gl.LEQUAL)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

func (b *Backend) Version() (int, int) { return b.major, b.minor }

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (b *Backend) CreateProgram(vertexSrc, fragmentSrc string) (gpu.ProgramID, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	if id == 0 {
		return 0, errors.New("unable to create program")
	}
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	for _, a := range gpu.AttributeBindings {
		gl.BindAttribLocation(id, uint32(a.Location), gl.Str(a.Name+"\x00"))
	}
	gl.LinkProgram(id)

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		log := readProgramInfoLog(id)
		gl.DeleteProgram(id)
		return 0, fmt.Errorf("link failed: %s", log)
	}
	gl.DetachShader(id, vs)
	gl.DetachShader(id, fs)
	return gpu.ProgramID(id), nil
}

func (b *Backend) DeleteProgram(p gpu.ProgramID) {
	b.state.forgetProgram(uint32(p))
	gl.DeleteProgram(uint32(p))
}

func (b *Backend) UseProgram(p gpu.ProgramID) { b.state.useProgram(uint32(p)) }

func (b *Backend) UniformLocation(p gpu.ProgramID, name string) gpu.UniformLocation {
	return gpu.UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (b *Backend) SetUniformInt(loc gpu.UniformLocation, v int32) {
	gl.Uniform1i(int32(loc), v)
}

func (b *Backend) SetUniformFloat(loc gpu.UniformLocation, v float32) {
	gl.Uniform1f(int32(loc), v)
}

func (b *Backend) SetUniformVec3(loc gpu.UniformLocation, v mgl32.Vec3) {
	gl.Uniform3f(int32(loc), v[0], v[1], v[2])
}

func (b *Backend) SetUniformMat4(loc gpu.UniformLocation, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (b *Backend) CreateVertexBuffer(data []float32) (gpu.BufferID, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, errors.New("glGenBuffers returned 0")
	}
	b.state.bindArrayBuffer(id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, dataPtr(data), gl.STATIC_DRAW)
	return gpu.BufferID(id), nil
}

func (b *Backend) UpdateVertexBuffer(id gpu.BufferID, data []float32) {
	b.state.bindArrayBuffer(uint32(id))
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, dataPtr(data), gl.DYNAMIC_DRAW)
}

func (b *Backend) CreateIndexBuffer(data []uint32) (gpu.BufferID, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, errors.New("glGenBuffers returned 0")
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, dataPtr(data), gl.STATIC_DRAW)
	return gpu.BufferID(id), nil
}

// dataPtr tolerates empty slices, which gl.Ptr does not.
func dataPtr[T float32 | uint32](data []T) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func (b *Backend) DeleteBuffer(id gpu.BufferID) {
	v := uint32(id)
	b.state.forgetBuffer(v)
	gl.DeleteBuffers(1, &v)
}

func (b *Backend) BindAttribute(a gpu.Attribute, id gpu.BufferID, size int) {
	b.state.bindArrayBuffer(uint32(id))
	gl.EnableVertexAttribArray(uint32(a))
	gl.VertexAttribPointerWithOffset(uint32(a), int32(size), gl.FLOAT, false, 0, 0)
}

func (b *Backend) DisableAttribute(a gpu.Attribute) {
	gl.DisableVertexAttribArray(uint32(a))
}

// CreateTexture uploads img and generates mipmaps on GL 3.0 and newer,
// falling back to plain linear filtering otherwise.
func (b *Backend) CreateTexture(img *image.RGBA) (gpu.TextureID, error) {
	if img == nil || img.Bounds().Empty() {
		return 0, errors.New("empty texture image")
	}
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, errors.New("glGenTextures returned 0")
	}
	b.state.bindTexture(0, id)

	size := img.Bounds().Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if b.major >= 3 {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	return gpu.TextureID(id), nil
}

func (b *Backend) BindTexture(unit int, t gpu.TextureID) { b.state.bindTexture(unit, uint32(t)) }

func (b *Backend) DeleteTexture(t gpu.TextureID) {
	v := uint32(t)
	b.state.forgetTexture(v)
	gl.DeleteTextures(1, &v)
}

func (b *Backend) SetDepthTest(enabled bool) { b.state.setEnabled(depthTest, enabled) }
func (b *Backend) SetBlend(enabled bool)     { b.state.setEnabled(blend, enabled) }
func (b *Backend) SetCullFace(enabled bool)  { b.state.setEnabled(cullFace, enabled) }

func (b *Backend) SetWireframe(enabled bool) {
	if enabled {
		b.state.setPolygonMode(gl.LINE)
	} else {
		b.state.setPolygonMode(gl.FILL)
	}
}

func (b *Backend) SetClearColor(c mgl32.Vec4) { b.state.setClearColor(c) }

func (b *Backend) Viewport(width, height int) { b.state.setViewport(int32(width), int32(height)) }

func (b *Backend) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

func primitiveMode(p gpu.Primitive) uint32 {
	if p == gpu.Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

func (b *Backend) DrawElements(p gpu.Primitive, indices gpu.BufferID, count int) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(indices))
	gl.DrawElements(primitiveMode(p), int32(count), gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (b *Backend) DrawArrays(p gpu.Primitive, first, count int) {
	gl.DrawArrays(primitiveMode(p), int32(first), int32(count))
}

var errorNames = map[uint32]string{
	gl.INVALID_ENUM:                  "GL_INVALID_ENUM",
	gl.INVALID_VALUE:                 "GL_INVALID_VALUE",
	gl.INVALID_OPERATION:             "GL_INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "GL_INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "GL_OUT_OF_MEMORY",
}

func (b *Backend) Err() error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	if name, ok := errorNames[code]; ok {
		return errors.New(name)
	}
	return fmt.Errorf("GL error 0x%04x", code)
}

func (b *Backend) Close() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}

var _ gpu.Backend = (*Backend)(nil)
