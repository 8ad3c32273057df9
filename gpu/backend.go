// Package gpu declares the rendering backend contract the scene drives.
// Implementations live in glbackend (OpenGL 3.3 core) and headless (recording, no GPU).
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

type BufferID uint32
type ProgramID uint32
type TextureID uint32

// UniformLocation is -1 when the program has no active uniform of that name.
// Setting a -1 location is a no-op, as in GL.
type UniformLocation int32

const NoUniform UniformLocation = -1

type Primitive uint8

const (
	Triangles Primitive = iota
	Lines
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	}
	return "unknown"
}

// Attribute is a fixed vertex attribute slot.
type Attribute uint32

const (
	AttribPosition Attribute = 0
	AttribTexcoord Attribute = 1
	AttribNormal   Attribute = 2
	AttribColor    Attribute = 3
)

type AttributeBinding struct {
	Name     string
	Location Attribute
}

// AttributeBindings is bound by name on every program before linking.
var AttributeBindings = []AttributeBinding{
	{Name: "a_Position", Location: AttribPosition},
	{Name: "a_Texcoord", Location: AttribTexcoord},
	{Name: "a_Normal", Location: AttribNormal},
	{Name: "a_Color", Location: AttribColor},
}

// Backend is the narrow surface of GPU functionality the scene consumes.
// All calls must be made from the goroutine that owns the context.
type Backend interface {
	// Init prepares the context. It fails when the API or the minimum version is unavailable.
	Init() error
	Version() (major, minor int)

	// CreateProgram compiles and links a program with AttributeBindings applied.
	// The error carries the compile or link diagnostic.
	CreateProgram(vertexSrc, fragmentSrc string) (ProgramID, error)
	DeleteProgram(p ProgramID)
	UseProgram(p ProgramID)
	UniformLocation(p ProgramID, name string) UniformLocation
	SetUniformInt(loc UniformLocation, v int32)
	SetUniformFloat(loc UniformLocation, v float32)
	SetUniformVec3(loc UniformLocation, v mgl32.Vec3)
	SetUniformMat4(loc UniformLocation, m mgl32.Mat4)

	CreateVertexBuffer(data []float32) (BufferID, error)
	UpdateVertexBuffer(b BufferID, data []float32)
	CreateIndexBuffer(data []uint32) (BufferID, error)
	DeleteBuffer(b BufferID)
	// BindAttribute feeds attribute a from b with size float components per vertex.
	BindAttribute(a Attribute, b BufferID, size int)
	DisableAttribute(a Attribute)

	// CreateTexture uploads img with mipmaps when supported, linear filtering otherwise.
	CreateTexture(img *image.RGBA) (TextureID, error)
	BindTexture(unit int, t TextureID)
	DeleteTexture(t TextureID)

	SetDepthTest(enabled bool)
	SetBlend(enabled bool)
	SetCullFace(enabled bool)
	SetWireframe(enabled bool)
	SetClearColor(c mgl32.Vec4)
	Viewport(width, height int)
	Clear()

	DrawElements(p Primitive, indices BufferID, count int)
	DrawArrays(p Primitive, first, count int)

	// Err returns and clears the last error raised by the context, if any.
	Err() error
	Close()
}
