// Package headless implements gpu.Backend without a GPU. It records every
// draw together with the state it was issued under, which makes render
// ordering observable in tests and lets hosts run frames without a window.
package headless

import (
	"errors"
	"fmt"
	"image"

	"github.com/gekko3d/sscene/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// State is the pipeline state a draw call was issued with.
type State struct {
	DepthTest bool
	Blend     bool
	CullFace  bool
	Wireframe bool
}

// Draw is one recorded draw call.
type Draw struct {
	Program   gpu.ProgramID
	Primitive gpu.Primitive
	Indexed   bool
	Count     int
	Texture   gpu.TextureID
	State     State
	Uniforms  map[string]any // program uniforms by name at draw time
}

type uniformKey struct {
	program gpu.ProgramID
	name    string
}

type buffer struct {
	floats  []float32
	indices []uint32
}

// Backend is a recording gpu.Backend. Fields prefixed with Fail inject errors.
type Backend struct {
	Major, Minor int

	FailInit    error
	FailProgram map[int]error // keyed by creation order, starting at 0

	// PendingErrors are returned one per Err call.
	PendingErrors []error

	Draws    []Draw
	Programs map[gpu.ProgramID]string
	Clears   int

	state      State
	clearColor mgl32.Vec4
	viewport   [2]int
	program    gpu.ProgramID
	textures   map[int]gpu.TextureID

	nextID       uint32
	programCount int
	locations    []uniformKey
	locationIdx  map[uniformKey]gpu.UniformLocation
	values       map[gpu.UniformLocation]any
	buffers      map[gpu.BufferID]*buffer
	images       map[gpu.TextureID]*image.RGBA
	attributes   map[gpu.Attribute]gpu.BufferID
	closed       bool
}

func New() *Backend {
	return &Backend{
		Major:       3,
		Minor:       3,
		FailProgram: map[int]error{},
		Programs:    map[gpu.ProgramID]string{},
		textures:    map[int]gpu.TextureID{},
		locationIdx: map[uniformKey]gpu.UniformLocation{},
		values:      map[gpu.UniformLocation]any{},
		buffers:     map[gpu.BufferID]*buffer{},
		images:      map[gpu.TextureID]*image.RGBA{},
		attributes:  map[gpu.Attribute]gpu.BufferID{},
	}
}

func (b *Backend) id() uint32 {
	b.nextID++
	return b.nextID
}

func (b *Backend) Init() error {
	if b.FailInit != nil {
		return b.FailInit
	}
	if b.Major < 3 || (b.Major == 3 && b.Minor < 3) {
		return fmt.Errorf("headless: version %d.%d below 3.3", b.Major, b.Minor)
	}
	return nil
}

func (b *Backend) Version() (int, int) { return b.Major, b.Minor }

func (b *Backend) CreateProgram(vertexSrc, fragmentSrc string) (gpu.ProgramID, error) {
	n := b.programCount
	b.programCount++
	if err := b.FailProgram[n]; err != nil {
		return 0, err
	}
	if vertexSrc == "" || fragmentSrc == "" {
		return 0, errors.New("headless: empty shader source")
	}
	p := gpu.ProgramID(b.id())
	b.Programs[p] = vertexSrc + "\n" + fragmentSrc
	return p, nil
}

func (b *Backend) DeleteProgram(p gpu.ProgramID) { delete(b.Programs, p) }

func (b *Backend) UseProgram(p gpu.ProgramID) { b.program = p }

func (b *Backend) UniformLocation(p gpu.ProgramID, name string) gpu.UniformLocation {
	if _, ok := b.Programs[p]; !ok {
		return gpu.NoUniform
	}
	k := uniformKey{program: p, name: name}
	if loc, ok := b.locationIdx[k]; ok {
		return loc
	}
	loc := gpu.UniformLocation(len(b.locations))
	b.locations = append(b.locations, k)
	b.locationIdx[k] = loc
	return loc
}

func (b *Backend) setUniform(loc gpu.UniformLocation, v any) {
	if loc < 0 || int(loc) >= len(b.locations) {
		return
	}
	b.values[loc] = v
}

func (b *Backend) SetUniformInt(loc gpu.UniformLocation, v int32)       { b.setUniform(loc, v) }
func (b *Backend) SetUniformFloat(loc gpu.UniformLocation, v float32)   { b.setUniform(loc, v) }
func (b *Backend) SetUniformVec3(loc gpu.UniformLocation, v mgl32.Vec3) { b.setUniform(loc, v) }
func (b *Backend) SetUniformMat4(loc gpu.UniformLocation, m mgl32.Mat4) { b.setUniform(loc, m) }

// Uniform returns the last value set for name on program p.
func (b *Backend) Uniform(p gpu.ProgramID, name string) (any, bool) {
	loc, ok := b.locationIdx[uniformKey{program: p, name: name}]
	if !ok {
		return nil, false
	}
	v, ok := b.values[loc]
	return v, ok
}

func (b *Backend) CreateVertexBuffer(data []float32) (gpu.BufferID, error) {
	id := gpu.BufferID(b.id())
	b.buffers[id] = &buffer{floats: append([]float32(nil), data...)}
	return id, nil
}

func (b *Backend) UpdateVertexBuffer(id gpu.BufferID, data []float32) {
	if buf, ok := b.buffers[id]; ok {
		buf.floats = append(buf.floats[:0], data...)
	}
}

func (b *Backend) CreateIndexBuffer(data []uint32) (gpu.BufferID, error) {
	id := gpu.BufferID(b.id())
	b.buffers[id] = &buffer{indices: append([]uint32(nil), data...)}
	return id, nil
}

func (b *Backend) DeleteBuffer(id gpu.BufferID) { delete(b.buffers, id) }

// BufferData returns a copy of a vertex buffer's contents.
func (b *Backend) BufferData(id gpu.BufferID) ([]float32, bool) {
	buf, ok := b.buffers[id]
	if !ok {
		return nil, false
	}
	return append([]float32(nil), buf.floats...), true
}

// LiveBuffers counts buffers created and not yet deleted.
func (b *Backend) LiveBuffers() int { return len(b.buffers) }

func (b *Backend) BindAttribute(a gpu.Attribute, id gpu.BufferID, size int) {
	b.attributes[a] = id
}

func (b *Backend) DisableAttribute(a gpu.Attribute) { delete(b.attributes, a) }

// Attribute returns the buffer currently feeding a.
func (b *Backend) Attribute(a gpu.Attribute) (gpu.BufferID, bool) {
	id, ok := b.attributes[a]
	return id, ok
}

func (b *Backend) CreateTexture(img *image.RGBA) (gpu.TextureID, error) {
	if img == nil || img.Bounds().Empty() {
		return 0, errors.New("headless: empty texture")
	}
	id := gpu.TextureID(b.id())
	b.images[id] = img
	return id, nil
}

func (b *Backend) BindTexture(unit int, t gpu.TextureID) { b.textures[unit] = t }

func (b *Backend) DeleteTexture(t gpu.TextureID) { delete(b.images, t) }

// TextureImage returns the pixels uploaded for t.
func (b *Backend) TextureImage(t gpu.TextureID) (*image.RGBA, bool) {
	img, ok := b.images[t]
	return img, ok
}

// LiveTextures counts textures created and not yet deleted.
func (b *Backend) LiveTextures() int { return len(b.images) }

func (b *Backend) SetDepthTest(enabled bool)  { b.state.DepthTest = enabled }
func (b *Backend) SetBlend(enabled bool)      { b.state.Blend = enabled }
func (b *Backend) SetCullFace(enabled bool)   { b.state.CullFace = enabled }
func (b *Backend) SetWireframe(enabled bool)  { b.state.Wireframe = enabled }
func (b *Backend) SetClearColor(c mgl32.Vec4) { b.clearColor = c }
func (b *Backend) Viewport(width, height int) { b.viewport = [2]int{width, height} }
func (b *Backend) Clear()                     { b.Clears++ }

func (b *Backend) ClearColor() mgl32.Vec4   { return b.clearColor }
func (b *Backend) ViewportSize() (int, int) { return b.viewport[0], b.viewport[1] }

func (b *Backend) record(p gpu.Primitive, indexed bool, count int) {
	uniforms := map[string]any{}
	for loc, v := range b.values {
		k := b.locations[loc]
		if k.program == b.program {
			uniforms[k.name] = v
		}
	}
	b.Draws = append(b.Draws, Draw{
		Program:   b.program,
		Primitive: p,
		Indexed:   indexed,
		Count:     count,
		Texture:   b.textures[0],
		State:     b.state,
		Uniforms:  uniforms,
	})
}

func (b *Backend) DrawElements(p gpu.Primitive, indices gpu.BufferID, count int) {
	b.record(p, true, count)
}

func (b *Backend) DrawArrays(p gpu.Primitive, first, count int) {
	b.record(p, false, count)
}

func (b *Backend) Err() error {
	if len(b.PendingErrors) == 0 {
		return nil
	}
	err := b.PendingErrors[0]
	b.PendingErrors = b.PendingErrors[1:]
	return err
}

func (b *Backend) Close() { b.closed = true }

func (b *Backend) Closed() bool { return b.closed }

// Reset drops recorded draws and clears, keeping resources.
func (b *Backend) Reset() {
	b.Draws = nil
	b.Clears = 0
}

var _ gpu.Backend = (*Backend)(nil)
