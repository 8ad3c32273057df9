package sscene

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is the flat vertex data of one model. Texture coordinates and
// normals are optional, but when present they describe the same vertex count
// as Vertices.
type Geometry struct {
	Vertices  []float32 // 3 per vertex
	TexCoords []float32 // 2 per vertex
	Normals   []float32 // 3 per vertex
	Indices   []uint32  // 3 per triangle
}

func (g Geometry) VertexCount() int { return len(g.Vertices) / 3 }
func (g Geometry) IndexCount() int  { return len(g.Indices) }

func (g Geometry) Validate() error {
	if len(g.Vertices) == 0 || len(g.Vertices)%3 != 0 {
		return fmt.Errorf("%d vertex floats: %w", len(g.Vertices), ErrInvalidGeometry)
	}
	n := g.VertexCount()
	if len(g.TexCoords) != 0 && len(g.TexCoords) != 2*n {
		return fmt.Errorf("%d texcoord floats for %d vertices: %w", len(g.TexCoords), n, ErrInvalidGeometry)
	}
	if len(g.Normals) != 0 && len(g.Normals) != 3*n {
		return fmt.Errorf("%d normal floats for %d vertices: %w", len(g.Normals), n, ErrInvalidGeometry)
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%d indices is not a triangle list: %w", len(g.Indices), ErrInvalidGeometry)
	}
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range for %d vertices: %w", idx, i, n, ErrInvalidGeometry)
		}
	}
	return nil
}

func (g Geometry) clone() Geometry {
	return Geometry{
		Vertices:  slices.Clone(g.Vertices),
		TexCoords: slices.Clone(g.TexCoords),
		Normals:   slices.Clone(g.Normals),
		Indices:   slices.Clone(g.Indices),
	}
}

// Model accumulates geometry before it is registered with a Scene.
type Model struct {
	geom Geometry
}

func NewModel() *Model { return &Model{} }

// NewModelFromArrays appends the given arrays in order. The slices are copied.
func NewModelFromArrays(vertices, texCoords []float32, indices []uint32, normals []float32) *Model {
	m := NewModel()
	m.geom.Vertices = append(m.geom.Vertices, vertices...)
	m.geom.TexCoords = append(m.geom.TexCoords, texCoords...)
	m.geom.Indices = append(m.geom.Indices, indices...)
	m.geom.Normals = append(m.geom.Normals, normals...)
	return m
}

func (m *Model) AddVertex(v mgl32.Vec3) {
	m.geom.Vertices = append(m.geom.Vertices, v.X(), v.Y(), v.Z())
}

func (m *Model) AddNormal(v mgl32.Vec3) {
	m.geom.Normals = append(m.geom.Normals, v.X(), v.Y(), v.Z())
}

func (m *Model) AddTexCoord(u, v float32) {
	m.geom.TexCoords = append(m.geom.TexCoords, u, v)
}

func (m *Model) AddIndex(i uint32) {
	m.geom.Indices = append(m.geom.Indices, i)
}

// AddTriangleIndices stores the triangle in reverse order (i3, i2, i1).
func (m *Model) AddTriangleIndices(i1, i2, i3 uint32) {
	m.geom.Indices = append(m.geom.Indices, i3, i2, i1)
}

// AddQuadIndices stores the triangles (i1, i2, i3) and (i1, i3, i4).
func (m *Model) AddQuadIndices(i1, i2, i3, i4 uint32) {
	m.geom.Indices = append(m.geom.Indices, i1, i2, i3, i1, i3, i4)
}

func (m *Model) VertexCount() int { return m.geom.VertexCount() }
func (m *Model) IndexCount() int  { return m.geom.IndexCount() }

func (m *Model) Validate() error { return m.geom.Validate() }

// Geometry returns a copy of the accumulated data.
func (m *Model) Geometry() Geometry { return m.geom.clone() }
