package sscene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slopeMap struct {
	n     int
	scale float32
}

func (s slopeMap) HeightAt(x, y float32) float32 { return 0.5 * x }
func (s slopeMap) TileCount() int                { return s.n }
func (s slopeMap) TileScale() float32            { return s.scale }

type waveMap struct{}

func (waveMap) HeightAt(x, y float32) float32 {
	return 3*float32(math.Sin(float64(0.2*x))) + 5*float32(math.Cos(float64(0.1*y))) - 8
}
func (waveMap) TileCount() int     { return 16 }
func (waveMap) TileScale() float32 { return 1 }

func vertexAt(g Geometry, i uint32) mgl32.Vec3 {
	return mgl32.Vec3{g.Vertices[3*i], g.Vertices[3*i+1], g.Vertices[3*i+2]}
}

func TestNewModelFromHeightmap_counts(t *testing.T) {
	for _, n := range []int{1, 2, 8} {
		m := NewModelFromHeightmap(FlatPlane{Segments: n}, 1, 1)
		g := m.Geometry()
		assert.Equal(t, (n+1)*(n+1), g.VertexCount(), "segments %d", n)
		assert.Equal(t, 6*n*n, g.IndexCount(), "segments %d", n)
		assert.Equal(t, 2*g.VertexCount(), len(g.TexCoords))
		assert.Equal(t, 3*g.VertexCount(), len(g.Normals))
		require.NoError(t, g.Validate())
	}
}

func TestNewModelFromHeightmap_layout(t *testing.T) {
	g := NewModelFromHeightmap(slopeMap{n: 4, scale: 2}, 8, 4).Geometry()

	// vertex (i, j) lives at index j*(N+1)+i
	i, j := uint32(3), uint32(1)
	idx := j*5 + i
	assertVec3(t, mgl32.Vec3{6, 3, 2}, vertexAt(g, idx))
	assert.InDelta(t, 8*3.0/4, g.TexCoords[2*idx], eps)
	assert.InDelta(t, 4*1.0/4, g.TexCoords[2*idx+1], eps)

	last := uint32(g.VertexCount() - 1)
	assertVec3(t, mgl32.Vec3{8, 4, 8}, vertexAt(g, last))
}

func TestNewModelFromHeightmap_flatNormalsPointUp(t *testing.T) {
	g := NewModelFromHeightmap(FlatPlane{Segments: 3}, 1, 1).Geometry()
	for v := 0; v < g.VertexCount(); v++ {
		n := mgl32.Vec3{g.Normals[3*v], g.Normals[3*v+1], g.Normals[3*v+2]}
		assertVec3(t, WorldUp, n)
	}
}

func TestNewModelFromHeightmap_slopeNormals(t *testing.T) {
	g := NewModelFromHeightmap(slopeMap{n: 2, scale: 1}, 1, 1).Geometry()
	want := mgl32.Vec3{-0.5, 1, 0}.Normalize()
	n := mgl32.Vec3{g.Normals[0], g.Normals[1], g.Normals[2]}
	assertVec3(t, want, n)
}

func TestNewModelFromHeightmap_windingFacesUp(t *testing.T) {
	g := NewModelFromHeightmap(waveMap{}, 1, 1).Geometry()
	for k := 0; k < len(g.Indices); k += 3 {
		a := vertexAt(g, g.Indices[k])
		b := vertexAt(g, g.Indices[k+1])
		c := vertexAt(g, g.Indices[k+2])
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Y() <= 0 {
			t.Fatalf("triangle %d (%v %v %v) is not counter-clockwise from above", k/3, a, b, c)
		}
	}
}

func TestNewModelFromHeightmap_empty(t *testing.T) {
	m := NewModelFromHeightmap(FlatPlane{}, 1, 1)
	assert.Zero(t, m.VertexCount())
	assert.ErrorIs(t, m.Validate(), ErrInvalidGeometry)
}

func TestFlatPlane_spansUnitSquare(t *testing.T) {
	g := NewModelFromHeightmap(FlatPlane{Segments: 4}, 1, 1).Geometry()
	assertVec3(t, mgl32.Vec3{1, 0, 1}, vertexAt(g, uint32(g.VertexCount()-1)))
}
