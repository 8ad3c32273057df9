package sscene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Heightmap supplies terrain heights over a square grid of TileCount tiles,
// each TileScale world units wide.
type Heightmap interface {
	HeightAt(x, y float32) float32
	TileCount() int
	TileScale() float32
}

// NewModelFromHeightmap tessellates hm into (N+1)^2 vertices and N^2*6
// indices. Vertex (i, j) sits at (i*s, h(i*s, j*s), j*s) with texture
// coordinates (uScale*i/N, vScale*j/N).
func NewModelFromHeightmap(hm Heightmap, uScale, vScale float32) *Model {
	n := hm.TileCount()
	s := hm.TileScale()
	m := NewModel()
	if n <= 0 {
		return m
	}

	at := func(i, j int) mgl32.Vec3 {
		x, z := float32(i)*s, float32(j)*s
		return mgl32.Vec3{x, hm.HeightAt(x, z), z}
	}

	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			p := at(i, j)
			m.AddVertex(p)
			m.AddTexCoord(uScale*float32(i)/float32(n), vScale*float32(j)/float32(n))

			// forward differences, not averaged over neighbouring cells
			a := at(i+1, j).Sub(p)
			b := at(i, j+1).Sub(p)
			normal := b.Cross(a)
			if normal.Len() > 0 {
				normal = normal.Normalize()
			} else {
				normal = WorldUp
			}
			m.AddNormal(normal)
		}
	}

	row := uint32(n + 1)
	for j := uint32(0); j < uint32(n); j++ {
		for i := uint32(0); i < uint32(n); i++ {
			v00 := j*row + i
			v10 := v00 + 1
			v01 := v00 + row
			v11 := v01 + 1
			m.AddTriangleIndices(v10, v01, v00)
			m.AddTriangleIndices(v11, v01, v10)
		}
	}
	return m
}

// FlatPlane is a level heightmap spanning one world unit.
type FlatPlane struct {
	Segments int
}

func (p FlatPlane) HeightAt(x, y float32) float32 { return 0 }
func (p FlatPlane) TileCount() int                { return p.Segments }
func (p FlatPlane) TileScale() float32 {
	if p.Segments <= 0 {
		return 0
	}
	return 1 / float32(p.Segments)
}
