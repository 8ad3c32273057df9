package sscene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ImportedMesh is one mesh as delivered by an Importer. Importers triangulate;
// any face that still has other than three indices is rejected.
type ImportedMesh struct {
	Name       string
	Positions  []mgl32.Vec3
	Normals    []mgl32.Vec3
	UVChannels [][]mgl32.Vec2
	Faces      [][]uint32
}

type ImportedScene struct {
	Meshes     []ImportedMesh
	Incomplete bool
}

// Importer reads a mesh asset from disk.
type Importer interface {
	Import(path string) (*ImportedScene, error)
}

// NewModelFromFile imports path and builds a model from its first mesh. The
// mesh must have exactly one UV channel and only triangular faces.
func NewModelFromFile(imp Importer, path string) (*Model, error) {
	if imp == nil {
		return nil, fmt.Errorf("%s: no importer configured: %w", path, ErrAssetLoad)
	}
	sc, err := imp.Import(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrAssetLoad, err)
	}
	if sc.Incomplete {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrAssetLoad, ErrIncomplete)
	}
	if len(sc.Meshes) == 0 {
		return nil, fmt.Errorf("%s: no meshes: %w", path, ErrAssetLoad)
	}
	mesh := sc.Meshes[0]
	if len(mesh.UVChannels) != 1 {
		return nil, fmt.Errorf("%s: %d UV channels, want 1: %w", path, len(mesh.UVChannels), ErrAssetLoad)
	}
	uvs := mesh.UVChannels[0]
	if len(uvs) != len(mesh.Positions) {
		return nil, fmt.Errorf("%s: %d UVs for %d vertices: %w", path, len(uvs), len(mesh.Positions), ErrAssetLoad)
	}
	if len(mesh.Normals) != 0 && len(mesh.Normals) != len(mesh.Positions) {
		return nil, fmt.Errorf("%s: %d normals for %d vertices: %w", path, len(mesh.Normals), len(mesh.Positions), ErrAssetLoad)
	}

	m := NewModel()
	for i, p := range mesh.Positions {
		m.AddVertex(p)
		m.AddTexCoord(uvs[i].X(), uvs[i].Y())
	}
	for _, n := range mesh.Normals {
		m.AddNormal(n)
	}
	for i, f := range mesh.Faces {
		if len(f) != 3 {
			return nil, fmt.Errorf("%s: face %d has %d indices: %w", path, i, len(f), ErrAssetLoad)
		}
		m.geom.Indices = append(m.geom.Indices, f...)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrAssetLoad, err)
	}
	return m, nil
}
