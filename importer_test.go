package sscene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	scene *ImportedScene
	err   error
	paths []string
}

func (f *fakeImporter) Import(path string) (*ImportedScene, error) {
	f.paths = append(f.paths, path)
	return f.scene, f.err
}

func importedTriangle() ImportedMesh {
	return ImportedMesh{
		Name:       "tri",
		Positions:  []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:    []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVChannels: [][]mgl32.Vec2{{{0, 0}, {1, 0}, {0, 1}}},
		Faces:      [][]uint32{{0, 1, 2}},
	}
}

func TestNewModelFromFile(t *testing.T) {
	imp := &fakeImporter{scene: &ImportedScene{Meshes: []ImportedMesh{importedTriangle(), {Name: "ignored"}}}}
	m, err := NewModelFromFile(imp, "tri.obj")
	require.NoError(t, err)
	assert.Equal(t, []string{"tri.obj"}, imp.paths)

	g := m.Geometry()
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2}, g.Indices, "face order is kept as imported")
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1}, g.TexCoords)
	assert.Len(t, g.Normals, 9)
}

func TestNewModelFromFile_withoutNormals(t *testing.T) {
	mesh := importedTriangle()
	mesh.Normals = nil
	m, err := NewModelFromFile(&fakeImporter{scene: &ImportedScene{Meshes: []ImportedMesh{mesh}}}, "tri.obj")
	require.NoError(t, err)
	assert.Empty(t, m.Geometry().Normals)
}

func TestNewModelFromFile_failures(t *testing.T) {
	ioErr := errors.New("disk on fire")
	tests := []struct {
		name   string
		scene  *ImportedScene
		err    error
		mutate func(m *ImportedMesh)
	}{
		{name: "importer error", err: ioErr},
		{name: "incomplete", scene: &ImportedScene{Meshes: []ImportedMesh{importedTriangle()}, Incomplete: true}},
		{name: "no meshes", scene: &ImportedScene{}},
		{name: "no uv channel", mutate: func(m *ImportedMesh) { m.UVChannels = nil }},
		{name: "two uv channels", mutate: func(m *ImportedMesh) { m.UVChannels = append(m.UVChannels, m.UVChannels[0]) }},
		{name: "short uv channel", mutate: func(m *ImportedMesh) { m.UVChannels[0] = m.UVChannels[0][:2] }},
		{name: "short normals", mutate: func(m *ImportedMesh) { m.Normals = m.Normals[:1] }},
		{name: "quad face", mutate: func(m *ImportedMesh) { m.Faces = [][]uint32{{0, 1, 2, 0}} }},
		{name: "index out of range", mutate: func(m *ImportedMesh) { m.Faces = [][]uint32{{0, 1, 5}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := tt.scene
			if sc == nil && tt.err == nil {
				mesh := importedTriangle()
				tt.mutate(&mesh)
				sc = &ImportedScene{Meshes: []ImportedMesh{mesh}}
			}
			m, err := NewModelFromFile(&fakeImporter{scene: sc, err: tt.err}, "broken.obj")
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrAssetLoad)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
			assert.Equal(t, sc != nil && sc.Incomplete, errors.Is(err, ErrIncomplete))
		})
	}
}

func TestNewModelFromFile_noImporter(t *testing.T) {
	_, err := NewModelFromFile(nil, "cube.obj")
	assert.ErrorIs(t, err, ErrAssetLoad)
}
