// Package objimport reads Wavefront OBJ files into sscene.ImportedScene.
//
// Parsing is done by the cogentcore xyz OBJ decoder; this package maps its
// objects onto meshes. Every distinct v/vt/vn reference becomes one output
// vertex, so positions, texture coordinates and normals share a single index
// list. Polygons are fan-triangulated.
package objimport

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"cogentcore.org/core/xyz/io/obj"
	"github.com/gekko3d/sscene"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrLoadFailed  = errors.New("objimport: load failed")
	ErrUnsupported = errors.New("objimport: unsupported content")
)

// element kinds the decoder skips with a warning but that we cannot render
var unsupported = map[string]bool{"l": true, "p": true, "curv": true, "curv2": true, "surf": true}

const unsupportedWarning = "field not supported: "

type Importer struct{}

var _ sscene.Importer = Importer{}

func (Importer) Import(path string) (*sscene.ImportedScene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses OBJ text from r. Material libraries are not followed.
// References to missing vertex data mark the scene incomplete rather than
// failing the read.
func Decode(r io.Reader) (*sscene.ImportedScene, error) {
	dec := new(obj.Decoder).New().(*obj.Decoder)
	defer dec.Destroy()
	if err := dec.Decode([]io.Reader{r}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	for _, w := range dec.Warnings {
		if _, kw, ok := strings.Cut(w, unsupportedWarning); ok && unsupported[kw] {
			return nil, fmt.Errorf("%w: %q elements (%s)", ErrUnsupported, kw, w)
		}
	}

	sc := &sscene.ImportedScene{}
	for i := range dec.Objects {
		ob := &dec.Objects[i]
		if len(ob.Faces) == 0 {
			continue
		}
		m := newMeshBuilder(ob.Name, dec)
		for fi := range ob.Faces {
			m.face(&ob.Faces[fi])
		}
		if m.incomplete() {
			sc.Incomplete = true
		}
		sc.Meshes = append(sc.Meshes, m.mesh)
	}
	return sc, nil
}

type vertexRef struct {
	v, vt, vn int
}

type meshBuilder struct {
	dec      *obj.Decoder
	mesh     sscene.ImportedMesh
	lookup   map[vertexRef]uint32
	hasUV    bool
	hasN     bool
	dangling bool
}

func newMeshBuilder(name string, dec *obj.Decoder) *meshBuilder {
	return &meshBuilder{
		dec:    dec,
		mesh:   sscene.ImportedMesh{Name: name},
		lookup: map[vertexRef]uint32{},
	}
}

// absent is the decoder's marker for a uv or normal slot left empty.
const absent = math.MaxInt32

// resolve reports whether a decoder index points into data of length count.
func resolve(idx, count int) (int, bool) {
	return idx, idx >= 0 && idx < count
}

func (m *meshBuilder) vertex(f *obj.Face, k int) (uint32, bool) {
	ref := vertexRef{v: -1, vt: -1, vn: -1}
	var ok bool
	if ref.v, ok = resolve(f.Vertices[k], len(m.dec.Vertices)/3); !ok {
		return 0, false
	}
	if f.Uvs[k] != absent {
		if ref.vt, ok = resolve(f.Uvs[k], len(m.dec.Uvs)/2); !ok {
			return 0, false
		}
	}
	if f.Normals[k] != absent {
		if ref.vn, ok = resolve(f.Normals[k], len(m.dec.Normals)/3); !ok {
			return 0, false
		}
	}

	if idx, ok := m.lookup[ref]; ok {
		return idx, true
	}
	idx := uint32(len(m.mesh.Positions))
	m.lookup[ref] = idx
	p := m.dec.Vertices[3*ref.v:]
	m.mesh.Positions = append(m.mesh.Positions, mgl32.Vec3{p[0], p[1], p[2]})
	if ref.vt >= 0 {
		if !m.hasUV {
			m.hasUV = true
			m.mesh.UVChannels = [][]mgl32.Vec2{nil}
		}
		t := m.dec.Uvs[2*ref.vt:]
		m.mesh.UVChannels[0] = append(m.mesh.UVChannels[0], mgl32.Vec2{t[0], t[1]})
	}
	if ref.vn >= 0 {
		m.hasN = true
		n := m.dec.Normals[3*ref.vn:]
		m.mesh.Normals = append(m.mesh.Normals, mgl32.Vec3{n[0], n[1], n[2]})
	}
	return idx, true
}

// face fans the polygon around its first corner.
func (m *meshBuilder) face(f *obj.Face) {
	corners := make([]uint32, 0, len(f.Vertices))
	for k := range f.Vertices {
		idx, ok := m.vertex(f, k)
		if !ok {
			m.dangling = true
			continue
		}
		corners = append(corners, idx)
	}
	for k := 1; k+1 < len(corners); k++ {
		m.mesh.Faces = append(m.mesh.Faces, []uint32{corners[0], corners[k], corners[k+1]})
	}
}

// incomplete reports dangling references, and meshes that mix faces with and
// without uv or normal data, which leaves the arrays ragged.
func (m *meshBuilder) incomplete() bool {
	if m.dangling {
		return true
	}
	if m.hasUV && len(m.mesh.UVChannels[0]) != len(m.mesh.Positions) {
		return true
	}
	return m.hasN && len(m.mesh.Normals) != len(m.mesh.Positions)
}
