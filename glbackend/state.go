package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type capability uint32

const (
	depthTest capability = gl.DEPTH_TEST
	blend     capability = gl.BLEND
	cullFace  capability = gl.CULL_FACE
)

// stateCache skips GL calls that would not change the current state.
type stateCache struct {
	caps        map[capability]bool
	polygonMode uint32
	clearColor  mgl32.Vec4
	viewport    [2]int32
	program     uint32
	arrayBuffer uint32
	textures    [16]uint32
	activeUnit  int
}

func newStateCache() *stateCache {
	return &stateCache{
		caps:        map[capability]bool{},
		polygonMode: gl.FILL,
		activeUnit:  -1,
	}
}

func (s *stateCache) setEnabled(c capability, enabled bool) {
	if cur, known := s.caps[c]; known && cur == enabled {
		return
	}
	if enabled {
		gl.Enable(uint32(c))
	} else {
		gl.Disable(uint32(c))
	}
	s.caps[c] = enabled
}

func (s *stateCache) setPolygonMode(mode uint32) {
	if s.polygonMode == mode {
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	s.polygonMode = mode
}

func (s *stateCache) setClearColor(c mgl32.Vec4) {
	if s.clearColor == c {
		return
	}
	gl.ClearColor(c[0], c[1], c[2], c[3])
	s.clearColor = c
}

func (s *stateCache) setViewport(w, h int32) {
	if s.viewport == [2]int32{w, h} {
		return
	}
	gl.Viewport(0, 0, w, h)
	s.viewport = [2]int32{w, h}
}

func (s *stateCache) useProgram(p uint32) {
	if s.program == p {
		return
	}
	gl.UseProgram(p)
	s.program = p
}

func (s *stateCache) bindArrayBuffer(b uint32) {
	if s.arrayBuffer == b {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b)
	s.arrayBuffer = b
}

func (s *stateCache) bindTexture(unit int, t uint32) {
	if unit < 0 || unit >= len(s.textures) {
		return
	}
	if s.activeUnit != unit {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		s.activeUnit = unit
	}
	if s.textures[unit] == t {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, t)
	s.textures[unit] = t
}

// forget drops cached bindings of a deleted object.
func (s *stateCache) forgetBuffer(b uint32) {
	if s.arrayBuffer == b {
		s.arrayBuffer = 0
	}
}

func (s *stateCache) forgetTexture(t uint32) {
	for i := range s.textures {
		if s.textures[i] == t {
			s.textures[i] = 0
		}
	}
}

func (s *stateCache) forgetProgram(p uint32) {
	if s.program == p {
		s.program = 0
	}
}
