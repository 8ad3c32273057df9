package glbackend

import (
	"testing"

	"github.com/gekko3d/sscene/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
)

// These run without a GL context; they only cover the pure mappings.

func TestPrimitiveMode(t *testing.T) {
	assert.Equal(t, uint32(gl.TRIANGLES), primitiveMode(gpu.Triangles))
	assert.Equal(t, uint32(gl.LINES), primitiveMode(gpu.Lines))
}

func TestErrorNames(t *testing.T) {
	assert.Equal(t, "GL_INVALID_OPERATION", errorNames[gl.INVALID_OPERATION])
	assert.Len(t, errorNames, 5)
}

func TestStateCache_new(t *testing.T) {
	s := newStateCache()
	assert.Equal(t, uint32(gl.FILL), s.polygonMode)
	assert.Equal(t, -1, s.activeUnit)
	assert.Empty(t, s.caps)

	s.arrayBuffer, s.program = 7, 3
	s.textures[2] = 5
	s.forgetBuffer(7)
	s.forgetProgram(3)
	s.forgetTexture(5)
	assert.Zero(t, s.arrayBuffer)
	assert.Zero(t, s.program)
	assert.Zero(t, s.textures[2])
}
