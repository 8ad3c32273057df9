package sscene

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_routesAndCounts(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("scene", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("backend version %d.%d", 3, 3)
	l.Warnf("mesh pass %q: %s", "tri", "GL_INVALID_OPERATION")
	l.Errorf("texture %q: missing", "snow")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[scene] INFO: backend version 3.3")
	assert.Contains(t, errOut.String(), `[scene] WARN: mesh pass "tri": GL_INVALID_OPERATION`)
	assert.Contains(t, errOut.String(), `[scene] ERROR: texture "snow": missing`)
	assert.Equal(t, 2, l.Problems())

	l.SetDebug(true)
	l.Debugf("shown")
	assert.Contains(t, out.String(), "DEBUG: shown")
}

func TestDefaultLogger_noPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewWriterLogger("", false, &out, &out)
	l.Infof("ready")
	assert.Contains(t, out.String(), " INFO: ready")
	assert.NotContains(t, out.String(), "[")
}

func TestLogFrameStats(t *testing.T) {
	var out bytes.Buffer
	l := NewWriterLogger("", false, &out, &out)

	LogFrameStats(l, 1, FrameStats{MeshDraws: 3})
	assert.Empty(t, out.String(), "clean frames only show at debug level")

	LogFrameStats(l, 2, FrameStats{MeshDraws: 3, Errors: 1})
	assert.Contains(t, out.String(), "INFO: frame 2: 3 meshes, 0 lines, 0 overlays, 1 errors")

	l.SetDebug(true)
	LogFrameStats(l, 3, FrameStats{LineDraws: 1})
	assert.Contains(t, out.String(), "DEBUG: frame 3: 0 meshes, 1 lines, 0 overlays, 0 errors")
}
