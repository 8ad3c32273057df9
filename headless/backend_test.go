package headless

import (
	"errors"
	"image"
	"testing"

	"github.com/gekko3d/sscene/gpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_Init(t *testing.T) {
	b := New()
	require.NoError(t, b.Init())
	major, minor := b.Version()
	assert.Equal(t, 3, major)
	assert.Equal(t, 3, minor)

	b.Major, b.Minor = 3, 2
	assert.Error(t, b.Init())

	b = New()
	b.FailInit = errors.New("boom")
	assert.ErrorIs(t, b.Init(), b.FailInit)
}

func TestBackend_programsAndUniforms(t *testing.T) {
	b := New()
	b.FailProgram[1] = errors.New("link failed")

	p, err := b.CreateProgram("vs", "fs")
	require.NoError(t, err)
	_, err = b.CreateProgram("vs", "fs")
	assert.EqualError(t, err, "link failed")
	_, err = b.CreateProgram("", "fs")
	assert.Error(t, err)

	loc := b.UniformLocation(p, "u_MVP")
	assert.NotEqual(t, gpu.NoUniform, loc)
	assert.Equal(t, loc, b.UniformLocation(p, "u_MVP"))
	assert.Equal(t, gpu.NoUniform, b.UniformLocation(p+100, "u_MVP"))

	b.SetUniformMat4(loc, mgl32.Ident4())
	b.SetUniformInt(gpu.NoUniform, 3)
	v, ok := b.Uniform(p, "u_MVP")
	require.True(t, ok)
	assert.Equal(t, mgl32.Ident4(), v)
	_, ok = b.Uniform(p, "u_other")
	assert.False(t, ok)

	b.DeleteProgram(p)
	assert.Empty(t, b.Programs)
}

func TestBackend_recordsDraws(t *testing.T) {
	b := New()
	p, err := b.CreateProgram("vs", "fs")
	require.NoError(t, err)
	other, err := b.CreateProgram("vs2", "fs2")
	require.NoError(t, err)

	b.UseProgram(p)
	b.SetUniformFloat(b.UniformLocation(p, "u_time"), 1.5)
	b.SetUniformFloat(b.UniformLocation(other, "u_time"), 9)
	tex, err := b.CreateTexture(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)
	b.BindTexture(0, tex)
	b.SetDepthTest(true)
	b.SetBlend(true)
	idx, err := b.CreateIndexBuffer([]uint32{0, 1, 2})
	require.NoError(t, err)
	b.DrawElements(gpu.Triangles, idx, 3)

	b.SetBlend(false)
	b.SetWireframe(true)
	b.DrawArrays(gpu.Lines, 0, 2)

	require.Len(t, b.Draws, 2)
	first := b.Draws[0]
	assert.Equal(t, p, first.Program)
	assert.True(t, first.Indexed)
	assert.Equal(t, tex, first.Texture)
	assert.Equal(t, State{DepthTest: true, Blend: true}, first.State)
	assert.Equal(t, map[string]any{"u_time": float32(1.5)}, first.Uniforms)

	second := b.Draws[1]
	assert.Equal(t, gpu.Lines, second.Primitive)
	assert.False(t, second.Indexed)
	assert.Equal(t, State{DepthTest: true, Wireframe: true}, second.State)

	b.Reset()
	assert.Empty(t, b.Draws)
	assert.Equal(t, 1, b.LiveTextures())
}

func TestBackend_buffers(t *testing.T) {
	b := New()
	data := []float32{1, 2, 3}
	id, err := b.CreateVertexBuffer(data)
	require.NoError(t, err)
	data[0] = 9

	got, ok := b.BufferData(id)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, got)

	b.UpdateVertexBuffer(id, []float32{4, 5})
	got, _ = b.BufferData(id)
	assert.Equal(t, []float32{4, 5}, got)

	b.BindAttribute(gpu.AttribPosition, id, 3)
	bound, ok := b.Attribute(gpu.AttribPosition)
	assert.True(t, ok)
	assert.Equal(t, id, bound)
	b.DisableAttribute(gpu.AttribPosition)
	_, ok = b.Attribute(gpu.AttribPosition)
	assert.False(t, ok)

	assert.Equal(t, 1, b.LiveBuffers())
	b.DeleteBuffer(id)
	assert.Zero(t, b.LiveBuffers())
}

func TestBackend_textures(t *testing.T) {
	b := New()
	_, err := b.CreateTexture(image.NewRGBA(image.Rectangle{}))
	assert.Error(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	id, err := b.CreateTexture(img)
	require.NoError(t, err)
	got, ok := b.TextureImage(id)
	require.True(t, ok)
	assert.Same(t, img, got)

	b.DeleteTexture(id)
	assert.Zero(t, b.LiveTextures())
}

func TestBackend_PendingErrors(t *testing.T) {
	b := New()
	e1, e2 := errors.New("first"), errors.New("second")
	b.PendingErrors = []error{e1, e2}
	assert.Equal(t, e1, b.Err())
	assert.Equal(t, e2, b.Err())
	assert.NoError(t, b.Err())
}

func TestBackend_frameState(t *testing.T) {
	b := New()
	b.SetClearColor(mgl32.Vec4{0.1, 0.2, 0.3, 1})
	b.Viewport(640, 480)
	b.Clear()
	b.Clear()

	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, b.ClearColor())
	w, h := b.ViewportSize()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 2, b.Clears)

	assert.False(t, b.Closed())
	b.Close()
	assert.True(t, b.Closed())
}
