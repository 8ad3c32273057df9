package sscene

import (
	"fmt"

	"github.com/gekko3d/sscene/gpu"
)

// Drawable is a Geometry uploaded to the backend.
type Drawable struct {
	ID AssetID

	vertices  gpu.BufferID
	texCoords gpu.BufferID
	normals   gpu.BufferID
	indices   gpu.BufferID

	hasTexCoords bool
	hasNormals   bool
	vertexCount  int
	indexCount   int
}

func newDrawable(b gpu.Backend, g Geometry) (*Drawable, error) {
	d := &Drawable{
		ID:          makeAssetID(),
		vertexCount: g.VertexCount(),
		indexCount:  g.IndexCount(),
	}
	var err error
	if d.vertices, err = b.CreateVertexBuffer(g.Vertices); err != nil {
		return nil, fmt.Errorf("vertex buffer: %w", err)
	}
	if len(g.TexCoords) > 0 {
		if d.texCoords, err = b.CreateVertexBuffer(g.TexCoords); err != nil {
			d.release(b)
			return nil, fmt.Errorf("texcoord buffer: %w", err)
		}
		d.hasTexCoords = true
	}
	if len(g.Normals) > 0 {
		if d.normals, err = b.CreateVertexBuffer(g.Normals); err != nil {
			d.release(b)
			return nil, fmt.Errorf("normal buffer: %w", err)
		}
		d.hasNormals = true
	}
	if d.indexCount > 0 {
		if d.indices, err = b.CreateIndexBuffer(g.Indices); err != nil {
			d.release(b)
			return nil, fmt.Errorf("index buffer: %w", err)
		}
	}
	return d, nil
}

func (d *Drawable) VertexCount() int { return d.vertexCount }
func (d *Drawable) IndexCount() int  { return d.indexCount }

func (d *Drawable) draw(b gpu.Backend) {
	b.BindAttribute(gpu.AttribPosition, d.vertices, 3)
	if d.hasTexCoords {
		b.BindAttribute(gpu.AttribTexcoord, d.texCoords, 2)
	} else {
		b.DisableAttribute(gpu.AttribTexcoord)
	}
	if d.hasNormals {
		b.BindAttribute(gpu.AttribNormal, d.normals, 3)
	} else {
		b.DisableAttribute(gpu.AttribNormal)
	}
	b.DisableAttribute(gpu.AttribColor)

	if d.indexCount > 0 {
		b.DrawElements(gpu.Triangles, d.indices, d.indexCount)
	} else {
		b.DrawArrays(gpu.Triangles, 0, d.vertexCount)
	}
}

func (d *Drawable) release(b gpu.Backend) {
	for _, buf := range []gpu.BufferID{d.vertices, d.texCoords, d.normals, d.indices} {
		if buf != 0 {
			b.DeleteBuffer(buf)
		}
	}
}

// MeshInstance places a registered model in the scene.
type MeshInstance struct {
	Node

	drawable *Drawable
	texture  *Texture

	backfaceCulling bool
	blending        bool
}

func (mi *MeshInstance) Drawable() *Drawable { return mi.drawable }

func (mi *MeshInstance) BackfaceCulling() bool      { return mi.backfaceCulling }
func (mi *MeshInstance) SetBackfaceCulling(on bool) { mi.backfaceCulling = on }
func (mi *MeshInstance) Blending() bool             { return mi.blending }
func (mi *MeshInstance) SetBlending(on bool)        { mi.blending = on }

type InstanceOption func(*MeshInstance)

// WithBackfaceCulling overrides the default of culling back faces.
func WithBackfaceCulling(on bool) InstanceOption {
	return func(mi *MeshInstance) { mi.backfaceCulling = on }
}

// WithBlending enables alpha blending for the instance.
func WithBlending(on bool) InstanceOption {
	return func(mi *MeshInstance) { mi.blending = on }
}
