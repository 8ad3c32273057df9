package sscene

import (
	"image"

	"github.com/gekko3d/sscene/gpu"
)

// Overlay is a textured screen-space quad drawn after the 3D passes.
// Overlays start disabled. Without an explicit placement the quad covers the
// whole screen.
type Overlay struct {
	texture *Texture
	enabled bool

	placement    image.Rectangle
	hasPlacement bool

	positions gpu.BufferID
	texCoords gpu.BufferID
	builtRect image.Rectangle
	builtSize image.Point
}

func (o *Overlay) Enabled() bool { return o.enabled }

// Placement returns the quad in pixels, origin at the top-left corner.
func (o *Overlay) Placement(width, height int) image.Rectangle {
	if o.hasPlacement {
		return o.placement
	}
	return image.Rect(0, 0, width, height)
}

func (o *Overlay) Texture() *Texture { return o.texture }

// quadVertices converts a top-left based pixel rectangle into the centred
// coordinates OrthoMatrix expects.
func quadVertices(r image.Rectangle, width, height int) []float32 {
	hw, hh := float32(width)/2, float32(height)/2
	x0, x1 := float32(r.Min.X)-hw, float32(r.Max.X)-hw
	y0, y1 := hh-float32(r.Max.Y), hh-float32(r.Min.Y)
	return []float32{
		x0, y0, 0,
		x1, y0, 0,
		x1, y1, 0,
		x0, y0, 0,
		x1, y1, 0,
		x0, y1, 0,
	}
}

var quadTexCoords = []float32{
	0, 0,
	1, 0,
	1, 1,
	0, 0,
	1, 1,
	0, 1,
}

func (o *Overlay) sync(b gpu.Backend, width, height int) error {
	r := o.Placement(width, height)
	size := image.Pt(width, height)
	if o.positions != 0 && r == o.builtRect && size == o.builtSize {
		return nil
	}
	vertices := quadVertices(r, width, height)
	if o.positions == 0 {
		var err error
		if o.positions, err = b.CreateVertexBuffer(vertices); err != nil {
			return err
		}
		if o.texCoords, err = b.CreateVertexBuffer(quadTexCoords); err != nil {
			return err
		}
	} else {
		b.UpdateVertexBuffer(o.positions, vertices)
	}
	o.builtRect, o.builtSize = r, size
	return nil
}

func (o *Overlay) draw(b gpu.Backend) {
	b.BindTexture(0, o.texture.handle)
	b.BindAttribute(gpu.AttribPosition, o.positions, 3)
	b.BindAttribute(gpu.AttribTexcoord, o.texCoords, 2)
	b.DisableAttribute(gpu.AttribNormal)
	b.DisableAttribute(gpu.AttribColor)
	b.DrawArrays(gpu.Triangles, 0, 6)
}

func (o *Overlay) release(b gpu.Backend) {
	if o.positions != 0 {
		b.DeleteBuffer(o.positions)
	}
	if o.texCoords != 0 {
		b.DeleteBuffer(o.texCoords)
	}
	o.positions, o.texCoords = 0, 0
	o.texture.release(b)
}
