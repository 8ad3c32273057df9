package sscene

import (
	"image/color"

	"github.com/gekko3d/sscene/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

type lineSegment struct {
	start mgl32.Vec3
	end   mgl32.Vec3
	color color.RGBA
}

// Line is a named batch of world-space debug segments. Buffers are created
// on first draw and re-uploaded only after the batch changed.
type Line struct {
	segments []lineSegment

	positions gpu.BufferID
	colors    gpu.BufferID
	dirty     bool
}

func (l *Line) addSegment(start, end mgl32.Vec3, c color.RGBA) {
	l.segments = append(l.segments, lineSegment{start: start, end: end, color: c})
	l.dirty = true
}

func (l *Line) clear() {
	l.segments = l.segments[:0]
	l.dirty = true
}

func (l *Line) IsEmpty() bool     { return len(l.segments) == 0 }
func (l *Line) SegmentCount() int { return len(l.segments) }

func (l *Line) vertexData() (positions, colors []float32) {
	positions = make([]float32, 0, len(l.segments)*6)
	colors = make([]float32, 0, len(l.segments)*8)
	for _, s := range l.segments {
		positions = append(positions, s.start[:]...)
		positions = append(positions, s.end[:]...)
		c := colorToVec4(s.color)
		colors = append(colors, c[:]...)
		colors = append(colors, c[:]...)
	}
	return positions, colors
}

func (l *Line) sync(b gpu.Backend) error {
	if !l.dirty && l.positions != 0 {
		return nil
	}
	positions, colors := l.vertexData()
	if l.positions == 0 {
		var err error
		if l.positions, err = b.CreateVertexBuffer(positions); err != nil {
			return err
		}
		if l.colors, err = b.CreateVertexBuffer(colors); err != nil {
			return err
		}
	} else {
		b.UpdateVertexBuffer(l.positions, positions)
		b.UpdateVertexBuffer(l.colors, colors)
	}
	l.dirty = false
	return nil
}

func (l *Line) draw(b gpu.Backend) {
	b.BindAttribute(gpu.AttribPosition, l.positions, 3)
	b.BindAttribute(gpu.AttribColor, l.colors, 4)
	b.DisableAttribute(gpu.AttribTexcoord)
	b.DisableAttribute(gpu.AttribNormal)
	b.DrawArrays(gpu.Lines, 0, 2*len(l.segments))
}

func (l *Line) release(b gpu.Backend) {
	if l.positions != 0 {
		b.DeleteBuffer(l.positions)
	}
	if l.colors != 0 {
		b.DeleteBuffer(l.colors)
	}
	l.positions, l.colors = 0, 0
}
