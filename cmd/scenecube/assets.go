package main

import (
	"image"
	"image/color"

	"github.com/gekko3d/sscene"
	"github.com/go-gl/mathgl/mgl32"
)

// cubeModel builds a unit cube centred on the origin with one quad per face,
// so every face gets its own normals and a full 0..1 texture.
func cubeModel() *sscene.Model {
	faces := []struct{ normal, u mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}},
	}
	corners := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	m := sscene.NewModel()
	for i, f := range faces {
		v := f.normal.Cross(f.u)
		centre := f.normal.Mul(0.5)
		for _, c := range corners {
			m.AddVertex(centre.Add(f.u.Mul(c.X() / 2)).Add(v.Mul(c.Y() / 2)))
			m.AddNormal(f.normal)
			m.AddTexCoord((c.X()+1)/2, (c.Y()+1)/2)
		}
		base := uint32(i * 4)
		m.AddQuadIndices(base, base+1, base+2, base+3)
	}
	return m
}

func checkerImage(size, cells int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{235, 240, 250, 255}
	dark := color.RGBA{150, 165, 190, 255}
	cell := max(size/cells, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}

// frameImage is a translucent panel with an opaque border.
func frameImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	const border = 4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < border || y < border || x >= w-border || y >= h-border {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{20, 30, 60, 120})
			}
		}
	}
	return img
}
