package sscene

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	}
	return fmt.Sprintf("LightKind(%d)", uint8(k))
}

// Light is implemented by the three light variants a Scene owns.
type Light interface {
	Kind() LightKind
	IsOn() bool
	Color() mgl32.Vec3
}

// lightState holds the color (0..1 per channel) and on flag shared by all variants.
type lightState struct {
	color mgl32.Vec3
	on    bool
}

func (l *lightState) SetState(on bool)          { l.on = on }
func (l *lightState) IsOn() bool                { return l.on }
func (l *lightState) Color() mgl32.Vec3         { return l.color }
func (l *lightState) SetColor(c mgl32.Vec3)     { l.color = c }
func (l *lightState) SetColorRGBA(c color.RGBA) { l.color = colorToVec3(c) }

func colorToVec3(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func colorToVec4(c color.RGBA) mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

type AmbientLight struct {
	lightState
}

func NewAmbientLight(c color.RGBA, on bool) *AmbientLight {
	return &AmbientLight{lightState{color: colorToVec3(c), on: on}}
}

func (l *AmbientLight) Kind() LightKind { return LightAmbient }

// DirectionalLight shines along a normalized world-space direction.
type DirectionalLight struct {
	lightState
	direction mgl32.Vec3
}

// NewDirectionalLight returns a light that is always on when constructed.
// A zero dir leaves the light shining along WorldForward.
func NewDirectionalLight(dir mgl32.Vec3, c color.RGBA) *DirectionalLight {
	l := &DirectionalLight{lightState: lightState{color: colorToVec3(c), on: true}, direction: WorldForward}
	if dir.Len() >= basisEpsilon {
		l.direction = dir.Normalize()
	}
	return l
}

func (l *DirectionalLight) Kind() LightKind       { return LightDirectional }
func (l *DirectionalLight) Direction() mgl32.Vec3 { return l.direction }

// SetDirection stores dir normalized. A zero direction is rejected.
func (l *DirectionalLight) SetDirection(dir mgl32.Vec3) error {
	if dir.Len() < basisEpsilon {
		return fmt.Errorf("directional light direction: %w", ErrZeroVector)
	}
	l.direction = dir.Normalize()
	return nil
}

// PointLight has a position and constant/linear/quadratic attenuation terms.
type PointLight struct {
	lightState
	Node
	attenuation mgl32.Vec3
}

func NewPointLight(pos, attenuation mgl32.Vec3, c color.RGBA, on bool) *PointLight {
	l := &PointLight{
		lightState:  lightState{color: colorToVec3(c), on: on},
		Node:        NewNode(),
		attenuation: attenuation,
	}
	l.SetPosition(pos)
	return l
}

func (l *PointLight) Kind() LightKind             { return LightPoint }
func (l *PointLight) Attenuation() mgl32.Vec3     { return l.attenuation }
func (l *PointLight) SetAttenuation(a mgl32.Vec3) { l.attenuation = a }

// RelativeTo returns the light position minus p.
func (l *PointLight) RelativeTo(p mgl32.Vec3) mgl32.Vec3 { return l.position.Sub(p) }
