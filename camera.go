package sscene

import (
	"fmt"

	"cogentcore.org/core/base/ordmap"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ForwardKey  = "Forward"
	SidewaysKey = "Sideways"
	UpwardsKey  = "Upwards"
)

// MovementCoeffs scales the camera's target, up and sideways (target x up)
// vectors for one movement key.
type MovementCoeffs struct {
	Forward  float32
	Up       float32
	Sideways float32
}

type movement struct {
	coeffs MovementCoeffs
	cached mgl32.Vec3
}

// Camera is a Node driven by accumulated yaw/pitch and named movement keys.
// Cached movement vectors always match the current orientation.
type Camera struct {
	Node

	hRot float32
	vRot float32

	keys *ordmap.Map[string, *movement]
}

func NewCamera() *Camera {
	c := &Camera{
		Node: NewNode(),
		keys: ordmap.New[string, *movement](),
	}
	c.setBasis(WorldForward, WorldUp)
	return c
}

func (c *Camera) HorizontalRotation() float32 { return c.hRot }
func (c *Camera) VerticalRotation() float32   { return c.vRot }

// Rotate adds yaw and pitch (radians) to the accumulators and rebuilds the
// orientation from them. Pitch is not clamped; past +-90 degrees the up
// vector flips.
func (c *Camera) Rotate(yaw, pitch float32) {
	c.hRot += yaw
	c.vRot += pitch

	view := RotateVector(WorldForward, c.hRot, WorldUp).Normalize()
	haxis := WorldUp.Cross(view).Normalize()

	target := RotateVector(view, -c.vRot, haxis).Normalize()
	up := target.Cross(haxis).Normalize()
	c.setBasis(target, up)

	for _, kv := range c.keys.Order {
		kv.Value.cached = c.movementVector(kv.Value.coeffs)
	}
}

// LookAt turns the camera towards point, keeping the yaw/pitch accumulators
// consistent with the new orientation.
func (c *Camera) LookAt(point mgl32.Vec3) error {
	d := point.Sub(c.position)
	if d.Len() < basisEpsilon {
		return fmt.Errorf("look at %v from same position: %w", point, ErrDegenerateBasis)
	}
	d = d.Normalize()
	c.hRot = math32.Atan2(-d.Z(), d.X())
	c.vRot = math32.Asin(mgl32.Clamp(d.Y(), -1, 1))
	c.Rotate(0, 0)
	return nil
}

func (c *Camera) movementVector(m MovementCoeffs) mgl32.Vec3 {
	var r mgl32.Vec3
	target, up := c.TargetVector(), c.UpVector()
	if m.Forward != 0 {
		r = r.Add(target.Mul(m.Forward))
	}
	if m.Up != 0 {
		r = r.Add(up.Mul(m.Up))
	}
	if m.Sideways != 0 {
		r = r.Add(target.Cross(up).Mul(m.Sideways))
	}
	return r
}

// SetMovementKey stores the coefficients for key and caches the resulting
// world-space vector.
func (c *Camera) SetMovementKey(key string, forward, up, sideways float32) {
	coeffs := MovementCoeffs{Forward: forward, Up: up, Sideways: sideways}
	if m, ok := c.keys.ValueByKeyTry(key); ok {
		m.coeffs = coeffs
		m.cached = c.movementVector(coeffs)
		return
	}
	c.keys.Add(key, &movement{coeffs: coeffs, cached: c.movementVector(coeffs)})
}

// ClearMovementKey zeroes the key's coefficients and cached vector. The key
// stays registered.
func (c *Camera) ClearMovementKey(key string) {
	if m, ok := c.keys.ValueByKeyTry(key); ok {
		m.coeffs = MovementCoeffs{}
		m.cached = mgl32.Vec3{}
		return
	}
	c.keys.Add(key, &movement{})
}

// MovementVector returns the cached world-space vector of key.
func (c *Camera) MovementVector(key string) (mgl32.Vec3, bool) {
	m, ok := c.keys.ValueByKeyTry(key)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return m.cached, true
}

func (c *Camera) MovementKey(key string) (MovementCoeffs, bool) {
	m, ok := c.keys.ValueByKeyTry(key)
	if !ok {
		return MovementCoeffs{}, false
	}
	return m.coeffs, true
}

// ApplyMovementKeys moves the camera by the sum of all cached vectors scaled
// by frameTime, so speeds are units per second.
func (c *Camera) ApplyMovementKeys(frameTime float32) {
	var sum mgl32.Vec3
	for _, kv := range c.keys.Order {
		sum = sum.Add(kv.Value.cached)
	}
	c.Move(sum.Mul(frameTime))
}

func (c *Camera) SetForwardMovement(speed float32)  { c.SetMovementKey(ForwardKey, speed, 0, 0) }
func (c *Camera) ClearForwardMovement()             { c.ClearMovementKey(ForwardKey) }
func (c *Camera) SetSidewaysMovement(speed float32) { c.SetMovementKey(SidewaysKey, 0, 0, speed) }
func (c *Camera) ClearSidewaysMovement()            { c.ClearMovementKey(SidewaysKey) }
func (c *Camera) SetUpwardsMovement(speed float32)  { c.SetMovementKey(UpwardsKey, 0, speed, 0) }
func (c *Camera) ClearUpwardsMovement()             { c.ClearMovementKey(UpwardsKey) }

// ViewMatrix returns camera rotation times the inverse camera translation.
func (c *Camera) ViewMatrix() (mgl32.Mat4, error) {
	rot, err := CameraRotationMatrix(c.TargetVector(), c.UpVector())
	if err != nil {
		return mgl32.Ident4(), err
	}
	return rot.Mul4(TranslationMatrix(c.position.Mul(-1))), nil
}
