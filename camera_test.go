package sscene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_defaults(t *testing.T) {
	c := NewCamera()
	assertVec3(t, WorldForward, c.TargetVector())
	assertVec3(t, WorldUp, c.UpVector())
	assertRotation(t, c.Rotation())
	assert.Zero(t, c.HorizontalRotation())
	assert.Zero(t, c.VerticalRotation())
}

func TestCamera_ForwardMovement(t *testing.T) {
	c := NewCamera()
	c.SetForwardMovement(1)

	v, ok := c.MovementVector(ForwardKey)
	require.True(t, ok)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, v)

	c.ApplyMovementKeys(1)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Position())

	c.ClearForwardMovement()
	v, ok = c.MovementVector(ForwardKey)
	require.True(t, ok, "cleared key stays registered")
	assert.Equal(t, mgl32.Vec3{}, v)
	coeffs, ok := c.MovementKey(ForwardKey)
	require.True(t, ok)
	assert.Equal(t, MovementCoeffs{}, coeffs)

	c.ApplyMovementKeys(1)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Position())
}

func TestCamera_ForwardKeyTracksTargetAfterRotate(t *testing.T) {
	c := NewCamera()
	c.SetMovementKey(ForwardKey, 1, 0, 0)
	c.Rotate(0, 0)

	v, ok := c.MovementVector(ForwardKey)
	require.True(t, ok)
	assert.Equal(t, c.TargetVector(), v)

	c.ClearMovementKey(ForwardKey)
	v, _ = c.MovementVector(ForwardKey)
	assert.Equal(t, mgl32.Vec3{}, v)
}

func TestCamera_ApplyMovementKeysScalesByFrameTime(t *testing.T) {
	c := NewCamera()
	c.SetForwardMovement(4)
	c.SetUpwardsMovement(2)
	c.ApplyMovementKeys(0.5)
	assertVec3(t, mgl32.Vec3{2, 1, 0}, c.Position())

	c.ApplyMovementKeys(0)
	assertVec3(t, mgl32.Vec3{2, 1, 0}, c.Position())
}

func TestCamera_SidewaysIsTargetCrossUp(t *testing.T) {
	c := NewCamera()
	c.SetSidewaysMovement(1)
	v, _ := c.MovementVector(SidewaysKey)
	assertVec3(t, c.TargetVector().Cross(c.UpVector()), v)
	assertVec3(t, mgl32.Vec3{0, 0, 1}, v)
}

func TestCamera_ClearUnknownKeyRegistersIt(t *testing.T) {
	c := NewCamera()
	_, ok := c.MovementVector("Strafe")
	assert.False(t, ok)

	c.ClearMovementKey("Strafe")
	v, ok := c.MovementVector("Strafe")
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{}, v)
}

func TestCamera_RotateYaw(t *testing.T) {
	c := NewCamera()
	c.SetForwardMovement(1)
	c.Rotate(90*Deg2Rad, 0)

	assert.InDelta(t, 90*Deg2Rad, c.HorizontalRotation(), eps)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.TargetVector())
	assertVec3(t, WorldUp, c.UpVector())
	assertRotation(t, c.Rotation())

	// cached movement follows the new orientation
	v, _ := c.MovementVector(ForwardKey)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, v)
}

func TestCamera_RotatePitch(t *testing.T) {
	c := NewCamera()
	c.Rotate(0, 30*Deg2Rad)
	c.Rotate(0, 15*Deg2Rad)

	assert.InDelta(t, 45*Deg2Rad, c.VerticalRotation(), eps)
	s := float32(0.70710677)
	assertVec3(t, mgl32.Vec3{s, s, 0}, c.TargetVector())
	assertVec3(t, mgl32.Vec3{-s, s, 0}, c.UpVector())
	assertRotation(t, c.Rotation())
	assert.InDelta(t, 0, c.TargetVector().Dot(c.UpVector()), eps)
}

func TestCamera_LookAt(t *testing.T) {
	c := NewCamera()
	c.SetPosition(mgl32.Vec3{1, 1, 1})
	require.NoError(t, c.LookAt(mgl32.Vec3{1, 1, -4}))

	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.TargetVector())
	assert.InDelta(t, 90*Deg2Rad, c.HorizontalRotation(), eps)
	assert.InDelta(t, 0, c.VerticalRotation(), eps)

	// further rotation continues from the looked-at orientation
	c.Rotate(-90*Deg2Rad, 0)
	assertVec3(t, WorldForward, c.TargetVector())

	require.NoError(t, c.LookAt(mgl32.Vec3{2, 2, 1}))
	assertVec3(t, mgl32.Vec3{1, 1, 0}.Normalize(), c.TargetVector())

	err := c.LookAt(c.Position())
	assert.ErrorIs(t, err, ErrDegenerateBasis)
}

func TestCamera_ViewMatrix(t *testing.T) {
	c := NewCamera()
	c.SetPosition(mgl32.Vec3{1.9, 1.9, 4.2})
	view, err := c.ViewMatrix()
	require.NoError(t, err)

	// the camera position maps to the eye space origin
	assertVec3(t, mgl32.Vec3{}, view.Mul4x1(c.Position().Vec4(1)).Vec3())
	// and a point straight ahead lies on -z
	ahead := c.Position().Add(c.TargetVector().Mul(3))
	assertVec3(t, mgl32.Vec3{0, 0, -3}, view.Mul4x1(ahead.Vec4(1)).Vec3())
}
