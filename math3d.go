package sscene

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	Deg2Rad = float32(math.Pi / 180)
	Rad2Deg = float32(180 / math.Pi)

	// NearPlane is the fixed near clipping distance of every perspective projection.
	NearPlane float32 = 0.1

	basisEpsilon float32 = 1e-6
)

var (
	WorldForward = mgl32.Vec3{1, 0, 0}
	WorldUp      = mgl32.Vec3{0, 1, 0}
)

func TranslationMatrix(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v.X(), v.Y(), v.Z())
}

func ScaleMatrix(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Scale3D(v.X(), v.Y(), v.Z())
}

// RotationFromEuler composes Rz(v.z)·Ry(v.y)·Rx(v.x). Angles are radians.
func RotationFromEuler(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(v.Z()).
		Mul4(mgl32.HomogRotate3DY(v.Y())).
		Mul4(mgl32.HomogRotate3DX(v.X()))
}

// EulerToQuaternion returns the quaternion whose matrix equals RotationFromEuler(v).
func EulerToQuaternion(v mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatRotate(v.Z(), mgl32.Vec3{0, 0, 1}).
		Mul(mgl32.QuatRotate(v.Y(), mgl32.Vec3{0, 1, 0})).
		Mul(mgl32.QuatRotate(v.X(), mgl32.Vec3{1, 0, 0}))
}

// RotationFromAxisAngle applies Rodrigues' formula. A zero axis yields identity.
func RotationFromAxisAngle(axis mgl32.Vec3, angle float32) mgl32.Mat4 {
	if axis.Len() < basisEpsilon {
		return mgl32.Ident4()
	}
	k := axis.Normalize()
	x, y, z := k.X(), k.Y(), k.Z()
	s, c := math32.Sin(angle), math32.Cos(angle)
	t := 1 - c

	// column-major
	return mgl32.Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

func RotationFromQuaternion(q mgl32.Quat) mgl32.Mat4 {
	if q.Len() < basisEpsilon {
		return mgl32.Ident4()
	}
	return q.Normalize().Mat4()
}

// RotateVector rotates v by angle radians about axis.
func RotateVector(v mgl32.Vec3, angle float32, axis mgl32.Vec3) mgl32.Vec3 {
	return RotationFromAxisAngle(axis, angle).Mul4x1(v.Vec4(0)).Vec3()
}

// LookAtBasis builds a rotation whose columns are right, up and forward.
// Parallel or zero inputs are rejected with ErrDegenerateBasis.
func LookAtBasis(forward, up mgl32.Vec3) (mgl32.Mat4, error) {
	if forward.Len() < basisEpsilon || up.Len() < basisEpsilon {
		return mgl32.Ident4(), fmt.Errorf("look-at forward %v up %v: %w", forward, up, ErrDegenerateBasis)
	}
	f := forward.Normalize()
	u := up.Normalize()
	side := f.Cross(u)
	if side.Len() < basisEpsilon {
		return mgl32.Ident4(), fmt.Errorf("look-at forward %v parallel to up %v: %w", forward, up, ErrDegenerateBasis)
	}
	side = side.Normalize()
	u = side.Cross(f)
	return basisMatrix(u.Cross(f), u, f), nil
}

func basisMatrix(right, up, forward mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Mat4FromCols(right.Vec4(0), up.Vec4(0), forward.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
}

// PerspectiveMatrix is a right-handed projection with the near plane at NearPlane.
func PerspectiveMatrix(fovDegrees float32, width, height int, zFar float32) mgl32.Mat4 {
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(fovDegrees*Deg2Rad, aspect, NearPlane, zFar)
}

// OrthoMatrix maps pixel coordinates with the origin at the screen centre.
func OrthoMatrix(width, height int) mgl32.Mat4 {
	hw, hh := float32(width)/2, float32(height)/2
	return mgl32.Ortho(-hw, hw, -hh, hh, -1, 1)
}

// CameraRotationMatrix builds the view rotation with rows u, v, n, where
// n points away from target.
func CameraRotationMatrix(target, up mgl32.Vec3) (mgl32.Mat4, error) {
	if target.Len() < basisEpsilon || up.Len() < basisEpsilon {
		return mgl32.Ident4(), fmt.Errorf("camera target %v up %v: %w", target, up, ErrDegenerateBasis)
	}
	n := target.Normalize().Mul(-1)
	u := up.Normalize().Cross(n)
	if u.Len() < basisEpsilon {
		return mgl32.Ident4(), fmt.Errorf("camera target %v parallel to up %v: %w", target, up, ErrDegenerateBasis)
	}
	u = u.Normalize()
	v := n.Cross(u)
	return mgl32.Mat4FromRows(u.Vec4(0), v.Vec4(0), n.Vec4(0), mgl32.Vec4{0, 0, 0, 1}), nil
}
