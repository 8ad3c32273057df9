package sscene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is the position/rotation/scale state owned by every positioned object.
// Rotation is kept as a matrix whose columns are right, up and forward.
type Node struct {
	position mgl32.Vec3
	rotation mgl32.Mat4
	scale    mgl32.Vec3
}

func NewNode() Node {
	return Node{
		rotation: mgl32.Ident4(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (n *Node) Position() mgl32.Vec3 { return n.position }

func (n *Node) SetPosition(p mgl32.Vec3) { n.position = p }

func (n *Node) Move(delta mgl32.Vec3) { n.position = n.position.Add(delta) }

func (n *Node) Rotation() mgl32.Mat4 { return n.rotation }

// SetRotation replaces the rotation. m must be orthonormal in its upper 3x3.
func (n *Node) SetRotation(m mgl32.Mat4) { n.rotation = m }

func (n *Node) SetRotationFromEuler(v mgl32.Vec3) { n.rotation = RotationFromEuler(v) }

func (n *Node) SetRotationFromQuaternion(q mgl32.Quat) { n.rotation = RotationFromQuaternion(q) }

func (n *Node) SetRotationFromAxisAngle(axis mgl32.Vec3, angle float32) {
	n.rotation = RotationFromAxisAngle(axis, angle)
}

// SetRotationLookAt orients the node along forward. On a degenerate basis the
// rotation is left unchanged.
func (n *Node) SetRotationLookAt(forward, up mgl32.Vec3) error {
	m, err := LookAtBasis(forward, up)
	if err != nil {
		return err
	}
	n.rotation = m
	return nil
}

// AddRotation composes m onto the current rotation. With local set the
// rotation happens in the node's own frame, otherwise in the world frame.
func (n *Node) AddRotation(m mgl32.Mat4, local bool) {
	if local {
		n.rotation = n.rotation.Mul4(m)
	} else {
		n.rotation = m.Mul4(n.rotation)
	}
}

func (n *Node) AddRotationAxisAngle(axis mgl32.Vec3, angle float32, local bool) {
	n.AddRotation(RotationFromAxisAngle(axis, angle), local)
}

func (n *Node) Scale() mgl32.Vec3 { return n.scale }

func (n *Node) SetScale(x, y, z float32) { n.scale = mgl32.Vec3{x, y, z} }

func (n *Node) RightVector() mgl32.Vec3 { return n.rotation.Col(0).Vec3() }

func (n *Node) UpVector() mgl32.Vec3 { return n.rotation.Col(1).Vec3() }

func (n *Node) TargetVector() mgl32.Vec3 { return n.rotation.Col(2).Vec3() }

// ModelMatrix returns T*R*S.
func (n *Node) ModelMatrix() mgl32.Mat4 {
	return TranslationMatrix(n.position).Mul4(n.rotation).Mul4(ScaleMatrix(n.scale))
}

// InverseModelMatrix returns inv(S)*transpose(R)*inv(T).
func (n *Node) InverseModelMatrix() mgl32.Mat4 {
	invScale := mgl32.Scale3D(1/n.scale.X(), 1/n.scale.Y(), 1/n.scale.Z())
	invRotate := n.rotation.Transpose()
	invTranslate := TranslationMatrix(n.position.Mul(-1))
	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// setBasis writes an already orthogonal target/up pair into the rotation.
func (n *Node) setBasis(target, up mgl32.Vec3) {
	f := target.Normalize()
	u := up.Normalize()
	n.rotation = basisMatrix(u.Cross(f), u, f)
}
