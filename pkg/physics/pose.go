package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a rigid body placement: a position plus an orientation whose
// rotated local axes form the right/up/forward basis.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewPose returns a pose at position with the identity orientation.
func NewPose(position mgl64.Vec3) Pose {
	return Pose{Position: position, Orientation: mgl64.QuatIdent()}
}

// Right returns the world-space right axis.
func (p Pose) Right() mgl64.Vec3 {
	return p.Orientation.Rotate(localRight)
}

// Up returns the world-space up axis.
func (p Pose) Up() mgl64.Vec3 {
	return p.Orientation.Rotate(localUp)
}

// Forward returns the world-space forward axis.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Orientation.Rotate(localForward)
}

// Rotated applies a world-space rotation of angle radians about axis.
func (p Pose) Rotated(angle float64, axis mgl64.Vec3) Pose {
	if angle == 0 || IsZero(axis) {
		return p
	}
	q := mgl64.QuatRotate(angle, axis.Normalize())
	p.Orientation = q.Mul(p.Orientation).Normalize()
	return p
}

// Lerp moves p toward target by amount in [0,1], interpolating position
// linearly and orientation spherically.
func (p Pose) Lerp(target Pose, amount float64) Pose {
	if amount <= 0 {
		return p
	}
	if amount >= 1 {
		return target
	}
	return Pose{
		Position:    p.Position.Add(target.Position.Sub(p.Position).Mul(amount)),
		Orientation: mgl64.QuatSlerp(p.Orientation, target.Orientation, amount),
	}
}

// OrientationFromBasis builds the rotation whose local axes map onto the
// given right, up and forward vectors. The vectors must be orthonormal.
func OrientationFromBasis(right, up, forward mgl64.Vec3) mgl64.Quat {
	m := mgl64.Mat3FromCols(right, up, forward.Mul(-1))
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// LookAt returns a pose at eye whose forward axis points at target, using
// up as the reference for roll. When forward and up are parallel the world
// Z axis is used as the roll reference instead.
func LookAt(eye, target, up mgl64.Vec3) Pose {
	forward := SafeNormalize(target.Sub(eye), localForward)
	right := forward.Cross(up)
	if IsZero(right) {
		right = forward.Cross(mgl64.Vec3{0, 0, 1})
	}
	right = right.Normalize()
	trueUp := right.Cross(forward).Normalize()
	return Pose{Position: eye, Orientation: OrientationFromBasis(right, trueUp, forward)}
}
