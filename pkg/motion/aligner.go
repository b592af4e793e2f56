package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/physics"
)

// Aligner low-pass filters the vehicle orientation toward a surface normal.
// Blend is the per-tick factor at the reference tick length RefDt; other
// tick lengths are converted so the time constant stays the same.
type Aligner struct {
	Blend float64
	RefDt float64
}

// NewAligner creates an aligner with the given per-tick blend at the
// reference tick rate in Hz.
func NewAligner(blend, referenceTickRate float64) Aligner {
	a := Aligner{Blend: blend}
	if referenceTickRate > 0 {
		a.RefDt = 1 / referenceTickRate
	}
	return a
}

// Target keeps the current right axis, uses normal as up and rebuilds
// forward from the two. When right is parallel to normal the current
// forward is kept instead.
func (a Aligner) Target(current physics.Pose, normal mgl64.Vec3) mgl64.Quat {
	up := physics.SafeNormalize(normal, current.Up())

	forward := up.Cross(current.Right())
	if physics.IsZero(forward) {
		right := current.Forward().Cross(up)
		if physics.IsZero(right) {
			return current.Orientation
		}
		forward = up.Cross(right.Normalize())
	}
	forward = forward.Normalize()
	right := forward.Cross(up).Normalize()

	return physics.OrientationFromBasis(right, up, forward)
}

// Align returns current rotated toward the target orientation for normal by
// one tick of length dt. The position is left untouched.
func (a Aligner) Align(current physics.Pose, normal mgl64.Vec3, dt float64) physics.Pose {
	amount := physics.BlendFactor(a.Blend, dt, a.RefDt)
	if amount <= 0 {
		return current
	}
	target := a.Target(current, normal)
	current.Orientation = mgl64.QuatSlerp(current.Orientation, target, amount).Normalize()
	return current
}
