// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the global up axis used for gravity and camera framing.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Local axes of an identity orientation.
var (
	localRight   = mgl64.Vec3{1, 0, 0}
	localUp      = mgl64.Vec3{0, 1, 0}
	localForward = mgl64.Vec3{0, 0, -1}
)

// epsilon below which a vector is treated as zero length
const epsilon = 1e-9

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// IsZero reports whether v is shorter than the internal epsilon.
func IsZero(v mgl64.Vec3) bool {
	return v.LenSqr() < epsilon*epsilon
}

// SafeNormalize returns the unit vector of v, or fallback when v has no length.
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if IsZero(v) {
		return fallback
	}
	return v.Normalize()
}

// BlendFactor converts a blend factor tuned for one reference tick of length
// refDt into the factor for a tick of length dt. The result equals
// 1 - exp(-dt/tau) with tau chosen so that BlendFactor(f, refDt, refDt) == f.
func BlendFactor(perTick, dt, refDt float64) float64 {
	if dt <= 0 || perTick <= 0 {
		return 0
	}
	if perTick >= 1 || refDt <= 0 {
		return 1
	}
	return 1 - math.Pow(1-perTick, dt/refDt)
}

// TimeConstant returns tau for a per-tick blend factor at the reference tick length.
func TimeConstant(perTick, refDt float64) float64 {
	if perTick <= 0 {
		return math.Inf(1)
	}
	if perTick >= 1 {
		return 0
	}
	return -refDt / math.Log(1-perTick)
}
