// pkg/camera/rig.go
package camera

import (
	"github.com/opd-ai/go-monowheel/pkg/physics"
)

// Rig smooths the planned pose across ticks before it reaches the
// renderer's camera.
type Rig struct {
	// Target to follow
	target    physics.Pose
	targetSet bool

	// Smooth following; blend is the per-tick factor at refDt
	blend     float64
	refDt     float64
	smoothing bool

	current physics.Pose
}

// NewRig creates a rig with the given per-tick blend at the reference tick
// rate in Hz.
func NewRig(blend, referenceTickRate float64) *Rig {
	r := &Rig{blend: blend, smoothing: true}
	if referenceTickRate > 0 {
		r.refDt = 1 / referenceTickRate
	}
	return r
}

// Update moves the current pose toward the target and returns it.
func (r *Rig) Update(dt float64) physics.Pose {
	if !r.targetSet {
		return r.current
	}
	if r.smoothing {
		r.current = r.current.Lerp(r.target, physics.BlendFactor(r.blend, dt, r.refDt))
	} else {
		r.current = r.target
	}
	return r.current
}

// SetTarget sets the pose to follow. The first target is taken immediately.
func (r *Rig) SetTarget(target physics.Pose) {
	first := !r.targetSet
	r.target = target
	r.targetSet = true
	if first || !r.smoothing {
		r.current = target
	}
}

// ClearTarget stops following; the next SetTarget snaps again.
func (r *Rig) ClearTarget() {
	r.targetSet = false
}

// HasTarget reports whether a target is set.
func (r *Rig) HasTarget() bool {
	return r.targetSet
}

// EnableSmoothing enables or disables smoothing.
func (r *Rig) EnableSmoothing(enabled bool) {
	r.smoothing = enabled
}

// IsSmoothing returns whether smoothing is enabled.
func (r *Rig) IsSmoothing() bool {
	return r.smoothing
}

// Current returns the smoothed pose.
func (r *Rig) Current() physics.Pose {
	return r.current
}
