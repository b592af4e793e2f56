// pkg/camera/planner.go
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/physics"
)

// Params frames the chase camera.
type Params struct {
	// Offsets of the raw candidate from the seat anchor, in vehicle space.
	Distance float64
	Side     float64
	Height   float64

	// Seat anchor height is AnchorBase + min(|v|^AnchorExponent, AnchorMax).
	AnchorBase     float64
	AnchorExponent float64
	AnchorMax      float64

	// The offsets grow by (|v|+1)^SoftenExponent.
	SoftenExponent float64
}

// DefaultParams returns the stock framing.
func DefaultParams() Params {
	return Params{
		Distance:       20,
		Side:           4,
		Height:         6,
		AnchorBase:     2,
		AnchorExponent: 0.2,
		AnchorMax:      5,
		SoftenExponent: 0.1,
	}
}

// Plan is one planned camera placement.
type Plan struct {
	Pose      physics.Pose
	Anchor    mgl64.Vec3
	Candidate mgl64.Vec3
	Occluded  bool
}

// Planner computes an occlusion-aware chase camera pose. It keeps no state
// between calls; smoothing is left to the caller (see Rig).
type Planner struct {
	probe  *physics.Probe
	filter physics.Filter
	params Params
}

// NewPlanner creates a planner that casts through probe with filter.
func NewPlanner(probe *physics.Probe, filter physics.Filter, params Params) *Planner {
	return &Planner{probe: probe, filter: filter, params: params}
}

// Params returns the framing in use.
func (p *Planner) Params() Params {
	return p.params
}

// Anchor returns the seat point the camera looks at.
func (p *Planner) Anchor(position, velocity mgl64.Vec3) mgl64.Vec3 {
	lift := math.Min(math.Pow(velocity.Len(), p.params.AnchorExponent), p.params.AnchorMax)
	return position.Add(physics.WorldUp.Mul(p.params.AnchorBase + lift))
}

// Plan places the camera behind and beside the vehicle, pulled in to the
// first obstruction between the candidate and the anchor.
func (p *Planner) Plan(pose physics.Pose, velocity mgl64.Vec3) Plan {
	anchor := p.Anchor(pose.Position, velocity)

	offset := pose.Forward().Mul(-p.params.Distance).
		Add(pose.Right().Mul(p.params.Side)).
		Add(physics.WorldUp.Mul(p.params.Height))
	soften := math.Pow(velocity.Len()+1, p.params.SoftenExponent)
	candidate := anchor.Add(offset.Mul(soften))

	plan := Plan{Anchor: anchor, Candidate: candidate}
	eye := candidate
	if hit, ok := p.probe.Cast(candidate, anchor.Sub(candidate), p.filter); ok {
		eye = hit.Position
		plan.Occluded = true
	}

	plan.Pose = physics.LookAt(eye, anchor, physics.WorldUp)
	return plan
}
