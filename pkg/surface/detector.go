// Package surface classifies what lies beneath and ahead of the vehicle by
// casting an ordered cascade of rays against the host world.
package surface

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/physics"
)

// Kind is the {wall, ground, air} classification of a detection.
type Kind int

const (
	Air Kind = iota
	Ground
	Wall
)

// String returns the lowercase name of the classification.
func (k Kind) String() string {
	switch k {
	case Ground:
		return "ground"
	case Wall:
		return "wall"
	default:
		return "air"
	}
}

// WallProbe names the cascade stage that produced a wall hit.
type WallProbe int

const (
	NoWallProbe WallProbe = iota
	ForwardProbe
	LedgeProbe
	SlopeProbe
)

// String returns the probe name.
func (w WallProbe) String() string {
	switch w {
	case ForwardProbe:
		return "forward"
	case LedgeProbe:
		return "ledge"
	case SlopeProbe:
		return "slope"
	default:
		return "none"
	}
}

// Params holds the probe geometry.
type Params struct {
	ForwardScale      float64 // forward probe length per unit of speed*throttle
	DiagonalScale     float64 // ledge/slope probe length per unit of speed*throttle
	DiagonalTilt      float64 // up-axis offset of the ledge/slope directions
	GroundProbeLength float64
	FloorProbeLength  float64
}

// DefaultParams returns the stock probe geometry.
func DefaultParams() Params {
	return Params{
		ForwardScale:      1.2,
		DiagonalScale:     0.6,
		DiagonalTilt:      0.1,
		GroundProbeLength: 6,
		FloorProbeLength:  6,
	}
}

// Query is the per-tick input of a detection.
type Query struct {
	Pose          physics.Pose
	Speed         float64
	Throttle      float64
	WallClimb     bool
	PreviousFloor physics.SurfaceID
}

// Result is the classified outcome of one detection pass.
type Result struct {
	Wall      physics.Hit
	OnWall    bool
	WallProbe WallProbe

	Ground   physics.Hit
	OnGround bool

	// Floor is the floor-smoothing hit; it never affects friction or gravity.
	Floor    physics.Hit
	HasFloor bool
}

// Chosen returns the hit used for alignment: the wall when present,
// otherwise the ground.
func (r Result) Chosen() (physics.Hit, bool) {
	if r.OnWall {
		return r.Wall, true
	}
	if r.OnGround {
		return r.Ground, true
	}
	return physics.Hit{}, false
}

// Surface reports the classification, wall taking priority over ground.
func (r Result) Surface() Kind {
	switch {
	case r.OnWall:
		return Wall
	case r.OnGround:
		return Ground
	default:
		return Air
	}
}

// Detector runs the wall cascade, the ground probe and the floor-smoothing
// probe through a shared Probe and exclusion Filter.
type Detector struct {
	probe  *physics.Probe
	filter physics.Filter
	params Params
}

// NewDetector creates a detector. The filter is kept for the lifetime of
// the detector.
func NewDetector(probe *physics.Probe, filter physics.Filter, params Params) *Detector {
	return &Detector{probe: probe, filter: filter, params: params}
}

// Filter returns the shared exclusion filter.
func (d *Detector) Filter() physics.Filter {
	return d.filter
}

// Detect performs one detection pass.
func (d *Detector) Detect(q Query) Result {
	var r Result

	if q.WallClimb {
		r.Wall, r.WallProbe, r.OnWall = d.wallCascade(q)
	}

	origin := q.Pose.Position
	down := q.Pose.Up().Mul(-1)

	r.Ground, r.OnGround = d.probe.Cast(origin, down.Mul(d.params.GroundProbeLength), d.filter)
	r.Floor, r.HasFloor = d.probe.Cast(origin, down.Mul(d.params.FloorProbeLength), d.filter.Only(q.PreviousFloor))

	return r
}

// wallCascade evaluates forward, ledge and slope probes in that order and
// stops at the first hit.
func (d *Detector) wallCascade(q Query) (physics.Hit, WallProbe, bool) {
	origin := q.Pose.Position
	forward := q.Pose.Forward()
	up := q.Pose.Up()
	reach := q.Speed * q.Throttle

	stages := []struct {
		probe     WallProbe
		direction mgl64.Vec3
	}{
		{ForwardProbe, forward.Mul(reach * d.params.ForwardScale)},
		{LedgeProbe, forward.Add(up.Mul(d.params.DiagonalTilt)).Normalize().Mul(reach * d.params.DiagonalScale)},
		{SlopeProbe, forward.Sub(up.Mul(d.params.DiagonalTilt)).Normalize().Mul(reach * d.params.DiagonalScale)},
	}

	for _, stage := range stages {
		if hit, ok := d.probe.Cast(origin, stage.direction, d.filter); ok {
			return hit, stage.probe, true
		}
	}
	return physics.Hit{}, NoWallProbe, false
}
