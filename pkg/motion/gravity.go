// Package motion holds the per-tick motion models of the monowheel: the
// ramped fall force, surface alignment and the rider-driven integrator.
package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/physics"
)

// GravityParams configures the fall ramp and the grounded stand-off.
type GravityParams struct {
	FallSpeed   float64
	MaxFallTime float64 // seconds until the ramp saturates
	ForceScale  float64
	StandOff    float64 // distance kept between wheel centre and ground
}

// DefaultGravityParams returns the stock tuning.
func DefaultGravityParams() GravityParams {
	return GravityParams{
		FallSpeed:   2,
		MaxFallTime: 1.5,
		ForceScale:  500,
		StandOff:    5,
	}
}

// Gravity is a two-state machine. Airborne ticks accumulate a free-fall
// timer and ramp a downward force; a grounded tick resets the timer, zeroes
// the force and snaps the position above the ground hit. There is no
// hysteresis: one grounded tick fully resets the ramp.
type Gravity struct {
	params GravityParams
	timer  float64
	ramp   float64
	force  mgl64.Vec3
}

// NewGravity creates a grounded-at-rest model.
func NewGravity(params GravityParams) *Gravity {
	return &Gravity{params: params}
}

// Airborne advances the free-fall timer by dt and returns the force the
// host should apply.
func (g *Gravity) Airborne(dt float64) mgl64.Vec3 {
	if dt > 0 {
		g.timer += dt
	}
	g.ramp = 1
	if g.params.MaxFallTime > 0 {
		g.ramp = mgl64.Clamp(g.timer/g.params.MaxFallTime, 0, 1)
	}
	magnitude := g.params.FallSpeed * g.params.ForceScale * g.ramp
	g.force = physics.WorldUp.Mul(-magnitude)
	return g.force
}

// Grounded resets the ramp and returns the snapped position for hit.
func (g *Gravity) Grounded(hit physics.Hit) mgl64.Vec3 {
	g.Reset()
	return hit.Position.Add(hit.Normal.Mul(g.params.StandOff))
}

// Reset zeroes the timer, the ramp and the force.
func (g *Gravity) Reset() {
	g.timer = 0
	g.ramp = 0
	g.force = mgl64.Vec3{}
}

// Force returns the force computed by the last update.
func (g *Gravity) Force() mgl64.Vec3 {
	return g.force
}

// Timer returns the seconds spent airborne.
func (g *Gravity) Timer() float64 {
	return g.timer
}

// Ramp returns the last ramp factor in [0,1].
func (g *Gravity) Ramp() float64 {
	return g.ramp
}
