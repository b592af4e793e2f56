// Package vehicle drives a monowheel inside a host physics world. The
// Controller owns all vehicle state and advances it once per scheduled tick;
// the host supplies the body, the raycast service, input, camera and
// scheduling through the interfaces in this file.
package vehicle

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/motion"
	"github.com/opd-ai/go-monowheel/pkg/physics"
	"github.com/opd-ai/go-monowheel/pkg/surface"
)

// ErrMissingPart is returned by New when a structural part is absent.
var ErrMissingPart = errors.New("vehicle part missing")

// Body is the host rigid body the vehicle rides on.
type Body interface {
	Pose() physics.Pose
	Velocity() mgl64.Vec3
	SetPose(physics.Pose)
	SetVelocity(mgl64.Vec3)
	// SetForce replaces the accumulated external force.
	SetForce(mgl64.Vec3)
	SetFriction(surface.Friction)
}

// Input samples rider input once per tick.
type Input interface {
	Sample() motion.Input
}

// InputFunc adapts a function to Input.
type InputFunc func() motion.Input

// Sample implements Input.
func (f InputFunc) Sample() motion.Input { return f() }

// CameraSink receives the smoothed camera pose.
type CameraSink interface {
	SetPose(physics.Pose)
	// Release hands the camera back to the host default.
	Release()
}

// Connection is a scheduler registration.
type Connection interface {
	// Disconnect stops further ticks. It must be idempotent and safe to
	// call from inside the tick it cancels.
	Disconnect()
}

// Scheduler runs the vehicle tick once per frame at the given priority.
type Scheduler interface {
	Bind(priority int, tick func(dt float64)) Connection
}

// Parts are the collaborators a controller is built from. Camera is
// optional; Body, Caster, Input and Scheduler are structural.
type Parts struct {
	Body      Body
	Caster    physics.Caster
	Input     Input
	Camera    CameraSink
	Scheduler Scheduler
	// Exclude lists surfaces every probe ignores: the vehicle's own parts
	// and the rider.
	Exclude []physics.SurfaceID
}
