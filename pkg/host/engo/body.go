// pkg/host/engo/body.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/physics"
	"github.com/opd-ai/go-monowheel/pkg/surface"
)

// RigidBody is a point-mass body swept against a physics.Caster. It is the
// host side of vehicle.Body for the demo world.
type RigidBody struct {
	mu       sync.Mutex
	pose     physics.Pose
	velocity mgl64.Vec3
	force    mgl64.Vec3
	friction surface.Friction

	mass   float64
	radius float64
	caster physics.Caster
	filter physics.Filter

	mailbox *engo.MessageManager
}

// NewRigidBody creates a body at position. Sweeps ignore the surfaces in
// filter, which should hold the vehicle's own parts.
func NewRigidBody(position mgl64.Vec3, mass, radius float64, caster physics.Caster, filter physics.Filter) *RigidBody {
	if mass <= 0 {
		mass = 1
	}
	return &RigidBody{
		pose:     physics.NewPose(position),
		friction: surface.NominalFriction,
		mass:     mass,
		radius:   radius,
		caster:   caster,
		filter:   filter,
	}
}

// DispatchImpacts sends a CollisionMessage to mailbox for every impact.
func (b *RigidBody) DispatchImpacts(mailbox *engo.MessageManager) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mailbox = mailbox
}

func (b *RigidBody) Pose() physics.Pose {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pose
}

func (b *RigidBody) Velocity() mgl64.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.velocity
}

func (b *RigidBody) SetPose(p physics.Pose) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pose = p
}

func (b *RigidBody) SetVelocity(v mgl64.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.velocity = v
}

func (b *RigidBody) SetForce(f mgl64.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.force = f
}

func (b *RigidBody) SetFriction(f surface.Friction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.friction = f
}

// Friction returns the properties last pushed by the vehicle.
func (b *RigidBody) Friction() surface.Friction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.friction
}

// Step integrates the body over dt seconds and returns the impact speed of
// a collision during the step, or zero.
func (b *RigidBody) Step(dt float64) float64 {
	if dt <= 0 {
		return 0
	}

	b.mu.Lock()
	b.velocity = b.velocity.Add(b.force.Mul(dt / b.mass))
	if b.friction.Rolling > 0 {
		b.velocity = b.velocity.Mul(1 / (1 + b.friction.Rolling*dt))
	}

	impact := 0.0
	delta := b.velocity.Mul(dt)
	hit, ok := physics.Hit{}, false
	if b.caster != nil && !physics.IsZero(delta) {
		hit, ok = b.caster.Cast(b.pose.Position, delta, b.filter)
	}
	if ok {
		b.pose.Position = hit.Position.Add(hit.Normal.Mul(b.radius))
		if into := -b.velocity.Dot(hit.Normal); into > 0 {
			impact = into
			b.velocity = b.velocity.Add(hit.Normal.Mul(into * (1 + b.friction.Elasticity)))
		}
	} else {
		b.pose.Position = b.pose.Position.Add(delta)
	}
	mailbox := b.mailbox
	b.mu.Unlock()

	if impact > 0 && mailbox != nil {
		mailbox.Dispatch(CollisionMessage{Speed: impact})
	}
	return impact
}

// BodySystem steps rigid bodies once per world update.
type BodySystem struct {
	bodies []*RigidBody
}

// NewBodySystem creates a system stepping bodies.
func NewBodySystem(bodies ...*RigidBody) *BodySystem {
	return &BodySystem{bodies: bodies}
}

// Update satisfies the ecs.System interface
func (s *BodySystem) Update(dt float32) {
	for _, b := range s.bodies {
		b.Step(float64(dt))
	}
}

// Remove satisfies the ecs.System interface
func (s *BodySystem) Remove(ecs.BasicEntity) {}

// Priority satisfies ecs.Prioritizer
func (s *BodySystem) Priority() int {
	return BodyPriority
}
