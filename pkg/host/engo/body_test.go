package engo

import (
	"testing"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/physics"
	"github.com/opd-ai/go-monowheel/pkg/surface"
)

func assertVec(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestRigidBody_FreeFlight(t *testing.T) {
	b := NewRigidBody(mgl64.Vec3{0, 10, 0}, 2, 0.5, nil, physics.NewFilter())
	b.SetFriction(surface.Friction{})
	b.SetForce(mgl64.Vec3{0, -10, 0})

	if impact := b.Step(0.5); impact != 0 {
		t.Errorf("Step() impact = %v, want 0", impact)
	}
	assertVec(t, "velocity", b.Velocity(), mgl64.Vec3{0, -2.5, 0})
	assertVec(t, "position", b.Pose().Position, mgl64.Vec3{0, 8.75, 0})
}

func TestRigidBody_RollingFrictionDamps(t *testing.T) {
	b := NewRigidBody(mgl64.Vec3{}, 1, 0.5, nil, physics.NewFilter())
	b.SetVelocity(mgl64.Vec3{0, 0, -10})

	b.Step(0.5)

	// nominal rolling friction 2: v / (1 + 2*0.5)
	assertVec(t, "velocity", b.Velocity(), mgl64.Vec3{0, 0, -5})
	if b.Friction() != surface.NominalFriction {
		t.Errorf("Friction() = %+v, want nominal", b.Friction())
	}
}

func TestRigidBody_Impacts(t *testing.T) {
	tests := []struct {
		name         string
		elasticity   float64
		exclude      bool
		wantImpact   float64
		wantPosition mgl64.Vec3
		wantVelocity mgl64.Vec3
	}{
		{
			name:         "inelastic",
			wantImpact:   10,
			wantPosition: mgl64.Vec3{0, 0.5, 0},
			wantVelocity: mgl64.Vec3{},
		},
		{
			name:         "elastic",
			elasticity:   1,
			wantImpact:   10,
			wantPosition: mgl64.Vec3{0, 0.5, 0},
			wantVelocity: mgl64.Vec3{0, 10, 0},
		},
		{
			name:         "excluded_floor",
			exclude:      true,
			wantPosition: mgl64.Vec3{0, -4, 0},
			wantVelocity: mgl64.Vec3{0, -10, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := physics.NewScene()
			floor := scene.Add(physics.Plane{Point: mgl64.Vec3{}, Normal: physics.WorldUp})
			filter := physics.NewFilter()
			if tt.exclude {
				filter = physics.NewFilter(floor)
			}

			mailbox := &engo.MessageManager{}
			var dispatched []float64
			mailbox.Listen(CollisionMessage{}.Type(), func(msg engo.Message) {
				dispatched = append(dispatched, msg.(CollisionMessage).Speed)
			})

			b := NewRigidBody(mgl64.Vec3{0, 1, 0}, 1, 0.5, scene, filter)
			b.DispatchImpacts(mailbox)
			b.SetFriction(surface.Friction{Elasticity: tt.elasticity})
			b.SetVelocity(mgl64.Vec3{0, -10, 0})

			impact := b.Step(0.5)

			if impact != tt.wantImpact {
				t.Errorf("Step() impact = %v, want %v", impact, tt.wantImpact)
			}
			assertVec(t, "position", b.Pose().Position, tt.wantPosition)
			assertVec(t, "velocity", b.Velocity(), tt.wantVelocity)

			wantDispatched := 0
			if tt.wantImpact > 0 {
				wantDispatched = 1
			}
			if len(dispatched) != wantDispatched {
				t.Errorf("dispatched = %v, want %d messages", dispatched, wantDispatched)
			}
		})
	}
}

func TestRigidBody_ZeroStep(t *testing.T) {
	b := NewRigidBody(mgl64.Vec3{1, 2, 3}, 0, 1, nil, physics.NewFilter())
	b.SetVelocity(mgl64.Vec3{5, 0, 0})
	b.Step(0)
	b.Step(-1)

	assertVec(t, "position", b.Pose().Position, mgl64.Vec3{1, 2, 3})
}

func TestBodySystem_StepsEveryBody(t *testing.T) {
	a := NewRigidBody(mgl64.Vec3{}, 1, 1, nil, physics.NewFilter())
	b := NewRigidBody(mgl64.Vec3{}, 1, 1, nil, physics.NewFilter())
	a.SetFriction(surface.Friction{})
	b.SetFriction(surface.Friction{})
	a.SetVelocity(mgl64.Vec3{1, 0, 0})
	b.SetVelocity(mgl64.Vec3{0, 0, 2})

	sys := NewBodySystem(a, b)
	sys.Update(0.5)

	assertVec(t, "a", a.Pose().Position, mgl64.Vec3{0.5, 0, 0})
	assertVec(t, "b", b.Pose().Position, mgl64.Vec3{0, 0, 1})
	if sys.Priority() != BodyPriority {
		t.Errorf("Priority() = %d, want %d", sys.Priority(), BodyPriority)
	}
}
