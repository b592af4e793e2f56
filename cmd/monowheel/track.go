// cmd/monowheel/track.go
package main

import (
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/config"
	"github.com/opd-ai/go-monowheel/pkg/event"
	hostengo "github.com/opd-ai/go-monowheel/pkg/host/engo"
	"github.com/opd-ai/go-monowheel/pkg/logging"
	"github.com/opd-ai/go-monowheel/pkg/motion"
	"github.com/opd-ai/go-monowheel/pkg/physics"
	"github.com/opd-ai/go-monowheel/pkg/telemetry"
	"github.com/opd-ai/go-monowheel/pkg/vehicle"
)

// track is the demo world: a floor, a climbable wall straight ahead and a
// block off to the right.
type track struct {
	world   *physics.Scene
	chassis physics.SurfaceID
	body    *hostengo.RigidBody
	camera  *hostengo.TrackingCamera
	bus     *event.Bus
	bridge  *hostengo.CollisionBridge
}

func newTrack(cfg *config.VehicleConfig) *track {
	world := physics.NewScene()
	world.Add(physics.Plane{Point: mgl64.Vec3{}, Normal: physics.WorldUp})
	world.Add(physics.Box{Min: mgl64.Vec3{-100, 0, -420}, Max: mgl64.Vec3{100, 300, -400}})
	world.Add(physics.Box{Min: mgl64.Vec3{40, 0, -120}, Max: mgl64.Vec3{80, 15, -80}})
	chassis := world.Reserve()

	start := mgl64.Vec3{0, cfg.Gravity.StandOff + 10, 0}
	return &track{
		world:   world,
		chassis: chassis,
		body:    hostengo.NewRigidBody(start, 1, cfg.Motion.WheelRadius, world, physics.NewFilter(chassis)),
		camera:  &hostengo.TrackingCamera{},
		bus:     event.NewEventBus(),
	}
}

// assemble adds the body to the scheduler's world and builds the vehicle.
func (t *track) assemble(cfg *config.VehicleConfig, input vehicle.Input, logger *logging.Logger, recorder *telemetry.Recorder) hostengo.AssembleFunc {
	return func(sched *hostengo.Scheduler, mailbox *engo.MessageManager) (*vehicle.Controller, error) {
		sched.World().AddSystem(hostengo.NewBodySystem(t.body))
		if mailbox == nil {
			mailbox = &engo.MessageManager{}
		}
		t.body.DispatchImpacts(mailbox)
		t.bridge = hostengo.NewCollisionBridge(mailbox, t.bus, "track")

		return vehicle.New(cfg, vehicle.Parts{
			Body:      t.body,
			Caster:    t.world,
			Input:     input,
			Camera:    t.camera,
			Scheduler: sched,
			Exclude:   []physics.SurfaceID{t.chassis},
		},
			vehicle.WithLogger(logger),
			vehicle.WithRecorder(recorder),
			vehicle.WithBus(t.bus),
		)
	}
}

// segment holds one input until the given time.
type segment struct {
	until float64
	input motion.Input
}

// script replays a fixed ride, advancing dt seconds per sample.
type script struct {
	segments []segment
	dt       float64
	elapsed  float64
}

func newScript(dt float64) *script {
	return &script{
		dt: dt,
		segments: []segment{
			{until: 2, input: motion.Input{}},
			{until: 6, input: motion.Input{Throttle: 1}},
			{until: 8, input: motion.Input{Throttle: 1, Steer: 0.5}},
			{until: 10, input: motion.Input{Throttle: 1, Boost: true}},
			{until: 12, input: motion.Input{Throttle: -1}},
		},
	}
}

// Sample implements vehicle.Input.
func (s *script) Sample() motion.Input {
	now := s.elapsed
	s.elapsed += s.dt
	for _, seg := range s.segments {
		if now < seg.until {
			return seg.input
		}
	}
	return motion.Input{}
}
