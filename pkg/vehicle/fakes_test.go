package vehicle

import (
	"io"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/config"
	"github.com/opd-ai/go-monowheel/pkg/event"
	"github.com/opd-ai/go-monowheel/pkg/logging"
	"github.com/opd-ai/go-monowheel/pkg/motion"
	"github.com/opd-ai/go-monowheel/pkg/physics"
	"github.com/opd-ai/go-monowheel/pkg/surface"
)

type fakeBody struct {
	pose     physics.Pose
	velocity mgl64.Vec3
	force    mgl64.Vec3
	friction surface.Friction

	poseWrites     int
	velocityWrites int
	frictionWrites int
}

func newFakeBody(position, velocity mgl64.Vec3) *fakeBody {
	return &fakeBody{pose: physics.NewPose(position), velocity: velocity}
}

func (b *fakeBody) Pose() physics.Pose       { return b.pose }
func (b *fakeBody) Velocity() mgl64.Vec3     { return b.velocity }
func (b *fakeBody) SetForce(f mgl64.Vec3)    { b.force = f }
func (b *fakeBody) SetPose(p physics.Pose)   { b.pose = p; b.poseWrites++ }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) { b.velocity = v; b.velocityWrites++ }
func (b *fakeBody) SetFriction(f surface.Friction) {
	b.friction = f
	b.frictionWrites++
}

type fakeInput struct {
	in      motion.Input
	samples int
}

func (i *fakeInput) Sample() motion.Input {
	i.samples++
	return i.in
}

type fakeCamera struct {
	poses    []physics.Pose
	released int
}

func (c *fakeCamera) SetPose(p physics.Pose) { c.poses = append(c.poses, p) }
func (c *fakeCamera) Release()               { c.released++ }

type fakeConn struct {
	disconnects int
}

func (c *fakeConn) Disconnect() { c.disconnects++ }

type fakeScheduler struct {
	binds    int
	priority int
	tick     func(dt float64)
	conn     *fakeConn
}

func (s *fakeScheduler) Bind(priority int, tick func(dt float64)) Connection {
	s.binds++
	s.priority = priority
	s.tick = tick
	s.conn = &fakeConn{}
	return s.conn
}

// step runs the bound tick n times.
func (s *fakeScheduler) step(n int, dt float64) {
	for i := 0; i < n; i++ {
		s.tick(dt)
	}
}

type countingCaster struct {
	calls int
	inner physics.Caster
}

func (c *countingCaster) Cast(origin, direction mgl64.Vec3, filter physics.Filter) (physics.Hit, bool) {
	c.calls++
	if c.inner == nil {
		return physics.Hit{}, false
	}
	return c.inner.Cast(origin, direction, filter)
}

type eventLog struct {
	mu     sync.Mutex
	events []event.Event
}

func (l *eventLog) record(e event.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) count(t event.Type) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.GetType() == t {
			n++
		}
	}
	return n
}

func watch(bus *event.Bus, types ...event.Type) *eventLog {
	l := &eventLog{}
	for _, t := range types {
		bus.Subscribe(t, l.record)
	}
	return l
}

func quietLogger() *logging.Logger {
	return logging.NewLoggerWithWriter(io.Discard, slog.LevelDebug)
}

type rig struct {
	body      *fakeBody
	input     *fakeInput
	camera    *fakeCamera
	scheduler *fakeScheduler
	caster    *countingCaster
	bus       *event.Bus
}

func newRig(position, velocity mgl64.Vec3, caster physics.Caster) *rig {
	return &rig{
		body:      newFakeBody(position, velocity),
		input:     &fakeInput{},
		camera:    &fakeCamera{},
		scheduler: &fakeScheduler{},
		caster:    &countingCaster{inner: caster},
		bus:       event.NewEventBus(),
	}
}

func (r *rig) parts(exclude ...physics.SurfaceID) Parts {
	return Parts{
		Body:      r.body,
		Caster:    r.caster,
		Input:     r.input,
		Camera:    r.camera,
		Scheduler: r.scheduler,
		Exclude:   exclude,
	}
}

func (r *rig) build(cfg *config.VehicleConfig, exclude ...physics.SurfaceID) (*Controller, error) {
	return New(cfg, r.parts(exclude...), WithID("test-wheel"), WithLogger(quietLogger()), WithBus(r.bus))
}
