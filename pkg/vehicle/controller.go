// pkg/vehicle/controller.go
package vehicle

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/camera"
	"github.com/opd-ai/go-monowheel/pkg/config"
	"github.com/opd-ai/go-monowheel/pkg/event"
	"github.com/opd-ai/go-monowheel/pkg/logging"
	"github.com/opd-ai/go-monowheel/pkg/motion"
	"github.com/opd-ai/go-monowheel/pkg/physics"
	"github.com/opd-ai/go-monowheel/pkg/surface"
	"github.com/opd-ai/go-monowheel/pkg/telemetry"
)

// Controller is the per-frame monowheel simulation. All methods are safe
// for concurrent use, but ticks are expected from a single scheduler.
//
// The controller owns the alignment orientation: each tick it reads the
// body position and velocity, and writes back a pose whose orientation is
// the alignment orientation plus the visual bank.
type Controller struct {
	id     string
	ctx    context.Context
	cfg    config.VehicleConfig
	logger *logging.Logger

	body     Body
	input    Input
	camSink  CameraSink
	bus      *event.Bus
	recorder *telemetry.Recorder

	probe      *physics.Probe
	detector   *surface.Detector
	aligner    motion.Aligner
	gravity    *motion.Gravity
	integrator *motion.Integrator
	resources  *motion.Resources
	planner    *camera.Planner
	rig        *camera.Rig

	conn Connection
	sub  *event.Subscription

	// latest collision speed as float64 bits; zero means none pending
	collision atomic.Uint64

	mu            sync.Mutex
	destroyed     bool
	toggles       Toggles
	starved       bool // movement switched off by an empty tank
	pose          physics.Pose
	visual        physics.Pose
	velocity      mgl64.Vec3
	result        surface.Result
	kind          surface.Kind
	previousFloor physics.SurfaceID
	floorPoint    mgl64.Vec3
	hasFloor      bool
	ticks         uint64
	pending       []event.Event
}

// New assembles a controller from cfg and parts and schedules its tick.
// When a structural part is missing, or the wheel radius is not positive,
// it returns ErrMissingPart before touching any collaborator.
func New(cfg *config.VehicleConfig, parts Parts, opts ...Option) (*Controller, error) {
	if err := checkParts(cfg, parts); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "vehicle config")
	}

	c := &Controller{
		cfg:     *cfg,
		body:    parts.Body,
		input:   parts.Input,
		camSink: parts.Camera,
		kind:    surface.Air,
		toggles: Toggles{
			Movement:  cfg.Toggles.Movement,
			Camera:    cfg.Toggles.Camera,
			WallClimb: cfg.Toggles.WallClimb,
			Boost:     cfg.Toggles.Boost,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = logging.GenerateVehicleID()
	}
	if c.logger == nil {
		c.logger = logging.NewLogger()
	}
	c.ctx = logging.WithVehicleID(context.Background(), c.id)

	filter := physics.NewFilter(parts.Exclude...)
	c.probe = physics.NewProbe(parts.Caster)
	c.detector = surface.NewDetector(c.probe, filter, detectorParams(cfg))
	c.aligner = motion.NewAligner(cfg.Motion.OrientationBlend, cfg.Tick.ReferenceRate)
	c.gravity = motion.NewGravity(gravityParams(cfg))
	c.integrator = motion.NewIntegrator(movementParams(cfg))
	c.resources = motion.NewResources(cfg.Resources.MaxFuel, cfg.Resources.MaxDurability)
	c.planner = camera.NewPlanner(c.probe, filter, cameraParams(cfg))
	c.rig = camera.NewRig(cfg.Camera.Blend, cfg.Tick.ReferenceRate)

	c.pose = c.body.Pose()
	if c.pose.Orientation.Len() < 1e-9 {
		c.pose.Orientation = mgl64.QuatIdent()
	}
	c.pose.Orientation = c.pose.Orientation.Normalize()
	c.visual = c.pose
	c.velocity = c.body.Velocity()

	if c.bus != nil {
		c.sub = c.bus.Subscribe(event.Collision, c.onCollision)
	}
	c.conn = parts.Scheduler.Bind(cfg.Tick.Priority, c.Tick)

	c.recordResources()
	c.logger.Info(c.ctx, "vehicle created",
		"fuel", c.resources.Fuel(),
		"durability", c.resources.Durability(),
		"priority", cfg.Tick.Priority,
	)
	return c, nil
}

func checkParts(cfg *config.VehicleConfig, parts Parts) error {
	switch {
	case cfg == nil:
		return fmt.Errorf("%w: config", ErrMissingPart)
	case parts.Body == nil:
		return fmt.Errorf("%w: body", ErrMissingPart)
	case parts.Caster == nil:
		return fmt.Errorf("%w: raycast service", ErrMissingPart)
	case parts.Input == nil:
		return fmt.Errorf("%w: input", ErrMissingPart)
	case parts.Scheduler == nil:
		return fmt.Errorf("%w: scheduler", ErrMissingPart)
	case !(cfg.Motion.WheelRadius > 0):
		return fmt.Errorf("%w: wheel radius %v", ErrMissingPart, cfg.Motion.WheelRadius)
	}
	return nil
}

func (c *Controller) onCollision(e event.Event) {
	if ce, ok := e.(*event.CollisionEvent); ok {
		c.RecordCollision(ce.Speed)
	}
}

// RecordCollision stores the impact speed of the latest collision. It is
// consumed by the next tick and may be called from any goroutine.
func (c *Controller) RecordCollision(speed float64) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return
	}
	c.collision.Store(math.Float64bits(speed))
}

func (c *Controller) takeCollision() float64 {
	return math.Float64frombits(c.collision.Swap(0))
}

// Tick advances the vehicle by dt seconds. Ticks after teardown do nothing.
func (c *Controller) Tick(dt float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	c.tick(dt)
	events := c.drain()
	c.mu.Unlock()

	c.publish(events)
}

func (c *Controller) tick(dt float64) {
	c.ticks++

	// read
	c.pose.Position = c.body.Pose().Position
	c.velocity = c.body.Velocity()
	speed := c.velocity.Len()

	// input gate
	var in motion.Input
	if c.toggles.Movement {
		in = c.input.Sample().Clamped()
	}

	// detect
	result := c.detector.Detect(surface.Query{
		Pose:          c.pose,
		Speed:         speed,
		Throttle:      in.Throttle,
		WallClimb:     c.toggles.WallClimb,
		PreviousFloor: c.previousFloor,
	})
	c.result = result
	if result.OnGround {
		c.previousFloor = result.Ground.Surface
	}
	if result.HasFloor {
		c.floorPoint = result.Floor.Position
		c.hasFloor = true
	}

	// friction
	c.body.SetFriction(surface.FrictionFor(result))

	// align
	if hit, ok := result.Chosen(); ok {
		c.pose = c.aligner.Align(c.pose, hit.Normal, dt)
	}

	// gravity
	if result.OnGround {
		c.pose.Position = c.gravity.Grounded(result.Ground)
	} else {
		c.gravity.Airborne(dt)
	}
	c.body.SetForce(c.gravity.Force())

	// integrate
	c.visual = c.pose
	exhausted := false
	if c.toggles.Movement {
		step := c.integrator.Integrate(c.pose, c.velocity, in, c.toggles.Boost, c.resources, dt)
		c.pose = step.Pose
		c.visual = step.Visual
		c.velocity = step.Velocity
		c.body.SetVelocity(c.velocity)
		exhausted = step.Exhausted
	}

	// damage
	if sample := c.takeCollision(); sample > 0 {
		c.applyCollision(sample)
	}

	// write-back
	c.visual.Position = c.pose.Position
	c.body.SetPose(c.visual)

	// camera
	if c.toggles.Camera && c.camSink != nil {
		plan := c.planner.Plan(c.pose, c.velocity)
		c.rig.SetTarget(plan.Pose)
		c.camSink.SetPose(c.rig.Update(dt))
	}

	if kind := result.Surface(); kind != c.kind {
		c.logger.Info(c.ctx, "surface changed", "from", c.kind.String(), "to", kind.String())
		c.emit(event.NewSurfaceEvent(c.id, c.kind.String(), kind.String()))
		if c.recorder != nil {
			c.recorder.SurfaceTransition(c.ctx, c.id, kind.String())
		}
		c.kind = kind
	}

	// exhaustion
	if exhausted && c.toggles.Movement {
		c.toggles.Movement = false
		c.starved = true
		c.logger.Warn(c.ctx, "fuel exhausted, movement disabled")
		c.emit(event.NewResourceEvent(event.FuelExhausted, c.id, c.resources.Fuel(), c.resources.Durability(), 0))
	}

	if c.recorder != nil {
		c.recorder.Tick(c.ctx, c.id)
	}
	c.recordResources()

	c.logger.Debug(c.ctx, "tick",
		"dt", dt,
		"speed", speed,
		"surface", c.kind.String(),
		"fuel", c.resources.Fuel(),
		"ramp", c.gravity.Ramp(),
	)

	if c.resources.Wrecked() {
		c.teardownLocked("durability exhausted")
	}
}

func (c *Controller) applyCollision(speed float64) {
	damage := c.integrator.CollisionDamage(speed)
	dealt := c.resources.Damage(damage)
	if dealt > 0 {
		c.logger.Info(c.ctx, "collision damage",
			"speed", speed,
			"damage", dealt,
			"durability", c.resources.Durability(),
		)
		if c.recorder != nil {
			c.recorder.Damage(c.ctx, c.id, dealt)
		}
	}
	c.emit(event.NewResourceEvent(event.CollisionRecorded, c.id, c.resources.Fuel(), c.resources.Durability(), dealt))
}

// Teardown detaches the vehicle from the host and restores host defaults:
// the scheduler binding is dropped, the camera is released, the force is
// zeroed and nominal friction is restored. It is idempotent.
func (c *Controller) Teardown() {
	c.mu.Lock()
	c.teardownLocked("shutdown")
	events := c.drain()
	c.mu.Unlock()

	c.publish(events)
}

func (c *Controller) teardownLocked(reason string) {
	if c.destroyed {
		return
	}
	c.destroyed = true

	c.conn.Disconnect()
	if c.sub != nil {
		c.sub.Cancel()
	}
	if c.camSink != nil {
		c.camSink.Release()
	}
	c.rig.ClearTarget()

	c.gravity.Reset()
	c.body.SetForce(mgl64.Vec3{})
	c.body.SetFriction(surface.NominalFriction)

	c.previousFloor = physics.NoSurface
	c.floorPoint = mgl64.Vec3{}
	c.hasFloor = false
	c.collision.Store(0)

	if c.recorder != nil {
		c.recorder.Forget(c.id)
	}

	c.logger.Info(c.ctx, "vehicle destroyed",
		"reason", reason,
		"fuel", c.resources.Fuel(),
		"durability", c.resources.Durability(),
		"ticks", c.ticks,
	)
	c.emit(event.NewResourceEvent(event.VehicleDestroyed, c.id, c.resources.Fuel(), c.resources.Durability(), 0))
}

// Refuel adds up to amount fuel and returns what was added. A vehicle that
// stalled on an empty tank gets its movement back.
func (c *Controller) Refuel(amount float64) float64 {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return 0
	}

	added := c.resources.Refuel(amount)
	if added > 0 {
		if c.starved {
			c.starved = false
			c.toggles.Movement = true
		}
		c.logger.Info(c.ctx, "refueled", "amount", added, "fuel", c.resources.Fuel())
		c.emit(event.NewResourceEvent(event.Refueled, c.id, c.resources.Fuel(), c.resources.Durability(), added))
		c.recordResources()
	}
	events := c.drain()
	c.mu.Unlock()

	c.publish(events)
	return added
}

// SetToggle switches t and returns its resulting state. Movement cannot be
// enabled while the tank is empty. Turning the camera off releases it.
func (c *Controller) SetToggle(t Toggle, on bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t == Movement && on && c.resources.Empty() {
		return false
	}
	if t == Movement {
		c.starved = false
	}
	if t == Camera && !on && c.toggles.Camera {
		if c.camSink != nil {
			c.camSink.Release()
		}
		c.rig.ClearTarget()
	}
	c.toggles.set(t, on)
	return c.toggles.Enabled(t)
}

func (c *Controller) emit(e event.Event) {
	if c.bus != nil {
		c.pending = append(c.pending, e)
	}
}

func (c *Controller) drain() []event.Event {
	events := c.pending
	c.pending = nil
	return events
}

func (c *Controller) publish(events []event.Event) {
	for _, e := range events {
		c.bus.Publish(e)
	}
}

func (c *Controller) recordResources() {
	if c.recorder != nil {
		c.recorder.RecordResources(c.id, c.resources.Fuel(), c.resources.Durability())
	}
}

// ID returns the vehicle identifier.
func (c *Controller) ID() string {
	return c.id
}

// Speed returns the magnitude of the current velocity.
func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity.Len()
}

// Velocity returns the velocity set by the last tick.
func (c *Controller) Velocity() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

// Pose returns the pose written to the body by the last tick, bank included.
func (c *Controller) Pose() physics.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visual
}

// Alignment returns the surface-aligned pose without the visual bank.
func (c *Controller) Alignment() physics.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

// Fuel returns the remaining fuel.
func (c *Controller) Fuel() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resources.Fuel()
}

// Durability returns the remaining durability.
func (c *Controller) Durability() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resources.Durability()
}

// Toggles returns a snapshot of the feature switches.
func (c *Controller) Toggles() Toggles {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toggles
}

// Surface returns the classification of the last tick.
func (c *Controller) Surface() surface.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

// Detection returns the full detection result of the last tick.
func (c *Controller) Detection() surface.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// PreviousFloor returns the last surface found under the vehicle.
func (c *Controller) PreviousFloor() physics.SurfaceID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previousFloor
}

// FloorPoint returns the last floor-smoothing hit point.
func (c *Controller) FloorPoint() (mgl64.Vec3, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.floorPoint, c.hasFloor
}

// FreeFallTime returns the seconds spent airborne.
func (c *Controller) FreeFallTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gravity.Timer()
}

// FallRamp returns the current gravity ramp in [0,1].
func (c *Controller) FallRamp() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gravity.Ramp()
}

// Destroyed reports whether Teardown has run.
func (c *Controller) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// Queries returns the number of raycasts issued so far.
func (c *Controller) Queries() uint64 {
	return c.probe.Queries()
}
