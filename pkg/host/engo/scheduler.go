// pkg/host/engo/scheduler.go

// Package engo hosts a monowheel inside an EngoEngine ecs.World: ticks are
// ecs systems, rider input comes from engo's input manager and collisions
// arrive through the engo mailbox.
package engo

import (
	"sync/atomic"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-monowheel/pkg/vehicle"
)

// BodyPriority is the slot of the rigid body integration. It runs after the
// vehicle tick, which is bound at the camera priority.
const BodyPriority = 100

// Scheduler binds vehicle ticks to an ecs.World.
type Scheduler struct {
	world *ecs.World
}

// NewScheduler creates a scheduler adding systems to world.
func NewScheduler(world *ecs.World) *Scheduler {
	return &Scheduler{world: world}
}

// World returns the underlying ecs world.
func (s *Scheduler) World() *ecs.World {
	return s.world
}

// Bind adds tick to the world as a system with the given priority.
func (s *Scheduler) Bind(priority int, tick func(dt float64)) vehicle.Connection {
	sys := &TickSystem{priority: priority, tick: tick}
	s.world.AddSystem(sys)
	return sys
}

// TickSystem runs one bound tick per world update until disconnected.
// ecs.World has no way to drop a system, so a disconnected system stays in
// the world as a no-op.
type TickSystem struct {
	priority int
	tick     func(dt float64)
	stopped  atomic.Bool
}

// Update satisfies the ecs.System interface
func (t *TickSystem) Update(dt float32) {
	if t.stopped.Load() {
		return
	}
	t.tick(float64(dt))
}

// Remove satisfies the ecs.System interface
func (t *TickSystem) Remove(ecs.BasicEntity) {}

// Priority satisfies ecs.Prioritizer
func (t *TickSystem) Priority() int {
	return t.priority
}

// Disconnect stops further ticks. Safe to call from inside the tick.
func (t *TickSystem) Disconnect() {
	t.stopped.Store(true)
}

// Connected reports whether the system still ticks.
func (t *TickSystem) Connected() bool {
	return !t.stopped.Load()
}
