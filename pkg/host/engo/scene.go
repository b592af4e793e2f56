// pkg/host/engo/scene.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-monowheel/pkg/physics"
	"github.com/opd-ai/go-monowheel/pkg/vehicle"
)

// TrackingCamera is a camera sink that keeps the latest pose for whatever
// draws the frame.
type TrackingCamera struct {
	mu     sync.Mutex
	pose   physics.Pose
	active bool
}

func (c *TrackingCamera) SetPose(p physics.Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = p
	c.active = true
}

func (c *TrackingCamera) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
}

// Pose returns the last pose and whether the vehicle still drives the camera.
func (c *TrackingCamera) Pose() (physics.Pose, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose, c.active
}

// AssembleFunc builds the vehicle once the scene's world exists.
type AssembleFunc func(sched *Scheduler, mailbox *engo.MessageManager) (*vehicle.Controller, error)

// Scene runs one monowheel under engo.Run.
type Scene struct {
	assemble     AssembleFunc
	refuelAmount float64

	world      *ecs.World
	controller *vehicle.Controller
}

// NewScene creates a scene that calls assemble from Setup.
func NewScene(assemble AssembleFunc, refuelAmount float64) *Scene {
	return &Scene{assemble: assemble, refuelAmount: refuelAmount}
}

// Type returns the scene type (required by Engo)
func (scene *Scene) Type() string {
	return "MonowheelScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *Scene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *Scene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("monowheel scene requires an *ecs.World updater")
	}
	scene.world = world

	if engo.Input != nil {
		SetupInputBindings(engo.Input)
	}

	c, err := scene.assemble(NewScheduler(world), engo.Mailbox)
	if err != nil {
		panic("Failed to assemble vehicle: " + err.Error())
	}
	scene.controller = c

	world.AddSystem(NewHotkeySystem(c, EngineControls{}, scene.refuelAmount))
}

// Controller returns the vehicle built in Setup.
func (scene *Scene) Controller() *vehicle.Controller {
	return scene.controller
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *Scene) Exit() {
	if scene.controller != nil {
		scene.controller.Teardown()
	}
}
