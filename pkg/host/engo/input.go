// pkg/host/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-monowheel/pkg/motion"
	"github.com/opd-ai/go-monowheel/pkg/vehicle"
)

// Input names registered by SetupInputBindings.
const (
	AxisThrottle = "throttle"
	AxisSteer    = "steer"

	ButtonBoost          = "boost"
	ButtonMovement       = "toggleMovement"
	ButtonCamera         = "toggleCamera"
	ButtonWallClimb      = "toggleWallClimb"
	ButtonBoostEnable    = "toggleBoost"
	ButtonIndicatorLeft  = "indicatorLeft"
	ButtonIndicatorRight = "indicatorRight"
	ButtonRefuel         = "refuel"
)

// Controls reads named axes and buttons.
type Controls interface {
	Axis(name string) float64
	Down(name string) bool
	JustPressed(name string) bool
}

// EngineControls reads the global engo input manager. It reports neutral
// input until engo.Run has created one.
type EngineControls struct{}

func (EngineControls) Axis(name string) float64 {
	if engo.Input == nil {
		return 0
	}
	return float64(engo.Input.Axis(name).Value())
}

func (EngineControls) Down(name string) bool {
	return engo.Input != nil && engo.Input.Button(name).Down()
}

func (EngineControls) JustPressed(name string) bool {
	return engo.Input != nil && engo.Input.Button(name).JustPressed()
}

// SetupInputBindings registers the monowheel keys on im.
func SetupInputBindings(im *engo.InputManager) {
	// Riding
	im.RegisterAxis(AxisThrottle,
		engo.AxisKeyPair{Min: engo.KeyS, Max: engo.KeyW},
		engo.AxisKeyPair{Min: engo.KeyArrowDown, Max: engo.KeyArrowUp},
	)
	im.RegisterAxis(AxisSteer,
		engo.AxisKeyPair{Min: engo.KeyA, Max: engo.KeyD},
		engo.AxisKeyPair{Min: engo.KeyArrowLeft, Max: engo.KeyArrowRight},
	)
	im.RegisterButton(ButtonBoost, engo.KeyLeftShift, engo.KeySpace)

	// Switches
	im.RegisterButton(ButtonMovement, engo.KeyM)
	im.RegisterButton(ButtonCamera, engo.KeyC)
	im.RegisterButton(ButtonWallClimb, engo.KeyG)
	im.RegisterButton(ButtonBoostEnable, engo.KeyB)
	im.RegisterButton(ButtonIndicatorLeft, engo.KeyQ)
	im.RegisterButton(ButtonIndicatorRight, engo.KeyE)
	im.RegisterButton(ButtonRefuel, engo.KeyR)
}

// KeyboardInput samples rider input from Controls.
type KeyboardInput struct {
	controls Controls
}

// NewKeyboardInput creates an input source. A nil controls reads the
// global engo input manager.
func NewKeyboardInput(controls Controls) *KeyboardInput {
	if controls == nil {
		controls = EngineControls{}
	}
	return &KeyboardInput{controls: controls}
}

// Sample implements vehicle.Input.
func (k *KeyboardInput) Sample() motion.Input {
	return motion.Input{
		Throttle: k.controls.Axis(AxisThrottle),
		Steer:    k.controls.Axis(AxisSteer),
		Boost:    k.controls.Down(ButtonBoost),
	}.Clamped()
}

// Switchboard is the part of the vehicle the hotkeys drive.
type Switchboard interface {
	Toggles() vehicle.Toggles
	SetToggle(t vehicle.Toggle, on bool) bool
	Refuel(amount float64) float64
}

var hotkeys = []struct {
	button string
	toggle vehicle.Toggle
}{
	{ButtonMovement, vehicle.Movement},
	{ButtonCamera, vehicle.Camera},
	{ButtonWallClimb, vehicle.WallClimb},
	{ButtonBoostEnable, vehicle.Boost},
	{ButtonIndicatorLeft, vehicle.IndicatorLeft},
	{ButtonIndicatorRight, vehicle.IndicatorRight},
}

// HotkeySystem flips vehicle switches on key presses.
type HotkeySystem struct {
	board        Switchboard
	controls     Controls
	refuelAmount float64
}

// NewHotkeySystem creates the system. Each press of the refuel key adds
// refuelAmount fuel.
func NewHotkeySystem(board Switchboard, controls Controls, refuelAmount float64) *HotkeySystem {
	if controls == nil {
		controls = EngineControls{}
	}
	return &HotkeySystem{board: board, controls: controls, refuelAmount: refuelAmount}
}

// Update satisfies the ecs.System interface
func (h *HotkeySystem) Update(float32) {
	for _, hk := range hotkeys {
		if h.controls.JustPressed(hk.button) {
			h.board.SetToggle(hk.toggle, !h.board.Toggles().Enabled(hk.toggle))
		}
	}
	if h.refuelAmount > 0 && h.controls.JustPressed(ButtonRefuel) {
		h.board.Refuel(h.refuelAmount)
	}
}

// Remove satisfies the ecs.System interface
func (h *HotkeySystem) Remove(ecs.BasicEntity) {}
