// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// MONOWHEEL_RESOURCES_MAXFUEL.
const EnvPrefix = "MONOWHEEL"

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid vehicle config")

// VehicleConfig contains the full tuning of one monowheel
type VehicleConfig struct {
	Resources ResourceConfig `json:"resources" mapstructure:"resources"`
	Motion    MotionConfig   `json:"motion" mapstructure:"motion"`
	Probe     ProbeConfig    `json:"probe" mapstructure:"probe"`
	Gravity   GravityConfig  `json:"gravity" mapstructure:"gravity"`
	Camera    CameraConfig   `json:"camera" mapstructure:"camera"`
	Toggles   ToggleConfig   `json:"toggles" mapstructure:"toggles"`
	Tick      TickConfig     `json:"tick" mapstructure:"tick"`
}

// ResourceConfig contains fuel and durability settings
type ResourceConfig struct {
	MaxFuel             float64 `json:"maxFuel" mapstructure:"maxFuel"`
	MaxDurability       float64 `json:"maxDurability" mapstructure:"maxDurability"`
	FuelConsumptionRate float64 `json:"fuelConsumptionRate" mapstructure:"fuelConsumptionRate"`
	BoostFuelRate       float64 `json:"boostFuelRate" mapstructure:"boostFuelRate"`
	DamageThreshold     float64 `json:"damageThreshold" mapstructure:"damageThreshold"`
	DamageDivisor       float64 `json:"damageDivisor" mapstructure:"damageDivisor"`
}

// MotionConfig contains steering, throttle and alignment settings
type MotionConfig struct {
	WheelRadius      float64 `json:"wheelRadius" mapstructure:"wheelRadius"`
	BaseSpeed        float64 `json:"baseSpeed" mapstructure:"baseSpeed"`
	SteerDeadZone    float64 `json:"steerDeadZone" mapstructure:"steerDeadZone"`
	SteerRate        float64 `json:"steerRate" mapstructure:"steerRate"`
	SteerExponent    float64 `json:"steerExponent" mapstructure:"steerExponent"`
	BankDivisor      float64 `json:"bankDivisor" mapstructure:"bankDivisor"`
	BankExponent     float64 `json:"bankExponent" mapstructure:"bankExponent"`
	BoostMultiplier  float64 `json:"boostMultiplier" mapstructure:"boostMultiplier"`
	BrakeMultiplier  float64 `json:"brakeMultiplier" mapstructure:"brakeMultiplier"`
	VelocityScale    float64 `json:"velocityScale" mapstructure:"velocityScale"`
	OrientationBlend float64 `json:"orientationBlend" mapstructure:"orientationBlend"`
}

// ProbeConfig contains surface probe geometry
type ProbeConfig struct {
	ForwardScale      float64 `json:"forwardScale" mapstructure:"forwardScale"`
	DiagonalScale     float64 `json:"diagonalScale" mapstructure:"diagonalScale"`
	DiagonalTilt      float64 `json:"diagonalTilt" mapstructure:"diagonalTilt"`
	GroundProbeLength float64 `json:"groundProbeLength" mapstructure:"groundProbeLength"`
	FloorProbeLength  float64 `json:"floorProbeLength" mapstructure:"floorProbeLength"`
}

// GravityConfig contains the fall ramp settings
type GravityConfig struct {
	FallSpeed   float64 `json:"fallSpeed" mapstructure:"fallSpeed"`
	MaxFallTime float64 `json:"maxFallTime" mapstructure:"maxFallTime"`
	ForceScale  float64 `json:"forceScale" mapstructure:"forceScale"`
	StandOff    float64 `json:"standOff" mapstructure:"standOff"`
}

// CameraConfig contains chase camera framing
type CameraConfig struct {
	Distance       float64 `json:"distance" mapstructure:"distance"`
	Side           float64 `json:"side" mapstructure:"side"`
	Height         float64 `json:"height" mapstructure:"height"`
	AnchorBase     float64 `json:"anchorBase" mapstructure:"anchorBase"`
	AnchorExponent float64 `json:"anchorExponent" mapstructure:"anchorExponent"`
	AnchorMax      float64 `json:"anchorMax" mapstructure:"anchorMax"`
	SoftenExponent float64 `json:"softenExponent" mapstructure:"softenExponent"`
	Blend          float64 `json:"blend" mapstructure:"blend"`
}

// ToggleConfig contains the initial toggle states
type ToggleConfig struct {
	Movement  bool `json:"movement" mapstructure:"movement"`
	Camera    bool `json:"camera" mapstructure:"camera"`
	WallClimb bool `json:"wallClimb" mapstructure:"wallClimb"`
	Boost     bool `json:"boost" mapstructure:"boost"`
}

// TickConfig contains scheduling settings
type TickConfig struct {
	// ReferenceRate is the tick rate in Hz at which per-tick blend factors
	// and the steering increment are defined.
	ReferenceRate float64 `json:"referenceRate" mapstructure:"referenceRate"`
	// Priority orders the vehicle tick among host systems.
	Priority int `json:"priority" mapstructure:"priority"`
}

// DefaultConfig returns the stock monowheel tuning
func DefaultConfig() *VehicleConfig {
	return &VehicleConfig{
		Resources: ResourceConfig{
			MaxFuel:             100,
			MaxDurability:       100,
			FuelConsumptionRate: 5,
			BoostFuelRate:       10,
			DamageThreshold:     100,
			DamageDivisor:       10,
		},
		Motion: MotionConfig{
			WheelRadius:      2.5,
			BaseSpeed:        50,
			SteerDeadZone:    2,
			SteerRate:        0.2,
			SteerExponent:    0.15,
			BankDivisor:      0.9,
			BankExponent:     0.15,
			BoostMultiplier:  2,
			BrakeMultiplier:  -0.5,
			VelocityScale:    10,
			OrientationBlend: 0.1,
		},
		Probe: ProbeConfig{
			ForwardScale:      1.2,
			DiagonalScale:     0.6,
			DiagonalTilt:      0.1,
			GroundProbeLength: 6,
			FloorProbeLength:  6,
		},
		Gravity: GravityConfig{
			FallSpeed:   2,
			MaxFallTime: 1.5,
			ForceScale:  500,
			StandOff:    5,
		},
		Camera: CameraConfig{
			Distance:       20,
			Side:           4,
			Height:         6,
			AnchorBase:     2,
			AnchorExponent: 0.2,
			AnchorMax:      5,
			SoftenExponent: 0.1,
			Blend:          0.2,
		},
		Toggles: ToggleConfig{
			Movement:  true,
			Camera:    true,
			WallClimb: true,
			Boost:     true,
		},
		Tick: TickConfig{
			ReferenceRate: 60,
			Priority:      CameraPriority,
		},
	}
}

// CameraPriority is the scheduling slot of the camera update; the vehicle
// tick runs in it so the planned camera is never a frame late.
const CameraPriority = 200

// Validate reports the first out-of-range setting wrapped in ErrInvalidConfig
func (c *VehicleConfig) Validate() error {
	checks := []struct {
		ok   bool
		name string
	}{
		{c.Resources.MaxFuel >= 0, "resources.maxFuel must be >= 0"},
		{c.Resources.MaxDurability > 0, "resources.maxDurability must be > 0"},
		{c.Resources.FuelConsumptionRate >= 0, "resources.fuelConsumptionRate must be >= 0"},
		{c.Resources.BoostFuelRate >= 0, "resources.boostFuelRate must be >= 0"},
		{c.Resources.DamageDivisor > 0, "resources.damageDivisor must be > 0"},
		{c.Motion.WheelRadius > 0, "motion.wheelRadius must be > 0"},
		{c.Motion.BaseSpeed > 0, "motion.baseSpeed must be > 0"},
		{c.Motion.SteerDeadZone >= 0, "motion.steerDeadZone must be >= 0"},
		{c.Motion.BankDivisor != 0, "motion.bankDivisor must not be 0"},
		{inUnit(c.Motion.OrientationBlend), "motion.orientationBlend must be in [0,1]"},
		{c.Probe.GroundProbeLength > 0, "probe.groundProbeLength must be > 0"},
		{c.Probe.FloorProbeLength > 0, "probe.floorProbeLength must be > 0"},
		{c.Gravity.MaxFallTime >= 0, "gravity.maxFallTime must be >= 0"},
		{inUnit(c.Camera.Blend), "camera.blend must be in [0,1]"},
		{c.Tick.ReferenceRate > 0, "tick.referenceRate must be > 0"},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.name)
		}
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// LoadConfig loads a configuration from a file. Missing keys keep their
// defaults and MONOWHEEL_* environment variables override both. An empty
// path loads defaults and environment only. The format follows the file
// extension (json, yaml, toml).
func LoadConfig(path string) (*VehicleConfig, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config VehicleConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves a configuration to a file as indented JSON
func SaveConfig(config *VehicleConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// newViper returns a viper instance seeded with every default so that
// environment overrides apply to all keys.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()

	v.SetDefault("resources.maxFuel", d.Resources.MaxFuel)
	v.SetDefault("resources.maxDurability", d.Resources.MaxDurability)
	v.SetDefault("resources.fuelConsumptionRate", d.Resources.FuelConsumptionRate)
	v.SetDefault("resources.boostFuelRate", d.Resources.BoostFuelRate)
	v.SetDefault("resources.damageThreshold", d.Resources.DamageThreshold)
	v.SetDefault("resources.damageDivisor", d.Resources.DamageDivisor)

	v.SetDefault("motion.wheelRadius", d.Motion.WheelRadius)
	v.SetDefault("motion.baseSpeed", d.Motion.BaseSpeed)
	v.SetDefault("motion.steerDeadZone", d.Motion.SteerDeadZone)
	v.SetDefault("motion.steerRate", d.Motion.SteerRate)
	v.SetDefault("motion.steerExponent", d.Motion.SteerExponent)
	v.SetDefault("motion.bankDivisor", d.Motion.BankDivisor)
	v.SetDefault("motion.bankExponent", d.Motion.BankExponent)
	v.SetDefault("motion.boostMultiplier", d.Motion.BoostMultiplier)
	v.SetDefault("motion.brakeMultiplier", d.Motion.BrakeMultiplier)
	v.SetDefault("motion.velocityScale", d.Motion.VelocityScale)
	v.SetDefault("motion.orientationBlend", d.Motion.OrientationBlend)

	v.SetDefault("probe.forwardScale", d.Probe.ForwardScale)
	v.SetDefault("probe.diagonalScale", d.Probe.DiagonalScale)
	v.SetDefault("probe.diagonalTilt", d.Probe.DiagonalTilt)
	v.SetDefault("probe.groundProbeLength", d.Probe.GroundProbeLength)
	v.SetDefault("probe.floorProbeLength", d.Probe.FloorProbeLength)

	v.SetDefault("gravity.fallSpeed", d.Gravity.FallSpeed)
	v.SetDefault("gravity.maxFallTime", d.Gravity.MaxFallTime)
	v.SetDefault("gravity.forceScale", d.Gravity.ForceScale)
	v.SetDefault("gravity.standOff", d.Gravity.StandOff)

	v.SetDefault("camera.distance", d.Camera.Distance)
	v.SetDefault("camera.side", d.Camera.Side)
	v.SetDefault("camera.height", d.Camera.Height)
	v.SetDefault("camera.anchorBase", d.Camera.AnchorBase)
	v.SetDefault("camera.anchorExponent", d.Camera.AnchorExponent)
	v.SetDefault("camera.anchorMax", d.Camera.AnchorMax)
	v.SetDefault("camera.softenExponent", d.Camera.SoftenExponent)
	v.SetDefault("camera.blend", d.Camera.Blend)

	v.SetDefault("toggles.movement", d.Toggles.Movement)
	v.SetDefault("toggles.camera", d.Toggles.Camera)
	v.SetDefault("toggles.wallClimb", d.Toggles.WallClimb)
	v.SetDefault("toggles.boost", d.Toggles.Boost)

	v.SetDefault("tick.referenceRate", d.Tick.ReferenceRate)
	v.SetDefault("tick.priority", d.Tick.Priority)

	return v
}
