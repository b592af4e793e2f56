package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-monowheel/pkg/physics"
)

// Input is the rider input sampled once per tick. Throttle and Steer are
// in [-1, 1].
type Input struct {
	Throttle float64
	Steer    float64
	Boost    bool
}

// Clamped returns in with both axes limited to [-1, 1]. Non-finite axes
// read as zero.
func (in Input) Clamped() Input {
	in.Throttle = clampAxis(in.Throttle)
	in.Steer = clampAxis(in.Steer)
	return in
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return mgl64.Clamp(v, -1, 1)
}

// MovementParams tunes the integrator.
type MovementParams struct {
	BaseSpeed     float64
	SteerDeadZone float64
	SteerRate     float64 // degrees per reference tick
	SteerExponent float64
	BankDivisor   float64
	BankExponent  float64

	BoostMultiplier float64
	BrakeMultiplier float64
	VelocityScale   float64

	FuelConsumptionRate float64
	BoostFuelRate       float64

	DamageThreshold float64
	DamageDivisor   float64

	ReferenceTickRate float64
}

// DefaultMovementParams returns the stock tuning.
func DefaultMovementParams() MovementParams {
	return MovementParams{
		BaseSpeed:           50,
		SteerDeadZone:       2,
		SteerRate:           0.2,
		SteerExponent:       0.15,
		BankDivisor:         0.9,
		BankExponent:        0.15,
		BoostMultiplier:     2,
		BrakeMultiplier:     -0.5,
		VelocityScale:       10,
		FuelConsumptionRate: 5,
		BoostFuelRate:       10,
		DamageThreshold:     100,
		DamageDivisor:       10,
		ReferenceTickRate:   60,
	}
}

// Step is the outcome of one integration.
type Step struct {
	// Pose is the alignment pose with this tick's yaw applied.
	Pose physics.Pose
	// Visual is Pose with the bank applied; it is what gets rendered.
	Visual physics.Pose

	Velocity    mgl64.Vec3
	SpeedFactor float64
	Boosting    bool
	Steered     bool
	FuelBurned  float64
	Exhausted   bool
}

// Integrator turns rider input into a velocity, yaw and fuel drain.
type Integrator struct {
	params MovementParams
}

// NewIntegrator creates an integrator.
func NewIntegrator(params MovementParams) *Integrator {
	return &Integrator{params: params}
}

// Params returns the tuning in use.
func (m *Integrator) Params() MovementParams {
	return m.params
}

// Integrate advances one tick. velocity is the pre-tick velocity; its
// magnitude is the speed used by every formula in the tick. Fuel is drained
// from res in place.
func (m *Integrator) Integrate(pose physics.Pose, velocity mgl64.Vec3, in Input, boostEnabled bool, res *Resources, dt float64) Step {
	in = in.Clamped()
	if dt < 0 {
		dt = 0
	}
	speed := velocity.Len()

	var s Step
	s.Pose = pose

	if speed > m.params.SteerDeadZone && in.Steer != 0 {
		yaw := m.YawDegrees(in.Steer, speed) * m.tickScale(dt)
		s.Pose = s.Pose.Rotated(mgl64.DegToRad(yaw), s.Pose.Up())
		s.Steered = true
	}

	bank := m.BankDegrees(in.Steer, speed)
	s.Visual = s.Pose.Rotated(mgl64.DegToRad(bank), s.Pose.Forward())

	s.FuelBurned = res.Burn(math.Abs(in.Throttle) * m.params.FuelConsumptionRate * dt)

	switch {
	case boostEnabled && in.Boost && !res.Empty():
		s.SpeedFactor = in.Throttle * m.params.BoostMultiplier
		s.FuelBurned += res.Burn(m.params.BoostFuelRate * dt)
		s.Boosting = true
	case in.Throttle < 0:
		s.SpeedFactor = in.Throttle * m.params.BrakeMultiplier
	default:
		s.SpeedFactor = in.Throttle
	}

	magnitude := s.SpeedFactor * (math.Abs(in.Throttle) + math.Sqrt(speed)) * m.params.VelocityScale
	s.Velocity = s.Pose.Forward().Mul(magnitude)
	s.Exhausted = res.Empty()

	return s
}

// YawDegrees is the yaw increment for one reference tick.
func (m *Integrator) YawDegrees(steer, speed float64) float64 {
	if m.params.BaseSpeed <= 0 {
		return 0
	}
	return -steer * m.params.SteerRate * math.Pow(speed/m.params.BaseSpeed*10, m.params.SteerExponent)
}

// BankDegrees is the visual lean about the forward axis.
func (m *Integrator) BankDegrees(steer, speed float64) float64 {
	if m.params.BankDivisor == 0 || steer == 0 {
		return 0
	}
	return -steer / m.params.BankDivisor * math.Pow(speed, m.params.BankExponent)
}

// CollisionDamage returns the durability lost to an impact at speed.
func (m *Integrator) CollisionDamage(speed float64) float64 {
	if speed <= m.params.DamageThreshold || m.params.DamageDivisor <= 0 {
		return 0
	}
	return speed / m.params.DamageDivisor
}

func (m *Integrator) tickScale(dt float64) float64 {
	if m.params.ReferenceTickRate <= 0 {
		return 1
	}
	return dt * m.params.ReferenceTickRate
}
