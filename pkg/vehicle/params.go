package vehicle

import (
	"github.com/opd-ai/go-monowheel/pkg/camera"
	"github.com/opd-ai/go-monowheel/pkg/config"
	"github.com/opd-ai/go-monowheel/pkg/motion"
	"github.com/opd-ai/go-monowheel/pkg/surface"
)

func detectorParams(cfg *config.VehicleConfig) surface.Params {
	return surface.Params{
		ForwardScale:      cfg.Probe.ForwardScale,
		DiagonalScale:     cfg.Probe.DiagonalScale,
		DiagonalTilt:      cfg.Probe.DiagonalTilt,
		GroundProbeLength: cfg.Probe.GroundProbeLength,
		FloorProbeLength:  cfg.Probe.FloorProbeLength,
	}
}

func gravityParams(cfg *config.VehicleConfig) motion.GravityParams {
	return motion.GravityParams{
		FallSpeed:   cfg.Gravity.FallSpeed,
		MaxFallTime: cfg.Gravity.MaxFallTime,
		ForceScale:  cfg.Gravity.ForceScale,
		StandOff:    cfg.Gravity.StandOff,
	}
}

func movementParams(cfg *config.VehicleConfig) motion.MovementParams {
	return motion.MovementParams{
		BaseSpeed:           cfg.Motion.BaseSpeed,
		SteerDeadZone:       cfg.Motion.SteerDeadZone,
		SteerRate:           cfg.Motion.SteerRate,
		SteerExponent:       cfg.Motion.SteerExponent,
		BankDivisor:         cfg.Motion.BankDivisor,
		BankExponent:        cfg.Motion.BankExponent,
		BoostMultiplier:     cfg.Motion.BoostMultiplier,
		BrakeMultiplier:     cfg.Motion.BrakeMultiplier,
		VelocityScale:       cfg.Motion.VelocityScale,
		FuelConsumptionRate: cfg.Resources.FuelConsumptionRate,
		BoostFuelRate:       cfg.Resources.BoostFuelRate,
		DamageThreshold:     cfg.Resources.DamageThreshold,
		DamageDivisor:       cfg.Resources.DamageDivisor,
		ReferenceTickRate:   cfg.Tick.ReferenceRate,
	}
}

func cameraParams(cfg *config.VehicleConfig) camera.Params {
	return camera.Params{
		Distance:       cfg.Camera.Distance,
		Side:           cfg.Camera.Side,
		Height:         cfg.Camera.Height,
		AnchorBase:     cfg.Camera.AnchorBase,
		AnchorExponent: cfg.Camera.AnchorExponent,
		AnchorMax:      cfg.Camera.AnchorMax,
		SoftenExponent: cfg.Camera.SoftenExponent,
	}
}
