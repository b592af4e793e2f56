// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBlendFactor(t *testing.T) {
	const ref = 1.0 / 60.0

	tests := []struct {
		name     string
		perTick  float64
		dt       float64
		expected float64
	}{
		{name: "reference_tick", perTick: 0.1, dt: ref, expected: 0.1},
		{name: "camera_reference_tick", perTick: 0.2, dt: ref, expected: 0.2},
		{name: "two_reference_ticks", perTick: 0.1, dt: 2 * ref, expected: 1 - 0.9*0.9},
		{name: "zero_dt", perTick: 0.1, dt: 0, expected: 0},
		{name: "negative_dt", perTick: 0.1, dt: -ref, expected: 0},
		{name: "zero_factor", perTick: 0, dt: ref, expected: 0},
		{name: "full_factor", perTick: 1, dt: ref, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BlendFactor(tt.perTick, tt.dt, ref)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("BlendFactor() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestBlendFactor_TickRateInvariant(t *testing.T) {
	const ref = 1.0 / 60.0

	// Two half ticks must leave the same remainder as one full tick.
	half := BlendFactor(0.1, ref/2, ref)
	remaining := (1 - half) * (1 - half)
	if math.Abs(remaining-0.9) > 1e-12 {
		t.Errorf("two half ticks leave %v, expected 0.9", remaining)
	}
}

func TestTimeConstant(t *testing.T) {
	const ref = 1.0 / 60.0
	tau := TimeConstant(0.1, ref)
	got := 1 - math.Exp(-ref/tau)
	if math.Abs(got-0.1) > 1e-12 {
		t.Errorf("1-exp(-dt/tau) = %v, expected 0.1", got)
	}
	if !math.IsInf(TimeConstant(0, ref), 1) {
		t.Error("TimeConstant(0) should be infinite")
	}
}

func TestSafeNormalize(t *testing.T) {
	fallback := mgl64.Vec3{0, 1, 0}

	if got := SafeNormalize(mgl64.Vec3{}, fallback); got != fallback {
		t.Errorf("SafeNormalize(zero) = %v, expected fallback %v", got, fallback)
	}
	got := SafeNormalize(mgl64.Vec3{3, 0, 4}, fallback)
	if got.Sub(mgl64.Vec3{0.6, 0, 0.8}).Len() > 1e-12 {
		t.Errorf("SafeNormalize() = %v, expected (0.6, 0, 0.8)", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(mgl64.Vec3{1, 2, 3}) {
		t.Error("finite vector reported as non-finite")
	}
	if IsFinite(mgl64.Vec3{math.NaN(), 0, 0}) {
		t.Error("NaN vector reported as finite")
	}
	if IsFinite(mgl64.Vec3{0, math.Inf(1), 0}) {
		t.Error("Inf vector reported as finite")
	}
}
