package motion

import "github.com/go-gl/mathgl/mgl64"

// Resources tracks fuel and durability. Every mutation clamps the values
// into [0, max].
type Resources struct {
	fuel          float64
	durability    float64
	maxFuel       float64
	maxDurability float64
}

// NewResources returns a full tank and an undamaged vehicle.
func NewResources(maxFuel, maxDurability float64) *Resources {
	if maxFuel < 0 {
		maxFuel = 0
	}
	if maxDurability < 0 {
		maxDurability = 0
	}
	return &Resources{
		fuel:          maxFuel,
		durability:    maxDurability,
		maxFuel:       maxFuel,
		maxDurability: maxDurability,
	}
}

func (r *Resources) Fuel() float64          { return r.fuel }
func (r *Resources) Durability() float64    { return r.durability }
func (r *Resources) MaxFuel() float64       { return r.maxFuel }
func (r *Resources) MaxDurability() float64 { return r.maxDurability }

// Empty reports whether the tank is dry.
func (r *Resources) Empty() bool { return r.fuel <= 0 }

// Wrecked reports whether durability is exhausted.
func (r *Resources) Wrecked() bool { return r.durability <= 0 }

// Burn removes up to amount fuel and returns what was actually removed.
func (r *Resources) Burn(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := r.fuel
	r.SetFuel(r.fuel - amount)
	return before - r.fuel
}

// Damage removes up to amount durability and returns what was removed.
func (r *Resources) Damage(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := r.durability
	r.SetDurability(r.durability - amount)
	return before - r.durability
}

// Refuel adds up to amount fuel and returns what was actually added.
func (r *Resources) Refuel(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := r.fuel
	r.SetFuel(r.fuel + amount)
	return r.fuel - before
}

// SetFuel overwrites the fuel level, clamped.
func (r *Resources) SetFuel(v float64) {
	r.fuel = mgl64.Clamp(v, 0, r.maxFuel)
}

// SetDurability overwrites the durability level, clamped.
func (r *Resources) SetDurability(v float64) {
	r.durability = mgl64.Clamp(v, 0, r.maxDurability)
}
