package surface

// Friction is the physical-property configuration pushed to the host body.
type Friction struct {
	Rolling    float64
	Spin       float64
	Elasticity float64
}

// NominalFriction is applied while grounded and not on a wall.
var NominalFriction = Friction{Rolling: 2, Spin: 0, Elasticity: 0}

// FrictionFor maps a detection to a friction configuration. Walls and free
// fall get zero friction so the wheel can stick to vertical faces and fall
// unimpeded.
func FrictionFor(r Result) Friction {
	if r.OnWall || !r.OnGround {
		return Friction{}
	}
	return NominalFriction
}
