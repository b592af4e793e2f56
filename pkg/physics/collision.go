// pkg/physics/collision.go
package physics

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is a static collision primitive that can be intersected by a ray
// segment origin + t*direction, t in [0,1].
type Shape interface {
	Intersect(origin, direction mgl64.Vec3) (t float64, normal mgl64.Vec3, ok bool)
}

// Plane is an infinite two-sided plane.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// Intersect implements Shape. The returned normal faces the ray origin.
func (p Plane) Intersect(origin, direction mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	n := SafeNormalize(p.Normal, WorldUp)
	denom := n.Dot(direction)
	if math.Abs(denom) < epsilon {
		return 0, mgl64.Vec3{}, false
	}
	t := n.Dot(p.Point.Sub(origin)) / denom
	if t < 0 || t > 1 {
		return 0, mgl64.Vec3{}, false
	}
	if denom > 0 {
		n = n.Mul(-1)
	}
	return t, n, true
}

// Box is an axis-aligned box. Rays starting inside the box do not hit it.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Intersect implements Shape using the slab method.
func (b Box) Intersect(origin, direction mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	nearAxis, nearSign := -1, 0.0

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], direction[axis]
		if math.Abs(d) < epsilon {
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[axis] - o) / d
		t2 := (b.Max[axis] - o) / d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tNear {
			tNear, nearAxis, nearSign = t1, axis, sign
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, mgl64.Vec3{}, false
		}
	}

	if nearAxis < 0 || tNear < 0 || tNear > 1 {
		return 0, mgl64.Vec3{}, false
	}
	var normal mgl64.Vec3
	normal[nearAxis] = nearSign
	return tNear, normal, true
}

type body struct {
	id    SurfaceID
	shape Shape
}

// Scene is an analytic world of static shapes. It implements Caster and is
// safe for concurrent use.
type Scene struct {
	mu     sync.RWMutex
	bodies []body
	nextID SurfaceID
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{nextID: 1}
}

// Add inserts shape and returns the surface identifier assigned to it.
func (s *Scene) Add(shape Shape) SurfaceID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.bodies = append(s.bodies, body{id: id, shape: shape})
	return id
}

// Reserve returns a fresh identifier with no shape, for bodies that only
// need to be named in filters (the vehicle itself, avatars).
func (s *Scene) Reserve() SurfaceID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	return id
}

// Remove deletes the shape registered under id.
func (s *Scene) Remove(id SurfaceID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bodies {
		if b.id == id {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return
		}
	}
}

// Len returns the number of shapes in the scene.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bodies)
}

// Cast implements Caster, returning the nearest permitted hit.
func (s *Scene) Cast(origin, direction mgl64.Vec3, filter Filter) (Hit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := math.Inf(1)
	var hit Hit
	found := false

	for _, b := range s.bodies {
		if !filter.Allows(b.id) {
			continue
		}
		t, normal, ok := b.shape.Intersect(origin, direction)
		if !ok || t >= best {
			continue
		}
		best = t
		hit = Hit{
			Position: origin.Add(direction.Mul(t)),
			Normal:   normal,
			Surface:  b.id,
		}
		found = true
	}

	return hit, found
}
