// pkg/physics/ray.go
package physics

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// SurfaceID identifies a physical surface in the host world. Zero means none.
type SurfaceID uint64

// NoSurface is the zero SurfaceID.
const NoSurface SurfaceID = 0

// Hit is the result of a successful probe.
type Hit struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Surface  SurfaceID
}

// Caster is the host spatial query service. The magnitude of direction is
// the cast length. A miss is reported with ok == false.
type Caster interface {
	Cast(origin, direction mgl64.Vec3, filter Filter) (hit Hit, ok bool)
}

// CasterFunc adapts a function to the Caster interface.
type CasterFunc func(origin, direction mgl64.Vec3, filter Filter) (Hit, bool)

// Cast implements Caster.
func (f CasterFunc) Cast(origin, direction mgl64.Vec3, filter Filter) (Hit, bool) {
	return f(origin, direction, filter)
}

// Filter decides which surfaces a probe may hit. The exclusion set is fixed
// at construction and shared by every copy; Only derives a copy restricted
// to a single surface.
type Filter struct {
	exclude map[SurfaceID]struct{}
	include SurfaceID
}

// NewFilter returns a filter ignoring the given surfaces.
func NewFilter(exclude ...SurfaceID) Filter {
	set := make(map[SurfaceID]struct{}, len(exclude))
	for _, id := range exclude {
		if id != NoSurface {
			set[id] = struct{}{}
		}
	}
	return Filter{exclude: set}
}

// Only returns a filter that accepts nothing but id. Passing NoSurface
// returns the receiver unchanged, i.e. the whole world minus exclusions.
func (f Filter) Only(id SurfaceID) Filter {
	if id == NoSurface {
		return f
	}
	return Filter{exclude: f.exclude, include: id}
}

// Restricted reports the surface an inclusion filter is limited to.
func (f Filter) Restricted() (SurfaceID, bool) {
	return f.include, f.include != NoSurface
}

// Allows reports whether a probe using f may hit id.
func (f Filter) Allows(id SurfaceID) bool {
	if f.include != NoSurface {
		return id == f.include
	}
	_, excluded := f.exclude[id]
	return !excluded
}

// Probe issues single directional casts against a Caster. There are no
// retries; a miss is a normal outcome.
type Probe struct {
	caster  Caster
	queries atomic.Uint64
}

// NewProbe wraps caster.
func NewProbe(caster Caster) *Probe {
	return &Probe{caster: caster}
}

// Cast performs one query. Degenerate directions are answered as a miss
// without reaching the host.
func (p *Probe) Cast(origin, direction mgl64.Vec3, filter Filter) (Hit, bool) {
	if IsZero(direction) || !IsFinite(direction) || !IsFinite(origin) {
		return Hit{}, false
	}
	p.queries.Add(1)
	return p.caster.Cast(origin, direction, filter)
}

// Queries returns the number of casts forwarded to the host so far.
func (p *Probe) Queries() uint64 {
	return p.queries.Load()
}
