package surface

import (
	"testing"

	"github.com/opd-ai/go-monowheel/pkg/physics"
)

func TestFrictionFor_AllClassifications(t *testing.T) {
	tests := []struct {
		name     string
		onWall   bool
		onGround bool
		want     Friction
		kind     Kind
	}{
		{name: "air", onWall: false, onGround: false, want: Friction{}, kind: Air},
		{name: "ground", onWall: false, onGround: true, want: NominalFriction, kind: Ground},
		{name: "wall_no_ground", onWall: true, onGround: false, want: Friction{}, kind: Wall},
		{name: "wall_and_ground", onWall: true, onGround: true, want: Friction{}, kind: Wall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{OnWall: tt.onWall, OnGround: tt.onGround}
			if got := FrictionFor(r); got != tt.want {
				t.Errorf("FrictionFor() = %+v, want %+v", got, tt.want)
			}
			if got := r.Surface(); got != tt.kind {
				t.Errorf("Surface() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestNominalFriction(t *testing.T) {
	if NominalFriction.Rolling != 2 || NominalFriction.Spin != 0 || NominalFriction.Elasticity != 0 {
		t.Errorf("NominalFriction = %+v, want rolling 2, spin 0, elasticity 0", NominalFriction)
	}
}

func TestResult_ChosenPrefersWall(t *testing.T) {
	r := Result{
		Wall:     physics.Hit{Surface: 1},
		OnWall:   true,
		Ground:   physics.Hit{Surface: 2},
		OnGround: true,
	}
	if hit, ok := r.Chosen(); !ok || hit.Surface != 1 {
		t.Errorf("Chosen() = %v, %v; want wall", hit, ok)
	}

	r.OnWall = false
	if hit, ok := r.Chosen(); !ok || hit.Surface != 2 {
		t.Errorf("Chosen() = %v, %v; want ground", hit, ok)
	}

	if _, ok := (Result{}).Chosen(); ok {
		t.Error("Chosen() on empty result should report no hit")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Air, "air"},
		{Ground, "ground"},
		{Wall, "wall"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
