package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tolerance = 1e-9

func assertVec(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	if got.Sub(want).Len() > tolerance {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestNewPose_IdentityBasis(t *testing.T) {
	p := NewPose(mgl64.Vec3{1, 2, 3})

	assertVec(t, "Right()", p.Right(), mgl64.Vec3{1, 0, 0})
	assertVec(t, "Up()", p.Up(), mgl64.Vec3{0, 1, 0})
	assertVec(t, "Forward()", p.Forward(), mgl64.Vec3{0, 0, -1})
	assertVec(t, "Position", p.Position, mgl64.Vec3{1, 2, 3})
}

func TestOrientationFromBasis(t *testing.T) {
	tests := []struct {
		name    string
		right   mgl64.Vec3
		up      mgl64.Vec3
		forward mgl64.Vec3
	}{
		{
			name:    "identity",
			right:   mgl64.Vec3{1, 0, 0},
			up:      mgl64.Vec3{0, 1, 0},
			forward: mgl64.Vec3{0, 0, -1},
		},
		{
			name:    "facing_positive_x",
			right:   mgl64.Vec3{0, 0, 1},
			up:      mgl64.Vec3{0, 1, 0},
			forward: mgl64.Vec3{1, 0, 0},
		},
		{
			name:    "on_wall_facing_up",
			right:   mgl64.Vec3{1, 0, 0},
			up:      mgl64.Vec3{0, 0, 1},
			forward: mgl64.Vec3{0, 1, 0},
		},
		{
			name:    "upside_down",
			right:   mgl64.Vec3{-1, 0, 0},
			up:      mgl64.Vec3{0, -1, 0},
			forward: mgl64.Vec3{0, 0, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pose{Orientation: OrientationFromBasis(tt.right, tt.up, tt.forward)}
			assertVec(t, "Right()", p.Right(), tt.right)
			assertVec(t, "Up()", p.Up(), tt.up)
			assertVec(t, "Forward()", p.Forward(), tt.forward)
		})
	}
}

func TestPose_Rotated(t *testing.T) {
	p := NewPose(mgl64.Vec3{})

	// A quarter turn about up swings forward (-Z) onto -X.
	turned := p.Rotated(math.Pi/2, p.Up())
	assertVec(t, "Forward()", turned.Forward(), mgl64.Vec3{-1, 0, 0})
	assertVec(t, "Up()", turned.Up(), mgl64.Vec3{0, 1, 0})

	if same := p.Rotated(0, p.Up()); same != p {
		t.Errorf("Rotated(0) changed the pose: %v", same)
	}
	if same := p.Rotated(1, mgl64.Vec3{}); same != p {
		t.Errorf("Rotated about zero axis changed the pose: %v", same)
	}
}

func TestPose_Lerp(t *testing.T) {
	from := NewPose(mgl64.Vec3{0, 0, 0})
	to := NewPose(mgl64.Vec3{10, 0, 0}).Rotated(math.Pi/2, WorldUp)

	if got := from.Lerp(to, 0); got != from {
		t.Errorf("Lerp(0) = %v, want start pose", got)
	}
	if got := from.Lerp(to, 1); got != to {
		t.Errorf("Lerp(1) = %v, want target pose", got)
	}

	mid := from.Lerp(to, 0.5)
	assertVec(t, "Position", mid.Position, mgl64.Vec3{5, 0, 0})
	half := NewPose(mgl64.Vec3{}).Rotated(math.Pi/4, WorldUp)
	assertVec(t, "Forward()", mid.Forward(), half.Forward())
}

func TestLookAt(t *testing.T) {
	tests := []struct {
		name    string
		eye     mgl64.Vec3
		target  mgl64.Vec3
		forward mgl64.Vec3
	}{
		{
			name:    "look_down_negative_z",
			eye:     mgl64.Vec3{0, 0, 10},
			target:  mgl64.Vec3{0, 0, 0},
			forward: mgl64.Vec3{0, 0, -1},
		},
		{
			name:    "look_along_x",
			eye:     mgl64.Vec3{-5, 0, 0},
			target:  mgl64.Vec3{5, 0, 0},
			forward: mgl64.Vec3{1, 0, 0},
		},
		{
			name:    "look_straight_down",
			eye:     mgl64.Vec3{0, 10, 0},
			target:  mgl64.Vec3{0, 0, 0},
			forward: mgl64.Vec3{0, -1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := LookAt(tt.eye, tt.target, WorldUp)
			assertVec(t, "Position", p.Position, tt.eye)
			assertVec(t, "Forward()", p.Forward(), tt.forward)
			if math.Abs(p.Right().Dot(p.Up())) > tolerance {
				t.Errorf("basis not orthogonal: right=%v up=%v", p.Right(), p.Up())
			}
			if p.Up().Dot(WorldUp) < -tolerance {
				t.Errorf("camera rolled upside down: up=%v", p.Up())
			}
		})
	}
}
