package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/evergreen/components"
)

func TestStepSpringConverges(t *testing.T) {
	// Reference scenario: mass 1, stiffness 0.05, damping 0.92, destination
	// (10,0,0), 600 frames at 60fps must land within 0.01 units.
	kin := &components.Kinetics{}
	dest := components.Vec3{X: 10}
	p := SpringParams{Stiffness: 0.05, Damping: 0.92}

	for i := 0; i < 600; i++ {
		StepSpring(kin, dest, 1, p, false, 0, 0, 1.0/60.0)
	}

	if d := dest.Sub(kin.Pos).Length(); d > 0.01 {
		t.Errorf("expected within 0.01 of destination, got distance %f", d)
	}
}

func TestStepSpringMonotoneApproach(t *testing.T) {
	// With zero noise and a constant destination the distance must shrink
	// every frame once motion starts.
	kin := &components.Kinetics{Pos: components.Vec3{X: -5, Y: 3, Z: 2}}
	dest := components.Vec3{X: 4, Y: -1, Z: 0}
	p := SpringParams{Stiffness: 0.08, Damping: 0.9}

	prev := dest.Sub(kin.Pos).Length()
	for i := 0; i < 400; i++ {
		StepSpring(kin, dest, 1, p, false, 0, 0, 1.0/60.0)
		d := dest.Sub(kin.Pos).Length()
		if d > prev+1e-5 {
			t.Fatalf("distance grew at frame %d: %f -> %f", i, prev, d)
		}
		prev = d
	}
}

func TestStepSpringVelocityClamp(t *testing.T) {
	// Pathological constants must not diverge when MaxSpeed is set.
	kin := &components.Kinetics{}
	dest := components.Vec3{X: 1000}
	p := SpringParams{Stiffness: 5, Damping: 0.999, MaxSpeed: 12}

	for i := 0; i < 100; i++ {
		StepSpring(kin, dest, 0.1, p, false, 0, 0, 1.0/60.0)
		if s := kin.Vel.Length(); s > p.MaxSpeed+1e-3 {
			t.Fatalf("velocity %f exceeds clamp %f at frame %d", s, p.MaxSpeed, i)
		}
	}
	if !kin.Pos.IsFinite() {
		t.Fatal("position diverged to non-finite")
	}
}

func TestStepSpringDTClamp(t *testing.T) {
	kin := &components.Kinetics{}
	dest := components.Vec3{X: 10}
	p := SpringParams{Stiffness: 0.05, Damping: 0.92}

	// A 5 second frame gap must behave like a 100ms step, not overshoot.
	StepSpring(kin, dest, 1, p, false, 0, 0, 5.0)
	if kin.Pos.X > 0.5*0.1+1e-4 {
		t.Errorf("long frame gap overshot: moved %f", kin.Pos.X)
	}
}

func TestStepSpringDriftOnlyInChaos(t *testing.T) {
	still := &components.Kinetics{Pos: components.Vec3{X: 1}}
	drifting := &components.Kinetics{Pos: components.Vec3{X: 1}}
	dest := components.Vec3{X: 1}
	p := SpringParams{Stiffness: 0.05, Damping: 0.92, Noise: 0.5}

	StepSpring(still, dest, 1, p, false, 3, 1, 1.0/60.0)
	StepSpring(drifting, dest, 1, p, true, 3, 1, 1.0/60.0)

	if still.Vel.Length() != 0 {
		t.Errorf("settled entity moved without drift: %+v", still.Vel)
	}
	if drifting.Vel.Length() == 0 {
		t.Error("drift enabled but velocity unchanged")
	}
}

func TestStepSpinChaosTumbles(t *testing.T) {
	spin := &components.Spin{Rate: components.Vec3{X: 1, Y: 2, Z: 4}}
	StepSpin(spin, ModeChaos, false, 0.0625)

	want := components.Vec3{X: 0.0625, Y: 0.125, Z: 0.25}
	if spin.Euler != want {
		t.Errorf("expected %+v, got %+v", want, spin.Euler)
	}
}

func TestStepSpinClampsLongFrames(t *testing.T) {
	spin := &components.Spin{Rate: components.Vec3{X: 1, Y: 2, Z: 4}}
	StepSpin(spin, ModeChaos, false, 0.5)

	// A long frame gap advances by MaxDT, not by the raw delta.
	want := spin.Rate.Scale(MaxDT)
	if diff := spin.Euler.Sub(want).Length(); diff > 1e-6 {
		t.Errorf("expected %+v, got %+v", want, spin.Euler)
	}
}

func TestStepSpinSnapDown(t *testing.T) {
	spin := &components.Spin{Euler: components.Vec3{X: 1, Y: 2, Z: 3}}
	StepSpin(spin, ModeFormed, true, 1.0/60.0)

	if math.Abs(float64(spin.Euler.X)-math.Pi) > 1e-6 || spin.Euler.Z != 0 {
		t.Errorf("expected hanging orientation, got %+v", spin.Euler)
	}
}

func TestStepSpinFormedSettlesUpright(t *testing.T) {
	spin := &components.Spin{
		Euler:      components.Vec3{X: 2, Y: 0, Z: -1.5},
		FormedRate: 0.5,
	}
	for i := 0; i < 600; i++ {
		StepSpin(spin, ModeFormed, false, 1.0/60.0)
	}
	if math.Abs(float64(spin.Euler.X)) > 0.01 || math.Abs(float64(spin.Euler.Z)) > 0.01 {
		t.Errorf("X/Z tilt did not settle: %+v", spin.Euler)
	}
	if spin.Euler.Y == 0 {
		t.Error("formed Y spin did not advance")
	}
}

func TestBreatheAsynchronous(t *testing.T) {
	a := Breathe(1, 0.1, 2, 3.0, 0)
	b := Breathe(1, 0.1, 2, 3.0, 1)
	if a == b {
		t.Error("entities with different indices pulsed in sync")
	}

	// Amplitude bound.
	for ti := 0; ti < 100; ti++ {
		s := Breathe(1, 0.1, 2, float32(ti)*0.1, 5)
		if s < 0.9-1e-5 || s > 1.1+1e-5 {
			t.Fatalf("breathing scale out of range: %f", s)
		}
	}
}
