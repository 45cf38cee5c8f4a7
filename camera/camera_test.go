package camera

import (
	"math"
	"testing"
)

func testParams() Params {
	return Params{
		Yaw:            0,
		Pitch:          0.3,
		Distance:       20,
		TargetY:        5,
		MinPitch:       -0.2,
		MaxPitch:       1.2,
		MinDistance:    8,
		MaxDistance:    40,
		Smoothing:      8,
		AutoOrbitRate:  0.15,
		AutoOrbitDelay: 5,
	}
}

func TestPositionOnOrbitSphere(t *testing.T) {
	o := New(testParams())

	x, y, z := o.Position()
	dx, dy, dz := float64(x), float64(y-5), float64(z)
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if math.Abs(dist-20) > 0.001 {
		t.Errorf("camera distance %f, want 20", dist)
	}
}

func TestForwardPointsAtTarget(t *testing.T) {
	o := New(testParams())
	o.Yaw = 1.1
	o.Pitch = 0.4

	px, py, pz := o.Position()
	fx, fy, fz := o.Forward()

	// Walking Distance along Forward from Position must land on the target.
	gx := px + fx*o.Distance
	gy := py + fy*o.Distance
	gz := pz + fz*o.Distance
	if math.Abs(float64(gx)) > 0.001 || math.Abs(float64(gy-5)) > 0.001 || math.Abs(float64(gz)) > 0.001 {
		t.Errorf("forward missed target: (%f, %f, %f)", gx, gy, gz)
	}

	// Forward must be unit length.
	l := math.Sqrt(float64(fx*fx + fy*fy + fz*fz))
	if math.Abs(l-1) > 0.001 {
		t.Errorf("forward length %f, want 1", l)
	}
}

func TestPitchClamp(t *testing.T) {
	o := New(testParams())

	o.Rotate(0, 10) // way past the pole
	for i := 0; i < 600; i++ {
		o.Update(1.0 / 60.0)
	}
	if o.Pitch > 1.2+0.001 {
		t.Errorf("pitch %f exceeds max 1.2", o.Pitch)
	}

	o.Rotate(0, -10)
	for i := 0; i < 600; i++ {
		o.Update(1.0 / 60.0)
	}
	if o.Pitch < -0.2-0.001 {
		t.Errorf("pitch %f below min -0.2", o.Pitch)
	}
}

func TestZoomClamp(t *testing.T) {
	o := New(testParams())

	o.Zoom(100)
	for i := 0; i < 600; i++ {
		o.Update(1.0 / 60.0)
	}
	if o.Distance > 40+0.01 {
		t.Errorf("distance %f exceeds max 40", o.Distance)
	}

	o.Zoom(0.0001)
	for i := 0; i < 600; i++ {
		o.Update(1.0 / 60.0)
	}
	if o.Distance < 8-0.01 {
		t.Errorf("distance %f below min 8", o.Distance)
	}
}

func TestRotateEasesIn(t *testing.T) {
	o := New(testParams())
	// The run outlasts the idle delay; keep the auto-orbit from
	// drifting the yaw we are asserting on.
	o.AutoRate = 0
	o.Rotate(1.0, 0)

	// One frame moves part of the way, not all of it.
	o.Update(1.0 / 60.0)
	if o.Yaw <= 0 || o.Yaw >= 1.0 {
		t.Errorf("yaw after one frame: %f, want between 0 and 1", o.Yaw)
	}

	for i := 0; i < 600; i++ {
		o.Update(1.0 / 60.0)
	}
	if math.Abs(float64(o.Yaw-1.0)) > 0.01 {
		t.Errorf("yaw settled at %f, want ~1.0", o.Yaw)
	}
}

func TestAutoOrbitAfterIdle(t *testing.T) {
	o := New(testParams())

	// Under the idle delay: yaw stays put.
	for i := 0; i < 60; i++ {
		o.Update(1.0 / 60.0)
	}
	if o.Yaw != 0 {
		t.Errorf("yaw drifted before idle delay: %f", o.Yaw)
	}

	// Past the delay the yaw drifts at the auto rate.
	for i := 0; i < 600; i++ {
		o.Update(1.0 / 60.0)
	}
	if o.Yaw <= 0 {
		t.Errorf("auto-orbit did not advance yaw: %f", o.Yaw)
	}

	// Input resets the idle timer.
	o.Rotate(0.01, 0)
	yawBefore := o.Yaw
	o.Update(1.0 / 60.0)
	o.Update(1.0 / 60.0)
	drift := o.Yaw - yawBefore
	if drift > 0.02 {
		t.Errorf("auto-orbit kept running right after input: drift %f", drift)
	}
}

func TestZoomIgnoresNonPositiveFactor(t *testing.T) {
	o := New(testParams())
	o.Zoom(0)
	o.Zoom(-2)
	for i := 0; i < 60; i++ {
		o.Update(1.0 / 60.0)
	}
	if math.Abs(float64(o.Distance-20)) > 0.001 {
		t.Errorf("distance changed on non-positive zoom: %f", o.Distance)
	}
}
