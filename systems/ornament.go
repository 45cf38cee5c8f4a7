package systems

import (
	"math"

	"github.com/pthm-cable/evergreen/components"
)

// SpringParams holds the per-archetype spring constants. These are design
// constants from config, not derived values; stiffness and damping must both
// be in (0,1) for the entity to settle.
type SpringParams struct {
	Stiffness float32
	Damping   float32
	Noise     float32 // chaos drift velocity amplitude
	MaxSpeed  float32 // defensive velocity clamp, units/s
}

// StepSpring advances one entity one frame toward dest.
//
// The pull is accumulated into velocity directly (not a true integrated
// spring), position integrates the velocity over the clamped dt, and damping
// is applied last so the next frame starts from a decayed velocity. drift adds
// the chaos-mode pseudo-noise wander keyed by elapsed time and the entity's
// phase.
func StepSpring(kin *components.Kinetics, dest components.Vec3, mass float32, p SpringParams, drift bool, t, phase, dt float32) {
	dt = ClampDT(dt)

	pull := dest.Sub(kin.Pos).Scale(p.Stiffness / mass)
	kin.Vel = kin.Vel.Add(pull)

	if drift && p.Noise > 0 {
		kin.Vel = kin.Vel.Add(driftVelocity(t, phase, p.Noise))
	}

	if p.MaxSpeed > 0 {
		if speed := kin.Vel.Length(); speed > p.MaxSpeed {
			kin.Vel = kin.Vel.Scale(p.MaxSpeed / speed)
		}
	}

	kin.Pos = kin.Pos.Add(kin.Vel.Scale(dt))
	kin.Vel = kin.Vel.Scale(p.Damping)
}

// driftVelocity is the gentle chaos-mode wander. Sine and cosine of offset
// copies of the same clock keep the motion smooth and loop-free enough at
// this amplitude.
func driftVelocity(t, phase, amp float32) components.Vec3 {
	a := float64(t*0.7 + phase)
	b := float64(t*0.53 + phase*1.7)
	return components.Vec3{
		X: float32(math.Sin(a)) * amp,
		Y: float32(math.Cos(b)) * amp * 0.6,
		Z: float32(math.Sin(b+1.3)) * amp,
	}
}

// StepSpin advances an entity's orientation. Chaos mode tumbles on all three
// axes at the entity's generated rates; formed mode decays to a slow Y spin.
// snapDown forces the hanging orientation (icicles) as soon as the tree forms.
func StepSpin(spin *components.Spin, mode Mode, snapDown bool, dt float32) {
	dt = ClampDT(dt)
	if mode == ModeChaos {
		spin.Euler = spin.Euler.Add(spin.Rate.Scale(dt))
		return
	}
	if snapDown {
		spin.Euler = components.Vec3{X: math.Pi, Y: spin.Euler.Y, Z: 0}
		return
	}
	// Ease X/Z back upright while the Y spin keeps turning.
	spin.Euler.X *= 1 - 2*dt
	spin.Euler.Z *= 1 - 2*dt
	spin.Euler.Y += spin.FormedRate * dt
}

// Breathe returns the breathing scale for frame time t. The entity index
// offsets the phase so identical ornaments pulse out of step.
func Breathe(base, amp, freq, t float32, idx int32) float32 {
	return base * (1 + amp*float32(math.Sin(float64(freq*t)+float64(idx)*0.7)))
}
