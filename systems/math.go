// Package systems implements the raylib-free simulation: layout generation,
// the spring interpolator, progress smoothing, the photo ring, and snowfall.
// The game package wires these to the ECS world and the renderer.
package systems

import "github.com/pthm-cable/evergreen/components"

// MaxDT is the upper bound on a frame delta. Long frame gaps (window drag,
// debugger pause) would otherwise overshoot the integration step.
const MaxDT = 0.1

// Mode selects which layout every entity interpolates toward.
type Mode uint8

const (
	ModeChaos Mode = iota
	ModeFormed
)

func (m Mode) String() string {
	if m == ModeFormed {
		return "formed"
	}
	return "chaos"
}

// Transform is one entry in an archetype's shared transform buffer:
// everything the instanced renderer needs for a single entity.
type Transform struct {
	Pos   components.Vec3
	Euler components.Vec3
	Scale float32
}

// TransformBuffer is the per-archetype buffer the interpolator writes and the
// renderer reads. Written completely every frame before any draw call reads it.
type TransformBuffer []Transform

// NewTransformBuffer allocates a buffer for n entities.
func NewTransformBuffer(n int) TransformBuffer {
	return make(TransformBuffer, n)
}

// Set writes the transform for entity i.
func (b TransformBuffer) Set(i int32, t Transform) {
	b[i] = t
}

// ClampDT bounds a frame delta to MaxDT.
func ClampDT(dt float32) float32 {
	if dt > MaxDT {
		return MaxDT
	}
	if dt < 0 {
		return 0
	}
	return dt
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
