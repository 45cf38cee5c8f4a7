package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Backdrop draws the night-sky gradient behind the 3D pass and the ground
// disc under the tree. The gradient warms as the tree forms, driven by a
// tween restarted on every mode change.
type Backdrop struct {
	width  int32
	height int32

	warmth    float32 // 0 = chaos night, 1 = formed glow
	warmTween *gween.Tween
}

// NewBackdrop creates a backdrop for the given screen size.
func NewBackdrop(width, height int32) *Backdrop {
	return &Backdrop{width: width, height: height}
}

// Resize updates the gradient extent after a window resize.
func (b *Backdrop) Resize(width, height int32) {
	b.width = width
	b.height = height
}

// SetFormed retargets the warmth tween toward the given mode.
func (b *Backdrop) SetFormed(formed bool) {
	target := float32(0)
	if formed {
		target = 1
	}
	b.warmTween = gween.New(b.warmth, target, 2.5, ease.OutCubic)
}

// Update advances the warmth tween.
func (b *Backdrop) Update(dt float32) {
	if b.warmTween == nil {
		return
	}
	v, done := b.warmTween.Update(dt)
	b.warmth = v
	if done {
		b.warmTween = nil
	}
}

// DrawSky paints the gradient. Must run before BeginMode3D.
func (b *Backdrop) DrawSky() {
	top := lerpColor(rl.NewColor(8, 10, 26, 255), rl.NewColor(20, 18, 40, 255), b.warmth)
	bottom := lerpColor(rl.NewColor(16, 22, 44, 255), rl.NewColor(52, 38, 60, 255), b.warmth)
	rl.DrawRectangleGradientV(0, 0, b.width, b.height, top, bottom)
}

// DrawGround paints the snow disc under the tree. Must run inside BeginMode3D.
func (b *Backdrop) DrawGround(radius float32) {
	rl.DrawCylinder(rl.Vector3{Y: -0.12}, radius, radius*1.05, 0.12, 48,
		rl.NewColor(235, 240, 248, 255))
}

func lerpColor(a, c rl.Color, t float32) rl.Color {
	return rl.NewColor(
		uint8(float32(a.R)+(float32(c.R)-float32(a.R))*t),
		uint8(float32(a.G)+(float32(c.G)-float32(a.G))*t),
		uint8(float32(a.B)+(float32(c.B)-float32(a.B))*t),
		255,
	)
}
