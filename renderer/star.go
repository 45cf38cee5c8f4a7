package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evergreen/systems"
)

// Star draws the apex star: a warm core sphere with a fainter halo that
// carries the pulse.
type Star struct {
	core rl.Color
	halo rl.Color
}

// NewStar creates the star renderer.
func NewStar() *Star {
	return &Star{
		core: rl.NewColor(255, 224, 120, 255),
		halo: rl.NewColor(255, 236, 160, 90),
	}
}

// Draw renders the star at its current transform. Must run inside BeginMode3D.
func (s *Star) Draw(t systems.Transform) {
	pos := rl.Vector3{X: t.Pos.X, Y: t.Pos.Y, Z: t.Pos.Z}
	rl.DrawSphere(pos, t.Scale*0.5, s.core)
	rl.DrawSphere(pos, t.Scale*0.85, s.halo)
}
