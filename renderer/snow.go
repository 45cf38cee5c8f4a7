package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evergreen/systems"
)

// Snow draws the snowfall pool as soft camera-facing billboards sharing one
// radial-gradient texture.
type Snow struct {
	texture rl.Texture2D
}

// NewSnow generates the flake texture.
func NewSnow() *Snow {
	img := rl.GenImageGradientRadial(32, 32, 0.2,
		rl.NewColor(255, 255, 255, 230), rl.NewColor(255, 255, 255, 0))
	defer rl.UnloadImage(img)
	return &Snow{texture: rl.LoadTextureFromImage(img)}
}

// Draw renders every flake. Must run inside BeginMode3D.
func (s *Snow) Draw(camera rl.Camera3D, flakes []systems.Snowflake) {
	for i := range flakes {
		f := &flakes[i]
		pos := rl.Vector3{X: f.Pos.X, Y: f.Pos.Y, Z: f.Pos.Z}
		rl.DrawBillboard(camera, s.texture, pos, f.Size, rl.White)
	}
}

// Unload releases the flake texture.
func (s *Snow) Unload() {
	rl.UnloadTexture(s.texture)
}
