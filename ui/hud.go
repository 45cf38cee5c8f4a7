// Package ui renders the heads-up display and the raygui control panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the HUD needs for one frame.
type HUDData struct {
	Mode          string
	Progress      float32
	OrnamentCount int
	FoliageCount  int
	PhotoCount    int
	FPS           int32
	Paused        bool
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("Evergreen", 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Mode: %s (%.0f%%) | Ornaments: %d | Foliage: %d | Photos: %d",
			data.Mode, data.Progress*100, data.OrnamentCount, data.FoliageCount, data.PhotoCount),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("FPS: %d", data.FPS), 10, 56, 16, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", data.ScreenWidth/2-40, 10, 20, rl.Yellow)
	}

	help := "space: toggle tree | n/p: photos | s: snow | tab: panel | drag: orbit | wheel: zoom"
	rl.DrawText(help, 10, data.ScreenHeight-24, 14, rl.Gray)
}
