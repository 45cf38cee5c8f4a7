package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mouse sensitivity for orbit control.
const (
	dragYawRate   = 0.005 // rad per pixel
	dragPitchRate = 0.005
	zoomStep      = 0.1 // fraction of distance per wheel notch
)

// handleInput processes one frame of keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.ToggleMode()
		g.savePrefs()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.NextPhoto()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.PrevPhoto()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.SetSnow(!g.snowOn)
		g.savePrefs()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyPause) {
		g.paused = !g.paused
	}

	g.handleCameraInput()
}

// handleCameraInput maps mouse drag and wheel to the orbit camera. The panel
// strip is excluded so slider drags do not spin the camera.
func (g *Game) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !g.mouseOverPanel() {
		delta := rl.GetMouseDelta()
		g.cam.Rotate(-delta.X*dragYawRate, delta.Y*dragPitchRate)
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		g.cam.Zoom(1 - wheel*zoomStep)
	}
}

// mouseOverPanel reports whether the cursor sits on the visible control panel.
func (g *Game) mouseOverPanel() bool {
	return g.panel != nil && g.panel.Contains(rl.GetMousePosition().X)
}

// handleResize propagates window size changes to the screen-space renderers.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.width = float32(rl.GetScreenWidth())
	g.height = float32(rl.GetScreenHeight())
	g.backdrop.Resize(int32(g.width), int32(g.height))
	g.panel.Resize(int32(g.width))
}
