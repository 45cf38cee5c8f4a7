package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ArchetypeTuning is one archetype's live spring constants, edited in place
// by the panel sliders.
type ArchetypeTuning struct {
	Name      string
	Stiffness *float32
	Damping   *float32
	Noise     *float32
}

// PanelActions carries the button presses out of a Draw call.
type PanelActions struct {
	ToggleMode  bool
	NextPhoto   bool
	PrevPhoto   bool
	SnowChanged bool
	SnowOn      bool
}

// Panel is the collapsible control panel on the right edge.
type Panel struct {
	visible bool
	x       float32
	width   float32
}

// NewPanel creates the panel anchored to the right edge of the screen.
func NewPanel(screenWidth int32) *Panel {
	const width = 260
	return &Panel{
		x:     float32(screenWidth) - width - 10,
		width: width,
	}
}

// Resize re-anchors the panel after a window resize.
func (p *Panel) Resize(screenWidth int32) {
	p.width = 260
	p.x = float32(screenWidth) - p.width - 10
}

// Toggle flips visibility.
func (p *Panel) Toggle() {
	p.visible = !p.visible
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.visible
}

// Contains reports whether a screen x coordinate lies on the visible panel
// strip. Used to keep slider drags from also rotating the camera.
func (p *Panel) Contains(x float32) bool {
	return p.visible && x >= p.x-10
}

// Draw renders the panel and returns the actions the user triggered this
// frame. tunings are edited through their pointers directly.
func (p *Panel) Draw(modeLabel string, snowOn bool, tunings []ArchetypeTuning) PanelActions {
	var actions PanelActions
	actions.SnowOn = snowOn
	if !p.visible {
		return actions
	}

	y := float32(80)
	rl.DrawRectangle(int32(p.x)-10, int32(y)-10, int32(p.width)+20,
		120+int32(len(tunings))*118, rl.NewColor(10, 12, 24, 215))

	if gui.Button(rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: 30},
		fmt.Sprintf("Toggle tree (%s)", modeLabel)) {
		actions.ToggleMode = true
	}
	y += 40

	if gui.Button(rl.Rectangle{X: p.x, Y: y, Width: p.width/2 - 5, Height: 26}, "< photo") {
		actions.PrevPhoto = true
	}
	if gui.Button(rl.Rectangle{X: p.x + p.width/2 + 5, Y: y, Width: p.width/2 - 5, Height: 26}, "photo >") {
		actions.NextPhoto = true
	}
	y += 36

	newSnow := gui.CheckBox(rl.Rectangle{X: p.x, Y: y, Width: 20, Height: 20}, "snow", snowOn)
	if newSnow != snowOn {
		actions.SnowChanged = true
		actions.SnowOn = newSnow
	}
	y += 34

	for _, tun := range tunings {
		rl.DrawText(tun.Name, int32(p.x), int32(y), 16, rl.RayWhite)
		y += 20

		rl.DrawText("stiffness", int32(p.x), int32(y)+2, 12, rl.Gray)
		*tun.Stiffness = gui.SliderBar(
			rl.Rectangle{X: p.x + 70, Y: y, Width: p.width - 110, Height: 16},
			"", fmt.Sprintf("%.3f", *tun.Stiffness),
			*tun.Stiffness, 0.005, 0.2,
		)
		y += 24

		rl.DrawText("damping", int32(p.x), int32(y)+2, 12, rl.Gray)
		*tun.Damping = gui.SliderBar(
			rl.Rectangle{X: p.x + 70, Y: y, Width: p.width - 110, Height: 16},
			"", fmt.Sprintf("%.3f", *tun.Damping),
			*tun.Damping, 0.5, 0.99,
		)
		y += 24

		rl.DrawText("drift", int32(p.x), int32(y)+2, 12, rl.Gray)
		*tun.Noise = gui.SliderBar(
			rl.Rectangle{X: p.x + 70, Y: y, Width: p.width - 110, Height: 16},
			"", fmt.Sprintf("%.2f", *tun.Noise),
			*tun.Noise, 0, 2,
		)
		y += 30
	}

	return actions
}
