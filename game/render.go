package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evergreen/config"
	"github.com/pthm-cable/evergreen/renderer"
	"github.com/pthm-cable/evergreen/systems"
	"github.com/pthm-cable/evergreen/telemetry"
	"github.com/pthm-cable/evergreen/ui"
)

// initRendering builds the GPU-side half of the scene. Requires an open
// raylib window; headless games never reach this.
func (g *Game) initRendering() error {
	cfg := config.Cfg()

	g.backdrop = renderer.NewBackdrop(int32(g.width), int32(g.height))
	g.backdrop.SetFormed(g.mode == systems.ModeFormed)

	g.foliage = renderer.NewFoliage(g.foliageLayout, renderer.FoliageColors{
		Base:         rl.NewColor(26, 94, 48, 255),
		Tip:          rl.NewColor(236, 210, 120, 255),
		TipThreshold: 1 - float32(cfg.Foliage.TipFraction),
	}, float32(cfg.Foliage.WindAmp), float32(cfg.Foliage.PointScale))

	g.batches = make([]*renderer.OrnamentBatch, len(g.archetypes))
	for i := range g.archetypes {
		a := &g.archetypes[i]
		tint := rl.NewColor(a.tint[0], a.tint[1], a.tint[2], a.tint[3])
		g.batches[i] = renderer.NewOrnamentBatch(a.shape, a.count, tint)
	}

	g.panels = renderer.NewPhotoPanels(g.photoRefs, float32(cfg.Photos.PanelSize))
	g.snowDraw = renderer.NewSnow()
	g.starDraw = renderer.NewStar()
	g.hud = ui.NewHUD()
	g.panel = ui.NewPanel(int32(g.width))

	g.tunings = make([]ui.ArchetypeTuning, len(g.archetypes))
	for i := range g.archetypes {
		a := &g.archetypes[i]
		g.tunings[i] = ui.ArchetypeTuning{
			Name:      a.name,
			Stiffness: &a.spring.Stiffness,
			Damping:   &a.spring.Damping,
			Noise:     &a.spring.Noise,
		}
	}

	return nil
}

// Update advances one interactive frame: input, camera, then the shared
// simulation step unless paused.
func (g *Game) Update() {
	dt := rl.GetFrameTime()

	g.perf.StartTick()
	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.cam.Update(dt)
	g.backdrop.Update(dt)

	if !g.paused {
		g.step(dt)
	}
}

// Draw renders the frame and closes out the tick's telemetry.
func (g *Game) Draw() {
	cfg := config.Cfg()

	g.perf.StartPhase(telemetry.PhaseBuffers)
	for i, b := range g.batches {
		b.Sync(g.ornBuffers[i])
	}

	g.perf.StartPhase(telemetry.PhaseDraw)
	cam := g.rlCamera()

	rl.BeginDrawing()
	g.backdrop.DrawSky()

	rl.BeginMode3D(cam)
	g.backdrop.DrawGround(float32(cfg.Scene.TreeRadius) * 1.6)
	g.foliage.Draw(cam, g.progress.Value(), g.simTime)
	for _, b := range g.batches {
		b.Draw()
	}
	g.drawPhotos()
	g.starDraw.Draw(g.starT)
	if g.snowOn {
		g.snowDraw.Draw(cam, g.snowfall.Flakes)
	}
	rl.EndMode3D()

	g.drawUI()
	rl.EndDrawing()

	g.perf.EndTick()
	g.collector.RecordFrame(float64(rl.GetFrameTime()) * 1000)
	g.flushTelemetry()
}

// drawPhotos renders each panel slot with the texture the ring currently
// assigns to it.
func (g *Game) drawPhotos() {
	if g.panels.Count() == 0 {
		return
	}
	for slot := range g.photoBuffer {
		tex, ok := g.photoRing.RefIndex(slot)
		if !ok {
			continue
		}
		g.panels.Draw(tex, g.photoBuffer[slot])
	}
}

// drawUI renders the HUD and the control panel, then applies any actions the
// panel reported.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Mode:          g.mode.String(),
		Progress:      g.progress.Value(),
		OrnamentCount: g.ornamentCount(),
		FoliageCount:  len(g.foliageLayout.Chaos),
		PhotoCount:    g.photoRing.Len(),
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		ScreenWidth:   int32(g.width),
		ScreenHeight:  int32(g.height),
	})

	actions := g.panel.Draw(g.mode.String(), g.snowOn, g.tunings)
	if actions.ToggleMode {
		g.ToggleMode()
		g.savePrefs()
	}
	if actions.NextPhoto {
		g.NextPhoto()
	}
	if actions.PrevPhoto {
		g.PrevPhoto()
	}
	if actions.SnowChanged {
		g.SetSnow(actions.SnowOn)
		g.savePrefs()
	}
}

// rlCamera builds the raylib camera from the orbit state.
func (g *Game) rlCamera() rl.Camera3D {
	x, y, z := g.cam.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{X: g.cam.TargetX, Y: g.cam.TargetY, Z: g.cam.TargetZ},
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(config.Cfg().Camera.Fovy),
		Projection: rl.CameraPerspective,
	}
}
