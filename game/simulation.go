package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/evergreen/components"
	"github.com/pthm-cable/evergreen/config"
	"github.com/pthm-cable/evergreen/systems"
	"github.com/pthm-cable/evergreen/telemetry"
)

// UpdateHeadless advances one fixed-timestep tick with no input or rendering.
// Batch runs and tests drive the game exclusively through this.
func (g *Game) UpdateHeadless() {
	g.perf.StartTick()
	g.perf.StartPhase(telemetry.PhaseCamera)
	g.cam.Update(DT)
	g.step(DT)
	g.perf.EndTick()
	g.collector.RecordFrame(DT * 1000)
	g.flushTelemetry()
}

// step runs the simulation phases for one tick. Interactive and headless
// updates share this path so their per-tick behavior is identical.
func (g *Game) step(dt float32) {
	g.perf.StartPhase(telemetry.PhaseProgress)
	g.progress.Step(g.mode, dt)

	g.perf.StartPhase(telemetry.PhaseOrnaments)
	g.updateOrnaments(dt)

	g.perf.StartPhase(telemetry.PhasePhotos)
	g.updatePhotos(dt)
	g.updateStar(dt)

	g.perf.StartPhase(telemetry.PhaseSnow)
	if g.snowOn {
		g.snowfall.Step(g.simTime, dt)
	}

	g.tick++
	g.simTime += systems.ClampDT(dt)
}

// updateOrnaments springs every ornament toward its destination for the
// current mode and writes the resulting transforms into the per-archetype
// buffers the instanced renderer reads.
func (g *Game) updateOrnaments(dt float32) {
	chaos := g.mode == systems.ModeChaos

	query := g.ornamentFilter.Query()
	for query.Next() {
		anchors, kin, spin, shimmer, orn := query.Get()
		arch := &g.archetypes[orn.Archetype]

		dest := anchors.Target
		if chaos {
			dest = anchors.Chaos
		}
		systems.StepSpring(kin, dest, orn.Mass, arch.spring, chaos, g.simTime, shimmer.Phase, dt)
		systems.StepSpin(spin, g.mode, arch.snapDown, dt)
		shimmer.Scale = systems.Breathe(shimmer.ScaleBase, arch.scaleAmp, arch.freq, g.simTime, orn.Index)

		g.ornBuffers[orn.Archetype].Set(orn.Index, systems.Transform{
			Pos:   kin.Pos,
			Euler: spin.Euler,
			Scale: shimmer.Scale,
		})
	}
}

// updatePhotos springs the photo panels. In chaos mode one slot may be
// featured: it heads for a point in front of the camera and turns to face it,
// with drift suppressed so the image is readable. Formed panels turn outward
// from the trunk.
func (g *Game) updatePhotos(dt float32) {
	cfg := config.Cfg()
	chaos := g.mode == systems.ModeChaos
	featured := g.photoRing.Featured()

	cx, cy, cz := g.cam.Position()
	fx, fy, fz := g.cam.Forward()
	camPos := components.Vec3{X: cx, Y: cy, Z: cz}
	featuredDest := systems.FeaturedDestination(camPos,
		components.Vec3{X: fx, Y: fy, Z: fz}, float32(cfg.Photos.FeaturedDistance))

	params := systems.SpringParams{
		Stiffness: float32(cfg.Photos.Stiffness),
		Damping:   float32(cfg.Photos.Damping),
		Noise:     float32(cfg.Photos.Noise),
		MaxSpeed:  float32(cfg.Photos.MaxSpeed),
	}
	mass := float32(cfg.Photos.Mass)

	query := g.photoFilter.Query()
	for query.Next() {
		anchors, kin, spin, shimmer, slot := query.Get()

		isFeatured := chaos && featured >= 0 && slot.Slot == int32(featured)
		dest := anchors.Target
		if chaos {
			dest = anchors.Chaos
		}
		if isFeatured {
			dest = featuredDest
		}

		systems.StepSpring(kin, dest, mass, params, chaos && !isFeatured, g.simTime, shimmer.Phase, dt)

		switch {
		case isFeatured:
			facePoint(spin, kin.Pos, camPos, dt)
		case !chaos:
			// Panels on the tree face outward from the trunk axis.
			out := kin.Pos
			out.Y = 0
			facePoint(spin, components.Vec3{}, out.Scale(2), dt)
			spin.Euler.X = easeAngle(spin.Euler.X, 0, dt)
			spin.Euler.Z = easeAngle(spin.Euler.Z, 0, dt)
		default:
			systems.StepSpin(spin, g.mode, false, dt)
		}

		g.photoBuffer.Set(slot.Slot, systems.Transform{
			Pos:   kin.Pos,
			Euler: spin.Euler,
			Scale: shimmer.Scale,
		})
	}
}

// updateStar springs the topper and pulses its glow.
func (g *Game) updateStar(dt float32) {
	cfg := config.Cfg()
	chaos := g.mode == systems.ModeChaos

	dest := g.star.anchors.Target
	if chaos {
		dest = g.star.anchors.Chaos
	}
	systems.StepSpring(&g.star.kin, dest, g.star.mass, g.star.spring, chaos, g.simTime, 0, dt)
	g.star.shimmer.Scale = systems.Breathe(g.star.shimmer.ScaleBase,
		float32(cfg.Star.PulseAmp), float32(cfg.Star.PulseFreq), g.simTime, 0)

	g.starT = systems.Transform{Pos: g.star.kin.Pos, Scale: g.star.shimmer.Scale}
}

// ToggleMode flips between the formed tree and the chaos scatter. Entering
// chaos rolls a featured photo slot; returning to the tree clears it.
func (g *Game) ToggleMode() {
	if g.mode == systems.ModeFormed {
		g.mode = systems.ModeChaos
		n := config.Cfg().Photos.Slots
		if g.photoRing.Len() == 0 {
			n = 0
		}
		g.photoRing.RollFeatured(n)
	} else {
		g.mode = systems.ModeFormed
		g.photoRing.ClearFeatured()
	}
	if g.backdrop != nil {
		g.backdrop.SetFormed(g.mode == systems.ModeFormed)
	}
	g.collector.RecordToggle()
	slog.Info("mode toggled", "mode", g.mode.String(), "featured", g.photoRing.Featured())
}

// NextPhoto advances the slideshow one step.
func (g *Game) NextPhoto() {
	g.photoRing.Next()
	g.collector.RecordPhotoStep()
}

// PrevPhoto steps the slideshow back.
func (g *Game) PrevPhoto() {
	g.photoRing.Prev()
	g.collector.RecordPhotoStep()
}

// SetSnow enables or disables the snowfall. Flakes freeze in place when off.
func (g *Game) SetSnow(on bool) {
	g.snowOn = on
}

// flushTelemetry cuts a stats window when due and routes it to the log and
// the CSV output.
func (g *Game) flushTelemetry() {
	if !g.collector.WindowReady(float64(g.simTime)) {
		return
	}
	w := g.collector.Cut(g.tick, float64(g.simTime))
	w.Mode = g.mode.String()
	w.Progress = float64(g.progress.Value())
	w.Featured = g.photoRing.Featured()
	w.OrnamentCount = g.ornamentCount()
	w.FoliageCount = len(g.foliageLayout.Chaos)
	w.SnowCount = len(g.snowfall.Flakes)

	if g.opts.LogStats {
		w.Log()
		g.perf.Stats().Log()
	}
	if g.output != nil {
		if err := g.output.WriteStats(w); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
	}
}

// facePoint eases the spin euler toward looking from pos at the given point.
func facePoint(spin *components.Spin, pos, at components.Vec3, dt float32) {
	d := at.Sub(pos)
	horiz := float32(math.Sqrt(float64(d.X*d.X + d.Z*d.Z)))
	if horiz < 1e-5 && d.Y > -1e-5 && d.Y < 1e-5 {
		return
	}
	yaw := float32(math.Atan2(float64(d.X), float64(d.Z)))
	pitch := float32(math.Atan2(float64(-d.Y), float64(horiz)))

	spin.Euler.Y = easeAngle(spin.Euler.Y, yaw, dt)
	spin.Euler.X = easeAngle(spin.Euler.X, pitch, dt)
	spin.Euler.Z = easeAngle(spin.Euler.Z, 0, dt)
}

// easeAngle moves current toward target along the short way around, with an
// exponential ease so turning slows as the panel lines up.
func easeAngle(current, target, dt float32) float32 {
	delta := normalizeAngle(target - current)
	k := 6 * dt
	if k > 1 {
		k = 1
	}
	return current + delta*k
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
