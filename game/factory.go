package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/evergreen/components"
	"github.com/pthm-cable/evergreen/config"
	"github.com/pthm-cable/evergreen/renderer"
	"github.com/pthm-cable/evergreen/systems"
)

// spawnScene creates every entity in the scene: the ornament archetypes, the
// photo panels, the foliage layout, and the star. Entity counts are fixed for
// the lifetime of the run; nothing spawns or dies afterwards.
func (g *Game) spawnScene() {
	cfg := config.Cfg()

	treeRadius := float32(cfg.Scene.TreeRadius)
	treeHeight := float32(cfg.Scene.TreeHeight)
	chaosRadius := float32(cfg.Scene.ChaosRadius)
	chaosYOff := float32(cfg.Scene.ChaosYOffset)

	g.archetypes = make([]archetypeRuntime, len(cfg.Archetypes))
	g.ornBuffers = make([]systems.TransformBuffer, len(cfg.Archetypes))

	for i := range cfg.Archetypes {
		a := &cfg.Archetypes[i]
		g.archetypes[i] = archetypeRuntime{
			name:  a.Name,
			shape: a.Shape,
			spring: systems.SpringParams{
				Stiffness: float32(a.Stiffness),
				Damping:   float32(a.Damping),
				Noise:     float32(a.Noise),
				MaxSpeed:  float32(a.MaxSpeed),
			},
			scaleAmp: float32(a.ScaleAmp),
			freq:     float32(a.ScaleFreq),
			snapDown: a.SnapDown,
			count:    a.Count,
			tint:     a.Color,
		}
		g.ornBuffers[i] = systems.NewTransformBuffer(a.Count)
		g.spawnArchetype(uint8(i), a, chaosRadius, chaosYOff, treeRadius, treeHeight)
	}

	g.spawnPhotos(cfg, chaosRadius, chaosYOff, treeRadius, treeHeight)

	g.foliageLayout = systems.GenerateFoliage(g.rng, systems.FoliageParams{
		Count:        cfg.Foliage.Count,
		ChaosRadius:  chaosRadius,
		ChaosYOffset: chaosYOff,
		BaseRadius:   treeRadius,
		Height:       treeHeight,
	})

	g.spawnStar(cfg, chaosRadius, chaosYOff, treeHeight)

	slog.Info("scene spawned",
		"ornaments", g.ornamentCount(),
		"photos", g.photoRing.Len(),
		"foliage", cfg.Foliage.Count,
		"archetypes", len(cfg.Archetypes))
}

// spawnArchetype scatters one ornament category and hangs it on its band of
// the tree. Each entity starts at its chaos anchor with zero velocity.
func (g *Game) spawnArchetype(id uint8, a *config.ArchetypeConfig, chaosRadius, chaosYOff, treeRadius, treeHeight float32) {
	chaos := systems.SphereScatter(g.rng, a.Count, chaosRadius, chaosYOff)
	// Ornaments hang slightly proud of the foliage surface.
	targets := systems.ConeSurface(g.rng, a.Count, treeRadius*1.04, treeHeight,
		float32(a.BandLow), float32(a.BandHigh), a.Count > 48, 0.1)

	for i := 0; i < a.Count; i++ {
		anchors := components.Anchors{Chaos: chaos[i], Target: targets[i]}
		kin := components.Kinetics{Pos: chaos[i]}
		spin := components.Spin{
			Euler: components.Vec3{
				X: g.rng.Float32() * 2 * math.Pi,
				Y: g.rng.Float32() * 2 * math.Pi,
				Z: g.rng.Float32() * 2 * math.Pi,
			},
			Rate: components.Vec3{
				X: (g.rng.Float32()*2 - 1) * float32(a.SpinRate),
				Y: (g.rng.Float32()*2 - 1) * float32(a.SpinRate),
				Z: (g.rng.Float32()*2 - 1) * float32(a.SpinRate),
			},
			FormedRate: float32(a.FormedSpin),
		}
		shimmer := components.Shimmer{
			Phase:     g.rng.Float32() * 2 * math.Pi,
			ScaleBase: float32(a.ScaleBase),
			Scale:     float32(a.ScaleBase),
		}
		orn := components.Ornament{
			Archetype: id,
			Index:     int32(i),
			Mass:      float32(a.Mass),
		}
		g.ornamentMapper.NewEntity(&anchors, &kin, &spin, &shimmer, &orn)
	}
}

// spawnPhotos creates the photo panel entities and points the ring at the
// images found on disk. The entities simulate even with an empty image list;
// the renderer simply draws nothing for them until references exist.
func (g *Game) spawnPhotos(cfg *config.Config, chaosRadius, chaosYOff, treeRadius, treeHeight float32) {
	n := cfg.Photos.Slots
	g.photoBuffer = systems.NewTransformBuffer(n)

	dir := cfg.Photos.Dir
	if g.opts.PhotosDir != "" {
		dir = g.opts.PhotosDir
	}
	g.photoRefs = renderer.ScanPhotoDir(dir)
	g.photoRing.SetRefs(g.photoRefs)

	chaos := systems.SphereScatter(g.rng, n, chaosRadius, chaosYOff)
	// Panels sit further out than ornaments so they are not buried in foliage,
	// in a mid band where the cone is wide enough to hold them.
	targets := systems.ConeSurface(g.rng, n, treeRadius*1.15, treeHeight, 0.25, 0.7, false, 0)

	for i := 0; i < n; i++ {
		anchors := components.Anchors{Chaos: chaos[i], Target: targets[i]}
		kin := components.Kinetics{Pos: chaos[i]}
		spin := components.Spin{
			Rate: components.Vec3{
				X: (g.rng.Float32()*2 - 1) * 0.8,
				Y: (g.rng.Float32()*2 - 1) * 0.8,
				Z: (g.rng.Float32()*2 - 1) * 0.8,
			},
		}
		shimmer := components.Shimmer{
			Phase:     g.rng.Float32() * 2 * math.Pi,
			ScaleBase: 1,
			Scale:     1,
		}
		slot := components.PhotoSlot{Slot: int32(i)}
		g.photoMapper.NewEntity(&anchors, &kin, &spin, &shimmer, &slot)
	}
}

// spawnStar places the tree topper. Its chaos anchor is a point above the
// scatter cloud; its target is the cone apex plus a small lift.
func (g *Game) spawnStar(cfg *config.Config, chaosRadius, chaosYOff, treeHeight float32) {
	chaos := components.Vec3{
		X: (g.rng.Float32()*2 - 1) * chaosRadius * 0.5,
		Y: chaosYOff + chaosRadius*0.8,
		Z: (g.rng.Float32()*2 - 1) * chaosRadius * 0.5,
	}
	g.star = starState{
		anchors: components.Anchors{
			Chaos:  chaos,
			Target: components.Vec3{Y: treeHeight + float32(cfg.Star.Scale)*0.6},
		},
		kin: components.Kinetics{Pos: chaos},
		shimmer: components.Shimmer{
			ScaleBase: float32(cfg.Star.Scale),
			Scale:     float32(cfg.Star.Scale),
		},
		mass: float32(cfg.Star.Mass),
		spring: systems.SpringParams{
			Stiffness: float32(cfg.Star.Stiffness),
			Damping:   float32(cfg.Star.Damping),
		},
	}
}

// ornamentCount sums the archetype counts.
func (g *Game) ornamentCount() int {
	total := 0
	for i := range g.archetypes {
		total += g.archetypes[i].count
	}
	return total
}
