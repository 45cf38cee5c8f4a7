package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evergreen/camera"
	"github.com/pthm-cable/evergreen/components"
	"github.com/pthm-cable/evergreen/config"
	"github.com/pthm-cable/evergreen/renderer"
	"github.com/pthm-cable/evergreen/systems"
	"github.com/pthm-cable/evergreen/telemetry"
	"github.com/pthm-cable/evergreen/ui"
)

// DT is the fixed timestep used by headless ticks.
const DT = 1.0 / 60.0

// Options controls game initialization.
type Options struct {
	Seed      int64
	Headless  bool
	LogStats  bool
	OutputDir string
	PhotosDir string
}

// DefaultOptions returns the default game options.
func DefaultOptions() Options {
	return Options{
		Seed: 42,
	}
}

// archetypeRuntime holds the live tuning state for one ornament archetype.
// Spring parameters are mutated in place by the tuning panel sliders.
type archetypeRuntime struct {
	name     string
	shape    string
	spring   systems.SpringParams
	scaleAmp float32
	freq     float32
	snapDown bool
	count    int
	tint     [4]uint8
}

// Game holds the complete scene state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	opts  Options

	ornamentMapper *ecs.Map5[
		components.Anchors,
		components.Kinetics,
		components.Spin,
		components.Shimmer,
		components.Ornament,
	]
	ornamentFilter *ecs.Filter5[
		components.Anchors,
		components.Kinetics,
		components.Spin,
		components.Shimmer,
		components.Ornament,
	]
	photoMapper *ecs.Map5[
		components.Anchors,
		components.Kinetics,
		components.Spin,
		components.Shimmer,
		components.PhotoSlot,
	]
	photoFilter *ecs.Filter5[
		components.Anchors,
		components.Kinetics,
		components.Spin,
		components.Shimmer,
		components.PhotoSlot,
	]

	// Simulation state
	mode          systems.Mode
	progress      *systems.Progress
	archetypes    []archetypeRuntime
	photoRing     *systems.PhotoRing
	photoRefs     []string
	snowfall      *systems.Snowfall
	snowOn        bool
	foliageLayout *systems.FoliageLayout
	star          starState
	starT         systems.Transform
	cam           *camera.Orbit

	// Per-frame transform output, consumed by the instanced renderers.
	ornBuffers  []systems.TransformBuffer
	photoBuffer systems.TransformBuffer

	// Rendering (nil in headless mode)
	foliage  *renderer.Foliage
	batches  []*renderer.OrnamentBatch
	panels   *renderer.PhotoPanels
	snowDraw *renderer.Snow
	starDraw *renderer.Star
	backdrop *renderer.Backdrop
	hud      *ui.HUD
	panel    *ui.Panel
	tunings  []ui.ArchetypeTuning
	prefs    *prefStore

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	tick    int64
	simTime float32
	paused  bool

	width, height float32
}

// starState tracks the tree-topper, which springs between its chaos scatter
// point and the cone apex like any ornament but lives outside the ECS.
type starState struct {
	anchors components.Anchors
	kin     components.Kinetics
	shimmer components.Shimmer
	mass    float32
	spring  systems.SpringParams
}

// New creates a game from options. In headless mode no raylib resources are
// touched, so the game can tick in tests and batch runs.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world:  world,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		opts:   opts,
		width:  float32(cfg.Screen.Width),
		height: float32(cfg.Screen.Height),
		mode:   systems.ModeChaos,
		ornamentMapper: ecs.NewMap5[
			components.Anchors,
			components.Kinetics,
			components.Spin,
			components.Shimmer,
			components.Ornament,
		](world),
		ornamentFilter: ecs.NewFilter5[
			components.Anchors,
			components.Kinetics,
			components.Spin,
			components.Shimmer,
			components.Ornament,
		](world),
		photoMapper: ecs.NewMap5[
			components.Anchors,
			components.Kinetics,
			components.Spin,
			components.Shimmer,
			components.PhotoSlot,
		](world),
		photoFilter: ecs.NewFilter5[
			components.Anchors,
			components.Kinetics,
			components.Spin,
			components.Shimmer,
			components.PhotoSlot,
		](world),
	}

	if cfg.Scene.StartFormed {
		g.mode = systems.ModeFormed
	}
	g.progress = systems.NewProgress(float32(cfg.Foliage.ProgressRate), g.mode)
	g.photoRing = systems.NewPhotoRing(g.rng)
	g.snowOn = cfg.Snow.Enabled
	g.snowfall = systems.NewSnowfall(g.rng, opts.Seed, systems.SnowParams{
		Count:     cfg.Snow.Count,
		Radius:    float32(cfg.Snow.Radius),
		Top:       float32(cfg.Snow.Top),
		Floor:     float32(cfg.Snow.Floor),
		MinFall:   float32(cfg.Snow.MinFall),
		MaxFall:   float32(cfg.Snow.MaxFall),
		WindScale: float32(cfg.Snow.WindScale),
		WindSpeed: float32(cfg.Snow.WindSpeed),
		WindAmp:   float32(cfg.Snow.WindAmp),
		FlakeSize: float32(cfg.Snow.FlakeSize),
	})
	g.cam = camera.New(camera.Params{
		Pitch:          float32(cfg.Camera.Pitch),
		Distance:       float32(cfg.Camera.Distance),
		TargetY:        float32(cfg.Camera.TargetHeight),
		MinPitch:       float32(cfg.Camera.MinPitch),
		MaxPitch:       float32(cfg.Camera.MaxPitch),
		MinDistance:    float32(cfg.Camera.MinDistance),
		MaxDistance:    float32(cfg.Camera.MaxDistance),
		Smoothing:      float32(cfg.Camera.Smoothing),
		AutoOrbitRate:  float32(cfg.Camera.AutoOrbitRate),
		AutoOrbitDelay: float32(cfg.Camera.AutoOrbitDelay),
	})

	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow)
	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if err := om.WriteConfig(cfg); err != nil {
			slog.Warn("failed to snapshot config", "error", err)
		}
		g.output = om
	}

	g.spawnScene()
	if g.mode == systems.ModeChaos && g.photoRing.Len() > 0 {
		g.photoRing.RollFeatured(cfg.Photos.Slots)
	}

	if !opts.Headless {
		if err := g.initRendering(); err != nil {
			return nil, err
		}
		g.loadPrefs()
	}

	return g, nil
}

// Mode returns the current scene mode.
func (g *Game) Mode() systems.Mode { return g.mode }

// Progress returns the smoothed foliage transition value in [0, 1].
func (g *Game) Progress() float32 { return g.progress.Value() }

// Tick returns the number of simulation steps taken.
func (g *Game) Tick() int64 { return g.tick }

// Unload releases GPU resources and flushes telemetry output.
func (g *Game) Unload() {
	g.savePrefs()
	if g.foliage != nil {
		g.foliage.Unload()
	}
	for _, b := range g.batches {
		b.Unload()
	}
	if g.panels != nil {
		g.panels.Unload()
	}
	if g.snowDraw != nil {
		g.snowDraw.Unload()
	}
	if len(g.batches) > 0 {
		renderer.UnloadOrnamentShader()
	}
	if g.output != nil {
		g.output.Close()
	}
}
