package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/evergreen/components"
	"github.com/pthm-cable/evergreen/config"
	"github.com/pthm-cable/evergreen/systems"
)

func TestMain(m *testing.M) {
	if err := config.Init(""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newHeadless(t *testing.T) *Game {
	t.Helper()
	g, err := New(Options{Seed: 7, Headless: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// photosDir creates a directory with fake image files. Headless runs never
// load the pixels, only the listing matters.
func photosDir(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, string(rune('a'+i))+".png")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestHeadlessTicks(t *testing.T) {
	g := newHeadless(t)

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 10 {
		t.Errorf("tick = %d, want 10", g.Tick())
	}
	if g.simTime <= 0 {
		t.Errorf("simTime = %v, want > 0", g.simTime)
	}
}

func TestSpawnCounts(t *testing.T) {
	g := newHeadless(t)
	cfg := config.Cfg()

	want := 0
	for _, a := range cfg.Archetypes {
		want += a.Count
	}
	if got := g.ornamentCount(); got != want {
		t.Errorf("ornament count = %d, want %d", got, want)
	}
	if got := len(g.foliageLayout.Chaos); got != cfg.Foliage.Count {
		t.Errorf("foliage count = %d, want %d", got, cfg.Foliage.Count)
	}
	if got := len(g.photoBuffer); got != cfg.Photos.Slots {
		t.Errorf("photo slots = %d, want %d", got, cfg.Photos.Slots)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	g := newHeadless(t)
	start := g.Mode()

	g.ToggleMode()
	if g.Mode() == start {
		t.Fatal("mode unchanged after toggle")
	}
	g.ToggleMode()
	if g.Mode() != start {
		t.Errorf("mode = %v after double toggle, want %v", g.Mode(), start)
	}
}

func TestFormedConvergence(t *testing.T) {
	g := newHeadless(t)
	if g.Mode() != systems.ModeFormed {
		g.ToggleMode()
	}

	// 30 simulated seconds is far past every archetype's settling time.
	for i := 0; i < 30*60; i++ {
		g.UpdateHeadless()
	}

	query := g.ornamentFilter.Query()
	for query.Next() {
		anchors, kin, _, _, orn := query.Get()
		dist := kin.Pos.Sub(anchors.Target).Length()
		if dist > 0.05 {
			t.Fatalf("archetype %d ornament %d still %v from target", orn.Archetype, orn.Index, dist)
		}
	}
}

func TestProgressFollowsMode(t *testing.T) {
	g := newHeadless(t)
	if g.Mode() != systems.ModeFormed {
		g.ToggleMode()
	}

	for i := 0; i < 10*60; i++ {
		g.UpdateHeadless()
	}
	if p := g.Progress(); p < 0.99 {
		t.Errorf("progress = %v after 10s formed, want ~1", p)
	}

	g.ToggleMode()
	for i := 0; i < 10*60; i++ {
		g.UpdateHeadless()
	}
	if p := g.Progress(); p > 0.01 {
		t.Errorf("progress = %v after 10s chaos, want ~0", p)
	}
}

func TestFeaturedOnlyInChaos(t *testing.T) {
	cfg := config.Cfg()
	g, err := New(Options{Seed: 7, Headless: true, PhotosDir: photosDir(t, 4)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if g.Mode() != systems.ModeChaos {
		g.ToggleMode()
	}
	f := g.photoRing.Featured()
	if f < 0 || f >= cfg.Photos.Slots {
		t.Errorf("featured = %d in chaos, want [0,%d)", f, cfg.Photos.Slots)
	}

	g.ToggleMode()
	if f := g.photoRing.Featured(); f != -1 {
		t.Errorf("featured = %d when formed, want -1", f)
	}
}

func TestFeaturedNeedsPhotos(t *testing.T) {
	g := newHeadless(t) // no photos on disk
	if g.Mode() != systems.ModeFormed {
		g.ToggleMode()
	}
	g.ToggleMode()
	if f := g.photoRing.Featured(); f != -1 {
		t.Errorf("featured = %d with empty photo set, want -1", f)
	}
}

func TestFeaturedPanelReachesCamera(t *testing.T) {
	g, err := New(Options{Seed: 7, Headless: true, PhotosDir: photosDir(t, 4)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Mode() != systems.ModeChaos {
		g.ToggleMode()
	}
	featured := g.photoRing.Featured()
	if featured < 0 {
		t.Fatal("no featured slot rolled")
	}

	// Freeze the auto-orbit so the camera-front point holds still.
	g.cam.AutoRate = 0
	for i := 0; i < 20*60; i++ {
		g.UpdateHeadless()
	}

	cx, cy, cz := g.cam.Position()
	fx, fy, fz := g.cam.Forward()
	want := systems.FeaturedDestination(
		components.Vec3{X: cx, Y: cy, Z: cz},
		components.Vec3{X: fx, Y: fy, Z: fz},
		float32(config.Cfg().Photos.FeaturedDistance))

	query := g.photoFilter.Query()
	for query.Next() {
		_, kin, _, _, slot := query.Get()
		if slot.Slot != int32(featured) {
			continue
		}
		if dist := kin.Pos.Sub(want).Length(); dist > 0.2 {
			t.Errorf("featured panel %v from camera-front point", dist)
		}
	}
}

func TestSnowToggle(t *testing.T) {
	g := newHeadless(t)
	n := len(g.snowfall.Flakes)

	g.SetSnow(false)
	before := make([]systems.Snowflake, n)
	copy(before, g.snowfall.Flakes)
	g.UpdateHeadless()
	for i := range g.snowfall.Flakes {
		if g.snowfall.Flakes[i].Pos != before[i].Pos {
			t.Fatal("flakes moved while snow was off")
		}
	}

	g.SetSnow(true)
	g.UpdateHeadless()
	if len(g.snowfall.Flakes) != n {
		t.Errorf("flake pool resized: %d -> %d", n, len(g.snowfall.Flakes))
	}
}

func TestTelemetryWindowCut(t *testing.T) {
	dir := t.TempDir()
	g, err := New(Options{Seed: 7, Headless: true, OutputDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Enough ticks to pass the stats window at the fixed timestep.
	n := int(config.Cfg().Telemetry.StatsWindow*60) + 5
	for i := 0; i < n; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatalf("reading stats.csv: %v", err)
	}
	if len(data) == 0 {
		t.Error("stats.csv is empty")
	}
}
