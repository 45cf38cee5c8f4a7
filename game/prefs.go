package game

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/evergreen/systems"
)

// Storage keys for session preferences.
const (
	prefsObject   = "session"
	prefsProperty = "state"
)

// sessionPrefs is the slice of scene state carried across runs: the last mode,
// the snow switch, and where the camera was left.
type sessionPrefs struct {
	Formed   bool    `yaml:"formed"`
	Snow     bool    `yaml:"snow"`
	Yaw      float32 `yaml:"yaw"`
	Pitch    float32 `yaml:"pitch"`
	Distance float32 `yaml:"distance"`
}

// prefStore persists session preferences through gdata. A nil manager means
// degraded mode: the scene runs fine, nothing survives a restart.
type prefStore struct {
	manager *gdata.Manager
}

// openPrefStore opens the platform data directory. Failure is not fatal.
func openPrefStore() *prefStore {
	manager, err := gdata.Open(gdata.Config{AppName: "evergreen"})
	if err != nil {
		slog.Warn("preferences unavailable, running without persistence", "error", err)
		return &prefStore{}
	}
	return &prefStore{manager: manager}
}

// load returns the saved preferences, or ok=false when none exist.
func (s *prefStore) load() (sessionPrefs, bool, error) {
	var p sessionPrefs
	if s.manager == nil || !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return p, false, nil
	}
	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return p, false, fmt.Errorf("loading preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, false, fmt.Errorf("parsing preferences: %w", err)
	}
	return p, true, nil
}

// save writes the preferences. A nil manager is a silent no-op.
func (s *prefStore) save(p sessionPrefs) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// loadPrefs applies saved session state at startup.
func (g *Game) loadPrefs() {
	g.prefs = openPrefStore()
	p, ok, err := g.prefs.load()
	if err != nil {
		slog.Warn("failed to load preferences", "error", err)
		return
	}
	if !ok {
		return
	}

	if p.Formed != (g.mode == systems.ModeFormed) {
		g.ToggleMode()
	}
	g.snowOn = p.Snow
	g.cam.Restore(p.Yaw, p.Pitch, p.Distance)
	slog.Info("preferences restored", "mode", g.mode.String(), "snow", g.snowOn)
}

// savePrefs snapshots the current session state. Called on state changes and
// on shutdown; both are cheap enough to write through immediately.
func (g *Game) savePrefs() {
	if g.prefs == nil {
		return
	}
	err := g.prefs.save(sessionPrefs{
		Formed:   g.mode == systems.ModeFormed,
		Snow:     g.snowOn,
		Yaw:      g.cam.Yaw,
		Pitch:    g.cam.Pitch,
		Distance: g.cam.Distance,
	})
	if err != nil {
		slog.Warn("failed to save preferences", "error", err)
	}
}
