// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen     ScreenConfig      `yaml:"screen"`
	Scene      SceneConfig       `yaml:"scene"`
	Foliage    FoliageConfig     `yaml:"foliage"`
	Photos     PhotosConfig      `yaml:"photos"`
	Snow       SnowConfig        `yaml:"snow"`
	Star       StarConfig        `yaml:"star"`
	Camera     CameraConfig      `yaml:"camera"`
	Telemetry  TelemetryConfig   `yaml:"telemetry"`
	Archetypes []ArchetypeConfig `yaml:"archetypes"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SceneConfig holds the shared geometry of the two layouts: the chaos
// scatter sphere and the formed tree cone.
type SceneConfig struct {
	ChaosRadius  float64 `yaml:"chaos_radius"`   // scatter sphere radius
	ChaosYOffset float64 `yaml:"chaos_y_offset"` // scatter sphere vertical offset
	TreeRadius   float64 `yaml:"tree_radius"`    // cone radius at the base
	TreeHeight   float64 `yaml:"tree_height"`    // cone height, base at y=0
	StartFormed  bool    `yaml:"start_formed"`   // initial mode
}

// FoliageConfig holds the device-interpolated particle cloud parameters.
type FoliageConfig struct {
	Count        int     `yaml:"count"`
	ProgressRate float64 `yaml:"progress_rate"` // exponential approach rate, 1/s
	PointScale   float64 `yaml:"point_scale"`   // billboard half-size in world units
	WindAmp      float64 `yaml:"wind_amp"`      // wind perturbation amplitude
	TipFraction  float64 `yaml:"tip_fraction"`  // top fraction of random values tinted as tips
}

// PhotosConfig holds the photo panel parameters.
type PhotosConfig struct {
	Dir              string  `yaml:"dir"`               // directory scanned for images at startup
	Slots            int     `yaml:"slots"`             // panels hung on the tree
	PanelSize        float64 `yaml:"panel_size"`        // world units, square
	FeaturedDistance float64 `yaml:"featured_distance"` // camera-front distance for the featured panel
	Mass             float64 `yaml:"mass"`
	Stiffness        float64 `yaml:"stiffness"`
	Damping          float64 `yaml:"damping"`
	Noise            float64 `yaml:"noise"`
	MaxSpeed         float64 `yaml:"max_speed"`
}

// SnowConfig holds snowfall parameters.
type SnowConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Count     int     `yaml:"count"`
	Radius    float64 `yaml:"radius"`
	Top       float64 `yaml:"top"`
	Floor     float64 `yaml:"floor"`
	MinFall   float64 `yaml:"min_fall"`
	MaxFall   float64 `yaml:"max_fall"`
	WindScale float64 `yaml:"wind_scale"`
	WindSpeed float64 `yaml:"wind_speed"`
	WindAmp   float64 `yaml:"wind_amp"`
	FlakeSize float64 `yaml:"flake_size"`
}

// StarConfig holds the apex star parameters.
type StarConfig struct {
	Scale     float64 `yaml:"scale"`
	PulseAmp  float64 `yaml:"pulse_amp"`
	PulseFreq float64 `yaml:"pulse_freq"`
	Mass      float64 `yaml:"mass"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance       float64 `yaml:"distance"`
	Pitch          float64 `yaml:"pitch"`
	TargetHeight   float64 `yaml:"target_height"`
	MinPitch       float64 `yaml:"min_pitch"`
	MaxPitch       float64 `yaml:"max_pitch"`
	MinDistance    float64 `yaml:"min_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
	Smoothing      float64 `yaml:"smoothing"`
	AutoOrbitRate  float64 `yaml:"auto_orbit_rate"`
	AutoOrbitDelay float64 `yaml:"auto_orbit_delay"`
	Fovy           float64 `yaml:"fovy"`
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged by the perf collector
}

// ArchetypeConfig defines one ornament category: its shape (sphere, cube or
// icicle), count, placement band on the tree (fractions of tree height), and
// the spring constants that give each category its own motion character.
// SpinRate is the chaos tumble in rad/s per axis; FormedSpin the slow Y spin
// once settled; SnapDown hangs the ornament straight down when formed.
// These are design constants, not derived values.
type ArchetypeConfig struct {
	Name       string   `yaml:"name"`
	Shape      string   `yaml:"shape"`
	Count      int      `yaml:"count"`
	Mass       float64  `yaml:"mass"`
	Stiffness  float64  `yaml:"stiffness"`
	Damping    float64  `yaml:"damping"`
	Noise      float64  `yaml:"noise"`
	MaxSpeed   float64  `yaml:"max_speed"`
	ScaleBase  float64  `yaml:"scale_base"`
	ScaleAmp   float64  `yaml:"scale_amp"`
	ScaleFreq  float64  `yaml:"scale_freq"`
	SpinRate   float64  `yaml:"spin_rate"`
	FormedSpin float64  `yaml:"formed_spin"`
	SnapDown   bool     `yaml:"snap_down"`
	BandLow    float64  `yaml:"band_low"`
	BandHigh   float64  `yaml:"band_high"`
	Color      [4]uint8 `yaml:"color"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	ScreenW32      float32
	ScreenH32      float32
	ArchetypeIndex map[string]uint8 // name -> index for archetype lookup
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation arithmetic cannot absorb.
// Masses and dimensions must be positive so no frame update divides by zero,
// and spring constants must sit in (0,1) or entities never settle.
func (c *Config) Validate() error {
	if c.Scene.TreeHeight <= 0 {
		return fmt.Errorf("config: scene.tree_height must be > 0, got %v", c.Scene.TreeHeight)
	}
	if c.Scene.TreeRadius <= 0 {
		return fmt.Errorf("config: scene.tree_radius must be > 0, got %v", c.Scene.TreeRadius)
	}
	if c.Scene.ChaosRadius <= 0 {
		return fmt.Errorf("config: scene.chaos_radius must be > 0, got %v", c.Scene.ChaosRadius)
	}
	if c.Foliage.Count < 0 {
		return fmt.Errorf("config: foliage.count must be >= 0, got %d", c.Foliage.Count)
	}
	if c.Photos.Mass <= 0 {
		return fmt.Errorf("config: photos.mass must be > 0, got %v", c.Photos.Mass)
	}
	if c.Star.Mass <= 0 {
		return fmt.Errorf("config: star.mass must be > 0, got %v", c.Star.Mass)
	}
	for i := range c.Archetypes {
		a := &c.Archetypes[i]
		if a.Mass <= 0 {
			return fmt.Errorf("config: archetype %q mass must be > 0, got %v", a.Name, a.Mass)
		}
		if a.Stiffness <= 0 || a.Stiffness >= 1 {
			return fmt.Errorf("config: archetype %q stiffness must be in (0,1), got %v", a.Name, a.Stiffness)
		}
		if a.Damping <= 0 || a.Damping >= 1 {
			return fmt.Errorf("config: archetype %q damping must be in (0,1), got %v", a.Name, a.Damping)
		}
		if a.BandLow < 0 || a.BandHigh > 1 || a.BandLow > a.BandHigh {
			return fmt.Errorf("config: archetype %q band [%v,%v] must satisfy 0 <= low <= high <= 1",
				a.Name, a.BandLow, a.BandHigh)
		}
		switch a.Shape {
		case "sphere", "cube", "icicle":
		default:
			return fmt.Errorf("config: archetype %q has unknown shape %q", a.Name, a.Shape)
		}
	}
	return nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.ArchetypeIndex = make(map[string]uint8, len(c.Archetypes))
	for i, arch := range c.Archetypes {
		c.Derived.ArchetypeIndex[arch.Name] = uint8(i)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
