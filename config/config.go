// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen         ScreenConfig         `yaml:"screen"`
	Box            BoxConfig            `yaml:"box"`
	Particles      ParticlesConfig      `yaml:"particles"`
	Physics        PhysicsConfig        `yaml:"physics"`
	StartupDamping StartupDampingConfig `yaml:"startup_damping"`
	Telemetry      TelemetryConfig      `yaml:"telemetry"`
	Render         RenderConfig         `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	Scale     float64 `yaml:"scale"`      // pixels per physical unit
	PixelSize int     `yaml:"pixel_size"` // heat-map cell size in pixels
}

// BoxConfig holds the simulation box half-extents in physical units.
type BoxConfig struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

// ParticlesConfig holds particle creation parameters.
type ParticlesConfig struct {
	Count           int     `yaml:"count"`
	Radius          float64 `yaml:"radius"`            // insets the collision bound
	MaxInitialSpeed float64 `yaml:"max_initial_speed"` // respawn velocity is drawn from a disk of this radius
}

// PhysicsConfig holds solver parameters.
type PhysicsConfig struct {
	SmoothingRadius    float64 `yaml:"smoothing_radius"`
	TargetDensity      float64 `yaml:"target_density"`
	PressureMultiplier float64 `yaml:"pressure_multiplier"`
	Viscosity          float64 `yaml:"viscosity"`
	Gravity            float64 `yaml:"gravity"`
	CollisionDamping   float64 `yaml:"collision_damping"` // restitution in [0, 1]
	Kernel             string  `yaml:"kernel"`            // smooth6 | spiky2
	EdgeRepulsion      bool    `yaml:"edge_repulsion"`
	PredictionDT       float64 `yaml:"prediction_dt"`
	DT                 float64 `yaml:"dt"`
	MaxFrameDT         float64 `yaml:"max_frame_dt"`
}

// StartupDampingConfig holds the warm-up ramp parameters.
type StartupDampingConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Interval  float64 `yaml:"interval"`  // seconds until full pressure response
	Curve     string  `yaml:"curve"`     // quadratic | logistic
	Steepness float64 `yaml:"steepness"` // logistic only
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// RenderConfig holds renderer parameters.
type RenderConfig struct {
	Heatmap       bool    `yaml:"heatmap"`
	HeatmapMargin float64 `yaml:"heatmap_margin"` // fractional band around target density drawn white
	HeatmapSpan   float64 `yaml:"heatmap_span"`   // upper density bound in multiples of self density
	HUDInterval   float64 `yaml:"hud_interval"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32 // Physics.DT as float32
	BoundX     float32 // HalfWidth - Radius
	BoundY     float32 // HalfHeight - Radius
	BoxScreenW int32   // box width in screen pixels
	BoxScreenH int32   // box height in screen pixels
	HeatmapW   int     // heat-map image width in cells
	HeatmapH   int     // heat-map image height in cells
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() (*Config, error) {
	return Load("")
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks that the configuration describes a runnable simulation.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	positive := func(name string, v float64) {
		check(isFinite(v) && v > 0, "%s must be positive, got %v", name, v)
	}

	positive("physics.smoothing_radius", c.Physics.SmoothingRadius)
	positive("physics.prediction_dt", c.Physics.PredictionDT)
	positive("physics.dt", c.Physics.DT)
	positive("physics.max_frame_dt", c.Physics.MaxFrameDT)
	positive("box.half_width", c.Box.HalfWidth)
	positive("box.half_height", c.Box.HalfHeight)
	positive("screen.scale", c.Screen.Scale)

	check(isFinite(c.Physics.TargetDensity), "physics.target_density must be finite")
	check(isFinite(c.Physics.PressureMultiplier), "physics.pressure_multiplier must be finite")
	check(isFinite(c.Physics.Viscosity), "physics.viscosity must be finite")
	check(isFinite(c.Physics.Gravity), "physics.gravity must be finite")
	check(c.Physics.CollisionDamping >= 0 && c.Physics.CollisionDamping <= 1,
		"physics.collision_damping must be in [0, 1], got %v", c.Physics.CollisionDamping)
	check(c.Physics.Kernel == "smooth6" || c.Physics.Kernel == "spiky2",
		"physics.kernel must be smooth6 or spiky2, got %q", c.Physics.Kernel)

	minHalf := math.Min(c.Box.HalfWidth, c.Box.HalfHeight)
	check(c.Particles.Radius >= 0 && c.Particles.Radius < minHalf,
		"particles.radius must be in [0, %v), got %v", minHalf, c.Particles.Radius)
	check(c.Particles.Count >= 0, "particles.count must not be negative, got %d", c.Particles.Count)
	check(c.Particles.MaxInitialSpeed >= 0, "particles.max_initial_speed must not be negative")

	if c.StartupDamping.Enabled {
		positive("startup_damping.interval", c.StartupDamping.Interval)
		check(c.StartupDamping.Curve == "quadratic" || c.StartupDamping.Curve == "logistic",
			"startup_damping.curve must be quadratic or logistic, got %q", c.StartupDamping.Curve)
		if c.StartupDamping.Curve == "logistic" {
			positive("startup_damping.steepness", c.StartupDamping.Steepness)
		}
	}

	check(c.Screen.PixelSize > 0, "screen.pixel_size must be positive, got %d", c.Screen.PixelSize)

	return errors.Join(errs...)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.BoundX = float32(c.Box.HalfWidth - c.Particles.Radius)
	c.Derived.BoundY = float32(c.Box.HalfHeight - c.Particles.Radius)

	c.Derived.BoxScreenW = int32(2 * c.Box.HalfWidth * c.Screen.Scale)
	c.Derived.BoxScreenH = int32(2 * c.Box.HalfHeight * c.Screen.Scale)

	c.Derived.HeatmapW = int(c.Derived.BoxScreenW) / c.Screen.PixelSize
	c.Derived.HeatmapH = int(c.Derived.BoxScreenH) / c.Screen.PixelSize
	if c.Derived.HeatmapW < 1 {
		c.Derived.HeatmapW = 1
	}
	if c.Derived.HeatmapH < 1 {
		c.Derived.HeatmapH = 1
	}
}

// Clone returns a copy of the configuration. Config holds no reference types.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
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

// Refresh recomputes derived values after fields were changed in code.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}
