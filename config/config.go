// Package config provides configuration loading and access for the simulations.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	Particles ParticlesConfig `yaml:"particles"`
	Discharge DischargeConfig `yaml:"discharge"`
	Growth    GrowthConfig    `yaml:"growth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimConfig holds frame stepping parameters.
type SimConfig struct {
	DT      float64 `yaml:"dt"`       // fixed step for headless runs
	MaxStep float64 `yaml:"max_step"` // frame delta clamp, bounds integration error on stalls
}

// ParticlesConfig holds particle field parameters.
type ParticlesConfig struct {
	Count          int     `yaml:"count"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Depth          float64 `yaml:"depth"`
	Gravity        float64 `yaml:"gravity"`
	Drag           float64 `yaml:"drag"`
	ObstacleRadius float64 `yaml:"obstacle_radius"`
	ObstacleDepth  float64 `yaml:"obstacle_depth"` // z of the pointer projection plane
	BounceImpulse  float64 `yaml:"bounce_impulse"`
	SpawnBand      float64 `yaml:"spawn_band"`
	FallSpeedMin   float64 `yaml:"fall_speed_min"`
	FallSpeedMax   float64 `yaml:"fall_speed_max"`
}

// DischargeConfig holds transient discharge generator parameters.
type DischargeConfig struct {
	IntervalMin float64 `yaml:"interval_min"`
	IntervalMax float64 `yaml:"interval_max"`
	Segments    int     `yaml:"segments"`
	SpanX       float64 `yaml:"span_x"`
	LateralStep float64 `yaml:"lateral_step"`
	MaxDrift    float64 `yaml:"max_drift"`
	Pull        float64 `yaml:"pull"`
	FadeRate    float64 `yaml:"fade_rate"`
	Depth       float64 `yaml:"depth"`
}

// GrowthConfig holds growth network parameters.
type GrowthConfig struct {
	Seeds           [][]float64 `yaml:"seeds"` // [x, y, z] triples on the z=0 plane
	SeedBranchesMin int         `yaml:"seed_branches_min"`
	SeedBranchesMax int         `yaml:"seed_branches_max"`
	GrowthSpeed     float64     `yaml:"growth_speed"`
	BaseLength      float64     `yaml:"base_length"`
	LengthShrink    float64     `yaml:"length_shrink"`
	MinLength       float64     `yaml:"min_length"`
	BranchAngleDeg  float64     `yaml:"branch_angle_deg"`
	BranchProb      float64     `yaml:"branch_probability"`
	ChildrenMin     int         `yaml:"children_min"`
	ChildrenMax     int         `yaml:"children_max"`
	MaxGeneration   int         `yaml:"max_generation"`
	MaxBranches     int         `yaml:"max_branches"`
	TubeRadius      float64     `yaml:"tube_radius"`
	TubeSides       int         `yaml:"tube_sides"`
	HueBase         float64     `yaml:"hue_base"`
	HueShift        float64     `yaml:"hue_shift"`
	PulseBase       float64     `yaml:"pulse_base"`
	PulseAmp        float64     `yaml:"pulse_amp"`
	PulseFreq       float64     `yaml:"pulse_freq"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32           float32 // Sim.DT as float32
	MaxStep32      float32 // Sim.MaxStep as float32
	BranchAngleRad float32 // Growth.BranchAngleDeg in radians
	ScreenW32      float32
	ScreenH32      float32
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
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

// Validate rejects host-level configuration mistakes. Engine parameters get a
// second, stricter pass inside the engine constructors.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen dimensions must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Sim.DT <= 0 {
		return fmt.Errorf("sim dt must be positive, got %g", c.Sim.DT)
	}
	if c.Sim.MaxStep < c.Sim.DT {
		return fmt.Errorf("sim max_step %g must be >= dt %g", c.Sim.MaxStep, c.Sim.DT)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry stats_window must be positive, got %g", c.Telemetry.StatsWindow)
	}
	for i, seed := range c.Growth.Seeds {
		if len(seed) != 3 {
			return fmt.Errorf("growth seed %d must have 3 components, got %d", i, len(seed))
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Sim.DT)
	c.Derived.MaxStep32 = float32(c.Sim.MaxStep)
	c.Derived.BranchAngleRad = float32(c.Growth.BranchAngleDeg * math.Pi / 180)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
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
