// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	String    StringConfig    `yaml:"string"`
	Grid      GridConfig      `yaml:"grid"`
	Spring    SpringConfig    `yaml:"spring"`
	Phases    PhasesConfig    `yaml:"phases"`
	Wave      WaveConfig      `yaml:"wave"`
	Sparks    SparksConfig    `yaml:"sparks"`
	Palette   PaletteConfig   `yaml:"palette"`
	Input     InputConfig     `yaml:"input"`
	Idle      IdleConfig      `yaml:"idle"`
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

// StringConfig holds the plucked-string oscillator parameters.
type StringConfig struct {
	Points        int     `yaml:"points"`         // Number of oscillators along the string
	Stiffness     float64 `yaml:"stiffness"`      // Restoring force toward rest (per tick)
	Damping       float64 `yaml:"damping"`        // Velocity multiplier per tick, must be < 1
	Coupling      float64 `yaml:"coupling"`       // Pull toward immediate neighbors
	PluckStrength float64 `yaml:"pluck_strength"` // Impulse injected at the pluck center
	PluckWindow   int     `yaml:"pluck_window"`   // Half-width of the pluck falloff in points
}

// GridConfig holds the impedance-grid layout parameters.
type GridConfig struct {
	ResistanceValues []float64 `yaml:"resistance_values"` // Constant-R polylines
	ReactanceValues  []float64 `yaml:"reactance_values"`  // Constant-X polylines
	SamplesPerLine   int       `yaml:"samples_per_line"`
	ReactanceLimit   float64   `yaml:"reactance_limit"`  // tan sweep half-angle in radians
	ResistanceSpan   float64   `yaml:"resistance_span"`  // Max r reached by the power-law sweep
	ResistancePower  float64   `yaml:"resistance_power"` // Power-law exponent for the r sweep
	Scale            float64   `yaml:"scale"`            // Pixels per unit impedance in Cartesian view
	ChartRadiusFrac  float64   `yaml:"chart_radius_frac"` // Chart radius as a fraction of min(w,h)/2
}

// SpringConfig holds the grid spring-damper parameters.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"` // Spring constant toward target (per tick)
	Friction  float64 `yaml:"friction"`  // Velocity multiplier per tick, must be < 1
}

// PhasesConfig holds the narrative phase breakpoints.
// Boundaries split progress into string / mesh / fold / chart windows;
// the fold blend window is independent of the crossfade boundaries.
type PhasesConfig struct {
	Boundaries  []float64 `yaml:"boundaries"`   // Three values in (0,1), ascending
	FadeWidth   float64   `yaml:"fade_width"`   // Crossfade band width at each boundary
	FoldStart   float64   `yaml:"fold_start"`   // Blend weight window start
	FoldEnd     float64   `yaml:"fold_end"`     // Blend weight window end
	RevealReset float64   `yaml:"reveal_reset"` // Latch re-arms below this (hysteresis)
}

// WaveConfig holds the mesh-phase wave distortion parameters.
type WaveConfig struct {
	Amplitude float64 `yaml:"amplitude"` // Peak vertical displacement in pixels
	Frequency float64 `yaml:"frequency"` // Noise frequency in impedance units
	Speed     float64 `yaml:"speed"`     // Noise drift per unit progress
	Seed      int64   `yaml:"seed"`
}

// SparksConfig holds the reveal spark burst parameters.
type SparksConfig struct {
	Count int     `yaml:"count"`
	Speed float64 `yaml:"speed"` // Initial radial speed in px/s
	Life  float64 `yaml:"life"`  // Lifetime in seconds
	Size  float64 `yaml:"size"`  // Base radius in pixels
	Drag  float64 `yaml:"drag"`  // Velocity decay per second
}

// PaletteConfig holds the engine colors as RGB triples.
type PaletteConfig struct {
	Background [3]uint8 `yaml:"background"`
	Neutral    [3]uint8 `yaml:"neutral"` // Grid color before the fold
	Accent     [3]uint8 `yaml:"accent"`  // Grid color at full blend
	Marker     [3]uint8 `yaml:"marker"`  // Chart markers and reticles
}

// InputConfig holds host input translation parameters.
type InputConfig struct {
	WheelRate  float64 `yaml:"wheel_rate"`  // Progress per wheel notch
	PluckLimit float64 `yaml:"pluck_limit"` // Plucks ignored above this progress
}

// IdleConfig holds idle detection parameters.
type IdleConfig struct {
	EnergyThreshold float64 `yaml:"energy_threshold"` // String kinetic energy floor
	SkipCadence     int     `yaml:"skip_cadence"`     // Render 1 in N ticks while idle
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds between stats emissions
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	NumLines    int     // Total polyline count (R lines + X lines)
	PointCount  int     // Total grid point count
	FoldSpan    float64 // FoldEnd - FoldStart
	RevealStart float64 // Alias of FoldEnd; the latch threshold
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if len(c.Phases.Boundaries) != 3 {
		c.Phases.Boundaries = []float64{0.25, 0.49, 0.85}
	}
	if c.Idle.SkipCadence < 1 {
		c.Idle.SkipCadence = 3
	}

	c.Derived.NumLines = len(c.Grid.ResistanceValues) + len(c.Grid.ReactanceValues)
	c.Derived.PointCount = c.Derived.NumLines * c.Grid.SamplesPerLine
	c.Derived.FoldSpan = c.Phases.FoldEnd - c.Phases.FoldStart
	c.Derived.RevealStart = c.Phases.FoldEnd
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
