// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Seeding     SeedingConfig     `yaml:"seeding"`
	Duplication DuplicationConfig `yaml:"duplication"`
	Render      RenderConfig      `yaml:"render"`
	Camera      CameraConfig      `yaml:"camera"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Terminal    TerminalConfig    `yaml:"terminal"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SimulationConfig holds stepper parameters.
type SimulationConfig struct {
	InitialCells   int     `yaml:"initial_cells"`
	BaseRadius     float64 `yaml:"base_radius"`      // Radius of a full-size cell in NDC units
	RadiusSpeedCap float64 `yaml:"radius_speed_cap"` // Speed multiplier cap when shrinking fast cells
	FixedDT        float64 `yaml:"fixed_dt"`         // Seconds per headless tick
	MaxFrameDT     float64 `yaml:"max_frame_dt"`     // Clamp for window stalls (0 = off)
	GeometryUpdate string  `yaml:"geometry_update"`  // rebuild | incremental
}

// SeedingConfig holds initial population parameters.
type SeedingConfig struct {
	PositionRange   float64 `yaml:"position_range"`
	VelocityDivisor float64 `yaml:"velocity_divisor"`
	SpeedJitter     float64 `yaml:"speed_jitter"`
	PhaseWeights    []int   `yaml:"phase_weights"` // G1, S, G2, Pro, Meta, Ana, Telo
}

// DuplicationConfig holds the speed drift applied at division.
type DuplicationConfig struct {
	DriftMin   float64 `yaml:"drift_min"`
	DriftMax   float64 `yaml:"drift_max"`
	DriftScale float64 `yaml:"drift_scale"`
}

// RenderConfig holds GPU pipeline settings.
type RenderConfig struct {
	TextureDir     string `yaml:"texture_dir"`
	VertexShader   string `yaml:"vertex_shader"`   // Empty = embedded
	FragmentShader string `yaml:"fragment_shader"` // Empty = embedded
	ClearColor     []int  `yaml:"clear_color"`     // RGBA 0-255
	GLDebug        bool   `yaml:"gl_debug"`
	Blend          bool   `yaml:"blend"`
}

// CameraConfig holds viewport navigation limits.
type CameraConfig struct {
	MinZoom   float64 `yaml:"min_zoom"`
	MaxZoom   float64 `yaml:"max_zoom"`
	ZoomSpeed float64 `yaml:"zoom_speed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// TerminalConfig holds settings for the terminal viewer.
type TerminalConfig struct {
	TickHz     int     `yaml:"tick_hz"`
	BeepHz     float64 `yaml:"beep_hz"`
	BeepMillis int     `yaml:"beep_ms"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32              float32  // Simulation.FixedDT as float32
	MaxFrameDT32      float32  // Simulation.MaxFrameDT as float32
	BaseRadius32      float32  // Simulation.BaseRadius as float32
	CumulativeWeights []int    // running sum of Seeding.PhaseWeights
	Aspect            float32  // Screen.Width / Screen.Height
	ClearColor        [4]uint8 // Render.ClearColor clamped to bytes
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file. Lists are replaced whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Simulation.InitialCells < 0 {
		errs = append(errs, fmt.Errorf("simulation.initial_cells %d is negative", c.Simulation.InitialCells))
	}
	if c.Simulation.BaseRadius < 0 {
		errs = append(errs, fmt.Errorf("simulation.base_radius %v is negative", c.Simulation.BaseRadius))
	}
	if c.Simulation.FixedDT <= 0 {
		errs = append(errs, fmt.Errorf("simulation.fixed_dt %v must be positive", c.Simulation.FixedDT))
	}
	if c.Simulation.MaxFrameDT < 0 {
		errs = append(errs, fmt.Errorf("simulation.max_frame_dt %v is negative", c.Simulation.MaxFrameDT))
	}
	switch c.Simulation.GeometryUpdate {
	case "", "rebuild", "incremental":
	default:
		errs = append(errs, fmt.Errorf("simulation.geometry_update %q is not rebuild or incremental", c.Simulation.GeometryUpdate))
	}
	if c.Seeding.VelocityDivisor == 0 {
		errs = append(errs, errors.New("seeding.velocity_divisor must be non-zero"))
	}
	if len(c.Seeding.PhaseWeights) != 7 {
		errs = append(errs, fmt.Errorf("seeding.phase_weights needs 7 entries, got %d", len(c.Seeding.PhaseWeights)))
	} else {
		total := 0
		for i, w := range c.Seeding.PhaseWeights {
			if w < 0 {
				errs = append(errs, fmt.Errorf("seeding.phase_weights[%d] = %d is negative", i, w))
			}
			total += w
		}
		if total <= 0 {
			errs = append(errs, errors.New("seeding.phase_weights must sum to a positive total"))
		}
	}
	if c.Seeding.SpeedJitter < 0 || c.Seeding.SpeedJitter > 1 {
		errs = append(errs, fmt.Errorf("seeding.speed_jitter %v must be in [0, 1]", c.Seeding.SpeedJitter))
	}
	if c.Duplication.DriftMax < c.Duplication.DriftMin {
		errs = append(errs, fmt.Errorf("duplication drift range [%v, %v] is inverted", c.Duplication.DriftMin, c.Duplication.DriftMax))
	}
	if c.Duplication.DriftScale < 0 {
		errs = append(errs, fmt.Errorf("duplication.drift_scale %v is negative", c.Duplication.DriftScale))
	} else if f := 1 + c.Duplication.DriftMin*c.Duplication.DriftScale; f < 0 {
		// Speed is multiplied by this factor at worst on every division.
		errs = append(errs, fmt.Errorf("duplication drift_min*drift_scale gives speed factor %v below 0", f))
	}
	if n := len(c.Render.ClearColor); n != 0 && n != 4 {
		errs = append(errs, fmt.Errorf("render.clear_color needs 4 components, got %d", n))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Simulation.FixedDT)
	c.Derived.MaxFrameDT32 = float32(c.Simulation.MaxFrameDT)
	c.Derived.BaseRadius32 = float32(c.Simulation.BaseRadius)
	c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)

	c.Derived.CumulativeWeights = make([]int, len(c.Seeding.PhaseWeights))
	sum := 0
	for i, w := range c.Seeding.PhaseWeights {
		sum += w
		c.Derived.CumulativeWeights[i] = sum
	}

	c.Derived.ClearColor = [4]uint8{0, 0, 0, 255}
	for i, v := range c.Render.ClearColor {
		c.Derived.ClearColor[i] = uint8(max(0, min(255, v)))
	}

	if c.Simulation.GeometryUpdate == "" {
		c.Simulation.GeometryUpdate = "rebuild"
	}
	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = 120
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
