// Package config provides configuration loading for line generation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all generation parameters. Degenerate values (zero or
// negative dimensions, zero step length) are clamped to safe minimums
// in computeDerived rather than rejected, so a partially filled config
// always produces output.
type Config struct {
	Canvas   CanvasConfig `yaml:"canvas"`
	Seed     int64        `yaml:"seed"`
	Strategy string       `yaml:"strategy"`
	Lines    LinesConfig  `yaml:"lines"`
	Noise    NoiseConfig  `yaml:"noise"`
	Field    FieldConfig  `yaml:"field"`

	Starts        []PointConfig     `yaml:"starts"`
	Attractors    []AttractorConfig `yaml:"attractors"`
	DensityPoints []DensityConfig   `yaml:"density_points"`

	Fill  FillConfig  `yaml:"fill"`
	Swarm SwarmConfig `yaml:"swarm"`
	Hatch HatchConfig `yaml:"hatch"`
	SVG   SVGConfig   `yaml:"svg"`
}

// CanvasConfig holds output dimensions in canvas units.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// LinesConfig holds shared tracing parameters.
type LinesConfig struct {
	Count            int     `yaml:"count"`
	StepLength       float64 `yaml:"step_length"`
	MaxSteps         int     `yaml:"max_steps"`
	MinPoints        int     `yaml:"min_points"` // shorter lines are discarded
	Separation       float64 `yaml:"separation"` // 0 disables collision checks in basic mode
	Bidirectional    bool    `yaml:"bidirectional"`
	EvenDistribution bool    `yaml:"even_distribution"` // Poisson-disk start points
	Smoothing        float64 `yaml:"smoothing"`         // 0..1 Chaikin strength
}

// NoiseConfig holds the base noise shaping parameters.
type NoiseConfig struct {
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// FieldConfig holds vector field construction parameters.
type FieldConfig struct {
	Mode           string  `yaml:"mode"` // normal|curl|spiral|turbulent|ridged|warped
	Resolution     float64 `yaml:"resolution"`
	SpiralStrength float64 `yaml:"spiral_strength"`
	WarpStrength   float64 `yaml:"warp_strength"`
}

// PointConfig is an explicit start point.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// AttractorConfig is a painted attractor or repeller (negative strength).
type AttractorConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
}

// DensityConfig is a painted density focal point.
type DensityConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"` // 0..1
}

// FillConfig holds space-filling streamline parameters.
type FillConfig struct {
	BaseSeparation   float64 `yaml:"base_separation"`
	MinSeparation    float64 `yaml:"min_separation"`
	DensityVariation float64 `yaml:"density_variation"`
	MaxLines         int     `yaml:"max_lines"`
	MaxIterations    int     `yaml:"max_iterations"`
	Organic          bool    `yaml:"organic"`
	FatigueChance    float64 `yaml:"fatigue_chance"`
	WobbleStrength   float64 `yaml:"wobble_strength"`
	EdgeAttraction   float64 `yaml:"edge_attraction"`
}

// SwarmConfig holds agent simulation parameters.
type SwarmConfig struct {
	InitialAgents     int     `yaml:"initial_agents"`
	MaxAgents         int     `yaml:"max_agents"`
	InitialEnergy     float64 `yaml:"initial_energy"`
	WanderStrength    float64 `yaml:"wander_strength"`
	ClusterRadius     float64 `yaml:"cluster_radius"`
	ClusterAttraction float64 `yaml:"cluster_attraction"`
	FormStrength      float64 `yaml:"form_strength"`
	VoidThreshold     float64 `yaml:"void_threshold"`
	SlowWithAge       bool    `yaml:"slow_with_age"`
	SpawnChance       float64 `yaml:"spawn_chance"`
	SpawnEnergyFrac   float64 `yaml:"spawn_energy_frac"`
	InheritFrac       float64 `yaml:"inherit_frac"`
	MaxLines          int     `yaml:"max_lines"`
	MaxIterations     int     `yaml:"max_iterations"`
}

// HatchConfig holds contour hatching parameters.
type HatchConfig struct {
	Contrast          float64 `yaml:"contrast"`
	Deviation         float64 `yaml:"deviation"`
	Wobble            float64 `yaml:"wobble"`
	BaseLength        int     `yaml:"base_length"`
	CandidatesPerLine int     `yaml:"candidates_per_line"`
}

// SVGConfig holds serializer style parameters.
type SVGConfig struct {
	StrokeColor     string  `yaml:"stroke_color"`
	StrokeWidth     float64 `yaml:"stroke_width"`
	Background      bool    `yaml:"background"`
	BackgroundColor string  `yaml:"background_color"`
	Precision       int     `yaml:"precision"`
	Simplify        bool    `yaml:"simplify"`
	SimplifyEpsilon float64 `yaml:"simplify_epsilon"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Load loads configuration from a YAML file, merging over the embedded
// defaults. An empty path returns the defaults alone.
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
		// Unmarshal into the same struct; only fields present in the
		// file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived clamps degenerate values to safe minimums.
func (c *Config) computeDerived() {
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = 800
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = 600
	}
	if c.Canvas.Margin < 0 {
		c.Canvas.Margin = 0
	}
	// A margin that swallows the canvas leaves no traceable area
	maxMargin := min(c.Canvas.Width, c.Canvas.Height)/2 - 1
	if c.Canvas.Margin > maxMargin {
		c.Canvas.Margin = maxMargin
	}

	if c.Strategy == "" {
		c.Strategy = "basic"
	}
	if c.Lines.Count < 1 {
		c.Lines.Count = 1
	}
	if c.Lines.StepLength <= 0 {
		c.Lines.StepLength = 2
	}
	if c.Lines.MaxSteps < 1 {
		c.Lines.MaxSteps = 500
	}
	if c.Lines.MinPoints < 1 {
		c.Lines.MinPoints = 1
	}

	if c.Noise.Scale <= 0 {
		c.Noise.Scale = 0.005
	}
	if c.Noise.Octaves < 1 {
		c.Noise.Octaves = 1
	}
	if c.Noise.Persistence <= 0 {
		c.Noise.Persistence = 0.5
	}
	if c.Noise.Lacunarity <= 0 {
		c.Noise.Lacunarity = 2
	}

	if c.Field.Mode == "" {
		c.Field.Mode = "normal"
	}
	if c.Field.Resolution <= 0 {
		c.Field.Resolution = 10
	}

	if c.Fill.BaseSeparation <= 0 {
		c.Fill.BaseSeparation = 10
	}
	if c.Fill.MinSeparation <= 0 {
		c.Fill.MinSeparation = c.Fill.BaseSeparation * 0.25
	}
	if c.Hatch.Contrast <= 0 {
		c.Hatch.Contrast = 1
	}
	if c.Hatch.CandidatesPerLine < 1 {
		c.Hatch.CandidatesPerLine = 10
	}
}

// WriteYAML writes the configuration to a file, typically as a run
// snapshot so a random-seed run can be reproduced.
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
