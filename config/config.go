// Package config provides configuration loading and access for the
// event-driven disc simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Domain    DomainConfig    `yaml:"domain"`
	Particles ParticlesConfig `yaml:"particles"`
	Dynamics  DynamicsConfig  `yaml:"dynamics"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Sync      SyncConfig      `yaml:"sync"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// DomainConfig holds domain geometry and periodicity.
type DomainConfig struct {
	LengthX   float64 `yaml:"length_x"`
	LengthY   float64 `yaml:"length_y"`
	PeriodicX bool    `yaml:"periodic_x"`
	PeriodicY bool    `yaml:"periodic_y"`
}

// ParticlesConfig holds particle creation parameters.
type ParticlesConfig struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Seed   float64 `yaml:"seed"`
}

// DynamicsConfig holds the fixed dynamical constants.
type DynamicsConfig struct {
	Restitution float64 `yaml:"restitution"`
	GravityX    float64 `yaml:"gravity_x"`
	GravityY    float64 `yaml:"gravity_y"`
	Epsilon     float64 `yaml:"epsilon"`
}

// WallBCKind names a wall boundary condition kind.
type WallBCKind string

// Supported wall boundary condition kinds.
const (
	Neumann   WallBCKind = "neumann"
	Dirichlet WallBCKind = "dirichlet"
)

// WallBCConfig is one wall's boundary condition.
type WallBCConfig struct {
	Kind  WallBCKind `yaml:"kind"`
	Value float64    `yaml:"value"`
}

// BoundaryConfig holds the per-wall boundary conditions for each
// non-periodic axis (ignored on periodic axes).
type BoundaryConfig struct {
	XMin WallBCConfig `yaml:"x_min"`
	XMax WallBCConfig `yaml:"x_max"`
	YMin WallBCConfig `yaml:"y_min"`
	YMax WallBCConfig `yaml:"y_max"`
}

// SyncConfig holds the synchronisation cadence.
type SyncConfig struct {
	Rate float64 `yaml:"rate"`
}

// TelemetryConfig holds diagnostic output parameters.
type TelemetryConfig struct {
	// DebugDir and OutputDir are loaded and saved with the config but
	// read by no package: no energy.dat/distance.dat is written, and
	// windows.csv goes to the directory given by each command's -output flag.
	DebugDir  string `yaml:"debug_dir"`
	OutputDir string `yaml:"output_dir"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellSize float64 // target per-axis cell edge length
}

const defaultCellSize = 3.0

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
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
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellSize = defaultCellSize
}

// Validate checks the configuration faults that are fatal at init
// : invalid dimensions, a non-positive particle radius, a negative
// particle count, a non-positive sync rate, and a seed outside [0,1).
// Cell-size-vs-radius and particle-count-cap checks depend on the
// derived grid and are performed by engine.New, which owns the grid.
func (c *Config) Validate() error {
	if c.Domain.LengthX <= 0 || c.Domain.LengthY <= 0 {
		return fmt.Errorf("config: domain lengths must be positive, got (%v, %v)", c.Domain.LengthX, c.Domain.LengthY)
	}
	if c.Particles.Radius <= 0 {
		return fmt.Errorf("config: particle radius must be positive, got %v", c.Particles.Radius)
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("config: particle count must be non-negative, got %v", c.Particles.Count)
	}
	if c.Sync.Rate <= 0 {
		return fmt.Errorf("config: sync rate must be positive, got %v", c.Sync.Rate)
	}
	if c.Particles.Seed < 0 || c.Particles.Seed >= 1 {
		return fmt.Errorf("config: seed must be in [0,1), got %v", c.Particles.Seed)
	}
	return nil
}

// WriteYAML saves the configuration to path as YAML.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
