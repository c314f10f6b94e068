package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/render"
	"github.com/lixenwraith/orbital-swarm/swarm"
)

// DefaultPath is probed when no config path is given
const DefaultPath = "orbital-swarm.yaml"

// Config is the deployment tuning surface. Model constants (band bounds,
// smoothing coefficients, chaos frequencies) are compiled into parameter/
// and are not configurable here.
type Config struct {
	Swarm   SwarmConfig   `yaml:"swarm"`
	Session SessionConfig `yaml:"session"`
	Feed    FeedConfig    `yaml:"feed"`
	Audio   AudioConfig   `yaml:"audio"`
}

type SwarmConfig struct {
	// Count is the particle population size
	Count int `yaml:"count"`
	// Seed drives the deterministic population draw; fixed seed, fixed field
	Seed uint64 `yaml:"seed"`
	// Workers for batched position evaluation, 0 means one per CPU
	Workers int `yaml:"workers"`
	// Palette overrides the built-in color anchors, "#RRGGBB"
	Palette PaletteConfig `yaml:"palette"`
}

type PaletteConfig struct {
	Core      string `yaml:"core"`
	RingInner string `yaml:"ring_inner"`
	RingOuter string `yaml:"ring_outer"`
}

type SessionConfig struct {
	// TickRate is the logical tick frequency in Hz
	TickRate int `yaml:"tick_rate"`
}

type FeedConfig struct {
	// Listen is the TCP address for the landmark feed, empty disables it
	Listen string `yaml:"listen"`
}

type AudioConfig struct {
	// Enabled turns the expansion-tracking hum on
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Swarm: SwarmConfig{
			Count: parameter.SwarmCount,
			Seed:  1,
			Palette: PaletteConfig{
				Core:      parameter.CoreColorHex,
				RingInner: parameter.RingInnerColorHex,
				RingOuter: parameter.RingOuterColorHex,
			},
		},
		Session: SessionConfig{
			TickRate: parameter.SessionTickRate,
		},
		Feed: FeedConfig{
			Listen: parameter.FeedListenAddr,
		},
	}
}

// Load resolves configuration with priority: explicit path > DefaultPath in
// the working directory > built-in defaults. File values overlay defaults,
// so a partial file only overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if !fileExists(DefaultPath) {
			return cfg, nil
		}
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot work with
func (c *Config) Validate() error {
	if c.Swarm.Count <= 0 {
		return fmt.Errorf("swarm.count must be positive, got %d", c.Swarm.Count)
	}
	if c.Swarm.Workers < 0 {
		return fmt.Errorf("swarm.workers must be >= 0, got %d", c.Swarm.Workers)
	}
	if c.Session.TickRate < 1 || c.Session.TickRate > 1000 {
		return fmt.Errorf("session.tick_rate must be in [1, 1000], got %d", c.Session.TickRate)
	}
	if _, err := c.Swarm.PaletteColors(); err != nil {
		return err
	}
	return nil
}

// PaletteColors parses the configured hex anchors into a swarm palette
func (s *SwarmConfig) PaletteColors() (swarm.Palette, error) {
	core, err := render.HexRGB(s.Palette.Core)
	if err != nil {
		return swarm.Palette{}, fmt.Errorf("swarm.palette.core: %w", err)
	}
	inner, err := render.HexRGB(s.Palette.RingInner)
	if err != nil {
		return swarm.Palette{}, fmt.Errorf("swarm.palette.ring_inner: %w", err)
	}
	outer, err := render.HexRGB(s.Palette.RingOuter)
	if err != nil {
		return swarm.Palette{}, fmt.Errorf("swarm.palette.ring_outer: %w", err)
	}
	return swarm.Palette{Core: core, RingInner: inner, RingOuter: outer}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
