package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingPathUsesDefaults(t *testing.T) {
	// Run from a directory without a default config file
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected defaults when no config exists, got error: %v", err)
	}

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Expected built-in defaults (-want +got):\n%s", diff)
	}
}

func TestLoadExplicitMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an explicit missing path to error rather than fall back")
	}
}

func TestLoadPartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swarm.yaml")
	body := "swarm:\n  count: 500\nsession:\n  tick_rate: 30\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected partial config to load, got error: %v", err)
	}

	if cfg.Swarm.Count != 500 {
		t.Errorf("Expected overridden count 500, got %d", cfg.Swarm.Count)
	}
	if cfg.Session.TickRate != 30 {
		t.Errorf("Expected overridden tick rate 30, got %d", cfg.Session.TickRate)
	}

	// Untouched fields keep their defaults
	def := Default()
	if cfg.Swarm.Palette != def.Swarm.Palette {
		t.Errorf("Expected default palette to survive overlay, got %+v", cfg.Swarm.Palette)
	}
	if cfg.Feed.Listen != def.Feed.Listen {
		t.Errorf("Expected default listen address to survive overlay, got %q", cfg.Feed.Listen)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("swarm: [not: a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected malformed yaml to error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero count", func(c *Config) { c.Swarm.Count = 0 }, "swarm.count"},
		{"negative workers", func(c *Config) { c.Swarm.Workers = -1 }, "swarm.workers"},
		{"tick rate too low", func(c *Config) { c.Session.TickRate = 0 }, "tick_rate"},
		{"tick rate too high", func(c *Config) { c.Session.TickRate = 5000 }, "tick_rate"},
		{"bad palette hex", func(c *Config) { c.Swarm.Palette.Core = "red" }, "palette.core"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation to fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected built-in defaults to validate, got: %v", err)
	}
}

func TestPaletteColors(t *testing.T) {
	cfg := Default()
	pal, err := cfg.Swarm.PaletteColors()
	if err != nil {
		t.Fatalf("Expected default palette to parse, got: %v", err)
	}
	if pal.Core == pal.RingInner {
		t.Error("Expected distinct core and ring colors in the default palette")
	}
}
