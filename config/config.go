package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// File is the configuration file looked up in the working directory.
const File = ".sdlc.yaml"

// Config holds the settings of the sdlc command.
type Config struct {
	// MaterializeDepth bounds expansion of value shapes. Zero means cycles are the only
	// bound.
	MaterializeDepth int    `yaml:"materialize_depth"`
	Format           string `yaml:"format"`
	Tracer           string `yaml:"tracer"`
	Verbosity        int    `yaml:"verbosity"`
	Indent           string `yaml:"indent"`
}

var (
	formats = []string{"json", "yaml"}
	tracers = []string{"none", "opentracing", "otel", "jaeger"}
)

func Default() *Config {
	return &Config{
		MaterializeDepth: 8,
		Format:           "json",
		Tracer:           "none",
		Indent:           "  ",
	}
}

// Load reads configuration from path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaterializeDepth < 0 {
		return fmt.Errorf("materialize_depth must not be negative, got %d", c.MaterializeDepth)
	}
	if !oneOf(c.Format, formats) {
		return fmt.Errorf("unknown format %q, expecting one of %q", c.Format, formats)
	}
	if !oneOf(c.Tracer, tracers) {
		return fmt.Errorf("unknown tracer %q, expecting one of %q", c.Tracer, tracers)
	}
	return nil
}

func oneOf(s string, l []string) bool {
	for _, x := range l {
		if x == s {
			return true
		}
	}
	return false
}
