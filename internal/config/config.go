// SPDX-License-Identifier: EPL-2.0

// Package config holds the runtime options of monofy and their Fx module.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ik5/monofy/audio"
)

// DitherWarningThreshold is the dither value above which false positives
// become likely.
const DitherWarningThreshold = 100

var (
	ErrInvalidFloatScale = errors.New("float_scale must be a finite, non-negative number")
	ErrNoExtensions      = errors.New("extensions must not be empty")
	ErrInvalidLogLevel   = errors.New("unknown log_level")
)

// Config stores the application configuration.
type Config struct {
	// Dither is the allowed absolute difference between channels. Zero
	// means the channels must be identical.
	Dither uint32 `yaml:"dither"`
	// DryRun detects only; no output is ever written.
	DryRun bool `yaml:"dry_run"`
	// NoOverwrites skips extraction when the output already exists.
	NoOverwrites bool `yaml:"no_overwrites"`
	// FloatOutput allows writing 32-bit float mono files.
	FloatOutput bool `yaml:"float_output"`
	// FloatScale maps Dither onto float samples.
	FloatScale float64 `yaml:"float_scale"`
	// Extensions selects the files picked up in directory mode.
	Extensions []string `yaml:"extensions"`
	LogLevel   string   `yaml:"log_level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		FloatOutput: true,
		FloatScale:  audio.DefaultFloatScale,
		Extensions:  []string{"wav"},
		LogLevel:    "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first invalid option.
func (c *Config) Validate() error {
	if c.FloatScale < 0 || math.IsNaN(c.FloatScale) || math.IsInf(c.FloatScale, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFloatScale, c.FloatScale)
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}
	for _, ext := range c.Extensions {
		if strings.TrimPrefix(strings.TrimSpace(ext), ".") == "" {
			return fmt.Errorf("%w: blank entry", ErrNoExtensions)
		}
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}

// Warnings lists settings that are valid but probably unintended.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Dither > DitherWarningThreshold {
		warnings = append(warnings, "dither threshold probably set too high, false positives possible")
	}
	return warnings
}

// Tolerance is the comparator setting derived from Dither and FloatScale.
func (c *Config) Tolerance() audio.Tolerance {
	return audio.Tolerance{
		Threshold:  c.Dither,
		FloatScale: c.FloatScale,
	}
}

// HasExtension reports whether name ends in one of the configured
// extensions. Matching ignores case.
func (c *Config) HasExtension(name string) bool {
	for _, ext := range c.Extensions {
		ext = "." + strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
			return true
		}
	}
	return false
}
