// SPDX-License-Identifier: EPL-2.0

package config

import (
	"go.uber.org/fx"
)

// Path is the optional YAML file to load. Empty means defaults.
type Path string

// Overrides is applied after the file is loaded, typically by command line
// flags.
type Overrides struct {
	Apply func(*Config)
}

// Module provides configuration dependencies.
var Module = fx.Module("config",
	fx.Provide(New),
)

// NewParams holds dependencies for New.
type NewParams struct {
	fx.In
	Path      Path      `optional:"true"`
	Overrides Overrides `optional:"true"`
}

// New loads the configuration, applies the overrides and validates the
// result.
func New(params NewParams) (*Config, error) {
	cfg, err := Load(string(params.Path))
	if err != nil {
		return nil, err
	}

	if params.Overrides.Apply != nil {
		params.Overrides.Apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
