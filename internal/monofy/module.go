// SPDX-License-Identifier: EPL-2.0

package monofy

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ik5/monofy/audio"
	"github.com/ik5/monofy/internal/config"
)

// Module provides the Pipeline and its decoder registry.
var Module = fx.Module("monofy",
	fx.Provide(
		DefaultRegistry,
		NewPipeline,
	),
)

// NewPipelineParams holds dependencies for NewPipeline.
type NewPipelineParams struct {
	fx.In
	Cfg      *config.Config
	Logger   *zap.Logger
	Registry *audio.Registry
}

// NewPipeline creates a Pipeline from the Fx graph.
func NewPipeline(params NewPipelineParams) *Pipeline {
	return New(params.Cfg, params.Logger.Named("monofy"), WithRegistry(params.Registry))
}
