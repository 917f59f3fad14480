// SPDX-License-Identifier: EPL-2.0

// Package logging builds the zap logger shared by the CLI and the pipeline.
package logging

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ik5/monofy/internal/config"
)

// Module provides logging infrastructure.
var Module = fx.Module("logger",
	fx.Provide(NewZapLogger),
)

// Build returns a console logger writing to stderr at level. "debug" adds
// caller and stack information.
func Build(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	var zapConfig zap.Config
	if lvl == zapcore.DebugLevel {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		zapConfig.EncoderConfig.TimeKey = ""
		zapConfig.DisableCaller = true
		zapConfig.DisableStacktrace = true
		zapConfig.Sampling = nil
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return logger, nil
}

// NewZapLoggerParams holds dependencies for NewZapLogger.
type NewZapLoggerParams struct {
	fx.In
	Cfg *config.Config
	LC  fx.Lifecycle
}

// NewZapLogger creates the logger for the configured level and syncs it
// when the application stops.
func NewZapLogger(params NewZapLoggerParams) (*zap.Logger, error) {
	logger, err := Build(params.Cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	params.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stderr cannot be synced on every platform
			_ = logger.Sync()
			return nil
		},
	})

	return logger, nil
}

// NewFxLogger routes Fx's own events through logger at debug level.
func NewFxLogger(logger *zap.Logger) fxevent.Logger {
	l := &fxevent.ZapLogger{Logger: logger.Named("fx")}
	l.UseLogLevel(zapcore.DebugLevel)
	return l
}
