// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/ik5/monofy/internal/config"
	"github.com/ik5/monofy/internal/logging"
	"github.com/ik5/monofy/internal/monofy"
)

const stopTimeout = 5 * time.Second

// flags mirrors the config keys that can be set on the command line.
type flags struct {
	configPath   string
	logLevel     string
	dither       uint32
	dryRun       bool
	noOverwrites bool
	noFloat      bool
	floatScale   float64
	extensions   []string
}

// register binds the command line flags to f.
func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	fs.Uint32VarP(&f.dither, "dither", "d", 0, "allowed left/right difference, 0 requires identical channels")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "only report, never write")
	fs.BoolVarP(&f.noOverwrites, "no-overwrites", "o", false, "keep existing .MONO.wav files")
	fs.BoolVar(&f.noFloat, "no-float", false, "refuse to write 32-bit float output")
	fs.Float64Var(&f.floatScale, "float-scale", 0, "dither unit for float samples")
	fs.StringSliceVar(&f.extensions, "ext", nil, "file extensions processed in directory mode")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
}

// overrides applies only the flags the user actually set, so a config
// file value survives an untouched flag.
func (f *flags) overrides(fs *pflag.FlagSet) config.Overrides {
	return config.Overrides{Apply: func(c *config.Config) {
		if fs.Changed("dither") {
			c.Dither = f.dither
		}
		if fs.Changed("dry-run") {
			c.DryRun = f.dryRun
		}
		if fs.Changed("no-overwrites") {
			c.NoOverwrites = f.noOverwrites
		}
		if fs.Changed("no-float") {
			c.FloatOutput = !f.noFloat
		}
		if fs.Changed("float-scale") {
			c.FloatScale = f.floatScale
		}
		if fs.Changed("ext") {
			c.Extensions = f.extensions
		}
		if fs.Changed("log-level") {
			c.LogLevel = f.logLevel
		}
	}}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "monofy [file|dir]",
		Short: "Find faux stereo audio files and extract their left channel",
		Long: `monofy checks whether the two channels of a stereo file carry the same
signal. When they do, the left channel is written to "<name>.MONO.wav" next
to the input. Without an argument every matching file in the current
directory is processed.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 1 {
				target = args[0]
			}
			return run(cmd.Context(), target, config.Path(f.configPath), f.overrides(cmd.Flags()))
		},
	}

	f.register(cmd.Flags())

	return cmd
}

// run builds the application, processes target and shuts down again.
func run(ctx context.Context, target string, path config.Path, overrides config.Overrides) error {
	var pipeline *monofy.Pipeline

	app := fx.New(
		fx.Supply(path, overrides),
		config.Module,
		logging.Module,
		monofy.Module,
		fx.WithLogger(logging.NewFxLogger),
		fx.Populate(&pipeline),
	)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}

	runErr := pipeline.Run(ctx, target)

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	return multierr.Append(runErr, app.Stop(stopCtx))
}
