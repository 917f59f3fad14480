// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/monofy/audio"
	"github.com/ik5/monofy/formats/wav"
	"github.com/ik5/monofy/internal/config"
)

var stereo16 = audio.Format{Channels: 2, SampleRate: 44100, BitsPerSample: 16, Encoding: audio.EncodingInteger}

func parseOverrides(t *testing.T, args ...string) *config.Config {
	t.Helper()

	var f flags
	fs := pflag.NewFlagSet("monofy", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse(args))

	cfg := config.Default()
	f.overrides(fs).Apply(cfg)
	return cfg
}

func TestOverrides_Untouched(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.Default(), parseOverrides(t))
}

func TestOverrides_AllFlags(t *testing.T) {
	t.Parallel()

	cfg := parseOverrides(t,
		"-d", "12",
		"--dry-run",
		"-o",
		"--no-float",
		"--float-scale", "0.5",
		"--ext", "wav,wave",
		"--log-level", "debug",
	)

	assert.Equal(t, uint32(12), cfg.Dither)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.NoOverwrites)
	assert.False(t, cfg.FloatOutput)
	assert.InDelta(t, 0.5, cfg.FloatScale, 1e-12)
	assert.Equal(t, []string{"wav", "wave"}, cfg.Extensions)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestOverrides_KeepConfigFileValues(t *testing.T) {
	t.Parallel()

	var f flags
	fs := pflag.NewFlagSet("monofy", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--dry-run"}))

	cfg := config.Default()
	cfg.Dither = 40
	cfg.Extensions = []string{"wave"}
	f.overrides(fs).Apply(cfg)

	assert.Equal(t, uint32(40), cfg.Dither)
	assert.Equal(t, []string{"wave"}, cfg.Extensions)
	assert.True(t, cfg.DryRun)
}

func writeStereo(t *testing.T, path string, rightOffset int) {
	t.Helper()

	samples := make([]int, 0, 200)
	for i := range 100 {
		samples = append(samples, i, i+rightOffset)
	}

	w, err := wav.Create(path, stereo16)
	require.NoError(t, err)
	require.NoError(t, w.WriteSamples(samples))
	require.NoError(t, w.Close())
}

func execute(t *testing.T, args ...string) error {
	t.Helper()

	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--log-level", "error"))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(context.Background())
}

func TestRootCmd_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStereo(t, filepath.Join(dir, "faux.wav"), 0)
	writeStereo(t, filepath.Join(dir, "real.wav"), 50)

	require.NoError(t, execute(t, dir))

	assert.FileExists(t, filepath.Join(dir, "faux.MONO.wav"))
	assert.NoFileExists(t, filepath.Join(dir, "real.MONO.wav"))
}

func TestRootCmd_Dither(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "dithered.wav")
	writeStereo(t, in, 2)

	require.NoError(t, execute(t, in))
	assert.NoFileExists(t, filepath.Join(dir, "dithered.MONO.wav"))

	require.NoError(t, execute(t, "-d", "2", in))
	assert.FileExists(t, filepath.Join(dir, "dithered.MONO.wav"))
}

func TestRootCmd_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "faux.wav")
	writeStereo(t, in, 0)

	require.NoError(t, execute(t, "-n", in))
	assert.NoFileExists(t, filepath.Join(dir, "faux.MONO.wav"))
}

func TestRootCmd_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "faux.wav")
	writeStereo(t, in, 0)

	cfgPath := filepath.Join(dir, "monofy.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dry_run: true\n"), 0o600))

	require.NoError(t, execute(t, "--config", cfgPath, in))
	assert.NoFileExists(t, filepath.Join(dir, "faux.MONO.wav"))
}

func TestRootCmd_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(broken, []byte("not audio"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{name: "unreadable file", args: []string{broken}},
		{name: "missing file", args: []string{filepath.Join(dir, "missing.wav")}},
		{name: "invalid option", args: []string{"--float-scale=-1", dir}},
		{name: "missing config", args: []string{"--config", filepath.Join(dir, "none.yaml"), dir}},
		{name: "too many arguments", args: []string{broken, broken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, execute(t, tt.args...))
		})
	}
}
