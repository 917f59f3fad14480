// SPDX-License-Identifier: EPL-2.0

// Package monofy detects faux stereo files and writes their left channel to
// a mono WAV file next to the input.
//
// Every file goes through two independent passes. Analyze opens the file
// and compares its channels. When they match within the configured
// tolerance, Extract reopens the file and copies the left channel into
// "<stem>.MONO.wav". Files are handled strictly one after another.
package monofy

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ik5/monofy/audio"
	"github.com/ik5/monofy/formats/aiff"
	"github.com/ik5/monofy/formats/mp3"
	"github.com/ik5/monofy/formats/vorbis"
	"github.com/ik5/monofy/formats/wav"
	"github.com/ik5/monofy/internal/config"
	"github.com/ik5/monofy/internal/progress"
)

// Tracker receives progress for one comparison pass.
type Tracker interface {
	audio.Progress
	Finish()
}

// TrackerFunc creates the Tracker for a pass over frames frames of path.
type TrackerFunc func(path string, frames int64) Tracker

// SinkFunc creates the output container for a mono file.
type SinkFunc func(path string, format audio.Format) (audio.Sink, error)

// Pipeline runs the per-file detection and extraction.
type Pipeline struct {
	cfg        *config.Config
	registry   *audio.Registry
	fallback   audio.Decoder
	logger     *zap.Logger
	newTracker TrackerFunc
	createSink SinkFunc
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegistry replaces the decoders looked up by file extension.
func WithRegistry(r *audio.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithTracker replaces the console progress bar.
func WithTracker(f TrackerFunc) Option {
	return func(p *Pipeline) { p.newTracker = f }
}

// WithSink replaces the WAV writer used for mono output.
func WithSink(f SinkFunc) Option {
	return func(p *Pipeline) { p.createSink = f }
}

// New creates a Pipeline for cfg.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:        cfg,
		registry:   DefaultRegistry(),
		fallback:   wav.Decoder{},
		logger:     logger,
		newTracker: ConsoleTracker(os.Stderr),
		createSink: createWAV,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// DefaultRegistry knows every container monofy can read.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}

// ConsoleTracker draws a progress bar on out for every pass.
func ConsoleTracker(out io.Writer) TrackerFunc {
	return func(path string, frames int64) Tracker {
		return progress.New(out, filepath.Base(path), frames)
	}
}

func createWAV(path string, format audio.Format) (audio.Sink, error) {
	return wav.Create(path, format)
}

// fileSource closes the underlying file together with the decoder.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	return multierr.Append(s.Source.Close(), s.f.Close())
}

// Open decodes path with the decoder registered for its extension. Files
// with an unknown extension are read as WAV. Every failure is an open
// OpError.
func (p *Pipeline) Open(path string) (audio.Source, error) {
	dec, ok := p.registry.Get(filepath.Ext(path))
	if !ok {
		dec = p.fallback
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &audio.OpError{Op: audio.OpOpen, Path: path, Err: err}
	}

	src, err := dec.Decode(f)
	if err != nil {
		return nil, &audio.OpError{Op: audio.OpOpen, Path: path, Err: multierr.Append(err, f.Close())}
	}

	return &fileSource{Source: src, f: f}, nil
}

// OutputPath replaces the extension of input with "MONO.wav".
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == filepath.Base(input) {
		// dot file, nothing to replace
		ext = ""
	}
	return strings.TrimSuffix(input, ext) + ".MONO.wav"
}

// isOutput reports whether name looks like a file monofy wrote.
func isOutput(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".mono.wav")
}
