// SPDX-License-Identifier: EPL-2.0

package monofy

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ik5/monofy/audio"
)

// Extraction describes the mono file produced for an input.
type Extraction struct {
	Output string
	Format audio.Format
	Frames int64
	// Skipped is set when Output already existed and overwriting is off.
	Skipped bool
	// Replaced is set when an existing Output was overwritten.
	Replaced bool
}

// Extract reopens path and writes its left channel to OutputPath(path).
// On any write or finalize failure the partial output is removed and the
// returned error names the output file.
func (p *Pipeline) Extract(path string) (Extraction, error) {
	src, err := p.Open(path)
	if err != nil {
		return Extraction{}, err
	}
	defer src.Close()

	if ch := src.Format().Channels; ch != 2 {
		return Extraction{}, &audio.OpError{
			Op:   audio.OpOpen,
			Path: path,
			Err:  fmt.Errorf("%w: %d channels", audio.ErrNotStereo, ch),
		}
	}

	ex := Extraction{
		Output: OutputPath(path),
		Format: src.Format().Mono(),
	}

	if _, err := os.Stat(ex.Output); err == nil {
		if p.cfg.NoOverwrites {
			p.logger.Info("target file already exists, skipping", zap.String("output", ex.Output))
			ex.Skipped = true
			return ex, nil
		}
		p.logger.Info("target file already exists, replacing", zap.String("output", ex.Output))
		ex.Replaced = true
	}

	if ex.Format.Encoding == audio.EncodingFloat && !p.cfg.FloatOutput {
		return ex, &audio.OpError{Op: audio.OpCreate, Path: ex.Output, Err: audio.ErrFloatOutputDisabled}
	}

	p.logger.Info("converting to mono", zap.String("output", ex.Output), zap.Stringer("format", ex.Format))

	sink, err := p.createSink(ex.Output, ex.Format)
	if err != nil {
		return ex, &audio.OpError{Op: audio.OpCreate, Path: ex.Output, Err: err}
	}

	ex.Frames, err = audio.CopyLeftChannel(src, sink)
	if err != nil {
		var opErr *audio.OpError
		if errors.As(err, &opErr) && opErr.Path == "" {
			opErr.Path = ex.Output
		}
		return ex, p.discard(sink, ex.Output, err)
	}

	if err := sink.Close(); err != nil {
		return ex, p.discard(sink, ex.Output, &audio.OpError{Op: audio.OpFinalize, Path: ex.Output, Err: err})
	}

	fields := []zap.Field{
		zap.String("output", ex.Output),
		zap.String("frames", humanize.Comma(ex.Frames)),
	}
	if info, err := os.Stat(ex.Output); err == nil {
		fields = append(fields, zap.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	p.logger.Info("mono file written", fields...)

	return ex, nil
}

// discard removes a partial output. A failed removal is only logged so it
// does not hide cause.
func (p *Pipeline) discard(sink audio.Sink, output string, cause error) error {
	if err := sink.Abort(); err != nil {
		p.logger.Warn("error removing created file, clean up manually",
			zap.String("output", output),
			zap.Error(err),
		)
	}

	return fmt.Errorf("failed writing %q: %w", output, cause)
}
