// SPDX-License-Identifier: EPL-2.0

package monofy

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ik5/monofy/audio"
)

// Analysis is the verdict of one comparison pass.
type Analysis struct {
	Path   string
	Format audio.Format
	Frames int64
	// Differs is true when at least one frame breaks the tolerance.
	Differs bool
}

// FauxStereo reports whether both channels matched everywhere.
func (a Analysis) FauxStereo() bool { return !a.Differs }

// Analyze compares the channels of path. Inputs that are not stereo, or
// whose samples cannot be compared, are rejected before any sample is read.
func (p *Pipeline) Analyze(path string) (Analysis, error) {
	src, err := p.Open(path)
	if err != nil {
		return Analysis{}, err
	}
	defer src.Close()

	format := src.Format()
	a := Analysis{
		Path:   path,
		Format: format,
		Frames: src.Frames(),
	}

	if format.Channels != 2 {
		return a, &audio.OpError{
			Op:   audio.OpOpen,
			Path: path,
			Err:  fmt.Errorf("%w: %d channels", audio.ErrNotStereo, format.Channels),
		}
	}
	if _, err := format.Kind(); err != nil {
		return a, &audio.OpError{Op: audio.OpOpen, Path: path, Err: err}
	}

	p.logger.Info("analyzing",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.String("frames", humanize.Comma(a.Frames)),
	)

	tracker := p.newTracker(path, a.Frames)
	a.Differs, err = audio.ChannelsDiffer(src, p.cfg.Tolerance(), tracker)
	tracker.Finish()
	if err != nil {
		return a, fmt.Errorf("comparing channels of %q: %w", path, err)
	}

	if a.Differs {
		p.logger.Info("channels are different, file is real stereo", zap.String("path", path))
	} else {
		p.logger.Info("channels are identical, faux stereo detected", zap.String("path", path))
	}

	return a, nil
}
