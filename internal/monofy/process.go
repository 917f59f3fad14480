// SPDX-License-Identifier: EPL-2.0

package monofy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ik5/monofy/audio"
)

// Outcome is what happened to a file that was processed without error.
type Outcome int

const (
	// OutcomeStereo means the channels differ; nothing was written.
	OutcomeStereo Outcome = iota + 1
	// OutcomeFauxStereo means the channels match but this is a dry run.
	OutcomeFauxStereo
	// OutcomeExtracted means a mono file was written.
	OutcomeExtracted
	// OutcomeSkipped means the mono file already existed.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStereo:
		return "stereo"
	case OutcomeFauxStereo:
		return "faux stereo"
	case OutcomeExtracted:
		return "extracted"
	case OutcomeSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the outcome of ProcessFile.
type Result struct {
	Path       string
	Outcome    Outcome
	Analysis   Analysis
	Extraction Extraction
}

// ProcessFile analyzes path and, unless it is real stereo or the run is
// dry, extracts its left channel.
func (p *Pipeline) ProcessFile(path string) (Result, error) {
	res := Result{Path: path}

	p.logger.Debug("processing", zap.String("path", path))

	a, err := p.Analyze(path)
	res.Analysis = a
	if err != nil {
		return res, err
	}

	switch {
	case a.Differs:
		res.Outcome = OutcomeStereo
		return res, nil
	case p.cfg.DryRun:
		res.Outcome = OutcomeFauxStereo
		return res, nil
	}

	ex, err := p.Extract(path)
	res.Extraction = ex
	if err != nil {
		return res, err
	}

	res.Outcome = OutcomeExtracted
	if ex.Skipped {
		res.Outcome = OutcomeSkipped
	}

	return res, nil
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Stereo     int
	FauxStereo int
	Extracted  int
	Skipped    int
	Failed     int
	// Errors holds every per-file error, combined with multierr.
	Errors error
}

// Processed is the number of files that were attempted.
func (s Summary) Processed() int {
	return s.Stereo + s.FauxStereo + s.Extracted + s.Skipped + s.Failed
}

func (s *Summary) add(res Result, err error) {
	if err != nil {
		s.Failed++
		s.Errors = multierr.Append(s.Errors, err)
		return
	}

	switch res.Outcome {
	case OutcomeStereo:
		s.Stereo++
	case OutcomeFauxStereo:
		s.FauxStereo++
	case OutcomeExtracted:
		s.Extracted++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// ProcessDir runs ProcessFile on every regular file in dir whose extension
// is configured. Generated ".MONO.wav" files are left alone. Per-file
// errors are logged and collected in the Summary; only an unreadable
// directory or a cancelled ctx stops the batch. ctx is checked between
// files, never inside one.
func (p *Pipeline) ProcessDir(ctx context.Context, dir string) (Summary, error) {
	var sum Summary

	entries, err := os.ReadDir(dir)
	if err != nil {
		return sum, &audio.OpError{Op: audio.OpOpen, Path: dir, Err: err}
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !p.cfg.HasExtension(name) || isOutput(name) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return sum, err
		}

		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			if err != nil {
				p.logger.Error("processing failed", zap.String("path", path), zap.Error(err))
				sum.add(Result{}, &audio.OpError{Op: audio.OpOpen, Path: path, Err: err})
			}
			continue
		}

		res, err := p.ProcessFile(path)
		if err != nil {
			p.logger.Error("processing failed", zap.String("path", path), zap.Error(err))
		}
		sum.add(res, err)
	}

	p.logger.Info("batch finished",
		zap.String("dir", dir),
		zap.Int("processed", sum.Processed()),
		zap.Int("stereo", sum.Stereo),
		zap.Int("faux_stereo", sum.FauxStereo),
		zap.Int("extracted", sum.Extracted),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
	)

	return sum, nil
}

// Run processes target. An empty target means the working directory. A
// directory is processed as a batch, anything else as a single file whose
// error is returned.
func (p *Pipeline) Run(ctx context.Context, target string) error {
	for _, w := range p.cfg.Warnings() {
		p.logger.Warn(w, zap.Uint32("dither", p.cfg.Dither))
	}

	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return &audio.OpError{Op: audio.OpOpen, Path: ".", Err: err}
		}
		p.logger.Info("no input file given, processing current directory", zap.String("dir", wd))
		_, err = p.ProcessDir(ctx, wd)
		return err
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		_, err = p.ProcessDir(ctx, target)
		return err
	}

	_, err := p.ProcessFile(target)
	return err
}
