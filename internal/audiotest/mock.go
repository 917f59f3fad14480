// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"math"

	"github.com/ik5/monofy/audio"
)

// MockSource is a test helper that serves interleaved container values
// from memory. It implements audio.Source.
type MockSource struct {
	format  audio.Format
	samples []int
	offset  int
	readErr error // returned once offset reaches failAt
	failAt  int
	closed  bool
}

// NewMockSource creates a source holding samples in format.
func NewMockSource(format audio.Format, samples []int) *MockSource {
	return &MockSource{
		format:  format,
		samples: samples,
		failAt:  -1,
	}
}

// NewStereoSource builds a source of frames stereo frames whose values are
// produced by waveform.
func NewStereoSource(format audio.Format, frames int, waveform func(frame int, channel int) int) *MockSource {
	format.Channels = 2
	samples := make([]int, 0, frames*2)
	for f := range frames {
		samples = append(samples, waveform(f, 0), waveform(f, 1))
	}
	return NewMockSource(format, samples)
}

// NewFloatStereoSource is NewStereoSource for 32-bit float samples.
func NewFloatStereoSource(sampleRate, frames int, waveform func(frame int, channel int) float32) *MockSource {
	format := audio.Format{
		Channels:      2,
		SampleRate:    sampleRate,
		BitsPerSample: 32,
		Encoding:      audio.EncodingFloat,
	}
	return NewStereoSource(format, frames, func(frame, channel int) int {
		return audio.FloatBits(waveform(frame, channel))
	})
}

// NewSineSource creates a stereo source with the same sine wave on both
// channels, scaled to the integer range of format.
func NewSineSource(format audio.Format, frames int, frequency float64) *MockSource {
	peak := math.Pow(2, float64(format.BitsPerSample-1)) - 1
	return NewStereoSource(format, frames, func(frame, _ int) int {
		t := float64(frame) / float64(format.SampleRate)
		return int(peak * math.Sin(2*math.Pi*frequency*t))
	})
}

// FailAfter makes ReadSamples return err once n values have been served.
func (m *MockSource) FailAfter(n int, err error) *MockSource {
	m.failAt = n
	m.readErr = err
	return m
}

func (m *MockSource) Format() audio.Format { return m.format }

func (m *MockSource) Frames() int64 {
	if m.format.Channels == 0 {
		return 0
	}
	return int64(len(m.samples) / m.format.Channels)
}

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Samples returns the values the source was built with.
func (m *MockSource) Samples() []int { return m.samples }

func (m *MockSource) ReadSamples(dst []int) (int, error) {
	if m.failAt >= 0 && m.offset >= m.failAt {
		return 0, m.readErr
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	end := min(m.offset+len(dst), len(m.samples))
	if m.failAt >= 0 {
		end = min(end, m.failAt)
	}
	n := copy(dst, m.samples[m.offset:end])
	m.offset += n

	if m.offset >= len(m.samples) {
		return n, io.EOF
	}

	return n, nil
}

// ErrSinkFull is returned by a MemorySink once its limit is reached.
var ErrSinkFull = errors.New("sink full")

// MemorySink records written samples in memory. It implements audio.Sink.
type MemorySink struct {
	Samples  []int
	Closed   bool
	Aborted  bool
	limit    int
	closeErr error
}

// NewMemorySink creates an unbounded sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{limit: -1}
}

// WithLimit makes WriteSamples fail with ErrSinkFull once more than n
// samples would be held.
func (s *MemorySink) WithLimit(n int) *MemorySink {
	s.limit = n
	return s
}

// WithCloseError makes Close fail with err.
func (s *MemorySink) WithCloseError(err error) *MemorySink {
	s.closeErr = err
	return s
}

func (s *MemorySink) WriteSamples(src []int) error {
	if s.limit >= 0 && len(s.Samples)+len(src) > s.limit {
		return ErrSinkFull
	}
	s.Samples = append(s.Samples, src...)
	return nil
}

func (s *MemorySink) Close() error {
	s.Closed = true
	return s.closeErr
}

func (s *MemorySink) Abort() error {
	s.Aborted = true
	s.Samples = nil
	return nil
}
