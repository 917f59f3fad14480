// SPDX-License-Identifier: EPL-2.0

package monofy

import (
	"crypto/sha256"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ik5/monofy/audio"
	"github.com/ik5/monofy/formats/wav"
	"github.com/ik5/monofy/internal/config"
)

var (
	stereo16 = audio.Format{Channels: 2, SampleRate: 44100, BitsPerSample: 16, Encoding: audio.EncodingInteger}
	stereoF  = audio.Format{Channels: 2, SampleRate: 48000, BitsPerSample: 32, Encoding: audio.EncodingFloat}

	errSinkBroken = errors.New("sink broken")
)

// recordingTracker counts the progress of a single pass.
type recordingTracker struct {
	mu       sync.Mutex
	total    int64
	done     int64
	finished bool
}

func (r *recordingTracker) Add(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done += n
}

func (r *recordingTracker) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = true
}

// trackers collects every Tracker a Pipeline creates.
type trackers struct {
	mu   sync.Mutex
	list []*recordingTracker
}

func (ts *trackers) factory(_ string, frames int64) Tracker {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	r := &recordingTracker{total: frames}
	ts.list = append(ts.list, r)
	return r
}

func (ts *trackers) count() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.list)
}

func newTestPipeline(t *testing.T, mutate func(*config.Config), opts ...Option) *Pipeline {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	ts := &trackers{}
	opts = append([]Option{WithTracker(ts.factory)}, opts...)

	return New(cfg, zaptest.NewLogger(t), opts...)
}

func writeWAV(t *testing.T, path string, format audio.Format, samples []int) {
	t.Helper()

	w, err := wav.Create(path, format)
	require.NoError(t, err)
	require.NoError(t, w.WriteSamples(samples))
	require.NoError(t, w.Close())
}

func readWAV(t *testing.T, path string) (audio.Format, []int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	require.NoError(t, err)

	var out []int
	buf := make([]int, 1024)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}

	return src.Format(), out
}

// interleave builds frames stereo frames from gen.
func interleave(frames int, gen func(frame int) (left, right int)) []int {
	samples := make([]int, 0, frames*2)
	for i := range frames {
		l, r := gen(i)
		samples = append(samples, l, r)
	}
	return samples
}

func leftChannel(samples []int) []int {
	left := make([]int, 0, len(samples)/2)
	for i := 0; i < len(samples); i += 2 {
		left = append(left, samples[i])
	}
	return left
}

func fileHash(t *testing.T, path string) [sha256.Size]byte {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return sha256.Sum256(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// flakySink wraps a real WAV writer and injects failures.
type flakySink struct {
	audio.Sink
	writes    int
	failAfter int
	closeErr  error
	abortErr  error
}

func (s *flakySink) WriteSamples(src []int) error {
	if s.failAfter >= 0 && s.writes >= s.failAfter {
		return errSinkBroken
	}
	s.writes++
	return s.Sink.WriteSamples(src)
}

func (s *flakySink) Close() error {
	err := s.Sink.Close()
	if s.closeErr != nil {
		return s.closeErr
	}
	return err
}

func (s *flakySink) Abort() error {
	err := s.Sink.Abort()
	if s.abortErr != nil {
		return s.abortErr
	}
	return err
}

func flaky(sink *flakySink) Option {
	return WithSink(func(path string, format audio.Format) (audio.Sink, error) {
		w, err := wav.Create(path, format)
		if err != nil {
			return nil, err
		}
		sink.Sink = w
		return sink, nil
	})
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
