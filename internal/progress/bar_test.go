// SPDX-License-Identifier: EPL-2.0

package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/monofy/audio"
	"github.com/ik5/monofy/internal/audiotest"
)

func TestBar_NotTerminal(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	b := New(&out, "test.wav", 100)

	b.Add(50)
	b.Finish()

	assert.Empty(t, out.String())
	assert.Equal(t, int64(50), b.Done())
	assert.Equal(t, 50, b.Percent())
}

func TestBar_DrawsOnPercentChange(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	b := New(&out, "", 1000, WithTerminal(true), WithInterval(0))

	b.Add(5) // 0%
	b.Add(4) // still 0%
	b.Add(1) // 1%

	draws := strings.Count(out.String(), "\r")
	assert.Equal(t, 2, draws)
	assert.Contains(t, out.String(), "  1% 10/1,000 frames")
}

func TestBar_RateLimited(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	b := New(&out, "x", 100, WithTerminal(true), WithInterval(time.Hour))

	for range 100 {
		b.Add(1)
	}

	// The burst allows the first redraw only.
	assert.Equal(t, 1, strings.Count(out.String(), "\r"))
}

func TestBar_Finish(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	b := New(&out, "song.wav", 2000000, WithTerminal(true), WithInterval(time.Hour))

	b.Add(2000000)
	b.Finish()

	lines := strings.Split(out.String(), "\r")
	last := lines[len(lines)-1]

	assert.True(t, strings.HasPrefix(last, "song.wav ["+strings.Repeat("=", width)+"]"))
	assert.Contains(t, last, "100% 2,000,000/2,000,000 frames")
	assert.True(t, strings.HasSuffix(last, "\n"))
}

func TestBar_EmptyPass(t *testing.T) {
	t.Parallel()

	b := New(&bytes.Buffer{}, "", 0)
	assert.Equal(t, 100, b.Percent())
}

func TestBar_OverCount(t *testing.T) {
	t.Parallel()

	b := New(&bytes.Buffer{}, "", 10)
	b.Add(25)
	assert.Equal(t, 100, b.Percent())
}

func TestBar_DoesNotAlterComparison(t *testing.T) {
	t.Parallel()

	format := audio.Format{Channels: 2, SampleRate: 8000, BitsPerSample: 16, Encoding: audio.EncodingInteger}
	src := audiotest.NewStereoSource(format, 500, func(frame, _ int) int { return frame })

	var out bytes.Buffer
	b := New(&out, "", src.Frames(), WithTerminal(true), WithInterval(0))

	differs, err := audio.ChannelsDiffer(src, audio.Tolerance{}, b)
	require.NoError(t, err)
	b.Finish()

	assert.False(t, differs)
	assert.Equal(t, int64(500), b.Done())
	assert.Contains(t, out.String(), "100% 500/500 frames")
}

func BenchmarkBar_Add(b *testing.B) {
	bar := New(&bytes.Buffer{}, "bench", 1<<40, WithTerminal(true))

	b.ReportAllocs()
	for b.Loop() {
		bar.Add(1)
	}
}
