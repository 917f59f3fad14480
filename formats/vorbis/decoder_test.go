// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/monofy/audio"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int {
	return m.sampleRate
}

func (m *mockOggVorbisReader) Channels() int {
	return m.channels
}

func (m *mockOggVorbisReader) Length() int64 {
	return int64(len(m.samples) / m.channels)
}

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func newMockSource(t testing.TB, channels int, samples []float32) *source {
	t.Helper()

	src, err := newSource(&mockOggVorbisReader{
		sampleRate: 44100,
		channels:   channels,
		samples:    samples,
	})
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	return src
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("This is not Ogg Vorbis data")},
		{"empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newMockSource(t, 2, make([]float32, 100))

	want := audio.Format{Channels: 2, SampleRate: 44100, BitsPerSample: 32, Encoding: audio.EncodingFloat}
	if got := src.Format(); got != want {
		t.Errorf("Format() = %v, want %v", got, want)
	}
	if got := src.Frames(); got != 50 {
		t.Errorf("Frames() = %d, want 50", got)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestNewSource_ZeroChannels(t *testing.T) {
	t.Parallel()

	_, err := newSource(&mockOggVorbisReader{sampleRate: 44100})
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("newSource() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	testSamples := []float32{0.5, -0.5, 0.25, -0.25, 1, -1}
	src := newMockSource(t, 2, testSamples)

	dst := make([]int, 16)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(testSamples) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(testSamples))
	}

	for i, want := range testSamples {
		if got := audio.FloatFromBits(dst[i]); got != want {
			t.Errorf("dst[%d] = %v, want %v", i, got, want)
		}
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("second ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadSamples_WholeFrames(t *testing.T) {
	t.Parallel()

	src := newMockSource(t, 2, []float32{1, 2, 3, 4})

	// 3 slots hold one stereo frame
	n, err := src.ReadSamples(make([]int, 3))
	if n != 2 || err != nil {
		t.Errorf("ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}

	n, err = src.ReadSamples(make([]int, 1))
	if n != 0 || err != nil {
		t.Errorf("ReadSamples() with sub-frame buffer = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newMockSource(t, 2, []float32{1, 2})
	src.dec.(*mockOggVorbisReader).returnErrors = true

	_, err := src.ReadSamples(make([]int, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_FloatTolerance(t *testing.T) {
	t.Parallel()

	// Right channel off by less than 2 * 0.000117
	samples := make([]float32, 0, 200)
	for i := range 100 {
		v := float32(i) / 100
		samples = append(samples, v, v+0.0002)
	}

	differs, err := audio.ChannelsDiffer(newMockSource(t, 2, samples), audio.Tolerance{Threshold: 2}, nil)
	if err != nil {
		t.Fatalf("ChannelsDiffer() error = %v", err)
	}
	if differs {
		t.Error("ChannelsDiffer() = true, want false within tolerance")
	}

	differs, err = audio.ChannelsDiffer(newMockSource(t, 2, samples), audio.Tolerance{}, nil)
	if err != nil {
		t.Fatalf("ChannelsDiffer() error = %v", err)
	}
	if !differs {
		t.Error("ChannelsDiffer() = false, want true with zero threshold")
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 44100*2)
	dst := make([]int, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newMockSource(b, 2, samples)
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
