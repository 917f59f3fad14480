// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/monofy/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec    aiffReader
	format audio.Format
	frames int64
	intBuf *goaudio.IntBuffer
}

func (s *source) Format() audio.Format { return s.format }
func (s *source) Frames() int64        { return s.frames }
func (s *source) Close() error         { return nil }

func (s *source) ReadSamples(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// Resize buffer if needed
	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.format.BitsPerSample,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	// Read from decoder
	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	copy(dst, s.intBuf.Data[:n])

	// AIFF stores 8-bit samples signed; fold any byte value into range
	if s.format.BitsPerSample == 8 {
		for i := range n {
			dst[i] = int(int8(dst[i]))
		}
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	goFormat := dec.Format()
	if goFormat == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	format := audio.Format{
		Channels:      goFormat.NumChannels,
		SampleRate:    goFormat.SampleRate,
		BitsPerSample: int(dec.BitDepth),
		Encoding:      audio.EncodingInteger,
	}
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return &source{
		dec:    dec,
		format: format,
		frames: int64(dec.NumSampleFrames),
	}, nil
}
