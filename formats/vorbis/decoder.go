// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/monofy/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	format   audio.Format
	frames   int64
	frameBuf []float32 // buffer for reading from decoder
}

func (s *source) Format() audio.Format { return s.format }
func (s *source) Frames() int64        { return s.frames }
func (s *source) Close() error         { return nil }

func (s *source) ReadSamples(dst []int) (int, error) {
	// oggvorbis fills whole frames only
	size := len(dst) / s.format.Channels * s.format.Channels
	if size == 0 {
		return 0, nil
	}

	if cap(s.frameBuf) < size {
		s.frameBuf = make([]float32, size)
	}
	s.frameBuf = s.frameBuf[:size]

	// Read returns the number of float32 values, not frames
	n, err := s.dec.Read(s.frameBuf)
	for i, v := range s.frameBuf[:n] {
		dst[i] = audio.FloatBits(v)
	}

	if err != nil {
		if errors.Is(err, io.EOF) {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		return n, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec)
}

func newSource(dec oggReader) (*source, error) {
	format := audio.Format{
		Channels:      dec.Channels(),
		SampleRate:    dec.SampleRate(),
		BitsPerSample: 32,
		Encoding:      audio.EncodingFloat,
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &source{
		dec:      dec,
		format:   format,
		frames:   max(dec.Length(), 0),
		frameBuf: make([]float32, 4096),
	}, nil
}
