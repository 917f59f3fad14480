// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/monofy/audio"
)

// go-mp3 always decodes to interleaved 16-bit little-endian stereo.
const (
	channels       = 2
	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8
	bytesPerFrame  = channels * bytesPerSample
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec    mp3Reader
	format audio.Format
	frames int64
	buf    []byte
}

func (s *source) Format() audio.Format { return s.format }
func (s *source) Frames() int64        { return s.frames }
func (s *source) Close() error         { return nil }

func (s *source) ReadSamples(dst []int) (int, error) {
	// Whole frames only, so a short read never splits a sample
	bytesNeeded := len(dst) / channels * bytesPerFrame
	if bytesNeeded == 0 {
		return 0, nil
	}
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf)
	if rem := n % bytesPerFrame; rem != 0 && err == nil {
		var m int
		m, err = io.ReadFull(s.dec, s.buf[n:n+bytesPerFrame-rem])
		n += m
	}

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = int(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if samples == 0 {
				return 0, io.EOF
			}
			return samples, nil
		}
		return samples, fmt.Errorf("%w", err)
	}
	if samples == 0 {
		return 0, io.EOF
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec), nil
}

func newSource(dec mp3Reader) *source {
	var frames int64
	if length := dec.Length(); length > 0 {
		frames = length / bytesPerFrame
	}

	return &source{
		dec: dec,
		format: audio.Format{
			Channels:      channels,
			SampleRate:    dec.SampleRate(),
			BitsPerSample: bitsPerSample,
			Encoding:      audio.EncodingInteger,
		},
		frames: frames,
		buf:    make([]byte, 8192),
	}
}
