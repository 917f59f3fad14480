// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
)

// Sample is any in-memory sample type a Format can decode into.
type Sample interface {
	~int8 | ~int16 | ~int32 | ~float32
}

// DefaultBufSize is the number of container values fetched per read.
const DefaultBufSize = 4096

// Stream is a lazy, forward-only typed view over a Source. It cannot be
// restarted; a fresh pass needs a freshly opened Source.
type Stream[T Sample] struct {
	src    Source
	decode func(int) T
	buf    []int
	err    error
	used   bool
}

// NewStream decodes src through decode, bufSize values at a time.
func NewStream[T Sample](src Source, decode func(int) T, bufSize int) *Stream[T] {
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}
	return &Stream[T]{
		src:    src,
		decode: decode,
		buf:    make([]int, bufSize),
	}
}

// All yields every remaining sample. Iteration ends at the end of the
// stream or at the first read error, which is then available from Err.
func (s *Stream[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s.used {
			return
		}
		s.used = true

		for {
			n, err := s.src.ReadSamples(s.buf)
			for _, v := range s.buf[:n] {
				if !yield(s.decode(v)) {
					return
				}
			}

			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				s.err = fmt.Errorf("reading samples: %w", err)
				return
			}
			if n == 0 {
				return
			}
		}
	}
}

// Err returns the read error that ended iteration, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

func decodeInt8(v int) int8   { return int8(v) }
func decodeInt16(v int) int16 { return int16(v) }
func decodeInt32(v int) int32 { return int32(v) }

func decodeFloat32(v int) float32 {
	return math.Float32frombits(uint32(int32(v)))
}

func encodeInt8(v int8) int   { return int(v) }
func encodeInt16(v int16) int { return int(v) }
func encodeInt32(v int32) int { return int(v) }

func encodeFloat32(v float32) int {
	return int(int32(math.Float32bits(v)))
}

// FloatBits converts a float sample to the container value Source and
// Sink use for float streams.
func FloatBits(v float32) int {
	return encodeFloat32(v)
}

// FloatFromBits is the inverse of FloatBits.
func FloatFromBits(v int) float32 {
	return decodeFloat32(v)
}
