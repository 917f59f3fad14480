// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// CopyLeftChannel streams the left channel of a stereo Source into sink,
// sample values unchanged. It returns the number of frames written. A sink
// failure stops the copy at once and is returned as an OpWrite OpError.
//
// CopyLeftChannel neither closes nor aborts sink.
func CopyLeftChannel(src Source, sink Sink) (int64, error) {
	format := src.Format()
	if format.Channels != 2 {
		return 0, fmt.Errorf("%w: %d channels", ErrNotStereo, format.Channels)
	}

	kind, err := format.Kind()
	if err != nil {
		return 0, err
	}

	switch kind {
	case KindInt8:
		return copyLeft(NewStream(src, decodeInt8, DefaultBufSize), encodeInt8, sink)
	case KindInt16:
		return copyLeft(NewStream(src, decodeInt16, DefaultBufSize), encodeInt16, sink)
	case KindInt32:
		return copyLeft(NewStream(src, decodeInt32, DefaultBufSize), encodeInt32, sink)
	case KindFloat32:
		return copyLeft(NewStream(src, decodeFloat32, DefaultBufSize), encodeFloat32, sink)
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
}

func copyLeft[T Sample](s *Stream[T], encode func(T) int, sink Sink) (int64, error) {
	var written int64
	batch := make([]int, 0, DefaultBufSize/2)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := sink.WriteSamples(batch); err != nil {
			return &OpError{Op: OpWrite, Err: err}
		}
		written += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for v := range Stride(s.All(), 2) {
		batch = append(batch, encode(v))
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := s.Err(); err != nil {
		return written, err
	}
	if err := flush(); err != nil {
		return written, err
	}

	return written, nil
}
