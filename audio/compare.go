// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelsDiffer reads a stereo Source to the end, or to the first pair
// whose difference breaks tol, and reports whether such a pair exists.
// A false result means the stream is faux stereo; an empty stream is faux
// stereo as well.
//
// One unit of progress is reported per pair consumed.
func ChannelsDiffer(src Source, tol Tolerance, progress Progress) (bool, error) {
	format := src.Format()
	if format.Channels != 2 {
		return false, fmt.Errorf("%w: %d channels", ErrNotStereo, format.Channels)
	}

	kind, err := format.Kind()
	if err != nil {
		return false, err
	}
	pred := tol.Predicate(kind)

	switch kind {
	case KindInt8:
		return compareChannels(NewStream(src, decodeInt8, DefaultBufSize), intDiff[int8], pred, progress)
	case KindInt16:
		return compareChannels(NewStream(src, decodeInt16, DefaultBufSize), intDiff[int16], pred, progress)
	case KindInt32:
		return compareChannels(NewStream(src, decodeInt32, DefaultBufSize), intDiff[int32], pred, progress)
	case KindFloat32:
		return compareChannels(NewStream(src, decodeFloat32, DefaultBufSize), floatDiff, pred, progress)
	}

	return false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
}

func compareChannels[T Sample](s *Stream[T], diff func(l, r T) float64, differs Predicate, progress Progress) (bool, error) {
	pairs := CountedPairs(Pairs(s.All()), progress)
	found := Any(Differences(pairs, diff), differs)
	if err := s.Err(); err != nil {
		return false, err
	}
	return found, nil
}

// intDiff subtracts in int64 so 32-bit extremes cannot overflow.
func intDiff[T ~int8 | ~int16 | ~int32](l, r T) float64 {
	return float64(int64(l) - int64(r))
}

func floatDiff(l, r float32) float64 {
	return float64(l - r)
}
