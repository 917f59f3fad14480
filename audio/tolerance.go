// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// DefaultFloatScale maps one integer dither unit (roughly a 16-bit LSB)
// into the [-1, 1] float sample range. The value is empirical.
const DefaultFloatScale = 0.000117

// Predicate reports whether a left/right difference breaks the tolerance.
type Predicate func(diff float64) bool

// Tolerance is the allowed left/right difference. A zero Threshold means
// the channels must match exactly.
type Tolerance struct {
	Threshold uint32
	// FloatScale converts Threshold for float streams. Zero means
	// DefaultFloatScale.
	FloatScale float64
}

// Predicate picks the integer or float rule for kind.
func (t Tolerance) Predicate(kind Kind) Predicate {
	if kind == KindFloat32 {
		scale := t.FloatScale
		if scale == 0 {
			scale = DefaultFloatScale
		}
		return FloatPredicate(t.Threshold, scale)
	}
	return IntegerPredicate(t.Threshold)
}

// IntegerPredicate: diff != 0 for threshold 0, otherwise |diff| > threshold.
func IntegerPredicate(threshold uint32) Predicate {
	if threshold == 0 {
		return func(diff float64) bool { return diff != 0 }
	}
	limit := float64(threshold)
	return func(diff float64) bool { return math.Abs(diff) > limit }
}

// FloatPredicate: diff != 0 for threshold 0, otherwise
// |diff| > threshold*scale.
func FloatPredicate(threshold uint32, scale float64) Predicate {
	if threshold == 0 {
		return func(diff float64) bool { return diff != 0 }
	}
	limit := float64(threshold) * scale
	return func(diff float64) bool { return math.Abs(diff) > limit }
}
