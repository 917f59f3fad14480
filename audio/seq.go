// SPDX-License-Identifier: EPL-2.0

package audio

import "iter"

// Pairs groups an interleaved sequence into (left, right) pairs.
// A trailing unpaired item is dropped.
func Pairs[T any](seq iter.Seq[T]) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		var (
			left    T
			hasLeft bool
		)
		for v := range seq {
			if !hasLeft {
				left, hasLeft = v, true
				continue
			}
			hasLeft = false
			if !yield(left, v) {
				return
			}
		}
	}
}

// Stride yields the items at index 0, step, 2*step, ...
func Stride[T any](seq iter.Seq[T], step int) iter.Seq[T] {
	if step < 1 {
		step = 1
	}
	return func(yield func(T) bool) {
		i := 0
		for v := range seq {
			if i%step == 0 && !yield(v) {
				return
			}
			i++
		}
	}
}

// CountedPairs reports one unit of progress for every pair it passes on.
func CountedPairs[L, R any](seq iter.Seq2[L, R], p Progress) iter.Seq2[L, R] {
	if p == nil {
		p = NopProgress{}
	}
	return func(yield func(L, R) bool) {
		for l, r := range seq {
			p.Add(1)
			if !yield(l, r) {
				return
			}
		}
	}
}

// Differences maps each pair through diff.
func Differences[T any](pairs iter.Seq2[T, T], diff func(left, right T) float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for l, r := range pairs {
			if !yield(diff(l, r)) {
				return
			}
		}
	}
}

// Any reports whether pred holds for some item, stopping at the first one.
func Any[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for v := range seq {
		if pred(v) {
			return true
		}
	}
	return false
}
