// SPDX-License-Identifier: EPL-2.0

package audio

// Progress receives units of work done during a pass. Implementations must
// return quickly; they run inline with the sample loop.
type Progress interface {
	Add(n int64)
}

// NopProgress discards progress.
type NopProgress struct{}

func (NopProgress) Add(int64) {}
