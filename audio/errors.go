// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrNotStereo           = errors.New("not a stereo stream")
	ErrUnsupportedFormat   = errors.New("unsupported sample format")
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")
	ErrFloatOutputDisabled = errors.New("writing float samples is disabled")
)

// Op names the stage of a file operation that failed.
type Op string

const (
	OpOpen     Op = "open"
	OpCreate   Op = "create"
	OpWrite    Op = "write"
	OpFinalize Op = "finalize"
)

// OpError records a failed file operation and the path it was applied to.
type OpError struct {
	Op   Op
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsOp reports whether err wraps an OpError of the given op.
func IsOp(err error, op Op) bool {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Op == op
	}
	return false
}
