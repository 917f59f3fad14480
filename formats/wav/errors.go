// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrNoDataChunk          = errors.New("WAV data chunk not found")
	ErrWriterClosed         = errors.New("WAV writer already closed")
)
