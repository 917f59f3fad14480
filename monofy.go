// SPDX-License-Identifier: EPL-2.0

package monofy

import (
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/ik5/monofy/audio"
	"github.com/ik5/monofy/formats/wav"
)

// IsFauxStereo reports whether both channels of the stereo src carry the
// same signal, allowing a left/right difference of up to threshold. A
// threshold of 0 requires identical samples. Float streams scale threshold
// by audio.DefaultFloatScale.
//
// src is read until the first differing frame or the end of the stream.
// It is not closed.
//
// Example:
//
//	f, _ := os.Open("take1.wav")
//	src, _ := wav.Decoder{}.Decode(f)
//	faux, err := monofy.IsFauxStereo(src, 0)
func IsFauxStereo(src audio.Source, threshold uint32) (bool, error) {
	differs, err := audio.ChannelsDiffer(src, audio.Tolerance{Threshold: threshold}, nil)
	if err != nil {
		return false, err
	}
	return !differs, nil
}

// WriteLeftChannel writes the left channel of the stereo src to ws as a
// mono WAV file with the same sample rate, bit depth and encoding. It
// returns the number of frames written.
//
// ws is not closed. On error its content is undefined.
func WriteLeftChannel(src audio.Source, ws io.WriteSeeker) (int64, error) {
	format := src.Format()
	if format.Channels != 2 {
		return 0, fmt.Errorf("%w: %d channels", audio.ErrNotStereo, format.Channels)
	}

	w, err := wav.NewWriter(ws, format.Mono())
	if err != nil {
		return 0, err
	}

	frames, err := audio.CopyLeftChannel(src, w)
	if err != nil {
		return frames, multierr.Append(err, w.Abort())
	}

	if err := w.Close(); err != nil {
		return frames, fmt.Errorf("finalizing WAV: %w", err)
	}

	return frames, nil
}
