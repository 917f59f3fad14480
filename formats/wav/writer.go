// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"go.uber.org/multierr"

	"github.com/ik5/monofy/audio"
)

// Writer streams PCM samples into a WAV container. It implements
// audio.Sink. The RIFF and data chunk sizes are patched in by Close.
type Writer struct {
	enc    *gowav.Encoder
	buf    *goaudio.IntBuffer
	format audio.Format
	frames int64

	// set when the Writer owns the file
	file *os.File
	path string

	closed bool
}

// Create validates format, then creates (or truncates) the file at path and
// writes the WAV header. Nothing is created when format is rejected.
func Create(path string, format audio.Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	w, err := NewWriter(f, format)
	if err != nil {
		return nil, multierr.Combine(err, f.Close(), os.Remove(path))
	}
	w.file = f
	w.path = path

	return w, nil
}

// NewWriter writes the WAV header for format to ws. The caller keeps
// ownership of ws.
func NewWriter(ws io.WriteSeeker, format audio.Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	tag := formatPCM
	if format.Encoding == audio.EncodingFloat {
		tag = formatIEEEFloat
	}

	w := &Writer{
		enc:    gowav.NewEncoder(ws, format.SampleRate, format.BitsPerSample, format.Channels, tag),
		format: format,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: format.Channels,
				SampleRate:  format.SampleRate,
			},
			SourceBitDepth: format.BitsPerSample,
		},
	}

	// go-audio writes the header with the first buffer; an empty one makes
	// sure a zero-length stream still yields a valid file.
	if err := w.enc.Write(w.buf); err != nil {
		return nil, fmt.Errorf("writing WAV header: %w", err)
	}

	return w, nil
}

func (w *Writer) Format() audio.Format { return w.format }

// WriteSamples appends interleaved samples. Partial frames are not allowed.
func (w *Writer) WriteSamples(src []int) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(src)%w.format.Channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrUnsupportedWavLayout, len(src), w.format.Channels)
	}
	if len(src) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(src) {
		w.buf.Data = make([]int, len(src))
	}
	w.buf.Data = w.buf.Data[:len(src)]
	copy(w.buf.Data, src)

	// 8-bit WAV samples are stored unsigned
	if w.format.BitsPerSample == 8 {
		for i := range w.buf.Data {
			w.buf.Data[i] += 128
		}
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.frames += int64(len(src) / w.format.Channels)

	return nil
}

// Close finalizes the container and, when the Writer owns the file,
// closes it.
func (w *Writer) Close() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true

	var err error
	// RIFF chunks are word aligned; the pad byte is not part of the data
	// chunk size but counts towards the RIFF size.
	if w.frames*int64(w.format.BlockAlign())%2 == 1 {
		err = w.enc.AddLE(uint8(0))
	}
	if err == nil {
		err = w.enc.Close()
	}
	if w.file != nil {
		err = multierr.Append(err, w.file.Close())
	}

	return err
}

// Abort closes the Writer without finalizing and removes the file it
// created. On a Writer built with NewWriter it only marks it closed.
func (w *Writer) Abort() error {
	if w.closed && w.file == nil {
		return nil
	}
	wasClosed := w.closed
	w.closed = true

	if w.file == nil {
		return nil
	}

	var err error
	if !wasClosed {
		err = w.file.Close()
	}
	if rmErr := os.Remove(w.path); rmErr != nil && !os.IsNotExist(rmErr) {
		err = multierr.Append(err, rmErr)
	}

	return err
}
