// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/monofy/audio"
)

// WAVE format tags.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// subFormatSuffix is the tail shared by the KSDATAFORMAT_SUBTYPE GUIDs; the
// first two bytes carry the plain format tag.
var subFormatSuffix = []byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// fmtExtensible is a WAVE_FORMAT_EXTENSIBLE fmt chunk.
type fmtExtensible struct {
	FormatTag      uint16
	Channels       uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	CbSize         uint16
	ValidBits      uint16
	ChannelMask    uint32
	SubFormat      [16]byte
}

// pcmReader is an interface for wav.Decoder to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio wav.Decoder to implement audio.Source
type source struct {
	dec    pcmReader
	format audio.Format
	frames int64
	intBuf *goaudio.IntBuffer
}

func (s *source) Format() audio.Format { return s.format }
func (s *source) Frames() int64        { return s.frames }
func (s *source) Close() error         { return nil }

func (s *source) ReadSamples(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// Resize buffer if needed
	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, len(dst)),
			Format: &goaudio.Format{
				NumChannels: s.format.Channels,
				SampleRate:  s.format.SampleRate,
			},
			SourceBitDepth: s.format.BitsPerSample,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	copy(dst, s.intBuf.Data[:n])

	// 8-bit WAV samples are stored unsigned
	if s.format.BitsPerSample == 8 {
		for i := range n {
			dst[i] -= 128
		}
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// boundedPCM stops after the declared number of samples so the RIFF pad
// byte of an odd sized data chunk is never decoded as a sample.
type boundedPCM struct {
	pcmReader
	left int64
}

func (b *boundedPCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if b.left <= 0 {
		return 0, io.EOF
	}

	n, err := b.pcmReader.PCMBuffer(buf)
	if int64(n) > b.left {
		n = int(b.left)
	}
	b.left -= int64(n)

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := gowav.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrNotWavFile
	}

	tag := dec.WavAudioFormat
	if tag == formatExtensible {
		sub, err := atStart(r, subFormat)
		if err != nil {
			return nil, err
		}
		tag = sub
	}

	format, err := formatOf(tag, int(dec.NumChans), int(dec.SampleRate), int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDataChunk, err)
	}

	size, err := dataSize(r, dec.PCMSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDataChunk, err)
	}
	frames := size / int64(format.BlockAlign())

	return &source{
		dec:    &boundedPCM{pcmReader: dec, left: frames * int64(format.Channels)},
		format: format,
		frames: frames,
	}, nil
}

// atStart runs parse from the beginning of r and restores the read
// position afterwards.
func atStart[T any](r io.ReadSeeker, parse func(io.Reader) (T, error)) (T, error) {
	var zero T

	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	v, err := parse(r)
	if _, seekErr := r.Seek(pos, io.SeekStart); err == nil && seekErr != nil {
		err = fmt.Errorf("%w: %w", ErrNotWavFile, seekErr)
	}

	return v, err
}

// subFormat returns the format tag carried by the SubFormat GUID of an
// extensible fmt chunk.
func subFormat(r io.Reader) (uint16, error) {
	p := riff.New(r)

	id, _, err := p.IDnSize()
	if err != nil || id != riff.RiffID {
		return 0, ErrNotWavFile
	}
	var form [4]byte
	if _, err := io.ReadFull(r, form[:]); err != nil || form != riff.WavFormatID {
		return 0, ErrNotWavFile
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: no fmt chunk", ErrNotWavFile)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		var ext fmtExtensible
		if ch.Size < binary.Size(ext) {
			return 0, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrUnsupportedWavLayout, ch.Size)
		}
		if err := ch.ReadLE(&ext); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		if !bytes.Equal(ext.SubFormat[2:], subFormatSuffix) {
			return 0, fmt.Errorf("%w: unknown sub format % x", ErrUnsupportedWavLayout, ext.SubFormat)
		}

		return binary.LittleEndian.Uint16(ext.SubFormat[:2]), nil
	}
}

// dataSize reads the data chunk size as stored in the file. go-audio rounds
// odd sizes up to include the pad byte. r must sit right after the data
// chunk header.
func dataSize(r io.ReadSeeker, padded int) (int64, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	if pos < 4 {
		return int64(padded), nil
	}

	if _, err := r.Seek(pos-4, io.SeekStart); err != nil {
		return 0, err
	}
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return 0, err
	}
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}

	return min(int64(size), int64(padded)), nil
}

// formatOf validates the fmt chunk fields.
func formatOf(tag uint16, channels, sampleRate, bitDepth int) (audio.Format, error) {
	format := audio.Format{
		Channels:      channels,
		SampleRate:    sampleRate,
		BitsPerSample: bitDepth,
	}

	switch tag {
	case formatPCM:
		format.Encoding = audio.EncodingInteger
	case formatIEEEFloat:
		format.Encoding = audio.EncodingFloat
	default:
		return audio.Format{}, fmt.Errorf("%w: format tag %#04x", ErrUnsupportedWavLayout, tag)
	}

	if err := format.Validate(); err != nil {
		return audio.Format{}, err
	}

	return format, nil
}
