// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Encoding is the numeric representation of samples inside a container.
type Encoding int

const (
	// EncodingInteger is signed integer PCM.
	EncodingInteger Encoding = iota + 1
	// EncodingFloat is IEEE 754 floating point.
	EncodingFloat
)

func (e Encoding) String() string {
	switch e {
	case EncodingInteger:
		return "integer"
	case EncodingFloat:
		return "float"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Kind is the in-memory type a sample of a given Format decodes into.
type Kind int

const (
	KindInt8 Kind = iota + 1
	KindInt16
	KindInt32
	KindFloat32
)

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Format describes the layout of a PCM stream.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	Encoding      Encoding
}

// Validate reports whether f can be decoded and encoded.
func (f Format) Validate() error {
	if f.Channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, f.Channels)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, f.SampleRate)
	}

	_, err := f.Kind()

	return err
}

// Kind maps the bit depth and encoding of f to a sample type.
// 24-bit integer samples widen to int32.
func (f Format) Kind() (Kind, error) {
	switch f.Encoding {
	case EncodingInteger:
		switch f.BitsPerSample {
		case 8:
			return KindInt8, nil
		case 16:
			return KindInt16, nil
		case 24, 32:
			return KindInt32, nil
		}
	case EncodingFloat:
		if f.BitsPerSample == 32 {
			return KindFloat32, nil
		}
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f.Encoding)
	}

	return 0, fmt.Errorf("%w: %d-bit %s", ErrUnsupportedFormat, f.BitsPerSample, f.Encoding)
}

// Mono returns f with a single channel. Every other field is kept.
func (f Format) Mono() Format {
	f.Channels = 1
	return f
}

// BlockAlign is the size in bytes of one frame.
func (f Format) BlockAlign() int {
	return f.Channels * f.BitsPerSample / 8
}

func (f Format) String() string {
	return fmt.Sprintf("%d ch, %d Hz, %d-bit %s", f.Channels, f.SampleRate, f.BitsPerSample, f.Encoding)
}
