// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Output Format
//
// go-mp3 always decodes to 2-channel 16-bit integer PCM at the stream's
// sample rate, mono MP3 files included. Frames is derived from the decoded
// length, so the input must be seekable.
//
//	f, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int, 4096)
//	n, err := src.ReadSamples(buf)
//
// A joint stereo encode of a mono master decodes to identical channels, so
// faux stereo MP3s are detected with a zero threshold. Encoder noise
// usually calls for a small dither threshold.
package mp3
