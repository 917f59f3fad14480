// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files so that
// stereo masters exported from macOS tools can be checked for faux stereo
// the same way WAV files are.
//
// # Supported Formats
//
//   - PCM integer, 8, 16, 24 and 32-bit
//   - Any channel count and sample rate
//
// AIFF-C compressed streams are not supported.
//
// # Decoding AIFF Files
//
//	f, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int, 4096)
//	n, err := src.ReadSamples(buf)
//
// AIFF is big-endian; go-audio handles the byte order and the decoder
// yields the same signed container values the WAV decoder does. Extracted
// left channels are therefore written as WAV files with the same bit depth.
package aiff
