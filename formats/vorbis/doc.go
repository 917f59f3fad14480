// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes to 32-bit
// float samples, which the Source carries as IEEE 754 bit patterns:
//
//	f, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int, 4096)
//	n, err := src.ReadSamples(buf)
//	left := audio.FloatFromBits(buf[0])
//
// Reads always cover whole frames; a buffer shorter than one frame reads
// nothing.
package vorbis
