// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// It uses the github.com/go-audio/wav library for RIFF parsing and
// writing.
//
// # Supported Formats
//
// Both directions support:
//   - PCM integer, 8, 16, 24 and 32-bit (format tag 1)
//   - IEEE float, 32-bit (format tag 3)
//   - Any channel count and sample rate
//
// The decoder also reads WAVE_FORMAT_EXTENSIBLE files whose SubFormat is PCM
// or IEEE float, as written by most DAWs for 24-bit and float audio. The
// writer always uses the plain tags. Compressed layouts are rejected with
// ErrUnsupportedWavLayout.
//
// Odd sized data chunks are padded to an even length on write, as RIFF
// requires. On read the pad byte is never returned as a sample.
//
// # Decoding WAV Files
//
//	f, _ := os.Open("audio.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples are signed container values. 8-bit files store unsigned bytes;
// the decoder recenters them around zero. Float files yield the IEEE 754
// bit pattern of every sample (see audio.FloatFromBits).
//
// # Writing WAV Files
//
//	w, err := wav.Create("out.MONO.wav", format.Mono())
//	if err != nil {
//	    // Handle error
//	}
//	if err := w.WriteSamples(samples); err != nil {
//	    w.Abort()
//	}
//	err = w.Close()
//
// Create rejects an invalid format before the file is touched. Close patches
// the RIFF and data chunk sizes and closes the file; Abort removes it.
package wav
