// SPDX-License-Identifier: EPL-2.0

// Package monofy finds "faux stereo" recordings, stereo files whose two
// channels carry the same signal, and turns them into mono files holding
// the left channel.
//
// # Quick Start
//
// Check a decoded stream, then write its left channel:
//
//	f, _ := os.Open("take1.wav")
//	src, _ := wav.Decoder{}.Decode(f)
//
//	faux, _ := monofy.IsFauxStereo(src, 0)
//	if faux {
//	    f.Seek(0, io.SeekStart)
//	    src, _ = wav.Decoder{}.Decode(f)
//	    out, _ := os.Create("take1.MONO.wav")
//	    frames, _ := monofy.WriteLeftChannel(src, out)
//	    out.Close()
//	}
//
// A Source is consumed by a single pass, so the file is decoded again
// before extraction.
//
// # Threshold
//
// A threshold of 0 requires bit-identical channels. A positive threshold
// lets the channels differ by up to that many integer units, which is
// useful when the right channel was dithered independently. Float streams
// scale the threshold by audio.DefaultFloatScale.
//
// # Format Decoders
//
// Each format has its own decoder, all returning an audio.Source:
//
//	src, _ := wav.Decoder{}.Decode(reader)
//	src, _ := aiff.Decoder{}.Decode(reader)
//	src, _ := mp3.Decoder{}.Decode(reader)
//	src, _ := vorbis.Decoder{}.Decode(reader)
//
// Only WAV can be written. The monofy command in cmd/monofy processes
// single files or whole directories and names its output
// "<name>.MONO.wav".
//
// See the individual subpackages for more detailed documentation.
package monofy
