// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks for faux stereo
// detection and left channel extraction.
//
// This package contains:
//   - Format, the layout of a PCM stream, and its mapping to a sample Kind
//   - Source and Sink interfaces implemented by the container packages
//   - Stream, a lazy typed view over a Source
//   - Pairs, Stride and friends, iterator transforms over interleaved samples
//   - ChannelsDiffer, the left/right comparator
//   - CopyLeftChannel, the mono extraction loop
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of every pass:
//
//	type Source interface {
//	    Format() Format
//	    Frames() int64
//	    ReadSamples(dst []int) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved (L, R, L, R, ...) signed container values. Float
// streams carry the IEEE 754 bit pattern of each sample so that values pass
// through untouched; use FloatFromBits and FloatBits to convert.
//
// A Source is single pass. Comparing and extracting the same file needs two
// independently opened Sources.
//
// # Sample Kinds
//
// Each valid Format decodes into exactly one Go type:
//
//	 8-bit integer  -> int8
//	16-bit integer  -> int16
//	24-bit integer  -> int32
//	32-bit integer  -> int32
//	32-bit float    -> float32
//
// ChannelsDiffer and CopyLeftChannel branch on the kind once and then run a
// single generic loop for that type.
//
// # Comparing Channels
//
//	differs, err := audio.ChannelsDiffer(src, audio.Tolerance{Threshold: 4}, progress)
//	if err != nil {
//	    // Handle error
//	}
//	if !differs {
//	    // faux stereo
//	}
//
// With a zero threshold the channels must match exactly. Otherwise integer
// streams allow |L-R| <= Threshold and float streams allow
// |L-R| <= Threshold*FloatScale (DefaultFloatScale when unset).
//
// # Extracting the Left Channel
//
//	frames, err := audio.CopyLeftChannel(src, sink)
//
// Only even-indexed samples are written; values are neither converted nor
// clipped. The caller finalizes or aborts the sink.
//
// # Format Registry
//
// Register decoders by file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.Register("aiff", aiff.Decoder{})
//
//	decoder, ok := registry.Get(".WAV")
//
// Extensions are matched without the leading dot and case-insensitively.
package audio
