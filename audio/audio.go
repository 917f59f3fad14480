// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"strings"
	"sync"
)

type Source interface {
	// Format of the PCM stream.
	Format() Format
	// Frames is the total frame count declared by the container. It is known
	// before the first read and does not consume the stream.
	Frames() int64
	// ReadSamples fills dst with interleaved, signed container values. Float
	// samples are carried as their IEEE 754 bit pattern.
	// Returns number of values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []int) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Sink accepts samples in the same representation Source produces them.
type Sink interface {
	WriteSamples(src []int) error
	// Close commits the container metadata.
	Close() error
	// Abort releases the sink and discards everything written so far.
	Abort() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry maps file extensions ("wav", "aiff", "mp3", ...) to decoders.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register binds d to format. A leading dot and letter case are ignored.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
