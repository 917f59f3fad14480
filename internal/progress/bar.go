// SPDX-License-Identifier: EPL-2.0

// Package progress draws a single-line console progress bar for one pass
// over an audio stream.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/time/rate"
)

const (
	// DefaultInterval is the minimum time between two redraws.
	DefaultInterval = 100 * time.Millisecond

	width = 40
)

// Bar reports how many frames of a pass have been processed. It is not safe
// for concurrent use and must not be reused once Finish is called.
type Bar struct {
	out     io.Writer
	label   string
	total   int64
	done    int64
	percent int
	enabled bool
	limiter *rate.Limiter
}

// Option configures a Bar.
type Option func(*Bar)

// WithInterval sets the minimum time between redraws. Zero disables the
// limit.
func WithInterval(d time.Duration) Option {
	return func(b *Bar) {
		if d <= 0 {
			b.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		b.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithTerminal forces drawing on or off regardless of out.
func WithTerminal(enabled bool) Option {
	return func(b *Bar) {
		b.enabled = enabled
	}
}

// New creates a bar for a pass of total frames. Nothing is drawn unless out
// is a terminal.
func New(out io.Writer, label string, total int64, opts ...Option) *Bar {
	b := &Bar{
		out:     out,
		label:   label,
		total:   total,
		percent: -1,
		enabled: isTerminal(out),
		limiter: rate.NewLimiter(rate.Every(DefaultInterval), 1),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Add records n more frames. A redraw happens only when the whole percent
// value changes and the rate limit allows it.
func (b *Bar) Add(n int64) {
	b.done += n
	if !b.enabled {
		return
	}

	pct := b.Percent()
	if pct == b.percent || !b.limiter.Allow() {
		return
	}

	b.percent = pct
	b.draw()
}

// Done is the number of frames recorded so far.
func (b *Bar) Done() int64 { return b.done }

// Percent is the whole percentage of frames recorded, capped at 100. An
// empty pass is always complete.
func (b *Bar) Percent() int {
	if b.total <= 0 {
		return 100
	}
	return int(min(b.done*100/b.total, 100))
}

// Finish draws the final state and ends the line.
func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	b.percent = b.Percent()
	b.draw()
	fmt.Fprintln(b.out)
}

func (b *Bar) draw() {
	filled := b.percent * width / 100

	var sb strings.Builder
	sb.WriteString("\r")
	if b.label != "" {
		sb.WriteString(b.label)
		sb.WriteString(" ")
	}
	sb.WriteString("[")
	sb.WriteString(strings.Repeat("=", filled))
	if filled < width {
		sb.WriteString(">")
		sb.WriteString(strings.Repeat(" ", width-filled-1))
	}
	fmt.Fprintf(&sb, "] %3d%% %s/%s frames",
		b.percent, humanize.Comma(b.done), humanize.Comma(b.total))

	io.WriteString(b.out, sb.String())
}
