// Package output renders request outcomes as they complete.
package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hwchen/pour/internal/runner"
)

// LineReporter writes one line per outcome:
//
//	0.123s, 200 OK, http://example.com
//	0.004s, error: connection refused, http://example.com
//
// A server-error outcome is followed by a second line holding its status.
// Lines are written as soon as Report is called; concurrent callers never
// interleave within a line.
type LineReporter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLineReporter(w io.Writer) *LineReporter {
	return &LineReporter{w: w}
}

var _ runner.Reporter = (*LineReporter)(nil)

func (r *LineReporter) Report(o runner.Outcome) {
	line := FormatOutcome(o)
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, line)
	if o.ServerError() {
		fmt.Fprintln(r.w, o.Status)
	}
}

// FormatOutcome renders the primary report line of an outcome.
func FormatOutcome(o runner.Outcome) string {
	status := o.Status
	if o.Failed() {
		status = "error: " + o.Err.Error()
	}
	return fmt.Sprintf("%s, %s, %s", formatElapsed(o.Elapsed), status, o.Spec.URL())
}

// formatElapsed renders whole seconds and truncated milliseconds.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := d / time.Second
	millis := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%d.%03ds", secs, millis)
}
