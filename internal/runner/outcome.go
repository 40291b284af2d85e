package runner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hwchen/pour/internal/worklist"
)

// Outcome is the result of executing one request spec. Exactly one of
// StatusCode or Err is meaningful: a request either produced a response of
// any status or it failed at the transport level.
type Outcome struct {
	Spec       worklist.RequestSpec
	StatusCode int
	Status     string // e.g. "200 OK"
	Elapsed    time.Duration
	Err        error
}

// Failed reports whether the request failed to produce a response.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// ServerError reports whether the response carried a 5xx status.
func (o Outcome) ServerError() bool {
	return o.Err == nil && o.StatusCode >= 500 && o.StatusCode <= 599
}

// ErrExtraCompletion is returned by Tracker.Emit when more signals arrive
// than were scheduled.
var ErrExtraCompletion = errors.New("completion tracker: more completion signals than scheduled requests")

// ErrTrackerClosed is returned by Tracker.Emit after Close.
var ErrTrackerClosed = errors.New("completion tracker: emit after close")

// ExecutionError reports a request that failed at the transport level.
type ExecutionError struct {
	URL string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution error: request to %s failed: %v", e.URL, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// LostCompletionError reports that every execution unit exited but fewer
// completion signals arrived than were scheduled.
type LostCompletionError struct {
	Expected int
	Received int
	Causes   []error
}

func (e *LostCompletionError) Error() string {
	msg := fmt.Sprintf("lost completion: received %d of %d completion signals", e.Received, e.Expected)
	if len(e.Causes) == 0 {
		return msg
	}
	causes := make([]string, len(e.Causes))
	for i, c := range e.Causes {
		causes[i] = c.Error()
	}
	return msg + ": " + strings.Join(causes, "; ")
}

func (e *LostCompletionError) Unwrap() []error {
	return e.Causes
}

// UnitPanicError describes an execution unit that panicked before signalling.
type UnitPanicError struct {
	URL   string
	Value any
}

func (e *UnitPanicError) Error() string {
	return fmt.Sprintf("execution unit for %s panicked: %v", e.URL, e.Value)
}
