package runner

import (
	"context"

	"github.com/hwchen/pour/internal/worklist"
)

// Mode selects how a work list is dispatched.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeConcurrent Mode = "concurrent"
)

// Executor performs a single request. Failures are reported on the returned
// Outcome rather than by panicking.
type Executor interface {
	Execute(ctx context.Context, spec worklist.RequestSpec) Outcome
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, spec worklist.RequestSpec) Outcome

func (f ExecutorFunc) Execute(ctx context.Context, spec worklist.RequestSpec) Outcome {
	return f(ctx, spec)
}

// Reporter receives exactly one outcome per executed spec. Implementations
// must be safe for concurrent use.
type Reporter interface {
	Report(Outcome)
}

// FailureLogger logs failures that are not part of the outcome stream.
type FailureLogger interface {
	LogFailure(err error)
}

// Options configure the Runner.
type Options struct {
	Mode        Mode          // dispatch mode (default sequential)
	MaxInFlight int           // concurrent mode only; 0 means unbounded
	Executor    Executor      // request executor (required)
	Reporter    Reporter      // outcome sink (default discards)
	Logger      FailureLogger // unit crashes and tracker anomalies (default discards)
}

type discardReporter struct{}

func (discardReporter) Report(Outcome) {}

type discardLogger struct{}

func (discardLogger) LogFailure(error) {}

func (o *Options) normalize() {
	if o.Mode == "" {
		o.Mode = ModeSequential
	}
	if o.MaxInFlight < 0 {
		o.MaxInFlight = 0
	}
	if o.Reporter == nil {
		o.Reporter = discardReporter{}
	}
	if o.Logger == nil {
		o.Logger = discardLogger{}
	}
}
