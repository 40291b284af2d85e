package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/hwchen/pour/internal/worklist"
)

// ErrNoExecutor is returned by Run when Options.Executor is nil.
var ErrNoExecutor = errors.New("runner: executor is required")

// Result captures execution summary.
type Result struct {
	Total    int64 // outcomes reported
	Failures int64 // outcomes with a transport-level error
	Duration time.Duration
}

// Runner dispatches work lists.
type Runner struct {
	opt Options
}

func New(opt Options) *Runner {
	opt.normalize()
	return &Runner{opt: opt}
}

// Run executes every spec in list and returns once all of them have
// completed. An empty list completes immediately.
func (r *Runner) Run(ctx context.Context, list worklist.WorkList) (Result, error) {
	if r.opt.Executor == nil {
		return Result{}, ErrNoExecutor
	}
	switch r.opt.Mode {
	case ModeSequential:
		return r.runSequential(ctx, list)
	case ModeConcurrent:
		return r.runConcurrent(ctx, list)
	default:
		return Result{}, fmt.Errorf("runner: unknown mode %q", r.opt.Mode)
	}
}

func (r *Runner) runSequential(ctx context.Context, list worklist.WorkList) (Result, error) {
	start := time.Now()
	var res Result
	for _, spec := range list {
		outcome := r.opt.Executor.Execute(ctx, spec)
		r.opt.Reporter.Report(outcome)
		res.Total++
		if outcome.Failed() {
			res.Failures++
			res.Duration = time.Since(start)
			return res, &ExecutionError{URL: spec.URL(), Err: outcome.Err}
		}
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (r *Runner) runConcurrent(ctx context.Context, list worklist.WorkList) (Result, error) {
	start := time.Now()
	tracker := NewTracker(len(list))

	// Units run to completion once dispatched.
	unitCtx := context.WithoutCancel(ctx)

	var sem *semaphore.Weighted
	if r.opt.MaxInFlight > 0 {
		sem = semaphore.NewWeighted(int64(r.opt.MaxInFlight))
	}

	var total, failures atomic.Int64
	var wg sync.WaitGroup
	for _, spec := range list {
		if sem != nil {
			// Cannot fail: unitCtx is never cancelled.
			_ = sem.Acquire(unitCtx, 1)
		}
		wg.Add(1)
		go func(spec worklist.RequestSpec) {
			defer wg.Done()
			if sem != nil {
				defer sem.Release(1)
			}
			r.runUnit(unitCtx, spec, tracker, &total, &failures)
		}(spec)
	}

	joined := make(chan struct{})
	go func() {
		wg.Wait()
		tracker.Close()
		close(joined)
	}()

	err := tracker.Wait()
	<-joined

	return Result{
		Total:    total.Load(),
		Failures: failures.Load(),
		Duration: time.Since(start),
	}, err
}

// runUnit executes one spec, reports it and signals the tracker. Request
// failures are outcomes and still signal; only a panic skips the signal.
func (r *Runner) runUnit(ctx context.Context, spec worklist.RequestSpec, tracker *Tracker, total, failures *atomic.Int64) {
	defer func() {
		if rec := recover(); rec != nil {
			err := &UnitPanicError{URL: spec.URL(), Value: rec}
			tracker.Abandon(err)
			r.opt.Logger.LogFailure(fmt.Errorf("%w\n%s", err, debug.Stack()))
		}
	}()

	outcome := r.opt.Executor.Execute(ctx, spec)
	r.opt.Reporter.Report(outcome)
	total.Add(1)
	if outcome.Failed() {
		failures.Add(1)
	}
	if err := tracker.Emit(); err != nil {
		r.opt.Logger.LogFailure(err)
	}
}
