// Package runner dispatches a work list of request specs and tracks their
// completion.
//
// Two dispatch modes are supported:
//   - [ModeSequential]: one request at a time in work-list order, stopping at
//     the first failed request.
//   - [ModeConcurrent]: one execution unit per spec, all in flight at once
//     unless [Options.MaxInFlight] bounds them.
//
// # Basic Usage
//
//	r := runner.New(runner.Options{
//		Mode:     runner.ModeConcurrent,
//		Executor: executor,
//		Reporter: output.NewLineReporter(os.Stdout),
//	})
//	result, err := r.Run(ctx, list)
//
// # Completion Tracking
//
// In concurrent mode every unit sends exactly one signal to a [Tracker]
// whether its request succeeded or failed. The dispatcher returns once it
// has received one signal per scheduled spec. A unit that ends without
// signalling (a recovered panic) is recorded on the tracker, and once every
// unit has exited the run fails with a [*LostCompletionError] instead of
// blocking forever.
//
// # Error Handling
//
// Request failures are values on [Outcome]. In sequential mode the first one
// is returned as [*ExecutionError]:
//
//	var execErr *runner.ExecutionError
//	if errors.As(err, &execErr) {
//		fmt.Printf("request to %s failed: %v\n", execErr.URL, execErr.Err)
//	}
package runner
