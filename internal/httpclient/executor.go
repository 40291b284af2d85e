package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hwchen/pour/internal/runner"
	"github.com/hwchen/pour/internal/tracing"
	"github.com/hwchen/pour/internal/worklist"
)

// Executor sends the request of a single spec. It is safe for concurrent use.
type Executor struct {
	client  *http.Client
	timeout time.Duration
	tracing *tracing.Provider
}

// NewExecutor returns an Executor using client. A timeout of zero or less
// disables the per-request deadline. A nil provider disables spans.
func NewExecutor(client *http.Client, timeout time.Duration, provider *tracing.Provider) *Executor {
	if client == nil {
		client = NewClient()
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Executor{client: client, timeout: timeout, tracing: provider}
}

var _ runner.Executor = (*Executor)(nil)

// Execute performs spec and reports the result. Elapsed covers the time to
// response headers; the body is drained afterwards so the connection can be
// reused.
func (e *Executor) Execute(ctx context.Context, spec worklist.RequestSpec) runner.Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	outcome := runner.Outcome{Spec: spec}

	method := spec.Method
	if method == "" {
		method = http.MethodGet
	}
	target := spec.URL()

	ctx, span := tracing.StartRequestSpan(ctx, e.tracing, method, target, spec.Target.URL.Host, spec.Pass)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		outcome.Err = err
		tracing.EndSpan(span, err)
		return outcome
	}
	if e.tracing.ShouldPropagate() {
		tracing.InjectHTTPHeaders(ctx, req.Header)
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	outcome.Elapsed = time.Since(start)
	if err != nil {
		outcome.Err = e.describe(err)
		tracing.EndSpan(span, outcome.Err)
		return outcome
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	outcome.StatusCode = resp.StatusCode
	outcome.Status = statusLine(resp.StatusCode)

	var spanErr error
	if outcome.ServerError() {
		spanErr = fmt.Errorf("server responded %s", outcome.Status)
	}
	tracing.EndSpan(span, spanErr, tracing.StatusAttribute(resp.StatusCode))
	return outcome
}

func (e *Executor) describe(err error) error {
	if e.timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timed out after %s: %w", e.timeout, err)
	}
	return err
}

// statusLine renders a status code with its canonical reason phrase.
func statusLine(code int) string {
	return strings.TrimSpace(strconv.Itoa(code) + " " + http.StatusText(code))
}
