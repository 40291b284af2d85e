package output

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hwchen/pour/internal/runner"
	"github.com/hwchen/pour/internal/worklist"
)

func spec(t *testing.T, raw string) worklist.RequestSpec {
	t.Helper()
	target, err := worklist.ParseTarget(raw)
	if err != nil {
		t.Fatalf("parse target: %v", err)
	}
	return worklist.RequestSpec{Method: "GET", Target: target}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.000s"},
		{123 * time.Millisecond, "0.123s"},
		{4*time.Millisecond + 900*time.Microsecond, "0.004s"},
		{2*time.Second + 5*time.Millisecond, "2.005s"},
		{61 * time.Second, "61.000s"},
		{-time.Second, "0.000s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.in); got != tt.want {
			t.Errorf("formatElapsed(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReportSuccess(t *testing.T) {
	var buf bytes.Buffer
	NewLineReporter(&buf).Report(runner.Outcome{
		Spec:       spec(t, "http://example.com"),
		StatusCode: 200,
		Status:     "200 OK",
		Elapsed:    123 * time.Millisecond,
	})

	if got, want := buf.String(), "0.123s, 200 OK, http://example.com\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReportFailure(t *testing.T) {
	var buf bytes.Buffer
	NewLineReporter(&buf).Report(runner.Outcome{
		Spec:    spec(t, "http://example.com"),
		Elapsed: 4 * time.Millisecond,
		Err:     errors.New("connection refused"),
	})

	if got, want := buf.String(), "0.004s, error: connection refused, http://example.com\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReportServerErrorAddsStatusLine(t *testing.T) {
	var buf bytes.Buffer
	NewLineReporter(&buf).Report(runner.Outcome{
		Spec:       spec(t, "http://example.com/health"),
		StatusCode: 503,
		Status:     "503 Service Unavailable",
		Elapsed:    1500 * time.Millisecond,
	})

	want := "1.500s, 503 Service Unavailable, http://example.com/health\n503 Service Unavailable\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReportClientErrorSingleLine(t *testing.T) {
	var buf bytes.Buffer
	NewLineReporter(&buf).Report(runner.Outcome{
		Spec:       spec(t, "http://example.com"),
		StatusCode: 404,
		Status:     "404 Not Found",
	})
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Fatalf("expected 1 line, got %d: %q", n, buf.String())
	}
}

func TestReportConcurrentLinesIntact(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewLineReporter(&buf)
	s := spec(t, "http://example.com")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reporter.Report(runner.Outcome{Spec: s, StatusCode: 500, Status: "500 Internal Server Error"})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 200 {
		t.Fatalf("expected 200 lines, got %d", len(lines))
	}
	// The status line follows its report line.
	for i := 0; i < len(lines); i += 2 {
		if lines[i] != "0.000s, 500 Internal Server Error, http://example.com" {
			t.Fatalf("line %d garbled: %q", i, lines[i])
		}
		if lines[i+1] != "500 Internal Server Error" {
			t.Fatalf("line %d garbled: %q", i+1, lines[i+1])
		}
	}
}
