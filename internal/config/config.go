package config

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Mode selects how the work list is executed.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeConcurrent Mode = "concurrent"
)

// highFanOutWarning is the scheduled request count above which an unbounded
// concurrent run prints a warning.
const highFanOutWarning = 500

// Config holds one run's settings. Verbose is accepted and currently has no
// effect.
type Config struct {
	URL         string        `mapstructure:"url"`
	File        string        `mapstructure:"file"`
	Repetitions int           `mapstructure:"repetitions"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Async       bool          `mapstructure:"async"`
	Verbose     bool          `mapstructure:"verbose"`
	MaxInFlight int           `mapstructure:"max_in_flight"`
	ConfigFile  string        `mapstructure:"-"`
	Tracing     TracingConfig `mapstructure:"tracing"`
}

// TracingConfig configures OpenTelemetry export of per-request spans.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"` // "grpc" or "http"
	ServiceName string  `mapstructure:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Insecure    bool    `mapstructure:"insecure"`
	Propagate   bool    `mapstructure:"propagate"`
}

// Enabled reports whether spans should be exported.
func (t TracingConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != ""
}

// ShouldPropagate reports whether W3C trace headers are injected into requests.
func (t TracingConfig) ShouldPropagate() bool {
	return t.Enabled() && t.Propagate
}

// Mode derives the execution strategy from the async switch.
func (c Config) Mode() Mode {
	if c.Async {
		return ModeConcurrent
	}
	return ModeSequential
}

// ValidationError is the configuration error kind. It is returned before any
// network activity takes place.
type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "configuration error"
	}
	return fmt.Sprintf("configuration error: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	hasURL := strings.TrimSpace(c.URL) != ""
	hasFile := strings.TrimSpace(c.File) != ""
	switch {
	case !hasURL && !hasFile:
		issues = append(issues, "missing url to test: supply --url or --file (use --help for usage information)")
	case hasURL && hasFile:
		issues = append(issues, "--url and --file are mutually exclusive")
	}

	if c.Repetitions < 1 {
		issues = append(issues, fmt.Sprintf("cannot repeat %d times: repetitions must be >= 1", c.Repetitions))
	}
	if c.Timeout < 0 {
		issues = append(issues, "timeout must be >= 0")
	}
	if c.MaxInFlight < 0 {
		issues = append(issues, "max-in-flight must be >= 0")
	}

	issues = append(issues, validateTracingConfig(c.Tracing)...)

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

// Warnings returns non-fatal advisories for the configuration.
func (c Config) Warnings(scheduled int) []string {
	var warnings []string
	if c.Async && c.MaxInFlight == 0 && scheduled > highFanOutWarning {
		warnings = append(warnings, fmt.Sprintf("WARNING: unbounded fan-out of %d concurrent requests. Consider --max-in-flight and ensure you have authorization to test the target system.", scheduled))
	}
	if !c.Async && c.MaxInFlight > 0 {
		warnings = append(warnings, "WARNING: --max-in-flight has no effect without --async")
	}
	return warnings
}

// PrintWarnings writes Warnings to w, one per line.
func (c Config) PrintWarnings(w io.Writer, scheduled int) {
	for _, warning := range c.Warnings(scheduled) {
		fmt.Fprintln(w, warning)
	}
}

func validateTracingConfig(t TracingConfig) []string {
	var issues []string
	if !t.Enabled() {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(t.Protocol)) {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("tracing: protocol must be 'grpc' or 'http', got %q", t.Protocol))
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		issues = append(issues, fmt.Sprintf("tracing: sample_rate must be between 0.0 and 1.0, got %g", t.SampleRate))
	}
	return issues
}
