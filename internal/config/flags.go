package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	defaultRepetitions    = 10
	defaultTimeoutSeconds = 1000
)

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pour",
		Short:         "Issue repeated GET requests and report per-request timing",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Target flags
	flags.String("url", "", "Single target URL")
	flags.StringP("file", "f", "", "Path to a newline-delimited list of target URLs")

	// Run flags
	flags.IntP("repetitions", "n", defaultRepetitions, "Repetitions of the request set")
	flags.IntP("timeout", "t", defaultTimeoutSeconds, "Per-request timeout in seconds (0 disables the deadline)")
	flags.BoolP("async", "a", false, "Fan requests out concurrently instead of one at a time")
	flags.Int("max-in-flight", 0, "Maximum concurrent requests in async mode (0 means unbounded)")
	flags.BoolP("verbose", "v", false, "Reserved, currently has no effect")
	flags.String("config", "", "Path to configuration file (JSON, YAML or TOML)")

	// Tracing flags
	flags.String("otlp-endpoint", "", "OTLP collector endpoint for request spans (empty disables tracing)")
	flags.String("otlp-protocol", "grpc", "OTLP export protocol: 'grpc' or 'http'")
	flags.Bool("otlp-insecure", false, "Disable TLS for the OTLP exporter")
	flags.Float64("trace-sample-rate", 1.0, "Fraction of requests to trace (0.0 to 1.0)")
	flags.String("trace-service-name", "", "Service name reported with spans (default pour)")
	flags.Bool("trace-propagate", false, "Inject W3C trace context headers into requests")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Usage: %s\n\nFlags:\n", cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file and environment.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("url") {
		val, err := fs.GetString("url")
		if err != nil {
			return err
		}
		cfg.URL = strings.TrimSpace(val)
	}
	if fs.Changed("file") {
		val, err := fs.GetString("file")
		if err != nil {
			return err
		}
		cfg.File = strings.TrimSpace(val)
	}
	if fs.Changed("repetitions") {
		val, err := fs.GetInt("repetitions")
		if err != nil {
			return err
		}
		cfg.Repetitions = val
	}
	if fs.Changed("timeout") {
		val, err := fs.GetInt("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = time.Duration(val) * time.Second
	}
	if fs.Changed("async") {
		val, err := fs.GetBool("async")
		if err != nil {
			return err
		}
		cfg.Async = val
	}
	if fs.Changed("max-in-flight") {
		val, err := fs.GetInt("max-in-flight")
		if err != nil {
			return err
		}
		cfg.MaxInFlight = val
	}
	if fs.Changed("verbose") {
		val, err := fs.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = val
	}

	if fs.Changed("otlp-endpoint") {
		val, err := fs.GetString("otlp-endpoint")
		if err != nil {
			return err
		}
		cfg.Tracing.Endpoint = strings.TrimSpace(val)
	}
	if fs.Changed("otlp-protocol") {
		val, err := fs.GetString("otlp-protocol")
		if err != nil {
			return err
		}
		cfg.Tracing.Protocol = strings.ToLower(strings.TrimSpace(val))
	}
	if fs.Changed("otlp-insecure") {
		val, err := fs.GetBool("otlp-insecure")
		if err != nil {
			return err
		}
		cfg.Tracing.Insecure = val
	}
	if fs.Changed("trace-sample-rate") {
		val, err := fs.GetFloat64("trace-sample-rate")
		if err != nil {
			return err
		}
		cfg.Tracing.SampleRate = val
	}
	if fs.Changed("trace-service-name") {
		val, err := fs.GetString("trace-service-name")
		if err != nil {
			return err
		}
		cfg.Tracing.ServiceName = strings.TrimSpace(val)
	}
	if fs.Changed("trace-propagate") {
		val, err := fs.GetBool("trace-propagate")
		if err != nil {
			return err
		}
		cfg.Tracing.Propagate = val
	}

	return nil
}
