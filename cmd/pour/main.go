package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/hwchen/pour/internal/config"
	"github.com/hwchen/pour/internal/httpclient"
	"github.com/hwchen/pour/internal/output"
	"github.com/hwchen/pour/internal/runner"
	"github.com/hwchen/pour/internal/tracing"
	"github.com/hwchen/pour/internal/worklist"
)

const tracingShutdownTimeout = 5 * time.Second

type stderrFailureLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	targets, err := loadTargets(cfg)
	if err != nil {
		return err
	}
	list, err := worklist.Build(targets, cfg.Repetitions)
	if err != nil {
		return err
	}
	cfg.PrintWarnings(stderr, len(list))

	logger := &stderrFailureLogger{w: stderr}

	// No cancellation: once started, a run ends only when every request is
	// accounted for.
	ctx := context.Background()

	provider, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.LogFailure(fmt.Errorf("tracing shutdown: %w", err))
		}
	}()

	client := httpclient.NewClient()
	defer client.CloseIdleConnections()

	r := runner.New(runner.Options{
		Mode:        toRunnerMode(cfg.Mode()),
		MaxInFlight: cfg.MaxInFlight,
		Executor:    httpclient.NewExecutor(client, cfg.Timeout, provider),
		Reporter:    output.NewLineReporter(stdout),
		Logger:      logger,
	})

	_, err = r.Run(ctx, list)
	return err
}

func loadTargets(cfg *config.Config) (worklist.TargetSet, error) {
	if cfg.File != "" {
		return worklist.FromFile(cfg.File)
	}
	return worklist.FromURL(cfg.URL)
}

func toRunnerMode(mode config.Mode) runner.Mode {
	switch mode {
	case config.ModeConcurrent:
		return runner.ModeConcurrent
	default:
		return runner.ModeSequential
	}
}

func (l *stderrFailureLogger) LogFailure(err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "[pour] %v\n", err)
}
