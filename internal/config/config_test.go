package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hwchen/pour/internal/config"
)

func TestParseFlagsDefaults(t *testing.T) {
	loader := config.NewLoader()

	cfg, err := loader.Load([]string{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.URL != "" {
		t.Errorf("URL = %q, want empty", cfg.URL)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty", cfg.File)
	}
	if cfg.Repetitions != 10 {
		t.Errorf("Repetitions = %d, want 10", cfg.Repetitions)
	}
	if cfg.Timeout != 1000*time.Second {
		t.Errorf("Timeout = %s, want 1000s", cfg.Timeout)
	}
	if cfg.Async {
		t.Errorf("Async = true, want false")
	}
	if cfg.Mode() != config.ModeSequential {
		t.Errorf("Mode() = %q, want sequential", cfg.Mode())
	}
	if cfg.MaxInFlight != 0 {
		t.Errorf("MaxInFlight = %d, want 0", cfg.MaxInFlight)
	}
	if cfg.Tracing.Enabled() {
		t.Errorf("Tracing.Enabled() = true, want false")
	}
}

func TestLoadShortFlags(t *testing.T) {
	loader := config.NewLoader()

	cfg, err := loader.Load([]string{"-f", "urls.txt", "-n", "2", "-a", "-t", "3", "-v"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.File != "urls.txt" {
		t.Errorf("File = %q, want urls.txt", cfg.File)
	}
	if cfg.Repetitions != 2 {
		t.Errorf("Repetitions = %d, want 2", cfg.Repetitions)
	}
	if cfg.Mode() != config.ModeConcurrent {
		t.Errorf("Mode() = %q, want concurrent", cfg.Mode())
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s, want 3s", cfg.Timeout)
	}
	if !cfg.Verbose {
		t.Errorf("Verbose = false, want true")
	}
}

func TestLoadConfigFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{
		"url": "https://api.example.com",
		"repetitions": 7,
		"timeout": "45s",
		"async": true,
		"maxInFlight": 16,
		"tracing": {"endpoint": "localhost:4317", "insecure": true}
	}`), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	loader := config.NewLoader()
	cfg, err := loader.Load([]string{"--config", path, "-n", "3"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.URL != "https://api.example.com" {
		t.Errorf("URL = %q, want https://api.example.com", cfg.URL)
	}
	if cfg.Repetitions != 3 {
		t.Errorf("Repetitions = %d, want 3 (flag overrides file)", cfg.Repetitions)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s, want 45s", cfg.Timeout)
	}
	if !cfg.Async {
		t.Errorf("Async = false, want true")
	}
	if cfg.MaxInFlight != 16 {
		t.Errorf("MaxInFlight = %d, want 16", cfg.MaxInFlight)
	}
	if !cfg.Tracing.Enabled() || !cfg.Tracing.Insecure {
		t.Errorf("Tracing = %+v, want enabled and insecure", cfg.Tracing)
	}
	if cfg.Tracing.Protocol != "grpc" {
		t.Errorf("Tracing.Protocol = %q, want default grpc", cfg.Tracing.Protocol)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}
}

func TestLoadConfigFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := strings.Join([]string{
		"file: targets.txt",
		"n: 2",
		"timeout: 30",
		"tracing:",
		"  endpoint: collector:4318",
		"  protocol: http",
		"  sample_rate: 0.5",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := config.NewLoader().Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.File != "targets.txt" {
		t.Errorf("File = %q, want targets.txt", cfg.File)
	}
	if cfg.Repetitions != 2 {
		t.Errorf("Repetitions = %d, want 2", cfg.Repetitions)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.Tracing.Protocol != "http" {
		t.Errorf("Tracing.Protocol = %q, want http", cfg.Tracing.Protocol)
	}
	if cfg.Tracing.SampleRate != 0.5 {
		t.Errorf("Tracing.SampleRate = %v, want 0.5", cfg.Tracing.SampleRate)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := config.NewLoader().Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("POUR_URL", "http://env.example.com")
	t.Setenv("POUR_REPETITIONS", "4")
	t.Setenv("POUR_TIMEOUT", "9")
	t.Setenv("POUR_ASYNC", "true")
	t.Setenv("POUR_TRACING_ENDPOINT", "otel:4317")

	cfg, err := config.NewLoader().Load([]string{"-n", "6"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.URL != "http://env.example.com" {
		t.Errorf("URL = %q, want http://env.example.com", cfg.URL)
	}
	if cfg.Repetitions != 6 {
		t.Errorf("Repetitions = %d, want 6 (flag overrides env)", cfg.Repetitions)
	}
	if cfg.Timeout != 9*time.Second {
		t.Errorf("Timeout = %s, want 9s", cfg.Timeout)
	}
	if !cfg.Async {
		t.Errorf("Async = false, want true")
	}
	if cfg.Tracing.Endpoint != "otel:4317" {
		t.Errorf("Tracing.Endpoint = %q, want otel:4317", cfg.Tracing.Endpoint)
	}
}

func TestLoadHelp(t *testing.T) {
	_, err := config.NewLoader().Load([]string{"--help"})
	if !errors.Is(err, config.ErrHelpRequested) {
		t.Fatalf("Load(--help) error = %v, want ErrHelpRequested", err)
	}
}

func TestLoadRejectsUnknownInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"positional argument", []string{"--url", "http://example.com", "extra"}},
		{"non-numeric count", []string{"-n", "lots"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.NewLoader().Load(tt.args)
			var verr config.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Load() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := config.Config{URL: "http://example.com", Repetitions: 1}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"valid", func(*config.Config) {}, ""},
		{"zero repetitions", func(c *config.Config) { c.Repetitions = 0 }, "cannot repeat 0 times"},
		{"no target", func(c *config.Config) { c.URL = "" }, "missing url to test"},
		{"both targets", func(c *config.Config) { c.File = "urls.txt" }, "mutually exclusive"},
		{"negative timeout", func(c *config.Config) { c.Timeout = -time.Second }, "timeout must be >= 0"},
		{"negative max in flight", func(c *config.Config) { c.MaxInFlight = -1 }, "max-in-flight must be >= 0"},
		{"bad tracing protocol", func(c *config.Config) {
			c.Tracing = config.TracingConfig{Endpoint: "x:1", Protocol: "udp", SampleRate: 1}
		}, "protocol must be"},
		{"bad sample rate", func(c *config.Config) {
			c.Tracing = config.TracingConfig{Endpoint: "x:1", SampleRate: 2}
		}, "sample_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			var verr config.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err.Error(), tt.wantErr)
			}
			if !strings.HasPrefix(err.Error(), "configuration error:") {
				t.Errorf("Validate() error = %q, want configuration error prefix", err.Error())
			}
		})
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	err := config.Config{Repetitions: 0, Timeout: -1}.Validate()
	var verr config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want ValidationError", err)
	}
	if got := len(verr.Issues()); got != 3 {
		t.Errorf("len(Issues()) = %d, want 3: %v", got, verr.Issues())
	}
}

func TestWarnings(t *testing.T) {
	cfg := config.Config{Async: true}
	if got := cfg.Warnings(10); len(got) != 0 {
		t.Errorf("Warnings(10) = %v, want none", got)
	}
	if got := cfg.Warnings(501); len(got) != 1 {
		t.Errorf("Warnings(501) = %v, want one fan-out warning", got)
	}
	cfg.MaxInFlight = 50
	if got := cfg.Warnings(501); len(got) != 0 {
		t.Errorf("bounded Warnings(501) = %v, want none", got)
	}
	seq := config.Config{MaxInFlight: 4}
	if got := seq.Warnings(1); len(got) != 1 {
		t.Errorf("sequential Warnings() = %v, want max-in-flight warning", got)
	}
}
