package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Schema.Mode != "file" {
		t.Errorf("Schema.Mode = %q, want file", cfg.Schema.Mode)
	}
	if cfg.Schema.WatchDebounce != 100*time.Millisecond {
		t.Errorf("WatchDebounce = %v", cfg.Schema.WatchDebounce)
	}
	if cfg.Validation.Mode != "strict" {
		t.Errorf("Validation.Mode = %q, want strict", cfg.Validation.Mode)
	}
	if !reflect.DeepEqual(cfg.Validation.IgnoredTags, []string{"source", "experiment", "variant"}) {
		t.Errorf("IgnoredTags = %v", cfg.Validation.IgnoredTags)
	}
	if cfg.Sink.Backend != "log" {
		t.Errorf("Sink.Backend = %q, want log", cfg.Sink.Backend)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should default to false")
	}
	if cfg.History.Retention.Days != 90 {
		t.Errorf("Retention.Days = %d, want 90", cfg.History.Retention.Days)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("Metrics.Enabled should default to true")
	}
	if !cfg.Telemetry.Tracing.Insecure {
		t.Error("Tracing.Insecure should default to true")
	}
	if cfg.Telemetry.Tracing.SampleRate != 1.0 {
		t.Errorf("Tracing.SampleRate = %v, want 1.0", cfg.Telemetry.Tracing.SampleRate)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default configuration failed validation: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
schema:
  file_path: schemas/web.yaml
  watch: true
validation:
  mode: warn
sink:
  backend: statsd
  address: "10.0.0.1:8125"
history:
  enabled: true
  backend: memory
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Schema.FilePath != "schemas/web.yaml" {
		t.Errorf("FilePath = %q", cfg.Schema.FilePath)
	}
	if !cfg.Schema.Watch {
		t.Error("Watch not loaded")
	}
	if cfg.Validation.Mode != "warn" {
		t.Errorf("Mode = %q", cfg.Validation.Mode)
	}
	if cfg.Sink.Address != "10.0.0.1:8125" {
		t.Errorf("Address = %q", cfg.Sink.Address)
	}
	// Absent keys keep defaults.
	if cfg.Telemetry.Logging.Level != "info" {
		t.Errorf("Level = %q, want default info", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("absent metrics.enabled should keep its default of true")
	}
}

func TestLoadConfigExplicitFalseSurvives(t *testing.T) {
	path := writeConfigFile(t, `
telemetry:
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("explicit enabled: false was overwritten by the default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfigFile(t, `
validation:
  mode: lenient
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("invalid mode accepted")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
validation:
  mode: warn
`)
	t.Setenv("METRICGOV_VALIDATION_MODE", "drop")
	t.Setenv("METRICGOV_SINK_BACKEND", "none")
	t.Setenv("METRICGOV_LOG_LEVEL", "debug")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}
	if cfg.Validation.Mode != "drop" {
		t.Errorf("env override lost: mode = %q", cfg.Validation.Mode)
	}
	if cfg.Sink.Backend != "none" {
		t.Errorf("env override lost: backend = %q", cfg.Sink.Backend)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("env override lost: level = %q", cfg.Telemetry.Logging.Level)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Validation.Mode = "lenient"
	cfg.Sink.Backend = "kafka"
	cfg.History.Retention.Schedule = "not-a-cron"
	cfg.Telemetry.Tracing.SampleRate = 2.5

	err := Validate(cfg)
	if err == nil {
		t.Fatal("broken configuration accepted")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Errors) != 4 {
		t.Errorf("collected %d field errors, want 4: %v", len(verr.Errors), verr)
	}

	fields := make(map[string]bool, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{
		"validation.mode",
		"sink.backend",
		"history.retention.schedule",
		"telemetry.tracing.sample_rate",
	} {
		if !fields[want] {
			t.Errorf("missing field error for %s", want)
		}
	}
}

func TestValidateGitModeRequiresRepository(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Schema.Mode = "git"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("git mode without repository accepted")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Errors[0].Field != "schema.git.repository" {
		t.Errorf("first field error = %q", verr.Errors[0].Field)
	}
}
