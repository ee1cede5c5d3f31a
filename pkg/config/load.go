package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified
// path. Absent keys keep their defaults; the result is validated before
// being returned.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies METRICGOV_* environment variable overrides. Environment
// variables always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file (defaults applied)
//  2. Apply environment variable overrides
//  3. Re-validate the final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides using the
// METRICGOV_SECTION_FIELD naming convention.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("METRICGOV_SCHEMA_MODE"); val != "" {
		cfg.Schema.Mode = val
	}
	if val := os.Getenv("METRICGOV_SCHEMA_FILE_PATH"); val != "" {
		cfg.Schema.FilePath = val
	}
	if val := os.Getenv("METRICGOV_SCHEMA_GIT_REPOSITORY"); val != "" {
		cfg.Schema.Git.Repository = val
	}
	if val := os.Getenv("METRICGOV_SCHEMA_GIT_BRANCH"); val != "" {
		cfg.Schema.Git.Branch = val
	}
	if val := os.Getenv("METRICGOV_SCHEMA_GIT_PATH"); val != "" {
		cfg.Schema.Git.Path = val
	}
	if val := os.Getenv("METRICGOV_SCHEMA_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Schema.Watch = b
		}
	}
	if val := os.Getenv("METRICGOV_SCHEMA_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Schema.WatchDebounce = d
		}
	}

	if val := os.Getenv("METRICGOV_VALIDATION_MODE"); val != "" {
		cfg.Validation.Mode = val
	}

	if val := os.Getenv("METRICGOV_SINK_BACKEND"); val != "" {
		cfg.Sink.Backend = val
	}
	if val := os.Getenv("METRICGOV_SINK_ADDRESS"); val != "" {
		cfg.Sink.Address = val
	}

	if val := os.Getenv("METRICGOV_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("METRICGOV_HISTORY_BACKEND"); val != "" {
		cfg.History.Backend = val
	}
	if val := os.Getenv("METRICGOV_HISTORY_SQLITE_PATH"); val != "" {
		cfg.History.SQLitePath = val
	}
	if val := os.Getenv("METRICGOV_HISTORY_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.History.Retention.Days = n
		}
	}
	if val := os.Getenv("METRICGOV_HISTORY_RETENTION_SCHEDULE"); val != "" {
		cfg.History.Retention.Schedule = val
	}

	if val := os.Getenv("METRICGOV_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("METRICGOV_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("METRICGOV_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("METRICGOV_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("METRICGOV_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("METRICGOV_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
}
