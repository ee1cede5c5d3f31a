package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationError aggregates all field errors found in one pass so a
// broken configuration is reported completely rather than one field at
// a time.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration is invalid"
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("configuration is invalid:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e *ValidationError) add(field string, value interface{}, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Value: value, Message: message})
}

var (
	validSchemaModes     = map[string]bool{"file": true, "git": true}
	validValidationModes = map[string]bool{"strict": true, "warn": true, "drop": true, "off": true}
	validSinkBackends    = map[string]bool{"statsd": true, "log": true, "none": true}
	validHistoryBackends = map[string]bool{"sqlite": true, "memory": true}
	validLogLevels       = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats      = map[string]bool{"json": true, "text": true}
)

// Validate checks the configuration for consistency. All problems are
// collected and returned together as a *ValidationError.
func Validate(cfg *Config) error {
	verr := &ValidationError{}

	if !validSchemaModes[cfg.Schema.Mode] {
		verr.add("schema.mode", cfg.Schema.Mode, `must be "file" or "git"`)
	}
	switch cfg.Schema.Mode {
	case "file":
		if cfg.Schema.FilePath == "" {
			verr.add("schema.file_path", cfg.Schema.FilePath, "must not be empty in file mode")
		}
	case "git":
		if cfg.Schema.Git.Repository == "" {
			verr.add("schema.git.repository", cfg.Schema.Git.Repository, "must not be empty in git mode")
		}
		if cfg.Schema.Git.Path == "" {
			verr.add("schema.git.path", cfg.Schema.Git.Path, "must not be empty in git mode")
		}
	}
	if cfg.Schema.WatchDebounce < 0 {
		verr.add("schema.watch_debounce", cfg.Schema.WatchDebounce, "must not be negative")
	}

	if !validValidationModes[cfg.Validation.Mode] {
		verr.add("validation.mode", cfg.Validation.Mode, `must be one of "strict", "warn", "drop", "off"`)
	}

	if !validSinkBackends[cfg.Sink.Backend] {
		verr.add("sink.backend", cfg.Sink.Backend, `must be one of "statsd", "log", "none"`)
	}
	if cfg.Sink.Backend == "statsd" && cfg.Sink.Address == "" {
		verr.add("sink.address", cfg.Sink.Address, "must not be empty for the statsd backend")
	}

	if cfg.History.Enabled {
		if !validHistoryBackends[cfg.History.Backend] {
			verr.add("history.backend", cfg.History.Backend, `must be "sqlite" or "memory"`)
		}
		if cfg.History.Backend == "sqlite" && cfg.History.SQLitePath == "" {
			verr.add("history.sqlite_path", cfg.History.SQLitePath, "must not be empty for the sqlite backend")
		}
	}
	if cfg.History.Retention.Days < 0 {
		verr.add("history.retention.days", cfg.History.Retention.Days, "must not be negative")
	}
	if cfg.History.Retention.MaxRuns < 0 {
		verr.add("history.retention.max_runs", cfg.History.Retention.MaxRuns, "must not be negative")
	}
	if s := cfg.History.Retention.Schedule; s != "" {
		if _, err := cron.ParseStandard(s); err != nil {
			verr.add("history.retention.schedule", s, fmt.Sprintf("invalid cron expression: %v", err))
		}
	}

	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		verr.add("telemetry.logging.level", cfg.Telemetry.Logging.Level, `must be one of "debug", "info", "warn", "error"`)
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		verr.add("telemetry.logging.format", cfg.Telemetry.Logging.Format, `must be "json" or "text"`)
	}
	if cfg.Telemetry.Tracing.Enabled && cfg.Telemetry.Tracing.Endpoint == "" {
		verr.add("telemetry.tracing.endpoint", cfg.Telemetry.Tracing.Endpoint, "must not be empty when tracing is enabled")
	}
	if sr := cfg.Telemetry.Tracing.SampleRate; sr < 0 || sr > 1 {
		verr.add("telemetry.tracing.sample_rate", sr, "must be between 0.0 and 1.0")
	}

	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}
