package config

import "time"

// Default values for configuration fields.
const (
	// Schema defaults
	DefaultSchemaMode       = "file"
	DefaultSchemaFilePath   = "./metrics-schema.yaml"
	DefaultSchemaGitBranch  = "main"
	DefaultSchemaGitPath    = "metrics-schema.yaml"
	DefaultSchemaGitTimeout = 60 * time.Second
	DefaultSchemaGitPoll    = 60 * time.Second
	DefaultSchemaWatch      = false
	DefaultWatchDebounce    = 100 * time.Millisecond

	// Validation defaults
	DefaultValidationMode = "strict"

	// Sink defaults
	DefaultSinkBackend = "log"
	DefaultSinkAddress = "127.0.0.1:8125"

	// History defaults
	DefaultHistoryEnabled    = false
	DefaultHistoryBackend    = "sqlite"
	DefaultHistorySQLitePath = "data/metricgov.db"
	DefaultRetentionDays     = 90
	DefaultRetentionSchedule = "0 3 * * *"

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "metricgov"
	DefaultMetricsSubsystem = "core"
	DefaultTracingEnabled   = false
	DefaultTracingEndpoint  = "localhost:4317"
	DefaultTracingInsecure  = true
	DefaultTracingService   = "metricgov"
)

// DefaultValidationIgnoredTags are the framework-injected tag names
// excluded from validation by default.
var DefaultValidationIgnoredTags = []string{"source", "experiment", "variant"}

// NewDefaultConfig returns a configuration populated entirely with
// defaults. Boolean defaults that differ from the zero value are set
// here, so loading starts from this struct rather than an empty one.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Telemetry.Tracing.Insecure = DefaultTracingInsecure
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Schema.Mode == "" {
		cfg.Schema.Mode = DefaultSchemaMode
	}
	if cfg.Schema.FilePath == "" {
		cfg.Schema.FilePath = DefaultSchemaFilePath
	}
	if cfg.Schema.Git.Branch == "" {
		cfg.Schema.Git.Branch = DefaultSchemaGitBranch
	}
	if cfg.Schema.Git.Path == "" {
		cfg.Schema.Git.Path = DefaultSchemaGitPath
	}
	if cfg.Schema.Git.Timeout <= 0 {
		cfg.Schema.Git.Timeout = DefaultSchemaGitTimeout
	}
	if cfg.Schema.Git.PollInterval <= 0 {
		cfg.Schema.Git.PollInterval = DefaultSchemaGitPoll
	}
	if cfg.Schema.WatchDebounce <= 0 {
		cfg.Schema.WatchDebounce = DefaultWatchDebounce
	}

	if cfg.Validation.Mode == "" {
		cfg.Validation.Mode = DefaultValidationMode
	}
	if cfg.Validation.IgnoredTags == nil {
		cfg.Validation.IgnoredTags = append([]string(nil), DefaultValidationIgnoredTags...)
	}

	if cfg.Sink.Backend == "" {
		cfg.Sink.Backend = DefaultSinkBackend
	}
	if cfg.Sink.Address == "" {
		cfg.Sink.Address = DefaultSinkAddress
	}

	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLitePath == "" {
		cfg.History.SQLitePath = DefaultHistorySQLitePath
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultRetentionDays
	}
	if cfg.History.Retention.Schedule == "" {
		cfg.History.Retention.Schedule = DefaultRetentionSchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.SampleRate <= 0 {
		cfg.Telemetry.Tracing.SampleRate = 1.0
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
}
