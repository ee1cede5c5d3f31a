package config

import "time"

// Config is the root configuration structure for metricgov. It covers
// the schema source, emission validation, the metric sink, analysis-run
// history, and telemetry.
type Config struct {
	// Schema configures where the metrics schema is loaded from.
	Schema SchemaConfig `yaml:"schema"`

	// Validation configures the runtime emission validator.
	Validation ValidationConfig `yaml:"validation"`

	// Sink configures the metric backend emissions are forwarded to.
	Sink SinkConfig `yaml:"sink"`

	// History configures storage of analysis runs.
	History HistoryConfig `yaml:"history"`

	// Telemetry configures metricgov's own observability.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SchemaConfig configures the schema source.
type SchemaConfig struct {
	// Mode selects the source: "file" or "git".
	// Default: "file"
	Mode string `yaml:"mode"`

	// FilePath is the schema file path when Mode is "file".
	// Default: "./metrics-schema.yaml"
	FilePath string `yaml:"file_path"`

	// Git configures the repository when Mode is "git".
	Git GitSchemaConfig `yaml:"git"`

	// Watch enables hot-reloading the schema when the source changes.
	// Default: false
	Watch bool `yaml:"watch"`

	// WatchDebounce is the quiet period after a file event before a
	// reload is triggered.
	// Default: 100ms
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// GitSchemaConfig configures loading the schema from a Git repository.
type GitSchemaConfig struct {
	// Repository is the clone URL.
	Repository string `yaml:"repository"`

	// Branch is the branch to track.
	// Default: "main"
	Branch string `yaml:"branch"`

	// Path is the schema file path inside the repository.
	// Default: "metrics-schema.yaml"
	Path string `yaml:"path"`

	// LocalPath is where the repository is cloned. Defaults to a
	// directory under the OS temp dir.
	LocalPath string `yaml:"local_path"`

	// Timeout bounds clone and pull operations.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// PollInterval is how often watch mode pulls the repository looking
	// for new commits. Remote commits produce no local filesystem
	// events, so git sources are polled rather than watched.
	// Default: 60s
	PollInterval time.Duration `yaml:"poll_interval"`
}

// ValidationConfig configures the runtime validator.
type ValidationConfig struct {
	// Mode is the reaction to a validation failure: "strict", "warn",
	// "drop", or "off".
	// Default: "strict"
	Mode string `yaml:"mode"`

	// IgnoredTags lists framework-injected tag names exempt from
	// required-tag and allowed-tag checks.
	// Default: ["source", "experiment", "variant"]
	IgnoredTags []string `yaml:"ignored_tags"`
}

// SinkConfig configures the metric backend.
type SinkConfig struct {
	// Backend selects the sink: "statsd", "log", or "none".
	// Default: "log"
	Backend string `yaml:"backend"`

	// Address is the UDP address of the StatsD agent when Backend is
	// "statsd".
	// Default: "127.0.0.1:8125"
	Address string `yaml:"address"`

	// DefaultTags are merged into every emission. Call-site tags win on
	// conflict.
	DefaultTags map[string]string `yaml:"default_tags"`
}

// HistoryConfig configures storage of analysis runs.
type HistoryConfig struct {
	// Enabled controls whether analysis runs are persisted.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path.
	// Default: "data/metricgov.db"
	SQLitePath string `yaml:"sqlite_path"`

	// Retention configures pruning of old runs.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig configures pruning of stored analysis runs.
type RetentionConfig struct {
	// Days is how long runs are kept. Zero disables age-based pruning.
	// Default: 90
	Days int `yaml:"days"`

	// MaxRuns caps the number of stored runs. Zero disables the cap.
	MaxRuns int64 `yaml:"max_runs"`

	// Schedule is a cron expression for automatic pruning. Empty
	// disables the scheduler.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig configures metricgov's own observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig configures self-instrumentation via Prometheus.
type MetricsConfig struct {
	// Enabled controls whether self-metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace and Subsystem prefix every metric name.
	// Defaults: "metricgov", "core"
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where the /metrics endpoint is served in watch
	// mode. Empty disables the endpoint.
	ListenAddress string `yaml:"listen_address"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP/gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the exporter connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// SampleRate is the fraction of traces sampled, 0.0 to 1.0.
	// Default: 1.0
	SampleRate float64 `yaml:"sample_rate"`

	// ServiceName identifies this process in traces.
	// Default: "metricgov"
	ServiceName string `yaml:"service_name"`
}
