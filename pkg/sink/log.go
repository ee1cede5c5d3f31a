package sink

import (
	"log/slog"
	"time"
)

// LogSink writes every emission to a structured logger instead of a
// metrics backend. It is intended for development and debugging.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a log sink. A nil logger falls back to
// slog.Default.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "sink.log")}
}

func (s *LogSink) Count(name string, delta int64, tags map[string]string) error {
	s.logger.Info("metric", "kind", "counter", "name", name, "delta", delta, "tags", tags)
	return nil
}

func (s *LogSink) Gauge(name string, value float64, tags map[string]string) error {
	s.logger.Info("metric", "kind", "gauge", "name", name, "value", value, "tags", tags)
	return nil
}

func (s *LogSink) Histogram(name string, value float64, tags map[string]string) error {
	s.logger.Info("metric", "kind", "histogram", "name", name, "value", value, "tags", tags)
	return nil
}

func (s *LogSink) Distribution(name string, value float64, tags map[string]string) error {
	s.logger.Info("metric", "kind", "distribution", "name", name, "value", value, "tags", tags)
	return nil
}

func (s *LogSink) Set(name string, member string, tags map[string]string) error {
	s.logger.Info("metric", "kind", "set", "name", name, "member", member, "tags", tags)
	return nil
}

func (s *LogSink) Timing(name string, d time.Duration, tags map[string]string) error {
	s.logger.Info("metric", "kind", "timing", "name", name, "duration_ms", d.Milliseconds(), "tags", tags)
	return nil
}

func (s *LogSink) Close() error { return nil }
