package emitter

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
	"github.com/metricgov/metricgov/pkg/sink"
	"github.com/metricgov/metricgov/pkg/telemetry/metrics"
	"github.com/metricgov/metricgov/pkg/validator"
)

// Options configures an Emitter.
type Options struct {
	// Mode is the reaction to validation failures. Defaults to strict.
	Mode validator.Mode

	// DefaultTags are merged into every emission. Call-site tags win on
	// conflict.
	DefaultTags map[string]string

	// Logger receives warn-mode diagnostics. Defaults to slog.Default.
	Logger *slog.Logger

	// Collector records self-instrumentation. Optional.
	Collector *metrics.Collector
}

// Emitter validates and forwards metric emissions.
type Emitter struct {
	validator   *validator.Validator
	sink        sink.Sink
	mode        validator.Mode
	defaultTags map[string]string
	logger      *slog.Logger
	collector   *metrics.Collector
}

// New creates an Emitter over a validator and a sink.
func New(v *validator.Validator, s sink.Sink, opts Options) *Emitter {
	mode := opts.Mode
	if mode == "" {
		mode = validator.ModeStrict
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		validator:   v,
		sink:        s,
		mode:        mode,
		defaultTags: opts.DefaultTags,
		logger:      logger.With("component", "emitter"),
		collector:   opts.Collector,
	}
}

// Increment adds one to a counter.
func (e *Emitter) Increment(name string, tags map[string]string) error {
	return e.Count(name, 1, tags)
}

// IncrementBy adds delta to a counter.
func (e *Emitter) IncrementBy(name string, delta int64, tags map[string]string) error {
	return e.Count(name, delta, tags)
}

// Decrement subtracts one from a counter.
func (e *Emitter) Decrement(name string, tags map[string]string) error {
	return e.emit(validator.OpDecrement, name, tags, func(merged map[string]string) error {
		return e.sink.Count(name, -1, merged)
	})
}

// Count adjusts a counter by delta.
func (e *Emitter) Count(name string, delta int64, tags map[string]string) error {
	return e.emit(validator.OpIncrement, name, tags, func(merged map[string]string) error {
		return e.sink.Count(name, delta, merged)
	})
}

// Gauge records an instantaneous value.
func (e *Emitter) Gauge(name string, value float64, tags map[string]string) error {
	return e.emit(validator.OpGauge, name, tags, func(merged map[string]string) error {
		return e.sink.Gauge(name, value, merged)
	})
}

// Histogram records a value in a histogram.
func (e *Emitter) Histogram(name string, value float64, tags map[string]string) error {
	return e.emit(validator.OpHistogram, name, tags, func(merged map[string]string) error {
		return e.sink.Histogram(name, value, merged)
	})
}

// Distribution records a value in a global distribution.
func (e *Emitter) Distribution(name string, value float64, tags map[string]string) error {
	return e.emit(validator.OpDistribution, name, tags, func(merged map[string]string) error {
		return e.sink.Distribution(name, value, merged)
	})
}

// Set records a member of a unique-value set.
func (e *Emitter) Set(name string, member string, tags map[string]string) error {
	return e.emit(validator.OpSet, name, tags, func(merged map[string]string) error {
		return e.sink.Set(name, member, merged)
	})
}

// Timing records an elapsed duration.
func (e *Emitter) Timing(name string, d time.Duration, tags map[string]string) error {
	return e.emit(validator.OpTiming, name, tags, func(merged map[string]string) error {
		return e.sink.Timing(name, d, merged)
	})
}

// Close closes the underlying sink.
func (e *Emitter) Close() error {
	return e.sink.Close()
}

// emit runs the shared pipeline: merge tags, validate, apply the
// failure policy, forward.
func (e *Emitter) emit(op validator.Operation, name string, tags map[string]string, forward func(map[string]string) error) error {
	merged := e.mergeTags(tags)

	if e.mode != validator.ModeOff {
		if verr := e.validator.Check(op, name, merged); verr != nil {
			e.recordValidation(false, string(verr.Kind))
			switch e.mode {
			case validator.ModeStrict:
				return fmt.Errorf("metric emission rejected: %w", verr)
			case validator.ModeWarn:
				e.logger.Warn("metric emission failed validation",
					"metric", name,
					"operation", string(op),
					"kind", string(verr.Kind),
					"error", verr.Message)
			case validator.ModeDrop:
				e.recordDropped()
				return nil
			}
		} else {
			e.recordValidation(true, "")
		}
	}

	if err := forward(merged); err != nil {
		return fmt.Errorf("sink forward failed for %q: %w", name, err)
	}
	e.recordForwarded()
	return nil
}

// mergeTags overlays call-site tags on the configured defaults. The
// result is always a fresh map; callers keep ownership of theirs.
func (e *Emitter) mergeTags(tags map[string]string) map[string]string {
	merged := make(map[string]string, len(e.defaultTags)+len(tags))
	for k, v := range e.defaultTags {
		merged[k] = v
	}
	for k, v := range tags {
		merged[k] = v
	}
	return merged
}

func (e *Emitter) recordValidation(ok bool, kind string) {
	if e.collector == nil {
		return
	}
	if ok {
		e.collector.RecordValidation(metrics.OutcomeOK, "")
		return
	}
	e.collector.RecordValidation(metrics.OutcomeFailed, kind)
}

func (e *Emitter) recordForwarded() {
	if e.collector != nil {
		e.collector.RecordForwarded()
	}
}

func (e *Emitter) recordDropped() {
	if e.collector != nil {
		e.collector.RecordDropped()
	}
}

// ValidationKind extracts the failure kind from an error returned by an
// emission call, or empty if the error is not a validation failure.
func ValidationKind(err error) schemaErrors.Kind {
	var verr *schemaErrors.Error
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return ""
}
