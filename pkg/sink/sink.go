package sink

import "time"

// Sink is the external metric backend. The emitter maps each call-site
// operation to exactly one of these methods before forwarding; nothing
// is ever forwarded for an emission rejected under strict or drop
// policy.
type Sink interface {
	// Count adjusts a counter by delta.
	Count(name string, delta int64, tags map[string]string) error

	// Gauge records an instantaneous value.
	Gauge(name string, value float64, tags map[string]string) error

	// Histogram records a value in a histogram.
	Histogram(name string, value float64, tags map[string]string) error

	// Distribution records a value in a global distribution.
	Distribution(name string, value float64, tags map[string]string) error

	// Set records a member of a unique-value set.
	Set(name string, member string, tags map[string]string) error

	// Timing records an elapsed duration.
	Timing(name string, d time.Duration, tags map[string]string) error

	// Close releases any resources held by the sink.
	Close() error
}
