package emitter

import (
	"fmt"
	"sync"
	"time"
)

var (
	defaultMu      sync.RWMutex
	defaultEmitter *Emitter
)

// Configure installs the package-level emitter used by the top-level
// emission functions. Call it once at startup after the schema is
// loaded.
func Configure(e *Emitter) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultEmitter = e
}

// Default returns the package-level emitter, or an error if Configure
// has not been called.
func Default() (*Emitter, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultEmitter == nil {
		return nil, fmt.Errorf("emitter not configured: call emitter.Configure first")
	}
	return defaultEmitter, nil
}

// Increment adds one to a counter via the package-level emitter.
func Increment(name string, tags map[string]string) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.Increment(name, tags)
}

// Count adjusts a counter by delta via the package-level emitter.
func Count(name string, delta int64, tags map[string]string) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.Count(name, delta, tags)
}

// Gauge records an instantaneous value via the package-level emitter.
func Gauge(name string, value float64, tags map[string]string) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.Gauge(name, value, tags)
}

// Histogram records a histogram value via the package-level emitter.
func Histogram(name string, value float64, tags map[string]string) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.Histogram(name, value, tags)
}

// Distribution records a distribution value via the package-level emitter.
func Distribution(name string, value float64, tags map[string]string) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.Distribution(name, value, tags)
}

// Set records a set member via the package-level emitter.
func Set(name string, member string, tags map[string]string) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.Set(name, member, tags)
}

// Timing records an elapsed duration via the package-level emitter.
func Timing(name string, d time.Duration, tags map[string]string) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.Timing(name, d, tags)
}
