package sink

import (
	"sync"
	"time"
)

// Emission is one captured forward to a MemorySink.
type Emission struct {
	Kind   string
	Name   string
	Value  float64
	Member string
	Tags   map[string]string
}

// MemorySink captures emissions in memory. It exists for tests and is
// safe for concurrent use.
type MemorySink struct {
	mu        sync.Mutex
	emissions []Emission
}

// NewMemorySink creates an empty capture sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emissions returns a copy of everything captured so far.
func (s *MemorySink) Emissions() []Emission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Emission, len(s.emissions))
	copy(out, s.emissions)
	return out
}

// Reset discards all captured emissions.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emissions = nil
}

func (s *MemorySink) record(e Emission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emissions = append(s.emissions, e)
}

func (s *MemorySink) Count(name string, delta int64, tags map[string]string) error {
	s.record(Emission{Kind: "counter", Name: name, Value: float64(delta), Tags: tags})
	return nil
}

func (s *MemorySink) Gauge(name string, value float64, tags map[string]string) error {
	s.record(Emission{Kind: "gauge", Name: name, Value: value, Tags: tags})
	return nil
}

func (s *MemorySink) Histogram(name string, value float64, tags map[string]string) error {
	s.record(Emission{Kind: "histogram", Name: name, Value: value, Tags: tags})
	return nil
}

func (s *MemorySink) Distribution(name string, value float64, tags map[string]string) error {
	s.record(Emission{Kind: "distribution", Name: name, Value: value, Tags: tags})
	return nil
}

func (s *MemorySink) Set(name string, member string, tags map[string]string) error {
	s.record(Emission{Kind: "set", Name: name, Member: member, Tags: tags})
	return nil
}

func (s *MemorySink) Timing(name string, d time.Duration, tags map[string]string) error {
	s.record(Emission{Kind: "timing", Name: name, Value: float64(d.Milliseconds()), Tags: tags})
	return nil
}

func (s *MemorySink) Close() error { return nil }
