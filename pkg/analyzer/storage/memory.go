package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/metricgov/metricgov/pkg/analyzer"
)

// MemoryStorage implements Storage in process memory. It is used by
// tests and by the memory history backend.
type MemoryStorage struct {
	mu   sync.RWMutex
	runs map[string]*analyzer.Result
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{runs: make(map[string]*analyzer.Result)}
}

func (s *MemoryStorage) SaveRun(ctx context.Context, result *analyzer.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *result
	copied.MetricsAnalysis = append([]analyzer.MetricAnalysis(nil), result.MetricsAnalysis...)
	s.runs[result.RunID] = &copied
	return nil
}

func (s *MemoryStorage) GetRun(ctx context.Context, runID string) (*analyzer.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.runs[runID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *result
	copied.MetricsAnalysis = append([]analyzer.MetricAnalysis(nil), result.MetricsAnalysis...)
	return &copied, nil
}

func (s *MemoryStorage) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]RunSummary, 0, len(s.runs))
	for _, r := range s.runs {
		summaries = append(summaries, RunSummary{
			RunID:                      r.RunID,
			GeneratedAt:                r.GeneratedAt,
			TotalUniqueMetrics:         r.TotalUniqueMetrics,
			TotalPossibleCustomMetrics: r.TotalPossibleCustomMetrics,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].GeneratedAt.After(summaries[j].GeneratedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *MemoryStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, r := range s.runs {
		if r.GeneratedAt.Before(cutoff) {
			delete(s.runs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStorage) DeleteExcess(ctx context.Context, maxRuns int64) (int64, error) {
	if maxRuns <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if int64(len(s.runs)) <= maxRuns {
		return 0, nil
	}

	ordered := make([]*analyzer.Result, 0, len(s.runs))
	for _, r := range s.runs {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].GeneratedAt.After(ordered[j].GeneratedAt)
	})

	var deleted int64
	for _, r := range ordered[maxRuns:] {
		delete(s.runs, r.RunID)
		deleted++
	}
	return deleted, nil
}

func (s *MemoryStorage) Close() error { return nil }
