package retention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/metricgov/metricgov/pkg/analyzer"
	"github.com/metricgov/metricgov/pkg/analyzer/storage"
	"github.com/metricgov/metricgov/pkg/config"
)

func seedRuns(t *testing.T, store storage.Storage, base time.Time, ages ...time.Duration) {
	t.Helper()
	for i, age := range ages {
		run := &analyzer.Result{
			RunID:       fmt.Sprintf("run-%d", i),
			GeneratedAt: base.Add(-age),
		}
		if err := store.SaveRun(context.Background(), run); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPruneByAge(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStorage()
	seedRuns(t, store, now, 0, 24*time.Hour, 10*24*time.Hour, 40*24*time.Hour)

	p := NewPruner(store, config.RetentionConfig{Days: 30}, nil)
	p.now = func() time.Time { return now }

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1 run older than 30 days", deleted)
	}

	remaining, _ := store.ListRuns(context.Background(), 0)
	if len(remaining) != 3 {
		t.Errorf("remaining = %d runs, want 3", len(remaining))
	}
}

func TestPruneByCount(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStorage()
	seedRuns(t, store, now, 0, time.Hour, 2*time.Hour, 3*time.Hour, 4*time.Hour)

	p := NewPruner(store, config.RetentionConfig{MaxRuns: 2}, nil)
	p.now = func() time.Time { return now }

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	remaining, _ := store.ListRuns(context.Background(), 0)
	if len(remaining) != 2 {
		t.Fatalf("remaining = %d runs, want 2", len(remaining))
	}
	if remaining[0].RunID != "run-0" || remaining[1].RunID != "run-1" {
		t.Errorf("kept %v, want the two newest", remaining)
	}
}

func TestPruneCombined(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStorage()
	// Two stale runs plus three fresh ones.
	seedRuns(t, store, now, 0, time.Hour, 2*time.Hour, 45*24*time.Hour, 60*24*time.Hour)

	p := NewPruner(store, config.RetentionConfig{Days: 30, MaxRuns: 2}, nil)
	p.now = func() time.Time { return now }

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	// Age pass removes 2, count pass removes 1 of the 3 survivors.
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}
}

func TestPruneDisabledPolicy(t *testing.T) {
	store := storage.NewMemoryStorage()
	seedRuns(t, store, time.Now().UTC(), 0, 400*24*time.Hour)

	p := NewPruner(store, config.RetentionConfig{}, nil)

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("disabled policy deleted %d runs, want 0", deleted)
	}
}
