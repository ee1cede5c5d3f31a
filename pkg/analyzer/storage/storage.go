package storage

import (
	"context"
	"errors"
	"time"

	"github.com/metricgov/metricgov/pkg/analyzer"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("analysis run not found")

// RunSummary is the listing view of a stored run: identity and totals
// without the per-metric breakdown.
type RunSummary struct {
	RunID                      string    `json:"run_id"`
	GeneratedAt                time.Time `json:"generated_at"`
	TotalUniqueMetrics         int       `json:"total_unique_metrics"`
	TotalPossibleCustomMetrics int64     `json:"total_possible_custom_metrics"`
}

// Storage persists analysis runs.
type Storage interface {
	// SaveRun stores a complete analysis result.
	SaveRun(ctx context.Context, result *analyzer.Result) error

	// GetRun retrieves a run by ID, including the per-metric breakdown.
	// Returns ErrNotFound if no such run exists.
	GetRun(ctx context.Context, runID string) (*analyzer.Result, error)

	// ListRuns returns summaries of the most recent runs, newest first,
	// up to limit. A non-positive limit returns all runs.
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)

	// DeleteBefore removes runs generated before the cutoff and returns
	// the number deleted.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteExcess keeps only the newest maxRuns runs and returns the
	// number deleted. A non-positive maxRuns deletes nothing.
	DeleteExcess(ctx context.Context, maxRuns int64) (int64, error)

	// Close releases storage resources.
	Close() error
}
