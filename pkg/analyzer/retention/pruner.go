package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metricgov/metricgov/pkg/analyzer/storage"
	"github.com/metricgov/metricgov/pkg/config"
)

// Pruner deletes analysis runs that fall outside the retention policy:
// first by age, then by count.
type Pruner struct {
	store  storage.Storage
	cfg    config.RetentionConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewPruner creates a pruner over a storage backend.
func NewPruner(store storage.Storage, cfg config.RetentionConfig, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		store:  store,
		cfg:    cfg,
		logger: logger.With("component", "analyzer.retention"),
		now:    time.Now,
	}
}

// Prune applies the retention policy and returns the total number of
// runs deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.cfg.Days > 0 {
		cutoff := p.now().AddDate(0, 0, -p.cfg.Days)
		deleted, err := p.store.DeleteBefore(ctx, cutoff)
		if err != nil {
			return total, fmt.Errorf("age-based pruning failed: %w", err)
		}
		total += deleted
		if deleted > 0 {
			p.logger.Info("pruned analysis runs by age",
				"deleted", deleted,
				"cutoff", cutoff.Format(time.RFC3339),
			)
		}
	}

	if p.cfg.MaxRuns > 0 {
		deleted, err := p.store.DeleteExcess(ctx, p.cfg.MaxRuns)
		if err != nil {
			return total, fmt.Errorf("count-based pruning failed: %w", err)
		}
		total += deleted
		if deleted > 0 {
			p.logger.Info("pruned analysis runs by count",
				"deleted", deleted,
				"max_runs", p.cfg.MaxRuns,
			)
		}
	}

	return total, nil
}
