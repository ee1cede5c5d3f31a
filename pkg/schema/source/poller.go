package source

import (
	"context"
	"log/slog"
	"time"
)

// Poller triggers schema reloads on a fixed interval. It serves sources
// whose origin is remote: a commit landing on the tracked branch of a
// Git repository produces no local filesystem event, so git-backed
// schemas are polled rather than watched.
type Poller struct {
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller creates a poller with the given interval.
func NewPoller(interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		interval: interval,
		logger:   logger.With("component", "schema.poller"),
	}
}

// Watch blocks, invoking onReload once per interval until the context
// is cancelled. Reload errors are logged and polling continues.
func (p *Poller) Watch(ctx context.Context, onReload func() error) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("schema poller started", "interval", p.interval)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("schema poller stopped", "reason", "context cancelled")
			return nil

		case <-ticker.C:
			if err := onReload(); err != nil {
				p.logger.Error("schema reload failed", "error", err)
			}
		}
	}
}
