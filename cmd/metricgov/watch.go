package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/metricgov/metricgov/pkg/analyzer"
	"github.com/metricgov/metricgov/pkg/analyzer/retention"
	"github.com/metricgov/metricgov/pkg/analyzer/storage"
	"github.com/metricgov/metricgov/pkg/config"
	"github.com/metricgov/metricgov/pkg/schema/builder"
	"github.com/metricgov/metricgov/pkg/schema/source"
	"github.com/metricgov/metricgov/pkg/telemetry/logging"
	"github.com/metricgov/metricgov/pkg/telemetry/metrics"
	"github.com/metricgov/metricgov/pkg/telemetry/tracing"
	"github.com/metricgov/metricgov/pkg/validator"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a schema and re-analyze on every change",
	Long: `Load the schema from its configured source, analyze it, and keep
watching for changes. Every edit triggers a structural validation and a
fresh cardinality analysis; results are logged, exported as Prometheus
metrics when a listen address is configured, and recorded in history
storage when enabled.

This is the long-running governance mode: point it at the schema your
teams edit and it becomes a continuous cost monitor.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Telemetry.Logging, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return err
	}
	defer tracer.Shutdown(context.Background())

	collector := metrics.NewCollector(cfg.Telemetry.Metrics, prometheus.NewRegistry())

	var store storage.Storage
	if cfg.History.Enabled {
		store, err = openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		pruner := retention.NewPruner(store, cfg.History.Retention, logger)
		scheduler := retention.NewScheduler(pruner, cfg.History.Retention.Schedule, logger)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
	}

	src, err := source.FromConfig(cfg.Schema)
	if err != nil {
		return err
	}

	w := &watchRunner{
		cfg:       cfg,
		logger:    logging.Component(logger, "watch"),
		collector: collector,
		tracer:    tracer,
		source:    src,
		store:     store,
	}

	if err := w.reload(ctx); err != nil {
		return err
	}

	if addr := cfg.Telemetry.Metrics.ListenAddress; addr != "" && cfg.Telemetry.Metrics.Enabled {
		go w.serveMetrics(ctx, addr)
	}

	// Remote commits never surface as local filesystem events, so a
	// git-backed schema is polled; a file-backed one is watched.
	if cfg.Schema.Mode == "git" {
		poller := source.NewPoller(cfg.Schema.Git.PollInterval, logger)
		return poller.Watch(ctx, func() error {
			return w.reload(ctx)
		})
	}

	watcher, err := source.NewFileWatcher(src.Path(), cfg.Schema.WatchDebounce, logger)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	return watcher.Watch(ctx, func() error {
		return w.reload(ctx)
	})
}

// watchRunner holds the long-lived state of watch mode.
type watchRunner struct {
	cfg       *config.Config
	logger    *slog.Logger
	collector *metrics.Collector
	tracer    *tracing.Tracer
	source    source.Source
	store     storage.Storage
}

// reload loads the schema from its source, validates it, and runs a
// fresh analysis. Validation defects are logged but do not stop the
// watcher; the previous analysis stays current until a clean schema
// arrives.
func (w *watchRunner) reload(ctx context.Context) error {
	ctx, span := w.tracer.Start(ctx, "schema.reload")
	defer span.End()

	compiled, err := w.source.Load(ctx)
	if err != nil {
		w.collector.RecordSchemaReload(false)
		tracing.SetStatus(span, err)
		w.logger.Error("schema load failed", "error", err)
		return nil
	}

	if gs, ok := w.source.(*source.GitSource); ok {
		if sha, err := gs.Head(); err == nil {
			w.logger.Info("schema loaded from git", "commit", sha)
		}
	}

	defects := validator.NewStructuralValidator().Validate(compiled.Root)
	defects.Errors = append(defects.Errors, compiled.Defects.Errors...)
	if defects.HasErrors() {
		w.collector.RecordSchemaReload(false)
		for _, e := range defects.Errors {
			w.logger.Warn("schema defect", "kind", string(e.Kind), "error", e.Message)
		}
		return nil
	}

	w.collector.RecordSchemaReload(true)
	w.analyze(ctx, compiled)
	tracing.SetStatus(span, nil)
	return nil
}

// analyze runs the cardinality analysis and publishes the totals.
func (w *watchRunner) analyze(ctx context.Context, compiled *builder.Schema) {
	ctx, span := w.tracer.Start(ctx, "analysis.run")
	defer span.End()

	start := time.Now()
	result := analyzer.New(compiled.Root).Analyze()
	elapsed := time.Since(start)

	w.collector.RecordAnalysisRun(elapsed, result.TotalPossibleCustomMetrics)
	w.collector.SetSchemaMetricCount(len(result.MetricsAnalysis))

	w.logger.Info("cardinality analysis completed",
		"run_id", result.RunID,
		"metrics", len(result.MetricsAnalysis),
		"unique_names", result.TotalUniqueMetrics,
		"combinations", result.TotalPossibleCustomMetrics,
		"duration", elapsed,
	)

	if w.store != nil {
		if err := w.store.SaveRun(ctx, result); err != nil {
			w.logger.Error("failed to save analysis run", "run_id", result.RunID, "error", err)
		}
	}
	tracing.SetStatus(span, nil)
}

// serveMetrics exposes the Prometheus endpoint until the context ends.
func (w *watchRunner) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", w.collector.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	w.logger.Info("metrics endpoint listening", "address", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		w.logger.Error("metrics endpoint failed", "error", err)
	}
}
