package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/metricgov/metricgov/pkg/analyzer"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns caps open connections.
	// Default: 10
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/metricgov.db",
		MaxOpenConns: 10,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements Storage on a SQLite database file.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, applies the schema, and verifies
// the schema version.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "analyzer.storage.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", config.Path, err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("sqlite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize applies PRAGMAs and the DDL, then verifies the version.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if s.config.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("schema version mismatch: expected %d, got %d", SchemaVersion, version)
	}

	return nil
}

func (s *SQLiteStorage) SaveRun(ctx context.Context, result *analyzer.Result) error {
	breakdown, err := json.Marshal(result.MetricsAnalysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis breakdown: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (
			run_id, generated_at, total_unique_metrics,
			total_possible_custom_metrics, metrics_analysis
		) VALUES (?, ?, ?, ?, ?)`,
		result.RunID,
		result.GeneratedAt.UTC(),
		result.TotalUniqueMetrics,
		result.TotalPossibleCustomMetrics,
		string(breakdown),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis run %q: %w", result.RunID, err)
	}

	s.logger.Debug("analysis run saved", "run_id", result.RunID)
	return nil
}

func (s *SQLiteStorage) GetRun(ctx context.Context, runID string) (*analyzer.Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, generated_at, total_unique_metrics,
		       total_possible_custom_metrics, metrics_analysis
		FROM analysis_runs WHERE run_id = ?`, runID)

	var result analyzer.Result
	var breakdown string
	err := row.Scan(
		&result.RunID,
		&result.GeneratedAt,
		&result.TotalUniqueMetrics,
		&result.TotalPossibleCustomMetrics,
		&breakdown,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis run %q: %w", runID, err)
	}

	if err := json.Unmarshal([]byte(breakdown), &result.MetricsAnalysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis breakdown for %q: %w", runID, err)
	}

	return &result, nil
}

func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
		SELECT run_id, generated_at, total_unique_metrics, total_possible_custom_metrics
		FROM analysis_runs ORDER BY generated_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		if err := rows.Scan(
			&summary.RunID,
			&summary.GeneratedAt,
			&summary.TotalUniqueMetrics,
			&summary.TotalPossibleCustomMetrics,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM analysis_runs WHERE generated_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old analysis runs: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStorage) DeleteExcess(ctx context.Context, maxRuns int64) (int64, error) {
	if maxRuns <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM analysis_runs WHERE run_id NOT IN (
			SELECT run_id FROM analysis_runs
			ORDER BY generated_at DESC LIMIT ?
		)`, maxRuns)
	if err != nil {
		return 0, fmt.Errorf("failed to delete excess analysis runs: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
