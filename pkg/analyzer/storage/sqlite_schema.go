package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema is the SQLite DDL for analysis run storage. The per-metric
// breakdown is stored as a JSON column; runs are queried by ID and by
// generation time only, so no per-metric indexing is needed.
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id                        TEXT PRIMARY KEY,
	generated_at                  TIMESTAMP NOT NULL,
	total_unique_metrics          INTEGER NOT NULL,
	total_possible_custom_metrics INTEGER NOT NULL,
	metrics_analysis              TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analysis_runs_generated_at
	ON analysis_runs(generated_at);

CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InsertSchemaVersion records the schema version if absent.
const InsertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version) VALUES (?);
`

// GetSchemaVersion reads the highest applied schema version.
const GetSchemaVersion = `
SELECT COALESCE(MAX(version), 0) FROM schema_version;
`
