// Package dbmigrate bootstraps the Postgres schema on startup: the spans
// table, the service_discovery table, and the composite indexes the read
// surface depends on. Migrations run as an idempotent ordered list of
// CREATE TABLE/INDEX IF NOT EXISTS statements, matching the raw-SQL-on-boot
// approach used elsewhere in the platform rather than a migration framework.
package dbmigrate

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS spans (
		tenant_id       TEXT NOT NULL,
		trace_id        TEXT NOT NULL,
		span_id         TEXT NOT NULL,
		parent_span_id  TEXT,
		service_name    TEXT NOT NULL,
		operation       TEXT NOT NULL,
		kind            TEXT NOT NULL,
		start_time      TIMESTAMPTZ NOT NULL,
		end_time        TIMESTAMPTZ NOT NULL,
		latency_ms      DOUBLE PRECISION NOT NULL,
		status_code     INTEGER,
		error           TEXT,
		downstream      TEXT,
		metadata        JSONB,
		ingested_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (tenant_id, span_id)
	)`,
	`CREATE INDEX IF NOT EXISTS spans_by_trace_idx ON spans (tenant_id, trace_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS spans_by_service_idx ON spans (tenant_id, service_name, start_time)`,
	`CREATE INDEX IF NOT EXISTS spans_by_downstream_idx ON spans (tenant_id, downstream) WHERE downstream IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS service_discovery (
		tenant_id      TEXT NOT NULL,
		service_name   TEXT NOT NULL,
		description    TEXT,
		declared_type  TEXT,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (tenant_id, service_name)
	)`,
}

// Run applies every migration in order. Each statement is idempotent, so
// Run is safe to call on every process start.
func Run(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
