package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// whole list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ... ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		code       TEXT PRIMARY KEY,
		institute  TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS credits (
		code       TEXT PRIMARY KEY,
		credits    INTEGER NOT NULL CHECK(credits > 0),
		updated_at TEXT NOT NULL
	)`,

	// One row per fetch of (subject, term); offered = 0 records a subject
	// the term does not offer so it is not fetched again.
	`CREATE TABLE IF NOT EXISTS offerings (
		code       TEXT NOT NULL,
		term       TEXT NOT NULL,
		offered    INTEGER NOT NULL DEFAULT 1,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (code, term)
	)`,

	`CREATE TABLE IF NOT EXISTS sections (
		code       TEXT NOT NULL,
		term       TEXT NOT NULL,
		position   INTEGER NOT NULL,
		slots_json TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (code, term, position),
		FOREIGN KEY (code, term) REFERENCES offerings(code, term) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sections_term ON sections(term)`,

	`CREATE TABLE IF NOT EXISTS plan_runs (
		id          TEXT PRIMARY KEY,
		start_term  TEXT NOT NULL,
		subjects    TEXT NOT NULL,
		max_credits INTEGER NOT NULL,
		goal        INTEGER NOT NULL,
		outcome     TEXT NOT NULL CHECK(outcome IN ('complete','partial')),
		explored    INTEGER NOT NULL DEFAULT 0,
		plans_json  TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_runs_created ON plan_runs(created_at)`,

	// Budget diagnostics for partial runs
	`ALTER TABLE plan_runs ADD COLUMN abandoned INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE plan_runs ADD COLUMN uncovered TEXT NOT NULL DEFAULT ''`,
}
