package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// seq preserves insertion order independently of created_at resolution.
	`CREATE TABLE IF NOT EXISTS plans (
		seq                       INTEGER PRIMARY KEY AUTOINCREMENT,
		id                        TEXT NOT NULL UNIQUE,
		city_name                 TEXT NOT NULL,
		latitude                  REAL NOT NULL DEFAULT 0,
		longitude                 REAL NOT NULL DEFAULT 0,
		budget                    REAL NOT NULL DEFAULT 0,
		population                INTEGER NOT NULL DEFAULT 0,
		growth_rate               REAL NOT NULL DEFAULT 0,
		climate_type              TEXT NOT NULL,
		water_availability        TEXT NOT NULL,
		disaster_risk_level       TEXT NOT NULL,
		primary_goal              TEXT NOT NULL,
		sustainability_score      INTEGER NOT NULL
		                          CHECK(sustainability_score BETWEEN 0 AND 100),
		alloc_infrastructure      INTEGER NOT NULL DEFAULT 0,
		alloc_water_systems       INTEGER NOT NULL DEFAULT 0,
		alloc_disaster_mitigation INTEGER NOT NULL DEFAULT 0,
		alloc_sustainability      INTEGER NOT NULL DEFAULT 0,
		alloc_emergency_reserve   INTEGER NOT NULL DEFAULT 0,
		created_at                TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_disaster_types (
		plan_id       TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		disaster_type TEXT NOT NULL,
		position      INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (plan_id, disaster_type)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_disaster_types_plan ON plan_disaster_types(plan_id)`,

	`CREATE TABLE IF NOT EXISTS app_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_drafts (
		id         INTEGER PRIMARY KEY CHECK(id = 1),
		input_json TEXT NOT NULL DEFAULT '{}',
		step       INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,
}
