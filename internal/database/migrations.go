package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS datasets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    city TEXT UNIQUE NOT NULL,
    seed INTEGER NOT NULL,
    record_count INTEGER DEFAULT 0,
    generated_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS daily_records (
    dataset_id INTEGER NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    date TEXT NOT NULL,
    pm25 REAL NOT NULL,
    pm10 REAL NOT NULL,
    no2 REAL NOT NULL,
    so2 REAL NOT NULL,
    co REAL NOT NULL,
    o3 REAL NOT NULL,
    aqi INTEGER NOT NULL,
    temperature REAL NOT NULL,
    humidity REAL NOT NULL,
    air_density REAL NOT NULL,
    admissions INTEGER NOT NULL,
    asthma INTEGER NOT NULL,
    copd INTEGER NOT NULL,
    bronchitis INTEGER NOT NULL,
    severity REAL NOT NULL,
    PRIMARY KEY (dataset_id, day)
);

CREATE TABLE IF NOT EXISTS analysis_reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    city TEXT UNIQUE NOT NULL,
    period TEXT NOT NULL,
    slope REAL DEFAULT 0,
    intercept REAL DEFAULT 0,
    r_squared REAL DEFAULT 0,
    correlation REAL DEFAULT 0,
    body_markdown TEXT NOT NULL,
    generated_at TEXT DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_daily_records_dataset ON daily_records(dataset_id);
CREATE INDEX IF NOT EXISTS idx_datasets_city ON datasets(city);
CREATE INDEX IF NOT EXISTS idx_analysis_reports_city ON analysis_reports(city);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
