package database

import (
	"database/sql"
	"fmt"

	"github.com/aeropulse/aeropulse/internal/synth"
)

// ReplaceDataset stores a city's generated series, replacing any previous
// dataset for that city. The whole write happens in one transaction.
func (db *DB) ReplaceDataset(city string, seed uint32, records []synth.Record) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin dataset write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM datasets WHERE city = ?", city); err != nil {
		return 0, fmt.Errorf("clearing previous dataset: %w", err)
	}

	result, err := tx.Exec(
		"INSERT INTO datasets (city, seed, record_count) VALUES (?, ?, ?)",
		city, int64(seed), len(records),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting dataset: %w", err)
	}
	datasetID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`INSERT INTO daily_records
		(dataset_id, day, date, pm25, pm10, no2, so2, co, o3, aqi,
		temperature, humidity, air_density, admissions, asthma, copd, bronchitis, severity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	for day, r := range records {
		if _, err := stmt.Exec(
			datasetID, day, r.Date, r.PM25, r.PM10, r.NO2, r.SO2, r.CO, r.O3, r.AQI,
			r.Temperature, r.Humidity, r.AirDensity,
			r.Admissions, r.Asthma, r.COPD, r.Bronchitis, r.Severity,
		); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit dataset write: %w", err)
	}
	return datasetID, nil
}

// GetDataset returns the stored dataset metadata for a city, or nil if the
// city has no dataset.
func (db *DB) GetDataset(city string) (*Dataset, error) {
	row := db.conn.QueryRow(
		"SELECT id, city, seed, record_count, generated_at FROM datasets WHERE city = ?", city,
	)
	var d Dataset
	err := row.Scan(&d.ID, &d.City, &d.Seed, &d.RecordCount, &d.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetRecords returns a city's stored daily records in chronological order.
// Returns an empty slice if the city has no dataset.
func (db *DB) GetRecords(city string) ([]synth.Record, error) {
	rows, err := db.conn.Query(
		`SELECT d.city, r.date, r.pm25, r.pm10, r.no2, r.so2, r.co, r.o3, r.aqi,
		r.temperature, r.humidity, r.air_density, r.admissions, r.asthma, r.copd, r.bronchitis, r.severity
		FROM daily_records r JOIN datasets d ON r.dataset_id = d.id
		WHERE d.city = ? ORDER BY r.day`, city,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []synth.Record
	for rows.Next() {
		var r synth.Record
		if err := rows.Scan(&r.City, &r.Date, &r.PM25, &r.PM10, &r.NO2, &r.SO2, &r.CO, &r.O3, &r.AQI,
			&r.Temperature, &r.Humidity, &r.AirDensity,
			&r.Admissions, &r.Asthma, &r.COPD, &r.Bronchitis, &r.Severity); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListDatasets returns all stored datasets ordered by city name.
func (db *DB) ListDatasets() ([]Dataset, error) {
	rows, err := db.conn.Query(
		"SELECT id, city, seed, record_count, generated_at FROM datasets ORDER BY city",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.ID, &d.City, &d.Seed, &d.RecordCount, &d.GeneratedAt); err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// GetStats returns aggregate counts for the status display.
func (db *DB) GetStats() (*Stats, error) {
	var s Stats
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM datasets").Scan(&s.Datasets); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM daily_records").Scan(&s.Records); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM analysis_reports").Scan(&s.Reports); err != nil {
		return nil, err
	}
	return &s, nil
}
