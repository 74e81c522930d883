package database

import (
	"database/sql"
	"fmt"
)

// ReplaceReport stores a city's analysis report, replacing any previous one.
func (db *DB) ReplaceReport(rep AnalysisReport) error {
	_, err := db.conn.Exec(
		`INSERT INTO analysis_reports
		(run_id, city, period, slope, intercept, r_squared, correlation, body_markdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(city) DO UPDATE SET
			run_id = excluded.run_id,
			period = excluded.period,
			slope = excluded.slope,
			intercept = excluded.intercept,
			r_squared = excluded.r_squared,
			correlation = excluded.correlation,
			body_markdown = excluded.body_markdown,
			generated_at = datetime('now')`,
		rep.RunID, rep.City, rep.Period,
		rep.Slope, rep.Intercept, rep.RSquared, rep.Correlation, rep.BodyMarkdown,
	)
	if err != nil {
		return fmt.Errorf("storing report for %s: %w", rep.City, err)
	}
	return nil
}

// GetReport returns a city's stored analysis report, or nil if none exists.
func (db *DB) GetReport(city string) (*AnalysisReport, error) {
	row := db.conn.QueryRow(
		`SELECT id, run_id, city, period, slope, intercept, r_squared, correlation, body_markdown, generated_at
		FROM analysis_reports WHERE city = ?`, city,
	)
	var r AnalysisReport
	err := row.Scan(&r.ID, &r.RunID, &r.City, &r.Period,
		&r.Slope, &r.Intercept, &r.RSquared, &r.Correlation, &r.BodyMarkdown, &r.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReports returns all stored reports ordered by city name.
func (db *DB) ListReports() ([]AnalysisReport, error) {
	rows, err := db.conn.Query(
		`SELECT id, run_id, city, period, slope, intercept, r_squared, correlation, body_markdown, generated_at
		FROM analysis_reports ORDER BY city`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []AnalysisReport
	for rows.Next() {
		var r AnalysisReport
		if err := rows.Scan(&r.ID, &r.RunID, &r.City, &r.Period,
			&r.Slope, &r.Intercept, &r.RSquared, &r.Correlation, &r.BodyMarkdown, &r.GeneratedAt); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
