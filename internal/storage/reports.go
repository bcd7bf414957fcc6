package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hqv-labs/dailybrief/internal/models"
)

// SaveReport inserts an assembled report, replacing any previous report for
// the same calendar date (re-running the digest overwrites that day).
func (s *Store) SaveReport(ctx context.Context, report *models.Report) error {
	sections, err := json.Marshal(report.Sections)
	if err != nil {
		return fmt.Errorf("marshaling report sections: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (report_date, total_count, sections_json, rendered_text)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(report_date) DO UPDATE SET
			total_count   = excluded.total_count,
			sections_json = excluded.sections_json,
			rendered_text = excluded.rendered_text,
			created_at    = datetime('now')`,
		report.Date.Format("2006-01-02"), report.TotalCount, string(sections), report.RenderedText,
	)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		report.ID = id
	}
	return nil
}

// LatestReport returns the most recent report by date.
// Returns ErrNotFound when no report has been assembled yet.
func (s *Store) LatestReport(ctx context.Context) (*models.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, report_date, total_count, sections_json, rendered_text, created_at
		 FROM reports
		 ORDER BY report_date DESC
		 LIMIT 1`,
	)
	return scanReport(row)
}

// ReportByDate returns the report for the given YYYY-MM-DD date string.
// Returns ErrNotFound when no report exists for that date.
func (s *Store) ReportByDate(ctx context.Context, date string) (*models.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, report_date, total_count, sections_json, rendered_text, created_at
		 FROM reports
		 WHERE report_date = ?`, date,
	)
	return scanReport(row)
}

func scanReport(row *sql.Row) (*models.Report, error) {
	var (
		report       models.Report
		reportDate   string
		sectionsJSON string
		createdAt    string
	)

	err := row.Scan(&report.ID, &reportDate, &report.TotalCount, &sectionsJSON, &report.RenderedText, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning report row: %w", err)
	}

	if err := json.Unmarshal([]byte(sectionsJSON), &report.Sections); err != nil {
		return nil, fmt.Errorf("decoding report sections: %w", err)
	}

	report.Date = parseTime(reportDate)
	report.CreatedAt = parseTime(createdAt)
	return &report, nil
}
