package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hqv-labs/dailybrief/internal/models"
)

func testReport(date time.Time, total int) *models.Report {
	return &models.Report{
		Date:       date,
		TotalCount: total,
		Sections: map[models.Category][]models.CategorizedSummary{
			models.CategoryNews: {
				{Title: "Something happened", Summary: "A summary.", Source: "Feed", Category: models.CategoryNews},
			},
		},
		RenderedText: "Daily AI Research Digest",
	}
}

func TestSaveReport_AndLatest(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	report := testReport(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 1)
	if err := store.SaveReport(ctx, report); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := store.LatestReport(ctx)
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if got.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", got.TotalCount)
	}
	if got.RenderedText != report.RenderedText {
		t.Errorf("RenderedText = %q", got.RenderedText)
	}
	if len(got.Sections[models.CategoryNews]) != 1 {
		t.Errorf("news section lost on round trip: %+v", got.Sections)
	}
}

func TestSaveReport_ReplacesSameDate(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := store.SaveReport(ctx, testReport(date, 1)); err != nil {
		t.Fatalf("first SaveReport: %v", err)
	}
	if err := store.SaveReport(ctx, testReport(date, 7)); err != nil {
		t.Fatalf("second SaveReport: %v", err)
	}

	got, err := store.ReportByDate(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("ReportByDate: %v", err)
	}
	if got.TotalCount != 7 {
		t.Errorf("TotalCount = %d, want the re-run's 7", got.TotalCount)
	}

	// Still exactly one row for the date.
	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM reports").Scan(&n); err != nil {
		t.Fatalf("counting reports: %v", err)
	}
	if n != 1 {
		t.Errorf("reports rows = %d, want 1", n)
	}
}

func TestLatestReport_PicksNewestDate(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	for _, d := range []time.Time{
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	} {
		if err := store.SaveReport(ctx, testReport(d, 1)); err != nil {
			t.Fatalf("SaveReport(%s): %v", d, err)
		}
	}

	got, err := store.LatestReport(ctx)
	if err != nil {
		t.Fatalf("LatestReport: %v", err)
	}
	if got.Date.Format("2006-01-02") != "2025-06-05" {
		t.Errorf("latest date = %s, want 2025-06-05", got.Date.Format("2006-01-02"))
	}
}

func TestReportByDate_NotFound(t *testing.T) {
	store := newTestDB(t)

	_, err := store.ReportByDate(context.Background(), "1999-01-01")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLatestReport_EmptyTable(t *testing.T) {
	store := newTestDB(t)

	_, err := store.LatestReport(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
