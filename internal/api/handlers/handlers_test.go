package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hqv-labs/dailybrief/internal/digest"
	"github.com/hqv-labs/dailybrief/internal/models"
	"github.com/hqv-labs/dailybrief/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return storage.NewStore(db)
}

func newTestRouter(t *testing.T, store *storage.Store) http.Handler {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	service := digest.NewService(store, digest.NewPipeline(nil, logger), 20, "", logger)

	r := chi.NewRouter()
	r.Get("/api/report/latest", GetLatestReport(store))
	r.Get("/api/report/{date}", GetReportByDate(store))
	r.Get("/api/articles", ListArticles(store))
	r.Post("/api/digest", RunDigest(service))
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seedReport(t *testing.T, store *storage.Store, date time.Time, total int) {
	t.Helper()

	report := models.Report{
		Date:       date,
		TotalCount: total,
		Sections: map[models.Category][]models.CategorizedSummary{
			models.CategoryNews: {},
		},
		RenderedText: "rendered",
	}
	if err := store.SaveReport(context.Background(), &report); err != nil {
		t.Fatalf("seeding report: %v", err)
	}
}

func TestGetLatestReport_NotFound(t *testing.T) {
	router := newTestRouter(t, newTestStore(t))

	rec := doRequest(t, router, http.MethodGet, "/api/report/latest")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("error body should carry a message")
	}
}

func TestGetLatestReport_OK(t *testing.T) {
	store := newTestStore(t)
	seedReport(t, store, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 4)
	router := newTestRouter(t, store)

	rec := doRequest(t, router, http.MethodGet, "/api/report/latest")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var report models.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.TotalCount != 4 {
		t.Errorf("TotalCount = %d, want 4", report.TotalCount)
	}
}

func TestGetReportByDate(t *testing.T) {
	store := newTestStore(t)
	seedReport(t, store, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 1)
	router := newTestRouter(t, store)

	rec := doRequest(t, router, http.MethodGet, "/api/report/2025-06-01")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/report/2025-06-02")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for missing date", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/report/yesterday")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed date", rec.Code)
	}
}

func TestListArticles(t *testing.T) {
	store := newTestStore(t)
	router := newTestRouter(t, store)

	// Empty store returns an empty JSON array, not null.
	rec := doRequest(t, router, http.MethodGet, "/api/articles")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("empty list body = %q, want []", got)
	}

	a := models.Article{ID: "a1", Title: "Headline", Source: "Feed", PublishedDate: "2025-06-01T00:00:00Z"}
	if err := store.UpsertArticle(context.Background(), &a); err != nil {
		t.Fatalf("seeding article: %v", err)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/articles?limit=10")
	var articles []models.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &articles); err != nil {
		t.Fatalf("decoding articles: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "a1" {
		t.Errorf("articles = %+v", articles)
	}
}

func TestRunDigest(t *testing.T) {
	store := newTestStore(t)
	router := newTestRouter(t, store)

	a := models.Article{
		ID:            "a1",
		Title:         "A perfectly ordinary headline for the digest run",
		Content:       "Something happened this morning. It was widely reported by the afternoon.",
		Source:        "Feed",
		PublishedDate: "2025-06-01T00:00:00Z",
	}
	if err := store.UpsertArticle(context.Background(), &a); err != nil {
		t.Fatalf("seeding article: %v", err)
	}

	rec := doRequest(t, router, http.MethodPost, "/api/digest")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var report models.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", report.TotalCount)
	}

	// The run consumed the article.
	n, err := store.CountUnprocessed(context.Background())
	if err != nil {
		t.Fatalf("CountUnprocessed: %v", err)
	}
	if n != 0 {
		t.Errorf("CountUnprocessed = %d, want 0", n)
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc&neg=-5", nil)

	if got := queryInt(req, "limit", 50); got != 25 {
		t.Errorf("queryInt(limit) = %d, want 25", got)
	}
	if got := queryInt(req, "missing", 50); got != 50 {
		t.Errorf("queryInt(missing) = %d, want default", got)
	}
	if got := queryInt(req, "bad", 50); got != 50 {
		t.Errorf("queryInt(bad) = %d, want default", got)
	}
	if got := queryInt(req, "neg", 50); got != 50 {
		t.Errorf("queryInt(neg) = %d, want default", got)
	}
}
