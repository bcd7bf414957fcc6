// Package api exposes the digest over HTTP: the latest report, the
// collected articles, and an endpoint to trigger a digest run on demand.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/hqv-labs/dailybrief/internal/api/handlers"
	"github.com/hqv-labs/dailybrief/internal/digest"
	"github.com/hqv-labs/dailybrief/internal/storage"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(store *storage.Store, service *digest.Service) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Route("/api", func(api chi.Router) {
		api.Get("/report/latest", handlers.GetLatestReport(store))
		api.Get("/report/{date}", handlers.GetReportByDate(store))
		api.Get("/articles", handlers.ListArticles(store))
		api.Post("/digest", handlers.RunDigest(service))
	})

	return r
}
