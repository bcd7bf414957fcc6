package handlers

import (
	"net/http"

	"github.com/hqv-labs/dailybrief/internal/models"
	"github.com/hqv-labs/dailybrief/internal/storage"
)

const defaultPageSize = 50

// ListArticles returns recently collected articles, newest first. Supports
// limit and offset query parameters.
func ListArticles(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", defaultPageSize)
		offset := queryInt(r, "offset", 0)

		articles, err := store.RecentArticles(r.Context(), limit, offset)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if articles == nil {
			articles = []models.Article{}
		}
		writeJSON(w, http.StatusOK, articles)
	}
}
