package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hqv-labs/dailybrief/internal/models"
)

// UpsertArticle inserts an article or refreshes its mutable fields if a row
// with the same id already exists. The processed flag is preserved on
// update so a re-collected article is not digested twice.
func (s *Store) UpsertArticle(ctx context.Context, a *models.Article) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (id, title, content, source, url, published_date, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title          = excluded.title,
			content        = excluded.content,
			source         = excluded.source,
			url            = excluded.url,
			published_date = excluded.published_date,
			category       = excluded.category`,
		a.ID, a.Title, a.Content, a.Source, a.URL, a.PublishedDate, a.Category,
	)
	if err != nil {
		return fmt.Errorf("upserting article %q: %w", a.ID, err)
	}
	return nil
}

// UnprocessedArticles returns up to limit articles that have not been
// digested yet, newest first by published date.
func (s *Store) UnprocessedArticles(ctx context.Context, limit int) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, source, url, published_date, category, processed, created_at
		 FROM articles
		 WHERE processed = 0
		 ORDER BY published_date DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying unprocessed articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// RecentArticles returns the most recently collected articles regardless of
// processed state, for the API surface.
func (s *Store) RecentArticles(ctx context.Context, limit, offset int) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, source, url, published_date, category, processed, created_at
		 FROM articles
		 ORDER BY published_date DESC
		 LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// MarkProcessed flips the processed flag for every given article id. IDs
// that do not exist are silently ignored.
func (s *Store) MarkProcessed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf("UPDATE articles SET processed = 1 WHERE id IN (%s)", placeholders)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("marking %d articles processed: %w", len(ids), err)
	}
	return nil
}

// CountUnprocessed returns how many articles are waiting for the next run.
func (s *Store) CountUnprocessed(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE processed = 0",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting unprocessed articles: %w", err)
	}
	return n, nil
}

func scanArticles(rows *sql.Rows) ([]models.Article, error) {
	var articles []models.Article
	for rows.Next() {
		var (
			a         models.Article
			processed int
			createdAt string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Source, &a.URL,
			&a.PublishedDate, &a.Category, &processed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		a.Processed = processed != 0
		a.CreatedAt = parseTime(createdAt)
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating article rows: %w", err)
	}

	return articles, nil
}
