// Package feeds collects raw articles from arXiv and configured RSS/Atom
// sources. Collection failures are per-source: one broken feed never fails
// the batch.
package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/hqv-labs/dailybrief/internal/models"
)

const (
	httpTimeout    = 30 * time.Second
	maxConcurrent  = 10
	rateLimitDelay = 1 * time.Second
)

// Source describes a single feed endpoint to collect from.
type Source struct {
	// Name labels articles from this source, e.g. "arXiv Research".
	Name string

	// URL is the RSS/Atom endpoint.
	URL string

	// Category is an optional label stamped on collected articles.
	Category string

	// MaxItems caps how many items are taken from this feed per run.
	MaxItems int

	// ExtractContent fetches the full article text via readability when a
	// feed item carries no useful description.
	ExtractContent bool
}

// ArxivSource builds a Source for one arXiv category, newest submissions
// first, using the public Atom query API.
func ArxivSource(category string, maxItems int) Source {
	query := url.Values{}
	query.Set("search_query", "cat:"+category)
	query.Set("start", "0")
	query.Set("max_results", fmt.Sprintf("%d", maxItems))
	query.Set("sortBy", "submittedDate")
	query.Set("sortOrder", "descending")

	return Source{
		Name:     "arXiv Research",
		URL:      "http://export.arxiv.org/api/query?" + query.Encode(),
		Category: category,
		MaxItems: maxItems,
	}
}

// FailedSource records a source that could not be fetched.
type FailedSource struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// CollectResult contains the successfully collected articles and any
// per-source failures.
type CollectResult struct {
	Articles []models.Article
	Failed   []FailedSource
}

// Fetcher collects feeds with per-domain rate limiting and bounded
// concurrency.
type Fetcher struct {
	client      *http.Client
	rateLimiter map[string]time.Time // per-domain last request time
	mu          sync.Mutex           // protects rateLimiter
}

// NewFetcher creates a Fetcher with a 30-second timeout HTTP client and a
// stable User-Agent.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: httpTimeout,
			Transport: &userAgentTransport{
				base: http.DefaultTransport,
			},
		},
		rateLimiter: make(map[string]time.Time),
	}
}

// userAgentTransport wraps an http.RoundTripper to inject request headers on
// every request. Some feed hosts reject requests without a browser-like
// Accept header.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "dailybrief/1.0 (+https://github.com/hqv-labs/dailybrief)")
	req.Header.Set("Accept", "application/atom+xml,application/rss+xml,application/xml;q=0.9,*/*;q=0.8")
	return t.base.RoundTrip(req)
}

// CollectAll fetches every source concurrently with at most 10 goroutines.
// Individual source failures are recorded in CollectResult.Failed rather
// than failing the batch.
func (f *Fetcher) CollectAll(ctx context.Context, sources []Source) (*CollectResult, error) {
	var (
		result CollectResult
		mu     sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, src := range sources {
		g.Go(func() error {
			articles, err := f.collectSource(ctx, src)
			if err != nil {
				slog.Warn("failed to collect source",
					"source", src.Name,
					"url", src.URL,
					"error", err,
				)

				mu.Lock()
				result.Failed = append(result.Failed, FailedSource{
					Source: src.Name,
					Error:  err.Error(),
				})
				mu.Unlock()

				return nil // skip failures, don't fail the batch
			}

			mu.Lock()
			result.Articles = append(result.Articles, articles...)
			mu.Unlock()

			slog.Info("collected source", "source", src.Name, "items", len(articles))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collecting sources: %w", err)
	}

	return &result, nil
}

// collectSource retrieves and parses one feed, converting its items to
// articles. When the source requests content extraction, items with no
// description get their full text fetched via readability.
func (f *Fetcher) collectSource(ctx context.Context, src Source) ([]models.Article, error) {
	domain := extractDomain(src.URL)
	f.waitForRateLimit(domain)

	fp := gofeed.NewParser()
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", src.URL, err)
	}

	articles := parseFeedItems(src, feed)

	if src.ExtractContent {
		for i := range articles {
			if articles[i].Content != "" || articles[i].URL == "" {
				continue
			}
			text, err := f.ExtractArticle(ctx, articles[i].URL)
			if err != nil {
				slog.Warn("full-text extraction failed",
					"url", articles[i].URL, "error", err)
				continue
			}
			articles[i].Content = truncateChars(text, maxContentChars)
		}
	}

	return articles, nil
}

// ExtractArticle fetches the readable text of the page at articleURL.
func (f *Fetcher) ExtractArticle(ctx context.Context, articleURL string) (string, error) {
	domain := extractDomain(articleURL)
	f.waitForRateLimit(domain)

	text, err := extractFullText(articleURL, httpTimeout)
	if err != nil {
		return "", fmt.Errorf("extracting article from %q: %w", articleURL, err)
	}

	return text, nil
}

// waitForRateLimit enforces a minimum delay of 1 second between requests to
// the same domain. It blocks until the delay has elapsed.
func (f *Fetcher) waitForRateLimit(domain string) {
	f.mu.Lock()
	lastReq, ok := f.rateLimiter[domain]
	if ok {
		elapsed := time.Since(lastReq)
		if elapsed < rateLimitDelay {
			f.mu.Unlock()
			time.Sleep(rateLimitDelay - elapsed)
			f.mu.Lock()
		}
	}
	f.rateLimiter[domain] = time.Now()
	f.mu.Unlock()
}

// extractDomain parses a URL and returns its hostname. If parsing fails, it
// returns the raw URL as a fallback key.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
