package feeds

import (
	"crypto/sha256"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/hqv-labs/dailybrief/internal/models"
)

// maxContentChars bounds stored article content. Feed descriptions and
// extracted pages beyond this add nothing for summarization.
const maxContentChars = 3000

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// parseFeedItems converts gofeed items into Article records. Items with an
// empty title are skipped. The item GUID becomes the article id; items
// without a GUID get a content-hash id derived from their link.
func parseFeedItems(src Source, feed *gofeed.Feed) []models.Article {
	limit := src.MaxItems
	if limit <= 0 {
		limit = len(feed.Items)
	}

	var articles []models.Article
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}
		if strings.TrimSpace(item.Title) == "" {
			continue
		}

		id := item.GUID
		if id == "" {
			id = computeHash(item.Link)
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		source := src.Name
		if source == "" {
			source = feed.Title
		}

		articles = append(articles, models.Article{
			ID:            id,
			Title:         strings.TrimSpace(item.Title),
			Content:       truncateChars(stripHTML(content), maxContentChars),
			Source:        source,
			URL:           item.Link,
			PublishedDate: publishedDate(item),
			Category:      src.Category,
		})
	}

	return articles
}

// publishedDate renders the item publication time as RFC 3339, falling back
// to the raw feed string when gofeed could not parse it.
func publishedDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	if item.Published != "" {
		return item.Published
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC().Format(time.RFC3339)
	}
	return ""
}

// computeHash returns the SHA-256 hex digest of the given string.
func computeHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}

// stripHTML removes HTML tags from s, unescapes HTML entities, and collapses
// the surrounding whitespace.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(clean))
}

// truncateChars cuts s at max bytes. Feed content is ASCII-dominated; an
// occasional clipped rune at the boundary is acceptable for stored text.
func truncateChars(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
