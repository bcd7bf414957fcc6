// Package digest implements the summarization-and-classification pipeline:
// normalizing raw article text, assigning a content category via keyword
// scoring, producing a summary (abstractive when a model is available,
// extractive otherwise), and assembling the categorized results into the
// daily report.
package digest

import (
	"regexp"
	"strings"
)

const (
	// maxNormalizedChars bounds the text handed to the summarization model.
	// BART-sized models handle roughly 1024 tokens.
	maxNormalizedChars = 3000

	ellipsis = "..."
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	urlPattern        = regexp.MustCompile(`https?://[^\s]+`)
)

// Normalize cleans raw article text for downstream use: whitespace runs
// (including newlines) collapse to a single space, http(s) URLs are removed,
// and the result is truncated to 3000 characters with an ellipsis marker.
// Normalize never fails; empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = whitespacePattern.ReplaceAllString(text, " ")
	text = urlPattern.ReplaceAllString(text, "")

	if len(text) > maxNormalizedChars {
		text = text[:maxNormalizedChars] + ellipsis
	}

	return strings.TrimSpace(text)
}
