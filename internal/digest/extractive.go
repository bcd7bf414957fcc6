package digest

import (
	"regexp"
	"strings"
)

// FallbackSummary is returned when no usable sentence can be extracted.
// Summaries handed to the report are never empty.
const FallbackSummary = "Brief summary not available."

const (
	maxSummarySentences = 2
	maxSummaryChars     = 250
	// Fragments at or below this length are treated as noise (initials,
	// abbreviations, list markers) and skipped.
	minFragmentChars = 10
)

var sentencePattern = regexp.MustCompile(`[.!?]+`)

// ExtractiveSummary builds a summary by selecting the first sentences of the
// original text. It is fully deterministic: identical input always yields
// identical output. The result is at most 253 characters (250 plus the
// ellipsis marker) and never empty.
func ExtractiveSummary(text string) string {
	return extractiveSummary(text, maxSummarySentences, maxSummaryChars)
}

func extractiveSummary(text string, maxSentences, maxChars int) string {
	if text == "" {
		return FallbackSummary
	}

	fragments := sentencePattern.Split(text, -1)

	var selected []string
	for _, frag := range fragments {
		frag = strings.TrimSpace(frag)
		if len(frag) <= minFragmentChars {
			continue
		}
		selected = append(selected, frag)
		if len(selected) == maxSentences {
			break
		}
	}

	if len(selected) == 0 {
		return FallbackSummary
	}

	summary := strings.Join(selected, ". ") + "."
	if len(summary) > maxChars {
		summary = summary[:maxChars] + ellipsis
	}

	return summary
}
