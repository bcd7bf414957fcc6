// Package ai wraps the abstractive summarization capability. The capability
// is optional: a provider may be entirely absent (no API key, no local
// model), may fail to initialize, or may fail on individual calls. Callers
// probe Available() once and treat per-call errors as a signal to fall back
// to extractive summarization.
package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SummaryKind selects the target length band for a generated summary.
type SummaryKind string

const (
	KindResearch SummaryKind = "research"
	KindNews     SummaryKind = "news"
	KindGeneral  SummaryKind = "general"
)

// lengthBand returns the (min, max) length hints for the kind, in model
// units (tokens for local models, words for prompt-driven providers).
func (k SummaryKind) lengthBand() (minLen, maxLen int) {
	switch k {
	case KindResearch:
		return 60, 150
	case KindNews:
		return 40, 100
	default:
		return 50, 120
	}
}

// Summarizer is the interface every abstractive provider implements.
type Summarizer interface {
	// Available reports whether the underlying capability can be used.
	// A failed initialization permanently latches this to false; it is
	// never retried per article.
	Available() bool

	// Summarize generates a summary of text in the requested length band.
	// Errors are per-call and transient: the caller substitutes the
	// extractive fallback and must not treat them as fatal.
	Summarize(ctx context.Context, text string, kind SummaryKind) (string, error)
}

// Config holds the settings needed to construct a provider.
type Config struct {
	Provider string // "local" | "openai" | "none"
	APIKey   string
	Model    string
	ModelDir string // local provider: where ONNX models are cached
}

// NewSummarizer creates the provider named in the config. An empty or
// "none" provider yields the noop summarizer, which is never available.
func NewSummarizer(cfg Config) (Summarizer, error) {
	switch cfg.Provider {
	case "local":
		return NewLocalProvider(cfg.Model, cfg.ModelDir), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil
	case "none", "":
		return NewNoopProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// researchMarkers are words whose presence means a research summary already
// announces itself as research.
var researchMarkers = []string{"research", "study", "paper", "method"}

// enhance post-processes a raw model summary: prefix research summaries that
// lack any research marker word, capitalize the first rune, and make sure
// the result ends with terminal punctuation.
func enhance(summary string, kind SummaryKind) string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return summary
	}

	if kind == KindResearch && !containsAnyFold(summary, researchMarkers) {
		summary = "Research: " + summary
	}

	r, size := utf8.DecodeRuneInString(summary)
	summary = string(unicode.ToUpper(r)) + summary[size:]

	if !strings.ContainsAny(summary[len(summary)-1:], ".!?") {
		summary += "."
	}

	return summary
}

func containsAnyFold(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
