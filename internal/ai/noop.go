package ai

import (
	"context"
	"fmt"
)

// Compile-time interface check.
var _ Summarizer = (*NoopProvider)(nil)

// NoopProvider is the null summarizer used when no abstractive capability is
// configured. It is never available, so the pipeline always takes the
// extractive path.
type NoopProvider struct{}

// NewNoopProvider returns the null summarizer.
func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

// Available always returns false.
func (*NoopProvider) Available() bool {
	return false
}

// Summarize always fails; the noop provider has no model behind it.
func (*NoopProvider) Summarize(context.Context, string, SummaryKind) (string, error) {
	return "", fmt.Errorf("no abstractive summarizer configured")
}
