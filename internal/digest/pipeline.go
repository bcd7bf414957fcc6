package digest

import (
	"context"
	"log/slog"
	"time"

	"github.com/hqv-labs/dailybrief/internal/ai"
	"github.com/hqv-labs/dailybrief/internal/models"
)

const (
	// minAbstractiveChars is the minimum normalized text length worth
	// sending to a model; anything shorter summarizes better extractively.
	minAbstractiveChars = 50

	// abstractiveCallTimeout bounds a single model call so one slow article
	// cannot stall the whole batch.
	abstractiveCallTimeout = 2 * time.Minute
)

// Pipeline turns raw articles into categorized summaries. Every internal
// failure degrades to a fallback; Process never returns an error and never
// produces an empty summary.
type Pipeline struct {
	classifier *Classifier
	summarizer ai.Summarizer
	logger     *slog.Logger
}

// NewPipeline wires the classifier and the abstractive summarizer. The
// summarizer may be the noop provider; the pipeline then always takes the
// extractive path.
func NewPipeline(summarizer ai.Summarizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		classifier: NewClassifier(),
		summarizer: summarizer,
		logger:     logger,
	}
}

// Process runs the per-article pipeline: classify, pick a summary strategy,
// summarize, and emit the enriched result. Articles without content are
// summarized from their title.
func (p *Pipeline) Process(ctx context.Context, article models.Article) models.CategorizedSummary {
	text := article.Content
	if text == "" {
		text = article.Title
	}

	category := p.classifier.Classify(article.Title, article.Content)

	kind := ai.KindNews
	if category == models.CategoryResearch || category == models.CategoryBreakthrough {
		kind = ai.KindResearch
	}

	summary, strategy := p.summarize(ctx, text, kind)

	return models.CategorizedSummary{
		Title:    article.Title,
		Summary:  summary,
		Source:   article.Source,
		URL:      article.URL,
		Category: category,
		Strategy: strategy,
	}
}

// summarize attempts the abstractive path when the model is available and
// the text is long enough to be worth a model call, falling back to the
// deterministic extractive summarizer on any failure.
func (p *Pipeline) summarize(ctx context.Context, text string, kind ai.SummaryKind) (string, models.Strategy) {
	clean := Normalize(text)

	if p.summarizer != nil && p.summarizer.Available() && len(clean) >= minAbstractiveChars {
		callCtx, cancel := context.WithTimeout(ctx, abstractiveCallTimeout)
		summary, err := p.summarizer.Summarize(callCtx, clean, kind)
		cancel()

		if err == nil && summary != "" {
			return summary, models.StrategyAbstractive
		}
		if err != nil {
			p.logger.Warn("abstractive summarization failed, falling back to extractive", "error", err)
		}
	}

	return ExtractiveSummary(text), models.StrategyExtractive
}

// ProcessAll processes each article independently and strictly in order. A
// failure on one article (including a panic from a malformed record) is
// logged and skipped; the remaining articles are still processed.
func (p *Pipeline) ProcessAll(ctx context.Context, articles []models.Article) []models.CategorizedSummary {
	summaries := make([]models.CategorizedSummary, 0, len(articles))

	for _, article := range articles {
		result, ok := p.processSafely(ctx, article)
		if !ok {
			continue
		}
		summaries = append(summaries, result)
	}

	return summaries
}

// processSafely isolates one article so a panic cannot abort the batch.
func (p *Pipeline) processSafely(ctx context.Context, article models.Article) (result models.CategorizedSummary, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("skipping article after processing failure",
				"article_id", article.ID,
				"panic", rec,
			)
			ok = false
		}
	}()

	if article.Title == "" {
		p.logger.Warn("skipping article without a title", "article_id", article.ID)
		return models.CategorizedSummary{}, false
	}

	return p.Process(ctx, article), true
}
