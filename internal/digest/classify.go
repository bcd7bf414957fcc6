package digest

import (
	"strings"

	"github.com/hqv-labs/dailybrief/internal/models"
)

// Keyword vocabularies for each scoring axis. These are fixed domain
// dictionaries, not runtime configuration: each distinct keyword found as a
// substring of the lowercased title+content contributes one point to its axis.
var (
	researchKeywords = []string{
		"paper", "research", "study", "arxiv", "algorithm", "model",
		"method", "approach", "framework", "evaluation", "experiment",
		"analysis", "dataset", "benchmark", "neural", "learning",
	}

	businessKeywords = []string{
		"funding", "startup", "company", "investment", "acquisition",
		"partnership", "product", "launch", "market", "revenue",
		"ceo", "announcement", "enterprise", "commercial",
	}

	toolKeywords = []string{
		"tool", "open source", "github", "release", "library",
		"framework", "api", "platform", "software", "code",
		"implementation", "available", "download",
	}

	breakthroughKeywords = []string{
		"breakthrough", "milestone", "achievement", "record",
		"first", "new", "revolutionary", "significant", "major",
		"advance", "innovation", "discovery",
	}
)

const (
	// defaultOverrideThreshold is the number of breakthrough keyword hits at
	// which an article is labeled breakthrough regardless of other scores.
	defaultOverrideThreshold = 2

	// defaultResearchWeight is how much each breakthrough hit contributes to
	// the research score. Breakthrough articles are usually research-adjacent.
	defaultResearchWeight = 0.5
)

// Classifier assigns a content category by scoring article text against the
// four keyword axes. It is deterministic and pure; Classify always returns
// one of the five known categories.
type Classifier struct {
	overrideThreshold int
	researchWeight    float64
}

// NewClassifier returns a Classifier with the default override threshold (2)
// and breakthrough-to-research weight (0.5).
func NewClassifier() *Classifier {
	return &Classifier{
		overrideThreshold: defaultOverrideThreshold,
		researchWeight:    defaultResearchWeight,
	}
}

// Classify scores the concatenated title and content case-insensitively and
// resolves a single category:
//
//  1. Two or more breakthrough keyword hits win unconditionally.
//  2. Otherwise the axis with the strictly highest score wins; ties break in
//     declaration order: research, business, tools, breakthrough.
//  3. A winning score of zero means no signal at all: the article is news.
func (c *Classifier) Classify(title, content string) models.Category {
	text := strings.ToLower(title + " " + content)

	breakthroughHits := countKeywords(text, breakthroughKeywords)
	if breakthroughHits >= c.overrideThreshold {
		return models.CategoryBreakthrough
	}

	scores := []struct {
		category models.Category
		score    float64
	}{
		{models.CategoryResearch, float64(countKeywords(text, researchKeywords)) + c.researchWeight*float64(breakthroughHits)},
		{models.CategoryBusiness, float64(countKeywords(text, businessKeywords))},
		{models.CategoryTools, float64(countKeywords(text, toolKeywords))},
		{models.CategoryBreakthrough, float64(breakthroughHits)},
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.score > best.score {
			best = s
		}
	}

	if best.score <= 0 {
		return models.CategoryNews
	}
	return best.category
}

// countKeywords returns how many distinct keywords appear as substrings of
// text.
func countKeywords(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}
