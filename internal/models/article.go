package models

import "time"

// Article is a raw collected news item or research paper, as stored by the
// collector. Content may be empty (some feeds carry only a headline); Title
// is always present.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content,omitempty"`
	Source        string    `json:"source"`
	URL           string    `json:"url,omitempty"`
	PublishedDate string    `json:"published_date,omitempty"`
	Category      string    `json:"category,omitempty"`
	Processed     bool      `json:"processed"`
	CreatedAt     time.Time `json:"created_at"`
}

// Category is the closed set of content labels the classifier can assign.
// CategoryNews is the zero value and the fallback when no signal is found.
type Category string

const (
	CategoryNews         Category = "news"
	CategoryBreakthrough Category = "breakthrough"
	CategoryResearch     Category = "research"
	CategoryBusiness     Category = "business"
	CategoryTools        Category = "tools"
)

// Categories lists every category in report render order.
var Categories = []Category{
	CategoryBreakthrough,
	CategoryResearch,
	CategoryBusiness,
	CategoryTools,
	CategoryNews,
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryNews, CategoryBreakthrough, CategoryResearch, CategoryBusiness, CategoryTools:
		return true
	}
	return false
}

// Strategy records which summarization path produced a summary.
type Strategy string

const (
	StrategyAbstractive Strategy = "abstractive"
	StrategyExtractive  Strategy = "extractive"
)

// CategorizedSummary is the per-article output of the digest pipeline.
// Summary is never empty: the pipeline falls back to a fixed sentinel
// phrase when everything else fails.
type CategorizedSummary struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Source   string   `json:"source"`
	URL      string   `json:"url,omitempty"`
	Category Category `json:"category"`
	Strategy Strategy `json:"strategy"`
}
