package models

import "time"

// Report is the assembled daily digest: every processed article grouped by
// category, plus the rendered text that gets mailed out. A Report is built
// once per run and never mutated after assembly.
type Report struct {
	ID           int64                             `json:"id,omitempty"`
	Date         time.Time                         `json:"date"`
	Sections     map[Category][]CategorizedSummary `json:"sections"`
	TotalCount   int                               `json:"total_count"`
	RenderedText string                            `json:"rendered_text"`
	CreatedAt    time.Time                         `json:"created_at,omitempty"`
}
