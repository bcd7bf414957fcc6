package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/hqv-labs/dailybrief/internal/models"
)

// renderCaps limits how many items each section shows in the rendered text.
// Zero means unbounded. The caps apply to rendering only: Sections always
// holds every summary and the headers show the true counts.
var renderCaps = map[models.Category]int{
	models.CategoryBreakthrough: 2,
	models.CategoryResearch:     3,
	models.CategoryBusiness:     3,
	models.CategoryTools:        0,
	models.CategoryNews:         3,
}

var sectionHeadings = map[models.Category]string{
	models.CategoryBreakthrough: "BREAKTHROUGH DISCOVERIES",
	models.CategoryResearch:     "RESEARCH PAPERS",
	models.CategoryBusiness:     "INDUSTRY & BUSINESS",
	models.CategoryTools:        "NEW TOOLS & RESOURCES",
	models.CategoryNews:         "GENERAL NEWS",
}

const headingRule = "═══════════════════════════════════════════════════════"

// Assemble groups summaries into category sections in arrival order and
// renders the report text. Every category is present in Sections, empty or
// not; empty sections are omitted from the rendered text. The rendered text
// is built exactly once; the returned Report is immutable by convention.
func Assemble(summaries []models.CategorizedSummary, date time.Time) models.Report {
	sections := make(map[models.Category][]models.CategorizedSummary, len(models.Categories))
	for _, cat := range models.Categories {
		sections[cat] = []models.CategorizedSummary{}
	}

	for _, s := range summaries {
		cat := s.Category
		if !cat.Valid() {
			cat = models.CategoryNews
		}
		sections[cat] = append(sections[cat], s)
	}

	report := models.Report{
		Date:       date,
		Sections:   sections,
		TotalCount: len(summaries),
	}
	report.RenderedText = render(report)

	return report
}

// render builds the full digest text: a dated header, each non-empty
// section in fixed order with its true item count, and a footer.
func render(report models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Daily AI Research Digest - %s\n", report.Date.Format("January 2, 2006"))
	b.WriteString(headingRule + "\n\n")
	fmt.Fprintf(&b, "Analyzed %d articles today.\n\n", report.TotalCount)

	for _, cat := range models.Categories {
		items := report.Sections[cat]
		if len(items) == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s (%d)\n", sectionHeadings[cat], len(items))
		b.WriteString(headingRule + "\n")

		shown := items
		if limit := renderCaps[cat]; limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}

		for _, item := range shown {
			fmt.Fprintf(&b, "* %s\n", item.Title)
			fmt.Fprintf(&b, "  %s\n", item.Summary)
			fmt.Fprintf(&b, "  Source: %s\n\n", item.Source)
		}
	}

	b.WriteString(headingRule + "\n")
	fmt.Fprintf(&b, "Generated on %s\n", report.Date.Format("2006-01-02"))

	return b.String()
}
