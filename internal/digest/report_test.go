package digest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hqv-labs/dailybrief/internal/models"
)

func testSummary(title string, cat models.Category) models.CategorizedSummary {
	return models.CategorizedSummary{
		Title:    title,
		Summary:  "A short summary.",
		Source:   "Test Source",
		Category: cat,
		Strategy: models.StrategyExtractive,
	}
}

func TestAssemble_EmptyInput(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	report := Assemble(nil, date)

	if report.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", report.TotalCount)
	}
	if len(report.Sections) != len(models.Categories) {
		t.Errorf("len(Sections) = %d, want %d", len(report.Sections), len(models.Categories))
	}
	for _, cat := range models.Categories {
		items, ok := report.Sections[cat]
		if !ok {
			t.Errorf("section %q missing", cat)
			continue
		}
		if len(items) != 0 {
			t.Errorf("section %q has %d items, want 0", cat, len(items))
		}
	}
	if report.RenderedText == "" {
		t.Error("RenderedText should not be empty for an empty report")
	}
	if !strings.Contains(report.RenderedText, "Analyzed 0 articles") {
		t.Errorf("rendered text missing zero count:\n%s", report.RenderedText)
	}
}

func TestAssemble_PreservesArrivalOrder(t *testing.T) {
	summaries := []models.CategorizedSummary{
		testSummary("first", models.CategoryResearch),
		testSummary("second", models.CategoryResearch),
		testSummary("third", models.CategoryResearch),
	}
	report := Assemble(summaries, time.Now())

	items := report.Sections[models.CategoryResearch]
	if len(items) != 3 {
		t.Fatalf("len(research section) = %d, want 3", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Title != want {
			t.Errorf("items[%d].Title = %q, want %q", i, items[i].Title, want)
		}
	}
}

func TestAssemble_RenderCapsWithTrueCounts(t *testing.T) {
	var summaries []models.CategorizedSummary
	for i := 1; i <= 5; i++ {
		summaries = append(summaries, testSummary(fmt.Sprintf("research-%d", i), models.CategoryResearch))
	}
	report := Assemble(summaries, time.Now())

	// The section keeps all five; the header shows the true count.
	if len(report.Sections[models.CategoryResearch]) != 5 {
		t.Errorf("len(research section) = %d, want 5", len(report.Sections[models.CategoryResearch]))
	}
	if !strings.Contains(report.RenderedText, "RESEARCH PAPERS (5)") {
		t.Errorf("header should show true count:\n%s", report.RenderedText)
	}

	// Only the first three items render.
	for i := 1; i <= 3; i++ {
		if !strings.Contains(report.RenderedText, fmt.Sprintf("research-%d", i)) {
			t.Errorf("research-%d should be rendered", i)
		}
	}
	for i := 4; i <= 5; i++ {
		if strings.Contains(report.RenderedText, fmt.Sprintf("research-%d", i)) {
			t.Errorf("research-%d should be capped out of the rendering", i)
		}
	}
}

func TestAssemble_ToolsSectionUnbounded(t *testing.T) {
	var summaries []models.CategorizedSummary
	for i := 1; i <= 8; i++ {
		summaries = append(summaries, testSummary(fmt.Sprintf("tool-%d", i), models.CategoryTools))
	}
	report := Assemble(summaries, time.Now())

	for i := 1; i <= 8; i++ {
		if !strings.Contains(report.RenderedText, fmt.Sprintf("tool-%d", i)) {
			t.Errorf("tool-%d should be rendered", i)
		}
	}
}

func TestAssemble_SectionOrder(t *testing.T) {
	summaries := []models.CategorizedSummary{
		testSummary("plain news", models.CategoryNews),
		testSummary("big discovery", models.CategoryBreakthrough),
		testSummary("new paper", models.CategoryResearch),
	}
	report := Assemble(summaries, time.Now())

	breakIdx := strings.Index(report.RenderedText, "BREAKTHROUGH DISCOVERIES")
	researchIdx := strings.Index(report.RenderedText, "RESEARCH PAPERS")
	newsIdx := strings.Index(report.RenderedText, "GENERAL NEWS")

	if breakIdx < 0 || researchIdx < 0 || newsIdx < 0 {
		t.Fatalf("missing section headings:\n%s", report.RenderedText)
	}
	if !(breakIdx < researchIdx && researchIdx < newsIdx) {
		t.Errorf("sections out of order: breakthrough=%d research=%d news=%d", breakIdx, researchIdx, newsIdx)
	}

	// Empty sections are absent from the text.
	if strings.Contains(report.RenderedText, "INDUSTRY & BUSINESS") {
		t.Error("empty business section should not be rendered")
	}
}

func TestAssemble_UnknownCategoryFallsBackToNews(t *testing.T) {
	summaries := []models.CategorizedSummary{
		testSummary("odd one", models.Category("mystery")),
	}
	report := Assemble(summaries, time.Now())

	if len(report.Sections[models.CategoryNews]) != 1 {
		t.Errorf("unknown category should land in news, got %v", report.Sections)
	}
}

func TestAssemble_HeaderAndFooterDates(t *testing.T) {
	date := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	report := Assemble(nil, date)

	if !strings.Contains(report.RenderedText, "March 15, 2025") {
		t.Errorf("header should carry the long date:\n%s", report.RenderedText)
	}
	if !strings.Contains(report.RenderedText, "Generated on 2025-03-15") {
		t.Errorf("footer should carry the ISO date:\n%s", report.RenderedText)
	}
}
