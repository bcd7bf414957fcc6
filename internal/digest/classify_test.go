package digest

import (
	"strings"
	"testing"

	"github.com/hqv-labs/dailybrief/internal/models"
)

func TestClassify_BreakthroughOverride(t *testing.T) {
	c := NewClassifier()

	// Two breakthrough hits win even against a higher business score.
	got := c.Classify("Major breakthrough", "company funding investment acquisition launch")
	if got != models.CategoryBreakthrough {
		t.Errorf("Classify() = %q, want breakthrough", got)
	}
}

func TestClassify_SingleBreakthroughHitDoesNotOverride(t *testing.T) {
	c := NewClassifier()

	// One breakthrough hit alone still wins on score, not via the override.
	got := c.Classify("A revolutionary idea", "")
	if got != models.CategoryBreakthrough {
		t.Errorf("Classify() = %q, want breakthrough", got)
	}

	// One breakthrough hit next to a clear business signal loses.
	got = c.Classify("New product from the startup", "")
	if got != models.CategoryBusiness {
		t.Errorf("Classify() = %q, want business", got)
	}
}

func TestClassify_BreakthroughHitsBoostResearch(t *testing.T) {
	c := NewClassifier()

	// "study" scores 1 for research plus 0.5 from the "new" breakthrough hit,
	// beating the single business hit from "startup".
	got := c.Classify("New study from the startup", "")
	if got != models.CategoryResearch {
		t.Errorf("Classify() = %q, want research", got)
	}
}

func TestClassify_TieBreaksInDeclarationOrder(t *testing.T) {
	c := NewClassifier()

	// One research hit and one business hit: research is declared first.
	got := c.Classify("The startup cited a paper", "")
	if got != models.CategoryResearch {
		t.Errorf("Classify() = %q, want research on tie", got)
	}
}

func TestClassify_ByDominantAxis(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		title, content string
		want           models.Category
	}{
		{"Arxiv preprint posted", "", models.CategoryResearch},
		{"The company announced funding", "and an acquisition", models.CategoryBusiness},
		{"Download the library from github", "", models.CategoryTools},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.title, tc.content); got != tc.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tc.title, tc.content, got, tc.want)
		}
	}
}

func TestClassify_NoSignalIsNews(t *testing.T) {
	c := NewClassifier()

	for _, title := range []string{"", "hello world weather sunny today"} {
		if got := c.Classify(title, ""); got != models.CategoryNews {
			t.Errorf("Classify(%q) = %q, want news", title, got)
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("BREAKTHROUGH MILESTONE", "")
	if got != models.CategoryBreakthrough {
		t.Errorf("Classify() = %q, want breakthrough", got)
	}
}

func TestClassify_AlwaysReturnsKnownCategory(t *testing.T) {
	c := NewClassifier()

	inputs := []string{
		"",
		"random text with no signal whatsoever",
		strings.Repeat("paper funding tool breakthrough ", 50),
		"model api new",
	}
	for _, text := range inputs {
		if got := c.Classify(text, text); !got.Valid() {
			t.Errorf("Classify(%q) = %q, not a known category", text, got)
		}
	}
}
