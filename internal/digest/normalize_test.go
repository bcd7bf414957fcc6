package digest

import (
	"strings"
	"testing"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("a  b\n\nc\td")
	if got != "a b c d" {
		t.Errorf("Normalize() = %q, want %q", got, "a b c d")
	}
}

func TestNormalize_RemovesURLs(t *testing.T) {
	got := Normalize("read more at https://example.com/post?id=1 today")
	if strings.Contains(got, "example.com") {
		t.Errorf("Normalize() = %q, URL should be removed", got)
	}

	got = Normalize("see http://foo.org/bar here")
	if strings.Contains(got, "foo.org") {
		t.Errorf("Normalize() = %q, URL should be removed", got)
	}
}

func TestNormalize_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", 4000)
	got := Normalize(long)

	if len(got) != maxNormalizedChars+len(ellipsis) {
		t.Errorf("len(Normalize()) = %d, want %d", len(got), maxNormalizedChars+len(ellipsis))
	}
	if !strings.HasSuffix(got, ellipsis) {
		t.Errorf("Normalize() should end with ellipsis, got %q", got[len(got)-10:])
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty string", got)
	}
}

func TestNormalize_TrimsResult(t *testing.T) {
	if got := Normalize("  hello  "); got != "hello" {
		t.Errorf("Normalize() = %q, want %q", got, "hello")
	}
}
