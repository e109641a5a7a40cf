package textproc

import (
	"strings"
	"testing"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("hello   world\t\tagain")
	if got != "hello world again" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestNormalizeCollapsesBlankLines(t *testing.T) {
	got := Normalize("para one\n\n\n\n\npara two")
	if got != "para one\n\npara two" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestNormalizeMapsPunctuation(t *testing.T) {
	got := Normalize("“quoted” ‘single’ a–b c—d")
	want := `"quoted" 'single' a-b c--d`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"hello   world",
		"Café  résumé\n\n\n\nend",
		"“smart” — dashes – everywhere",
		"  leading and trailing  ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizePreservesDiacritics(t *testing.T) {
	got := Normalize("Café Müller, résumé for José")
	for _, accent := range []string{"Café", "Müller", "résumé", "José"} {
		if !strings.Contains(got, accent) {
			t.Fatalf("expected %q preserved in %q", accent, got)
		}
	}
}

func TestNormalizeComposesDecomposedAccents(t *testing.T) {
	// "e" + combining acute should compose to the single code point.
	got := Normalize("Café")
	if got != "Café" {
		t.Fatalf("expected NFC composition, got %q", got)
	}
}
