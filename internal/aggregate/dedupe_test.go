package aggregate

import (
	"reflect"
	"testing"

	"github.com/pdiddy/research-hub/pkg/types"
)

func TestDedupeCollapsesNormalizedTitles(t *testing.T) {
	results := []types.RawResult{
		{Title: "Attention Is All You Need", Source: "arxiv"},
		{Title: "attention is all you need!", Source: "wikipedia"},
		{Title: "  Attention   Is All You Need  ", Source: "newswire"},
		{Title: "Different Paper", Source: "arxiv"},
	}

	deduped := Dedupe(results)
	if len(deduped) != 2 {
		t.Fatalf("len(deduped) = %d, want 2", len(deduped))
	}
	if deduped[0].Source != "arxiv" {
		t.Errorf("deduped[0].Source = %q, want first occurrence to win", deduped[0].Source)
	}
	if deduped[1].Title != "Different Paper" {
		t.Errorf("deduped[1].Title = %q, want %q", deduped[1].Title, "Different Paper")
	}
}

func TestDedupeDropsUntitledResults(t *testing.T) {
	results := []types.RawResult{
		{Title: "", Source: "arxiv"},
		{Title: "   !!!   ", Source: "wikipedia"},
		{Title: "Kept", Source: "arxiv"},
	}

	deduped := Dedupe(results)
	if len(deduped) != 1 || deduped[0].Title != "Kept" {
		t.Fatalf("deduped = %v, want only the titled result", deduped)
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	results := []types.RawResult{
		{Title: "Paper A", Source: "arxiv"},
		{Title: "paper a", Source: "wikipedia"},
		{Title: "Paper B", Source: "arxiv"},
		{Title: "Paper C", Source: "newswire"},
	}

	once := Dedupe(results)
	twice := Dedupe(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Dedupe not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestDedupePreservesSubsequenceOrder(t *testing.T) {
	results := []types.RawResult{
		{Title: "First"},
		{Title: "Second"},
		{Title: "first"},
		{Title: "Third"},
		{Title: "second"},
	}

	deduped := Dedupe(results)
	want := []string{"First", "Second", "Third"}
	if len(deduped) != len(want) {
		t.Fatalf("len(deduped) = %d, want %d", len(deduped), len(want))
	}
	for i, title := range want {
		if deduped[i].Title != title {
			t.Errorf("deduped[%d].Title = %q, want %q", i, deduped[i].Title, title)
		}
	}
	if len(deduped) > len(results) {
		t.Error("output longer than input")
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"lowercases", "Deep Learning", "deep learning"},
		{"strips punctuation", "GANs: A Survey (2024)!", "gans a survey 2024"},
		{"collapses whitespace", "  a   b\t c  ", "a b c"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeTitle(tt.title); got != tt.want {
				t.Errorf("normalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
