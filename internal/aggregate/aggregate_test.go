package aggregate

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/research-hub/internal/source"
	"github.com/pdiddy/research-hub/pkg/types"
)

// --- mock adapter ---

type mockAdapter struct {
	name    types.SourceID
	results []types.RawResult
	err     error
	panics  bool
}

func (m *mockAdapter) Name() types.SourceID { return m.name }

func (m *mockAdapter) Fetch(_ context.Context, _ string, _ int) ([]types.RawResult, error) {
	if m.panics {
		panic("adapter blew up")
	}
	return m.results, m.err
}

func testRegistry(adapters ...*mockAdapter) *source.Registry {
	r := source.NewRegistry(nil, types.SourcesConfig{})
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

func rawResults(src types.SourceID, titles ...string) []types.RawResult {
	var results []types.RawResult
	for _, title := range titles {
		results = append(results, types.RawResult{
			Title:  title,
			URL:    "https://example.com/" + strings.ReplaceAll(title, " ", "-"),
			Source: string(src),
		})
	}
	return results
}

func sourceIDs(adapters ...*mockAdapter) []types.SourceID {
	var ids []types.SourceID
	for _, a := range adapters {
		ids = append(ids, a.name)
	}
	return ids
}

// --- aggregation ---

func TestAggregateMergesAndDeduplicates(t *testing.T) {
	arxiv := &mockAdapter{
		name:    types.SourceArxiv,
		results: rawResults(types.SourceArxiv, "Neural Networks", "Deep Learning", "Transformers"),
	}
	wiki := &mockAdapter{
		name:    types.SourceWikipedia,
		results: rawResults(types.SourceWikipedia, "Neural networks!", "Deep Learning", "Backpropagation"),
	}

	out := Aggregate(context.Background(), testRegistry(arxiv, wiki),
		"neural networks", sourceIDs(arxiv, wiki), 5, io.Discard)

	if out.Degraded {
		t.Fatal("Degraded = true, want false")
	}
	if len(out.Results) > 5 {
		t.Fatalf("len(Results) = %d, want <= 5", len(out.Results))
	}
	if len(out.Results) != 4 {
		t.Fatalf("len(Results) = %d, want 4 after dedup", len(out.Results))
	}
	// First-seen order: arXiv items before Wikipedia's.
	if out.Results[0].Source != string(types.SourceArxiv) {
		t.Errorf("Results[0].Source = %q, want arxiv first", out.Results[0].Source)
	}
	if out.Results[0].Title != "Neural Networks" {
		t.Errorf("Results[0].Title = %q, want the arXiv spelling to win", out.Results[0].Title)
	}
	if out.Results[3].Title != "Backpropagation" {
		t.Errorf("Results[3].Title = %q, want Wikipedia-only item last", out.Results[3].Title)
	}
}

func TestAggregateTruncatesToMaxResults(t *testing.T) {
	a := &mockAdapter{
		name:    types.SourceArxiv,
		results: rawResults(types.SourceArxiv, "A", "B", "C", "D", "E", "F"),
	}

	out := Aggregate(context.Background(), testRegistry(a), "query", sourceIDs(a), 3, io.Discard)

	if len(out.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(out.Results))
	}
	if out.Results[0].Title != "A" || out.Results[2].Title != "C" {
		t.Errorf("truncation changed order: %v", out.Results)
	}
}

func TestAggregateToleratesAdapterFailure(t *testing.T) {
	broken := &mockAdapter{name: types.SourceNewswire, err: fmt.Errorf("connection refused")}
	healthy := &mockAdapter{
		name:    types.SourceArxiv,
		results: rawResults(types.SourceArxiv, "Survivor"),
	}

	var w strings.Builder
	out := Aggregate(context.Background(), testRegistry(broken, healthy),
		"query", sourceIDs(broken, healthy), 5, &w)

	if len(out.Results) != 1 || out.Results[0].Title != "Survivor" {
		t.Fatalf("Results = %v, want only the healthy adapter's item", out.Results)
	}
	if len(out.AdapterErrors) != 1 {
		t.Errorf("AdapterErrors = %v, want 1 entry", out.AdapterErrors)
	}
	if !strings.Contains(w.String(), "newswire") {
		t.Errorf("warning output = %q, want mention of failing source", w.String())
	}
}

func TestAggregateToleratesAdapterPanic(t *testing.T) {
	panicky := &mockAdapter{name: types.SourceCodeIndex, panics: true}
	healthy := &mockAdapter{
		name:    types.SourceArxiv,
		results: rawResults(types.SourceArxiv, "Still Here"),
	}

	out := Aggregate(context.Background(), testRegistry(panicky, healthy),
		"query", sourceIDs(panicky, healthy), 5, io.Discard)

	if len(out.Results) != 1 || out.Results[0].Title != "Still Here" {
		t.Fatalf("Results = %v, want only the healthy adapter's item", out.Results)
	}
	if len(out.AdapterErrors) != 1 {
		t.Errorf("AdapterErrors = %v, want the panic recorded", out.AdapterErrors)
	}
}

func TestAggregateSkipsUnknownSources(t *testing.T) {
	a := &mockAdapter{
		name:    types.SourceArxiv,
		results: rawResults(types.SourceArxiv, "Known"),
	}

	ids := []types.SourceID{"bogus", types.SourceArxiv, "also-bogus"}
	out := Aggregate(context.Background(), testRegistry(a), "query", ids, 5, io.Discard)

	if len(out.Results) != 1 || out.Results[0].Title != "Known" {
		t.Fatalf("Results = %v, want unknown identifiers skipped", out.Results)
	}
}

// --- degradation policy ---

func TestAggregateFallsBackWhenAllAdaptersFail(t *testing.T) {
	a := &mockAdapter{name: types.SourceArxiv, err: fmt.Errorf("down")}
	b := &mockAdapter{name: types.SourceWikipedia, err: fmt.Errorf("also down")}

	out := Aggregate(context.Background(), testRegistry(a, b),
		"quantum computing hardware", sourceIDs(a, b), 10, io.Discard)

	if !out.Degraded {
		t.Fatal("Degraded = false, want true")
	}
	if len(out.Results) < 3 {
		t.Fatalf("len(Results) = %d, want >= 3 placeholders", len(out.Results))
	}
	for i, r := range out.Results {
		if !r.Synthetic {
			t.Errorf("Results[%d].Synthetic = false, want every placeholder marked", i)
		}
	}
}

func TestAggregateFallsBackWhenAllAdaptersEmpty(t *testing.T) {
	a := &mockAdapter{name: types.SourceArxiv}
	b := &mockAdapter{name: types.SourceWikipedia}

	out := Aggregate(context.Background(), testRegistry(a, b),
		"obscure topic", sourceIDs(a, b), 10, io.Discard)

	if !out.Degraded {
		t.Fatal("Degraded = false, want true")
	}
	if len(out.Results) == 0 {
		t.Fatal("len(Results) = 0, want fallback results")
	}
}

func TestAggregateFallsBackWithNoResolvedAdapters(t *testing.T) {
	out := Aggregate(context.Background(), testRegistry(),
		"anything", []types.SourceID{"unknown"}, 10, io.Discard)

	if !out.Degraded {
		t.Fatal("Degraded = false, want true")
	}
	if len(out.Results) < 3 {
		t.Fatalf("len(Results) = %d, want >= 3", len(out.Results))
	}
}

func TestAggregateDeterministicAcrossRuns(t *testing.T) {
	a := &mockAdapter{
		name:    types.SourceArxiv,
		results: rawResults(types.SourceArxiv, "One", "Two"),
	}
	b := &mockAdapter{
		name:    types.SourceWikipedia,
		results: rawResults(types.SourceWikipedia, "Two", "Three"),
	}

	first := Aggregate(context.Background(), testRegistry(a, b), "q", sourceIDs(a, b), 10, io.Discard)
	second := Aggregate(context.Background(), testRegistry(a, b), "q", sourceIDs(a, b), 10, io.Discard)

	if len(first.Results) != len(second.Results) {
		t.Fatalf("run lengths differ: %d vs %d", len(first.Results), len(second.Results))
	}
	for i := range first.Results {
		if first.Results[i].Title != second.Results[i].Title {
			t.Errorf("Results[%d] differs across runs: %q vs %q",
				i, first.Results[i].Title, second.Results[i].Title)
		}
	}
}
