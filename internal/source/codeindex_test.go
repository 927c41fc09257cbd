package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/research-hub/pkg/types"
)

const codeIndexJSON = `{
  "results": [
    {
      "paper": {
        "title": "Attention Is All You Need",
        "abstract": "We propose the Transformer.",
        "url_abs": "https://arxiv.org/abs/1706.03762",
        "published": "2017-06-12"
      },
      "repository": {"url": "https://github.com/tensorflow/tensor2tensor"}
    },
    {
      "paper": {
        "title": "Repo-only result",
        "abstract": "No canonical paper page.",
        "url_abs": "",
        "published": "not-a-date"
      },
      "repository": {"url": "https://github.com/example/repo"}
    }
  ]
}`

func TestCodeIndexFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "transformer" {
			t.Errorf("q = %q, want %q", got, "transformer")
		}
		if got := r.URL.Query().Get("items_per_page"); got != "5" {
			t.Errorf("items_per_page = %q, want %q", got, "5")
		}
		fmt.Fprint(w, codeIndexJSON)
	}))
	defer ts.Close()

	old := codeIndexAPIBase
	codeIndexAPIBase = ts.URL
	defer func() { codeIndexAPIBase = old }()

	a := &CodeIndexAdapter{Client: ts.Client(), UserAgent: "test/0.1"}
	results, err := a.Fetch(context.Background(), "transformer", 5)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	first := results[0]
	if first.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.URL != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("URL = %q, want the paper page", first.URL)
	}
	if first.Type != types.DocPaper {
		t.Errorf("Type = %q, want paper", first.Type)
	}
	if first.Published == nil {
		t.Error("Published = nil, want parsed date")
	}

	second := results[1]
	if second.URL != "https://github.com/example/repo" {
		t.Errorf("URL = %q, want repository fallback", second.URL)
	}
	if second.Published != nil {
		t.Errorf("Published = %v, want nil for unparseable date", second.Published)
	}
}

func TestCodeIndexFetchEmptyQuery(t *testing.T) {
	a := &CodeIndexAdapter{Client: http.DefaultClient}
	if _, err := a.Fetch(context.Background(), "  ", 5); err == nil {
		t.Error("Fetch() should reject an empty query")
	}
}

func TestCodeIndexFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	old := codeIndexAPIBase
	codeIndexAPIBase = ts.URL
	defer func() { codeIndexAPIBase = old }()

	a := &CodeIndexAdapter{Client: ts.Client(), UserAgent: "test/0.1"}
	if _, err := a.Fetch(context.Background(), "transformer", 5); err == nil {
		t.Error("Fetch() should surface an HTTP error status")
	}
}
