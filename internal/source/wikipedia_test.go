package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/research-hub/pkg/types"
)

const wikipediaJSON = `{
  "query": {
    "search": [
      {"title": "Neural network", "snippet": "A <span class=\"searchmatch\">neural network</span> is a model."},
      {"title": "Deep learning", "snippet": "Deep learning uses many layers."}
    ]
  }
}`

func TestWikipediaFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("list") != "search" {
			t.Errorf("list = %q, want search", q.Get("list"))
		}
		if q.Get("srsearch") != "neural networks" {
			t.Errorf("srsearch = %q", q.Get("srsearch"))
		}
		fmt.Fprint(w, wikipediaJSON)
	}))
	defer ts.Close()

	old := wikipediaAPIBase
	wikipediaAPIBase = ts.URL
	defer func() { wikipediaAPIBase = old }()

	a := &WikipediaAdapter{Client: ts.Client(), UserAgent: "test/0.1"}
	results, err := a.Fetch(context.Background(), "neural networks", 5)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	first := results[0]
	if first.Title != "Neural network" {
		t.Errorf("Title = %q", first.Title)
	}
	if strings.Contains(first.Excerpt, "<") {
		t.Errorf("Excerpt = %q, want HTML markup stripped", first.Excerpt)
	}
	if first.Type != types.DocArticle {
		t.Errorf("Type = %q, want article", first.Type)
	}
	if !strings.Contains(first.URL, "Neural_network") {
		t.Errorf("URL = %q, want article link", first.URL)
	}
}

func TestWikipediaFetchEmptyQuery(t *testing.T) {
	a := &WikipediaAdapter{Client: http.DefaultClient}
	if _, err := a.Fetch(context.Background(), "", 5); err == nil {
		t.Error("Fetch() with empty query should error")
	}
}

func TestWikipediaFetchMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer ts.Close()

	old := wikipediaAPIBase
	wikipediaAPIBase = ts.URL
	defer func() { wikipediaAPIBase = old }()

	a := &WikipediaAdapter{Client: ts.Client(), UserAgent: "test/0.1"}
	if _, err := a.Fetch(context.Background(), "anything", 5); err == nil {
		t.Error("Fetch() should surface parse errors")
	}
}
