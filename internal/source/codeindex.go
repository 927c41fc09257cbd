// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/research-hub/internal/httputil"
	"github.com/pdiddy/research-hub/pkg/types"
)

// codeIndexAPIBase is the Papers with Code search endpoint. Declared as a
// var so tests can substitute an httptest server.
var codeIndexAPIBase = "https://paperswithcode.com/api/v1/search/"

// CodeIndexAdapter queries the Papers with Code index for papers with
// accompanying implementations.
type CodeIndexAdapter struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the adapter identifier.
func (a *CodeIndexAdapter) Name() types.SourceID { return types.SourceCodeIndex }

// Fetch queries the Papers with Code API and returns paper results carrying
// repository metadata.
func (a *CodeIndexAdapter) Fetch(ctx context.Context, query string, maxResults int) ([]types.RawResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty code index query")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"q":              {query},
		"items_per_page": {fmt.Sprintf("%d", maxResults)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, codeIndexAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("code index API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("code index API returned HTTP %d", resp.StatusCode)
	}

	var payload codeIndexResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing code index response: %w", err)
	}

	var results []types.RawResult
	for _, hit := range payload.Results {
		paper := hit.Paper
		r := types.RawResult{
			Title:   strings.TrimSpace(paper.Title),
			Excerpt: strings.TrimSpace(paper.Abstract),
			URL:     paper.URLAbs,
			Source:  string(types.SourceCodeIndex),
			Type:    types.DocPaper,
		}
		if r.URL == "" && hit.Repository.URL != "" {
			r.URL = hit.Repository.URL
		}
		if t, parseErr := time.Parse("2006-01-02", paper.Published); parseErr == nil {
			r.Published = &t
		}
		results = append(results, r)
	}
	return results, nil
}

// Papers with Code search response structures.
type codeIndexResponse struct {
	Results []codeIndexHit `json:"results"`
}

type codeIndexHit struct {
	Paper struct {
		Title     string `json:"title"`
		Abstract  string `json:"abstract"`
		URLAbs    string `json:"url_abs"`
		Published string `json:"published"`
	} `json:"paper"`
	Repository struct {
		URL string `json:"url"`
	} `json:"repository"`
}
