// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/research-hub/internal/httputil"
	"github.com/pdiddy/research-hub/pkg/types"
)

// News provider endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	gnewsAPIBase    = "https://gnews.io/api/v4/search"
	currentsAPIBase = "https://api.currentsapi.services/v1/search"
)

// NewswireAdapter queries news providers for coverage of a topic. It tries
// the primary provider (GNews) first and falls back to the secondary
// (Currents) before reporting an error.
type NewswireAdapter struct {
	Client         *http.Client
	UserAgent      string
	GNewsAPIKey    string
	CurrentsAPIKey string
}

// Name returns the adapter identifier.
func (a *NewswireAdapter) Name() types.SourceID { return types.SourceNewswire }

// Fetch queries the primary news provider, falling back to the secondary on
// any failure or empty response.
func (a *NewswireAdapter) Fetch(ctx context.Context, query string, maxResults int) ([]types.RawResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty news query")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	results, primaryErr := a.fetchGNews(ctx, query, maxResults)
	if primaryErr == nil && len(results) > 0 {
		return results, nil
	}

	results, secondaryErr := a.fetchCurrents(ctx, query, maxResults)
	if secondaryErr == nil && len(results) > 0 {
		return results, nil
	}

	if primaryErr != nil {
		return nil, fmt.Errorf("news providers unavailable: primary: %v, secondary: %v", primaryErr, secondaryErr)
	}
	return nil, nil
}

func (a *NewswireAdapter) fetchGNews(ctx context.Context, query string, maxResults int) ([]types.RawResult, error) {
	params := url.Values{
		"q":      {query},
		"max":    {fmt.Sprintf("%d", maxResults)},
		"lang":   {"en"},
		"apikey": {a.GNewsAPIKey},
	}

	body, err := a.get(ctx, gnewsAPIBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("GNews: %w", err)
	}

	var payload gnewsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing GNews response: %w", err)
	}

	var results []types.RawResult
	for _, art := range payload.Articles {
		r := types.RawResult{
			Title:   strings.TrimSpace(art.Title),
			Excerpt: strings.TrimSpace(art.Description),
			Content: strings.TrimSpace(art.Content),
			URL:     art.URL,
			Source:  string(types.SourceNewswire),
			Type:    types.DocNews,
		}
		if art.Source.Name != "" {
			r.Source = art.Source.Name
		}
		if t, parseErr := time.Parse(time.RFC3339, art.PublishedAt); parseErr == nil {
			r.Published = &t
		}
		results = append(results, r)
	}
	return results, nil
}

func (a *NewswireAdapter) fetchCurrents(ctx context.Context, query string, maxResults int) ([]types.RawResult, error) {
	params := url.Values{
		"keywords": {query},
		"language": {"en"},
		"apiKey":   {a.CurrentsAPIKey},
	}

	body, err := a.get(ctx, currentsAPIBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("Currents: %w", err)
	}

	var payload currentsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing Currents response: %w", err)
	}

	var results []types.RawResult
	for i, art := range payload.News {
		if i >= maxResults {
			break
		}
		r := types.RawResult{
			Title:   strings.TrimSpace(art.Title),
			Excerpt: strings.TrimSpace(art.Description),
			URL:     art.URL,
			Source:  string(types.SourceNewswire),
			Type:    types.DocNews,
		}
		if t, parseErr := time.Parse("2006-01-02 15:04:05 -0700", art.Published); parseErr == nil {
			r.Published = &t
		}
		results = append(results, r)
	}
	return results, nil
}

func (a *NewswireAdapter) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// GNews response structures.
type gnewsResponse struct {
	Articles []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// Currents response structures.
type currentsResponse struct {
	News []currentsArticle `json:"news"`
}

type currentsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Published   string `json:"published"`
}
