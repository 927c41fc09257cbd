// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/research-hub/internal/httputil"
	"github.com/pdiddy/research-hub/pkg/types"
)

// wikipediaAPIBase is the MediaWiki action API endpoint. Declared as a var
// so tests can substitute an httptest server.
var wikipediaAPIBase = "https://en.wikipedia.org/w/api.php"

// snippetTagPattern strips the <span class="searchmatch"> markup MediaWiki
// embeds in search snippets.
var snippetTagPattern = regexp.MustCompile(`<[^>]+>`)

// WikipediaAdapter queries the MediaWiki search API for encyclopedia articles.
type WikipediaAdapter struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the adapter identifier.
func (a *WikipediaAdapter) Name() types.SourceID { return types.SourceWikipedia }

// Fetch queries the MediaWiki search API and returns article results.
func (a *WikipediaAdapter) Fetch(ctx context.Context, query string, maxResults int) ([]types.RawResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Wikipedia query")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {fmt.Sprintf("%d", maxResults)},
		"format":   {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wikipediaAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Wikipedia API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Wikipedia API returned HTTP %d", resp.StatusCode)
	}

	var payload wikipediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing Wikipedia response: %w", err)
	}

	var results []types.RawResult
	for _, hit := range payload.Query.Search {
		title := strings.TrimSpace(hit.Title)
		results = append(results, types.RawResult{
			Title:   title,
			Excerpt: strings.TrimSpace(snippetTagPattern.ReplaceAllString(hit.Snippet, "")),
			URL:     "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_")),
			Source:  string(types.SourceWikipedia),
			Type:    types.DocArticle,
		})
	}
	return results, nil
}

// MediaWiki search response structures.
type wikipediaResponse struct {
	Query struct {
		Search []wikipediaHit `json:"search"`
	} `json:"query"`
}

type wikipediaHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
