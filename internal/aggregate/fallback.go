// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/research-hub/pkg/types"
)

// minFallbackResults is the floor guaranteed by the degraded fallback.
const minFallbackResults = 3

// stopwords are query words too generic to seed a placeholder template.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "for": true, "in": true, "of": true,
	"on": true, "or": true, "the": true, "to": true, "with": true,
}

// fallbackTemplates parameterize the synthetic placeholder results. Each
// entry maps a keyword into a title and excerpt.
var fallbackTemplates = []struct {
	title   string
	excerpt string
	docType types.DocumentType
}{
	{"An Overview of %s", "A survey of current approaches to %s, covering foundational methods and open problems.", types.DocPaper},
	{"Recent Advances in %s", "A review of recent developments in %s and their practical implications.", types.DocArticle},
	{"%s: Current State and Outlook", "Coverage of the present landscape of %s and where the field is heading.", types.DocNews},
	{"Practical Applications of %s", "Case studies applying %s to real-world problems across domains.", types.DocArticle},
	{"Open Challenges in %s", "A discussion of unsolved questions and research directions in %s.", types.DocPaper},
}

// SyntheticResults generates deterministic placeholder results for a query
// when every external source is unreachable or empty. It guarantees at least
// three results, more when the query yields more keywords, capped at
// maxResults. Every result is marked Synthetic and tagged so consumers can
// tell it from genuine content.
func SyntheticResults(query string, sources []types.SourceID, maxResults int) []types.RawResult {
	if maxResults <= 0 {
		maxResults = minFallbackResults
	}

	keywords := extractKeywords(query)
	if len(keywords) == 0 {
		keywords = []string{strings.TrimSpace(query)}
	}

	count := len(keywords)
	if count < minFallbackResults {
		count = minFallbackResults
	}
	if count > maxResults {
		count = maxResults
	}
	if count < minFallbackResults {
		count = minFallbackResults
	}

	sourceLabel := "fallback"
	if len(sources) > 0 {
		var names []string
		for _, s := range sources {
			names = append(names, string(s))
		}
		sourceLabel = "fallback:" + strings.Join(names, ",")
	}

	now := time.Now().UTC()
	results := make([]types.RawResult, 0, count)
	for i := 0; i < count; i++ {
		kw := keywords[i%len(keywords)]
		tpl := fallbackTemplates[i%len(fallbackTemplates)]
		published := now
		results = append(results, types.RawResult{
			Title:     fmt.Sprintf(tpl.title, titleCase(kw)),
			Excerpt:   fmt.Sprintf(tpl.excerpt, kw),
			Content:   fmt.Sprintf("Placeholder material for the query %q. External sources were unavailable when this entry was generated.", query),
			URL:       "",
			Source:    sourceLabel,
			Type:      tpl.docType,
			Published: &published,
			Synthetic: true,
		})
	}
	return results
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractKeywords splits the query into distinct lowercase terms, dropping
// stopwords and short tokens, preserving query order.
func extractKeywords(query string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(query)) {
		f = strings.Trim(f, `.,;:!?"'()[]`)
		if len(f) < 3 || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		keywords = append(keywords, f)
	}
	return keywords
}
