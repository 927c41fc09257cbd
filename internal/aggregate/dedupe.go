// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"strings"
	"unicode"

	"github.com/pdiddy/research-hub/pkg/types"
)

// Dedupe collapses results that share a normalized title, keeping the
// first-seen occurrence so the output is a stable subsequence of the input.
// Results without a title are dropped. Dedupe is idempotent.
func Dedupe(results []types.RawResult) []types.RawResult {
	seen := make(map[string]bool, len(results))
	deduped := make([]types.RawResult, 0, len(results))

	for _, r := range results {
		key := normalizeTitle(r.Title)
		if key == "" {
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, r)
	}
	return deduped
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the
// title with internal whitespace collapsed.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
