// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-hub pipeline:
// the process and document records, the raw results exchanged between source
// adapters and the aggregator, and per-stage configuration.
package types

import "time"

// SourceID identifies one external research-content provider. The set of
// supported sources is closed; unknown identifiers are skipped at adapter
// resolution.
type SourceID string

const (
	SourceArxiv     SourceID = "arxiv"
	SourceWikipedia SourceID = "wikipedia"
	SourceNewswire  SourceID = "newswire"
	SourceCodeIndex SourceID = "codeindex"
)

// RawResult is a single item returned by a source adapter, before it is
// merged, deduplicated and persisted as a document.
type RawResult struct {
	// Title is the item title as returned by the source. Results without a
	// title are dropped during deduplication.
	Title string `json:"title" yaml:"title"`

	// Excerpt is a short summary or abstract, when the source provides one.
	Excerpt string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`

	// Content is the full text, when the source provides one.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// URL points at the item on the source.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Authors lists the item authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Published is the publication date; nil when the source provides none.
	Published *time.Time `json:"published,omitempty" yaml:"published,omitempty"`

	// Source identifies which adapter produced this result.
	Source string `json:"source" yaml:"source"`

	// Type is the document type the result maps to when persisted.
	Type DocumentType `json:"type" yaml:"type"`

	// Synthetic marks placeholder results generated by the degraded
	// fallback, so downstream consumers can tell them from genuine content.
	Synthetic bool `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}
