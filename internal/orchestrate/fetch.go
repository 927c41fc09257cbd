// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/research-hub/internal/aggregate"
	"github.com/pdiddy/research-hub/pkg/types"
)

// StartFetch launches a realtime fetch process and returns its identifier
// before any source I/O happens.
func (o *Orchestrator) StartFetch(ctx context.Context, owner, query string, sources []types.SourceID, maxResults int, category string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("query is empty")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	proc := &types.ResearchProcess{
		Owner:      owner,
		Kind:       types.KindRealtimeFetch,
		Query:      query,
		Sources:    sources,
		MaxResults: maxResults,
		Category:   category,
	}
	return o.start(ctx, proc, o.runFetch)
}

// runFetch aggregates results from the requested sources and persists each
// as a document. Persistence failures of individual documents are warned
// about and skipped; the process still completes with the in-memory result
// count, an availability-over-durability tradeoff.
func (o *Orchestrator) runFetch(ctx context.Context, proc *types.ResearchProcess) (int, error) {
	out := aggregate.Aggregate(ctx, o.registry, proc.Query, proc.Sources, proc.MaxResults, o.w)

	for _, r := range out.Results {
		doc := documentFromResult(proc, r)
		if err := o.documents.InsertDocument(ctx, doc); err != nil {
			fmt.Fprintf(o.w, "warning: process %s: persisting %q: %v\n", proc.ID, r.Title, err)
		}
	}

	return len(out.Results), nil
}

// documentFromResult maps an aggregated raw result onto a document record.
// Synthetic fallback results keep an explicit provenance marker in both tags
// and metadata.
func documentFromResult(proc *types.ResearchProcess, r types.RawResult) *types.ResearchDocument {
	docType := r.Type
	if docType == "" {
		docType = types.DocArticle
	}

	metadata := map[string]any{"query": proc.Query}
	if len(r.Authors) > 0 {
		metadata["authors"] = r.Authors
	}

	var tags []string
	if r.Synthetic {
		metadata["synthetic"] = true
		tags = append(tags, "synthetic")
	}

	return &types.ResearchDocument{
		ID:            uuid.NewString(),
		Owner:         proc.Owner,
		ProcessID:     proc.ID,
		Type:          docType,
		Title:         r.Title,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		Source:        r.Source,
		URL:           r.URL,
		Category:      proc.Category,
		Tags:          tags,
		Metadata:      metadata,
		DateAdded:     time.Now().UTC(),
		DatePublished: r.Published,
	}
}
