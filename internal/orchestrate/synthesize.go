// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/research-hub/pkg/types"
)

// StartSynthesis launches a synthesis process over an explicit document set
// or, when documentIDs is empty, over the most recent documents in category.
// It returns the process identifier before any backend work happens.
func (o *Orchestrator) StartSynthesis(ctx context.Context, owner, topic string, documentIDs []string, depth types.SynthesisDepth, category string) (string, error) {
	if topic == "" {
		return "", fmt.Errorf("topic is empty")
	}
	if !depth.Valid() {
		return "", fmt.Errorf("invalid synthesis depth %q", depth)
	}

	proc := &types.ResearchProcess{
		Owner:       owner,
		Kind:        types.KindSynthesis,
		Query:       topic,
		DocumentIDs: documentIDs,
		Depth:       depth,
		Category:    category,
	}
	return o.start(ctx, proc, o.runSynthesis)
}

// runSynthesis gathers the corpus, invokes the backend and persists the
// derived documents. A nil backend result is an unrecoverable failure: there
// is no synthetic fallback for synthesis. The graph document is best effort;
// the synthesis document is not.
func (o *Orchestrator) runSynthesis(ctx context.Context, proc *types.ResearchProcess) (int, error) {
	corpus, err := o.gatherCorpus(ctx, proc)
	if err != nil {
		return 0, fmt.Errorf("gathering corpus: %w", err)
	}

	result, err := o.backend.Generate(ctx, proc.Query, corpus, proc.Depth)
	if err != nil {
		return 0, fmt.Errorf("synthesis backend: %w", err)
	}
	if result == nil {
		return 0, fmt.Errorf("synthesis backend returned no result for topic %q", proc.Query)
	}

	corpusIDs := make([]string, 0, len(corpus))
	for _, doc := range corpus {
		corpusIDs = append(corpusIDs, doc.ID)
	}

	synthDoc := &types.ResearchDocument{
		ID:        uuid.NewString(),
		Owner:     proc.Owner,
		ProcessID: proc.ID,
		Type:      types.DocSynthesis,
		Title:     "Synthesis: " + proc.Query,
		Excerpt:   result.Summary,
		Content:   result.Content,
		Source:    "synthesis",
		Category:  proc.Category,
		Metadata: map[string]any{
			"topic":        proc.Query,
			"depth":        string(proc.Depth),
			"document_ids": corpusIDs,
			"insights":     result.Insights,
			"key_findings": result.KeyFindings,
		},
		DateAdded: time.Now().UTC(),
	}
	if err := o.documents.InsertDocument(ctx, synthDoc); err != nil {
		return 0, fmt.Errorf("persisting synthesis document: %w", err)
	}

	// The graph document does not participate in the result count and its
	// persistence failure does not fail the process.
	if proc.Depth == types.DepthMedium || proc.Depth == types.DepthHigh {
		graphDoc := &types.ResearchDocument{
			ID:        uuid.NewString(),
			Owner:     proc.Owner,
			ProcessID: proc.ID,
			Type:      types.DocGraph,
			Title:     "Knowledge graph: " + proc.Query,
			Source:    "synthesis",
			Category:  proc.Category,
			Metadata: map[string]any{
				"nodes":        result.Nodes,
				"edges":        result.Edges,
				"synthesis_id": synthDoc.ID,
			},
			DateAdded: time.Now().UTC(),
		}
		if err := o.documents.InsertDocument(ctx, graphDoc); err != nil {
			fmt.Fprintf(o.w, "warning: process %s: persisting graph document: %v\n", proc.ID, err)
		}
	}

	return 1, nil
}

// gatherCorpus loads the documents the synthesis will draw on: the explicit
// owner-scoped set when IDs were given, otherwise the most recent documents
// in the process category, defaulting to the Uncategorized bucket.
func (o *Orchestrator) gatherCorpus(ctx context.Context, proc *types.ResearchProcess) ([]types.ResearchDocument, error) {
	if len(proc.DocumentIDs) > 0 {
		return o.documents.QueryDocuments(ctx, proc.Owner, types.DocumentQuery{
			IDs:   proc.DocumentIDs,
			Limit: len(proc.DocumentIDs),
		})
	}

	category := proc.Category
	if category == "" {
		category = types.DefaultCategory
	}
	return o.documents.QueryDocuments(ctx, proc.Owner, types.DocumentQuery{
		Category: category,
		Limit:    o.corpusLimit,
	})
}
