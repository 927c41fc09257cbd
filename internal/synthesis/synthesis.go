// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis derives summary and knowledge-graph material from a
// document corpus via a Generative AI backend.
package synthesis

import (
	"context"

	"github.com/pdiddy/research-hub/pkg/types"
)

// Backend abstracts the Generative AI API so tests can supply a mock.
// Generate returns nil when the backend produced no usable output; the
// caller treats that as an unrecoverable failure, not a degraded result.
type Backend interface {
	Generate(ctx context.Context, topic string, corpus []types.ResearchDocument, depth types.SynthesisDepth) (*Result, error)
}

// Result is the structured synthesis produced by the backend.
type Result struct {
	// Summary is a short abstract of the synthesized material.
	Summary string `json:"summary"`

	// Content is the full synthesized text.
	Content string `json:"content"`

	// Insights are standalone observations drawn from the corpus.
	Insights []string `json:"insights"`

	// KeyFindings are the conclusions the corpus supports.
	KeyFindings []string `json:"key_findings"`

	// Nodes and Edges describe the knowledge graph. Both may be empty;
	// they are only persisted for medium and high depth runs.
	Nodes []GraphNode `json:"nodes,omitempty"`
	Edges []GraphEdge `json:"edges,omitempty"`
}

// GraphNode is one entity in the derived knowledge graph.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind,omitempty"`
}

// GraphEdge is a directed relation between two graph nodes.
type GraphEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Relation string `json:"relation,omitempty"`
}
