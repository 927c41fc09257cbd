// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-hub/pkg/types"
)

// excerptLimit bounds how much of each document body goes into the prompt.
const excerptLimit = 1500

const systemPrompt = `You are a research analyst. Given a topic and a corpus of research
documents, produce a synthesis as a single JSON object with these fields:
"summary" (one paragraph), "content" (a structured synthesis in Markdown),
"insights" (array of strings), "key_findings" (array of strings),
"nodes" (array of {"id","label","kind"}) and "edges" (array of
{"from","to","relation"}) describing a knowledge graph of the main concepts.
Respond with JSON only.`

// depthGuidance maps the requested depth to instructions on synthesis scope.
var depthGuidance = map[types.SynthesisDepth]string{
	types.DepthLow:    "Keep the synthesis brief: a summary, 2-3 insights, and the strongest findings. The graph may be empty.",
	types.DepthMedium: "Produce a moderate synthesis with 4-6 insights and a concept graph covering the main entities.",
	types.DepthHigh:   "Produce a thorough synthesis: detailed content, 6 or more insights, and a rich concept graph with typed relations.",
}

// buildPrompt renders the user prompt from the topic and corpus.
func buildPrompt(topic string, corpus []types.ResearchDocument, depth types.SynthesisDepth) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Depth: %s. %s\n\n", depth, depthGuidance[depth])
	fmt.Fprintf(&b, "Corpus (%d documents):\n\n", len(corpus))

	for i, doc := range corpus {
		fmt.Fprintf(&b, "--- Document %d: %s (%s, source: %s) ---\n", i+1, doc.Title, doc.Type, doc.Source)
		body := doc.Content
		if body == "" {
			body = doc.Excerpt
		}
		if len(body) > excerptLimit {
			body = body[:excerptLimit] + "..."
		}
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	return b.String()
}
