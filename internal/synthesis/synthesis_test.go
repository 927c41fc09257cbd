package synthesis

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/research-hub/pkg/types"
)

func testCorpus() []types.ResearchDocument {
	published := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return []types.ResearchDocument{
		{
			ID: "doc-1", Type: types.DocPaper, Source: "arxiv",
			Title:         "Efficient Attention Mechanisms",
			Excerpt:       "A linear approximation of softmax attention.",
			Content:       "We reduce computation from quadratic to subquadratic.",
			DatePublished: &published,
		},
		{
			ID: "doc-2", Type: types.DocNews, Source: "Example Wire",
			Title:   "Lab announces attention result",
			Excerpt: "Coverage of the announcement.",
		},
	}
}

func TestBuildPromptIncludesTopicAndCorpus(t *testing.T) {
	prompt := buildPrompt("efficient attention", testCorpus(), types.DepthMedium)

	for _, want := range []string{
		"Topic: efficient attention",
		"Depth: medium",
		"Corpus (2 documents)",
		"Document 1: Efficient Attention Mechanisms",
		"We reduce computation from quadratic to subquadratic.",
		"Document 2: Lab announces attention result",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptFallsBackToExcerpt(t *testing.T) {
	// doc-2 has no Content; its excerpt stands in.
	prompt := buildPrompt("topic", testCorpus(), types.DepthLow)
	if !strings.Contains(prompt, "Coverage of the announcement.") {
		t.Error("prompt should fall back to the excerpt when content is empty")
	}
}

func TestBuildPromptTruncatesLongBodies(t *testing.T) {
	long := strings.Repeat("x", excerptLimit+500)
	corpus := []types.ResearchDocument{{
		ID: "doc-long", Type: types.DocArticle, Title: "Long", Content: long,
	}}

	prompt := buildPrompt("topic", corpus, types.DepthLow)
	if strings.Contains(prompt, long) {
		t.Error("prompt should not carry the full oversized body")
	}
	if !strings.Contains(prompt, strings.Repeat("x", excerptLimit)+"...") {
		t.Error("truncated body should end with an ellipsis")
	}
}

func TestBuildPromptDepthGuidance(t *testing.T) {
	for _, depth := range []types.SynthesisDepth{types.DepthLow, types.DepthMedium, types.DepthHigh} {
		t.Run(string(depth), func(t *testing.T) {
			prompt := buildPrompt("topic", nil, depth)
			if !strings.Contains(prompt, depthGuidance[depth]) {
				t.Errorf("prompt for depth %s missing its guidance", depth)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"summary": "x"}`, `{"summary": "x"}`},
		{"json fence", "```json\n{\"summary\": \"x\"}\n```", `{"summary": "x"}`},
		{"plain fence", "```\n{\"summary\": \"x\"}\n```", `{"summary": "x"}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n  ", `{}`},
		{"no closing fence", "```json\n{}", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResultJSONRoundTrip(t *testing.T) {
	// The shape the system prompt asks the model for.
	raw := `{
		"summary": "Attention trades precision for speed.",
		"content": "# Synthesis",
		"insights": ["linear attention scales"],
		"key_findings": ["accuracy holds"],
		"nodes": [{"id": "n1", "label": "attention", "kind": "concept"}],
		"edges": [{"from": "n1", "to": "n2", "relation": "enables"}]
	}`

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		t.Fatal(err)
	}
	if result.Summary == "" || len(result.Insights) != 1 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Nodes) != 1 || result.Nodes[0].Kind != "concept" {
		t.Errorf("Nodes = %v", result.Nodes)
	}
	if len(result.Edges) != 1 || result.Edges[0].Relation != "enables" {
		t.Errorf("Edges = %v", result.Edges)
	}
}
