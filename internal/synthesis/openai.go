// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/research-hub/pkg/types"
)

// OpenAIBackend implements Backend using the OpenAI Chat Completions API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend builds a backend from the synthesis configuration. An
// empty model falls back to gpt-4o-mini.
func NewOpenAIBackend(cfg types.SynthesisConfig) *OpenAIBackend {
	var clientOpts []option.RequestOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.MaxRetries > 0 {
		clientOpts = append(clientOpts, option.WithMaxRetries(cfg.MaxRetries))
	}

	model := cfg.Model
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}

	client := openai.NewClient(clientOpts...)
	return &OpenAIBackend{client: &client, model: model}
}

// Generate runs one non-streaming chat completion and parses the JSON
// response into a Result. An empty or unparseable response yields nil.
func (b *OpenAIBackend) Generate(ctx context.Context, topic string, corpus []types.ResearchDocument, depth types.SynthesisDepth) (*Result, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(topic, corpus, depth)),
		},
		Model:       b.model,
		Temperature: openai.Float(0.3),
	})
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, nil
	}

	var result Result
	if err := json.Unmarshal([]byte(stripFences(content)), &result); err != nil {
		return nil, fmt.Errorf("parsing synthesis response: %w", err)
	}
	if result.Summary == "" && result.Content == "" {
		return nil, nil
	}
	return &result, nil
}

// stripFences removes a surrounding Markdown code fence, which models emit
// even when asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
