// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout applied per source adapter.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-hub/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourcesConfig holds settings for the source fan-out stage.
type SourcesConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default maximum number of aggregated results
	// (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// GNewsAPIKey authenticates against the primary news provider.
	GNewsAPIKey string `json:"gnews_api_key,omitempty" yaml:"gnews_api_key,omitempty"`

	// CurrentsAPIKey authenticates against the secondary news provider,
	// used when the primary fails.
	CurrentsAPIKey string `json:"currents_api_key,omitempty" yaml:"currents_api_key,omitempty"`
}

// SynthesisConfig holds settings for the synthesis stage.
type SynthesisConfig struct {
	// Model is the AI model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CorpusLimit bounds how many documents a category-derived corpus may
	// contain (default 10).
	CorpusLimit int `json:"corpus_limit" yaml:"corpus_limit"`
}

// StoreConfig holds settings for the document and process store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// HubConfig groups all stage configurations.
type HubConfig struct {
	Sources   SourcesConfig   `json:"sources" yaml:"sources"`
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}
