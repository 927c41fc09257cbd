// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source implements the pluggable clients for external
// research-content providers (arXiv, Wikipedia, news wires, code-paper
// indexes). Each provider is an Adapter behind a closed registry; unknown
// source identifiers resolve to nothing.
package source

import (
	"context"
	"net/http"

	"github.com/pdiddy/research-hub/pkg/types"
)

// Adapter fetches raw results from a single external source per the Strategy
// pattern. Implementations report internal failures through the error return;
// the aggregator treats a failing adapter as one that returned no results.
type Adapter interface {
	Name() types.SourceID
	Fetch(ctx context.Context, query string, maxResults int) ([]types.RawResult, error)
}

// Registry maps source identifiers to adapters. It is built once at startup;
// resolution never constructs adapters per call.
type Registry struct {
	adapters map[types.SourceID]Adapter
}

// NewRegistry builds a registry over the standard adapter set, sharing one
// HTTP client across adapters. The client's timeout is the per-adapter
// timeout policy; no central deadline is applied on top of it.
func NewRegistry(client *http.Client, cfg types.SourcesConfig) *Registry {
	r := &Registry{adapters: make(map[types.SourceID]Adapter)}
	r.Register(&ArxivAdapter{Client: client, UserAgent: cfg.UserAgent})
	r.Register(&WikipediaAdapter{Client: client, UserAgent: cfg.UserAgent})
	r.Register(&NewswireAdapter{
		Client:         client,
		UserAgent:      cfg.UserAgent,
		GNewsAPIKey:    cfg.GNewsAPIKey,
		CurrentsAPIKey: cfg.CurrentsAPIKey,
	})
	r.Register(&CodeIndexAdapter{Client: client, UserAgent: cfg.UserAgent})
	return r
}

// Register adds or replaces the adapter for its source identifier.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Name()] = a
}

// Resolve maps the requested identifiers to adapters, preserving request
// order. Unknown identifiers are silently skipped.
func (r *Registry) Resolve(ids []types.SourceID) []Adapter {
	var adapters []Adapter
	for _, id := range ids {
		if a, ok := r.adapters[id]; ok {
			adapters = append(adapters, a)
		}
	}
	return adapters
}
