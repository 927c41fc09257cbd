// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ProcessKind distinguishes the two pipeline shapes a process can run.
type ProcessKind string

const (
	KindRealtimeFetch ProcessKind = "realtime-fetch"
	KindSynthesis     ProcessKind = "synthesis"
)

// ProcessStatus is the lifecycle state of a research process. Transitions
// are monotonic: pending → in_progress → completed or failed, never back.
type ProcessStatus string

const (
	StatusPending    ProcessStatus = "pending"
	StatusInProgress ProcessStatus = "in_progress"
	StatusCompleted  ProcessStatus = "completed"
	StatusFailed     ProcessStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s ProcessStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// SynthesisDepth selects how much derived output a synthesis run produces.
// Medium and high additionally emit a knowledge-graph document.
type SynthesisDepth string

const (
	DepthLow    SynthesisDepth = "low"
	DepthMedium SynthesisDepth = "medium"
	DepthHigh   SynthesisDepth = "high"
)

// Valid reports whether d is one of the supported depths.
func (d SynthesisDepth) Valid() bool {
	return d == DepthLow || d == DepthMedium || d == DepthHigh
}

// ResearchProcess tracks one asynchronous unit of work (a realtime fetch or
// a synthesis run) through its lifecycle.
type ResearchProcess struct {
	// ID is an opaque unique identifier, independent of storage.
	ID string `json:"id" yaml:"id"`

	// Owner identifies the requesting user. All reads are owner-scoped.
	Owner string `json:"owner" yaml:"owner"`

	Kind   ProcessKind   `json:"kind" yaml:"kind"`
	Status ProcessStatus `json:"status" yaml:"status"`

	// Query is the search query (realtime-fetch) or topic (synthesis).
	Query string `json:"query" yaml:"query"`

	// Sources is the ordered set of requested source identifiers
	// (realtime-fetch only).
	Sources []SourceID `json:"sources,omitempty" yaml:"sources,omitempty"`

	// MaxResults caps the aggregated result count (realtime-fetch only).
	MaxResults int `json:"max_results,omitempty" yaml:"max_results,omitempty"`

	// DocumentIDs is the explicit corpus selection (synthesis only; may be
	// empty, in which case the corpus is drawn from Category).
	DocumentIDs []string `json:"document_ids,omitempty" yaml:"document_ids,omitempty"`

	// Depth is the requested synthesis depth (synthesis only).
	Depth SynthesisDepth `json:"depth,omitempty" yaml:"depth,omitempty"`

	// Category is an optional classification label.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Timestamps are each set exactly once when the corresponding
	// transition occurs.
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`

	// ErrorMessage is set iff Status is failed.
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`

	// ResultCount is set iff Status is completed.
	ResultCount *int `json:"result_count,omitempty" yaml:"result_count,omitempty"`
}

// ProcessPatch holds the mutable fields of a process record. Nil fields are
// left untouched by an update.
type ProcessPatch struct {
	Status       *ProcessStatus
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ErrorMessage *string
	ResultCount  *int
}
