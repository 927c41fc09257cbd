// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DocumentType classifies a stored research document.
type DocumentType string

const (
	DocPaper     DocumentType = "paper"
	DocArticle   DocumentType = "article"
	DocNews      DocumentType = "news"
	DocSynthesis DocumentType = "synthesis"
	DocGraph     DocumentType = "graph"
	DocAlert     DocumentType = "alert"
)

// DefaultCategory is the bucket used when no category is given.
const DefaultCategory = "Uncategorized"

// ResearchDocument is a persisted piece of research material. Documents are
// created as a side effect of a process run; ProcessID is a back-reference,
// not an ownership edge — a document outlives its process.
type ResearchDocument struct {
	ID        string `json:"id" yaml:"id"`
	Owner     string `json:"owner" yaml:"owner"`
	ProcessID string `json:"process_id,omitempty" yaml:"process_id,omitempty"`

	Type     DocumentType `json:"type" yaml:"type"`
	Title    string       `json:"title" yaml:"title"`
	Excerpt  string       `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Content  string       `json:"content,omitempty" yaml:"content,omitempty"`
	Source   string       `json:"source,omitempty" yaml:"source,omitempty"`
	URL      string       `json:"url,omitempty" yaml:"url,omitempty"`
	Category string       `json:"category,omitempty" yaml:"category,omitempty"`

	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Metadata is an open key/value map whose shape varies by Type. A graph
	// document always carries "nodes" and "edges"; a synthesis document
	// always carries "topic", "depth", "document_ids", "insights" and
	// "key_findings".
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	DateAdded time.Time `json:"date_added" yaml:"date_added"`

	// DatePublished is nil when the source provides no publication date.
	DatePublished *time.Time `json:"date_published,omitempty" yaml:"date_published,omitempty"`
}

// DocumentPatch holds the externally mutable fields of a document. Nil
// fields are left untouched by an update.
type DocumentPatch struct {
	Title    *string
	Excerpt  *string
	Content  *string
	Category *string
	Tags     *[]string
	Metadata *map[string]any
}

// DocumentQuery selects documents from the store. Zero values mean
// "no filter".
type DocumentQuery struct {
	// Type filters by document type.
	Type DocumentType

	// Category filters by classification label.
	Category string

	// ProcessID filters by originating process.
	ProcessID string

	// Match is a full-text query over title, excerpt and content.
	Match string

	// IDs restricts the result to an explicit identifier set.
	IDs []string

	// Limit caps the result count. Zero uses the store default.
	Limit int
}
