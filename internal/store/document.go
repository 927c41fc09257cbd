// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/research-hub/pkg/types"
)

// InsertDocument persists a new document record.
func (s *Store) InsertDocument(ctx context.Context, d *types.ResearchDocument) error {
	tagsJSON, _ := json.Marshal(d.Tags)
	metadataJSON, _ := json.Marshal(d.Metadata)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, owner, process_id, type, title, excerpt, content,
			source, url, category, tags, metadata, date_added, date_published)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Owner, d.ProcessID, string(d.Type), d.Title, d.Excerpt, d.Content,
		d.Source, d.URL, d.Category, string(tagsJSON), string(metadataJSON),
		formatTime(d.DateAdded), formatTimePtr(d.DatePublished),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// GetDocument returns the document with the given identifier, scoped to owner.
func (s *Store) GetDocument(ctx context.Context, id, owner string) (*types.ResearchDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		documentSelect+` WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying document: %w", err)
		}
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return scanDocument(rows)
}

// QueryDocuments returns the owner's documents matching the query, most
// recently added first.
func (s *Store) QueryDocuments(ctx context.Context, owner string, q types.DocumentQuery) ([]types.ResearchDocument, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	if q.Match != "" {
		qb.WriteString(
			`SELECT d.id, d.owner, d.process_id, d.type, d.title, d.excerpt, d.content,
				d.source, d.url, d.category, d.tags, d.metadata, d.date_added, d.date_published
			FROM documents_fts
			JOIN documents d ON d.rowid = documents_fts.rowid
			WHERE documents_fts MATCH ? AND d.owner = ?`)
		args = append(args, ftsQuery(q.Match), owner)
	} else {
		qb.WriteString(documentSelect + ` WHERE owner = ?`)
		args = append(args, owner)
	}

	alias := ""
	if q.Match != "" {
		alias = "d."
	}

	if q.Type != "" {
		qb.WriteString(` AND ` + alias + `type = ?`)
		args = append(args, string(q.Type))
	}
	if q.Category != "" {
		qb.WriteString(` AND ` + alias + `category = ?`)
		args = append(args, q.Category)
	}
	if q.ProcessID != "" {
		qb.WriteString(` AND ` + alias + `process_id = ?`)
		args = append(args, q.ProcessID)
	}
	if len(q.IDs) > 0 {
		qb.WriteString(` AND ` + alias + `id IN (?` + strings.Repeat(", ?", len(q.IDs)-1) + `)`)
		for _, id := range q.IDs {
			args = append(args, id)
		}
	}

	qb.WriteString(` ORDER BY ` + alias + `date_added DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []types.ResearchDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// UpdateDocument applies a patch to a document, scoped to owner.
func (s *Store) UpdateDocument(ctx context.Context, id, owner string, patch types.DocumentPatch) error {
	var sets []string
	var args []any

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Excerpt != nil {
		sets = append(sets, "excerpt = ?")
		args = append(args, *patch.Excerpt)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Tags != nil {
		tagsJSON, _ := json.Marshal(*patch.Tags)
		sets = append(sets, "tags = ?")
		args = append(args, string(tagsJSON))
	}
	if patch.Metadata != nil {
		metadataJSON, _ := json.Marshal(*patch.Metadata)
		sets = append(sets, "metadata = ?")
		args = append(args, string(metadataJSON))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id, owner)
	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET "+strings.Join(sets, ", ")+" WHERE id = ? AND owner = ?", args...)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteDocument removes a document, scoped to owner.
func (s *Store) DeleteDocument(ctx context.Context, id, owner string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return nil
}

const documentSelect = `SELECT id, owner, process_id, type, title, excerpt, content,
	source, url, category, tags, metadata, date_added, date_published
FROM documents`

// ftsQuery quotes each term so user input cannot inject FTS5 operators.
func ftsQuery(match string) string {
	fields := strings.Fields(match)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, ``) + `"`
	}
	return strings.Join(fields, " ")
}

func scanDocument(rows *sql.Rows) (*types.ResearchDocument, error) {
	var (
		d             types.ResearchDocument
		docType       string
		processID     sql.NullString
		title         sql.NullString
		excerpt       sql.NullString
		content       sql.NullString
		source        sql.NullString
		url           sql.NullString
		category      sql.NullString
		tagsJSON      sql.NullString
		metadataJSON  sql.NullString
		dateAdded     string
		datePublished sql.NullString
	)

	err := rows.Scan(&d.ID, &d.Owner, &processID, &docType, &title, &excerpt,
		&content, &source, &url, &category, &tagsJSON, &metadataJSON,
		&dateAdded, &datePublished)
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	d.Type = types.DocumentType(docType)
	d.ProcessID = processID.String
	d.Title = title.String
	d.Excerpt = excerpt.String
	d.Content = content.String
	d.Source = source.String
	d.URL = url.String
	d.Category = category.String
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &d.Tags)
	}
	if metadataJSON.Valid {
		json.Unmarshal([]byte(metadataJSON.String), &d.Metadata)
	}
	if t, perr := time.Parse(time.RFC3339Nano, dateAdded); perr == nil {
		d.DateAdded = t
	}
	d.DatePublished = parseTimePtr(datePublished)

	return &d, nil
}
