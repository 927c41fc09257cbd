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

// ErrNotFound is returned when a record does not exist for the given
// identifier and owner.
var ErrNotFound = fmt.Errorf("not found")

// InsertProcess persists a new process record.
func (s *Store) InsertProcess(ctx context.Context, p *types.ResearchProcess) error {
	sourcesJSON, _ := json.Marshal(p.Sources)
	docIDsJSON, _ := json.Marshal(p.DocumentIDs)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processes (id, owner, kind, status, query, sources, max_results,
			document_ids, depth, category, created_at, started_at, completed_at,
			error_message, result_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Owner, string(p.Kind), string(p.Status), p.Query,
		string(sourcesJSON), p.MaxResults, string(docIDsJSON), string(p.Depth),
		p.Category, formatTime(p.CreatedAt), formatTimePtr(p.StartedAt),
		formatTimePtr(p.CompletedAt), nullString(p.ErrorMessage), nullInt(p.ResultCount),
	)
	if err != nil {
		return fmt.Errorf("inserting process: %w", err)
	}
	return nil
}

// UpdateProcess applies a patch to a process record. A status change is
// refused once the process has reached a terminal state, which keeps the
// lifecycle monotonic no matter who calls.
func (s *Store) UpdateProcess(ctx context.Context, id string, patch types.ProcessPatch) error {
	var sets []string
	var args []any

	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.StartedAt != nil {
		sets = append(sets, "started_at = ?")
		args = append(args, formatTime(*patch.StartedAt))
	}
	if patch.CompletedAt != nil {
		sets = append(sets, "completed_at = ?")
		args = append(args, formatTime(*patch.CompletedAt))
	}
	if patch.ErrorMessage != nil {
		sets = append(sets, "error_message = ?")
		args = append(args, *patch.ErrorMessage)
	}
	if patch.ResultCount != nil {
		sets = append(sets, "result_count = ?")
		args = append(args, *patch.ResultCount)
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE processes SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	if patch.Status != nil {
		query += " AND status NOT IN ('completed', 'failed')"
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating process: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating process: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("process %s: no updatable record", id)
	}
	return nil
}

// GetProcess returns the process with the given identifier, scoped to owner.
func (s *Store) GetProcess(ctx context.Context, id, owner string) (*types.ResearchProcess, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner, kind, status, query, sources, max_results, document_ids,
			depth, category, created_at, started_at, completed_at, error_message, result_count
		 FROM processes WHERE id = ? AND owner = ?`, id, owner)

	var (
		p            types.ResearchProcess
		kind, status string
		sourcesJSON  sql.NullString
		docIDsJSON   sql.NullString
		depth        sql.NullString
		category     sql.NullString
		createdAt    string
		startedAt    sql.NullString
		completedAt  sql.NullString
		errMsg       sql.NullString
		resultCount  sql.NullInt64
	)

	err := row.Scan(&p.ID, &p.Owner, &kind, &status, &p.Query, &sourcesJSON,
		&p.MaxResults, &docIDsJSON, &depth, &category, &createdAt,
		&startedAt, &completedAt, &errMsg, &resultCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("process %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning process: %w", err)
	}

	p.Kind = types.ProcessKind(kind)
	p.Status = types.ProcessStatus(status)
	if sourcesJSON.Valid {
		json.Unmarshal([]byte(sourcesJSON.String), &p.Sources)
	}
	if docIDsJSON.Valid {
		json.Unmarshal([]byte(docIDsJSON.String), &p.DocumentIDs)
	}
	if depth.Valid {
		p.Depth = types.SynthesisDepth(depth.String)
	}
	if category.Valid {
		p.Category = category.String
	}
	if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
		p.CreatedAt = t
	}
	p.StartedAt = parseTimePtr(startedAt)
	p.CompletedAt = parseTimePtr(completedAt)
	if errMsg.Valid {
		p.ErrorMessage = errMsg.String
	}
	if resultCount.Valid {
		n := int(resultCount.Int64)
		p.ResultCount = &n
	}

	return &p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTimePtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
