// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists research processes and documents in SQLite and
// serves owner-scoped queries with full-text matching over document text.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-hub/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "research-hub.db"
)

// Store manages the research-hub SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the SQLite database at dataDir/index/ and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS processes (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			query TEXT,
			sources TEXT,
			max_results INTEGER,
			document_ids TEXT,
			depth TEXT,
			category TEXT,
			created_at TEXT NOT NULL,
			started_at TEXT,
			completed_at TEXT,
			error_message TEXT,
			result_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_processes_owner ON processes(owner)`,
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			owner TEXT NOT NULL,
			process_id TEXT,
			type TEXT NOT NULL,
			title TEXT,
			excerpt TEXT,
			content TEXT,
			source TEXT,
			url TEXT,
			category TEXT,
			tags TEXT,
			metadata TEXT,
			date_added TEXT NOT NULL,
			date_published TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents(owner)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_process_id ON documents(process_id)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_type ON documents(type)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='documents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE documents_fts USING fts5(title, excerpt, content, content=documents, content_rowid=rowid)`,
			`CREATE TRIGGER documents_ai AFTER INSERT ON documents BEGIN
				INSERT INTO documents_fts(rowid, title, excerpt, content)
				VALUES (new.rowid, new.title, new.excerpt, new.content);
			END`,
			`CREATE TRIGGER documents_ad AFTER DELETE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, title, excerpt, content)
				VALUES('delete', old.rowid, old.title, old.excerpt, old.content);
			END`,
			`CREATE TRIGGER documents_au AFTER UPDATE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, title, excerpt, content)
				VALUES('delete', old.rowid, old.title, old.excerpt, old.content);
				INSERT INTO documents_fts(rowid, title, excerpt, content)
				VALUES (new.rowid, new.title, new.excerpt, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}
