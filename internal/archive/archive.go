// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps a SQLite history of sync runs and the publications
// each run produced. The history is never read back into a sync.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubsync/pkg/types"
)

// RunStatus records how a sync run ended.
type RunStatus string

const (
	StatusOK          RunStatus = "ok"
	StatusFetchFailed RunStatus = "fetch_failed"
)

const defaultListLimit = 20

// Run is one archived sync run.
type Run struct {
	ID           int64
	ORCIDID      string
	StartedAt    time.Time
	Status       RunStatus
	Error        string
	Output       string
	Publications []types.Publication
}

// Count returns the number of publications the run produced.
func (r Run) Count() int { return len(r.Publications) }

// Store manages the archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at path, creating the parent
// directory and schema if they do not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			orcid_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			output TEXT,
			count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_publications (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			year TEXT NOT NULL,
			title TEXT NOT NULL,
			journal TEXT NOT NULL,
			doi TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_orcid_id ON runs(orcid_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores run and its publications in one transaction and returns
// the new run ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (orcid_id, started_at, status, error, output, count) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ORCIDID, started.UTC().Format(time.RFC3339Nano), string(run.Status), run.Error, run.Output, run.Count(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, p := range run.Publications {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_publications (run_id, position, year, title, journal, doi) VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, p.Year, p.Title, p.Journal, p.DOI,
		); err != nil {
			return 0, fmt.Errorf("inserting publication %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// ListRuns returns up to limit runs, newest first. Publications are not
// loaded; use Publications for a single run. A limit of 0 or less uses 20.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, orcid_id, started_at, status, COALESCE(error, ''), COALESCE(output, ''), count
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started, status string
		if err := rows.Scan(&r.ID, &r.ORCIDID, &started, &status, &r.Error, &r.Output, &r.Count); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Status = RunStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunSummary is a run without its publications.
type RunSummary struct {
	ID        int64
	ORCIDID   string
	StartedAt time.Time
	Status    RunStatus
	Error     string
	Output    string
	Count     int
}

// Publications returns the publications recorded for runID in their
// original order. An unknown run yields an error.
func (s *Store) Publications(ctx context.Context, runID int64) ([]types.Publication, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("looking up run %d: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT year, title, journal, doi FROM run_publications WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	pubs := []types.Publication{}
	for rows.Next() {
		var p types.Publication
		if err := rows.Scan(&p.Year, &p.Title, &p.Journal, &p.DOI); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}
