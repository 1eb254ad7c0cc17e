// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records per-run statistics in a SQLite database so
// coverage can be compared across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/venue-engine/internal/pipeline"
	"github.com/pdiddy/venue-engine/pkg/types"
)

// Store manages the run-history SQLite database.
type Store struct {
	db      *sql.DB
	maxRuns int
}

// Run is one recorded pipeline execution.
type Run struct {
	ID          int64
	FinishedAt  time.Time
	TotalVenues int
	Coverage    types.Coverage
	Found       int
	NotFound    int
	Failed      int
}

// NewStore opens or creates the history database at cfg.DBPath, creating
// the schema if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = 20
	}

	s := &Store{db: db, maxRuns: maxRuns}
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		finished_at TEXT NOT NULL,
		total_venues INTEGER NOT NULL,
		cov_rating INTEGER NOT NULL,
		cov_fsa INTEGER NOT NULL,
		cov_photos INTEGER NOT NULL,
		cov_website INTEGER NOT NULL,
		cov_phone INTEGER NOT NULL,
		cov_hours INTEGER NOT NULL,
		hygiene_found INTEGER NOT NULL,
		hygiene_not_found INTEGER NOT NULL,
		hygiene_failed INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one row for a completed run.
func (s *Store) Record(ctx context.Context, sum pipeline.Summary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (finished_at, total_venues,
			cov_rating, cov_fsa, cov_photos, cov_website, cov_phone, cov_hours,
			hygiene_found, hygiene_not_found, hygiene_failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.FinishedAt.UTC().Format(time.RFC3339),
		sum.Total,
		sum.Coverage.Rating, sum.Coverage.FSARating, sum.Coverage.Photos,
		sum.Coverage.Website, sum.Coverage.Phone, sum.Coverage.OpeningHours,
		sum.Found, sum.NotFound, sum.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first. A non-positive limit
// uses the configured default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxRuns
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, finished_at, total_venues,
			cov_rating, cov_fsa, cov_photos, cov_website, cov_phone, cov_hours,
			hygiene_found, hygiene_not_found, hygiene_failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished string
		if err := rows.Scan(&r.ID, &finished, &r.TotalVenues,
			&r.Coverage.Rating, &r.Coverage.FSARating, &r.Coverage.Photos,
			&r.Coverage.Website, &r.Coverage.Phone, &r.Coverage.OpeningHours,
			&r.Found, &r.NotFound, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, finished); parseErr == nil {
			r.FinishedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
