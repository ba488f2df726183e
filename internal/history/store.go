// Package history records fetch runs in a local SQLite database so the
// dashboard can show when snapshots were taken and how they went. It is an
// audit log, not a cache: issue data lives only in the snapshot files.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drivetrainhq/eagleview/internal/db"
)

// Run is one recorded fetch run.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Duration  int64     `json:"duration_ms"`
	Fetched   int       `json:"fetched"`
	Merged    int       `json:"merged"`
	Excluded  int       `json:"excluded"`
	JSONFile  string    `json:"json_file"`
	CSVFile   string    `json:"csv_file"`
}

// Store manages persistence of fetch runs.
type Store struct {
	db *db.DB
}

// NewStore creates a new history store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a run. A missing ID gets a fresh UUID.
func (s *Store) Record(ctx context.Context, run Run) (*Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fetch_runs (id, started_at, duration_ms, fetched, merged, excluded, json_file, csv_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.Duration, run.Fetched, run.Merged, run.Excluded, run.JSONFile, run.CSVFile,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	return &run, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, fetched, merged, excluded, json_file, csv_file
		 FROM fetch_runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Duration, &r.Fetched, &r.Merged, &r.Excluded, &r.JSONFile, &r.CSVFile); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Latest returns the newest run, or nil when none is recorded.
func (s *Store) Latest(ctx context.Context) (*Run, error) {
	runs, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
