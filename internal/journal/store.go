// Package journal persists a best-effort record of bootstrap runs.
package journal

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	apperrors "llb/internal/errors"
)

// Store persists run history in a SQLite database file. A nil *Store is a
// valid no-op store, so callers never have to guard journal writes.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	outcome     TEXT NOT NULL DEFAULT 'running'
);
CREATE TABLE IF NOT EXISTS steps (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      INTEGER NOT NULL REFERENCES runs(id),
	name        TEXT NOT NULL,
	status      TEXT NOT NULL,
	detail      TEXT,
	duration_ms INTEGER NOT NULL DEFAULT 0
);
`

// Open opens (or creates) the journal database at the given path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, dbError("journal.Open", "failed to open journal database", err, apperrors.Metadata{
			"path": path,
		})
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, dbError("journal.Open", "failed to create journal schema", err, apperrors.Metadata{
			"path": path,
		})
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun records the start of a bootstrap run and returns its identifier.
func (s *Store) BeginRun(ctx context.Context) (int64, error) {
	if s == nil {
		return 0, nil
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at) VALUES (?)`,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, dbError("journal.BeginRun", "failed to record run start", err, nil)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, dbError("journal.BeginRun", "failed to read run id", err, nil)
	}
	return id, nil
}

// FinishRun records the final outcome of a run.
func (s *Store) FinishRun(ctx context.Context, runID int64, outcome string) error {
	if s == nil {
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, outcome = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), outcome, runID,
	)
	if err != nil {
		return dbError("journal.FinishRun", "failed to record run outcome", err, apperrors.Metadata{
			"run_id": runID,
		})
	}
	return nil
}

// RecordStep appends a step outcome to a run.
func (s *Store) RecordStep(ctx context.Context, runID int64, name, status, detail string, duration time.Duration) error {
	if s == nil {
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO steps (run_id, name, status, detail, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		runID, name, status, detail, duration.Milliseconds(),
	)
	if err != nil {
		return dbError("journal.RecordStep", "failed to record step", err, apperrors.Metadata{
			"run_id": runID,
			"step":   name,
		})
	}
	return nil
}

// Run summarises a recorded bootstrap run.
type Run struct {
	ID         int64
	StartedAt  string
	FinishedAt string
	Outcome    string
}

// StepRecord is a recorded step outcome within a run.
type StepRecord struct {
	Name     string
	Status   string
	Detail   string
	Duration time.Duration
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if s == nil {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, COALESCE(finished_at, ''), outcome
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, dbError("journal.RecentRuns", "failed to query runs", err, nil)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Outcome); err != nil {
			return nil, dbError("journal.RecentRuns", "failed to scan run", err, nil)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("journal.RecentRuns", "failed to iterate runs", err, nil)
	}
	return runs, nil
}

// Steps returns the recorded steps of a run in execution order.
func (s *Store) Steps(ctx context.Context, runID int64) ([]StepRecord, error) {
	if s == nil {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, status, COALESCE(detail, ''), duration_ms
		 FROM steps WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, dbError("journal.Steps", "failed to query steps", err, apperrors.Metadata{
			"run_id": runID,
		})
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		var (
			step       StepRecord
			durationMS int64
		)
		if err := rows.Scan(&step.Name, &step.Status, &step.Detail, &durationMS); err != nil {
			return nil, dbError("journal.Steps", "failed to scan step", err, nil)
		}
		step.Duration = time.Duration(durationMS) * time.Millisecond
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("journal.Steps", "failed to iterate steps", err, nil)
	}
	return steps, nil
}

func dbError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	appErr := apperrors.DatabaseError(apperrors.CodeDatabaseGeneric, message, err).
		WithModule("journal").
		WithOperation(operation)
	if metadata != nil {
		appErr.WithFields(metadata)
	}
	return appErr
}
