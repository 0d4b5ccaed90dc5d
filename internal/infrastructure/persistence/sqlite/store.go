// Package sqlite implements the roster store on an embedded SQLite database.
// Each save replaces the whole roster in one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/alem-hub/gradebook/pkg/retry"
)

// Retry policy for SQLITE_BUSY and SQLITE_LOCKED.
const (
	busyAttempts = 5
	busyDelay    = 25 * time.Millisecond
	busyJitter   = 0.25
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		position    INTEGER NOT NULL,
		roll_number INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		grades      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS snapshot (
		id       INTEGER PRIMARY KEY CHECK (id = 1),
		saved_at TEXT NOT NULL,
		count    INTEGER NOT NULL
	)`,
}

// Store persists the roster in a SQLite file.
type Store struct {
	db      *sql.DB
	path    string
	log     *logger.Logger
	retrier *retry.Retrier
}

var _ roster.Store = (*Store)(nil)

// NewStore opens (creating if needed) the database at path.
func NewStore(ctx context.Context, path string, log *logger.Logger) (*Store, error) {
	if path == "" {
		path = "gradebook.db"
	}
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("sqlite: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: create schema: %w", err)
		}
	}
	log = log.With(logger.Component("sqlite"), logger.Path(path))
	retrier := retry.New(
		retry.WithMaxAttempts(busyAttempts),
		retry.WithInitialDelay(busyDelay),
		retry.WithJitter(busyJitter),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.Warn("database busy, retrying", logger.Int("attempt", attempt), logger.Latency(delay), logger.Err(err))
		}),
	)
	return &Store{
		db:      db,
		path:    path,
		log:     log,
		retrier: retrier,
	}, nil
}

// Location returns the database path.
func (s *Store) Location() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces every stored student with records, preserving their order.
// A locked database is retried with backoff.
func (s *Store) Save(ctx context.Context, records []student.Record) error {
	return s.retrier.Do(ctx, func(ctx context.Context) error {
		return markBusy(s.save(ctx, records))
	})
}

func (s *Store) save(ctx context.Context, records []student.Record) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return fmt.Errorf("sqlite: clear students: %w", err)
	}
	for i, rec := range records {
		grades, err := json.Marshal(rec.Grades)
		if err != nil {
			return fmt.Errorf("sqlite: encode grades for %d: %w", rec.RollNumber, err)
		}
		// Same roll number twice: the later record wins, the earlier position stays.
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students(position, roll_number, name, grades) VALUES(?,?,?,?)
			 ON CONFLICT(roll_number) DO UPDATE SET name=excluded.name, grades=excluded.grades`,
			i, rec.RollNumber, rec.Name, string(grades)); err != nil {
			return fmt.Errorf("sqlite: insert %d: %w", rec.RollNumber, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot(id, saved_at, count) VALUES(1,?,?)
		 ON CONFLICT(id) DO UPDATE SET saved_at=excluded.saved_at, count=excluded.count`,
		time.Now().UTC().Format(time.RFC3339Nano), len(records)); err != nil {
		return fmt.Errorf("sqlite: mark snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}

	s.log.Info("roster saved", logger.Count(len(records)))
	return nil
}

// Load returns all stored students in saved order.
// A database that was never saved to yields ErrSnapshotNotFound.
func (s *Store) Load(ctx context.Context) ([]student.Record, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshot WHERE id = 1`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: %s: %w", s.path, shared.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: read snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT roll_number, name, grades FROM students ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]student.Record, 0)
	for rows.Next() {
		var (
			rec    student.Record
			grades string
		)
		if err := rows.Scan(&rec.RollNumber, &rec.Name, &grades); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(grades), &rec.Grades); err != nil {
			return nil, fmt.Errorf("sqlite: grades of %d: %w: %w", rec.RollNumber, shared.ErrSnapshotCorrupt, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate: %w", err)
	}

	s.log.Info("roster loaded", logger.Count(len(records)), logger.String("saved_at", savedAt))
	return records, nil
}

// markBusy flags lock contention as retryable.
func markBusy(err error) error {
	var sqlErr *sqlitedrv.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return retry.Retryable(err)
		}
	}
	return err
}
