// internal/report/report.go
//
// Persistent store for self-test reports.
// Each run keeps its aggregate statistics in selftest_runs and one row per
// secret word in selftest_trials. Solver sessions themselves are never
// persisted.

package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordpicker/internal/selftest"
	"github.com/robalobadob/wordpicker/internal/solver"
)

// ErrNotFound is returned for unknown run IDs.
var ErrNotFound = errors.New("report: run not found")

// Run is a stored self-test run.
type Run struct {
	ID        int64            `json:"id"`
	StartedAt time.Time        `json:"startedAt"`
	Options   solver.Options   `json:"options"`
	Summary   selftest.Summary `json:"summary"`
}

// Store persists self-test reports in SQLite.
type Store struct{ db *sql.DB }

// Open opens the database at dsn and applies pending migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save stores a report and its trials in one transaction and returns the
// new run ID.
func (s *Store) Save(ctx context.Context, r *selftest.Report) (int64, error) {
	sum := r.Summarize()
	opts, err := json.Marshal(r.Options)
	if err != nil {
		return 0, fmt.Errorf("encode options: %w", err)
	}
	hist, err := json.Marshal(sum.Histogram)
	if err != nil {
		return 0, fmt.Errorf("encode histogram: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO selftest_runs
            (started_at, elapsed_ms, scoring, max_rounds, words, solved, failed,
             mean, stdev, low, high, options, histogram)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Started.UTC().Format(time.RFC3339Nano), sum.ElapsedMs, sum.Scoring, sum.MaxRounds,
		sum.Words, sum.Solved, sum.Failed, sum.Mean, sum.Stdev, sum.Min, sum.Max,
		string(opts), string(hist),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO selftest_trials (run_id, position, word, rounds, solved, guesses, error)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for i, t := range r.Trials {
		if _, err := stmt.ExecContext(ctx, id, i, t.Word, t.Rounds, t.Solved,
			strings.Join(t.Guesses, " "), t.Err); err != nil {
			return 0, fmt.Errorf("insert trial %s: %w", t.Word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

// Recent returns the latest runs, newest first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, started_at, elapsed_ms, scoring, max_rounds, words, solved, failed,
               mean, stdev, low, high, options, histogram
        FROM selftest_runs
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Get returns one run.
func (s *Store) Get(ctx context.Context, id int64) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, started_at, elapsed_ms, scoring, max_rounds, words, solved, failed,
               mean, stdev, low, high, options, histogram
        FROM selftest_runs WHERE id=?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return run, err
}

// Trials returns the per-word results of a run in universe order.
func (s *Store) Trials(ctx context.Context, id int64) ([]selftest.Trial, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT word, rounds, solved, guesses, error
        FROM selftest_trials
        WHERE run_id=?
        ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []selftest.Trial
	for rows.Next() {
		var (
			t       selftest.Trial
			guesses string
		)
		if err := rows.Scan(&t.Word, &t.Rounds, &t.Solved, &guesses, &t.Err); err != nil {
			return nil, err
		}
		t.Guesses = strings.Fields(guesses)
		out = append(out, t)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run        Run
		started    string
		opts, hist string
		sum        = &run.Summary
	)
	if err := sc.Scan(&run.ID, &started, &sum.ElapsedMs, &sum.Scoring, &sum.MaxRounds,
		&sum.Words, &sum.Solved, &sum.Failed, &sum.Mean, &sum.Stdev, &sum.Min, &sum.Max,
		&opts, &hist); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = t
	if err := json.Unmarshal([]byte(opts), &run.Options); err != nil {
		return Run{}, fmt.Errorf("decode options: %w", err)
	}
	if err := json.Unmarshal([]byte(hist), &sum.Histogram); err != nil {
		return Run{}, fmt.Errorf("decode histogram: %w", err)
	}
	return run, nil
}
