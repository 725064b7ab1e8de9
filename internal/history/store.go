// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists batch run reports in a SQLite database so past
// renames stay auditable after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sqodarbaskoro/Name2Pdf/pkg/types"
)

const dbFile = "name2pdf.db"

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at
// historyDir/name2pdf.db, creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_dir TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			in_place INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			renamed INTEGER NOT NULL,
			copied INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			source TEXT NOT NULL,
			dest TEXT,
			title TEXT,
			status TEXT NOT NULL,
			error_kind TEXT,
			error_msg TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun persists a finished run and its outcomes in one transaction,
// returning the run's assigned ID.
func (s *Store) RecordRun(ctx context.Context, report types.RunReport) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (input_dir, output_dir, in_place, started_at, finished_at,
			renamed, copied, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.InputDir, report.OutputDir, boolToInt(report.InPlace),
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Summary.Renamed, report.Summary.Copied,
		report.Summary.Skipped, report.Summary.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, o := range report.Outcomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, position, source, dest, title, status, error_kind, error_msg)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, o.Source, o.Dest, o.Title, string(o.Status),
			string(o.ErrorKind), o.ErrorMsg,
		); err != nil {
			return 0, fmt.Errorf("inserting outcome %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Run pairs a stored report with its database ID.
type Run struct {
	ID     int64           `json:"id" yaml:"id"`
	Report types.RunReport `json:"report" yaml:"report"`
}

// ListRuns returns the most recent runs, newest first, without their
// per-file outcomes. A limit of zero uses the store default.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_dir, output_dir, in_place, started_at, finished_at,
			renamed, copied, skipped, failed
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its outcomes in processing order.
func (s *Store) GetRun(ctx context.Context, id int64) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input_dir, output_dir, in_place, started_at, finished_at,
			renamed, copied, skipped, failed
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, dest, title, status, error_kind, error_msg
		FROM outcomes WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return Run{}, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o types.Outcome
		var status, kind string
		if err := rows.Scan(&o.Source, &o.Dest, &o.Title, &status, &kind, &o.ErrorMsg); err != nil {
			return Run{}, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Status = types.Status(status)
		o.ErrorKind = types.ErrorKind(kind)
		run.Report.Outcomes = append(run.Report.Outcomes, o)
	}
	return run, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run                   Run
		inPlace               int
		startedAt, finishedAt string
	)
	err := sc.Scan(&run.ID, &run.Report.InputDir, &run.Report.OutputDir, &inPlace,
		&startedAt, &finishedAt,
		&run.Report.Summary.Renamed, &run.Report.Summary.Copied,
		&run.Report.Summary.Skipped, &run.Report.Summary.Failed)
	if err != nil {
		return Run{}, err
	}

	run.Report.InPlace = inPlace != 0
	if t, perr := time.Parse(time.RFC3339Nano, startedAt); perr == nil {
		run.Report.StartedAt = t
	}
	if t, perr := time.Parse(time.RFC3339Nano, finishedAt); perr == nil {
		run.Report.FinishedAt = t
	}
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
