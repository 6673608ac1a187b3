package reportdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
	_ "modernc.org/sqlite"

	"tunedupe/internal/report"
)

// ErrLocked is returned when another process holds the archive lock.
var ErrLocked = errors.New("report archive is locked by another process")

// Store is a report archive. It implements report.Sink.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock

	runID string
	seq   int
}

// Run is one archived scan.
type Run struct {
	ID       string         `json:"id"`
	Library  string         `json:"library"`
	Cutoff   int            `json:"cutoff"`
	Started  time.Time      `json:"started_at"`
	Finished time.Time      `json:"finished_at"`
	Blocks   int            `json:"blocks"`
	Valid    int            `json:"valid"`
	Invalid  int            `json:"invalid"`
	Pairs    int            `json:"pairs"`
	Reasons  map[string]int `json:"invalid_reasons,omitempty"`
}

var _ report.Sink = (*Store)(nil)

// Open acquires the archive lock and opens (creating if needed) the database
// at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("report archive path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	if err := checkDirectoryAccess(dir); err != nil {
		return nil, err
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire archive lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database and releases the archive lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		err = errors.Join(err, s.lock.Unlock())
	}
	s.db = nil
	return err
}

func checkDirectoryAccess(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat archive directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("archive directory %s is not a directory", dir)
	}
	if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("archive directory %s: insufficient permissions: %w", dir, err)
	}
	return nil
}

// Begin records a new run.
func (s *Store) Begin(ctx context.Context, info report.RunInfo) error {
	started := info.Started
	if started.IsZero() {
		started = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, library, cutoff, started_at) VALUES (?, ?, ?, ?)`,
		info.RunID,
		info.Library,
		info.Cutoff,
		started.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	s.runID = info.RunID
	s.seq = 0
	return nil
}

// Pair records one reported pair for the current run.
func (s *Store) Pair(ctx context.Context, pair report.Pair) error {
	if s.runID == "" {
		return errors.New("archive pair recorded before run start")
	}
	s.seq++
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pairs (run_id, seq, score, new_path, existing_path, matched) VALUES (?, ?, ?, ?, ?, ?)`,
		s.runID,
		s.seq,
		pair.Score,
		pair.NewPath,
		pair.ExistingPath,
		strings.Join(pair.Matched, ","),
	)
	if err != nil {
		return fmt.Errorf("insert pair: %w", err)
	}
	return nil
}

// End stores the run summary.
func (s *Store) End(ctx context.Context, summary report.Summary) error {
	if s.runID == "" {
		return errors.New("archive run finished before it started")
	}
	finished := summary.Finished
	if finished.IsZero() {
		finished = time.Now()
	}
	var reasons sql.NullString
	if len(summary.Reasons) > 0 {
		data, err := json.Marshal(summary.Reasons)
		if err != nil {
			return fmt.Errorf("marshal reasons: %w", err)
		}
		reasons = sql.NullString{String: string(data), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, lines = ?, blocks = ?, valid = ?, invalid = ?, pairs = ?, reasons_json = ?
        WHERE id = ?`,
		finished.UTC().Format(time.RFC3339Nano),
		summary.Lines,
		summary.Blocks,
		summary.Valid,
		summary.Invalid,
		summary.Pairs,
		reasons,
		s.runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	s.runID = ""
	return nil
}

// Runs lists archived runs, newest first. A limit <= 0 returns all runs.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, library, cutoff, started_at, finished_at, blocks, valid, invalid, pairs, reasons_json
        FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			started  string
			finished sql.NullString
			reasons  sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Library, &run.Cutoff, &started, &finished,
			&run.Blocks, &run.Valid, &run.Invalid, &run.Pairs, &reasons); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Started = parseTime(started)
		if finished.Valid {
			run.Finished = parseTime(finished.String)
		}
		if reasons.Valid && reasons.String != "" {
			if err := json.Unmarshal([]byte(reasons.String), &run.Reasons); err != nil {
				return nil, fmt.Errorf("decode reasons for run %s: %w", run.ID, err)
			}
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Pairs returns the pairs recorded for runID in report order.
func (s *Store) Pairs(ctx context.Context, runID string) ([]report.Pair, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT score, new_path, existing_path, matched FROM pairs WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	defer rows.Close()

	var pairs []report.Pair
	for rows.Next() {
		var (
			pair    report.Pair
			matched string
		)
		if err := rows.Scan(&pair.Score, &pair.NewPath, &pair.ExistingPath, &matched); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		if matched != "" {
			pair.Matched = strings.Split(matched, ",")
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pairs: %w", err)
	}
	return pairs, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
