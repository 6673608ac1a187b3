package reportdb

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// archiveVersion is stored in the SQLite user_version header. Zero means the
// file has never been initialized as an archive.
const archiveVersion = 1

// ErrSchemaMismatch indicates the file is not an archive this build can write.
var ErrSchemaMismatch = errors.New("report archive schema mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read archive version: %w", err)
	}
	switch version {
	case archiveVersion:
		return nil
	case 0:
		return s.createTables(ctx)
	default:
		return fmt.Errorf("%w: %s has version %d, expected %d (move it aside to start a new archive)",
			ErrSchemaMismatch, s.path, version, archiveVersion)
	}
}

// createTables initializes an empty database. A file that already holds
// tables is someone else's data and is left untouched.
func (s *Store) createTables(ctx context.Context) error {
	var tables int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table'",
	).Scan(&tables); err != nil {
		return fmt.Errorf("inspect archive tables: %w", err)
	}
	if tables > 0 {
		return fmt.Errorf("%w: %s already contains tables that are not a report archive", ErrSchemaMismatch, s.path)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive setup: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create archive tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", archiveVersion)); err != nil {
		return fmt.Errorf("stamp archive version: %w", err)
	}
	return tx.Commit()
}
