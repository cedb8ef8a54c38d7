package linestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLStore keeps resources as ordered rows in a SQLite database.
type SQLStore struct {
	db *sqlx.DB
}

// OpenSQL opens or creates the SQLite database and applies migrations.
// Use ":memory:" for a throwaway store.
func OpenSQL(path string) (*SQLStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer; one connection also keeps :memory: stable.
	db.SetMaxOpenConns(1)
	store := &SQLStore{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS resources (
			name TEXT PRIMARY KEY,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS resource_lines (
			name TEXT NOT NULL,
			seq INTEGER NOT NULL,
			line TEXT NOT NULL,
			PRIMARY KEY (name, seq)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReadLines returns the stored lines in write order.
func (s *SQLStore) ReadLines(ctx context.Context, name string) ([]string, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM resources WHERE name = ?`, name); err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", name, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("resource %s: %w", name, ErrNotExist)
	}
	lines := []string{}
	if err := s.db.SelectContext(ctx, &lines, `SELECT line FROM resource_lines WHERE name = ? ORDER BY seq ASC`, name); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return lines, nil
}

// WriteLines replaces the resource rows in one transaction.
func (s *SQLStore) WriteLines(ctx context.Context, name string, lines []string) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM resource_lines WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to clear %s: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO resources (name, updated_at) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
		name, time.Now().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to touch %s: %w", name, err)
	}

	if len(lines) > 0 {
		stmt, perr := tx.PreparexContext(ctx, `INSERT INTO resource_lines (name, seq, line) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, line := range lines {
			if _, err = stmt.ExecContext(ctx, name, i, line); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}
