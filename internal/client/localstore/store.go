// Package localstore is the client's persistent key/value storage. It plays
// the part a browser's localStorage plays for a web page: every client
// process opened on the same file sees the same keys, and a Watcher tells a
// process about changes made by the others.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/eventhub/internal/client/localstore/migrations"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema with the sqlite3 dialect.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Store is a SQLite-backed string map. known mirrors the values this process
// last wrote or observed; the Watcher diffs the file against it, so writes
// made through the Store itself never come back as events.
type Store struct {
	db   *sql.DB
	path string

	mu    sync.Mutex
	known map[string]string
}

func dsn(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}

// Open opens (creating if needed) the storage file at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage migrations: %w", err)
	}

	s := &Store{db: db, path: path}
	known, err := listItems(ctx, s.db)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.known = known
	return s, nil
}

// Path returns the storage file location.
func (s *Store) Path() string { return s.path }

// Get returns the value under key and whether it exists.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM items WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set item[%s]: %w", key, err)
	}
	s.known[key] = value
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove item[%s]: %w", key, err)
	}
	delete(s.known, key)
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	s.known = map[string]string{}
	return nil
}

func (s *Store) List(ctx context.Context) (map[string]string, error) {
	return listItems(ctx, s.db)
}

func listItems(ctx context.Context, q dbx.DBTX) (map[string]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT key, value FROM items`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}

	return result, nil
}

// changes reloads the file and returns what differs from known, updating
// known to the new contents.
func (s *Store) changes(ctx context.Context) ([]StorageEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := listItems(ctx, s.db)
	if err != nil {
		return nil, err
	}

	events := diff(s.known, current)
	s.known = current
	return events, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
