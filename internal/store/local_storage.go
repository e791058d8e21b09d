package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// LocalStorage is a string key/value store shared with the meeting-room page.
// It mirrors the browser localStorage contract: SetItem overwrites, GetItem on
// a missing key reports ok=false.
type LocalStorage struct {
	Path string

	db *sql.DB
}

// OpenLocalStorage opens (creating if needed) the SQLite file at path.
func OpenLocalStorage(ctx context.Context, path string) (*LocalStorage, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("open local storage: empty path")
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the meeting-room reader run while this process writes;
	// busy_timeout avoids "database is locked" between the two.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateLocalStorage(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &LocalStorage{Path: path, db: db}, nil
}

func migrateLocalStorage(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS local_storage (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *LocalStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *LocalStorage) SetItem(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("set item: empty key")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO local_storage(key, value, updated_at_unixms) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at_unixms = excluded.updated_at_unixms`,
		key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}
	return v, true, nil
}

func (s *LocalStorage) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove item %q: %w", key, err)
	}
	return nil
}

// Keys returns stored keys in lexical order.
func (s *LocalStorage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM local_storage ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
