package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// Store is a key-value blob store over sqlite. Every collection is one
// JSON document under one key, written back wholesale on every change.
// Mutating methods hold mu across their whole read-modify-write, so
// concurrent requests in one process cannot lose updates; concurrent
// processes on the same file are still last-writer-wins per key.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (creating if needed) the blob store at dbPath.
// Use ":memory:" for an ephemeral store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows one writer; a single pooled connection also keeps
	// :memory: stores on one database instead of one per connection.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sequences (
		name TEXT PRIMARY KEY,
		next INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// getRaw returns the serialized value for key, reporting whether it exists.
func (s *Store) getRaw(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// setRaw overwrites the value under key unconditionally.
func (s *Store) setRaw(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?`,
		key, string(value), string(value),
	)
	return err
}

// get returns the value stored under key, or fallback when the key is
// missing, holds JSON null, or cannot be parsed. A read failure is
// returned as an error: callers that write the value back must not
// mistake an unreadable store for an empty collection.
func get[T any](s *Store, key string, fallback T) (T, error) {
	raw, ok, err := s.getRaw(key)
	if err != nil {
		return fallback, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || string(raw) == "null" {
		return fallback, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("blob unparseable, using fallback", "key", key, "error", err)
		return fallback, nil
	}
	return v, nil
}

// Get is the lenient read for render paths: missing, corrupt, and
// unreadable blobs all collapse to fallback.
func Get[T any](s *Store, key string, fallback T) T {
	v, err := get(s, key, fallback)
	if err != nil {
		slog.Warn("blob read failed", "key", key, "error", err)
		return fallback
	}
	return v
}

// set serializes value and writes it under key. Callers hold mu.
func set[T any](s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.setRaw(key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Set serializes value and writes it under key, replacing any prior value.
func Set[T any](s *Store, key string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return set(s, key, value)
}

// Delete removes the value under key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM blobs WHERE key = ?`, key)
	return err
}

// Keys returns all stored keys beginning with prefix, sorted.
func (s *Store) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT key FROM blobs WHERE key LIKE ? ORDER BY key`, prefix+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, rows.Err()
}

// NextSeq returns the next value of the named monotonic counter and
// advances it. Counters are persisted independently of collection sizes,
// so ids are never reissued after deletions.
func (s *Store) NextSeq(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextSeq(name)
}

// nextSeq is NextSeq without the lock. Callers hold mu.
func (s *Store) nextSeq(name string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRow(`SELECT next FROM sequences WHERE name = ?`, name).Scan(&next)
	switch {
	case err == sql.ErrNoRows:
		next = 1
		if _, err := tx.Exec(`INSERT INTO sequences (name, next) VALUES (?, ?)`, name, next+1); err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		if _, err := tx.Exec(`UPDATE sequences SET next = ? WHERE name = ?`, next+1, name); err != nil {
			return 0, err
		}
	}
	return next, tx.Commit()
}

// BumpSeq raises the named counter to at least floor+1 without returning a
// value. Used when seeding collections that already contain numbered ids.
func (s *Store) BumpSeq(name string, floor int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRow(`SELECT next FROM sequences WHERE name = ?`, name).Scan(&next)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(`INSERT INTO sequences (name, next) VALUES (?, ?)`, name, floor+1); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if next <= floor {
			if _, err := tx.Exec(`UPDATE sequences SET next = ? WHERE name = ?`, floor+1, name); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
