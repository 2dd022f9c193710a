// Package store persists the extracted tag index between sessions, so the
// initial project walk can skip files that have not changed since the last
// run. The store is a cache: losing it only costs a full re-extraction.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = 1

// TagRecord is the persisted form of a tag: spans only, no file ID, because
// IDs are minted fresh every session.
type TagRecord struct {
	Name  string
	Line  uint32
	Start uint32
	End   uint32
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`
        PRAGMA foreign_keys = ON;
        PRAGMA journal_mode = WAL;
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if version == schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queries := []string{
		// One row per indexed file; last_modified detects staleness.
		`CREATE TABLE IF NOT EXISTS files (
            path TEXT PRIMARY KEY,
            last_modified INTEGER NOT NULL
        )`,

		// Tags are keyed by name within a file; global uniqueness is the
		// registry's business, the store just remembers what a file declared.
		`CREATE TABLE IF NOT EXISTS tags (
            path TEXT NOT NULL,
            name TEXT NOT NULL,
            line INTEGER NOT NULL,
            start INTEGER NOT NULL,
            end INTEGER NOT NULL,
            FOREIGN KEY (path) REFERENCES files(path) ON DELETE CASCADE,
            PRIMARY KEY (path, name, line)
        )`,

		`CREATE INDEX IF NOT EXISTS idx_tags_path ON tags(path)`,

		// Session metadata, e.g. the configuration fingerprint the cached
		// tag sets were extracted under.
		`CREATE TABLE IF NOT EXISTS meta (
            name TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )`,
	}
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}

	return tx.Commit()
}

// Modified returns the recorded modification time for path.
func (s *Store) Modified(path string) (int64, bool, error) {
	var modified int64
	err := s.db.QueryRow(
		"SELECT last_modified FROM files WHERE path = ?", path,
	).Scan(&modified)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query file: %w", err)
	}
	return modified, true, nil
}

// Tags returns the tags recorded for path.
func (s *Store) Tags(path string) ([]TagRecord, error) {
	rows, err := s.db.Query(
		"SELECT name, line, start, end FROM tags WHERE path = ? ORDER BY line, start", path,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var records []TagRecord
	for rows.Next() {
		var rec TagRecord
		if err := rows.Scan(&rec.Name, &rec.Line, &rec.Start, &rec.End); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PutFile replaces the record for path: new modification time, new tag set.
func (s *Store) PutFile(path string, modified int64, records []TagRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO files (path, last_modified) VALUES (?, ?)
         ON CONFLICT(path) DO UPDATE SET last_modified = excluded.last_modified`,
		path, modified,
	); err != nil {
		return fmt.Errorf("failed to upsert file: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM tags WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete stale tags: %w", err)
	}

	for _, rec := range records {
		if _, err := tx.Exec(
			"INSERT INTO tags (path, name, line, start, end) VALUES (?, ?, ?, ?, ?)",
			path, rec.Name, rec.Line, rec.Start, rec.End,
		); err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}

	return tx.Commit()
}

// Fingerprint returns the recorded configuration fingerprint, "" when none
// has been stored yet.
func (s *Store) Fingerprint() (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE name = 'config'").Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query fingerprint: %w", err)
	}
	return value, nil
}

// SetFingerprint records the configuration fingerprint.
func (s *Store) SetFingerprint(value string) error {
	if _, err := s.db.Exec(
		`INSERT INTO meta (name, value) VALUES ('config', ?)
         ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		value,
	); err != nil {
		return fmt.Errorf("failed to record fingerprint: %w", err)
	}
	return nil
}

// Clear drops all recorded files and tags. Metadata is kept.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM files"); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
