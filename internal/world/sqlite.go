package world

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// sqliteSchema holds the whole document as one row. The CHECK keeps it
// that way: there is exactly one world.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS world_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	doc TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// SQLiteStore persists the document as a single row in SQLite. Same
// contract as FileStore; the document is still read and written whole.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the schema if needed and returns the store.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(context.Background(), sqliteSchema); err != nil {
		return nil, fmt.Errorf("creating world_state schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads the document row. An empty table is initialised from
// Seed() and the seed is written back before returning.
func (s *SQLiteStore) Load() (*Document, error) {
	var raw string
	err := s.db.QueryRowContext(context.Background(),
		`SELECT doc FROM world_state WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		doc := Seed()
		if saveErr := s.Save(doc); saveErr != nil {
			return nil, fmt.Errorf("initialising state row: %w", saveErr)
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state row: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parsing state row: %w", err)
	}
	return &doc, nil
}

// Save upserts the document row.
func (s *SQLiteStore) Save(doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serialising state: %w", err)
	}

	_, err = s.db.ExecContext(context.Background(),
		`INSERT INTO world_state (id, doc, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing state row: %w", err)
	}
	return nil
}
