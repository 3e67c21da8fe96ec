// Package store keeps a history of analyses in a local SQLite database.
package store

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

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("history entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	input      TEXT    NOT NULL,
	canonical  TEXT    NOT NULL,
	kind       TEXT    NOT NULL,
	shanten    INTEGER NOT NULL DEFAULT 0,
	waits      INTEGER NOT NULL DEFAULT 0,
	payload    TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS analyses_created_at ON analyses (created_at);
`

// Record is one stored analysis. Payload holds the JSON-encoded outcome.
type Record struct {
	ID        int64
	CreatedAt time.Time
	Input     []string // tile labels as entered
	Canonical string
	Kind      string
	Shanten   int
	Waits     int // distinct winning tiles across scenarios
	Payload   json.RawMessage
}

// Store is an open history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts rec and returns its id. A zero CreatedAt is set to now.
func (s *Store) Save(ctx context.Context, rec Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if len(rec.Payload) == 0 {
		rec.Payload = json.RawMessage("{}")
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (created_at, input, canonical, kind, shanten, waits, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.CreatedAt.UnixMilli(), strings.Join(rec.Input, " "), rec.Canonical, rec.Kind, rec.Shanten, rec.Waits, string(rec.Payload))
	if err != nil {
		return 0, fmt.Errorf("inserting analysis: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading analysis id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, input, canonical, kind, shanten, waits, payload
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return records, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, input, canonical, kind, shanten, waits, payload
		FROM analyses
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec     Record
		created int64
		input   string
		payload string
	)
	if err := sc.Scan(&rec.ID, &created, &input, &rec.Canonical, &rec.Kind, &rec.Shanten, &rec.Waits, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scanning analysis: %w", err)
	}

	rec.CreatedAt = time.UnixMilli(created)
	rec.Input = strings.Fields(input)
	rec.Payload = json.RawMessage(payload)
	return rec, nil
}
