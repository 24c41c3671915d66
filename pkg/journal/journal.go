// Package journal keeps a local SQLite log of messages this component has
// emitted and consumed. It exists for the operator: "what did I send, and
// when" survives across sessions even though the message files themselves
// are transient.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SchemaDDL defines the journal's SQLite schema.
const SchemaDDL = `
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY,
    direction TEXT NOT NULL,    -- 'emit' or 'consume'
    channel TEXT NOT NULL,
    filename TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Direction values for journal entries.
const (
	DirectionEmit    = "emit"
	DirectionConsume = "consume"
)

// Entry is one journaled message event.
type Entry struct {
	ID        int64
	Direction string
	Channel   string
	Filename  string
	CreatedAt time.Time
}

// Journal is an open handle on the journal database.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if necessary) the journal database at path and
// ensures the schema exists. The parent directory is created if missing.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(SchemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database handle. Safe to call on a nil journal.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// RecordEmit logs an emitted message.
func (j *Journal) RecordEmit(ctx context.Context, channel, filename string) error {
	return j.record(ctx, DirectionEmit, channel, filename)
}

// RecordConsume logs a consumed inbox message.
func (j *Journal) RecordConsume(ctx context.Context, channel, filename string) error {
	return j.record(ctx, DirectionConsume, channel, filename)
}

func (j *Journal) record(ctx context.Context, direction, channel, filename string) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO messages (direction, channel, filename) VALUES (?, ?, ?)`,
		direction, channel, filename,
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", direction, err)
	}
	return nil
}

// Recent returns the most recent entries, newest first. limit <= 0 means
// a default of 20.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, direction, channel, filename, created_at
		 FROM messages ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Direction, &e.Channel, &e.Filename, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal rows: %w", err)
	}
	return entries, nil
}
