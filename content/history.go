// ABOUTME: SQLite-backed revision log recording every published content payload per route.
// ABOUTME: Revisions carry monotonic ULID identifiers and are queryable newest-first.
package content

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
)

// Revision is one published snapshot of a route's content.
type Revision struct {
	ID          string
	Route       string
	Payload     string // the serialized block collection as published
	PublishedAt time.Time
}

// History is a SQLite-backed log of publishes. It is an audit trail, not the
// source of truth: the content files the Store writes remain authoritative.
type History struct {
	db *sql.DB
}

// OpenHistory opens or creates the revision database at the given path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS revisions (
			revision_id TEXT PRIMARY KEY,
			route TEXT NOT NULL,
			payload TEXT NOT NULL,
			published_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_revisions_route ON revisions(route, revision_id DESC);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores a published collection for a route and returns the new
// revision id.
func (h *History) Record(route string, c block.Collection) (string, error) {
	payload, err := c.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshal revision payload: %w", err)
	}

	now := time.Now().UTC()
	id := ulid.Make().String()

	_, err = h.db.Exec(
		`INSERT INTO revisions (revision_id, route, payload, published_at) VALUES (?, ?, ?, ?)`,
		id, route, string(payload), now.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert revision: %w", err)
	}
	return id, nil
}

// List returns the most recent revisions for a route, newest first. ULIDs
// sort lexicographically by creation time, so ordering by id is ordering by
// publish time.
func (h *History) List(route string, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(
		`SELECT revision_id, route, payload, published_at
		 FROM revisions WHERE route = ? ORDER BY revision_id DESC LIMIT ?`,
		route, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var revisions []Revision
	for rows.Next() {
		var r Revision
		var publishedAt string
		if err := rows.Scan(&r.ID, &r.Route, &r.Payload, &publishedAt); err != nil {
			return nil, fmt.Errorf("scan revision row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, publishedAt); err == nil {
			r.PublishedAt = ts
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

// Get returns a single revision by id.
func (h *History) Get(id string) (Revision, bool, error) {
	var r Revision
	var publishedAt string
	err := h.db.QueryRow(
		`SELECT revision_id, route, payload, published_at FROM revisions WHERE revision_id = ?`,
		id,
	).Scan(&r.ID, &r.Route, &r.Payload, &publishedAt)
	if err == sql.ErrNoRows {
		return Revision{}, false, nil
	}
	if err != nil {
		return Revision{}, false, fmt.Errorf("query revision %s: %w", id, err)
	}
	if ts, err := time.Parse(time.RFC3339, publishedAt); err == nil {
		r.PublishedAt = ts
	}
	return r, true, nil
}
