// Package journal persists the assistant's conversation history.
//
// Every message, tool call, and nudge lands in a SQLite table with an
// FTS5 index, so "what did we decide about the deck project" is a
// search away months later. Old entries move to an archive table
// instead of being deleted; the journal is the owner's record.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeFormat is how SQLite's datetime('now') renders timestamps.
const timeFormat = "2006-01-02 15:04:05"

// ─── Types ───────────────────────────────────────────────────────────────────

// Entry kinds. Everything the assistant hears, says, or does lands in
// the journal under one of these.
const (
	KindUserMessage      = "user_message"
	KindAssistantMessage = "assistant_message"
	KindToolCall         = "tool_call"
	KindToolResult       = "tool_result"
	KindNudge            = "nudge"
)

// Entry is one journal row.
type Entry struct {
	ID      int64  `json:"id"`
	TS      string `json:"ts"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
	Meta    string `json:"meta,omitempty"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds journal store configuration.
type Config struct {
	DataDir          string
	MaxSearchResults int
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the conversation journal backed by SQLite + FTS5.
type Store struct {
	db        *sql.DB
	maxSearch int
}

// New opens the journal database under cfg.DataDir, creating the
// directory and running migrations as needed.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "journal.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	maxSearch := cfg.MaxSearchResults
	if maxSearch <= 0 {
		maxSearch = 20
	}

	s := &Store{db: db, maxSearch: maxSearch}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			ts      TEXT NOT NULL DEFAULT (datetime('now')),
			kind    TEXT NOT NULL,
			content TEXT NOT NULL,
			meta    TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_entries_ts   ON entries(ts DESC);
		CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind);

		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			content,
			kind,
			content='entries',
			content_rowid='id'
		);

		CREATE TABLE IF NOT EXISTS archive (
			id          INTEGER PRIMARY KEY,
			ts          TEXT NOT NULL,
			kind        TEXT NOT NULL,
			content     TEXT NOT NULL,
			meta        TEXT,
			archived_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_archive_ts ON archive(ts);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Create FTS triggers (idempotent). Entries are append-only until
	// archival, so insert and delete triggers cover every path.
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='entries_fts_insert'",
	).Scan(&name)

	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER entries_fts_insert AFTER INSERT ON entries BEGIN
				INSERT INTO entries_fts(rowid, content, kind)
				VALUES (new.id, new.content, new.kind);
			END;

			CREATE TRIGGER entries_fts_delete AFTER DELETE ON entries BEGIN
				INSERT INTO entries_fts(entries_fts, rowid, content, kind)
				VALUES ('delete', old.id, old.content, old.kind);
			END;
		`
		if _, err := s.db.Exec(triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return nil
}

// ─── Append / Read ───────────────────────────────────────────────────────────

// Append records one entry. The timestamp is set by the database.
func (s *Store) Append(kind, content, meta string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO entries (kind, content, meta) VALUES (?, ?, ?)`,
		kind, content, nullableString(meta),
	)
	if err != nil {
		return 0, fmt.Errorf("journal: append: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the newest entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, ts, kind, content, ifnull(meta, '') FROM entries ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// LastEntryTime returns the timestamp of the newest entry, or the zero
// time when the journal is empty.
func (s *Store) LastEntryTime() (time.Time, error) {
	var ts string
	err := s.db.QueryRow(`SELECT ts FROM entries ORDER BY id DESC LIMIT 1`).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("journal: last entry: %w", err)
	}

	t, err := time.Parse(timeFormat, ts)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

// ─── Search (FTS5) ───────────────────────────────────────────────────────────

// Search performs full-text search across entry content. An empty or
// whitespace-only query falls back to recent entries.
func (s *Store) Search(query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > s.maxSearch {
		limit = s.maxSearch
	}

	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return s.Recent(limit)
	}

	rows, err := s.db.Query(`
		SELECT e.id, e.ts, e.kind, e.content, ifnull(e.meta, '')
		FROM entries_fts fts
		JOIN entries e ON e.id = fts.rowid
		WHERE entries_fts MATCH ?
		ORDER BY fts.rank
		LIMIT ?`,
		ftsQuery, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// ─── Archive ─────────────────────────────────────────────────────────────────

// ArchiveBefore moves up to limit entries older than cutoff into the
// archive table, oldest first, and returns how many moved. The move is
// a single transaction; a failure leaves the journal untouched.
func (s *Store) ArchiveBefore(cutoff time.Time, limit int) (int, error) {
	if limit <= 0 {
		limit = 200
	}
	cut := cutoff.UTC().Format(timeFormat)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("journal: archive begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO archive (id, ts, kind, content, meta)
		SELECT id, ts, kind, content, meta FROM entries
		WHERE datetime(ts) < datetime(?)
		ORDER BY id
		LIMIT ?`,
		cut, limit,
	)
	if err != nil {
		return 0, fmt.Errorf("journal: archive copy: %w", err)
	}
	moved, _ := res.RowsAffected()
	if moved == 0 {
		return 0, nil
	}

	// Same predicate inside the same transaction selects the same rows.
	if _, err := tx.Exec(`
		DELETE FROM entries WHERE id IN (
			SELECT id FROM entries
			WHERE datetime(ts) < datetime(?)
			ORDER BY id
			LIMIT ?
		)`,
		cut, limit,
	); err != nil {
		return 0, fmt.Errorf("journal: archive delete: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("journal: archive commit: %w", err)
	}
	return int(moved), nil
}

// ArchivedCount reports how many entries have been moved to the archive.
func (s *Store) ArchivedCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM archive`).Scan(&n); err != nil {
		return 0, fmt.Errorf("journal: archived count: %w", err)
	}
	return n, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var results []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.TS, &e.Kind, &e.Content, &e.Meta); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// sanitizeFTS wraps each term in quotes so user input cannot break the
// FTS5 query grammar.
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.Trim(w, `"`)
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
