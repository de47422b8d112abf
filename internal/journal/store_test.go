package journal_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HendryAvila/rubberduck/internal/journal"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *journal.Store {
	t.Helper()
	s, err := journal.New(journal.Config{DataDir: t.TempDir(), MaxSearchResults: 20})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// backdate rewrites an entry's timestamp so archival tests don't have
// to wait thirty days.
func backdate(t *testing.T, s *journal.Store, id int64, ts string) {
	t.Helper()
	if _, err := s.DB().Exec(`UPDATE entries SET ts = ? WHERE id = ?`, ts, id); err != nil {
		t.Fatalf("failed to backdate entry %d: %v", id, err)
	}
}

// ─── New / Initialization ───────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := t.TempDir()
	s, err := journal.New(journal.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "journal.db")); err != nil {
		t.Fatalf("journal.db missing: %v", err)
	}
}

func TestNew_IdempotentReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := journal.New(journal.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.Append(journal.KindUserMessage, "what's due today?", ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	s1.Close()

	s2, err := journal.New(journal.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	entries, err := s2.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "what's due today?" {
		t.Errorf("entry did not survive reopen: %+v", entries)
	}
}

// ─── Append / Recent ─────────────────────────────────────────────────────────

func TestAppend_AssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.Append(journal.KindUserMessage, "first", "")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.Append(journal.KindAssistantMessage, "second", "")
	if err != nil {
		t.Fatal(err)
	}
	if id2 <= id1 {
		t.Errorf("ids not increasing: %d then %d", id1, id2)
	}
}

func TestAppend_StoresMeta(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Append(journal.KindToolCall, "query_tasks", `{"filter":"today"}`); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Meta != `{"filter":"today"}` {
		t.Errorf("Meta = %q", entries[0].Meta)
	}
	if entries[0].Kind != journal.KindToolCall {
		t.Errorf("Kind = %q", entries[0].Kind)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	for _, content := range []string{"one", "two", "three"} {
		if _, err := s.Append(journal.KindUserMessage, content, ""); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Content != "three" || entries[2].Content != "one" {
		t.Errorf("wrong order: %q, %q, %q", entries[0].Content, entries[1].Content, entries[2].Content)
	}
}

func TestRecent_RespectsLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.Append(journal.KindUserMessage, "msg", ""); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestRecent_EmptyJournal(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent on empty journal: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

// ─── Search ──────────────────────────────────────────────────────────────────

func TestSearch_MatchesContent(t *testing.T) {
	s := newTestStore(t)
	seed := []string{
		"reviewed the deck build budget",
		"scheduled dentist appointment",
		"waiting on contractor quote for the deck",
	}
	for _, content := range seed {
		if _, err := s.Append(journal.KindUserMessage, content, ""); err != nil {
			t.Fatal(err)
		}
	}

	results, err := s.Search("deck", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 matches, got %d: %+v", len(results), results)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Append(journal.KindUserMessage, "watered the garden", ""); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search("kubernetes", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %d", len(results))
	}
}

func TestSearch_EmptyQueryFallsBackToRecent(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Append(journal.KindUserMessage, "hello", ""); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search("   ", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected fallback to recent, got %d results", len(results))
	}
}

func TestSearch_SpecialCharsDoNotBreakQuery(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Append(journal.KindUserMessage, "budget notes", ""); err != nil {
		t.Fatal(err)
	}

	// Raw parens and operators would be FTS5 syntax errors.
	if _, err := s.Search(`budget AND (notes`, 10); err != nil {
		t.Errorf("sanitized query should not error: %v", err)
	}
}

// ─── LastEntryTime ───────────────────────────────────────────────────────────

func TestLastEntryTime_EmptyJournal(t *testing.T) {
	s := newTestStore(t)

	ts, err := s.LastEntryTime()
	if err != nil {
		t.Fatalf("LastEntryTime: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("expected zero time, got %v", ts)
	}
}

func TestLastEntryTime_ReflectsNewestEntry(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Append(journal.KindUserMessage, "hello", "")
	if err != nil {
		t.Fatal(err)
	}
	backdate(t, s, id, "2026-03-01 09:30:00")

	ts, err := s.LastEntryTime()
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("LastEntryTime = %v, want %v", ts, want)
	}
}

// ─── Archive ─────────────────────────────────────────────────────────────────

func TestArchiveBefore_MovesOldEntries(t *testing.T) {
	s := newTestStore(t)
	old1, _ := s.Append(journal.KindUserMessage, "ancient question", "")
	old2, _ := s.Append(journal.KindAssistantMessage, "ancient answer", "")
	if _, err := s.Append(journal.KindUserMessage, "fresh question", ""); err != nil {
		t.Fatal(err)
	}
	backdate(t, s, old1, "2026-01-01 10:00:00")
	backdate(t, s, old2, "2026-01-01 10:00:05")

	moved, err := s.ArchiveBefore(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 200)
	if err != nil {
		t.Fatalf("ArchiveBefore: %v", err)
	}
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Content != "fresh question" {
		t.Errorf("live entries after archive: %+v", entries)
	}

	archived, err := s.ArchivedCount()
	if err != nil {
		t.Fatal(err)
	}
	if archived != 2 {
		t.Errorf("ArchivedCount = %d, want 2", archived)
	}
}

func TestArchiveBefore_RespectsBatchLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		id, err := s.Append(journal.KindUserMessage, "old", "")
		if err != nil {
			t.Fatal(err)
		}
		backdate(t, s, id, "2026-01-01 10:00:00")
	}
	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	moved, err := s.ArchiveBefore(cutoff, 2)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 2 {
		t.Errorf("first batch moved = %d, want 2", moved)
	}

	moved, err = s.ArchiveBefore(cutoff, 2)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 1 {
		t.Errorf("second batch moved = %d, want 1", moved)
	}
}

func TestArchiveBefore_NothingOld(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Append(journal.KindUserMessage, "fresh", ""); err != nil {
		t.Fatal(err)
	}

	moved, err := s.ArchiveBefore(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 200)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 0 {
		t.Errorf("moved = %d, want 0", moved)
	}
}

func TestArchiveBefore_RemovesFromSearch(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Append(journal.KindUserMessage, "quarterly taxes filed", "")
	if err != nil {
		t.Fatal(err)
	}
	backdate(t, s, id, "2026-01-01 10:00:00")

	if _, err := s.ArchiveBefore(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 200); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search("taxes", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("archived entry still in search index: %+v", results)
	}
}

func TestArchiveBefore_PreservesEntryIDs(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Append(journal.KindNudge, "morning check-in", "")
	if err != nil {
		t.Fatal(err)
	}
	backdate(t, s, id, "2026-01-01 10:00:00")

	if _, err := s.ArchiveBefore(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 200); err != nil {
		t.Fatal(err)
	}

	var archivedID int64
	var kind string
	err = s.DB().QueryRow(`SELECT id, kind FROM archive LIMIT 1`).Scan(&archivedID, &kind)
	if err != nil {
		t.Fatalf("reading archive row: %v", err)
	}
	if archivedID != id {
		t.Errorf("archived id = %d, want %d", archivedID, id)
	}
	if kind != journal.KindNudge {
		t.Errorf("archived kind = %q", kind)
	}
}
