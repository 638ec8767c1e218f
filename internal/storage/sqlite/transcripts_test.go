package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/yegors/scribe/pkg/logger"
)

func testRecord(sessionID, content string) *TranscriptRecord {
	return &TranscriptRecord{
		SessionID:    sessionID,
		Device:       "front:CARD=BRIO",
		Backend:      "whisper",
		Model:        "turbo",
		AudioPath:    "/tmp/output_1700000000.wav",
		DurationSecs: 12.5,
		Content:      content,
		CreatedAt:    time.Now(),
	}
}

func TestStoreAndGetByID(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "history.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	id, err := store.Store(testRecord("sess-1", "hello world"))
	if err != nil {
		t.Fatalf("failed to store: %v", err)
	}

	got, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("failed to get by ID: %v", err)
	}
	if got.SessionID != "sess-1" {
		t.Errorf("unexpected session ID: %s", got.SessionID)
	}
	if got.Content != "hello world" {
		t.Errorf("unexpected content: %q", got.Content)
	}
	if got.Backend != "whisper" || got.Model != "turbo" {
		t.Errorf("backend metadata not preserved: %s/%s", got.Backend, got.Model)
	}
	if got.DurationSecs != 12.5 {
		t.Errorf("unexpected duration: %g", got.DurationSecs)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at should round-trip")
	}
}

func TestGetByIDMissing(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "history.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	if _, err := store.GetByID(42); err == nil {
		t.Fatal("expected error for missing transcript")
	}
}

func TestGetRecentOrder(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "history.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	for _, content := range []string{"first", "second", "third"} {
		if _, err := store.Store(testRecord("sess-"+content, content)); err != nil {
			t.Fatalf("failed to store: %v", err)
		}
	}

	records, err := store.GetRecent(2)
	if err != nil {
		t.Fatalf("failed to get recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Content != "third" || records[1].Content != "second" {
		t.Errorf("records should be newest first: %s, %s", records[0].Content, records[1].Content)
	}
}

func TestGetLatest(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "history.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	if _, err := store.GetLatest(); err == nil {
		t.Fatal("expected error on empty history")
	}

	if _, err := store.Store(testRecord("sess-a", "older")); err != nil {
		t.Fatalf("failed to store: %v", err)
	}
	if _, err := store.Store(testRecord("sess-b", "newer")); err != nil {
		t.Fatalf("failed to store: %v", err)
	}

	latest, err := store.GetLatest()
	if err != nil {
		t.Fatalf("failed to get latest: %v", err)
	}
	if latest.Content != "newer" {
		t.Errorf("unexpected latest transcript: %q", latest.Content)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := New(path, logger.NewNop())
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	if _, err := store.Store(testRecord("sess-1", "persisted")); err != nil {
		t.Fatalf("failed to store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	reopened, err := New(path, logger.NewNop())
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer reopened.Close()

	latest, err := reopened.GetLatest()
	if err != nil {
		t.Fatalf("failed to get latest after reopen: %v", err)
	}
	if latest.Content != "persisted" {
		t.Errorf("unexpected content after reopen: %q", latest.Content)
	}
}
