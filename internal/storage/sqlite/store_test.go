package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	savedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	record := storage.SessionRecord{
		Slot:      "default",
		SessionID: "abc",
		Level:     3,
		Payload:   []byte(`{"level":3}`),
		SavedAt:   savedAt,
	}
	if err := store.PutSession(ctx, record); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetSession(ctx, "default")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SessionID != "abc" || got.Level != 3 || string(got.Payload) != `{"level":3}` {
		t.Errorf("unexpected record: %+v", got)
	}
	if !got.SavedAt.Equal(savedAt) {
		t.Errorf("Expected saved at %v, got %v", savedAt, got.SavedAt)
	}
}

func TestPutOverwritesSlot(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for level := 1; level <= 2; level++ {
		err := store.PutSession(ctx, storage.SessionRecord{
			Slot:      "default",
			SessionID: "abc",
			Level:     level,
			Payload:   []byte("x"),
		})
		if err != nil {
			t.Fatalf("put level %d: %v", level, err)
		}
	}

	got, err := store.GetSession(ctx, "default")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Level != 2 {
		t.Errorf("Expected level 2, got %d", got.Level)
	}
}

func TestPutValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutSession(ctx, storage.SessionRecord{Payload: []byte("x")}); err == nil {
		t.Error("expected error for missing slot")
	}
	if err := store.PutSession(ctx, storage.SessionRecord{Slot: "a"}); err == nil {
		t.Error("expected error for empty payload")
	}
}

func TestGetMissingSlot(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetSession(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetDetectsTamperedPayload(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutSession(ctx, storage.SessionRecord{Slot: "default", Payload: []byte("good")}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.sqlDB.Exec("UPDATE saves SET payload = ? WHERE slot = ?", []byte("evil"), "default"); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	_, err := store.GetSession(ctx, "default")
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("Expected ErrCorrupt, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutSession(ctx, storage.SessionRecord{Slot: "default", Payload: []byte("x")}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.DeleteSession(ctx, "default"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetSession(ctx, "default"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteSession(ctx, "default"); err != nil {
		t.Fatalf("deleting empty slot: %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.PutSession(ctx, storage.SessionRecord{Slot: "a", Payload: []byte("x")}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
