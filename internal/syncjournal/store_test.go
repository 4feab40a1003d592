package syncjournal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/devinschumacher/devinschumacher.com/internal/crm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	store, err := Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndBySession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	attempts := []crm.SyncAttempt{
		{SessionID: "cs_1", Email: "a@example.com", Error: "timeout"},
		{SessionID: "cs_1", Email: "a@example.com", ContactID: "contact_1", Created: true, Succeeded: true},
		{SessionID: "cs_2", Email: "b@example.com", ContactID: "contact_2", Succeeded: true},
	}
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, attempt := range attempts {
		at := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return at }
		if err := store.Record(ctx, attempt); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.BySession(ctx, "cs_1")
	if err != nil {
		t.Fatalf("BySession: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Oldest first: the failed attempt precedes the retry.
	if entries[0].Succeeded || entries[0].Error != "timeout" {
		t.Fatalf("unexpected first entry: %#v", entries[0])
	}
	if !entries[1].Succeeded || entries[1].ContactID != "contact_1" || !entries[1].Created {
		t.Fatalf("unexpected second entry: %#v", entries[1])
	}
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return at }
		attempt := crm.SyncAttempt{SessionID: fmt.Sprintf("cs_%d", i), Succeeded: true}
		if err := store.Record(ctx, attempt); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].SessionID != "cs_4" || entries[2].SessionID != "cs_2" {
		t.Fatalf("unexpected order: %s .. %s", entries[0].SessionID, entries[2].SessionID)
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Record(ctx, crm.SyncAttempt{SessionID: "cs_only"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].SessionID != "cs_only" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
	if entries[0].ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected generated id")
	}
}
