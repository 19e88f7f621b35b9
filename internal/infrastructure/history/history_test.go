package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tesso57/dietplan/internal/domain/plan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	record := plan.Record{
		ID:        "id1",
		CreatedAt: now,
		Providers: []string{"groq", "gemini"},
		Policy:    plan.PolicyInline,
		Document:  "## Groq Diet Plan\n\nPlan A",
		PDFPath:   "diet_plan.pdf",
	}
	if err := store.Save(record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get("id1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
	if len(got.Providers) != 2 || got.Providers[1] != "gemini" {
		t.Fatalf("Providers not round-tripped: %#v", got.Providers)
	}
	if got.Policy != plan.PolicyInline || got.Document != record.Document || got.PDFPath != "diet_plan.pdf" {
		t.Fatalf("record = %#v", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
}

func TestStore_SaveDuplicate(t *testing.T) {
	store := newTestStore(t)
	record := plan.Record{ID: "dup", CreatedAt: time.Now(), Providers: []string{"groq"}}
	if err := store.Save(record); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(record); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestStore_SaveEmptyID(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(plan.Record{}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		err := store.Save(plan.Record{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Providers: []string{"gemini"},
			Policy:    plan.PolicyFailFast,
		})
		if err != nil {
			t.Fatalf("Save(%s) failed: %v", id, err)
		}
	}

	records, err := store.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List len = %d, want 2", len(records))
	}
	if records[0].ID != "c" || records[1].ID != "b" {
		t.Fatalf("order = %s, %s", records[0].ID, records[1].ID)
	}

	all, err := store.List(0)
	if err != nil {
		t.Fatalf("List(0) failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List(0) len = %d, want 3", len(all))
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(plan.Record{ID: "persisted", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	_ = store.Close()

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = reopened.Close() }()
	got, err := reopened.Get("persisted")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.Providers != nil {
		t.Fatalf("empty providers should stay nil, got %#v", got.Providers)
	}
}
