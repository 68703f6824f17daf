package history

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"recipe-planner/internal/core/plan"
	"recipe-planner/internal/infrastructure/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db.SQL)
}

func TestAppendAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Append(ctx, "scope-a", []plan.HistoryEntry{
		{Name: "Soupe à l'oignon", Category: "economique"},
		{Name: "Boeuf bourguignon", Category: "gourmand"},
	})
	store.Append(ctx, "scope-a", []plan.HistoryEntry{
		{Name: "Tarte tatin", Category: "plaisir"},
	})

	names := store.Recent(ctx, "scope-a")
	if len(names) != 3 {
		t.Fatalf("got %d names, want 3", len(names))
	}
	// Newest first.
	if names[0] != "Tarte tatin" {
		t.Errorf("names[0] = %q, want Tarte tatin", names[0])
	}
	if names[2] != "Soupe à l'oignon" {
		t.Errorf("names[2] = %q, want Soupe à l'oignon", names[2])
	}
}

func TestAppendDeduplicatesPerScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := []plan.HistoryEntry{{Name: "Ratatouille", Category: "economique"}}
	store.Append(ctx, "scope-a", entry)
	store.Append(ctx, "scope-a", entry)
	store.Append(ctx, "scope-b", entry)

	if got := store.Recent(ctx, "scope-a"); len(got) != 1 {
		t.Errorf("scope-a has %d entries, want 1", len(got))
	}
	if got := store.Recent(ctx, "scope-b"); len(got) != 1 {
		t.Errorf("scope-b has %d entries, want 1", len(got))
	}
}

func TestRecentScopesAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Append(ctx, "scope-a", []plan.HistoryEntry{{Name: "Cassoulet"}})

	if got := store.Recent(ctx, "scope-b"); len(got) != 0 {
		t.Errorf("scope-b sees %d foreign entries", len(got))
	}
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := make([]plan.HistoryEntry, 0, historyLimit+20)
	for i := 0; i < historyLimit+20; i++ {
		entries = append(entries, plan.HistoryEntry{Name: recipeName(i)})
	}
	store.Append(ctx, "scope-a", entries)

	names := store.Recent(ctx, "scope-a")
	if len(names) != historyLimit {
		t.Fatalf("got %d names, want %d", len(names), historyLimit)
	}
	// The newest insert comes back first.
	if names[0] != recipeName(historyLimit+19) {
		t.Errorf("names[0] = %q, want %q", names[0], recipeName(historyLimit+19))
	}
}

func TestNilDatabaseDegradesSilently(t *testing.T) {
	store := New(nil)
	ctx := context.Background()

	store.Append(ctx, "scope-a", []plan.HistoryEntry{{Name: "Gratin"}})

	if got := store.Recent(ctx, "scope-a"); got != nil {
		t.Errorf("nil store returned %v, want nil", got)
	}
}

func TestAppendSkipsBlankNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Append(ctx, "scope-a", []plan.HistoryEntry{
		{Name: ""},
		{Name: "Pot-au-feu"},
	})

	names := store.Recent(ctx, "scope-a")
	if len(names) != 1 || names[0] != "Pot-au-feu" {
		t.Errorf("got %v, want [Pot-au-feu]", names)
	}
}

func recipeName(i int) string {
	return "Recette " + strconv.Itoa(i)
}
