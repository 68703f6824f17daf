package cache

import (
	"context"
	"testing"
	"time"

	"recipe-planner/internal/infrastructure/config"
)

func testConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestMemoryStoreSetGet(t *testing.T) {
	store := newMemoryStore(testConfig(10, time.Minute))
	defer store.Close()
	ctx := context.Background()

	if err := store.Set(ctx, "k1", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok := store.Get(ctx, "k1")
	if !ok || value != "v1" {
		t.Errorf("Get(k1) = (%q, %v), want (v1, true)", value, ok)
	}

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Error("Get(missing) reported a hit")
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	store := newMemoryStore(testConfig(10, 10*time.Millisecond))
	defer store.Close()
	ctx := context.Background()

	if err := store.Set(ctx, "k1", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := store.Get(ctx, "k1"); ok {
		t.Error("expired entry still served")
	}
}

func TestMemoryStoreEvictsWhenFull(t *testing.T) {
	store := newMemoryStore(testConfig(2, time.Minute))
	defer store.Close()
	ctx := context.Background()

	if err := store.Set(ctx, "k1", "v1"); err != nil {
		t.Fatalf("Set(k1) failed: %v", err)
	}
	if err := store.Set(ctx, "k2", "v2"); err != nil {
		t.Fatalf("Set(k2) failed: %v", err)
	}

	// Touch k2 so k1 becomes the LRU candidate.
	store.Get(ctx, "k2")

	if err := store.Set(ctx, "k3", "v3"); err != nil {
		t.Fatalf("Set(k3) failed: %v", err)
	}

	if _, ok := store.Get(ctx, "k1"); ok {
		t.Error("expected k1 to be evicted")
	}
	if _, ok := store.Get(ctx, "k3"); !ok {
		t.Error("newly set key missing after eviction")
	}
}

func TestNewDisabledCacheIsNil(t *testing.T) {
	store, err := New(&config.Config{Cache: config.CacheConfig{Enabled: false}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if store != nil {
		t.Error("disabled cache should be nil")
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(&config.Config{Cache: config.CacheConfig{Enabled: true, Backend: "memcached"}})
	if err == nil {
		t.Error("expected an error for unknown backend")
	}
}

func TestKeyIsStableAndBudgetSensitive(t *testing.T) {
	a := Key("prompt", 4096)
	b := Key("prompt", 4096)
	c := Key("prompt", 8192)

	if a != b {
		t.Error("same prompt and budget produced different keys")
	}
	if a == c {
		t.Error("different budgets produced the same key")
	}
}
