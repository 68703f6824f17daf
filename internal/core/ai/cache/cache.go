package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-planner/internal/infrastructure/config"
)

// Store caches raw generation responses keyed by prompt hash. A nil Store is
// valid and behaves as a cache that never hits.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New builds the configured cache backend, or nil when caching is disabled.
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case "redis":
		return newRedisStore(cfg)
	case "memory":
		return newMemoryStore(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Key derives a cache key from the prompt and its token budget.
func Key(prompt string, maxTokens int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", maxTokens, prompt)))
	return "gen:" + hex.EncodeToString(hash[:])
}
