package service

import (
	"context"
	"sync"
	"time"

	"recipe-planner/internal/core/ai/cache"
	"recipe-planner/internal/infrastructure/config"
	"recipe-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator is the upstream generation client this service wraps.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	Close() error
}

// Service wraps a Generator with a response cache, a concurrency cap and a
// minimum interval between upstream calls. It satisfies the planning layer's
// TextGenerator contract.
type Service struct {
	config    *config.Config
	generator Generator
	cache     cache.Store // may be nil

	sem chan struct{}

	mu       sync.Mutex
	lastCall time.Time
}

// New builds the generation service. cacheStore may be nil when caching is
// disabled.
func New(cfg *config.Config, generator Generator, cacheStore cache.Store) *Service {
	maxConcurrent := cfg.AI.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Service{
		config:    cfg,
		generator: generator,
		cache:     cacheStore,
		sem:       make(chan struct{}, maxConcurrent),
	}
}

// Generate returns a cached response when one exists, otherwise forwards to
// the upstream generator under the concurrency and rate limits.
func (s *Service) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	key := cache.Key(prompt, maxTokens)

	if s.cache != nil {
		if value, ok := s.cache.Get(ctx, key); ok {
			common.LogDebug("generation cache hit", zap.String("key", key))
			return value, nil
		}
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return "", common.NewUpstreamError("generation cancelled while queued", ctx.Err())
	}

	if err := s.waitInterval(ctx); err != nil {
		return "", common.NewUpstreamError("generation cancelled while rate limited", err)
	}

	result, err := s.generator.Generate(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			common.LogWarn("failed to cache generation result", zap.Error(err))
		}
	}

	return result, nil
}

// waitInterval enforces the minimum spacing between upstream calls.
func (s *Service) waitInterval(ctx context.Context) error {
	if s.config.AI.MinInterval <= 0 {
		return nil
	}

	s.mu.Lock()
	wait := s.config.AI.MinInterval - time.Since(s.lastCall)
	if wait < 0 {
		wait = 0
	}
	s.lastCall = time.Now().Add(wait)
	s.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the cache and the upstream client.
func (s *Service) Close() error {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			common.LogWarn("failed to close cache", zap.Error(err))
		}
	}
	return s.generator.Close()
}
