package plan

import (
	"context"

	"recipe-planner/internal/pkg/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TextGenerator is the boundary contract with the generation collaborator:
// rendered prompt text plus a token budget in, raw text or a failure out.
// Retries, if any, live behind this interface; this layer never retries since
// generation calls are metered.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// HistoryStore records generated recipe names per scope key. Implementations
// must degrade to no-ops when their backing store is unavailable; a history
// failure never fails a generation call.
type HistoryStore interface {
	Recent(ctx context.Context, scope string) []string
	Append(ctx context.Context, scope string, entries []HistoryEntry)
}

// Service orchestrates prompt construction, the generation call, response
// parsing and best-effort history recording. It holds no per-request state.
type Service struct {
	generator       TextGenerator
	history         HistoryStore // may be nil
	maxTokensBatch  int
	maxTokensSingle int
}

// NewService creates a planning service. history may be nil, in which case
// generation proceeds without repeat-avoidance.
func NewService(generator TextGenerator, history HistoryStore, maxTokensBatch, maxTokensSingle int) *Service {
	return &Service{
		generator:       generator,
		history:         history,
		maxTokensBatch:  maxTokensBatch,
		maxTokensSingle: maxTokensSingle,
	}
}

// GenerateRecipes produces a batch of recipes for the given constraints.
// Errors are either an UpstreamError (generation call failed) or a ParseError
// (model answered but malformed), both distinguishable with errors.As.
func (s *Service) GenerateRecipes(ctx context.Context, scope string, req GenerateRequest) ([]Recipe, error) {
	if s.history != nil {
		req.PreviousNames = append(req.PreviousNames, s.history.Recent(ctx, scope)...)
	}

	prompt := BuildGeneratePrompt(req)

	raw, err := s.generator.Generate(ctx, prompt, s.maxTokensBatch)
	if err != nil {
		return nil, err
	}

	recipes, err := ParseRecipes(raw)
	if err != nil {
		return nil, err
	}

	for i := range recipes {
		if recipes[i].ID == "" {
			recipes[i].ID = uuid.New().String()
		}
	}

	s.record(ctx, scope, recipes)

	common.LogInfo("recipe batch generated",
		zap.Int("count", len(recipes)),
		zap.Int("persons", req.PersonsCount),
	)

	return recipes, nil
}

// RegenerateRecipe produces a single replacement recipe for one budget tier.
func (s *Service) RegenerateRecipe(ctx context.Context, scope string, req RegenerateRequest) (Recipe, error) {
	if s.history != nil {
		req.ExistingNames = append(req.ExistingNames, s.history.Recent(ctx, scope)...)
	}

	prompt := BuildRegeneratePrompt(req)

	raw, err := s.generator.Generate(ctx, prompt, s.maxTokensSingle)
	if err != nil {
		return Recipe{}, err
	}

	recipe, err := ParseRecipe(raw)
	if err != nil {
		return Recipe{}, err
	}

	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}

	s.record(ctx, scope, []Recipe{recipe})

	common.LogInfo("recipe regenerated",
		zap.String("category", string(req.Category)),
	)

	return recipe, nil
}

func (s *Service) record(ctx context.Context, scope string, recipes []Recipe) {
	if s.history == nil || len(recipes) == 0 {
		return
	}
	entries := make([]HistoryEntry, 0, len(recipes))
	for _, r := range recipes {
		if r.Name == "" {
			continue
		}
		entries = append(entries, HistoryEntry{Name: r.Name, Category: string(r.Category)})
	}
	s.history.Append(ctx, scope, entries)
}
